package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/scott-cotton/cli"

	"github.com/karstenskyt/osti/internal/logger"
	"github.com/karstenskyt/osti/schema"
)

type MainConfig struct {
	Log     string `cli:"name=log desc='log mode: dev or prod or off'"`
	Color   bool   `cli:"name=color desc='color diagnostics even when not writing to a terminal'"`
	NoColor bool   `cli:"name=no-color desc='never color diagnostics'"`

	ctx context.Context
	log *logger.Logger

	Main *cli.Command
}

func (cfg *MainConfig) logger() *logger.Logger {
	if cfg.log == nil {
		return logger.Nop()
	}
	return cfg.log
}

// colors reports whether diagnostics written to w are colored.
func (cfg *MainConfig) colors(w io.Writer) bool {
	switch {
	case cfg.NoColor:
		return false
	case cfg.Color:
		return true
	}
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd())
}

type palette struct {
	ok, fail, path, add, del func(string, ...any) string
}

func (cfg *MainConfig) palette(w io.Writer) palette {
	if !cfg.colors(w) {
		plain := fmt.Sprintf
		return palette{ok: plain, fail: plain, path: plain, add: plain, del: plain}
	}
	mk := func(attrs ...color.Attribute) func(string, ...any) string {
		c := color.New(attrs...)
		c.EnableColor()
		return c.SprintfFunc()
	}
	return palette{
		ok:   mk(color.FgGreen),
		fail: mk(color.FgRed, color.Bold),
		path: mk(color.FgCyan),
		add:  mk(color.FgGreen),
		del:  mk(color.FgRed),
	}
}

type GenerateConfig struct {
	*MainConfig
	OutDir     string `cli:"name=out aliases=o desc='output directory'"`
	LinkML     bool   `cli:"name=linkml desc='also generate the LinkML rendering'"`
	LinkMLTool string `cli:"name=linkml-tool desc='external JSON Schema to LinkML importer to run instead of the built-in converter'"`

	Generate *cli.Command
}

type CheckConfig struct {
	*MainConfig
	OutDir string `cli:"name=out aliases=o desc='directory holding the committed artifacts'"`

	Check *cli.Command
}

type ValidateConfig struct {
	*MainConfig
	Strict        bool `cli:"name=strict desc='enable every optional check'"`
	UnknownStrict bool `cli:"name=unknown-strict desc='reject keys the schema does not declare'"`
	Coordinates   bool `cli:"name=coords desc='reject diagram coordinates outside 0..100'"`
	FailFast      bool `cli:"name=fail-fast desc='stop at the first issue'"`

	Validate *cli.Command
}

func (cfg *ValidateConfig) parseOpt() schema.ParseOpt {
	if cfg.Strict {
		return schema.Strict()
	}
	opt := schema.ParseOpt{FailFast: cfg.FailFast}
	if cfg.UnknownStrict {
		opt.UnknownKeys = schema.UnknownStrict
	}
	opt.Strictness.CoordinateRange = cfg.Coordinates
	return opt
}

type FmtConfig struct {
	*MainConfig
	Write bool `cli:"name=w desc='write result to the source file instead of stdout'"`

	Fmt *cli.Command
}

type DiffConfig struct {
	*MainConfig
	Text bool `cli:"name=text desc='print a line diff instead of an RFC 7386 merge patch'"`

	Diff *cli.Command
}

type SourceConfig struct {
	*MainConfig
	Text bool `cli:"name=text desc='print the extracted page text instead of the source block'"`

	Source *cli.Command
}

type VersionConfig struct {
	*MainConfig

	Version *cli.Command
}
