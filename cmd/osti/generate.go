package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/scott-cotton/cli"

	"github.com/karstenskyt/osti"
	"github.com/karstenskyt/osti/internal/logger"
	"github.com/karstenskyt/osti/linkml"
)

func linkmlOptions() linkml.Options {
	return linkml.Options{Name: "osti", RootClass: "SessionPlan", Version: osti.SchemaVersion}
}

func generate(cfg *GenerateConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Generate.Parse(cc, args)
	if err != nil {
		cfg.Generate.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: generate takes no arguments, got %v", cli.ErrUsage, args)
	}
	var lm *linkml.GenerateOptions
	if cfg.LinkML || cfg.LinkMLTool != "" {
		lm = &linkml.GenerateOptions{Options: linkmlOptions(), Tool: cfg.LinkMLTool}
	}
	return writeArtifacts(cfg.ctx, cc.Out, cfg.logger(), cfg.OutDir, lm)
}

// writeArtifacts writes the JSON Schema into dir and, when lm is set, its
// LinkML rendering. A skipped LinkML step is reported but is not an error.
func writeArtifacts(ctx context.Context, w io.Writer, log *logger.Logger, dir string, lm *linkml.GenerateOptions) error {
	doc, err := osti.JSONSchema()
	if err != nil {
		return err
	}
	schemaPath := filepath.Join(dir, osti.SchemaFileName)
	if err := osti.WriteSchemaFile(schemaPath); err != nil {
		return err
	}
	log.Info("wrote json schema", "path", schemaPath, "version", osti.SchemaVersion, "defs", len(doc.Defs))
	fmt.Fprintf(w, "JSON Schema -> %s\n", schemaPath)
	if lm == nil {
		return nil
	}
	res := linkml.Generate(ctx, doc, schemaPath, filepath.Join(dir, linkml.FileName), *lm)
	if res.Skipped {
		log.Warn("linkml generation skipped", "reason", res.Reason)
		fmt.Fprintf(w, "LinkML YAML -- %s\n", res)
		return nil
	}
	log.Info("wrote linkml schema", "path", res.Path)
	fmt.Fprintf(w, "LinkML YAML -> %s\n", res)
	return nil
}

func check(cfg *CheckConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Check.Parse(cc, args)
	if err != nil {
		cfg.Check.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: check takes no arguments, got %v", cli.ErrUsage, args)
	}
	path := filepath.Join(cfg.OutDir, osti.SchemaFileName)
	p := cfg.palette(cc.Out)
	d, err := schemaDrift(path, p)
	if err != nil {
		return err
	}
	if d == "" {
		fmt.Fprintln(cc.Out, p.ok("%s is up to date", path))
		return nil
	}
	cfg.logger().Warn("json schema drift", "path", path)
	fmt.Fprintln(cc.Out, p.fail("%s is out of date; run `osti generate`", path))
	fmt.Fprint(cc.Out, d)
	return cli.ExitCodeErr(1)
}

// schemaDrift compares the committed schema at path with a fresh export and
// returns their diff, or "" when they match byte for byte.
func schemaDrift(path string, p palette) (string, error) {
	want, err := osti.SchemaJSON()
	if err != nil {
		return "", err
	}
	got, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		got = nil
	} else if err != nil {
		return "", err
	}
	return lineDiff(string(got), string(want), 3, p), nil
}
