package main

import (
	"fmt"
	"time"

	"github.com/scott-cotton/cli"

	"github.com/karstenskyt/osti"
	"github.com/karstenskyt/osti/pdfsource"
)

func source(cfg *SourceConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Source.Parse(cc, args)
	if err != nil {
		cfg.Source.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: source requires 1 arg, got %v", cli.ErrUsage, args)
	}
	if cfg.Text {
		return pdfsource.WriteText(cc.Out, args[0])
	}
	src, err := pdfsource.FromFile(cfg.ctx, args[0], time.Now())
	if err != nil {
		return err
	}
	cfg.logger().Debug("described source", "filename", src.Filename, "pages", src.PageCount)
	out, err := osti.MarshalIndent(cfg.ctx, src)
	if err != nil {
		return err
	}
	_, err = cc.Out.Write(out)
	return err
}

func version(cfg *VersionConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Version.Parse(cc, args)
	if err != nil {
		cfg.Version.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 0 {
		return fmt.Errorf("%w: version takes no arguments, got %v", cli.ErrUsage, args)
	}
	_, err = fmt.Fprintf(cc.Out, "osti %s\n%s\n", osti.SchemaVersion, osti.SchemaID())
	return err
}
