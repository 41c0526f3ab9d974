package main

import (
	"context"

	"github.com/scott-cotton/cli"
)

func MainCommand(ctx context.Context) *cli.Command {
	cfg := &MainConfig{ctx: ctx, Log: "off"}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Main, "osti").
		WithSynopsis("osti [opts] command [opts]").
		WithDescription("osti generates, checks and validates OSTI session plan artifacts.").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return ostiMain(cfg, cc, args)
		}).
		WithSubs(
			GenerateCommand(cfg),
			CheckCommand(cfg),
			ValidateCommand(cfg),
			FmtCommand(cfg),
			DiffCommand(cfg),
			SourceCommand(cfg),
			VersionCommand(cfg))
}

func GenerateCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &GenerateConfig{MainConfig: mainCfg, OutDir: "generated"}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Generate, "generate").
		WithAliases("gen", "g").
		WithSynopsis("generate [-out dir] [-linkml] [-linkml-tool cmd]").
		WithDescription("write the JSON Schema (and optionally LinkML) artifacts").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return generate(cfg, cc, args)
		})
}

func CheckCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &CheckConfig{MainConfig: mainCfg, OutDir: "generated"}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Check, "check").
		WithAliases("c").
		WithSynopsis("check [-out dir]").
		WithDescription("fail when the committed JSON Schema differs from the types").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return check(cfg, cc, args)
		})
}

func ValidateCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &ValidateConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Validate, "validate").
		WithAliases("v", "val").
		WithSynopsis("validate [-strict] [-unknown-strict] [-coords] [-fail-fast] files...").
		WithDescription("validate session plan documents (JSON or YAML); reads stdin when no file is given").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return validate(cfg, cc, args)
		})
}

func FmtCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &FmtConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Fmt, "fmt").
		WithAliases("f").
		WithSynopsis("fmt [-w] file").
		WithDescription("rewrite a session plan in canonical form, filling defaults and identifiers").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return fmtPlan(cfg, cc, args)
		})
}

func DiffCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &DiffConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Diff, "diff").
		WithAliases("d").
		WithSynopsis("diff [-text] a b").
		WithDescription("print the merge patch taking plan a to plan b; exits 1 when they differ").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return diff(cfg, cc, args)
		})
}

func SourceCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &SourceConfig{MainConfig: mainCfg}
	opts, err := cli.StructOpts(cfg)
	if err != nil {
		panic(err)
	}
	return cli.NewCommandAt(&cfg.Source, "source").
		WithAliases("s", "src").
		WithSynopsis("source [-text] file.pdf").
		WithDescription("describe a source PDF as an OSTI source block").
		WithOpts(opts...).
		WithRun(func(cc *cli.Context, args []string) error {
			return source(cfg, cc, args)
		})
}

func VersionCommand(mainCfg *MainConfig) *cli.Command {
	cfg := &VersionConfig{MainConfig: mainCfg}
	return cli.NewCommandAt(&cfg.Version, "version").
		WithSynopsis("version").
		WithDescription("print the schema version and identifier").
		WithRun(func(cc *cli.Context, args []string) error {
			return version(cfg, cc, args)
		})
}
