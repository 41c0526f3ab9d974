package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/scott-cotton/cli"

	"github.com/karstenskyt/osti"
	"github.com/karstenskyt/osti/schema"
)

// readDocument returns the JSON bytes of the document at path, "-" meaning
// in. YAML files (.yaml, .yml) are converted to JSON first.
func readDocument(path string, in io.Reader) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(in)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		j, err := yaml.YAMLToJSON(data)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return j, nil
	}
	return data, nil
}

// loadPlan reads and validates the session plan at path.
func loadPlan(ctx context.Context, path string, in io.Reader, opt schema.ParseOpt) (osti.SessionPlan, error) {
	data, err := readDocument(path, in)
	if err != nil {
		return osti.SessionPlan{}, err
	}
	var plan osti.SessionPlan
	if err := osti.Unmarshal(ctx, data, &plan, opt); err != nil {
		return osti.SessionPlan{}, err
	}
	return plan, nil
}

func validate(cfg *ValidateConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Validate.Parse(cc, args)
	if err != nil {
		cfg.Validate.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) == 0 {
		args = []string{"-"}
	}
	failed := validateFiles(cfg.ctx, cc.Out, cc.In, cfg, args)
	if failed > 0 {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// validateFiles reports on each file and returns how many failed.
func validateFiles(ctx context.Context, w io.Writer, in io.Reader, cfg *ValidateConfig, paths []string) int {
	p := cfg.palette(w)
	log := cfg.logger()
	failed := 0
	for _, path := range paths {
		var warnings schema.Issues
		opt := cfg.parseOpt()
		if opt.Strictness.OnDuplicateKey == schema.Ignore {
			opt.Strictness.OnDuplicateKey = schema.Warn
		}
		opt.WarnSink = func(it schema.Issue) { warnings = append(warnings, it) }

		plan, err := loadPlan(ctx, path, in, opt)
		for _, it := range warnings {
			fmt.Fprintf(w, "%s warning: %s\n", p.path("%s%s", path, it.Path), it.Message)
		}
		if err == nil {
			log.Debug("validated", "path", path, "drills", len(plan.Drills), "warnings", len(warnings))
			fmt.Fprintf(w, "%s %s (%d drills)\n", p.ok("ok"), path, len(plan.Drills))
			continue
		}
		failed++
		iss, ok := schema.AsIssues(err)
		if !ok {
			log.Error("validation failed", "path", path, "error", err)
			fmt.Fprintf(w, "%s %s: %v\n", p.fail("FAIL"), path, err)
			continue
		}
		log.Info("validation failed", "path", path, "issues", len(iss))
		fmt.Fprintf(w, "%s %s (%d issues)\n", p.fail("FAIL"), path, len(iss))
		for _, it := range iss {
			fmt.Fprintf(w, "  %s %s: %s\n", p.path("%s", pointer(it.Path)), it.Code, it.Message)
		}
	}
	return failed
}

func pointer(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

func fmtPlan(cfg *FmtConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Fmt.Parse(cc, args)
	if err != nil {
		cfg.Fmt.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 1 {
		return fmt.Errorf("%w: fmt requires 1 arg, got %v", cli.ErrUsage, args)
	}
	if cfg.Write && args[0] == "-" {
		return fmt.Errorf("%w: -w cannot rewrite stdin", cli.ErrUsage)
	}
	out, err := canonical(cfg.ctx, args[0], cc.In)
	if err != nil {
		return fmt.Errorf("error formatting %s: %w", args[0], err)
	}
	if !cfg.Write {
		_, err := cc.Out.Write(out)
		return err
	}
	target := args[0]
	if ext := strings.ToLower(filepath.Ext(target)); ext == ".yaml" || ext == ".yml" {
		target = strings.TrimSuffix(target, filepath.Ext(target)) + ".json"
	}
	if err := os.WriteFile(target, out, 0o644); err != nil {
		return err
	}
	cfg.logger().Info("formatted", "path", target)
	return nil
}

// canonical parses the plan at path and re-encodes it with every field in
// declaration order.
func canonical(ctx context.Context, path string, in io.Reader) ([]byte, error) {
	plan, err := loadPlan(ctx, path, in, schema.ParseOpt{})
	if err != nil {
		return nil, err
	}
	return osti.MarshalIndent(ctx, plan)
}
