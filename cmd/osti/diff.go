package main

import (
	"bytes"
	"context"
	"fmt"
	"io"

	jsonpatch "github.com/evanphx/json-patch"
	j "github.com/goccy/go-json"
	"github.com/scott-cotton/cli"
)

func diff(cfg *DiffConfig, cc *cli.Context, args []string) error {
	args, err := cfg.Diff.Parse(cc, args)
	if err != nil {
		cfg.Diff.Usage(cc, err)
		return cli.ExitCodeErr(1)
	}
	if len(args) != 2 {
		return fmt.Errorf("%w: diff requires 2 args, got %v", cli.ErrUsage, args)
	}
	differs, err := diffPlans(cfg.ctx, cc.Out, cc.In, args[0], args[1], !cfg.Text, cfg.palette(cc.Out))
	if err != nil {
		return err
	}
	if differs {
		return cli.ExitCodeErr(1)
	}
	return nil
}

// diffPlans canonicalizes both plans and writes their difference to w,
// either as a line diff or as an RFC 7386 merge patch taking a to b. It
// reports whether the plans differ.
func diffPlans(ctx context.Context, w io.Writer, in io.Reader, a, b string, patch bool, p palette) (bool, error) {
	ja, err := canonical(ctx, a, in)
	if err != nil {
		return false, fmt.Errorf("error decoding %s: %w", a, err)
	}
	jb, err := canonical(ctx, b, in)
	if err != nil {
		return false, fmt.Errorf("error decoding %s: %w", b, err)
	}
	if jsonpatch.Equal(ja, jb) {
		return false, nil
	}
	if !patch {
		_, err := io.WriteString(w, lineDiff(string(ja), string(jb), 3, p))
		return true, err
	}
	mp, err := jsonpatch.CreateMergePatch(ja, jb)
	if err != nil {
		return true, fmt.Errorf("error creating merge patch: %w", err)
	}
	var out bytes.Buffer
	if err := j.Indent(&out, mp, "", "  "); err != nil {
		return true, err
	}
	out.WriteByte('\n')
	_, err = w.Write(out.Bytes())
	return true, err
}
