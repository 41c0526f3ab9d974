package linkml

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	js "github.com/karstenskyt/osti/jsonschema"
)

// FileName is the conventional name of the generated LinkML artifact.
const FileName = "osti.linkml.yaml"

// Outcome reports what Generate produced. A skipped step is not an error:
// the JSON Schema remains the primary artifact.
type Outcome struct {
	Path    string
	Skipped bool
	Reason  string
}

func (o Outcome) String() string {
	if o.Skipped {
		return "skipped (" + o.Reason + ")"
	}
	return o.Path
}

// GenerateOptions selects the converter. With Tool set, the named external
// importer is run as `Tool <schema.json> -o <out>`; otherwise the built-in
// converter renders doc.
type GenerateOptions struct {
	Options
	Tool string
}

// Generate writes the LinkML rendering of doc to outPath. schemaPath names
// the JSON Schema file already written for doc, used by external tools.
func Generate(ctx context.Context, doc *js.Document, schemaPath, outPath string, opt GenerateOptions) Outcome {
	if opt.Tool != "" {
		return runTool(ctx, opt.Tool, schemaPath, outPath)
	}
	s, err := Convert(doc, opt.Options)
	if err != nil {
		return skipped(err)
	}
	if err := WriteFile(outPath, s); err != nil {
		return skipped(err)
	}
	return Outcome{Path: outPath}
}

// WriteFile marshals s to path, creating parent directories.
func WriteFile(path string, s *Schema) error {
	b, err := Marshal(s)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create %s: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

func runTool(ctx context.Context, tool, schemaPath, outPath string) Outcome {
	fields := strings.Fields(tool)
	if len(fields) == 0 {
		return Outcome{Skipped: true, Reason: "empty tool"}
	}
	bin, err := exec.LookPath(fields[0])
	if err != nil {
		return skipped(err)
	}
	args := append(fields[1:], schemaPath, "-o", outPath)
	cmd := exec.CommandContext(ctx, bin, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		return skipped(err)
	}
	return Outcome{Path: outPath}
}

func skipped(err error) Outcome {
	var ce *ConversionError
	var ee *exec.Error
	var xe *exec.ExitError
	switch {
	case errors.As(err, &ce):
		return Outcome{Skipped: true, Reason: ce.Error()}
	case errors.As(err, &ee):
		return Outcome{Skipped: true, Reason: "tool not found: " + ee.Name}
	case errors.As(err, &xe):
		return Outcome{Skipped: true, Reason: fmt.Sprintf("tool exited %d", xe.ExitCode())}
	}
	return Outcome{Skipped: true, Reason: err.Error()}
}
