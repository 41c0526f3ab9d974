// Package pdfsource describes the PDF documents session plans are extracted
// from.
package pdfsource

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"

	"github.com/karstenskyt/osti"
)

// FromFile opens the PDF at path and returns a validated Source carrying its
// base name, its page count and now as the extraction timestamp. A zero now
// leaves the timestamp unset.
func FromFile(ctx context.Context, path string, now time.Time) (osti.Source, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return osti.Source{}, fmt.Errorf("error opening PDF %s: %w", path, err)
	}
	defer f.Close()

	in := map[string]any{
		"filename":   filepath.Base(path),
		"page_count": r.NumPage(),
	}
	if !now.IsZero() {
		in["extraction_timestamp"] = now.Format(time.RFC3339Nano)
	}
	return osti.ParseSource(ctx, in)
}

// PageText returns the plain text of every page in order. Pages without a
// content stream yield an empty string.
func PageText(path string) ([]string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening PDF %s: %w", path, err)
	}
	defer f.Close()

	n := r.NumPage()
	out := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		p := r.Page(i)
		if p.V.IsNull() || p.V.Key("Contents").IsNull() {
			out = append(out, "")
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("error extracting text from page %d: %w", i, err)
		}
		out = append(out, strings.TrimSpace(text))
	}
	return out, nil
}

// WriteText writes the page texts of the PDF at path to w, one form feed
// between pages.
func WriteText(w io.Writer, path string) error {
	pages, err := PageText(path)
	if err != nil {
		return err
	}
	for i, p := range pages {
		if i > 0 {
			if _, err := io.WriteString(w, "\f\n"); err != nil {
				return err
			}
		}
		if _, err := io.WriteString(w, p+"\n"); err != nil {
			return err
		}
	}
	return nil
}
