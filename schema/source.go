package schema

import (
	"bytes"
	"context"
	"errors"
	"io"

	"github.com/karstenskyt/osti/internal/engine"
)

// Source is raw JSON input for ParseFrom.
type Source struct {
	open func() engine.TokenSource
}

// JSONBytes returns a Source over an in-memory JSON document.
func JSONBytes(b []byte) Source {
	return Source{open: func() engine.TokenSource { return engine.NewReader(bytes.NewReader(b)) }}
}

// JSONReader returns a Source streaming from r. The reader is consumed once.
func JSONReader(r io.Reader) Source {
	return Source{open: func() engine.TokenSource { return engine.NewReader(r) }}
}

// ParseFrom decodes src into an untyped tree, enforcing duplicate-key,
// depth and size limits from the options, then parses it with s. Malformed
// JSON is reported as parse_error.
func ParseFrom[T any](ctx context.Context, s Schema[T], src Source, opts ...ParseOpt) (T, error) {
	var zero T
	o := lastOpt(opts)
	if len(opts) == 0 {
		o = ParseOptFrom(ctx)
	}
	tree, err := DecodeTree(src, o)
	if err != nil {
		return zero, err
	}
	return s.Parse(WithParseOpt(ctx, o), tree)
}

// DecodeTree reads src into an untyped tree under the enforcement options in
// o. Numbers are kept as json.Number.
func DecodeTree(src Source, o ParseOpt) (any, error) {
	if src.open == nil {
		return nil, Issues{NewIssue("/", CodeParseError, nil)}
	}
	eo := engine.EnforceOptions{
		OnDuplicate: toDup(o.Strictness.OnDuplicateKey),
		MaxDepth:    o.MaxDepth,
		MaxBytes:    o.MaxBytes,
		FailFast:    o.FailFast,
	}
	if o.Strictness.OnDuplicateKey == Warn && o.WarnSink != nil {
		eo.IssueSink = func(si engine.SimpleIssue) {
			if si.Code != CodeDuplicateKey {
				return
			}
			it := NewIssue(si.Path, si.Code, map[string]any{"key": lastSegment(si.Path)})
			it.Offset = si.Offset
			o.WarnSink(it)
		}
	}
	tree, err := engine.DecodeAny(engine.WrapWithEnforcement(src.open(), eo))
	if err != nil {
		return nil, engineIssues(err)
	}
	return tree, nil
}

func engineIssues(err error) Issues {
	var ie engine.IssueError
	if errors.As(err, &ie) {
		it := NewIssue(ie.Path, ie.Code, map[string]any{"key": lastSegment(ie.Path)})
		if ie.Code != CodeDuplicateKey {
			it.Message = ie.Message
		}
		it.Offset = ie.Offset
		return Issues{it}
	}
	it := NewIssue("/", CodeParseError, nil)
	it.Cause = err
	it.Message = it.Message + ": " + err.Error()
	var se *engine.SyntaxError
	if errors.As(err, &se) {
		it.Offset = se.Offset
	}
	return Issues{it}
}

func toDup(s Severity) engine.DuplicateStrictness {
	switch s {
	case Warn:
		return engine.DupWarn
	case Error:
		return engine.DupError
	default:
		return engine.DupIgnore
	}
}

func lastSegment(p string) string {
	return Issue{Path: p}.Field()
}
