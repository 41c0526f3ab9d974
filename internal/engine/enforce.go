package engine

import (
	"strconv"
	"strings"
)

// DuplicateStrictness controls duplicate key handling.
type DuplicateStrictness int

const (
	DupIgnore DuplicateStrictness = iota
	DupWarn
	DupError
)

// EnforceOptions controls runtime enforcement behavior.
type EnforceOptions struct {
	OnDuplicate DuplicateStrictness
	MaxDepth    int
	MaxBytes    int64
	// IssueSink receives non-fatal findings (duplicate keys under DupWarn).
	IssueSink func(SimpleIssue)
	FailFast  bool
}

// Disabled reports whether wrapping would be a no-op.
func (o EnforceOptions) Disabled() bool {
	return o.OnDuplicate == DupIgnore && o.MaxDepth <= 0 && o.MaxBytes <= 0
}

// SimpleIssue is the engine's minimal issue representation; the schema layer
// lifts it into a full Issue.
type SimpleIssue struct {
	Code    string
	Path    string
	Message string
	Offset  int64
}

// IssueError is a fatal enforcement failure.
type IssueError struct{ SimpleIssue }

func (e IssueError) Error() string { return e.SimpleIssue.Message }

type enforceFrame struct {
	kind       containerKind
	keys       map[string]struct{}
	path       string
	pendingKey string
	nextIndex  int
}

// WrapWithEnforcement returns a TokenSource that enforces duplicate key policy,
// maximum nesting depth and maximum consumed bytes while tracking the JSON
// Pointer of every token.
func WrapWithEnforcement(inner TokenSource, opt EnforceOptions) TokenSource {
	if opt.Disabled() {
		return inner
	}
	return &enforcingSource{inner: inner, opt: opt}
}

type enforcingSource struct {
	inner TokenSource
	opt   EnforceOptions
	stack []enforceFrame
}

func (e *enforcingSource) report(si SimpleIssue, fatal bool) error {
	if e.opt.IssueSink != nil {
		e.opt.IssueSink(si)
	}
	if fatal || e.opt.FailFast {
		return IssueError{si}
	}
	return nil
}

func (e *enforcingSource) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return Token{}, err
	}
	path := e.pathFor(tok)

	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		fr := enforceFrame{kind: kindArray, path: path}
		if tok.Kind == KindBeginObject {
			fr.kind = kindObject
			fr.keys = make(map[string]struct{})
		}
		e.stack = append(e.stack, fr)
		if e.opt.MaxDepth > 0 && len(e.stack) > e.opt.MaxDepth {
			return Token{}, e.report(SimpleIssue{Code: "parse_error", Path: pointerOrRoot(path), Message: "max depth exceeded", Offset: tok.Offset}, true)
		}
	case KindEndObject, KindEndArray:
		if n := len(e.stack); n > 0 {
			e.stack = e.stack[:n-1]
		}
	case KindKey:
		if n := len(e.stack); n > 0 {
			top := &e.stack[n-1]
			if _, dup := top.keys[tok.String]; dup && e.opt.OnDuplicate != DupIgnore {
				si := SimpleIssue{Code: "duplicate_key", Path: path, Message: "key '" + tok.String + "' duplicated", Offset: tok.Offset}
				if err := e.report(si, e.opt.OnDuplicate == DupError); err != nil {
					return Token{}, err
				}
			}
			top.keys[tok.String] = struct{}{}
			top.pendingKey = tok.String
		}
	}

	if e.opt.MaxBytes > 0 {
		if off := e.Location(); off > e.opt.MaxBytes {
			return Token{}, e.report(SimpleIssue{Code: "truncated", Path: pointerOrRoot(path), Message: "max bytes exceeded", Offset: off}, true)
		}
	}
	return tok, nil
}

// pathFor computes the JSON Pointer of tok relative to the document root.
func (e *enforcingSource) pathFor(tok Token) string {
	n := len(e.stack)
	if n == 0 {
		return ""
	}
	top := &e.stack[n-1]
	switch tok.Kind {
	case KindKey:
		return joinPointer(top.path, tok.String)
	case KindEndObject, KindEndArray:
		return top.path
	}
	if top.kind == kindArray {
		p := joinPointer(top.path, strconv.Itoa(top.nextIndex))
		top.nextIndex++
		return p
	}
	p := joinPointer(top.path, top.pendingKey)
	top.pendingKey = ""
	return p
}

func (e *enforcingSource) Location() int64 { return e.inner.Location() }

func pointerOrRoot(p string) string {
	if p == "" {
		return "/"
	}
	return p
}

var pointerEscaper = strings.NewReplacer("~", "~0", "/", "~1")

func joinPointer(base, token string) string {
	return base + "/" + pointerEscaper.Replace(token)
}
