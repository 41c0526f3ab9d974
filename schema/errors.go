package schema

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Issue codes.
const (
	CodeRequired       = "required"
	CodeTypeMismatch   = "type_mismatch"
	CodeInvalidEnum    = "invalid_enum"
	CodeInvalidFormat  = "invalid_format"
	CodeUnknownKey     = "unknown_key"
	CodeDuplicateKey   = "duplicate_key"
	CodeOutOfRange     = "out_of_range"
	CodeExclusiveValue = "exclusive_value"
	CodeInconsistent   = "inconsistent"
	CodeParseError     = "parse_error"
	CodeTruncated      = "truncated"
)

// Issue is a single validation finding.
type Issue struct {
	Path    string // JSON Pointer, e.g. /drills/0/diagram/arrows/2/arrow_type.
	Code    string
	Message string
	Hint    string
	Cause   error
	Offset  int64 // byte offset in the input, 0 when unknown
	Rule    string // name of the refinement rule that produced the issue
	// Params carries structured details such as the offending value or the
	// allowed enum members.
	Params map[string]any
}

// Field returns the last segment of the issue path, i.e. the offending field
// name or array index.
func (it Issue) Field() string {
	p := strings.TrimSuffix(it.Path, "/")
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		return unescapePointer(p[i+1:])
	}
	return p
}

// Issues is the aggregated validation report. It implements error so a
// whole document's problems travel as one value.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	lim := min(len(iss), maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		fmt.Fprintf(b, "%s at %s", iss[i].Code, iss[i].Path)
	}
	if len(iss) > lim {
		fmt.Fprintf(b, "; ... (total %d)", len(iss))
	}
	return b.String()
}

// ByPath groups issues by JSON Pointer.
func (iss Issues) ByPath() map[string]Issues {
	out := make(map[string]Issues, len(iss))
	for _, it := range iss {
		out[it.Path] = append(out[it.Path], it)
	}
	return out
}

// Paths returns the distinct issue paths in sorted order.
func (iss Issues) Paths() []string {
	seen := make(map[string]struct{}, len(iss))
	var out []string
	for _, it := range iss {
		if _, ok := seen[it.Path]; ok {
			continue
		}
		seen[it.Path] = struct{}{}
		out = append(out, it.Path)
	}
	sort.Strings(out)
	return out
}

// Has reports whether an issue with the given path and code exists. An empty
// code matches any code.
func (iss Issues) Has(path, code string) bool {
	for _, it := range iss {
		if it.Path == path && (code == "" || it.Code == code) {
			return true
		}
	}
	return false
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	return append(dst, more...)
}

// AsIssues extracts Issues from an error using errors.As.
func AsIssues(err error) (Issues, bool) {
	if err == nil {
		return nil, false
	}
	var iss Issues
	if errors.As(err, &iss) {
		return iss, true
	}
	return nil, false
}

// Rebase prefixes every issue path with base. Child schemas report paths
// relative to themselves ("/" meaning the value itself).
func Rebase(base string, iss Issues) Issues {
	out := make(Issues, 0, len(iss))
	for _, it := range iss {
		switch {
		case it.Path == "" || it.Path == "/":
			it.Path = base
		case it.Path[0] == '/':
			it.Path = base + it.Path
		default:
			it.Path = base + "/" + it.Path
		}
		out = append(out, it)
	}
	return out
}

// IssuesFromErr converts an arbitrary error into Issues at path, wrapping
// non-Issues errors as parse_error.
func IssuesFromErr(path string, err error) Issues {
	if err == nil {
		return nil
	}
	if iss, ok := AsIssues(err); ok {
		return iss
	}
	return Issues{{Path: path, Code: CodeParseError, Message: err.Error(), Cause: err}}
}

// SerializationError reports an in-memory value that violates its declared
// schema at encode time. Well-typed callers never see it.
type SerializationError struct {
	Path string
	Err  error
}

func (e *SerializationError) Error() string {
	if e.Path == "" || e.Path == "/" {
		return "osti: serialize: " + e.Err.Error()
	}
	return "osti: serialize " + e.Path + ": " + e.Err.Error()
}

func (e *SerializationError) Unwrap() error { return e.Err }

// SerializationErrorf builds a SerializationError at path.
func SerializationErrorf(path, format string, args ...any) error {
	return &SerializationError{Path: path, Err: fmt.Errorf(format, args...)}
}

// RebaseSerialization prefixes the path of a SerializationError; other
// errors pass through unchanged.
func RebaseSerialization(base string, err error) error {
	var se *SerializationError
	if !errors.As(err, &se) {
		return err
	}
	p := se.Path
	if p == "" || p == "/" {
		p = ""
	}
	return &SerializationError{Path: base + p, Err: se.Err}
}

func unescapePointer(s string) string {
	return strings.NewReplacer("~1", "/", "~0", "~").Replace(s)
}
