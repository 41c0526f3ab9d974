package schema

import (
	"fmt"
	"strconv"
	"strings"
)

// PathRef builds JSON Pointer paths in a chain-safe way and creates Issues.
type PathRef interface {
	Field(name string) PathRef
	Index(i int) PathRef
	Pointer() string
	Issue(code string, kv ...any) Issue
}

// Root returns the PathRef of the document root.
func Root() PathRef { return &pathRef{} }

// At returns a PathRef for an existing JSON Pointer.
func At(pointer string) PathRef {
	if pointer == "" || pointer == "/" {
		return Root()
	}
	var parts []string
	for _, p := range strings.Split(pointer, "/") {
		if p == "" {
			continue
		}
		parts = append(parts, p)
	}
	return &pathRef{parts: parts}
}

type pathRef struct {
	parts []string
}

func (p *pathRef) Field(name string) PathRef {
	if name == "" {
		return p
	}
	// escape '~' -> '~0', '/' -> '~1' per RFC6901
	esc := strings.ReplaceAll(strings.ReplaceAll(name, "~", "~0"), "/", "~1")
	return &pathRef{parts: append(append([]string{}, p.parts...), esc)}
}

func (p *pathRef) Index(i int) PathRef {
	return &pathRef{parts: append(append([]string{}, p.parts...), strconv.Itoa(i))}
}

func (p *pathRef) Pointer() string {
	if len(p.parts) == 0 {
		return "/"
	}
	return "/" + strings.Join(p.parts, "/")
}

// Issue creates an Issue at this path; kv are key/value pairs stored in
// Params and used to render the message.
func (p *pathRef) Issue(code string, kv ...any) Issue {
	var m map[string]any
	if len(kv) > 1 {
		m = make(map[string]any, len(kv)/2)
		for i := 0; i+1 < len(kv); i += 2 {
			m[fmt.Sprint(kv[i])] = kv[i+1]
		}
	}
	return NewIssue(p.Pointer(), code, m)
}

// Child joins a relative pointer segment onto base.
func Child(base, name string) string {
	return At(base).Field(name).Pointer()
}
