package schema

import "context"

type parseOptKey struct{}

// WithParseOpt attaches parse options to ctx. Schemas read them while parsing
// so nested schemas observe the caller's strictness.
func WithParseOpt(ctx context.Context, o ParseOpt) context.Context {
	return context.WithValue(ctx, parseOptKey{}, o)
}

// ParseOptFrom returns the options attached to ctx, or the zero ParseOpt.
func ParseOptFrom(ctx context.Context) ParseOpt {
	if ctx == nil {
		return ParseOpt{}
	}
	if o, ok := ctx.Value(parseOptKey{}).(ParseOpt); ok {
		return o
	}
	return ParseOpt{}
}

// IsFailFast reports whether parsing should stop at the first issue.
func IsFailFast(ctx context.Context) bool { return ParseOptFrom(ctx).FailFast }
