package schema

// UnknownPolicy controls how keys that a schema does not declare are handled.
type UnknownPolicy int

const (
	UnknownDefault UnknownPolicy = iota // Same as UnknownStrip.
	UnknownStrict                       // Reject unknown keys with unknown_key.
	UnknownStrip                        // Drop unknown keys.
)

// Severity expresses how a finding is treated.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// Strictness groups the checks that are stricter than the baseline schema.
type Strictness struct {
	// OnDuplicateKey applies to byte/reader input only; decoded trees cannot
	// carry duplicates.
	OnDuplicateKey Severity
	// CoordinateRange rejects diagram coordinates outside [0,100].
	CoordinateRange bool
	// DiagramConsistency requires has_diagram to agree with the diagram list.
	DiagramConsistency bool
}

// ParseOpt bundles parsing options. The zero value is the baseline
// (source-compatible) behavior.
type ParseOpt struct {
	UnknownKeys UnknownPolicy
	Strictness  Strictness
	MaxDepth    int
	MaxBytes    int64
	FailFast    bool
	// WarnSink receives findings with Warn severity (e.g. duplicate keys).
	WarnSink func(Issue)
}

// Strict returns the option set with every optional check enabled.
func Strict() ParseOpt {
	return ParseOpt{
		UnknownKeys: UnknownStrict,
		Strictness: Strictness{
			OnDuplicateKey:     Error,
			CoordinateRange:    true,
			DiagramConsistency: true,
		},
	}
}

func lastOpt(opts []ParseOpt) ParseOpt {
	if len(opts) == 0 {
		return ParseOpt{}
	}
	return opts[len(opts)-1]
}
