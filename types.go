package bylawkit

// Mode selects how a payload is interpreted.
type Mode uint8

const (
	// ModeCreate requires every non-optional field.
	ModeCreate Mode = iota
	// ModeUpdate accepts a partial payload merged onto an existing record.
	ModeUpdate
)

func (m Mode) String() string {
	switch m {
	case ModeCreate:
		return "create"
	case ModeUpdate:
		return "update"
	default:
		return "unknown"
	}
}

// ParseMode maps "create"/"update" to a Mode.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "create":
		return ModeCreate, true
	case "update":
		return ModeUpdate, true
	default:
		return 0, false
	}
}

// UnknownPolicy controls how unknown keys are handled by object schemas.
type UnknownPolicy int

const (
	UnknownStrict      UnknownPolicy = iota // Reject unknown keys with an issue.
	UnknownPassthrough                      // Keep unknown keys verbatim.
)

// Severity expresses how a decode-time condition is treated.
type Severity int

const (
	Ignore Severity = iota
	Warn
	Error
)

// ParseSeverity maps "ignore"/"warn"/"error" to a Severity.
func ParseSeverity(s string) (Severity, bool) {
	switch s {
	case "ignore":
		return Ignore, true
	case "warn":
		return Warn, true
	case "error":
		return Error, true
	default:
		return Ignore, false
	}
}

// Strictness configures decode-time enforcement.
type Strictness struct {
	OnDuplicateKey Severity // Warn or Error (duplicate JSON/YAML keys).
}

// ParseOpt bundles decoding options.
type ParseOpt struct {
	Strictness Strictness
	MaxDepth   int
	MaxBytes   int64
}

// DefaultParseOpt returns the limits recommended for HTTP boundaries:
// duplicate keys are errors, nesting is capped at 32 and bodies at 1 MiB.
func DefaultParseOpt() ParseOpt {
	return ParseOpt{
		Strictness: Strictness{OnDuplicateKey: Error},
		MaxDepth:   32,
		MaxBytes:   1 << 20,
	}
}
