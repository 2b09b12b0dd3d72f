package bylawkit

import (
	"errors"
	"fmt"
	"strings"
)

// Issue codes for hard validation failures.
const (
	CodeMissingRequired    = "missing_required"
	CodeInvalidEnumValue   = "invalid_enum_value"
	CodeOutOfRange         = "out_of_range"
	CodeWrongType          = "wrong_type"
	CodeUnknownField       = "unknown_field"
	CodePreconditionFailed = "precondition_failed"
)

// Warning codes for cross-field consistency checks. Warnings never block a write.
const (
	WarnParkingConfigurationMissing = "parking_configuration_missing"
	WarnAttachedHeightValueMissing  = "attached_height_value_missing"
	WarnAttachedSetbackDetails      = "attached_setback_details_missing"
	WarnADUTypesNone                = "adu_types_none"
)

// Decode failure codes carried by DecodeError.
const (
	CodeParseError   = "parse_error"
	CodeDuplicateKey = "duplicate_key"
	CodeTooDeep      = "too_deep"
	CodeTooLarge     = "too_large"
)

// Issue represents a single validation entry.
type Issue struct {
	// Path uses dot/bracket notation, e.g. parking_exemptions.transit_distance_ft
	// or permitted_zones[2]. The empty string addresses the payload root.
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
	Hint    string `json:"hint,omitempty"`
	// Params carries structured parameters such as the received value and the
	// allowed set or constraint.
	Params map[string]any `json:"params,omitempty"`
	// Rule records the warning rule that produced this issue, if any.
	Rule string `json:"rule,omitempty"`
}

// Issues is a collection of validation failures that implements error.
type Issues []Issue

// Error summarizes the first few issues.
func (iss Issues) Error() string {
	if len(iss) == 0 {
		return ""
	}
	const maxShown = 3
	b := &strings.Builder{}
	n := len(iss)
	lim := min(n, maxShown)
	for i := 0; i < lim; i++ {
		if i > 0 {
			b.WriteString("; ")
		}
		it := iss[i]
		path := it.Path
		if path == "" {
			path = "(root)"
		}
		fmt.Fprintf(b, "%s at %s", it.Code, path)
	}
	if n > lim {
		fmt.Fprintf(b, "; ... (total %d)", n)
	}
	return b.String()
}

// Codes returns the issue codes in order.
func (iss Issues) Codes() []string {
	out := make([]string, len(iss))
	for i, it := range iss {
		out[i] = it.Code
	}
	return out
}

// At returns the issues whose path equals p.
func (iss Issues) At(p string) Issues {
	var out Issues
	for _, it := range iss {
		if it.Path == p {
			out = append(out, it)
		}
	}
	return out
}

// AppendIssues appends issues to the destination, initializing the slice when
// needed.
func AppendIssues(dst Issues, more ...Issue) Issues {
	if dst == nil {
		dst = Issues{}
	}
	dst = append(dst, more...)
	return dst
}

// AsIssues extracts Issues from an error using errors.As internally.
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

// ErrNotAnObject is returned when the payload root is not a key/value structure.
// It signals a protocol violation rather than a data-quality issue.
var ErrNotAnObject = errors.New("bylawkit: payload is not an object")

// DecodeError reports a payload that could not be turned into a raw structure:
// syntax errors, duplicate keys, nesting or size limits.
type DecodeError struct {
	Code   string
	Path   string
	Offset int64
	Err    error
}

func (e *DecodeError) Error() string {
	var b strings.Builder
	b.WriteString("bylawkit: decode: ")
	b.WriteString(e.Code)
	if e.Path != "" {
		b.WriteString(" at ")
		b.WriteString(e.Path)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *DecodeError) Unwrap() error { return e.Err }

// IsFatal reports whether err is a protocol-level failure (malformed input)
// rather than a list of validation issues.
func IsFatal(err error) bool {
	if err == nil {
		return false
	}
	var de *DecodeError
	return errors.As(err, &de) || errors.Is(err, ErrNotAnObject)
}
