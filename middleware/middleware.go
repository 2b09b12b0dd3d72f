// Package middleware holds the framework-neutral half of the HTTP adapters:
// body decoding under parse limits, the decoded payload's context slot and
// the error body shape.
package middleware

import (
	"context"
	"io"
	"net/http"

	bylawkit "github.com/reoring/bylawkit"
)

// Decoded is a request body that passed decoding: an object plus any
// decode-time warnings.
type Decoded struct {
	Payload  map[string]any
	Warnings bylawkit.Issues
}

type ctxKeyDecoded struct{}

// ContextWithDecoded attaches d to ctx.
func ContextWithDecoded(ctx context.Context, d Decoded) context.Context {
	return context.WithValue(ctx, ctxKeyDecoded{}, d)
}

// DecodedFromContext retrieves the Decoded stored by ContextWithDecoded.
func DecodedFromContext(ctx context.Context) (Decoded, bool) {
	d, ok := ctx.Value(ctxKeyDecoded{}).(Decoded)
	return d, ok
}

// DefaultParseOpt returns the limits used when an adapter is given a zero
// ParseOpt.
func DefaultParseOpt() bylawkit.ParseOpt { return bylawkit.DefaultParseOpt() }

func orDefault(opt bylawkit.ParseOpt) bylawkit.ParseOpt {
	if opt == (bylawkit.ParseOpt{}) {
		return DefaultParseOpt()
	}
	return opt
}

// DecodeBody reads body under opt.MaxBytes and decodes it with the current
// JSON driver. The root must be an object.
func DecodeBody(ctx context.Context, body io.Reader, opt bylawkit.ParseOpt) (Decoded, error) {
	opt = orDefault(opt)
	b, err := bylawkit.ReadLimited(body, opt.MaxBytes)
	if err != nil {
		return Decoded{}, err
	}
	m, warns, err := bylawkit.DecodeObject(ctx, bylawkit.JSONBytes(b), opt)
	if err != nil {
		return Decoded{}, err
	}
	return Decoded{Payload: m, Warnings: warns}, nil
}

// ErrorPayload shapes an error for a JSON response: {"error", "issues"}.
// issues is always an array so clients can range over it.
func ErrorPayload(err error) map[string]any {
	issues := bylawkit.Issues{}
	msg := "internal error"
	if iss, ok := bylawkit.AsIssues(err); ok {
		issues = iss
		msg = "validation failed"
	} else if err != nil {
		msg = err.Error()
	}
	return map[string]any{"error": msg, "issues": issues}
}

// StatusFor maps validation and decode failures to 400. Other errors are
// left to the caller and reported as 500.
func StatusFor(err error) int {
	if _, ok := bylawkit.AsIssues(err); ok {
		return http.StatusBadRequest
	}
	if bylawkit.IsFatal(err) {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}
