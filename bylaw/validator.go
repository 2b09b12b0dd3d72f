package bylaw

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	bylawkit "github.com/reoring/bylawkit"
	"github.com/reoring/bylawkit/dsl"
	"github.com/reoring/bylawkit/rules"
)

// Normalized is the successful outcome of a validation.
type Normalized struct {
	Record   Record
	Warnings bylawkit.Issues
	// Presence records which paths the submitted payload carried and which
	// ones normalization filled in.
	Presence bylawkit.PresenceMap
}

// Validator checks raw bylaw payloads and produces normalized records.
// It holds no mutable state and is safe for concurrent use.
type Validator struct {
	schema *dsl.ObjectSchema
	warn   rules.Rule[Record]
	now    func() time.Time
}

// Option configures a Validator.
type Option func(*Validator)

// WithClock overrides the time source used for updated_at/created_at.
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		if now != nil {
			v.now = now
		}
	}
}

// NewValidator returns a Validator over the bylaw record schema.
func NewValidator(opts ...Option) *Validator {
	v := &Validator{schema: Schema(), warn: warningRules(), now: time.Now}
	for _, o := range opts {
		o(v)
	}
	return v
}

// Validate checks raw against the record schema.
//
// In ModeCreate every required field must be present. In ModeUpdate raw is
// overlaid onto the canonical form of existing: present keys replace, an
// explicit null clears the field. existing is required in ModeUpdate and its
// municipality_id cannot change.
//
// Validation failures are returned as bylawkit.Issues, all of them at once.
// A raw value that is not an object yields an error wrapping
// bylawkit.ErrNotAnObject.
func (v *Validator) Validate(ctx context.Context, raw any, mode bylawkit.Mode, existing *Record) (Normalized, error) {
	if err := ctx.Err(); err != nil {
		return Normalized{}, err
	}
	payload, ok := raw.(map[string]any)
	if !ok {
		return Normalized{}, fmt.Errorf("bylaw: validate %s: %w", mode, bylawkit.ErrNotAnObject)
	}
	if mode == bylawkit.ModeUpdate && existing == nil {
		return Normalized{}, bylawkit.Issues{bylawkit.Root().Issue(bylawkit.CodePreconditionFailed, "update requires an existing record")}
	}

	presence := bylawkit.CollectPresence(payload)
	subject := payload
	var iss bylawkit.Issues
	if mode == bylawkit.ModeUpdate {
		if it, changed := identityChanged(payload, existing.MunicipalityID); changed {
			iss = bylawkit.AppendIssues(iss, it)
		}
		merged, err := overlay(*existing, payload)
		if err != nil {
			return Normalized{}, err
		}
		subject = merged
	}

	canon, schemaIss := v.schema.Check(ctx, bylawkit.Root(), subject)
	iss = append(iss, schemaIss...)
	if len(iss) > 0 {
		return Normalized{}, iss
	}

	presence.MarkDefaults(subject, canon)

	rec, err := dsl.Bind[Record](canon.(map[string]any))
	if err != nil {
		return Normalized{}, fmt.Errorf("bylaw: bind record: %w", err)
	}
	now := v.now().UTC()
	rec.UpdatedAt = now
	rec.CreatedAt = now
	if mode == bylawkit.ModeUpdate && !existing.CreatedAt.IsZero() {
		rec.CreatedAt = existing.CreatedAt
	}

	dctx := bylawkit.DomainCtx[Record]{
		Ctx:      ctx,
		Presence: presence,
		Req:      bylawkit.RequestInfo[Record]{Mode: mode, Old: existing},
		Ref:      bylawkit.NewRef(presence),
	}
	var warnings bylawkit.Issues
	if w := v.warn(dctx, rec); len(w) > 0 {
		warnings = bylawkit.AppendIssues(warnings, w...)
	}
	return Normalized{Record: rec, Warnings: warnings, Presence: presence}, nil
}

// ValidateSource decodes src and validates the result. Decode failures are
// returned as *bylawkit.DecodeError. Without opts, bylawkit.DefaultParseOpt
// applies. Duplicate keys tolerated under a Warn policy are reported among
// the warnings.
func (v *Validator) ValidateSource(ctx context.Context, src bylawkit.Source, mode bylawkit.Mode, existing *Record, opts ...bylawkit.ParseOpt) (Normalized, error) {
	opt := bylawkit.DefaultParseOpt()
	if len(opts) > 0 {
		opt = opts[len(opts)-1]
	}
	raw, decodeWarns, err := bylawkit.DecodeFrom(ctx, src, opt)
	if err != nil {
		return Normalized{}, fmt.Errorf("bylaw: decode: %w", err)
	}
	out, err := v.Validate(ctx, raw, mode, existing)
	if err != nil {
		return out, err
	}
	if len(decodeWarns) > 0 {
		out.Warnings = bylawkit.AppendIssues(decodeWarns, out.Warnings...)
	}
	return out, nil
}

// identityChanged reports a precondition failure when payload carries a
// municipality_id that differs from the existing one.
func identityChanged(payload map[string]any, current string) (bylawkit.Issue, bool) {
	raw, ok := payload[KeyMunicipalityID]
	if !ok || raw == nil {
		return bylawkit.Issue{}, false
	}
	s, ok := raw.(string)
	if !ok || strings.TrimSpace(s) == current {
		return bylawkit.Issue{}, false
	}
	p := bylawkit.Root().Field(KeyMunicipalityID)
	return bylawkit.NewIssue(p, bylawkit.CodePreconditionFailed, map[string]any{"value": s, "existing": current, "constraint": "immutable"}), true
}

// overlay merges payload onto the canonical form of existing. Top-level keys
// replace wholesale; null removes the key.
func overlay(existing Record, payload map[string]any) (map[string]any, error) {
	base, err := dsl.Canonical(existing)
	if err != nil {
		return nil, fmt.Errorf("bylaw: canonical existing: %w", err)
	}
	for k, val := range payload {
		if val == nil {
			delete(base, k)
			continue
		}
		base[k] = val
	}
	return base, nil
}

// IsNotAnObject reports whether err signals a non-object payload.
func IsNotAnObject(err error) bool { return errors.Is(err, bylawkit.ErrNotAnObject) }
