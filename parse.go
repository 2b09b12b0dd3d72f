package bylawkit

import (
	"context"
	"errors"
	"fmt"
	"io"

	eng "github.com/reoring/bylawkit/internal/engine"
	yamlsrc "github.com/reoring/bylawkit/source/yaml"
)

// DecodeFrom consumes the Source under opt and returns the raw value tree:
// map[string]any for objects, []any for arrays, json.Number for numbers.
// Decode-time warnings (duplicate keys under Warn) are returned separately.
// Failures are reported as *DecodeError.
func DecodeFrom(ctx context.Context, src Source, opt ParseOpt) (any, Issues, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}
	if ls, ok := src.(interface{ limitBytes(int64) }); ok {
		ls.limitBytes(opt.MaxBytes)
	}
	var warns Issues
	enforced := EnforceSource(src, opt, func(iss Issue) { warns = AppendIssues(warns, iss) })
	v, err := eng.DecodeAny(enforced)
	if err != nil {
		return nil, warns, toDecodeError(err, src.Location())
	}
	return v, warns, nil
}

// DecodeObject is DecodeFrom restricted to object payloads. Any other root
// yields ErrNotAnObject.
func DecodeObject(ctx context.Context, src Source, opt ParseOpt) (map[string]any, Issues, error) {
	v, warns, err := DecodeFrom(ctx, src, opt)
	if err != nil {
		return nil, warns, err
	}
	m, ok := v.(map[string]any)
	if !ok {
		return nil, warns, ErrNotAnObject
	}
	return m, warns, nil
}

// ReadLimited reads r up to max bytes. Larger bodies yield a too_large
// *DecodeError. A max of zero or less disables the limit.
func ReadLimited(r io.Reader, max int64) ([]byte, error) {
	if max <= 0 {
		return io.ReadAll(r)
	}
	b, err := io.ReadAll(io.LimitReader(r, max+1))
	if err != nil {
		return nil, err
	}
	if int64(len(b)) > max {
		return nil, &DecodeError{Code: CodeTooLarge, Offset: max, Err: fmt.Errorf("payload exceeds %d bytes", max)}
	}
	return b, nil
}

func toDecodeError(err error, offset int64) error {
	var de *DecodeError
	if errors.As(err, &de) {
		return de
	}
	if errors.Is(err, yamlsrc.ErrExpansionLimit) {
		return &DecodeError{Code: CodeTooLarge, Offset: offset, Err: err}
	}
	var le *eng.LimitError
	if errors.As(err, &le) {
		return &DecodeError{Code: le.Code, Path: le.Path, Offset: le.Offset, Err: errors.New(le.Message)}
	}
	return &DecodeError{Code: CodeParseError, Offset: offset, Err: err}
}
