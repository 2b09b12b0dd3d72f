package engine

// DupPolicy controls how repeated keys inside one object are treated.
type DupPolicy int

const (
	DupIgnore DupPolicy = iota
	DupWarn
	DupError
)

// Limits is the runtime enforcement applied while tokens stream through.
type Limits struct {
	OnDuplicate DupPolicy
	MaxDepth    int
	MaxBytes    int64
	// Warn receives non-fatal findings (duplicate keys under DupWarn).
	Warn func(LimitError)
}

// LimitError is raised when a token violates Limits. Code is one of
// duplicate_key, too_deep or too_large.
type LimitError struct {
	Code    string
	Path    string
	Offset  int64
	Message string
}

func (e *LimitError) Error() string { return e.Message }

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind       containerKind
	keys       map[string]struct{}
	path       string
	nextIndex  int
	pendingKey string
	hasKey     bool
}

// Enforce returns a TokenSource that applies the duplicate key policy, the
// nesting limit and the byte limit.
func Enforce(inner TokenSource, lim Limits) TokenSource {
	return &enforcing{inner: inner, lim: lim}
}

type enforcing struct {
	inner TokenSource
	lim   Limits
	stack []frame
}

func (e *enforcing) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return Token{}, err
	}
	path := e.pathFor(tok)

	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		f := frame{kind: kindArray, path: path}
		if tok.Kind == KindBeginObject {
			f.kind = kindObject
			f.keys = make(map[string]struct{})
		}
		e.stack = append(e.stack, f)
		if e.lim.MaxDepth > 0 && len(e.stack) > e.lim.MaxDepth {
			return Token{}, &LimitError{Code: "too_deep", Path: path, Offset: tok.Offset, Message: "max depth exceeded"}
		}
	case KindEndObject, KindEndArray:
		if n := len(e.stack); n > 0 {
			e.stack = e.stack[:n-1]
		}
		e.valueDone()
	case KindKey:
		if n := len(e.stack); n > 0 {
			top := &e.stack[n-1]
			if _, dup := top.keys[tok.String]; dup && e.lim.OnDuplicate != DupIgnore {
				le := &LimitError{Code: "duplicate_key", Path: path, Offset: tok.Offset, Message: "key '" + tok.String + "' duplicated"}
				if e.lim.OnDuplicate == DupError {
					return Token{}, le
				}
				if e.lim.Warn != nil {
					e.lim.Warn(*le)
				}
			}
			top.keys[tok.String] = struct{}{}
			top.pendingKey = tok.String
			top.hasKey = true
		}
	default:
		e.valueDone()
	}

	if e.lim.MaxBytes > 0 {
		if off := e.inner.Location(); off >= 0 && off > e.lim.MaxBytes {
			return Token{}, &LimitError{Code: "too_large", Path: path, Offset: off, Message: "max bytes exceeded"}
		}
	}
	return tok, nil
}

// valueDone closes a pending key once its value has been fully consumed.
func (e *enforcing) valueDone() {
	if n := len(e.stack); n > 0 {
		top := &e.stack[n-1]
		if top.kind == kindObject {
			top.hasKey = false
			top.pendingKey = ""
		}
	}
}

func (e *enforcing) pathFor(tok Token) string {
	if len(e.stack) == 0 {
		return ""
	}
	top := &e.stack[len(e.stack)-1]
	switch tok.Kind {
	case KindKey:
		return AppendKey(top.path, tok.String)
	case KindEndObject, KindEndArray:
		return top.path
	}
	if top.kind == kindArray {
		p := AppendIndex(top.path, top.nextIndex)
		top.nextIndex++
		return p
	}
	if top.hasKey {
		return AppendKey(top.path, top.pendingKey)
	}
	return top.path
}

func (e *enforcing) Location() int64 { return e.inner.Location() }
