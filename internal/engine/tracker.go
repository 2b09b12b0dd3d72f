package engine

// KeyTracker tells apart object keys from string values for decoders whose
// token streams do not distinguish them (encoding/json, go-json).
type KeyTracker struct {
	stack []bool // true for objects
	key   []bool // expecting a key at this level
}

// Open pushes a container.
func (t *KeyTracker) Open(object bool) {
	t.stack = append(t.stack, object)
	t.key = append(t.key, object)
}

// Close pops a container and marks the enclosing value as complete.
func (t *KeyTracker) Close() {
	if n := len(t.stack); n > 0 {
		t.stack = t.stack[:n-1]
		t.key = t.key[:n-1]
	}
	t.Value()
}

// Value marks a scalar value as complete.
func (t *KeyTracker) Value() {
	if n := len(t.stack); n > 0 && t.stack[n-1] {
		t.key[n-1] = true
	}
}

// StringKind classifies a string token as a key or a value.
func (t *KeyTracker) StringKind() Kind {
	if n := len(t.stack); n > 0 && t.stack[n-1] && t.key[n-1] {
		t.key[n-1] = false
		return KindKey
	}
	t.Value()
	return KindString
}
