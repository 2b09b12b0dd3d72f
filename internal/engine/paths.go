package engine

import (
	"strconv"
	"strings"
)

// AppendKey renders base.key, falling back to base["key"] for keys that are
// not plain identifiers.
func AppendKey(base, key string) string {
	if IsPlainKey(key) {
		if base == "" {
			return key
		}
		return base + "." + key
	}
	return base + "[" + strconv.Quote(key) + "]"
}

// AppendIndex renders base[i].
func AppendIndex(base string, i int) string {
	return base + "[" + strconv.Itoa(i) + "]"
}

// IsPlainKey reports whether a key can be rendered after a dot without quoting.
func IsPlainKey(k string) bool {
	if k == "" {
		return false
	}
	for i, r := range k {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case i > 0 && (r == '-' || (r >= '0' && r <= '9')):
		default:
			return false
		}
	}
	return true
}

// PointerEscape escapes a key as an RFC 6901 reference token.
func PointerEscape(k string) string {
	return strings.ReplaceAll(strings.ReplaceAll(k, "~", "~0"), "/", "~1")
}
