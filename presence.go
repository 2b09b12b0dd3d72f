package bylawkit

import (
	"sort"
	"strings"
)

// Presence is the bit flag recorded for each path of an inbound payload.
type Presence uint8

const (
	PresenceSeen           Presence = 1 << iota // Field appeared in the input.
	PresenceWasNull                             // Field value was null.
	PresenceDefaultApplied                      // Value was filled in during normalization.
)

// PresenceMap maps dot/bracket paths to Presence flags. The root path is "".
type PresenceMap map[string]Presence

// Seen reports whether path appeared in the input (null included).
func (pm PresenceMap) Seen(path string) bool { return pm[path]&PresenceSeen != 0 }

// WasNull reports whether path appeared with an explicit null.
func (pm PresenceMap) WasNull(path string) bool { return pm[path]&PresenceWasNull != 0 }

// DefaultApplied reports whether normalization filled in path.
func (pm PresenceMap) DefaultApplied(path string) bool {
	return pm[path]&PresenceDefaultApplied != 0
}

// MarkDefaults flags the object keys of the normalized value norm that src,
// the value normalization started from, did not carry. Arrays are not
// descended into since normalization may reorder them.
func (pm PresenceMap) MarkDefaults(src, norm any) {
	markDefaultsRecurse(src, norm, Root(), pm)
}

func markDefaultsRecurse(src, norm any, cur PathRef, pm PresenceMap) {
	nm, ok := norm.(map[string]any)
	if !ok {
		return
	}
	sm, _ := src.(map[string]any)
	for k, nv := range nm {
		p := cur.Field(k)
		sv, had := sm[k]
		if !had {
			pm[p.String()] |= PresenceDefaultApplied
		}
		markDefaultsRecurse(sv, nv, p, pm)
	}
}

// TopLevel returns the top-level keys that appeared in the input, sorted.
func (pm PresenceMap) TopLevel() []string {
	var out []string
	for k, v := range pm {
		if k == "" || v&PresenceSeen == 0 {
			continue
		}
		if strings.ContainsAny(k, ".[") {
			continue
		}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// CollectPresence walks a raw decoded value (map[string]any / []any) and records
// every path it contains. The root path is always marked seen.
func CollectPresence(v any) PresenceMap {
	pm := PresenceMap{"": PresenceSeen}
	collectPresenceRecurse(v, Root(), pm)
	return pm
}

func collectPresenceRecurse(v any, cur PathRef, pm PresenceMap) {
	switch t := v.(type) {
	case map[string]any:
		for k, val := range t {
			p := cur.Field(k)
			key := p.String()
			pm[key] |= PresenceSeen
			if val == nil {
				pm[key] |= PresenceWasNull
			}
			collectPresenceRecurse(val, p, pm)
		}
	case []any:
		for i, val := range t {
			p := cur.Index(i)
			key := p.String()
			pm[key] |= PresenceSeen
			if val == nil {
				pm[key] |= PresenceWasNull
			}
			collectPresenceRecurse(val, p, pm)
		}
	}
}
