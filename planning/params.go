package planning

import (
	"encoding/json"
	"sort"
)

// Params is a flat parameter report. Values are JSON-encodable scalars.
type Params map[string]any

// Merge copies other into p under "prefix.key" (or "key" when prefix is
// empty) and returns p. A nil p is allocated.
func (p Params) Merge(prefix string, other Params) Params {
	if p == nil {
		p = Params{}
	}
	for k, v := range other {
		if prefix != "" {
			k = prefix + "." + k
		}
		p[k] = v
	}

	return p
}

// Keys returns the sorted keys.
func (p Params) Keys() []string {
	out := make([]string, 0, len(p))
	for k := range p {
		out = append(out, k)
	}
	sort.Strings(out)

	return out
}

// JSON encodes the report; map keys are emitted sorted.
func (p Params) JSON() ([]byte, error) {
	return json.Marshal(map[string]any(p))
}
