package series

import (
	"fmt"
	"net/url"
	"strings"
)

// GraphSpec is one graph selection. Its encoded form, "id:event:resultType",
// is the shareable wire format: parsing an encoded spec and re-running the
// fetch pipeline reproduces an equivalent series.
type GraphSpec struct {
	WCAID      string     `json:"wca_id"`
	Event      string     `json:"event"`
	ResultType ResultType `json:"result_type"`
}

// Encode renders the spec in its compact colon-delimited form.
func (s GraphSpec) Encode() string {
	return fmt.Sprintf("%s:%s:%s", s.WCAID, s.Event, s.ResultType)
}

// ParseSpec parses "id:event:resultType". All three fields must be present
// and non-empty; the WCA ID is uppercased.
func ParseSpec(raw string) (GraphSpec, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 3 {
		return GraphSpec{}, fmt.Errorf("graph spec %q: want id:event:resultType", raw)
	}
	for _, p := range parts {
		if p == "" {
			return GraphSpec{}, fmt.Errorf("graph spec %q: empty field", raw)
		}
	}
	return GraphSpec{
		WCAID:      strings.ToUpper(parts[0]),
		Event:      parts[1],
		ResultType: ResultType(parts[2]),
	}, nil
}

// EncodeState renders the full dashboard state as a query string:
// g1=id:event:type&g2=...&view=mode. This is the only state that must
// round-trip through a shareable encoding.
func EncodeState(specs []GraphSpec, view string) string {
	v := url.Values{}
	for i, s := range specs {
		v.Set(fmt.Sprintf("g%d", i+1), s.Encode())
	}
	if view != "" {
		v.Set("view", view)
	}
	return v.Encode()
}

// ParseState is the inverse of EncodeState. Graph keys are read in g1..gN
// order; the sequence stops at the first missing index. An empty view means
// the caller's default applies.
func ParseState(encoded string) (specs []GraphSpec, view string, err error) {
	values, err := url.ParseQuery(encoded)
	if err != nil {
		return nil, "", fmt.Errorf("parse state: %w", err)
	}
	for i := 1; ; i++ {
		raw := values.Get(fmt.Sprintf("g%d", i))
		if raw == "" {
			break
		}
		spec, err := ParseSpec(raw)
		if err != nil {
			return nil, "", err
		}
		specs = append(specs, spec)
	}
	return specs, values.Get("view"), nil
}
