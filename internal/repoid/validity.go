package repoid

import "strings"

// Validity is the live validation state of a repository field.
type Validity int

const (
	Neutral Validity = iota
	Valid
	Invalid
)

func (v Validity) String() string {
	switch v {
	case Valid:
		return "valid"
	case Invalid:
		return "invalid"
	default:
		return "neutral"
	}
}

// Validate reports Neutral for blank input, otherwise Valid or Invalid
// depending on whether the input parses.
func Validate(raw string) Validity {
	if strings.TrimSpace(raw) == "" {
		return Neutral
	}
	if _, ok := Parse(raw); ok {
		return Valid
	}
	return Invalid
}

// MarshalText renders the state by name in JSON output.
func (v Validity) MarshalText() ([]byte, error) {
	return []byte(v.String()), nil
}
