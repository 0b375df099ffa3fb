package types

import "github.com/m-mizutani/goerr/v2"

// Transparency is how traceable the AI system's decisions are
type Transparency string

const (
	TransparencyHigh   Transparency = "high"
	TransparencyMedium Transparency = "medium"
	TransparencyLow    Transparency = "low"
)

func AllTransparencies() []Transparency {
	return []Transparency{
		TransparencyHigh,
		TransparencyMedium,
		TransparencyLow,
	}
}

func (t Transparency) IsValid() bool {
	switch t {
	case TransparencyHigh, TransparencyMedium, TransparencyLow:
		return true
	default:
		return false
	}
}

func (t Transparency) String() string {
	return string(t)
}

// ParseTransparency parses a string into a Transparency
func ParseTransparency(s string) (Transparency, error) {
	t := Transparency(s)
	if !t.IsValid() {
		return "", goerr.New("invalid transparency level", goerr.V("transparency", s))
	}
	return t, nil
}
