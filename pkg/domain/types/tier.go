package types

import "github.com/m-mizutani/goerr/v2"

// Tier is a risk severity label. Tiers are ordered: minimal < low < medium < high < critical.
type Tier string

const (
	TierMinimal  Tier = "minimal"
	TierLow      Tier = "low"
	TierMedium   Tier = "medium"
	TierHigh     Tier = "high"
	TierCritical Tier = "critical"
)

// AllTiers returns the tiers in ascending severity
func AllTiers() []Tier {
	return []Tier{
		TierMinimal,
		TierLow,
		TierMedium,
		TierHigh,
		TierCritical,
	}
}

// Rank returns the position of the tier in ascending severity, or -1 for an unknown tier
func (t Tier) Rank() int {
	for i, tier := range AllTiers() {
		if tier == t {
			return i
		}
	}
	return -1
}

func (t Tier) IsValid() bool {
	return t.Rank() >= 0
}

// AtLeast reports whether t is as severe as other or more
func (t Tier) AtLeast(other Tier) bool {
	return t.Rank() >= other.Rank()
}

func (t Tier) String() string {
	return string(t)
}

// ParseTier parses a string into a Tier
func ParseTier(s string) (Tier, error) {
	t := Tier(s)
	if !t.IsValid() {
		return "", goerr.New("invalid risk tier", goerr.V("tier", s))
	}
	return t, nil
}
