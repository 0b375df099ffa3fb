package types

import "github.com/m-mizutani/goerr/v2"

// Autonomy is how far the AI system acts on its own
type Autonomy string

const (
	AutonomySupportOnly       Autonomy = "support_only"
	AutonomyInteractive       Autonomy = "interactive"
	AutonomySemiAutomated     Autonomy = "semi_automated"
	AutonomyAutomated         Autonomy = "automated"
	AutonomyCriticalAutomated Autonomy = "critical_automated"
)

// AllAutonomyLevels returns the levels ordered from least to most autonomous
func AllAutonomyLevels() []Autonomy {
	return []Autonomy{
		AutonomySupportOnly,
		AutonomyInteractive,
		AutonomySemiAutomated,
		AutonomyAutomated,
		AutonomyCriticalAutomated,
	}
}

func (a Autonomy) IsValid() bool {
	switch a {
	case AutonomySupportOnly,
		AutonomyInteractive,
		AutonomySemiAutomated,
		AutonomyAutomated,
		AutonomyCriticalAutomated:
		return true
	default:
		return false
	}
}

// IsAutomated reports whether the AI makes final decisions
func (a Autonomy) IsAutomated() bool {
	return a == AutonomyAutomated || a == AutonomyCriticalAutomated
}

func (a Autonomy) String() string {
	return string(a)
}

// ParseAutonomy parses a string into an Autonomy
func ParseAutonomy(s string) (Autonomy, error) {
	a := Autonomy(s)
	if !a.IsValid() {
		return "", goerr.New("invalid autonomy level", goerr.V("autonomy", s))
	}
	return a, nil
}
