package model

// Phase is the sub-interval of a round.
type Phase int

const (
	PhaseWork Phase = iota
	PhaseRest
)

func (phase Phase) String() string {
	if phase == PhaseRest {
		return "rest"
	}
	return "work"
}

// Label returns the display name of the phase.
func (phase Phase) Label() string {
	if phase == PhaseRest {
		return "Rest"
	}
	return "Work"
}
