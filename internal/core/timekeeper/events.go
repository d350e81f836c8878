package timekeeper

import (
	"time"

	"boxtime/internal/core/intervaltimer"
)

// EventType defines the type of TimeKeeper event.
type EventType string

const (
	EventStateChange     EventType = "state_change"
	EventProgress        EventType = "progress"
	EventPhaseChange     EventType = "phase_change"
	EventRoundComplete   EventType = "round_complete"
	EventExerciseAdvance EventType = "exercise_advance"
	EventFinished        EventType = "finished"
)

// Event represents a TimeKeeper update for observers.
type Event struct {
	Type       EventType
	RunID      string
	Transition intervaltimer.Transition
	Snapshot   intervaltimer.Snapshot
	At         time.Time
}

func eventTypeFor(transition intervaltimer.Transition) EventType {
	switch transition {
	case intervaltimer.TransitionPhaseChanged:
		return EventPhaseChange
	case intervaltimer.TransitionRoundCompleted:
		return EventRoundComplete
	case intervaltimer.TransitionExerciseAdvanced:
		return EventExerciseAdvance
	case intervaltimer.TransitionFinished:
		return EventFinished
	case intervaltimer.TransitionHalted:
		return EventStateChange
	}
	return EventProgress
}
