package intervaltimer

import "boxtime/internal/core/model"

// Status is the lifecycle state of an Engine.
type Status string

const (
	StatusIdle     Status = "idle"
	StatusReady    Status = "ready"
	StatusRunning  Status = "running"
	StatusFinished Status = "finished"
)

// Transition reports what a Tick changed beyond the countdown itself.
type Transition int

const (
	TransitionNone Transition = iota
	// TransitionPhaseChanged means Work handed over to Rest.
	TransitionPhaseChanged
	// TransitionRoundCompleted means a round ended and the next one began.
	TransitionRoundCompleted
	// TransitionExerciseAdvanced means the engine moved to the next exercise.
	TransitionExerciseAdvanced
	// TransitionFinished means the last exercise completed.
	TransitionFinished
	// TransitionHalted means the tick guard stopped a stuck configuration.
	TransitionHalted
)

func (transition Transition) String() string {
	switch transition {
	case TransitionPhaseChanged:
		return "phase_changed"
	case TransitionRoundCompleted:
		return "round_completed"
	case TransitionExerciseAdvanced:
		return "exercise_advanced"
	case TransitionFinished:
		return "finished"
	case TransitionHalted:
		return "halted"
	}
	return "none"
}

// Snapshot is a read-only copy of the run state.
type Snapshot struct {
	Status           Status
	ExerciseIndex    int
	ExerciseCount    int
	Exercise         model.Exercise
	Phase            model.Phase
	Round            int
	RoundsRemaining  int
	RemainingSeconds int
	PhaseSeconds     int
	Running          bool
	Finished         bool
	HasNext          bool
	HasPrevious      bool
}

// FormattedRemaining returns RemainingSeconds as mm:ss.
func (snapshot Snapshot) FormattedRemaining() string {
	return FormatRemaining(snapshot.RemainingSeconds)
}

// Progress returns how much of the current phase has elapsed, in [0, 1].
func (snapshot Snapshot) Progress() float64 {
	if snapshot.PhaseSeconds <= 0 {
		if snapshot.Finished {
			return 1
		}
		return 0
	}
	progress := float64(snapshot.PhaseSeconds-snapshot.RemainingSeconds) / float64(snapshot.PhaseSeconds)
	if progress < 0 {
		return 0
	}
	if progress > 1 {
		return 1
	}
	return progress
}
