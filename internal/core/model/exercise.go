package model

import (
	"errors"
	"fmt"
)

// ErrInvalidExercise indicates an exercise with negative rounds or durations.
var ErrInvalidExercise = errors.New("invalid exercise")

// Exercise is one named block of work/rest rounds. Durations are in seconds.
type Exercise struct {
	Name              string `yaml:"name"`
	Rounds            int    `yaml:"rounds"`
	WorkPhaseDuration int    `yaml:"work_seconds"`
	RestPhaseDuration int    `yaml:"rest_seconds"`
}

// TotalSeconds returns the configured length of all rounds.
func (exercise Exercise) TotalSeconds() int {
	rounds := exercise.Rounds
	if rounds < 0 {
		rounds = 0
	}
	return (exercise.WorkPhaseDuration + exercise.RestPhaseDuration) * rounds
}

// PhaseDuration returns the configured duration for phase.
func (exercise Exercise) PhaseDuration(phase Phase) int {
	if phase == PhaseRest {
		return exercise.RestPhaseDuration
	}
	return exercise.WorkPhaseDuration
}

// Sanitized returns a copy with negative values clamped to 0.
func (exercise Exercise) Sanitized() Exercise {
	exercise.Rounds = max(exercise.Rounds, 0)
	exercise.WorkPhaseDuration = max(exercise.WorkPhaseDuration, 0)
	exercise.RestPhaseDuration = max(exercise.RestPhaseDuration, 0)
	return exercise
}

// Validate rejects negative rounds or durations.
func (exercise Exercise) Validate() error {
	switch {
	case exercise.Rounds < 0:
		return fmt.Errorf("%w: %q rounds %d", ErrInvalidExercise, exercise.Name, exercise.Rounds)
	case exercise.WorkPhaseDuration < 0:
		return fmt.Errorf("%w: %q work duration %d", ErrInvalidExercise, exercise.Name, exercise.WorkPhaseDuration)
	case exercise.RestPhaseDuration < 0:
		return fmt.Errorf("%w: %q rest duration %d", ErrInvalidExercise, exercise.Name, exercise.RestPhaseDuration)
	}
	return nil
}
