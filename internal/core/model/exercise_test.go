package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExercise_TotalSeconds(t *testing.T) {
	tests := []struct {
		name     string
		exercise Exercise
		want     int
	}{
		{"work and rest", Exercise{Rounds: 3, WorkPhaseDuration: 30, RestPhaseDuration: 10}, 120},
		{"work only", Exercise{Rounds: 2, WorkPhaseDuration: 45}, 90},
		{"no rounds", Exercise{Rounds: 0, WorkPhaseDuration: 30, RestPhaseDuration: 10}, 0},
		{"negative rounds count as zero", Exercise{Rounds: -2, WorkPhaseDuration: 30}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.exercise.TotalSeconds())
		})
	}
}

func TestExercise_Sanitized(t *testing.T) {
	exercise := Exercise{Name: "jab", Rounds: -1, WorkPhaseDuration: -5, RestPhaseDuration: 7}

	clean := exercise.Sanitized()

	assert.Equal(t, Exercise{Name: "jab", Rounds: 0, WorkPhaseDuration: 0, RestPhaseDuration: 7}, clean)
	assert.Equal(t, -1, exercise.Rounds, "original must not change")
}

func TestExercise_Validate(t *testing.T) {
	require.NoError(t, Exercise{Name: "ok", Rounds: 1, WorkPhaseDuration: 1}.Validate())

	err := Exercise{Name: "hook", Rounds: 1, RestPhaseDuration: -3}.Validate()
	require.ErrorIs(t, err, ErrInvalidExercise)
	assert.Contains(t, err.Error(), "rest duration")
}

func TestExercise_PhaseDuration(t *testing.T) {
	exercise := Exercise{WorkPhaseDuration: 20, RestPhaseDuration: 5}

	assert.Equal(t, 20, exercise.PhaseDuration(PhaseWork))
	assert.Equal(t, 5, exercise.PhaseDuration(PhaseRest))
}

func TestSession_Texts(t *testing.T) {
	session := Session{Exercises: []Exercise{
		{Rounds: 3, WorkPhaseDuration: 30, RestPhaseDuration: 10},
		{Rounds: 1, WorkPhaseDuration: 5},
	}}

	assert.Equal(t, 125, session.TotalSeconds())
	assert.Equal(t, "2:05 min", session.TotalTimeText())
	assert.Equal(t, "2 exercises", session.ExerciseCountText())

	single := Session{Exercises: session.Exercises[:1]}
	assert.Equal(t, "1 exercise", single.ExerciseCountText())
}

func TestSession_Validate(t *testing.T) {
	session := Session{Exercises: []Exercise{
		{Name: "a", Rounds: 1, WorkPhaseDuration: 1},
		{Name: "b", Rounds: -1},
	}}

	assert.ErrorIs(t, session.Validate(), ErrInvalidExercise)
}

func TestPhase_Strings(t *testing.T) {
	assert.Equal(t, "work", PhaseWork.String())
	assert.Equal(t, "rest", PhaseRest.String())
	assert.Equal(t, "Rest", PhaseRest.Label())
}
