package presenter

import (
	"context"
	"testing"

	"boxtime/internal/core/intervaltimer"
	"boxtime/internal/core/model"
	"boxtime/internal/core/timekeeper"

	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

type recordingCues struct {
	played []Cue
}

func (cues *recordingCues) Play(cue Cue) {
	cues.played = append(cues.played, cue)
}

func newPresenter(t *testing.T, deps Dependencies) *Presenter {
	t.Helper()
	test.NewTempApp(t)
	presenter, err := New(deps)
	require.NoError(t, err)
	return presenter
}

func getString(t *testing.T, get func() (string, error)) string {
	t.Helper()
	value, err := get()
	require.NoError(t, err)
	return value
}

func getBool(t *testing.T, get func() (bool, error)) bool {
	t.Helper()
	value, err := get()
	require.NoError(t, err)
	return value
}

func runningSnapshot() intervaltimer.Snapshot {
	return intervaltimer.Snapshot{
		Status:           intervaltimer.StatusRunning,
		ExerciseIndex:    1,
		ExerciseCount:    3,
		Exercise:         model.Exercise{Name: "uppercut", Rounds: 4, WorkPhaseDuration: 60, RestPhaseDuration: 20},
		Phase:            model.PhaseRest,
		Round:            2,
		RoundsRemaining:  3,
		RemainingSeconds: 5,
		PhaseSeconds:     20,
		Running:          true,
		HasNext:          true,
		HasPrevious:      true,
	}
}

func TestNew_EmptyState(t *testing.T) {
	presenter := newPresenter(t, Dependencies{})

	assert.Equal(t, "00:00", getString(t, presenter.Remaining().Get))
	assert.Equal(t, "nothing loaded", presenter.Summary())
	assert.True(t, getBool(t, presenter.ShowAds().Get))
	assert.False(t, getBool(t, presenter.HistoryAvailable().Get))
}

func TestApply_RendersSnapshot(t *testing.T) {
	presenter := newPresenter(t, Dependencies{Entitlement: StaticEntitlement(true)})

	require.NoError(t, presenter.Apply(timekeeper.Event{
		Type:     timekeeper.EventProgress,
		Snapshot: runningSnapshot(),
	}))

	assert.Equal(t, "00:05", getString(t, presenter.Remaining().Get))
	assert.Equal(t, "Rest", getString(t, presenter.Phase().Get))
	assert.Equal(t, "Round 2 / 4", getString(t, presenter.Round().Get))
	assert.Equal(t, "uppercut", getString(t, presenter.Exercise().Get))
	assert.Equal(t, "2 / 3", getString(t, presenter.Position().Get))
	assert.True(t, getBool(t, presenter.Running().Get))
	assert.False(t, getBool(t, presenter.Finished().Get))
	assert.True(t, getBool(t, presenter.HasNext().Get))
	assert.True(t, getBool(t, presenter.HasPrevious().Get))
	assert.False(t, getBool(t, presenter.ShowAds().Get))
	assert.True(t, getBool(t, presenter.HistoryAvailable().Get))

	progress, err := presenter.Progress().Get()
	require.NoError(t, err)
	assert.InDelta(t, 0.75, progress, 0.0001)

	assert.Equal(t, "00:05  Rest     Round 2 / 4  uppercut  [2 / 3]", presenter.Summary())
}

func TestApply_Finished(t *testing.T) {
	presenter := newPresenter(t, Dependencies{})

	require.NoError(t, presenter.Apply(timekeeper.Event{
		Type: timekeeper.EventFinished,
		Snapshot: intervaltimer.Snapshot{
			Status:        intervaltimer.StatusFinished,
			ExerciseCount: 1,
			Exercise:      model.Exercise{Name: "bag", Rounds: 2},
			Finished:      true,
		},
	}))

	assert.Equal(t, "Finished", getString(t, presenter.Phase().Get))
	assert.Equal(t, "", getString(t, presenter.Round().Get))
	assert.True(t, getBool(t, presenter.Finished().Get))
}

func TestApply_PlaysCues(t *testing.T) {
	cues := &recordingCues{}
	presenter := newPresenter(t, Dependencies{Cues: cues, SoundEnabled: true})

	for _, eventType := range []timekeeper.EventType{
		timekeeper.EventStateChange,
		timekeeper.EventProgress,
		timekeeper.EventPhaseChange,
		timekeeper.EventRoundComplete,
		timekeeper.EventExerciseAdvance,
		timekeeper.EventFinished,
	} {
		require.NoError(t, presenter.Apply(timekeeper.Event{Type: eventType, Snapshot: runningSnapshot()}))
	}

	assert.Equal(t, []Cue{CuePhase, CuePhase, CueExercise, CueFinished}, cues.played)
}

func TestApply_SoundDisabled(t *testing.T) {
	cues := &recordingCues{}
	presenter := newPresenter(t, Dependencies{Cues: cues, SoundEnabled: false})

	require.NoError(t, presenter.Apply(timekeeper.Event{Type: timekeeper.EventFinished}))

	assert.Empty(t, cues.played)
}

func TestWatch_AppliesUntilClosed(t *testing.T) {
	presenter := newPresenter(t, Dependencies{})
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	events := make(chan timekeeper.Event, 2)
	events <- timekeeper.Event{Type: timekeeper.EventProgress, Snapshot: runningSnapshot()}
	close(events)

	require.NoError(t, presenter.Watch(context.Background(), events))
	assert.Equal(t, "uppercut", getString(t, presenter.Exercise().Get))
}

func TestWatch_StopsOnCancel(t *testing.T) {
	presenter := newPresenter(t, Dependencies{})
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- presenter.Watch(ctx, make(chan timekeeper.Event))
	}()

	cancel()
	assert.ErrorIs(t, <-done, context.Canceled)
}
