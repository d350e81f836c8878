package presenter

import (
	"context"
	"errors"
	"fmt"

	"boxtime/internal/core/intervaltimer"
	"boxtime/internal/core/timekeeper"

	"fyne.io/fyne/v2/data/binding"
)

// Entitlement reports whether the user owns premium.
type Entitlement interface {
	HasPremium() bool
}

// StaticEntitlement is a fixed premium flag.
type StaticEntitlement bool

func (entitlement StaticEntitlement) HasPremium() bool { return bool(entitlement) }

// Cue identifies an audible signal.
type Cue int

const (
	CuePhase Cue = iota
	CueExercise
	CueFinished
)

// CuePlayer plays audible signals.
type CuePlayer interface {
	Play(cue Cue)
}

// Dependencies are the collaborators a Presenter renders with.
type Dependencies struct {
	Entitlement  Entitlement
	Cues         CuePlayer
	SoundEnabled bool
}

// Presenter mirrors timer state into data bindings for a view layer.
type Presenter struct {
	deps Dependencies

	remaining        binding.String
	phase            binding.String
	round            binding.String
	exercise         binding.String
	position         binding.String
	progress         binding.Float
	running          binding.Bool
	finished         binding.Bool
	hasNext          binding.Bool
	hasPrevious      binding.Bool
	showAds          binding.Bool
	historyAvailable binding.Bool
}

// New creates a Presenter with empty bindings. Bindings notify through the
// current fyne app, so one must be running (a headless one will do).
func New(deps Dependencies) (*Presenter, error) {
	if deps.Entitlement == nil {
		deps.Entitlement = StaticEntitlement(false)
	}
	presenter := &Presenter{
		deps:             deps,
		remaining:        binding.NewString(),
		phase:            binding.NewString(),
		round:            binding.NewString(),
		exercise:         binding.NewString(),
		position:         binding.NewString(),
		progress:         binding.NewFloat(),
		running:          binding.NewBool(),
		finished:         binding.NewBool(),
		hasNext:          binding.NewBool(),
		hasPrevious:      binding.NewBool(),
		showAds:          binding.NewBool(),
		historyAvailable: binding.NewBool(),
	}
	err := errors.Join(
		presenter.remaining.Set(intervaltimer.FormatRemaining(0)),
		presenter.RefreshEntitlement(),
	)
	if err != nil {
		return nil, fmt.Errorf("initialise bindings: %w", err)
	}
	return presenter, nil
}

func (presenter *Presenter) Remaining() binding.String      { return presenter.remaining }
func (presenter *Presenter) Phase() binding.String          { return presenter.phase }
func (presenter *Presenter) Round() binding.String          { return presenter.round }
func (presenter *Presenter) Exercise() binding.String       { return presenter.exercise }
func (presenter *Presenter) Position() binding.String       { return presenter.position }
func (presenter *Presenter) Progress() binding.Float        { return presenter.progress }
func (presenter *Presenter) Running() binding.Bool          { return presenter.running }
func (presenter *Presenter) Finished() binding.Bool         { return presenter.finished }
func (presenter *Presenter) HasNext() binding.Bool          { return presenter.hasNext }
func (presenter *Presenter) HasPrevious() binding.Bool      { return presenter.hasPrevious }
func (presenter *Presenter) ShowAds() binding.Bool          { return presenter.showAds }
func (presenter *Presenter) HistoryAvailable() binding.Bool { return presenter.historyAvailable }

// RefreshEntitlement re-reads the premium flag.
func (presenter *Presenter) RefreshEntitlement() error {
	premium := presenter.deps.Entitlement.HasPremium()
	return errors.Join(
		presenter.showAds.Set(!premium),
		presenter.historyAvailable.Set(premium),
	)
}

// Apply renders one timekeeper event.
func (presenter *Presenter) Apply(event timekeeper.Event) error {
	snapshot := event.Snapshot
	err := errors.Join(
		presenter.remaining.Set(snapshot.FormattedRemaining()),
		presenter.phase.Set(phaseText(snapshot)),
		presenter.round.Set(roundText(snapshot)),
		presenter.exercise.Set(snapshot.Exercise.Name),
		presenter.position.Set(positionText(snapshot)),
		presenter.progress.Set(snapshot.Progress()),
		presenter.running.Set(snapshot.Running),
		presenter.finished.Set(snapshot.Finished),
		presenter.hasNext.Set(snapshot.HasNext),
		presenter.hasPrevious.Set(snapshot.HasPrevious),
	)
	presenter.playCue(event.Type)
	return err
}

// Watch applies events until the channel closes or ctx ends.
func (presenter *Presenter) Watch(ctx context.Context, events <-chan timekeeper.Event) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-events:
			if !ok {
				return nil
			}
			if err := presenter.Apply(event); err != nil {
				return fmt.Errorf("apply %s event: %w", event.Type, err)
			}
		}
	}
}

// Summary renders the bound values as one status line.
func (presenter *Presenter) Summary() string {
	remaining, _ := presenter.remaining.Get()
	phase, _ := presenter.phase.Get()
	round, _ := presenter.round.Get()
	exercise, _ := presenter.exercise.Get()
	position, _ := presenter.position.Get()

	if phase == "" {
		return "nothing loaded"
	}
	return fmt.Sprintf("%s  %-8s %s  %s  [%s]", remaining, phase, round, exercise, position)
}

func (presenter *Presenter) playCue(eventType timekeeper.EventType) {
	if !presenter.deps.SoundEnabled || presenter.deps.Cues == nil {
		return
	}
	switch eventType {
	case timekeeper.EventPhaseChange, timekeeper.EventRoundComplete:
		presenter.deps.Cues.Play(CuePhase)
	case timekeeper.EventExerciseAdvance:
		presenter.deps.Cues.Play(CueExercise)
	case timekeeper.EventFinished:
		presenter.deps.Cues.Play(CueFinished)
	}
}

func phaseText(snapshot intervaltimer.Snapshot) string {
	switch snapshot.Status {
	case intervaltimer.StatusIdle:
		return ""
	case intervaltimer.StatusFinished:
		return "Finished"
	}
	return snapshot.Phase.Label()
}

func roundText(snapshot intervaltimer.Snapshot) string {
	if snapshot.Status == intervaltimer.StatusIdle || snapshot.Finished {
		return ""
	}
	return fmt.Sprintf("Round %d / %d", snapshot.Round, snapshot.Exercise.Rounds)
}

func positionText(snapshot intervaltimer.Snapshot) string {
	if snapshot.ExerciseCount == 0 {
		return ""
	}
	return fmt.Sprintf("%d / %d", snapshot.ExerciseIndex+1, snapshot.ExerciseCount)
}
