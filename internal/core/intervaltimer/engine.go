package intervaltimer

import "boxtime/internal/core/model"

// Options tunes progression between exercises.
type Options struct {
	// AutoContinue keeps the engine running into the next exercise when one
	// completes. When false the engine stops Ready on the next exercise.
	AutoContinue bool
}

// Engine is the interval timer state machine. It is not safe for concurrent
// use; the owner serialises every call, including Tick.
type Engine struct {
	options    Options
	exercises  []model.Exercise
	index      int
	phase      model.Phase
	round      int
	roundsLeft int
	remaining  int
	running    bool
	finished   bool
}

// New creates an idle Engine.
func New(options Options) *Engine {
	return &Engine{options: options, index: -1}
}

// Load replaces the run with exercises and resets all progression.
// Negative values are clamped to 0. An empty list leaves the engine Idle.
func (engine *Engine) Load(exercises []model.Exercise) Status {
	engine.running = false
	engine.finished = false
	engine.phase = model.PhaseWork
	engine.round = 0

	if len(exercises) == 0 {
		engine.exercises = nil
		engine.index = -1
		engine.roundsLeft = 0
		engine.remaining = 0
		return StatusIdle
	}

	engine.exercises = make([]model.Exercise, len(exercises))
	for i, exercise := range exercises {
		engine.exercises[i] = exercise.Sanitized()
	}
	engine.configure(0)
	return engine.Status()
}

// Start begins ticking. It returns false when nothing can run: no exercises
// loaded, the run already finished, no rounds left, or a zero-length phase.
func (engine *Engine) Start() bool {
	if engine.index < 0 || engine.finished {
		return false
	}
	if engine.running {
		return true
	}
	if engine.roundsLeft <= 0 {
		return false
	}
	if engine.remaining == 0 {
		engine.remaining = engine.current().PhaseDuration(engine.phase)
	}
	if engine.remaining == 0 {
		return false
	}
	if engine.round == 0 {
		engine.round = 1
	}
	engine.running = true
	return true
}

// Tick advances the countdown by one second. Calls while not running are ignored.
func (engine *Engine) Tick() Transition {
	if !engine.running {
		return TransitionNone
	}
	if engine.remaining <= 0 || engine.roundsLeft <= 0 {
		engine.running = false
		return TransitionHalted
	}

	engine.remaining--
	if engine.remaining > 0 {
		return TransitionNone
	}
	return engine.switchPhase()
}

// Pause stops ticking and keeps the remaining time.
func (engine *Engine) Pause() {
	engine.running = false
}

// Reset stops ticking and restores the current exercise to its first Work phase.
func (engine *Engine) Reset() {
	engine.running = false
	if engine.index < 0 {
		return
	}
	engine.configure(engine.index)
}

// SkipToNext moves to the next exercise. It is rejected while running.
func (engine *Engine) SkipToNext() bool {
	if engine.running || !engine.HasNextExercise() {
		return false
	}
	engine.configure(engine.index + 1)
	return true
}

// BackToPrevious moves to the previous exercise. It is rejected while running.
func (engine *Engine) BackToPrevious() bool {
	if engine.running || !engine.HasPreviousExercise() {
		return false
	}
	engine.configure(engine.index - 1)
	return true
}

func (engine *Engine) HasNextExercise() bool {
	return engine.index >= 0 && engine.index+1 < len(engine.exercises)
}

func (engine *Engine) HasPreviousExercise() bool {
	return engine.index > 0
}

// Status derives the lifecycle state.
func (engine *Engine) Status() Status {
	switch {
	case engine.index < 0:
		return StatusIdle
	case engine.finished:
		return StatusFinished
	case engine.running:
		return StatusRunning
	}
	return StatusReady
}

func (engine *Engine) RemainingSeconds() int    { return engine.remaining }
func (engine *Engine) ActivePhase() model.Phase { return engine.phase }
func (engine *Engine) CurrentRound() int        { return engine.round }
func (engine *Engine) RoundsRemaining() int     { return engine.roundsLeft }
func (engine *Engine) IsRunning() bool          { return engine.running }
func (engine *Engine) IsFinished() bool         { return engine.finished }

// CurrentExerciseIndex returns -1 when nothing is loaded.
func (engine *Engine) CurrentExerciseIndex() int { return engine.index }

// FormattedRemaining returns the remaining time as mm:ss.
func (engine *Engine) FormattedRemaining() string {
	return FormatRemaining(engine.remaining)
}

// Snapshot copies the observable state.
func (engine *Engine) Snapshot() Snapshot {
	snapshot := Snapshot{
		Status:           engine.Status(),
		ExerciseIndex:    engine.index,
		ExerciseCount:    len(engine.exercises),
		Phase:            engine.phase,
		Round:            engine.round,
		RoundsRemaining:  engine.roundsLeft,
		RemainingSeconds: engine.remaining,
		Running:          engine.running,
		Finished:         engine.finished,
		HasNext:          engine.HasNextExercise(),
		HasPrevious:      engine.HasPreviousExercise(),
	}
	if engine.index >= 0 {
		snapshot.Exercise = engine.current()
		if !engine.finished {
			snapshot.PhaseSeconds = snapshot.Exercise.PhaseDuration(engine.phase)
		}
	}
	return snapshot
}

func (engine *Engine) current() model.Exercise {
	return engine.exercises[engine.index]
}

func (engine *Engine) configure(index int) {
	exercise := engine.exercises[index]
	engine.index = index
	engine.phase = model.PhaseWork
	engine.round = 0
	engine.roundsLeft = exercise.Rounds
	engine.remaining = exercise.WorkPhaseDuration
	engine.finished = false
}

// switchPhase runs when the countdown reaches 0. Zero-length phases reached
// while still running are passed through on the same tick; the most
// significant transition is reported.
func (engine *Engine) switchPhase() Transition {
	transition := engine.nextPhase()
	for engine.running && (engine.remaining == 0 || engine.roundsLeft <= 0) {
		if engine.current().TotalSeconds() == 0 {
			engine.roundsLeft = 0
		}
		transition = max(transition, engine.nextPhase())
	}
	return transition
}

func (engine *Engine) nextPhase() Transition {
	if engine.roundsLeft <= 0 {
		return engine.advanceOrFinish()
	}
	exercise := engine.current()
	if engine.phase == model.PhaseWork && exercise.RestPhaseDuration > 0 {
		engine.phase = model.PhaseRest
		engine.remaining = exercise.RestPhaseDuration
		return TransitionPhaseChanged
	}
	return engine.completeRound()
}

func (engine *Engine) completeRound() Transition {
	engine.roundsLeft--
	if engine.roundsLeft <= 0 {
		return engine.advanceOrFinish()
	}
	exercise := engine.current()
	engine.phase = model.PhaseWork
	engine.remaining = exercise.WorkPhaseDuration
	engine.round = min(engine.round+1, exercise.Rounds)
	return TransitionRoundCompleted
}

func (engine *Engine) advanceOrFinish() Transition {
	if engine.HasNextExercise() {
		engine.configure(engine.index + 1)
		if engine.options.AutoContinue {
			engine.round = 1
		} else {
			engine.running = false
		}
		return TransitionExerciseAdvanced
	}
	engine.running = false
	engine.finished = true
	engine.round = 0
	engine.remaining = 0
	return TransitionFinished
}
