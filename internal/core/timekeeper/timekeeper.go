package timekeeper

import (
	"crypto/rand"
	"io"
	"log"
	"sync"
	"time"

	"boxtime/internal/core/intervaltimer"
	"boxtime/internal/core/model"

	"github.com/oklog/ulid/v2"
)

// Config contains runtime options for TimeKeeper.
type Config struct {
	TickInterval time.Duration
	AutoContinue bool
}

// TimeKeeper drives an interval timer engine from a wall-clock ticker and
// fans its state out to subscribers.
type TimeKeeper struct {
	mu         sync.Mutex
	engine     *intervaltimer.Engine
	options    Config
	logger     *log.Logger
	entropy    io.Reader
	runID      string
	generation uint64
	events     []chan Event
	stopCh     chan struct{}
	doneCh     chan struct{}
	closed     bool
}

// New creates a TimeKeeper with nothing loaded.
func New(options Config, logger *log.Logger) *TimeKeeper {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	return &TimeKeeper{
		engine:  intervaltimer.New(intervaltimer.Options{AutoContinue: options.AutoContinue}),
		options: options,
		logger:  logger,
		entropy: ulid.Monotonic(rand.Reader, 0),
	}
}

// Subscribe registers a new observer channel. Slow observers miss events
// rather than blocking the ticker.
func (keeper *TimeKeeper) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed {
		close(ch)
		return ch
	}
	keeper.events = append(keeper.events, ch)
	return ch
}

// Load stops any running countdown, loads exercises and returns the new run ID.
func (keeper *TimeKeeper) Load(exercises []model.Exercise) string {
	keeper.mu.Lock()
	stop, done := keeper.detachTickerLocked()
	status := keeper.engine.Load(exercises)
	keeper.runID = ulid.MustNew(ulid.Timestamp(time.Now()), keeper.entropy).String()
	keeper.logger.Printf("run %s: loaded %d exercises (%s)", keeper.runID, len(exercises), status)
	keeper.emitLocked(Event{Type: EventStateChange, At: time.Now()})
	runID := keeper.runID
	keeper.mu.Unlock()

	waitTicker(stop, done)
	return runID
}

// Start begins or resumes the countdown. It returns false when the engine
// has nothing it can run.
func (keeper *TimeKeeper) Start() bool {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if keeper.closed {
		return false
	}

	if keeper.engine.IsRunning() && keeper.stopCh != nil {
		return true
	}
	if !keeper.engine.Start() {
		keeper.logger.Printf("run %s: start rejected (%s)", keeper.runID, keeper.engine.Status())
		return false
	}

	keeper.generation++
	keeper.stopCh = make(chan struct{})
	keeper.doneCh = make(chan struct{})
	go keeper.run(keeper.generation, keeper.stopCh, keeper.doneCh)

	keeper.emitLocked(Event{Type: EventStateChange, At: time.Now()})
	return true
}

// Pause freezes the countdown. No tick is applied after Pause returns.
func (keeper *TimeKeeper) Pause() {
	keeper.mu.Lock()
	keeper.engine.Pause()
	stop, done := keeper.detachTickerLocked()
	keeper.emitLocked(Event{Type: EventStateChange, At: time.Now()})
	keeper.mu.Unlock()

	waitTicker(stop, done)
}

// Reset stops the countdown and restores the current exercise.
func (keeper *TimeKeeper) Reset() {
	keeper.mu.Lock()
	keeper.engine.Reset()
	stop, done := keeper.detachTickerLocked()
	keeper.emitLocked(Event{Type: EventStateChange, At: time.Now()})
	keeper.mu.Unlock()

	waitTicker(stop, done)
}

// SkipToNext moves to the next exercise while stopped.
func (keeper *TimeKeeper) SkipToNext() bool {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if !keeper.engine.SkipToNext() {
		return false
	}
	keeper.emitLocked(Event{Type: EventStateChange, At: time.Now()})
	return true
}

// BackToPrevious moves to the previous exercise while stopped.
func (keeper *TimeKeeper) BackToPrevious() bool {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if !keeper.engine.BackToPrevious() {
		return false
	}
	keeper.emitLocked(Event{Type: EventStateChange, At: time.Now()})
	return true
}

// Snapshot returns the current engine state.
func (keeper *TimeKeeper) Snapshot() intervaltimer.Snapshot {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.engine.Snapshot()
}

// RunID returns the identifier assigned by the last Load.
func (keeper *TimeKeeper) RunID() string {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	return keeper.runID
}

// Close stops ticking and closes observers.
func (keeper *TimeKeeper) Close() {
	keeper.mu.Lock()
	if keeper.closed {
		keeper.mu.Unlock()
		return
	}
	keeper.closed = true
	keeper.engine.Pause()
	stop, done := keeper.detachTickerLocked()
	events := keeper.events
	keeper.events = nil
	keeper.mu.Unlock()

	waitTicker(stop, done)
	for _, ch := range events {
		close(ch)
	}
}

func (keeper *TimeKeeper) run(generation uint64, stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)
	ticker := time.NewTicker(keeper.options.TickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case tickTime := <-ticker.C:
			if !keeper.tick(generation, tickTime) {
				return
			}
		}
	}
}

// tick applies one engine tick and reports whether the ticker should continue.
func (keeper *TimeKeeper) tick(generation uint64, tickTime time.Time) bool {
	keeper.mu.Lock()
	defer keeper.mu.Unlock()
	if generation != keeper.generation {
		return false
	}

	transition := keeper.engine.Tick()
	if transition != intervaltimer.TransitionNone {
		keeper.logger.Printf("run %s: %s", keeper.runID, transition)
	}
	keeper.emitLocked(Event{
		Type:       eventTypeFor(transition),
		Transition: transition,
		At:         tickTime,
	})

	if keeper.engine.IsRunning() {
		return true
	}
	keeper.generation++
	keeper.stopCh = nil
	keeper.doneCh = nil
	return false
}

// detachTickerLocked invalidates the active ticker. The caller must hand the
// returned channels to waitTicker after releasing the lock.
func (keeper *TimeKeeper) detachTickerLocked() (chan struct{}, chan struct{}) {
	keeper.generation++
	stop, done := keeper.stopCh, keeper.doneCh
	keeper.stopCh = nil
	keeper.doneCh = nil
	return stop, done
}

func waitTicker(stop, done chan struct{}) {
	if stop == nil {
		return
	}
	close(stop)
	<-done
}

func (keeper *TimeKeeper) emitLocked(event Event) {
	event.RunID = keeper.runID
	event.Snapshot = keeper.engine.Snapshot()
	for _, ch := range keeper.events {
		select {
		case ch <- event:
		default:
		}
	}
}
