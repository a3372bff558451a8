// Package pomodoro implements the pomodoro clock: a work/break state
// machine advanced once per tick by a background driver and commanded
// concurrently by the UI.
package pomodoro

import (
	"errors"
	"fmt"
	"sync"
	"time"

	wallclock "github.com/benbjohnson/clock"

	"overfocus/internal/core/model"
	"overfocus/internal/logbook"
)

// ErrEngineUnavailable indicates the clock state can no longer be reached
// safely because a holder of the lock panicked.
var ErrEngineUnavailable = errors.New("pomodoro engine unavailable")

// Sink receives human-readable status lines.
type Sink interface {
	Record(level logbook.Level, message string)
}

// Options contains runtime options for a Clock.
type Options struct {
	TickInterval time.Duration
	Sink         Sink

	// Clock supplies the ticker. Defaults to the system clock; tests pass a
	// mock and advance it by hand.
	Clock wallclock.Clock

	// OnTick is called on the driver goroutine after every tick the driver
	// handled, paused ones included. It runs outside the lock.
	OnTick func(Snapshot)
}

// Clock is the shared handle to a running pomodoro. All methods are safe
// for concurrent use.
type Clock struct {
	mu      sync.Mutex
	config  model.PomodoroConfig
	options Options
	state   state
	failure error
	events  []chan Event
	closed  bool
	done    chan struct{}
}

// Start creates a clock in the initial Work stage and launches its driver.
// It returns immediately.
func Start(config model.PomodoroConfig, options Options) *Clock {
	if options.TickInterval <= 0 {
		options.TickInterval = time.Second
	}
	if options.Clock == nil {
		options.Clock = wallclock.New()
	}

	clock := &Clock{
		config:  config.Normalized(),
		options: options,
		state:   newState(),
		done:    make(chan struct{}),
	}
	clock.record(logbook.Info, "Pomodoro started!")

	ticker := options.Clock.Ticker(options.TickInterval)
	go clock.run(ticker)
	return clock
}

// Config returns the schedule the clock runs with.
func (clock *Clock) Config() model.PomodoroConfig {
	return clock.config
}

// Done is closed once the driver has exited.
func (clock *Clock) Done() <-chan struct{} {
	return clock.done
}

// Subscribe registers a new observer channel. The channel is closed when
// the driver exits. Events are dropped for subscribers that fall behind.
func (clock *Clock) Subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	clock.mu.Lock()
	defer clock.mu.Unlock()
	if clock.closed {
		close(ch)
		return ch
	}
	clock.events = append(clock.events, ch)
	return ch
}

// Pause freezes the clock at its current stage and elapsed time.
func (clock *Clock) Pause() error {
	return clock.command(CommandPause, func(current Command) bool {
		return current == CommandNone
	}, "Pomodoro paused")
}

// Resume continues a paused clock from where it stopped.
func (clock *Clock) Resume() error {
	return clock.command(CommandNone, func(current Command) bool {
		return current == CommandPause
	}, "Pomodoro resumed")
}

// Stop ends the clock. The driver exits on its next tick; there is no way
// back.
func (clock *Clock) Stop() error {
	return clock.command(CommandStop, func(current Command) bool {
		return current != CommandStop
	}, "Pomodoro stopped")
}

// Snapshot returns a consistent copy of the state.
func (clock *Clock) Snapshot() (Snapshot, error) {
	return Read(clock, func(snapshot Snapshot) Snapshot {
		return snapshot
	})
}

// Read runs fn under the clock lock and returns its result. It is the way
// to derive several values from one coherent state.
func Read[T any](clock *Clock, fn func(Snapshot) T) (T, error) {
	var result T
	err := clock.guard(func() {
		result = fn(clock.state.snapshot(clock.config))
	})
	return result, err
}

func (clock *Clock) command(next Command, applies func(Command) bool, message string) error {
	var event Event
	changed := false
	err := clock.guard(func() {
		if !applies(clock.state.command) {
			return
		}
		clock.state.command = next
		changed = true
		event = clock.eventLocked(EventCommand, clock.state.stage)
	})
	if err != nil || !changed {
		return err
	}

	clock.record(logbook.Info, message)
	clock.emit(event)
	return nil
}

// guard runs fn inside the exclusive-access window. A panic in fn leaves the
// clock permanently unavailable.
func (clock *Clock) guard(fn func()) (err error) {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	if clock.failure != nil {
		return clock.failure
	}
	defer func() {
		if r := recover(); r != nil {
			clock.failure = fmt.Errorf("%w: %v", ErrEngineUnavailable, r)
			err = clock.failure
		}
	}()
	fn()
	return nil
}

func (clock *Clock) run(ticker *wallclock.Ticker) {
	defer clock.finish()
	defer ticker.Stop()

	for range ticker.C {
		snapshot, running := clock.tick()
		if !running {
			return
		}
		if clock.options.OnTick != nil {
			clock.options.OnTick(snapshot)
		}
	}
}

func (clock *Clock) tick() (Snapshot, bool) {
	var (
		snapshot Snapshot
		event    Event
		changed  bool
		stopped  bool
	)
	err := clock.guard(func() {
		switch clock.state.command {
		case CommandStop:
			stopped = true
			return
		case CommandPause:
			snapshot = clock.state.snapshot(clock.config)
			return
		}

		var from Stage
		from, changed = clock.state.advance(clock.config)
		if changed {
			event = clock.eventLocked(EventStageChange, from)
		}
		snapshot = clock.state.snapshot(clock.config)
	})
	if err != nil {
		clock.record(logbook.Error, err.Error())
		clock.emit(Event{
			Type:    EventFailure,
			Message: err.Error(),
			At:      time.Now(),
		})
		return snapshot, false
	}
	if stopped {
		return snapshot, false
	}
	if changed {
		clock.record(logbook.Info, stageMessage(event))
		clock.emit(event)
	}
	return snapshot, true
}

func (clock *Clock) finish() {
	clock.mu.Lock()
	events := clock.events
	clock.events = nil
	clock.closed = true
	clock.mu.Unlock()

	for _, ch := range events {
		close(ch)
	}
	close(clock.done)
}

func (clock *Clock) eventLocked(eventType EventType, previous Stage) Event {
	return Event{
		Type:      eventType,
		Stage:     clock.state.stage,
		Previous:  previous,
		Command:   clock.state.command,
		Cycle:     clock.state.cycle,
		Pomodoros: clock.state.pomodoros,
		At:        time.Now(),
	}
}

// emit delivers without blocking. It holds the lock only so that finish
// cannot close a channel mid-send.
func (clock *Clock) emit(event Event) {
	clock.mu.Lock()
	defer clock.mu.Unlock()
	for _, ch := range clock.events {
		select {
		case ch <- event:
		default:
		}
	}
}

func (clock *Clock) record(level logbook.Level, message string) {
	if clock.options.Sink != nil {
		clock.options.Sink.Record(level, message)
	}
}

func stageMessage(event Event) string {
	switch event.Stage {
	case StageShortBreak:
		return "Time for a short break"
	case StageLongBreak:
		return "Time for a long break"
	}
	if event.Previous == StageLongBreak {
		return fmt.Sprintf("Pomodoro %d complete, back to work", event.Pomodoros)
	}
	return "Back to work"
}
