package pomodoro

import (
	"errors"
	"sync"
	"testing"
	"time"

	wallclock "github.com/benbjohnson/clock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"overfocus/internal/core/model"
	"overfocus/internal/logbook"
)

const waitTimeout = 2 * time.Second

type harness struct {
	clock *Clock
	mock  *wallclock.Mock
	acks  chan Snapshot
	book  *logbook.Book
}

func startHarness(t *testing.T, config model.PomodoroConfig) *harness {
	t.Helper()
	h := &harness{
		mock: wallclock.NewMock(),
		acks: make(chan Snapshot),
		book: logbook.New(logbook.Config{}),
	}
	h.clock = Start(config, Options{
		Clock: h.mock,
		Sink:  h.book,
		OnTick: func(snapshot Snapshot) {
			h.acks <- snapshot
		},
	})
	t.Cleanup(func() {
		_ = h.clock.Stop()
		h.mock.Add(time.Second)
		select {
		case <-h.clock.Done():
		case <-time.After(waitTimeout):
			t.Error("driver did not exit")
		}
	})
	return h
}

// tick advances the mock clock by one interval and waits until the driver
// has handled the tick. It returns false if the driver exited instead.
func (h *harness) tick(t *testing.T) (Snapshot, bool) {
	t.Helper()
	h.mock.Add(time.Second)
	select {
	case snapshot := <-h.acks:
		return snapshot, true
	case <-h.clock.Done():
		return Snapshot{}, false
	case <-time.After(waitTimeout):
		require.FailNow(t, "driver did not acknowledge tick")
	}
	return Snapshot{}, false
}

func (h *harness) advance(t *testing.T, n int) Snapshot {
	t.Helper()
	var last Snapshot
	for i := 0; i < n; i++ {
		snapshot, ok := h.tick(t)
		require.True(t, ok, "driver exited after %d ticks", i)
		require.Less(t, snapshot.ElapsedDuration(), snapshot.Duration())
		require.LessOrEqual(t, snapshot.Cycle, snapshot.Config.LastCycle)
		last = snapshot
	}
	return last
}

func (h *harness) snapshot(t *testing.T) Snapshot {
	t.Helper()
	snapshot, err := h.clock.Snapshot()
	require.NoError(t, err)
	return snapshot
}

func messages(book *logbook.Book) []string {
	var out []string
	for _, entry := range book.Entries() {
		out = append(out, entry.Message)
	}
	return out
}

func TestStartInitialState(t *testing.T) {
	h := startHarness(t, model.DefaultPomodoroConfig())

	snapshot := h.snapshot(t)
	assert.Equal(t, StageWork, snapshot.Stage)
	assert.Equal(t, 0, snapshot.Elapsed)
	assert.Equal(t, 0, snapshot.Cycle)
	assert.Equal(t, 0, snapshot.Pomodoros)
	assert.Equal(t, CommandNone, snapshot.Command)
	assert.Equal(t, []string{"Pomodoro started!"}, messages(h.book))
}

func TestFullPomodoroCycle(t *testing.T) {
	h := startHarness(t, model.DefaultPomodoroConfig())

	snapshot := h.advance(t, 1500)
	assert.Equal(t, StageShortBreak, snapshot.Stage)
	assert.Equal(t, 0, snapshot.Elapsed)
	assert.Equal(t, 0, snapshot.Cycle)

	snapshot = h.advance(t, 300)
	assert.Equal(t, StageWork, snapshot.Stage)
	assert.Equal(t, 0, snapshot.Elapsed)
	assert.Equal(t, 1, snapshot.Cycle)

	snapshot = h.advance(t, 1500+300)
	assert.Equal(t, StageWork, snapshot.Stage)
	assert.Equal(t, 2, snapshot.Cycle)

	snapshot = h.advance(t, 1500)
	assert.Equal(t, StageLongBreak, snapshot.Stage)
	assert.Equal(t, 0, snapshot.Elapsed)
	assert.Equal(t, 2, snapshot.Cycle)
	assert.Equal(t, 0, snapshot.Pomodoros)

	snapshot = h.advance(t, 1800)
	assert.Equal(t, StageWork, snapshot.Stage)
	assert.Equal(t, 0, snapshot.Elapsed)
	assert.Equal(t, 0, snapshot.Cycle)
	assert.Equal(t, 1, snapshot.Pomodoros)

	assert.Equal(t, snapshot, h.snapshot(t))
}

func TestZeroConfigUsesDefaultSchedule(t *testing.T) {
	h := startHarness(t, model.PomodoroConfig{})
	assert.Equal(t, model.DefaultPomodoroConfig(), h.clock.Config())

	snapshot := h.advance(t, 1500)
	assert.Equal(t, StageShortBreak, snapshot.Stage)
	assert.Equal(t, 0, snapshot.Cycle)
	assert.Equal(t, 3, snapshot.Config.Rounds())
}

func TestTransitionFiresOnBoundaryTick(t *testing.T) {
	h := startHarness(t, model.DefaultPomodoroConfig())

	snapshot := h.advance(t, 1499)
	assert.Equal(t, StageWork, snapshot.Stage)
	assert.Equal(t, 1499, snapshot.Elapsed)

	snapshot = h.advance(t, 1)
	assert.Equal(t, StageShortBreak, snapshot.Stage)
	assert.Equal(t, 0, snapshot.Elapsed)
}

func TestPauseFreezesTime(t *testing.T) {
	h := startHarness(t, model.DefaultPomodoroConfig())

	before := h.advance(t, 42)
	require.NoError(t, h.clock.Pause())

	for _, k := range []int{1, 10, 500} {
		frozen := h.advance(t, k)
		assert.Equal(t, before.Stage, frozen.Stage)
		assert.Equal(t, before.Elapsed, frozen.Elapsed)
		assert.True(t, frozen.Paused())
	}

	require.NoError(t, h.clock.Resume())
	snapshot := h.advance(t, 1)
	assert.Equal(t, 43, snapshot.Elapsed)
	assert.Equal(t, CommandNone, snapshot.Command)
}

func TestPauseResumeWithoutTicks(t *testing.T) {
	h := startHarness(t, model.DefaultPomodoroConfig())
	h.advance(t, 1600)

	before := h.snapshot(t)
	require.NoError(t, h.clock.Pause())
	require.NoError(t, h.clock.Resume())

	assert.Equal(t, before, h.snapshot(t))
}

func TestCommandsAreIdempotent(t *testing.T) {
	h := startHarness(t, model.DefaultPomodoroConfig())
	events := h.clock.Subscribe(10)

	for i := 0; i < 3; i++ {
		require.NoError(t, h.clock.Pause())
	}
	assert.True(t, h.snapshot(t).Paused())

	for i := 0; i < 3; i++ {
		require.NoError(t, h.clock.Resume())
	}
	assert.False(t, h.snapshot(t).Paused())

	assert.Equal(t, []string{"Pomodoro started!", "Pomodoro paused", "Pomodoro resumed"}, messages(h.book))
	require.Len(t, events, 2)
	first := <-events
	assert.Equal(t, EventCommand, first.Type)
	assert.Equal(t, CommandPause, first.Command)
	second := <-events
	assert.Equal(t, CommandNone, second.Command)
}

func TestResumeWhenNotPausedIsNoop(t *testing.T) {
	h := startHarness(t, model.DefaultPomodoroConfig())
	h.advance(t, 5)

	require.NoError(t, h.clock.Resume())

	assert.Equal(t, 5, h.snapshot(t).Elapsed)
	assert.Equal(t, []string{"Pomodoro started!"}, messages(h.book))
}

func TestStopIsTerminal(t *testing.T) {
	h := startHarness(t, model.DefaultPomodoroConfig())
	events := h.clock.Subscribe(10)
	h.advance(t, 7)

	require.NoError(t, h.clock.Stop())
	require.NoError(t, h.clock.Stop())
	require.NoError(t, h.clock.Pause())
	require.NoError(t, h.clock.Resume())
	assert.True(t, h.snapshot(t).Stopped())

	_, ok := h.tick(t)
	assert.False(t, ok)

	select {
	case <-h.clock.Done():
	case <-time.After(waitTimeout):
		t.Fatal("driver did not exit")
	}

	snapshot := h.snapshot(t)
	assert.Equal(t, 7, snapshot.Elapsed)
	assert.True(t, snapshot.Stopped())
	require.NoError(t, h.clock.Pause())
	assert.True(t, h.snapshot(t).Stopped())

	var received []Event
	for event := range events {
		received = append(received, event)
	}
	require.Len(t, received, 1)
	assert.Equal(t, CommandStop, received[0].Command)

	_, open := <-h.clock.Subscribe(1)
	assert.False(t, open)
	assert.Equal(t, []string{"Pomodoro started!", "Pomodoro stopped"}, messages(h.book))
}

func TestStageChangeEvents(t *testing.T) {
	config := model.PomodoroConfig{
		Work:       3 * time.Second,
		ShortBreak: time.Second,
		LongBreak:  2 * time.Second,
		LastCycle:  1,
	}
	h := startHarness(t, config)
	events := h.clock.Subscribe(16)

	// work(3) short(1) work(3) long(2)
	h.advance(t, 9)

	var got []Stage
	for len(events) > 0 {
		event := <-events
		assert.Equal(t, EventStageChange, event.Type)
		got = append(got, event.Stage)
	}
	assert.Equal(t, []Stage{StageShortBreak, StageWork, StageLongBreak, StageWork}, got)

	snapshot := h.snapshot(t)
	assert.Equal(t, 1, snapshot.Pomodoros)
	assert.Contains(t, messages(h.book), "Pomodoro 1 complete, back to work")
}

func TestReadIsConsistent(t *testing.T) {
	h := startHarness(t, model.DefaultPomodoroConfig())
	h.advance(t, 1500+120)

	label, err := Read(h.clock, func(snapshot Snapshot) string {
		return string(snapshot.Stage) + "@" + snapshot.Remaining().String()
	})
	require.NoError(t, err)
	assert.Equal(t, "short_break@3m0s", label)
}

func TestPanicMakesEngineUnavailable(t *testing.T) {
	h := startHarness(t, model.DefaultPomodoroConfig())
	h.advance(t, 3)

	_, err := Read(h.clock, func(Snapshot) int {
		panic("reader crashed")
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrEngineUnavailable))
	assert.Contains(t, err.Error(), "reader crashed")

	assert.ErrorIs(t, h.clock.Pause(), ErrEngineUnavailable)
	assert.ErrorIs(t, h.clock.Resume(), ErrEngineUnavailable)
	assert.ErrorIs(t, h.clock.Stop(), ErrEngineUnavailable)
	_, err = h.clock.Snapshot()
	assert.ErrorIs(t, err, ErrEngineUnavailable)

	_, ok := h.tick(t)
	assert.False(t, ok)
	<-h.clock.Done()

	last, found := h.book.Last()
	require.True(t, found)
	assert.Equal(t, logbook.Error, last.Level)
	assert.Contains(t, last.Message, "pomodoro engine unavailable")
}

func TestConcurrentReadersWithSystemClock(t *testing.T) {
	config := model.PomodoroConfig{
		Work:       3 * time.Second,
		ShortBreak: time.Second,
		LongBreak:  2 * time.Second,
		LastCycle:  2,
	}
	clock := Start(config, Options{TickInterval: time.Millisecond})

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			pomodoros := 0
			for j := 0; j < 200; j++ {
				snapshot, err := clock.Snapshot()
				if !assert.NoError(t, err) {
					return
				}
				assert.Less(t, snapshot.ElapsedDuration(), snapshot.Duration())
				assert.GreaterOrEqual(t, snapshot.Pomodoros, pomodoros)
				pomodoros = snapshot.Pomodoros
				if i == 0 && j%50 == 0 {
					assert.NoError(t, clock.Pause())
					assert.NoError(t, clock.Resume())
				}
				time.Sleep(100 * time.Microsecond)
			}
		}(i)
	}
	wg.Wait()

	require.NoError(t, clock.Stop())
	assert.Eventually(t, func() bool {
		select {
		case <-clock.Done():
			return true
		default:
			return false
		}
	}, waitTimeout, 5*time.Millisecond)
}
