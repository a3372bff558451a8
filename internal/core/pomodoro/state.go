package pomodoro

import (
	"time"

	"overfocus/internal/core/model"
)

// Stage is the current phase of the pomodoro cycle.
type Stage string

const (
	StageWork       Stage = "work"
	StageShortBreak Stage = "short_break"
	StageLongBreak  Stage = "long_break"
)

// Command is the single-slot mailbox from callers to the driver. The latest
// command wins; nothing is queued.
type Command string

const (
	CommandNone  Command = "none"
	CommandPause Command = "pause"
	CommandStop  Command = "stop"
)

// Snapshot is a consistent copy of the clock state.
type Snapshot struct {
	Stage     Stage
	Elapsed   int // seconds in the current stage
	Cycle     int
	Pomodoros int
	Command   Command
	Config    model.PomodoroConfig
}

// Duration returns the configured length of the current stage.
func (snapshot Snapshot) Duration() time.Duration {
	return stageDuration(snapshot.Config, snapshot.Stage)
}

// ElapsedDuration returns Elapsed as a time.Duration.
func (snapshot Snapshot) ElapsedDuration() time.Duration {
	return time.Duration(snapshot.Elapsed) * time.Second
}

// Remaining returns the time left in the current stage.
func (snapshot Snapshot) Remaining() time.Duration {
	return snapshot.Duration() - snapshot.ElapsedDuration()
}

// Round returns the one-based work interval within the current pomodoro.
func (snapshot Snapshot) Round() int {
	return snapshot.Cycle + 1
}

// Paused reports whether a pause is in effect.
func (snapshot Snapshot) Paused() bool {
	return snapshot.Command == CommandPause
}

// Stopped reports whether the clock was stopped.
func (snapshot Snapshot) Stopped() bool {
	return snapshot.Command == CommandStop
}

type state struct {
	stage     Stage
	elapsed   int
	cycle     int
	pomodoros int
	command   Command
}

func newState() state {
	return state{
		stage:   StageWork,
		command: CommandNone,
	}
}

// advance applies one tick. The transition fires on the tick that would
// bring elapsed up to the stage duration, so elapsed never reaches it.
func (s *state) advance(config model.PomodoroConfig) (from Stage, changed bool) {
	from = s.stage
	next := s.elapsed + 1
	if next < seconds(stageDuration(config, s.stage)) {
		s.elapsed = next
		return from, false
	}

	switch s.stage {
	case StageWork:
		if s.cycle >= config.LastCycle {
			s.stage = StageLongBreak
		} else {
			s.stage = StageShortBreak
		}
	case StageShortBreak:
		s.stage = StageWork
		s.cycle++
	case StageLongBreak:
		s.stage = StageWork
		s.cycle = 0
		s.pomodoros++
	}
	s.elapsed = 0
	return from, true
}

func (s *state) snapshot(config model.PomodoroConfig) Snapshot {
	return Snapshot{
		Stage:     s.stage,
		Elapsed:   s.elapsed,
		Cycle:     s.cycle,
		Pomodoros: s.pomodoros,
		Command:   s.command,
		Config:    config,
	}
}

func stageDuration(config model.PomodoroConfig, stage Stage) time.Duration {
	switch stage {
	case StageShortBreak:
		return config.ShortBreak
	case StageLongBreak:
		return config.LongBreak
	default:
		return config.Work
	}
}

func seconds(d time.Duration) int {
	return int(d / time.Second)
}
