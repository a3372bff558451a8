package model

import "time"

// PomodoroConfig defines the length of every stage of the pomodoro cycle.
type PomodoroConfig struct {
	Work       time.Duration
	ShortBreak time.Duration
	LongBreak  time.Duration

	// LastCycle is the zero-based index of the work interval that is
	// followed by a long break instead of a short one.
	LastCycle int
}

// DefaultPomodoroConfig returns the classic 25/5/30 schedule with three
// work intervals per long break.
func DefaultPomodoroConfig() PomodoroConfig {
	return PomodoroConfig{
		Work:       25 * time.Minute,
		ShortBreak: 5 * time.Minute,
		LongBreak:  30 * time.Minute,
		LastCycle:  2,
	}
}

// Rounds returns the number of work intervals in one full pomodoro.
func (config PomodoroConfig) Rounds() int {
	return config.LastCycle + 1
}

// Normalized replaces unusable values with the defaults. Durations are
// truncated to whole seconds. The zero value means "no schedule given" and
// yields the full default schedule, LastCycle included; an explicit
// LastCycle of 0 is only honored alongside explicit durations.
func (config PomodoroConfig) Normalized() PomodoroConfig {
	defaults := DefaultPomodoroConfig()
	if config == (PomodoroConfig{}) {
		return defaults
	}
	config.Work = wholeSeconds(config.Work, defaults.Work)
	config.ShortBreak = wholeSeconds(config.ShortBreak, defaults.ShortBreak)
	config.LongBreak = wholeSeconds(config.LongBreak, defaults.LongBreak)
	if config.LastCycle < 0 {
		config.LastCycle = defaults.LastCycle
	}
	return config
}

func wholeSeconds(value, fallback time.Duration) time.Duration {
	value = value.Truncate(time.Second)
	if value < time.Second {
		return fallback
	}
	return value
}
