package screens

import (
	"overfocus/internal/core/pomodoro"
	"overfocus/internal/logbook"
	"overfocus/internal/ui/input"
)

// Config wires a Navigator to the rest of the application.
type Config struct {
	// StartClock creates a new running clock.
	StartClock func() *pomodoro.Clock
	Log        *logbook.Book
	// OnQuit is called when the user asks to leave the application.
	OnQuit func()
	// OnClockChange is called after a clock screen is pushed or popped.
	// clock is nil after a pop.
	OnClockChange func(clock *pomodoro.Clock)
}

// Navigator is the screen stack. The starter screen is always at the
// bottom.
type Navigator struct {
	config  Config
	starter *Starter
	stack   []Screen
}

// NewNavigator creates a stack holding the starter screen.
func NewNavigator(config Config) *Navigator {
	if config.Log == nil {
		config.Log = logbook.New(logbook.Config{})
	}
	starter := NewStarter()
	return &Navigator{
		config:  config,
		starter: starter,
		stack:   []Screen{starter},
	}
}

// Top returns the visible screen.
func (nav *Navigator) Top() Screen {
	return nav.stack[len(nav.stack)-1]
}

// Starter returns the bottom screen.
func (nav *Navigator) Starter() *Starter {
	return nav.starter
}

// Dispatch hands one frame of input to the visible screen and follows any
// redirection it produced.
func (nav *Navigator) Dispatch(in input.Input) {
	nav.Top().Handle(&in)
	if in.Symbol != input.Goto {
		return
	}
	switch in.Target {
	case input.TargetPomodoro:
		nav.OpenClock()
	case input.TargetPopStack:
		nav.pop()
	case input.TargetQuit:
		nav.Quit()
	}
}

// ClockScreen returns the clock screen when one is open.
func (nav *Navigator) ClockScreen() (*ClockScreen, bool) {
	screen, ok := nav.Top().(*ClockScreen)
	return screen, ok
}

// OpenClock starts a clock and shows it. It does nothing when a clock is
// already shown.
func (nav *Navigator) OpenClock() {
	if _, ok := nav.ClockScreen(); ok {
		return
	}
	if nav.config.StartClock == nil {
		nav.config.Log.Warn("no clock available")
		return
	}
	clock := nav.config.StartClock()
	nav.stack = append(nav.stack, NewClockScreen(clock, nav.config.Log))
	if nav.config.OnClockChange != nil {
		nav.config.OnClockChange(clock)
	}
}

// TogglePause pauses or resumes the shown clock.
func (nav *Navigator) TogglePause() {
	if screen, ok := nav.ClockScreen(); ok {
		screen.TogglePause()
	}
}

// CloseClock stops the shown clock and returns to the starter screen.
func (nav *Navigator) CloseClock() {
	screen, ok := nav.ClockScreen()
	if !ok {
		return
	}
	screen.Stop()
	nav.pop()
}

// Quit stops any running clock and calls OnQuit.
func (nav *Navigator) Quit() {
	nav.CloseClock()
	if nav.config.OnQuit != nil {
		nav.config.OnQuit()
	}
}

func (nav *Navigator) pop() {
	if len(nav.stack) == 1 {
		return
	}
	top := nav.Top()
	nav.stack = nav.stack[:len(nav.stack)-1]

	screen, ok := top.(*ClockScreen)
	if !ok {
		return
	}
	nav.starter.Record(screen.Pomodoros())
	if nav.config.OnClockChange != nil {
		nav.config.OnClockChange(nil)
	}
}
