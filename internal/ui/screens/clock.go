package screens

import (
	"fmt"

	"overfocus/internal/core/pomodoro"
	"overfocus/internal/logbook"
	"overfocus/internal/ui/input"
)

const (
	pauseOption = 0
	stopOption  = 1
)

// ClockScreen shows a running clock and lets the user pause, resume or stop
// it.
type ClockScreen struct {
	clock *pomodoro.Clock
	log   *logbook.Book
	menu  *input.Menu
	last  pomodoro.Snapshot
}

// NewClockScreen creates a screen bound to clock. Command failures are
// recorded in book.
func NewClockScreen(clock *pomodoro.Clock, book *logbook.Book) *ClockScreen {
	return &ClockScreen{
		clock: clock,
		log:   book,
		menu:  input.NewMenu("Pause", "Stop and exit"),
	}
}

// Clock returns the clock handle.
func (screen *ClockScreen) Clock() *pomodoro.Clock {
	return screen.clock
}

// Title implements Screen.
func (screen *ClockScreen) Title() string {
	return " [ Pomodoro ] "
}

// Pomodoros returns the pomodoros completed so far. When the clock is
// unavailable the count from the last good frame is used.
func (screen *ClockScreen) Pomodoros() int {
	if snapshot, err := screen.clock.Snapshot(); err == nil {
		screen.last = snapshot
	}
	return screen.last.Pomodoros
}

// TogglePause pauses a running clock or resumes a paused one.
func (screen *ClockScreen) TogglePause() {
	snapshot, err := screen.clock.Snapshot()
	if screen.log.Check(err) {
		return
	}
	if snapshot.Paused() {
		screen.log.Check(screen.clock.Resume())
	} else {
		screen.log.Check(screen.clock.Pause())
	}
}

// Stop stops the clock.
func (screen *ClockScreen) Stop() {
	screen.log.Check(screen.clock.Stop())
}

// Handle implements Screen.
func (screen *ClockScreen) Handle(in *input.Input) {
	selected, activated := screen.menu.Handle(in)
	if !activated {
		return
	}
	switch selected {
	case pauseOption:
		screen.TogglePause()
	case stopOption:
		screen.Stop()
		in.GoTo(input.TargetPopStack)
	}
}

// Lines implements Screen.
func (screen *ClockScreen) Lines() []Line {
	snapshot, err := screen.clock.Snapshot()
	if err != nil {
		lines := textLines(fmt.Sprintf("Pomodoros: %d", screen.last.Pomodoros), "Stage: unavailable", "", "")
		return append(lines, menuLines(screen.menu)...)
	}
	screen.last = snapshot

	if snapshot.Paused() {
		screen.menu.Options[pauseOption] = "Resume"
	} else {
		screen.menu.Options[pauseOption] = "Pause"
	}

	lines := textLines(
		fmt.Sprintf("Pomodoros: %d", snapshot.Pomodoros),
		fmt.Sprintf("Stage: %s", StageLabel(snapshot)),
		fmt.Sprintf("Elapsed: (%s)", FormatElapsed(snapshot.Elapsed)),
		"",
	)
	return append(lines, menuLines(screen.menu)...)
}

// StageLabel describes the stage of snapshot for display.
func StageLabel(snapshot pomodoro.Snapshot) string {
	rounds := snapshot.Config.Rounds()
	switch snapshot.Stage {
	case pomodoro.StageShortBreak:
		return fmt.Sprintf("Break (%d/%d)", snapshot.Round(), rounds)
	case pomodoro.StageLongBreak:
		return "Long Break"
	default:
		return fmt.Sprintf("Work (%d/%d)", snapshot.Round(), rounds)
	}
}

// Status is the one-line summary used by the tray.
func Status(snapshot pomodoro.Snapshot) string {
	status := fmt.Sprintf("%s, %s left", StageLabel(snapshot), FormatElapsed(int(snapshot.Remaining().Seconds())))
	if snapshot.Paused() {
		status += " (paused)"
	}
	return status
}
