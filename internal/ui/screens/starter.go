package screens

import (
	"fmt"

	"overfocus/internal/ui/input"
)

// Stats summarizes the pomodoros completed by clocks run in this process.
type Stats struct {
	Max int
	Cur int
	Avg int
}

// Starter is the first screen. It starts a clock or exits.
type Starter struct {
	menu     *input.Menu
	sessions []int
}

// NewStarter creates the starter screen.
func NewStarter() *Starter {
	return &Starter{menu: input.NewMenu("Start", "Exit")}
}

// Title implements Screen.
func (starter *Starter) Title() string {
	return " [ Pomodoro ] "
}

// Record adds the result of a finished clock to the stats.
func (starter *Starter) Record(pomodoros int) {
	starter.sessions = append(starter.sessions, pomodoros)
}

// Stats returns the session statistics.
func (starter *Starter) Stats() Stats {
	var stats Stats
	if len(starter.sessions) == 0 {
		return stats
	}
	total := 0
	for _, pomodoros := range starter.sessions {
		total += pomodoros
		if pomodoros > stats.Max {
			stats.Max = pomodoros
		}
	}
	stats.Cur = starter.sessions[len(starter.sessions)-1]
	stats.Avg = total / len(starter.sessions)
	return stats
}

// Handle implements Screen.
func (starter *Starter) Handle(in *input.Input) {
	selected, activated := starter.menu.Handle(in)
	if !activated {
		return
	}
	if selected == 0 {
		in.GoTo(input.TargetPomodoro)
	} else {
		in.GoTo(input.TargetQuit)
	}
}

// Lines implements Screen.
func (starter *Starter) Lines() []Line {
	stats := starter.Stats()
	lines := textLines(
		fmt.Sprintf("Max: %d", stats.Max),
		fmt.Sprintf("Cur: %d", stats.Cur),
		fmt.Sprintf("Avg: %d", stats.Avg),
		"",
	)
	return append(lines, menuLines(starter.menu)...)
}
