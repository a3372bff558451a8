package pomodoro

import "time"

// EventType defines the type of Clock event.
type EventType string

const (
	EventStageChange EventType = "stage_change"
	EventCommand     EventType = "command"
	EventFailure     EventType = "failure"
)

// Event represents a Clock update for observers.
type Event struct {
	Type      EventType
	Stage     Stage
	Previous  Stage
	Command   Command
	Cycle     int
	Pomodoros int
	Message   string
	At        time.Time
}
