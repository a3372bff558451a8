// Package screens holds the starter and running-clock screens, the stack
// that switches between them, and the window that renders the top one.
//
// Everything here runs on the UI goroutine. The clock engine is the only
// shared state and is reached through its handle.
package screens

import (
	"fmt"

	"overfocus/internal/ui/input"
)

// Style selects how a line is drawn.
type Style int

const (
	StyleRegular Style = iota
	StyleHighlight
)

// Line is one row of screen text.
type Line struct {
	Text  string
	Style Style
}

// Screen is a stackable view that reacts to input.
type Screen interface {
	Title() string
	Handle(in *input.Input)
	Lines() []Line
}

func menuLines(menu *input.Menu) []Line {
	lines := make([]Line, 0, len(menu.Options))
	for i := range menu.Options {
		style := StyleRegular
		if i == menu.Selected {
			style = StyleHighlight
		}
		lines = append(lines, Line{Text: menu.Label(i), Style: style})
	}
	return lines
}

func textLines(texts ...string) []Line {
	lines := make([]Line, 0, len(texts))
	for _, text := range texts {
		lines = append(lines, Line{Text: text})
	}
	return lines
}

// FormatElapsed renders seconds as m:ss.
func FormatElapsed(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%d:%02d", seconds/60, seconds%60)
}
