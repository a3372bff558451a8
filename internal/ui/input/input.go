// Package input turns keyboard events into the small set of symbols the
// screens understand and carries them through a single frame.
package input

import "fyne.io/fyne/v2"

// Symbol is an abstract input.
type Symbol int

const (
	None Symbol = iota
	Up
	Down
	Left
	Right
	Enter

	// Goto redirects to another part of the UI, see Target.
	Goto
	// Consumed marks input already handled during this frame.
	Consumed
)

// Target is where a Goto input leads.
type Target int

const (
	TargetNone Target = iota
	TargetPomodoro
	TargetPopStack
	TargetQuit
)

// Input is the input of one frame. Screens consume it at most once.
type Input struct {
	Symbol Symbol
	Target Target
}

// FromKey maps a key to an input. Unknown keys yield None.
func FromKey(key fyne.KeyName) Input {
	switch key {
	case fyne.KeyUp, fyne.KeyK:
		return Input{Symbol: Up}
	case fyne.KeyDown, fyne.KeyJ:
		return Input{Symbol: Down}
	case fyne.KeyLeft, fyne.KeyH:
		return Input{Symbol: Left}
	case fyne.KeyRight, fyne.KeyL:
		return Input{Symbol: Right}
	case fyne.KeyTab, fyne.KeyReturn, fyne.KeyEnter, fyne.KeySpace:
		return Input{Symbol: Enter}
	default:
		return Input{}
	}
}

// Consume runs fn and marks the input consumed when it carries symbol.
// fn may redirect the input with GoTo.
func (in *Input) Consume(symbol Symbol, fn func(in *Input)) bool {
	if in.Symbol != symbol {
		return false
	}
	in.Symbol = Consumed
	if fn != nil {
		fn(in)
	}
	return true
}

// GoTo turns the input into a redirection.
func (in *Input) GoTo(target Target) {
	in.Symbol = Goto
	in.Target = target
}

// IsConsumed reports whether a screen already acted on the input.
func (in *Input) IsConsumed() bool {
	return in.Symbol == Goto || in.Symbol == Consumed
}
