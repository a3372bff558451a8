package screens

import (
	"context"
	"image/color"
	"time"

	"overfocus/internal/logbook"
	"overfocus/internal/ui/input"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

const headerText = " Overfocus | Pomodoro "

var highlightColor = color.NRGBA{R: 232, G: 190, B: 66, A: 255}

// ViewConfig contains options for a View.
type ViewConfig struct {
	// OnFrame runs after every refresh, on the UI goroutine.
	OnFrame func()
}

// View renders the navigator's top screen into a window and feeds it key
// presses.
type View struct {
	window fyne.Window
	nav    *Navigator
	log    *logbook.Book
	config ViewConfig

	card   *widget.Card
	body   *fyne.Container
	status *canvas.Text
}

// NewView sets the window content and installs the key handler.
func NewView(window fyne.Window, nav *Navigator, book *logbook.Book, config ViewConfig) *View {
	header := canvas.NewText(headerText, theme.Color(theme.ColorNameForeground))
	header.Alignment = fyne.TextAlignCenter
	header.TextStyle = fyne.TextStyle{Bold: true}

	status := canvas.NewText("", theme.Color(theme.ColorNameForeground))
	status.TextStyle = fyne.TextStyle{Monospace: true}

	body := container.NewVBox()
	card := widget.NewCard("", "", body)

	view := &View{
		window: window,
		nav:    nav,
		log:    book,
		config: config,
		card:   card,
		body:   body,
		status: status,
	}

	window.SetContent(container.NewBorder(
		container.NewPadded(header),
		container.NewPadded(status),
		nil, nil,
		container.NewCenter(card),
	))
	window.Canvas().SetOnTypedKey(func(event *fyne.KeyEvent) {
		view.nav.Dispatch(input.FromKey(event.Name))
		view.Refresh()
	})

	view.Refresh()
	return view
}

// Refresh redraws the top screen and the status line. It must run on the
// UI goroutine.
func (view *View) Refresh() {
	screen := view.nav.Top()
	lines := screen.Lines()

	objects := make([]fyne.CanvasObject, 0, len(lines))
	for _, line := range lines {
		text := canvas.NewText(line.Text, lineColor(line.Style))
		text.TextStyle = fyne.TextStyle{Monospace: true}
		objects = append(objects, text)
	}
	view.card.SetTitle(screen.Title())
	view.body.Objects = objects
	view.body.Refresh()

	if entry, ok := view.log.Last(); ok {
		view.status.Text = entry.String()
		view.status.Color = levelColor(entry.Level)
	} else {
		view.status.Text = ""
	}
	view.status.Refresh()

	if view.config.OnFrame != nil {
		view.config.OnFrame()
	}
}

// Run refreshes the view every interval until ctx is done.
func (view *View) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				fyne.Do(view.Refresh)
			}
		}
	}()
}

// Texts returns the rendered body lines.
func (view *View) Texts() []string {
	texts := make([]string, 0, len(view.body.Objects))
	for _, object := range view.body.Objects {
		if text, ok := object.(*canvas.Text); ok {
			texts = append(texts, text.Text)
		}
	}
	return texts
}

// StatusText returns the rendered status line.
func (view *View) StatusText() string {
	return view.status.Text
}

func lineColor(style Style) color.Color {
	if style == StyleHighlight {
		return highlightColor
	}
	return theme.Color(theme.ColorNameForeground)
}

func levelColor(level logbook.Level) color.Color {
	switch level {
	case logbook.Warn:
		return theme.Color(theme.ColorNameWarning)
	case logbook.Error:
		return theme.Color(theme.ColorNameError)
	default:
		return theme.Color(theme.ColorNameForeground)
	}
}
