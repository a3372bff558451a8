package input

// Menu is a vertical list of options with a cursor.
type Menu struct {
	Options  []string
	Selected int
}

// NewMenu creates a menu with the cursor on the first option.
func NewMenu(options ...string) *Menu {
	return &Menu{Options: options}
}

// Handle moves the cursor on Up and Down and reports the selected index
// when Enter is consumed.
func (menu *Menu) Handle(in *Input) (selected int, activated bool) {
	in.Consume(Up, func(*Input) {
		if menu.Selected > 0 {
			menu.Selected--
		}
	})
	in.Consume(Down, func(*Input) {
		if menu.Selected < len(menu.Options)-1 {
			menu.Selected++
		}
	})
	activated = in.Consume(Enter, nil)
	return menu.Selected, activated
}

// Label returns option i prefixed with the cursor marker.
func (menu *Menu) Label(i int) string {
	if i == menu.Selected {
		return ">" + menu.Options[i]
	}
	return "-" + menu.Options[i]
}
