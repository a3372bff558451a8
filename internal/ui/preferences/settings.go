package preferences

// Settings defines editable user preferences. Stage durations are fixed and
// deliberately absent.
type Settings struct {
	Notifications    bool
	StartImmediately bool
	ShowTray         bool
}

// DefaultSettings returns default settings for Overfocus.
func DefaultSettings() Settings {
	return Settings{
		Notifications:    true,
		StartImmediately: false,
		ShowTray:         true,
	}
}

