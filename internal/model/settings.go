package model

// Settings keeps desktop and display preferences. One record per profile,
// overwritten wholesale on every change.
type Settings struct {
	SoundEnabled bool   `json:"soundEnabled"`
	Scanlines    bool   `json:"scanlines"`
	Flicker      bool   `json:"flicker"`
	Grain        bool   `json:"grain"`
	Vignette     bool   `json:"vignette"`
	Wallpaper    string `json:"wallpaper"`
}

// DefaultSettings returns the preferences used on first load and as the
// base for imported settings.
func DefaultSettings() Settings {
	return Settings{
		SoundEnabled: false,
		Scanlines:    true,
		Flicker:      true,
		Grain:        true,
		Vignette:     true,
		Wallpaper:    "bg.jpg",
	}
}
