package domain

// Theme identifies the default UI theme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme normalizes a raw theme value.
func ParseTheme(s string) (Theme, bool) {
	switch Theme(s) {
	case ThemeLight:
		return ThemeLight, true
	case ThemeDark:
		return ThemeDark, true
	default:
		return "", false
	}
}

// Color palette cardinality bounds.
const (
	MinPaletteColors = 4
	MaxPaletteColors = 16
)

// SystemSettings are the site-wide admin settings.
//
// ColorPalette holds 4 to 16 unique 6-digit hex colors. Uniqueness is
// case-insensitive: colors are canonicalized to uppercase before comparison.
type SystemSettings struct {
	DefaultLanguage Language `json:"defaultLanguage"`
	DefaultTheme    Theme    `json:"defaultTheme"`
	ColorPalette    []string `json:"colorPalette"`
	MaintenanceMode bool     `json:"maintenanceMode"`
}

// SettingsPatch is a partial settings update. Nil fields are "not provided".
// Produced by best-effort sanitization, where invalid fields are dropped
// rather than defaulted.
type SettingsPatch struct {
	DefaultLanguage *Language `json:"defaultLanguage,omitempty"`
	DefaultTheme    *Theme    `json:"defaultTheme,omitempty"`
	ColorPalette    []string  `json:"colorPalette,omitempty"`
	MaintenanceMode *bool     `json:"maintenanceMode,omitempty"`
}

// ApplyTo overlays the patch on top of s and returns the result.
func (p SettingsPatch) ApplyTo(s SystemSettings) SystemSettings {
	if p.DefaultLanguage != nil {
		s.DefaultLanguage = *p.DefaultLanguage
	}
	if p.DefaultTheme != nil {
		s.DefaultTheme = *p.DefaultTheme
	}
	if p.ColorPalette != nil {
		s.ColorPalette = p.ColorPalette
	}
	if p.MaintenanceMode != nil {
		s.MaintenanceMode = *p.MaintenanceMode
	}
	return s
}
