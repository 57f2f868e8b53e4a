// Package sanitize normalizes raw user input before validation.
//
// Sanitization is best-effort and total: every function accepts any input
// and returns a normalized value, never an error. Rejection is the
// validation layer's job.
package sanitize

import (
	"strings"
	"unicode"

	"github.com/anhdng/songngu/internal/domain"
)

// String trims the input, strips C0/C1 control characters and collapses
// internal whitespace runs to single spaces. Idempotent.
func String(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inSpace := false
	for _, r := range s {
		if isControl(r) {
			continue
		}
		if unicode.IsSpace(r) {
			inSpace = true
			continue
		}
		if inSpace && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inSpace = false
		b.WriteRune(r)
	}
	return b.String()
}

// isControl reports whether r is a C0 (U+0000–U+001F) or C1 (U+0080–U+009F)
// control character.
func isControl(r rune) bool {
	return r < 0x20 || r == 0x7F || (r >= 0x80 && r <= 0x9F)
}

// Color canonicalizes a 6-digit hex color to "#RRGGBB" with uppercase
// digits. A leading '#' is optional on input. Returns "" for anything that
// is not a 6-digit hex color.
func Color(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return ""
	}
	for _, r := range s {
		if !isHexDigit(r) {
			return ""
		}
	}
	return "#" + strings.ToUpper(s)
}

func isHexDigit(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// LanguageCode normalizes a raw language code to one of the supported
// locales. Returns "" for unsupported codes.
func LanguageCode(s string) domain.Language {
	lang, ok := domain.ParseLanguage(strings.ToLower(strings.TrimSpace(s)))
	if !ok {
		return ""
	}
	return lang
}

// Text sanitizes both locales of a bilingual field.
func Text(t domain.BilingualText) domain.BilingualText {
	return domain.BilingualText{
		Vi: String(t.Vi),
		En: String(t.En),
	}
}

// Settings coerces an untyped partial settings object into a SettingsPatch.
//
// Fields that fail type or format coercion are dropped, not defaulted:
// this is deliberate best-effort recovery, distinct from validation's
// reject policy. Used when recovering partially corrupted settings.
func Settings(raw map[string]any) domain.SettingsPatch {
	var patch domain.SettingsPatch

	if v, ok := raw["defaultLanguage"].(string); ok {
		if lang := LanguageCode(v); lang != "" {
			patch.DefaultLanguage = &lang
		}
	}
	if v, ok := raw["defaultTheme"].(string); ok {
		if theme, ok := domain.ParseTheme(strings.ToLower(strings.TrimSpace(v))); ok {
			patch.DefaultTheme = &theme
		}
	}
	if v, ok := raw["maintenanceMode"].(bool); ok {
		patch.MaintenanceMode = &v
	}
	if v, ok := raw["colorPalette"].([]any); ok {
		palette := make([]string, 0, len(v))
		valid := true
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				valid = false
				break
			}
			c := Color(s)
			if c == "" {
				valid = false
				break
			}
			palette = append(palette, c)
		}
		// A palette with any invalid entry is dropped wholesale rather
		// than silently shortened.
		if valid {
			patch.ColorPalette = palette
		}
	}

	return patch
}
