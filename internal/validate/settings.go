package validate

import (
	"fmt"

	"github.com/anhdng/songngu/internal/domain"
	"github.com/anhdng/songngu/internal/sanitize"
)

// Settings validates the system settings.
//
// The palette cardinality bounds are checked before per-element format
// checks, so an empty palette reports one clear error rather than nothing.
// Duplicate detection is case-insensitive: colors are canonicalized to
// uppercase hex before comparison, and the sanitized settings carry the
// canonical form.
func Settings(s domain.SystemSettings) (domain.SystemSettings, Result) {
	res := okResult()

	if _, ok := domain.ParseLanguage(string(s.DefaultLanguage)); !ok {
		res.fail("defaultLanguage", "Default language must be vi or en")
	}
	if _, ok := domain.ParseTheme(string(s.DefaultTheme)); !ok {
		res.fail("defaultTheme", "Default theme must be light or dark")
	}

	switch {
	case len(s.ColorPalette) < domain.MinPaletteColors:
		res.fail("colorPalette", "Color palette needs at least %d colors", domain.MinPaletteColors)
	case len(s.ColorPalette) > domain.MaxPaletteColors:
		res.fail("colorPalette", "Color palette allows at most %d colors", domain.MaxPaletteColors)
	default:
		seen := make(map[string]int, len(s.ColorPalette))
		for i, raw := range s.ColorPalette {
			c := sanitize.Color(raw)
			if c == "" {
				res.fail(fmt.Sprintf("colorPalette.%d", i), "%q is not a 6-digit hex color", raw)
				continue
			}
			if first, dup := seen[c]; dup {
				res.fail(fmt.Sprintf("colorPalette.%d", i), "%s duplicates color %d", c, first)
				continue
			}
			seen[c] = i
			s.ColorPalette[i] = c
		}
	}

	return s, res
}
