package transform

import (
	"fmt"

	"github.com/anhdng/songngu/internal/domain"
)

// Translations flattens every bilingual field of the snapshot into one flat
// translation table per language.
//
// List entities expand into index-suffixed keys ("services.0.title",
// "services.1.title", ...). Keys are positional, not content-addressed, so
// key generation order follows the source array order exactly.
func Translations(snap domain.Snapshot) map[domain.Language]map[string]string {
	tables := map[domain.Language]map[string]string{
		domain.LanguageVi: {},
		domain.LanguageEn: {},
	}

	put := func(key string, t domain.BilingualText) {
		tables[domain.LanguageVi][key] = t.Vi
		tables[domain.LanguageEn][key] = t.En
	}

	if h := snap.Hero; h != nil {
		put("hero.greeting", h.Greeting)
		put("hero.title", h.Title)
		put("hero.subtitle", h.Subtitle)
		put("hero.ctaText", h.CTAText)
	}
	if a := snap.About; a != nil {
		put("about.description", a.Description)
		put("about.experience", a.Experience)
	}
	for i, s := range snap.Services {
		put(fmt.Sprintf("services.%d.title", i), s.Title)
		put(fmt.Sprintf("services.%d.description", i), s.Description)
	}
	for i, p := range snap.Projects {
		put(fmt.Sprintf("projects.%d.title", i), p.Title)
		put(fmt.Sprintf("projects.%d.description", i), p.Description)
	}
	for i, p := range snap.BlogPosts {
		put(fmt.Sprintf("blog.%d.title", i), p.Title)
		put(fmt.Sprintf("blog.%d.excerpt", i), p.Excerpt)
	}

	return tables
}
