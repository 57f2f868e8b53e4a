package validate

import (
	"fmt"
	"strings"

	"github.com/anhdng/songngu/internal/domain"
	"github.com/anhdng/songngu/internal/sanitize"
)

// fieldRule checks one sanitized string value and returns an error message,
// or "" when the value passes.
type fieldRule func(value string) string

func required(label string) fieldRule {
	return func(v string) string {
		if v == "" {
			return label + " is required"
		}
		return ""
	}
}

func maxLen(label string, limit int) fieldRule {
	return func(v string) string {
		if len([]rune(v)) > limit {
			return fmt.Sprintf("%s must be at most %d characters", label, limit)
		}
		return ""
	}
}

func linkRule(label string) fieldRule {
	return func(v string) string {
		if v != "" && !Link(v) {
			return label + " must be an anchor (#...), a path (/...) or a valid URL"
		}
		return ""
	}
}

func all(rules ...fieldRule) fieldRule {
	return func(v string) string {
		for _, rule := range rules {
			if msg := rule(v); msg != "" {
				return msg
			}
		}
		return ""
	}
}

// heroRules is the single source of per-field hero rules. Both the full
// validator and PartialHero dispatch through it, so live-typing validation
// can never drift from the pre-save one.
var heroRules = map[string]fieldRule{
	"greeting.vi": all(required("Greeting (Vietnamese)"), maxLen("Greeting (Vietnamese)", domain.MaxHeroGreeting)),
	"greeting.en": all(required("Greeting (English)"), maxLen("Greeting (English)", domain.MaxHeroGreeting)),
	"name":        all(required("Name"), maxLen("Name", domain.MaxHeroName)),
	"title.vi":    all(required("Title (Vietnamese)"), maxLen("Title (Vietnamese)", domain.MaxHeroTitle)),
	"title.en":    all(required("Title (English)"), maxLen("Title (English)", domain.MaxHeroTitle)),
	"subtitle.vi": all(required("Subtitle (Vietnamese)"), maxLen("Subtitle (Vietnamese)", domain.MaxHeroSubtitle)),
	"subtitle.en": all(required("Subtitle (English)"), maxLen("Subtitle (English)", domain.MaxHeroSubtitle)),
	"ctaText.vi":  all(required("CTA text (Vietnamese)"), maxLen("CTA text (Vietnamese)", domain.MaxHeroCTAText)),
	"ctaText.en":  all(required("CTA text (English)"), maxLen("CTA text (English)", domain.MaxHeroCTAText)),
	"ctaLink":     all(required("CTA link"), maxLen("CTA link", domain.MaxHeroCTALink), linkRule("CTA link")),
}

// heroField resolves a dotted field path to the matching string within h.
func heroField(h *domain.HeroContent, path string) *string {
	switch path {
	case "greeting.vi":
		return &h.Greeting.Vi
	case "greeting.en":
		return &h.Greeting.En
	case "name":
		return &h.Name
	case "title.vi":
		return &h.Title.Vi
	case "title.en":
		return &h.Title.En
	case "subtitle.vi":
		return &h.Subtitle.Vi
	case "subtitle.en":
		return &h.Subtitle.En
	case "ctaText.vi":
		return &h.CTAText.Vi
	case "ctaText.en":
		return &h.CTAText.En
	case "ctaLink":
		return &h.CTALink
	default:
		return nil
	}
}

// heroFieldPaths is the stable iteration order for full validation.
var heroFieldPaths = []string{
	"greeting.vi", "greeting.en",
	"name",
	"title.vi", "title.en",
	"subtitle.vi", "subtitle.en",
	"ctaText.vi", "ctaText.en",
	"ctaLink",
}

// Hero sanitizes and validates the full hero section.
func Hero(h domain.HeroContent) (domain.HeroContent, Result) {
	res := okResult()
	for _, path := range heroFieldPaths {
		field := heroField(&h, path)
		*field = sanitize.String(*field)
		if msg := heroRules[path](*field); msg != "" {
			res.fail(errorKey(path), "%s", msg)
		}
	}
	return h, res
}

// PartialHero validates a single dotted field path ("greeting.vi",
// "ctaLink", ...) against the same rules as Hero. Intended for live-typing
// feedback. The returned key is the error key for the field; the message is
// "" when the value passes. Unknown paths pass silently.
func PartialHero(path, value string) (key, message string) {
	key = errorKey(path)
	rule, ok := heroRules[path]
	if !ok {
		return key, ""
	}
	return key, rule(sanitize.String(value))
}

// errorKey maps a dotted field path to its flat error key
// ("greeting.vi" -> "greeting_vi").
func errorKey(path string) string {
	return strings.ReplaceAll(path, ".", "_")
}
