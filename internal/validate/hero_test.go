package validate

import (
	"strings"
	"testing"

	"github.com/anhdng/songngu/internal/domain"
)

func validHero() domain.HeroContent {
	return domain.HeroContent{
		Greeting: domain.BilingualText{Vi: "Xin chào", En: "Hello"},
		Name:     "Anh",
		Title:    domain.BilingualText{Vi: "Dev", En: "Developer"},
		Subtitle: domain.BilingualText{Vi: "a", En: "b"},
		CTAText:  domain.BilingualText{Vi: "Liên hệ", En: "Contact"},
		CTALink:  "#contact",
	}
}

func TestHeroValid(t *testing.T) {
	sanitized, res := Hero(validHero())
	if !res.Valid {
		t.Fatalf("expected valid, got errors: %v", res.Errors)
	}
	if sanitized != validHero() {
		t.Errorf("valid input should come back unchanged: %+v", sanitized)
	}
}

func TestHeroCollectsAllErrors(t *testing.T) {
	h := domain.HeroContent{
		Greeting: domain.BilingualText{Vi: "", En: ""},
		Name:     strings.Repeat("x", domain.MaxHeroName+1),
		CTALink:  "not a url",
	}

	_, res := Hero(h)
	if res.Valid {
		t.Fatal("expected invalid")
	}

	// Every broken field must be reported in one pass, not just the first.
	for _, key := range []string{"greeting_vi", "greeting_en", "name", "title_vi", "title_en", "subtitle_vi", "subtitle_en", "ctaText_vi", "ctaText_en", "ctaLink"} {
		if _, ok := res.Errors[key]; !ok {
			t.Errorf("missing error for %s, got %v", key, res.Errors)
		}
	}
}

func TestHeroSanitizesBeforeValidation(t *testing.T) {
	h := validHero()
	h.Name = "  Anh \x00 Dev  "

	sanitized, res := Hero(h)
	if !res.Valid {
		t.Fatalf("expected valid, got %v", res.Errors)
	}
	if sanitized.Name != "Anh Dev" {
		t.Errorf("Name = %q, want %q", sanitized.Name, "Anh Dev")
	}
}

func TestHeroWhitespaceOnlyIsRequired(t *testing.T) {
	h := validHero()
	h.Greeting.Vi = "   "

	_, res := Hero(h)
	if res.Valid {
		t.Fatal("whitespace-only required field must fail")
	}
	if _, ok := res.Errors["greeting_vi"]; !ok {
		t.Errorf("expected greeting_vi error, got %v", res.Errors)
	}
}

func TestLink(t *testing.T) {
	tests := []struct {
		link string
		want bool
	}{
		{"#contact", true},
		{"/about", true},
		{"https://example.com", true},
		{"not a url", false},
		{"#", false},
		{"/", false},
		{"", false},
		{"mailto:", false},
	}
	for _, tt := range tests {
		if got := Link(tt.link); got != tt.want {
			t.Errorf("Link(%q) = %v, want %v", tt.link, got, tt.want)
		}
	}
}

func TestPartialHeroMatchesFullValidator(t *testing.T) {
	h := validHero()
	h.Greeting.En = strings.Repeat("a", domain.MaxHeroGreeting+1)

	_, full := Hero(h)
	key, msg := PartialHero("greeting.en", h.Greeting.En)

	if key != "greeting_en" {
		t.Errorf("key = %q, want greeting_en", key)
	}
	if msg == "" {
		t.Fatal("expected partial validation error")
	}
	if full.Errors["greeting_en"] != msg {
		t.Errorf("partial message %q diverges from full validator %q", msg, full.Errors["greeting_en"])
	}
}

func TestPartialHeroValidValue(t *testing.T) {
	if _, msg := PartialHero("name", "Anh"); msg != "" {
		t.Errorf("unexpected error: %s", msg)
	}
}
