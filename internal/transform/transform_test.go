package transform

import (
	"testing"
	"time"

	"github.com/anhdng/songngu/internal/domain"
)

func TestHeroFallsBackToVietnamese(t *testing.T) {
	h := domain.HeroContent{
		Greeting: domain.BilingualText{Vi: "Xin chào", En: ""},
		Name:     "Anh",
		Title:    domain.BilingualText{Vi: "Dev", En: "Developer"},
		CTALink:  "#contact",
	}

	en := Hero(h, domain.LanguageEn)
	if en.Greeting != "Xin chào" {
		t.Errorf("empty en locale must fall back to vi, got %q", en.Greeting)
	}
	if en.Title != "Developer" {
		t.Errorf("Title = %q, want Developer", en.Title)
	}
	if en.Name != "Anh" || en.CTALink != "#contact" {
		t.Error("language-independent fields must copy through untouched")
	}
}

func TestServicesSortedByOrder(t *testing.T) {
	list := []domain.Service{
		{ID: "c", Title: domain.BilingualText{Vi: "c"}, Order: 7},
		{ID: "a", Title: domain.BilingualText{Vi: "a"}, Order: 0},
		{ID: "b", Title: domain.BilingualText{Vi: "b"}, Order: 3},
	}

	out := Services(list, domain.LanguageVi)
	for i := 1; i < len(out); i++ {
		if out[i-1].Order > out[i].Order {
			t.Fatalf("output not ascending by order: %+v", out)
		}
	}
	if out[0].ID != "a" || out[2].ID != "c" {
		t.Errorf("unexpected order: %v %v %v", out[0].ID, out[1].ID, out[2].ID)
	}

	// Input must stay untouched.
	if list[0].ID != "c" {
		t.Error("input slice was reordered")
	}
}

func TestProjectsSortedByOrder(t *testing.T) {
	list := []domain.Project{
		{ID: "second", Order: 2},
		{ID: "first", Order: 1},
	}
	out := Projects(list, domain.LanguageEn)
	if out[0].ID != "first" || out[1].ID != "second" {
		t.Errorf("unexpected order: %+v", out)
	}
}

func TestBlogPostsPublishedOnlyNewestFirst(t *testing.T) {
	day := func(d int) time.Time { return time.Date(2026, 3, d, 0, 0, 0, 0, time.UTC) }
	list := []domain.BlogPost{
		{ID: "old", Status: domain.BlogPublished, PublishDate: day(1)},
		{ID: "draft", Status: domain.BlogDraft, PublishDate: day(5)},
		{ID: "new", Status: domain.BlogPublished, PublishDate: day(9)},
		{ID: "mid", Status: domain.BlogPublished, PublishDate: day(4)},
	}

	out := BlogPosts(list, domain.LanguageVi)

	if len(out) != 3 {
		t.Fatalf("expected 3 published posts, got %d", len(out))
	}
	for _, p := range out {
		if p.ID == "draft" {
			t.Fatal("draft post leaked into projection")
		}
	}
	want := []string{"new", "mid", "old"}
	for i, id := range want {
		if out[i].ID != id {
			t.Errorf("position %d = %s, want %s", i, out[i].ID, id)
		}
	}
}

func TestTranslationsPositionalKeys(t *testing.T) {
	snap := domain.Snapshot{
		Hero: &domain.HeroContent{
			Greeting: domain.BilingualText{Vi: "Xin chào", En: "Hello"},
		},
		Services: []domain.Service{
			{Title: domain.BilingualText{Vi: "Một", En: "One"}},
			{Title: domain.BilingualText{Vi: "Hai", En: "Two"}},
		},
	}

	tables := Translations(snap)

	if got := tables[domain.LanguageEn]["hero.greeting"]; got != "Hello" {
		t.Errorf("hero.greeting = %q", got)
	}
	if got := tables[domain.LanguageVi]["services.0.title"]; got != "Một" {
		t.Errorf("services.0.title = %q", got)
	}
	if got := tables[domain.LanguageEn]["services.1.title"]; got != "Two" {
		t.Errorf("services.1.title = %q", got)
	}
	// Keys are positional: index follows source array order.
	if _, ok := tables[domain.LanguageVi]["services.2.title"]; ok {
		t.Error("unexpected key for nonexistent index")
	}
}

func TestCheckHero(t *testing.T) {
	ok := CheckHero(LocalizedHero{
		Greeting: "hi", Name: "a", Title: "t", Subtitle: "s", CTAText: "c", CTALink: "#x",
	})
	if !ok.Valid {
		t.Fatalf("expected valid, got %v", ok.Errors)
	}

	bad := CheckHero(LocalizedHero{Name: "a"})
	if bad.Valid {
		t.Fatal("expected invalid")
	}
	if len(bad.Errors) != 5 {
		t.Errorf("expected 5 errors, got %v", bad.Errors)
	}
}
