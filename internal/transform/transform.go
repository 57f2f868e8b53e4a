// Package transform projects bilingual, storage-shaped entities into
// single-language, display-shaped ones.
//
// Projection picks the requested locale per field, falling back to
// Vietnamese. Collections come out in display order: services and projects
// ascending by order, blog posts published-only and newest first. The
// ordering is load-bearing for the frontend and must not change.
package transform

import (
	"sort"

	"github.com/anhdng/songngu/internal/domain"
)

// LocalizedHero is the display shape of the hero section.
type LocalizedHero struct {
	Greeting string `json:"greeting"`
	Name     string `json:"name"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle"`
	CTAText  string `json:"ctaText"`
	CTALink  string `json:"ctaLink"`
}

// LocalizedAbout is the display shape of the about section.
type LocalizedAbout struct {
	Description  string `json:"description"`
	Experience   string `json:"experience"`
	ProfileImage string `json:"profileImage"`
}

// LocalizedService is the display shape of one service card.
type LocalizedService struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
	Color       string `json:"color"`
	BgColor     string `json:"bgColor"`
	Order       int    `json:"order"`
}

// LocalizedProject is the display shape of one project entry.
type LocalizedProject struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Image        string   `json:"image,omitempty"`
	Technologies []string `json:"technologies"`
	Link         string   `json:"link,omitempty"`
	Github       string   `json:"github,omitempty"`
	Featured     bool     `json:"featured"`
	Order        int      `json:"order"`
}

// LocalizedBlogPost is the display shape of one published post.
type LocalizedBlogPost struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Excerpt     string   `json:"excerpt"`
	Content     string   `json:"content"`
	Tags        []string `json:"tags"`
	PublishDate string   `json:"publishDate"`
}

// Hero projects the hero section into the requested language.
func Hero(h domain.HeroContent, lang domain.Language) LocalizedHero {
	return LocalizedHero{
		Greeting: h.Greeting.Get(lang),
		Name:     h.Name,
		Title:    h.Title.Get(lang),
		Subtitle: h.Subtitle.Get(lang),
		CTAText:  h.CTAText.Get(lang),
		CTALink:  h.CTALink,
	}
}

// About projects the about section into the requested language.
func About(a domain.AboutContent, lang domain.Language) LocalizedAbout {
	return LocalizedAbout{
		Description:  a.Description.Get(lang),
		Experience:   a.Experience.Get(lang),
		ProfileImage: a.ProfileImage,
	}
}

// Services projects the service cards sorted ascending by order.
// The input slice is not modified.
func Services(list []domain.Service, lang domain.Language) []LocalizedService {
	sorted := make([]domain.Service, len(list))
	copy(sorted, list)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })

	out := make([]LocalizedService, len(sorted))
	for i, s := range sorted {
		out[i] = LocalizedService{
			ID:          s.ID,
			Title:       s.Title.Get(lang),
			Description: s.Description.Get(lang),
			Icon:        s.Icon,
			Color:       s.Color,
			BgColor:     s.BgColor,
			Order:       s.Order,
		}
	}
	return out
}

// Projects projects the project entries sorted ascending by order.
// The input slice is not modified.
func Projects(list []domain.Project, lang domain.Language) []LocalizedProject {
	sorted := make([]domain.Project, len(list))
	copy(sorted, list)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Order < sorted[j].Order })

	out := make([]LocalizedProject, len(sorted))
	for i, p := range sorted {
		out[i] = LocalizedProject{
			ID:           p.ID,
			Title:        p.Title.Get(lang),
			Description:  p.Description.Get(lang),
			Image:        p.Image,
			Technologies: p.Technologies,
			Link:         p.Link,
			Github:       p.Github,
			Featured:     p.Featured,
			Order:        p.Order,
		}
	}
	return out
}

// BlogPosts projects published posts only, newest first by publish date.
// Drafts never reach the display shape.
func BlogPosts(list []domain.BlogPost, lang domain.Language) []LocalizedBlogPost {
	published := make([]domain.BlogPost, 0, len(list))
	for _, p := range list {
		if p.Status == domain.BlogPublished {
			published = append(published, p)
		}
	}
	sort.SliceStable(published, func(i, j int) bool {
		return published[i].PublishDate.After(published[j].PublishDate)
	})

	out := make([]LocalizedBlogPost, len(published))
	for i, p := range published {
		out[i] = LocalizedBlogPost{
			ID:          p.ID,
			Title:       p.Title.Get(lang),
			Excerpt:     p.Excerpt.Get(lang),
			Content:     p.Content.Get(lang),
			Tags:        p.Tags,
			PublishDate: p.PublishDate.Format("2006-01-02"),
		}
	}
	return out
}
