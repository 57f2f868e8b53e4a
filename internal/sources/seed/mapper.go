package seed

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/anhdng/songngu/internal/domain"
	"github.com/anhdng/songngu/internal/validate"
)

// Mapper converts a parsed seed file into validated domain entities.
type Mapper struct{}

// NewMapper creates a new mapper instance.
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapSnapshot converts and validates the whole file. A file with any
// invalid section is rejected: partially seeding would leave the store in
// a shape the admin UI never produces.
func (m *Mapper) MapSnapshot(f File) (domain.Snapshot, error) {
	var snap domain.Snapshot
	var problems []string

	section := func(name string, res validate.Result) {
		if res.Valid {
			return
		}
		for field, msg := range res.Errors {
			problems = append(problems, fmt.Sprintf("%s.%s: %s", name, field, msg))
		}
	}

	if f.Hero != nil {
		hero, res := validate.Hero(domain.HeroContent{
			Greeting: text(f.Hero.Greeting),
			Name:     f.Hero.Name,
			Title:    text(f.Hero.Title),
			Subtitle: text(f.Hero.Subtitle),
			CTAText:  text(f.Hero.CTAText),
			CTALink:  f.Hero.CTALink,
		})
		section("hero", res)
		snap.Hero = &hero
	}

	if f.About != nil {
		about, res := validate.About(domain.AboutContent{
			Description:  text(f.About.Description),
			Experience:   text(f.About.Experience),
			ProfileImage: f.About.ProfileImage,
		})
		section("about", res)
		snap.About = &about
	}

	if len(f.Services) > 0 {
		services := make([]domain.Service, len(f.Services))
		for i, s := range f.Services {
			services[i] = domain.Service{
				ID:          idOr(s.ID),
				Title:       text(s.Title),
				Description: text(s.Description),
				Icon:        s.Icon,
				Color:       s.Color,
				BgColor:     s.BgColor,
				Order:       s.Order,
			}
		}
		list, res := validate.ServiceList(services)
		section("services", res)
		snap.Services = list
	}

	if len(f.Projects) > 0 {
		projects := make([]domain.Project, len(f.Projects))
		for i, p := range f.Projects {
			projects[i] = domain.Project{
				ID:           idOr(p.ID),
				Title:        text(p.Title),
				Description:  text(p.Description),
				Image:        p.Image,
				Technologies: p.Technologies,
				Link:         p.Link,
				Github:       p.Github,
				Featured:     p.Featured,
				Order:        p.Order,
			}
		}
		list, res := validate.ProjectList(projects)
		section("projects", res)
		snap.Projects = list
	}

	if len(f.Blog) > 0 {
		posts := make([]domain.BlogPost, len(f.Blog))
		for i, p := range f.Blog {
			post, err := mapBlogPost(p)
			if err != nil {
				problems = append(problems, fmt.Sprintf("blog.%d: %v", i, err))
				continue
			}
			posts[i] = post
		}
		list, res := validate.BlogPostList(posts)
		section("blog", res)
		snap.BlogPosts = list
	}

	if f.Contact != nil {
		contact, res := validate.Contact(domain.ContactInfo{
			Email:    f.Contact.Email,
			Phone:    f.Contact.Phone,
			Github:   f.Contact.Github,
			Linkedin: f.Contact.Linkedin,
		})
		section("contact", res)
		snap.Contact = &contact
	}

	if f.Settings != nil {
		settings, res := validate.Settings(domain.SystemSettings{
			DefaultLanguage: domain.Language(f.Settings.DefaultLanguage),
			DefaultTheme:    domain.Theme(f.Settings.DefaultTheme),
			ColorPalette:    f.Settings.ColorPalette,
			MaintenanceMode: f.Settings.MaintenanceMode,
		})
		section("settings", res)
		snap.Settings = &settings
	}

	if len(problems) > 0 {
		sort.Strings(problems)
		return domain.Snapshot{}, fmt.Errorf("invalid seed content: %s", strings.Join(problems, "; "))
	}
	return snap, nil
}

func mapBlogPost(p BlogPost) (domain.BlogPost, error) {
	status, ok := domain.ParseBlogStatus(p.Status)
	if !ok {
		return domain.BlogPost{}, fmt.Errorf("unknown status %q", p.Status)
	}

	var publishDate time.Time
	if p.PublishDate != "" {
		var err error
		publishDate, err = time.Parse("2006-01-02", p.PublishDate)
		if err != nil {
			return domain.BlogPost{}, fmt.Errorf("bad publishDate %q: %w", p.PublishDate, err)
		}
	}

	return domain.BlogPost{
		ID:          idOr(p.ID),
		Title:       text(p.Title),
		Excerpt:     text(p.Excerpt),
		Content:     text(p.Content),
		Status:      status,
		Tags:        p.Tags,
		PublishDate: publishDate,
	}, nil
}

func text(t Text) domain.BilingualText {
	return domain.BilingualText{Vi: t.Vi, En: t.En}
}

func idOr(id string) string {
	if id != "" {
		return id
	}
	return uuid.NewString()
}
