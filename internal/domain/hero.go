package domain

// Field length limits for HeroContent. The limits are part of the contract:
// validation error messages interpolate them, and the admin UI mirrors them
// as input maxlength attributes.
const (
	MaxHeroGreeting = 50
	MaxHeroName     = 30
	MaxHeroTitle    = 100
	MaxHeroSubtitle = 200
	MaxHeroCTAText  = 30
	MaxHeroCTALink  = 200
)

// HeroContent is the landing section of the portfolio.
//
// All bilingual fields are required in both locales. CTALink must be an
// anchor ("#..."), a root-relative path ("/..."), or an absolute URL.
type HeroContent struct {
	Greeting BilingualText `json:"greeting"`
	Name     string        `json:"name"`
	Title    BilingualText `json:"title"`
	Subtitle BilingualText `json:"subtitle"`
	CTAText  BilingualText `json:"ctaText"`
	CTALink  string        `json:"ctaLink"`
}
