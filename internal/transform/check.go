package transform

import "fmt"

// CheckResult is the outcome of a post-projection sanity check.
type CheckResult struct {
	Valid  bool     `json:"isValid"`
	Errors []string `json:"errors"`
}

func check(errs []string) CheckResult {
	return CheckResult{Valid: len(errs) == 0, Errors: errs}
}

// CheckHero sanity-checks a projected hero section. This is deliberately a
// different validator from validate.Hero: it runs on the flattened,
// single-language shape that leaves the transformation layer, not the
// bilingual stored shape that enters it.
func CheckHero(h LocalizedHero) CheckResult {
	var errs []string
	for _, f := range []struct{ name, value string }{
		{"greeting", h.Greeting},
		{"name", h.Name},
		{"title", h.Title},
		{"subtitle", h.Subtitle},
		{"ctaText", h.CTAText},
		{"ctaLink", h.CTALink},
	} {
		if f.value == "" {
			errs = append(errs, fmt.Sprintf("hero.%s is empty after projection", f.name))
		}
	}
	return check(errs)
}

// CheckServices sanity-checks a projected service list: every card must
// carry text and the list must have kept its ascending order.
func CheckServices(list []LocalizedService) CheckResult {
	var errs []string
	for i, s := range list {
		if s.Title == "" {
			errs = append(errs, fmt.Sprintf("services.%d.title is empty after projection", i))
		}
		if s.Description == "" {
			errs = append(errs, fmt.Sprintf("services.%d.description is empty after projection", i))
		}
		if i > 0 && list[i-1].Order > s.Order {
			errs = append(errs, fmt.Sprintf("services.%d is out of order", i))
		}
	}
	return check(errs)
}

// CheckBlogPosts sanity-checks a projected post list: text present and
// publish dates descending.
func CheckBlogPosts(list []LocalizedBlogPost) CheckResult {
	var errs []string
	for i, p := range list {
		if p.Title == "" {
			errs = append(errs, fmt.Sprintf("blog.%d.title is empty after projection", i))
		}
		if i > 0 && list[i-1].PublishDate < p.PublishDate {
			errs = append(errs, fmt.Sprintf("blog.%d is out of order", i))
		}
	}
	return check(errs)
}
