package validate

import (
	"github.com/anhdng/songngu/internal/domain"
	"github.com/anhdng/songngu/internal/sanitize"
)

// checkText validates one required bilingual field, collecting errors under
// "<field>_vi" and "<field>_en".
func checkText(res *Result, field string, t domain.BilingualText, labelVi, labelEn string, limit int) {
	if msg := all(required(labelVi), maxLen(labelVi, limit))(t.Vi); msg != "" {
		res.fail(field+"_vi", "%s", msg)
	}
	if msg := all(required(labelEn), maxLen(labelEn, limit))(t.En); msg != "" {
		res.fail(field+"_en", "%s", msg)
	}
}

// About sanitizes and validates the about section.
func About(a domain.AboutContent) (domain.AboutContent, Result) {
	res := okResult()

	a.Description = sanitize.Text(a.Description)
	a.Experience = sanitize.Text(a.Experience)
	a.ProfileImage = sanitize.String(a.ProfileImage)

	checkText(&res, "description", a.Description, "Description (Vietnamese)", "Description (English)", domain.MaxAboutDescription)
	checkText(&res, "experience", a.Experience, "Experience (Vietnamese)", "Experience (English)", domain.MaxAboutExperience)
	if a.ProfileImage == "" {
		res.fail("profileImage", "Profile image is required")
	}

	return a, res
}
