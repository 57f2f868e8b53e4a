package validate

import (
	"fmt"

	"github.com/anhdng/songngu/internal/domain"
	"github.com/anhdng/songngu/internal/sanitize"
)

// Project sanitizes and validates a single project entry.
func Project(p domain.Project) (domain.Project, Result) {
	res := okResult()

	p.Title = sanitize.Text(p.Title)
	p.Description = sanitize.Text(p.Description)
	p.Image = sanitize.String(p.Image)
	p.Link = sanitize.String(p.Link)
	p.Github = sanitize.String(p.Github)

	checkText(&res, "title", p.Title, "Title (Vietnamese)", "Title (English)", domain.MaxProjectTitle)
	checkText(&res, "description", p.Description, "Description (Vietnamese)", "Description (English)", domain.MaxProjectDescription)

	cleaned := make([]string, 0, len(p.Technologies))
	for _, tech := range p.Technologies {
		if t := sanitize.String(tech); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	p.Technologies = cleaned
	if len(p.Technologies) == 0 {
		res.fail("technologies", "At least one technology is required")
	}

	if p.Link != "" && !AbsoluteURL(p.Link) {
		res.fail("link", "Link must be a valid URL")
	}
	if p.Github != "" && !AbsoluteURL(p.Github) {
		res.fail("github", "GitHub link must be a valid URL")
	}
	if p.Order < 0 {
		res.fail("order", "Order must not be negative")
	}

	return p, res
}

// ProjectList validates every project plus order uniqueness across the
// collection.
func ProjectList(list []domain.Project) ([]domain.Project, Result) {
	res := okResult()
	seenOrder := make(map[int]int, len(list))

	for i, proj := range list {
		sanitized, itemRes := Project(proj)
		list[i] = sanitized
		res.merge(fmt.Sprintf("%d", i), itemRes)

		if proj.Order >= 0 {
			if first, dup := seenOrder[proj.Order]; dup {
				res.fail(fmt.Sprintf("%d.order", i), "Order %d is already used by project %d", proj.Order, first)
			} else {
				seenOrder[proj.Order] = i
			}
		}
	}

	return list, res
}
