package validate

import (
	"fmt"

	"github.com/anhdng/songngu/internal/domain"
	"github.com/anhdng/songngu/internal/sanitize"
)

// Service sanitizes and validates a single service card.
func Service(s domain.Service) (domain.Service, Result) {
	res := okResult()

	s.Title = sanitize.Text(s.Title)
	s.Description = sanitize.Text(s.Description)
	s.Icon = sanitize.String(s.Icon)

	checkText(&res, "title", s.Title, "Title (Vietnamese)", "Title (English)", domain.MaxServiceTitle)
	checkText(&res, "description", s.Description, "Description (Vietnamese)", "Description (English)", domain.MaxServiceDescription)

	if c := sanitize.Color(s.Color); c != "" {
		s.Color = c
	} else {
		res.fail("color", "Color must be a 6-digit hex color")
	}
	if c := sanitize.Color(s.BgColor); c != "" {
		s.BgColor = c
	} else {
		res.fail("bgColor", "Background color must be a 6-digit hex color")
	}
	if s.Order < 0 {
		res.fail("order", "Order must not be negative")
	}

	return s, res
}

// ServiceList validates every service plus the collection-level rule that
// order values are unique. Item errors are prefixed with the item index.
func ServiceList(list []domain.Service) ([]domain.Service, Result) {
	res := okResult()
	seenOrder := make(map[int]int, len(list))

	for i, svc := range list {
		sanitized, itemRes := Service(svc)
		list[i] = sanitized
		res.merge(fmt.Sprintf("%d", i), itemRes)

		if svc.Order >= 0 {
			if first, dup := seenOrder[svc.Order]; dup {
				res.fail(fmt.Sprintf("%d.order", i), "Order %d is already used by service %d", svc.Order, first)
			} else {
				seenOrder[svc.Order] = i
			}
		}
	}

	return list, res
}
