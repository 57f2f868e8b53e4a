package validate

import (
	"fmt"

	"github.com/anhdng/songngu/internal/domain"
	"github.com/anhdng/songngu/internal/sanitize"
)

// BlogPost sanitizes and validates a single post.
func BlogPost(p domain.BlogPost) (domain.BlogPost, Result) {
	res := okResult()

	p.Title = sanitize.Text(p.Title)
	p.Excerpt = sanitize.Text(p.Excerpt)
	// Content keeps its internal formatting: only leading/trailing
	// whitespace and control characters would be hostile here, and the
	// editor already strips those. Validate length only.

	checkText(&res, "title", p.Title, "Title (Vietnamese)", "Title (English)", domain.MaxBlogTitle)
	checkText(&res, "excerpt", p.Excerpt, "Excerpt (Vietnamese)", "Excerpt (English)", domain.MaxBlogExcerpt)

	if p.Content.Vi == "" {
		res.fail("content_vi", "Content (Vietnamese) is required")
	} else if len([]rune(p.Content.Vi)) > domain.MaxBlogContent {
		res.fail("content_vi", "Content (Vietnamese) must be at most %d characters", domain.MaxBlogContent)
	}
	if p.Content.En == "" {
		res.fail("content_en", "Content (English) is required")
	} else if len([]rune(p.Content.En)) > domain.MaxBlogContent {
		res.fail("content_en", "Content (English) must be at most %d characters", domain.MaxBlogContent)
	}

	if _, ok := domain.ParseBlogStatus(string(p.Status)); !ok {
		res.fail("status", "Status must be draft or published")
	}

	cleaned := make([]string, 0, len(p.Tags))
	for _, tag := range p.Tags {
		if t := sanitize.String(tag); t != "" {
			cleaned = append(cleaned, t)
		}
	}
	p.Tags = cleaned
	if len(p.Tags) == 0 {
		res.fail("tags", "At least one tag is required")
	}

	return p, res
}

// BlogPostList validates every post in the collection.
func BlogPostList(list []domain.BlogPost) ([]domain.BlogPost, Result) {
	res := okResult()
	for i, post := range list {
		sanitized, itemRes := BlogPost(post)
		list[i] = sanitized
		res.merge(fmt.Sprintf("%d", i), itemRes)
	}
	return list, res
}
