package domain

import "time"

// BlogStatus is the publication state of a blog post.
type BlogStatus string

const (
	BlogDraft     BlogStatus = "draft"
	BlogPublished BlogStatus = "published"
)

// ParseBlogStatus normalizes a raw status value.
func ParseBlogStatus(s string) (BlogStatus, bool) {
	switch BlogStatus(s) {
	case BlogDraft:
		return BlogDraft, true
	case BlogPublished:
		return BlogPublished, true
	default:
		return "", false
	}
}

// Field length limits for BlogPost.
const (
	MaxBlogTitle   = 150
	MaxBlogExcerpt = 300
	MaxBlogContent = 50000
)

// BlogPost is one article.
//
// Only published posts are projected for display, newest first by
// PublishDate. Tags must carry at least one entry.
type BlogPost struct {
	ID          string        `json:"id"`
	Title       BilingualText `json:"title"`
	Excerpt     BilingualText `json:"excerpt"`
	Content     BilingualText `json:"content"`
	Status      BlogStatus    `json:"status"`
	Tags        []string      `json:"tags"`
	PublishDate time.Time     `json:"publishDate"`
}
