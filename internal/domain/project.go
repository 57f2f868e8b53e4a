package domain

// Field length limits for Project.
const (
	MaxProjectTitle       = 100
	MaxProjectDescription = 500
)

// Project is one portfolio project entry.
//
// Projects are displayed sorted by Order ascending. Technologies must carry
// at least one entry. Link and Github, when set, must be valid URLs.
type Project struct {
	ID          string        `json:"id"`
	Title       BilingualText `json:"title"`
	Description BilingualText `json:"description"`

	// Image is an optional path or URL to the project screenshot.
	Image string `json:"image,omitempty"`

	Technologies []string `json:"technologies"`
	Link         string   `json:"link,omitempty"`
	Github       string   `json:"github,omitempty"`
	Featured     bool     `json:"featured"`
	Order        int      `json:"order"`
}
