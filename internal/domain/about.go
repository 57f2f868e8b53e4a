package domain

// Field length limits for AboutContent.
const (
	MaxAboutDescription = 2000
	MaxAboutExperience  = 1000
)

// AboutContent is the "about me" section.
type AboutContent struct {
	Description BilingualText `json:"description"`
	Experience  BilingualText `json:"experience"`

	// ProfileImage is a path or URL to the profile picture. Required.
	ProfileImage string `json:"profileImage"`
}
