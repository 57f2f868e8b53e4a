package content

// Store keys for the content sections. One key per section: a section is
// always written wholesale, which keeps reads and backups trivially
// consistent per section.
const (
	KeyPrefix = "songngu:content:"

	KeyHero      = KeyPrefix + "hero"
	KeyAbout     = KeyPrefix + "about"
	KeyServices  = KeyPrefix + "services"
	KeyProjects  = KeyPrefix + "projects"
	KeyBlogPosts = KeyPrefix + "blog"
	KeyContact   = KeyPrefix + "contact"
	KeySettings  = KeyPrefix + "settings"
)
