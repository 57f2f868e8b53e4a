package seed

// Text is a bilingual string pair as written in the seed file.
type Text struct {
	Vi string `yaml:"vi"`
	En string `yaml:"en"`
}

// File is the top-level structure of the seed YAML file. Every section is
// optional; absent sections are simply not seeded.
type File struct {
	Hero     *Hero      `yaml:"hero,omitempty"`
	About    *About     `yaml:"about,omitempty"`
	Services []Service  `yaml:"services,omitempty"`
	Projects []Project  `yaml:"projects,omitempty"`
	Blog     []BlogPost `yaml:"blog,omitempty"`
	Contact  *Contact   `yaml:"contact,omitempty"`
	Settings *Settings  `yaml:"settings,omitempty"`
}

// Hero is the landing section.
type Hero struct {
	Greeting Text   `yaml:"greeting"`
	Name     string `yaml:"name"`
	Title    Text   `yaml:"title"`
	Subtitle Text   `yaml:"subtitle"`
	CTAText  Text   `yaml:"ctaText"`
	CTALink  string `yaml:"ctaLink"`
}

// About is the about section.
type About struct {
	Description  Text   `yaml:"description"`
	Experience   Text   `yaml:"experience"`
	ProfileImage string `yaml:"profileImage"`
}

// Service is one offered-service card.
type Service struct {
	ID          string `yaml:"id,omitempty"`
	Title       Text   `yaml:"title"`
	Description Text   `yaml:"description"`
	Icon        string `yaml:"icon,omitempty"`
	Color       string `yaml:"color"`
	BgColor     string `yaml:"bgColor"`
	Order       int    `yaml:"order"`
}

// Project is one portfolio project.
type Project struct {
	ID           string   `yaml:"id,omitempty"`
	Title        Text     `yaml:"title"`
	Description  Text     `yaml:"description"`
	Image        string   `yaml:"image,omitempty"`
	Technologies []string `yaml:"technologies"`
	Link         string   `yaml:"link,omitempty"`
	Github       string   `yaml:"github,omitempty"`
	Featured     bool     `yaml:"featured,omitempty"`
	Order        int      `yaml:"order"`
}

// BlogPost is one article.
type BlogPost struct {
	ID          string   `yaml:"id,omitempty"`
	Title       Text     `yaml:"title"`
	Excerpt     Text     `yaml:"excerpt"`
	Content     Text     `yaml:"content"`
	Status      string   `yaml:"status"`
	Tags        []string `yaml:"tags"`
	PublishDate string   `yaml:"publishDate,omitempty"` // YYYY-MM-DD
}

// Contact holds the public contact channels.
type Contact struct {
	Email    string `yaml:"email"`
	Phone    string `yaml:"phone"`
	Github   string `yaml:"github"`
	Linkedin string `yaml:"linkedin"`
}

// Settings are the site-wide defaults.
type Settings struct {
	DefaultLanguage string   `yaml:"defaultLanguage"`
	DefaultTheme    string   `yaml:"defaultTheme"`
	ColorPalette    []string `yaml:"colorPalette"`
	MaintenanceMode bool     `yaml:"maintenanceMode,omitempty"`
}
