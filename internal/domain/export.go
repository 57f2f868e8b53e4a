package domain

import "time"

// Snapshot is the full set of content collections at a point in time.
//
// It is both the unit of backup (the data block of an ExportDocument) and
// the shape the content store reads and writes as a whole. Singleton
// sections are pointers so an absent section serializes as null rather
// than a zero-valued object.
type Snapshot struct {
	Hero      *HeroContent    `json:"hero"`
	About     *AboutContent   `json:"about"`
	Services  []Service       `json:"services"`
	Projects  []Project       `json:"projects"`
	BlogPosts []BlogPost      `json:"blogPosts"`
	Contact   *ContactInfo    `json:"contact"`
	Settings  *SystemSettings `json:"settings"`
}

// TotalItems counts the snapshot's content: the sum of all collection
// lengths plus one per non-nil singleton section.
func (s Snapshot) TotalItems() int {
	total := len(s.Services) + len(s.Projects) + len(s.BlogPosts)
	for _, present := range []bool{s.Hero != nil, s.About != nil, s.Contact != nil, s.Settings != nil} {
		if present {
			total++
		}
	}
	return total
}

// ExportMetadata describes the serialized data block of an export.
type ExportMetadata struct {
	TotalItems int    `json:"totalItems"`
	DataSize   int    `json:"dataSize"`
	Checksum   string `json:"checksum"`

	// Algorithm names the hash used for Checksum, so imports produced by a
	// differently configured instance can still be verified.
	Algorithm string `json:"algorithm,omitempty"`
}

// ExportDocument is the versioned, checksummed backup artifact.
//
// The checksum is computed over the canonical JSON of Data only, never the
// metadata. It detects accidental corruption; it is not a security measure.
type ExportDocument struct {
	Version    string         `json:"version"`
	ExportDate time.Time      `json:"exportDate"`
	ExportID   string         `json:"exportId"`
	Data       Snapshot       `json:"data"`
	Metadata   ExportMetadata `json:"metadata"`
}
