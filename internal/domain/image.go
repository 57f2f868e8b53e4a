package domain

import "time"

// ImageBudget is the aggregate storage budget for uploaded images (4 MiB).
// When a new upload would exceed it, the oldest images are evicted first
// until the new image fits.
const ImageBudget = 4 << 20

// ImageMetadata describes the decoded image.
type ImageMetadata struct {
	Width  int    `json:"width"`
	Height int    `json:"height"`
	Type   string `json:"type"`
	Size   int    `json:"size"`
}

// StoredImage is an uploaded image kept in the content store.
//
// Data is a base64 data URL. Thumbnail, when present, is a smaller data URL
// used for list views.
type StoredImage struct {
	ID         string        `json:"id"`
	Category   string        `json:"category"`
	Filename   string        `json:"filename"`
	Data       string        `json:"data"`
	Thumbnail  string        `json:"thumbnail,omitempty"`
	Metadata   ImageMetadata `json:"metadata"`
	UploadDate time.Time     `json:"uploadDate"`
}
