package domain

// Field length limits for Service.
const (
	MaxServiceTitle       = 100
	MaxServiceDescription = 500
)

// Service is one offered-service card on the portfolio.
//
// Services are displayed sorted by Order ascending. Order must be
// non-negative and unique within the collection. Color and BgColor are
// 6-digit hex colors ("#RRGGBB").
type Service struct {
	ID          string        `json:"id"`
	Title       BilingualText `json:"title"`
	Description BilingualText `json:"description"`

	// Icon is an optional icon identifier understood by the frontend.
	Icon string `json:"icon,omitempty"`

	Color   string `json:"color"`
	BgColor string `json:"bgColor"`
	Order   int    `json:"order"`
}
