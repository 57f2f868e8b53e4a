package validate

import (
	"net/url"
	"regexp"
	"strings"
)

var (
	hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)
	emailRe    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe    = regexp.MustCompile(`^[0-9+\-() ]+$`)
)

// HexColor reports whether s is a 6-digit hex color ("#RRGGBB",
// case-insensitive).
func HexColor(s string) bool {
	return hexColorRe.MatchString(s)
}

// Email reports whether s looks like local@domain.tld. Intentionally
// permissive: the check is advisory, the mail provider has the last word.
func Email(s string) bool {
	return emailRe.MatchString(s)
}

// Phone reports whether s is a plausible phone number: digits plus
// +, -, parentheses and spaces, with at least 10 significant characters.
func Phone(s string) bool {
	if !phoneRe.MatchString(s) {
		return false
	}
	significant := 0
	for _, r := range s {
		if (r >= '0' && r <= '9') || r == '+' {
			significant++
		}
	}
	return significant >= 10
}

// AbsoluteURL reports whether s parses as an absolute URL with a host.
func AbsoluteURL(s string) bool {
	u, err := url.Parse(s)
	return err == nil && u.IsAbs() && u.Host != ""
}

// Link reports whether s is an acceptable navigation target: an anchor
// ("#..."), a root-relative path ("/..."), or an absolute URL.
func Link(s string) bool {
	if strings.HasPrefix(s, "#") || strings.HasPrefix(s, "/") {
		return len(s) > 1
	}
	return AbsoluteURL(s)
}
