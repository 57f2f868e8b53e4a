package validate

import (
	"github.com/anhdng/songngu/internal/domain"
	"github.com/anhdng/songngu/internal/sanitize"
)

// Contact sanitizes and validates the contact channels.
func Contact(c domain.ContactInfo) (domain.ContactInfo, Result) {
	res := okResult()

	c.Email = sanitize.String(c.Email)
	c.Phone = sanitize.String(c.Phone)
	c.Github = sanitize.String(c.Github)
	c.Linkedin = sanitize.String(c.Linkedin)

	if c.Email == "" {
		res.fail("email", "Email is required")
	} else if !Email(c.Email) {
		res.fail("email", "Email must look like name@domain.tld")
	}

	if c.Phone == "" {
		res.fail("phone", "Phone is required")
	} else if !Phone(c.Phone) {
		res.fail("phone", "Phone must contain at least %d digits", domain.MinPhoneDigits)
	}

	if c.Github == "" {
		res.fail("github", "GitHub URL is required")
	} else if !AbsoluteURL(c.Github) {
		res.fail("github", "GitHub URL must be a valid URL")
	}

	if c.Linkedin == "" {
		res.fail("linkedin", "LinkedIn URL is required")
	} else if !AbsoluteURL(c.Linkedin) {
		res.fail("linkedin", "LinkedIn URL must be a valid URL")
	}

	return c, res
}
