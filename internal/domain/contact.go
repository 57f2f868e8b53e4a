package domain

// MinPhoneDigits is the minimum number of significant characters
// (digits and '+') required in a phone number.
const MinPhoneDigits = 10

// ContactInfo holds the public contact channels.
type ContactInfo struct {
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Github   string `json:"github"`
	Linkedin string `json:"linkedin"`
}
