package domain

// Language identifies one of the two supported content locales.
type Language string

const (
	// LanguageVi is Vietnamese, the default and fallback locale.
	LanguageVi Language = "vi"
	// LanguageEn is English.
	LanguageEn Language = "en"
)

// ParseLanguage normalizes a raw language code.
// Returns false for anything other than "vi" or "en".
func ParseLanguage(s string) (Language, bool) {
	switch Language(s) {
	case LanguageVi:
		return LanguageVi, true
	case LanguageEn:
		return LanguageEn, true
	default:
		return "", false
	}
}

// BilingualText holds the same piece of content in both locales.
//
// Both fields are always present in the serialized form. Empty strings are
// permitted only before validation; a required field must be non-empty in
// both locales after sanitization.
type BilingualText struct {
	Vi string `json:"vi"`
	En string `json:"en"`
}

// Get returns the text for the requested language, falling back to
// Vietnamese when the requested locale is empty.
func (t BilingualText) Get(lang Language) string {
	if lang == LanguageEn && t.En != "" {
		return t.En
	}
	return t.Vi
}

// Empty reports whether both locales are empty.
func (t BilingualText) Empty() bool {
	return t.Vi == "" && t.En == ""
}
