package inbox

import "regexp"

// Bangladeshi mobile numbers: optional country code (+880 or 880), then the
// local form 01 plus an operator digit in [3-9] plus eight subscriber digits.
var (
	mobilePattern      = regexp.MustCompile(`(?:\+?880)?01[3-9][0-9]{8}`)
	mobileExactPattern = regexp.MustCompile(`^(?:\+?880)?01[3-9][0-9]{8}$`)
)

// ExtractPhone returns the first mobile number found in text, verbatim as it
// appears, country-code prefix included when the sender typed one. Consumers
// normalize; this layer never does. The second return is false when the text
// carries no recognizable number; any input, including empty, is valid.
func ExtractPhone(text string) (string, bool) {
	match := mobilePattern.FindString(text)
	if match == "" {
		return "", false
	}
	return match, true
}

// IsMobileNumber reports whether s is exactly one mobile number with nothing
// around it. Used by the contact importer to validate list entries.
func IsMobileNumber(s string) bool {
	return mobileExactPattern.MatchString(s)
}
