package heuristics

import "regexp"

// Identifier patterns for sensitive-mode previews. Aadhaar is 12 digits
// in groups of four, PAN is five letters + four digits + one letter,
// Indian mobile numbers start with 6-9.
var (
	aadhaarRe = regexp.MustCompile(`\b\d{4}\s?\d{4}\s?\d{4}\b`)
	panRe     = regexp.MustCompile(`\b[A-Z]{5}\d{4}[A-Z]\b`)
	mobileRe  = regexp.MustCompile(`\b[6-9]\d{9}\b`)
)

// Redact masks Aadhaar, PAN and mobile numbers in extracted text before
// it is echoed back in previews. The shape of each identifier is kept so
// a reviewer can still see that one was present.
func Redact(s string) string {
	s = aadhaarRe.ReplaceAllString(s, "XXXX XXXX XXXX")
	s = panRe.ReplaceAllString(s, "XXXXX9999X")
	s = mobileRe.ReplaceAllString(s, "XXXXXXXXXX")
	return s
}
