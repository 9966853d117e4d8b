// Package heuristics implements the keyword rules that surface checks
// and risks for a drafted order. This is a lookup-based safety net for
// the human reviewer, not legal reasoning: every rule is a substring or
// pattern match over the extracted case and GR text.
package heuristics

import (
	"math"
	"regexp"
	"strings"
)

// Findings is the structured outcome of one analysis pass.
type Findings struct {
	Checks []string `json:"checks"`
	Risks  []string `json:"risks"`
	// Confidence is a coarse indicator in [0.35, 0.92] derived from the
	// check/risk counts. It is presentation guidance only.
	Confidence float64 `json:"confidence"`
}

// Subjects lists the case categories the intake form offers.
var Subjects = []string{
	"Anganwadi Helper/Worker Selection",
	"Teacher Appointment (ZP School)",
	"Transfers / Service Matters",
	"Works Contract / Tender",
	"MGNREGA Wage Claim",
	"Scholarship / Benefit Eligibility",
	"Procurement Irregularity",
	"Health (PHC/Rural Hospital) Staffing",
	"ZP Benefit Eligibility (Social Welfare)",
	"Land & Building Permission (ZP purview)",
	"Other (type below)",
}

var residencyKeywords = []string{"स्थानिक", "रहिवासी", "local resident", "residency"}

// distanceHints are how case files typically note a non-local candidate:
// a kilometre figure, in either Devanagari or ASCII digits.
var distanceHints = []string{"३", "3 कि"}

var educationKeywords = []string{"१२ वी", "12th", "HSC"}

// clauseMarkerRe detects that a GR carries structured clauses at all;
// ¶ and । (danda) cover scanned documents where only punctuation
// survives extraction.
var clauseMarkerRe = regexp.MustCompile(`धोरण|प्रशासनिक|प्रकरण|कलम|section|clause|¶|।`)

// Analyze runs the keyword rules over the extracted texts. extraLegal is
// accepted for interface stability with the intake layer; no current
// rule consults it.
func Analyze(caseText, grText, extraLegal string) Findings {
	var checks, risks []string
	caseLower := strings.ToLower(caseText)

	if containsAny(grText, residencyKeywords) {
		checks = append(checks, "GR mentions local residency requirement.")
		if strings.Contains(caseLower, "3 km") || containsAny(caseText, distanceHints) {
			risks = append(risks, "Selection appears non-local while GR requires local residency.")
		}
	}

	if strings.Contains(caseText, "सुनावणी") || strings.Contains(caseLower, "hearing") {
		checks = append(checks, "Hearing/Natural justice referenced.")
		if containsAny(caseLower, []string{"no hearing", "not heard"}) || strings.Contains(caseText, "सुनावणी न") {
			risks = append(risks, "Possible violation of natural justice.")
		}
	}

	if containsAny(caseText, educationKeywords) {
		checks = append(checks, "Educational qualification mentioned.")
	}

	if clauseMarkerRe.MatchString(grText) {
		checks = append(checks, "GR contains clause/section markers.")
	}

	score := 0.6 + 0.1*math.Min(3, float64(len(checks))) - 0.1*math.Min(3, float64(len(risks)))
	if strings.TrimSpace(caseText) == "" || strings.TrimSpace(grText) == "" {
		score = math.Min(score, 0.5)
		risks = append(risks, "Text extraction incomplete (paste missing text in fallback).")
	}
	score = math.Max(0.35, math.Min(0.92, score))

	return Findings{
		Checks:     checks,
		Risks:      risks,
		Confidence: math.Round(score*100) / 100,
	}
}

func containsAny(s string, subs []string) bool {
	for _, sub := range subs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
