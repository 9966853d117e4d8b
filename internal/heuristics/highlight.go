package heuristics

import (
	"html"
	"regexp"
	"strings"
)

// clauseRe matches numbered clause references in Marathi and English GR
// text: कलम 12A, धोरण 3, अट 5, Clause 7, Section 4B.
var clauseRe = regexp.MustCompile(`(?i)(कलम\s*\d+[A-Za-z]?|धोरण\s*\d+|अट\s*\d+|Clause\s*\d+|Section\s*\d+[A-Za-z]?)`)

// maxHighlightLines caps the preview so a mis-extracted megabyte of text
// cannot blow up the response.
const maxHighlightLines = 120

// HighlightClauses renders GR text as HTML with numbered clauses wrapped
// in <span class="hl"> and residency-relevant lines bulleted. Input text
// is escaped before markup is added.
func HighlightClauses(text string) string {
	if strings.TrimSpace(text) == "" {
		return "<em>No GR text available.</em>"
	}
	lines := strings.Split(text, "\n")
	var out []string
	for i, ln := range lines {
		if i >= maxHighlightLines {
			out = append(out, "<div>…</div>")
			break
		}
		relevant := clauseRe.MatchString(ln) ||
			strings.Contains(ln, "स्थानिक") ||
			strings.Contains(ln, "रहिवासी") ||
			strings.Contains(strings.ToLower(ln), "resident")
		escaped := html.EscapeString(ln)
		if relevant {
			escaped = clauseRe.ReplaceAllString(escaped, `<span class="hl">$1</span>`)
			out = append(out, "<div>• "+escaped+"</div>")
		} else {
			out = append(out, "<div>"+escaped+"</div>")
		}
	}
	return strings.Join(out, "\n")
}
