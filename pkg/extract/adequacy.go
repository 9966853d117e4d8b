package extract

import "unicode/utf8"

// devanagariLo and devanagariHi bound the Unicode block shared by Marathi
// and Hindi. The range is inclusive on both ends; an off-by-one here
// silently degrades extraction quality for every Devanagari document.
const (
	devanagariLo = 0x0900
	devanagariHi = 0x097F
)

// ContainsTargetScript reports whether s holds at least one Devanagari
// code point. This single predicate drives every adequacy and replacement
// decision in the cascade.
func ContainsTargetScript(s string) bool {
	for _, r := range s {
		if r >= devanagariLo && r <= devanagariHi {
			return true
		}
	}
	return false
}

// Policy decides whether extracted text is good enough to stop cascading
// to a more expensive strategy. The length thresholds vary across
// deployments and are configuration, not invariants.
type Policy struct {
	// MinLen is the minimum rune count for text to count as adequate, and
	// the floor under which the pure page fallback is triggered.
	MinLen int
	// OCRMinLen is the floor under which the OCR stage is considered;
	// OCR additionally requires the running best to lack target script.
	OCRMinLen int
	// RequireScript demands target-script presence for adequacy. Turn it
	// off when MinLen is generously large for script-free corpora.
	RequireScript bool
}

// DefaultPolicy mirrors the thresholds used in production intake.
func DefaultPolicy() Policy {
	return Policy{MinLen: 50, OCRMinLen: 80, RequireScript: true}
}

// Adequate reports whether text is good enough that cheaper strategies
// need not be improved upon.
func (p Policy) Adequate(s string) bool {
	if runeLen(s) < p.MinLen {
		return false
	}
	return !p.RequireScript || ContainsTargetScript(s)
}

// Length comparisons throughout the cascade use rune counts, not byte
// counts: Devanagari runs three bytes per rune and byte lengths would
// bias every "longer" rule toward Latin text.
func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// longerOrNewScript adopts cand when it is longer than best, or when it
// newly contains target script that best lacks. Used by the block-reflow
// stage: never a blind overwrite.
func longerOrNewScript(best, cand string) bool {
	if runeLen(cand) > runeLen(best) {
		return true
	}
	return ContainsTargetScript(cand) && !ContainsTargetScript(best)
}

// scriptOrLonger adopts cand when it contains target script at all, or is
// strictly longer. Used by the secondary parser, which only runs while
// the best still lacks target script.
func scriptOrLonger(best, cand string) bool {
	return ContainsTargetScript(cand) || runeLen(cand) > runeLen(best)
}

// longerOrScript is scriptOrLonger with the length test first; the two
// differ only in evaluation order but are kept separate so each stage
// reads like its source rule.
func longerOrScript(best, cand string) bool {
	return runeLen(cand) > runeLen(best) || ContainsTargetScript(cand)
}
