package extract

import (
	"strings"
	"testing"
)

func TestContainsTargetScript(t *testing.T) {
	cases := []struct {
		in   string
		want bool
	}{
		{"रहिवासी", true},
		{"स्थानिक रहिवासी दाखला", true},
		{"residency certificate", false},
		{"", false},
		{"mixed रहिवासी text", true},
		{"ऀ", true},  // U+0900, low bound
		{"ॿ", true},  // U+097F, high bound
		{"ঀ", false}, // U+0980, Bengali, just past the block
	}
	for _, c := range cases {
		if got := ContainsTargetScript(c.in); got != c.want {
			t.Errorf("ContainsTargetScript(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestAdequate(t *testing.T) {
	p := DefaultPolicy()
	longDev := strings.Repeat("क", 50)
	longLat := strings.Repeat("a", 50)

	if p.Adequate("") {
		t.Error("empty text must not be adequate")
	}
	if p.Adequate("रहिवासी") {
		t.Error("short text must not be adequate even with target script")
	}
	if !p.Adequate(longDev) {
		t.Error("50 Devanagari runes must be adequate")
	}
	if p.Adequate(longLat) {
		t.Error("script-free text must not be adequate when script is required")
	}

	p.RequireScript = false
	if !p.Adequate(longLat) {
		t.Error("script-free text must be adequate once the script demand is lifted")
	}
}

func TestLengthIsRuneCount(t *testing.T) {
	// 50 Devanagari runes occupy 150 bytes; byte-based comparison would
	// treat this as triple its real length.
	s := strings.Repeat("क", 50)
	if got := runeLen(s); got != 50 {
		t.Errorf("runeLen = %d, want 50", got)
	}
}

func TestReplacementRules(t *testing.T) {
	if !longerOrNewScript("abc", "abcdef") {
		t.Error("longer candidate must win")
	}
	if longerOrNewScript("abcdef", "abc") {
		t.Error("shorter scriptless candidate must lose")
	}
	if !longerOrNewScript("abcdef", "कख") {
		t.Error("short candidate introducing target script must win")
	}
	if longerOrNewScript("कखग", "कख") {
		t.Error("shorter candidate must lose when best already has script")
	}

	if !scriptOrLonger("abcdef", "क") {
		t.Error("any target-script candidate must win for the secondary parser")
	}
	if scriptOrLonger("abcdef", "xyz") {
		t.Error("shorter scriptless candidate must lose")
	}

	if !longerOrScript("abc", "wxyz") {
		t.Error("longer candidate must win")
	}
	if !longerOrScript("abcdef", "क") {
		t.Error("target-script candidate must win regardless of length")
	}
}
