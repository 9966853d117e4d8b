package heuristics

import (
	"strings"
	"testing"
)

func TestAnalyzeResidencyRule(t *testing.T) {
	gr := "शासन निर्णयातील स्थानिक रहिवासी अट बंधनकारक आहे. कलम 3 पहा."
	caseTxt := "उमेदवार गावापासून ३ कि.मी. अंतरावर राहतो. सुनावणी दिनांक 01/07/2025."

	f := Analyze(caseTxt, gr, "")
	wantChecks := []string{
		"GR mentions local residency requirement.",
		"Hearing/Natural justice referenced.",
		"GR contains clause/section markers.",
	}
	for _, w := range wantChecks {
		if !contains(f.Checks, w) {
			t.Errorf("missing check %q in %v", w, f.Checks)
		}
	}
	if !contains(f.Risks, "Selection appears non-local while GR requires local residency.") {
		t.Errorf("distance hint must raise the non-local risk, got %v", f.Risks)
	}
	// 3 checks, 1 risk: 0.6 + 0.3 - 0.1 = 0.8
	if f.Confidence != 0.8 {
		t.Errorf("confidence = %v, want 0.8", f.Confidence)
	}
}

func TestAnalyzeNaturalJusticeRisk(t *testing.T) {
	f := Analyze("The order was passed with no hearing granted.", "Section 12 applies.", "")
	if !contains(f.Risks, "Possible violation of natural justice.") {
		t.Errorf("missing natural-justice risk, got %v", f.Risks)
	}
}

func TestAnalyzeEmptyTextCapsConfidence(t *testing.T) {
	f := Analyze("", "कलम 5", "")
	if f.Confidence > 0.5 {
		t.Errorf("confidence must cap at 0.5 on empty text, got %v", f.Confidence)
	}
	if !contains(f.Risks, "Text extraction incomplete (paste missing text in fallback).") {
		t.Errorf("missing extraction-incomplete risk, got %v", f.Risks)
	}
}

func TestAnalyzeConfidenceBounds(t *testing.T) {
	// No checks, many risks: floor at 0.35.
	f := Analyze("", "", "")
	if f.Confidence < 0.35 || f.Confidence > 0.92 {
		t.Errorf("confidence %v out of [0.35, 0.92]", f.Confidence)
	}
	// All four checks, no risks: 0.6 + 0.3 = 0.9, under the cap.
	full := Analyze(
		"सुनावणी held; candidate passed 12th (HSC).",
		"स्थानिक रहिवासी कलम 2 section 4",
		"",
	)
	if full.Confidence != 0.9 {
		t.Errorf("confidence = %v, want 0.9", full.Confidence)
	}
}

func TestHighlightClauses(t *testing.T) {
	got := HighlightClauses("कलम 12A नुसार\nplain line\nlocal resident required")
	if !strings.Contains(got, `<span class="hl">कलम 12A</span>`) {
		t.Errorf("clause not wrapped: %s", got)
	}
	if !strings.Contains(got, "<div>plain line</div>") {
		t.Errorf("plain line must pass through unbulleted: %s", got)
	}
	if !strings.Contains(got, "<div>• ") {
		t.Errorf("relevant lines must be bulleted: %s", got)
	}

	if got := HighlightClauses("  \n "); got != "<em>No GR text available.</em>" {
		t.Errorf("blank input: %s", got)
	}
}

func TestHighlightEscapesHTML(t *testing.T) {
	got := HighlightClauses(`<script>alert(1)</script> Section 9`)
	if strings.Contains(got, "<script>") {
		t.Errorf("input markup must be escaped: %s", got)
	}
	if !strings.Contains(got, `<span class="hl">Section 9</span>`) {
		t.Errorf("clause must still be wrapped after escaping: %s", got)
	}
}

func TestHighlightCapsLines(t *testing.T) {
	text := strings.Repeat("line\n", 200)
	got := HighlightClauses(text)
	if n := strings.Count(got, "<div>"); n != maxHighlightLines+1 {
		t.Errorf("got %d divs, want %d lines plus ellipsis", n, maxHighlightLines+1)
	}
	if !strings.Contains(got, "<div>…</div>") {
		t.Error("truncation marker missing")
	}
}

func TestRedact(t *testing.T) {
	in := "Aadhaar 1234 5678 9012, PAN ABCDE1234F, mobile 9876543210, year 2025."
	got := Redact(in)
	for _, leaked := range []string{"1234 5678 9012", "ABCDE1234F", "9876543210"} {
		if strings.Contains(got, leaked) {
			t.Errorf("%q leaked through redaction: %s", leaked, got)
		}
	}
	if !strings.Contains(got, "2025") {
		t.Errorf("ordinary numbers must survive: %s", got)
	}
	if !strings.Contains(got, "XXXX XXXX XXXX") || !strings.Contains(got, "XXXXX9999X") || !strings.Contains(got, "XXXXXXXXXX") {
		t.Errorf("masks missing: %s", got)
	}
}

func contains(xs []string, want string) bool {
	for _, x := range xs {
		if x == want {
			return true
		}
	}
	return false
}
