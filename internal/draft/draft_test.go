package draft

import (
	"strings"
	"testing"
	"time"
)

var (
	testMeta = Meta{Officer: "Chief Executive Officer, Zilla Parishad Chandrapur"}
	testDec  = Decision{CaseID: "ZP/CH/2025/0001", Subject: "Anganwadi Helper Selection"}
	testNow  = time.Date(2025, 7, 15, 10, 0, 0, 0, time.UTC)
)

func TestMarathiDraft(t *testing.T) {
	got := Marathi(testMeta, testDec, []string{"शासन निर्णय क्र. 123", "GR dated 01/01/2020"}, testNow)

	for _, want := range []string{
		"निर्णय-आदेश (अर्धन्यायिक – मराठी मसुदा)",
		"**फाईल क्र.:** ZP/CH/2025/0001",
		"**विषय :** Anganwadi Helper Selection",
		"**दिनांक :** 15/07/2025",
		"1.\tशासन निर्णय क्र. 123",
		"2.\tGR dated 01/01/2020",
		"पूर्वीची निवड रद्द",
		"जिल्हा परिषद, चंद्रपूर",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Marathi draft missing %q", want)
		}
	}
}

func TestEnglishDraft(t *testing.T) {
	got := English(testMeta, testDec, nil, testNow)

	for _, want := range []string{
		"Decision Order (Quasi-Judicial Draft)",
		"**File No.:** ZP/CH/2025/0001",
		"**Date :** 15/07/2025",
		"\n- —", // empty references placeholder
		"hereby cancelled",
		"appointment order within 7 days",
		"Zilla Parishad, Chandrapur",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("English draft missing %q", want)
		}
	}
}

func TestRenderBothWithSignature(t *testing.T) {
	sig := &Signature{
		Name:        "(Name of CEO)",
		Designation: "Chief Executive Officer",
		Place:       "Chandrapur",
		Date:        "15/07/2025",
	}
	got := Render(LangBoth, testMeta, testDec, nil, sig, testNow)

	if !strings.Contains(got, "मराठी मसुदा") || !strings.Contains(got, "Quasi-Judicial Draft") {
		t.Fatal("both drafts must be present")
	}
	if !strings.Contains(got, "स्थान: Chandrapur  दिनांक: 15/07/2025") {
		t.Error("Marathi signature tail missing")
	}
	if !strings.Contains(got, "Place: Chandrapur  Date: 15/07/2025") {
		t.Error("English signature tail missing")
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	a := Render(LangMarathi, testMeta, testDec, []string{"ref"}, nil, testNow)
	b := Render(LangMarathi, testMeta, testDec, []string{"ref"}, nil, testNow)
	if a != b {
		t.Error("identical inputs must render identically")
	}
}

func TestParseLanguage(t *testing.T) {
	cases := map[string]Language{
		"mr":      LangMarathi,
		"Marathi": LangMarathi,
		"en":      LangEnglish,
		"ENGLISH": LangEnglish,
		"both":    LangBoth,
		"":        LangBoth,
		"xyz":     LangBoth,
	}
	for in, want := range cases {
		if got := ParseLanguage(in); got != want {
			t.Errorf("ParseLanguage(%q) = %q, want %q", in, got, want)
		}
	}
}
