package extract

import (
	"reflect"
	"testing"
)

func TestTextFromContentStream(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"tj-literal", "BT (Hello) Tj ET", "Hello"},
		{"tj-outside-bt-ignored", "(noise) Tj BT (kept) Tj ET", "kept"},
		{"td-newline", "BT (Line one) Tj 0 -14 Td (Line two) Tj ET", "Line one\nLine two"},
		{"tj-array", "BT [(He) (llo)] TJ ET", "Hello"},
		{"quote-operator", "BT (a) Tj (b) ' ET", "a\nb"},
		{"nested-parens", `BT (outer (inner) tail) Tj ET`, "outer (inner) tail"},
		{"escapes", `BT (a\(b\)c\td) Tj ET`, "a(b)c\td"},
		{"octal-escape", `BT (\101\102) Tj ET`, "AB"},
		{"hex-printable", "BT <48656C6C6F> Tj ET", "Hello"},
		{"hex-cid-dropped", "BT <09050930> Tj ET", ""},
		{"comment-skipped", "BT % (ghost) Tj\n(real) Tj ET", "real"},
		{"empty", "", ""},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := textFromContentStream([]byte(c.in)); got != c.want {
				t.Errorf("got %q, want %q", got, c.want)
			}
		})
	}
}

func TestSortByPageNumber(t *testing.T) {
	names := []string{
		"doc_Content_page_10.txt",
		"doc_Content_page_2.txt",
		"doc_Content_page_1.txt",
	}
	sortByPageNumber(names)
	want := []string{
		"doc_Content_page_1.txt",
		"doc_Content_page_2.txt",
		"doc_Content_page_10.txt",
	}
	if !reflect.DeepEqual(names, want) {
		t.Errorf("got %v, want %v", names, want)
	}
}

func TestCollapseBlankLines(t *testing.T) {
	if got := collapseBlankLines("a\n\n\n\n\nb"); got != "a\n\nb" {
		t.Errorf("got %q", got)
	}
	if got := collapseBlankLines("\n\n  padded  \n\n"); got != "padded" {
		t.Errorf("got %q", got)
	}
}
