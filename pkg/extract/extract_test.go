package extract

import (
	"context"
	"os"
	"reflect"
	"strings"
	"testing"
)

type fakePrimary struct {
	pages     []string
	blocks    []Block
	err       error
	blocksErr error
}

func (f *fakePrimary) StructuredText(data []byte) ([]string, error) {
	return f.pages, f.err
}

func (f *fakePrimary) Blocks(data []byte) ([]Block, error) {
	return f.blocks, f.blocksErr
}

type fakeSecondary struct {
	text string
	err  error
	// seenPath records the temp path handed to the parser so tests can
	// verify the scoped-file lifecycle.
	seenPath   string
	pathExists bool
}

func (f *fakeSecondary) ExtractPath(path string) (string, error) {
	f.seenPath = path
	if _, err := os.Stat(path); err == nil {
		f.pathExists = true
	}
	return f.text, f.err
}

type fakeFallback struct {
	text string
	err  error
}

func (f *fakeFallback) PageText(data []byte) (string, error) {
	return f.text, f.err
}

type fakeRasterizer struct {
	pages [][]byte
	err   error
}

func (f *fakeRasterizer) RenderPages(ctx context.Context, path string, scale int) ([][]byte, error) {
	return f.pages, f.err
}

type fakeRecognizer struct {
	text string
	err  error
}

func (f *fakeRecognizer) Recognize(ctx context.Context, image []byte) (string, error) {
	return f.text, f.err
}

func emptyCaps() *Capabilities {
	return &Capabilities{
		Primary:   &fakePrimary{},
		Secondary: &fakeSecondary{},
		Fallback:  &fakeFallback{},
		reasons:   map[string]string{},
	}
}

const devanagariPara = "अर्जदार सदर महसुली गावातील स्थानिक रहिवासी असून शासन निर्णयातील अटी व शर्तींची पूर्तता करतो असे नमूद केले आहे."

func hasEntry(trace []string, prefix string) bool {
	for _, e := range trace {
		if strings.HasPrefix(e, prefix) {
			return true
		}
	}
	return false
}

func TestTextKindNeverFails(t *testing.T) {
	p := NewPipeline(emptyCaps(), DefaultPolicy())
	inputs := [][]byte{
		[]byte("plain ascii"),
		[]byte(devanagariPara),
		{0xEF, 0xBB, 0xBF, 'h', 'i'},
		{0xFF, 0xFE, 'h', 0, 'i', 0},
		{0xC3, 0x28, 0xA0, 0xFF, 0x01}, // invalid UTF-8, odd length
	}
	for _, in := range inputs {
		res := p.Extract(context.Background(), in, KindText)
		if len(res.Trace) == 0 {
			t.Errorf("trace must never be empty for input %v", in)
		}
	}

	res := p.Extract(context.Background(), []byte("plain ascii"), KindText)
	if res.Text != "plain ascii" {
		t.Errorf("utf-8 decode got %q", res.Text)
	}
	res = p.Extract(context.Background(), []byte{0xFF, 0xFE, 'h', 0, 'i', 0}, KindText)
	if res.Text != "hi" {
		t.Errorf("utf-16le decode got %q", res.Text)
	}
}

func TestCleanPDFStopsAtStructuredText(t *testing.T) {
	caps := emptyCaps()
	caps.Primary = &fakePrimary{pages: []string{devanagariPara}}
	p := NewPipeline(caps, DefaultPolicy())

	res := p.Extract(context.Background(), []byte("%PDF"), KindPDF)
	if res.Text != devanagariPara {
		t.Fatalf("expected structured text adopted, got %q", res.Text)
	}
	if !hasEntry(res.Trace, "structured-text: adopted") {
		t.Errorf("missing adoption entry, trace: %v", res.Trace)
	}
	for _, stage := range []string{"reflow-blocks", "secondary-parser", "page-fallback", "rasterize-recognize"} {
		if !hasEntry(res.Trace, stage+": quality-skip") {
			t.Errorf("stage %s should be quality-skipped, trace: %v", stage, res.Trace)
		}
	}
}

func TestScannedPDFFallsThroughToOCR(t *testing.T) {
	caps := emptyCaps()
	caps.Rasterizer = &fakeRasterizer{pages: [][]byte{{1}, {2}}}
	caps.Recognizer = &fakeRecognizer{text: devanagariPara}
	p := NewPipeline(caps, DefaultPolicy())

	res := p.Extract(context.Background(), []byte("%PDF"), KindPDF)
	want := devanagariPara + "\n\n" + devanagariPara
	if res.Text != want {
		t.Fatalf("expected OCR output adopted, got %q", res.Text)
	}
	for _, stage := range []string{"structured-text", "reflow-blocks", "secondary-parser", "page-fallback"} {
		if !hasEntry(res.Trace, stage+": no-improvement") {
			t.Errorf("stage %s should record no-improvement, trace: %v", stage, res.Trace)
		}
	}
	if !hasEntry(res.Trace, "rasterize-recognize: adopted") {
		t.Errorf("OCR should be adopted, trace: %v", res.Trace)
	}
}

func TestScannedPDFWithoutOCRYieldsEmptyAndExplains(t *testing.T) {
	caps := emptyCaps()
	caps.reasons[CapRasterizer] = "pdftoppm: executable file not found in $PATH"
	p := NewPipeline(caps, DefaultPolicy())

	res := p.Extract(context.Background(), []byte("%PDF"), KindPDF)
	if res.Text != "" {
		t.Fatalf("expected empty result, got %q", res.Text)
	}
	if !hasEntry(res.Trace, "rasterize-recognize: capability-missing (pdftoppm") {
		t.Errorf("missing capability entry, trace: %v", res.Trace)
	}
}

func TestPrimaryUnavailableStillRunsLaterStages(t *testing.T) {
	caps := emptyCaps()
	caps.Primary = nil
	caps.reasons[CapPrimary] = "disabled"
	caps.Secondary = &fakeSecondary{text: devanagariPara}
	p := NewPipeline(caps, DefaultPolicy())

	res := p.Extract(context.Background(), []byte("%PDF"), KindPDF)
	if res.Text != devanagariPara {
		t.Fatalf("secondary parser output should win, got %q", res.Text)
	}
	if !hasEntry(res.Trace, "structured-text: capability-missing (disabled)") {
		t.Errorf("stage 1 must record its own capability-missing, trace: %v", res.Trace)
	}
	if !hasEntry(res.Trace, "reflow-blocks: capability-missing (disabled)") {
		t.Errorf("stage 2 must record its own capability-missing, trace: %v", res.Trace)
	}
	if !hasEntry(res.Trace, "secondary-parser: adopted") {
		t.Errorf("stage 3 should be adopted, trace: %v", res.Trace)
	}
}

func TestReplacementNeverRegresses(t *testing.T) {
	caps := emptyCaps()
	caps.Primary = &fakePrimary{
		pages:  []string{"hello there"},
		blocks: []Block{{Page: 1, X: 0, Y: 0, Text: "hi"}},
	}
	caps.Secondary = &fakeSecondary{text: "नमस्ते"}
	p := NewPipeline(caps, DefaultPolicy())

	res := p.Extract(context.Background(), []byte("%PDF"), KindPDF)
	// Blocks are shorter with no script: must not replace. Secondary has
	// target script: must replace.
	if res.Text != "नमस्ते" {
		t.Fatalf("got %q", res.Text)
	}
	if !hasEntry(res.Trace, "reflow-blocks: no-improvement") {
		t.Errorf("shorter scriptless text must not be adopted, trace: %v", res.Trace)
	}
	if !hasEntry(res.Trace, "rasterize-recognize: quality-skip (target script already present)") {
		t.Errorf("OCR must be skipped once script is present, trace: %v", res.Trace)
	}
}

func TestExecutionErrorCascades(t *testing.T) {
	caps := emptyCaps()
	caps.Primary = &fakePrimary{err: os.ErrInvalid, blocksErr: os.ErrInvalid}
	caps.Fallback = &fakeFallback{text: strings.Repeat("x", 90)}
	p := NewPipeline(caps, DefaultPolicy())

	res := p.Extract(context.Background(), []byte("%PDF"), KindPDF)
	if !hasEntry(res.Trace, "structured-text: execution-error") {
		t.Errorf("provider error must be recorded, trace: %v", res.Trace)
	}
	if res.Text != strings.Repeat("x", 90) {
		t.Errorf("fallback text should win, got %q", res.Text)
	}
}

func TestTraceIsDeterministic(t *testing.T) {
	caps := emptyCaps()
	caps.Primary = &fakePrimary{pages: []string{devanagariPara}}
	p := NewPipeline(caps, DefaultPolicy())

	data := []byte("%PDF")
	a := p.Extract(context.Background(), data, KindPDF)
	b := p.Extract(context.Background(), data, KindPDF)
	if !reflect.DeepEqual(a, b) {
		t.Errorf("identical input and capabilities must yield identical results:\n%v\n%v", a, b)
	}
}

func TestTempFileScopedToCall(t *testing.T) {
	sec := &fakeSecondary{text: ""}
	caps := emptyCaps()
	caps.Secondary = sec
	p := NewPipeline(caps, DefaultPolicy())

	p.Extract(context.Background(), []byte("%PDF-1.4 payload"), KindPDF)
	if sec.seenPath == "" {
		t.Fatal("secondary parser never received a path")
	}
	if !sec.pathExists {
		t.Error("temp file must exist while the parser runs")
	}
	if _, err := os.Stat(sec.seenPath); !os.IsNotExist(err) {
		t.Errorf("temp file must be removed after Extract returns: %v", err)
	}
}

func TestImageKindSingleStage(t *testing.T) {
	caps := emptyCaps()
	p := NewPipeline(caps, DefaultPolicy())
	res := p.Extract(context.Background(), []byte{0x89, 'P', 'N', 'G'}, KindImage)
	if res.Text != "" || !hasEntry(res.Trace, "image-recognize: capability-missing") {
		t.Errorf("missing recognizer must yield empty text and an explanation, got %q %v", res.Text, res.Trace)
	}
}

func TestUnknownKind(t *testing.T) {
	p := NewPipeline(emptyCaps(), DefaultPolicy())
	res := p.Extract(context.Background(), []byte("?"), KindUnknown)
	if res.Text != "" || len(res.Trace) == 0 {
		t.Errorf("unsupported kind must yield empty text with a trace, got %q %v", res.Text, res.Trace)
	}
}

func TestReflowOrdersTopToBottomLeftToRight(t *testing.T) {
	blocks := []Block{
		{Page: 1, X: 300, Y: 700, Text: "right-top"},
		{Page: 1, X: 10, Y: 100, Text: "bottom"},
		{Page: 1, X: 10, Y: 700, Text: "left-top"},
		{Page: 2, X: 10, Y: 700, Text: "page2"},
	}
	got := reflowBlocks(blocks)
	want := "left-topright-top\nbottom\npage2"
	if got != want {
		t.Errorf("reflow order wrong:\ngot  %q\nwant %q", got, want)
	}
}
