// Package extract implements the layered text-extraction pipeline for
// the document intake flow: plain-text decoding, a five-stage PDF
// cascade of increasing cost and decreasing precision, and single-pass
// OCR for raster images. Extract never returns an error; every internal
// failure is absorbed into the trace and the best text so far wins.
package extract

import (
	"context"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
)

// Pipeline runs extractions against a fixed capability registry and
// adequacy policy. One Extract call is synchronous and blocking;
// cancellation and deadlines are the host's responsibility and arrive
// through ctx, which is only consulted by subprocess-backed providers.
type Pipeline struct {
	caps   *Capabilities
	policy Policy
	scale  int
}

// NewPipeline wires a pipeline to an immutable capability registry.
func NewPipeline(caps *Capabilities, policy Policy) *Pipeline {
	if caps == nil {
		caps = &Capabilities{}
	}
	if policy.MinLen <= 0 {
		policy = DefaultPolicy()
	}
	return &Pipeline{caps: caps, policy: policy, scale: 2}
}

// SetScale overrides the rasterization upscale factor (default 2x).
// Call it before the pipeline starts serving; it is not safe to change
// concurrently with Extract.
func (p *Pipeline) SetScale(n int) {
	if n > 0 {
		p.scale = n
	}
}

// Extract produces the best-available transcription of data plus the
// ordered trace of every strategy attempt, skip and failure. It never
// fails: the worst case is an empty string with a trace explaining why.
func (p *Pipeline) Extract(ctx context.Context, data []byte, kind Kind) Result {
	switch kind {
	case KindText:
		return p.extractText(data)
	case KindPDF:
		return p.extractPDF(ctx, data)
	case KindImage:
		return p.extractImage(ctx, data)
	default:
		t := &tracer{}
		t.note("input: unsupported file kind")
		return Result{Text: "", Trace: t.entries, Stages: t.stages}
	}
}

func (p *Pipeline) extractText(data []byte) Result {
	t := &tracer{}
	text, encoding := decodeText(data)
	t.note(fmt.Sprintf("decode: %s (%d chars)", encoding, runeLen(text)))
	return Result{Text: text, Trace: t.entries, Stages: t.stages}
}

// pdfStage is one strategy descriptor in the cascade. Stages run in
// slice order; each is gated on the running best text, requires a
// capability, and replaces the best only under its own rule.
type pdfStage struct {
	name string
	// gate reports whether the stage should run given the running best,
	// plus the skip reason when it should not.
	gate func(best string) (bool, string)
	// available reports whether the capabilities the stage needs were
	// resolved, plus the recorded reason when they were not.
	available func() (bool, string)
	run       func(ctx context.Context, data []byte, tmpPath string) (string, error)
	adopt     func(best, cand string) bool
}

func (p *Pipeline) extractPDF(ctx context.Context, data []byte) Result {
	t := &tracer{}

	// The secondary parser and the rasterizer need a filesystem path,
	// while the primary engine reads memory. Materialize the bytes once;
	// the file is removed on every exit path.
	tmpFile, err := os.CreateTemp("", "nivada-*.pdf")
	var path string
	if err != nil {
		t.note(fmt.Sprintf("temp-file: write failed: %v", err))
	} else {
		path = tmpFile.Name()
		if _, werr := tmpFile.Write(data); werr != nil {
			t.note(fmt.Sprintf("temp-file: write failed: %v", werr))
			path = ""
		}
		tmpFile.Close()
		defer os.Remove(tmpFile.Name())
	}

	best := ""
	for _, st := range p.pdfStages() {
		ok, reason := st.gate(best)
		if !ok {
			t.add(st.name, OutcomeQualitySkip, 0, reason)
			continue
		}
		if ok, why := st.available(); !ok {
			t.add(st.name, OutcomeCapabilityMissing, 0, why)
			continue
		}
		cand, err := st.run(ctx, data, path)
		if err != nil {
			t.add(st.name, OutcomeExecutionError, 0, err.Error())
			continue
		}
		cand = strings.TrimSpace(cand)
		if cand != "" && st.adopt(best, cand) {
			best = cand
			t.add(st.name, OutcomeAdopted, runeLen(cand), scriptDetail(cand))
		} else {
			t.add(st.name, OutcomeNoImprovement, runeLen(cand), "")
		}
	}
	return Result{Text: strings.TrimSpace(best), Trace: t.entries, Stages: t.stages}
}

func scriptDetail(s string) string {
	if ContainsTargetScript(s) {
		return "devanagari=yes"
	}
	return "devanagari=no"
}

// pdfStages returns the ordered strategy descriptors. The gates and
// replacement rules are the load-bearing semantics of the whole
// pipeline; change them only in lockstep with the tests.
func (p *Pipeline) pdfStages() []pdfStage {
	caps := p.caps
	primaryAvailable := func() (bool, string) {
		return caps.Primary != nil, caps.Reason(CapPrimary)
	}
	return []pdfStage{
		{
			name: "structured-text",
			gate: func(best string) (bool, string) {
				if p.policy.Adequate(best) {
					return false, "text already adequate"
				}
				return true, ""
			},
			available: primaryAvailable,
			run: func(_ context.Context, data []byte, _ string) (string, error) {
				pages, err := caps.Primary.StructuredText(data)
				if err != nil {
					return "", err
				}
				return strings.Join(pages, "\n"), nil
			},
			adopt: longerOrNewScript,
		},
		{
			name: "reflow-blocks",
			gate: func(best string) (bool, string) {
				if p.policy.Adequate(best) {
					return false, "text already adequate"
				}
				return true, ""
			},
			available: primaryAvailable,
			run: func(_ context.Context, data []byte, _ string) (string, error) {
				blocks, err := caps.Primary.Blocks(data)
				if err != nil {
					return "", err
				}
				return reflowBlocks(blocks), nil
			},
			adopt: longerOrNewScript,
		},
		{
			name: "secondary-parser",
			gate: func(best string) (bool, string) {
				if ContainsTargetScript(best) {
					return false, "target script already present"
				}
				return true, ""
			},
			available: func() (bool, string) {
				return caps.Secondary != nil, caps.Reason(CapSecondary)
			},
			run: func(_ context.Context, _ []byte, path string) (string, error) {
				if path == "" {
					return "", fmt.Errorf("no temp file for path-based parser")
				}
				return caps.Secondary.ExtractPath(path)
			},
			adopt: scriptOrLonger,
		},
		{
			name: "page-fallback",
			gate: func(best string) (bool, string) {
				if runeLen(best) >= p.policy.MinLen {
					return false, "text above minimum length"
				}
				return true, ""
			},
			available: func() (bool, string) {
				return caps.Fallback != nil, caps.Reason(CapFallback)
			},
			run: func(_ context.Context, data []byte, _ string) (string, error) {
				return caps.Fallback.PageText(data)
			},
			adopt: longerOrScript,
		},
		{
			name: "rasterize-recognize",
			gate: func(best string) (bool, string) {
				if runeLen(best) >= p.policy.OCRMinLen {
					return false, "text above OCR length floor"
				}
				if ContainsTargetScript(best) {
					return false, "target script already present"
				}
				return true, ""
			},
			available: func() (bool, string) {
				if caps.Rasterizer == nil {
					return false, caps.Reason(CapRasterizer)
				}
				return caps.Recognizer != nil, caps.Reason(CapRecognizer)
			},
			run: func(ctx context.Context, _ []byte, path string) (string, error) {
				if path == "" {
					return "", fmt.Errorf("no temp file for rasterizer")
				}
				return p.recognizePDF(ctx, path)
			},
			adopt: longerOrScript,
		},
	}
}

// reflowBlocks approximates natural reading order: within each page,
// fragments sort top-to-bottom then left-to-right on coordinates rounded
// to one decimal. PDF content-stream order frequently is not visual
// order for multi-column or Devanagari-influenced layouts, which is the
// whole point of this stage. PDF Y grows upward, so top of page means
// larger Y.
func reflowBlocks(blocks []Block) string {
	sorted := make([]Block, len(blocks))
	copy(sorted, blocks)
	round1 := func(v float64) float64 { return math.Round(v*10) / 10 }
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if a.Page != b.Page {
			return a.Page < b.Page
		}
		ay, by := round1(a.Y), round1(b.Y)
		if ay != by {
			return ay > by
		}
		return round1(a.X) < round1(b.X)
	})

	var out strings.Builder
	lastPage := -1
	lastY := math.Inf(1)
	for _, b := range sorted {
		text := b.Text
		if text == "" {
			continue
		}
		if lastPage != -1 {
			if b.Page != lastPage || round1(b.Y) != lastY {
				out.WriteString("\n")
			}
		}
		out.WriteString(text)
		lastPage = b.Page
		lastY = round1(b.Y)
	}
	return out.String()
}

// recognizePDF rasterizes every page and runs the multi-language OCR
// pass, concatenating page transcriptions with blank-line separators.
func (p *Pipeline) recognizePDF(ctx context.Context, path string) (string, error) {
	pages, err := p.caps.Rasterizer.RenderPages(ctx, path, p.scale)
	if err != nil {
		return "", err
	}
	var parts []string
	for i, img := range pages {
		text, err := p.caps.Recognizer.Recognize(ctx, img)
		if err != nil {
			return "", fmt.Errorf("page %d: %w", i+1, err)
		}
		parts = append(parts, text)
	}
	return strings.Join(parts, "\n\n"), nil
}

// extractImage is single-stage: there is no cheaper structural
// alternative for raster-only input.
func (p *Pipeline) extractImage(ctx context.Context, data []byte) Result {
	t := &tracer{}
	const stage = "image-recognize"
	if p.caps.Recognizer == nil {
		t.add(stage, OutcomeCapabilityMissing, 0, p.caps.Reason(CapRecognizer))
		return Result{Text: "", Trace: t.entries, Stages: t.stages}
	}
	img, format, err := normalizeImage(data)
	if err != nil {
		t.add(stage, OutcomeExecutionError, 0, err.Error())
		return Result{Text: "", Trace: t.entries, Stages: t.stages}
	}
	t.note(fmt.Sprintf("image: decoded as %s", format))
	text, err := p.caps.Recognizer.Recognize(ctx, img)
	if err != nil {
		t.add(stage, OutcomeExecutionError, 0, err.Error())
		return Result{Text: "", Trace: t.entries, Stages: t.stages}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		t.add(stage, OutcomeNoImprovement, 0, "empty transcription")
	} else {
		t.add(stage, OutcomeAdopted, runeLen(text), scriptDetail(text))
	}
	return Result{Text: text, Trace: t.entries, Stages: t.stages}
}
