package extract

import (
	"path/filepath"
	"strconv"
	"strings"
)

// Kind is the declared format of an uploaded document. The intake layer
// derives it from the filename extension; the pipeline trusts the
// declaration and does not sniff content.
type Kind string

const (
	KindText    Kind = "text"
	KindPDF     Kind = "pdf"
	KindImage   Kind = "image"
	KindUnknown Kind = "unknown"
)

// KindForFilename maps a filename to a document Kind.
func KindForFilename(name string) Kind {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt", ".md", ".text":
		return KindText
	case ".pdf":
		return KindPDF
	case ".png", ".jpg", ".jpeg", ".webp", ".tif", ".tiff":
		return KindImage
	default:
		return KindUnknown
	}
}

// Outcome tags what happened to one strategy during a pipeline run.
type Outcome string

const (
	// OutcomeAdopted means the strategy ran and its text replaced the
	// running best under the stage's replacement rule.
	OutcomeAdopted Outcome = "adopted"
	// OutcomeNoImprovement means the strategy ran but its output did not
	// beat the running best.
	OutcomeNoImprovement Outcome = "no-improvement"
	// OutcomeQualitySkip means the stage was not attempted because the
	// running best already satisfied the stage's trigger condition.
	OutcomeQualitySkip Outcome = "quality-skip"
	// OutcomeCapabilityMissing means a provider the stage needs could not
	// be initialized at process start.
	OutcomeCapabilityMissing Outcome = "capability-missing"
	// OutcomeExecutionError means an available provider failed while
	// running. The failure is absorbed and the cascade continues.
	OutcomeExecutionError Outcome = "execution-error"
)

// StageOutcome is the machine-readable form of one trace entry.
type StageOutcome struct {
	Stage   string
	Outcome Outcome
	// Chars is the rune count of the stage's output, when it produced one.
	Chars int
	// Detail carries the skip reason or error text.
	Detail string
}

// Result is the final value of one extraction call: the best-available
// text plus the ordered audit log of every strategy attempt, skip and
// failure. Trace is never empty.
type Result struct {
	Text   string         `json:"text"`
	Trace  []string       `json:"trace"`
	Stages []StageOutcome `json:"-"`
}

// tracer accumulates trace entries in execution order. Entries are
// deterministic: identical input bytes and capability availability
// produce identical traces.
type tracer struct {
	entries []string
	stages  []StageOutcome
}

func (t *tracer) add(stage string, out Outcome, chars int, detail string) {
	var b strings.Builder
	b.WriteString(stage)
	b.WriteString(": ")
	b.WriteString(string(out))
	switch out {
	case OutcomeAdopted, OutcomeNoImprovement:
		b.WriteString(" (")
		b.WriteString(strconv.Itoa(chars))
		b.WriteString(" chars")
		if detail != "" {
			b.WriteString(", ")
			b.WriteString(detail)
		}
		b.WriteString(")")
	default:
		if detail != "" {
			b.WriteString(" (")
			b.WriteString(detail)
			b.WriteString(")")
		}
	}
	t.entries = append(t.entries, b.String())
	t.stages = append(t.stages, StageOutcome{Stage: stage, Outcome: out, Chars: chars, Detail: detail})
}

func (t *tracer) note(s string) {
	t.entries = append(t.entries, s)
}
