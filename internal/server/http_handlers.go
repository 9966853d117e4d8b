package server

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/nivadahq/nivada/internal/draft"
	"github.com/nivadahq/nivada/internal/heuristics"
	"github.com/nivadahq/nivada/pkg/extract"
	"github.com/nivadahq/nivada/pkg/metrics"
)

// document is one uploaded or pasted input, normalized for the pipeline.
type document struct {
	name string
	kind extract.Kind
	data []byte
}

func (s *Server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeHTTPResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleCapabilities reports provider availability, mirroring the
// startup log for operators who missed it.
func (s *Server) handleCapabilities(w http.ResponseWriter, r *http.Request) {
	s.writeHTTPResponse(w, http.StatusOK, s.caps.Report())
}

// handleExtract runs the pipeline over a single uploaded file or pasted
// text and returns the transcription plus the full trace.
func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.requestContext(r)
	defer cancel()
	r.Body = http.MaxBytesReader(w, r.Body, s.uploadLimit())

	doc, err := s.readDocument(r, "file", "text")
	if err != nil {
		s.writeHTTPError(w, http.StatusBadRequest, err.Error())
		return
	}
	if doc == nil {
		s.writeHTTPError(w, http.StatusBadRequest, "provide a 'file' upload or a 'text' field")
		return
	}

	res := s.runExtract(ctx, doc)
	s.writeHTTPResponse(w, http.StatusOK, ExtractResponse{
		File:  doc.name,
		Kind:  string(doc.kind),
		Chars: len([]rune(res.Text)),
		Text:  res.Text,
		Trace: res.Trace,
	})
}

// handleAnalyze is the main intake operation: extract the case and GR
// documents, run the keyword heuristics, and return the structured
// decision with previews and the highlighted GR clauses.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := s.requestContext(r)
	defer cancel()
	r.Body = http.MaxBytesReader(w, r.Body, s.uploadLimit())

	caseDoc, err := s.readDocument(r, "case", "case_text")
	if err != nil {
		s.writeHTTPError(w, http.StatusBadRequest, err.Error())
		return
	}
	grDoc, err := s.readDocument(r, "gr", "gr_text")
	if err != nil {
		s.writeHTTPError(w, http.StatusBadRequest, err.Error())
		return
	}
	if caseDoc == nil || grDoc == nil {
		s.writeHTTPError(w, http.StatusBadRequest, "both 'case' and 'gr' documents are mandatory (file upload or *_text fallback)")
		return
	}

	caseRes := s.runExtract(ctx, caseDoc)
	grRes := s.runExtract(ctx, grDoc)

	// Supporting authorities (judgments, sections, procedures) are
	// optional and only feed the analysis context.
	var extraParts []string
	if r.MultipartForm != nil {
		for _, fh := range r.MultipartForm.File["authority"] {
			f, err := fh.Open()
			if err != nil {
				continue
			}
			data, err := io.ReadAll(f)
			f.Close()
			if err != nil {
				continue
			}
			res := s.runExtract(ctx, &document{
				name: fh.Filename,
				kind: extract.KindForFilename(fh.Filename),
				data: data,
			})
			if res.Text != "" {
				extraParts = append(extraParts, res.Text)
			}
		}
	}

	var warnings []string
	if strings.TrimSpace(caseRes.Text) == "" {
		warnings = append(warnings, "Case text empty (paste missing parts in fallback).")
	}
	if strings.TrimSpace(grRes.Text) == "" {
		warnings = append(warnings, "GR text empty (paste missing parts in fallback).")
	}

	findings := heuristics.Analyze(caseRes.Text, grRes.Text, strings.Join(extraParts, "\n\n"))

	subject := r.FormValue("subject")
	dec := draft.Decision{
		CaseID:             formOr(r, "case_id", "ZP/CH/2025/0001"),
		CaseType:           subject,
		Subject:            firstNonEmpty(r.FormValue("relief"), subject),
		RecommendedOutcome: "Approve with conditions (subject to GR compliance and natural justice).",
		Checks:             findings.Checks,
		Risks:              findings.Risks,
		Confidence:         findings.Confidence,
	}
	meta := draft.Meta{
		Officer:      formOr(r, "officer", "Chief Executive Officer, Zilla Parishad Chandrapur"),
		Jurisdiction: r.FormValue("jurisdiction"),
		HearingDate:  r.FormValue("hearing_date"),
		Issues:       r.FormValue("issues"),
	}

	caseText, grText := caseRes.Text, grRes.Text
	if s.cfg.Sensitive {
		caseText = heuristics.Redact(caseText)
		grText = heuristics.Redact(grText)
	}

	s.writeHTTPResponse(w, http.StatusOK, AnalyzeResponse{
		Decision:     dec,
		Meta:         meta,
		Refs:         splitLines(r.FormValue("references")),
		CasePreview:  preview(caseText),
		GRPreview:    preview(grText),
		GRHighlights: heuristics.HighlightClauses(grText),
		CaseTrace:    caseRes.Trace,
		GRTrace:      grRes.Trace,
		Warnings:     warnings,
	})
}

// handleOrder renders the bilingual order draft for a decision built by
// the analyze step (or assembled by the caller).
func (s *Server) handleOrder(w http.ResponseWriter, r *http.Request) {
	var req OrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeHTTPError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if req.Decision.CaseID == "" {
		s.writeHTTPError(w, http.StatusBadRequest, "decision.case_id is required")
		return
	}

	lang := draft.ParseLanguage(req.Language)
	md := draft.Render(lang, req.Meta, req.Decision, req.Refs, req.Signature, time.Now())
	s.writeHTTPResponse(w, http.StatusOK, OrderResponse{
		Language: string(lang),
		Markdown: md,
	})
}

// handleReport streams the XLSX audit workbook for a decision.
func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	var req ReportRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeHTTPError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return
	}
	if req.Decision.CaseID == "" {
		s.writeHTTPError(w, http.StatusBadRequest, "decision.case_id is required")
		return
	}

	buf, err := buildReport(&req)
	if err != nil {
		s.writeHTTPError(w, http.StatusInternalServerError, "report generation failed: "+err.Error())
		return
	}

	name := strings.ReplaceAll(req.Decision.CaseID, "/", "_") + "_audit.xlsx"
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

// runExtract wraps one pipeline call with metrics.
func (s *Server) runExtract(ctx context.Context, doc *document) extract.Result {
	start := time.Now()
	res := s.pipeline.Extract(ctx, doc.data, doc.kind)
	metrics.ExtractDuration.WithLabelValues(string(doc.kind)).Observe(time.Since(start).Seconds())
	for _, st := range res.Stages {
		metrics.ExtractStageOutcomes.WithLabelValues(st.Stage, string(st.Outcome)).Inc()
	}
	return res
}

// readDocument pulls one logical document from the request: a multipart
// file under fileField, else non-blank form text under textField. A nil
// document with nil error means the caller sent neither.
func (s *Server) readDocument(r *http.Request, fileField, textField string) (*document, error) {
	file, header, err := r.FormFile(fileField)
	if err == nil {
		defer file.Close()
		data, err := io.ReadAll(file)
		if err != nil {
			return nil, fmt.Errorf("read upload '%s': %w", fileField, err)
		}
		return &document{
			name: header.Filename,
			kind: extract.KindForFilename(header.Filename),
			data: data,
		}, nil
	}
	if err != http.ErrMissingFile && r.MultipartForm != nil {
		return nil, fmt.Errorf("upload '%s': %w", fileField, err)
	}
	if text := r.FormValue(textField); strings.TrimSpace(text) != "" {
		return &document{name: "(pasted)", kind: extract.KindText, data: []byte(text)}, nil
	}
	return nil, nil
}

func (s *Server) uploadLimit() int64 {
	return int64(s.cfg.MaxUploadMB) << 20
}

func (s *Server) writeHTTPResponse(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if payload != nil {
		json.NewEncoder(w).Encode(payload)
	}
}

func (s *Server) writeHTTPError(w http.ResponseWriter, statusCode int, message string) {
	s.writeHTTPResponse(w, statusCode, map[string]string{"error": message})
}

// previewRunes caps echoed document text; full text still flows through
// the heuristics.
const previewRunes = 1200

func preview(s string) string {
	r := []rune(s)
	if len(r) <= previewRunes {
		return s
	}
	return string(r[:previewRunes]) + "…"
}

func formOr(r *http.Request, field, fallback string) string {
	if v := strings.TrimSpace(r.FormValue(field)); v != "" {
		return v
	}
	return fallback
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func splitLines(s string) []string {
	var out []string
	for _, ln := range strings.Split(s, "\n") {
		if ln = strings.TrimSpace(ln); ln != "" {
			out = append(out, ln)
		}
	}
	return out
}
