package server

import "github.com/nivadahq/nivada/internal/draft"

// ExtractResponse is the body returned by POST /v1/extract.
type ExtractResponse struct {
	File  string   `json:"file,omitempty"`
	Kind  string   `json:"kind"`
	Chars int      `json:"chars"`
	Text  string   `json:"text"`
	Trace []string `json:"trace"`
}

// AnalyzeResponse is the structured decision returned by POST /v1/analyze.
type AnalyzeResponse struct {
	Decision     draft.Decision `json:"decision"`
	Meta         draft.Meta     `json:"meta"`
	Refs         []string       `json:"refs"`
	CasePreview  string         `json:"case_preview"`
	GRPreview    string         `json:"gr_preview"`
	GRHighlights string         `json:"gr_highlights"`
	CaseTrace    []string       `json:"case_trace"`
	GRTrace      []string       `json:"gr_trace"`
	Warnings     []string       `json:"warnings,omitempty"`
}

// OrderRequest defines the body for order rendering.
type OrderRequest struct {
	Language  string           `json:"language"`
	Meta      draft.Meta       `json:"meta"`
	Decision  draft.Decision   `json:"decision"`
	Refs      []string         `json:"refs,omitempty"`
	Signature *draft.Signature `json:"signature,omitempty"`
}

// OrderResponse carries the rendered markdown draft(s).
type OrderResponse struct {
	Language string `json:"language"`
	Markdown string `json:"markdown"`
}

// ReportRequest defines the body for the XLSX audit export.
type ReportRequest struct {
	Decision  draft.Decision `json:"decision"`
	CaseTrace []string       `json:"case_trace,omitempty"`
	GRTrace   []string       `json:"gr_trace,omitempty"`
}
