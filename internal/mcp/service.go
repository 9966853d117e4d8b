package mcp

import (
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/nivadahq/nivada/internal/draft"
	"github.com/nivadahq/nivada/internal/heuristics"
	"github.com/nivadahq/nivada/pkg/extract"
)

type Service struct {
	pipeline *extract.Pipeline
}

func NewService(pipeline *extract.Pipeline) *Service {
	return &Service{pipeline: pipeline}
}

// --- Tool Handlers ---

func (s *Service) ExtractText(ctx context.Context, req *mcp.CallToolRequest, args ExtractTextArgs) (*mcp.CallToolResult, ExtractTextResult, error) {
	data, err := base64.StdEncoding.DecodeString(args.ContentBase64)
	if err != nil {
		return nil, ExtractTextResult{}, fmt.Errorf("content_base64 is not valid base64: %w", err)
	}

	kind := extract.Kind(args.Kind)
	switch kind {
	case extract.KindText, extract.KindPDF, extract.KindImage:
	case "":
		kind = extract.KindForFilename(args.Filename)
	default:
		return nil, ExtractTextResult{}, fmt.Errorf("unknown kind %q (want text, pdf or image)", args.Kind)
	}

	res := s.pipeline.Extract(ctx, data, kind)
	return nil, ExtractTextResult{
		Text:  res.Text,
		Chars: len([]rune(res.Text)),
		Trace: res.Trace,
	}, nil
}

func (s *Service) AnalyzeCase(ctx context.Context, req *mcp.CallToolRequest, args AnalyzeCaseArgs) (*mcp.CallToolResult, AnalyzeCaseResult, error) {
	findings := heuristics.Analyze(args.CaseText, args.GRText, args.ExtraLegal)
	return nil, AnalyzeCaseResult{
		Checks:       findings.Checks,
		Risks:        findings.Risks,
		Confidence:   findings.Confidence,
		GRHighlights: heuristics.HighlightClauses(args.GRText),
	}, nil
}

func (s *Service) DraftOrder(ctx context.Context, req *mcp.CallToolRequest, args DraftOrderArgs) (*mcp.CallToolResult, DraftOrderResult, error) {
	if strings.TrimSpace(args.CaseID) == "" {
		return nil, DraftOrderResult{}, fmt.Errorf("case_id is required")
	}

	now := time.Now()
	meta := draft.Meta{Officer: args.Officer}
	if meta.Officer == "" {
		meta.Officer = "Chief Executive Officer, Zilla Parishad Chandrapur"
	}
	dec := draft.Decision{CaseID: args.CaseID, Subject: args.Subject}

	var sig *draft.Signature
	if args.Signatory != "" {
		sig = &draft.Signature{
			Name:        args.Signatory,
			Designation: args.Designation,
			Place:       args.Place,
			Date:        args.SignDate,
		}
		if sig.Date == "" {
			sig.Date = now.Format("02/01/2006")
		}
	}

	lang := draft.ParseLanguage(args.Language)
	md := draft.Render(lang, meta, dec, args.References, sig, now)
	return nil, DraftOrderResult{Language: string(lang), Markdown: md}, nil
}
