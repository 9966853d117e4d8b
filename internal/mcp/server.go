package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/nivadahq/nivada/pkg/extract"
)

func NewMCPServer(pipeline *extract.Pipeline) *mcp.Server {
	service := NewService(pipeline)

	// Create Server instance
	s := mcp.NewServer(&mcp.Implementation{
		Name:    "Nivada Intake",
		Version: "0.1.0",
	}, nil) // Options can be nil for default

	// Register Tools using the Generic AddTool which inspects structs!

	mcp.AddTool(s, &mcp.Tool{
		Name:        "extract_text",
		Description: "Extract text from a document (PDF, image, or plain text) through the layered fallback pipeline. Returns the transcription and the per-stage trace.",
	}, service.ExtractText)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "analyze_case",
		Description: "Run the keyword checks/risks analysis over extracted case and GR text. Returns structured findings with a confidence score and highlighted GR clauses.",
	}, service.AnalyzeCase)

	mcp.AddTool(s, &mcp.Tool{
		Name:        "draft_order",
		Description: "Render a bilingual (Marathi/English) quasi-judicial order draft for a case.",
	}, service.DraftOrder)

	return s
}
