package mcp

// --- Tool Arguments ---

type ExtractTextArgs struct {
	ContentBase64 string `json:"content_base64" jsonschema:"Base64-encoded document bytes,required"`
	Filename      string `json:"filename,omitempty" jsonschema:"Original filename; the extension declares the document kind (.pdf, .txt, .png, ...)"`
	Kind          string `json:"kind,omitempty" jsonschema:"Explicit document kind, overriding the filename extension,enum=text,enum=pdf,enum=image"`
}

type ExtractTextResult struct {
	Text  string   `json:"text"`
	Chars int      `json:"chars"`
	Trace []string `json:"trace"`
}

type AnalyzeCaseArgs struct {
	CaseText   string `json:"case_text" jsonschema:"Extracted case document text,required"`
	GRText     string `json:"gr_text" jsonschema:"Extracted Government Resolution text,required"`
	ExtraLegal string `json:"extra_legal,omitempty" jsonschema:"Supporting authorities text (judgments, sections, procedures)"`
}

type AnalyzeCaseResult struct {
	Checks       []string `json:"checks"`
	Risks        []string `json:"risks"`
	Confidence   float64  `json:"confidence"`
	GRHighlights string   `json:"gr_highlights"`
}

type DraftOrderArgs struct {
	Language    string   `json:"language,omitempty" jsonschema:"Order language,enum=mr,enum=en,enum=both"`
	CaseID      string   `json:"case_id" jsonschema:"File/case number printed in the order header,required"`
	Subject     string   `json:"subject,omitempty" jsonschema:"Subject line of the order"`
	Officer     string   `json:"officer,omitempty" jsonschema:"Issuing office; defaults to the CEO, Zilla Parishad Chandrapur"`
	References  []string `json:"references,omitempty" jsonschema:"Reference documents listed in the order header"`
	Signatory   string   `json:"signatory,omitempty" jsonschema:"Signatory name; when set, a signature block is appended"`
	Designation string   `json:"designation,omitempty" jsonschema:"Signatory designation"`
	Place       string   `json:"place,omitempty" jsonschema:"Signing place"`
	SignDate    string   `json:"sign_date,omitempty" jsonschema:"Signing date (dd/mm/yyyy); defaults to today"`
}

type DraftOrderResult struct {
	Language string `json:"language"`
	Markdown string `json:"markdown"`
}
