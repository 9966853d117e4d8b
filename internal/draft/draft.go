// Package draft renders quasi-judicial order drafts in Marathi and
// English. Rendering is a pure function of the decision, metadata,
// references and the supplied clock, so identical inputs always produce
// identical markdown.
package draft

import (
	"fmt"
	"strings"
	"text/template"
	"time"
)

// Meta carries the office context printed in the order header.
type Meta struct {
	Officer     string `json:"officer"`
	Jurisdiction string `json:"jurisdiction"`
	HearingDate string `json:"hearing_date"`
	Issues      string `json:"issues"`
}

// Decision is the structured outcome built by the analyze step.
type Decision struct {
	CaseID             string   `json:"case_id"`
	CaseType           string   `json:"case_type"`
	Subject            string   `json:"subject"`
	RecommendedOutcome string   `json:"recommended_outcome"`
	Checks             []string `json:"checks"`
	Risks              []string `json:"risks"`
	Confidence         float64  `json:"confidence"`
}

// Signature is the optional signatory block appended to an order.
type Signature struct {
	Name        string `json:"name"`
	Designation string `json:"designation"`
	Place       string `json:"place"`
	Date        string `json:"date"`
}

// Language selects which draft(s) to render.
type Language string

const (
	LangMarathi Language = "mr"
	LangEnglish Language = "en"
	LangBoth    Language = "both"
)

// ParseLanguage maps a request value to a Language, defaulting to both.
func ParseLanguage(s string) Language {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mr", "marathi":
		return LangMarathi
	case "en", "english":
		return LangEnglish
	default:
		return LangBoth
	}
}

type orderData struct {
	Officer string
	CaseID  string
	Subject string
	Date    string
	Refs    string
}

var marathiTmpl = template.Must(template.New("mr").Parse(`📝 **निर्णय-आदेश (अर्धन्यायिक – मराठी मसुदा)**

**कार्यालय :** {{.Officer}}
**फाईल क्र.:** {{.CaseID}}
**विषय :** {{.Subject}}
**दिनांक :** {{.Date}}

**संदर्भ :**
	{{.Refs}}

⸻

**आदेश :**

सदर सुनावणीत सादर कागदपत्रे व शासन निर्णयातील तरतुदींचा विचार करता आढळून आले की –
	• शासन निर्णयातील **स्थानिक रहिवासी** अट बंधनकारक आहे.
	• ग्रामीण/आदिवासी प्रकल्पातील पदांसाठी उमेदवार सदर महसुली गावातील स्थानिक रहिवासी असणे आवश्यक आहे.
	• नोंदीप्रमाणे तक्रारदार पात्रता व स्थानिक निकष पूर्ण करतात.
	• पूर्वनिवड शासन निर्णयाविरोधात झालेली दिसते.

⸻

**निर्णय :**

म्हणून, अर्धन्यायिक अधिकाराने खालीलप्रमाणे आदेश देण्यात येतो –
	1. संबंधित पदाची **पूर्वीची निवड रद्द** करण्यात येते.
	2. शासन निर्णयातील अटीप्रमाणे **स्थानिक पात्र उमेदवारास** निवड व नियुक्ती मान्य करण्यात येते.
	3. संबंधित प्रकल्प अधिकारी यांनी **७ दिवसांच्या** आत आवश्यक पुढील कार्यवाही करून **नियुक्ती आदेश** निर्गमित करावा व अनुपालन अहवाल सादर करावा.

⸻

(मुख्य कार्यकारी अधिकारी)
जिल्हा परिषद, चंद्रपूर
`))

var englishTmpl = template.Must(template.New("en").Parse(`📝 **Decision Order (Quasi-Judicial Draft)**

**Office :** {{.Officer}}
**File No.:** {{.CaseID}}
**Subject :** {{.Subject}}
**Date :** {{.Date}}

**References :**{{.Refs}}

---

**Order :**
Upon consideration of the record and relevant Government Resolution(s), it is found that:
- The **local residency** condition is mandatory.
- For rural/tribal projects, the candidate must be a local resident of the revenue village.
- The complainant appears eligible and local per record.
- The earlier selection is contrary to the GR.

**Decision :**
1) The earlier selection is **hereby cancelled**.
2) As per the GR conditions, **the eligible local candidate** is approved for selection and appointment.
3) The concerned Project Officer shall issue the **appointment order within 7 days** and report compliance.

(Chief Executive Officer)
Zilla Parishad, Chandrapur
`))

// Marathi renders the Marathi order draft. now supplies the printed
// date; callers pass time.Now() outside tests.
func Marathi(meta Meta, dec Decision, refs []string, now time.Time) string {
	return render(marathiTmpl, orderData{
		Officer: meta.Officer,
		CaseID:  dec.CaseID,
		Subject: dec.Subject,
		Date:    now.Format("02/01/2006"),
		Refs:    marathiRefs(refs),
	})
}

// English renders the English order draft.
func English(meta Meta, dec Decision, refs []string, now time.Time) string {
	return render(englishTmpl, orderData{
		Officer: meta.Officer,
		CaseID:  dec.CaseID,
		Subject: dec.Subject,
		Date:    now.Format("02/01/2006"),
		Refs:    englishRefs(refs),
	})
}

// Render produces the draft(s) for the requested language; LangBoth
// joins the Marathi and English drafts with a horizontal rule.
func Render(lang Language, meta Meta, dec Decision, refs []string, sig *Signature, now time.Time) string {
	var parts []string
	if lang == LangMarathi || lang == LangBoth {
		s := Marathi(meta, dec, refs, now)
		if sig != nil {
			s += marathiSignatureTail(*sig)
		}
		parts = append(parts, s)
	}
	if lang == LangEnglish || lang == LangBoth {
		s := English(meta, dec, refs, now)
		if sig != nil {
			s += englishSignatureTail(*sig)
		}
		parts = append(parts, s)
	}
	return strings.Join(parts, "\n\n---\n\n")
}

func render(t *template.Template, data orderData) string {
	var b strings.Builder
	// Static templates over a flat struct cannot fail to execute.
	if err := t.Execute(&b, data); err != nil {
		return ""
	}
	return b.String()
}

// marathiRefs numbers references on tab-indented lines, with an em dash
// placeholder when none were supplied.
func marathiRefs(refs []string) string {
	if len(refs) == 0 {
		return "—"
	}
	lines := make([]string, len(refs))
	for i, r := range refs {
		lines[i] = fmt.Sprintf("%d.\t%s", i+1, r)
	}
	return strings.Join(lines, "\n\t")
}

// englishRefs renders references as a markdown bullet list.
func englishRefs(refs []string) string {
	if len(refs) == 0 {
		return "\n- —"
	}
	return "\n- " + strings.Join(refs, "\n- ")
}

func marathiSignatureTail(sig Signature) string {
	return fmt.Sprintf("\n\n---\n\n\n(%s)\n%s\nजिल्हा परिषद, चंद्रपूर\nस्थान: %s  दिनांक: %s\n",
		sig.Name, sig.Designation, sig.Place, sig.Date)
}

func englishSignatureTail(sig Signature) string {
	return fmt.Sprintf("\n\n---\n\n\n(%s)\n%s\nZilla Parishad, Chandrapur\nPlace: %s  Date: %s\n",
		sig.Name, sig.Designation, sig.Place, sig.Date)
}
