package extract

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// pdfcpuParser backs the secondary-parser capability with pdfcpu. It is
// an independent code path from the primary engine and operates on a
// filesystem path: content streams are dumped per page into a scratch
// directory and scanned for text-showing operators.
type pdfcpuParser struct{}

func (p *pdfcpuParser) ExtractPath(path string) (string, error) {
	outDir, err := os.MkdirTemp("", "nivada-content-*")
	if err != nil {
		return "", fmt.Errorf("content scratch dir: %w", err)
	}
	defer os.RemoveAll(outDir)

	conf := model.NewDefaultConfiguration()
	conf.Cmd = model.EXTRACTCONTENT
	conf.ValidationMode = model.ValidationRelaxed

	if err := api.ExtractContentFile(path, outDir, nil, conf); err != nil {
		return "", fmt.Errorf("pdfcpu content extraction: %w", err)
	}

	entries, err := os.ReadDir(outDir)
	if err != nil {
		return "", err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sortByPageNumber(names)

	var parts []string
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(outDir, name))
		if err != nil {
			continue
		}
		if text := textFromContentStream(data); text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, "\n"), nil
}

var pageNumRe = regexp.MustCompile(`\d+`)

// sortByPageNumber orders content dump filenames by their embedded page
// numbers so page 10 does not sort before page 2.
func sortByPageNumber(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		ni := pageNumRe.FindAllString(names[i], -1)
		nj := pageNumRe.FindAllString(names[j], -1)
		for k := 0; k < len(ni) && k < len(nj); k++ {
			a, _ := strconv.Atoi(ni[k])
			b, _ := strconv.Atoi(nj[k])
			if a != b {
				return a < b
			}
		}
		return names[i] < names[j]
	})
}

// textFromContentStream pulls the strings shown by Tj, TJ, ' and "
// operators inside BT/ET blocks. Literal strings are emitted with their
// raw byte values; hex strings are emitted only when they decode to
// mostly printable bytes, since CID-mapped hex needs font CMaps this
// fallback does not consult.
func textFromContentStream(stream []byte) string {
	var out strings.Builder
	var pending []string
	inText := false

	flush := func() {
		for _, s := range pending {
			out.WriteString(s)
		}
		pending = pending[:0]
	}

	i := 0
	for i < len(stream) {
		c := stream[i]
		switch {
		case c == '(' && inText:
			s, next := parseLiteralString(stream, i)
			pending = append(pending, s)
			i = next
		case c == '<' && inText && i+1 < len(stream) && stream[i+1] != '<':
			s, next := parseHexString(stream, i)
			if s != "" {
				pending = append(pending, s)
			}
			i = next
		case c == '%':
			for i < len(stream) && stream[i] != '\n' {
				i++
			}
		case isOperatorByte(c):
			start := i
			for i < len(stream) && isOperatorByte(stream[i]) {
				i++
			}
			switch string(stream[start:i]) {
			case "BT":
				inText = true
				pending = pending[:0]
			case "ET":
				inText = false
				pending = pending[:0]
			case "Tj", "TJ":
				flush()
			case "'", "\"":
				out.WriteString("\n")
				flush()
			case "Td", "TD", "T*":
				if out.Len() > 0 {
					out.WriteString("\n")
				}
				pending = pending[:0]
			}
		default:
			i++
		}
	}
	return collapseBlankLines(out.String())
}

func isOperatorByte(c byte) bool {
	return c >= 'A' && c <= 'Z' || c >= 'a' && c <= 'z' || c == '*' || c == '\'' || c == '"'
}

// parseLiteralString reads a PDF literal string starting at the opening
// parenthesis, honoring nesting and backslash escapes. Returns the
// decoded string and the index just past the closing parenthesis.
func parseLiteralString(stream []byte, start int) (string, int) {
	var b strings.Builder
	depth := 0
	i := start
	for i < len(stream) {
		c := stream[i]
		switch c {
		case '\\':
			if i+1 >= len(stream) {
				return b.String(), i + 1
			}
			i++
			switch e := stream[i]; e {
			case 'n':
				b.WriteByte('\n')
			case 'r':
				b.WriteByte('\r')
			case 't':
				b.WriteByte('\t')
			case 'b', 'f':
				// ignored control characters
			case '(', ')', '\\':
				b.WriteByte(e)
			default:
				if e >= '0' && e <= '7' {
					v := int(e - '0')
					for n := 0; n < 2 && i+1 < len(stream) && stream[i+1] >= '0' && stream[i+1] <= '7'; n++ {
						i++
						v = v*8 + int(stream[i]-'0')
					}
					b.WriteRune(rune(v))
				}
			}
			i++
		case '(':
			if depth > 0 {
				b.WriteByte(c)
			}
			depth++
			i++
		case ')':
			depth--
			if depth == 0 {
				return b.String(), i + 1
			}
			b.WriteByte(c)
			i++
		default:
			// raw bytes pass through with Latin-1 semantics
			b.WriteRune(rune(c))
			i++
		}
	}
	return b.String(), i
}

// parseHexString reads a PDF hex string starting at '<'. Returns the
// decoded text (or "" when the bytes look like CID values) and the index
// just past the closing '>'.
func parseHexString(stream []byte, start int) (string, int) {
	i := start + 1
	var nibbles []byte
	for i < len(stream) && stream[i] != '>' {
		c := stream[i]
		if v, ok := hexVal(c); ok {
			nibbles = append(nibbles, v)
		}
		i++
	}
	if i < len(stream) {
		i++ // consume '>'
	}
	if len(nibbles)%2 != 0 {
		nibbles = append(nibbles, 0)
	}
	raw := make([]byte, 0, len(nibbles)/2)
	for j := 0; j+1 < len(nibbles); j += 2 {
		raw = append(raw, nibbles[j]<<4|nibbles[j+1])
	}
	printable := 0
	for _, c := range raw {
		if c >= 0x20 && c < 0x7F {
			printable++
		}
	}
	if len(raw) == 0 || printable*2 < len(raw) {
		return "", i
	}
	var b strings.Builder
	for _, c := range raw {
		if c >= 0x20 {
			b.WriteRune(rune(c))
		}
	}
	return b.String(), i
}

func hexVal(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	}
	return 0, false
}

var blankLinesRe = regexp.MustCompile(`\n{3,}`)

func collapseBlankLines(s string) string {
	return strings.TrimSpace(blankLinesRe.ReplaceAllString(s, "\n\n"))
}
