// Package inspect reads PDF documents back: page count and the text drawn on
// each page.
package inspect

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

type Document struct {
	Pages []Page
}

// Page holds the string operands of the page's Tj operators, in drawing
// order.
type Page struct {
	Number int
	Text   []string
}

func ReadFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("os.Open: %w", err)
	}
	defer f.Close()

	return Read(f)
}

func Read(rs io.ReadSeeker) (*Document, error) {
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed

	ctx, err := api.ReadValidateAndOptimize(rs, conf)
	if err != nil {
		return nil, fmt.Errorf("pdfcpu read: %w", err)
	}

	doc := &Document{}
	for pageNr := 1; pageNr <= ctx.PageCount; pageNr++ {
		r, err := pdfcpu.ExtractPageContent(ctx, pageNr)
		if err != nil {
			return nil, fmt.Errorf("pdfcpu.ExtractPageContent(%d): %w", pageNr, err)
		}

		var text []string
		if r != nil {
			data, err := io.ReadAll(r)
			if err != nil {
				return nil, fmt.Errorf("reading page %d: %w", pageNr, err)
			}
			text = showStrings(data)
		}

		doc.Pages = append(doc.Pages, Page{Number: pageNr, Text: text})
	}

	return doc, nil
}

func (d *Document) PageCount() int {
	return len(d.Pages)
}

// Contains reports whether s was drawn on the page as one string.
func (p Page) Contains(s string) bool {
	for _, t := range p.Text {
		if t == s {
			return true
		}
	}
	return false
}

// showRe matches a literal string followed by the Tj operator.
var showRe = regexp.MustCompile(`\(((?:\\.|[^\\)])*)\)\s*Tj`)

func showStrings(content []byte) []string {
	var out []string
	for _, m := range showRe.FindAllSubmatch(content, -1) {
		out = append(out, unescape(string(m[1])))
	}
	return out
}

// unescape resolves the backslash escapes allowed in PDF literal strings.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}

	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 == len(s) {
			sb.WriteByte(c)
			continue
		}

		i++
		switch s[i] {
		case 'n':
			sb.WriteByte('\n')
		case 'r':
			sb.WriteByte('\r')
		case 't':
			sb.WriteByte('\t')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		default:
			sb.WriteByte(s[i])
		}
	}
	return sb.String()
}
