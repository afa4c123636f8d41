package pdfexport

import (
	"bytes"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"
	"github.com/sporadisk/selfcare/format"
)

// Page geometry in millimeters (A4 portrait).
const (
	pageWidth    = 210.0
	marginX      = 14.0
	contentWidth = pageWidth - 2*marginX
	bannerHeight = 40.0
	titleY       = 20.0
	subtitleY    = 30.0
	tableTop     = 50.0
	tableBottom  = 277.0
	footerY      = 285.0
)

const (
	fontFamily   = "Helvetica"
	titleSize    = 22
	subtitleSize = 12
	headSize     = 11
	bodySize     = 10
	footerSize   = 9

	creator      = "selfcare"
	pageAlias    = "{nb}"
	footerFormat = "Confidential document - for professional use | Page %d of %s"
)

type rgb struct {
	r, g, b int
}

var (
	accent = rgb{207, 155, 44}
	white  = rgb{255, 255, 255}
	black  = rgb{0, 0, 0}
	gray   = rgb{128, 128, 128}
	stripe = rgb{245, 245, 245}
)

// document is one export in progress: a banner on the first page, a single
// table and a numbered footer on every page.
type document struct {
	pdf   *fpdf.Fpdf
	tr    func(string) string
	table *table
}

func newDocument(title string, now time.Time) *document {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginX, tableTop, marginX)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCellMargin(cellPadding)
	pdf.SetCatalogSort(true)
	pdf.SetCreationDate(now)
	pdf.SetModificationDate(now)
	pdf.SetTitle(title, true)
	pdf.SetCreator(creator, true)

	// The total page count is unknown until layout is done; fpdf swaps the
	// alias for the final count when the document is written out.
	pdf.AliasNbPages(pageAlias)

	d := &document{
		pdf: pdf,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
	}
	pdf.SetFooterFunc(d.footer)

	pdf.AddPage()
	d.banner(title, now)
	return d
}

func (d *document) banner(title string, now time.Time) {
	d.setFill(accent)
	d.pdf.Rect(0, 0, pageWidth, bannerHeight, "F")

	d.setText(white)
	d.pdf.SetFont(fontFamily, "", titleSize)
	d.centerText(titleY, title)

	d.pdf.SetFont(fontFamily, "", subtitleSize)
	d.centerText(subtitleY, format.ExportedAt(now))

	d.setText(black)
}

func (d *document) footer() {
	d.pdf.SetFont(fontFamily, "", footerSize)
	d.setText(gray)
	d.centerText(footerY, fmt.Sprintf(footerFormat, d.pdf.PageNo(), pageAlias))
}

func (d *document) centerText(y float64, s string) {
	txt := d.tr(s)
	w := d.pdf.GetStringWidth(txt)
	d.pdf.Text((pageWidth-w)/2, y, txt)
}

func (d *document) setFill(c rgb) {
	d.pdf.SetFillColor(c.r, c.g, c.b)
}

func (d *document) setText(c rgb) {
	d.pdf.SetTextColor(c.r, c.g, c.b)
}

// pageCount is only final once layout is complete.
func (d *document) pageCount() int {
	return d.pdf.PageCount()
}

func (d *document) bytes() ([]byte, error) {
	if err := d.pdf.Error(); err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}

	var buf bytes.Buffer
	err := d.pdf.Output(&buf)
	if err != nil {
		return nil, fmt.Errorf("pdf.Output: %w", err)
	}
	return buf.Bytes(), nil
}
