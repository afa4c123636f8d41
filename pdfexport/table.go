package pdfexport

// Cell metrics in millimeters. Line heights are the font size times 1.15.
const (
	cellPadding    = 1.76
	bodyLineHeight = 4.06
	headLineHeight = 4.46
	headRowHeight  = headLineHeight + 2*cellPadding
)

type column struct {
	header string
	width  float64 // 0 takes the remaining width
}

type table struct {
	columns []column
	rows    [][]string
	widths  []float64
	pages   []tablePage
}

// tablePage records what was laid out on one page. A row split across pages
// is listed on every page it touches.
type tablePage struct {
	number int
	header bool
	rows   []int
}

func newTable(columns []column, rows [][]string) *table {
	return &table{
		columns: columns,
		rows:    rows,
	}
}

// resolveWidths gives fixed columns their width and shares what is left of
// total between the auto columns.
func (t *table) resolveWidths(total float64) {
	fixed := 0.0
	autos := 0
	for _, col := range t.columns {
		if col.width > 0 {
			fixed += col.width
			continue
		}
		autos++
	}

	auto := 0.0
	if autos > 0 && total > fixed {
		auto = (total - fixed) / float64(autos)
	}

	t.widths = make([]float64, len(t.columns))
	for i, col := range t.columns {
		t.widths[i] = col.width
		if col.width <= 0 {
			t.widths[i] = auto
		}
	}
}

func (t *table) currentPage() *tablePage {
	return &t.pages[len(t.pages)-1]
}

func (t *table) placeRow(index int) {
	page := t.currentPage()
	page.rows = append(page.rows, index)
}

func (d *document) layoutTable(t *table) {
	d.table = t
	t.resolveWidths(contentWidth)

	d.pdf.SetY(tableTop)
	d.headerRow(t)

	for i, row := range t.rows {
		d.pdf.SetFont(fontFamily, "", bodySize)
		cells := make([][]string, len(row))
		for c, txt := range row {
			cells[c] = d.wrap(d.tr(txt), t.widths[c])
		}
		d.bodyRow(t, i, cells)
	}
}

func (d *document) headerRow(t *table) {
	t.pages = append(t.pages, tablePage{number: d.pdf.PageNo(), header: true})

	y := d.pdf.GetY()
	d.pdf.SetFont(fontFamily, "B", headSize)
	d.setFill(accent)
	d.setText(white)

	x := marginX
	for c, col := range t.columns {
		d.pdf.Rect(x, y, t.widths[c], headRowHeight, "F")
		d.pdf.SetXY(x, y+cellPadding)
		d.pdf.CellFormat(t.widths[c], headLineHeight, d.tr(col.header), "", 0, "L", false, 0, "")
		x += t.widths[c]
	}

	d.setText(black)
	d.pdf.SetY(y + headRowHeight)
}

// bodyRow places one row, breaking to a new page when it would cross the
// printable bottom. Rows taller than a whole page are split line-wise.
func (d *document) bodyRow(t *table, index int, cells [][]string) {
	freshPage := tableBottom - tableTop - headRowHeight

	for {
		lines := maxLines(cells)
		need := rowHeight(lines)
		avail := tableBottom - d.pdf.GetY()

		if need <= avail {
			d.drawCells(t, index, cells, lines)
			return
		}

		if need <= freshPage && len(t.currentPage().rows) > 0 {
			d.nextPage(t)
			continue
		}

		fit := int((avail - 2*cellPadding) / bodyLineHeight)
		if fit < 1 {
			d.nextPage(t)
			continue
		}

		head, tail := splitCells(cells, fit)
		d.drawCells(t, index, head, fit)
		cells = tail
		d.nextPage(t)
	}
}

func (d *document) drawCells(t *table, index int, cells [][]string, lines int) {
	y := d.pdf.GetY()
	h := rowHeight(lines)

	if index%2 == 1 {
		d.setFill(stripe)
		d.pdf.Rect(marginX, y, contentWidth, h, "F")
	}

	d.pdf.SetFont(fontFamily, "", bodySize)
	d.setText(black)

	x := marginX
	for c, cell := range cells {
		for l, line := range cell {
			d.pdf.SetXY(x, y+cellPadding+float64(l)*bodyLineHeight)
			d.pdf.CellFormat(t.widths[c], bodyLineHeight, line, "", 0, "L", false, 0, "")
		}
		x += t.widths[c]
	}

	d.pdf.SetY(y + h)
	t.placeRow(index)
}

func (d *document) nextPage(t *table) {
	d.pdf.AddPage()
	d.pdf.SetY(tableTop)
	d.headerRow(t)
}

// wrap breaks txt into the lines of a cell w wide, measured with the current
// font. txt must already be in the font's code page (one byte per glyph).
// SplitLines leaves out the cell margins and breaks words longer than a line.
func (d *document) wrap(txt string, w float64) []string {
	split := d.pdf.SplitLines([]byte(txt), w)
	if len(split) == 0 {
		return []string{""}
	}

	lines := make([]string, len(split))
	for i, line := range split {
		lines[i] = string(line)
	}
	return lines
}

func rowHeight(lines int) float64 {
	return float64(lines)*bodyLineHeight + 2*cellPadding
}

func maxLines(cells [][]string) int {
	n := 1
	for _, cell := range cells {
		if len(cell) > n {
			n = len(cell)
		}
	}
	return n
}

func splitCells(cells [][]string, n int) (head, tail [][]string) {
	head = make([][]string, len(cells))
	tail = make([][]string, len(cells))
	for i, cell := range cells {
		if len(cell) <= n {
			head[i] = cell
			continue
		}
		head[i] = cell[:n]
		tail[i] = cell[n:]
	}
	return head, tail
}
