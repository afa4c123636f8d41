package pdfexport

import (
	"strings"
	"testing"
)

func TestWrap(t *testing.T) {
	doc := newDocument("wrap", exportTime)
	doc.pdf.SetFont(fontFamily, "", bodySize)

	width := 40.0
	text := "the quick brown fox jumps over the lazy dog and keeps running far away"
	lines := doc.wrap(text, width)

	if len(lines) < 2 {
		t.Fatalf("expected wrapping, got %q", lines)
	}
	inner := width - 2*cellPadding + 0.01
	for _, line := range lines {
		if doc.pdf.GetStringWidth(line) > inner {
			t.Errorf("line %q does not fit a %.0fmm cell", line, width)
		}
	}
	if strings.Join(lines, " ") != text {
		t.Errorf("wrapping lost words: %q", lines)
	}
}

func TestWrapLongWord(t *testing.T) {
	doc := newDocument("wrap", exportTime)
	doc.pdf.SetFont(fontFamily, "", bodySize)

	word := strings.Repeat("x", 200)
	lines := doc.wrap(word, 30)
	if len(lines) < 2 {
		t.Fatalf("expected the word to be broken, got %d line(s)", len(lines))
	}
	if strings.Join(lines, "") != word {
		t.Errorf("breaking lost characters")
	}
}

func TestWrapKeepsParagraphs(t *testing.T) {
	doc := newDocument("wrap", exportTime)
	doc.pdf.SetFont(fontFamily, "", bodySize)

	lines := doc.wrap("first\r\n\nthird\n", 100)
	want := []string{"first", "", "third"}
	if len(lines) != len(want) {
		t.Fatalf("expected %q, got %q", want, lines)
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], lines[i])
		}
	}

	if got := doc.wrap("", 100); len(got) != 1 || got[0] != "" {
		t.Errorf("expected one empty line for empty text, got %q", got)
	}
}

func TestWrapKeepsCodePageBytes(t *testing.T) {
	doc := newDocument("wrap", exportTime)
	doc.pdf.SetFont(fontFamily, "", bodySize)

	// In cp1252 "Â…" is C2 85, which reads as U+0085 when taken for UTF-8.
	for _, text := range []string{"Olá Â… fim", "a Â\u00a0b", "x â€… y"} {
		want := doc.tr(text)
		lines := doc.wrap(want, 100)
		if len(lines) != 1 || lines[0] != want {
			t.Errorf("%q: expected % x, got %q", text, want, lines)
		}
	}
}

func TestResolveWidths(t *testing.T) {
	tbl := newTable([]column{{width: 20}, {}, {width: 10}, {}}, nil)
	tbl.resolveWidths(100)

	want := []float64{20, 35, 10, 35}
	for i := range want {
		if tbl.widths[i] != want[i] {
			t.Errorf("column %d: expected %.0f, got %.2f", i, want[i], tbl.widths[i])
		}
	}
}

func TestSplitCells(t *testing.T) {
	cells := [][]string{{"a"}, {"1", "2", "3", "4"}, {"x", "y"}}
	head, tail := splitCells(cells, 2)

	if maxLines(head) != 2 {
		t.Errorf("expected head of 2 lines, got %d", maxLines(head))
	}
	if len(tail[0]) != 0 || len(tail[1]) != 2 || len(tail[2]) != 0 {
		t.Errorf("unexpected tail: %q", tail)
	}
	if maxLines(tail) != 2 {
		t.Errorf("expected tail of 2 lines, got %d", maxLines(tail))
	}
}
