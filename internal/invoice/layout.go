package invoice

import (
	"github.com/go-pdf/fpdf"
)

const fontFamily = "Helvetica"

// layout wraps the text primitives the invoice uses. All strings pass
// through tr so non-ASCII symbols land in the core font's code page.
type layout struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
}

func (l *layout) font(style string, size float64) {
	l.pdf.SetFont(fontFamily, style, size)
}

func (l *layout) color(rgb [3]int) {
	l.pdf.SetTextColor(rgb[0], rgb[1], rgb[2])
}

func (l *layout) text(x, y float64, s string) {
	l.pdf.Text(x, y, l.tr(s))
}

// center prints s horizontally centred on the page
func (l *layout) center(y float64, s string) {
	s = l.tr(s)
	w, _ := l.pdf.GetPageSize()
	l.pdf.Text((w-l.pdf.GetStringWidth(s))/2, y, s)
}

// right prints s so that it ends at x
func (l *layout) right(x, y float64, s string) {
	s = l.tr(s)
	l.pdf.Text(x-l.pdf.GetStringWidth(s), y, s)
}

// pair prints a totals row: label on the left, value flush right
func (l *layout) pair(y float64, label, value string) {
	l.text(totalsLabelX, y, label)
	l.right(totalsValueX, y, value)
}

// labelled prints a small caption with a bold value underneath
func (l *layout) labelled(x, labelY, valueY float64, label, value string) {
	l.font("", 9)
	l.text(x, labelY, label)
	l.font("B", 10)
	l.text(x, valueY, value)
}

// wrap splits s into lines no wider than width at the current font. The
// lines are already translated and go straight to pdf.Text.
func (l *layout) wrap(s string, width float64) []string {
	raw := l.pdf.SplitLines([]byte(l.tr(s)), width)
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		lines = append(lines, string(line))
	}
	return lines
}
