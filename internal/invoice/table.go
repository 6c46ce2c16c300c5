package invoice

import (
	"github.com/go-pdf/fpdf"
)

// tableStyle controls the look of the charge table
type tableStyle struct {
	x, width    float64
	amountWidth float64
	fontSize    float64
	lineHeight  float64
	padding     float64
	topMargin   float64
	bottomLimit float64
	headFill    [3]int
	stripeFill  [3]int
	borderGray  int
}

// chargeTable draws a two-column table, breaking onto new pages as rows
// run out of room and repeating the header on each page.
type chargeTable struct {
	pdf   *fpdf.Fpdf
	tr    func(string) string
	style tableStyle
	head  [2]string
	y     float64
	rows  int
}

func newChargeTable(pdf *fpdf.Fpdf, tr func(string) string, style tableStyle, head [2]string, startY float64) *chargeTable {
	t := &chargeTable{pdf: pdf, tr: tr, style: style, head: head, y: startY}
	if t.y+t.headerHeight() > style.bottomLimit {
		t.newPage()
		return t
	}
	t.drawHeader()
	return t
}

func (t *chargeTable) headerHeight() float64 {
	return t.style.lineHeight + 2*t.style.padding
}

func (t *chargeTable) newPage() {
	t.pdf.AddPage()
	t.y = t.style.topMargin
	t.drawHeader()
}

func (t *chargeTable) drawHeader() {
	s := t.style
	h := t.headerHeight()
	descWidth := s.width - s.amountWidth

	t.pdf.SetFillColor(s.headFill[0], s.headFill[1], s.headFill[2])
	t.pdf.SetDrawColor(s.borderGray, s.borderGray, s.borderGray)
	t.pdf.SetLineWidth(0.1)
	t.pdf.Rect(s.x, t.y, s.width, h, "FD")

	t.pdf.SetFont("Helvetica", "B", s.fontSize)
	t.pdf.SetTextColor(255, 255, 255)
	baseline := t.y + s.padding + s.lineHeight*0.75
	t.pdf.Text(s.x+s.padding, baseline, t.tr(t.head[0]))
	t.rightText(s.x+descWidth+s.amountWidth-s.padding, baseline, t.head[1])

	t.y += h
}

// AddRow appends a row, wrapping the description to the column width
func (t *chargeTable) AddRow(description, amount string) {
	s := t.style
	descWidth := s.width - s.amountWidth

	t.pdf.SetFont("Helvetica", "", s.fontSize)
	lines := t.pdf.SplitLines([]byte(t.tr(description)), descWidth-2*s.padding)
	if len(lines) == 0 {
		lines = [][]byte{nil}
	}
	h := float64(len(lines))*s.lineHeight + 2*s.padding

	if t.y+h > s.bottomLimit {
		t.newPage()
		t.pdf.SetFont("Helvetica", "", s.fontSize)
	}

	style := "D"
	if t.rows%2 == 1 {
		t.pdf.SetFillColor(s.stripeFill[0], s.stripeFill[1], s.stripeFill[2])
		style = "FD"
	}
	t.pdf.SetDrawColor(s.borderGray, s.borderGray, s.borderGray)
	t.pdf.Rect(s.x, t.y, descWidth, h, style)
	t.pdf.Rect(s.x+descWidth, t.y, s.amountWidth, h, style)

	t.pdf.SetTextColor(0, 0, 0)
	baseline := t.y + s.padding + s.lineHeight*0.75
	for i, line := range lines {
		t.pdf.Text(s.x+s.padding, baseline+float64(i)*s.lineHeight, string(line))
	}
	t.rightText(s.x+s.width-s.padding, baseline, amount)

	t.y += h
	t.rows++
}

// Bottom returns the Y position just below the last drawn row
func (t *chargeTable) Bottom() float64 {
	return t.y
}

func (t *chargeTable) rightText(right, y float64, s string) {
	s = t.tr(s)
	t.pdf.Text(right-t.pdf.GetStringWidth(s), y, s)
}
