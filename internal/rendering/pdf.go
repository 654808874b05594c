// Package rendering exports resume text as a plain PDF document.
package rendering

import (
	"bytes"
	"io"
	"math"
	"strings"

	"github.com/go-pdf/fpdf"
)

// Page layout in points on an A4 sheet.
const (
	PageHeight    = 841.89
	Margin        = 40.0
	LineHeight    = 15.0
	FontFamily    = "Helvetica"
	FontSize      = 12.0
	MaxLineLength = 100
)

// LinesPerPage is how many lines fit between the top and bottom margins.
var LinesPerPage = int(math.Floor((PageHeight-2*Margin)/LineHeight)) + 1

// Paginate splits text into pages of display lines. Each line is cut to
// MaxLineLength characters. There is always at least one page.
func Paginate(text string) [][]string {
	lines := strings.Split(text, "\n")

	pages := make([][]string, 0, len(lines)/LinesPerPage+1)
	for start := 0; start < len(lines); start += LinesPerPage {
		end := min(start+LinesPerPage, len(lines))

		page := make([]string, 0, end-start)
		for _, line := range lines[start:end] {
			page = append(page, truncate(line))
		}
		pages = append(pages, page)
	}
	return pages
}

// RenderPDF writes text to w as an A4 PDF, one input line per output line.
func RenderPDF(w io.Writer, text string) error {
	doc := fpdf.New("P", "pt", "A4", "")
	doc.SetAutoPageBreak(false, 0)
	doc.SetFont(FontFamily, "", FontSize)
	tr := doc.UnicodeTranslatorFromDescriptor("")

	for _, page := range Paginate(text) {
		doc.AddPage()
		y := Margin
		for _, line := range page {
			if line != "" {
				doc.Text(Margin, y, tr(line))
			}
			y += LineHeight
		}
	}

	if err := doc.Error(); err != nil {
		return &RenderError{Message: "failed to lay out document", Cause: err}
	}
	if err := doc.Output(w); err != nil {
		return &RenderError{Message: "failed to write document", Cause: err}
	}
	return nil
}

// RenderPDFBytes renders text and returns the document bytes.
func RenderPDFBytes(text string) ([]byte, error) {
	var buf bytes.Buffer
	if err := RenderPDF(&buf, text); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func truncate(line string) string {
	runes := []rune(line)
	if len(runes) <= MaxLineLength {
		return line
	}
	return string(runes[:MaxLineLength])
}
