package export

import (
	"bytes"
	"fmt"
	"strings"

	"diet-planner/internal/shared"

	"github.com/go-pdf/fpdf"
	"golang.org/x/text/encoding/charmap"
)

// Page geometry, in millimetres and points.
const (
	pageMargin  = 20.0
	topMargin   = 10.0
	breakMargin = 20.0
	rowHeight   = 10.0
	fontFamily  = "Arial"
	bodySize    = 12.0
	headingSize = 14.0
	pdfCharset  = "ISO-8859-1"
)

// PDF renders plan as an A4 document, one row per wrapped line, flowing onto
// new pages as each fills.
func PDF(plan string) (Artifact, error) {
	doc, err := render(plan)
	if err != nil {
		return Artifact{}, err
	}

	var buf bytes.Buffer
	if err := doc.Output(&buf); err != nil {
		return Artifact{}, fmt.Errorf("failed to write pdf: %w", err)
	}
	return Artifact{MIMEType: MIMEPDF, Data: buf.Bytes()}, nil
}

func render(plan string) (*fpdf.Fpdf, error) {
	// Check the whole plan up front so a bad character fails before any drawing happens.
	if _, err := encodeLatin1(plan); err != nil {
		return nil, err
	}

	doc := fpdf.New("P", "mm", "A4", "")
	doc.SetMargins(pageMargin, topMargin, pageMargin)
	doc.SetAutoPageBreak(true, breakMargin)
	doc.AddPage()
	doc.SetFont(fontFamily, "", bodySize)

	for _, row := range Layout(plan) {
		if row.Blank {
			doc.Ln(rowHeight)
			continue
		}
		text, _ := encodeLatin1(row.Text)
		if row.Heading {
			doc.SetFont(fontFamily, "B", headingSize)
			doc.CellFormat(0, rowHeight, text, "", 1, "", false, 0, "")
			doc.SetFont(fontFamily, "", bodySize)
			continue
		}
		doc.CellFormat(0, rowHeight, text, "", 1, "", false, 0, "")
	}

	if err := doc.Error(); err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}
	return doc, nil
}

// encodeLatin1 converts s to single-byte ISO-8859-1, the charset of the core PDF fonts.
// Unrepresentable characters are an error, never substituted.
func encodeLatin1(s string) (string, error) {
	var b strings.Builder
	b.Grow(len(s))
	line := 1
	for _, r := range s {
		enc, ok := charmap.ISO8859_1.EncodeRune(r)
		if !ok {
			return "", &shared.EncodingError{Charset: pdfCharset, Rune: r, Line: line}
		}
		if r == '\n' {
			line++
		}
		b.WriteByte(enc)
	}
	return b.String(), nil
}
