package export

import (
	"fmt"
	"time"

	"github.com/diillson/aws-audit-reports/internal/domain/entity"
	"github.com/jung-kurt/gofpdf"
)

const (
	pdfPageWidth = 277.0 // A4 paisagem menos as margens
	pdfRowHeight = 6.0
	pdfFontSize  = 7.0
	pdfCellPad   = 2.0
)

var (
	pdfHeaderColor     = [3]int{40, 40, 40}
	pdfHeaderTextColor = [3]int{255, 255, 255}
	pdfBodyTextColor   = [3]int{50, 50, 50}
	pdfStripeColor     = [3]int{245, 245, 245}
	pdfLineColor       = [3]int{200, 200, 200}
)

// renderPDF lays the report out as a landscape table. The header row is
// repeated on every page.
func renderPDF(report entity.Report) *gofpdf.Fpdf {
	pdf := gofpdf.New("L", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	generated := report.GeneratedAt
	if generated.IsZero() {
		generated = time.Now()
	}

	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont("Arial", "I", 8)
		pdf.SetTextColor(128, 128, 128)
		footerText := fmt.Sprintf("%s | %s", report.Kind.Title(), generated.UTC().Format("2006-01-02 15:04:05 UTC"))
		pdf.CellFormat(0, 10, tr(footerText), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 10, tr(fmt.Sprintf("Page %d", pdf.PageNo())), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()

	// Cabeçalho
	pdf.SetFillColor(pdfHeaderColor[0], pdfHeaderColor[1], pdfHeaderColor[2])
	pdf.SetTextColor(pdfHeaderTextColor[0], pdfHeaderTextColor[1], pdfHeaderTextColor[2])
	pdf.SetFont("Arial", "B", 14)
	pdf.CellFormat(0, 12, tr(fmt.Sprintf("  %s", report.Kind.Title())), "", 1, "L", true, 0, "")
	pdf.SetFont("Arial", "", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.SetTextColor(pdfBodyTextColor[0], pdfBodyTextColor[1], pdfBodyTextColor[2])
	summary := fmt.Sprintf("Resources listed: %d | Rows: %d", report.Listed, len(report.Records))
	if report.AccountID != "" {
		summary = fmt.Sprintf("Account ID: %s | %s", report.AccountID, summary)
	}
	summary = "  " + summary
	pdf.CellFormat(0, 8, tr(summary), "", 1, "L", true, 0, "")
	pdf.Ln(6)

	pdf.SetFont("Arial", "", pdfFontSize)
	widths := columnWidths(pdf, report.Header, report.Records)

	drawHeader := func() {
		pdf.SetFont("Arial", "B", pdfFontSize)
		pdf.SetFillColor(pdfHeaderColor[0], pdfHeaderColor[1], pdfHeaderColor[2])
		pdf.SetTextColor(pdfHeaderTextColor[0], pdfHeaderTextColor[1], pdfHeaderTextColor[2])
		for i, name := range report.Header {
			pdf.CellFormat(widths[i], pdfRowHeight+1, tr(fit(pdf, name, widths[i])), "", 0, "L", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", pdfFontSize)
		pdf.SetTextColor(pdfBodyTextColor[0], pdfBodyTextColor[1], pdfBodyTextColor[2])
	}

	drawHeader()
	_, pageHeight := pdf.GetPageSize()
	_, _, _, bottom := pdf.GetMargins()
	pdf.SetDrawColor(pdfLineColor[0], pdfLineColor[1], pdfLineColor[2])

	for n, record := range report.Records {
		if pdf.GetY()+pdfRowHeight > pageHeight-bottom-15 {
			pdf.AddPage()
			drawHeader()
		}
		pdf.SetFillColor(pdfStripeColor[0], pdfStripeColor[1], pdfStripeColor[2])
		for i, cell := range record {
			if i >= len(widths) {
				break
			}
			pdf.CellFormat(widths[i], pdfRowHeight, tr(fit(pdf, cell, widths[i])), "B", 0, "L", n%2 == 1, 0, "")
		}
		pdf.Ln(-1)
	}

	if len(report.Records) == 0 {
		pdf.Ln(4)
		pdf.SetFont("Arial", "I", 10)
		pdf.Cell(0, 8, tr("No resources matched this report."))
		pdf.Ln(8)
	}

	if len(report.Warnings) > 0 {
		pdf.Ln(8)
		pdf.SetFont("Arial", "B", 12)
		pdf.SetTextColor(0, 0, 0)
		pdf.Cell(0, 8, tr(fmt.Sprintf("Collection warnings (%d)", len(report.Warnings))))
		pdf.Ln(7)
		pdf.Line(pdf.GetX(), pdf.GetY(), pdf.GetX()+pdfPageWidth, pdf.GetY())
		pdf.Ln(3)
		pdf.SetFont("Arial", "", 8)
		pdf.SetTextColor(pdfBodyTextColor[0], pdfBodyTextColor[1], pdfBodyTextColor[2])
		for _, w := range report.Warnings {
			line := fmt.Sprintf("%s / %s: %s (%s)", w.Resource, w.Fact, w.Action, w.Reason)
			pdf.MultiCell(pdfPageWidth, 4, tr(line), "", "L", false)
		}
	}

	return pdf
}

// columnWidths sizes each column to its widest cell and scales the set down
// when it would overflow the page.
func columnWidths(pdf *gofpdf.Fpdf, header []string, records []entity.Record) []float64 {
	widths := make([]float64, len(header))
	total := 0.0
	for i, name := range header {
		w := pdf.GetStringWidth(name)
		for _, rec := range records {
			if i < len(rec) {
				if cw := pdf.GetStringWidth(rec[i]); cw > w {
					w = cw
				}
			}
		}
		widths[i] = w + 2*pdfCellPad
		total += widths[i]
	}
	if total > pdfPageWidth {
		scale := pdfPageWidth / total
		for i := range widths {
			widths[i] *= scale
		}
	}
	return widths
}

// fit trims text with an ellipsis so it stays within width.
func fit(pdf *gofpdf.Fpdf, text string, width float64) string {
	limit := width - pdfCellPad
	if pdf.GetStringWidth(text) <= limit {
		return text
	}
	runes := []rune(text)
	for len(runes) > 0 && pdf.GetStringWidth(string(runes)+"...") > limit {
		runes = runes[:len(runes)-1]
	}
	return string(runes) + "..."
}
