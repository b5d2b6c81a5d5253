package pdf

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/shopspring/decimal"

	"github.com/nurpe/contracts-admin/internal/model"
)

const fontName = "Helvetica"

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate renders the one-page contract sheet: general info, ownership,
// financial values and status history.
func (g *Generator) Generate(doc model.ContractSheet) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(15, 15, 15)
	pdf.SetTitle("Contract "+doc.Contract.ContractNumber, true)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	c := doc.Contract

	pdf.SetFont(fontName, "B", 14)
	pdf.CellFormat(0, 10, tr(fmt.Sprintf("Contract %s", safeValue(c.ContractNumber))), "", 1, "C", false, 0, "")
	pdf.SetFont(fontName, "", 9)
	pdf.CellFormat(0, 5, fmt.Sprintf("Generated %s", formatDateTime(doc.GeneratedAt)), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	section(pdf, "General information")
	field(pdf, tr, "Customer", c.CustomerName)
	field(pdf, tr, "Project", c.ProjectName)
	field(pdf, tr, "WBS code", c.WBSCode)
	field(pdf, tr, "Status", string(c.Status))
	field(pdf, tr, "Period", fmt.Sprintf("%s to %s", formatDate(c.StartDate), formatDate(c.EndDate)))
	pdf.Ln(2)

	section(pdf, "Ownership")
	field(pdf, tr, "Manager", orNotAssigned(doc.ManagerName))
	field(pdf, tr, "Business area", orNotAssigned(doc.AreaName))
	pdf.Ln(2)

	section(pdf, "Financial values")
	if len(doc.Values) == 0 {
		note(pdf, "No financial values recorded.")
	} else {
		widths := []float64{30, 50, 50, 50}
		drawTableRow(pdf, tr, []string{"Period", "Type", "Business area", "Amount"}, widths, true)
		total := decimal.Zero
		for _, v := range doc.Values {
			total = total.Add(v.FinancialAmount)
			drawTableRow(pdf, tr, []string{
				fmt.Sprintf("%d-%02d", v.Year, v.Month),
				v.DisplayTypeName(),
				safeValue(v.AreaName),
				v.AmountDisplay(),
			}, widths, false)
		}
		pdf.SetFont(fontName, "B", 10)
		pdf.CellFormat(0, 7, tr("Total: "+model.FormatEUR(total)), "", 1, "R", false, 0, "")
	}
	pdf.Ln(2)

	section(pdf, "History")
	if len(doc.History) == 0 {
		note(pdf, "No status changes recorded.")
	} else {
		widths := []float64{60, 40, 40, 40}
		drawTableRow(pdf, tr, []string{"Modified at", "From", "To", "Modified by"}, widths, true)
		for _, h := range doc.History {
			drawTableRow(pdf, tr, []string{
				safeValue(h.ModifiedAt),
				safeValue(h.PreviousStatus),
				safeValue(h.NewStatus),
				fmt.Sprintf("#%d", h.ModifiedByID),
			}, widths, false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont(fontName, "B", 12)
	pdf.CellFormat(0, 8, title, "", 1, "L", false, 0, "")
}

func field(pdf *gofpdf.Fpdf, tr func(string) string, label, value string) {
	pdf.SetFont(fontName, "B", 10)
	pdf.CellFormat(40, 6, label+":", "", 0, "L", false, 0, "")
	pdf.SetFont(fontName, "", 10)
	pdf.MultiCell(0, 6, tr(safeValue(value)), "", "L", false)
}

func note(pdf *gofpdf.Fpdf, text string) {
	pdf.SetFont(fontName, "I", 10)
	pdf.CellFormat(0, 6, text, "", 1, "L", false, 0, "")
}

func drawTableRow(pdf *gofpdf.Fpdf, tr func(string) string, cols []string, widths []float64, header bool) {
	style := ""
	if header {
		style = "B"
	}
	pdf.SetFont(fontName, style, 10)
	last := len(cols) - 1
	for i, col := range cols {
		align := "L"
		if i == last {
			align = "R"
		}
		pdf.CellFormat(widths[i], 7, tr(col), "1", 0, align, false, 0, "")
	}
	pdf.Ln(-1)
}

func orNotAssigned(value string) string {
	if strings.TrimSpace(value) == "" {
		return "Not assigned"
	}
	return value
}

func safeValue(value string) string {
	if strings.TrimSpace(value) == "" {
		return "-"
	}
	return value
}

func formatDate(value string) string {
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return safeValue(value)
	}
	return t.Format("02 Jan 2006")
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}
