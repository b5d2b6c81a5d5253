package excel

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/nurpe/contracts-admin/internal/model"
)

const amountFormat = `#,##0.00 "€"`

type Generator struct{}

func NewGenerator() *Generator {
	return &Generator{}
}

// Generate writes a summary sheet with totals per financial type followed by
// one detail sheet per business area.
func (g *Generator) Generate(report model.FinancialReport) ([]byte, error) {
	file := excelize.NewFile()
	defer file.Close()

	amountStyle, err := file.NewStyle(&excelize.Style{CustomNumFmt: strPtr(amountFormat)})
	if err != nil {
		return nil, err
	}
	headerStyle, err := file.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return nil, err
	}
	styles := sheetStyles{amount: amountStyle, header: headerStyle}

	summarySheet := "Summary"
	if err := file.SetSheetName("Sheet1", summarySheet); err != nil {
		return nil, err
	}
	if err := g.writeSummary(file, summarySheet, report, styles); err != nil {
		return nil, err
	}

	usedNames := map[string]struct{}{summarySheet: {}}
	for _, group := range groupByArea(report.Values) {
		sheetName := buildSheetName(group.name, group.id, usedNames)
		usedNames[sheetName] = struct{}{}

		if _, err := file.NewSheet(sheetName); err != nil {
			return nil, err
		}
		if err := g.writeDetail(file, sheetName, group, styles); err != nil {
			return nil, err
		}
	}

	file.SetActiveSheet(0)
	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

type sheetStyles struct {
	amount int
	header int
}

type areaGroup struct {
	id     int64
	name   string
	values []model.FinancialValue
}

func (g *Generator) writeSummary(file *excelize.File, sheet string, report model.FinancialReport, styles sheetStyles) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	set("A1", "Report")
	set("B1", "Financial values")
	set("A2", "Generated")
	set("B2", formatDateTime(report.GeneratedAt))
	set("A3", "Filter")
	set("B3", safeValue(report.FilterLabel, "All"))
	set("A4", "Entries")
	set("B4", len(report.Values))

	tableRow := 6
	for i, header := range []string{"Financial type", "Entries", "Total"} {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}
	_ = file.SetCellStyle(sheet, fmt.Sprintf("A%d", tableRow), fmt.Sprintf("C%d", tableRow), styles.header)

	row := tableRow
	for _, t := range model.FinancialTypes {
		count, total := 0, decimal.Zero
		for _, v := range report.Values {
			if v.FinancialTypeID == t.ID {
				count++
				total = total.Add(v.FinancialAmount)
			}
		}
		row++
		set(fmt.Sprintf("A%d", row), t.Name)
		set(fmt.Sprintf("B%d", row), count)
		set(fmt.Sprintf("C%d", row), total.InexactFloat64())
	}
	_ = file.SetCellStyle(sheet, fmt.Sprintf("C%d", tableRow+1), fmt.Sprintf("C%d", row), styles.amount)

	_ = file.SetColWidth(sheet, "A", "A", 28)
	_ = file.SetColWidth(sheet, "B", "B", 16)
	_ = file.SetColWidth(sheet, "C", "C", 20)
	return nil
}

func (g *Generator) writeDetail(file *excelize.File, sheet string, group areaGroup, styles sheetStyles) error {
	set := func(cell string, value interface{}) {
		_ = file.SetCellValue(sheet, cell, value)
	}

	total := decimal.Zero
	for _, v := range group.values {
		total = total.Add(v.FinancialAmount)
	}

	set("A1", "Business area")
	set("B1", group.name)
	set("A2", "Entries")
	set("B2", len(group.values))
	set("A3", "Total")
	set("B3", total.InexactFloat64())
	_ = file.SetCellStyle(sheet, "B3", "B3", styles.amount)

	tableRow := 5
	headers := []string{"Period", "Customer", "Contract ID", "Financial type", "Amount"}
	for i, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, tableRow)
		set(cell, header)
	}
	_ = file.SetCellStyle(sheet, fmt.Sprintf("A%d", tableRow), fmt.Sprintf("E%d", tableRow), styles.header)

	for i, v := range group.values {
		row := tableRow + 1 + i
		set(fmt.Sprintf("A%d", row), formatPeriod(v.Year, v.Month))
		set(fmt.Sprintf("B%d", row), safeValue(v.CustomerName, ""))
		set(fmt.Sprintf("C%d", row), v.ContractID)
		set(fmt.Sprintf("D%d", row), v.DisplayTypeName())
		set(fmt.Sprintf("E%d", row), v.FinancialAmount.InexactFloat64())
	}
	if n := len(group.values); n > 0 {
		_ = file.SetCellStyle(sheet, fmt.Sprintf("E%d", tableRow+1), fmt.Sprintf("E%d", tableRow+n), styles.amount)
	}

	_ = file.SetColWidth(sheet, "A", "A", 12)
	_ = file.SetColWidth(sheet, "B", "B", 32)
	_ = file.SetColWidth(sheet, "C", "D", 16)
	_ = file.SetColWidth(sheet, "E", "E", 18)
	return nil
}

// groupByArea keeps area order by first appearance and periods ascending
// within an area.
func groupByArea(values []model.FinancialValue) []areaGroup {
	var groups []areaGroup
	index := map[int64]int{}
	for _, v := range values {
		i, ok := index[v.BusinessAreaID]
		if !ok {
			i = len(groups)
			index[v.BusinessAreaID] = i
			groups = append(groups, areaGroup{id: v.BusinessAreaID, name: v.AreaName})
		}
		groups[i].values = append(groups[i].values, v)
	}
	for i := range groups {
		slices.SortStableFunc(groups[i].values, func(a, b model.FinancialValue) int {
			return (a.Year*100 + a.Month) - (b.Year*100 + b.Month)
		})
	}
	return groups
}

func buildSheetName(name string, id int64, used map[string]struct{}) string {
	base := fmt.Sprintf("Area - %s", strings.TrimSpace(name))
	if strings.TrimSpace(name) == "" {
		base = fmt.Sprintf("Area - %d", id)
	}
	base = sanitizeSheetName(base)

	if len(base) > 31 {
		base = base[:31]
	}

	nameCandidate := base
	counter := 2
	for {
		if _, exists := used[nameCandidate]; !exists {
			return nameCandidate
		}
		suffix := fmt.Sprintf("-%d", counter)
		trimmed := base
		if len(trimmed)+len(suffix) > 31 {
			trimmed = trimmed[:31-len(suffix)]
		}
		nameCandidate = trimmed + suffix
		counter++
	}
}

func sanitizeSheetName(value string) string {
	replacer := strings.NewReplacer(
		"[", "-",
		"]", "-",
		":", "-",
		"*", "-",
		"?", "-",
		"/", "-",
		"\\", "-",
	)
	value = strings.TrimSpace(replacer.Replace(value))
	if value == "" {
		return "Sheet"
	}
	return value
}

func formatPeriod(year, month int) string {
	if year == 0 || month < 1 || month > 12 {
		return ""
	}
	return fmt.Sprintf("%d-%02d", year, month)
}

func formatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format("2006-01-02 15:04:05")
}

func safeValue(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}

func strPtr(s string) *string {
	return &s
}
