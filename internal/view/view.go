// Package view holds the embedded page templates and their helpers.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nurpe/contracts-admin/internal/model"
)

//go:embed templates/*.html
var files embed.FS

// Flash is a one-shot notification shown on the next rendered page.
type Flash struct {
	Kind    string
	Message string
	Detail  string
}

// Page is the envelope every template receives.
type Page struct {
	Title     string
	Section   string
	User      *model.User
	Flash     *Flash
	RequestID string
	Data      any
}

type ErrorData struct {
	Status  int
	Message string
}

// Templates parses every embedded template with the shared helpers.
func Templates() (*template.Template, error) {
	return template.New("").Funcs(Funcs()).ParseFS(files, "templates/*.html")
}

func Funcs() template.FuncMap {
	return template.FuncMap{
		"eur":        model.FormatEUR,
		"badge":      Badge,
		"counter":    Counter,
		"monthName":  MonthName,
		"date":       FormatDate,
		"add":        func(a, b int) int { return a + b },
		"percent":    Percent,
		"isSelected": func(a, b any) bool { return fmt.Sprint(a) == fmt.Sprint(b) },
		"nonZero":    func(d decimal.Decimal) bool { return !d.IsZero() },
		"statuses":   func() []model.ContractStatus { return model.ContractStatuses },
		"months":     func() []int { return []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12} },
	}
}

// Badge maps a contract status to the badge variant.
func Badge(status model.ContractStatus) string {
	switch status {
	case model.ContractStatusActive:
		return "success"
	case model.ContractStatusExpired:
		return "destructive"
	case model.ContractStatusCancelled:
		return "secondary"
	default:
		return "default"
	}
}

// Counter renders "3 / 10 contracts".
func Counter(shown, total int, noun string) string {
	return fmt.Sprintf("%d / %d %s", shown, total, noun)
}

func MonthName(m int) string {
	if m < 1 || m > 12 {
		return ""
	}
	return time.Month(m).String()
}

// FormatDate shortens a wire date or timestamp to YYYY-MM-DD.
func FormatDate(raw string) string {
	raw = strings.TrimSpace(raw)
	if len(raw) >= 10 {
		if _, err := time.Parse("2006-01-02", raw[:10]); err == nil {
			return raw[:10]
		}
	}
	return raw
}

// Percent is part of total as a whole percentage, for bar widths.
func Percent(part, total int64) int64 {
	if total <= 0 || part <= 0 {
		return 0
	}
	return min(part*100/total, 100)
}
