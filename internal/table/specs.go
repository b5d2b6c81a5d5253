package table

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/nurpe/contracts-admin/internal/model"
)

var ContractSpec = Spec[model.Contract]{
	SearchFields: func(c model.Contract) []string {
		return []string{c.CustomerName, c.ContractNumber, c.ProjectName, c.WBSCode}
	},
	Filters: []Option{
		{Value: FilterAll, Label: "All statuses"},
		{Value: string(model.ContractStatusActive), Label: "Active"},
		{Value: string(model.ContractStatusExpired), Label: "Expired"},
		{Value: string(model.ContractStatusCancelled), Label: "Cancelled"},
		{Value: string(model.ContractStatusDraft), Label: "Draft"},
	},
	Match: func(c model.Contract, filter string) bool {
		return strings.EqualFold(string(c.Status), filter)
	},
}

var BusinessAreaSpec = Spec[model.BusinessArea]{
	SearchFields: func(a model.BusinessArea) []string {
		return []string{a.Name, a.Description}
	},
}

const (
	FilterVerified   = "VERIFIED"
	FilterUnverified = "UNVERIFIED"
)

var UserSpec = Spec[model.User]{
	SearchFields: func(u model.User) []string {
		return []string{u.Username, u.Role}
	},
	Filters: []Option{
		{Value: FilterAll, Label: "All users"},
		{Value: FilterVerified, Label: "Verified"},
		{Value: FilterUnverified, Label: "Unverified"},
	},
	Match: func(u model.User, filter string) bool {
		switch strings.ToUpper(filter) {
		case FilterVerified:
			return u.Verified
		case FilterUnverified:
			return !u.Verified
		default:
			return true
		}
	},
}

var FinancialValueSpec = Spec[model.FinancialValue]{
	SearchFields: func(v model.FinancialValue) []string {
		return []string{v.CustomerName, v.AreaName, v.DisplayTypeName()}
	},
	Filters: monthOptions(),
	Match: func(v model.FinancialValue, filter string) bool {
		month, err := strconv.Atoi(filter)
		return err == nil && v.Month == month
	},
}

func monthOptions() []Option {
	opts := []Option{{Value: FilterAll, Label: "All months"}}
	for m := time.January; m <= time.December; m++ {
		opts = append(opts, Option{Value: strconv.Itoa(int(m)), Label: m.String()})
	}
	return opts
}

// ManagerSpec offers the departments present in rows as filter options.
func ManagerSpec(rows []model.Manager) Spec[model.Manager] {
	var departments []string
	for _, m := range rows {
		if d := strings.TrimSpace(m.Department); d != "" && !slices.Contains(departments, d) {
			departments = append(departments, d)
		}
	}
	slices.Sort(departments)

	opts := []Option{{Value: FilterAll, Label: "All departments"}}
	for _, d := range departments {
		opts = append(opts, Option{Value: d, Label: d})
	}
	return Spec[model.Manager]{
		SearchFields: func(m model.Manager) []string {
			return []string{m.FirstName, m.LastName, m.FullName(), m.Email, m.Department}
		},
		Filters: opts,
		Match: func(m model.Manager, filter string) bool {
			return strings.EqualFold(strings.TrimSpace(m.Department), filter)
		},
	}
}
