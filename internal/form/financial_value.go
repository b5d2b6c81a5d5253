package form

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nurpe/contracts-admin/internal/model"
)

type FinancialValueForm struct {
	Month           int    `form:"month" label:"Month" validate:"min=1,max=12"`
	Year            int    `form:"year" label:"Year" validate:"min=2000,max=2100"`
	FinancialAmount string `form:"financialAmount" label:"Amount" validate:"required,posdecimal"`
	FinancialTypeID int64  `form:"financialTypeId" label:"Financial type" validate:"gt=0"`
	BusinessAreaID  int64  `form:"businessAreaId" label:"Business area" validate:"gt=0"`
	ContractID      int64  `form:"contractId" label:"Contract" validate:"gt=0"`
}

// NewFinancialValueForm defaults month and year to now on create.
func NewFinancialValueForm(v *model.FinancialValue, now time.Time) FinancialValueForm {
	if v == nil {
		return FinancialValueForm{Month: int(now.Month()), Year: now.Year()}
	}
	return FinancialValueForm{
		Month:           v.Month,
		Year:            v.Year,
		FinancialAmount: v.FinancialAmount.String(),
		FinancialTypeID: v.FinancialTypeID,
		BusinessAreaID:  v.BusinessAreaID,
		ContractID:      v.ContractID,
	}
}

func (f *FinancialValueForm) Ok() (ValidationErrors, bool) {
	f.FinancialAmount = strings.TrimSpace(f.FinancialAmount)
	return check(f)
}

// Payload must only be called after Ok.
func (f *FinancialValueForm) Payload() model.FinancialValuePayload {
	amount, _ := decimal.NewFromString(f.FinancialAmount)
	return model.FinancialValuePayload{
		Month:           f.Month,
		Year:            f.Year,
		FinancialAmount: amount,
		FinancialTypeID: f.FinancialTypeID,
		BusinessAreaID:  f.BusinessAreaID,
		ContractID:      f.ContractID,
	}
}
