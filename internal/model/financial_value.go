package model

import "github.com/shopspring/decimal"

func init() {
	// the backend expects amounts as JSON numbers
	decimal.MarshalJSONWithoutQuotes = true
}

type FinancialValue struct {
	ID              int64           `json:"id"`
	Month           int             `json:"month"`
	Year            int             `json:"year"`
	FinancialAmount decimal.Decimal `json:"financialAmount"`
	FinancialTypeID int64           `json:"financialTypeId"`
	BusinessAreaID  int64           `json:"businessAreaId"`
	ContractID      int64           `json:"contractId"`
	TypeName        string          `json:"typeName,omitempty"`
	AreaName        string          `json:"areaName,omitempty"`
	CustomerName    string          `json:"customerName,omitempty"`
}

type FinancialValuePayload struct {
	Month           int             `json:"month"`
	Year            int             `json:"year"`
	FinancialAmount decimal.Decimal `json:"financialAmount"`
	FinancialTypeID int64           `json:"financialTypeId"`
	BusinessAreaID  int64           `json:"businessAreaId"`
	ContractID      int64           `json:"contractId"`
}

func (v FinancialValue) Payload() FinancialValuePayload {
	return FinancialValuePayload{
		Month:           v.Month,
		Year:            v.Year,
		FinancialAmount: v.FinancialAmount,
		FinancialTypeID: v.FinancialTypeID,
		BusinessAreaID:  v.BusinessAreaID,
		ContractID:      v.ContractID,
	}
}

// DisplayTypeName prefers the server-joined name.
func (v FinancialValue) DisplayTypeName() string {
	if v.TypeName != "" {
		return v.TypeName
	}
	return FinancialTypeName(v.FinancialTypeID)
}
