package model

import "time"

// FinancialReport is the input of the financial values workbook.
type FinancialReport struct {
	GeneratedAt time.Time
	FilterLabel string
	Values      []FinancialValue
}

// ContractSheet is the input of the single contract PDF.
type ContractSheet struct {
	GeneratedAt time.Time
	Contract    Contract
	ManagerName string
	AreaName    string
	Values      []FinancialValue
	History     []ContractHistory
}
