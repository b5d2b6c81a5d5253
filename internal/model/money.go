package model

import (
	"github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

const Currency = money.EUR

// FormatEUR renders an amount with two decimals and thousands separators.
func FormatEUR(amount decimal.Decimal) string {
	return money.New(amount.Shift(2).Round(0).IntPart(), Currency).Display()
}

func (v FinancialValue) AmountDisplay() string {
	return FormatEUR(v.FinancialAmount)
}
