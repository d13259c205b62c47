package service

import (
	money "github.com/Rhymond/go-money"
	"github.com/shopspring/decimal"
)

// roundPct rounds a percentage to two decimals, half away from zero.
func roundPct(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// FormatBRL formats a price as Brazilian reais, e.g. "R$1.234,56".
func FormatBRL(v float64) string {
	cur := money.GetCurrency(money.BRL)
	factor := decimal.New(1, int32(cur.Fraction))
	cents := decimal.NewFromFloat(v).Mul(factor).Round(0).IntPart()
	return money.New(cents, money.BRL).Display()
}
