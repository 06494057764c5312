package utils

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var moneyPrinter = message.NewPrinter(language.AmericanEnglish)

// FormatMoney renders an amount as "$1,234.50" for customer-facing text.
func FormatMoney(amount decimal.Decimal) string {
	f, _ := amount.Round(2).Float64()
	return moneyPrinter.Sprintf("$%.2f", f)
}
