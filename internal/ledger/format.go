package ledger

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var amountPrinter = message.NewPrinter(language.English)

// FormatAmount renders a monetary amount for transaction descriptions:
// thousands separators, no decimals ("25,000").
func FormatAmount(amount decimal.Decimal) string {
	return amountPrinter.Sprintf("%d", amount.Round(0).IntPart())
}
