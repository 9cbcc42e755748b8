// Package currency renders rupiah amounts the way the id-ID locale does.
package currency

import (
	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.Indonesian)

// FormatIDR formats amount with id-ID grouping and no fraction digits,
// e.g. 20000 -> "Rp 20.000".
func FormatIDR(amount decimal.Decimal) string {
	rounded := amount.Round(0).IntPart()
	if rounded < 0 {
		return "-Rp " + printer.Sprintf("%d", -rounded)
	}
	return "Rp " + printer.Sprintf("%d", rounded)
}

// FormatNumber groups n with id-ID separators.
func FormatNumber(n int64) string {
	return printer.Sprintf("%d", n)
}
