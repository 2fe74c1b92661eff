// Package money formats Chilean peso amounts. CLP has no minor unit, so
// amounts are plain int64 pesos everywhere in this codebase.
package money

import (
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.MustParse("es-CL"))

// FormatCLP renders an amount with locale grouping, e.g. 50000 -> "$50.000".
func FormatCLP(amount int64) string {
	return printer.Sprintf("$%d", amount)
}

// FormatCount renders an item count with its unit, e.g. "2 items".
func FormatCount(n int) string {
	if n == 1 {
		return "1 item"
	}
	return printer.Sprintf("%d items", n)
}
