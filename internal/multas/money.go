package multas

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

var brPrinter = message.NewPrinter(language.BrazilianPortuguese)

// ParseAmount converts a pt-BR currency string such as "R$ 1.234,56" into a decimal.
// Empty or malformed input is worth zero.
func ParseAmount(s string) decimal.Decimal {
	val, err := parseAmount(s)
	if err != nil {
		return decimal.Zero
	}
	return val
}

// ValidAmount reports whether s is empty or parses as a currency amount.
func ValidAmount(s string) bool {
	_, err := parseAmount(s)
	return err == nil
}

func parseAmount(s string) (decimal.Decimal, error) {
	clean := strings.TrimSpace(s)
	if clean == "" {
		return decimal.Zero, nil
	}

	clean = strings.ReplaceAll(clean, "R$", "")
	clean = strings.ReplaceAll(clean, "\u00a0", "")
	clean = strings.ReplaceAll(clean, " ", "")
	// Remove thousands separator (.) and replace decimal separator (,) with (.)
	clean = strings.ReplaceAll(clean, ".", "")
	clean = strings.ReplaceAll(clean, ",", ".")

	return decimal.NewFromString(clean)
}

// FormatAmount renders an amount the way the record store keeps it: "R$ 1.234,56".
// Integer and cents parts are formatted separately so large values stay exact.
func FormatAmount(d decimal.Decimal) string {
	d = d.Round(2)
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	units := d.Truncate(0)
	cents := d.Sub(units).Shift(2).IntPart()
	return fmt.Sprintf("R$ %s%s,%02d", sign, brPrinter.Sprint(number.Decimal(units.IntPart())), cents)
}

// SumAmounts adds the selected amount of every record.
func SumAmounts(records []Multa, pick func(Multa) decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, m := range records {
		total = total.Add(pick(m))
	}
	return total
}
