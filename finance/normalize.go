package finance

import (
	"encoding/json"
	"strings"

	"bitbucket.org/hoaworks/portal_backend/utils"
	"github.com/shopspring/decimal"
)

// ParseAmount normalizes a loosely-typed amount into a decimal. Ledger rows
// imported from bank exports carry amounts as numbers, numeric strings, or
// nothing at all; anything unparseable degrades to zero so one corrupt row
// never blocks a whole report.
func ParseAmount(value any) decimal.Decimal {
	switch v := value.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return v
	case float64:
		return decimal.NewFromFloat(v)
	case float32:
		return decimal.NewFromFloat32(v)
	case int:
		return decimal.NewFromInt(int64(v))
	case int64:
		return decimal.NewFromInt(v)
	case json.Number:
		d, err := utils.ParseDecimal(v.String())
		if err != nil {
			return decimal.Zero
		}
		return d
	case string:
		cleaned := strings.ReplaceAll(strings.ReplaceAll(strings.TrimSpace(v), "$", ""), ",", "")
		d, err := utils.ParseDecimal(cleaned)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

// FormatCurrency renders a USD amount as "$1,234.56" ("-$1,234.56" for
// negative values).
func FormatCurrency(amount decimal.Decimal) string {
	sign := ""
	if amount.IsNegative() {
		sign = "-"
		amount = amount.Neg()
	}

	fixed := amount.StringFixed(2)
	intPart := fixed[:len(fixed)-3]
	fracPart := fixed[len(fixed)-2:]

	var b strings.Builder
	b.WriteString(sign)
	b.WriteString("$")
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteString(",")
		}
		b.WriteRune(r)
	}
	b.WriteString(".")
	b.WriteString(fracPart)
	return b.String()
}
