package folio

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

const CurrencySymbol = "₹"

var indianEnglish = language.MustParse("en-IN")

// FormatAmount renders an amount in rupees with Indian digit grouping:
// 500 -> ₹500, 150000 -> ₹1,50,000, 1234.5 -> ₹1,234.50. Paise are shown
// only when the rounded amount has any.
func FormatAmount(amount float64) string {
	paise := math.Round(math.Abs(amount) * 100)
	if paise == 0 {
		return CurrencySymbol + "0"
	}

	digits := 0
	if math.Mod(paise, 100) != 0 {
		digits = 2
	}
	p := message.NewPrinter(indianEnglish)
	formatted := p.Sprint(number.Decimal(paise/100,
		number.MinFractionDigits(digits),
		number.MaxFractionDigits(digits),
	))

	if amount < 0 {
		return "-" + CurrencySymbol + formatted
	}
	return CurrencySymbol + formatted
}
