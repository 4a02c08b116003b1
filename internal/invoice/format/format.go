package format

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// MaxCents is the largest amount a form may submit, $1 trillion. Every cent
// up to it is exact as a float64.
const MaxCents int64 = 100_000_000_000_000

var printer = message.NewPrinter(language.AmericanEnglish)

// Currency renders integer cents as en-US dollars, e.g. 123456 -> "$1,234.56".
func Currency(cents int64) string {
	if cents < 0 {
		// -math.MinInt64 overflows
		return "-" + dollars(uint64(-(cents+1))+1)
	}
	return dollars(uint64(cents))
}

func dollars(cents uint64) string {
	return printer.Sprintf("$%d", cents/100) + fmt.Sprintf(".%02d", cents%100)
}

func CentsToDecimal(cents int64) float64 {
	return float64(cents) / 100
}

// DecimalToCents rounds to the nearest cent so 50.00 and 19.99 survive the
// float conversion exactly. ok is false outside [-MaxCents, MaxCents] and
// for NaN.
func DecimalToCents(amount float64) (cents int64, ok bool) {
	rounded := math.Round(amount * 100)
	if math.IsNaN(rounded) || math.Abs(rounded) > float64(MaxCents) {
		return 0, false
	}
	return int64(rounded), true
}
