package output

import (
	"fmt"
	"math"
	"strconv"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatCurrency formats a decimal as USD with thousands separators and 2 decimals.
func FormatCurrency(amount decimal.Decimal) string {
	return formatMoney(amount.Round(2).InexactFloat64())
}

// FormatFloatCurrency is FormatCurrency for float64 model outputs.
func FormatFloatCurrency(amount float64) string {
	return formatMoney(amount)
}

func formatMoney(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return "n/a"
	}
	if v < 0 && math.Abs(v) >= 0.005 {
		return "-$" + printer.Sprintf("%.2f", -v)
	}
	return "$" + printer.Sprintf("%.2f", math.Abs(v))
}

// FormatPercentage formats a decimal percent value with 2 decimals.
func FormatPercentage(amount decimal.Decimal) string { return amount.StringFixed(2) + "%" }

// notConverged stands in for an IRR the solver gave up on.
const notConverged = "n/a (not converged)"

// FormatIRR formats a percentage IRR, or notConverged when the solver did not converge.
func FormatIRR(rate decimal.Decimal, converged bool) string {
	if !converged {
		return notConverged
	}
	return FormatPercentage(rate)
}

// FormatFraction renders a 0..1 fraction as a percentage.
func FormatFraction(fraction decimal.Decimal) string {
	return FormatPercentage(fraction.Mul(decimal.NewFromInt(100)))
}

// FormatYears renders a payback period, marking periods that never recover.
func FormatYears(years decimal.Decimal, reached bool) string {
	if !reached {
		return fmt.Sprintf("> %s years", years.StringFixed(0))
	}
	return years.StringFixed(2) + " years"
}

func intToString(i int) string { return strconv.Itoa(i) }

func boolToString(b bool) string { return strconv.FormatBool(b) }

func floatToString(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func roundTo(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
