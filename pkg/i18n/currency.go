package i18n

import (
	"fmt"
	"math"
	"strings"
)

// currencySymbols maps ISO 4217 currency codes to their display symbol.
var currencySymbols = map[string]struct {
	symbol string
	prefix bool // true = "₹12.50", false = "12.50 AED"
}{
	"INR": {"₹", true},
	"USD": {"$", true},
	"EUR": {"€", true},
	"GBP": {"£", true},
	"AED": {"د.إ", false},
}

// FormatAmount returns a human-readable amount string with the currency symbol.
// Rupee amounts use Indian digit grouping.
// Examples:
//
//	FormatAmount(412.5, "INR")    → "₹412.50"
//	FormatAmount(123456.5, "INR") → "₹1,23,456.50"
//	FormatAmount(15.5, "USD")     → "$15.50"
//	FormatAmount(150.0, "XYZ")    → "150.00 XYZ"
func FormatAmount(amount float64, currencyCode string) string {
	number := fmt.Sprintf("%.2f", amount)
	if currencyCode == "INR" {
		number = groupIndian(amount)
	}

	info, ok := currencySymbols[currencyCode]
	if !ok {
		return fmt.Sprintf("%s %s", number, currencyCode)
	}
	if info.prefix {
		return info.symbol + number
	}
	return number + " " + info.symbol
}

// groupIndian formats with the last three integer digits grouped, then pairs
func groupIndian(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
		amount = math.Abs(amount)
	}

	s := fmt.Sprintf("%.2f", amount)
	intPart, frac := s[:len(s)-3], s[len(s)-3:]
	if len(intPart) <= 3 {
		return sign + intPart + frac
	}

	head, tail := intPart[:len(intPart)-3], intPart[len(intPart)-3:]
	var groups []string
	for len(head) > 2 {
		groups = append([]string{head[len(head)-2:]}, groups...)
		head = head[:len(head)-2]
	}
	if head != "" {
		groups = append([]string{head}, groups...)
	}
	return sign + strings.Join(groups, ",") + "," + tail + frac
}
