package cart

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var nonNumeric = regexp.MustCompile(`[^0-9.]`)

// ParsePrice extracts the numeric amount from a currency-prefixed price
// string such as "MVR 450". Unparseable prices count as zero.
func ParsePrice(price string) float64 {
	cleaned := nonNumeric.ReplaceAllString(price, "")
	if cleaned == "" {
		return 0
	}
	v, err := strconv.ParseFloat(cleaned, 64)
	if err != nil {
		return 0
	}
	return v
}

// FormatTotal renders a computed total with two decimal places.
func FormatTotal(total float64) string {
	return fmt.Sprintf("%.2f", total)
}

// FormatPrice ensures a price carries the MVR currency prefix.
func FormatPrice(price string) string {
	if strings.HasPrefix(strings.ToUpper(strings.TrimSpace(price)), "MVR") {
		return price
	}
	return "MVR " + price
}
