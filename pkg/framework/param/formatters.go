package param

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrOutOfRange is returned when parsed text falls outside a parameter's plain range.
var ErrOutOfRange = errors.New("value out of range")

// MultiplierFormatter formats a gain factor with two decimals, e.g. "1.50".
func MultiplierFormatter(value float64) string {
	return fmt.Sprintf("%.2f", value)
}

// MultiplierParser accepts "1.5", "1.5x" or "x1.5".
func MultiplierParser(str string) (float64, error) {
	str = strings.TrimSpace(strings.ToLower(str))
	str = strings.TrimSpace(strings.TrimSuffix(strings.TrimPrefix(str, "x"), "x"))
	return strconv.ParseFloat(str, 64)
}

// DecibelFormatter formats dB values
func DecibelFormatter(db float64) string {
	if db <= -60 {
		return "-∞ dB"
	}
	return fmt.Sprintf("%.1f dB", db)
}
