package money

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Amounts are carried as int64 kopecks so cart totals stay exact.

var ErrMalformedAmount = errors.New("malformed amount")

// Parse converts a price as typed into a listing form ("5990", "59.90",
// "5 990,50") into kopecks. Negative and non-numeric input is rejected.
func Parse(input string) (int64, error) {
	s := strings.TrimSpace(input)
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	if s == "" {
		return 0, ErrMalformedAmount
	}
	if strings.HasPrefix(s, "-") {
		return 0, fmt.Errorf("%w: negative amount %q", ErrMalformedAmount, input)
	}

	// A comma decimal separator is as common as a dot in the source data.
	s = strings.ReplaceAll(s, ",", ".")

	whole := s
	frac := ""
	if i := strings.Index(s, "."); i >= 0 {
		whole, frac = s[:i], s[i+1:]
		if strings.Contains(frac, ".") || len(frac) > 2 {
			return 0, fmt.Errorf("%w: %q", ErrMalformedAmount, input)
		}
	}
	if whole == "" {
		whole = "0"
	}
	for len(frac) < 2 {
		frac += "0"
	}

	rub, err := strconv.ParseInt(whole, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedAmount, input)
	}
	kop, err := strconv.ParseInt(frac, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedAmount, input)
	}

	return rub*100 + kop, nil
}

// Format renders kopecks as "1234.56", dropping the fraction when whole.
func Format(kopecks int64) string {
	sign := ""
	if kopecks < 0 {
		sign = "-"
		kopecks = -kopecks
	}
	if kopecks%100 == 0 {
		return fmt.Sprintf("%s%d", sign, kopecks/100)
	}
	return fmt.Sprintf("%s%d.%02d", sign, kopecks/100, kopecks%100)
}
