package core

import (
	"strconv"
	"strings"
)

// ParseAmount converts user input to a non-negative amount.
//
// The decimal separator is either a dot (12.34) or a single comma followed by
// one or two digits (12,34). A comma followed by three digits reads as a
// thousands separator and is rejected, as is any mix of commas and dots.
// Signs, exponents, NaN and infinities are rejected too.
//
// Examples:
//
//	ParseAmount("12.34") -> 12.34, nil
//	ParseAmount("12,5")  -> 12.5, nil
//	ParseAmount("0")     -> 0, nil
//	ParseAmount("1,000") -> 0, ErrInvalidAmount
//	ParseAmount("-5")    -> 0, ErrInvalidAmount
func ParseAmount(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, ErrInvalidAmount
	}
	if i := strings.IndexByte(s, ','); i >= 0 {
		frac := s[i+1:]
		if strings.ContainsAny(frac, ",.") || strings.Contains(s[:i], ".") || len(frac) == 0 || len(frac) > 2 {
			return 0, ErrInvalidAmount
		}
		s = s[:i] + "." + frac
	}

	seenDot := false
	digits := 0
	for _, r := range s {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '.' && !seenDot:
			seenDot = true
		default:
			return 0, ErrInvalidAmount
		}
	}
	if digits == 0 {
		return 0, ErrInvalidAmount
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, ErrInvalidAmount
	}
	if err := ValidateAmount(v); err != nil {
		return 0, err
	}
	return v, nil
}

// FormatAmount renders an amount with two decimals for display.
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
