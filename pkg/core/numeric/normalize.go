// Package numeric normalizes amount and percentage tokens across US and
// European formats.
package numeric

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Magnitudes at or above this are treated as parse artifacts, not amounts.
const maxPlausibleMagnitude = 1e15

var currencySymbols = strings.NewReplacer("$", "", "€", "", "£", "", "¥", "", " ", "", " ", "")

var digitRun = regexp.MustCompile(`^\d+$`)

// ParseAmount parses a monetary token such as "$1,234.56", "1.234,56 €" or
// "(2,500)" into a float. Returns nil when the token is not a plausible
// number.
//
// Locale handling: when both "," and "." appear, the last separator is the
// decimal point and the other is thousands. A lone "," followed by exactly
// two digits is a European decimal; any other lone "," is thousands. A lone
// "." followed by exactly three digits behind a 1-3 digit lead is European
// thousands ("2.500" is 2500); any other lone "." is a decimal point.
func ParseAmount(token string) *float64 {
	s := strings.TrimSpace(token)
	if s == "" || s == "-" || s == "—" || strings.EqualFold(s, "n/a") {
		return nil
	}

	s = currencySymbols.Replace(s)

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.Trim(s, "()")
	}
	if strings.HasPrefix(s, "-") {
		negative = !negative
		s = strings.TrimPrefix(s, "-")
	}
	if s == "" {
		return nil
	}

	s = normalizeSeparators(s)

	val, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(val) || math.IsInf(val, 0) {
		return nil
	}
	if math.Abs(val) >= maxPlausibleMagnitude {
		return nil
	}
	if negative {
		val = -val
	}
	return &val
}

// ParsePercent parses a percentage token such as "12.5%" or "12,5 %". The
// result is the literal percentage (12.5), never the fraction (0.125).
// Unlike amounts, a lone comma in a percentage is always a decimal point:
// "12,5%" means 12.5, and thousands grouping does not occur in percentages.
func ParsePercent(token string) *float64 {
	s := strings.TrimSpace(token)
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSpace(s)
	if strings.Count(s, ",") == 1 && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	return ParseAmount(s)
}

// normalizeSeparators rewrites a digit-grouped token into strconv form.
func normalizeSeparators(s string) string {
	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")

	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			// European: "." groups thousands, "," is the decimal point.
			s = strings.ReplaceAll(s, ".", "")
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		decimals := s[lastComma+1:]
		if len(decimals) == 2 && digitRun.MatchString(decimals) && strings.Count(s, ",") == 1 {
			s = strings.Replace(s, ",", ".", 1)
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastDot >= 0:
		if strings.Count(s, ".") > 1 {
			// "1.234.567": dots group thousands.
			s = strings.ReplaceAll(s, ".", "")
		} else if isDotThousands(s[:lastDot], s[lastDot+1:]) {
			s = strings.Replace(s, ".", "", 1)
		}
	}
	return s
}

// isDotThousands reports whether a single "." in intPart.decimals is a
// European thousands separator: exactly three trailing digits behind a 1-3
// digit lead, as in "2.500". A leading "0" ("0.500") keeps the dot decimal.
func isDotThousands(intPart, decimals string) bool {
	if len(decimals) != 3 || !digitRun.MatchString(decimals) {
		return false
	}
	return len(intPart) >= 1 && len(intPart) <= 3 && digitRun.MatchString(intPart) && intPart != "0"
}

// Quantity plausibility bounds for share counts. Anything above the hard cap
// is almost certainly a misparsed identifier or face value.
const (
	maxReasonableQuantity = 10_000_000
	identifierMagnitude   = 1_000_000_000
)

// IsReasonableQuantity reports whether q is a plausible share count.
// Rejects non-positive values, values above the plausible holding size, and
// integer values shaped like a raw 9-12 digit identifier (a bond face value
// or the numeric tail of an ISIN mistaken for a share count).
func IsReasonableQuantity(q float64) bool {
	if q <= 0 {
		return false
	}
	if q > identifierMagnitude {
		return false
	}
	if q > maxReasonableQuantity {
		return false
	}
	if q == math.Trunc(q) {
		digits := len(strconv.FormatFloat(q, 'f', -1, 64))
		if digits >= 9 && digits <= 12 {
			return false
		}
	}
	return true
}
