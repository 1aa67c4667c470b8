package kernel

import "strings"

const (
	mexicoCountryCode = "52"
	nanpCountryCode   = "1"
	nationalLength    = 10
)

// DigitsOnly strips every non-digit rune from s.
func DigitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// IsValidPhone reports whether the digits of phone have one of the stored shapes accepted at checkout.
// The country prefix decides the length: "52" needs 12 digits and "1" needs 11. Only numbers with
// neither prefix may be a bare 10-digit national number kept from older carts.
func IsValidPhone(phone string) bool {
	d := phoneDigits(phone)
	switch {
	case strings.HasPrefix(d, mexicoCountryCode):
		return len(d) == len(mexicoCountryCode)+nationalLength
	case strings.HasPrefix(d, nanpCountryCode):
		return len(d) == len(nanpCountryCode)+nationalLength
	default:
		return len(d) == nationalLength
	}
}

// NormalizePhone returns the country-prefixed digit string for phone. Bare 10-digit numbers are
// assumed to be Mexican, and anything that does not reach a valid shape is returned as its digits
// so validation can reject it.
func NormalizePhone(phone string) string {
	d := phoneDigits(phone)
	if len(d) == nationalLength && !strings.HasPrefix(d, mexicoCountryCode) && !strings.HasPrefix(d, nanpCountryCode) {
		return mexicoCountryCode + d
	}
	return d
}

// phoneDigits drops the "00" international dialling prefix along with every non-digit.
func phoneDigits(phone string) string {
	return strings.TrimPrefix(DigitsOnly(phone), "00")
}
