package shipping

import "github.com/shopspring/decimal"

// InvalidPostalCodeMessage is the message carried by quotes for malformed postal codes.
const InvalidPostalCodeMessage = "invalid postal code"

// Quote is the result of resolving a postal code. An invalid quote has no zone and no cost.
type Quote struct {
	Valid   bool
	Message string
	ZoneID  string
	Zone    string
	City    string
	Cost    decimal.Decimal
	ETADays string
	Note    string
}

// InvalidQuote is returned for anything that is not exactly five ASCII digits.
func InvalidQuote() Quote {
	return Quote{Valid: false, Message: InvalidPostalCodeMessage}
}

// IsNational reports whether the quote came from the fallback rule.
func (q Quote) IsNational() bool {
	return q.Valid && q.ZoneID == NationalZoneID
}
