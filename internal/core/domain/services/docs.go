// Package services holds the domain services that work across a whole cart rather than a
// single line.
//
// ValidationEngine decides whether a cart may be submitted and returns a Verdict with the buyer
// issues, the per-line issues and the ordered blocking messages. DeliveryCalendar answers
// whether a delivery date can be fulfilled from a city and when a same-day cutoff has passed.
package services
