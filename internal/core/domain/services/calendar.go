package services

import (
	"errors"
	"fmt"
	"time"
)

// DateLayout is the wire format of delivery dates.
const DateLayout = "2006-01-02"

// MexicoCity is the shop's local time. Mexico has not observed daylight saving time since 2022.
var MexicoCity = time.FixedZone("CST", -6*60*60)

// Delivery date rejections. Their messages are shown to the buyer as line issues.
var (
	ErrDateMalformed = errors.New("delivery date must be YYYY-MM-DD")
	ErrDateTooSoon   = errors.New("deliveries start tomorrow")
	ErrDateSunday    = errors.New("no deliveries on Sundays")
	ErrDateHoliday   = errors.New("no deliveries on holidays")
	ErrDateBlocked   = errors.New("no deliveries that day in the selected city")
)

const (
	defaultCutoffHour = 15
	cdmxCutoffHour    = 16
)

var (
	defaultHolidays = []string{
		"2025-01-01", "2025-02-03", "2025-03-17", "2025-05-01", "2025-09-16", "2025-11-17", "2026-02-02",
	}
	defaultBlocked = map[string][]string{
		"CDMX": {"2026-01-31", "2026-02-07"},
	}
)

// DeliveryCalendar decides which days a bouquet can be delivered.
//
// Rules, in the order they are checked:
//   - the date is tomorrow or later in shop time
//   - it is not a Sunday
//   - it is not a holiday
//   - it is not blocked for the city
type DeliveryCalendar struct {
	loc      *time.Location
	holidays map[string]struct{}
	blocked  map[string]map[string]struct{}
	cutoffs  map[string]int
}

// CalendarOption customizes a DeliveryCalendar.
type CalendarOption func(*DeliveryCalendar)

// WithLocation sets the time zone used to decide what "tomorrow" is.
func WithLocation(loc *time.Location) CalendarOption {
	return func(c *DeliveryCalendar) { c.loc = loc }
}

// WithHolidays adds dates with no deliveries anywhere.
func WithHolidays(dates ...string) CalendarOption {
	return func(c *DeliveryCalendar) {
		for _, d := range dates {
			c.holidays[d] = struct{}{}
		}
	}
}

// WithBlockedDates adds dates with no deliveries in city.
func WithBlockedDates(city string, dates ...string) CalendarOption {
	return func(c *DeliveryCalendar) {
		if c.blocked[city] == nil {
			c.blocked[city] = make(map[string]struct{})
		}
		for _, d := range dates {
			c.blocked[city][d] = struct{}{}
		}
	}
}

// WithCutoffHour sets the hour after which next-day delivery in city gets a late warning.
func WithCutoffHour(city string, hour int) CalendarOption {
	return func(c *DeliveryCalendar) { c.cutoffs[city] = hour }
}

// NewDeliveryCalendar creates an empty calendar in shop time with the CDMX cutoff at 16:00.
func NewDeliveryCalendar(opts ...CalendarOption) DeliveryCalendar {
	c := DeliveryCalendar{
		loc:      MexicoCity,
		holidays: make(map[string]struct{}),
		blocked:  make(map[string]map[string]struct{}),
		cutoffs:  map[string]int{"CDMX": cdmxCutoffHour},
	}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}

// DefaultDeliveryCalendar is the shop's published calendar.
func DefaultDeliveryCalendar() DeliveryCalendar {
	opts := []CalendarOption{WithHolidays(defaultHolidays...)}
	for city, dates := range defaultBlocked {
		opts = append(opts, WithBlockedDates(city, dates...))
	}
	return NewDeliveryCalendar(opts...)
}

// Tomorrow returns the first deliverable date string relative to now.
func (c DeliveryCalendar) Tomorrow(now time.Time) string {
	local := now.In(c.loc)
	return time.Date(local.Year(), local.Month(), local.Day()+1, 0, 0, 0, 0, c.loc).Format(DateLayout)
}

// Check returns nil when date can be delivered in city, or the first rule it breaks.
func (c DeliveryCalendar) Check(date, city string, now time.Time) error {
	d, err := time.ParseInLocation(DateLayout, date, c.loc)
	if err != nil {
		return ErrDateMalformed
	}
	if date < c.Tomorrow(now) {
		return ErrDateTooSoon
	}
	if d.Weekday() == time.Sunday {
		return ErrDateSunday
	}
	if _, ok := c.holidays[date]; ok {
		return ErrDateHoliday
	}
	if _, ok := c.blocked[city][date]; ok {
		return ErrDateBlocked
	}
	return nil
}

// LateWarning reports whether an order for tomorrow is being placed after the city's cutoff.
func (c DeliveryCalendar) LateWarning(city, date string, now time.Time) (string, bool) {
	if date == "" || date != c.Tomorrow(now) {
		return "", false
	}
	cutoff, ok := c.cutoffs[city]
	if !ok {
		cutoff = defaultCutoffHour
	}
	if now.In(c.loc).Hour() < cutoff {
		return "", false
	}
	return fmt.Sprintf("orders placed after %02d:00 may not arrive tomorrow", cutoff), true
}
