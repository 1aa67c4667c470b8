package services_test

import (
	"testing"
	"time"

	"bloom/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
)

// Monday 2030-05-06, 10:00 shop time.
var monday = time.Date(2030, time.May, 6, 10, 0, 0, 0, services.MexicoCity)

func TestDeliveryCalendar_Check(t *testing.T) {
	calendar := services.NewDeliveryCalendar(
		services.WithHolidays("2030-05-10"),
		services.WithBlockedDates("CDMX", "2030-05-09"),
	)

	tests := []struct {
		name string
		date string
		city string
		want error
	}{
		{"tomorrow", "2030-05-07", "CDMX", nil},
		{"today", "2030-05-06", "CDMX", services.ErrDateTooSoon},
		{"past", "2029-12-31", "CDMX", services.ErrDateTooSoon},
		{"sunday", "2030-05-12", "CDMX", services.ErrDateSunday},
		{"holiday", "2030-05-10", "Monterrey", services.ErrDateHoliday},
		{"blocked in city", "2030-05-09", "CDMX", services.ErrDateBlocked},
		{"blocked elsewhere only", "2030-05-09", "Guadalajara", nil},
		{"malformed", "07/05/2030", "CDMX", services.ErrDateMalformed},
		{"short month", "2030-5-07", "CDMX", services.ErrDateMalformed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := calendar.Check(tt.date, tt.city, monday)

			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestDeliveryCalendar_TomorrowUsesShopTime(t *testing.T) {
	calendar := services.NewDeliveryCalendar()
	// 03:00 UTC on the 7th is still the 6th in Mexico City.
	now := time.Date(2030, time.May, 7, 3, 0, 0, 0, time.UTC)

	assert.Equal(t, "2030-05-07", calendar.Tomorrow(now))
}

func TestDeliveryCalendar_LateWarning(t *testing.T) {
	calendar := services.NewDeliveryCalendar()
	at := func(hour int) time.Time {
		return time.Date(2030, time.May, 6, hour, 30, 0, 0, services.MexicoCity)
	}

	t.Run("should warn after the CDMX cutoff", func(t *testing.T) {
		msg, late := calendar.LateWarning("CDMX", "2030-05-07", at(16))

		assert.True(t, late)
		assert.Equal(t, "orders placed after 16:00 may not arrive tomorrow", msg)
	})

	t.Run("should not warn before the CDMX cutoff", func(t *testing.T) {
		_, late := calendar.LateWarning("CDMX", "2030-05-07", at(15))

		assert.False(t, late)
	})

	t.Run("should use the earlier cutoff elsewhere", func(t *testing.T) {
		msg, late := calendar.LateWarning("Monterrey", "2030-05-07", at(15))

		assert.True(t, late)
		assert.Contains(t, msg, "15:00")
	})

	t.Run("should ignore dates other than tomorrow", func(t *testing.T) {
		_, late := calendar.LateWarning("CDMX", "2030-05-08", at(20))

		assert.False(t, late)
	})
}

func TestDefaultDeliveryCalendar(t *testing.T) {
	calendar := services.DefaultDeliveryCalendar()
	before := time.Date(2025, time.January, 1, 9, 0, 0, 0, services.MexicoCity)

	assert.ErrorIs(t, calendar.Check("2025-09-16", "CDMX", before), services.ErrDateHoliday)
	assert.ErrorIs(t, calendar.Check("2026-01-31", "CDMX", before), services.ErrDateBlocked)
	assert.NoError(t, calendar.Check("2026-01-31", "Guadalajara", before))
}
