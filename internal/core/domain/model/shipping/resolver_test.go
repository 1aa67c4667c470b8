package shipping_test

import (
	"fmt"
	"testing"

	"bloom/internal/core/domain/model/shipping"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolver_Resolve_InvalidInput(t *testing.T) {
	resolver := shipping.NewResolver(shipping.DefaultTable())

	for _, input := range []string{"", "1156", "115600", "11a60", " 1156", "11560\n"} {
		t.Run(fmt.Sprintf("%q", input), func(t *testing.T) {
			q := resolver.Resolve(input)

			assert.False(t, q.Valid)
			assert.Equal(t, shipping.InvalidPostalCodeMessage, q.Message)
			assert.Empty(t, q.ZoneID)
			assert.True(t, q.Cost.IsZero())
		})
	}
}

func TestResolver_Resolve_DefaultZones(t *testing.T) {
	resolver := shipping.NewResolver(shipping.DefaultTable())

	tests := []struct {
		code   string
		zoneID string
		city   string
		cost   int64
		eta    string
	}{
		{"11560", "cdmx", "CDMX", 89, ""},
		{"01000", "cdmx", "CDMX", 89, ""},
		{"16999", "cdmx", "CDMX", 89, ""},
		{"44100", "guadalajara", "Guadalajara", 129, ""},
		{"64000", "monterrey", "Monterrey", 129, "24–48h"},
		{"52140", "cdmx-metro", "CDMX", 109, "24–48h"},
		{"99999", shipping.NationalZoneID, "", 189, "2–4 días"},
		{"00999", shipping.NationalZoneID, "", 189, "2–4 días"},
		{"17000", shipping.NationalZoneID, "", 189, "2–4 días"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			q := resolver.Resolve(tt.code)

			require.True(t, q.Valid)
			assert.Equal(t, tt.zoneID, q.ZoneID)
			assert.Equal(t, tt.city, q.City)
			assert.True(t, decimal.NewFromInt(tt.cost).Equal(q.Cost), "cost %s", q.Cost)
			assert.Equal(t, tt.eta, q.ETADays)
		})
	}
}

func TestResolver_Resolve_LeadingZeroIsNumeric(t *testing.T) {
	resolver := shipping.NewResolver(shipping.DefaultTable())

	leading := resolver.Resolve("01000")
	inRange := resolver.Resolve("06700")

	assert.Equal(t, inRange.ZoneID, leading.ZoneID)
	assert.False(t, leading.IsNational())
}

func TestResolver_Resolve_IsTotal(t *testing.T) {
	resolver := shipping.NewResolver(shipping.DefaultTable())

	for n := 0; n <= 99999; n += 7 {
		code := fmt.Sprintf("%05d", n)
		q := resolver.Resolve(code)

		require.True(t, q.Valid, code)
		require.True(t, q.Cost.IsPositive(), code)
	}
	q := resolver.Resolve("99999")
	require.True(t, q.Valid)
}

func TestResolver_Resolve_ListBeatsOverlappingRange(t *testing.T) {
	table, err := shipping.NewTable([]shipping.ZoneRule{
		{ID: "wide", Label: "Wide", City: "A", Min: 10000, Max: 19999, Price: decimal.NewFromInt(50)},
		{ID: "listed", Label: "Listed", City: "B", Codes: []string{"15000"}, Price: decimal.NewFromInt(70)},
	}, shipping.ZoneRule{Label: "Nacional", Price: decimal.NewFromInt(189)})
	require.NoError(t, err)
	resolver := shipping.NewResolver(table)

	assert.Equal(t, "listed", resolver.Resolve("15000").ZoneID)
	assert.Equal(t, "wide", resolver.Resolve("15001").ZoneID)
}

func TestResolver_Resolve_FirstRangeWins(t *testing.T) {
	table, err := shipping.NewTable([]shipping.ZoneRule{
		{ID: "first", Label: "First", Min: 1000, Max: 2000, Price: decimal.NewFromInt(10)},
		{ID: "second", Label: "Second", Min: 1500, Max: 2500, Price: decimal.NewFromInt(20)},
	}, shipping.ZoneRule{Label: "Nacional", Price: decimal.NewFromInt(189)})
	require.NoError(t, err)

	q := shipping.NewResolver(table).Resolve("01800")

	assert.Equal(t, "first", q.ZoneID)
}

func TestResolver_Resolve_Deterministic(t *testing.T) {
	resolver := shipping.NewResolver(shipping.DefaultTable())

	assert.Equal(t, resolver.Resolve("64500"), resolver.Resolve("64500"))
}
