package types

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
)

// Property: every declared weekday survives a parse round-trip, and parsing
// never accepts a value outside the declared set.
func TestWeekdayParseRoundTrip(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("declared weekdays round-trip", prop.ForAll(
		func(i int) bool {
			d := Weekdays[i%len(Weekdays)]
			parsed, err := ParseWeekday(string(d))
			return err == nil && parsed == d
		},
		gen.IntRange(0, len(Weekdays)-1),
	))

	properties.Property("parse only accepts declared values", prop.ForAll(
		func(s string) bool {
			parsed, err := ParseWeekday(s)
			if err != nil {
				return parsed == ""
			}
			return parsed.Valid()
		},
		gen.AnyString(),
	))

	properties.TestingRun(t)
}

// Property: a quantity with at most 8 fractional digits survives a
// string round-trip without precision loss. This is the precision contract
// of the numeric(18,8) quantity column.
func TestQuantityPrecisionRoundTrip(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("18,8 quantities round-trip exactly", prop.ForAll(
		func(units int64, fraction int64) bool {
			// Build units.fraction with exactly 8 fractional digits.
			q := decimal.New(units, 0).Add(decimal.New(fraction, -QuantityScale))
			parsed, err := decimal.NewFromString(q.String())
			return err == nil && parsed.Equal(q)
		},
		gen.Int64Range(0, 9_999_999_999), // 10 integer digits
		gen.Int64Range(0, 99_999_999),    // 8 fractional digits
	))

	properties.TestingRun(t)
}
