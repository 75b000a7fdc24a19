// Package types provides common type definitions for the money tracker system.
package types

import "fmt"

// Weekday represents the day of week a performance report is sent on.
type Weekday string

const (
	// WeekdaySunday represents Sunday
	WeekdaySunday Weekday = "Sunday"
	// WeekdayMonday represents Monday
	WeekdayMonday Weekday = "Monday"
	// WeekdayTuesday represents Tuesday
	WeekdayTuesday Weekday = "Tuesday"
	// WeekdayWednesday represents Wednesday
	WeekdayWednesday Weekday = "Wednesday"
	// WeekdayThursday represents Thursday
	WeekdayThursday Weekday = "Thursday"
	// WeekdayFriday represents Friday
	WeekdayFriday Weekday = "Friday"
	// WeekdaySaturday represents Saturday
	WeekdaySaturday Weekday = "Saturday"
)

// Weekdays lists every valid weekday value in calendar order.
var Weekdays = []Weekday{
	WeekdaySunday,
	WeekdayMonday,
	WeekdayTuesday,
	WeekdayWednesday,
	WeekdayThursday,
	WeekdayFriday,
	WeekdaySaturday,
}

// Valid reports whether the weekday is one of the declared values.
func (w Weekday) Valid() bool {
	for _, d := range Weekdays {
		if w == d {
			return true
		}
	}
	return false
}

// ParseWeekday converts a string into a Weekday, rejecting unknown values.
func ParseWeekday(s string) (Weekday, error) {
	w := Weekday(s)
	if !w.Valid() {
		return "", fmt.Errorf("invalid weekday: %q", s)
	}
	return w, nil
}

// Periodicity represents how often a performance report is generated.
type Periodicity string

const (
	// PeriodicityDaily represents a report generated every day
	PeriodicityDaily Periodicity = "Daily"
	// PeriodicityWeekly represents a report generated once a week
	PeriodicityWeekly Periodicity = "Weekly"
	// PeriodicityBiweekly represents a report generated every two weeks
	PeriodicityBiweekly Periodicity = "Biweekly"
	// PeriodicityMonthly represents a report generated once a month
	PeriodicityMonthly Periodicity = "Monthly"
)

// Periodicities lists every valid periodicity value.
var Periodicities = []Periodicity{
	PeriodicityDaily,
	PeriodicityWeekly,
	PeriodicityBiweekly,
	PeriodicityMonthly,
}

// Valid reports whether the periodicity is one of the declared values.
func (p Periodicity) Valid() bool {
	for _, v := range Periodicities {
		if p == v {
			return true
		}
	}
	return false
}

// ParsePeriodicity converts a string into a Periodicity, rejecting unknown values.
func ParsePeriodicity(s string) (Periodicity, error) {
	p := Periodicity(s)
	if !p.Valid() {
		return "", fmt.Errorf("invalid periodicity: %q", s)
	}
	return p, nil
}

// AssetType classifies a tradable instrument. The column is free-form
// varchar(50) in the schema; these are the values the application writes.
type AssetType string

const (
	// AssetTypeStock represents an exchange-traded equity
	AssetTypeStock AssetType = "stock"
	// AssetTypeCrypto represents a cryptocurrency
	AssetTypeCrypto AssetType = "crypto"
	// AssetTypeETF represents an exchange-traded fund
	AssetTypeETF AssetType = "etf"
)

// Field limits enforced by the schema.
const (
	// MaxAssetNameLen is the maximum length of an asset name
	MaxAssetNameLen = 255
	// MaxAssetSymbolLen is the maximum length of a ticker symbol
	MaxAssetSymbolLen = 10
	// MaxAssetTypeLen is the maximum length of an asset type
	MaxAssetTypeLen = 50
	// QuantityScale is the number of fractional digits a holding quantity keeps
	QuantityScale = 8
	// PriceScale is the number of fractional digits a price or volume keeps
	PriceScale = 2
)

// ServiceError represents a structured error response
type ServiceError struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
}

func (e *ServiceError) Error() string {
	return e.Message
}
