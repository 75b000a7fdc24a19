package models

import (
	"fmt"
	"time"

	"github.com/money-tracker/internal/types"
)

// Performance represents a user's report delivery settings for one weekday.
// A user may register several weekdays but never the same weekday twice.
type Performance struct {
	ID              int64             `json:"id" db:"id"`
	UserID          int64             `json:"userId" db:"user_id"`
	DaysToSendEmail types.Weekday     `json:"daysToSendEmail" db:"days_to_send_email"`
	Periodicity     types.Periodicity `json:"periodicity" db:"periodicity"`
	LastTimeSent    time.Time         `json:"lastTimeSent" db:"last_time_sent"`
}

// Validate checks the enum fields before they reach the database.
func (p *Performance) Validate() error {
	if !p.DaysToSendEmail.Valid() {
		return fmt.Errorf("invalid weekday: %q", p.DaysToSendEmail)
	}
	if !p.Periodicity.Valid() {
		return fmt.Errorf("invalid periodicity: %q", p.Periodicity)
	}
	return nil
}

// ApplyDefaults fills in the schema defaults for zero-valued fields.
func (p *Performance) ApplyDefaults() {
	if p.DaysToSendEmail == "" {
		p.DaysToSendEmail = types.WeekdayMonday
	}
	if p.Periodicity == "" {
		p.Periodicity = types.PeriodicityWeekly
	}
}
