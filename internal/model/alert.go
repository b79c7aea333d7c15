package model

import "time"

type AlertFrequency string

const (
	AlertFrequencyDaily   AlertFrequency = "dly"
	AlertFrequencyWeekly  AlertFrequency = "wly"
	AlertFrequencyMonthly AlertFrequency = "mly"
	AlertFrequencyOff     AlertFrequency = "off"
)

// AlertFrequencies lists the choices in display order.
var AlertFrequencies = []AlertFrequency{
	AlertFrequencyDaily,
	AlertFrequencyWeekly,
	AlertFrequencyMonthly,
	AlertFrequencyOff,
}

func (f AlertFrequency) Valid() bool {
	switch f {
	case AlertFrequencyDaily, AlertFrequencyWeekly, AlertFrequencyMonthly, AlertFrequencyOff:
		return true
	}
	return false
}

func (f AlertFrequency) Label() string {
	switch f {
	case AlertFrequencyDaily:
		return "Daily"
	case AlertFrequencyWeekly:
		return "Weekly"
	case AlertFrequencyMonthly:
		return "Monthly"
	case AlertFrequencyOff:
		return "Off"
	}
	return string(f)
}

// Period is the look-back window of a scheduled run. Zero for "off".
func (f AlertFrequency) Period() time.Duration {
	switch f {
	case AlertFrequencyDaily:
		return 24 * time.Hour
	case AlertFrequencyWeekly:
		return 7 * 24 * time.Hour
	case AlertFrequencyMonthly:
		return 31 * 24 * time.Hour
	}
	return 0
}

type Alert struct {
	ID                int64          `json:"id"`
	UserID            int64          `json:"user_id"`
	Name              string         `json:"name"`
	Query             string         `json:"query"`
	Frequency         AlertFrequency `json:"frequency"`
	Private           bool           `json:"private"`
	SendNegativeAlert bool           `json:"send_negative_alert"`
	LastHitDate       *time.Time     `json:"last_hit_date,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
}
