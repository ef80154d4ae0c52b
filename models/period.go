package models

import "time"

// Period is the lookback window used by the reports and the financial log.
type Period string

const (
	PeriodDaily   Period = "daily"
	PeriodWeekly  Period = "weekly"
	PeriodMonthly Period = "monthly"
	PeriodYearly  Period = "yearly"
)

// ParsePeriod maps a query value to a Period. An empty value yields def.
func ParsePeriod(raw string, def Period) (Period, bool) {
	if raw == "" {
		return def, true
	}
	switch p := Period(raw); p {
	case PeriodDaily, PeriodWeekly, PeriodMonthly, PeriodYearly:
		return p, true
	}
	return "", false
}

// Since returns the inclusive start of the window ending at now.
func (p Period) Since(now time.Time) time.Time {
	switch p {
	case PeriodDaily:
		return now.AddDate(0, 0, -1)
	case PeriodWeekly:
		return now.AddDate(0, 0, -7)
	case PeriodMonthly:
		return now.AddDate(0, 0, -30)
	case PeriodYearly:
		return now.AddDate(-1, 0, 0)
	}
	return now
}

// BucketLayout is the time layout used to group sales over time.
func (p Period) BucketLayout() string {
	if p == PeriodYearly {
		return "2006-01"
	}
	return "2006-01-02"
}
