package tax

import "time"

// Timeliness is either OnTime or Late.
type Timeliness interface {
	timeliness()
}

type OnTime struct{}

type Late struct {
	Days int
}

func (OnTime) timeliness() {}
func (Late) timeliness()   {}

// AssessTimeliness compares two calendar dates. A missing date, or an
// actual date on or before the due date, is OnTime.
func AssessTimeliness(due, actual *time.Time) Timeliness {
	if due == nil || actual == nil {
		return OnTime{}
	}

	days := daysBetween(*due, *actual)
	if days <= 0 {
		return OnTime{}
	}

	return Late{Days: days}
}

const secondsPerDay = 24 * 60 * 60

// daysBetween counts whole calendar days. It works on Unix seconds because
// time.Duration saturates after about 292 years.
func daysBetween(from, to time.Time) int {
	return int((calendarDate(to).Unix() - calendarDate(from).Unix()) / secondsPerDay)
}

func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
