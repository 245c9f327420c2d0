package report

import (
	"moodlog/internal/journal/domain"
)

// Mode selects the report window granularity.
type Mode string

const (
	Mode7d  Mode = "7d"
	Mode30d Mode = "30d"
)

// IsValid returns true if the mode is a known report window.
func (m Mode) IsValid() bool {
	return m == Mode7d || m == Mode30d
}

// Days returns the window length in calendar days.
func (m Mode) Days() int {
	if m == Mode30d {
		return 30
	}
	return 7
}

// Minimum-data thresholds per mode. These are policy constants, not derived;
// changing report granularity means changing only this table.
const (
	RequiredDays7d      = 3
	RequiredSessions7d  = 4
	RequiredDays30d     = 7
	RequiredSessions30d = 10
)

// Gate is the minimum-data decision for a report window. Statistics are
// always computed; gate.OK only decides whether a consumer shows them.
type Gate struct {
	OK               bool
	RequiredDays     int
	RequiredSessions int
	DaysRecorded     int
	TotalSessions    int
}

// EvaluateGate decides whether the window holds enough data for a
// statistically meaningful report. Pure function; recomputed per call.
func EvaluateGate(mode Mode, sessions []*domain.Session) Gate {
	requiredDays, requiredSessions := RequiredDays7d, RequiredSessions7d
	if mode == Mode30d {
		requiredDays, requiredSessions = RequiredDays30d, RequiredSessions30d
	}

	daysRecorded := countDistinctDates(sessions)
	totalSessions := len(sessions)

	return Gate{
		OK:               daysRecorded >= requiredDays && totalSessions >= requiredSessions,
		RequiredDays:     requiredDays,
		RequiredSessions: requiredSessions,
		DaysRecorded:     daysRecorded,
		TotalSessions:    totalSessions,
	}
}

func countDistinctDates(sessions []*domain.Session) int {
	dates := make(map[domain.Date]struct{}, len(sessions))
	for _, s := range sessions {
		dates[s.Date] = struct{}{}
	}
	return len(dates)
}
