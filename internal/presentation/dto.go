// Package presentation converts domain and report types into output DTOs and
// renders them as JSON or styled terminal text.
package presentation

import (
	"moodlog/internal/application/reports"
	"moodlog/internal/coach"
	"moodlog/internal/insight"
	"moodlog/internal/journal/domain"
	"moodlog/internal/report"
)

// SessionDTO represents a journal entry for presentation.
type SessionDTO struct {
	EntryID string   `json:"entry_id"`
	Date    string   `json:"date"`
	Slot    string   `json:"slot"`
	Mood    string   `json:"mood"`
	MoodKo  string   `json:"mood_ko"`
	Energy  int      `json:"energy"`
	Topics  []string `json:"topics,omitempty"`
	Note    string   `json:"note,omitempty"`
}

// FromDomainSession converts a domain session to a DTO. Topics come through
// normalized, so legacy single-topic entries render like multi-topic ones.
func FromDomainSession(s *domain.Session) SessionDTO {
	return SessionDTO{
		EntryID: s.EntryID(),
		Date:    string(s.Date),
		Slot:    string(s.Slot),
		Mood:    string(s.Mood),
		MoodKo:  domain.MoodLabelKo[s.Mood],
		Energy:  s.Energy,
		Topics:  s.NormalizedTopics(),
		Note:    s.Note,
	}
}

// FromDomainSessions converts a slice of domain sessions to DTOs.
func FromDomainSessions(sessions []*domain.Session) []SessionDTO {
	dtos := make([]SessionDTO, len(sessions))
	for i, s := range sessions {
		dtos[i] = FromDomainSession(s)
	}
	return dtos
}

// GateDTO represents the minimum-data gate decision.
type GateDTO struct {
	OK               bool `json:"ok"`
	RequiredDays     int  `json:"required_days"`
	RequiredSessions int  `json:"required_sessions"`
	DaysRecorded     int  `json:"days_recorded"`
	TotalSessions    int  `json:"total_sessions"`
}

// DistItemDTO is one key of a distribution with its count and ratio.
type DistItemDTO struct {
	Key   string  `json:"key"`
	Label string  `json:"label,omitempty"`
	Count int     `json:"count"`
	Ratio float64 `json:"ratio"`
}

// EnergyDTO represents the energy aggregates of a report.
type EnergyDTO struct {
	MorningAvg    *float64 `json:"morning_avg"`
	EveningAvg    *float64 `json:"evening_avg"`
	AvgDailyDelta *float64 `json:"avg_daily_delta"`
	DeltaType     *string  `json:"delta_type"`
	DeltaDaysUp   int      `json:"delta_days_up"`
	DeltaDaysFlat int      `json:"delta_days_flat"`
	DeltaDaysDown int      `json:"delta_days_down"`
}

// StatsDTO represents the full statistics snapshot.
type StatsDTO struct {
	Mode          string        `json:"mode"`
	RangeStart    string        `json:"range_start"`
	RangeEnd      string        `json:"range_end"`
	Gate          GateDTO       `json:"gate"`
	TotalSessions int           `json:"total_sessions"`
	DaysRecorded  int           `json:"days_recorded"`
	CompleteDays  int           `json:"complete_days"`
	Energy        EnergyDTO     `json:"energy"`
	MoodAvgScore  *float64      `json:"mood_avg_score"`
	MoodDist      []DistItemDTO `json:"mood_distribution"`
	MoodTop       []DistItemDTO `json:"mood_top"`
	TopicTop      []DistItemDTO `json:"topic_top"`
}

// FromStats converts a statistics snapshot to its DTO.
func FromStats(s report.Stats) StatsDTO {
	dto := StatsDTO{
		Gate: GateDTO{
			OK:               s.Gate.OK,
			RequiredDays:     s.Gate.RequiredDays,
			RequiredSessions: s.Gate.RequiredSessions,
			DaysRecorded:     s.Gate.DaysRecorded,
			TotalSessions:    s.Gate.TotalSessions,
		},
		TotalSessions: s.Volume.TotalSessions,
		DaysRecorded:  s.Volume.DaysRecorded,
		CompleteDays:  s.Volume.CompleteDays,
		Energy: EnergyDTO{
			MorningAvg:    s.Energy.MorningAvg,
			EveningAvg:    s.Energy.EveningAvg,
			AvgDailyDelta: s.Energy.AvgDailyDelta,
			DeltaDaysUp:   s.Energy.DeltaDays.Up,
			DeltaDaysFlat: s.Energy.DeltaDays.Flat,
			DeltaDaysDown: s.Energy.DeltaDays.Down,
		},
		MoodAvgScore: s.Mood.AvgScore,
	}
	if s.Range != nil {
		dto.Mode = string(s.Range.Mode)
		dto.RangeStart = string(s.Range.Start)
		dto.RangeEnd = string(s.Range.End)
	}
	if s.Energy.DeltaType != nil {
		dt := string(*s.Energy.DeltaType)
		dto.Energy.DeltaType = &dt
	}

	// Mood distribution in canonical scale order, zero keys included.
	for _, mood := range s.Mood.Order {
		count := s.Mood.Distribution[mood]
		ratio := 0.0
		if s.Volume.TotalSessions > 0 {
			ratio = float64(count) / float64(s.Volume.TotalSessions)
		}
		dto.MoodDist = append(dto.MoodDist, DistItemDTO{
			Key:   string(mood),
			Label: s.Mood.LabelsKo[mood],
			Count: count,
			Ratio: ratio,
		})
	}
	for _, item := range s.Mood.Top {
		dto.MoodTop = append(dto.MoodTop, DistItemDTO{
			Key:   item.Key,
			Label: domain.MoodLabelKo[domain.Mood(item.Key)],
			Count: item.Count,
			Ratio: item.Ratio,
		})
	}
	for _, item := range s.Topic.Top {
		dto.TopicTop = append(dto.TopicTop, DistItemDTO{
			Key:   item.Key,
			Count: item.Count,
			Ratio: item.Ratio,
		})
	}
	return dto
}

// CTADTO represents one call-to-action of a coach recommendation.
type CTADTO struct {
	ID      string            `json:"id"`
	Title   string            `json:"title"`
	Intent  string            `json:"intent"`
	Payload map[string]string `json:"payload,omitempty"`
}

// CoachDTO represents a coach recommendation.
type CoachDTO struct {
	Title    string   `json:"title"`
	Message  string   `json:"message"`
	Evidence []string `json:"evidence"`
	CTAs     []CTADTO `json:"ctas"`
}

// FromCoach converts a coach result to its DTO. A nil result (gate failed)
// maps to a nil DTO.
func FromCoach(r *coach.Result) *CoachDTO {
	if r == nil {
		return nil
	}
	dto := &CoachDTO{
		Title:    r.Title,
		Message:  r.Message,
		Evidence: r.Evidence,
	}
	for _, c := range r.CTAs {
		dto.CTAs = append(dto.CTAs, CTADTO{
			ID:      string(c.ID),
			Title:   c.Title,
			Intent:  string(c.Intent),
			Payload: c.Payload,
		})
	}
	return dto
}

// ReportDTO bundles stats and the coach recommendation.
type ReportDTO struct {
	Stats StatsDTO  `json:"stats"`
	Coach *CoachDTO `json:"coach"`
}

// FromReport converts a service report to its DTO.
func FromReport(r *reports.Report) ReportDTO {
	return ReportDTO{
		Stats: FromStats(r.Stats),
		Coach: FromCoach(r.Coach),
	}
}

// BadgeDTO represents one daily insight badge.
type BadgeDTO struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Tone  string `json:"tone"`
}

// TodayDTO represents the day view with its derived insight.
type TodayDTO struct {
	Date    string      `json:"date"`
	Morning *SessionDTO `json:"morning"`
	Evening *SessionDTO `json:"evening"`
	Line    string      `json:"line"`
	Badges  []BadgeDTO  `json:"badges"`
}

// FromToday converts a day view to its DTO.
func FromToday(v *reports.TodayView) TodayDTO {
	dto := TodayDTO{
		Date: string(v.Date),
		Line: v.Insight.Line,
	}
	if v.Morning != nil {
		m := FromDomainSession(v.Morning)
		dto.Morning = &m
	}
	if v.Evening != nil {
		e := FromDomainSession(v.Evening)
		dto.Evening = &e
	}
	for _, b := range v.Insight.Badges {
		dto.Badges = append(dto.Badges, fromBadge(b))
	}
	return dto
}

func fromBadge(b insight.Badge) BadgeDTO {
	return BadgeDTO{Key: b.Key, Label: b.Label, Tone: string(b.Tone)}
}
