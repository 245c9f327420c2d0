// Package report turns raw journal sessions into a gated statistics snapshot:
// volume counts, morning/evening energy aggregates with daily-delta
// classification, mood distribution over the fixed eight-step scale, and a
// multi-label topic distribution. Everything here is a pure function over its
// input; sparse data produces nil aggregates, never an error.
package report

import (
	"math"

	"moodlog/internal/journal/domain"
)

// DeltaType classifies the average daily energy delta over complete days.
type DeltaType string

const (
	DeltaRecovery DeltaType = "회복형" // evenings end meaningfully higher
	DeltaDrain    DeltaType = "소모형" // evenings end meaningfully lower
	DeltaStable   DeltaType = "안정형" // delta hovers near zero
	DeltaVolatile DeltaType = "변동형" // mixed or borderline signal
)

// Classification cutoffs for the average daily delta.
const (
	DeltaStrongCutoff = 0.5
	DeltaStableCutoff = 0.3
)

// Range echoes the date window a report was built for.
type Range struct {
	Start domain.Date
	End   domain.Date
	Days  int
	Mode  Mode
}

// Volume holds the session/day counts of a window.
type Volume struct {
	TotalSessions int
	DaysRecorded  int
	CompleteDays  int
}

// DeltaDays counts complete days by delta sign.
type DeltaDays struct {
	Up   int
	Flat int
	Down int
}

// Energy holds the per-slot averages and the daily-delta aggregates.
// Averages are nil when no session of the slot (or no complete day) exists.
type Energy struct {
	MorningAvg    *float64
	EveningAvg    *float64
	AvgDailyDelta *float64
	DeltaType     *DeltaType
	DeltaDays     DeltaDays
}

// MoodStats holds the mood distribution over the fixed eight-key scale.
// Distribution is always fully zero-filled.
type MoodStats struct {
	Order        []domain.Mood
	LabelsKo     map[domain.Mood]string
	Distribution map[domain.Mood]int
	Top          []DistItem
	AvgScore     *float64
}

// TopicStats holds the exploded multi-label topic distribution.
type TopicStats struct {
	Distribution map[string]int
	Top          []DistItem
}

// Stats is the immutable statistics snapshot for one report request.
// It is recomputed wholesale on new input and never mutated afterwards.
type Stats struct {
	Range  *Range
	Gate   Gate
	Volume Volume
	Energy Energy
	Mood   MoodStats
	Topic  TopicStats
}

// Build composes the gate, volume, energy, mood and topic aggregates into one
// snapshot. Gate failure does not short-circuit: insufficiency is a
// presentation decision made downstream, so statistics are computed anyway.
func Build(mode Mode, sessions []*domain.Session, rng *Range) Stats {
	gate := EvaluateGate(mode, sessions)

	volume := Volume{
		TotalSessions: len(sessions),
		DaysRecorded:  countDistinctDates(sessions),
	}

	// Per-slot energy averages.
	var morning, evening []float64
	for _, s := range sessions {
		switch s.Slot {
		case domain.SlotMorning:
			morning = append(morning, float64(s.Energy))
		case domain.SlotEvening:
			evening = append(evening, float64(s.Energy))
		}
	}

	// Pair each date's slots; deltas exist only for complete days.
	type dayPair struct {
		morning, evening *domain.Session
	}
	byDate := make(map[domain.Date]*dayPair, volume.DaysRecorded)
	dateOrder := make([]domain.Date, 0, volume.DaysRecorded)
	for _, s := range sessions {
		p, ok := byDate[s.Date]
		if !ok {
			p = &dayPair{}
			byDate[s.Date] = p
			dateOrder = append(dateOrder, s.Date)
		}
		switch s.Slot {
		case domain.SlotMorning:
			p.morning = s
		case domain.SlotEvening:
			p.evening = s
		}
	}

	var deltas []float64
	var deltaDays DeltaDays
	for _, date := range dateOrder {
		p := byDate[date]
		if p.morning == nil || p.evening == nil {
			continue
		}
		d := float64(p.evening.Energy - p.morning.Energy)
		deltas = append(deltas, d)
		switch {
		case d > 0:
			deltaDays.Up++
		case d < 0:
			deltaDays.Down++
		default:
			deltaDays.Flat++
		}
	}
	volume.CompleteDays = len(deltas)

	avgDailyDelta := safeAvg(deltas)
	var deltaType *DeltaType
	if avgDailyDelta != nil {
		dt := classifyDelta(*avgDailyDelta)
		deltaType = &dt
	}

	// Mood distribution, zero-filled across the full scale.
	moodDist := make(map[domain.Mood]int, len(domain.MoodOrder))
	for _, m := range domain.MoodOrder {
		moodDist[m] = 0
	}
	moodKeys := make([]string, 0, len(sessions))
	moodScores := make([]float64, 0, len(sessions))
	for _, s := range sessions {
		moodDist[s.Mood]++
		moodKeys = append(moodKeys, string(s.Mood))
		moodScores = append(moodScores, float64(s.Mood.Score()))
	}

	// Topics are deduped per session, then exploded across sessions:
	// a session with N distinct topics contributes N counts.
	var topicItems []string
	for _, s := range sessions {
		topicItems = append(topicItems, s.NormalizedTopics()...)
	}
	topicDist := make(map[string]int, len(topicItems))
	for _, t := range topicItems {
		topicDist[t]++
	}

	return Stats{
		Range:  rng,
		Gate:   gate,
		Volume: volume,
		Energy: Energy{
			MorningAvg:    safeAvg(morning),
			EveningAvg:    safeAvg(evening),
			AvgDailyDelta: avgDailyDelta,
			DeltaType:     deltaType,
			DeltaDays:     deltaDays,
		},
		Mood: MoodStats{
			Order:        domain.MoodOrder,
			LabelsKo:     domain.MoodLabelKo,
			Distribution: moodDist,
			Top:          topN(BuildDistribution(moodKeys), 2),
			AvgScore:     safeAvg(moodScores),
		},
		Topic: TopicStats{
			Distribution: topicDist,
			Top:          topN(BuildDistribution(topicItems), 2),
		},
	}
}

// classifyDelta assigns a delta type, first match wins. The cutoffs leave no
// gap: every non-nil average lands on exactly one of the four labels, with
// volatile as the borderline fallback.
func classifyDelta(avgDailyDelta float64) DeltaType {
	switch {
	case avgDailyDelta > DeltaStrongCutoff:
		return DeltaRecovery
	case avgDailyDelta < -DeltaStrongCutoff:
		return DeltaDrain
	case math.Abs(avgDailyDelta) < DeltaStableCutoff:
		return DeltaStable
	default:
		return DeltaVolatile
	}
}

// round1 rounds half away from zero to one decimal place.
func round1(n float64) float64 {
	return math.Round(n*10) / 10
}

// safeAvg returns the 1-decimal mean, or nil for empty input.
func safeAvg(nums []float64) *float64 {
	if len(nums) == 0 {
		return nil
	}
	var sum float64
	for _, n := range nums {
		sum += n
	}
	avg := round1(sum / float64(len(nums)))
	return &avg
}
