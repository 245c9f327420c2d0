package report

import (
	"testing"

	"github.com/stretchr/testify/require"

	"moodlog/internal/journal/domain"
)

func session(date string, slot domain.Slot, mood domain.Mood, energy int, topics ...string) *domain.Session {
	return &domain.Session{
		Date:   domain.Date(date),
		Slot:   slot,
		Mood:   mood,
		Energy: energy,
		Topics: topics,
	}
}

func TestBuild_EmptyInput(t *testing.T) {
	stats := Build(Mode7d, nil, nil)

	require.False(t, stats.Gate.OK)
	require.Equal(t, 0, stats.Volume.TotalSessions)
	require.Equal(t, 0, stats.Volume.DaysRecorded)
	require.Equal(t, 0, stats.Volume.CompleteDays)

	require.Nil(t, stats.Energy.MorningAvg)
	require.Nil(t, stats.Energy.EveningAvg)
	require.Nil(t, stats.Energy.AvgDailyDelta)
	require.Nil(t, stats.Energy.DeltaType)
	require.Nil(t, stats.Mood.AvgScore)

	require.Empty(t, stats.Mood.Top)
	require.Empty(t, stats.Topic.Top)

	// Distribution stays fully zero-filled even with no sessions.
	require.Len(t, stats.Mood.Distribution, 8)
	for _, m := range domain.MoodOrder {
		require.Equal(t, 0, stats.Mood.Distribution[m])
	}
}

// 7d mode, 3 distinct days, 4 sessions, 2 complete days with energies
// (2,4) and (3,3): gate passes, avg delta 1.0, recovery type.
func TestBuild_RecoveryScenario(t *testing.T) {
	sessions := []*domain.Session{
		session("2026-01-05", domain.SlotMorning, domain.MoodCalm, 2),
		session("2026-01-05", domain.SlotEvening, domain.MoodGood, 4),
		session("2026-01-06", domain.SlotMorning, domain.MoodContent, 3),
		session("2026-01-06", domain.SlotEvening, domain.MoodContent, 3),
	}
	// Third distinct day without completing the pair.
	sessions = append(sessions, session("2026-01-07", domain.SlotMorning, domain.MoodCalm, 3))

	stats := Build(Mode7d, sessions, nil)

	require.True(t, stats.Gate.OK)
	require.Equal(t, 2, stats.Volume.CompleteDays)
	require.NotNil(t, stats.Energy.AvgDailyDelta)
	require.Equal(t, 1.0, *stats.Energy.AvgDailyDelta)
	require.Equal(t, DeltaDays{Up: 1, Flat: 1, Down: 0}, stats.Energy.DeltaDays)
	require.NotNil(t, stats.Energy.DeltaType)
	require.Equal(t, DeltaRecovery, *stats.Energy.DeltaType)
}

func TestBuild_EnergyAverages(t *testing.T) {
	sessions := []*domain.Session{
		session("2026-01-05", domain.SlotMorning, domain.MoodCalm, 2),
		session("2026-01-06", domain.SlotMorning, domain.MoodCalm, 3),
		session("2026-01-07", domain.SlotMorning, domain.MoodCalm, 3),
	}
	stats := Build(Mode7d, sessions, nil)

	require.NotNil(t, stats.Energy.MorningAvg)
	require.Equal(t, 2.7, *stats.Energy.MorningAvg) // 8/3 rounded to 1 decimal
	require.Nil(t, stats.Energy.EveningAvg, "no evening sessions recorded")
	require.Nil(t, stats.Energy.AvgDailyDelta, "no complete day exists")
	require.Nil(t, stats.Energy.DeltaType)
}

func TestBuild_DeltaClassification(t *testing.T) {
	cases := []struct {
		avg  float64
		want DeltaType
	}{
		{0.6, DeltaRecovery},
		{0.51, DeltaRecovery},
		{-0.6, DeltaDrain},
		{-0.51, DeltaDrain},
		{0.0, DeltaStable},
		{0.29, DeltaStable},
		{-0.29, DeltaStable},
		{0.3, DeltaVolatile},
		{0.5, DeltaVolatile},
		{-0.3, DeltaVolatile},
		{-0.5, DeltaVolatile},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, classifyDelta(tc.avg), "avg=%v", tc.avg)
	}
}

func TestBuild_MoodDistribution(t *testing.T) {
	sessions := []*domain.Session{
		session("2026-01-05", domain.SlotMorning, domain.MoodGood, 3),
		session("2026-01-05", domain.SlotEvening, domain.MoodGood, 3),
		session("2026-01-06", domain.SlotMorning, domain.MoodSad, 2),
	}
	stats := Build(Mode7d, sessions, nil)

	require.Len(t, stats.Mood.Distribution, 8)
	require.Equal(t, 2, stats.Mood.Distribution[domain.MoodGood])
	require.Equal(t, 1, stats.Mood.Distribution[domain.MoodSad])
	require.Equal(t, 0, stats.Mood.Distribution[domain.MoodAngry])

	// avgScore = (7+7+2)/3 = 5.3
	require.NotNil(t, stats.Mood.AvgScore)
	require.Equal(t, 5.3, *stats.Mood.AvgScore)

	require.Len(t, stats.Mood.Top, 2)
	require.Equal(t, "good", stats.Mood.Top[0].Key)
	require.Equal(t, 2, stats.Mood.Top[0].Count)
}

// Dedup happens before explosion: a session tagged ["work","sleep","work"]
// contributes work:1, sleep:1.
func TestBuild_TopicDedupBeforeExplosion(t *testing.T) {
	sessions := []*domain.Session{
		session("2026-01-05", domain.SlotMorning, domain.MoodCalm, 3, "work", "sleep", "work"),
	}
	stats := Build(Mode7d, sessions, nil)

	require.Equal(t, map[string]int{"work": 1, "sleep": 1}, stats.Topic.Distribution)
}

func TestBuild_TopicMultiLabelExplosion(t *testing.T) {
	sessions := []*domain.Session{
		session("2026-01-05", domain.SlotMorning, domain.MoodCalm, 3, "work", "sleep"),
		session("2026-01-05", domain.SlotEvening, domain.MoodCalm, 3, "work"),
		session("2026-01-06", domain.SlotMorning, domain.MoodCalm, 3, "mood"),
	}
	stats := Build(Mode7d, sessions, nil)

	require.Equal(t, 2, stats.Topic.Distribution["work"])
	require.Len(t, stats.Topic.Top, 2)
	require.Equal(t, "work", stats.Topic.Top[0].Key)
	require.InDelta(t, 0.5, stats.Topic.Top[0].Ratio, 1e-9) // 2 of 4 exploded mentions
}

func TestBuild_LegacyTopicFallback(t *testing.T) {
	s := session("2026-01-05", domain.SlotMorning, domain.MoodCalm, 3)
	s.Topic = "운동"
	stats := Build(Mode7d, []*domain.Session{s}, nil)

	require.Equal(t, map[string]int{"운동": 1}, stats.Topic.Distribution)
}

func TestBuild_EchoesRange(t *testing.T) {
	rng := &Range{Start: "2026-01-01", End: "2026-01-07", Days: 7, Mode: Mode7d}
	stats := Build(Mode7d, nil, rng)
	require.Equal(t, rng, stats.Range)

	require.Nil(t, Build(Mode7d, nil, nil).Range)
}

func TestRound1_HalfAwayFromZero(t *testing.T) {
	require.Equal(t, 0.1, round1(0.05))
	require.Equal(t, -0.1, round1(-0.05))
	require.Equal(t, 2.7, round1(8.0/3.0))
	require.Equal(t, 1.0, round1(1.0))
}
