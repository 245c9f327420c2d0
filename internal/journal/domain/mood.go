package domain

// Mood is one of the eight fixed mood categories, ordered negative to positive.
type Mood string

const (
	MoodVeryBad  Mood = "very_bad"
	MoodSad      Mood = "sad"
	MoodAnxious  Mood = "anxious"
	MoodAngry    Mood = "angry"
	MoodCalm     Mood = "calm"
	MoodContent  Mood = "content"
	MoodGood     Mood = "good"
	MoodVeryGood Mood = "very_good"
)

// MoodOrder is the canonical eight-step scale, worst to best. The score and
// label tables below are keyed by the same enumeration so ordering and scoring
// cannot drift independently.
var MoodOrder = []Mood{
	MoodVeryBad,
	MoodSad,
	MoodAnxious,
	MoodAngry,
	MoodCalm,
	MoodContent,
	MoodGood,
	MoodVeryGood,
}

// MoodScore maps each mood to its integer score 1..8.
var MoodScore = map[Mood]int{
	MoodVeryBad:  1,
	MoodSad:      2,
	MoodAnxious:  3,
	MoodAngry:    4,
	MoodCalm:     5,
	MoodContent:  6,
	MoodGood:     7,
	MoodVeryGood: 8,
}

// MoodLabelKo maps each mood to its Korean display label.
var MoodLabelKo = map[Mood]string{
	MoodVeryBad:  "완전↓",
	MoodSad:      "다운",
	MoodAnxious:  "불안",
	MoodAngry:    "짜증",
	MoodCalm:     "평온",
	MoodContent:  "만족",
	MoodGood:     "좋음",
	MoodVeryGood: "최고↑",
}

// String returns the string representation of the mood.
func (m Mood) String() string {
	return string(m)
}

// IsValid returns true if the mood is one of the eight categories.
func (m Mood) IsValid() bool {
	_, ok := MoodScore[m]
	return ok
}

// Score returns the 1..8 integer score, or 0 for an unknown mood.
func (m Mood) Score() int {
	return MoodScore[m]
}
