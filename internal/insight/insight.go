// Package insight builds the one-line summary and badges for a single day's
// pair of sessions. It is the small sibling of the multi-day report: no gate,
// no distributions, just the day's energy delta and a handful of tags.
package insight

import (
	"fmt"

	"moodlog/internal/journal/domain"
)

// Tone colors a badge for presentation.
type Tone string

const (
	ToneGood    Tone = "good"
	ToneNeutral Tone = "neutral"
	ToneBad     Tone = "bad"
)

// Badge is a short pattern tag attached to the daily summary.
type Badge struct {
	Key   string
	Label string
	Tone  Tone
}

// MaxBadges caps how many badges a daily insight carries.
const MaxBadges = 3

// Daily is the insight for one calendar day.
type Daily struct {
	Line   string
	Badges []Badge
}

// Thresholds for the day-level badges.
const (
	bigDeltaAbs   = 2
	highEnergyAvg = 4.0
	lowEnergyAvg  = 2.0
)

// BuildDaily summarizes a day from its (possibly absent) morning and evening
// sessions. With both present it buckets the energy delta into one of five
// lines; deltas strictly between the integer buckets cannot occur with
// integer energy levels, so the default line doubles as that dead branch.
func BuildDaily(morning, evening *domain.Session) Daily {
	if morning == nil && evening == nil {
		return Daily{
			Line:   "아직 기록이 없다. 아침 또는 저녁부터 가볍게 시작해봐.",
			Badges: []Badge{{Key: "no_record", Label: "미기록", Tone: ToneNeutral}},
		}
	}
	if morning != nil && evening == nil {
		return Daily{
			Line:   "아침 기록은 완료. 저녁까지 채우면 '변화'가 완성된다.",
			Badges: []Badge{{Key: "half", Label: "부분 기록", Tone: ToneNeutral}},
		}
	}
	if morning == nil {
		return Daily{
			Line:   "저녁 기록은 완료. 아침을 추가하면 하루 변화가 더 선명해진다.",
			Badges: []Badge{{Key: "half", Label: "부분 기록", Tone: ToneNeutral}},
		}
	}

	delta := evening.Energy - morning.Energy
	abs := delta
	if abs < 0 {
		abs = -abs
	}

	line := "오늘은 변화가 크지 않았어. 유지하는 힘도 실력이다."
	switch {
	case delta >= 2:
		line = "아침보다 저녁 에너지가 확실히 높아졌어. 회복한 날이다."
	case delta == 1:
		line = "아침보다 저녁 에너지가 조금 올랐어. 흐름이 괜찮다."
	case delta == 0:
		line = "아침과 저녁 에너지가 비슷했어. 안정적인 하루다."
	case delta == -1:
		line = "저녁에 에너지가 조금 줄었어. 소모가 있었던 날이다."
	case delta <= -2:
		line = "저녁에 에너지가 크게 줄었어. 무리했을 가능성이 크다."
	}

	var badges []Badge

	switch {
	case delta >= 1:
		badges = append(badges, Badge{Key: "recover", Label: "회복형 하루", Tone: ToneGood})
	case delta <= -1:
		badges = append(badges, Badge{Key: "drain", Label: "소모형 하루", Tone: ToneBad})
	default:
		badges = append(badges, Badge{Key: "stable", Label: "안정형 하루", Tone: ToneNeutral})
	}

	if abs >= bigDeltaAbs {
		tone := ToneBad
		if delta > 0 {
			tone = ToneGood
		}
		badges = append(badges, Badge{Key: "big_delta", Label: "변화 큼", Tone: tone})
	}

	if topic, ok := sharedSingleTopic(morning, evening); ok {
		badges = append(badges, Badge{Key: "focus", Label: fmt.Sprintf("%s 집중", topic), Tone: ToneNeutral})
	}

	avg := clamp(float64(morning.Energy+evening.Energy)/2, 1, 5)
	if avg >= highEnergyAvg {
		badges = append(badges, Badge{Key: "high_energy", Label: "고에너지", Tone: ToneGood})
	} else if avg <= lowEnergyAvg {
		badges = append(badges, Badge{Key: "low_energy", Label: "저에너지", Tone: ToneBad})
	}

	if len(badges) > MaxBadges {
		badges = badges[:MaxBadges]
	}
	return Daily{Line: line, Badges: badges}
}

// sharedSingleTopic reports whether both sessions focus on one identical
// topic. It works on the normalized topic list, so the legacy single-topic
// field and a one-element multi-topic set are treated alike; sessions with
// several topics never count as focused.
func sharedSingleTopic(morning, evening *domain.Session) (string, bool) {
	mt := morning.NormalizedTopics()
	et := evening.NormalizedTopics()
	if len(mt) != 1 || len(et) != 1 || mt[0] != et[0] {
		return "", false
	}
	return mt[0], true
}

func clamp(n, min, max float64) float64 {
	if n < min {
		return min
	}
	if n > max {
		return max
	}
	return n
}
