package coach

import (
	"fmt"
	"math"
	"strconv"

	"moodlog/internal/report"
)

// Rule thresholds. The delta cutoffs here govern when the coach reacts and
// are deliberately wider than the classifier's 0.5 boundary.
const (
	deltaFireCutoff    = 0.6
	lowMoodScore       = 3
	highMoodScore      = 6
	topicConcentration = 0.6
)

// ruleTable is evaluated top-down; it is kept sorted by priority descending.
// Invariants (checked at package init and in tests): priorities are distinct,
// the last rule is a catch-all of priority 1 whose predicate is always true,
// and no rule carries more than MaxCTAs call-to-actions.
var ruleTable = []rule{
	{
		id:       "need_complete_days",
		priority: 100,
		when: func(s report.Stats) bool {
			required := int(math.Max(2, math.Floor(float64(s.Volume.DaysRecorded)*0.5)))
			return s.Volume.CompleteDays < required
		},
		build: func(s report.Stats) Result {
			return Result{
				Title:   "아침+저녁 세트를 늘리면 분석이 확 좋아져",
				Message: "Delta는 아침+저녁이 모두 있는 날만 계산돼. 이번 기간엔 '완성된 날'이 적어서 패턴 확정은 아직 이르다. 먼저 저녁 기록부터 고정해봐.",
				Evidence: []string{
					fmt.Sprintf("완성된 날: %d일", s.Volume.CompleteDays),
					fmt.Sprintf("기록한 날: %d일", s.Volume.DaysRecorded),
				},
				CTAs: []CTA{
					ctaWith(CTAWriteEvening, "오늘 저녁 기록하기", IntentPrimary, map[string]string{"slot": "evening"}),
					ctaWith(CTAWriteMorning, "내일 아침 기록하기", IntentSecondary, map[string]string{"slot": "morning"}),
				},
			}
		},
	},
	{
		id:       "delta_down_strong",
		priority: 90,
		when: func(s report.Stats) bool {
			return deref(s.Energy.AvgDailyDelta, 0) <= -deltaFireCutoff
		},
		build: func(s report.Stats) Result {
			return Result{
				Title:   "저녁으로 갈수록 에너지 소모가 누적돼",
				Message: "최근 기간에서 아침 대비 저녁 에너지가 평균적으로 내려갔어. '수면/식사/과부하' 중 하나만 고정해서 원인을 좁혀보자.",
				Evidence: []string{
					fmt.Sprintf("평균 Δ: %s", fmtNum(deref(s.Energy.AvgDailyDelta, 0))),
					fmt.Sprintf("하락일: %d일", s.Energy.DeltaDays.Down),
				},
				CTAs: []CTA{
					cta(CTASleepHygiene, "오늘 수면 루틴 1개 고정", IntentPrimary),
					cta(CTABreath3m, "3분 호흡", IntentSecondary),
				},
			}
		},
	},
	{
		id:       "delta_up_strong",
		priority: 80,
		when: func(s report.Stats) bool {
			return deref(s.Energy.AvgDailyDelta, 0) >= deltaFireCutoff
		},
		build: func(s report.Stats) Result {
			return Result{
				Title:   "회복 요인이 반복되고 있어",
				Message: "최근 기간에서 저녁 에너지가 더 높게 끝나는 날이 많아. 지금의 회복 조건을 '주제'와 같이 기록하면 재현이 쉬워진다.",
				Evidence: []string{
					fmt.Sprintf("평균 Δ: %s", fmtNum(deref(s.Energy.AvgDailyDelta, 0))),
					fmt.Sprintf("상승일: %d일", s.Energy.DeltaDays.Up),
				},
				CTAs: []CTA{
					cta(CTAReviewTopicTop, "회복됐던 날 주제 확인하기", IntentPrimary),
					cta(CTAPlanRecovery1, "내일 회복 1개 예약", IntentSecondary),
				},
			}
		},
	},
	{
		id:       "delta_volatile",
		priority: 70,
		when: func(s report.Stats) bool {
			return s.Energy.DeltaType != nil && *s.Energy.DeltaType == report.DeltaVolatile
		},
		build: func(s report.Stats) Result {
			return Result{
				Title:   "상승/하락이 섞여 있어. 변수 1개만 줄이자",
				Message: "평균만 보면 애매하지만 상승과 하락이 같이 나타나고 있어. '고정 루틴 1개'를 넣으면 원인 후보를 빠르게 걸러낼 수 있다.",
				Evidence: []string{
					fmt.Sprintf("상승/하락: %d/%d일", s.Energy.DeltaDays.Up, s.Energy.DeltaDays.Down),
				},
				CTAs: []CTA{
					cta(CTAPlanRecovery1, "내일 회복 루틴 1개 고정", IntentPrimary),
					cta(CTAWalk10m, "10분 걷기", IntentSecondary),
				},
			}
		},
	},
	{
		id:       "mood_low",
		priority: 65,
		when: func(s report.Stats) bool {
			// Default 99 keeps the rule from firing on a nil average.
			return deref(s.Mood.AvgScore, 99) <= lowMoodScore
		},
		build: func(s report.Stats) Result {
			return Result{
				Title:   "기분 점수가 낮은 구간이야",
				Message: "에너지랑 별개로, 긴장 완충 행동(짧은 호흡/걷기)을 먼저 넣는 게 효율적이야.",
				Evidence: []string{
					fmt.Sprintf("평균 무드 점수: %s/8", fmtNum(deref(s.Mood.AvgScore, 0))),
				},
				CTAs: []CTA{
					cta(CTABreath3m, "3분 호흡", IntentPrimary),
					cta(CTAWalk10m, "10분 걷기", IntentSecondary),
				},
			}
		},
	},
	{
		id:       "topic_skewed",
		priority: 60,
		when: func(s report.Stats) bool {
			return len(s.Topic.Top) > 0 && s.Topic.Top[0].Ratio >= topicConcentration
		},
		build: func(s report.Stats) Result {
			top := s.Topic.Top[0]
			return Result{
				Title:   fmt.Sprintf("이번 기간은 '%s'에 많이 쏠렸어", top.Key),
				Message: "주제가 쏠리면 에너지/기분 변동도 그 주제 영향일 가능성이 커져. '부하 1개 줄이기'나 '회복 1개 추가'를 실험해봐.",
				Evidence: []string{
					fmt.Sprintf("Top 주제: %s (%d%%)", top.Key, int(math.Round(top.Ratio*100))),
				},
				CTAs: []CTA{
					ctaWith(CTAReduceLoad1, "부하 1개 줄이기", IntentPrimary, map[string]string{"topic": top.Key}),
					ctaWith(CTAReviewTopicTop, "해당 주제 모아보기", IntentSecondary, map[string]string{"topic": top.Key}),
				},
			}
		},
	},
	{
		id:       "mood_high",
		priority: 55,
		when: func(s report.Stats) bool {
			return deref(s.Mood.AvgScore, 0) >= highMoodScore
		},
		build: func(s report.Stats) Result {
			return Result{
				Title:   "기분 흐름은 꽤 안정적이야",
				Message: "좋음 쪽 분포가 우세해. 저녁 기록을 빼먹지 않고 회복 조건을 계속 수집하면 더 좋아진다.",
				Evidence: []string{
					fmt.Sprintf("평균 무드 점수: %s/8", fmtNum(deref(s.Mood.AvgScore, 0))),
				},
				CTAs: []CTA{
					ctaWith(CTAWriteEvening, "오늘 저녁 기록하기", IntentPrimary, map[string]string{"slot": "evening"}),
					cta(CTAPlanRecovery1, "내일 회복 1개 예약", IntentSecondary),
				},
			}
		},
	},
	{
		id:       "stable_next_step",
		priority: 40,
		when: func(s report.Stats) bool {
			return s.Energy.DeltaType != nil && *s.Energy.DeltaType == report.DeltaStable
		},
		build: func(s report.Stats) Result {
			return Result{
				Title:   "큰 변화는 없고, 이제는 '실험'이 효율적이야",
				Message: "안정형이면 유지에는 강점이 있어. 다음 단계는 '작은 실험 1개'를 넣어서 더 좋아질 여지를 찾는 거다.",
				Evidence: []string{
					fmt.Sprintf("deltaType: %s", report.DeltaStable),
				},
				CTAs: []CTA{
					cta(CTAPlanRecovery1, "내일 작은 회복 실험 1개", IntentPrimary),
					cta(CTAWalk10m, "10분 걷기 실험", IntentSecondary),
				},
			}
		},
	},
	{
		id:       "fallback",
		priority: 1,
		when:     func(report.Stats) bool { return true },
		build: func(report.Stats) Result {
			return Result{
				Title:   "다음 기록으로 패턴을 더 선명하게 만들자",
				Message: "오늘은 기록 1회만 더 해도 다음 리포트 품질이 오른다.",
				CTAs: []CTA{
					ctaWith(CTAWriteEvening, "오늘 저녁 기록하기", IntentPrimary, map[string]string{"slot": "evening"}),
				},
			}
		},
	},
}

func init() {
	if err := validateRuleTable(ruleTable); err != nil {
		panic(err)
	}
}

// validateRuleTable enforces the table invariants at construction time
// rather than relying on runtime luck.
func validateRuleTable(rules []rule) error {
	if len(rules) == 0 {
		return fmt.Errorf("coach: rule table is empty")
	}
	seen := make(map[int]string, len(rules))
	prev := math.MaxInt
	for _, r := range rules {
		if other, dup := seen[r.priority]; dup {
			return fmt.Errorf("coach: rules %q and %q share priority %d", other, r.id, r.priority)
		}
		seen[r.priority] = r.id
		if r.priority >= prev {
			return fmt.Errorf("coach: rule %q out of priority order", r.id)
		}
		prev = r.priority
	}
	last := rules[len(rules)-1]
	if last.priority != 1 || !last.when(report.Stats{}) {
		return fmt.Errorf("coach: last rule must be a priority-1 catch-all")
	}
	return nil
}

// deref unwraps an optional float with a rule-specific default.
func deref(v *float64, def float64) float64 {
	if v == nil {
		return def
	}
	return *v
}

// fmtNum renders a float the shortest exact way: 1 not 1.0, -0.8 not -0.80.
func fmtNum(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
