// Package coach selects one coaching recommendation from a priority-ordered
// rule table over a report statistics snapshot. The engine is deterministic
// and auditable: rules are evaluated top-down, the highest-priority match
// wins, and a catch-all guarantees a result whenever the data gate passes.
package coach

import "moodlog/internal/report"

// CTAID identifies a call-to-action from the closed enumeration.
type CTAID string

const (
	CTAWriteMorning   CTAID = "WRITE_MORNING"
	CTAWriteEvening   CTAID = "WRITE_EVENING"
	CTABreath3m       CTAID = "BREATH_3M"
	CTAWalk10m        CTAID = "WALK_10M"
	CTASleepHygiene   CTAID = "SLEEP_HYGIENE"
	CTAPlanRecovery1  CTAID = "PLAN_RECOVERY_1"
	CTAReduceLoad1    CTAID = "REDUCE_LOAD_1"
	CTAReviewTopicTop CTAID = "REVIEW_TOPIC_TOP"
)

// Intent tags a CTA's prominence in the coach card.
type Intent string

const (
	IntentPrimary   Intent = "primary"
	IntentSecondary Intent = "secondary"
)

// MaxCTAs caps how many call-to-actions a recommendation carries.
const MaxCTAs = 2

// CTA is a suggested next user action attached to a recommendation.
// Payload carries optional navigation hints (a slot or topic name).
type CTA struct {
	ID      CTAID
	Title   string
	Intent  Intent
	Payload map[string]string
}

// Result is the single recommendation the rule engine selects.
type Result struct {
	Title    string
	Message  string
	Evidence []string
	CTAs     []CTA
}

// rule pairs a static priority with a predicate and a result builder.
type rule struct {
	id       string
	priority int
	when     func(s report.Stats) bool
	build    func(s report.Stats) Result
}

func cta(id CTAID, title string, intent Intent) CTA {
	return CTA{ID: id, Title: title, Intent: intent}
}

func ctaWith(id CTAID, title string, intent Intent, payload map[string]string) CTA {
	return CTA{ID: id, Title: title, Intent: intent, Payload: payload}
}

// Run evaluates the rule table against a statistics snapshot. It returns nil
// when the gate fails (no recommendation without a minimally sufficient
// dataset); otherwise the catch-all guarantees a non-nil result.
func Run(stats report.Stats) *Result {
	if !stats.Gate.OK {
		return nil
	}
	for _, r := range ruleTable {
		if r.when(stats) {
			result := r.build(stats)
			return &result
		}
	}
	// Unreachable: the catch-all predicate is always true.
	return nil
}
