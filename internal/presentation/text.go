package presentation

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
)

// DefaultWrapWidth is the wrap width for message text when none is set.
const DefaultWrapWidth = 72

// distBarWidth is the width of the widest distribution bar.
const distBarWidth = 20

// TextRenderer renders DTOs as styled terminal text.
type TextRenderer struct {
	writer io.Writer
	width  int

	title   lipgloss.Style
	section lipgloss.Style
	dim     lipgloss.Style
	good    lipgloss.Style
	bad     lipgloss.Style
	neutral lipgloss.Style
}

// NewTextRenderer creates a renderer. With color disabled every style is a
// pass-through, so output stays grep-friendly.
func NewTextRenderer(writer io.Writer, width int, color bool) *TextRenderer {
	if width <= 0 {
		width = DefaultWrapWidth
	}
	r := &TextRenderer{
		writer:  writer,
		width:   width,
		title:   lipgloss.NewStyle(),
		section: lipgloss.NewStyle(),
		dim:     lipgloss.NewStyle(),
		good:    lipgloss.NewStyle(),
		bad:     lipgloss.NewStyle(),
		neutral: lipgloss.NewStyle(),
	}
	if color {
		r.title = lipgloss.NewStyle().Bold(true)
		r.section = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
		r.dim = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
		r.good = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
		r.bad = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
		r.neutral = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	}
	return r
}

func (r *TextRenderer) printf(format string, args ...any) {
	fmt.Fprintf(r.writer, format, args...)
}

// RenderSessions renders entries one per line.
func (r *TextRenderer) RenderSessions(sessions []SessionDTO) {
	if len(sessions) == 0 {
		r.printf("%s\n", r.dim.Render("no entries"))
		return
	}
	for _, s := range sessions {
		r.RenderSession(s)
	}
}

// RenderSession renders one entry on a single line.
func (r *TextRenderer) RenderSession(s SessionDTO) {
	// Slot column is fixed-width; mood labels are double-width Korean and
	// need runewidth-aware padding to keep the energy column aligned.
	slot := runewidth.FillRight(s.Slot, 8)
	mood := runewidth.FillRight(fmt.Sprintf("%s(%s)", s.MoodKo, s.Mood), 22)
	line := fmt.Sprintf("%s  %s %s energy=%d", s.Date, slot, mood, s.Energy)
	if len(s.Topics) > 0 {
		line += "  " + r.dim.Render("["+strings.Join(s.Topics, ", ")+"]")
	}
	if s.Note != "" {
		line += "  " + r.dim.Render(s.Note)
	}
	r.printf("%s\n", line)
}

// RenderToday renders the day view: both slots, the insight line, badges.
func (r *TextRenderer) RenderToday(t TodayDTO) {
	r.printf("%s\n", r.title.Render(t.Date))
	if t.Morning != nil {
		r.RenderSession(*t.Morning)
	}
	if t.Evening != nil {
		r.RenderSession(*t.Evening)
	}
	r.printf("\n%s\n", wordwrap.String(t.Line, r.width))
	if len(t.Badges) > 0 {
		parts := make([]string, len(t.Badges))
		for i, b := range t.Badges {
			parts[i] = r.toneStyle(b.Tone).Render("[" + b.Label + "]")
		}
		r.printf("%s\n", strings.Join(parts, " "))
	}
}

// RenderReport renders the statistics snapshot and coach recommendation.
func (r *TextRenderer) RenderReport(rep ReportDTO) {
	s := rep.Stats
	r.printf("%s\n", r.title.Render(fmt.Sprintf("리포트 %s (%s ~ %s)", s.Mode, s.RangeStart, s.RangeEnd)))

	if !s.Gate.OK {
		r.printf("%s\n", wordwrap.String(fmt.Sprintf(
			"아직 데이터가 부족해. 최소 %d일, %d회 기록이 필요해 (현재 %d일, %d회).",
			s.Gate.RequiredDays, s.Gate.RequiredSessions, s.Gate.DaysRecorded, s.Gate.TotalSessions), r.width))
		return
	}

	r.printf("\n%s\n", r.section.Render("기록"))
	r.printf("  세션 %d회 / %d일 기록 / 완성된 날 %d일\n", s.TotalSessions, s.DaysRecorded, s.CompleteDays)

	r.printf("\n%s\n", r.section.Render("에너지"))
	r.printf("  아침 평균 %s / 저녁 평균 %s\n", fmtAvg(s.Energy.MorningAvg), fmtAvg(s.Energy.EveningAvg))
	if s.Energy.AvgDailyDelta != nil {
		delta := fmt.Sprintf("  하루 변화 평균 %+.1f", *s.Energy.AvgDailyDelta)
		if s.Energy.DeltaType != nil {
			delta += " " + r.deltaStyle(*s.Energy.DeltaType).Render("("+*s.Energy.DeltaType+")")
		}
		r.printf("%s\n", delta)
		r.printf("  %s\n", r.dim.Render(fmt.Sprintf("상승 %d일 / 유지 %d일 / 하락 %d일",
			s.Energy.DeltaDaysUp, s.Energy.DeltaDaysFlat, s.Energy.DeltaDaysDown)))
	}

	r.printf("\n%s\n", r.section.Render("기분"))
	if s.MoodAvgScore != nil {
		r.printf("  평균 점수 %.1f / 8\n", *s.MoodAvgScore)
	}
	r.renderDistribution(s.MoodDist)

	if len(s.TopicTop) > 0 {
		r.printf("\n%s\n", r.section.Render("토픽"))
		for _, item := range s.TopicTop {
			r.printf("  %s %d회 (%d%%)\n", runewidth.FillRight(item.Key, 12), item.Count, int(item.Ratio*100))
		}
	}

	if rep.Coach != nil {
		r.renderCoach(*rep.Coach)
	}
}

func (r *TextRenderer) renderCoach(c CoachDTO) {
	r.printf("\n%s\n", r.section.Render("코치"))
	r.printf("  %s\n", r.title.Render(c.Title))
	for _, line := range strings.Split(wordwrap.String(c.Message, r.width-2), "\n") {
		r.printf("  %s\n", line)
	}
	for _, ev := range c.Evidence {
		r.printf("  %s\n", r.dim.Render("· "+ev))
	}
	for _, cta := range c.CTAs {
		marker := "→"
		if cta.Intent == "primary" {
			marker = "▶"
		}
		r.printf("  %s %s\n", marker, cta.Title)
	}
}

// renderDistribution draws a right-padded label column and proportional bars.
// Zero-count keys stay visible so the fixed scale is apparent.
func (r *TextRenderer) renderDistribution(items []DistItemDTO) {
	labelWidth := 0
	maxCount := 0
	for _, item := range items {
		if w := runewidth.StringWidth(item.Label); w > labelWidth {
			labelWidth = w
		}
		if item.Count > maxCount {
			maxCount = item.Count
		}
	}
	for _, item := range items {
		bar := ""
		if maxCount > 0 && item.Count > 0 {
			n := item.Count * distBarWidth / maxCount
			if n < 1 {
				n = 1
			}
			bar = strings.Repeat("█", n)
		}
		r.printf("  %s %2d %s\n", runewidth.FillRight(item.Label, labelWidth), item.Count, bar)
	}
}

// RenderTopics renders the preset topic list.
func (r *TextRenderer) RenderTopics(topics []string) {
	if len(topics) == 0 {
		r.printf("%s\n", r.dim.Render("no topic presets"))
		return
	}
	for _, topic := range topics {
		r.printf("%s\n", topic)
	}
}

func (r *TextRenderer) toneStyle(tone string) lipgloss.Style {
	switch tone {
	case "good":
		return r.good
	case "bad":
		return r.bad
	default:
		return r.neutral
	}
}

func (r *TextRenderer) deltaStyle(deltaType string) lipgloss.Style {
	switch deltaType {
	case "회복형":
		return r.good
	case "소모형":
		return r.bad
	default:
		return r.neutral
	}
}

func fmtAvg(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', 1, 64)
}
