package presentation

import (
	"encoding/json"
	"io"
)

// Formatter handles JSON output formatting.
type Formatter struct {
	writer io.Writer
}

// NewFormatter creates a new formatter.
func NewFormatter(writer io.Writer) *Formatter {
	return &Formatter{
		writer: writer,
	}
}

// FormatReport formats a report as JSON.
func (f *Formatter) FormatReport(report ReportDTO) error {
	return f.encode(report)
}

// FormatToday formats the day view as JSON.
func (f *Formatter) FormatToday(today TodayDTO) error {
	return f.encode(today)
}

// FormatSessions formats a list of entries as JSON.
func (f *Formatter) FormatSessions(sessions []SessionDTO) error {
	return f.encode(sessions)
}

// FormatSession formats a single entry as JSON.
func (f *Formatter) FormatSession(session SessionDTO) error {
	return f.encode(session)
}

// FormatTopics formats a topic preset list as JSON.
func (f *Formatter) FormatTopics(topics []string) error {
	if topics == nil {
		topics = []string{}
	}
	return f.encode(topics)
}

func (f *Formatter) encode(v any) error {
	encoder := json.NewEncoder(f.writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
