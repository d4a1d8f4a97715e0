package audit

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Result is the structured audit returned by the model
type Result struct {
	AuditReport  string         `json:"auditReport"`
	MetricScores []*MetricScore `json:"metricScores"`
	Suggestions  string         `json:"suggestionsForImprovement"`
}

// MetricScore is a single metric and its 0-10 score. Neither the metric name
// nor the range is enforced.
type MetricScore struct {
	Metric string
	Score  float64
	// Label holds the score as sent when it wasn't a JSON number, e.g. "8/10"
	Label string
}

// Numeric reports whether the score is a number
func (m *MetricScore) Numeric() bool {
	if m.Label == "" {
		return true
	}
	_, err := strconv.ParseFloat(strings.TrimSpace(m.Label), 64)
	return err == nil
}

// InRange reports whether the score falls within 0-10
func (m *MetricScore) InRange() bool {
	return m.Score >= 0 && m.Score <= 10
}

// String formats the score the way it's rendered before "/10"
func (m *MetricScore) String() string {
	if m.Label != "" {
		return m.Label
	}
	return strconv.FormatFloat(m.Score, 'f', -1, 64)
}

func (m *MetricScore) MarshalJSON() ([]byte, error) {
	var score any = m.Score
	if m.Label != "" {
		score = m.Label
	}
	return json.Marshal(struct {
		Metric string `json:"metric"`
		Score  any    `json:"score"`
	}{m.Metric, score})
}

// UnmarshalJSON accepts a number or any other JSON value for the score
func (m *MetricScore) UnmarshalJSON(data []byte) error {
	fields, err := decodeFields(data)
	if err != nil {
		return err
	}
	*m = MetricScore{}
	if raw, ok := fields["metric"]; ok {
		if err := json.Unmarshal(raw, &m.Metric); err != nil {
			return fmt.Errorf("metric: %w", err)
		}
	}
	raw := bytes.TrimSpace(fields["score"])
	if len(raw) == 0 || string(raw) == "null" {
		return nil
	}
	if err := json.Unmarshal(raw, &m.Score); err == nil {
		return nil
	}
	if err := json.Unmarshal(raw, &m.Label); err != nil {
		m.Label = string(raw)
	}
	if f, err := strconv.ParseFloat(strings.TrimSpace(m.Label), 64); err == nil {
		m.Score = f
	}
	return nil
}

// ErrMissingField is wrapped by FieldError
var ErrMissingField = errors.New("missing field")

// FieldError reports a result field that was absent or null
type FieldError struct {
	Field string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("audit: result is missing %q", e.Field)
}

func (e *FieldError) Unwrap() error {
	return ErrMissingField
}

// decodeFields splits a JSON object into its fields. Lookups on the result
// are exact, unlike encoding/json's case-insensitive struct matching.
func decodeFields(data []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, err
	}
	return fields, nil
}

// wireResult distinguishes absent fields from empty ones
type wireResult struct {
	AuditReport  *string
	MetricScores *[]*MetricScore
	Suggestions  *string
}

func (w *wireResult) UnmarshalJSON(data []byte) error {
	fields, err := decodeFields(data)
	if err != nil {
		return err
	}
	*w = wireResult{}
	targets := []struct {
		key    string
		target any
	}{
		{"auditReport", &w.AuditReport},
		{"metricScores", &w.MetricScores},
		{"suggestionsForImprovement", &w.Suggestions},
	}
	for _, t := range targets {
		raw, ok := fields[t.key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, t.target); err != nil {
			return fmt.Errorf("%s: %w", t.key, err)
		}
	}
	return nil
}

func (w *wireResult) result() (*Result, error) {
	if w.AuditReport == nil {
		return nil, &FieldError{"auditReport"}
	}
	if w.MetricScores == nil {
		return nil, &FieldError{"metricScores"}
	}
	if w.Suggestions == nil {
		return nil, &FieldError{"suggestionsForImprovement"}
	}
	scores := make([]*MetricScore, 0, len(*w.MetricScores))
	for _, score := range *w.MetricScores {
		// Tolerate null entries in the array
		if score == nil {
			continue
		}
		scores = append(scores, score)
	}
	return &Result{
		AuditReport:  *w.AuditReport,
		MetricScores: scores,
		Suggestions:  *w.Suggestions,
	}, nil
}
