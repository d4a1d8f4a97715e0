package audit

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
)

// ErrExtract is returned when the response holds no brace-delimited text
var ErrExtract = errors.New("audit: could not extract valid JSON from the response")

// jsonObject matches from the first "{" to the last "}"
var jsonObject = regexp.MustCompile(`(?s)\{.*\}`)

// Parse turns a model response into a Result. Models often wrap the JSON in
// prose or code fences, so when the whole response doesn't decode, Parse
// retries once on the span between the first "{" and the last "}". That span
// over-includes when the surrounding prose has braces of its own.
func Parse(log *slog.Logger, raw string) (*Result, error) {
	var wire wireResult
	err := json.Unmarshal([]byte(raw), &wire)
	if err == nil {
		return validate(log, &wire)
	}
	log.Warn("audit: unable to parse response as json", "err", err)

	match := jsonObject.FindString(raw)
	if match == "" {
		return nil, ErrExtract
	}
	log.Debug("audit: attempting to extract json from the response")

	wire = wireResult{}
	if err := json.Unmarshal([]byte(match), &wire); err != nil {
		return nil, fmt.Errorf("audit: parsing extracted json: %w", err)
	}
	return validate(log, &wire)
}

func validate(log *slog.Logger, wire *wireResult) (*Result, error) {
	result, err := wire.result()
	if err != nil {
		return nil, err
	}
	for _, score := range result.MetricScores {
		switch {
		case !score.Numeric():
			log.Warn("audit: metric score is not numeric", "metric", score.Metric, "score", score.Label)
		case !score.InRange():
			log.Warn("audit: metric score out of range", "metric", score.Metric, "score", score.Score)
		}
	}
	return result, nil
}
