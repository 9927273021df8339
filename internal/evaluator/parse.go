package evaluator

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/pushp314/derive-duel-backend/internal/models"
	apperrors "github.com/pushp314/derive-duel-backend/pkg/errors"
)

var (
	fencedJSON   = regexp.MustCompile("```(?:json)?\\s*(\\{[\\s\\S]*?\\})\\s*```")
	feedbackJSON = regexp.MustCompile(`\{[\s\S]*"feedback"[\s\S]*\}`)
)

// ParseEvaluation validates a remote evaluate payload. It accepts a
// verdict object whose fields have the exact JSON types, or an object
// with a "response" string that contains such a verdict. Anything else
// wraps ErrMalformedResponse.
func ParseEvaluation(payload []byte) (models.EvaluationResult, error) {
	fields, err := decodeObject(payload)
	if err != nil {
		return models.EvaluationResult{}, err
	}

	result, verdictErr := decodeVerdict(fields)
	if verdictErr == nil {
		return result, nil
	}

	raw, ok := fields["response"]
	if !ok {
		return models.EvaluationResult{}, verdictErr
	}
	var text string
	if !isKind(raw, '"') || json.Unmarshal(raw, &text) != nil {
		return models.EvaluationResult{}, malformed("response is not a string")
	}

	embedded := extractJSON(text)
	if embedded == "" {
		return models.EvaluationResult{}, malformed("no verdict object in response text")
	}
	inner, err := decodeObject([]byte(embedded))
	if err != nil {
		return models.EvaluationResult{}, err
	}
	return decodeVerdict(inner)
}

// ParseHint pulls the trimmed hint text out of a {"response": text} payload
func ParseHint(payload []byte) (string, error) {
	fields, err := decodeObject(payload)
	if err != nil {
		return "", err
	}
	raw, ok := fields["response"]
	if !ok || !isKind(raw, '"') {
		return "", malformed("response is not a string")
	}
	var text string
	if err := json.Unmarshal(raw, &text); err != nil {
		return "", malformed(err.Error())
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return "", malformed("empty hint")
	}
	return text, nil
}

func extractJSON(text string) string {
	if m := fencedJSON.FindStringSubmatch(text); m != nil {
		return m[1]
	}
	return feedbackJSON.FindString(text)
}

func decodeObject(payload []byte) (map[string]json.RawMessage, error) {
	if !isKind(payload, '{') {
		return nil, malformed("payload is not an object")
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, malformed(err.Error())
	}
	return fields, nil
}

func decodeVerdict(fields map[string]json.RawMessage) (models.EvaluationResult, error) {
	var (
		res      models.EvaluationResult
		progress float64
	)

	if err := decodeField(fields, "is_correct", 'b', &res.IsCorrect); err != nil {
		return res, err
	}
	if err := decodeField(fields, "on_right_track", 'b', &res.OnRightTrack); err != nil {
		return res, err
	}
	if err := decodeField(fields, "progress", 'n', &progress); err != nil {
		return res, err
	}
	if err := decodeField(fields, "feedback", '"', &res.Feedback); err != nil {
		return res, err
	}

	res.Progress = clampProgress(progress)
	return res, nil
}

// decodeField requires the field to exist with the given JSON kind:
// 'b' boolean, 'n' number, '"' string
func decodeField(fields map[string]json.RawMessage, name string, kind byte, dst interface{}) error {
	raw, ok := fields[name]
	if !ok {
		return malformed("missing " + name)
	}
	if !isKind(raw, kind) {
		return malformed(name + " has the wrong type")
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		return malformed(name + ": " + err.Error())
	}
	return nil
}

func isKind(raw []byte, kind byte) bool {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return false
	}
	c := raw[0]
	switch kind {
	case 'b':
		return c == 't' || c == 'f'
	case 'n':
		return c == '-' || (c >= '0' && c <= '9')
	default:
		return c == kind
	}
}

func clampProgress(p float64) int {
	return int(math.Round(math.Max(0, math.Min(p, 100))))
}

func malformed(reason string) error {
	return fmt.Errorf("%w: %s", apperrors.ErrMalformedResponse, reason)
}
