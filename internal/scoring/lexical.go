// Package scoring is the offline heuristic used when the remote
// evaluator is unavailable. It is not a verifier.
package scoring

import (
	"math"
	"regexp"
	"strings"
	"unicode/utf16"

	"github.com/pushp314/derive-duel-backend/internal/models"
)

var nonWord = regexp.MustCompile(`\W+`)

// Score estimates, from 0 to 100, how much of reference the user text covers
func Score(userText, referenceText string) int {
	userTokens := tokenize(userText)
	refTokens := tokenize(referenceText)

	coverage := 0.0
	if len(refTokens) > 0 {
		refSet := make(map[string]struct{}, len(refTokens))
		for _, t := range refTokens {
			refSet[t] = struct{}{}
		}
		// Duplicates in the user text each count
		matches := 0
		for _, t := range userTokens {
			if _, ok := refSet[t]; ok {
				matches++
			}
		}
		coverage = float64(matches) / float64(len(refTokens))
	}

	bonus := 0.0
	if r := lengthRatio(userText, referenceText); r >= LengthRatioLow && r <= LengthRatioHigh {
		bonus = LengthBonus
	}

	return int(math.Round(math.Min(coverage*100+bonus, MaxProgress)))
}

// Fallback builds the degraded verdict from the lexical score
func Fallback(userText, referenceText string) models.EvaluationResult {
	s := Score(userText, referenceText)
	return models.EvaluationResult{
		IsCorrect:    s > CorrectThreshold,
		OnRightTrack: s > OnTrackThreshold,
		Progress:     s,
		Feedback:     FallbackFeedback,
	}
}

func tokenize(text string) []string {
	parts := nonWord.Split(strings.ToLower(text), -1)
	tokens := parts[:0]
	for _, p := range parts {
		if len(p) > MinTokenLength {
			tokens = append(tokens, p)
		}
	}
	return tokens
}

// lengthRatio compares lengths in UTF-16 code units, the unit browser
// clients count in. An empty reference gets the cap so it never earns the
// bonus.
func lengthRatio(userText, referenceText string) float64 {
	ref := utf16Len(referenceText)
	if ref == 0 {
		return LengthRatioCap
	}
	return math.Min(float64(utf16Len(userText))/float64(ref), LengthRatioCap)
}

func utf16Len(s string) int {
	n := 0
	for _, r := range s {
		n += utf16.RuneLen(r)
	}
	return n
}
