package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const pythagoras = "Consider a right triangle with legs a and b and hypotenuse c. " +
	"Arrange four copies of the triangle inside a square of side a + b. " +
	"The inner square has area c squared, so comparing areas gives the theorem."

func TestScore_IdenticalTexts(t *testing.T) {
	assert.Equal(t, 100, Score(pythagoras, pythagoras))
}

func TestScore_Range(t *testing.T) {
	inputs := []string{
		"",
		"a b c",
		"triangle triangle triangle triangle triangle triangle triangle triangle triangle",
		pythagoras + " " + pythagoras + " " + pythagoras,
		"Completely unrelated words about cooking pasta sauce",
	}
	for _, u := range inputs {
		s := Score(u, pythagoras)
		assert.GreaterOrEqual(t, s, 0, u)
		assert.LessOrEqual(t, s, MaxProgress, u)
	}
}

func TestScore_Deterministic(t *testing.T) {
	u := "Arrange four triangles inside a square and compare areas"
	assert.Equal(t, Score(u, pythagoras), Score(u, pythagoras))
}

func TestScore_ZeroReferenceTokens(t *testing.T) {
	// All reference tokens are 3 characters or fewer
	assert.Equal(t, 0, Score("the sum is odd", "a b is odd"))
	assert.Equal(t, 0, Score("anything at all here", ""))
	assert.Equal(t, 0, Score("", ""))
}

func TestScore_ZeroReferenceTokensStillGetsBonus(t *testing.T) {
	// Coverage is zero but lengths are comparable
	assert.Equal(t, LengthBonus, Score("x y z", "a b c"))
}

func TestScore_DuplicatesCount(t *testing.T) {
	ref := "prime number infinite"
	// "prime" twice counts as two matches out of three reference tokens
	got := Score("prime prime", ref)
	assert.Equal(t, 67, got)
}

func TestScore_ShortTokensIgnored(t *testing.T) {
	ref := "let n be odd then proof"
	// Only "then" and "proof" qualify
	assert.Equal(t, 50+LengthBonus, Score("then what or else pf", ref))
}

func TestScore_LengthBonusBounds(t *testing.T) {
	ref := strings.Repeat("x", 100)
	assert.Equal(t, LengthBonus, Score(strings.Repeat("y", 70), ref))
	assert.Equal(t, LengthBonus, Score(strings.Repeat("y", 130), ref))
	assert.Equal(t, 0, Score(strings.Repeat("y", 69), ref))
	assert.Equal(t, 0, Score(strings.Repeat("y", 131), ref))
}

func TestScore_LengthCountsCodeUnits(t *testing.T) {
	ref := "alpha gamma"
	// 11 UTF-16 units but 16 bytes: inside the bonus band
	assert.Equal(t, 50+LengthBonus, Score("gamma πππππ", ref))
	// a surrogate pair counts twice
	assert.Equal(t, 2, utf16Len("𝔽"))
	assert.Equal(t, 2, utf16Len("π≤"))
}

func TestScore_Clamped(t *testing.T) {
	ref := "triangle square"
	// Four matches over two reference tokens is 200% coverage
	assert.Equal(t, MaxProgress, Score("triangle square triangle square", ref))
}

func TestFallback_Thresholds(t *testing.T) {
	r := Fallback(pythagoras, pythagoras)
	assert.True(t, r.IsCorrect)
	assert.True(t, r.OnRightTrack)
	assert.Equal(t, 100, r.Progress)
	assert.Equal(t, FallbackFeedback, r.Feedback)

	r = Fallback("cooking pasta", pythagoras)
	assert.Equal(t, Score("cooking pasta", pythagoras), r.Progress)
	assert.Equal(t, r.Progress > CorrectThreshold, r.IsCorrect)
	assert.Equal(t, r.Progress > OnTrackThreshold, r.OnRightTrack)
	assert.False(t, r.IsCorrect)
}
