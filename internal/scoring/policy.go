package scoring

// Fallback policy. Tests target these directly.
const (
	// Tokens must be strictly longer than this to count
	MinTokenLength = 3

	LengthBonus     = 10
	LengthRatioCap  = 1.5
	LengthRatioLow  = 0.7
	LengthRatioHigh = 1.3

	// Degraded verdict thresholds, compared with >
	CorrectThreshold = 80
	OnTrackThreshold = 40

	MaxProgress = 100
)

// FallbackFeedback marks a result produced without the remote evaluator
const FallbackFeedback = "could not evaluate with AI, estimated locally"
