package models

// EvaluationResult is the verdict for one solution. Not persisted on its
// own; it is folded into Submission and ProofFeedback.
type EvaluationResult struct {
	IsCorrect    bool   `json:"is_correct"`
	OnRightTrack bool   `json:"on_right_track"`
	Progress     int    `json:"progress"` // 0-100
	Feedback     string `json:"feedback"`
}
