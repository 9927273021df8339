// Package evaluator talks to the remote AI evaluator and turns whatever
// it sends back into a strict EvaluationResult.
package evaluator

import (
	"context"
	"encoding/json"
)

type Action string

const (
	ActionEvaluate Action = "evaluate"
	ActionHint     Action = "hint"
)

// Request is the payload sent to the remote evaluator
type Request struct {
	UserSolution       string `json:"userSolution"`
	ReferenceSolution  string `json:"referenceSolution"`
	MathematicianProof string `json:"mathematicianProof,omitempty"`
	Source             string `json:"source,omitempty"`
	Action             Action `json:"action"`
	APIKey             string `json:"apiKey"`
	Model              string `json:"model,omitempty"`
}

// Remote is the AI evaluation endpoint. For ActionEvaluate the payload
// is either a verdict object or {"response": text}; for ActionHint it
// is {"response": text}.
type Remote interface {
	Invoke(ctx context.Context, req Request) (json.RawMessage, error)
}

// Source says which path produced a result
type Source string

const (
	SourceAI    Source = "ai"
	SourceLocal Source = "local"
)
