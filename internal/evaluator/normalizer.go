package evaluator

import (
	"context"
	"fmt"

	"github.com/pushp314/derive-duel-backend/internal/config"
	"github.com/pushp314/derive-duel-backend/internal/models"
	"github.com/pushp314/derive-duel-backend/internal/scoring"
	apperrors "github.com/pushp314/derive-duel-backend/pkg/errors"
	"github.com/pushp314/derive-duel-backend/pkg/logger"
)

// EvaluationRequest is one solution to grade. APIKey, when set, is an
// explicit credential that overrides the one configured at startup.
type EvaluationRequest struct {
	UserSolution       string
	ReferenceSolution  string
	MathematicianProof string
	Source             string
	APIKey             string
}

// Outcome is always usable: Err records why the local scorer was used
type Outcome struct {
	Result models.EvaluationResult
	Source Source
	Err    error
}

// Normalizer grades solutions with the remote evaluator and falls back
// to the lexical scorer on any failure
type Normalizer struct {
	remote Remote
	cred   config.Credential
}

func NewNormalizer(remote Remote, cred config.Credential) *Normalizer {
	return &Normalizer{remote: remote, cred: cred}
}

func (n *Normalizer) Evaluate(ctx context.Context, req EvaluationRequest) Outcome {
	res, err := n.evaluateRemote(ctx, req)
	if err == nil {
		return Outcome{Result: res, Source: SourceAI}
	}

	logger.Warn().Err(err).Msg("AI evaluation unavailable, estimating locally")
	return Outcome{
		Result: scoring.Fallback(req.UserSolution, req.ReferenceSolution),
		Source: SourceLocal,
		Err:    err,
	}
}

func (n *Normalizer) evaluateRemote(ctx context.Context, req EvaluationRequest) (models.EvaluationResult, error) {
	cred := config.ResolveCredential(req.APIKey, n.cred.APIKey, n.cred.Model)
	if !cred.Present() {
		return models.EvaluationResult{}, apperrors.ErrMissingCredential
	}
	if n.remote == nil {
		return models.EvaluationResult{}, fmt.Errorf("%w: no remote configured", apperrors.ErrRemoteCall)
	}

	payload, err := n.remote.Invoke(ctx, Request{
		UserSolution:       req.UserSolution,
		ReferenceSolution:  req.ReferenceSolution,
		MathematicianProof: req.MathematicianProof,
		Source:             req.Source,
		Action:             ActionEvaluate,
		APIKey:             cred.APIKey,
		Model:              cred.Model,
	})
	if err != nil {
		return models.EvaluationResult{}, fmt.Errorf("%w: %v", apperrors.ErrRemoteCall, err)
	}
	return ParseEvaluation(payload)
}
