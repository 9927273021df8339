// Package hints serves one hint per call from the remote evaluator, or
// from a fixed offline pool when the evaluator cannot help.
package hints

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/pushp314/derive-duel-backend/internal/config"
	"github.com/pushp314/derive-duel-backend/internal/evaluator"
	apperrors "github.com/pushp314/derive-duel-backend/pkg/errors"
	"github.com/pushp314/derive-duel-backend/pkg/logger"
)

// Pool is the offline hint set
var Pool = []string{
	"Try reviewing the problem statement again and breaking it down step by step.",
	"Write down exactly what you are given and what you need to show before manipulating anything.",
	"Consider a proof by contradiction: assume the statement is false and look for an impossibility.",
	"Check whether induction applies. What is the base case, and how does case n help with case n+1?",
	"Work through a small concrete example first and look for a pattern you can generalize.",
	"Look for an invariant: a quantity that stays the same no matter which step you take.",
	"Try splitting the problem into cases, such as even and odd or positive and negative.",
	"Recall the definitions of every term in the statement; the key step often follows from one of them.",
	"Could a known result, such as the pigeonhole principle or the triangle inequality, shorten the argument?",
	"Try working backwards from the conclusion to see what would need to be true one step earlier.",
	"Draw a diagram or picture of the objects involved and mark the relationships you know.",
	"Ask whether the contrapositive is easier to prove than the statement as written.",
}

// HintRequest describes the problem and the solver's progress so far.
// APIKey, when set, overrides the startup credential.
type HintRequest struct {
	ReferenceSolution  string
	UserSolution       string
	MathematicianProof string
	Source             string
	APIKey             string
}

type Outcome struct {
	Text   string
	Source evaluator.Source
	Err    error
}

// Broker is stateless per call; hint budgets belong to the caller
type Broker struct {
	remote evaluator.Remote
	cred   config.Credential
	pick   func(n int) int
}

func NewBroker(remote evaluator.Remote, cred config.Credential) *Broker {
	return &Broker{remote: remote, cred: cred, pick: rand.IntN}
}

// WithPicker replaces the random pool selector
func (b *Broker) WithPicker(pick func(n int) int) *Broker {
	cp := *b
	cp.pick = pick
	return &cp
}

func (b *Broker) Hint(ctx context.Context, req HintRequest) Outcome {
	text, err := b.remoteHint(ctx, req)
	if err == nil {
		return Outcome{Text: text, Source: evaluator.SourceAI}
	}

	logger.Warn().Err(err).Msg("AI hint unavailable, using offline pool")
	return Outcome{Text: Pool[b.pick(len(Pool))], Source: evaluator.SourceLocal, Err: err}
}

func (b *Broker) remoteHint(ctx context.Context, req HintRequest) (string, error) {
	cred := config.ResolveCredential(req.APIKey, b.cred.APIKey, b.cred.Model)
	if !cred.Present() {
		return "", apperrors.ErrMissingCredential
	}
	if b.remote == nil {
		return "", fmt.Errorf("%w: no remote configured", apperrors.ErrRemoteCall)
	}

	payload, err := b.remote.Invoke(ctx, evaluator.Request{
		UserSolution:       req.UserSolution,
		ReferenceSolution:  req.ReferenceSolution,
		MathematicianProof: req.MathematicianProof,
		Source:             req.Source,
		Action:             evaluator.ActionHint,
		APIKey:             cred.APIKey,
		Model:              cred.Model,
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", apperrors.ErrRemoteCall, err)
	}
	return evaluator.ParseHint(payload)
}
