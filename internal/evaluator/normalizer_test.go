package evaluator

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/pushp314/derive-duel-backend/internal/config"
	"github.com/pushp314/derive-duel-backend/internal/scoring"
	apperrors "github.com/pushp314/derive-duel-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	reference = "Assume finitely many primes, multiply them all and add one. The result has a prime factor outside the list."
	attempt   = "Suppose there are finitely many primes. Multiply them and add one; its prime factor is not in the list."
)

func jsonString(s string) ([]byte, error) {
	return json.Marshal(map[string]string{"response": s})
}

func envCredential() config.Credential {
	return config.ResolveCredential("", "env-key", "gemini-test")
}

func assertFallback(t *testing.T, out Outcome) {
	t.Helper()
	score := scoring.Score(attempt, reference)
	assert.Equal(t, SourceLocal, out.Source)
	assert.Equal(t, score, out.Result.Progress)
	assert.Equal(t, score > scoring.CorrectThreshold, out.Result.IsCorrect)
	assert.Equal(t, score > scoring.OnTrackThreshold, out.Result.OnRightTrack)
	assert.Equal(t, scoring.FallbackFeedback, out.Result.Feedback)
	assert.Error(t, out.Err)
}

func TestEvaluate_RemoteVerdict(t *testing.T) {
	remote := &fakeRemote{payload: `{"is_correct":true,"on_right_track":true,"progress":88,"feedback":"Correct"}`}
	n := NewNormalizer(remote, envCredential())

	out := n.Evaluate(context.Background(), EvaluationRequest{
		UserSolution:       attempt,
		ReferenceSolution:  reference,
		MathematicianProof: "Euclid, Elements IX.20",
	})

	require.NoError(t, out.Err)
	assert.Equal(t, SourceAI, out.Source)
	assert.Equal(t, 88, out.Result.Progress)
	require.Len(t, remote.calls, 1)
	assert.Equal(t, ActionEvaluate, remote.calls[0].Action)
	assert.Equal(t, "env-key", remote.calls[0].APIKey)
	assert.Equal(t, "gemini-test", remote.calls[0].Model)
	assert.Equal(t, "Euclid, Elements IX.20", remote.calls[0].MathematicianProof)
}

func TestEvaluate_ExplicitKeyWins(t *testing.T) {
	remote := &fakeRemote{payload: `{"is_correct":false,"on_right_track":true,"progress":40,"feedback":"Half"}`}
	n := NewNormalizer(remote, envCredential())

	out := n.Evaluate(context.Background(), EvaluationRequest{UserSolution: attempt, ReferenceSolution: reference, APIKey: "user-key"})
	require.NoError(t, out.Err)
	assert.Equal(t, "user-key", remote.calls[0].APIKey)
}

func TestEvaluate_MissingCredential(t *testing.T) {
	remote := &fakeRemote{payload: `{}`}
	n := NewNormalizer(remote, config.ResolveCredential("", "", ""))

	out := n.Evaluate(context.Background(), EvaluationRequest{UserSolution: attempt, ReferenceSolution: reference})
	assertFallback(t, out)
	assert.ErrorIs(t, out.Err, apperrors.ErrMissingCredential)
	assert.Empty(t, remote.calls)
}

func TestEvaluate_RemoteFailure(t *testing.T) {
	n := NewNormalizer(&fakeRemote{err: errors.New("connection reset")}, envCredential())

	out := n.Evaluate(context.Background(), EvaluationRequest{UserSolution: attempt, ReferenceSolution: reference})
	assertFallback(t, out)
	assert.ErrorIs(t, out.Err, apperrors.ErrRemoteCall)
}

func TestEvaluate_MalformedPayload(t *testing.T) {
	n := NewNormalizer(&fakeRemote{payload: `{"is_correct":"maybe","progress":50}`}, envCredential())

	out := n.Evaluate(context.Background(), EvaluationRequest{UserSolution: attempt, ReferenceSolution: reference})
	assertFallback(t, out)
	assert.ErrorIs(t, out.Err, apperrors.ErrMalformedResponse)
}

func TestEvaluate_WrappedResponse(t *testing.T) {
	payload, err := jsonString("```json\n{\"is_correct\": true, \"on_right_track\": true, \"progress\": 97, \"feedback\": \"ok\"}\n```")
	require.NoError(t, err)
	n := NewNormalizer(&fakeRemote{payload: string(payload)}, envCredential())

	out := n.Evaluate(context.Background(), EvaluationRequest{UserSolution: attempt, ReferenceSolution: reference})
	require.NoError(t, out.Err)
	assert.Equal(t, SourceAI, out.Source)
	assert.Equal(t, 97, out.Result.Progress)
}

func TestBuildPrompt(t *testing.T) {
	p := buildPrompt(Request{Action: ActionEvaluate, UserSolution: "mine", ReferenceSolution: "ref"})
	assert.Contains(t, p, "REFERENCE SOLUTION: ref")
	assert.Contains(t, p, "USER'S SOLUTION: mine")
	assert.Contains(t, p, "ORIGINAL MATHEMATICIAN'S APPROACH: Not available")

	p = buildPrompt(Request{Action: ActionHint, ReferenceSolution: "ref", Source: "Elements"})
	assert.Contains(t, p, "PROOF TO SOLVE: ref")
	assert.Contains(t, p, "HISTORICAL CONTEXT: Elements")
	assert.Contains(t, p, "The user has not started yet.")
}
