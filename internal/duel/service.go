package duel

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pushp314/derive-duel-backend/internal/evaluator"
	"github.com/pushp314/derive-duel-backend/internal/models"
	apperrors "github.com/pushp314/derive-duel-backend/pkg/errors"
	"github.com/pushp314/derive-duel-backend/pkg/logger"
	"github.com/pushp314/derive-duel-backend/pkg/utils"
)

// Store is the persistence the duel service needs
type Store interface {
	RandomProof(ctx context.Context) (*models.Proof, error)
	GetProof(ctx context.Context, id string) (*models.Proof, error)
	CreateDuel(ctx context.Context, d *models.Duel) error
	FindWaitingDuel(ctx context.Context, code string) (*models.Duel, error)
	GetDuel(ctx context.Context, id string) (*models.Duel, error)
	UpdateDuel(ctx context.Context, id string, mutate func(d *models.Duel) error) (*models.Duel, error)
	RecordDuelSubmission(ctx context.Context, id string, mutate func(d *models.Duel) error, sub *models.Submission, fb *models.ProofFeedback) (*models.Duel, error)
}

type Evaluator interface {
	Evaluate(ctx context.Context, req evaluator.EvaluationRequest) evaluator.Outcome
}

// Notifier is told about every persisted duel change
type Notifier interface {
	DuelUpdated(d *models.Duel)
}

type nopNotifier struct{}

func (nopNotifier) DuelUpdated(*models.Duel) {}

type Service struct {
	store   Store
	eval    Evaluator
	tokens  *Signer
	notify  Notifier
	now     func() time.Time
	newCode func() (string, error)
}

type Option func(*Service)

func WithNotifier(n Notifier) Option {
	return func(s *Service) { s.notify = n }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithCodeGenerator(gen func() (string, error)) Option {
	return func(s *Service) { s.newCode = gen }
}

func NewService(store Store, eval Evaluator, tokens *Signer, opts ...Option) *Service {
	s := &Service{
		store:   store,
		eval:    eval,
		tokens:  tokens,
		notify:  nopNotifier{},
		now:     time.Now,
		newCode: utils.GenerateDuelCode,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ticket is handed to a participant after create or join
type Ticket struct {
	Duel  *models.Duel `json:"duel"`
	Role  Role         `json:"role"`
	Token string       `json:"token"`
}

type SubmitInput struct {
	DuelID   string
	Name     string
	Token    string
	Solution string
	APIKey   string
}

type SubmitResult struct {
	Duel         *models.Duel            `json:"duel"`
	Evaluation   models.EvaluationResult `json:"evaluation"`
	Source       evaluator.Source        `json:"source"`
	SubmissionID string                  `json:"submissionId"`
}

// Create opens a waiting duel over a random proof
func (s *Service) Create(ctx context.Context, creatorName string) (*Ticket, error) {
	name := utils.CleanDisplayName(creatorName)
	if name == "" {
		return nil, fmt.Errorf("%w: creator name is required", apperrors.ErrInvalidRequest)
	}

	proof, err := s.store.RandomProof(ctx)
	if err != nil {
		return nil, err
	}
	code, err := s.newCode()
	if err != nil {
		return nil, err
	}

	d := &models.Duel{
		Code:        code,
		ProofID:     proof.ID,
		CreatorName: name,
		Status:      models.DuelStatusWaiting,
	}
	if err := s.store.CreateDuel(ctx, d); err != nil {
		return nil, err
	}

	log := logger.Duel(d.ID)
	log.Info().Str("code", code).Msg("Duel created")
	return s.ticket(d, RoleCreator)
}

// Join seats opponentName in the waiting duel identified by code
func (s *Service) Join(ctx context.Context, code, opponentName string) (*Ticket, error) {
	code = utils.NormalizeDuelCode(code)
	name := utils.CleanDisplayName(opponentName)
	if code == "" || name == "" {
		return nil, fmt.Errorf("%w: code and opponent name are required", apperrors.ErrInvalidRequest)
	}

	waiting, err := s.store.FindWaitingDuel(ctx, code)
	if err != nil {
		return nil, err
	}

	d, err := s.store.UpdateDuel(ctx, waiting.ID, func(cur *models.Duel) error {
		return Join(cur, name, s.now())
	})
	if err != nil {
		// Someone else took the seat first
		if errors.Is(err, apperrors.ErrInvalidState) {
			return nil, apperrors.ErrDuelNotFound
		}
		return nil, err
	}

	log := logger.Duel(d.ID)
	log.Info().Str("opponent", name).Msg("Duel started")
	s.notify.DuelUpdated(d)
	return s.ticket(d, RoleOpponent)
}

func (s *Service) Get(ctx context.Context, id string) (*models.Duel, error) {
	return s.store.GetDuel(ctx, id)
}

// Submit evaluates a participant's solution and records its progress.
// The second submission settles the winner.
func (s *Service) Submit(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	d, err := s.store.GetDuel(ctx, in.DuelID)
	if err != nil {
		return nil, err
	}

	role, err := s.participant(d, in)
	if err != nil {
		return nil, err
	}
	if err := CanSubmit(d, role); err != nil {
		return nil, err
	}

	proof, err := s.store.GetProof(ctx, d.ProofID)
	if err != nil {
		return nil, err
	}

	out := s.eval.Evaluate(ctx, evaluator.EvaluationRequest{
		UserSolution:       in.Solution,
		ReferenceSolution:  proof.Content,
		MathematicianProof: proof.MathematicianProof,
		Source:             proof.SourceContext(),
		APIKey:             in.APIKey,
	})

	sub := &models.Submission{
		UserName: NameOf(d, role),
		ProofID:  proof.ID,
		Content:  in.Solution,
		Progress: out.Result.Progress,
		Feedback: out.Result.Feedback,
	}
	fb := &models.ProofFeedback{
		IsCorrect:    out.Result.IsCorrect,
		OnRightTrack: out.Result.OnRightTrack,
		FeedbackText: out.Result.Feedback,
		Source:       string(out.Source),
	}
	updated, err := s.store.RecordDuelSubmission(ctx, d.ID, func(cur *models.Duel) error {
		return Record(cur, role, out.Result.Progress, s.now())
	}, sub, fb)
	if err != nil {
		return nil, err
	}

	log := logger.Duel(updated.ID)
	ev := log.Info().Str("role", string(role)).Int("progress", out.Result.Progress)
	if updated.Status == models.DuelStatusCompleted && updated.Winner != nil {
		ev = ev.Str("winner", *updated.Winner)
	}
	ev.Msg("Duel submission recorded")

	s.notify.DuelUpdated(updated)
	return &SubmitResult{
		Duel:         updated,
		Evaluation:   out.Result,
		Source:       out.Source,
		SubmissionID: sub.ID,
	}, nil
}

// participant resolves the caller's seat from the token, or from the
// display name when no token is sent
func (s *Service) participant(d *models.Duel, in SubmitInput) (Role, error) {
	if in.Token == "" {
		// stored names went through the same cleanup on create and join
		return RoleOf(d, utils.CleanDisplayName(in.Name))
	}

	claims, err := s.tokens.Verify(in.Token)
	if err != nil || claims.DuelID != d.ID {
		return "", apperrors.ErrInvalidParticipant
	}
	if claims.Role != RoleCreator && claims.Role != RoleOpponent {
		return "", apperrors.ErrInvalidParticipant
	}
	if NameOf(d, claims.Role) != claims.Name {
		return "", apperrors.ErrInvalidParticipant
	}
	return claims.Role, nil
}

func (s *Service) ticket(d *models.Duel, role Role) (*Ticket, error) {
	token, err := s.tokens.Issue(d.ID, NameOf(d, role), role)
	if err != nil {
		return nil, err
	}
	return &Ticket{Duel: d, Role: role, Token: token}, nil
}
