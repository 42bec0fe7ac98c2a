package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/interviewlab/interviewlab-backend/internal/data/repos"
	types "github.com/interviewlab/interviewlab-backend/internal/domain"
	"github.com/interviewlab/interviewlab-backend/internal/evaluation"
	"github.com/interviewlab/interviewlab-backend/internal/pkg/dbctx"
	"github.com/interviewlab/interviewlab-backend/internal/platform/logger"
)

const (
	WebhookStatusIgnored   = "ignored"
	WebhookStatusProcessed = "processed"
)

// JSONGenerator is the structured-output surface shared by the LLM clients.
type JSONGenerator interface {
	GenerateJSON(ctx context.Context, system string, user string, schemaName string, schema map[string]any) (map[string]any, error)
	Model() string
}

// Scorer turns an interview transcript into a validated scorecard.
type Scorer interface {
	Score(ctx context.Context, in evaluation.PromptInput) (*evaluation.Scorecard, error)
	Name() string
}

type llmScorer struct {
	log    *logger.Logger
	gen    JSONGenerator
	rubric *evaluation.Rubric
}

func NewLLMScorer(log *logger.Logger, gen JSONGenerator, rubric *evaluation.Rubric) Scorer {
	if rubric == nil {
		rubric = evaluation.DefaultRubric()
	}
	return &llmScorer{
		log:    log.With("service", "LLMScorer"),
		gen:    gen,
		rubric: rubric,
	}
}

func (s *llmScorer) Name() string { return s.gen.Model() }

func (s *llmScorer) Score(ctx context.Context, in evaluation.PromptInput) (*evaluation.Scorecard, error) {
	system, user, err := s.rubric.Render(in)
	if err != nil {
		return nil, err
	}
	obj, err := s.gen.GenerateJSON(ctx, system, user, s.rubric.SchemaName, s.rubric.Schema())
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrScoring, err)
	}
	sc, err := evaluation.ParseScorecard(obj)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidScorecard, err)
	}
	return sc, nil
}

type EvaluationObserver interface {
	IncWebhookOutcome(outcome string)
	ObserveEvaluationScore(scorer string, overall int)
}

type WebhookResult struct {
	Status      string    `json:"status"`
	InterviewID uuid.UUID `json:"interview_id,omitempty"`
}

// EvaluationService runs the post-call pipeline and serves its results.
type EvaluationService interface {
	HandleWebhook(ctx context.Context, raw []byte) (*WebhookResult, error)
	// GetResult returns nil, nil while the interview has not been scored.
	GetResult(ctx context.Context, identityID string, interviewID uuid.UUID) (*types.InterviewResult, error)
}

type evaluationService struct {
	log              *logger.Logger
	accountRepo      repos.AccountRepo
	interviewRepo    repos.InterviewRepo
	conversationRepo repos.ConversationRepo
	resultRepo       repos.ResultRepo
	scorer           Scorer
	observer         EvaluationObserver
}

func NewEvaluationService(
	log *logger.Logger,
	accountRepo repos.AccountRepo,
	interviewRepo repos.InterviewRepo,
	conversationRepo repos.ConversationRepo,
	resultRepo repos.ResultRepo,
	scorer Scorer,
	observer EvaluationObserver,
) EvaluationService {
	return &evaluationService{
		log:              log.With("service", "EvaluationService"),
		accountRepo:      accountRepo,
		interviewRepo:    interviewRepo,
		conversationRepo: conversationRepo,
		resultRepo:       resultRepo,
		scorer:           scorer,
		observer:         observer,
	}
}

type webhookEnvelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

func (s *evaluationService) HandleWebhook(ctx context.Context, raw []byte) (*WebhookResult, error) {
	res, err := s.handleWebhook(ctx, raw)
	if s.observer != nil {
		s.observer.IncWebhookOutcome(WebhookOutcome(res, err))
	}
	return res, err
}

func (s *evaluationService) handleWebhook(ctx context.Context, raw []byte) (*WebhookResult, error) {
	var env webhookEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedWebhook, err)
	}
	if env.Type != evaluation.PostCallTranscription {
		s.log.Debug("Ignoring webhook event", "type", env.Type)
		return &WebhookResult{Status: WebhookStatusIgnored}, nil
	}

	trimmed := strings.TrimSpace(string(env.Data))
	if trimmed == "" || trimmed == "null" {
		return nil, fmt.Errorf("%w: missing data", ErrMalformedWebhook)
	}
	var data evaluation.WebhookData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedWebhook, err)
	}
	conversationID := strings.TrimSpace(data.ConversationID)
	if conversationID == "" {
		return nil, fmt.Errorf("%w: missing conversation_id", ErrMalformedWebhook)
	}

	dbc := dbctx.Context{Ctx: ctx}
	conv, err := s.conversationRepo.GetByID(dbc, conversationID)
	if err != nil {
		return nil, fmt.Errorf("load conversation: %w", err)
	}
	if conv == nil {
		return nil, ErrConversationNotFound
	}

	// Stored before scoring so a failed delivery can be reprocessed.
	if err := s.conversationRepo.ReplaceDetails(dbc, conv.ID, datatypes.JSON(raw)); err != nil {
		return nil, fmt.Errorf("store conversation details: %w", err)
	}

	in := evaluation.PromptInput{Transcript: evaluation.BuildTranscript(data.Transcript)}
	in.Resume, in.JobDescription = data.Context()
	if in.Resume == "" || in.JobDescription == "" {
		iv, err := s.interviewRepo.GetByID(dbc, conv.InterviewID)
		if err != nil {
			return nil, fmt.Errorf("load interview: %w", err)
		}
		if iv != nil {
			if in.Resume == "" {
				in.Resume = iv.ResumeText
			}
			if in.JobDescription == "" {
				in.JobDescription = iv.JobDescriptionText
			}
		}
	}

	sc, err := s.scorer.Score(ctx, in)
	if err != nil {
		s.log.Error("Scoring failed", "conversation_id", conv.ID, "error", err)
		if errors.Is(err, ErrScoring) || errors.Is(err, ErrInvalidScorecard) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrScoring, err)
	}

	if err := s.resultRepo.Upsert(dbc, sc.Result(conv.InterviewID)); err != nil {
		return nil, fmt.Errorf("upsert result: %w", err)
	}
	if s.observer != nil {
		s.observer.ObserveEvaluationScore(s.scorer.Name(), sc.Overall.Nota)
	}
	s.log.Info("Interview evaluated",
		"conversation_id", conv.ID,
		"interview_id", conv.InterviewID,
		"overall", sc.Overall.Nota,
	)
	return &WebhookResult{Status: WebhookStatusProcessed, InterviewID: conv.InterviewID}, nil
}

func (s *evaluationService) GetResult(ctx context.Context, identityID string, interviewID uuid.UUID) (*types.InterviewResult, error) {
	acc, err := ownerAccount(ctx, s.accountRepo, identityID)
	if err != nil {
		return nil, err
	}
	if _, err := ownedInterview(ctx, s.interviewRepo, acc.ID, interviewID); err != nil {
		return nil, err
	}
	res, err := s.resultRepo.GetByInterviewID(dbctx.Context{Ctx: ctx}, interviewID)
	if err != nil {
		return nil, fmt.Errorf("load result: %w", err)
	}
	return res, nil
}

// WebhookOutcome names a webhook delivery outcome for metrics.
func WebhookOutcome(res *WebhookResult, err error) string {
	switch {
	case err == nil && res != nil:
		return res.Status
	case errors.Is(err, ErrMalformedWebhook):
		return "malformed"
	case errors.Is(err, ErrConversationNotFound):
		return "unknown_conversation"
	case errors.Is(err, ErrInvalidScorecard):
		return "invalid_scorecard"
	case errors.Is(err, ErrScoring):
		return "scoring_failed"
	default:
		return "error"
	}
}
