package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/interviewlab/interviewlab-backend/internal/data/repos"
	types "github.com/interviewlab/interviewlab-backend/internal/domain"
	"github.com/interviewlab/interviewlab-backend/internal/pkg/dbctx"
	"github.com/interviewlab/interviewlab-backend/internal/platform/logger"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// Page clamps limit/offset query values.
func Page(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

type CreateInterviewInput struct {
	ResumeText         string `json:"resumeText"`
	JobDescriptionText string `json:"jobDescriptionText"`
}

// InterviewService manages a student's interviews and the voice sessions
// started for them. Every call is scoped to the account owned by identityID.
type InterviewService interface {
	Create(ctx context.Context, identityID string, in CreateInterviewInput) (*types.Interview, error)
	List(ctx context.Context, identityID string, limit, offset int) ([]*types.Interview, int64, error)
	Get(ctx context.Context, identityID string, interviewID uuid.UUID) (*types.Interview, error)
	StartConversation(ctx context.Context, identityID, conversationID string, interviewID uuid.UUID) (*types.Conversation, error)
}

type interviewService struct {
	log              *logger.Logger
	accountRepo      repos.AccountRepo
	interviewRepo    repos.InterviewRepo
	conversationRepo repos.ConversationRepo
}

func NewInterviewService(log *logger.Logger, accountRepo repos.AccountRepo, interviewRepo repos.InterviewRepo, conversationRepo repos.ConversationRepo) InterviewService {
	return &interviewService{
		log:              log.With("service", "InterviewService"),
		accountRepo:      accountRepo,
		interviewRepo:    interviewRepo,
		conversationRepo: conversationRepo,
	}
}

func (s *interviewService) Create(ctx context.Context, identityID string, in CreateInterviewInput) (*types.Interview, error) {
	acc, err := ownerAccount(ctx, s.accountRepo, identityID)
	if err != nil {
		return nil, err
	}
	resume := strings.TrimSpace(in.ResumeText)
	job := strings.TrimSpace(in.JobDescriptionText)
	if resume == "" && job == "" {
		return nil, fmt.Errorf("%w: resume or job description required", ErrInvalidInput)
	}
	created, err := s.interviewRepo.Create(dbctx.Context{Ctx: ctx}, []*types.Interview{{
		AccountID:          acc.ID,
		ResumeText:         resume,
		JobDescriptionText: job,
	}})
	if err != nil {
		return nil, fmt.Errorf("create interview: %w", err)
	}
	return created[0], nil
}

func (s *interviewService) List(ctx context.Context, identityID string, limit, offset int) ([]*types.Interview, int64, error) {
	acc, err := ownerAccount(ctx, s.accountRepo, identityID)
	if err != nil {
		return nil, 0, err
	}
	limit, offset = Page(limit, offset)
	return s.interviewRepo.ListByAccount(dbctx.Context{Ctx: ctx}, acc.ID, limit, offset)
}

func (s *interviewService) Get(ctx context.Context, identityID string, interviewID uuid.UUID) (*types.Interview, error) {
	acc, err := ownerAccount(ctx, s.accountRepo, identityID)
	if err != nil {
		return nil, err
	}
	return ownedInterview(ctx, s.interviewRepo, acc.ID, interviewID)
}

// StartConversation records the voice session id against the interview. The
// evaluation webhook only accepts conversations created here.
func (s *interviewService) StartConversation(ctx context.Context, identityID, conversationID string, interviewID uuid.UUID) (*types.Conversation, error) {
	conversationID = strings.TrimSpace(conversationID)
	if conversationID == "" || interviewID == uuid.Nil {
		return nil, ErrInvalidInput
	}
	acc, err := ownerAccount(ctx, s.accountRepo, identityID)
	if err != nil {
		return nil, err
	}
	if _, err := ownedInterview(ctx, s.interviewRepo, acc.ID, interviewID); err != nil {
		return nil, err
	}

	dbc := dbctx.Context{Ctx: ctx}
	if err := s.conversationRepo.Create(dbc, &types.Conversation{ID: conversationID, InterviewID: interviewID}); err != nil {
		return nil, fmt.Errorf("create conversation: %w", err)
	}
	conv, err := s.conversationRepo.GetByID(dbc, conversationID)
	if err != nil {
		return nil, fmt.Errorf("load conversation: %w", err)
	}
	if conv == nil {
		return nil, fmt.Errorf("conversation %q missing after create", conversationID)
	}
	if conv.InterviewID != interviewID {
		return nil, fmt.Errorf("%w: conversation already bound to another interview", ErrInvalidInput)
	}
	return conv, nil
}

func ownerAccount(ctx context.Context, accountRepo repos.AccountRepo, identityID string) (*types.Account, error) {
	if identityID == "" {
		return nil, ErrUnauthenticated
	}
	acc, err := accountRepo.GetByAuthIdentity(dbctx.Context{Ctx: ctx}, identityID)
	if err != nil {
		return nil, fmt.Errorf("load account: %w", err)
	}
	if acc == nil {
		return nil, ErrAccountRequired
	}
	return acc, nil
}

func ownedInterview(ctx context.Context, interviewRepo repos.InterviewRepo, accountID, interviewID uuid.UUID) (*types.Interview, error) {
	iv, err := interviewRepo.GetByID(dbctx.Context{Ctx: ctx}, interviewID)
	if err != nil {
		return nil, fmt.Errorf("load interview: %w", err)
	}
	if iv == nil {
		return nil, ErrInterviewNotFound
	}
	if iv.AccountID != accountID {
		return nil, ErrNotOwner
	}
	return iv, nil
}
