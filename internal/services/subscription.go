package services

import (
	"context"
	"fmt"

	"github.com/interviewlab/interviewlab-backend/internal/data/repos"
	"github.com/interviewlab/interviewlab-backend/internal/pkg/dbctx"
	"github.com/interviewlab/interviewlab-backend/internal/platform/logger"
)

// SubscriptionGate reports whether an institution's subscription is active.
// A missing institution yields ErrInstitutionNotFound; any other error is a
// transient lookup failure.
type SubscriptionGate interface {
	CheckActive(ctx context.Context, institutionID uint) (bool, error)
}

type subscriptionGate struct {
	log             *logger.Logger
	institutionRepo repos.InstitutionRepo
}

func NewSubscriptionGate(log *logger.Logger, institutionRepo repos.InstitutionRepo) SubscriptionGate {
	return &subscriptionGate{
		log:             log.With("service", "SubscriptionGate"),
		institutionRepo: institutionRepo,
	}
}

func (g *subscriptionGate) CheckActive(ctx context.Context, institutionID uint) (bool, error) {
	inst, err := g.institutionRepo.GetByID(dbctx.Context{Ctx: ctx}, institutionID)
	if err != nil {
		return false, fmt.Errorf("load institution %d: %w", institutionID, err)
	}
	if inst == nil {
		return false, ErrInstitutionNotFound
	}
	return inst.IsActive, nil
}
