package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/interviewlab/interviewlab-backend/internal/data/repos"
	"github.com/interviewlab/interviewlab-backend/internal/pkg/dbctx"
	"github.com/interviewlab/interviewlab-backend/internal/platform/logger"
)

type AdminMatch struct {
	InstitutionID uint
	IsActive      bool
}

type AccountMatch struct {
	AccountID     uuid.UUID
	InstitutionID *uint
}

// AccountDirectory answers the two read-only questions the login flow asks.
// Both lookups return nil, nil on a miss.
type AccountDirectory interface {
	FindAdminByEmail(ctx context.Context, email string) (*AdminMatch, error)
	FindAccountByIdentity(ctx context.Context, identityID string) (*AccountMatch, error)
}

type accountDirectory struct {
	log             *logger.Logger
	institutionRepo repos.InstitutionRepo
	accountRepo     repos.AccountRepo
}

func NewAccountDirectory(log *logger.Logger, institutionRepo repos.InstitutionRepo, accountRepo repos.AccountRepo) AccountDirectory {
	return &accountDirectory{
		log:             log.With("service", "AccountDirectory"),
		institutionRepo: institutionRepo,
		accountRepo:     accountRepo,
	}
}

func (d *accountDirectory) FindAdminByEmail(ctx context.Context, email string) (*AdminMatch, error) {
	inst, err := d.institutionRepo.GetByEmail(dbctx.Context{Ctx: ctx}, email)
	if err != nil || inst == nil {
		return nil, err
	}
	return &AdminMatch{InstitutionID: inst.ID, IsActive: inst.IsActive}, nil
}

func (d *accountDirectory) FindAccountByIdentity(ctx context.Context, identityID string) (*AccountMatch, error) {
	acc, err := d.accountRepo.GetByAuthIdentity(dbctx.Context{Ctx: ctx}, identityID)
	if err != nil || acc == nil {
		return nil, err
	}
	return &AccountMatch{AccountID: acc.ID, InstitutionID: acc.InstitutionID}, nil
}
