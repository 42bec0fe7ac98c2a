package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/interviewlab/interviewlab-backend/internal/data/repos"
	types "github.com/interviewlab/interviewlab-backend/internal/domain"
	"github.com/interviewlab/interviewlab-backend/internal/pkg/dbctx"
	"github.com/interviewlab/interviewlab-backend/internal/platform/logger"
)

const UserTypeUnresolved = "unresolved"

type Profile struct {
	Identity      Identity       `json:"identity"`
	UserType      string         `json:"userType"`
	InstitutionID *uint          `json:"institutionId,omitempty"`
	IsActive      bool           `json:"isActive"`
	Account       *types.Account `json:"account,omitempty"`
}

// ProfileService answers /me with the same role resolution login uses, but
// without gating: an inactive institution is reported, not rejected.
type ProfileService interface {
	Me(ctx context.Context, ident Identity) (*Profile, error)
}

type profileService struct {
	log         *logger.Logger
	directory   AccountDirectory
	gate        SubscriptionGate
	accountRepo repos.AccountRepo
}

func NewProfileService(log *logger.Logger, directory AccountDirectory, gate SubscriptionGate, accountRepo repos.AccountRepo) ProfileService {
	return &profileService{
		log:         log.With("service", "ProfileService"),
		directory:   directory,
		gate:        gate,
		accountRepo: accountRepo,
	}
}

func (s *profileService) Me(ctx context.Context, ident Identity) (*Profile, error) {
	role, err := ResolveRole(ctx, s.directory, ident)
	if err != nil {
		return nil, err
	}
	p := &Profile{Identity: ident}
	switch r := role.(type) {
	case AdminRole:
		instID := r.InstitutionID
		p.UserType = UserTypeAdmin
		p.InstitutionID = &instID
		p.IsActive = r.IsActive
	case StudentRole:
		p.UserType = UserTypeStudent
		p.InstitutionID = r.InstitutionID
		accs, err := s.accountRepo.GetByIDs(dbctx.Context{Ctx: ctx}, []uuid.UUID{r.AccountID})
		if err != nil {
			return nil, fmt.Errorf("load account: %w", err)
		}
		if len(accs) > 0 {
			p.Account = accs[0]
		}
		if r.InstitutionID != nil {
			active, err := s.gate.CheckActive(ctx, *r.InstitutionID)
			if err != nil && !errors.Is(err, ErrInstitutionNotFound) {
				return nil, err
			}
			p.IsActive = active
		}
	case UnresolvedRole:
		p.UserType = UserTypeUnresolved
	}
	return p, nil
}
