package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/interviewlab/interviewlab-backend/internal/data/db"
	"github.com/interviewlab/interviewlab-backend/internal/data/repos"
	types "github.com/interviewlab/interviewlab-backend/internal/domain"
	"github.com/interviewlab/interviewlab-backend/internal/pkg/dbctx"
	"github.com/interviewlab/interviewlab-backend/internal/platform/logger"
)

type RegisterInput struct {
	Email         string     `json:"email"`
	Password      string     `json:"password"`
	Name          string     `json:"name"`
	Birthday      *time.Time `json:"birthday"`
	Gender        string     `json:"gender"`
	InstitutionID uint       `json:"institutionId"`
	CareerID      *uint      `json:"careerId"`
}

// RegistrationService creates student accounts. An account is only created
// for an active institution whose allowlist contains the email's domain.
type RegistrationService interface {
	Register(ctx context.Context, in RegisterInput) (*types.Account, error)
}

type registrationService struct {
	log             *logger.Logger
	gateway         IdentityGateway
	institutionRepo repos.InstitutionRepo
	careerRepo      repos.CareerRepo
	domainRepo      repos.EmailDomainRepo
	accountRepo     repos.AccountRepo
}

func NewRegistrationService(
	log *logger.Logger,
	gateway IdentityGateway,
	institutionRepo repos.InstitutionRepo,
	careerRepo repos.CareerRepo,
	domainRepo repos.EmailDomainRepo,
	accountRepo repos.AccountRepo,
) RegistrationService {
	return &registrationService{
		log:             log.With("service", "RegistrationService"),
		gateway:         gateway,
		institutionRepo: institutionRepo,
		careerRepo:      careerRepo,
		domainRepo:      domainRepo,
		accountRepo:     accountRepo,
	}
}

func (s *registrationService) Register(ctx context.Context, in RegisterInput) (*types.Account, error) {
	email := types.NormalizeEmail(in.Email)
	name := strings.TrimSpace(in.Name)
	if email == "" || in.Password == "" || name == "" || in.InstitutionID == 0 {
		return nil, ErrInvalidInput
	}
	domain := types.DomainOf(email)
	if domain == "" {
		return nil, fmt.Errorf("%w: malformed email", ErrInvalidInput)
	}

	dbc := dbctx.Context{Ctx: ctx}
	inst, err := s.institutionRepo.GetByID(dbc, in.InstitutionID)
	if err != nil {
		return nil, fmt.Errorf("load institution: %w", err)
	}
	if inst == nil {
		return nil, ErrInstitutionNotFound
	}
	if !inst.IsActive {
		return nil, ErrSubscriptionInactive
	}

	allowed, err := s.domainRepo.IsAllowed(dbc, inst.ID, domain)
	if err != nil {
		return nil, fmt.Errorf("check email domain: %w", err)
	}
	if !allowed {
		return nil, ErrDomainNotAllowed
	}

	if in.CareerID != nil {
		career, err := s.careerRepo.GetByID(dbc, *in.CareerID)
		if err != nil {
			return nil, fmt.Errorf("load career: %w", err)
		}
		if career == nil || career.InstitutionID != inst.ID {
			return nil, ErrCareerMismatch
		}
	}

	taken, err := s.accountRepo.EmailExists(dbc, email)
	if err != nil {
		return nil, fmt.Errorf("check email: %w", err)
	}
	if taken {
		return nil, ErrEmailTaken
	}

	ident, err := s.gateway.SignUp(ctx, email, in.Password)
	if err != nil {
		if errors.Is(err, ErrIdentityExists) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("sign up: %w", err)
	}

	instID := inst.ID
	created, err := s.accountRepo.Create(dbc, []*types.Account{{
		AuthIdentity:  ident.ID,
		Email:         email,
		Name:          name,
		Birthday:      in.Birthday,
		Gender:        strings.TrimSpace(in.Gender),
		InstitutionID: &instID,
		CareerID:      in.CareerID,
	}})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrEmailTaken
		}
		// The identity now exists without an account; a retry of the same
		// registration reports ErrEmailTaken from the provider.
		s.log.Error("Account creation failed after identity sign-up", "identity_id", ident.ID, "error", err)
		return nil, fmt.Errorf("create account: %w", err)
	}
	s.log.Info("Account registered", "account_id", created[0].ID, "institution_id", instID)
	return created[0], nil
}
