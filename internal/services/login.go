package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/interviewlab/interviewlab-backend/internal/platform/logger"
)

const (
	UserTypeAdmin   = "admin"
	UserTypeStudent = "student"

	StudentHomePath = "/home"
)

func AdminDashboardPath(institutionID uint) string {
	return fmt.Sprintf("/admin/dashboard/%d", institutionID)
}

type LoginResult struct {
	Identity      Identity      `json:"identity"`
	Session       SessionTokens `json:"session"`
	UserType      string        `json:"userType"`
	RedirectPath  string        `json:"redirectPath"`
	InstitutionID *uint         `json:"institutionId,omitempty"`
	AccountID     *uuid.UUID    `json:"accountId,omitempty"`
}

type LoginObserver interface {
	IncLoginOutcome(outcome string)
}

// LoginService is the unified login: one credential check, then role
// resolution and subscription gating. Rejections after a successful credential
// check invalidate the freshly issued session.
type LoginService interface {
	Login(ctx context.Context, email, password string) (*LoginResult, error)
}

type loginService struct {
	log       *logger.Logger
	gateway   IdentityGateway
	directory AccountDirectory
	gate      SubscriptionGate
	observer  LoginObserver
}

func NewLoginService(log *logger.Logger, gateway IdentityGateway, directory AccountDirectory, gate SubscriptionGate, observer LoginObserver) LoginService {
	return &loginService{
		log:       log.With("service", "LoginService"),
		gateway:   gateway,
		directory: directory,
		gate:      gate,
		observer:  observer,
	}
}

func (s *loginService) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	res, err := s.login(ctx, email, password)
	s.observe(res, err)
	return res, err
}

func (s *loginService) login(ctx context.Context, email, password string) (*LoginResult, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, ErrInvalidInput
	}

	authed, err := s.gateway.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("authenticate: %w", err)
	}

	role, err := ResolveRole(ctx, s.directory, authed.Identity)
	if err != nil {
		return nil, s.reject(ctx, authed, err)
	}

	switch r := role.(type) {
	case AdminRole:
		if !r.IsActive {
			return nil, s.reject(ctx, authed, ErrSubscriptionInactive)
		}
		instID := r.InstitutionID
		return &LoginResult{
			Identity:      authed.Identity,
			Session:       authed.Session,
			UserType:      UserTypeAdmin,
			RedirectPath:  AdminDashboardPath(r.InstitutionID),
			InstitutionID: &instID,
		}, nil

	case StudentRole:
		if r.InstitutionID == nil {
			return nil, s.reject(ctx, authed, ErrNoInstitution)
		}
		active, err := s.gate.CheckActive(ctx, *r.InstitutionID)
		switch {
		case errors.Is(err, ErrInstitutionNotFound):
			return nil, s.reject(ctx, authed, ErrInstitutionNotFound)
		case err != nil:
			return nil, s.reject(ctx, authed, fmt.Errorf("subscription check: %w", err))
		case !active:
			return nil, s.reject(ctx, authed, ErrSubscriptionInactive)
		}
		accountID := r.AccountID
		return &LoginResult{
			Identity:      authed.Identity,
			Session:       authed.Session,
			UserType:      UserTypeStudent,
			RedirectPath:  StudentHomePath,
			InstitutionID: r.InstitutionID,
			AccountID:     &accountID,
		}, nil

	case UnresolvedRole:
		return nil, s.reject(ctx, authed, ErrAccountNotFound)

	default:
		return nil, s.reject(ctx, authed, fmt.Errorf("unexpected role %T", role))
	}
}

// reject invalidates the session issued for authed and returns cause. An
// invalidation failure is logged and never replaces cause.
func (s *loginService) reject(ctx context.Context, authed *AuthenticatedIdentity, cause error) error {
	if err := s.gateway.InvalidateSession(ctx, authed.Session); err != nil {
		s.log.Warn("Session invalidation failed after rejected login",
			"identity_id", authed.ID,
			"cause", cause.Error(),
			"error", err,
		)
	}
	return cause
}

func (s *loginService) observe(res *LoginResult, err error) {
	if s.observer == nil {
		return
	}
	if err == nil && res != nil {
		s.observer.IncLoginOutcome(res.UserType)
		return
	}
	s.observer.IncLoginOutcome(LoginOutcome(err))
}

// LoginOutcome names a login error for metrics and logs.
func LoginOutcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrInvalidCredentials):
		return "invalid_credentials"
	case errors.Is(err, ErrSubscriptionInactive):
		return "subscription_inactive"
	case errors.Is(err, ErrAccountNotFound):
		return "account_not_found"
	case errors.Is(err, ErrNoInstitution):
		return "no_institution"
	case errors.Is(err, ErrInstitutionNotFound):
		return "institution_not_found"
	default:
		return "internal_error"
	}
}
