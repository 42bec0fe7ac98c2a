package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/interviewlab/interviewlab-backend/internal/data/db"
	"github.com/interviewlab/interviewlab-backend/internal/data/repos"
	types "github.com/interviewlab/interviewlab-backend/internal/domain"
	"github.com/interviewlab/interviewlab-backend/internal/pkg/dbctx"
	"github.com/interviewlab/interviewlab-backend/internal/platform/logger"
)

// AdminService backs the institution dashboard. Validate is the gate every
// admin route runs first; the other calls trust the institution id it returns.
type AdminService interface {
	Validate(ctx context.Context, ident Identity) (uint, error)
	ListAccounts(ctx context.Context, institutionID uint, limit, offset int) ([]*types.Account, int64, error)
	ListDomains(ctx context.Context, institutionID uint) ([]*types.EmailDomain, error)
	AddDomain(ctx context.Context, institutionID uint, domain string) (*types.EmailDomain, error)
	RemoveDomain(ctx context.Context, institutionID, domainID uint) error
	ListResults(ctx context.Context, institutionID uint, limit, offset int) ([]*repos.ResultSummary, int64, error)
}

type adminService struct {
	log         *logger.Logger
	directory   AccountDirectory
	accountRepo repos.AccountRepo
	domainRepo  repos.EmailDomainRepo
	resultRepo  repos.ResultRepo
}

func NewAdminService(
	log *logger.Logger,
	directory AccountDirectory,
	accountRepo repos.AccountRepo,
	domainRepo repos.EmailDomainRepo,
	resultRepo repos.ResultRepo,
) AdminService {
	return &adminService{
		log:         log.With("service", "AdminService"),
		directory:   directory,
		accountRepo: accountRepo,
		domainRepo:  domainRepo,
		resultRepo:  resultRepo,
	}
}

func (s *adminService) Validate(ctx context.Context, ident Identity) (uint, error) {
	if ident.Email == "" {
		return 0, ErrUnauthenticated
	}
	admin, err := s.directory.FindAdminByEmail(ctx, ident.Email)
	if err != nil {
		return 0, fmt.Errorf("admin lookup: %w", err)
	}
	if admin == nil {
		return 0, ErrNotAdmin
	}
	if !admin.IsActive {
		return 0, ErrSubscriptionInactive
	}
	return admin.InstitutionID, nil
}

func (s *adminService) ListAccounts(ctx context.Context, institutionID uint, limit, offset int) ([]*types.Account, int64, error) {
	limit, offset = Page(limit, offset)
	return s.accountRepo.ListByInstitution(dbctx.Context{Ctx: ctx}, institutionID, limit, offset)
}

func (s *adminService) ListDomains(ctx context.Context, institutionID uint) ([]*types.EmailDomain, error) {
	return s.domainRepo.ListByInstitution(dbctx.Context{Ctx: ctx}, institutionID)
}

func (s *adminService) AddDomain(ctx context.Context, institutionID uint, domain string) (*types.EmailDomain, error) {
	domain = types.NormalizeDomain(domain)
	if !validDomain(domain) {
		return nil, fmt.Errorf("%w: invalid domain", ErrInvalidInput)
	}
	created, err := s.domainRepo.Create(dbctx.Context{Ctx: ctx}, []*types.EmailDomain{{
		InstitutionID: institutionID,
		Domain:        domain,
	}})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrDomainExists
		}
		return nil, fmt.Errorf("create domain: %w", err)
	}
	s.log.Info("Email domain allowlisted", "institution_id", institutionID, "domain", domain)
	return created[0], nil
}

func (s *adminService) RemoveDomain(ctx context.Context, institutionID, domainID uint) error {
	n, err := s.domainRepo.DeleteByID(dbctx.Context{Ctx: ctx}, institutionID, domainID)
	if err != nil {
		return fmt.Errorf("delete domain: %w", err)
	}
	if n == 0 {
		return ErrDomainNotFound
	}
	return nil
}

func (s *adminService) ListResults(ctx context.Context, institutionID uint, limit, offset int) ([]*repos.ResultSummary, int64, error) {
	limit, offset = Page(limit, offset)
	return s.resultRepo.ListByInstitution(dbctx.Context{Ctx: ctx}, institutionID, limit, offset)
}

func validDomain(d string) bool {
	if d == "" || len(d) > 255 || strings.ContainsAny(d, "@ /") {
		return false
	}
	dot := strings.Index(d, ".")
	return dot > 0 && dot < len(d)-1 && !strings.HasSuffix(d, ".")
}
