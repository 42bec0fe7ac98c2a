package services

import (
	"context"
	"fmt"

	"github.com/interviewlab/interviewlab-backend/internal/data/repos"
	types "github.com/interviewlab/interviewlab-backend/internal/domain"
	"github.com/interviewlab/interviewlab-backend/internal/pkg/dbctx"
	"github.com/interviewlab/interviewlab-backend/internal/platform/logger"
)

// CatalogService serves the public lists the registration form needs.
type CatalogService interface {
	ListInstitutions(ctx context.Context) ([]*types.Institution, error)
	ListCareers(ctx context.Context, institutionID uint) ([]*types.Career, error)
}

type catalogService struct {
	log             *logger.Logger
	institutionRepo repos.InstitutionRepo
	careerRepo      repos.CareerRepo
}

func NewCatalogService(log *logger.Logger, institutionRepo repos.InstitutionRepo, careerRepo repos.CareerRepo) CatalogService {
	return &catalogService{
		log:             log.With("service", "CatalogService"),
		institutionRepo: institutionRepo,
		careerRepo:      careerRepo,
	}
}

func (s *catalogService) ListInstitutions(ctx context.Context) ([]*types.Institution, error) {
	return s.institutionRepo.ListActive(dbctx.Context{Ctx: ctx})
}

func (s *catalogService) ListCareers(ctx context.Context, institutionID uint) ([]*types.Career, error) {
	dbc := dbctx.Context{Ctx: ctx}
	inst, err := s.institutionRepo.GetByID(dbc, institutionID)
	if err != nil {
		return nil, fmt.Errorf("load institution: %w", err)
	}
	if inst == nil {
		return nil, ErrInstitutionNotFound
	}
	return s.careerRepo.ListByInstitution(dbc, institutionID)
}
