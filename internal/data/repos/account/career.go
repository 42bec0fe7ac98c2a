package account

import (
	"errors"

	"gorm.io/gorm"

	types "github.com/interviewlab/interviewlab-backend/internal/domain"
	"github.com/interviewlab/interviewlab-backend/internal/pkg/dbctx"
	"github.com/interviewlab/interviewlab-backend/internal/platform/logger"
)

type CareerRepo interface {
	Create(dbc dbctx.Context, careers []*types.Career) ([]*types.Career, error)
	GetByID(dbc dbctx.Context, id uint) (*types.Career, error)
	ListByInstitution(dbc dbctx.Context, institutionID uint) ([]*types.Career, error)
}

type careerRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCareerRepo(db *gorm.DB, baseLog *logger.Logger) CareerRepo {
	repoLog := baseLog.With("repo", "CareerRepo")
	return &careerRepo{db: db, log: repoLog}
}

func (r *careerRepo) Create(dbc dbctx.Context, careers []*types.Career) ([]*types.Career, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	if len(careers) == 0 {
		return []*types.Career{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&careers).Error; err != nil {
		return nil, err
	}
	return careers, nil
}

func (r *careerRepo) GetByID(dbc dbctx.Context, id uint) (*types.Career, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var c types.Career
	err := transaction.WithContext(dbc.Ctx).Where("id = ?", id).Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *careerRepo) ListByInstitution(dbc dbctx.Context, institutionID uint) ([]*types.Career, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Career
	if err := transaction.WithContext(dbc.Ctx).
		Where("institution_id = ?", institutionID).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
