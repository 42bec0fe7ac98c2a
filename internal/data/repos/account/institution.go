package account

import (
	"errors"

	"gorm.io/gorm"

	types "github.com/interviewlab/interviewlab-backend/internal/domain"
	"github.com/interviewlab/interviewlab-backend/internal/pkg/dbctx"
	"github.com/interviewlab/interviewlab-backend/internal/platform/logger"
)

type InstitutionRepo interface {
	Create(dbc dbctx.Context, institutions []*types.Institution) ([]*types.Institution, error)
	GetByID(dbc dbctx.Context, id uint) (*types.Institution, error)
	GetByEmail(dbc dbctx.Context, email string) (*types.Institution, error)
	ListActive(dbc dbctx.Context) ([]*types.Institution, error)
	SetActive(dbc dbctx.Context, id uint, active bool) error
}

type institutionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInstitutionRepo(db *gorm.DB, baseLog *logger.Logger) InstitutionRepo {
	repoLog := baseLog.With("repo", "InstitutionRepo")
	return &institutionRepo{db: db, log: repoLog}
}

func (r *institutionRepo) Create(dbc dbctx.Context, institutions []*types.Institution) ([]*types.Institution, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	if len(institutions) == 0 {
		return []*types.Institution{}, nil
	}

	if err := transaction.WithContext(dbc.Ctx).Create(&institutions).Error; err != nil {
		return nil, err
	}
	return institutions, nil
}

// GetByID returns nil, nil when no institution has that id.
func (r *institutionRepo) GetByID(dbc dbctx.Context, id uint) (*types.Institution, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var inst types.Institution
	err := transaction.WithContext(dbc.Ctx).
		Where("id = ?", id).
		Take(&inst).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inst, nil
}

// GetByEmail matches the normalized contact email. Returns nil, nil on miss.
func (r *institutionRepo) GetByEmail(dbc dbctx.Context, email string) (*types.Institution, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	email = types.NormalizeEmail(email)
	if email == "" {
		return nil, nil
	}

	var inst types.Institution
	err := transaction.WithContext(dbc.Ctx).
		Where("email = ?", email).
		Take(&inst).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &inst, nil
}

func (r *institutionRepo) ListActive(dbc dbctx.Context) ([]*types.Institution, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Institution
	if err := transaction.WithContext(dbc.Ctx).
		Where("is_active = ?", true).
		Order("name ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *institutionRepo) SetActive(dbc dbctx.Context, id uint, active bool) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(dbc.Ctx).
		Model(&types.Institution{}).
		Where("id = ?", id).
		Update("is_active", active).Error
}
