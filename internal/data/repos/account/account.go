package account

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/interviewlab/interviewlab-backend/internal/domain"
	"github.com/interviewlab/interviewlab-backend/internal/pkg/dbctx"
	"github.com/interviewlab/interviewlab-backend/internal/platform/logger"
)

type AccountRepo interface {
	Create(dbc dbctx.Context, accounts []*types.Account) ([]*types.Account, error)
	GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Account, error)
	GetByAuthIdentity(dbc dbctx.Context, identity string) (*types.Account, error)
	EmailExists(dbc dbctx.Context, email string) (bool, error)
	ListByInstitution(dbc dbctx.Context, institutionID uint, limit, offset int) ([]*types.Account, int64, error)
}

type accountRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAccountRepo(db *gorm.DB, baseLog *logger.Logger) AccountRepo {
	repoLog := baseLog.With("repo", "AccountRepo")
	return &accountRepo{db: db, log: repoLog}
}

func (r *accountRepo) Create(dbc dbctx.Context, accounts []*types.Account) ([]*types.Account, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	if len(accounts) == 0 {
		return []*types.Account{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&accounts).Error; err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *accountRepo) GetByIDs(dbc dbctx.Context, ids []uuid.UUID) ([]*types.Account, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Account
	if len(ids) == 0 {
		return results, nil
	}
	if err := transaction.WithContext(dbc.Ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// GetByAuthIdentity returns nil, nil when no account references the identity.
func (r *accountRepo) GetByAuthIdentity(dbc dbctx.Context, identity string) (*types.Account, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	if identity == "" {
		return nil, nil
	}

	var a types.Account
	err := transaction.WithContext(dbc.Ctx).
		Where("auth_identity = ?", identity).
		Take(&a).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *accountRepo) EmailExists(dbc dbctx.Context, email string) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var count int64
	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.Account{}).
		Where("email = ?", types.NormalizeEmail(email)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *accountRepo) ListByInstitution(dbc dbctx.Context, institutionID uint, limit, offset int) ([]*types.Account, int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	q := transaction.WithContext(dbc.Ctx).
		Model(&types.Account{}).
		Where("institution_id = ?", institutionID).
		Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var results []*types.Account
	if err := q.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}
