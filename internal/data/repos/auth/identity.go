package auth

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/interviewlab/interviewlab-backend/internal/domain"
	"github.com/interviewlab/interviewlab-backend/internal/pkg/dbctx"
	"github.com/interviewlab/interviewlab-backend/internal/platform/logger"
)

type IdentityRepo interface {
	Create(dbc dbctx.Context, identity *types.AuthIdentity) (*types.AuthIdentity, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.AuthIdentity, error)
	GetByEmail(dbc dbctx.Context, email string) (*types.AuthIdentity, error)
}

type identityRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewIdentityRepo(db *gorm.DB, baseLog *logger.Logger) IdentityRepo {
	repoLog := baseLog.With("repo", "IdentityRepo")
	return &identityRepo{db: db, log: repoLog}
}

func (r *identityRepo) Create(dbc dbctx.Context, identity *types.AuthIdentity) (*types.AuthIdentity, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	identity.Email = types.NormalizeEmail(identity.Email)
	if err := transaction.WithContext(dbc.Ctx).Create(identity).Error; err != nil {
		return nil, err
	}
	return identity, nil
}

func (r *identityRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.AuthIdentity, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var out types.AuthIdentity
	err := transaction.WithContext(dbc.Ctx).Where("id = ?", id).Take(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *identityRepo) GetByEmail(dbc dbctx.Context, email string) (*types.AuthIdentity, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var out types.AuthIdentity
	err := transaction.WithContext(dbc.Ctx).
		Where("email = ?", types.NormalizeEmail(email)).
		Take(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}
