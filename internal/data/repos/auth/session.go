package auth

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/interviewlab/interviewlab-backend/internal/domain"
	"github.com/interviewlab/interviewlab-backend/internal/pkg/dbctx"
	"github.com/interviewlab/interviewlab-backend/internal/platform/logger"
)

type SessionRepo interface {
	Create(dbc dbctx.Context, sessions []*types.AuthSession) ([]*types.AuthSession, error)
	GetByAccessToken(dbc dbctx.Context, accessToken string) (*types.AuthSession, error)
	GetByRefreshToken(dbc dbctx.Context, refreshToken string) (*types.AuthSession, error)
	DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error
	DeleteByIdentityIDs(dbc dbctx.Context, identityIDs []uuid.UUID) error
	DeleteExpired(dbc dbctx.Context, now time.Time) (int64, error)
}

type sessionRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewSessionRepo(db *gorm.DB, baseLog *logger.Logger) SessionRepo {
	repoLog := baseLog.With("repo", "SessionRepo")
	return &sessionRepo{db: db, log: repoLog}
}

func (r *sessionRepo) Create(dbc dbctx.Context, sessions []*types.AuthSession) ([]*types.AuthSession, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	if len(sessions) == 0 {
		return []*types.AuthSession{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&sessions).Error; err != nil {
		return nil, err
	}
	return sessions, nil
}

func (r *sessionRepo) GetByAccessToken(dbc dbctx.Context, accessToken string) (*types.AuthSession, error) {
	return r.getBy(dbc, "access_token", accessToken)
}

func (r *sessionRepo) GetByRefreshToken(dbc dbctx.Context, refreshToken string) (*types.AuthSession, error) {
	return r.getBy(dbc, "refresh_token", refreshToken)
}

func (r *sessionRepo) getBy(dbc dbctx.Context, column, value string) (*types.AuthSession, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	if value == "" {
		return nil, nil
	}

	var out types.AuthSession
	err := transaction.WithContext(dbc.Ctx).
		Where(column+" = ?", value).
		Take(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *sessionRepo) DeleteByIDs(dbc dbctx.Context, ids []uuid.UUID) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	if len(ids) == 0 {
		return nil
	}
	return transaction.WithContext(dbc.Ctx).
		Where("id IN ?", ids).
		Delete(&types.AuthSession{}).Error
}

func (r *sessionRepo) DeleteByIdentityIDs(dbc dbctx.Context, identityIDs []uuid.UUID) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	if len(identityIDs) == 0 {
		return nil
	}
	return transaction.WithContext(dbc.Ctx).
		Where("identity_id IN ?", identityIDs).
		Delete(&types.AuthSession{}).Error
}

func (r *sessionRepo) DeleteExpired(dbc dbctx.Context, now time.Time) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(dbc.Ctx).
		Where("expires_at < ?", now).
		Delete(&types.AuthSession{})
	return res.RowsAffected, res.Error
}
