package interview

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/interviewlab/interviewlab-backend/internal/domain"
	"github.com/interviewlab/interviewlab-backend/internal/pkg/dbctx"
	"github.com/interviewlab/interviewlab-backend/internal/platform/logger"
)

type InterviewRepo interface {
	Create(dbc dbctx.Context, interviews []*types.Interview) ([]*types.Interview, error)
	GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Interview, error)
	ListByAccount(dbc dbctx.Context, accountID uuid.UUID, limit, offset int) ([]*types.Interview, int64, error)
}

type interviewRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewInterviewRepo(db *gorm.DB, baseLog *logger.Logger) InterviewRepo {
	repoLog := baseLog.With("repo", "InterviewRepo")
	return &interviewRepo{db: db, log: repoLog}
}

func (r *interviewRepo) Create(dbc dbctx.Context, interviews []*types.Interview) ([]*types.Interview, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	if len(interviews) == 0 {
		return []*types.Interview{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&interviews).Error; err != nil {
		return nil, err
	}
	return interviews, nil
}

// GetByID returns nil, nil when the interview does not exist.
func (r *interviewRepo) GetByID(dbc dbctx.Context, id uuid.UUID) (*types.Interview, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var iv types.Interview
	err := transaction.WithContext(dbc.Ctx).Where("id = ?", id).Take(&iv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &iv, nil
}

func (r *interviewRepo) ListByAccount(dbc dbctx.Context, accountID uuid.UUID, limit, offset int) ([]*types.Interview, int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	q := transaction.WithContext(dbc.Ctx).
		Model(&types.Interview{}).
		Where("account_id = ?", accountID).
		Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var results []*types.Interview
	if err := q.Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&results).Error; err != nil {
		return nil, 0, err
	}
	return results, total, nil
}
