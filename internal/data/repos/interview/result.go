package interview

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/interviewlab/interviewlab-backend/internal/domain"
	"github.com/interviewlab/interviewlab-backend/internal/pkg/dbctx"
	"github.com/interviewlab/interviewlab-backend/internal/platform/logger"
)

// ResultSummary is one row of an institution's results overview.
type ResultSummary struct {
	InterviewID  uuid.UUID `json:"interview_id"`
	AccountID    uuid.UUID `json:"account_id"`
	AccountName  string    `json:"account_name"`
	OverallScore int       `json:"overall_score"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type ResultRepo interface {
	Upsert(dbc dbctx.Context, res *types.InterviewResult) error
	GetByInterviewID(dbc dbctx.Context, interviewID uuid.UUID) (*types.InterviewResult, error)
	ListByInstitution(dbc dbctx.Context, institutionID uint, limit, offset int) ([]*ResultSummary, int64, error)
}

type resultRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewResultRepo(db *gorm.DB, baseLog *logger.Logger) ResultRepo {
	repoLog := baseLog.With("repo", "ResultRepo")
	return &resultRepo{db: db, log: repoLog}
}

// Upsert writes all criteria and the overall score in one statement keyed by
// interview_id.
func (r *resultRepo) Upsert(dbc dbctx.Context, res *types.InterviewResult) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	if res == nil {
		return nil
	}
	return transaction.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "interview_id"}},
			DoUpdates: clause.AssignmentColumns(types.ResultScoreColumns),
		}).
		Create(res).Error
}

// GetByInterviewID returns nil, nil while no result has been written.
func (r *resultRepo) GetByInterviewID(dbc dbctx.Context, interviewID uuid.UUID) (*types.InterviewResult, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var out types.InterviewResult
	err := transaction.WithContext(dbc.Ctx).
		Where("interview_id = ?", interviewID).
		Take(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (r *resultRepo) ListByInstitution(dbc dbctx.Context, institutionID uint, limit, offset int) ([]*ResultSummary, int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	q := transaction.WithContext(dbc.Ctx).
		Table("interview_result AS r").
		Joins("JOIN interview AS i ON i.id = r.interview_id").
		Joins("JOIN account AS a ON a.id = i.account_id").
		Where("a.institution_id = ?", institutionID).
		Session(&gorm.Session{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []*ResultSummary
	if err := q.Select("r.interview_id AS interview_id, a.id AS account_id, a.name AS account_name, r.overall_score AS overall_score, r.updated_at AS updated_at").
		Order("r.updated_at DESC").
		Limit(limit).
		Offset(offset).
		Scan(&rows).Error; err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
