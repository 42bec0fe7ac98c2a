package account

import (
	"gorm.io/gorm"

	types "github.com/interviewlab/interviewlab-backend/internal/domain"
	"github.com/interviewlab/interviewlab-backend/internal/pkg/dbctx"
	"github.com/interviewlab/interviewlab-backend/internal/platform/logger"
)

type EmailDomainRepo interface {
	Create(dbc dbctx.Context, domains []*types.EmailDomain) ([]*types.EmailDomain, error)
	ListByInstitution(dbc dbctx.Context, institutionID uint) ([]*types.EmailDomain, error)
	IsAllowed(dbc dbctx.Context, institutionID uint, domain string) (bool, error)
	DeleteByID(dbc dbctx.Context, institutionID, id uint) (int64, error)
}

type emailDomainRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewEmailDomainRepo(db *gorm.DB, baseLog *logger.Logger) EmailDomainRepo {
	repoLog := baseLog.With("repo", "EmailDomainRepo")
	return &emailDomainRepo{db: db, log: repoLog}
}

func (r *emailDomainRepo) Create(dbc dbctx.Context, domains []*types.EmailDomain) ([]*types.EmailDomain, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	if len(domains) == 0 {
		return []*types.EmailDomain{}, nil
	}
	if err := transaction.WithContext(dbc.Ctx).Create(&domains).Error; err != nil {
		return nil, err
	}
	return domains, nil
}

func (r *emailDomainRepo) ListByInstitution(dbc dbctx.Context, institutionID uint) ([]*types.EmailDomain, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.EmailDomain
	if err := transaction.WithContext(dbc.Ctx).
		Where("institution_id = ?", institutionID).
		Order("domain ASC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *emailDomainRepo) IsAllowed(dbc dbctx.Context, institutionID uint, domain string) (bool, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	domain = types.NormalizeDomain(domain)
	if domain == "" {
		return false, nil
	}

	var count int64
	if err := transaction.WithContext(dbc.Ctx).
		Model(&types.EmailDomain{}).
		Where("institution_id = ? AND domain = ?", institutionID, domain).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// DeleteByID is scoped to the institution so one admin cannot drop another
// institution's entries. Returns the number of rows removed.
func (r *emailDomainRepo) DeleteByID(dbc dbctx.Context, institutionID, id uint) (int64, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	res := transaction.WithContext(dbc.Ctx).
		Where("id = ? AND institution_id = ?", id, institutionID).
		Delete(&types.EmailDomain{})
	return res.RowsAffected, res.Error
}
