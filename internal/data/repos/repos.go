package repos

import (
	"github.com/interviewlab/interviewlab-backend/internal/data/repos/account"
	"github.com/interviewlab/interviewlab-backend/internal/data/repos/auth"
	"github.com/interviewlab/interviewlab-backend/internal/data/repos/interview"
	"github.com/interviewlab/interviewlab-backend/internal/platform/logger"
	"gorm.io/gorm"
)

type InstitutionRepo = account.InstitutionRepo
type CareerRepo = account.CareerRepo
type EmailDomainRepo = account.EmailDomainRepo
type AccountRepo = account.AccountRepo

type InterviewRepo = interview.InterviewRepo
type ConversationRepo = interview.ConversationRepo
type ResultRepo = interview.ResultRepo
type ResultSummary = interview.ResultSummary

type IdentityRepo = auth.IdentityRepo
type SessionRepo = auth.SessionRepo

func NewInstitutionRepo(db *gorm.DB, baseLog *logger.Logger) InstitutionRepo {
	return account.NewInstitutionRepo(db, baseLog)
}
func NewCareerRepo(db *gorm.DB, baseLog *logger.Logger) CareerRepo {
	return account.NewCareerRepo(db, baseLog)
}
func NewEmailDomainRepo(db *gorm.DB, baseLog *logger.Logger) EmailDomainRepo {
	return account.NewEmailDomainRepo(db, baseLog)
}
func NewAccountRepo(db *gorm.DB, baseLog *logger.Logger) AccountRepo {
	return account.NewAccountRepo(db, baseLog)
}

func NewInterviewRepo(db *gorm.DB, baseLog *logger.Logger) InterviewRepo {
	return interview.NewInterviewRepo(db, baseLog)
}
func NewConversationRepo(db *gorm.DB, baseLog *logger.Logger) ConversationRepo {
	return interview.NewConversationRepo(db, baseLog)
}
func NewResultRepo(db *gorm.DB, baseLog *logger.Logger) ResultRepo {
	return interview.NewResultRepo(db, baseLog)
}

func NewIdentityRepo(db *gorm.DB, baseLog *logger.Logger) IdentityRepo {
	return auth.NewIdentityRepo(db, baseLog)
}
func NewSessionRepo(db *gorm.DB, baseLog *logger.Logger) SessionRepo {
	return auth.NewSessionRepo(db, baseLog)
}
