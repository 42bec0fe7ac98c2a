package app

import (
	"gorm.io/gorm"

	"github.com/interviewlab/interviewlab-backend/internal/data/repos"
	"github.com/interviewlab/interviewlab-backend/internal/platform/logger"
)

type Repos struct {
	Institution repos.InstitutionRepo
	Career      repos.CareerRepo
	EmailDomain repos.EmailDomainRepo
	Account     repos.AccountRepo

	Interview    repos.InterviewRepo
	Conversation repos.ConversationRepo
	Result       repos.ResultRepo

	Identity repos.IdentityRepo
	Session  repos.SessionRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		Institution: repos.NewInstitutionRepo(db, log),
		Career:      repos.NewCareerRepo(db, log),
		EmailDomain: repos.NewEmailDomainRepo(db, log),
		Account:     repos.NewAccountRepo(db, log),

		Interview:    repos.NewInterviewRepo(db, log),
		Conversation: repos.NewConversationRepo(db, log),
		Result:       repos.NewResultRepo(db, log),

		Identity: repos.NewIdentityRepo(db, log),
		Session:  repos.NewSessionRepo(db, log),
	}
}
