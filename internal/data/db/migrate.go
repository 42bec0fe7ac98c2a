package db

import (
	types "github.com/interviewlab/interviewlab-backend/internal/domain"
	"gorm.io/gorm"
)

func AutoMigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		// Directory
		&types.Institution{},
		&types.Career{},
		&types.EmailDomain{},
		&types.Account{},

		// Interviews
		&types.Interview{},
		&types.Conversation{},
		&types.InterviewResult{},

		// Local identity provider
		&types.AuthIdentity{},
		&types.AuthSession{},
	)
}
