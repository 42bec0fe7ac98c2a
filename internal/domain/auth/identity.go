package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Identity is the credential record kept by the local identity provider.
type Identity struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	Email        string    `gorm:"uniqueIndex;not null;size:255;column:email" json:"email"`
	PasswordHash string    `gorm:"not null;size:255;column:password_hash" json:"-"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Identity) TableName() string { return "auth_identity" }

func (i *Identity) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
