package auth

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Session is an issued access/refresh token pair. Deleting the row revokes
// the access token even before its JWT expiry.
type Session struct {
	ID           uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	IdentityID   uuid.UUID `gorm:"type:char(36);index;not null;column:identity_id" json:"identity_id"`
	Identity     *Identity `gorm:"constraint:OnDelete:CASCADE;foreignKey:IdentityID;references:ID" json:"-"`
	AccessToken  string    `gorm:"uniqueIndex;not null;size:512;column:access_token" json:"-"`
	RefreshToken string    `gorm:"uniqueIndex;not null;size:64;column:refresh_token" json:"-"`
	ExpiresAt    time.Time `gorm:"not null;column:expires_at" json:"expires_at"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (Session) TableName() string { return "auth_session" }

func (s *Session) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
