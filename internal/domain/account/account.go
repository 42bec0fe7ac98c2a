package account

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Account is a registered student. AuthIdentity is a weak reference to the
// identity provider's record; the provider owns that record's lifecycle.
type Account struct {
	ID            uuid.UUID    `gorm:"type:char(36);primaryKey" json:"id"`
	AuthIdentity  string       `gorm:"uniqueIndex;not null;size:64;column:auth_identity" json:"-"`
	Email         string       `gorm:"uniqueIndex;not null;size:255;column:email" json:"email"`
	Name          string       `gorm:"not null;size:255;column:name" json:"name"`
	Birthday      *time.Time   `gorm:"column:birthday" json:"birthday,omitempty"`
	Gender        string       `gorm:"size:32;column:gender" json:"gender,omitempty"`
	InstitutionID *uint        `gorm:"index;column:institution_id" json:"institution_id,omitempty"`
	Institution   *Institution `gorm:"constraint:OnDelete:SET NULL;foreignKey:InstitutionID;references:ID" json:"-"`
	CareerID      *uint        `gorm:"index;column:career_id" json:"career_id,omitempty"`
	Career        *Career      `gorm:"constraint:OnDelete:SET NULL;foreignKey:CareerID;references:ID" json:"-"`
	CreatedAt     time.Time    `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time    `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Account) TableName() string { return "account" }

func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	a.Email = NormalizeEmail(a.Email)
	return nil
}

// NormalizeEmail trims and lower-cases an email for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.TrimSpace(strings.ToLower(email))
}
