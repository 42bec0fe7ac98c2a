package account

import (
	"time"

	"gorm.io/gorm"
)

// Institution is the tenant. Its contact email doubles as the administrator's
// login identity, and IsActive gates every login tied to it.
type Institution struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"not null;size:255;column:name" json:"name"`
	Email     string    `gorm:"uniqueIndex;not null;size:255;column:email" json:"email"`
	IsActive  bool      `gorm:"not null;default:false;column:is_active" json:"is_active"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Institution) TableName() string { return "institution" }

func (i *Institution) BeforeSave(tx *gorm.DB) error {
	i.Email = NormalizeEmail(i.Email)
	return nil
}
