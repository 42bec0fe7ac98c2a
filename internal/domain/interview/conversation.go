package interview

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Conversation mirrors one voice-AI session. ID is the session id assigned by
// the voice platform. Details stays NULL until the completion webhook stores
// the raw payload.
type Conversation struct {
	ID          string         `gorm:"primaryKey;size:128;column:id" json:"id"`
	InterviewID uuid.UUID      `gorm:"type:char(36);index;not null;column:interview_id" json:"interview_id"`
	Interview   *Interview     `gorm:"constraint:OnDelete:CASCADE;foreignKey:InterviewID;references:ID" json:"-"`
	Details     datatypes.JSON `gorm:"column:details" json:"details,omitempty"`
	CreatedAt   time.Time      `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Conversation) TableName() string { return "conversation" }
