package interview

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Interview is one simulated interview owned by exactly one account. It is
// immutable after creation; only the conversation/result pipeline writes to
// rows that reference it.
type Interview struct {
	ID                 uuid.UUID `gorm:"type:char(36);primaryKey" json:"id"`
	AccountID          uuid.UUID `gorm:"type:char(36);index;not null;column:account_id" json:"account_id"`
	ResumeText         string    `gorm:"type:text;column:resume_text" json:"resume_text"`
	JobDescriptionText string    `gorm:"type:text;column:job_description_text" json:"job_description_text"`
	CreatedAt          time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (Interview) TableName() string { return "interview" }

func (i *Interview) BeforeCreate(tx *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
