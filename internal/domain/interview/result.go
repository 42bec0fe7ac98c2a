package interview

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Criterion score 0 means "could not be evaluated"; 1-10 are real grades.
const (
	CriterionUnscored = 0
	CriterionMin      = 1
	CriterionMax      = 10
	OverallMin        = 0
	OverallMax        = 100
)

// Result is the persisted rubric for one interview. There is at most one row
// per interview; redeliveries overwrite it.
type Result struct {
	ID          uuid.UUID  `gorm:"type:char(36);primaryKey" json:"id"`
	InterviewID uuid.UUID  `gorm:"type:char(36);uniqueIndex;not null;column:interview_id" json:"interview_id"`
	Interview   *Interview `gorm:"constraint:OnDelete:CASCADE;foreignKey:InterviewID;references:ID" json:"-"`

	ClarityScore          int    `gorm:"not null;column:clarity_score" json:"clarity_score"`
	ClarityReason         string `gorm:"type:text;column:clarity_reason" json:"clarity_reason"`
	ProfessionalismScore  int    `gorm:"not null;column:professionalism_score" json:"professionalism_score"`
	ProfessionalismReason string `gorm:"type:text;column:professionalism_reason" json:"professionalism_reason"`
	TechnicalScore        int    `gorm:"not null;column:technical_score" json:"technical_score"`
	TechnicalReason       string `gorm:"type:text;column:technical_reason" json:"technical_reason"`
	InterestScore         int    `gorm:"not null;column:interest_score" json:"interest_score"`
	InterestReason        string `gorm:"type:text;column:interest_reason" json:"interest_reason"`
	ExamplesScore         int    `gorm:"not null;column:examples_score" json:"examples_score"`
	ExamplesReason        string `gorm:"type:text;column:examples_reason" json:"examples_reason"`
	OverallScore          int    `gorm:"not null;column:overall_score" json:"overall_score"`
	OverallReason         string `gorm:"type:text;column:overall_reason" json:"overall_reason"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Result) TableName() string { return "interview_result" }

func (r *Result) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// ScoreColumns lists every column rewritten by an upsert.
var ScoreColumns = []string{
	"clarity_score", "clarity_reason",
	"professionalism_score", "professionalism_reason",
	"technical_score", "technical_reason",
	"interest_score", "interest_reason",
	"examples_score", "examples_reason",
	"overall_score", "overall_reason",
	"updated_at",
}
