package domain

import (
	"github.com/interviewlab/interviewlab-backend/internal/domain/account"
	"github.com/interviewlab/interviewlab-backend/internal/domain/auth"
	"github.com/interviewlab/interviewlab-backend/internal/domain/interview"
)

const (
	CriterionUnscored = interview.CriterionUnscored
	CriterionMin      = interview.CriterionMin
	CriterionMax      = interview.CriterionMax
	OverallMin        = interview.OverallMin
	OverallMax        = interview.OverallMax
)

// Directory
type Account = account.Account
type Institution = account.Institution
type Career = account.Career
type EmailDomain = account.EmailDomain

// Interviews
type Interview = interview.Interview
type Conversation = interview.Conversation
type InterviewResult = interview.Result

// Local identity provider
type AuthIdentity = auth.Identity
type AuthSession = auth.Session

var (
	NormalizeEmail  = account.NormalizeEmail
	NormalizeDomain = account.NormalizeDomain
	DomainOf        = account.DomainOf
)

var ResultScoreColumns = interview.ScoreColumns
