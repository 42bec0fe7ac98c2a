package services

import "errors"

// Sentinels classified by the HTTP layer. Identity errors live in identity.go.
var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")

	// Login and subscription gating.
	ErrSubscriptionInactive = errors.New("institution subscription inactive")
	ErrAccountNotFound      = errors.New("account not found")
	ErrNoInstitution        = errors.New("account has no institution")
	ErrInstitutionNotFound  = errors.New("institution not found")

	// Registration.
	ErrEmailTaken       = errors.New("email already registered")
	ErrDomainNotAllowed = errors.New("email domain not allowed for institution")
	ErrCareerMismatch   = errors.New("career does not belong to institution")

	// Interviews and evaluation.
	ErrInterviewNotFound    = errors.New("interview not found")
	ErrNotOwner             = errors.New("interview belongs to another account")
	ErrAccountRequired      = errors.New("a student account is required")
	ErrConversationNotFound = errors.New("conversation not found")
	ErrMalformedWebhook     = errors.New("malformed webhook payload")
	ErrScoring              = errors.New("scoring failed")
	ErrInvalidScorecard     = errors.New("scorecard failed validation")

	// Administration.
	ErrNotAdmin       = errors.New("identity is not an institution administrator")
	ErrDomainNotFound = errors.New("email domain entry not found")
	ErrDomainExists   = errors.New("email domain already allowlisted")
)
