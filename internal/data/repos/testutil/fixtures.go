package testutil

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/gorm"

	types "github.com/interviewlab/interviewlab-backend/internal/domain"
)

func SeedInstitution(tb testing.TB, ctx context.Context, tx *gorm.DB, name, email string, active bool) *types.Institution {
	tb.Helper()
	inst := &types.Institution{
		Name:     name,
		Email:    email,
		IsActive: active,
	}
	if err := tx.WithContext(ctx).Create(inst).Error; err != nil {
		tb.Fatalf("seed institution: %v", err)
	}
	return inst
}

func SeedCareer(tb testing.TB, ctx context.Context, tx *gorm.DB, institutionID uint, name string) *types.Career {
	tb.Helper()
	c := &types.Career{InstitutionID: institutionID, Name: name}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed career: %v", err)
	}
	return c
}

func SeedDomain(tb testing.TB, ctx context.Context, tx *gorm.DB, institutionID uint, domain string) *types.EmailDomain {
	tb.Helper()
	d := &types.EmailDomain{InstitutionID: institutionID, Domain: domain}
	if err := tx.WithContext(ctx).Create(d).Error; err != nil {
		tb.Fatalf("seed email domain: %v", err)
	}
	return d
}

func SeedAccount(tb testing.TB, ctx context.Context, tx *gorm.DB, identity, email string, institutionID *uint) *types.Account {
	tb.Helper()
	a := &types.Account{
		ID:            uuid.New(),
		AuthIdentity:  identity,
		Email:         email,
		Name:          "Test Student",
		InstitutionID: institutionID,
	}
	if err := tx.WithContext(ctx).Create(a).Error; err != nil {
		tb.Fatalf("seed account: %v", err)
	}
	return a
}

func SeedInterview(tb testing.TB, ctx context.Context, tx *gorm.DB, accountID uuid.UUID) *types.Interview {
	tb.Helper()
	iv := &types.Interview{
		ID:                 uuid.New(),
		AccountID:          accountID,
		ResumeText:         "Ingeniero de software con 3 años en Go.",
		JobDescriptionText: "Backend developer, Go, PostgreSQL.",
	}
	if err := tx.WithContext(ctx).Create(iv).Error; err != nil {
		tb.Fatalf("seed interview: %v", err)
	}
	return iv
}

func SeedConversation(tb testing.TB, ctx context.Context, tx *gorm.DB, id string, interviewID uuid.UUID) *types.Conversation {
	tb.Helper()
	c := &types.Conversation{ID: id, InterviewID: interviewID}
	if err := tx.WithContext(ctx).Create(c).Error; err != nil {
		tb.Fatalf("seed conversation: %v", err)
	}
	return c
}
