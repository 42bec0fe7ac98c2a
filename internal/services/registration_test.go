package services

import (
	"context"
	"errors"
	"testing"

	"github.com/interviewlab/interviewlab-backend/internal/data/repos"
	"github.com/interviewlab/interviewlab-backend/internal/data/repos/testutil"
	"github.com/interviewlab/interviewlab-backend/internal/pkg/pointers"
)

func TestRegister(t *testing.T) {
	ctx := context.Background()

	type setup struct {
		activeID, inactiveID, careerID, foreignCareerID uint
	}

	cases := []struct {
		name       string
		input      func(s setup) RegisterInput
		signUpErr  error
		want       error
		wantSignUp int
	}{
		{
			name: "ok",
			input: func(s setup) RegisterInput {
				return RegisterInput{Email: "New@Uni.edu", Password: "secret123", Name: "Ana", InstitutionID: s.activeID, CareerID: pointers.Uint(s.careerID)}
			},
			wantSignUp: 1,
		},
		{
			name:  "missing_fields",
			input: func(s setup) RegisterInput { return RegisterInput{Email: "a@uni.edu", InstitutionID: s.activeID} },
			want:  ErrInvalidInput,
		},
		{
			name: "malformed_email",
			input: func(s setup) RegisterInput {
				return RegisterInput{Email: "no-at-sign", Password: "pw1234", Name: "A", InstitutionID: s.activeID}
			},
			want: ErrInvalidInput,
		},
		{
			name: "unknown_institution",
			input: func(s setup) RegisterInput {
				return RegisterInput{Email: "a@uni.edu", Password: "pw1234", Name: "A", InstitutionID: 999}
			},
			want: ErrInstitutionNotFound,
		},
		{
			name: "inactive_institution",
			input: func(s setup) RegisterInput {
				return RegisterInput{Email: "a@old.edu", Password: "pw1234", Name: "A", InstitutionID: s.inactiveID}
			},
			want: ErrSubscriptionInactive,
		},
		{
			name: "domain_not_allowed",
			input: func(s setup) RegisterInput {
				return RegisterInput{Email: "a@gmail.com", Password: "pw1234", Name: "A", InstitutionID: s.activeID}
			},
			want: ErrDomainNotAllowed,
		},
		{
			name: "career_of_other_institution",
			input: func(s setup) RegisterInput {
				return RegisterInput{Email: "a@uni.edu", Password: "pw1234", Name: "A", InstitutionID: s.activeID, CareerID: pointers.Uint(s.foreignCareerID)}
			},
			want: ErrCareerMismatch,
		},
		{
			name: "email_taken",
			input: func(s setup) RegisterInput {
				return RegisterInput{Email: "existing@uni.edu", Password: "pw1234", Name: "A", InstitutionID: s.activeID}
			},
			want: ErrEmailTaken,
		},
		{
			name: "identity_exists_at_provider",
			input: func(s setup) RegisterInput {
				return RegisterInput{Email: "ghost@uni.edu", Password: "pw1234", Name: "A", InstitutionID: s.activeID}
			},
			signUpErr:  ErrIdentityExists,
			want:       ErrEmailTaken,
			wantSignUp: 1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			db := testutil.DB(t)
			log := testutil.Logger(t)

			active := testutil.SeedInstitution(t, ctx, db, "Uni", "admin@uni.edu", true)
			inactive := testutil.SeedInstitution(t, ctx, db, "Old", "admin@old.edu", false)
			other := testutil.SeedInstitution(t, ctx, db, "Other", "admin@other.edu", true)
			testutil.SeedDomain(t, ctx, db, active.ID, "uni.edu")
			testutil.SeedDomain(t, ctx, db, inactive.ID, "old.edu")
			career := testutil.SeedCareer(t, ctx, db, active.ID, "Ingeniería")
			foreign := testutil.SeedCareer(t, ctx, db, other.ID, "Derecho")
			testutil.SeedAccount(t, ctx, db, "existing-ident", "existing@uni.edu", &active.ID)

			gw := newFakeGateway("x", "x")
			gw.signUpErr = tc.signUpErr
			svc := NewRegistrationService(log, gw,
				repos.NewInstitutionRepo(db, log),
				repos.NewCareerRepo(db, log),
				repos.NewEmailDomainRepo(db, log),
				repos.NewAccountRepo(db, log),
			)

			acc, err := svc.Register(ctx, tc.input(setup{
				activeID: active.ID, inactiveID: inactive.ID, careerID: career.ID, foreignCareerID: foreign.ID,
			}))
			if tc.want != nil {
				if !errors.Is(err, tc.want) {
					t.Fatalf("expected %v, got %v", tc.want, err)
				}
			} else {
				if err != nil {
					t.Fatalf("Register: %v", err)
				}
				if acc.Email != "new@uni.edu" || acc.AuthIdentity != "new-new@uni.edu" {
					t.Fatalf("unexpected account %+v", acc)
				}
				if acc.InstitutionID == nil || *acc.InstitutionID != active.ID || acc.CareerID == nil || *acc.CareerID != career.ID {
					t.Fatalf("unexpected refs %+v", acc)
				}
			}
			if len(gw.signUps) != tc.wantSignUp {
				t.Fatalf("expected %d sign-ups, got %d", tc.wantSignUp, len(gw.signUps))
			}
		})
	}
}

func TestCatalog(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	active := testutil.SeedInstitution(t, ctx, db, "Uni", "admin@uni.edu", true)
	testutil.SeedInstitution(t, ctx, db, "Old", "admin@old.edu", false)
	testutil.SeedCareer(t, ctx, db, active.ID, "Medicina")
	testutil.SeedCareer(t, ctx, db, active.ID, "Arquitectura")

	svc := NewCatalogService(log, repos.NewInstitutionRepo(db, log), repos.NewCareerRepo(db, log))

	insts, err := svc.ListInstitutions(ctx)
	if err != nil {
		t.Fatalf("ListInstitutions: %v", err)
	}
	if len(insts) != 1 || insts[0].ID != active.ID {
		t.Fatalf("expected only the active institution, got %+v", insts)
	}

	careers, err := svc.ListCareers(ctx, active.ID)
	if err != nil {
		t.Fatalf("ListCareers: %v", err)
	}
	if len(careers) != 2 || careers[0].Name != "Arquitectura" {
		t.Fatalf("unexpected careers %+v", careers)
	}
	if _, err := svc.ListCareers(ctx, 999); !errors.Is(err, ErrInstitutionNotFound) {
		t.Fatalf("expected ErrInstitutionNotFound, got %v", err)
	}
}
