package services

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"

	"github.com/interviewlab/interviewlab-backend/internal/pkg/pointers"
	"github.com/interviewlab/interviewlab-backend/internal/platform/logger"
)

func TestLoginRejectsEmptyFieldsWithoutGatewayCall(t *testing.T) {
	cases := []struct {
		name     string
		email    string
		password string
	}{
		{name: "both_empty"},
		{name: "empty_email", password: "pw"},
		{name: "blank_email", email: "   ", password: "pw"},
		{name: "empty_password", email: "a@b.edu"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gw := newFakeGateway("id-1", "a@b.edu")
			dir := &fakeDirectory{}
			svc := NewLoginService(logger.Nop(), gw, dir, &fakeGate{}, nil)

			_, err := svc.Login(context.Background(), tc.email, tc.password)
			if !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if gw.authCalls != 0 {
				t.Fatalf("expected no gateway calls, got %d", gw.authCalls)
			}
		})
	}
}

func TestLoginGatewayFailures(t *testing.T) {
	cases := []struct {
		name    string
		authErr error
		want    error
	}{
		{name: "bad_credentials", authErr: ErrInvalidCredentials, want: ErrInvalidCredentials},
		{name: "wrapped_bad_credentials", authErr: fmt.Errorf("provider: %w", ErrInvalidCredentials), want: ErrInvalidCredentials},
		{name: "transient", authErr: errBoom, want: errBoom},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gw := newFakeGateway("id-1", "a@b.edu")
			gw.authErr = tc.authErr
			dir := &fakeDirectory{}
			svc := NewLoginService(logger.Nop(), gw, dir, &fakeGate{}, nil)

			_, err := svc.Login(context.Background(), "a@b.edu", "pw")
			if !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
			if dir.adminCalls != 0 || dir.accountCalls != 0 {
				t.Fatalf("directory must not be queried, got admin=%d account=%d", dir.adminCalls, dir.accountCalls)
			}
			if gw.invalidateCalls != 0 {
				t.Fatalf("expected no invalidation, got %d", gw.invalidateCalls)
			}
		})
	}
}

func TestLoginOutcomes(t *testing.T) {
	studentID := uuid.New()

	cases := []struct {
		name           string
		admins         map[string]*AdminMatch
		accounts       map[string]*AccountMatch
		active         map[uint]bool
		gateErr        error
		adminErr       error
		wantErr        error
		wantInternal   bool
		wantUserType   string
		wantRedirect   string
		wantInvalidate int
		wantGateCalls  int
	}{
		{
			name:         "active_admin",
			admins:       map[string]*AdminMatch{"admin@uni.edu": {InstitutionID: 42, IsActive: true}},
			wantUserType: UserTypeAdmin,
			wantRedirect: "/admin/dashboard/42",
		},
		{
			name:           "inactive_admin",
			admins:         map[string]*AdminMatch{"admin@uni.edu": {InstitutionID: 42, IsActive: false}},
			wantErr:        ErrSubscriptionInactive,
			wantInvalidate: 1,
		},
		{
			name:           "admin_precedence_over_account",
			admins:         map[string]*AdminMatch{"admin@uni.edu": {InstitutionID: 3, IsActive: true}},
			accounts:       map[string]*AccountMatch{"id-1": {AccountID: studentID, InstitutionID: pointers.Uint(7)}},
			active:         map[uint]bool{7: false},
			wantUserType:   UserTypeAdmin,
			wantRedirect:   "/admin/dashboard/3",
			wantInvalidate: 0,
		},
		{
			name:           "unresolved",
			wantErr:        ErrAccountNotFound,
			wantInvalidate: 1,
		},
		{
			name:           "account_without_institution",
			accounts:       map[string]*AccountMatch{"id-1": {AccountID: studentID}},
			wantErr:        ErrNoInstitution,
			wantInvalidate: 1,
		},
		{
			name:           "institution_missing",
			accounts:       map[string]*AccountMatch{"id-1": {AccountID: studentID, InstitutionID: pointers.Uint(99)}},
			active:         map[uint]bool{},
			wantErr:        ErrInstitutionNotFound,
			wantInvalidate: 1,
			wantGateCalls:  1,
		},
		{
			name:           "gate_transient",
			accounts:       map[string]*AccountMatch{"id-1": {AccountID: studentID, InstitutionID: pointers.Uint(7)}},
			gateErr:        errBoom,
			wantInternal:   true,
			wantInvalidate: 1,
			wantGateCalls:  1,
		},
		{
			name:           "inactive_student",
			accounts:       map[string]*AccountMatch{"id-1": {AccountID: studentID, InstitutionID: pointers.Uint(7)}},
			active:         map[uint]bool{7: false},
			wantErr:        ErrSubscriptionInactive,
			wantInvalidate: 1,
			wantGateCalls:  1,
		},
		{
			name:          "active_student",
			accounts:      map[string]*AccountMatch{"id-1": {AccountID: studentID, InstitutionID: pointers.Uint(7)}},
			active:        map[uint]bool{7: true},
			wantUserType:  UserTypeStudent,
			wantRedirect:  StudentHomePath,
			wantGateCalls: 1,
		},
		{
			name:           "directory_failure",
			adminErr:       errBoom,
			wantInternal:   true,
			wantInvalidate: 1,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			gw := newFakeGateway("id-1", "admin@uni.edu")
			dir := &fakeDirectory{admins: tc.admins, accounts: tc.accounts, adminErr: tc.adminErr}
			gate := &fakeGate{active: tc.active, err: tc.gateErr}
			obs := &fakeLoginObserver{}
			svc := NewLoginService(logger.Nop(), gw, dir, gate, obs)

			res, err := svc.Login(context.Background(), "admin@uni.edu", "correctpw")

			switch {
			case tc.wantErr != nil:
				if !errors.Is(err, tc.wantErr) {
					t.Fatalf("expected %v, got %v", tc.wantErr, err)
				}
			case tc.wantInternal:
				if err == nil || LoginOutcome(err) != "internal_error" {
					t.Fatalf("expected internal error, got %v", err)
				}
			default:
				if err != nil {
					t.Fatalf("Login: %v", err)
				}
				if res.UserType != tc.wantUserType || res.RedirectPath != tc.wantRedirect {
					t.Fatalf("got userType=%q redirect=%q", res.UserType, res.RedirectPath)
				}
				if res.Session.AccessToken != gw.authed.Session.AccessToken {
					t.Fatalf("expected issued session to be returned")
				}
			}

			if gw.authCalls != 1 {
				t.Fatalf("expected exactly one authenticate call, got %d", gw.authCalls)
			}
			if gw.invalidateCalls != tc.wantInvalidate {
				t.Fatalf("expected %d invalidations, got %d", tc.wantInvalidate, gw.invalidateCalls)
			}
			if tc.wantInvalidate > 0 && gw.invalidated[0].AccessToken != gw.authed.Session.AccessToken {
				t.Fatalf("invalidated the wrong session: %+v", gw.invalidated[0])
			}
			if gate.calls != tc.wantGateCalls {
				t.Fatalf("expected %d gate calls, got %d", tc.wantGateCalls, gate.calls)
			}
			if len(obs.outcomes) != 1 {
				t.Fatalf("expected one observed outcome, got %v", obs.outcomes)
			}
		})
	}
}

func TestLoginInvalidationFailureKeepsDecision(t *testing.T) {
	gw := newFakeGateway("id-1", "admin@uni.edu")
	gw.invalidateErr = errBoom
	dir := &fakeDirectory{admins: map[string]*AdminMatch{"admin@uni.edu": {InstitutionID: 1}}}
	svc := NewLoginService(logger.Nop(), gw, dir, &fakeGate{}, nil)

	_, err := svc.Login(context.Background(), "admin@uni.edu", "pw")
	if !errors.Is(err, ErrSubscriptionInactive) {
		t.Fatalf("expected ErrSubscriptionInactive, got %v", err)
	}
	if errors.Is(err, errBoom) {
		t.Fatalf("invalidation error leaked into result: %v", err)
	}
}

func TestResolveRole(t *testing.T) {
	accID := uuid.New()
	dir := &fakeDirectory{
		admins:   map[string]*AdminMatch{"admin@uni.edu": {InstitutionID: 42, IsActive: true}},
		accounts: map[string]*AccountMatch{"stu": {AccountID: accID, InstitutionID: pointers.Uint(7)}},
	}

	role, err := ResolveRole(context.Background(), dir, Identity{ID: "x", Email: "admin@uni.edu"})
	if err != nil {
		t.Fatalf("ResolveRole: %v", err)
	}
	if r, ok := role.(AdminRole); !ok || r.InstitutionID != 42 || !r.IsActive {
		t.Fatalf("expected admin role, got %#v", role)
	}

	role, err = ResolveRole(context.Background(), dir, Identity{ID: "stu", Email: "stu@uni.edu"})
	if err != nil {
		t.Fatalf("ResolveRole: %v", err)
	}
	if r, ok := role.(StudentRole); !ok || r.AccountID != accID || *r.InstitutionID != 7 {
		t.Fatalf("expected student role, got %#v", role)
	}

	role, err = ResolveRole(context.Background(), dir, Identity{ID: "nobody", Email: "x@y.z"})
	if err != nil {
		t.Fatalf("ResolveRole: %v", err)
	}
	if _, ok := role.(UnresolvedRole); !ok {
		t.Fatalf("expected unresolved role, got %#v", role)
	}
}

func TestLoginOutcomeNames(t *testing.T) {
	cases := map[error]string{
		nil:                     "ok",
		ErrInvalidCredentials:   "invalid_credentials",
		ErrSubscriptionInactive: "subscription_inactive",
		ErrNoInstitution:        "no_institution",
		errBoom:                 "internal_error",
	}
	for err, want := range cases {
		if got := LoginOutcome(err); got != want {
			t.Fatalf("LoginOutcome(%v)=%q, want %q", err, got, want)
		}
	}
}
