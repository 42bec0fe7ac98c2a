package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/interviewlab/interviewlab-backend/internal/data/repos"
	"github.com/interviewlab/interviewlab-backend/internal/data/repos/testutil"
	"github.com/interviewlab/interviewlab-backend/internal/platform/logger"
)

func newLocalGateway(t *testing.T) IdentityGateway {
	t.Helper()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	gw, err := NewLocalIdentityGateway(log,
		repos.NewIdentityRepo(db, log),
		NewGormSessionStore(repos.NewSessionRepo(db, log)),
		LocalIdentityConfig{JWTSecretKey: "test-secret", AccessTTL: time.Hour, RefreshTTL: 24 * time.Hour},
	)
	if err != nil {
		t.Fatalf("NewLocalIdentityGateway: %v", err)
	}
	return gw
}

func TestLocalIdentityGatewayLifecycle(t *testing.T) {
	ctx := context.Background()
	gw := newLocalGateway(t)

	created, err := gw.SignUp(ctx, " Student@Uni.edu ", "secret123")
	if err != nil {
		t.Fatalf("SignUp: %v", err)
	}
	if created.Email != "student@uni.edu" {
		t.Fatalf("expected normalized email, got %q", created.Email)
	}
	if _, err := gw.SignUp(ctx, "student@uni.edu", "other-secret"); !errors.Is(err, ErrIdentityExists) {
		t.Fatalf("expected ErrIdentityExists, got %v", err)
	}
	if _, err := gw.SignUp(ctx, "short@uni.edu", "123"); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for short password, got %v", err)
	}

	if _, err := gw.Authenticate(ctx, "student@uni.edu", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := gw.Authenticate(ctx, "ghost@uni.edu", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}

	authed, err := gw.Authenticate(ctx, "STUDENT@uni.edu", "secret123")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if authed.ID != created.ID || authed.Session.AccessToken == "" || authed.Session.RefreshToken == "" {
		t.Fatalf("unexpected authenticated identity %+v", authed)
	}

	resolved, err := gw.ResolveSession(ctx, authed.Session.AccessToken)
	if err != nil {
		t.Fatalf("ResolveSession: %v", err)
	}
	if resolved.ID != created.ID || resolved.Email != "student@uni.edu" {
		t.Fatalf("unexpected resolved identity %+v", resolved)
	}

	if err := gw.InvalidateSession(ctx, authed.Session); err != nil {
		t.Fatalf("InvalidateSession: %v", err)
	}
	if _, err := gw.ResolveSession(ctx, authed.Session.AccessToken); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected revoked session, got %v", err)
	}
	if err := gw.InvalidateSession(ctx, authed.Session); err != nil {
		t.Fatalf("second InvalidateSession should be a no-op, got %v", err)
	}
}

func TestLocalIdentityGatewayRejectsForeignTokens(t *testing.T) {
	gw := newLocalGateway(t)
	cases := []string{"", "not-a-jwt", "eyJhbGciOiJub25lIn0.eyJzdWIiOiJ4In0."}
	for _, tok := range cases {
		if _, err := gw.ResolveSession(context.Background(), tok); !errors.Is(err, ErrInvalidSession) {
			t.Fatalf("ResolveSession(%q): expected ErrInvalidSession, got %v", tok, err)
		}
	}
}

func TestLocalIdentityGatewayRequiresSecret(t *testing.T) {
	if _, err := NewLocalIdentityGateway(logger.Nop(), nil, nil, LocalIdentityConfig{}); err == nil {
		t.Fatalf("expected error for missing secret")
	}
}

type goTrueFake struct {
	logoutCalls int
}

func (f *goTrueFake) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Header.Get("apikey") != "anon" {
		w.WriteHeader(http.StatusUnauthorized)
		return
	}
	switch {
	case r.URL.Path == "/auth/v1/token" && r.URL.Query().Get("grant_type") == "password":
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "correctpw" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"at-1","token_type":"bearer","expires_in":3600,"refresh_token":"rt-1","user":{"id":"u-1","email":"` + body["email"] + `"}}`))
	case r.URL.Path == "/auth/v1/logout":
		f.logoutCalls++
		if r.Header.Get("Authorization") == "Bearer gone" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	case r.URL.Path == "/auth/v1/user":
		if r.Header.Get("Authorization") != "Bearer at-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_, _ = w.Write([]byte(`{"id":"u-1","email":"a@uni.edu"}`))
	case r.URL.Path == "/auth/v1/signup":
		var body map[string]string
		_ = json.NewDecoder(r.Body).Decode(&body)
		if strings.HasPrefix(body["email"], "taken") {
			w.WriteHeader(http.StatusUnprocessableEntity)
			_, _ = w.Write([]byte(`{"msg":"User already registered"}`))
			return
		}
		_, _ = w.Write([]byte(`{"user":{"id":"u-2","email":"` + body["email"] + `"}}`))
	case r.URL.Path == "/down":
		w.WriteHeader(http.StatusServiceUnavailable)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func TestHostedIdentityGateway(t *testing.T) {
	fake := &goTrueFake{}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	gw, err := NewHostedIdentityGateway(logger.Nop(), HostedIdentityConfig{BaseURL: srv.URL + "/", APIKey: "anon"})
	if err != nil {
		t.Fatalf("NewHostedIdentityGateway: %v", err)
	}
	ctx := context.Background()

	if _, err := gw.Authenticate(ctx, "a@uni.edu", "bad"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	authed, err := gw.Authenticate(ctx, "a@uni.edu", "correctpw")
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if authed.ID != "u-1" || authed.Session.AccessToken != "at-1" || authed.Session.ExpiresAt.IsZero() {
		t.Fatalf("unexpected authenticated identity %+v", authed)
	}

	ident, err := gw.ResolveSession(ctx, "at-1")
	if err != nil || ident.ID != "u-1" {
		t.Fatalf("ResolveSession: %+v err=%v", ident, err)
	}
	if _, err := gw.ResolveSession(ctx, "other"); !errors.Is(err, ErrInvalidSession) {
		t.Fatalf("expected ErrInvalidSession, got %v", err)
	}

	if err := gw.InvalidateSession(ctx, authed.Session); err != nil {
		t.Fatalf("InvalidateSession: %v", err)
	}
	if err := gw.InvalidateSession(ctx, SessionTokens{AccessToken: "gone"}); err != nil {
		t.Fatalf("expected 401 on logout to be ignored, got %v", err)
	}
	if fake.logoutCalls != 2 {
		t.Fatalf("expected 2 logout calls, got %d", fake.logoutCalls)
	}

	created, err := gw.SignUp(ctx, "new@uni.edu", "secret123")
	if err != nil || created.ID != "u-2" {
		t.Fatalf("SignUp: %+v err=%v", created, err)
	}
	if _, err := gw.SignUp(ctx, "taken@uni.edu", "secret123"); !errors.Is(err, ErrIdentityExists) {
		t.Fatalf("expected ErrIdentityExists, got %v", err)
	}
}

func TestHostedIdentityGatewayConfig(t *testing.T) {
	if _, err := NewHostedIdentityGateway(logger.Nop(), HostedIdentityConfig{APIKey: "k"}); err == nil {
		t.Fatalf("expected error for missing base url")
	}
	if _, err := NewHostedIdentityGateway(logger.Nop(), HostedIdentityConfig{BaseURL: "http://x"}); err == nil {
		t.Fatalf("expected error for missing api key")
	}
}
