package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/interviewlab/interviewlab-backend/internal/platform/httpx"
	"github.com/interviewlab/interviewlab-backend/internal/platform/logger"
)

type HostedIdentityConfig struct {
	// BaseURL of the project, e.g. https://xyz.supabase.co
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

// hostedIdentityGateway talks to a GoTrue-compatible auth service.
type hostedIdentityGateway struct {
	log     *logger.Logger
	baseURL string
	apiKey  string
	client  *http.Client
	now     func() time.Time
}

func NewHostedIdentityGateway(log *logger.Logger, cfg HostedIdentityConfig) (IdentityGateway, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if base == "" {
		return nil, fmt.Errorf("missing IDENTITY_URL")
	}
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, fmt.Errorf("missing IDENTITY_API_KEY")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &hostedIdentityGateway{
		log:     log.With("service", "HostedIdentityGateway"),
		baseURL: base,
		apiKey:  cfg.APIKey,
		client:  &http.Client{Timeout: timeout},
		now:     time.Now,
	}, nil
}

type goTrueUser struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

type goTrueTokenResponse struct {
	AccessToken  string     `json:"access_token"`
	TokenType    string     `json:"token_type"`
	ExpiresIn    int64      `json:"expires_in"`
	ExpiresAt    int64      `json:"expires_at"`
	RefreshToken string     `json:"refresh_token"`
	User         goTrueUser `json:"user"`
}

func (g *hostedIdentityGateway) headers(bearer string) map[string]string {
	h := map[string]string{"apikey": g.apiKey}
	if bearer != "" {
		h["Authorization"] = "Bearer " + bearer
	}
	return h
}

func (g *hostedIdentityGateway) Authenticate(ctx context.Context, email, password string) (*AuthenticatedIdentity, error) {
	_, raw, err := httpx.DoJSON(ctx, g.client, "identity", http.MethodPost,
		g.baseURL+"/auth/v1/token?grant_type=password",
		g.headers(""),
		map[string]string{"email": email, "password": password},
	)
	if err != nil {
		switch httpx.StatusOf(err) {
		case http.StatusBadRequest, http.StatusUnauthorized, http.StatusUnprocessableEntity:
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("identity sign-in: %w", err)
	}

	var tok goTrueTokenResponse
	if err := json.Unmarshal(raw, &tok); err != nil {
		return nil, fmt.Errorf("decode sign-in response: %w", err)
	}
	if tok.AccessToken == "" || tok.User.ID == "" {
		return nil, fmt.Errorf("identity sign-in: incomplete response")
	}

	expiresAt := g.now().Add(time.Duration(tok.ExpiresIn) * time.Second)
	if tok.ExpiresAt > 0 {
		expiresAt = time.Unix(tok.ExpiresAt, 0)
	}
	return &AuthenticatedIdentity{
		Identity: Identity{ID: tok.User.ID, Email: tok.User.Email},
		Session: SessionTokens{
			AccessToken:  tok.AccessToken,
			RefreshToken: tok.RefreshToken,
			TokenType:    tok.TokenType,
			ExpiresAt:    expiresAt,
		},
	}, nil
}

func (g *hostedIdentityGateway) InvalidateSession(ctx context.Context, session SessionTokens) error {
	if session.AccessToken == "" {
		return nil
	}
	_, _, err := httpx.DoJSON(ctx, g.client, "identity", http.MethodPost,
		g.baseURL+"/auth/v1/logout",
		g.headers(session.AccessToken),
		nil,
	)
	if err != nil && httpx.StatusOf(err) == http.StatusUnauthorized {
		// Already gone.
		return nil
	}
	return err
}

func (g *hostedIdentityGateway) ResolveSession(ctx context.Context, accessToken string) (*Identity, error) {
	if accessToken == "" {
		return nil, ErrInvalidSession
	}
	_, raw, err := httpx.DoJSON(ctx, g.client, "identity", http.MethodGet,
		g.baseURL+"/auth/v1/user",
		g.headers(accessToken),
		nil,
	)
	if err != nil {
		switch httpx.StatusOf(err) {
		case http.StatusUnauthorized, http.StatusForbidden, http.StatusNotFound:
			return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
		}
		return nil, fmt.Errorf("identity user lookup: %w", err)
	}
	var u goTrueUser
	if err := json.Unmarshal(raw, &u); err != nil {
		return nil, fmt.Errorf("decode user: %w", err)
	}
	if u.ID == "" {
		return nil, ErrInvalidSession
	}
	return &Identity{ID: u.ID, Email: u.Email}, nil
}

func (g *hostedIdentityGateway) SignUp(ctx context.Context, email, password string) (*Identity, error) {
	_, raw, err := httpx.DoJSON(ctx, g.client, "identity", http.MethodPost,
		g.baseURL+"/auth/v1/signup",
		g.headers(""),
		map[string]string{"email": email, "password": password},
	)
	if err != nil {
		var se *httpx.StatusError
		if errors.As(err, &se) && (se.StatusCode == http.StatusUnprocessableEntity || se.StatusCode == http.StatusBadRequest) {
			if strings.Contains(strings.ToLower(se.Body), "already") {
				return nil, ErrIdentityExists
			}
			return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
		}
		return nil, fmt.Errorf("identity sign-up: %w", err)
	}

	// Depending on email confirmation settings the user is either the body
	// itself or nested under "user".
	var body struct {
		goTrueUser
		User *goTrueUser `json:"user"`
	}
	if err := json.Unmarshal(raw, &body); err != nil {
		return nil, fmt.Errorf("decode sign-up response: %w", err)
	}
	u := body.goTrueUser
	if body.User != nil && body.User.ID != "" {
		u = *body.User
	}
	if u.ID == "" {
		return nil, fmt.Errorf("identity sign-up: missing user id")
	}
	return &Identity{ID: u.ID, Email: u.Email}, nil
}
