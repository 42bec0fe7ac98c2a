package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/interviewlab/interviewlab-backend/internal/data/db"
	"github.com/interviewlab/interviewlab-backend/internal/data/repos"
	types "github.com/interviewlab/interviewlab-backend/internal/domain"
	"github.com/interviewlab/interviewlab-backend/internal/pkg/dbctx"
	"github.com/interviewlab/interviewlab-backend/internal/platform/logger"
)

// SessionStore persists issued local sessions so they can be revoked before
// the JWT expires.
type SessionStore interface {
	Save(ctx context.Context, sess *types.AuthSession) error
	GetByAccessToken(ctx context.Context, accessToken string) (*types.AuthSession, error)
	Delete(ctx context.Context, sess *types.AuthSession) error
}

type JWTClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

const minPasswordLength = 6

type LocalIdentityConfig struct {
	JWTSecretKey string
	Issuer       string
	AccessTTL    time.Duration
	RefreshTTL   time.Duration
}

type localIdentityGateway struct {
	log          *logger.Logger
	identityRepo repos.IdentityRepo
	sessions     SessionStore
	jwtSecretKey []byte
	issuer       string
	accessTTL    time.Duration
	refreshTTL   time.Duration
	now          func() time.Time
}

func NewLocalIdentityGateway(log *logger.Logger, identityRepo repos.IdentityRepo, sessions SessionStore, cfg LocalIdentityConfig) (IdentityGateway, error) {
	if strings.TrimSpace(cfg.JWTSecretKey) == "" {
		return nil, fmt.Errorf("missing JWT_SECRET_KEY")
	}
	if cfg.AccessTTL <= 0 {
		cfg.AccessTTL = time.Hour
	}
	if cfg.RefreshTTL < cfg.AccessTTL {
		cfg.RefreshTTL = cfg.AccessTTL
	}
	if cfg.Issuer == "" {
		cfg.Issuer = "interviewlab"
	}
	return &localIdentityGateway{
		log:          log.With("service", "LocalIdentityGateway"),
		identityRepo: identityRepo,
		sessions:     sessions,
		jwtSecretKey: []byte(cfg.JWTSecretKey),
		issuer:       cfg.Issuer,
		accessTTL:    cfg.AccessTTL,
		refreshTTL:   cfg.RefreshTTL,
		now:          time.Now,
	}, nil
}

func (g *localIdentityGateway) Authenticate(ctx context.Context, email, password string) (*AuthenticatedIdentity, error) {
	ident, err := g.identityRepo.GetByEmail(dbctx.Context{Ctx: ctx}, email)
	if err != nil {
		return nil, fmt.Errorf("load identity: %w", err)
	}
	if ident == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(ident.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	now := g.now()
	accessToken, err := g.generateAccessToken(ident, now)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}
	sess := &types.AuthSession{
		ID:           uuid.New(),
		IdentityID:   ident.ID,
		AccessToken:  accessToken,
		RefreshToken: uuid.NewString(),
		ExpiresAt:    now.Add(g.refreshTTL),
	}
	if err := g.sessions.Save(ctx, sess); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	return &AuthenticatedIdentity{
		Identity: Identity{ID: ident.ID.String(), Email: ident.Email},
		Session: SessionTokens{
			AccessToken:  accessToken,
			RefreshToken: sess.RefreshToken,
			TokenType:    "bearer",
			ExpiresAt:    now.Add(g.accessTTL),
		},
	}, nil
}

func (g *localIdentityGateway) InvalidateSession(ctx context.Context, session SessionTokens) error {
	if session.AccessToken == "" {
		return nil
	}
	sess, err := g.sessions.GetByAccessToken(ctx, session.AccessToken)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}
	if sess == nil {
		return nil
	}
	return g.sessions.Delete(ctx, sess)
}

func (g *localIdentityGateway) ResolveSession(ctx context.Context, accessToken string) (*Identity, error) {
	if accessToken == "" {
		return nil, ErrInvalidSession
	}
	parsed, err := jwt.ParseWithClaims(accessToken, &JWTClaims{}, func(token *jwt.Token) (interface{}, error) {
		return g.jwtSecretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(g.issuer),
		jwt.WithTimeFunc(g.now),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	claims, ok := parsed.Claims.(*JWTClaims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidSession
	}

	sess, err := g.sessions.GetByAccessToken(ctx, accessToken)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if sess == nil {
		return nil, fmt.Errorf("%w: revoked", ErrInvalidSession)
	}
	return &Identity{ID: claims.Subject, Email: claims.Email}, nil
}

func (g *localIdentityGateway) SignUp(ctx context.Context, email, password string) (*Identity, error) {
	email = types.NormalizeEmail(email)
	if email == "" || len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must have at least %d characters", ErrInvalidInput, minPasswordLength)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	created, err := g.identityRepo.Create(dbctx.Context{Ctx: ctx}, &types.AuthIdentity{
		Email:        email,
		PasswordHash: string(hash),
	})
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, ErrIdentityExists
		}
		return nil, fmt.Errorf("create identity: %w", err)
	}
	return &Identity{ID: created.ID.String(), Email: created.Email}, nil
}

func (g *localIdentityGateway) generateAccessToken(ident *types.AuthIdentity, now time.Time) (string, error) {
	claims := JWTClaims{
		Email: ident.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   ident.ID.String(),
			Issuer:    g.issuer,
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.accessTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(g.jwtSecretKey)
}

// gormSessionStore adapts the session table to SessionStore.
type gormSessionStore struct {
	repo repos.SessionRepo
}

func NewGormSessionStore(repo repos.SessionRepo) SessionStore {
	return &gormSessionStore{repo: repo}
}

func (s *gormSessionStore) Save(ctx context.Context, sess *types.AuthSession) error {
	_, err := s.repo.Create(dbctx.Context{Ctx: ctx}, []*types.AuthSession{sess})
	return err
}

func (s *gormSessionStore) GetByAccessToken(ctx context.Context, accessToken string) (*types.AuthSession, error) {
	sess, err := s.repo.GetByAccessToken(dbctx.Context{Ctx: ctx}, accessToken)
	if err != nil {
		return nil, err
	}
	if sess != nil && time.Now().After(sess.ExpiresAt) {
		return nil, nil
	}
	return sess, nil
}

func (s *gormSessionStore) Delete(ctx context.Context, sess *types.AuthSession) error {
	if sess == nil {
		return nil
	}
	return s.repo.DeleteByIDs(dbctx.Context{Ctx: ctx}, []uuid.UUID{sess.ID})
}
