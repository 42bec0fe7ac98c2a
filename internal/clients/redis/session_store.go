package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	goredis "github.com/redis/go-redis/v9"

	types "github.com/interviewlab/interviewlab-backend/internal/domain"
	"github.com/interviewlab/interviewlab-backend/internal/platform/logger"
)

type Config struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// SessionStore keeps local-provider sessions in Redis with a TTL equal to the
// access token lifetime. Keys:
//
//	<prefix>:access:<token>   -> session JSON
//	<prefix>:refresh:<token>  -> access token
//	<prefix>:identity:<id>    -> set of access tokens
type SessionStore struct {
	log    *logger.Logger
	rdb    goredis.UniversalClient
	prefix string
	now    func() time.Time
}

func NewSessionStore(log *logger.Logger, cfg Config) (*SessionStore, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}
	addr := strings.TrimSpace(cfg.Addr)
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		Password:    cfg.Password,
		DB:          cfg.DB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return NewSessionStoreWithClient(log, rdb, cfg.KeyPrefix), nil
}

// NewSessionStoreWithClient wraps an existing client; used by tests and by
// callers that share one client across stores.
func NewSessionStoreWithClient(log *logger.Logger, rdb goredis.UniversalClient, prefix string) *SessionStore {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "interviewlab:session"
	}
	return &SessionStore{
		log:    log.With("service", "RedisSessionStore"),
		rdb:    rdb,
		prefix: prefix,
		now:    time.Now,
	}
}

func (s *SessionStore) key(kind, v string) string {
	return s.prefix + ":" + kind + ":" + v
}

func (s *SessionStore) Save(ctx context.Context, sess *types.AuthSession) error {
	if sess == nil {
		return nil
	}
	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return fmt.Errorf("session already expired")
	}
	raw, err := json.Marshal(storedSession{
		ID:           sess.ID.String(),
		IdentityID:   sess.IdentityID.String(),
		AccessToken:  sess.AccessToken,
		RefreshToken: sess.RefreshToken,
		ExpiresAt:    sess.ExpiresAt,
	})
	if err != nil {
		return err
	}

	idKey := s.key("identity", sess.IdentityID.String())
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, s.key("access", sess.AccessToken), raw, ttl)
	pipe.Set(ctx, s.key("refresh", sess.RefreshToken), sess.AccessToken, ttl)
	pipe.SAdd(ctx, idKey, sess.AccessToken)
	pipe.Expire(ctx, idKey, ttl)
	_, err = pipe.Exec(ctx)
	return err
}

// GetByAccessToken returns nil, nil when the token is unknown or expired.
func (s *SessionStore) GetByAccessToken(ctx context.Context, accessToken string) (*types.AuthSession, error) {
	if accessToken == "" {
		return nil, nil
	}
	raw, err := s.rdb.Get(ctx, s.key("access", accessToken)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var st storedSession
	if err := json.Unmarshal(raw, &st); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return st.toDomain()
}

func (s *SessionStore) Delete(ctx context.Context, sess *types.AuthSession) error {
	if sess == nil {
		return nil
	}
	pipe := s.rdb.TxPipeline()
	pipe.Del(ctx, s.key("access", sess.AccessToken), s.key("refresh", sess.RefreshToken))
	pipe.SRem(ctx, s.key("identity", sess.IdentityID.String()), sess.AccessToken)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *SessionStore) Close() error {
	if s == nil || s.rdb == nil {
		return nil
	}
	return s.rdb.Close()
}

func (s *SessionStore) PingContext(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}
