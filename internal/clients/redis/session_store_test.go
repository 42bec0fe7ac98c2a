package redis

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/interviewlab/interviewlab-backend/internal/platform/logger"
)

func TestNewSessionStoreRequiresAddr(t *testing.T) {
	if _, err := NewSessionStore(logger.Nop(), Config{Addr: "  "}); err == nil {
		t.Fatalf("expected error for empty addr")
	}
	if _, err := NewSessionStore(nil, Config{Addr: "localhost:6379"}); err == nil {
		t.Fatalf("expected error for nil logger")
	}
}

func TestStoredSessionToDomain(t *testing.T) {
	id, identity := uuid.New(), uuid.New()
	exp := time.Now().Add(time.Hour).UTC()
	got, err := storedSession{ID: id.String(), IdentityID: identity.String(), AccessToken: "a", RefreshToken: "r", ExpiresAt: exp}.toDomain()
	if err != nil {
		t.Fatalf("toDomain: %v", err)
	}
	if got.ID != id || got.IdentityID != identity || !got.ExpiresAt.Equal(exp) {
		t.Fatalf("unexpected session %+v", got)
	}
	if _, err := (storedSession{ID: "bad"}).toDomain(); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestKeyLayout(t *testing.T) {
	s := NewSessionStoreWithClient(logger.Nop(), nil, "")
	if got := s.key("access", "tok"); got != "interviewlab:session:access:tok" {
		t.Fatalf("unexpected key %q", got)
	}
}
