package redis

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	types "github.com/interviewlab/interviewlab-backend/internal/domain"
)

type storedSession struct {
	ID           string    `json:"id"`
	IdentityID   string    `json:"identity_id"`
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

func (st storedSession) toDomain() (*types.AuthSession, error) {
	id, err := uuid.Parse(st.ID)
	if err != nil {
		return nil, fmt.Errorf("session id: %w", err)
	}
	identityID, err := uuid.Parse(st.IdentityID)
	if err != nil {
		return nil, fmt.Errorf("session identity id: %w", err)
	}
	return &types.AuthSession{
		ID:           id,
		IdentityID:   identityID,
		AccessToken:  st.AccessToken,
		RefreshToken: st.RefreshToken,
		ExpiresAt:    st.ExpiresAt,
	}, nil
}
