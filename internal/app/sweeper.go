package app

import (
	"context"
	"time"

	"github.com/interviewlab/interviewlab-backend/internal/data/repos"
	"github.com/interviewlab/interviewlab-backend/internal/pkg/dbctx"
	"github.com/interviewlab/interviewlab-backend/internal/platform/logger"
)

// runSessionSweeper deletes expired local sessions until ctx is done.
func runSessionSweeper(ctx context.Context, log *logger.Logger, sessions repos.SessionRepo, every time.Duration) error {
	if sessions == nil || every <= 0 {
		return nil
	}
	log = log.With("worker", "SessionSweeper")
	ticker := time.NewTicker(every)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			n, err := sessions.DeleteExpired(dbctx.Context{Ctx: ctx}, now)
			if err != nil {
				log.Warn("Expired session sweep failed", "error", err)
				continue
			}
			if n > 0 {
				log.Debug("Expired sessions removed", "count", n)
			}
		}
	}
}
