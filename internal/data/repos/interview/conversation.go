package interview

import (
	"errors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	types "github.com/interviewlab/interviewlab-backend/internal/domain"
	"github.com/interviewlab/interviewlab-backend/internal/pkg/dbctx"
	"github.com/interviewlab/interviewlab-backend/internal/platform/logger"
)

type ConversationRepo interface {
	Create(dbc dbctx.Context, conv *types.Conversation) error
	GetByID(dbc dbctx.Context, id string) (*types.Conversation, error)
	ReplaceDetails(dbc dbctx.Context, id string, details datatypes.JSON) error
}

type conversationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewConversationRepo(db *gorm.DB, baseLog *logger.Logger) ConversationRepo {
	repoLog := baseLog.With("repo", "ConversationRepo")
	return &conversationRepo{db: db, log: repoLog}
}

// Create inserts the id/interview pair. A repeated call with the same id is a
// no-op so client retries of the session-start call stay harmless.
func (r *conversationRepo) Create(dbc dbctx.Context, conv *types.Conversation) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	if conv == nil {
		return nil
	}
	return transaction.WithContext(dbc.Ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoNothing: true,
		}).
		Create(conv).Error
}

// GetByID returns nil, nil when no conversation has that id.
func (r *conversationRepo) GetByID(dbc dbctx.Context, id string) (*types.Conversation, error) {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	var c types.Conversation
	err := transaction.WithContext(dbc.Ctx).Where("id = ?", id).Take(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// ReplaceDetails overwrites the whole details blob. It never merges.
func (r *conversationRepo) ReplaceDetails(dbc dbctx.Context, id string, details datatypes.JSON) error {
	transaction := dbc.Tx
	if transaction == nil {
		transaction = r.db
	}

	return transaction.WithContext(dbc.Ctx).
		Model(&types.Conversation{}).
		Where("id = ?", id).
		Update("details", details).Error
}
