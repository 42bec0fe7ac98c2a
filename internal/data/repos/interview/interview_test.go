package interview

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"github.com/interviewlab/interviewlab-backend/internal/data/repos/testutil"
	types "github.com/interviewlab/interviewlab-backend/internal/domain"
	"github.com/interviewlab/interviewlab-backend/internal/pkg/dbctx"
)

func TestInterviewRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewInterviewRepo(db, testutil.Logger(t))
	owner := testutil.SeedAccount(t, ctx, tx, "identity-1", "a@uni.edu", nil)
	other := testutil.SeedAccount(t, ctx, tx, "identity-2", "b@uni.edu", nil)

	created, err := repo.Create(dbc, []*types.Interview{
		{AccountID: owner.ID, ResumeText: "cv", JobDescriptionText: "jd"},
		{AccountID: owner.ID, ResumeText: "cv2", JobDescriptionText: "jd2"},
		{AccountID: other.ID},
	})
	if err != nil || len(created) != 3 {
		t.Fatalf("Create: err=%v len=%d", err, len(created))
	}
	if created[0].ID == uuid.Nil {
		t.Fatalf("expected generated id")
	}

	got, err := repo.GetByID(dbc, created[0].ID)
	if err != nil || got == nil || got.AccountID != owner.ID {
		t.Fatalf("GetByID: got=%v err=%v", got, err)
	}
	if miss, err := repo.GetByID(dbc, uuid.New()); err != nil || miss != nil {
		t.Fatalf("GetByID miss: got=%v err=%v", miss, err)
	}

	page, total, err := repo.ListByAccount(dbc, owner.ID, 10, 0)
	if err != nil || total != 2 || len(page) != 2 {
		t.Fatalf("ListByAccount: err=%v total=%d len=%d", err, total, len(page))
	}
}

func TestConversationRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewConversationRepo(db, testutil.Logger(t))
	owner := testutil.SeedAccount(t, ctx, tx, "identity-1", "a@uni.edu", nil)
	iv := testutil.SeedInterview(t, ctx, tx, owner.ID)

	if err := repo.Create(dbc, &types.Conversation{ID: "conv_1", InterviewID: iv.ID}); err != nil {
		t.Fatalf("Create: %v", err)
	}
	if err := repo.Create(dbc, &types.Conversation{ID: "conv_1", InterviewID: iv.ID}); err != nil {
		t.Fatalf("Create repeated: %v", err)
	}

	got, err := repo.GetByID(dbc, "conv_1")
	if err != nil || got == nil || got.InterviewID != iv.ID {
		t.Fatalf("GetByID: got=%v err=%v", got, err)
	}
	if len(got.Details) != 0 {
		t.Fatalf("expected empty details before webhook, got %s", got.Details)
	}

	if err := repo.ReplaceDetails(dbc, "conv_1", datatypes.JSON(`{"a":1,"b":2}`)); err != nil {
		t.Fatalf("ReplaceDetails: %v", err)
	}
	if err := repo.ReplaceDetails(dbc, "conv_1", datatypes.JSON(`{"c":3}`)); err != nil {
		t.Fatalf("ReplaceDetails second: %v", err)
	}
	got, err = repo.GetByID(dbc, "conv_1")
	if err != nil || got == nil {
		t.Fatalf("GetByID after replace: got=%v err=%v", got, err)
	}
	if string(got.Details) != `{"c":3}` {
		t.Fatalf("expected full replace, got %s", got.Details)
	}

	if miss, err := repo.GetByID(dbc, "nope"); err != nil || miss != nil {
		t.Fatalf("GetByID miss: got=%v err=%v", miss, err)
	}
}

func TestResultRepoUpsert(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewResultRepo(db, testutil.Logger(t))
	inst := testutil.SeedInstitution(t, ctx, tx, "Universidad Norte", "admin@uni.edu", true)
	owner := testutil.SeedAccount(t, ctx, tx, "identity-1", "a@uni.edu", &inst.ID)
	iv := testutil.SeedInterview(t, ctx, tx, owner.ID)

	if pending, err := repo.GetByInterviewID(dbc, iv.ID); err != nil || pending != nil {
		t.Fatalf("expected no result yet: got=%v err=%v", pending, err)
	}

	first := &types.InterviewResult{
		InterviewID:    iv.ID,
		ClarityScore:   0,
		ClarityReason:  "El candidato no respondió.",
		TechnicalScore: 7,
		OverallScore:   55,
	}
	if err := repo.Upsert(dbc, first); err != nil {
		t.Fatalf("Upsert first: %v", err)
	}
	second := &types.InterviewResult{
		InterviewID:    iv.ID,
		ClarityScore:   0,
		ClarityReason:  "El candidato no respondió.",
		TechnicalScore: 8,
		OverallScore:   60,
	}
	if err := repo.Upsert(dbc, second); err != nil {
		t.Fatalf("Upsert second: %v", err)
	}

	var count int64
	if err := tx.Model(&types.InterviewResult{}).Where("interview_id = ?", iv.ID).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one result row, got %d", count)
	}

	got, err := repo.GetByInterviewID(dbc, iv.ID)
	if err != nil || got == nil {
		t.Fatalf("GetByInterviewID: got=%v err=%v", got, err)
	}
	if got.TechnicalScore != 8 || got.OverallScore != 60 {
		t.Fatalf("expected overwritten scores, got %+v", got)
	}
	if got.ClarityScore != 0 || got.ClarityReason == "" {
		t.Fatalf("expected unscored criterion preserved, got %d %q", got.ClarityScore, got.ClarityReason)
	}

	rows, total, err := repo.ListByInstitution(dbc, inst.ID, 10, 0)
	if err != nil || total != 1 || len(rows) != 1 {
		t.Fatalf("ListByInstitution: err=%v total=%d len=%d", err, total, len(rows))
	}
	if rows[0].AccountID != owner.ID || rows[0].OverallScore != 60 {
		t.Fatalf("unexpected summary %+v", rows[0])
	}
}
