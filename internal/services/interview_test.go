package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/interviewlab/interviewlab-backend/internal/data/repos"
	"github.com/interviewlab/interviewlab-backend/internal/data/repos/testutil"
)

func TestInterviewService(t *testing.T) {
	ctx := context.Background()
	db := testutil.DB(t)
	log := testutil.Logger(t)
	inst := testutil.SeedInstitution(t, ctx, db, "Uni", "admin@uni.edu", true)
	testutil.SeedAccount(t, ctx, db, "owner", "owner@uni.edu", &inst.ID)
	testutil.SeedAccount(t, ctx, db, "intruder", "intruder@uni.edu", &inst.ID)

	svc := NewInterviewService(log,
		repos.NewAccountRepo(db, log),
		repos.NewInterviewRepo(db, log),
		repos.NewConversationRepo(db, log),
	)

	if _, err := svc.Create(ctx, "owner", CreateInterviewInput{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
	if _, err := svc.Create(ctx, "admin-without-account", CreateInterviewInput{ResumeText: "cv"}); !errors.Is(err, ErrAccountRequired) {
		t.Fatalf("expected ErrAccountRequired, got %v", err)
	}

	iv, err := svc.Create(ctx, "owner", CreateInterviewInput{ResumeText: " cv ", JobDescriptionText: "puesto"})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if iv.ResumeText != "cv" {
		t.Fatalf("expected trimmed resume, got %q", iv.ResumeText)
	}

	list, total, err := svc.List(ctx, "owner", 0, 0)
	if err != nil || total != 1 || len(list) != 1 {
		t.Fatalf("List: %d/%d err=%v", len(list), total, err)
	}
	if _, err := svc.Get(ctx, "intruder", iv.ID); !errors.Is(err, ErrNotOwner) {
		t.Fatalf("expected ErrNotOwner, got %v", err)
	}
	if _, err := svc.Get(ctx, "owner", uuid.New()); !errors.Is(err, ErrInterviewNotFound) {
		t.Fatalf("expected ErrInterviewNotFound, got %v", err)
	}

	conv, err := svc.StartConversation(ctx, "owner", "conv-abc", iv.ID)
	if err != nil {
		t.Fatalf("StartConversation: %v", err)
	}
	if conv.ID != "conv-abc" || conv.InterviewID != iv.ID {
		t.Fatalf("unexpected conversation %+v", conv)
	}
	if _, err := svc.StartConversation(ctx, "owner", "conv-abc", iv.ID); err != nil {
		t.Fatalf("repeated StartConversation: %v", err)
	}

	cases := []struct {
		name     string
		identity string
		convID   string
		id       uuid.UUID
		want     error
	}{
		{name: "missing_conversation_id", identity: "owner", id: iv.ID, want: ErrInvalidInput},
		{name: "missing_interview_id", identity: "owner", convID: "c", want: ErrInvalidInput},
		{name: "unknown_interview", identity: "owner", convID: "c", id: uuid.New(), want: ErrInterviewNotFound},
		{name: "not_owner", identity: "intruder", convID: "c", id: iv.ID, want: ErrNotOwner},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := svc.StartConversation(ctx, tc.identity, tc.convID, tc.id); !errors.Is(err, tc.want) {
				t.Fatalf("expected %v, got %v", tc.want, err)
			}
		})
	}
}

func TestPage(t *testing.T) {
	cases := []struct{ limit, offset, wantLimit, wantOffset int }{
		{0, 0, defaultPageSize, 0},
		{500, -3, maxPageSize, 0},
		{10, 20, 10, 20},
	}
	for _, tc := range cases {
		l, o := Page(tc.limit, tc.offset)
		if l != tc.wantLimit || o != tc.wantOffset {
			t.Fatalf("Page(%d,%d)=(%d,%d)", tc.limit, tc.offset, l, o)
		}
	}
}
