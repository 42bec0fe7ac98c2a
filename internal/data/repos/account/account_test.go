package account

import (
	"context"
	"testing"

	"github.com/interviewlab/interviewlab-backend/internal/data/repos/testutil"
	types "github.com/interviewlab/interviewlab-backend/internal/domain"
	"github.com/interviewlab/interviewlab-backend/internal/pkg/dbctx"
)

func TestInstitutionRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewInstitutionRepo(db, testutil.Logger(t))

	active := testutil.SeedInstitution(t, ctx, tx, "Universidad Norte", "Admin@Uni.edu", true)
	testutil.SeedInstitution(t, ctx, tx, "Instituto Sur", "admin@sur.edu", false)

	got, err := repo.GetByEmail(dbc, "  ADMIN@uni.edu ")
	if err != nil || got == nil {
		t.Fatalf("GetByEmail: got=%v err=%v", got, err)
	}
	if got.ID != active.ID || !got.IsActive {
		t.Fatalf("GetByEmail returned %+v", got)
	}

	if miss, err := repo.GetByEmail(dbc, "nobody@uni.edu"); err != nil || miss != nil {
		t.Fatalf("GetByEmail miss: got=%v err=%v", miss, err)
	}
	if miss, err := repo.GetByID(dbc, 9999); err != nil || miss != nil {
		t.Fatalf("GetByID miss: got=%v err=%v", miss, err)
	}

	list, err := repo.ListActive(dbc)
	if err != nil || len(list) != 1 || list[0].ID != active.ID {
		t.Fatalf("ListActive: err=%v list=%v", err, list)
	}

	if err := repo.SetActive(dbc, active.ID, false); err != nil {
		t.Fatalf("SetActive: %v", err)
	}
	reloaded, err := repo.GetByID(dbc, active.ID)
	if err != nil || reloaded == nil || reloaded.IsActive {
		t.Fatalf("after SetActive: got=%v err=%v", reloaded, err)
	}
}

func TestAccountRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewAccountRepo(db, testutil.Logger(t))

	inst := testutil.SeedInstitution(t, ctx, tx, "Universidad Norte", "admin@uni.edu", true)
	a1 := testutil.SeedAccount(t, ctx, tx, "identity-1", "Student@Uni.edu", &inst.ID)
	testutil.SeedAccount(t, ctx, tx, "identity-2", "other@uni.edu", &inst.ID)
	testutil.SeedAccount(t, ctx, tx, "identity-3", "loose@uni.edu", nil)

	got, err := repo.GetByAuthIdentity(dbc, "identity-1")
	if err != nil || got == nil || got.ID != a1.ID {
		t.Fatalf("GetByAuthIdentity: got=%v err=%v", got, err)
	}
	if got.Email != "student@uni.edu" {
		t.Fatalf("expected normalized email, got %q", got.Email)
	}
	if miss, err := repo.GetByAuthIdentity(dbc, "missing"); err != nil || miss != nil {
		t.Fatalf("GetByAuthIdentity miss: got=%v err=%v", miss, err)
	}

	exists, err := repo.EmailExists(dbc, "STUDENT@uni.edu")
	if err != nil || !exists {
		t.Fatalf("EmailExists: exists=%v err=%v", exists, err)
	}

	page, total, err := repo.ListByInstitution(dbc, inst.ID, 1, 0)
	if err != nil {
		t.Fatalf("ListByInstitution: %v", err)
	}
	if total != 2 || len(page) != 1 {
		t.Fatalf("expected total=2 page=1, got total=%d page=%d", total, len(page))
	}

	rows, err := repo.GetByIDs(dbc, nil)
	if err != nil || len(rows) != 0 {
		t.Fatalf("GetByIDs empty: err=%v len=%d", err, len(rows))
	}

	dup := &types.Account{AuthIdentity: "identity-4", Email: "student@uni.edu", Name: "Dup"}
	if _, err := repo.Create(dbc, []*types.Account{dup}); err == nil {
		t.Fatalf("expected unique violation on duplicate email")
	}
}

func TestEmailDomainRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewEmailDomainRepo(db, testutil.Logger(t))

	norte := testutil.SeedInstitution(t, ctx, tx, "Universidad Norte", "admin@uni.edu", true)
	sur := testutil.SeedInstitution(t, ctx, tx, "Instituto Sur", "admin@sur.edu", true)
	d := testutil.SeedDomain(t, ctx, tx, norte.ID, "@Uni.EDU")

	if d.Domain != "uni.edu" {
		t.Fatalf("expected normalized domain, got %q", d.Domain)
	}

	cases := []struct {
		name   string
		inst   uint
		domain string
		want   bool
	}{
		{name: "exact", inst: norte.ID, domain: "uni.edu", want: true},
		{name: "case_insensitive", inst: norte.ID, domain: "UNI.edu", want: true},
		{name: "other_institution", inst: sur.ID, domain: "uni.edu", want: false},
		{name: "subdomain_not_matched", inst: norte.ID, domain: "alumnos.uni.edu", want: false},
		{name: "empty", inst: norte.ID, domain: "", want: false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.IsAllowed(dbc, tc.inst, tc.domain)
			if err != nil {
				t.Fatalf("IsAllowed: %v", err)
			}
			if got != tc.want {
				t.Fatalf("IsAllowed(%d, %q)=%v, want %v", tc.inst, tc.domain, got, tc.want)
			}
		})
	}

	if n, err := repo.DeleteByID(dbc, sur.ID, d.ID); err != nil || n != 0 {
		t.Fatalf("cross-institution delete: n=%d err=%v", n, err)
	}
	if n, err := repo.DeleteByID(dbc, norte.ID, d.ID); err != nil || n != 1 {
		t.Fatalf("DeleteByID: n=%d err=%v", n, err)
	}
	list, err := repo.ListByInstitution(dbc, norte.ID)
	if err != nil || len(list) != 0 {
		t.Fatalf("after delete: err=%v len=%d", err, len(list))
	}
}

func TestCareerRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	dbc := dbctx.Context{Ctx: ctx, Tx: tx}

	repo := NewCareerRepo(db, testutil.Logger(t))
	inst := testutil.SeedInstitution(t, ctx, tx, "Universidad Norte", "admin@uni.edu", true)
	testutil.SeedCareer(t, ctx, tx, inst.ID, "Sistemas")
	c := testutil.SeedCareer(t, ctx, tx, inst.ID, "Administración")

	list, err := repo.ListByInstitution(dbc, inst.ID)
	if err != nil || len(list) != 2 {
		t.Fatalf("ListByInstitution: err=%v len=%d", err, len(list))
	}
	if list[0].Name != "Administración" {
		t.Fatalf("expected name ordering, got %q first", list[0].Name)
	}
	got, err := repo.GetByID(dbc, c.ID)
	if err != nil || got == nil || got.InstitutionID != inst.ID {
		t.Fatalf("GetByID: got=%v err=%v", got, err)
	}
}
