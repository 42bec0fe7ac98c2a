package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// IdentityRole is the resolved role of an authenticated identity. It is one
// of AdminRole, StudentRole or UnresolvedRole.
type IdentityRole interface {
	isIdentityRole()
}

type AdminRole struct {
	InstitutionID uint
	IsActive      bool
}

type StudentRole struct {
	AccountID     uuid.UUID
	InstitutionID *uint
}

type UnresolvedRole struct{}

func (AdminRole) isIdentityRole()      {}
func (StudentRole) isIdentityRole()    {}
func (UnresolvedRole) isIdentityRole() {}

// ResolveRole checks the administrator lookup first. An identity whose email
// is an institution contact is an admin even if it also owns an account.
func ResolveRole(ctx context.Context, dir AccountDirectory, ident Identity) (IdentityRole, error) {
	admin, err := dir.FindAdminByEmail(ctx, ident.Email)
	if err != nil {
		return nil, fmt.Errorf("admin lookup: %w", err)
	}
	if admin != nil {
		return AdminRole{InstitutionID: admin.InstitutionID, IsActive: admin.IsActive}, nil
	}

	acc, err := dir.FindAccountByIdentity(ctx, ident.ID)
	if err != nil {
		return nil, fmt.Errorf("account lookup: %w", err)
	}
	if acc != nil {
		return StudentRole{AccountID: acc.AccountID, InstitutionID: acc.InstitutionID}, nil
	}
	return UnresolvedRole{}, nil
}
