package services

import (
	"context"
	"errors"
	"time"
)

type fakeGateway struct {
	authed        *AuthenticatedIdentity
	authErr       error
	invalidateErr error

	authCalls       int
	invalidateCalls int
	invalidated     []SessionTokens

	resolved   map[string]*Identity
	signUpErr  error
	signUps    []string
	nextSignUp *Identity
}

func newFakeGateway(id, email string) *fakeGateway {
	return &fakeGateway{
		authed: &AuthenticatedIdentity{
			Identity: Identity{ID: id, Email: email},
			Session: SessionTokens{
				AccessToken:  "access-" + id,
				RefreshToken: "refresh-" + id,
				TokenType:    "bearer",
				ExpiresAt:    time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC),
			},
		},
		resolved: map[string]*Identity{},
	}
}

func (g *fakeGateway) Authenticate(ctx context.Context, email, password string) (*AuthenticatedIdentity, error) {
	g.authCalls++
	if g.authErr != nil {
		return nil, g.authErr
	}
	return g.authed, nil
}

func (g *fakeGateway) InvalidateSession(ctx context.Context, session SessionTokens) error {
	g.invalidateCalls++
	g.invalidated = append(g.invalidated, session)
	return g.invalidateErr
}

func (g *fakeGateway) ResolveSession(ctx context.Context, accessToken string) (*Identity, error) {
	if ident, ok := g.resolved[accessToken]; ok {
		return ident, nil
	}
	return nil, ErrInvalidSession
}

func (g *fakeGateway) SignUp(ctx context.Context, email, password string) (*Identity, error) {
	g.signUps = append(g.signUps, email)
	if g.signUpErr != nil {
		return nil, g.signUpErr
	}
	if g.nextSignUp != nil {
		return g.nextSignUp, nil
	}
	return &Identity{ID: "new-" + email, Email: email}, nil
}

type fakeDirectory struct {
	admins   map[string]*AdminMatch
	accounts map[string]*AccountMatch
	adminErr error
	accErr   error

	adminCalls   int
	accountCalls int
}

func (d *fakeDirectory) FindAdminByEmail(ctx context.Context, email string) (*AdminMatch, error) {
	d.adminCalls++
	if d.adminErr != nil {
		return nil, d.adminErr
	}
	return d.admins[email], nil
}

func (d *fakeDirectory) FindAccountByIdentity(ctx context.Context, identityID string) (*AccountMatch, error) {
	d.accountCalls++
	if d.accErr != nil {
		return nil, d.accErr
	}
	return d.accounts[identityID], nil
}

type fakeGate struct {
	active map[uint]bool
	err    error
	calls  int
}

func (g *fakeGate) CheckActive(ctx context.Context, institutionID uint) (bool, error) {
	g.calls++
	if g.err != nil {
		return false, g.err
	}
	active, ok := g.active[institutionID]
	if !ok {
		return false, ErrInstitutionNotFound
	}
	return active, nil
}

type fakeLoginObserver struct {
	outcomes []string
}

func (o *fakeLoginObserver) IncLoginOutcome(outcome string) {
	o.outcomes = append(o.outcomes, outcome)
}

var errBoom = errors.New("boom")
