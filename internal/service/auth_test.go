package service

import (
	"context"
	"testing"

	"bridgeseed-backend/internal/domain"
	"bridgeseed-backend/internal/identity"
	"bridgeseed-backend/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

var testDomains = []string{"um6p.ma", "student.um6p.ma"}

func newTestTokenManager() security.TokenManager {
	return security.NewTokenManager("test-secret-that-is-long-enough-0123456789", 60, 1440)
}

type stubVerifier struct {
	ident *identity.Identity
	err   error
}

func (s *stubVerifier) VerifyIDToken(ctx context.Context, idToken string) (*identity.Identity, error) {
	return s.ident, s.err
}

func TestRegisterLocal(t *testing.T) {
	store := newMockStore()
	svc := NewAuthService(store, nil, newTestTokenManager(), testDomains)

	store.users.On("GetByEmail", mock.Anything, "sara@student.um6p.ma").Return(nil, domain.ErrNotFound)
	store.users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "sara@student.um6p.ma" &&
			u.Role == domain.UserRoleStudent &&
			u.PasswordHash != "" &&
			u.Badges.Donor == domain.BadgeNone
	})).Return(nil)

	user, err := svc.RegisterLocal(context.Background(), "Sara@Student.UM6P.MA", "hunter2hunter2", "Sara")
	require.NoError(t, err)
	assert.Equal(t, "sara@student.um6p.ma", user.Email)
	store.assertExpectations(t)
}

func TestRegisterLocal_RejectsOutsideDomains(t *testing.T) {
	store := newMockStore()
	svc := NewAuthService(store, nil, newTestTokenManager(), testDomains)

	_, err := svc.RegisterLocal(context.Background(), "someone@gmail.com", "hunter2hunter2", "Someone")
	var valErr *domain.ValidationError
	require.ErrorAs(t, err, &valErr)
	store.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRegisterLocal_RejectsShortPassword(t *testing.T) {
	store := newMockStore()
	svc := NewAuthService(store, nil, newTestTokenManager(), testDomains)

	_, err := svc.RegisterLocal(context.Background(), "sara@um6p.ma", "short", "Sara")
	var valErr *domain.ValidationError
	require.ErrorAs(t, err, &valErr)
}

func TestRegisterLocal_RejectsExistingEmail(t *testing.T) {
	store := newMockStore()
	svc := NewAuthService(store, nil, newTestTokenManager(), testDomains)

	existing := &domain.User{ID: "user-1", Email: "sara@um6p.ma"}
	store.users.On("GetByEmail", mock.Anything, "sara@um6p.ma").Return(existing, nil)

	_, err := svc.RegisterLocal(context.Background(), "sara@um6p.ma", "hunter2hunter2", "Sara")
	var valErr *domain.ValidationError
	require.ErrorAs(t, err, &valErr)
}

func TestLoginLocal(t *testing.T) {
	store := newMockStore()
	svc := NewAuthService(store, nil, newTestTokenManager(), testDomains)

	hash, err := security.HashPassword("hunter2hunter2")
	require.NoError(t, err)
	user := &domain.User{ID: "user-1", Email: "sara@um6p.ma", Role: domain.UserRoleStudent, PasswordHash: hash}
	store.users.On("GetByEmail", mock.Anything, "sara@um6p.ma").Return(user, nil)

	got, access, refresh, err := svc.LoginLocal(context.Background(), "sara@um6p.ma", "hunter2hunter2")
	require.NoError(t, err)
	assert.Equal(t, "user-1", got.ID)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
}

func TestLoginLocal_WrongPassword(t *testing.T) {
	store := newMockStore()
	svc := NewAuthService(store, nil, newTestTokenManager(), testDomains)

	hash, err := security.HashPassword("hunter2hunter2")
	require.NoError(t, err)
	user := &domain.User{ID: "user-1", Email: "sara@um6p.ma", PasswordHash: hash}
	store.users.On("GetByEmail", mock.Anything, "sara@um6p.ma").Return(user, nil)

	_, _, _, err = svc.LoginLocal(context.Background(), "sara@um6p.ma", "wrong")
	var valErr *domain.ValidationError
	require.ErrorAs(t, err, &valErr)
}

func TestExchangeIDToken_CreatesProfileOnFirstContact(t *testing.T) {
	store := newMockStore()
	verifier := &stubVerifier{ident: &identity.Identity{
		UID:         "firebase-uid-1",
		Email:       "sara@um6p.ma",
		DisplayName: "Sara",
	}}
	svc := NewAuthService(store, verifier, newTestTokenManager(), testDomains)

	store.users.On("GetByID", mock.Anything, "firebase-uid-1").Return(nil, domain.ErrNotFound)
	store.users.On("Create", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.ID == "firebase-uid-1" && u.Email == "sara@um6p.ma"
	})).Return(nil)

	user, access, refresh, err := svc.ExchangeIDToken(context.Background(), "some-id-token")
	require.NoError(t, err)
	assert.Equal(t, "firebase-uid-1", user.ID)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, refresh)
	store.assertExpectations(t)
}

func TestExchangeIDToken_ExistingProfile(t *testing.T) {
	store := newMockStore()
	verifier := &stubVerifier{ident: &identity.Identity{UID: "firebase-uid-1", Email: "sara@um6p.ma"}}
	svc := NewAuthService(store, verifier, newTestTokenManager(), testDomains)

	existing := &domain.User{ID: "firebase-uid-1", Email: "sara@um6p.ma", Role: domain.UserRoleAdmin}
	store.users.On("GetByID", mock.Anything, "firebase-uid-1").Return(existing, nil)

	user, _, _, err := svc.ExchangeIDToken(context.Background(), "some-id-token")
	require.NoError(t, err)
	assert.Equal(t, domain.UserRoleAdmin, user.Role)
	store.users.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRefreshToken_ReloadsRole(t *testing.T) {
	store := newMockStore()
	tm := newTestTokenManager()
	svc := NewAuthService(store, nil, tm, testDomains)

	refresh, err := tm.GenerateRefreshToken("user-1", "sara@um6p.ma")
	require.NoError(t, err)

	user := &domain.User{ID: "user-1", Email: "sara@um6p.ma", Role: domain.UserRoleAdmin}
	store.users.On("GetByID", mock.Anything, "user-1").Return(user, nil)

	access, newRefresh, err := svc.RefreshToken(context.Background(), refresh)
	require.NoError(t, err)
	assert.NotEmpty(t, access)
	assert.NotEmpty(t, newRefresh)

	claims, err := tm.ValidateToken(access)
	require.NoError(t, err)
	assert.Equal(t, domain.UserRoleAdmin, claims.Role)
}

func TestRefreshToken_RejectsAccessToken(t *testing.T) {
	store := newMockStore()
	tm := newTestTokenManager()
	svc := NewAuthService(store, nil, tm, testDomains)

	access, err := tm.GenerateAccessToken("user-1", "sara@um6p.ma", domain.UserRoleStudent)
	require.NoError(t, err)

	_, _, err = svc.RefreshToken(context.Background(), access)
	require.ErrorIs(t, err, security.ErrWrongTokenType)
}
