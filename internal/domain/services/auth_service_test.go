package services

import (
	"context"
	"testing"
	"time"

	"github.com/praxisapp/praxis/internal/infrastructure/database/models"
	"github.com/praxisapp/praxis/internal/infrastructure/repositories/postgresql"
	"github.com/praxisapp/praxis/internal/infrastructure/repositories/postgresql/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T) (*AuthService, *testutil.TestDB) {
	t.Helper()
	db := testutil.NewTestDB(t)
	repo := postgresql.NewUserRepository(db.DB)
	return NewAuthService(repo, "test-secret", time.Hour), db
}

func TestAuthService_RegisterAndLogin(t *testing.T) {
	svc, db := newAuthService(t)
	defer db.Cleanup(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterParams{
		Name:     "Ana Souza",
		Email:    "ana@praxis.example.com",
		Password: "correct horse battery",
	})
	require.NoError(t, err)
	assert.Equal(t, models.UserRoleUser, user.Role)
	assert.NotEqual(t, "correct horse battery", user.PasswordHash)

	token, loggedIn, err := svc.Login(ctx, "ana@praxis.example.com", "correct horse battery")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, user.ID, loggedIn.ID)

	_, _, err = svc.Login(ctx, "ana@praxis.example.com", "wrong password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "nobody@praxis.example.com", "whatever")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, db := newAuthService(t)
	defer db.Cleanup(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterParams{Name: "First", Email: "dup@praxis.example.com", Password: "pw12345678"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterParams{Name: "Second", Email: "dup@praxis.example.com", Password: "pw12345678"})
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestAuthService_VerifyToken(t *testing.T) {
	svc, db := newAuthService(t)
	defer db.Cleanup(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterParams{Name: "Ana", Email: "verify@praxis.example.com", Password: "pw12345678"})
	require.NoError(t, err)

	token, _, err := svc.Login(ctx, "verify@praxis.example.com", "pw12345678")
	require.NoError(t, err)

	resolved, err := svc.VerifyToken(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)

	_, err = svc.VerifyToken(ctx, token+"tampered")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_VerifyToken_DeletedUser(t *testing.T) {
	svc, db := newAuthService(t)
	defer db.Cleanup(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterParams{Name: "Gone", Email: "gone@praxis.example.com", Password: "pw12345678"})
	require.NoError(t, err)

	token, _, err := svc.Login(ctx, "gone@praxis.example.com", "pw12345678")
	require.NoError(t, err)

	repo := postgresql.NewUserRepository(db.DB)
	require.NoError(t, repo.Delete(ctx, user.ID))

	// A structurally valid token no longer maps to a user.
	_, err = svc.VerifyToken(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_VerifyToken_Expired(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer db.Cleanup(t)
	repo := postgresql.NewUserRepository(db.DB)
	svc := NewAuthService(repo, "test-secret", -time.Minute)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterParams{Name: "Ana", Email: "expired@praxis.example.com", Password: "pw12345678"})
	require.NoError(t, err)

	token, err := svc.IssueToken(user)
	require.NoError(t, err)

	_, err = svc.VerifyToken(ctx, token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_ChangePassword(t *testing.T) {
	svc, db := newAuthService(t)
	defer db.Cleanup(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterParams{Name: "Ana", Email: "pw@praxis.example.com", Password: "old password"})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.ChangePassword(ctx, user.ID, "not the old one", "new password"), ErrWrongPassword)

	require.NoError(t, svc.ChangePassword(ctx, user.ID, "old password", "new password"))

	_, _, err = svc.Login(ctx, "pw@praxis.example.com", "old password")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, "pw@praxis.example.com", "new password")
	assert.NoError(t, err)
}
