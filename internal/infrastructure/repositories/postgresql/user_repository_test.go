package postgresql

import (
	"context"
	"testing"

	"github.com/praxisapp/praxis/internal/domain/query"
	"github.com/praxisapp/praxis/internal/domain/repositories"
	"github.com/praxisapp/praxis/internal/infrastructure/database/models"
	"github.com/praxisapp/praxis/internal/infrastructure/repositories/postgresql/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository_Create(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer db.Cleanup(t)

	repo := NewUserRepository(db.DB)
	ctx := context.Background()

	user := &models.User{
		Name:         "Ana Souza",
		Email:        "ana@praxis.example.com",
		PasswordHash: "$2a$10$hash",
		Role:         models.UserRoleUser,
	}

	err := repo.Create(ctx, user)
	require.NoError(t, err)
	assert.NotZero(t, user.ID)
}

func TestUserRepository_Create_DuplicateEmail(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer db.Cleanup(t)

	repo := NewUserRepository(db.DB)
	ctx := context.Background()

	first := &models.User{Name: "First", Email: "dup@praxis.example.com", PasswordHash: "x", Role: models.UserRoleUser}
	require.NoError(t, repo.Create(ctx, first))

	second := &models.User{Name: "Second", Email: "dup@praxis.example.com", PasswordHash: "x", Role: models.UserRoleUser}
	assert.Error(t, repo.Create(ctx, second))
}

func TestUserRepository_GetByEmail(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer db.Cleanup(t)

	repo := NewUserRepository(db.DB)
	ctx := context.Background()

	created := db.CreateTestUser(t, models.UserRoleAdmin)

	user, err := repo.GetByEmail(ctx, created.Email)
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
	assert.Equal(t, models.UserRoleAdmin, user.Role)

	_, err = repo.GetByEmail(ctx, "nobody@praxis.example.com")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestUserRepository_List_RoleFilter(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer db.Cleanup(t)

	repo := NewUserRepository(db.DB)
	ctx := context.Background()

	db.CreateTestUser(t, models.UserRoleAdmin)
	db.CreateTestUser(t, models.UserRoleUser)
	db.CreateTestUser(t, models.UserRoleUser)

	role := string(models.UserRoleUser)
	users, total, err := repo.List(ctx, repositories.UserFilters{Role: &role}, query.Page{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, users, 2)

	users, total, err = repo.List(ctx, repositories.UserFilters{}, query.Page{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, users, 3)
}

func TestUserRepository_UpdatePassword(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer db.Cleanup(t)

	repo := NewUserRepository(db.DB)
	ctx := context.Background()

	user := db.CreateTestUser(t, models.UserRoleUser)

	require.NoError(t, repo.UpdatePassword(ctx, user.ID, "$2a$10$newhash"))

	updated, err := repo.GetByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "$2a$10$newhash", updated.PasswordHash)
	assert.Equal(t, user.Name, updated.Name)
}

func TestUserRepository_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer db.Cleanup(t)

	repo := NewUserRepository(db.DB)
	ctx := context.Background()

	user := db.CreateTestUser(t, models.UserRoleUser)
	require.NoError(t, repo.Delete(ctx, user.ID))

	_, err := repo.GetByID(ctx, user.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, user.ID), repositories.ErrNotFound)
}
