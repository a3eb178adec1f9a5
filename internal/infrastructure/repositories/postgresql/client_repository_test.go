package postgresql

import (
	"context"
	"fmt"
	"testing"

	"github.com/praxisapp/praxis/internal/domain/query"
	"github.com/praxisapp/praxis/internal/domain/repositories"
	"github.com/praxisapp/praxis/internal/infrastructure/database/models"
	"github.com/praxisapp/praxis/internal/infrastructure/repositories/postgresql/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestClientRepository_Create(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer db.Cleanup(t)

	repo := NewClientRepository(db.DB)
	ctx := context.Background()

	owner := db.CreateTestUser(t, models.UserRoleUser)

	client := &models.Client{
		Name:      "Acme Ltd",
		Email:     "billing@acme.example.com",
		Status:    models.ClientActive,
		CreatedBy: &owner.ID,
	}

	err := repo.Create(ctx, client)
	require.NoError(t, err)
	assert.NotZero(t, client.ID)
	assert.NotZero(t, client.CreatedAt)
}

func TestClientRepository_GetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer db.Cleanup(t)

	repo := NewClientRepository(db.DB)
	ctx := context.Background()

	owner := db.CreateTestUser(t, models.UserRoleUser)
	created := db.CreateTestClient(t, owner)

	client, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Name, client.Name)
	require.NotNil(t, client.Creator)
	assert.Equal(t, owner.Name, client.Creator.Name)
}

func TestClientRepository_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer db.Cleanup(t)

	repo := NewClientRepository(db.DB)

	_, err := repo.GetByID(context.Background(), 999999)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}

func TestClientRepository_List_CountMatchesFilters(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer db.Cleanup(t)

	repo := NewClientRepository(db.DB)
	ctx := context.Background()

	owner := db.CreateTestUser(t, models.UserRoleUser)
	for i := 0; i < 3; i++ {
		db.CreateTestClient(t, owner)
	}
	inactive := db.CreateTestClient(t, owner)
	inactive.Status = models.ClientInactive
	require.NoError(t, repo.Update(ctx, inactive))

	status := string(models.ClientActive)
	clients, total, err := repo.List(ctx, repositories.ClientFilters{Status: &status}, query.Page{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, clients, 3)
	for _, c := range clients {
		assert.Equal(t, models.ClientActive, c.Status)
	}
}

func TestClientRepository_List_Search(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer db.Cleanup(t)

	repo := NewClientRepository(db.DB)
	ctx := context.Background()

	owner := db.CreateTestUser(t, models.UserRoleUser)
	db.CreateTestClient(t, owner)

	acme := &models.Client{
		Name:      "Acme Industries",
		Email:     "contact@other-domain.example.com",
		Status:    models.ClientActive,
		CreatedBy: &owner.ID,
	}
	require.NoError(t, repo.Create(ctx, acme))

	byEmail := &models.Client{
		Name:      "Globex",
		Email:     "team@acme-partners.example.com",
		Status:    models.ClientActive,
		CreatedBy: &owner.ID,
	}
	require.NoError(t, repo.Create(ctx, byEmail))

	// Contains match regardless of case, OR-combined across name and email.
	clients, total, err := repo.List(ctx, repositories.ClientFilters{Search: strPtr("ACME")}, query.Page{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, clients, 2)

	names := []string{clients[0].Name, clients[1].Name}
	assert.Contains(t, names, "Acme Industries")
	assert.Contains(t, names, "Globex")
}

func TestClientRepository_List_SearchCombinesWithStatus(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer db.Cleanup(t)

	repo := NewClientRepository(db.DB)
	ctx := context.Background()

	owner := db.CreateTestUser(t, models.UserRoleUser)

	active := &models.Client{
		Name:      "Acme Industries",
		Email:     "contact@other-domain.example.com",
		Status:    models.ClientActive,
		CreatedBy: &owner.ID,
	}
	require.NoError(t, repo.Create(ctx, active))

	inactive := &models.Client{
		Name:      "Globex",
		Email:     "team@acme-partners.example.com",
		Status:    models.ClientInactive,
		CreatedBy: &owner.ID,
	}
	require.NoError(t, repo.Create(ctx, inactive))

	// Both rows match the search term, but the OR across name and email must
	// stay grouped so the status filter still narrows the result.
	status := string(models.ClientActive)
	clients, total, err := repo.List(ctx,
		repositories.ClientFilters{Search: strPtr("acme"), Status: &status},
		query.Page{Page: 1, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, clients, 1)
	assert.Equal(t, "Acme Industries", clients[0].Name)
}

func TestClientRepository_List_Pagination(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer db.Cleanup(t)

	repo := NewClientRepository(db.DB)
	ctx := context.Background()

	owner := db.CreateTestUser(t, models.UserRoleUser)
	for i := 0; i < 15; i++ {
		client := &models.Client{
			Name:      fmt.Sprintf("Client %02d", i),
			Status:    models.ClientActive,
			CreatedBy: &owner.ID,
		}
		require.NoError(t, repo.Create(ctx, client))
	}

	page := query.ParsePage("2", "10")
	clients, total, err := repo.List(ctx, repositories.ClientFilters{}, page)
	require.NoError(t, err)
	assert.Equal(t, int64(15), total)
	assert.Len(t, clients, 5)
	assert.Equal(t, 2, page.Pages(total))

	// Fixed sort: the second page continues where the first left off.
	first, _, err := repo.List(ctx, repositories.ClientFilters{}, query.Page{Page: 1, Limit: 10})
	require.NoError(t, err)
	require.Len(t, first, 10)
	assert.Equal(t, "Client 10", clients[0].Name)
	assert.Equal(t, "Client 09", first[9].Name)
}

func TestClientRepository_List_EmptyFilterEqualsOmitted(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer db.Cleanup(t)

	repo := NewClientRepository(db.DB)
	ctx := context.Background()

	owner := db.CreateTestUser(t, models.UserRoleUser)
	db.CreateTestClient(t, owner)
	inactive := db.CreateTestClient(t, owner)
	inactive.Status = models.ClientInactive
	require.NoError(t, repo.Update(ctx, inactive))

	// An empty query value parses to a nil filter and must behave exactly
	// like not sending the parameter at all.
	fromEmpty := repositories.ClientFilters{Status: query.String(""), Search: query.String("")}
	omitted := repositories.ClientFilters{}

	a, aTotal, err := repo.List(ctx, fromEmpty, query.Page{Page: 1, Limit: 10})
	require.NoError(t, err)
	b, bTotal, err := repo.List(ctx, omitted, query.Page{Page: 1, Limit: 10})
	require.NoError(t, err)

	assert.Equal(t, bTotal, aTotal)
	assert.Equal(t, int64(2), aTotal)
	assert.Equal(t, len(b), len(a))
}

func TestClientRepository_Update(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer db.Cleanup(t)

	repo := NewClientRepository(db.DB)
	ctx := context.Background()

	owner := db.CreateTestUser(t, models.UserRoleUser)
	client := db.CreateTestClient(t, owner)

	client.Notes = "Prefers contact by phone"
	client.Status = models.ClientInactive
	require.NoError(t, repo.Update(ctx, client))

	updated, err := repo.GetByID(ctx, client.ID)
	require.NoError(t, err)
	assert.Equal(t, "Prefers contact by phone", updated.Notes)
	assert.Equal(t, models.ClientInactive, updated.Status)
}

func TestClientRepository_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer db.Cleanup(t)

	repo := NewClientRepository(db.DB)
	ctx := context.Background()

	owner := db.CreateTestUser(t, models.UserRoleUser)
	client := db.CreateTestClient(t, owner)

	require.NoError(t, repo.Delete(ctx, client.ID))

	_, err := repo.GetByID(ctx, client.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, client.ID), repositories.ErrNotFound)
}

func TestClientRepository_SubResources(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer db.Cleanup(t)

	repo := NewClientRepository(db.DB)
	ctx := context.Background()

	owner := db.CreateTestUser(t, models.UserRoleUser)
	client := db.CreateTestClient(t, owner)
	other := db.CreateTestClient(t, owner)

	db.CreateTestDocument(t, client, owner)
	db.CreateTestDocument(t, client, owner)
	db.CreateTestDocument(t, other, owner)
	db.CreateTestProject(t, client, owner)

	documents, err := repo.Documents(ctx, client.ID)
	require.NoError(t, err)
	assert.Len(t, documents, 2)

	projects, err := repo.Projects(ctx, client.ID)
	require.NoError(t, err)
	assert.Len(t, projects, 1)

	contracts, err := repo.Contracts(ctx, client.ID)
	require.NoError(t, err)
	assert.Empty(t, contracts)
}
