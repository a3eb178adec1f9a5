package services

import (
	"context"
	"regexp"
	"testing"

	"github.com/praxisapp/praxis/internal/infrastructure/database/models"
	"github.com/praxisapp/praxis/internal/infrastructure/repositories/postgresql"
	"github.com/praxisapp/praxis/internal/infrastructure/repositories/postgresql/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var contractNumberPattern = regexp.MustCompile(`^CONT-\d{4}-\d{4}$`)

func TestGenerateContractNumber_Format(t *testing.T) {
	for i := 0; i < 20; i++ {
		assert.Regexp(t, contractNumberPattern, GenerateContractNumber())
	}
}

func TestContractService_Create_FillsNumber(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer db.Cleanup(t)

	svc := NewContractService(postgresql.NewContractRepository(db.DB))
	ctx := context.Background()

	owner := db.CreateTestUser(t, models.UserRoleUser)
	client := db.CreateTestClient(t, owner)

	contract := &models.Contract{Title: "Retainer", ClientID: client.ID, Status: models.ContractDraft}
	require.NoError(t, svc.Create(ctx, contract))
	assert.Regexp(t, contractNumberPattern, contract.ContractNumber)
}

func TestContractService_Create_KeepsExplicitNumber(t *testing.T) {
	db := testutil.NewTestDB(t)
	defer db.Cleanup(t)

	svc := NewContractService(postgresql.NewContractRepository(db.DB))
	ctx := context.Background()

	owner := db.CreateTestUser(t, models.UserRoleUser)
	client := db.CreateTestClient(t, owner)

	contract := &models.Contract{
		Title:          "Migrated contract",
		ContractNumber: "CONT-2019-0001",
		ClientID:       client.ID,
		Status:         models.ContractActive,
	}
	require.NoError(t, svc.Create(ctx, contract))
	assert.Equal(t, "CONT-2019-0001", contract.ContractNumber)
}
