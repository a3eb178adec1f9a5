package services

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/praxisapp/praxis/internal/domain/repositories"
	"github.com/praxisapp/praxis/internal/infrastructure/database/models"
)

const contractNumberAttempts = 5

// ContractService creates contracts with generated contract numbers.
type ContractService struct {
	contractRepo repositories.ContractRepository
}

func NewContractService(contractRepo repositories.ContractRepository) *ContractService {
	return &ContractService{contractRepo: contractRepo}
}

// GenerateContractNumber produces a CONT-YYYY-NNNN identifier.
func GenerateContractNumber() string {
	return fmt.Sprintf("CONT-%d-%04d", time.Now().UTC().Year(), rand.Intn(10000))
}

// Create fills in a contract number when the caller left it empty and
// retries on the rare collision against the unique index.
func (s *ContractService) Create(ctx context.Context, contract *models.Contract) error {
	if contract.ContractNumber != "" {
		return s.contractRepo.Create(ctx, contract)
	}

	var err error
	for i := 0; i < contractNumberAttempts; i++ {
		contract.ContractNumber = GenerateContractNumber()
		err = s.contractRepo.Create(ctx, contract)
		if err == nil {
			return nil
		}
		if !isDuplicateNumber(err) {
			return err
		}
	}
	return fmt.Errorf("failed to allocate contract number: %w", err)
}

func isDuplicateNumber(err error) bool {
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate")
}
