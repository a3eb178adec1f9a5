package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/praxisapp/praxis/internal/domain/repositories"
	"github.com/praxisapp/praxis/pkg/logger"
)

// ExpiryWindow is how far ahead the contract expiry scan looks.
const ExpiryWindow = 30 * 24 * time.Hour

// AlertService runs the periodic scans behind the notification worker:
// contracts approaching their end date and tasks past due.
type AlertService struct {
	contractRepo repositories.ContractRepository
	taskRepo     repositories.TaskRepository
	mailer       Mailer
	recipients   []string
	logger       *logger.Logger
}

func NewAlertService(
	contractRepo repositories.ContractRepository,
	taskRepo repositories.TaskRepository,
	mailer Mailer,
	recipients []string,
	logger *logger.Logger,
) *AlertService {
	return &AlertService{
		contractRepo: contractRepo,
		taskRepo:     taskRepo,
		mailer:       mailer,
		recipients:   recipients,
		logger:       logger,
	}
}

// Run executes both scans. Scan failures are reported; an empty result
// sends no mail.
func (s *AlertService) Run(ctx context.Context) error {
	if err := s.scanExpiringContracts(ctx); err != nil {
		return err
	}
	return s.scanOverdueTasks(ctx)
}

func (s *AlertService) scanExpiringContracts(ctx context.Context) error {
	contracts, err := s.contractRepo.ExpiringWithin(ctx, ExpiryWindow)
	if err != nil {
		return fmt.Errorf("expiring contract scan failed: %w", err)
	}
	if len(contracts) == 0 {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d contract(s) end within the next 30 days:\n\n", len(contracts))
	for _, c := range contracts {
		clientName := ""
		if c.Client != nil {
			clientName = c.Client.Name
		}
		fmt.Fprintf(&b, "- %s (%s, client: %s), ends %s\n",
			c.Title, c.ContractNumber, clientName, c.EndDate.Format("2006-01-02"))
	}

	s.logger.Info("expiring contracts found", "count", len(contracts))
	return s.send(ctx, "Contracts expiring soon", b.String())
}

func (s *AlertService) scanOverdueTasks(ctx context.Context) error {
	tasks, err := s.taskRepo.Overdue(ctx)
	if err != nil {
		return fmt.Errorf("overdue task scan failed: %w", err)
	}
	if len(tasks) == 0 {
		return nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%d task(s) are past their due date:\n\n", len(tasks))
	for _, task := range tasks {
		projectName := ""
		if task.Project != nil {
			projectName = task.Project.Name
		}
		fmt.Fprintf(&b, "- %s (project: %s), due %s\n",
			task.Title, projectName, task.DueDate.Format("2006-01-02"))
	}

	s.logger.Info("overdue tasks found", "count", len(tasks))
	return s.send(ctx, "Overdue tasks", b.String())
}

func (s *AlertService) send(ctx context.Context, subject, body string) error {
	if s.mailer == nil || len(s.recipients) == 0 {
		s.logger.Warn("no mailer configured, skipping alert", "subject", subject)
		return nil
	}
	if err := s.mailer.Send(ctx, s.recipients, subject, body); err != nil {
		return fmt.Errorf("failed to send alert mail: %w", err)
	}
	return nil
}
