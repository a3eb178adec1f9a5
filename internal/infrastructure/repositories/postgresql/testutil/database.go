package testutil

import (
	"fmt"
	"os"
	"sync/atomic"
	"testing"

	"github.com/praxisapp/praxis/internal/infrastructure/database"
	"github.com/praxisapp/praxis/internal/infrastructure/database/models"
)

var dbSeq atomic.Int64

// TestDB wraps the database for testing.
type TestDB struct {
	*database.DB
}

// NewTestDB connects to DATABASE_URL_TEST when set, otherwise to a private
// SQLite in-memory database, and migrates the schema.
func NewTestDB(t *testing.T) *TestDB {
	t.Helper()

	databaseURL := os.Getenv("DATABASE_URL_TEST")
	if databaseURL == "" {
		databaseURL = fmt.Sprintf("file:praxistest%d?mode=memory&cache=shared", dbSeq.Add(1))
	}

	db, err := database.New(databaseURL)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	if err := db.AutoMigrate(models.GetAllModels()...); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}

	return &TestDB{DB: db}
}

// Cleanup closes the test database.
func (db *TestDB) Cleanup(t *testing.T) {
	t.Helper()
	if err := db.Close(); err != nil {
		t.Errorf("Failed to close test database: %v", err)
	}
}

// CreateTestUser inserts a user with a unique email.
func (db *TestDB) CreateTestUser(t *testing.T, role models.UserRole) *models.User {
	t.Helper()

	n := dbSeq.Add(1)
	user := &models.User{
		Name:         fmt.Sprintf("Test User %d", n),
		Email:        fmt.Sprintf("user-%d@example.com", n),
		PasswordHash: "$2a$10$not.a.real.hash.for.tests",
		Role:         role,
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

// CreateTestClient inserts a client owned by the given user.
func (db *TestDB) CreateTestClient(t *testing.T, owner *models.User) *models.Client {
	t.Helper()

	n := dbSeq.Add(1)
	client := &models.Client{
		Name:          fmt.Sprintf("Client %d", n),
		Email:         fmt.Sprintf("client-%d@example.com", n),
		TaxID:         fmt.Sprintf("00.000.%03d/0001-00", n%1000),
		ContactPerson: "Contact Person",
		Status:        models.ClientActive,
		CreatedBy:     &owner.ID,
	}
	if err := db.Create(client).Error; err != nil {
		t.Fatalf("Failed to create test client: %v", err)
	}
	return client
}

// CreateTestProject inserts a project for the given client.
func (db *TestDB) CreateTestProject(t *testing.T, client *models.Client, manager *models.User) *models.Project {
	t.Helper()

	n := dbSeq.Add(1)
	project := &models.Project{
		Name:      fmt.Sprintf("Project %d", n),
		ClientID:  client.ID,
		Status:    models.ProjectPlanning,
		ManagerID: &manager.ID,
	}
	if err := db.Create(project).Error; err != nil {
		t.Fatalf("Failed to create test project: %v", err)
	}
	return project
}

// CreateTestDocument inserts an active document for the given client.
func (db *TestDB) CreateTestDocument(t *testing.T, client *models.Client, uploader *models.User) *models.Document {
	t.Helper()

	n := dbSeq.Add(1)
	document := &models.Document{
		Title:      fmt.Sprintf("Document %d", n),
		FilePath:   fmt.Sprintf("documents/doc-%d.pdf", n),
		FileType:   "application/pdf",
		FileSize:   1024,
		Category:   models.DocCategoryOther,
		Status:     models.DocStatusActive,
		ClientID:   &client.ID,
		UploadedBy: &uploader.ID,
	}
	if err := db.Create(document).Error; err != nil {
		t.Fatalf("Failed to create test document: %v", err)
	}
	return document
}
