package main

import (
	"fmt"
	"os"

	"github.com/praxisapp/praxis/internal/app/config"
	"github.com/praxisapp/praxis/internal/infrastructure/database"
	"github.com/praxisapp/praxis/internal/infrastructure/database/models"
	"github.com/praxisapp/praxis/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		return
	}

	command := os.Args[1]
	log := logger.New()

	cfg, err := config.Load()
	if err != nil {
		log.Error("Failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.GetDatabaseURL())
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	switch command {
	case "up":
		runMigrations(db, log)
	case "drop":
		dropTables(db, log)
	case "status":
		migrationStatus(db, log)
	default:
		log.Error("Unknown command", "command", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println("Usage: migrate <command>")
	fmt.Println("")
	fmt.Println("Commands:")
	fmt.Println("  up      - Create or update the schema")
	fmt.Println("  drop    - Drop all application tables")
	fmt.Println("  status  - Report which tables exist")
}

func runMigrations(db *database.DB, log *logger.Logger) {
	log.Info("Running migrations...")
	if err := db.AutoMigrate(models.GetAllModels()...); err != nil {
		log.Error("Migration failed", "error", err)
		os.Exit(1)
	}
	log.Info("Migrations complete")
}

func dropTables(db *database.DB, log *logger.Logger) {
	log.Info("Dropping tables...")
	migrator := db.Migrator()
	all := models.GetAllModels()
	// Children first so foreign keys do not block the drop.
	for i := len(all) - 1; i >= 0; i-- {
		if err := migrator.DropTable(all[i]); err != nil {
			log.Error("Failed to drop table", "model", fmt.Sprintf("%T", all[i]), "error", err)
			os.Exit(1)
		}
	}
	log.Info("All tables dropped")
}

func migrationStatus(db *database.DB, log *logger.Logger) {
	migrator := db.Migrator()
	for _, model := range models.GetAllModels() {
		fmt.Printf("%-40T %v\n", model, migrator.HasTable(model))
	}
}
