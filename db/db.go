package db

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"loanledger/config"
	"loanledger/models"
)

// Connect opens the configured store backend and migrates the schema.
func Connect(cfg config.Config) (*gorm.DB, error) {
	var dial gorm.Dialector
	switch cfg.Driver {
	case config.DriverPostgres:
		dial = postgres.Open(cfg.PostgresDSN())
	case config.DriverSQLite:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create sqlite dir: %w", err)
			}
		}
		dial = sqlite.Open(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.Driver)
	}

	db, err := gorm.Open(dial, &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	if err := Migrate(db); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Item{},
		&models.Loan{},
		&models.LoanItem{},
		&models.LoanReturn{},
	); err != nil {
		return err
	}

	// Active loans feed the returns view and the delete guard.
	if err := db.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_active_created_desc
	  ON %s (created_at DESC)
	  WHERE status = 'active';
	`, models.LoanTable, models.LoanTable)).Error; err != nil {
		return err
	}

	// Line-item lookup by item for the delete guard.
	if err := db.Exec(fmt.Sprintf(`
	  CREATE INDEX IF NOT EXISTS %s_by_item
	  ON %s (item_id);
	`, models.LoanItemTable, models.LoanItemTable)).Error; err != nil {
		return err
	}

	return nil
}
