package app

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"go-erp/internal/payment"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrate creates the gateway's own tables: the payment saga journal and the
// outbox the relay worker drains. Every statement is idempotent.
func Migrate(db *gorm.DB, logger *zap.Logger) error {
	if err := db.AutoMigrate(&payment.Saga{}); err != nil {
		return fmt.Errorf("migrate payment_sagas: %w", err)
	}

	files, err := fs.Glob(migrations, "migrations/*.sql")
	if err != nil {
		return err
	}
	sort.Strings(files)

	for _, name := range files {
		stmt, err := migrations.ReadFile(name)
		if err != nil {
			return err
		}
		if err := db.Exec(string(stmt)).Error; err != nil {
			return fmt.Errorf("migration %s: %w", name, err)
		}
		logger.Debug("migration applied", zap.String("file", name))
	}
	return nil
}
