package dbtest

import (
	"context"
	"fmt"
	"os"

	"github.com/jmoiron/sqlx"
)

// MigrateFromFile applies the SQL files in order using a background context.
func MigrateFromFile(db *sqlx.DB, fileNames ...string) error {
	return MigrateFromFileContext(context.Background(), db, fileNames...)
}

// MigrateFromFileContext applies each file as one multi-statement Exec and
// stops at the first failure.
func MigrateFromFileContext(ctx context.Context, db *sqlx.DB, fileNames ...string) error {
	for _, fileName := range fileNames {
		script, err := os.ReadFile(fileName)
		if err != nil {
			return fmt.Errorf("read %s: %w", fileName, err)
		}

		if _, err = db.ExecContext(ctx, string(script)); err != nil {
			return fmt.Errorf("apply %s: %w", fileName, err)
		}
	}

	return nil
}
