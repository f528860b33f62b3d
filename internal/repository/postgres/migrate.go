package postgres

import (
	"context"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	migrationTable = "schema_migrations"
	// migrationLockID ключ advisory lock, чтобы несколько инстансов не применяли миграции одновременно
	migrationLockID = 7_482_001
)

// Migrate применяет *.up.sql файлы из migrationFS в лексикографическом порядке.
// Каждый файл применяется не более одного раза и в собственной транзакции
func Migrate(ctx context.Context, db *pgxpool.Pool, migrationFS fs.FS) (int, error) {
	entries, err := fs.ReadDir(migrationFS, ".")
	if err != nil {
		return 0, fmt.Errorf("read migrations dir: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".up.sql") {
			files = append(files, entry.Name())
		}
	}
	sort.Strings(files)

	createSQL := fmt.Sprintf(`
		CREATE TABLE IF NOT EXISTS %s (
			name       TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`, migrationTable)
	if _, err := db.Exec(ctx, createSQL); err != nil {
		return 0, fmt.Errorf("ensure migration table: %w", err)
	}

	applied := 0
	for _, file := range files {
		content, err := fs.ReadFile(migrationFS, file)
		if err != nil {
			return applied, fmt.Errorf("read migration %s: %w", file, err)
		}

		ok, err := applyMigration(ctx, db, file, string(content))
		if err != nil {
			return applied, fmt.Errorf("apply migration %s: %w", file, err)
		}
		if ok {
			applied++
		}
	}

	return applied, nil
}

// applyMigration возвращает false, если миграция уже была применена
func applyMigration(ctx context.Context, db *pgxpool.Pool, name, upSQL string) (bool, error) {
	tx, err := db.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer func() {
		_ = tx.Rollback(ctx)
	}()

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, migrationLockID); err != nil {
		return false, fmt.Errorf("acquire lock: %w", err)
	}

	var exists bool
	checkSQL := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE name = $1)`, migrationTable)
	if err := tx.QueryRow(ctx, checkSQL, name).Scan(&exists); err != nil {
		return false, fmt.Errorf("check applied: %w", err)
	}
	if exists {
		return false, nil
	}

	// Без аргументов pgx отправляет запрос простым протоколом, поэтому допустимо несколько выражений
	if _, err := tx.Exec(ctx, upSQL); err != nil {
		return false, err
	}

	recordSQL := fmt.Sprintf(`INSERT INTO %s (name) VALUES ($1)`, migrationTable)
	if _, err := tx.Exec(ctx, recordSQL, name); err != nil {
		return false, fmt.Errorf("record migration: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}

	return true, nil
}
