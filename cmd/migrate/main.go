// CLI tool to run pending database migrations from db/.
// Checks the migrations table to skip already-applied files.
// Wraps each migration + record insert in a single transaction.
// Usage: go run ./cmd/migrate [-dir db] [-dry-run]
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var migrationPrefix = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}-\d{3}-`)

func main() {
	dir := flag.String("dir", "db", "directory containing *.sql migrations")
	dryRun := flag.Bool("dry-run", false, "list pending migrations without applying them")
	flag.Parse()

	log, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Unable to build logger: %v\n", err)
		os.Exit(1)
	}

	if err := godotenv.Load(); err != nil {
		log.Warn("no .env file found, using process environment")
	}

	if err := migrate(context.Background(), log, os.Getenv("DB_URL"), *dir, *dryRun); err != nil {
		log.Error("migration failed", zap.Error(err))
		log.Sync()
		os.Exit(1)
	}
	log.Sync()
}

func migrate(ctx context.Context, log *zap.Logger, dbURL, dir string, dryRun bool) error {
	conn, err := pgx.Connect(ctx, dbURL)
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer conn.Close(ctx)

	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil || len(files) == 0 {
		return fmt.Errorf("no migration files found in %s", dir)
	}
	sort.Strings(files)

	// The migrations table may not exist yet on a fresh database.
	applied := make(map[string]bool)
	if rows, err := conn.Query(ctx, "SELECT migration FROM migrations"); err == nil {
		names, err := pgx.CollectRows(rows, pgx.RowTo[string])
		if err != nil {
			return fmt.Errorf("read applied migrations: %w", err)
		}
		for _, n := range names {
			applied[n] = true
		}
	}

	ran := 0
	for _, f := range files {
		filename := filepath.Base(f)
		if applied[filename] {
			log.Debug("skip", zap.String("migration", filename))
			continue
		}
		if dryRun {
			log.Info("pending", zap.String("migration", filename))
			continue
		}

		content, err := os.ReadFile(f)
		if err != nil {
			return fmt.Errorf("read %s: %w", filename, err)
		}
		if err := applyOne(ctx, conn, filename, string(content)); err != nil {
			return err
		}
		log.Info("applied", zap.String("migration", filename))
		ran++
	}

	log.Info("migrations done", zap.Int("applied", ran))
	return nil
}

func applyOne(ctx context.Context, conn *pgx.Conn, filename, sql string) error {
	tx, err := conn.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, sql); err != nil {
		return fmt.Errorf("run %s: %w", filename, err)
	}
	if _, err := tx.Exec(ctx,
		"INSERT INTO migrations (migration, description) VALUES ($1, $2)",
		filename, descriptionFromFilename(filename)); err != nil {
		return fmt.Errorf("record %s: %w", filename, err)
	}
	return tx.Commit(ctx)
}

// descriptionFromFilename strips the YYYY-MM-DD-NNN- prefix and .sql suffix.
func descriptionFromFilename(filename string) string {
	name := strings.TrimSuffix(filename, ".sql")
	name = migrationPrefix.ReplaceAllString(name, "")
	return strings.ReplaceAll(name, "-", " ")
}
