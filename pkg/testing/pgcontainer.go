package testing

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

const pgImage = "postgres:17.5"

type PGContainer struct {
	Container  testcontainers.Container
	ConnString string
}

type PGConfig struct {
	Database string
	Username string
	Password string
	// ApplyMigrations runs every db/migrations/*.up.sql as an init script.
	ApplyMigrations bool
}

func NewPGContainer(ctx context.Context, cfg PGConfig) (*PGContainer, error) {
	return createPGContainer(ctx, cfg)
}

// NewPGContainerWithCleanup starts a migrated database that is terminated
// when tb finishes.
func NewPGContainerWithCleanup(ctx context.Context, tb testing.TB) *PGContainer {
	tb.Helper()

	container, err := createPGContainer(ctx, PGConfig{
		Database:        "callbench_test",
		Username:        "test",
		Password:        "test",
		ApplyMigrations: true,
	})
	if err != nil {
		tb.Fatalf("failed to create postgres container: %v", err)
	}

	tb.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container.Container); err != nil {
			tb.Logf("failed to terminate postgres container: %v", err)
		}
	})

	return container
}

func createPGContainer(ctx context.Context, cfg PGConfig) (*PGContainer, error) {
	opts := []testcontainers.ContainerCustomizer{
		postgres.WithDatabase(cfg.Database),
		postgres.WithUsername(cfg.Username),
		postgres.WithPassword(cfg.Password),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30 * time.Second),
		),
	}

	if cfg.ApplyMigrations {
		script, err := migrationScript()
		if err != nil {
			return nil, err
		}
		defer os.Remove(script)
		opts = append(opts, postgres.WithInitScripts(script))
	}

	pgContainer, err := postgres.Run(ctx, pgImage, opts...)
	if err != nil {
		return nil, fmt.Errorf("start postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, fmt.Errorf("get connection string: %w", err)
	}

	return &PGContainer{
		Container:  pgContainer,
		ConnString: connStr,
	}, nil
}

// migrationScript concatenates the up migrations into one temp file.
func migrationScript() (string, error) {
	_, b, _, _ := runtime.Caller(0)
	migrationsDir := filepath.Join(filepath.Dir(b), "..", "..", "db", "migrations")

	files, err := filepath.Glob(filepath.Join(migrationsDir, "*.up.sql"))
	if err != nil {
		return "", fmt.Errorf("find migration files: %w", err)
	}
	if len(files) == 0 {
		return "", fmt.Errorf("no migrations in %s", migrationsDir)
	}
	sort.Strings(files)

	var initScript strings.Builder
	for _, f := range files {
		content, err := os.ReadFile(f)
		if err != nil {
			return "", fmt.Errorf("read migration file %s: %w", f, err)
		}
		initScript.Write(content)
		initScript.WriteString(";\n\n")
	}

	tmpFile, err := os.CreateTemp("", "migrations-*.sql")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	if _, err := tmpFile.WriteString(initScript.String()); err != nil {
		_ = tmpFile.Close()
		return "", fmt.Errorf("write migrations: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return "", fmt.Errorf("close temp file: %w", err)
	}
	return tmpFile.Name(), nil
}
