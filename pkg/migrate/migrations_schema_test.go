package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/jeanmnorhen/precoreal-backend/pkg/migrate"
)

func TestRolesMigrationContainsConstraints(t *testing.T) {
	content := readMigration(t, "*_create_user_store_roles.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS user_store_roles",
		"PRIMARY KEY (user_id, store_id)",
		"CHECK (role IN ('owner', 'employee'))",
		"shifts TEXT[] NOT NULL DEFAULT '{}'",
		"DROP TABLE IF EXISTS user_store_roles",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestLocationMigrationUsesGeography(t *testing.T) {
	content := readMigration(t, "*_create_location_tables.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS user_locations",
		"CREATE TABLE IF NOT EXISTS store_locations",
		"geography(Point,4326) NOT NULL",
		"USING GIST (location)",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestOutboxMigrationIndexesUnpublished(t *testing.T) {
	content := readMigration(t, "*_create_outbox_tables.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS outbox_events",
		"WHERE published_at IS NULL",
		"CREATE TABLE IF NOT EXISTS outbox_dlq",
	}

	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestValidateDirAcceptsShippedMigrations(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q found", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}
