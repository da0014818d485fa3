package startup

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestRegistryRunAll(t *testing.T) {
	var order []string
	registry := NewRegistry()
	registry.Register("first", func(ctx context.Context) error {
		order = append(order, "first")
		return nil
	})
	registry.Register("second", func(ctx context.Context) error {
		order = append(order, "second")
		return errors.New("boom")
	})
	registry.Register("third", func(ctx context.Context) error {
		order = append(order, "third")
		return nil
	})

	err := registry.RunAll(context.Background())
	if err == nil {
		t.Fatal("expected the second task to fail")
	}
	if len(order) != 2 || order[0] != "first" || order[1] != "second" {
		t.Errorf("unexpected run order %v", order)
	}
}

func TestRegistryRunAllCompletes(t *testing.T) {
	ran := 0
	registry := NewRegistry()
	for i := 0; i < 3; i++ {
		registry.Register("task", func(ctx context.Context) error {
			ran++
			return nil
		})
	}
	if err := registry.RunAll(context.Background()); err != nil {
		t.Fatalf("RunAll: %v", err)
	}
	if ran != 3 {
		t.Errorf("expected 3 tasks to run, got %d", ran)
	}
}

func TestDiscoverMigrations(t *testing.T) {
	dir := t.TempDir()
	files := map[string]string{
		"010_add_index.sql":     "CREATE INDEX x ON y (z);",
		"002_registrations.sql": "CREATE TABLE registrations ();",
		"001_create_tables.sql": "CREATE TABLE users ();",
		"notes.txt":             "ignored",
		"draft_without_seq.sql": "ignored",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}

	migrations, err := discoverMigrations(dir)
	if err != nil {
		t.Fatalf("discoverMigrations: %v", err)
	}

	want := []string{"001_create_tables.sql", "002_registrations.sql", "010_add_index.sql"}
	if len(migrations) != len(want) {
		t.Fatalf("expected %d migrations, got %d", len(want), len(migrations))
	}
	for i, name := range want {
		if migrations[i].Filename != name {
			t.Errorf("migrations[%d] = %s, want %s", i, migrations[i].Filename, name)
		}
	}
	if migrations[0].Content != "CREATE TABLE users ();" {
		t.Errorf("unexpected content %q", migrations[0].Content)
	}
}

func TestPendingMigrations(t *testing.T) {
	migrations := []Migration{{Filename: "001_a.sql"}, {Filename: "002_b.sql"}, {Filename: "003_c.sql"}}
	pending := pendingMigrations(migrations, map[string]bool{"001_a.sql": true, "003_c.sql": true})
	if len(pending) != 1 || pending[0].Filename != "002_b.sql" {
		t.Errorf("unexpected pending migrations %+v", pending)
	}
}

func TestMigratorSkipsMissingDir(t *testing.T) {
	m := NewMigrator("host=localhost", filepath.Join(t.TempDir(), "missing"))
	if err := m.Run(context.Background()); err != nil {
		t.Errorf("expected missing dir to be a no-op, got %v", err)
	}
}

func TestRepositoryMigrationsAreDiscoverable(t *testing.T) {
	migrations, err := discoverMigrations(filepath.Join("..", "..", "..", "migrations"))
	if err != nil {
		t.Fatalf("discoverMigrations: %v", err)
	}
	if len(migrations) < 2 {
		t.Fatalf("expected repository migrations, got %d", len(migrations))
	}
	if migrations[0].Sequence != 1 {
		t.Errorf("expected first migration to be 001, got %d", migrations[0].Sequence)
	}
}
