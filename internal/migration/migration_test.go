package migration

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"

	_ "modernc.org/sqlite"
)

func openDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func mapFS(files map[string]string) fstest.MapFS {
	m := fstest.MapFS{}
	for name, body := range files {
		m[name] = &fstest.MapFile{Data: []byte(body)}
	}
	return m
}

func TestApplyAndCurrentVersion(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	r := NewRunner(db, mapFS(map[string]string{
		"001_init.sql": "CREATE TABLE a (id INTEGER);",
		"002_more.sql": "CREATE TABLE b (id INTEGER);",
		"README.md":    "ignored",
	}))

	v, err := r.CurrentVersion(ctx)
	if err != nil || v != 0 {
		t.Fatalf("CurrentVersion() = %d, %v; want 0, nil", v, err)
	}

	n, err := r.Apply(ctx, nil)
	if err != nil {
		t.Fatalf("Apply() failed: %v", err)
	}
	if n != 2 {
		t.Errorf("Apply() applied %d, want 2", n)
	}
	if v, _ := r.CurrentVersion(ctx); v != 2 {
		t.Errorf("CurrentVersion() = %d, want 2", v)
	}
	if err := r.Validate(ctx); err != nil {
		t.Errorf("Validate() = %v", err)
	}

	// second run is a no-op
	n, err = r.Apply(ctx, nil)
	if err != nil || n != 0 {
		t.Errorf("second Apply() = %d, %v; want 0, nil", n, err)
	}
}

func TestMigrationsOrderingAndErrors(t *testing.T) {
	tests := []struct {
		name    string
		files   map[string]string
		wantErr string
		want    []int
	}{
		{
			name:  "sorted by version",
			files: map[string]string{"010_c.sql": "", "002_b.sql": "", "001_a.sql": ""},
			want:  []int{1, 2, 10},
		},
		{
			name:    "duplicate version",
			files:   map[string]string{"001_a.sql": "", "001_b.sql": ""},
			wantErr: "duplicate migration version",
		},
		{
			name:    "missing underscore",
			files:   map[string]string{"001.sql": ""},
			wantErr: "invalid migration filename",
		},
		{
			name:    "zero version",
			files:   map[string]string{"000_a.sql": ""},
			wantErr: "invalid version number",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ms, err := NewRunner(nil, mapFS(tt.files)).Migrations()
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("Migrations() error = %v, want containing %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Migrations() failed: %v", err)
			}
			if len(ms) != len(tt.want) {
				t.Fatalf("got %d migrations, want %d", len(ms), len(tt.want))
			}
			for i, v := range tt.want {
				if ms[i].Version != v {
					t.Errorf("ms[%d].Version = %d, want %d", i, ms[i].Version, v)
				}
			}
		})
	}
}

func TestApplyRollsBackFailedMigration(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	r := NewRunner(db, mapFS(map[string]string{
		"001_ok.sql":  "CREATE TABLE a (id INTEGER);",
		"002_bad.sql": "CREATE TABLE broken (",
	}))

	n, err := r.Apply(ctx, nil)
	if err == nil {
		t.Fatal("Apply() should fail on invalid SQL")
	}
	if n != 1 {
		t.Errorf("Apply() applied %d before failing, want 1", n)
	}
	if v, _ := r.CurrentVersion(ctx); v != 1 {
		t.Errorf("CurrentVersion() = %d, want 1", v)
	}
	if err := r.Validate(ctx); !errors.Is(err, ErrSchemaMismatch) || !strings.Contains(err.Error(), "outdated") {
		t.Errorf("Validate() = %v, want outdated error", err)
	}
}

func TestNewerDatabaseIsRejected(t *testing.T) {
	ctx := context.Background()
	db := openDB(t)
	r := NewRunner(db, mapFS(map[string]string{"001_a.sql": "CREATE TABLE a (id INTEGER);"}))
	if _, err := r.Apply(ctx, nil); err != nil {
		t.Fatal(err)
	}
	if _, err := db.Exec("UPDATE schema_version SET version = 9"); err != nil {
		t.Fatal(err)
	}
	if _, err := r.Apply(ctx, nil); err == nil || !strings.Contains(err.Error(), "newer") {
		t.Errorf("Apply() = %v, want newer-version error", err)
	}
}
