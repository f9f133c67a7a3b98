package database

import (
	"strings"
	"testing"
)

func TestDialects(t *testing.T) {
	tests := []struct {
		name           string
		dialect        Dialect
		driver         string
		lastInsertID   bool
		migrationsDir  string
		upsertContains string
	}{
		{"sqlite", NewSQLiteDialect(), "sqlite3", true, "sqlite", "ON CONFLICT(uid)"},
		{"postgres", NewPostgresDialect(), "postgres", false, "postgres", "ON CONFLICT (uid)"},
		{"mysql", NewMySQLDialect(), "mysql", true, "mysql", "ON DUPLICATE KEY UPDATE"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.dialect.DriverName(); got != tt.driver {
				t.Errorf("DriverName() = %v, want %v", got, tt.driver)
			}
			if got := tt.dialect.SupportsLastInsertId(); got != tt.lastInsertID {
				t.Errorf("SupportsLastInsertId() = %v, want %v", got, tt.lastInsertID)
			}
			if got := tt.dialect.MigrationsSubdir(); got != tt.migrationsDir {
				t.Errorf("MigrationsSubdir() = %v, want %v", got, tt.migrationsDir)
			}
			if got := tt.dialect.UpsertProfileQuery(); !strings.Contains(got, tt.upsertContains) {
				t.Errorf("UpsertProfileQuery() = %q, want it to contain %q", got, tt.upsertContains)
			}
			if got := tt.dialect.CreateMigrationsTableQuery(); !strings.Contains(got, "migrations") {
				t.Errorf("CreateMigrationsTableQuery() = %q", got)
			}
		})
	}
}

func TestRewritePlaceholders(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{"no placeholders", "SELECT 1", "SELECT 1"},
		{"single", "SELECT * FROM users WHERE id = ?", "SELECT * FROM users WHERE id = $1"},
		{"multiple", "INSERT INTO t (a, b, c) VALUES (?, ?, ?)", "INSERT INTO t (a, b, c) VALUES ($1, $2, $3)"},
	}

	pg := NewPostgresDialect()
	lite := NewSQLiteDialect()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pg.RewriteQuery(tt.query); got != tt.want {
				t.Errorf("postgres RewriteQuery() = %q, want %q", got, tt.want)
			}
			if got := lite.RewriteQuery(tt.query); got != tt.query {
				t.Errorf("sqlite RewriteQuery() changed query to %q", got)
			}
		})
	}
}

func TestMySQLDSNParseTime(t *testing.T) {
	d := NewMySQLDialect()
	tests := []struct {
		url  string
		want string
	}{
		{"user:pw@tcp(db:3306)/classroom", "user:pw@tcp(db:3306)/classroom?parseTime=true"},
		{"user:pw@tcp(db:3306)/classroom?charset=utf8mb4", "user:pw@tcp(db:3306)/classroom?charset=utf8mb4&parseTime=true"},
		{"user:pw@tcp(db:3306)/classroom?parseTime=false", "user:pw@tcp(db:3306)/classroom?parseTime=false"},
	}
	for _, tt := range tests {
		if got := d.DSN(DialectConfig{URL: tt.url}); got != tt.want {
			t.Errorf("DSN(%q) = %q, want %q", tt.url, got, tt.want)
		}
	}
}

func TestSplitStatements(t *testing.T) {
	content := `-- header comment
CREATE TABLE a (id INTEGER);

-- another
CREATE INDEX idx ON a(id);
`
	stmts := splitStatements(content)
	if len(stmts) != 2 {
		t.Fatalf("expected 2 statements, got %d: %q", len(stmts), stmts)
	}
	if stmts[0] != "CREATE TABLE a (id INTEGER)" {
		t.Errorf("unexpected first statement %q", stmts[0])
	}
}
