package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"

	"vitrine/internal/infrastructure/mysql"
)

// SetupTestDB opens the local test database. Expects a MySQL instance on
// localhost:3306 with a database named 'vitrine_test'; skips the test
// when it is not reachable.
func SetupTestDB(t *testing.T) *sql.DB {
	dsn := "root:@tcp(localhost:3306)/vitrine_test?parseTime=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// SetupTestTables creates the service tables in the test database.
func SetupTestTables(t *testing.T, db *sql.DB) {
	if err := mysql.Sync(db, false); err != nil {
		t.Fatalf("failed to create test tables: %v", err)
	}
}

// CleanupTestDB removes all rows and closes the connection.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"OrderItems", "Orders", "Products"}
	for _, table := range tables {
		if _, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)); err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}
