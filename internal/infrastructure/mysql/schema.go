package mysql

import (
	"database/sql"
	"fmt"
)

var createStatements = []struct {
	table string
	query string
}{
	{"Products", `
	CREATE TABLE IF NOT EXISTS Products (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL,
		description TEXT NOT NULL,
		price DECIMAL(10,2) NOT NULL,
		stock INT NOT NULL,
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`},
	{"Orders", `
	CREATE TABLE IF NOT EXISTS Orders (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		totalPrice DECIMAL(10,2) NOT NULL,
		shippingCost DECIMAL(10,2) NOT NULL,
		status VARCHAR(50) NOT NULL DEFAULT 'pending',
		createdAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updatedAt DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP
	)`},
	{"OrderItems", `
	CREATE TABLE IF NOT EXISTS OrderItems (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		orderId INT UNSIGNED NOT NULL,
		productId INT NOT NULL,
		quantity INT NOT NULL DEFAULT 1,
		price DECIMAL(10,2) NOT NULL,
		FOREIGN KEY (orderId) REFERENCES Orders(id) ON DELETE CASCADE,
		INDEX idx_order (orderId),
		INDEX idx_product (productId)
	)`},
}

// Sync creates the tables the services expect. With force it drops them
// first, losing all data. Not a migration system; meant for local and
// test databases only.
func Sync(db *sql.DB, force bool) error {
	if force {
		// Children before parents, foreign keys.
		for i := len(createStatements) - 1; i >= 0; i-- {
			if _, err := db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s", createStatements[i].table)); err != nil {
				return fmt.Errorf("dropping table %s: %w", createStatements[i].table, err)
			}
		}
	}

	for _, stmt := range createStatements {
		if _, err := db.Exec(stmt.query); err != nil {
			return fmt.Errorf("creating table %s: %w", stmt.table, err)
		}
	}

	return nil
}
