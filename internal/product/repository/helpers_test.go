package repository

import (
	"time"

	"github.com/DATA-DOG/go-sqlmock"
)

func productRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "name", "description", "price", "stock", "createdAt", "updatedAt"})
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Second)
}
