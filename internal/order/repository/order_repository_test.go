package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vitrine/internal/domain"
	"vitrine/internal/errors"
	"vitrine/internal/testutil"
)

// Unit tests (sqlmock)

func TestFindAll_GroupsItemsByOrder(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now().UTC().Truncate(time.Second)
	rows := sqlmock.NewRows([]string{
		"id", "totalPrice", "shippingCost", "status", "createdAt", "updatedAt",
		"id", "orderId", "productId", "quantity", "price",
	}).
		AddRow(1, 236.0, 15.5, "pending", now, now, 1, 1, 1, 2, 50.0).
		AddRow(1, 236.0, 15.5, "pending", now, now, 2, 1, 2, 1, 120.5).
		AddRow(2, 30.0, 10.0, "shipped", now, now, nil, nil, nil, nil, nil)

	mock.ExpectQuery("SELECT (.+) FROM Orders o").WillReturnRows(rows)

	repo := NewMySQLOrderRepository(db)

	orders, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 2)

	assert.Len(t, orders[0].Items, 2)
	assert.Equal(t, 2, orders[0].Items[1].ProductID)
	// An order with no items still comes back, with an empty item list.
	assert.Empty(t, orders[1].Items)
}

func TestUpdateStatus_NotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("UPDATE Orders SET status = ").
		WithArgs("shipped", 9).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewMySQLOrderRepository(db)

	err = repo.UpdateStatus(context.Background(), 9, "shipped")
	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// Integration tests (live MySQL, skipped when unavailable)

func TestOrderRepository_InsertAndFindByID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	orderRepo := NewMySQLOrderRepository(db)
	itemRepo := NewMySQLOrderItemRepository(db)
	ctx := context.Background()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	orderID, err := orderRepo.Insert(ctx, tx, domain.Order{
		TotalPrice:   236,
		ShippingCost: 15.5,
		Status:       domain.OrderStatusPending,
	})
	require.NoError(t, err)

	err = itemRepo.InsertBatch(ctx, tx, []domain.OrderItem{
		{OrderID: orderID, ProductID: 1, Quantity: 2, Price: 50},
		{OrderID: orderID, ProductID: 2, Quantity: 1, Price: 120.5},
	})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	order, err := orderRepo.FindByID(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, 236.0, order.TotalPrice)
	assert.Equal(t, "pending", order.Status)
	require.Len(t, order.Items, 2)
	assert.Equal(t, 2, order.Items[0].Quantity)
	assert.Equal(t, 120.5, order.Items[1].Price)
}

func TestOrderRepository_FindByID_NotFound(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderRepository(db)

	_, err := repo.FindByID(context.Background(), 9999)
	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}

func TestOrderRepository_UpdateStatus(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	repo := NewMySQLOrderRepository(db)
	ctx := context.Background()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)
	orderID, err := repo.Insert(ctx, tx, domain.Order{TotalPrice: 10, ShippingCost: 5, Status: domain.OrderStatusPending})
	require.NoError(t, err)
	require.NoError(t, tx.Commit())

	// Any string goes; there is no state machine.
	require.NoError(t, repo.UpdateStatus(ctx, orderID, "anything-at-all"))

	order, err := repo.FindByID(ctx, orderID)
	require.NoError(t, err)
	assert.Equal(t, "anything-at-all", order.Status)
}

func TestOrderRepository_RollbackLeavesNoRows(t *testing.T) {
	db := testutil.SetupTestDB(t)
	testutil.SetupTestTables(t, db)
	defer testutil.CleanupTestDB(t, db)

	orderRepo := NewMySQLOrderRepository(db)
	itemRepo := NewMySQLOrderItemRepository(db)
	ctx := context.Background()

	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	orderID, err := orderRepo.Insert(ctx, tx, domain.Order{TotalPrice: 10, ShippingCost: 5, Status: domain.OrderStatusPending})
	require.NoError(t, err)
	require.NoError(t, itemRepo.InsertBatch(ctx, tx, []domain.OrderItem{{OrderID: orderID, ProductID: 1, Quantity: 1, Price: 5}}))
	require.NoError(t, tx.Rollback())

	_, err = orderRepo.FindByID(ctx, orderID)
	_, ok := errors.IsNotFoundError(err)
	assert.True(t, ok)
}
