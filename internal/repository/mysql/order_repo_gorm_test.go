package mysql

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormmysql "gorm.io/driver/mysql"
	"gorm.io/gorm"

	"shop-order-service/internal/domain"
)

func getTestDB(t *testing.T) *gorm.DB {
	dsn := os.Getenv("MYSQL_TEST_DSN")
	if dsn == "" {
		dsn = "root:root@tcp(localhost:3306)/shop_test?charset=utf8mb4&parseTime=True&loc=Local"
	}

	db, err := gorm.Open(gormmysql.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Skipf("MySQL not available: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil || sqlDB.Ping() != nil {
		t.Skipf("MySQL not available: %v", err)
	}

	require.NoError(t, db.AutoMigrate(&domain.Product{}, &domain.Order{}, &domain.OrderItem{}))
	return db
}

func seedProduct(t *testing.T, db *gorm.DB, price, quantity int64) uint64 {
	p := domain.Product{Name: "it-" + uuid.NewString()[:8], Price: price, Quantity: quantity}
	require.NoError(t, db.Create(&p).Error)
	return p.ID
}

func productQuantity(t *testing.T, db *gorm.DB, id uint64) int64 {
	var p domain.Product
	require.NoError(t, db.First(&p, id).Error)
	return p.Quantity
}

func TestOrderRepo_Create_CommitsOrderAndDecrements(t *testing.T) {
	db := getTestDB(t)
	ctx := context.Background()

	productID := seedProduct(t, db, 1000, 5)
	repo := NewOrderRepository(db)

	order := &domain.Order{
		OrderNumber: uuid.NewString(),
		UserID:      1,
		TotalAmount: 3000,
		Status:      domain.StatusPending,
		Items: []domain.OrderItem{
			{ProductID: productID, Quantity: 3, UnitPrice: 1000},
		},
	}

	require.NoError(t, repo.Create(ctx, order))
	assert.NotZero(t, order.ID)
	assert.NotZero(t, order.Items[0].ID)
	assert.Equal(t, int64(2), productQuantity(t, db, productID))

	loaded, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Len(t, loaded.Items, 1)
	assert.Equal(t, int64(1000), loaded.Items[0].UnitPrice)
}

func TestOrderRepo_Create_RollsBackOnShortLine(t *testing.T) {
	db := getTestDB(t)
	ctx := context.Background()

	okProduct := seedProduct(t, db, 1000, 5)
	shortProduct := seedProduct(t, db, 500, 2)
	repo := NewOrderRepository(db)

	order := &domain.Order{
		OrderNumber: uuid.NewString(),
		UserID:      1,
		TotalAmount: 3500,
		Status:      domain.StatusPending,
		Items: []domain.OrderItem{
			{ProductID: okProduct, Quantity: 2, UnitPrice: 1000},
			{ProductID: shortProduct, Quantity: 3, UnitPrice: 500},
		},
	}

	err := repo.Create(ctx, order)
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, shortProduct, stockErr.ProductID)
	assert.Equal(t, int64(2), stockErr.Available)

	// The first line's decrement must have been rolled back.
	assert.Equal(t, int64(5), productQuantity(t, db, okProduct))
	assert.Equal(t, int64(2), productQuantity(t, db, shortProduct))
}

func TestInventoryRepo_ReserveAndRelease(t *testing.T) {
	db := getTestDB(t)
	ctx := context.Background()

	productID := seedProduct(t, db, 1000, 3)
	repo := NewInventoryRepository(db)

	require.NoError(t, repo.Reserve(ctx, productID, 2))
	assert.Equal(t, int64(1), productQuantity(t, db, productID))

	err := repo.Reserve(ctx, productID, 2)
	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, int64(1), stockErr.Available)

	require.NoError(t, repo.Release(ctx, productID, 2))
	assert.Equal(t, int64(3), productQuantity(t, db, productID))

	err = repo.Reserve(ctx, 0, 1)
	var notFoundErr *domain.ProductNotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
}
