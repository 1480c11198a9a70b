package memory

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/PraneethShetty626/rapidcart/services/order/internal/repository"
)

func newOrder(id, customerID string, createdAt time.Time) repository.Order {
	return repository.Order{
		ID:          id,
		ProductID:   "product-1",
		ProductName: "Laptop",
		UnitPrice:   decimal.RequireFromString("99.99"),
		Quantity:    1,
		TotalPrice:  decimal.RequireFromString("99.99"),
		CustomerID:  customerID,
		CreatedAt:   createdAt,
	}
}

func TestMemoryRepository_CreateAndGet(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()

	require.NoError(t, repo.Create(ctx, newOrder("order-1", "customer-1", time.Now())))

	got, err := repo.GetByID(ctx, "order-1")
	require.NoError(t, err)
	require.Equal(t, "customer-1", got.CustomerID)

	_, err = repo.GetByID(ctx, "missing")
	require.ErrorIs(t, err, repository.ErrNotFound)
}

func TestMemoryRepository_ListByCustomer(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	now := time.Now()

	require.NoError(t, repo.Create(ctx, newOrder("order-1", "customer-1", now.Add(-2*time.Hour))))
	require.NoError(t, repo.Create(ctx, newOrder("order-2", "customer-1", now.Add(-1*time.Hour))))
	require.NoError(t, repo.Create(ctx, newOrder("order-3", "customer-2", now)))

	got, err := repo.ListByCustomer(ctx, "customer-1")
	require.NoError(t, err)
	require.Len(t, got, 2)

	// Новые заказы первыми
	require.Equal(t, "order-2", got[0].ID)
	require.Equal(t, "order-1", got[1].ID)
}

func TestMemoryRepository_List(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	now := time.Now()

	require.NoError(t, repo.Create(ctx, newOrder("order-1", "customer-1", now.Add(-2*time.Hour))))
	require.NoError(t, repo.Create(ctx, newOrder("order-2", "customer-1", now.Add(-1*time.Hour))))
	require.NoError(t, repo.Create(ctx, newOrder("order-3", "customer-2", now)))

	got, err := repo.List(ctx, repository.ListParams{Page: 0, Size: 2, SortBy: "createdAt", SortDir: "desc"})
	require.NoError(t, err)
	require.Len(t, got, 2)
	require.Equal(t, "order-3", got[0].ID)
	require.Equal(t, "order-2", got[1].ID)

	got, err = repo.List(ctx, repository.ListParams{Page: 5, Size: 10, SortBy: "createdAt", SortDir: "asc"})
	require.NoError(t, err)
	require.Empty(t, got)
}

func TestMemoryRepository_ListDescWithEqualKeys(t *testing.T) {
	ctx := context.Background()
	repo := NewMemoryRepository()
	createdAt := time.Date(2026, 8, 29, 10, 0, 0, 0, time.UTC)

	// Заказы с одинаковым createdAt: desc сортировка не должна терять элементы
	customers := []string{"customer-1", "customer-2", "customer-1", "customer-3", "customer-2", "customer-1"}
	for i, customerID := range customers {
		id := "order-" + string(rune('a'+i))
		require.NoError(t, repo.Create(ctx, newOrder(id, customerID, createdAt)))
	}

	got, err := repo.List(ctx, repository.ListParams{Page: 0, Size: 100, SortBy: "createdAt", SortDir: "desc"})
	require.NoError(t, err)
	require.Len(t, got, len(customers))

	for i := 1; i < len(got); i++ {
		require.False(t, got[i-1].CreatedAt.Before(got[i].CreatedAt))
	}
}
