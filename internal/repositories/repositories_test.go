package repositories_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"kedai/internal/models"
	"kedai/internal/repositories"
)

func TestMockProductRepository_PreservesInsertionOrder(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	ctx := context.Background()

	names := []string{"a", "b", "c", "d"}
	for _, name := range names {
		require.NoError(t, repo.Create(ctx, &models.Product{Name: name}))
	}

	products, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, products, len(names))
	for i, p := range products {
		assert.Equal(t, names[i], p.Name)
	}
}

func TestMockProductRepository_DecrementStock(t *testing.T) {
	repo := repositories.NewMockProductRepository()
	ctx := context.Background()

	p := models.Product{Name: "x", AvailableQuantity: 3}
	require.NoError(t, repo.Create(ctx, &p))

	require.NoError(t, repo.DecrementStock(ctx, p.ID, 2))
	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.AvailableQuantity)

	// The guard refuses to take stock below zero and leaves the
	// document untouched.
	err = repo.DecrementStock(ctx, p.ID, 2)
	assert.ErrorIs(t, err, repositories.ErrInsufficientStock)
	got, err = repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.AvailableQuantity)

	err = repo.DecrementStock(ctx, primitive.NewObjectID(), 1)
	assert.ErrorIs(t, err, repositories.ErrInsufficientStock)
}

func TestMockOrderRepository_PaginationWindows(t *testing.T) {
	repo := repositories.NewMockOrderRepository()
	ctx := context.Background()

	var ids []primitive.ObjectID
	for i := 0; i < 7; i++ {
		order := models.Order{TotalPrice: float64(i)}
		require.NoError(t, repo.Create(ctx, &order))
		ids = append(ids, order.ID)
	}

	// limit 3: windows of 3, 3, 1, then empty.
	page0, err := repo.List(ctx, 3, 0)
	require.NoError(t, err)
	page1, err := repo.List(ctx, 3, 1)
	require.NoError(t, err)
	page2, err := repo.List(ctx, 3, 2)
	require.NoError(t, err)
	page3, err := repo.List(ctx, 3, 3)
	require.NoError(t, err)

	assert.Len(t, page0, 3)
	assert.Len(t, page1, 3)
	assert.Len(t, page2, 1)
	assert.Empty(t, page3)

	var seen []primitive.ObjectID
	for _, page := range [][]models.Order{page0, page1, page2} {
		for _, o := range page {
			seen = append(seen, o.ID)
		}
	}
	assert.Equal(t, ids, seen)

	// limit 0 means the whole scan.
	all, err := repo.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Len(t, all, 7)
}

func TestMockOrderRepository_Delete(t *testing.T) {
	repo := repositories.NewMockOrderRepository()
	ctx := context.Background()

	order := models.Order{TotalPrice: 1}
	require.NoError(t, repo.Create(ctx, &order))

	require.NoError(t, repo.Delete(ctx, order.ID))

	_, err := repo.GetByID(ctx, order.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)
	err = repo.Delete(ctx, order.ID)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	all, err := repo.List(ctx, 0, 0)
	require.NoError(t, err)
	assert.Empty(t, all)
}
