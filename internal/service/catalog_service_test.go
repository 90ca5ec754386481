package service

import (
	"context"
	"testing"

	"foolivery/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCatalogService(t *testing.T) *CatalogService {
	t.Helper()
	repo := store.NewMemoryStore()
	require.NoError(t, store.Seed(context.Background(), repo))
	return NewCatalogService(repo)
}

func TestCatalog_AllFoodsAndCategories(t *testing.T) {
	svc := newTestCatalogService(t)
	ctx := context.Background()

	foods, err := svc.AllFoods(ctx)
	require.NoError(t, err)
	assert.Len(t, foods, 6)

	categories, err := svc.AllCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 4)
	assert.Equal(t, "Pizza", categories[0].Name)
}

func TestCatalog_FoodByID(t *testing.T) {
	svc := newTestCatalogService(t)
	ctx := context.Background()

	food, err := svc.FoodByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Classic Cheeseburger", food.Name)
	assert.Equal(t, 40, food.RatingTenths)

	_, err = svc.FoodByID(ctx, 404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCatalog_FoodsByCategory(t *testing.T) {
	svc := newTestCatalogService(t)
	ctx := context.Background()

	burgers, err := svc.FoodsByCategory(ctx, "Burgers")
	require.NoError(t, err)
	assert.Len(t, burgers, 2)

	none, err := svc.FoodsByCategory(ctx, "Nonexistent")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)

	_, err = svc.FoodsByCategory(ctx, "")
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCatalog_UpdatePrice(t *testing.T) {
	svc := newTestCatalogService(t)
	ctx := context.Background()

	food, err := svc.UpdatePrice(ctx, 1, 1499)
	require.NoError(t, err)
	assert.Equal(t, int64(1499), food.PriceMinor)

	_, err = svc.UpdatePrice(ctx, 1, 0)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdatePrice(ctx, 404, 100)
	assert.ErrorIs(t, err, ErrNotFound)
}
