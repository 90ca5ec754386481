package service

import (
	"context"

	"foolivery/internal/models"
	"foolivery/internal/store"
	"foolivery/internal/util"

	"go.uber.org/zap"
)

// CatalogService serves read-only queries over foods and categories
type CatalogService struct {
	store  store.Repository
	logger *zap.Logger
}

// NewCatalogService creates a new catalog service
func NewCatalogService(store store.Repository) *CatalogService {
	return &CatalogService{
		store:  store,
		logger: util.GetLogger(),
	}
}

// AllFoods returns every food in the catalog
func (s *CatalogService) AllFoods(ctx context.Context) ([]models.Food, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.AllFoods")
	defer span.End()

	foods, err := s.store.ListFoods(ctx)
	if err != nil {
		s.logger.Error("Failed to list foods", zap.Error(err))
		return nil, internal("Error retrieving food items", err)
	}
	return foods, nil
}

// FoodByID returns one food; absence is a NotFound error
func (s *CatalogService) FoodByID(ctx context.Context, id int64) (*models.Food, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.FoodByID")
	defer span.End()

	food, err := s.store.GetFoodByID(ctx, id)
	if err != nil {
		s.logger.Error("Failed to get food", zap.Int64("food_id", id), zap.Error(err))
		return nil, internal("Error retrieving food item", err)
	}
	if food == nil {
		return nil, notFound("Food item not found")
	}
	return food, nil
}

// FoodsByCategory matches the category name exactly. No match yields an empty slice.
func (s *CatalogService) FoodsByCategory(ctx context.Context, category string) ([]models.Food, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.FoodsByCategory")
	defer span.End()

	if category == "" {
		return nil, validationError("Category is required", map[string]string{"category": "is required"})
	}

	foods, err := s.store.ListFoodsByCategory(ctx, category)
	if err != nil {
		s.logger.Error("Failed to list foods by category", zap.String("category", category), zap.Error(err))
		return nil, internal("Error retrieving food items by category", err)
	}
	if foods == nil {
		foods = []models.Food{}
	}
	return foods, nil
}

// AllCategories returns every category
func (s *CatalogService) AllCategories(ctx context.Context) ([]models.Category, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.AllCategories")
	defer span.End()

	categories, err := s.store.ListCategories(ctx)
	if err != nil {
		s.logger.Error("Failed to list categories", zap.Error(err))
		return nil, internal("Error retrieving categories", err)
	}
	return categories, nil
}

// UpdatePrice changes a catalog price. Orders already placed keep their snapshot price.
func (s *CatalogService) UpdatePrice(ctx context.Context, id, priceMinor int64) (*models.Food, error) {
	ctx, span := util.StartSpan(ctx, "CatalogService.UpdatePrice")
	defer span.End()

	if priceMinor <= 0 {
		return nil, validationError("Invalid price", map[string]string{"price": "must be greater than 0"})
	}

	food, err := s.store.UpdateFoodPrice(ctx, id, priceMinor)
	if err != nil {
		s.logger.Error("Failed to update food price", zap.Int64("food_id", id), zap.Error(err))
		return nil, internal("Error updating food item", err)
	}
	if food == nil {
		return nil, notFound("Food item not found")
	}

	s.logger.Info("Food price updated", zap.Int64("food_id", id), zap.Int64("price_minor", priceMinor))
	return food, nil
}
