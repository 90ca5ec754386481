package store

import (
	"context"
	"fmt"

	"foolivery/internal/models"
)

var seedCategories = []models.Category{
	{Name: "Pizza", Image: "https://images.unsplash.com/photo-1565299624946-b28f40a0ae38?ixlib=rb-4.0.3&auto=format&fit=crop&w=300&h=200&q=80"},
	{Name: "Burgers", Image: "https://images.unsplash.com/photo-1568901346375-23c9450c58cd?ixlib=rb-4.0.3&auto=format&fit=crop&w=300&h=200&q=80"},
	{Name: "Noodles", Image: "https://images.unsplash.com/photo-1569718212165-3a8278d5f624?ixlib=rb-4.0.3&auto=format&fit=crop&w=300&h=200&q=80"},
	{Name: "Salads", Image: "https://images.unsplash.com/photo-1540420773420-3366772f4999?ixlib=rb-4.0.3&auto=format&fit=crop&w=300&h=200&q=80"},
}

var seedFoods = []models.Food{
	{
		Name:         "Pepperoni Pizza",
		Description:  "Classic pepperoni pizza with mozzarella cheese and tomato sauce",
		PriceMinor:   1299,
		Image:        "https://images.unsplash.com/photo-1593560708920-61dd98c46a4e?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=250&q=80",
		RatingTenths: 45,
		Reviews:      245,
		Category:     "Pizza",
	},
	{
		Name:         "Classic Cheeseburger",
		Description:  "Juicy beef patty with cheese, lettuce, tomato, and special sauce",
		PriceMinor:   949,
		Image:        "https://images.unsplash.com/photo-1572802419224-296b0aeee0d9?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=250&q=80",
		RatingTenths: 40,
		Reviews:      189,
		Category:     "Burgers",
	},
	{
		Name:         "Pad Thai Noodles",
		Description:  "Stir-fried rice noodles with eggs, tofu, bean sprouts, and peanuts",
		PriceMinor:   1199,
		Image:        "https://images.unsplash.com/photo-1626804475297-41608ea89f86?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=250&q=80",
		RatingTenths: 40,
		Reviews:      156,
		Category:     "Noodles",
	},
	{
		Name:         "Crispy Fried Chicken",
		Description:  "Crunchy fried chicken with secret blend of herbs and spices",
		PriceMinor:   1049,
		Image:        "https://images.unsplash.com/photo-1626082927389-6cd097cee6a3?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=250&q=80",
		RatingTenths: 45,
		Reviews:      203,
		Category:     "Burgers",
	},
	{
		Name:         "Caesar Salad",
		Description:  "Fresh romaine lettuce with Caesar dressing, croutons, and parmesan",
		PriceMinor:   899,
		Image:        "https://images.unsplash.com/photo-1546793665-c74683f339c1?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=250&q=80",
		RatingTenths: 40,
		Reviews:      142,
		Category:     "Salads",
	},
	{
		Name:         "Chocolate Milkshake",
		Description:  "Rich and creamy chocolate milkshake topped with whipped cream",
		PriceMinor:   599,
		Image:        "https://images.unsplash.com/photo-1563805042-7684c019e1cb?ixlib=rb-4.0.3&auto=format&fit=crop&w=400&h=250&q=80",
		RatingTenths: 50,
		Reviews:      178,
		Category:     "Drinks",
	},
}

// Seed loads the reference catalog when the store has no categories yet.
func Seed(ctx context.Context, repo Repository) error {
	existing, err := repo.ListCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to check catalog: %w", err)
	}
	if len(existing) > 0 {
		return nil
	}

	for _, c := range seedCategories {
		category := c
		if err := repo.CreateCategory(ctx, &category); err != nil {
			return fmt.Errorf("failed to seed category %q: %w", c.Name, err)
		}
	}
	for _, f := range seedFoods {
		food := f
		if err := repo.CreateFood(ctx, &food); err != nil {
			return fmt.Errorf("failed to seed food %q: %w", f.Name, err)
		}
	}
	return nil
}
