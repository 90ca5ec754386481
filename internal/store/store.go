package store

import (
	"context"
	"errors"

	"foolivery/internal/models"
)

// ErrUsernameTaken is returned when a username already exists, ignoring case.
var ErrUsernameTaken = errors.New("username already exists")

// Repository is the entity store used by the services. Lookups that miss
// return a nil entity and a nil error; the caller decides how to treat absence.
type Repository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	CreateCategory(ctx context.Context, category *models.Category) error
	ListCategories(ctx context.Context) ([]models.Category, error)

	CreateFood(ctx context.Context, food *models.Food) error
	ListFoods(ctx context.Context) ([]models.Food, error)
	GetFoodByID(ctx context.Context, id int64) (*models.Food, error)
	ListFoodsByCategory(ctx context.Context, category string) ([]models.Food, error)
	UpdateFoodPrice(ctx context.Context, id, priceMinor int64) (*models.Food, error)

	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, id int64) (*models.Order, error)
	ListOrdersByUserID(ctx context.Context, userID int64) ([]models.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status models.OrderStatus) (*models.Order, error)

	Close() error
}
