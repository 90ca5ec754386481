package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"foolivery/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const schema = `
CREATE TABLE IF NOT EXISTS users (
	id            SERIAL PRIMARY KEY,
	username      TEXT NOT NULL,
	password_hash TEXT NOT NULL
);
CREATE UNIQUE INDEX IF NOT EXISTS users_username_lower_idx ON users (LOWER(username));

CREATE TABLE IF NOT EXISTS categories (
	id    SERIAL PRIMARY KEY,
	name  TEXT NOT NULL,
	image TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS foods (
	id            SERIAL PRIMARY KEY,
	name          TEXT NOT NULL,
	description   TEXT NOT NULL,
	price_minor   BIGINT NOT NULL,
	image         TEXT NOT NULL,
	rating_tenths INTEGER NOT NULL DEFAULT 0,
	reviews       INTEGER NOT NULL DEFAULT 0,
	category      TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS orders (
	id             SERIAL PRIMARY KEY,
	user_id        INTEGER NOT NULL REFERENCES users(id),
	items          JSONB NOT NULL,
	total_minor    BIGINT NOT NULL,
	status         TEXT NOT NULL DEFAULT 'pending',
	payment_method TEXT NOT NULL DEFAULT 'COD',
	address        TEXT NOT NULL,
	phone          TEXT NOT NULL,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS orders_user_id_idx ON orders (user_id, created_at DESC);
`

// PostgresStore persists entities in PostgreSQL; ids come from SERIAL sequences
type PostgresStore struct {
	db *sqlx.DB
}

// NewPostgresStore connects to PostgreSQL and ensures the schema exists
func NewPostgresStore(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	db, err := sqlx.ConnectContext(ctx, "postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	s := &PostgresStore{db: db}
	if err := s.Migrate(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// Migrate creates tables and indexes if missing
func (s *PostgresStore) Migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("failed to migrate schema: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// CreateUser inserts a user; the unique LOWER(username) index enforces case-insensitive uniqueness
func (s *PostgresStore) CreateUser(ctx context.Context, user *models.User) error {
	err := s.db.GetContext(ctx, &user.ID,
		"INSERT INTO users (username, password_hash) VALUES ($1, $2) RETURNING id",
		user.Username, user.PasswordHash)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrUsernameTaken
	}
	return err
}

// GetUserByID retrieves a user by ID
func (s *PostgresStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, "SELECT * FROM users WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username, ignoring case
func (s *PostgresStore) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	var user models.User
	err := s.db.GetContext(ctx, &user, "SELECT * FROM users WHERE LOWER(username) = LOWER($1)", username)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateCategory inserts a category
func (s *PostgresStore) CreateCategory(ctx context.Context, category *models.Category) error {
	return s.db.GetContext(ctx, &category.ID,
		"INSERT INTO categories (name, image) VALUES ($1, $2) RETURNING id",
		category.Name, category.Image)
}

// ListCategories retrieves all categories
func (s *PostgresStore) ListCategories(ctx context.Context) ([]models.Category, error) {
	categories := []models.Category{}
	err := s.db.SelectContext(ctx, &categories, "SELECT * FROM categories ORDER BY id")
	return categories, err
}

// CreateFood inserts a food item
func (s *PostgresStore) CreateFood(ctx context.Context, food *models.Food) error {
	query := `
		INSERT INTO foods (name, description, price_minor, image, rating_tenths, reviews, category)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`

	return s.db.GetContext(ctx, &food.ID, query,
		food.Name, food.Description, food.PriceMinor, food.Image, food.RatingTenths, food.Reviews, food.Category)
}

// ListFoods retrieves all foods
func (s *PostgresStore) ListFoods(ctx context.Context) ([]models.Food, error) {
	foods := []models.Food{}
	err := s.db.SelectContext(ctx, &foods, "SELECT * FROM foods ORDER BY id")
	return foods, err
}

// GetFoodByID retrieves a food by ID
func (s *PostgresStore) GetFoodByID(ctx context.Context, id int64) (*models.Food, error) {
	var food models.Food
	err := s.db.GetContext(ctx, &food, "SELECT * FROM foods WHERE id = $1", id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &food, nil
}

// ListFoodsByCategory retrieves foods whose category matches exactly
func (s *PostgresStore) ListFoodsByCategory(ctx context.Context, category string) ([]models.Food, error) {
	foods := []models.Food{}
	err := s.db.SelectContext(ctx, &foods, "SELECT * FROM foods WHERE category = $1 ORDER BY id", category)
	return foods, err
}

// UpdateFoodPrice changes the catalog price of a food
func (s *PostgresStore) UpdateFoodPrice(ctx context.Context, id, priceMinor int64) (*models.Food, error) {
	var food models.Food
	err := s.db.GetContext(ctx, &food,
		"UPDATE foods SET price_minor = $1 WHERE id = $2 RETURNING *", priceMinor, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &food, nil
}
