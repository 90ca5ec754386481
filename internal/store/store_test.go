package store

import (
	"context"
	"os"
	"strings"
	"testing"

	"foolivery/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestPostgresStore(t *testing.T) *PostgresStore {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("Integration test - requires database (set TEST_DATABASE_URL)")
	}

	s, err := NewPostgresStore(context.Background(), url)
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPostgresStore_CreateOrder(t *testing.T) {
	s := newTestPostgresStore(t)
	ctx := context.Background()

	user := &models.User{Username: "pg-" + uuid.NewString()[:8], PasswordHash: "hash"}
	require.NoError(t, s.CreateUser(ctx, user))

	order := &models.Order{
		UserID:        user.ID,
		Items:         []models.OrderItem{{ID: 1, Name: "Pizza", PriceMinor: 1299, Quantity: 2}},
		TotalMinor:    2598,
		Status:        models.OrderStatusPending,
		PaymentMethod: models.PaymentMethodCOD,
		Address:       "1 Main St, Springfield, 12345",
		Phone:         "5551234567",
	}
	require.NoError(t, s.CreateOrder(ctx, order))
	assert.NotZero(t, order.ID)
	assert.False(t, order.CreatedAt.IsZero())

	retrieved, err := s.GetOrderByID(ctx, order.ID)
	require.NoError(t, err)
	require.NotNil(t, retrieved)
	assert.Equal(t, order.Items, retrieved.Items)
	assert.Equal(t, order.TotalMinor, retrieved.TotalMinor)

	updated, err := s.UpdateOrderStatus(ctx, order.ID, models.OrderStatusDelivered)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusDelivered, updated.Status)
	assert.Equal(t, order.Items, updated.Items)
}

func TestPostgresStore_UsernameUniquenessIgnoresCase(t *testing.T) {
	s := newTestPostgresStore(t)
	ctx := context.Background()

	name := "pg-" + uuid.NewString()[:8]
	require.NoError(t, s.CreateUser(ctx, &models.User{Username: name, PasswordHash: "hash"}))

	err := s.CreateUser(ctx, &models.User{Username: strings.ToUpper(name), PasswordHash: "hash"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}
