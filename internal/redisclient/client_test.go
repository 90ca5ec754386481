package redisclient

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJSONRoundTrip(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("Integration test - requires Redis (set TEST_REDIS_ADDR)")
	}

	c, err := NewClient(addr, "", 0)
	require.NoError(t, err)
	defer c.Close()

	ctx := context.Background()
	key := "test:" + uuid.NewString()

	type payload struct {
		UserID int64 `json:"user_id"`
	}

	require.NoError(t, c.SetJSON(ctx, key, payload{UserID: 9}, time.Minute))

	var got payload
	found, err := c.GetJSON(ctx, key, &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(9), got.UserID)

	require.NoError(t, c.Delete(ctx, key))
	found, err = c.GetJSON(ctx, key, &got)
	require.NoError(t, err)
	assert.False(t, found)
}
