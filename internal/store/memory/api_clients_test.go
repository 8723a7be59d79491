package memory

import (
	"context"
	"testing"

	"mpesarelay/internal/store/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAPIClients(t *testing.T) {
	s := NewAPIClients([]string{"k1", "k2"})
	assert.Equal(t, 2, s.Len())

	c, err := s.FindByKeyHash(context.Background(), repositories.HashAPIKey("k2"))
	require.NoError(t, err)
	assert.Equal(t, int64(2), c.ID)
	assert.Equal(t, "active", c.Status)

	_, err = s.FindByKeyHash(context.Background(), "k1")
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
