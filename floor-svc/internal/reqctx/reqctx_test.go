package reqctx

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnsureCorrelationID(t *testing.T) {
	ctx, id := EnsureCorrelationID(context.Background())
	assert.NotEmpty(t, id)
	assert.Equal(t, id, CorrelationID(ctx))

	same, again := EnsureCorrelationID(ctx)
	assert.Equal(t, id, again)
	assert.Equal(t, ctx, same)

	_, other := EnsureCorrelationID(context.Background())
	assert.NotEqual(t, id, other)
}

func TestUserID(t *testing.T) {
	assert.Empty(t, UserID(context.Background()))
	assert.Equal(t, "waiter-1", UserID(WithUserID(context.Background(), "waiter-1")))
	assert.Equal(t, "corr", CorrelationID(WithCorrelationID(context.Background(), "corr")))
}
