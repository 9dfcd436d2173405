package contextutil_test

import (
	"context"
	"testing"

	"go-commission/internal/shared/contextutil"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestRequestValuesRoundTrip(t *testing.T) {
	assert.Empty(t, contextutil.GetRequestID(context.Background()))

	ctx := contextutil.WithRequestID(context.Background(), "req-1")
	ctx = contextutil.WithUserID(ctx, "user-1")

	assert.Equal(t, "req-1", contextutil.GetRequestID(ctx))
	assert.Equal(t, "user-1", contextutil.GetUserID(ctx))
}

func TestGetLogger_Fallbacks(t *testing.T) {
	assert.NotNil(t, contextutil.GetLogger(context.Background(), nil))

	def := zap.NewNop()
	assert.Same(t, def, contextutil.GetLogger(context.Background(), def))

	scoped := zap.NewExample()
	ctx := contextutil.WithLogger(context.Background(), scoped)
	assert.Same(t, scoped, contextutil.GetLogger(ctx, def))
}
