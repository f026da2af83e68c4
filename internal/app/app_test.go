package app

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"voidwebsite/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger_Levels(t *testing.T) {
	ctx := context.Background()
	assert.True(t, NewLogger("debug").Enabled(ctx, slog.LevelDebug))
	assert.False(t, NewLogger("info").Enabled(ctx, slog.LevelDebug))
	assert.False(t, NewLogger("WARN").Enabled(ctx, slog.LevelInfo))
	assert.True(t, NewLogger("bogus").Enabled(ctx, slog.LevelInfo))
}

func TestDefaultPricing(t *testing.T) {
	p := DefaultPricing(&config.Config{TaxRate: 0.08, ShippingFlat: 4.5})
	assert.Equal(t, "0.08", p.TaxRate.String())
	assert.Equal(t, "4.5", p.ShippingFlat.String())
}

func TestNewOrderStore_UnknownBackend(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	_, _, err := NewOrderStore(context.Background(), &config.Config{OrderBackend: "mongo"}, nil, nil, logger)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "mongo")
}
