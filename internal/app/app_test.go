package app

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chronoworld/showtimes/internal/config"
	"github.com/chronoworld/showtimes/internal/observability"
	"github.com/chronoworld/showtimes/internal/search"
	"github.com/chronoworld/showtimes/internal/storage"
	"github.com/chronoworld/showtimes/pkg/types"
)

func TestNew_WithMemoryTable(t *testing.T) {
	table := storage.NewMemoryTable(types.Record{"eventName": "Time Rift Expo"})

	a, err := New(context.Background(), config.DefaultConfig(), WithTable(table))
	require.NoError(t, err)

	resp, err := a.Handler().Handle(context.Background(), search.Request{EventName: "rift"})
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.Equal(t, int64(1), a.Stats().Outcomes()[observability.OutcomeOK])
}

func TestNew_InvalidConfig(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Table.Name = ""

	_, err := New(context.Background(), cfg, WithTable(storage.NewMemoryTable()))
	require.Error(t, err)
}

func TestNew_HandlerIsShared(t *testing.T) {
	a, err := New(context.Background(), config.DefaultConfig(), WithTable(storage.NewMemoryTable()))
	require.NoError(t, err)
	require.Same(t, a.Handler(), a.Handler())
}

func TestNewServer(t *testing.T) {
	a, err := New(context.Background(), config.DefaultConfig(), WithTable(storage.NewMemoryTable()))
	require.NoError(t, err)
	require.NotNil(t, a.NewServer())
}
