package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/zjrosen/tagsearch/internal/config"
	"github.com/zjrosen/tagsearch/internal/infrastructure/bbolt"
	"github.com/zjrosen/tagsearch/internal/tracing"
)

func TestOpen_EachBackend(t *testing.T) {
	for _, backend := range []string{config.BackendSQLite, config.BackendBolt, config.BackendTOML} {
		t.Run(backend, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "store", "searches."+backend)
			opened, err := Open(config.StoreConfig{Backend: backend, Path: path}, nil)
			require.NoError(t, err)
			defer opened.Store.Close()

			require.Equal(t, path, opened.Path)
			require.Equal(t, backend, opened.Backend)

			ctx := context.Background()
			require.NoError(t, opened.Store.Put(ctx, "news", "golang"))
			all, err := opened.Store.LoadAll(ctx)
			require.NoError(t, err)
			require.Equal(t, map[string]string{"news": "golang"}, all)

			_, err = os.Stat(path)
			require.NoError(t, err, "backend writes to the configured path")
		})
	}
}

func TestOpened_Watchable(t *testing.T) {
	require.True(t, (&Opened{Backend: config.BackendSQLite}).Watchable())
	require.True(t, (&Opened{Backend: config.BackendTOML}).Watchable())
	require.False(t, (&Opened{Backend: config.BackendBolt}).Watchable(), "bolt keeps the file locked")
}

func TestOpen_BoltLockedWhileOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "searches.db")
	opened, err := Open(config.StoreConfig{Backend: config.BackendBolt, Path: path}, nil)
	require.NoError(t, err)
	defer opened.Store.Close()

	_, err = bbolt.OpenWithTimeout(path, 50*time.Millisecond)
	require.Error(t, err, "a second process cannot open the file")
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open(config.StoreConfig{Backend: "redis"}, nil)
	require.ErrorContains(t, err, "store.backend")
}

func TestOpen_WrapsWithTracer(t *testing.T) {
	exp := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exp))
	defer tp.Shutdown(context.Background())

	opened, err := Open(config.StoreConfig{
		Backend: config.BackendTOML,
		Path:    filepath.Join(t.TempDir(), "searches.toml"),
	}, tp.Tracer("test"))
	require.NoError(t, err)
	defer opened.Store.Close()

	_, ok := opened.Store.(*tracing.TracedStore)
	require.True(t, ok)

	_, err = opened.Store.LoadAll(context.Background())
	require.NoError(t, err)
	require.Len(t, exp.GetSpans(), 1)
}
