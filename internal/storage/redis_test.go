package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisBackendRoundTrip(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	backend := NewRedisBackend(client)
	t.Cleanup(func() { _ = backend.Close() })

	s := NewSnapshots(backend, "devis:test", DefaultMaxBytes)
	require.NoError(t, s.Ping(ctx))

	_, err := s.Load(ctx)
	require.ErrorIs(t, err, ErrNotFound)

	want := sampleSnapshot()
	require.NoError(t, s.Save(ctx, want))
	assert.True(t, mr.Exists("devis:test"))

	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRedisBackendUnavailable(t *testing.T) {
	ctx := context.Background()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr(), MaxRetries: -1})
	s := NewSnapshots(NewRedisBackend(client), "devis:test", 0)
	mr.Close()

	err := s.Save(ctx, sampleSnapshot())
	assert.True(t, IsPersistenceError(err))
}
