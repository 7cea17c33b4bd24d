package storage

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Needs a reachable server, e.g. MONGO_TEST_URI=mongodb://localhost:27017.
func TestMongoBackendRoundTrip(t *testing.T) {
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	backend, err := NewMongoBackend(ctx, uri, "devis_test")
	require.NoError(t, err)
	t.Cleanup(func() { _ = backend.Close() })

	s := NewSnapshots(backend, t.Name(), DefaultMaxBytes)
	want := sampleSnapshot()
	require.NoError(t, s.Save(ctx, want))
	got, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}
