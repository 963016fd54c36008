package store

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPostgresStore(t *testing.T) {
	url := os.Getenv("HIREUP_TEST_DATABASE_URL")
	if url == "" {
		t.Skip("HIREUP_TEST_DATABASE_URL not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s, err := NewPostgresStore(ctx, url, 4)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.Ping(ctx))
	exerciseStore(t, s)
}
