package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"

	testlog "hos-trip-planner/internal/testutil"
)

// failingPool fails the first n attempts and then hands out pool.
func failingPool(t *testing.T, n int, pool *pgxpool.Pool) *int {
	t.Helper()
	attempts := 0
	orig := newPool
	newPool = func(ctx context.Context, _ string) (*pgxpool.Pool, error) {
		attempts++
		if _, ok := ctx.Deadline(); !ok {
			t.Errorf("attempt %d ran without a deadline", attempts)
		}
		if attempts <= n {
			return nil, errors.New("dial tcp: connection refused")
		}
		return pool, nil
	}
	t.Cleanup(func() { newPool = orig })
	return &attempts
}

func TestConnectDbWithRetry(t *testing.T) {
	pool := &pgxpool.Pool{}

	tests := []struct {
		name         string
		failures     int
		retries      int
		wantAttempts int
		wantErr      string
		wantWarns    int
	}{
		{name: "first attempt", failures: 0, retries: 3, wantAttempts: 1},
		{name: "recovers on last attempt", failures: 2, retries: 3, wantAttempts: 3, wantWarns: 2},
		{name: "gives up", failures: 5, retries: 3, wantAttempts: 3, wantWarns: 3, wantErr: "db connect failed after 3 attempts"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempts := failingPool(t, tt.failures, pool)
			rec := testlog.New()

			got, err := connectDbWithRetry(context.Background(), rec.Logger(), "postgres://stub", tt.retries, time.Millisecond)

			require.Equal(t, tt.wantAttempts, *attempts)
			warns := 0
			for _, e := range rec.Entries() {
				if e.Msg == "db connect failed" {
					warns++
				}
			}
			require.Equal(t, tt.wantWarns, warns)

			if tt.wantErr != "" {
				require.ErrorContains(t, err, tt.wantErr)
				require.ErrorContains(t, err, "connection refused")
				require.Nil(t, got)
				return
			}
			require.NoError(t, err)
			require.Same(t, pool, got)
			e, ok := rec.Find("db connected")
			require.True(t, ok)
			attempt, _ := e.Field("attempt")
			require.Equal(t, tt.wantAttempts, attempt)
		})
	}
}

func TestConnectDbWithRetry_StopsWhenCancelled(t *testing.T) {
	attempts := failingPool(t, 10, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	got, err := connectDbWithRetry(ctx, testlog.New().Logger(), "postgres://stub", 5, time.Minute)
	require.ErrorIs(t, err, context.Canceled)
	require.Nil(t, got)
	require.Equal(t, 1, *attempts)
}
