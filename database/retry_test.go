package database

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

func TestIsRetryableError(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name      string
		err       error
		retryable bool
	}{
		{"nil", nil, false},
		{"context deadline", context.DeadlineExceeded, false},
		{"context cancelled", context.Canceled, false},
		{"no rows", sql.ErrNoRows, false},
		{"unique violation", pgError("23505"), false},
		{"foreign key violation", pgError("23503"), false},
		{"check violation", pgError("23514"), false},
		{"undefined table", pgError("42P01"), false},
		{"serialization failure", pgError("40001"), true},
		{"deadlock", pgError("40P01"), true},
		{"connection failure", pgError("08006"), true},
		{"too many connections", pgError("53300"), true},
		{"cannot connect now", pgError("57P03"), true},
		{"read only transaction", pgError("25006"), false},
		{"connection refused message", errors.New("dial tcp: connection refused"), true},
		{"broken pipe message", errors.New("write: broken pipe"), true},
		{"plain application error", errors.New("cart is empty"), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.retryable, isRetryableError(tc.err))
		})
	}
}

func TestSQLState(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "23505", SQLState(pgError("23505")))
	assert.Equal(t, "23505", SQLState(errors.Join(errors.New("wrapped"), pgError("23505"))))
	assert.Equal(t, "", SQLState(errors.New("not a database error")))
	assert.Equal(t, "", SQLState(nil))
}

func TestRetryWithBackoff_StopsOnNonRetryable(t *testing.T) {
	t.Parallel()
	attempts := 0
	err := RetryWithBackoff(context.Background(), DefaultRetryConfig(), func() error {
		attempts++
		return pgError("23505")
	})

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}

func TestRetryWithBackoff_RetriesTransientErrors(t *testing.T) {
	t.Parallel()
	config := RetryConfig{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
		Multiplier:   2.0,
		EnableRetry:  true,
	}

	attempts := 0
	err := RetryWithBackoff(context.Background(), config, func() error {
		attempts++
		if attempts < 3 {
			return pgError("40001")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
}

func TestRetryWithBackoff_Disabled(t *testing.T) {
	t.Parallel()
	config := DefaultRetryConfig()
	config.EnableRetry = false

	attempts := 0
	err := RetryWithBackoff(context.Background(), config, func() error {
		attempts++
		return pgError("40001")
	})

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
}
