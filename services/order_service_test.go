package services

import (
	"context"
	"database/sql"
	"os"
	"sync"
	"testing"
	"time"

	"freshcatch_server/structs/tables"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"
)

// Counter and restock semantics live in SQL, so these tests need a real
// Postgres. Set TEST_DATABASE_DSN to run them; they are skipped otherwise.
func testDB(t *testing.T) *bun.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_DSN")
	if dsn == "" {
		t.Skip("TEST_DATABASE_DSN not set, skipping database test")
	}

	sqldb := sql.OpenDB(pgdriver.NewConnector(
		pgdriver.WithDSN(dsn),
		pgdriver.WithInsecure(true),
	))
	db := bun.NewDB(sqldb, pgdialect.New())
	t.Cleanup(func() { db.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, db.PingContext(ctx))

	return db
}

func ensureOrderCountsTable(t *testing.T, db *bun.DB) {
	t.Helper()
	_, err := db.ExecContext(context.Background(),
		`CREATE TABLE IF NOT EXISTS order_counts (
			date date PRIMARY KEY,
			count integer NOT NULL,
			updated_at timestamptz NOT NULL DEFAULT now()
		)`)
	require.NoError(t, err)
}

func ensureProductsTable(t *testing.T, db *bun.DB) {
	t.Helper()
	_, err := db.ExecContext(context.Background(),
		`CREATE TABLE IF NOT EXISTS products (
			id uuid PRIMARY KEY,
			name text NOT NULL,
			description text NOT NULL,
			price bigint NOT NULL,
			category text NOT NULL,
			stock_quantity integer NOT NULL,
			is_available boolean NOT NULL,
			unit text NOT NULL DEFAULT 'kg',
			image_url text,
			origin text,
			created_at timestamptz NOT NULL DEFAULT now(),
			updated_at timestamptz NOT NULL DEFAULT now()
		)`)
	require.NoError(t, err)
}

func TestNextOrderSequence_SequentialClaims(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	ensureOrderCountsTable(t, db)

	const dateKey = "2097-03-14"
	_, err := db.ExecContext(ctx, "DELETE FROM order_counts WHERE date = ?::date", dateKey)
	require.NoError(t, err)
	t.Cleanup(func() {
		db.ExecContext(context.Background(), "DELETE FROM order_counts WHERE date = ?::date", dateKey)
	})

	for want := 1; want <= 3; want++ {
		var seq int
		err := db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
			var claimErr error
			seq, claimErr = nextOrderSequence(ctx, tx, dateKey)
			return claimErr
		})
		require.NoError(t, err)
		assert.Equal(t, want, seq)
	}
}

// N concurrent claims on the same date must yield exactly {1..N}: no
// duplicates, no gaps. Each claim runs in its own transaction like a real
// checkout would.
func TestNextOrderSequence_ConcurrentClaims(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	ensureOrderCountsTable(t, db)

	const dateKey = "2097-03-15"
	const n = 8

	_, err := db.ExecContext(ctx, "DELETE FROM order_counts WHERE date = ?::date", dateKey)
	require.NoError(t, err)
	t.Cleanup(func() {
		db.ExecContext(context.Background(), "DELETE FROM order_counts WHERE date = ?::date", dateKey)
	})

	results := make(chan int, n)
	errs := make(chan error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
				seq, claimErr := nextOrderSequence(ctx, tx, dateKey)
				if claimErr != nil {
					return claimErr
				}
				results <- seq
				return nil
			})
			if err != nil {
				errs <- err
			}
		}()
	}
	wg.Wait()
	close(results)
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	seen := make(map[int]bool, n)
	for seq := range results {
		assert.False(t, seen[seq], "sequence %d handed out twice", seq)
		assert.GreaterOrEqual(t, seq, 1)
		assert.LessOrEqual(t, seq, n)
		seen[seq] = true
	}
	assert.Len(t, seen, n)
}

// Restocking a cancelled order only re-enables products it takes off zero
// stock; a product an admin disabled while it still had stock stays disabled.
func TestRestockOrderItems_AvailabilityGuard(t *testing.T) {
	db := testDB(t)
	ctx := context.Background()
	ensureProductsTable(t, db)

	now := time.Now()
	soldOut := &tables.Product{
		ID:            uuid.New(),
		Name:          "North Sea Cod",
		Description:   "Fresh cod fillet",
		Price:         1950,
		Category:      tables.CategoryFish,
		StockQuantity: 0,
		IsAvailable:   false, // went off the shelf when stock hit zero
		Unit:          "kg",
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	disabled := &tables.Product{
		ID:            uuid.New(),
		Name:          "Smoked Eel",
		Description:   "Traditionally smoked",
		Price:         3400,
		Category:      tables.CategorySmoked,
		StockQuantity: 4,
		IsAvailable:   false, // deliberately disabled with stock on hand
		Unit:          "piece",
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	_, err := db.NewInsert().Model(soldOut).Exec(ctx)
	require.NoError(t, err)
	_, err = db.NewInsert().Model(disabled).Exec(ctx)
	require.NoError(t, err)
	t.Cleanup(func() {
		db.NewDelete().Model((*tables.Product)(nil)).
			Where("id IN (?, ?)", soldOut.ID, disabled.ID).
			Exec(context.Background())
	})

	items := []tables.OrderItem{
		{ProductId: soldOut.ID, Quantity: 2},
		{ProductId: disabled.ID, Quantity: 1},
	}

	err = db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		return restockOrderItems(ctx, tx, items)
	})
	require.NoError(t, err)

	var got tables.Product
	require.NoError(t, db.NewSelect().Model(&got).Where("id = ?", soldOut.ID).Scan(ctx))
	assert.Equal(t, 2, got.StockQuantity)
	assert.True(t, got.IsAvailable, "restock off zero stock should re-enable")

	got = tables.Product{}
	require.NoError(t, db.NewSelect().Model(&got).Where("id = ?", disabled.ID).Scan(ctx))
	assert.Equal(t, 5, got.StockQuantity)
	assert.False(t, got.IsAvailable, "deliberately disabled product must stay disabled")
}
