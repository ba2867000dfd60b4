package orders

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"svitlo/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTx struct {
	pgx.Tx
	execs      []string
	failAfter  int
	committed  bool
	rolledBack bool
}

func (t *fakeTx) Exec(_ context.Context, sql string, _ ...any) (pgconn.CommandTag, error) {
	t.execs = append(t.execs, sql)
	if t.failAfter > 0 && len(t.execs) > t.failAfter {
		return pgconn.CommandTag{}, errors.New("connection reset")
	}
	return pgconn.CommandTag{}, nil
}

func (t *fakeTx) Commit(context.Context) error {
	t.committed = true
	return nil
}

func (t *fakeTx) Rollback(context.Context) error {
	t.rolledBack = true
	return nil
}

type fakeDB struct {
	dbx.Querier
	tx *fakeTx
}

func (d *fakeDB) Begin(context.Context) (pgx.Tx, error) {
	return d.tx, nil
}

func testOrder() *Order {
	return &Order{
		OrderNumber: "3f2b9a10-0000-0000-0000-000000000000",
		CartKey:     "7",
		Items:       lines(),
		TotalCents:  585000,
		Customer:    validCustomer,
		CreatedAt:   time.Now().UTC(),
	}
}

func TestPgAppendCommitsOrderAndItemsTogether(t *testing.T) {
	tx := &fakeTx{}
	store := NewPgStore(&fakeDB{tx: tx})

	require.NoError(t, store.Append(context.Background(), testOrder()))

	// One order insert plus one insert per line, all on the transaction.
	require.Len(t, tx.execs, 3)
	assert.Contains(t, tx.execs[0], "INSERT INTO orders")
	assert.Contains(t, tx.execs[1], "INSERT INTO order_items")
	assert.True(t, tx.committed)
	assert.False(t, tx.rolledBack)
}

func TestPgAppendRollsBackOnItemInsertFailure(t *testing.T) {
	tx := &fakeTx{failAfter: 1}
	store := NewPgStore(&fakeDB{tx: tx})

	err := store.Append(context.Background(), testOrder())
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "insert order item"))

	// No order row survives a failed item insert.
	assert.True(t, tx.rolledBack)
	assert.False(t, tx.committed)
}
