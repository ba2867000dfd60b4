package cart

import (
	"context"
	"errors"
	"testing"

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

func twoLineCart() *Cart {
	c := New()
	c.Add(Candidate{ItemID: "A", Name: "Chandelier", UnitPriceCents: 250000})
	c.Add(Candidate{ItemID: "B", Name: "Desk lamp", UnitPriceCents: 85000})
	return c
}

func TestPgSaveCommitsPruneAndUpsertsTogether(t *testing.T) {
	tx := &fakeTx{}
	store := NewPgStore(&fakeDB{tx: tx})

	require.NoError(t, store.Save(context.Background(), "7", twoLineCart()))

	// The prune and one upsert per line run on the same transaction.
	require.Len(t, tx.execs, 3)
	assert.Contains(t, tx.execs[0], "DELETE FROM cart_items")
	assert.Contains(t, tx.execs[1], "INSERT INTO cart_items")
	assert.True(t, tx.committed)
	assert.False(t, tx.rolledBack)
}

func TestPgSaveRollsBackOnUpsertFailure(t *testing.T) {
	tx := &fakeTx{failAfter: 2}
	store := NewPgStore(&fakeDB{tx: tx})

	err := store.Save(context.Background(), "7", twoLineCart())
	require.Error(t, err)

	// The prune must not stand without the upserts.
	assert.True(t, tx.rolledBack)
	assert.False(t, tx.committed)
}
