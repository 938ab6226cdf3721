package store

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/senkathir/sorkuvai/app/corpus"
)

type scriptedRow struct {
	id  int64
	err error
}

func (r scriptedRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	*dest[0].(*int64) = r.id
	return nil
}

type scriptedQuerier struct {
	rows  []scriptedRow
	calls int
}

func (q *scriptedQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	row := q.rows[q.calls]
	q.calls++
	return row
}

func TestEnsureCollection(t *testing.T) {
	noRows := scriptedRow{err: pgx.ErrNoRows}
	c := corpus.Collection{CollectionName: "Sangam", CollectionType: corpus.CollectionCanon}

	testCases := []struct {
		name      string
		rows      []scriptedRow
		wantID    int64
		wantCalls int
	}{
		{
			// First select hits.
			name:      "Already exists",
			rows:      []scriptedRow{{id: 4}},
			wantID:    4,
			wantCalls: 1,
		},
		{
			// Select misses, insert returns the new id.
			name:      "Created",
			rows:      []scriptedRow{noRows, {id: 7}},
			wantID:    7,
			wantCalls: 2,
		},
		{
			// A concurrent job inserted the same name between select and
			// insert; the re-select picks up its row.
			name:      "Lost name race",
			rows:      []scriptedRow{noRows, noRows, {id: 7}},
			wantID:    7,
			wantCalls: 3,
		},
		{
			// A concurrent job took the computed id for a different name;
			// the retry recomputes MAX+1.
			name:      "Lost id race",
			rows:      []scriptedRow{noRows, noRows, noRows, {id: 9}},
			wantID:    9,
			wantCalls: 4,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q := &scriptedQuerier{rows: tc.rows}
			id, err := ensureCollection(context.Background(), q, c)
			require.NoError(t, err)
			assert.Equal(t, tc.wantID, id)
			assert.Equal(t, tc.wantCalls, q.calls)
		})
	}
}

func TestEnsureCollection_GivesUpAfterRepeatedConflicts(t *testing.T) {
	noRows := scriptedRow{err: pgx.ErrNoRows}
	q := &scriptedQuerier{rows: []scriptedRow{noRows, noRows, noRows, noRows, noRows, noRows}}

	_, err := ensureCollection(context.Background(), q,
		corpus.Collection{CollectionName: "Sangam"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conflicting concurrent inserts")
}

func TestEnsureCollection_QueryErrorSurfaces(t *testing.T) {
	q := &scriptedQuerier{rows: []scriptedRow{{err: errors.New("connection reset")}}}

	_, err := ensureCollection(context.Background(), q,
		corpus.Collection{CollectionName: "Sangam"})
	assert.ErrorContains(t, err, "connection reset")
}
