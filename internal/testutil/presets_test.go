package testutil

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWithRecoveryWeek(t *testing.T) {
	db := NewTestDB(t)
	defer func() { _ = db.Close() }()

	NewBuilder(t, db).
		WithRecoveryWeek([4]string{"2026-01-05", "2026-01-06", "2026-01-07", "2026-01-08"}).
		Build()

	var total, mornings, days int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM entries`).Scan(&total))
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM entries WHERE slot = 'morning'`).Scan(&mornings))
	require.NoError(t, db.QueryRow(`SELECT COUNT(DISTINCT date) FROM entries`).Scan(&days))

	require.Equal(t, 8, total, "four complete days")
	require.Equal(t, 4, mornings)
	require.Equal(t, 4, days)
}

func TestWithSparseWeek(t *testing.T) {
	db := NewTestDB(t)
	defer func() { _ = db.Close() }()

	NewBuilder(t, db).
		WithSparseWeek([2]string{"2026-01-05", "2026-01-06"}).
		Build()

	var total, evenings int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM entries`).Scan(&total))
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM entries WHERE slot = 'evening'`).Scan(&evenings))

	require.Equal(t, 2, total)
	require.Equal(t, 0, evenings, "sparse week has mornings only")
}
