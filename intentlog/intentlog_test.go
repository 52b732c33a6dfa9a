package intentlog

import (
	"path/filepath"
	"testing"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLog(t *testing.T) *Log {
	t.Helper()
	db, err := sqlx.Open("sqlite3", filepath.Join(t.TempDir(), "intents.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	l, err := New(db)
	require.NoError(t, err)
	return l
}

func TestCompletedIntentIsNotPending(t *testing.T) {
	l := newLog(t)

	id, err := l.Begin("check_in", map[string]string{"truckId": "T001"})
	require.NoError(t, err)
	require.NoError(t, l.Step(id))
	require.NoError(t, l.Step(id))
	require.NoError(t, l.Done(id))

	pending, err := l.Pending()
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestAbandonedIntentStaysPendingWithStepCount(t *testing.T) {
	l := newLog(t)

	id, err := l.Begin("replacement", map[string]string{"target": "T007", "new": "T099"})
	require.NoError(t, err)
	require.NoError(t, l.Step(id))
	// The second write never happened.

	pending, err := l.Pending()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, id, pending[0].ID)
	assert.Equal(t, "replacement", pending[0].Op)
	assert.Equal(t, 1, pending[0].Steps)
	assert.Contains(t, pending[0].Payload, "T099")
}

func TestPendingOrderedByID(t *testing.T) {
	l := newLog(t)

	first, err := l.Begin("check_in", nil)
	require.NoError(t, err)
	second, err := l.Begin("assign_bay", nil)
	require.NoError(t, err)

	pending, err := l.Pending()
	require.NoError(t, err)
	require.Len(t, pending, 2)
	assert.Equal(t, first, pending[0].ID)
	assert.Equal(t, second, pending[1].ID)
}
