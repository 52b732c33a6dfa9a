package intentlog

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// The intent log makes partial application of a multi-cell write
// sequence detectable. A flow opens an intent before its first store
// write, marks a step after each write, and closes the intent when the
// sequence completes. Anything still pending after a crash or a store
// failure shows up at startup and on /api/intents. Nothing is rolled
// back automatically.

const schema = `
CREATE TABLE IF NOT EXISTS intents (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    op         TEXT NOT NULL,
    payload    TEXT NOT NULL,
    steps      INTEGER NOT NULL DEFAULT 0,
    status     TEXT NOT NULL DEFAULT 'pending',
    created_at TEXT NOT NULL,
    updated_at TEXT NOT NULL
);`

type Intent struct {
	ID        int64  `db:"id" json:"id"`
	Op        string `db:"op" json:"op"`
	Payload   string `db:"payload" json:"payload"`
	Steps     int    `db:"steps" json:"steps"`
	Status    string `db:"status" json:"status"`
	CreatedAt string `db:"created_at" json:"createdAt"`
	UpdatedAt string `db:"updated_at" json:"updatedAt"`
}

type Log struct {
	db *sqlx.DB
}

func New(db *sqlx.DB) (*Log, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create intents table: %w", err)
	}
	return &Log{db: db}, nil
}

// Begin records a new pending intent and returns its id.
func (l *Log) Begin(op string, payload interface{}) (int64, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return 0, fmt.Errorf("marshal intent payload: %w", err)
	}
	now := time.Now().Format(time.RFC3339)
	res, err := l.db.Exec(
		`INSERT INTO intents (op, payload, created_at, updated_at) VALUES (?, ?, ?, ?)`,
		op, string(body), now, now)
	if err != nil {
		return 0, fmt.Errorf("insert intent: %w", err)
	}
	return res.LastInsertId()
}

// Step marks one store write of the sequence as applied.
func (l *Log) Step(id int64) error {
	now := time.Now().Format(time.RFC3339)
	_, err := l.db.Exec(
		`UPDATE intents SET steps = steps + 1, updated_at = ? WHERE id = ?`, now, id)
	return err
}

// Done closes the intent after the full sequence succeeded.
func (l *Log) Done(id int64) error {
	now := time.Now().Format(time.RFC3339)
	_, err := l.db.Exec(
		`UPDATE intents SET status = 'done', updated_at = ? WHERE id = ?`, now, id)
	return err
}

// Pending lists intents whose sequence never completed.
func (l *Log) Pending() ([]Intent, error) {
	var out []Intent
	err := l.db.Select(&out,
		`SELECT id, op, payload, steps, status, created_at, updated_at
		   FROM intents WHERE status = 'pending' ORDER BY id`)
	if err != nil {
		return nil, err
	}
	return out, nil
}
