package queue

import (
	"database/sql"
	"fmt"
	"sync"

	"github.com/jmoiron/sqlx"
)

const seqName = "check_in_queue"

const schema = `
CREATE TABLE IF NOT EXISTS queue_sequences (
    name    TEXT PRIMARY KEY,
    last_no INTEGER NOT NULL
);`

// Allocator hands out check-in queue numbers. Allocation is serialized
// behind a process-wide mutex and the high-water mark is persisted, so
// two submissions racing within this process can no longer mint the
// same number from a stale table count. Writers in other processes are
// still unguarded; the remote store has no atomic counter to lean on.
type Allocator struct {
	mu sync.Mutex
	db *sqlx.DB
}

func NewAllocator(db *sqlx.DB) (*Allocator, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("create queue_sequences: %w", err)
	}
	if _, err := db.Exec(
		`INSERT OR IGNORE INTO queue_sequences (name, last_no) VALUES (?, 0)`, seqName); err != nil {
		return nil, fmt.Errorf("seed queue_sequences: %w", err)
	}
	return &Allocator{db: db}, nil
}

// Seed raises the persisted mark to the live sheet's checked-in count.
// Called once at startup so a fresh database catches up with history.
func (a *Allocator) Seed(checkedIn int) error {
	a.mu.Lock()
	defer a.mu.Unlock()
	_, err := a.db.Exec(
		`UPDATE queue_sequences SET last_no = ? WHERE name = ? AND last_no < ?`,
		checkedIn, seqName, checkedIn)
	if err != nil {
		return fmt.Errorf("seed sequence '%s': %w", seqName, err)
	}
	return nil
}

// Next reserves the next queue number. checkedIn is the caller's fresh
// count of records with a check-in timestamp; the result is one past
// the larger of that count and the persisted mark, so the number both
// matches arrival order and stays unique within the process.
func (a *Allocator) Next(checkedIn int) (int, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	tx, err := a.db.Beginx()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var lastNo int
	if err := tx.Get(&lastNo, `SELECT last_no FROM queue_sequences WHERE name = ?`, seqName); err != nil {
		if err == sql.ErrNoRows {
			return 0, fmt.Errorf("sequence '%s' not found", seqName)
		}
		return 0, fmt.Errorf("get sequence '%s': %w", seqName, err)
	}

	base := checkedIn
	if lastNo > base {
		base = lastNo
	}
	next := base + 1

	if _, err := tx.Exec(`UPDATE queue_sequences SET last_no = ? WHERE name = ?`, next, seqName); err != nil {
		return 0, fmt.Errorf("update sequence '%s': %w", seqName, err)
	}
	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return next, nil
}
