package journal

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/dshills/rebind/internal/input/keymap"
	"github.com/dshills/rebind/internal/remap"
)

// Result values stored for capture sessions.
const (
	ResultOpen      = "open"
	ResultApplied   = "applied"
	ResultReserved  = "reserved"
	ResultRejected  = "rejected"
	ResultCancelled = "cancelled"
)

// ErrClosed is returned after Close.
var ErrClosed = errors.New("journal closed")

// Logger receives write failures from table observers, which cannot
// return errors.
type Logger = keymap.Logger

type nopLogger struct{}

func (nopLogger) Warn(string, ...any) {}

// Journal records binding changes and capture sessions in SQLite.
type Journal struct {
	db     *sql.DB
	logger Logger
	now    func() time.Time

	mu      sync.Mutex
	session uuid.UUID // open capture session, uuid.Nil when none
	closed  bool
}

// Open opens or creates the journal database at path. The special path
// ":memory:" creates a private in-memory journal.
func Open(path string) (*Journal, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// SQLite serializes writers, and an in-memory database exists per
	// connection.
	db.SetMaxOpenConns(1)

	pragmas := []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("journal %s: %w", pragma, err)
		}
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	return &Journal{db: db, logger: nopLogger{}, now: time.Now}, nil
}

// SetLogger sets where observer write failures are reported.
func (j *Journal) SetLogger(lg Logger) {
	if lg == nil {
		lg = nopLogger{}
	}
	j.logger = lg
}

// DB returns the underlying database.
func (j *Journal) DB() *sql.DB {
	return j.db
}

// Close closes the database.
func (j *Journal) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil
	}
	j.closed = true
	return j.db.Close()
}

// Attach records every change made to t until the returned function is
// called.
func (j *Journal) Attach(t *keymap.Table) func() {
	return t.Subscribe(func(c keymap.Change) {
		if err := j.RecordChange(c); err != nil && !errors.Is(err, ErrClosed) {
			j.logger.Warn("journal: recording %s: %v", c.Kind, err)
		}
	})
}

// Track correlates the changes made by e's capture sessions. Each session
// is opened in the journal when selected and closed with its outcome.
func (j *Journal) Track(e *remap.Editor) {
	e.OnSelect(func(s *remap.Session) {
		if err := j.BeginSession(s.ID(), s.Action().Name, s.Slot()); err != nil && !errors.Is(err, ErrClosed) {
			j.logger.Warn("journal: opening session: %v", err)
		}
	})
	e.OnOutcome(func(o remap.Outcome) {
		if err := j.RecordOutcome(o); err != nil && !errors.Is(err, ErrClosed) {
			j.logger.Warn("journal: recording outcome: %v", err)
		}
	})
}

// BeginSession opens a capture session. Changes recorded until the
// session's outcome carry its ID.
func (j *Journal) BeginSession(id uuid.UUID, action string, slot keymap.Slot) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return ErrClosed
	}

	now := j.now().UnixNano()
	_, err := j.db.Exec(`
		INSERT INTO capture_sessions (id, action, slot, result, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, id.String(), action, slot.String(), ResultOpen, now, now)
	if err != nil {
		return err
	}
	j.session = id
	return nil
}

// RecordOutcome stores how a capture session ended and closes it.
func (j *Journal) RecordOutcome(o remap.Outcome) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return ErrClosed
	}

	var combo, errText string
	if !o.Cancelled {
		combo = o.Combo.String()
	}
	if o.Err != nil {
		errText = o.Err.Error()
	}

	_, err := j.db.Exec(`
		INSERT INTO capture_sessions (id, action, slot, result, combo, previous, error, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			result = excluded.result,
			combo = excluded.combo,
			previous = excluded.previous,
			error = excluded.error,
			finished_at = excluded.finished_at
	`, o.SessionID.String(), o.Action, o.Slot.String(), resultOf(o), combo, o.Previous.String(), errText,
		o.Started.UnixNano(), o.Finished.UnixNano())

	if j.session == o.SessionID {
		j.session = uuid.Nil
	}
	return err
}

func resultOf(o remap.Outcome) string {
	switch {
	case o.Cancelled:
		return ResultCancelled
	case o.Applied():
		return ResultApplied
	case o.Reserved():
		return ResultReserved
	default:
		return ResultRejected
	}
}

// RecordChange appends one table change.
func (j *Journal) RecordChange(c keymap.Change) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return ErrClosed
	}

	var action, slot, previous, combo, cause string
	if c.Binding != nil {
		action = c.Binding.Action.Name
		slot = c.Binding.Slot.String()
		previous = c.Previous.String()
		combo = c.Binding.Combo.String()
	}
	if c.Cause != nil {
		cause = c.Cause.Action.Name
	}
	var session any
	if j.session != uuid.Nil {
		session = j.session.String()
	}

	_, err := j.db.Exec(`
		INSERT INTO binding_changes (at, kind, action, slot, previous, combo, cause, session_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, j.now().UnixNano(), c.Kind.String(), action, slot, previous, combo, cause, session)
	return err
}

// Prune deletes changes and finished sessions older than before. It
// returns the number of changes removed.
func (j *Journal) Prune(before time.Time) (int64, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return 0, ErrClosed
	}

	tx, err := j.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.Exec(`DELETE FROM binding_changes WHERE at < ?`, before.UnixNano())
	if err != nil {
		return 0, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	if _, err := tx.Exec(`DELETE FROM capture_sessions WHERE finished_at < ? AND result != ?`,
		before.UnixNano(), ResultOpen); err != nil {
		return 0, err
	}
	return n, tx.Commit()
}
