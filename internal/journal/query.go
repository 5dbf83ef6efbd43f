package journal

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// Entry is one recorded binding change.
type Entry struct {
	ID       int64
	At       time.Time
	Kind     string
	Action   string
	Slot     string
	Previous string
	Combo    string
	Cause    string

	// SessionID is uuid.Nil for changes made outside a capture session,
	// such as resets and loads.
	SessionID uuid.UUID
}

// SessionRecord is one recorded capture session.
type SessionRecord struct {
	ID       uuid.UUID
	Action   string
	Slot     string
	Result   string
	Combo    string
	Previous string
	Error    string
	Started  time.Time
	Finished time.Time
}

// ActionCount is the number of changes recorded for one action.
type ActionCount struct {
	Action string
	Count  int
}

// History returns up to limit changes, newest first. A limit of zero or
// less returns everything.
func (j *Journal) History(limit int) ([]Entry, error) {
	return j.queryEntries(`
		SELECT id, at, kind, action, slot, previous, combo, cause, session_id
		FROM binding_changes
		ORDER BY id DESC
		LIMIT ?
	`, sqlLimit(limit))
}

// HistoryFor returns the changes recorded for one action, newest first.
func (j *Journal) HistoryFor(action string, limit int) ([]Entry, error) {
	return j.queryEntries(`
		SELECT id, at, kind, action, slot, previous, combo, cause, session_id
		FROM binding_changes
		WHERE action = ?
		ORDER BY id DESC
		LIMIT ?
	`, action, sqlLimit(limit))
}

// SessionChanges returns the changes made by one capture session in the
// order they happened.
func (j *Journal) SessionChanges(id uuid.UUID) ([]Entry, error) {
	return j.queryEntries(`
		SELECT id, at, kind, action, slot, previous, combo, cause, session_id
		FROM binding_changes
		WHERE session_id = ?
		ORDER BY id
	`, id.String())
}

// Sessions returns up to limit capture sessions, newest first.
func (j *Journal) Sessions(limit int) ([]SessionRecord, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil, ErrClosed
	}

	rows, err := j.db.Query(`
		SELECT id, action, slot, result, combo, previous, error, started_at, finished_at
		FROM capture_sessions
		ORDER BY started_at DESC, rowid DESC
		LIMIT ?
	`, sqlLimit(limit))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var (
			r                 SessionRecord
			id                string
			started, finished int64
		)
		if err := rows.Scan(&id, &r.Action, &r.Slot, &r.Result, &r.Combo, &r.Previous, &r.Error, &started, &finished); err != nil {
			return nil, err
		}
		if r.ID, err = uuid.Parse(id); err != nil {
			// Skip rows written by something else
			continue
		}
		r.Started = time.Unix(0, started)
		r.Finished = time.Unix(0, finished)
		out = append(out, r)
	}
	return out, rows.Err()
}

// MostChanged returns the n actions with the most recorded assignments
// and clears, most first. Ties are broken by name.
func (j *Journal) MostChanged(n int) ([]ActionCount, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil, ErrClosed
	}

	rows, err := j.db.Query(`
		SELECT action, COUNT(*) AS n
		FROM binding_changes
		WHERE action != ''
		GROUP BY action
		ORDER BY n DESC, action
		LIMIT ?
	`, sqlLimit(n))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ActionCount
	for rows.Next() {
		var c ActionCount
		if err := rows.Scan(&c.Action, &c.Count); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (j *Journal) queryEntries(query string, args ...any) ([]Entry, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.closed {
		return nil, ErrClosed
	}

	rows, err := j.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e       Entry
			at      int64
			session sql.NullString
		)
		if err := rows.Scan(&e.ID, &at, &e.Kind, &e.Action, &e.Slot, &e.Previous, &e.Combo, &e.Cause, &session); err != nil {
			return nil, err
		}
		e.At = time.Unix(0, at)
		if session.Valid {
			if id, err := uuid.Parse(session.String); err == nil {
				e.SessionID = id
			}
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// sqlLimit maps "no limit" to SQLite's -1.
func sqlLimit(n int) int {
	if n <= 0 {
		return -1
	}
	return n
}
