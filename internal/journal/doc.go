// Package journal keeps a history of binding changes in a SQLite database.
//
// Every table mutation becomes one row. Changes made while a capture
// session is open carry the session's UUID, so the binding a user set and
// the bindings it displaced can be read back together:
//
//	j, err := journal.Open(cfg.Journal.Path)
//	defer j.Close()
//	detach := j.Attach(table)
//	defer detach()
//	j.Track(editor)
//
//	sessions, _ := j.Sessions(10)
//	changes, _ := j.SessionChanges(sessions[0].ID)
package journal
