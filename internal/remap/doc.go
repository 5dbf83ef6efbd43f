// Package remap captures a physical input for a binding the player chose
// to change.
//
// A Session is opened for one (action, slot). The presentation layer feeds
// it exactly one captured combination through OnCaptured, which assigns it
// through keymap.Table.Assign and closes the session whether the
// assignment succeeded or was rejected. An Editor owns the open session,
// scans polled input for the capture and reports each Outcome to its
// callbacks; the journal and script hooks listen there.
//
// Every session carries a UUID so the several journal rows produced by one
// capture (the assignment plus each binding it cleared) can be grouped.
package remap
