// Package notify announces configuration changes.
//
// Components subscribe to the whole configuration or to one dotted path
// ("log", "keymap.path") and are called after a reload changes it.
package notify

import (
	"strings"
	"sync"
)

// ChangeType says what happened to a setting.
type ChangeType int

const (
	// ChangeSet indicates a value was added or changed.
	ChangeSet ChangeType = iota
	// ChangeDelete indicates a value disappeared from the file.
	ChangeDelete
	// ChangeReload follows the per-key changes of one reload.
	ChangeReload
)

// String returns the change type name.
func (c ChangeType) String() string {
	switch c {
	case ChangeSet:
		return "set"
	case ChangeDelete:
		return "delete"
	case ChangeReload:
		return "reload"
	default:
		return "unknown"
	}
}

// Change describes one configuration change.
type Change struct {
	// Path is the dotted key, e.g. "frame.rate". Empty for reloads.
	Path string
	Type ChangeType

	OldValue any
	NewValue any

	// Source is the file the change was read from.
	Source string
}

// Observer receives changes.
type Observer func(change Change)

type subscriber struct {
	id   uint64
	path string // empty receives everything
	fn   Observer
}

// matches reports whether a change at path reaches s. Reloads reach every
// subscriber.
func (s subscriber) matches(path string) bool {
	return path == "" || s.path == "" || s.path == path || isParentPath(s.path, path)
}

// Subscription is a handle for removing an observer.
type Subscription struct {
	id       uint64
	notifier *Notifier
}

// Unsubscribe removes the observer. It is safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s.notifier != nil {
		s.notifier.remove(s.id)
	}
}

// Notifier delivers changes to observers in subscription order, on the
// goroutine that reports the change.
type Notifier struct {
	mu     sync.RWMutex
	subs   []subscriber
	nextID uint64
}

// New creates an empty Notifier.
func New() *Notifier {
	return &Notifier{}
}

// Subscribe registers an observer for every change.
func (n *Notifier) Subscribe(observer Observer) *Subscription {
	return n.SubscribePath("", observer)
}

// SubscribePath registers an observer for path and everything below it:
// subscribing to "log" receives "log.level".
func (n *Notifier) SubscribePath(path string, observer Observer) *Subscription {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.nextID++
	n.subs = append(n.subs, subscriber{id: n.nextID, path: path, fn: observer})
	return &Subscription{id: n.nextID, notifier: n}
}

func (n *Notifier) remove(id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for i, s := range n.subs {
		if s.id == id {
			n.subs = append(n.subs[:i], n.subs[i+1:]...)
			return
		}
	}
}

// Notify delivers change to every matching observer. Observers run
// without the lock held and may unsubscribe themselves.
func (n *Notifier) Notify(change Change) {
	n.mu.RLock()
	var targets []Observer
	for _, s := range n.subs {
		if s.matches(change.Path) {
			targets = append(targets, s.fn)
		}
	}
	n.mu.RUnlock()

	for _, fn := range targets {
		fn(change)
	}
}

// NotifySet announces a new or changed value.
func (n *Notifier) NotifySet(path string, oldValue, newValue any, source string) {
	n.Notify(Change{Path: path, Type: ChangeSet, OldValue: oldValue, NewValue: newValue, Source: source})
}

// NotifyDelete announces a removed value.
func (n *Notifier) NotifyDelete(path string, oldValue any, source string) {
	n.Notify(Change{Path: path, Type: ChangeDelete, OldValue: oldValue, Source: source})
}

// NotifyReload announces that a reload finished.
func (n *Notifier) NotifyReload(source string) {
	n.Notify(Change{Type: ChangeReload, Source: source})
}

// isParentPath reports whether parent is a strict dotted prefix of child.
func isParentPath(parent, child string) bool {
	if parent == "" {
		return true
	}
	return strings.HasPrefix(child, parent+".")
}

// Batch holds changes computed under the manager's lock so they can be
// delivered after it is released.
type Batch struct {
	notifier *Notifier
	changes  []Change
}

// NewBatch starts an empty batch.
func (n *Notifier) NewBatch() *Batch {
	return &Batch{notifier: n}
}

// Set queues a ChangeSet.
func (b *Batch) Set(path string, oldValue, newValue any, source string) {
	b.changes = append(b.changes, Change{Path: path, Type: ChangeSet, OldValue: oldValue, NewValue: newValue, Source: source})
}

// Delete queues a ChangeDelete.
func (b *Batch) Delete(path string, oldValue any, source string) {
	b.changes = append(b.changes, Change{Path: path, Type: ChangeDelete, OldValue: oldValue, Source: source})
}

// Len returns the number of queued changes.
func (b *Batch) Len() int { return len(b.changes) }

// Commit delivers the queued changes in order and empties the batch.
func (b *Batch) Commit() {
	changes := b.changes
	b.changes = nil
	for _, c := range changes {
		b.notifier.Notify(c)
	}
}
