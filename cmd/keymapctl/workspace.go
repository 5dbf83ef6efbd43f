package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/rebind/internal/config"
	"github.com/dshills/rebind/internal/input/keymap"
	"github.com/dshills/rebind/internal/journal"
)

// workspace is the keymap a command operates on.
type workspace struct {
	cfg      *config.Config
	catalog  *keymap.Catalog
	contexts *keymap.ContextRegistry
	loader   *keymap.Loader
	table    *keymap.Table
	path     string
	warnings []string

	journal *journal.Journal
	detach  func()
}

// warnings collects loader messages so commands can print them.
type warnings struct{ list *[]string }

func (w warnings) Warn(msg string, args ...any) {
	*w.list = append(*w.list, fmt.Sprintf(msg, args...))
}

// openWorkspace loads configuration and the keymap. The journal is opened
// only when withJournal is set and the configuration enables it.
func openWorkspace(g *globals, withJournal bool) (*workspace, error) {
	path := g.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if g.keymapPath != "" {
		cfg.Keymap.Path = g.keymapPath
	}

	ws := &workspace{
		cfg:      cfg,
		catalog:  keymap.DefaultCatalog(),
		contexts: keymap.DefaultContexts(),
		path:     cfg.Keymap.Path,
	}
	if err := ws.contexts.Check(ws.catalog); err != nil {
		return nil, err
	}
	ws.loader = keymap.NewLoader(ws.catalog, ws.contexts)
	ws.loader.SetLogger(warnings{&ws.warnings})
	ws.table = ws.loader.LoadOrDefault(ws.path)

	if withJournal && !g.noJournal && cfg.Journal.Enabled {
		j, err := journal.Open(cfg.Journal.Path)
		if err != nil {
			return nil, fmt.Errorf("opening journal: %w", err)
		}
		j.SetLogger(warnings{&ws.warnings})
		ws.journal = j
		ws.detach = j.Attach(ws.table)
	}
	return ws, nil
}

// openJournal opens the journal for reading. It fails when the journal is
// disabled.
func openJournal(g *globals) (*journal.Journal, error) {
	path := g.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if !cfg.Journal.Enabled {
		return nil, errJournalDisabled
	}
	return journal.Open(cfg.Journal.Path)
}

var errJournalDisabled = errors.New("journal is disabled in the configuration")

// save writes the table back to the keymap file.
func (ws *workspace) save() error {
	return keymap.SaveFile(ws.path, ws.table)
}

func (ws *workspace) close() error {
	if ws.detach != nil {
		ws.detach()
	}
	if ws.journal != nil {
		return ws.journal.Close()
	}
	return nil
}

// action resolves an action name, case-insensitively as a fallback.
func (ws *workspace) action(name string) (*keymap.Action, error) {
	if a, ok := ws.catalog.LookupByName(name); ok {
		return a, nil
	}
	for a := range ws.catalog.All() {
		if strings.EqualFold(a.Name, name) {
			return a, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", keymap.ErrUnknownAction, name)
}
