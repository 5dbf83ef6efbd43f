// Package config provides the configuration system for rebind.
//
// Configuration is loaded with koanf in three layers, higher layers
// overriding lower:
//
//	┌─────────────────────────────┐
//	│  3. Environment Variables   │  ← REBIND_LOG_LEVEL, REBIND_KEYMAP, ...
//	├─────────────────────────────┤
//	│  2. User Config File        │  ← $XDG_CONFIG_HOME/rebind/config.toml
//	├─────────────────────────────┤
//	│  1. Built-in Defaults       │  ← Default()
//	└─────────────────────────────┘
//
// # Sub-packages
//
//   - loader: environment variable provider for koanf
//   - watcher: fsnotify file watching for live reload
//   - notify: change notification and observer pattern
//
// # Basic Usage
//
//	cfg, err := config.Load("")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Keymap.Path)
//
// # Live Reload
//
// A Manager keeps the current configuration and announces what changed:
//
//	m, err := config.NewManager("")
//	m.Notifier().SubscribePath("log", func(c notify.Change) {
//	    // c.Path is "log.level" or "log.file"
//	})
//	m.Watch()
//	defer m.Close()
//
// # File Format
//
//	[log]
//	level = "debug"
//	file = "~/.local/state/rebind/rebind.log"
//
//	[keymap]
//	path = "~/.config/rebind/keymap.toml"
//	watch = true
//
//	[journal]
//	enabled = true
//
//	[debug]
//	players = [0]
//
//	[frame]
//	rate = 60
package config
