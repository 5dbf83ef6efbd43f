package main

import (
	"github.com/spf13/cobra"
)

// globals holds the persistent flags shared by every subcommand.
type globals struct {
	configPath string
	keymapPath string
	noJournal  bool
	color      string
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:   "keymapctl",
		Short: "Inspect and edit rebind keymaps",
		Long: `keymapctl reads and writes the keymap used by rebind.

Edits go through the same conflict resolution as in-game remapping, so an
assignment clears any binding it collides with and fixed bindings cannot
be taken. Every change is recorded in the journal when it is enabled.

Examples:
  keymapctl list --changed             # Bindings that differ from defaults
  keymapctl search radar               # Fuzzy find actions
  keymapctl assign ToggleRadar F6      # Rebind the primary slot
  keymapctl assign CameraUp w -s secondary
  keymapctl export -f yaml -o mine.yaml
  keymapctl history -n 20`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&g.configPath, "config", "c", "", "Path to configuration file")
	pf.StringVarP(&g.keymapPath, "keymap", "k", "", "Path to keymap file (overrides config)")
	pf.BoolVar(&g.noJournal, "no-journal", false, "Do not record changes in the journal")
	pf.StringVar(&g.color, "color", "auto", "Colorize output (auto/always/never)")

	root.AddCommand(
		newListCmd(g),
		newSearchCmd(g),
		newAssignCmd(g),
		newClearCmd(g),
		newResetCmd(g),
		newExportCmd(g),
		newImportCmd(g),
		newHistoryCmd(g),
		newStatsCmd(g),
		newCheckCmd(g),
	)
	return root
}
