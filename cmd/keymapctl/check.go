package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dshills/rebind/internal/input/keymap"
)

var errCheckFailed = errors.New("keymap has problems")

func newCheckCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate the keymap file",
		Long: `Validate the keymap file. Reports records the engine would skip and
changed bindings that collide with another binding in an overlapping
context, which can happen when the file is edited by hand. Exits non-zero
when anything is found.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(g, false)
			if err != nil {
				return err
			}
			defer ws.close()

			out := cmd.OutOrStdout()
			st := newStyles(out, g.color)

			table := keymap.NewDefaultTable(ws.catalog, ws.contexts)
			report, err := ws.loader.LoadFileInto(table, ws.path)
			switch {
			case keymap.IsNotFound(err):
				fmt.Fprintf(out, "%s does not exist; defaults are in use\n", ws.path)
				return nil
			case err != nil:
				fmt.Fprintln(out, st.warn.Render(err.Error()))
				return errCheckFailed
			}

			problems := len(report.Skipped)
			for _, e := range report.Skipped {
				fmt.Fprintln(out, st.warn.Render("skipped: "+e.Error()))
			}
			for _, pair := range collisions(table) {
				problems++
				fmt.Fprintln(out, st.warn.Render(fmt.Sprintf("%s collides with %s on %s",
					pair[0].Action.Name, pair[1].Action.Name, pair[0].Combo)))
			}

			fmt.Fprintf(out, "%s: %d records applied\n", ws.path, report.Applied)
			if problems > 0 {
				return fmt.Errorf("%w: %d found", errCheckFailed, problems)
			}
			fmt.Fprintln(out, st.ok.Render("ok"))
			return nil
		},
	}
	return cmd
}

// collisions finds changed bindings that share a combo with another
// binding in an overlapping context. Default bindings are trusted.
func collisions(t *keymap.Table) [][2]*keymap.Binding {
	var out [][2]*keymap.Binding
	seen := make(map[[2]*keymap.Binding]bool)
	for b := range t.All() {
		if !b.IsBound() || b.IsDefault() || b.Status != keymap.StatusAssignable {
			continue
		}
		for other := range t.FindConflicting(b.Combo.Modifier, b.Combo.Input, b.Context()) {
			if other == b {
				continue
			}
			pair := [2]*keymap.Binding{b, other}
			if seen[[2]*keymap.Binding{other, b}] {
				continue
			}
			seen[pair] = true
			out = append(out, pair)
		}
	}
	return out
}
