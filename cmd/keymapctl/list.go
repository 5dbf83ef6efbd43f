package main

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"

	"github.com/dshills/rebind/internal/input/keymap"
)

func newListCmd(g *globals) *cobra.Command {
	var (
		context string
		all     bool
		changed bool
	)
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List bindings grouped by context",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(g, false)
			if err != nil {
				return err
			}
			defer ws.close()

			var actions []*keymap.Action
			for a := range ws.catalog.All() {
				if !all && !a.IsListed() {
					continue
				}
				if context != "" && !strings.EqualFold(string(a.Context), context) {
					continue
				}
				if changed && isDefault(ws.table, a) {
					continue
				}
				actions = append(actions, a)
			}
			printWarnings(cmd.ErrOrStderr(), ws.warnings)
			printActions(cmd.OutOrStdout(), newStyles(cmd.OutOrStdout(), g.color), ws, actions, true)
			return nil
		},
	}
	cmd.Flags().StringVar(&context, "context", "", "Only list one context (e.g. gameplay, radar)")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include hidden and debug actions")
	cmd.Flags().BoolVar(&changed, "changed", false, "Only list actions that differ from defaults")
	return cmd
}

func newSearchCmd(g *globals) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Fuzzy find actions by name or description",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(g, false)
			if err != nil {
				return err
			}
			defer ws.close()

			var (
				targets []string
				actions []*keymap.Action
			)
			for a := range ws.catalog.All() {
				if !a.IsListed() {
					continue
				}
				targets = append(targets, a.Name+" "+a.DisplayName)
				actions = append(actions, a)
			}

			matches := fuzzy.Find(strings.Join(args, " "), targets)
			if len(matches) == 0 {
				return fmt.Errorf("no action matches %q", strings.Join(args, " "))
			}
			if limit > 0 && len(matches) > limit {
				matches = matches[:limit]
			}

			found := make([]*keymap.Action, len(matches))
			for i, m := range matches {
				found[i] = actions[m.Index]
			}
			printActions(cmd.OutOrStdout(), newStyles(cmd.OutOrStdout(), g.color), ws, found, false)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "Maximum number of results (0 for all)")
	return cmd
}

func isDefault(t *keymap.Table, a *keymap.Action) bool {
	for _, b := range t.ForAction(a) {
		if !b.IsDefault() {
			return false
		}
	}
	return true
}

const (
	nameWidth  = 34
	comboWidth = 18
)

// printActions writes one row per action with both slots. Grouped output
// is ordered by context registry order with a heading per context;
// otherwise rows keep the given order and show the context inline.
func printActions(w io.Writer, st styles, ws *workspace, actions []*keymap.Action, grouped bool) {
	if len(actions) == 0 {
		fmt.Fprintln(w, st.dim.Render("no actions"))
		return
	}
	if grouped {
		order := make(map[keymap.ContextID]int)
		for i, c := range ws.contexts.All() {
			order[c.ID] = i
		}
		actions = slices.Clone(actions)
		slices.SortStableFunc(actions, func(a, b *keymap.Action) int {
			return order[a.Context] - order[b.Context]
		})
	}

	fmt.Fprintln(w, cell(st.header, nameWidth, "ACTION")+" "+
		cell(st.header, comboWidth, "PRIMARY")+" "+
		cell(st.header, comboWidth, "SECONDARY")+" "+
		st.header.Render("DESCRIPTION"))

	var current keymap.ContextID
	for _, a := range actions {
		if grouped && a.Context != current {
			current = a.Context
			name := string(current)
			if c, ok := ws.contexts.Get(current); ok {
				name = c.Name
			}
			fmt.Fprintln(w, st.context.Render("["+name+"]"))
		}
		row := cell(lipglossPlain, nameWidth, a.Name)
		for slot := keymap.SlotPrimary; slot < keymap.SlotCount; slot++ {
			row += " " + comboCell(st, ws.table, a, slot)
		}
		desc := a.DisplayName
		if !grouped {
			desc += " [" + string(a.Context) + "]"
		}
		if a.Status != keymap.StatusAssignable {
			desc += " (" + a.Status.String() + ")"
		}
		fmt.Fprintln(w, row+" "+st.dim.Render(desc))
	}
}

func comboCell(st styles, t *keymap.Table, a *keymap.Action, slot keymap.Slot) string {
	b, ok := t.Get(a, slot)
	if !ok || !b.IsBound() {
		return cell(st.unbound, comboWidth, "-")
	}
	if !b.IsDefault() {
		return cell(st.changed, comboWidth, b.Combo.String()+"*")
	}
	return cell(lipglossPlain, comboWidth, b.Combo.String())
}

func printWarnings(w io.Writer, warnings []string) {
	for _, msg := range warnings {
		fmt.Fprintln(w, "warning: "+msg)
	}
}
