package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/rebind/internal/input"
	"github.com/dshills/rebind/internal/input/key"
	"github.com/dshills/rebind/internal/input/keymap"
)

// parseCombo parses "F7", "Shift+F7", "lctrl+mouse:left" or "wheel_up".
func parseCombo(spec string) (key.Key, input.Source, error) {
	spec = strings.TrimSpace(spec)
	mod := key.KeyNone
	inPart := spec
	if i := strings.LastIndex(spec, "+"); i > 0 {
		var err error
		if mod, err = key.ParseModifier(spec[:i]); err != nil {
			return key.KeyNone, input.Unbound, err
		}
		inPart = spec[i+1:]
	}
	in, err := input.ParseInput(inPart)
	if err != nil {
		return key.KeyNone, input.Unbound, err
	}
	return mod, in, nil
}

func parseSlot(name string) (keymap.Slot, error) {
	slot, ok := keymap.SlotFromName(name)
	if !ok {
		return 0, fmt.Errorf("%w: %q", keymap.ErrInvalidSlot, name)
	}
	return slot, nil
}

// reportCleared prints bindings displaced while fn runs.
func reportCleared(w io.Writer, t *keymap.Table, fn func() error) error {
	var cleared []keymap.Change
	unsubscribe := t.Subscribe(func(c keymap.Change) {
		if c.Kind == keymap.ChangeCleared && c.Cause != nil {
			cleared = append(cleared, c)
		}
	})
	err := fn()
	unsubscribe()
	for _, c := range cleared {
		fmt.Fprintf(w, "cleared %s[%s] (was %s)\n", c.Binding.Action.Name, c.Binding.Slot, c.Previous)
	}
	return err
}

func newAssignCmd(g *globals) *cobra.Command {
	var slotName, ruleName string
	cmd := &cobra.Command{
		Use:   "assign <action> <combo>",
		Short: "Bind a combo to an action slot",
		Long: `Bind a combo to an action slot, clearing any binding it conflicts with.

A combo is an input optionally preceded by one modifier key:
  F7, shift+f7, lctrl+1, wheel_up, mouse:left, alt+mouse:right`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := parseSlot(slotName)
			if err != nil {
				return err
			}
			mod, in, err := parseCombo(args[1])
			if err != nil {
				return err
			}

			ws, err := openWorkspace(g, true)
			if err != nil {
				return err
			}
			defer ws.close()

			a, err := ws.action(args[0])
			if err != nil {
				return err
			}
			rule := a.RuleFor(in)
			if ruleName != "" {
				var ok bool
				if rule, ok = keymap.RuleFromName(ruleName); !ok {
					return fmt.Errorf("unknown rule %q", ruleName)
				}
			}

			out := cmd.OutOrStdout()
			var b *keymap.Binding
			err = reportCleared(out, ws.table, func() error {
				b, err = ws.table.Assign(a, slot, mod, in, rule)
				return err
			})
			switch {
			case keymap.IsConflict(err, keymap.ConflictFixed):
				return fmt.Errorf("%s is reserved: %w", args[1], err)
			case keymap.IsConflict(err, keymap.ConflictSameAction):
				fmt.Fprintf(out, "%s already uses %s\n", a.Name, args[1])
				return nil
			case err != nil:
				return err
			}
			if err := ws.save(); err != nil {
				return err
			}
			fmt.Fprintln(out, b.String())
			return nil
		},
	}
	cmd.Flags().StringVarP(&slotName, "slot", "s", "primary", "Slot to assign (primary/secondary)")
	cmd.Flags().StringVar(&ruleName, "rule", "", "Trigger rule (pressed/down/released); default from the action")
	return cmd
}

func newClearCmd(g *globals) *cobra.Command {
	var slotName string
	cmd := &cobra.Command{
		Use:   "clear <action>",
		Short: "Unbind an action slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			slot, err := parseSlot(slotName)
			if err != nil {
				return err
			}
			ws, err := openWorkspace(g, true)
			if err != nil {
				return err
			}
			defer ws.close()

			a, err := ws.action(args[0])
			if err != nil {
				return err
			}
			b, ok := ws.table.Get(a, slot)
			if !ok || !b.IsBound() {
				fmt.Fprintf(cmd.OutOrStdout(), "%s[%s] is already unbound\n", a.Name, slot)
				return nil
			}
			if err := ws.table.Remove(b); err != nil {
				return err
			}
			if err := ws.save(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), b.String())
			return nil
		},
	}
	cmd.Flags().StringVarP(&slotName, "slot", "s", "primary", "Slot to clear (primary/secondary)")
	return cmd
}

func newResetCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reset [action...]",
		Short: "Restore default bindings",
		Long: `Restore default bindings. With no arguments every binding is reset;
otherwise only the named actions are, through normal conflict resolution.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(g, true)
			if err != nil {
				return err
			}
			defer ws.close()

			out := cmd.OutOrStdout()
			if len(args) == 0 {
				ws.table.ResetToDefaults(ws.catalog)
				if err := ws.save(); err != nil {
					return err
				}
				fmt.Fprintln(out, "all bindings reset to defaults")
				return nil
			}

			for _, name := range args {
				a, err := ws.action(name)
				if err != nil {
					return err
				}
				if err := reportCleared(out, ws.table, func() error { return resetAction(ws.table, a) }); err != nil {
					return fmt.Errorf("%s: %w", a.Name, err)
				}
				for _, b := range ws.table.ForAction(a) {
					fmt.Fprintln(out, b.String())
				}
			}
			return ws.save()
		},
	}
	return cmd
}

func resetAction(t *keymap.Table, a *keymap.Action) error {
	for slot := keymap.SlotPrimary; slot < keymap.SlotCount; slot++ {
		def, ok := a.DefaultFor(slot)
		if ok {
			if _, err := t.Assign(a, slot, def.Modifier, def.Input, def.Rule); err != nil &&
				!keymap.IsConflict(err, keymap.ConflictSameAction) {
				return err
			}
			continue
		}
		if b, ok := t.Get(a, slot); ok && b.IsBound() {
			if err := t.Remove(b); err != nil {
				return err
			}
		}
	}
	return nil
}
