package main

import (
	"fmt"
	"io"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/dshills/rebind/internal/journal"
)

func newHistoryCmd(g *globals) *cobra.Command {
	var (
		action   string
		limit    int
		sessions bool
		prune    time.Duration
	)
	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recorded binding changes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := openJournal(g)
			if err != nil {
				return err
			}
			defer j.Close()

			out := cmd.OutOrStdout()
			st := newStyles(out, g.color)

			if prune > 0 {
				n, err := j.Prune(time.Now().Add(-prune))
				if err != nil {
					return err
				}
				fmt.Fprintf(out, "pruned %s changes older than %s\n", humanize.Comma(n), prune)
				return nil
			}

			if sessions {
				recs, err := j.Sessions(limit)
				if err != nil {
					return err
				}
				printSessions(out, st, recs)
				return nil
			}

			var entries []journal.Entry
			if action != "" {
				entries, err = j.HistoryFor(action, limit)
			} else {
				entries, err = j.History(limit)
			}
			if err != nil {
				return err
			}
			printEntries(out, st, entries)
			return nil
		},
	}
	cmd.Flags().StringVar(&action, "action", "", "Only show changes to one action")
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Maximum number of rows (0 for all)")
	cmd.Flags().BoolVar(&sessions, "sessions", false, "Show capture sessions instead of changes")
	cmd.Flags().DurationVar(&prune, "prune", 0, "Delete changes older than this age instead of listing")
	return cmd
}

func newStatsCmd(g *globals) *cobra.Command {
	var top int
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize the journal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			j, err := openJournal(g)
			if err != nil {
				return err
			}
			defer j.Close()

			out := cmd.OutOrStdout()
			st := newStyles(out, g.color)

			all, err := j.History(0)
			if err != nil {
				return err
			}
			recs, err := j.Sessions(0)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s changes in %s capture sessions\n",
				humanize.Comma(int64(len(all))), humanize.Comma(int64(len(recs))))
			if len(all) > 0 {
				fmt.Fprintf(out, "last change %s\n", humanize.Time(all[0].At))
			}

			counts, err := j.MostChanged(top)
			if err != nil {
				return err
			}
			if len(counts) == 0 {
				return nil
			}
			fmt.Fprintln(out, st.header.Render("MOST CHANGED"))
			for i, c := range counts {
				fmt.Fprintf(out, "%3s %s %s\n", humanize.Ordinal(i+1), cell(lipglossPlain, nameWidth, c.Action), humanize.Comma(int64(c.Count)))
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&top, "top", "n", 10, "Number of actions to rank")
	return cmd
}

func printEntries(w io.Writer, st styles, entries []journal.Entry) {
	if len(entries) == 0 {
		fmt.Fprintln(w, st.dim.Render("no changes recorded"))
		return
	}
	for _, e := range entries {
		line := fmt.Sprintf("%-16s %-9s %s[%s]", humanize.Time(e.At), e.Kind, e.Action, e.Slot)
		switch {
		case e.Combo != "" && e.Previous != "":
			line += fmt.Sprintf(" %s -> %s", e.Previous, e.Combo)
		case e.Combo != "":
			line += " = " + e.Combo
		}
		if e.Cause != "" {
			line += st.dim.Render(" by " + e.Cause)
		}
		fmt.Fprintln(w, line)
	}
}

func printSessions(w io.Writer, st styles, recs []journal.SessionRecord) {
	if len(recs) == 0 {
		fmt.Fprintln(w, st.dim.Render("no capture sessions recorded"))
		return
	}
	for _, r := range recs {
		result := r.Result
		switch r.Result {
		case journal.ResultApplied:
			result = st.ok.Render(result)
		case journal.ResultReserved, journal.ResultRejected:
			result = st.warn.Render(result)
		}
		line := fmt.Sprintf("%-16s %s[%s] %s", humanize.Time(r.Started), r.Action, r.Slot, result)
		if r.Combo != "" {
			line += " " + r.Combo
		}
		fmt.Fprintln(w, line)
	}
}
