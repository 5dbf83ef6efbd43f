package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/rebind/internal/exchange"
)

func newExportCmd(g *globals) *cobra.Command {
	var (
		format string
		output string
		all    bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the keymap as a shareable JSON or YAML document",
		Long: `Write the keymap as a shareable document.

Formats:
  json     changed bindings as a JSON document
  yaml     changed bindings as a YAML document
  catalog  every action with its defaults and current bindings (YAML)`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := openWorkspace(g, false)
			if err != nil {
				return err
			}
			defer ws.close()

			var data []byte
			opts := exchange.Options{All: all}
			switch strings.ToLower(format) {
			case "json":
				data, err = exchange.ExportJSON(ws.table, opts)
			case "yaml", "yml":
				data, err = exchange.ExportYAML(ws.table, opts)
			case "catalog":
				data, err = exchange.DumpCatalog(ws.catalog, ws.table, all)
			default:
				return fmt.Errorf("unknown format %q (json/yaml/catalog)", format)
			}
			if err != nil {
				return err
			}

			if output == "" || output == "-" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			return os.WriteFile(output, data, 0o644)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "json", "Output format (json/yaml/catalog)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file (default stdout)")
	cmd.Flags().BoolVarP(&all, "all", "a", false, "Include bindings equal to their defaults")
	return cmd
}

func newImportCmd(g *globals) *cobra.Command {
	var (
		format string
		dryRun bool
	)
	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Apply a shared JSON or YAML keymap document",
		Long: `Apply a shared keymap document. Each record is assigned in order through
conflict resolution, so imported bindings may clear existing ones and
records that collide with fixed bindings are skipped. Use "-" to read
from stdin.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := readInput(cmd.InOrStdin(), args[0])
			if err != nil {
				return err
			}
			if format == "" {
				format = formatFromPath(args[0], data)
			}

			ws, err := openWorkspace(g, !dryRun)
			if err != nil {
				return err
			}
			defer ws.close()

			var report exchange.Report
			switch strings.ToLower(format) {
			case "json":
				report, err = exchange.ImportJSON(ws.catalog, ws.table, data)
			case "yaml", "yml":
				report, err = exchange.ImportYAML(ws.catalog, ws.table, data)
			default:
				return fmt.Errorf("unknown format %q (json/yaml)", format)
			}
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			st := newStyles(out, g.color)
			for _, c := range report.Cleared {
				fmt.Fprintf(out, "cleared %s\n", c)
			}
			for _, e := range report.Skipped {
				fmt.Fprintln(out, st.warn.Render("skipped "+e.Error()))
			}
			fmt.Fprintf(out, "%d applied, %d skipped\n", report.Applied, len(report.Skipped))

			if dryRun || report.Applied == 0 {
				return nil
			}
			return ws.save()
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "", "Input format (json/yaml); detected when empty")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would change without saving")
	return cmd
}

func readInput(stdin io.Reader, path string) ([]byte, error) {
	if path == "-" {
		return io.ReadAll(stdin)
	}
	return os.ReadFile(path)
}

// formatFromPath picks a format from the file extension, falling back to
// sniffing the first non-space byte.
func formatFromPath(path string, data []byte) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return "json"
	case ".yaml", ".yml":
		return "yaml"
	}
	if trimmed := strings.TrimSpace(string(data)); strings.HasPrefix(trimmed, "{") {
		return "json"
	}
	return "yaml"
}
