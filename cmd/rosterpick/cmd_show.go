package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/ruminaider/rosterpick/internal/catalog"
	"github.com/ruminaider/rosterpick/internal/commands"
	"github.com/ruminaider/rosterpick/internal/store"
	"github.com/spf13/cobra"
)

var (
	showHistory bool
	showLimit   int
	showOutput  string
)

var showCmd = &cobra.Command{
	Use:   "show <variant>",
	Short: "Print a saved selection",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		v, err := catalog.ParseVariant(args[0])
		if err != nil {
			return err
		}
		return runShow(cmd.Context(), cmd.OutOrStdout(), v, showHistory, showLimit, showOutput)
	},
}

func init() {
	showCmd.Flags().BoolVar(&showHistory, "history", false, "list previous commits instead of the current selection")
	showCmd.Flags().IntVar(&showLimit, "limit", 10, "max commits with --history (0 = all)")
	showCmd.Flags().StringVarP(&showOutput, "output", "o", "table", "output format: table or json")
}

func runShow(ctx context.Context, w io.Writer, v catalog.Variant, history bool, limit int, output string) error {
	output = strings.ToLower(strings.TrimSpace(output))
	if output != "table" && output != "json" {
		return fmt.Errorf("unknown output format %q (want table or json)", output)
	}

	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	if history {
		commits, err := st.History(ctx, v, cfg.User.ID, limit)
		if err != nil {
			return err
		}
		if output == "json" {
			return writeJSON(w, historyJSON(commits))
		}
		renderHistoryTable(w, commits)
		return nil
	}

	cat, err := catalogSource().Load(ctx)
	if err != nil {
		return err
	}
	rows, err := commands.ShowRows(ctx, st, cat, v, cfg.User.ID, cfg.User.Name)
	if err != nil {
		return err
	}
	if output == "json" {
		return writeJSON(w, rows)
	}
	if len(rows) == 0 {
		fmt.Fprintf(w, "No %s saved.\n", v.Title())
		return nil
	}
	renderRowsTable(w, rows)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func renderRowsTable(w io.Writer, rows []commands.ShowRow) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"#", "ID", "LABEL"})
	for _, r := range rows {
		label := r.Label
		if r.Missing {
			label = "(missing from catalog)"
		}
		table.Append([]string{strconv.Itoa(r.Position), r.ID, label})
	}
	table.Render()
}

type commitJSON struct {
	ID          string   `json:"id"`
	CommittedAt string   `json:"committed_at"`
	IDs         []string `json:"ids"`
}

func historyJSON(commits []store.Commit) []commitJSON {
	out := make([]commitJSON, 0, len(commits))
	for _, c := range commits {
		ids := c.IDs
		if ids == nil {
			ids = []string{}
		}
		out = append(out, commitJSON{ID: c.ID, CommittedAt: c.CommittedAt.Format(time.RFC3339), IDs: ids})
	}
	return out
}

func renderHistoryTable(w io.Writer, commits []store.Commit) {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"COMMIT", "WHEN", "COUNT", "IDS"})
	for _, c := range commits {
		table.Append([]string{
			c.ID,
			c.CommittedAt.Local().Format(time.RFC3339),
			strconv.Itoa(len(c.IDs)),
			strings.Join(c.IDs, ", "),
		})
	}
	table.Render()
}
