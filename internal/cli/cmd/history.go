package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/voyage/internal/application/usecase"
	"github.com/bnema/voyage/internal/domain/entity"
)

var (
	historyJSON bool
	historyMax  int
)

const defaultHistoryMax = 50

var historyCmd = &cobra.Command{
	Use:   "history [query]",
	Short: "List or search browsing history",
	Long: `Without a query, lists the most recent pages. With a query, lists pages
whose URL or title contains it.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runHistory,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all history",
	Args:  cobra.NoArgs,
	RunE:  runHistoryClear,
}

var historyDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete one history entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryDelete,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyClearCmd, historyDeleteCmd)

	historyCmd.Flags().BoolVar(&historyJSON, "json", false, "output as JSON")
	historyCmd.Flags().IntVar(&historyMax, "max", defaultHistoryMax, "maximum entries to show")
}

type historyRow struct {
	ID          int64     `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	VisitCount  int64     `json:"visit_count"`
	LastVisited time.Time `json:"last_visited"`
}

func runHistory(cmd *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	b, err := app.Browser()
	if err != nil {
		return err
	}

	var entries []*entity.HistoryEntry
	if len(args) == 1 {
		out, searchErr := b.History.Search(app.Ctx(), usecase.SearchInput{Query: args[0], Limit: historyMax})
		if searchErr != nil {
			return searchErr
		}
		entries = out.Entries
	} else if entries, err = b.History.GetRecent(app.Ctx(), historyMax, 0); err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if historyJSON {
		return writeHistoryJSON(w, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(w, app.Theme.Faint.Render("  no history"))
		return nil
	}
	for _, e := range entries {
		fmt.Fprintln(w, app.Theme.Faint.Render(fmt.Sprintf("%5d", e.ID)), app.Theme.HistoryLine(e))
	}
	return nil
}

func writeHistoryJSON(w io.Writer, entries []*entity.HistoryEntry) error {
	rows := make([]historyRow, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, historyRow{
			ID:          e.ID,
			URL:         e.URL,
			Title:       e.Title,
			VisitCount:  e.VisitCount,
			LastVisited: e.LastVisited,
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(rows)
}

func runHistoryClear(cmd *cobra.Command, _ []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	b, err := app.Browser()
	if err != nil {
		return err
	}
	if err := b.History.ClearAll(app.Ctx()); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), app.Theme.Done.Render("History cleared"))
	return nil
}

func runHistoryDelete(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid history id %q", args[0])
	}
	app, err := requireApp()
	if err != nil {
		return err
	}
	b, err := app.Browser()
	if err != nil {
		return err
	}
	if err := b.History.Delete(app.Ctx(), id); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), app.Theme.Done.Render("Entry deleted"))
	return nil
}
