package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/voyage/internal/application/usecase"
	"github.com/bnema/voyage/internal/bootstrap"
	"github.com/bnema/voyage/internal/cli"
	"github.com/bnema/voyage/internal/domain/entity"
)

var (
	suggestJSON  bool
	suggestNoTab bool
)

var suggestCmd = &cobra.Command{
	Use:   "suggest <query>",
	Short: "Print address bar suggestions for a query",
	Long: `Runs the same matchers as the omnibox once, without debouncing, and prints
the merged list. Tabs of the last saved session are offered for switching
unless --no-tabs is set.

Examples:
  voyage suggest golang
  voyage suggest --json "go doc"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSuggest,
}

func init() {
	rootCmd.AddCommand(suggestCmd)
	suggestCmd.Flags().BoolVar(&suggestJSON, "json", false, "output as JSON")
	suggestCmd.Flags().BoolVar(&suggestNoTab, "no-tabs", false, "skip open-tab matches")
}

type suggestionRow struct {
	Kind     string `json:"kind"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
	URL      string `json:"url,omitempty"`
	TabID    string `json:"tab_id,omitempty"`
}

type suggestOutput struct {
	Query        string          `json:"query"`
	InlineSuffix string          `json:"inline_suffix,omitempty"`
	Items        []suggestionRow `json:"items"`
}

func runSuggest(cmd *cobra.Command, args []string) error {
	app, err := requireApp()
	if err != nil {
		return err
	}
	b, err := app.Browser()
	if err != nil {
		return err
	}
	query := strings.Join(args, " ")

	var candidates []*entity.Tab
	if !suggestNoTab {
		if candidates, err = sessionTabs(app, b); err != nil {
			return err
		}
	}

	out, err := b.Suggest.Query(app.Ctx(), usecase.QueryInput{Query: query, Tabs: candidates})
	if err != nil {
		return err
	}

	w := cmd.OutOrStdout()
	if suggestJSON {
		return writeSuggestJSON(w, query, out)
	}
	fmt.Fprintln(w, app.Theme.SuggestionList(out.Items, -1, 100))
	return nil
}

// sessionTabs opens a window on the last session long enough to copy its tabs.
func sessionTabs(app *cli.App, b *bootstrap.Browser) ([]*entity.Tab, error) {
	ctx := app.Ctx()
	windowID, err := b.OpenWindow(ctx)
	if err != nil {
		return nil, err
	}

	var candidates []*entity.Tab
	if err := b.Do(ctx, func() {
		if tabs, ok := b.Windows.Lookup(windowID); ok {
			candidates = usecase.TabCandidates(tabs)
		}
	}); err != nil {
		return nil, err
	}
	return candidates, b.CloseWindow(ctx, windowID)
}

func writeSuggestJSON(w io.Writer, query string, out *usecase.QueryOutput) error {
	result := suggestOutput{
		Query:        query,
		InlineSuffix: out.InlineSuffix,
		Items:        make([]suggestionRow, 0, len(out.Items)),
	}
	for _, item := range out.Items {
		result.Items = append(result.Items, suggestionRow{
			Kind:     item.Kind.String(),
			Title:    item.Title,
			Subtitle: item.Subtitle,
			URL:      item.URL,
			TabID:    string(item.TabID),
		})
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}
