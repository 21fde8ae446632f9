package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/sift/internal/core/domain"
	"github.com/custodia-labs/sift/internal/logger"
)

var (
	searchLimit int
	searchJSON  bool
)

// stdoutIsTerminal reports whether results go to a terminal. Piped output
// gets one path per line.
var stdoutIsTerminal = func() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search your files",
	Long: `Runs a single query against the vector search service and prints the
closest matches, nearest first.

When output is piped, only file paths are printed, one per line.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", domain.DefaultSearchLimit, "maximum number of results")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}

	if searchService == nil {
		return errNotConfigured("search")
	}

	ctx := cmd.Context()
	results, err := searchService.Search(ctx, query, searchLimit)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if historyService != nil {
		if err := historyService.Record(ctx, query, len(results)); err != nil {
			logger.Warn("recording search history: %v", err)
		}
	}

	switch {
	case searchJSON:
		return outputSearchJSON(cmd, results)
	case stdoutIsTerminal():
		return outputSearchTable(cmd, results)
	default:
		return outputSearchPaths(cmd, results)
	}
}

func outputSearchJSON(cmd *cobra.Command, results []domain.SearchResult) error {
	if results == nil {
		results = []domain.SearchResult{}
	}
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return nil
}

func outputSearchTable(cmd *cobra.Command, results []domain.SearchResult) error {
	if len(results) == 0 {
		cmd.Println("No results found.")
		return nil
	}

	cmd.Println("Results:")
	cmd.Println()
	for i := range results {
		r := results[i]
		cmd.Printf("  [%d] %s (%.3f)\n", i+1, r.Name(), r.Distance)
		cmd.Printf("      %s\n", r.FilePath)
		if !r.IsLocal() {
			cmd.Printf("      Location: %s\n", r.Location)
		}
		cmd.Println()
	}
	return nil
}

func outputSearchPaths(cmd *cobra.Command, results []domain.SearchResult) error {
	out := cmd.OutOrStdout()
	for i := range results {
		fmt.Fprintln(out, results[i].FilePath)
	}
	return nil
}
