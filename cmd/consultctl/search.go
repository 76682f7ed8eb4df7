package main

import (
	"strings"

	"github.com/spf13/cobra"
)

var searchK int

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntVar(&searchK, "k", 5, "number of results to return")
}

// searchCmd searches the use-case corpus directly
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the use-case corpus",
	Long: `Search the vector store for use cases similar to the query, without
running the language model.

Examples:
  consultctl search "churn prediction for subscriptions"
  consultctl search --k 10 "invoice OCR"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

// SearchRequest matches internal/http SearchRequest
type SearchRequest struct {
	Query string `json:"query"`
	K     int    `json:"k,omitempty"`
}

// SearchResponse matches internal/http SearchResponse
type SearchResponse struct {
	Query   string         `json:"query"`
	Count   int            `json:"count"`
	Results []SearchResult `json:"results"`
}

// SearchResult matches internal/http SearchResult
type SearchResult struct {
	ID       string                 `json:"id"`
	Content  string                 `json:"content"`
	Score    float32                `json:"score"`
	Metadata map[string]interface{} `json:"metadata"`
}

// runSearch handles the search command
func runSearch(cmd *cobra.Command, args []string) error {
	req := SearchRequest{
		Query: strings.Join(args, " "),
		K:     searchK,
	}

	var resp SearchResponse
	if err := postJSON("/api/v1/search", req, &resp); err != nil {
		return err
	}

	cmd.Printf("%d results for %q\n", resp.Count, resp.Query)
	for i, r := range resp.Results {
		source := "unknown"
		if s, ok := r.Metadata["source"].(string); ok && s != "" {
			source = s
		}
		cmd.Printf("\n%d. score=%.2f source=%s\n%s\n", i+1, r.Score, source, snippet(r.Content))
	}
	return nil
}

// snippet truncates long content for terminal output.
func snippet(s string) string {
	const max = 240
	s = strings.TrimSpace(s)
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
