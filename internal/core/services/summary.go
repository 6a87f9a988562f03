package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/research-agent/internal/core/domain"
)

// CombinedSummary joins the summaries of results into one digest.
// Each entry is numbered by its 1-based position in results; results
// without a summary are skipped, so numbering may have gaps. Entries are
// separated by a blank line. Returns "" when no result has a summary.
func CombinedSummary(results []domain.SearchResult) string {
	parts := make([]string, 0, len(results))
	for i := range results {
		if !results[i].HasSummary() {
			continue
		}
		parts = append(parts, fmt.Sprintf("%d. %s", i+1, results[i].Summary))
	}
	return strings.Join(parts, "\n\n")
}
