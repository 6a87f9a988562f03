package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/research-agent/internal/core/domain"
)

func TestCombinedSummary(t *testing.T) {
	tests := []struct {
		name    string
		results []domain.SearchResult
		want    string
	}{
		{
			name:    "nil results",
			results: nil,
			want:    "",
		},
		{
			name:    "no summaries",
			results: []domain.SearchResult{{Title: "a"}, {Title: "b"}},
			want:    "",
		},
		{
			name:    "single",
			results: []domain.SearchResult{{Summary: "only"}},
			want:    "1. only",
		},
		{
			name: "numbering keeps original positions",
			results: []domain.SearchResult{
				{Summary: "A"},
				{Summary: ""},
				{Summary: "C"},
			},
			want: "1. A\n\n3. C",
		},
		{
			name: "leading gap",
			results: []domain.SearchResult{
				{},
				{},
				{Summary: "third"},
				{Summary: "fourth"},
			},
			want: "3. third\n\n4. fourth",
		},
		{
			name: "multiline summary kept verbatim",
			results: []domain.SearchResult{
				{Summary: "line one\nline two"},
			},
			want: "1. line one\nline two",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CombinedSummary(tt.results))
		})
	}
}
