package vectorize

import (
	"strings"
	"testing"

	"github.com/ltejedor/aihacks/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildRowsCombinesParts(t *testing.T) {
	resources := []core.WebResource{
		{
			ResourceID:      "r1",
			Date:            "2025-04-01T00:00:00Z",
			ReactionCount:   4,
			EvergreenRating: 3,
			Summary:         core.Summary{Title: "Agent Framework Guide", SummaryText: "Problem: choosing a framework"},
			Documentation:   "pip install agents",
			Tags:            []string{"agents", "llms"},
		},
	}

	rows := BuildRows(resources)
	require.Len(t, rows, 1)

	row := rows[0]
	want := "Agent Framework Guide\n\nProblem: choosing a framework\n\nDocumentation:\npip install agents"
	assert.Equal(t, want, row.Content)
	assert.Equal(t, core.IDFromContent(want), row.Id)
	assert.Equal(t, "r1", row.ResourceID)
	assert.Equal(t, "Agent Framework Guide", row.Title)
	assert.Equal(t, []string{"agents", "llms"}, row.Tags)
	assert.Equal(t, "2025-04-01T00:00:00Z", row.Date)
	assert.Equal(t, 3, row.EvergreenRating)
	assert.Equal(t, 4, row.ReactionCount)
	assert.Equal(t, "resource", row.ContentType)
}

func TestBuildRowsSkipsEmptyDocumentation(t *testing.T) {
	resources := []core.WebResource{
		{
			ResourceID: "r1",
			Summary:    core.Summary{Title: "Title Only", SummaryText: "Some summary"},
			// Whitespace documentation contributes nothing.
			Documentation: "   \n  ",
		},
	}

	rows := BuildRows(resources)
	require.Len(t, rows, 1)
	assert.False(t, strings.Contains(rows[0].Content, "Documentation:"))
}

func TestBuildRowsSkipsEmptyResources(t *testing.T) {
	resources := []core.WebResource{
		{ResourceID: "empty"},
		{ResourceID: "full", Summary: core.Summary{Title: "Kept"}},
	}

	rows := BuildRows(resources)
	require.Len(t, rows, 1)
	assert.Equal(t, "full", rows[0].ResourceID)
}
