package spravodaj

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var digestGenerated = time.Date(2026, 2, 10, 7, 0, 0, 0, time.UTC)

// TestRenderDigest_GroupsAndOrder verifies the fixed section order and
// that empty sections are omitted.
func TestRenderDigest_GroupsAndOrder(t *testing.T) {
	items := []Item{
		{Title: "Slovensko news", Geo: "SR", SourceName: "SR Zdroj", URL: "https://example.com/sr", Score: 2},
		{Title: "Bratislava news", Geo: "BA", SourceName: "BA Zdroj", URL: "https://example.com/ba", Score: 5, Tags: []string{"mesto"}},
	}

	digest := RenderDigest(items, digestGenerated, "")

	assert.True(t, strings.HasPrefix(digest, "# Denný brief\n"))
	assert.Contains(t, digest, "_Generované: 2026-02-10 07:00_")
	assert.Contains(t, digest, "## Bratislava")
	assert.Contains(t, digest, "## Slovensko")
	assert.NotContains(t, digest, "## Bratislavský kraj")
	assert.NotContains(t, digest, "## Susedia")
	assert.NotContains(t, digest, "## EÚ / globál")
	assert.NotContains(t, digest, "## Ostatné")

	// BA section comes before SR.
	assert.Less(t, strings.Index(digest, "## Bratislava"), strings.Index(digest, "## Slovensko"))
}

// TestRenderDigest_ItemLines verifies the per-item block: timestamp
// prefix, tags (with placeholder), source, score and link.
func TestRenderDigest_ItemLines(t *testing.T) {
	items := []Item{
		{
			Title:      "S dátumom",
			Geo:        "BA",
			SourceName: "Zdroj A",
			URL:        "https://example.com/a",
			Score:      6,
			Published:  strPtr("2026-02-09T08:00:00Z"),
			Tags:       []string{"doprava", "mesto"},
		},
		{
			Title:      "Bez dátumu",
			Geo:        "BA",
			SourceName: "Zdroj B",
			URL:        "https://example.com/b",
			Score:      3,
		},
	}

	digest := RenderDigest(items, digestGenerated, "")

	assert.Contains(t, digest, "**2026-02-09 08:00 — S dátumom**")
	assert.Contains(t, digest, "Téma: doprava, mesto")
	assert.Contains(t, digest, "Zdroj: Zdroj A | Score: 6")
	assert.Contains(t, digest, "Link: https://example.com/a")

	assert.Contains(t, digest, "**Bez dátumu**", "no timestamp prefix without a published time")
	assert.Contains(t, digest, "Téma: —", "empty tags render the placeholder")
}

// TestRenderDigest_UnknownGeoOnly verifies the scenario where only
// EU_GLOBAL and unrecognized geos are present: exactly those two sections
// appear.
func TestRenderDigest_UnknownGeoOnly(t *testing.T) {
	items := []Item{
		{Title: "Global news", Geo: "EU_GLOBAL", SourceName: "EU", URL: "https://example.com/eu", Score: 1},
		{Title: "Mystery news", Geo: "ATLANTIS", SourceName: "X", URL: "https://example.com/x", Score: 1},
	}

	digest := RenderDigest(items, digestGenerated, "")

	assert.Contains(t, digest, "## EÚ / globál")
	assert.Contains(t, digest, "## Ostatné")
	assert.NotContains(t, digest, "## Bratislava")
	assert.NotContains(t, digest, "## Bratislavský kraj")
	assert.NotContains(t, digest, "## Slovensko")
	assert.NotContains(t, digest, "## Susedia")
}

// TestRenderDigest_SectionsIndependentlySorted verifies that each bucket
// is re-sorted on the shared ordering key rather than sliced from the
// global order.
func TestRenderDigest_SectionsIndependentlySorted(t *testing.T) {
	items := []Item{
		{Title: "BA low", Geo: "BA", URL: "https://example.com/1", Score: 1},
		{Title: "SR high", Geo: "SR", URL: "https://example.com/2", Score: 9},
		{Title: "BA high", Geo: "BA", URL: "https://example.com/3", Score: 8},
	}

	digest := RenderDigest(items, digestGenerated, "")

	require.Contains(t, digest, "BA high")
	assert.Less(t, strings.Index(digest, "BA high"), strings.Index(digest, "BA low"),
		"within the BA section the higher score renders first")
}

// TestRenderDigest_Empty verifies the empty-state document.
func TestRenderDigest_Empty(t *testing.T) {
	digest := RenderDigest(nil, digestGenerated, "")

	assert.Contains(t, digest, "# Denný brief")
	assert.Contains(t, digest, "_Generované: 2026-02-10 07:00_")
	assert.Contains(t, digest, "Žiadne položky.")
}

// TestFormatWhen verifies timestamp display including the raw-prefix
// fallback for strings that do not re-parse.
func TestFormatWhen(t *testing.T) {
	assert.Equal(t, "", formatWhen(nil))
	assert.Equal(t, "2026-02-09 08:00", formatWhen(strPtr("2026-02-09T08:00:00Z")))
	assert.Equal(t, "2026-02-09T08:00", formatWhen(strPtr("2026-02-09T08:00:61+invalid")))
}
