package spravodaj

import (
	"fmt"
	"strings"
	"time"
)

// DigestTitle is the default heading of the rendered daily digest.
const DigestTitle = "Denný brief"

// geoOrder fixes the section order of the digest; anything else lands in
// the trailing "Ostatné" section.
var geoOrder = []string{"BA", "BSK", "SR", "SUSEDIA", "EU_GLOBAL"}

var geoTitles = map[string]string{
	"BA":        "Bratislava",
	"BSK":       "Bratislavský kraj",
	"SR":        "Slovensko",
	"SUSEDIA":   "Susedia",
	"EU_GLOBAL": "EÚ / globál",
}

// RenderDigest renders the grouped textual digest. Items are partitioned
// by geography into the fixed sections plus a trailing one for
// unrecognized codes; each section is re-sorted independently with the
// aggregator's ordering and empty sections are omitted.
func RenderDigest(items []Item, generated time.Time, title string) string {
	if title == "" {
		title = DigestTitle
	}

	lines := []string{
		"# " + title,
		"",
		fmt.Sprintf("_Generované: %s_", generated.Format("2006-01-02 15:04")),
		"",
	}

	if len(items) == 0 {
		lines = append(lines, "Žiadne položky.")
		return strings.Join(lines, "\n")
	}

	byGeo := make(map[string][]Item, len(geoOrder))
	var other []Item
	for _, it := range items {
		if _, known := geoTitles[it.Geo]; known {
			byGeo[it.Geo] = append(byGeo[it.Geo], it)
		} else {
			other = append(other, it)
		}
	}

	for _, geo := range geoOrder {
		lines = appendSection(lines, geoTitles[geo], byGeo[geo])
	}
	lines = appendSection(lines, "Ostatné", other)

	return strings.Join(lines, "\n")
}

func appendSection(lines []string, title string, items []Item) []string {
	if len(items) == 0 {
		return lines
	}
	SortItems(items)

	lines = append(lines, "## "+title, "")
	for _, it := range items {
		prefix := ""
		if when := formatWhen(it.Published); when != "" {
			prefix = when + " — "
		}
		lines = append(lines,
			fmt.Sprintf("**%s%s**", prefix, it.Title),
			"Téma: "+joinTags(it.Tags),
			fmt.Sprintf("Zdroj: %s | Score: %d", it.SourceName, it.Score),
			"Link: "+it.URL,
			"",
		)
	}
	return lines
}

func joinTags(tags []string) string {
	if len(tags) == 0 {
		return "—"
	}
	return strings.Join(tags, ", ")
}

// formatWhen renders a published timestamp for display. Timestamps that do
// not re-parse are shown as their leading date-and-minute portion rather
// than dropped.
func formatWhen(published *string) string {
	if published == nil || *published == "" {
		return ""
	}
	if t, err := time.Parse(time.RFC3339, *published); err == nil {
		return t.Format("2006-01-02 15:04")
	}
	if len(*published) > 16 {
		return (*published)[:16]
	}
	return *published
}
