package spravodaj

import (
	"sort"
	"strings"
)

// Dedupe drops items whose (canonical URL, normalized title) pair was
// already seen, keeping the first occurrence. The key matches the
// intra-source key of the listing strategy, applied across sources here.
// Dedupe is idempotent.
func Dedupe(items []Item) []Item {
	seen := make(map[string]struct{}, len(items))
	out := make([]Item, 0, len(items))
	for _, it := range items {
		key := dedupeKey(it)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, it)
	}
	return out
}

func dedupeKey(it Item) string {
	return CanonicalURL(it.URL) + "\x00" + NormalizeKey(it.Title)
}

// SortItems orders items in place by descending score, then ascending
// published timestamp (unknown sorts first as the empty string), then
// ascending lowercased title. The sort is stable, so items with fully
// equal keys keep their relative order.
func SortItems(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		return itemLess(&items[i], &items[j])
	})
}

func itemLess(a, b *Item) bool {
	if a.Score != b.Score {
		return a.Score > b.Score
	}
	if ap, bp := a.PublishedKey(), b.PublishedKey(); ap != bp {
		return ap < bp
	}
	return strings.ToLower(a.Title) < strings.ToLower(b.Title)
}
