package spravodaj

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/rewizard001/osobny-spravodaj/registry"
)

// FeedExtractor pulls items from an RSS or Atom feed. The gofeed library
// detects and normalizes both formats, so one strategy covers them.
type FeedExtractor struct {
	fetcher *Fetcher
	weights Weights
}

// Extract fetches and parses the source's feed URL. Every failure mode --
// missing URL, transport error, unparseable document -- returns an empty
// item list plus exactly one warning naming the source.
func (e *FeedExtractor) Extract(ctx context.Context, src registry.SourceConfig, limit int, now time.Time) ([]Item, []string) {
	items := []Item{}

	if src.FeedURL == "" {
		return items, []string{fmt.Sprintf("[WARN] %s: missing urls.feed", src.SourceID)}
	}

	body, err := e.fetcher.Fetch(ctx, src.FeedURL)
	if err != nil {
		return items, []string{fmt.Sprintf("[WARN] %s: fetch failed: %v", src.SourceID, err)}
	}

	feed, err := gofeed.NewParser().ParseString(body)
	if err != nil {
		return items, []string{fmt.Sprintf("[WARN] %s: feed parse failed: %v", src.SourceID, err)}
	}

	for _, entry := range feed.Items {
		if len(items) >= limit {
			break
		}
		title := NormalizeSpace(entry.Title)
		link := CanonicalURL(strings.TrimSpace(entry.Link))
		if title == "" || link == "" {
			// Noise, not an error: entries without both a title and a link
			// are dropped silently.
			continue
		}
		summary := NormalizeSpace(entry.Description)
		items = append(items, buildItem(src, e.weights, title, link, summary, entryTime(entry), now))
	}

	return items, []string{}
}
