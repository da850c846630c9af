package spravodaj

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rewizard001/osobny-spravodaj/registry"
)

const testFeedXML = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
  <channel>
    <title>Mestské aktuality</title>
    <item>
      <title>  Nová   električková trať  </title>
      <link>https://example.com/clanky/elektricka?utm_source=rss&amp;utm_medium=feed</link>
      <description>Mesto začalo stavať novú trať.</description>
      <pubDate>Mon, 09 Feb 2026 08:00:00 +0000</pubDate>
    </item>
    <item>
      <title></title>
      <link>https://example.com/clanky/bez-titulku</link>
    </item>
    <item>
      <title>Bez odkazu</title>
      <link></link>
    </item>
    <item>
      <title>Starý článok</title>
      <link>https://example.com/clanky/stary</link>
      <pubDate>not a date at all</pubDate>
    </item>
    <item>
      <title>Tretí článok</title>
      <link>https://example.com/clanky/treti</link>
      <pubDate>Sun, 08 Feb 2026 10:00:00 +0000</pubDate>
    </item>
  </channel>
</rss>`

func feedSource(feedURL string) registry.SourceConfig {
	return registry.SourceConfig{
		SourceID:    "BA_RSS",
		Name:        "Mestské aktuality",
		FeedURL:     feedURL,
		FetchMethod: "rss",
		GeoDefault:  "BA",
		BriefLevel:  "standard",
		TagsDefault: []string{"mesto", "doprava"},
	}
}

// TestFeedExtractor_Extract verifies normalization, canonicalization,
// silent drops of incomplete entries and per-entry scoring.
func TestFeedExtractor_Extract(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, testFeedXML)
	}))
	defer server.Close()

	ex := &FeedExtractor{fetcher: NewFetcher(0), weights: DefaultWeights()}
	items, warns := ex.Extract(context.Background(), feedSource(server.URL), 40, testNow)

	assert.Empty(t, warns)
	require.Len(t, items, 3, "entries without both title and link are dropped silently")

	first := items[0]
	assert.Equal(t, "Nová električková trať", first.Title, "title should be whitespace-normalized")
	assert.Equal(t, "https://example.com/clanky/elektricka", first.URL, "tracking params should be stripped")
	assert.Equal(t, "Mesto začalo stavať novú trať.", first.Summary)
	require.NotNil(t, first.Published)
	assert.Equal(t, "BA_RSS", first.SourceID)
	assert.Equal(t, "BA", first.Geo)
	assert.Equal(t, []string{"mesto", "doprava"}, first.Tags)
	// Published yesterday relative to testNow: 2 recency + 3 geo.
	assert.Equal(t, 5, first.Score)

	assert.Nil(t, items[1].Published, "unparseable pubDate keeps published unset")
	assert.Equal(t, 3, items[1].Score, "no recency, geo only")
}

// TestFeedExtractor_Limit verifies the per-source item cap.
func TestFeedExtractor_Limit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, testFeedXML)
	}))
	defer server.Close()

	ex := &FeedExtractor{fetcher: NewFetcher(0), weights: DefaultWeights()}
	items, warns := ex.Extract(context.Background(), feedSource(server.URL), 1, testNow)

	assert.Empty(t, warns)
	assert.Len(t, items, 1)
}

// TestFeedExtractor_MissingURL verifies the missing-feed-URL warning path.
func TestFeedExtractor_MissingURL(t *testing.T) {
	ex := &FeedExtractor{fetcher: NewFetcher(0), weights: DefaultWeights()}

	items, warns := ex.Extract(context.Background(), feedSource(""), 40, testNow)

	assert.Empty(t, items)
	require.Len(t, warns, 1)
	assert.Contains(t, warns[0], "BA_RSS")
	assert.Contains(t, warns[0], "missing urls.feed")
}

// TestFeedExtractor_FetchFailure verifies that a transport failure yields
// zero items and exactly one warning, never an error.
func TestFeedExtractor_FetchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer server.Close()

	ex := &FeedExtractor{fetcher: NewFetcher(0), weights: DefaultWeights()}
	items, warns := ex.Extract(context.Background(), feedSource(server.URL), 40, testNow)

	assert.Empty(t, items)
	require.Len(t, warns, 1)
	assert.Contains(t, warns[0], "fetch failed")
}

// TestFeedExtractor_MalformedDocument verifies the parse-failure warning
// path.
func TestFeedExtractor_MalformedDocument(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, "this is not a feed")
	}))
	defer server.Close()

	ex := &FeedExtractor{fetcher: NewFetcher(0), weights: DefaultWeights()}
	items, warns := ex.Extract(context.Background(), feedSource(server.URL), 40, testNow)

	assert.Empty(t, items)
	require.Len(t, warns, 1)
	assert.Contains(t, warns[0], "feed parse failed")
}

// TestFeedExtractor_Timeout verifies that a slow source degrades to a
// warning within the configured timeout.
func TestFeedExtractor_Timeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		fmt.Fprint(w, testFeedXML)
	}))
	defer server.Close()

	ex := &FeedExtractor{fetcher: NewFetcher(50 * time.Millisecond), weights: DefaultWeights()}
	items, warns := ex.Extract(context.Background(), feedSource(server.URL), 40, testNow)

	assert.Empty(t, items)
	require.Len(t, warns, 1)
	assert.Contains(t, warns[0], "fetch failed")
}
