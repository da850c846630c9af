// Package spravodaj implements the runtime fetch engine of the personal
// news digest: per-source extraction (syndication feeds and heuristic HTML
// listing pages), relevance scoring, cross-source deduplication and digest
// rendering.
package spravodaj

import "time"

// Item is one extracted entry, normalized to the common record shape. Items
// are value objects: created by an extraction strategy, passed through the
// aggregator unchanged, and terminal once rendered or logged.
type Item struct {
	SourceID   string   `json:"source_id"`
	SourceName string   `json:"source_name"`
	Title      string   `json:"title"`
	URL        string   `json:"url"`
	Published  *string  `json:"published"`
	Summary    string   `json:"summary"`
	Geo        string   `json:"geo"`
	BriefLevel string   `json:"brief_level"`
	Tags       []string `json:"tags"`
	Score      int      `json:"score"`
}

// PublishedKey returns the published timestamp for ordering purposes. An
// unknown publish time sorts as the empty string, i.e. lowest.
func (it *Item) PublishedKey() string {
	if it.Published == nil {
		return ""
	}
	return *it.Published
}

// isoTime formats a resolved publish time for the record log, or returns
// nil when the time could not be discovered.
func isoTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339)
	return &s
}
