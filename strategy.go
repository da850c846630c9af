package spravodaj

import (
	"context"
	"fmt"
	"time"

	"github.com/rewizard001/osobny-spravodaj/registry"
)

// Extractor is the shared contract of all extraction strategies: given one
// source configuration, produce up to limit items plus human-readable
// warnings. Implementations never return an error -- every failure mode
// degrades to zero items and a warning, so one broken source cannot abort
// its siblings.
type Extractor interface {
	Extract(ctx context.Context, src registry.SourceConfig, limit int, now time.Time) ([]Item, []string)
}

// StrategySet routes a source to the extraction strategy registered for
// its fetch method. Adding a fetch method means registering one more
// strategy here, nothing else.
type StrategySet struct {
	byMethod map[string]Extractor
}

// NewStrategySet builds the production strategy table: "rss" served by the
// feed strategy and "html_list" by the heuristic listing strategy.
func NewStrategySet(fetcher *Fetcher, weights Weights, rules LinkRules) *StrategySet {
	return &StrategySet{
		byMethod: map[string]Extractor{
			"rss":       &FeedExtractor{fetcher: fetcher, weights: weights},
			"html_list": &ListExtractor{fetcher: fetcher, weights: weights, rules: rules},
		},
	}
}

// Register adds or replaces the strategy for a fetch method.
func (s *StrategySet) Register(method string, ex Extractor) {
	s.byMethod[method] = ex
}

// Extract dispatches to the strategy for src's fetch method. An
// unrecognized method yields zero items and one warning.
func (s *StrategySet) Extract(ctx context.Context, src registry.SourceConfig, limit int, now time.Time) ([]Item, []string) {
	ex, ok := s.byMethod[src.FetchMethod]
	if !ok {
		warn := fmt.Sprintf("[WARN] %s: fetch_method=%q not supported (skipped)", src.SourceID, src.FetchMethod)
		return []Item{}, []string{warn}
	}
	return ex.Extract(ctx, src, limit, now)
}

// buildItem assembles a scored Item from one extracted entry. Tags are
// copied so the item never aliases the source configuration.
func buildItem(src registry.SourceConfig, w Weights, title, link, summary string, published *time.Time, now time.Time) Item {
	return Item{
		SourceID:   src.SourceID,
		SourceName: src.Name,
		Title:      title,
		URL:        link,
		Published:  isoTime(published),
		Summary:    summary,
		Geo:        src.GeoDefault,
		BriefLevel: src.BriefLevel,
		Tags:       append(make([]string, 0, len(src.TagsDefault)), src.TagsDefault...),
		Score:      Score(published, now, src.GeoDefault, src.Boost, src.ImpactBias, w),
	}
}
