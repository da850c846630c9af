package spravodaj

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/rewizard001/osobny-spravodaj/registry"
)

// RunOptions configures one fetch run.
type RunOptions struct {
	// Limit caps items per source. Zero falls back to DefaultLimit.
	Limit int
	// FetchTimeout bounds each HTTP request. Zero falls back to
	// DefaultFetchTimeout.
	FetchTimeout time.Duration
	// Concurrency caps parallel source fetches. Zero falls back to
	// DefaultConcurrency.
	Concurrency int
	// Now is the reference timestamp for scoring. Zero means time.Now in
	// the local zone.
	Now time.Time
	// Weights overrides the scoring table; nil map means DefaultWeights.
	Weights *Weights
	// Rules overrides the per-source link rules; nil means
	// DefaultLinkRules.
	Rules LinkRules
}

// Defaults for RunOptions zero values.
const (
	DefaultLimit       = 40
	DefaultConcurrency = 5
)

// RunResult is the collected output of one run: the deduplicated, ordered
// combined item list and the flat warning list in source order.
type RunResult struct {
	Items    []Item
	Warnings []string
	Started  time.Time
}

// Run executes the fetch pipeline over the given sources: every source is
// extracted independently (in parallel, bounded by Concurrency), then the
// per-source lists are joined, deduplicated and ordered. Source failures
// degrade to warnings and never abort sibling sources; Run itself cannot
// fail.
func Run(ctx context.Context, sources []registry.SourceConfig, opts RunOptions) RunResult {
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.Concurrency <= 0 {
		opts.Concurrency = DefaultConcurrency
	}
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	weights := DefaultWeights()
	if opts.Weights != nil {
		weights = *opts.Weights
	}
	rules := opts.Rules
	if rules == nil {
		rules = DefaultLinkRules()
	}

	strategies := NewStrategySet(NewFetcher(opts.FetchTimeout), weights, rules)

	// Fan out one goroutine per source behind a semaphore; results land in
	// per-source slots so the merge below is deterministic in source order
	// regardless of completion order.
	perSource := make([][]Item, len(sources))
	perWarns := make([][]string, len(sources))

	sem := make(chan struct{}, opts.Concurrency)
	var wg sync.WaitGroup
	for i, src := range sources {
		sem <- struct{}{}
		wg.Add(1)
		go func(i int, src registry.SourceConfig) {
			defer wg.Done()
			defer func() { <-sem }()

			items, warns := strategies.Extract(ctx, src, opts.Limit, now)
			log.Printf("INFO: %s: %d items, %d warnings", src.SourceID, len(items), len(warns))
			perSource[i] = items
			perWarns[i] = warns
		}(i, src)
	}
	wg.Wait()

	var all []Item
	warnings := []string{}
	for i := range sources {
		all = append(all, perSource[i]...)
		warnings = append(warnings, perWarns[i]...)
	}

	all = Dedupe(all)
	SortItems(all)

	return RunResult{Items: all, Warnings: warnings, Started: now}
}
