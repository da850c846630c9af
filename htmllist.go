package spravodaj

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"

	"github.com/rewizard001/osobny-spravodaj/registry"
)

// minLinkTextLen filters menu and icon links: visible anchor text shorter
// than this (in runes, after whitespace normalization) is never an article.
const minLinkTextLen = 12

// badHrefRe rejects pseudo-URLs that can never lead to an article.
var badHrefRe = regexp.MustCompile(`(?i)^(javascript:|mailto:|tel:|#)`)

// ListExtractor extracts article candidates from an HTML listing page by
// heuristics: anchors in the main content region, filtered for noise, with
// publish dates inferred from the surrounding text.
type ListExtractor struct {
	fetcher *Fetcher
	weights Weights
	rules   LinkRules
}

// listCandidate is one surviving anchor before scoring.
type listCandidate struct {
	title     string
	url       string
	published *time.Time
}

// Extract fetches the source's home URL and runs the candidate pipeline.
// A fetch failure and an extraction that filtered everything out produce
// deliberately distinct warnings, so an operator can tell a dead page from
// a page whose structure needs explicit selectors.
func (e *ListExtractor) Extract(ctx context.Context, src registry.SourceConfig, limit int, now time.Time) ([]Item, []string) {
	items := []Item{}

	if src.HomeURL == "" {
		return items, []string{fmt.Sprintf("[WARN] %s: missing urls.home for html_list", src.SourceID)}
	}

	base, err := url.Parse(src.HomeURL)
	if err != nil {
		return items, []string{fmt.Sprintf("[WARN] %s: invalid urls.home: %v", src.SourceID, err)}
	}

	body, err := e.fetcher.Fetch(ctx, src.HomeURL)
	if err != nil {
		return items, []string{fmt.Sprintf("[WARN] %s: fetch failed: %v", src.SourceID, err)}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return items, []string{fmt.Sprintf("[WARN] %s: HTML parse failed: %v", src.SourceID, err)}
	}

	candidates := e.collectCandidates(doc, src, base, now.Location())

	for _, c := range dedupeCandidates(candidates) {
		items = append(items, buildItem(src, e.weights, c.title, c.url, "", c.published, now))
	}

	// Keep only the top scorers; ties break deterministically on the
	// shared ordering key.
	SortItems(items)
	if len(items) > limit {
		items = items[:limit]
	}

	if len(items) == 0 {
		warn := fmt.Sprintf("[WARN] %s: html_list extracted 0 items (page structure may need explicit selectors)", src.SourceID)
		return items, []string{warn}
	}
	return items, []string{}
}

// collectCandidates walks the anchors of the page's primary content region
// and applies the candidate filters in order: pseudo-URL, minimum text
// length, same-domain after resolution, per-source link rule.
func (e *ListExtractor) collectCandidates(doc *goquery.Document, src registry.SourceConfig, base *url.URL, loc *time.Location) []listCandidate {
	// Prefer a main content region, then an article region, then the
	// whole document.
	region := doc.Find("main").First()
	if region.Length() == 0 {
		region = doc.Find("article").First()
	}
	links := doc.Find("a[href]")
	if region.Length() != 0 {
		links = region.Find("a[href]")
	}

	var candidates []listCandidate
	links.Each(func(_ int, sel *goquery.Selection) {
		href := strings.TrimSpace(sel.AttrOr("href", ""))
		if href == "" || badHrefRe.MatchString(href) {
			return
		}

		text := NormalizeSpace(sel.Text())
		if utf8.RuneCountInString(text) < minLinkTextLen {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref)
		if !sameHost(resolved, base) {
			return
		}
		link := CanonicalURL(resolved.String())
		if !e.rules.Allow(src, link) {
			return
		}

		// Date inference context: the link's own text plus its immediate
		// container's text, where listing pages usually print the date.
		ctx := text
		if parent := sel.Parent(); parent.Length() != 0 {
			ctx = NormalizeSpace(text + " " + parent.Text())
		}

		candidates = append(candidates, listCandidate{
			title:     text,
			url:       link,
			published: GuessDate(ctx, loc),
		})
	})
	return candidates
}

// dedupeCandidates drops repeated (canonical URL, normalized title) pairs,
// keeping the first occurrence in document order.
func dedupeCandidates(candidates []listCandidate) []listCandidate {
	seen := make(map[string]struct{}, len(candidates))
	out := make([]listCandidate, 0, len(candidates))
	for _, c := range candidates {
		key := c.url + "\x00" + NormalizeKey(c.title)
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, c)
	}
	return out
}
