package spravodaj

import (
	"strings"

	"github.com/rewizard001/osobny-spravodaj/registry"
)

// LinkRule decides whether a resolved same-domain link is an acceptable
// article candidate for one specific source. Rules exist to cut the menu
// and dashboard noise that survives the generic filters.
type LinkRule func(src registry.SourceConfig, link string) bool

// LinkRules maps a source id to its rule. Sources without a registered
// rule accept every link that passed the generic filters.
type LinkRules map[string]LinkRule

// Allow applies the rule registered for src, if any.
func (r LinkRules) Allow(src registry.SourceConfig, link string) bool {
	rule, ok := r[src.SourceID]
	if !ok {
		return true
	}
	return rule(src, link)
}

// Register installs or replaces the rule for a source id.
func (r LinkRules) Register(sourceID string, rule LinkRule) {
	r[sourceID] = rule
}

// RequirePath keeps only links containing the given path fragment,
// excluding the listing page's own URL.
func RequirePath(fragment string) LinkRule {
	return func(src registry.SourceConfig, link string) bool {
		return strings.Contains(link, fragment) && !sameTrimmed(link, src.HomeURL)
	}
}

// ExcludeHome keeps every link except the listing page itself. Useful for
// dashboard-style pages where the home URL links back to itself.
func ExcludeHome() LinkRule {
	return func(src registry.SourceConfig, link string) bool {
		return !sameTrimmed(link, src.HomeURL)
	}
}

// DefaultLinkRules returns the per-source rules used in production. These
// are configuration data: adding a source means adding an entry here (or
// registering one at runtime), never touching the extraction logic.
func DefaultLinkRules() LinkRules {
	return LinkRules{
		// City news portal: only article links under the "aktuality"
		// section are real news.
		"BA_CITY_NEWS": RequirePath("/transparentne-mesto/aktuality"),
		// Road-conditions dashboard: mostly self-links, keep the rest.
		"SR_ZJAZD": ExcludeHome(),
	}
}

func sameTrimmed(a, b string) bool {
	return strings.TrimRight(a, "/") == strings.TrimRight(b, "/")
}
