package spravodaj

import (
	"net/url"
	"regexp"
	"strings"
)

var nonAlnumRe = regexp.MustCompile(`[^a-z0-9]+`)

// NormalizeSpace collapses all runs of whitespace to single spaces and
// trims the ends.
func NormalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// NormalizeKey reduces a title to the loose form used for deduplication:
// lowercased, with every non-alphanumeric run collapsed to a single space.
func NormalizeKey(s string) string {
	s = strings.ToLower(NormalizeSpace(s))
	return strings.TrimSpace(nonAlnumRe.ReplaceAllString(s, " "))
}

// CanonicalURL strips tracking query parameters (utm_*, fbclid, gclid,
// mc_cid, mc_eid) and any trailing '?' or '&'. The result is stable:
// canonicalizing twice equals canonicalizing once.
func CanonicalURL(raw string) string {
	if raw == "" {
		return raw
	}
	u, err := url.Parse(raw)
	if err != nil {
		return strings.TrimRight(raw, "?&")
	}
	if u.RawQuery != "" {
		q := u.Query()
		for key := range q {
			if isTrackingParam(key) {
				q.Del(key)
			}
		}
		u.RawQuery = q.Encode()
	}
	return strings.TrimRight(u.String(), "?&")
}

func isTrackingParam(key string) bool {
	k := strings.ToLower(key)
	switch k {
	case "fbclid", "gclid", "mc_cid", "mc_eid":
		return true
	}
	return strings.HasPrefix(k, "utm_")
}

// sameHost reports whether two parsed URLs point at the same host,
// case-insensitively.
func sameHost(a, b *url.URL) bool {
	return strings.EqualFold(a.Host, b.Host)
}
