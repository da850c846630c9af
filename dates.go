package spravodaj

import (
	"regexp"
	"strconv"
	"time"

	"github.com/mmcdole/gofeed"
)

// Date patterns recognized in listing-page text, tried in order: day-first
// "1.2.2026" / "01.02.2026", then ISO "2026-02-01".
var (
	dayFirstDateRe = regexp.MustCompile(`\b(\d{1,2})\.(\d{1,2})\.(\d{4})\b`)
	isoDateRe      = regexp.MustCompile(`\b(\d{4})-(\d{2})-(\d{2})\b`)
)

// GuessDate scans free text for a publish date. The first pattern whose
// match is a valid calendar date wins; an invalid match (e.g. 32.13.2026)
// falls through to the next pattern. Returns nil when nothing matches.
func GuessDate(text string, loc *time.Location) *time.Time {
	text = NormalizeSpace(text)

	if m := dayFirstDateRe.FindStringSubmatch(text); m != nil {
		if t, ok := makeDate(atoi(m[3]), atoi(m[2]), atoi(m[1]), loc); ok {
			return &t
		}
	}
	if m := isoDateRe.FindStringSubmatch(text); m != nil {
		if t, ok := makeDate(atoi(m[1]), atoi(m[2]), atoi(m[3]), loc); ok {
			return &t
		}
	}
	return nil
}

// makeDate builds a midnight timestamp and rejects components that do not
// round-trip (time.Date would otherwise normalize Feb 30 into March).
func makeDate(year, month, day int, loc *time.Location) (time.Time, bool) {
	if year < 1 || month < 1 || month > 12 || day < 1 || day > 31 {
		return time.Time{}, false
	}
	t := time.Date(year, time.Month(month), day, 0, 0, 0, 0, loc)
	if t.Year() != year || int(t.Month()) != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}

func atoi(s string) int {
	n, _ := strconv.Atoi(s)
	return n
}

// Free-text layouts tried for feed entries whose structured timestamps are
// missing. gofeed already parses the common cases; these cover the stray
// feeds that put a bare date or a local format into <pubDate>.
var looseTimeLayouts = []string{
	time.RFC1123Z,
	time.RFC1123,
	time.RFC3339,
	time.RFC822Z,
	time.RFC822,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
	"02.01.2006",
}

// entryTime resolves a feed entry's publish time: structured parsed fields
// first, then a permissive parse of the raw date strings. Returns nil when
// no timestamp can be recovered.
func entryTime(entry *gofeed.Item) *time.Time {
	if entry.PublishedParsed != nil {
		return entry.PublishedParsed
	}
	if entry.UpdatedParsed != nil {
		return entry.UpdatedParsed
	}
	for _, raw := range []string{entry.Published, entry.Updated} {
		raw = NormalizeSpace(raw)
		if raw == "" {
			continue
		}
		for _, layout := range looseTimeLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				return &t
			}
		}
	}
	return nil
}
