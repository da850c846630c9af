package spravodaj

import "time"

// Weights holds the tunable scoring table. Threading it explicitly (rather
// than a package-level table) keeps the scoring function pure and lets
// tests run against alternative tables.
type Weights struct {
	// Geo maps a geography code to its fixed weight; codes not in the map
	// fall back to GeoFallback.
	Geo         map[string]int
	GeoFallback int

	// Fresh is awarded for items published today, tomorrow or yesterday;
	// Recent for the rest of the trailing 7 calendar days.
	Fresh  int
	Recent int

	// ImpactBonus applies to urgent_boost/practical_boost sources,
	// ImpactPenalty to low_impact ones.
	ImpactBonus   int
	ImpactPenalty int
}

// DefaultWeights returns the production scoring table.
func DefaultWeights() Weights {
	return Weights{
		Geo: map[string]int{
			"BA":        3,
			"BSK":       2,
			"SR":        1,
			"SUSEDIA":   1,
			"EU_GLOBAL": 1,
		},
		GeoFallback:   1,
		Fresh:         2,
		Recent:        1,
		ImpactBonus:   1,
		ImpactPenalty: -1,
	}
}

// Score computes the relevance score for one item: recency + geography
// weight + source boost + impact bias. The sum is not clamped and may be
// negative.
func Score(published *time.Time, now time.Time, geo string, boost int, impactBias string, w Weights) int {
	return timeScore(published, now, w) + geoScore(geo, w) + boost + impactScore(impactBias, w)
}

// timeScore awards Fresh for today, tomorrow and yesterday, and Recent for
// the trailing 7 calendar days. Tomorrow scoring the same as today is a
// long-standing quirk of the rule set and is kept as is. A missing publish
// time scores 0.
func timeScore(published *time.Time, now time.Time, w Weights) int {
	if published == nil {
		return 0
	}
	loc := now.Location()
	d := calendarDay(*published, loc)
	today := calendarDay(now, loc)

	switch {
	case d.Equal(today), d.Equal(today.AddDate(0, 0, 1)):
		return w.Fresh
	case d.Equal(today.AddDate(0, 0, -1)):
		return w.Fresh
	case !d.Before(today.AddDate(0, 0, -7)) && !d.After(today):
		return w.Recent
	}
	return 0
}

func geoScore(geo string, w Weights) int {
	if weight, ok := w.Geo[geo]; ok {
		return weight
	}
	return w.GeoFallback
}

func impactScore(bias string, w Weights) int {
	switch bias {
	case "urgent_boost", "practical_boost":
		return w.ImpactBonus
	case "low_impact":
		return w.ImpactPenalty
	}
	return 0
}

// calendarDay truncates t to its local calendar date in loc.
func calendarDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}
