// Package registry reads the validated source registry produced by the
// upstream build pipeline and turns its entries into the typed source
// configurations the fetch engine runs on. The build pipeline exports the
// same document as registry.yaml and registry.json; both are accepted here.
package registry

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Document is the registry file as exported by the build pipeline. Fields
// the fetch engine does not consume are ignored on decode.
type Document struct {
	Version int     `json:"version" yaml:"version"`
	Sources []Entry `json:"sources" yaml:"sources"`
}

// Entry is one raw registry record. Optional fields may be absent or
// malformed; they degrade to zero values instead of failing the load.
type Entry struct {
	SourceID string `json:"source_id" yaml:"source_id"`
	Name     string `json:"name" yaml:"name"`

	// Enabled defaults to true when the field is missing.
	Enabled *bool `json:"enabled" yaml:"enabled"`

	URLs struct {
		Feed string `json:"feed" yaml:"feed"`
		Home string `json:"home" yaml:"home"`
	} `json:"urls" yaml:"urls"`

	Fetch struct {
		Method string `json:"method" yaml:"method"`
	} `json:"fetch" yaml:"fetch"`

	Geo struct {
		Default string `json:"default" yaml:"default"`
	} `json:"geo" yaml:"geo"`

	Brief struct {
		Level string `json:"level" yaml:"level"`
	} `json:"brief" yaml:"brief"`

	Scoring struct {
		// Boost is decoded loosely: the spreadsheet export has produced
		// ints, floats and strings like "6.0" over time.
		Boost      any    `json:"boost" yaml:"boost"`
		ImpactBias string `json:"impact_bias" yaml:"impact_bias"`
	} `json:"scoring" yaml:"scoring"`

	TagsDefault []string `json:"tags_default" yaml:"tags_default"`
}

// SourceConfig is the immutable per-source view consumed by the extraction
// strategies and the scoring function.
type SourceConfig struct {
	SourceID    string
	Name        string
	FeedURL     string
	HomeURL     string
	FetchMethod string
	GeoDefault  string
	BriefLevel  string
	Boost       int
	ImpactBias  string
	TagsDefault []string
}

// Load reads a registry document from path. YAML and JSON are both
// supported; the format is chosen by file extension (.yaml/.yml vs
// anything else). A missing or unreadable file is the caller's one fatal
// error condition.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read registry: %w", err)
	}

	var doc Document
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse registry YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &doc); err != nil {
			return nil, fmt.Errorf("failed to parse registry JSON: %w", err)
		}
	}

	return &doc, nil
}

// Pick resolves the ordered list of source configurations to run. Disabled
// sources are skipped. When ids is non-empty only the named sources are
// kept; ids that match nothing are not an error here -- the orchestrator
// reports them via Missing.
func Pick(doc *Document, ids []string) []SourceConfig {
	var wanted map[string]bool
	if len(ids) > 0 {
		wanted = make(map[string]bool, len(ids))
		for _, id := range ids {
			wanted[strings.TrimSpace(id)] = true
		}
	}

	out := make([]SourceConfig, 0, len(doc.Sources))
	for _, e := range doc.Sources {
		sid := strings.TrimSpace(e.SourceID)
		if sid == "" {
			continue
		}
		if wanted != nil && !wanted[sid] {
			continue
		}
		if e.Enabled != nil && !*e.Enabled {
			continue
		}

		tags := make([]string, 0, len(e.TagsDefault))
		for _, t := range e.TagsDefault {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}

		out = append(out, SourceConfig{
			SourceID:    sid,
			Name:        strings.TrimSpace(e.Name),
			FeedURL:     strings.TrimSpace(e.URLs.Feed),
			HomeURL:     strings.TrimSpace(e.URLs.Home),
			FetchMethod: strings.TrimSpace(e.Fetch.Method),
			GeoDefault:  strings.TrimSpace(e.Geo.Default),
			BriefLevel:  strings.TrimSpace(e.Brief.Level),
			Boost:       coerceInt(e.Scoring.Boost),
			ImpactBias:  strings.TrimSpace(e.Scoring.ImpactBias),
			TagsDefault: tags,
		})
	}
	return out
}

// Missing returns the requested ids that did not resolve to a picked
// source, sorted for stable warning output.
func Missing(picked []SourceConfig, ids []string) []string {
	if len(ids) == 0 {
		return nil
	}
	have := make(map[string]bool, len(picked))
	for _, s := range picked {
		have[s.SourceID] = true
	}
	var missing []string
	for _, id := range ids {
		id = strings.TrimSpace(id)
		if id != "" && !have[id] {
			missing = append(missing, id)
		}
	}
	sort.Strings(missing)
	return missing
}

// coerceInt converts the loosely typed boost value to an int. Anything
// that does not parse degrades to 0.
func coerceInt(v any) int {
	switch n := v.(type) {
	case nil:
		return 0
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0
		}
		return int(f)
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return 0
		}
		return int(f)
	default:
		return 0
	}
}
