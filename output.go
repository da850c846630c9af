package spravodaj

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// WriteItemsJSONL writes the record log: one JSON object per item per
// line, overwriting any previous run's file. Parent directories are
// created as needed.
func WriteItemsJSONL(items []Item, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create item log: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	enc.SetEscapeHTML(false)
	for _, it := range items {
		if err := enc.Encode(it); err != nil {
			return fmt.Errorf("failed to write item log: %w", err)
		}
	}
	return nil
}

// WriteDigest renders and writes the daily digest document.
func WriteDigest(items []Item, path string, generated time.Time) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	digest := RenderDigest(items, generated, DigestTitle)
	if err := os.WriteFile(path, []byte(digest), 0644); err != nil {
		return fmt.Errorf("failed to write digest: %w", err)
	}
	return nil
}

// WriteWarnings writes the warnings file, one warning per line. Callers
// only invoke this when at least one warning occurred.
func WriteWarnings(warnings []string, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	content := strings.Join(warnings, "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write warnings: %w", err)
	}
	return nil
}
