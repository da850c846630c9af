// Command spravodaj runs one fetch over the source registry and writes the
// item log, the daily digest and, when anything went wrong along the way,
// a warnings file.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	spravodaj "github.com/rewizard001/osobny-spravodaj"
	"github.com/rewizard001/osobny-spravodaj/archive"
	"github.com/rewizard001/osobny-spravodaj/registry"
)

// getEnv returns the value of an environment variable or a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func main() {
	os.Exit(run())
}

func run() int {
	// A .env next to the binary may hold the defaults; absence is fine.
	_ = godotenv.Load()

	var (
		registryPath = flag.String("registry", getEnv("SPRAVODAJ_REGISTRY", ""), "path to the built registry (registry.json or registry.yaml)")
		sourcesFlag  = flag.String("sources", getEnv("SPRAVODAJ_SOURCES", ""), "comma-separated source_id allow-list (optional)")
		outDir       = flag.String("outdir", getEnv("SPRAVODAJ_OUTDIR", "out"), "output directory for the digest and warnings")
		dataDir      = flag.String("data-dir", getEnv("SPRAVODAJ_DATA_DIR", "data"), "data directory for items.jsonl")
		limit        = flag.Int("limit", getEnvInt("SPRAVODAJ_LIMIT", spravodaj.DefaultLimit), "per-source item limit")
		timeout      = flag.Duration("timeout", spravodaj.DefaultFetchTimeout, "per-request fetch timeout")
		concurrency  = flag.Int("concurrency", spravodaj.DefaultConcurrency, "parallel source fetches")
		archivePath  = flag.String("archive", getEnv("SPRAVODAJ_ARCHIVE", ""), "optional SQLite run archive path")
	)
	flag.Parse()

	if *registryPath == "" {
		fmt.Fprintln(os.Stderr, "Error: -registry is required")
		flag.Usage()
		return 1
	}

	doc, err := registry.Load(*registryPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return 2
	}

	var ids []string
	for _, id := range strings.Split(*sourcesFlag, ",") {
		if id = strings.TrimSpace(id); id != "" {
			ids = append(ids, id)
		}
	}

	sources := registry.Pick(doc, ids)

	warnings := []string{}
	for _, id := range registry.Missing(sources, ids) {
		warnings = append(warnings, fmt.Sprintf("[WARN] requested source_id not found/enabled in registry: %s", id))
	}

	result := spravodaj.Run(context.Background(), sources, spravodaj.RunOptions{
		Limit:        *limit,
		FetchTimeout: *timeout,
		Concurrency:  *concurrency,
	})
	warnings = append(warnings, result.Warnings...)

	itemsPath := filepath.Join(*dataDir, "items.jsonl")
	if err := spravodaj.WriteItemsJSONL(result.Items, itemsPath); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return 1
	}

	digestPath := filepath.Join(*outDir, "daily_brief.md")
	if err := spravodaj.WriteDigest(result.Items, digestPath, result.Started); err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		return 1
	}

	if len(warnings) > 0 {
		warningsPath := filepath.Join(*outDir, "run_warnings.txt")
		if err := spravodaj.WriteWarnings(warnings, warningsPath); err != nil {
			fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
			return 1
		}
		fmt.Fprintf(os.Stderr, "WARNINGS written to: %s\n", warningsPath)
	}

	if *archivePath != "" {
		if err := recordRun(*archivePath, result, warnings); err != nil {
			// The archive is best-effort history; a broken archive file
			// should not fail an otherwise successful run.
			fmt.Fprintf(os.Stderr, "WARN: run archive skipped: %v\n", err)
		}
	}

	fmt.Printf("Wrote: %s\n", itemsPath)
	fmt.Printf("Wrote: %s\n", digestPath)
	return 0
}

func recordRun(path string, result spravodaj.RunResult, warnings []string) error {
	store, err := archive.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()

	runID, err := store.RecordRun(result.Started, result.Items, warnings)
	if err != nil {
		return err
	}
	fmt.Printf("Archived run %s (%d items)\n", runID, len(result.Items))
	return nil
}
