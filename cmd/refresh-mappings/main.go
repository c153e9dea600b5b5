// Command refresh-mappings rebuilds the Sleeper-to-ESPN player identity
// cache. The default incremental run merges new matches over the existing
// cache; --full replaces it wholesale. The hand-curated core mapping file
// is read but never written.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"sort"

	"github.com/joho/godotenv"

	"sleeperscout/internal/api/sleeper"
	"sleeperscout/internal/config"
	"sleeperscout/internal/mapping"
	"sleeperscout/internal/models"
)

const sampleSize = 5

func main() {
	if err := run(); err != nil {
		slog.Error("Error refreshing mappings", "error", err)
		os.Exit(1)
	}
}

func run() error {
	full := flag.Bool("full", false, "perform full refresh (replace all cached mappings)")
	flag.Bool("update", false, "perform incremental update (default)")
	interactive := flag.Bool("interactive", false, "interactive mode for manual mapping")
	flag.Parse()

	if err := godotenv.Load(); err != nil {
		slog.Error("Error loading .env file", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}

	if *interactive {
		fmt.Println("Interactive manual-mapping mode is not implemented yet.")
		return nil
	}

	store := mapping.NewStore(cfg.Mapping.CoreFile, cfg.Mapping.CacheFile)
	api := sleeper.NewAPI(sleeper.NewClient())
	refresher := mapping.NewRefresher(store, api)

	report, err := refresher.Refresh(*full)
	if err != nil {
		return err
	}

	printReport(report, cfg.Mapping.CacheFile)
	return nil
}

func printReport(report models.DiffReport, cacheFile string) {
	fmt.Println("Refresh results:")
	fmt.Printf("  added:     %d\n", len(report.Added))
	fmt.Printf("  updated:   %d\n", len(report.Updated))
	fmt.Printf("  removed:   %d\n", len(report.Removed))
	fmt.Printf("  unmatched: %d\n", len(report.Unmatched))

	if len(report.Added) > 0 {
		fmt.Println("\nNewly matched (sample):")
		names := make([]string, 0, len(report.Added))
		for name := range report.Added {
			names = append(names, name)
		}
		sort.Strings(names)
		for i, name := range names {
			if i >= sampleSize {
				break
			}
			m := report.Added[name]
			fmt.Printf("  %s (%s - %s) confidence=%s\n", name, m.Position, m.Team, m.Confidence)
		}
	}

	if len(report.Unmatched) > 0 {
		fmt.Println("\nUnmatched (sample):")
		for i, p := range report.Unmatched {
			if i >= sampleSize {
				break
			}
			fmt.Printf("  %s (%s - %s)\n", p.Name, p.Position, p.Team)
		}
	}

	fmt.Printf("\nCache updated: %s\n", cacheFile)
}
