package cmd

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

var statsConcurrency int

// statsCmd represents the stats command
var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Aggregate place counts per region and content type",
	Long: `Collect per-region and per-content-type place counts from the
upstream totals and display them ranked, together with a summary.
A region whose count cannot be fetched is reported as zero.`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().IntVar(&statsConcurrency, "concurrency", 0, "max concurrent counting calls")
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if statsConcurrency > 0 {
		statsService.SetConcurrency(statsConcurrency)
	}

	// Summary fans out the counting calls; the tables below reuse the
	// same responses through the client's cache.
	summary, err := statsService.Summary(ctx)
	if err != nil {
		return err
	}

	regionStats, err := statsService.RegionStats(ctx)
	if err != nil {
		return err
	}
	typeStats := statsService.TypeStats(ctx)

	fmt.Printf("\nPlaces by region:\n")
	fmt.Println(strings.Repeat("-", 40))
	for _, stat := range regionStats {
		fmt.Printf("%-20s %10d\n", stat.AreaName, stat.Count)
	}

	fmt.Printf("\nPlaces by type:\n")
	fmt.Println(strings.Repeat("-", 40))
	for _, stat := range typeStats {
		fmt.Printf("%-20s %10d\n", stat.TypeName, stat.Count)
	}

	topRegions := make([]string, 0, len(summary.TopRegions))
	for _, stat := range summary.TopRegions {
		topRegions = append(topRegions, stat.AreaName)
	}
	topTypes := make([]string, 0, len(summary.TopTypes))
	for _, stat := range summary.TopTypes {
		topTypes = append(topTypes, stat.TypeName)
	}

	fmt.Printf("\nTotal places: %d\n", summary.TotalCount)
	fmt.Printf("Top regions:  %s\n", strings.Join(topRegions, ", "))
	fmt.Printf("Top types:    %s\n", strings.Join(topTypes, ", "))
	fmt.Printf("Updated:      %s\n", summary.LastUpdated.Format(time.RFC3339))

	return nil
}
