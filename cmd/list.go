package cmd

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/spf13/cobra"

	"github.com/haneulk/kortour/filter"
	"github.com/haneulk/kortour/tourapi"
)

var (
	areaCode    string
	contentType int
	sigunguCode string
	pageNo      int
	numOfRows   int
	filterExpr  string
	preset      string
)

// listCmd represents the list command
var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List tourist places for a region",
	Long: `List tourist places from the area-based listing endpoint,
optionally narrowed by content type, sub-region and a client-side
filter expression.`,
	RunE: runList,
}

// searchCmd represents the search command
var searchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Search tourist places by keyword",
	Args:  cobra.ExactArgs(1),
	RunE:  runSearch,
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(searchCmd)

	for _, c := range []*cobra.Command{listCmd, searchCmd} {
		c.Flags().StringVarP(&areaCode, "area", "a", "", "area code (e.g. 1 for Seoul)")
		c.Flags().IntVarP(&contentType, "type", "t", 0, "content type id (12, 14, 15, 25, 28, 32, 38, 39)")
		c.Flags().IntVarP(&pageNo, "page", "p", 1, "page number")
		c.Flags().IntVarP(&numOfRows, "rows", "n", tourapi.DefaultListingRows, "rows per page")
		c.Flags().StringVarP(&filterExpr, "filter", "f", "", "client-side filter expression")
		c.Flags().StringVar(&preset, "preset", "", "use a preset filter from config")
	}
	listCmd.Flags().StringVar(&sigunguCode, "sigungu", "", "sub-region (sigungu) code")
}

func runList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	resp, err := apiClient.AreaBasedList(ctx, tourapi.AreaBasedListParams{
		AreaCode:    areaCode,
		ContentType: tourapi.ContentType(contentType),
		SigunguCode: sigunguCode,
		NumOfRows:   numOfRows,
		PageNo:      pageNo,
	})
	if err != nil {
		return err
	}

	return printListing(resp)
}

func runSearch(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	resp, err := apiClient.SearchKeyword(ctx, tourapi.SearchKeywordParams{
		Keyword:     args[0],
		AreaCode:    areaCode,
		ContentType: tourapi.ContentType(contentType),
		NumOfRows:   numOfRows,
		PageNo:      pageNo,
	})
	if err != nil {
		return err
	}

	return printListing(resp)
}

// printListing normalizes, filters and renders one page of results.
func printListing(resp *tourapi.Envelope[tourapi.TourItem]) error {
	items := resp.Items()
	meta := resp.Meta()

	expr, err := resolveFilterExpression()
	if err != nil {
		return err
	}
	if expr != "" {
		f, err := filter.Compile(expr)
		if err != nil {
			return err
		}
		items, err = f.Apply(items)
		if err != nil {
			return err
		}
	}

	if len(items) == 0 {
		fmt.Println("No places found.")
		return nil
	}

	fmt.Printf("\nShowing %d of %d places (page %d):\n", len(items), meta.TotalCount, meta.PageNo)
	fmt.Println(strings.Repeat("-", 80))

	for _, item := range items {
		typeName := contentTypeName(item.ContentTypeID)
		fmt.Printf("• %s [%s]\n", item.Title, typeName)
		if item.Addr1 != "" {
			fmt.Printf("  %s\n", strings.TrimSpace(item.Addr1+" "+item.Addr2))
		}
		if lng, lat := item.Coordinates(); !math.IsNaN(lng) && !math.IsNaN(lat) {
			fmt.Printf("  %.5f, %.5f\n", lat, lng)
		}
		fmt.Printf("  content id: %s\n", item.ContentID)
	}

	return nil
}

// resolveFilterExpression determines the filter expression to use
func resolveFilterExpression() (string, error) {
	// Priority: command line filter > preset > default
	if filterExpr != "" {
		return filterExpr, nil
	}

	if preset != "" {
		if presetExpr, ok := cfg.Filter.Presets[preset]; ok {
			return presetExpr, nil
		}
		return "", fmt.Errorf("preset '%s' not found in config", preset)
	}

	return cfg.Filter.DefaultExpression, nil
}

func contentTypeName(id string) string {
	for _, t := range tourapi.AllContentTypes() {
		if fmt.Sprintf("%d", int(t)) == id {
			return t.Name()
		}
	}
	return id
}
