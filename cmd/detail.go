package cmd

import (
	"context"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/haneulk/kortour/tourapi"
)

var (
	showImages bool
	showPet    bool
)

// detailCmd represents the detail command
var detailCmd = &cobra.Command{
	Use:   "detail <contentId>",
	Short: "Show everything known about one place",
	Long: `Fetch and display the common detail record for a place, its
per-type introduction fields, and optionally its image list and
pet-accompanied travel information.`,
	Args: cobra.ExactArgs(1),
	RunE: runDetail,
}

func init() {
	rootCmd.AddCommand(detailCmd)

	detailCmd.Flags().BoolVar(&showImages, "images", false, "also list image URLs")
	detailCmd.Flags().BoolVar(&showPet, "pet", true, "also show pet travel info when available")
}

func runDetail(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	contentID := args[0]

	resp, err := apiClient.DetailCommon(ctx, contentID)
	if err != nil {
		return err
	}
	details := resp.Items()
	if len(details) == 0 {
		fmt.Printf("No place found for content id %s.\n", contentID)
		return nil
	}
	detail := details[0]

	fmt.Printf("\n%s\n", detail.Title)
	fmt.Println(strings.Repeat("=", 80))
	if addr := strings.TrimSpace(detail.Addr1 + " " + detail.Addr2); addr != "" {
		fmt.Printf("Address:  %s\n", addr)
	}
	if detail.Tel != "" {
		fmt.Printf("Tel:      %s\n", detail.Tel)
	}
	if lng, lat := detail.Coordinates(); !math.IsNaN(lng) && !math.IsNaN(lat) {
		fmt.Printf("Location: %.5f, %.5f\n", lat, lng)
	}
	fmt.Printf("Type:     %s\n", contentTypeName(detail.ContentTypeID))
	if detail.Overview != "" {
		fmt.Printf("\n%s\n", detail.Overview)
	}

	printIntro(ctx, detail)

	if showImages {
		printImages(ctx, contentID)
	}
	if showPet {
		printPetInfo(ctx, contentID)
	}

	return nil
}

// printIntro renders whichever per-type introduction fields the
// upstream populated for this content type.
func printIntro(ctx context.Context, detail tourapi.TourDetail) {
	typeID, err := strconv.Atoi(detail.ContentTypeID)
	if err != nil {
		return
	}

	resp, err := apiClient.DetailIntro(ctx, detail.ContentID, tourapi.ContentType(typeID))
	if err != nil {
		logger.Warn().Err(err).Str("content_id", detail.ContentID).Msg("failed to fetch intro details")
		return
	}
	intros := resp.Items()
	if len(intros) == 0 {
		return
	}
	intro := intros[0]

	fields := []struct {
		label string
		value string
	}{
		{"Info center", intro.InfoCenter},
		{"Hours", intro.UseTime},
		{"Closed", intro.RestDate},
		{"Season", intro.UseSeason},
		{"Fees", intro.UseCost},
		{"Parking", intro.Parking},
		{"Pets", intro.ChkPet},
		{"Check-in", intro.CheckInTime},
		{"Check-out", intro.CheckOutTime},
		{"Rooms", intro.RoomCount},
		{"Reservation", intro.ReservationURL},
	}

	var present bool
	for _, f := range fields {
		if f.value == "" {
			continue
		}
		if !present {
			fmt.Printf("\nVisitor information:\n")
			present = true
		}
		fmt.Printf("  %-12s %s\n", f.label+":", f.value)
	}
}

func printImages(ctx context.Context, contentID string) {
	resp, err := apiClient.DetailImages(ctx, tourapi.DetailImageParams{ContentID: contentID})
	if err != nil {
		logger.Warn().Err(err).Str("content_id", contentID).Msg("failed to fetch images")
		return
	}
	images := resp.Items()
	if len(images) == 0 {
		return
	}

	// Upstream order is meaningful: the first image is the primary one.
	fmt.Printf("\nImages (%d):\n", len(images))
	for i, img := range images {
		marker := " "
		if i == 0 {
			marker = "*"
		}
		fmt.Printf("  %s %s\n", marker, img.OriginImgURL)
	}
}

func printPetInfo(ctx context.Context, contentID string) {
	info, err := apiClient.DetailPetTour(ctx, contentID)
	if err != nil {
		logger.Warn().Err(err).Str("content_id", contentID).Msg("failed to fetch pet travel info")
		return
	}
	if info == nil {
		// Expected for most places; say nothing.
		return
	}

	fmt.Printf("\nPet travel information:\n")
	fields := []struct {
		label string
		value string
	}{
		{"Leash", info.ChkPetLeash},
		{"Size", info.ChkPetSize},
		{"Areas", info.ChkPetPlace},
		{"Fees", info.ChkPetFee},
		{"Notes", info.PetInfo},
		{"Parking", info.Parking},
	}
	for _, f := range fields {
		if f.value != "" {
			fmt.Printf("  %-9s %s\n", f.label+":", f.value)
		}
	}
}
