package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var bookmarkUser string

// bookmarkCmd groups the bookmark subcommands
var bookmarkCmd = &cobra.Command{
	Use:   "bookmark",
	Short: "Manage saved places",
}

var bookmarkAddCmd = &cobra.Command{
	Use:   "add <contentId>",
	Short: "Save a place",
	Args:  cobra.ExactArgs(1),
	RunE:  runBookmarkAdd,
}

var bookmarkRemoveCmd = &cobra.Command{
	Use:     "rm <contentId>",
	Aliases: []string{"remove"},
	Short:   "Remove a saved place",
	Args:    cobra.ExactArgs(1),
	RunE:    runBookmarkRemove,
}

var bookmarkListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved places",
	RunE:  runBookmarkList,
}

func init() {
	rootCmd.AddCommand(bookmarkCmd)
	bookmarkCmd.AddCommand(bookmarkAddCmd)
	bookmarkCmd.AddCommand(bookmarkRemoveCmd)
	bookmarkCmd.AddCommand(bookmarkListCmd)

	bookmarkCmd.PersistentFlags().StringVarP(&bookmarkUser, "user", "u", "default", "user the bookmarks belong to")
}

func runBookmarkAdd(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	contentID := args[0]

	store, err := openBookmarks(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	// Resolve the place first so typos don't get bookmarked.
	resp, err := apiClient.DetailCommon(ctx, contentID)
	if err != nil {
		return err
	}
	details := resp.Items()
	if len(details) == 0 {
		return fmt.Errorf("no place found for content id %s", contentID)
	}

	if err := store.Add(ctx, bookmarkUser, contentID); err != nil {
		return err
	}

	fmt.Printf("✓ Bookmarked %s\n", details[0].Title)
	return nil
}

func runBookmarkRemove(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	store, err := openBookmarks(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.Remove(ctx, bookmarkUser, args[0]); err != nil {
		return err
	}

	fmt.Println("✓ Bookmark removed")
	return nil
}

func runBookmarkList(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	store, err := openBookmarks(ctx)
	if err != nil {
		return err
	}
	defer store.Close()

	bookmarks, err := store.List(ctx, bookmarkUser)
	if err != nil {
		return err
	}

	if len(bookmarks) == 0 {
		fmt.Println("No bookmarks saved.")
		return nil
	}

	fmt.Printf("\n%d saved places:\n", len(bookmarks))
	fmt.Println(strings.Repeat("-", 80))

	for _, b := range bookmarks {
		title := b.ContentID
		if resp, err := apiClient.DetailCommon(ctx, b.ContentID); err == nil {
			if details := resp.Items(); len(details) > 0 {
				title = details[0].Title
			}
		}
		fmt.Printf("• %s (content id %s, saved %s)\n",
			title, b.ContentID, b.CreatedAt.Format("2006-01-02"))
	}

	return nil
}
