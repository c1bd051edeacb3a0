package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var reorganizeTarget string

var reorganizeCmd = &cobra.Command{
	Use:   "reorganize <folder>",
	Short: "Republish a folder's Google Docs sorted by modification time",
	Long: `Reads the Google Docs bookmarks in an Instapaper folder, looks up each
document's title, owner and modification time in Drive, and re-adds the
bookmarks to a new folder in ascending modification-time order with
enriched titles and descriptions.

The destination folder name defaults to the source name with a random
four-character suffix. Use --target to pick a name instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runReorganize,
}

func init() {
	reorganizeCmd.Flags().StringVar(&reorganizeTarget, "target", "",
		"destination folder name (default: source name plus random suffix)")
	rootCmd.AddCommand(reorganizeCmd)
}

func runReorganize(cmd *cobra.Command, args []string) error {
	if serviceFactory == nil {
		return errors.New("service factory not configured")
	}

	ctx := context.Background()
	sourceFolder := args[0]

	svc, err := serviceFactory.Reorganizer(ctx, configPath)
	if err != nil {
		return err
	}

	cmd.Printf("Reorganizing folder %q...\n", sourceFolder)

	result, err := svc.Reorganize(ctx, sourceFolder, reorganizeTarget)
	if err != nil {
		return fmt.Errorf("reorganize failed: %w", err)
	}

	for _, doc := range result.Added {
		cmd.Printf("  %s\n", doc.EnrichedTitle())
	}
	cmd.Printf("Added %d bookmarks to folder %q.\n", len(result.Added), result.TargetFolder)
	if result.Dropped > 0 {
		cmd.Printf("Skipped %d bookmarks whose Drive metadata could not be fetched.\n", result.Dropped)
	}

	return nil
}
