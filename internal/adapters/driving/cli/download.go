package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var downloadCmd = &cobra.Command{
	Use:   "download <folder> <save-dir>",
	Short: "Download a folder's Google Docs as .docx files",
	Long: `Reads the Google Docs bookmarks in an Instapaper folder and exports
each document from Drive into <save-dir> as "{title}.docx". Documents
that fail to export are reported and skipped.`,
	Args: cobra.ExactArgs(2),
	RunE: runDownload,
}

func init() {
	rootCmd.AddCommand(downloadCmd)
}

func runDownload(cmd *cobra.Command, args []string) error {
	if serviceFactory == nil {
		return errors.New("service factory not configured")
	}

	ctx := context.Background()
	sourceFolder, saveDir := args[0], args[1]

	progress := func(title string, written, total int64) {
		if total > 0 {
			cmd.Printf("\rDownloading %q... %3d%%", title, written*100/total)
		} else {
			cmd.Printf("\rDownloading %q... %d bytes", title, written)
		}
	}

	svc, err := serviceFactory.Downloader(ctx, configPath, progress)
	if err != nil {
		return err
	}

	result, err := svc.Download(ctx, sourceFolder, saveDir)
	if err != nil {
		return fmt.Errorf("download failed: %w", err)
	}

	if len(result.Saved) > 0 {
		cmd.Println()
	}
	for _, path := range result.Saved {
		cmd.Printf("Saved %s\n", path)
	}
	for _, failure := range result.Failed {
		cmd.Printf("Failed %q: %v\n", failure.Title, failure.Err)
	}
	cmd.Printf("Downloaded %d documents (%d failed).\n", len(result.Saved), len(result.Failed))

	return nil
}
