// Package cli implements the command-line interface.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/PeterTheobald/instapaper-gdocs/internal/adapters/driven/config/file"
	"github.com/PeterTheobald/instapaper-gdocs/internal/core/ports/driving"
	"github.com/PeterTheobald/instapaper-gdocs/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// ServiceFactory builds authenticated pipeline services on demand.
// Construction is deferred to command execution so that credential
// loading and OAuth flows only run for commands that need them.
type ServiceFactory interface {
	Reorganizer(ctx context.Context, configPath string) (driving.Reorganizer, error)
	Downloader(ctx context.Context, configPath string, progress driving.ProgressFunc) (driving.Downloader, error)
	Authenticate(ctx context.Context, configPath string) error
}

// serviceFactory is injected from main via SetServiceFactory.
var serviceFactory ServiceFactory

var (
	configPath  string
	verboseMode bool
)

var rootCmd = &cobra.Command{
	Use:   "instapaper-gdocs",
	Short: "Work with Google Docs saved in an Instapaper folder",
	Long: `instapaper-gdocs finds Google Docs bookmarks in an Instapaper folder,
enriches them with Drive metadata, and either downloads each document
as a .docx file or republishes the bookmarks into a new folder sorted
by modification time.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseMode)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", file.DefaultPath,
		"path to the credentials file")
	rootCmd.PersistentFlags().BoolVarP(&verboseMode, "verbose", "v", false,
		"enable verbose logging")
}

// SetServiceFactory injects the factory used to build pipeline services.
func SetServiceFactory(f ServiceFactory) {
	serviceFactory = f
}

// SetVersion overrides the reported version string.
func SetVersion(v string) {
	version = v
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
