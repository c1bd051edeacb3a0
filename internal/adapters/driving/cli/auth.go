package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Verify credentials and complete the Google sign-in flow",
	Long: `Loads the credentials file, signs in to Instapaper, and runs the
Google OAuth consent flow if no cached authorization exists. Run this
once before reorganize or download to get prompting out of the way.`,
	RunE: runAuth,
}

func init() {
	rootCmd.AddCommand(authCmd)
}

func runAuth(cmd *cobra.Command, _ []string) error {
	if serviceFactory == nil {
		return errors.New("service factory not configured")
	}

	if err := serviceFactory.Authenticate(context.Background(), configPath); err != nil {
		return fmt.Errorf("authentication failed: %w", err)
	}

	cmd.Println("Instapaper and Google credentials verified.")
	return nil
}
