package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// checkCmd validates credentials by asking the API who the token
// belongs to.
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify Tracker credentials and connectivity",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		me, err := newClient(cfg).Myself(cmd.Context())
		if err != nil {
			return fmt.Errorf("validating Tracker connection: %w", err)
		}

		fmt.Printf("Authenticated as %s (%s)\n", me.Display, me.Login)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}
