package cmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nhle/tracker-mcp/internal/config"
	"github.com/nhle/tracker-mcp/internal/credential"
)

var (
	authToken string
	authOrgID string
	authClear bool
)

// authCmd stores (or removes) Tracker credentials in the system
// keyring so they do not have to live in the environment.
var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Store Tracker credentials in the system keyring",
	RunE:  runAuth,
}

func runAuth(cmd *cobra.Command, args []string) error {
	if authClear {
		if err := credential.Delete(config.KeyringToken); err != nil {
			return err
		}
		if err := credential.Delete(config.KeyringOrgID); err != nil {
			return err
		}
		fmt.Println("Stored credentials removed")
		return nil
	}

	if authToken == "" && authOrgID == "" {
		return errors.New("nothing to store: pass --token and/or --org-id")
	}

	if authToken != "" {
		if err := credential.Set(config.KeyringToken, authToken); err != nil {
			return err
		}
	}
	if authOrgID != "" {
		if err := credential.Set(config.KeyringOrgID, authOrgID); err != nil {
			return err
		}
	}

	fmt.Println("Credentials stored in keyring")
	return nil
}

func init() {
	authCmd.Flags().StringVar(&authToken, "token", "", "Yandex OAuth token")
	authCmd.Flags().StringVar(&authOrgID, "org-id", "", "Tracker organization id")
	authCmd.Flags().BoolVar(&authClear, "clear", false, "Remove stored credentials")
	rootCmd.AddCommand(authCmd)
}
