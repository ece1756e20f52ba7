package cmd

import (
	"fmt"
	"strings"

	"github.com/BenitThinot03/chat-verse-guide-ai/internal/chat/config"
	"github.com/BenitThinot03/chat-verse-guide-ai/internal/credential"
	"github.com/spf13/cobra"
)

var credentialCmd = &cobra.Command{
	Use:   "credential",
	Short: "Manage the stored API credential",
	Long: `Manage the API credential used for requests.

The credential is stored locally under the key "openai_api_key". When no
credential is stored, the token setting from the configuration file (or
the OPENAI_API_KEY environment variable) is used as a fallback.`,
}

var credentialSetCmd = &cobra.Command{
	Use:   "set <api-key>",
	Short: "Store the API credential",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key := strings.TrimSpace(args[0])
		if key == "" {
			return fmt.Errorf("API key must not be empty")
		}

		store, err := openCredentialStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Set(credential.Key, key); err != nil {
			return err
		}

		fmt.Println("Credential stored.")
		return nil
	},
}

var credentialShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the stored API credential (masked)",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCredentialStore()
		if err != nil {
			return err
		}
		defer store.Close()

		value, err := store.Get(credential.Key)
		if err != nil {
			return err
		}
		if value == "" {
			fmt.Println("No credential stored. Set one with: guidechat credential set <key>")
			return nil
		}

		fmt.Println(maskToken(value))
		return nil
	},
}

var credentialClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the stored API credential",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCredentialStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.Delete(credential.Key); err != nil {
			return err
		}

		fmt.Println("Credential removed.")
		return nil
	},
}

// openCredentialStore opens the store at the configured path.
func openCredentialStore() (*credential.Store, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	store, err := credential.Open(cfg.CredentialDB)
	if err != nil {
		return nil, fmt.Errorf("opening credential store: %w", err)
	}
	return store, nil
}

// maskToken shows only the first and last few characters of a token.
func maskToken(token string) string {
	if len(token) <= 8 {
		return strings.Repeat("*", len(token))
	}
	return token[:4] + strings.Repeat("*", len(token)-8) + token[len(token)-4:]
}

func init() {
	rootCmd.AddCommand(credentialCmd)
	credentialCmd.AddCommand(credentialSetCmd)
	credentialCmd.AddCommand(credentialShowCmd)
	credentialCmd.AddCommand(credentialClearCmd)
}
