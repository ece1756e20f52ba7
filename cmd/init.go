package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BenitThinot03/chat-verse-guide-ai/internal/chat/config"
	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default configuration file",
	Long: `Create a default configuration file at $HOME/.config/guidechat/config.toml.

The generated file contains the default model, request settings, and the
token fallback ($OPENAI_API_KEY). Use --force to overwrite an existing
file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configDir := userConfigDir()
		configFile := filepath.Join(configDir, "config.toml")

		if _, err := os.Stat(configFile); err == nil && !initForce {
			return fmt.Errorf("config file already exists: %s (use --force to overwrite)", configFile)
		}

		if err := os.MkdirAll(configDir, 0755); err != nil {
			return fmt.Errorf("creating config directory: %w", err)
		}

		defaultConfig := config.NewDefaultConfig(filepath.Join(configDir, "personas"))
		defaultConfig.CredentialDB = filepath.Join(configDir, "credentials.db")

		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file: %w", err)
		}
		defer f.Close()

		if err := toml.NewEncoder(f).Encode(defaultConfig); err != nil {
			return fmt.Errorf("writing config file: %w", err)
		}

		fmt.Printf("Created config file: %s\n", configFile)
		fmt.Println("\nNext steps:")
		fmt.Println("  1. Store your API key: guidechat credential set <key>")
		fmt.Println("  2. Start chatting:     guidechat chat")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite an existing config file")
}
