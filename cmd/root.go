/*
Copyright © 2025 NAME HERE <EMAIL ADDRESS>
*/
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BenitThinot03/chat-verse-guide-ai/internal/chat/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "guidechat",
	Short: "A multimodal travel-guide chat client for the terminal",
	Long: `guidechat is a chat client for a hosted language model, with a travel
guide persona. Messages can combine text, images, and recorded audio.
You can configure the client using a TOML configuration file.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/guidechat/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// userConfigDir returns the per-user configuration directory.
func userConfigDir() string {
	home, err := os.UserHomeDir()
	cobra.CheckErr(err)
	return filepath.Join(home, ".config", "guidechat")
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	// Set environment variable prefix and automatic env
	viper.SetEnvPrefix("GUIDECHAT")
	viper.AutomaticEnv() // read in environment variables that match

	configDir := userConfigDir()
	defaultConfig := config.NewDefaultConfig(filepath.Join(configDir, "personas"))

	// Set default values from the config package
	viper.SetDefault("model", defaultConfig.Model)
	viper.SetDefault("base_url", defaultConfig.BaseURL)
	viper.SetDefault("token", defaultConfig.Token)
	viper.SetDefault("instructions", defaultConfig.Instructions)
	viper.SetDefault("persona_dirs", defaultConfig.PersonaDirs)
	viper.SetDefault("max_output_tokens", defaultConfig.MaxOutputTokens)
	viper.SetDefault("temperature", defaultConfig.Temperature)
	viper.SetDefault("credential_db", filepath.Join(configDir, "credentials.db"))

	// Bind environment variables
	viper.BindEnv("base_url", "GUIDECHAT_BASE_URL")
	viper.BindEnv("token", "GUIDECHAT_TOKEN")
	viper.BindEnv("model", "GUIDECHAT_MODEL")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(configDir)
		viper.SetConfigType("toml")
		viper.SetConfigName("config")
	}

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Fprintf(os.Stderr, "Error reading config file: %v\n", err)
		}
	}

	if verbose {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		fmt.Fprintln(os.Stderr, "  model:", viper.GetString("model"))
		fmt.Fprintln(os.Stderr, "  base_url:", viper.GetString("base_url"))
		fmt.Fprintln(os.Stderr, "  max_output_tokens:", viper.GetInt("max_output_tokens"))
		fmt.Fprintln(os.Stderr, "  temperature:", viper.GetFloat64("temperature"))
	}
}
