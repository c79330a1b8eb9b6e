package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "releaseconductor",
	Short: "Cut GitHub prereleases with taxonomy-formatted release notes",
	Long: `ReleaseConductor cuts GitHub prereleases from release branches and rewrites
the auto-generated release notes into ticket-oriented sections.

Features:
  - Resolve the effective tag, bumping the patch when a prerelease line continues
  - Replace prior releases and tags, then tag the release branch tip
  - Reformat GitHub's generated notes into taxonomy sections with ticket deep links`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.releaseconductor.yaml)")
	rootCmd.PersistentFlags().String("token", "", "GitHub token (or set GITHUB_TOKEN env var)")
	rootCmd.PersistentFlags().String("openai-key", "", "OpenAI API key (or set OPENAI_API_KEY env var)")
	rootCmd.PersistentFlags().String("owner", "", "Repository owner")
	rootCmd.PersistentFlags().String("repo", "", "Repository name, or owner/repo")
	rootCmd.PersistentFlags().String("format", "table", "Output format: table, json, markdown")
	rootCmd.PersistentFlags().Bool("verbose", false, "Enable verbose output")

	bindFlags("", rootCmd.PersistentFlags(), "token", "openai-key", "owner", "repo", "format", "verbose")
}

// bindFlags binds each named flag into viper, namespaced under prefix.
func bindFlags(prefix string, flags *pflag.FlagSet, names ...string) {
	for _, name := range names {
		key := name
		if prefix != "" {
			key = prefix + "." + name
		}
		_ = viper.BindPFlag(key, flags.Lookup(name))
	}
}

// initConfig reads in config file and ENV variables if set.
func initConfig() {
	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		// Search config in home directory with name ".releaseconductor" (without extension).
		viper.AddConfigPath(home)
		viper.AddConfigPath(".")
		viper.SetConfigType("yaml")
		viper.SetConfigName(".releaseconductor")
	}

	// Environment variables
	viper.SetEnvPrefix("RELEASECONDUCTOR")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	viper.AutomaticEnv()

	// Also check GITHUB_TOKEN and OPENAI_API_KEY directly
	if viper.GetString("token") == "" {
		if token := os.Getenv("GITHUB_TOKEN"); token != "" {
			viper.Set("token", token)
		}
	}
	if viper.GetString("openai-key") == "" {
		if key := os.Getenv("OPENAI_API_KEY"); key != "" {
			viper.Set("openai-key", key)
		}
	}

	// If a config file is found, read it in.
	if err := viper.ReadInConfig(); err == nil {
		if viper.GetBool("verbose") {
			fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
		}
	}

	level := slog.LevelInfo
	if viper.GetBool("verbose") {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}
