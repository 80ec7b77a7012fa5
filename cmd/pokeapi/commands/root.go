// Package commands implements the pokeapi command-line interface.
package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/Sternrassler/pokeapi-client/pkg/client"
	"github.com/Sternrassler/pokeapi-client/pkg/logging"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCommand creates the pokeapi root command with all subcommands.
func NewRootCommand(version string) *cobra.Command {
	v := viper.New()

	cmd := &cobra.Command{
		Use:   "pokeapi",
		Short: "PokeAPI v2 command-line client",
		Long: `A command-line interface for the PokeAPI v2 catalog.

Fetch resources by id, name or URL, page through collections and resolve
navigation links. Concurrent requests for the same resource are collapsed
into one.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initConfig(cmd, v)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if v.GetBool("stats") {
				return printStats(cmd.ErrOrStderr())
			}
			return nil
		},
	}

	// Global flags
	flags := cmd.PersistentFlags()
	flags.StringP("config", "c", "", "config file (default is $HOME/.pokeapi/config.yml)")
	flags.String("base-url", client.DefaultBaseURL, "API root URL")
	flags.String("user-agent", "pokeapi-client/"+version, "User-Agent header sent with every request")
	flags.Duration("timeout", 30*time.Second, "HTTP request timeout")
	flags.StringP("output", "o", "table", "output format (table, json, yaml)")
	flags.String("log-level", "warn", "log level (debug, info, warn, error, disabled)")
	flags.Int("max-concurrency", 5, "maximum parallel requests for batch operations")
	flags.Int("retry-attempts", 3, "attempts per request for transient failures (1 disables retry)")
	flags.Int("page-size", 100, "page size used by list --all")
	flags.Bool("stats", false, "print request metrics to stderr when done")

	// Bind flags to viper
	for _, name := range []string{
		"config", "base-url", "user-agent", "timeout", "output", "log-level",
		"max-concurrency", "retry-attempts", "page-size", "stats",
	} {
		_ = v.BindPFlag(name, flags.Lookup(name))
	}

	cmd.AddCommand(newGetCommand(v))
	cmd.AddCommand(newListCommand(v))
	cmd.AddCommand(newResolveCommand(v))
	cmd.AddCommand(newKindsCommand(v))

	return cmd
}

// initConfig layers config file and POKEAPI_* environment variables under the
// flags, then sets up logging.
func initConfig(cmd *cobra.Command, v *viper.Viper) error {
	cfgFile := v.GetString("config")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else if home, err := os.UserHomeDir(); err == nil {
		// Search config in ~/.pokeapi/config.yml
		v.AddConfigPath(filepath.Join(home, ".pokeapi"))
		v.SetConfigType("yml")
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("POKEAPI")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("failed to read config: %w", err)
		}
	}

	level, err := logging.ParseLevel(v.GetString("log-level"))
	if err != nil {
		return err
	}
	logging.Setup(logging.Config{
		Level:  level,
		Pretty: true,
		Output: cmd.ErrOrStderr(),
	})

	logger := logging.NewLogger("cli")
	logger.Debug().
		Str("base_url", v.GetString("base-url")).
		Str("config", v.ConfigFileUsed()).
		Msg("Configuration loaded")

	return nil
}

// newClient creates a PokeAPI client from the effective configuration.
func newClient(v *viper.Viper) (*client.Client, error) {
	cfg := client.DefaultConfig(v.GetString("user-agent"))
	cfg.BaseURL = v.GetString("base-url")
	cfg.Timeout = v.GetDuration("timeout")
	cfg.MaxConcurrency = v.GetInt("max-concurrency")
	cfg.PageSize = v.GetInt("page-size")
	cfg.Retry.MaxAttempts = v.GetInt("retry-attempts")

	c, err := client.New(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}
	return c, nil
}
