// Package cmd implements the nanoshelf CLI: a standalone mode that runs the
// tree store over a file-backed host gateway, useful for inspecting and
// manipulating a shelf without a live note-taking application.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/arthur-debert/nanoshelf/host"
	"github.com/arthur-debert/nanoshelf/shelf"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "nanoshelf",
	Short: "Organize note blocks into notebooks, folders and documents",
	Long: `Nanoshelf maintains a navigable hierarchy of notebooks, folders and
document references over an existing collection of note blocks.

In standalone mode the shelf is persisted to a local JSON file and blocks
come from a YAML catalog.

Examples:
  nanoshelf new notebook "Work"
  nanoshelf new folder "Projects" --parent <work-id>
  nanoshelf list
  nanoshelf move <id> --to <parent-id> --at 0
  nanoshelf sort <parent-id>
  nanoshelf export --format markdown`,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default $XDG_CONFIG_HOME/nanoshelf/config.yaml)")
	rootCmd.PersistentFlags().String("data-file", "", "path to the shelf data file")
	rootCmd.PersistentFlags().String("catalog", "", "path to the YAML block catalog")
	rootCmd.PersistentFlags().String("log-level", "warn", "log level: debug|info|warn|error")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log to stderr as well")

	_ = viper.BindPFlag("data_file", rootCmd.PersistentFlags().Lookup("data-file"))
	_ = viper.BindPFlag("catalog", rootCmd.PersistentFlags().Lookup("catalog"))
	_ = viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		configDir, err := os.UserConfigDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(configDir, "nanoshelf"))
		}
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("NANOSHELF")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Missing config file is fine; flags and env cover everything.
	_ = viper.ReadInConfig()

	initLogging(viper.GetString("log_level"))
}

func initLogging(level string) {
	levels := map[string]slog.Level{
		"debug": slog.LevelDebug,
		"info":  slog.LevelInfo,
		"warn":  slog.LevelWarn,
		"error": slog.LevelError,
	}
	lvl, ok := levels[strings.ToLower(level)]
	if !ok {
		lvl = slog.LevelWarn
	}

	if verbose {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: lvl})))
		return
	}

	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}
	logDir := filepath.Join(cacheDir, "nanoshelf")
	if err := os.MkdirAll(logDir, 0755); err == nil {
		logFile, err := os.OpenFile(filepath.Join(logDir, "nanoshelf.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err == nil {
			slog.SetDefault(slog.New(slog.NewJSONHandler(logFile, &slog.HandlerOptions{Level: lvl})))
			return
		}
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
}

func dataFile() string {
	if path := viper.GetString("data_file"); path != "" {
		return path
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "nanoshelf.json"
	}
	return filepath.Join(configDir, "nanoshelf", "shelf.json")
}

// getStore builds an initialized store over the file gateway. The returned
// cleanup releases the gateway's lock file.
func getStore(ctx context.Context) (*shelf.Store, func(), error) {
	path := dataFile()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("failed to create data directory: %w", err)
	}
	gw, err := host.NewFileGateway(path, viper.GetString("catalog"), slog.Default())
	if err != nil {
		return nil, nil, err
	}
	store := shelf.New(gw)
	if err := store.Initialize(ctx); err != nil {
		_ = gw.Close()
		return nil, nil, err
	}
	return store, func() { _ = gw.Close() }, nil
}

// resolveItem turns a CLI argument into an item id: an exact id wins,
// otherwise a unique exact-name match is accepted.
func resolveItem(store *shelf.Store, arg string) (string, error) {
	if item := store.ItemByID(arg); item != nil {
		return item.ID, nil
	}
	var matches []string
	for _, item := range store.SearchItems(arg) {
		if strings.EqualFold(item.Name, arg) {
			matches = append(matches, item.ID)
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("no item matches %q", arg)
	case 1:
		return matches[0], nil
	}
	return "", fmt.Errorf("%q is ambiguous: %d items share that name, use the id", arg, len(matches))
}
