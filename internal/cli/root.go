// Package cli implements the paydown command line.
package cli

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/mmynk/paydown/internal/config"
	"github.com/mmynk/paydown/internal/service"
	"github.com/mmynk/paydown/internal/storage"
	"github.com/mmynk/paydown/internal/storage/jsonfile"
	"github.com/mmynk/paydown/internal/storage/sqlite"
	"github.com/mmynk/paydown/pkg/logging"
)

var (
	configPath string
	backend    string

	// cfg is loaded before any subcommand runs.
	cfg *config.Config
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to a TOML config file (default $PAYDOWN_CONFIG)")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "Storage backend: sqlite or json (overrides DATA_BACKEND)")
}

var rootCmd = &cobra.Command{
	Use:   "paydown",
	Short: "Track debt paydown funded by betting, trading and savings",
	Long: `paydown keeps a ledger of bets, payments and debt cards. Settled
betting profit is converted into debt payments once it crosses
configurable milestones.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func loadConfig(cmd *cobra.Command, args []string) error {
	// Load .env file for local development (ignore errors in production)
	_ = godotenv.Load()

	path := configPath
	if path == "" {
		path = os.Getenv("PAYDOWN_CONFIG")
	}

	loaded, err := config.Load(path)
	if err != nil {
		return err
	}
	if backend != "" {
		loaded.DataBackend = backend
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	logging.Setup(loaded.LogLevel)
	cfg = loaded
	return nil
}

// openStore opens the configured storage backend.
func openStore(c *config.Config) (storage.Store, error) {
	switch c.DataBackend {
	case config.BackendJSON:
		store, err := jsonfile.New(c.SnapshotPath)
		if err != nil {
			return nil, err
		}
		return store, nil
	case config.BackendSQLite:
		store, err := sqlite.New(c.SQLiteDBPath)
		if err != nil {
			return nil, err
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unknown data backend %q", c.DataBackend)
	}
}

// openService opens the store and wraps it in a LedgerService. The caller
// must close the returned store.
func openService() (*service.LedgerService, storage.Store, error) {
	store, err := openStore(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize storage: %w", err)
	}
	return service.NewLedgerService(store), store, nil
}
