package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	backend "github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/berryair/concierge"
	"github.com/berryair/concierge/internal/adapters/file"
	"github.com/berryair/concierge/internal/adapters/redis"
	"github.com/berryair/concierge/internal/logging"
	"github.com/berryair/concierge/internal/services/auth"
	"github.com/berryair/concierge/internal/services/flights"
)

var rootCmd = &cobra.Command{
	Use:   "concierge",
	Short: "Concierge is the Berry Airlines booking assistant",
	Long:  `Concierge runs the Berry Airlines conversational assistant for searching flights, booking trips and checking reservations.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("store", "memory", "Session store backend: memory, file or redis")
	rootCmd.PersistentFlags().String("sessions-dir", filepath.Join(".concierge", "sessions"), "Directory for the file session store")
	rootCmd.PersistentFlags().String("redis-addr", "localhost:6379", "Redis address for the redis session store")
	rootCmd.PersistentFlags().String("redis-password", "", "Redis password")
	rootCmd.PersistentFlags().Int("redis-db", 0, "Redis database number")
	rootCmd.PersistentFlags().String("flights", "", "Path to a YAML flight inventory (defaults to the built-in demo inventory)")
	rootCmd.PersistentFlags().String("log-level", "warn", "Log level: debug, info, warn or error")
}

// newBot assembles a bot from the persistent flags shared by every command.
func newBot(cmd *cobra.Command) (*concierge.Bot, error) {
	levelName, _ := cmd.Flags().GetString("log-level")
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return nil, err
	}
	logger := logging.New(level)

	opts := []concierge.Option{concierge.WithLogger(logger)}

	storeOpts, err := storeOptions(cmd, logger)
	if err != nil {
		return nil, err
	}
	opts = append(opts, storeOpts...)

	inventoryPath, _ := cmd.Flags().GetString("flights")
	if inventoryPath != "" {
		inventory, err := flights.LoadInventoryFile(inventoryPath)
		if err != nil {
			return nil, fmt.Errorf("loading flight inventory: %w", err)
		}
		opts = append(opts, concierge.WithInventory(inventory))
	}

	return concierge.New(opts...), nil
}

func storeOptions(cmd *cobra.Command, logger *slog.Logger) ([]concierge.Option, error) {
	backendName, _ := cmd.Flags().GetString("store")
	switch backendName {
	case "memory":
		return nil, nil
	case "file":
		dir, _ := cmd.Flags().GetString("sessions-dir")
		return []concierge.Option{concierge.WithStore(file.New(dir))}, nil
	case "redis":
		addr, _ := cmd.Flags().GetString("redis-addr")
		password, _ := cmd.Flags().GetString("redis-password")
		db, _ := cmd.Flags().GetInt("redis-db")
		client := backend.NewClient(&backend.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		})
		logger.Info("using redis session store", "addr", addr, "db", db)
		return []concierge.Option{
			concierge.WithStore(redis.NewFromClient(client)),
			concierge.WithLocker(redis.NewLocker(client, "")),
			concierge.WithUserStore(auth.NewRedisStore(client)),
		}, nil
	default:
		return nil, fmt.Errorf("unknown store backend %q (expected memory, file or redis)", backendName)
	}
}
