package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pbaille/trip/internal/config"
	"github.com/pbaille/trip/internal/itinerary"
	"github.com/pbaille/trip/internal/persistence"
	"github.com/pbaille/trip/internal/storage"
	"github.com/spf13/cobra"
)

var (
	dbPath    string
	redisAddr string
	cfg       config.Config
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "trip",
		Short:        "Travel itinerary tracker",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load()
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("db") {
				loaded.DBPath = dbPath
			}
			if cmd.Flags().Changed("redis") {
				loaded.RedisAddr = redisAddr
			}
			cfg = loaded
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&dbPath, "db", config.DefaultDBPath(), "database path")
	rootCmd.PersistentFlags().StringVar(&redisAddr, "redis", "", "redis address (overrides --db)")

	rootCmd.AddCommand(daysCmd())
	rootCmd.AddCommand(showCmd())
	rootCmd.AddCommand(addCmd())
	rootCmd.AddCommand(editCmd())
	rootCmd.AddCommand(toggleCmd())
	rootCmd.AddCommand(rmCmd())
	rootCmd.AddCommand(expensesCmd())
	rootCmd.AddCommand(tipCmd())
	rootCmd.AddCommand(mapCmd())
	rootCmd.AddCommand(exportCmd())
	rootCmd.AddCommand(serveCmd())

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// openSlot picks redis when an address is configured, sqlite otherwise
func openSlot(ctx context.Context, c config.Config) (storage.Slot, error) {
	if c.RedisAddr != "" {
		return storage.NewRedis(ctx, c.RedisAddr, c.RedisPassword, c.RedisPrefix)
	}

	// Ensure directory exists
	dir := filepath.Dir(c.DBPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	return storage.NewSQLite(c.DBPath)
}

func openStore(ctx context.Context, c config.Config) (*itinerary.Store, storage.Slot, error) {
	slot, err := openSlot(ctx, c)
	if err != nil {
		return nil, nil, err
	}
	return itinerary.Open(ctx, persistence.New(slot)), slot, nil
}

func getStore(ctx context.Context) (*itinerary.Store, storage.Slot, error) {
	return openStore(ctx, cfg)
}

func findActivity(s *itinerary.Store, prefix string) (int, string, error) {
	day, a, ok := s.FindPrefix(prefix)
	if !ok {
		return 0, "", fmt.Errorf("activity not found: %s", prefix)
	}
	return day, a.ID, nil
}

// dayIndex converts a 1-based day number from the command line
func dayIndex(s *itinerary.Store, day int) (int, error) {
	if day < 1 || day > s.Len() {
		return 0, fmt.Errorf("day must be between 1 and %d", s.Len())
	}
	return day - 1, nil
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

func truncate(s string, max int) string {
	// Replace newlines with spaces for display
	s = strings.ReplaceAll(s, "\n", " ")
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
