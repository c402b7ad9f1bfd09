// Package cli wires the eventops commands.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nhle/event-ops/internal/cache"
	"github.com/nhle/event-ops/internal/credential"
	"github.com/nhle/event-ops/internal/logging"
	"github.com/nhle/event-ops/internal/model"
	"github.com/nhle/event-ops/internal/snapshot"
)

var (
	// cfgPath is the --config flag value.
	cfgPath string

	// roleFlag overrides the configured role for one invocation.
	roleFlag string

	// cfg and log are initialized by the root PersistentPreRunE and
	// shared by every command.
	cfg *model.AppConfig
	log *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "eventops",
	Short: "Urgent-task dashboard for event volunteers and organizers",
	Long: `eventops derives a prioritized list of actionable tasks from an
event's shifts, sign-ups, and performance teams, and keeps it fresh
with periodic and manual refreshes.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if cfgPath == "" {
			cfgPath = model.DefaultConfigPath()
		}

		var err error
		cfg, err = model.LoadConfig(cfgPath)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if roleFlag != "" {
			cfg.Role = roleFlag
		}

		log = logging.New(cfg.Debug)
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if log != nil {
			_ = log.Sync()
		}
	},
}

// Execute runs the CLI.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "path to config file (default ~/.config/eventops/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&roleFlag, "role", "", "role to derive tasks for (organizer, admin, volunteer, team_director)")
}

// currentRole validates and returns the effective role.
func currentRole() (model.Role, error) {
	role := model.Role(cfg.Role)
	if !role.Valid() {
		return "", fmt.Errorf("invalid role %q: must be one of organizer, admin, volunteer, team_director", cfg.Role)
	}
	return role, nil
}

// buildProvider constructs the cache-backed snapshot provider from the
// loaded configuration and stored credentials.
func buildProvider() (snapshot.Provider, *cache.Cache, error) {
	if cfg.Backend.BaseURL == "" || cfg.Backend.EventID == "" {
		return nil, nil, fmt.Errorf("backend not configured: run 'eventops configure'")
	}

	token, err := credential.Get(credential.TokenKey)
	if err != nil {
		return nil, nil, fmt.Errorf("reading API token (run 'eventops configure'): %w", err)
	}

	client := snapshot.NewClient(cfg.Backend.BaseURL, cfg.Backend.EventID, token, log)

	c, err := cache.New(cfg.CachePath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening snapshot cache: %w", err)
	}

	return cache.NewFallbackProvider(client, c, cfg.Backend.EventID, log), c, nil
}
