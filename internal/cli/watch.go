package cli

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/nhle/event-ops/internal/generate"
	"github.com/nhle/event-ops/internal/model"
	"github.com/nhle/event-ops/internal/refresh"
	"github.com/nhle/event-ops/internal/taskstore"
	"github.com/nhle/event-ops/internal/ui/dashboard"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the live task dashboard",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		role, err := currentRole()
		if err != nil {
			return err
		}

		provider, c, err := buildProvider()
		if err != nil {
			return err
		}
		defer c.Close()

		store := taskstore.New(log)
		gen := generate.New(store, provider, cfg.UserID, log)

		orch := refresh.New(gen, store, role, refresh.Config{
			AutoRefresh:  cfg.Refresh.AutoRefresh,
			Interval:     time.Duration(cfg.Refresh.IntervalSec) * time.Second,
			Debounce:     time.Duration(cfg.Refresh.DebounceMs) * time.Millisecond,
			InitialDelay: time.Duration(cfg.Refresh.InitialDelayMs) * time.Millisecond,
			Cooldown:     time.Duration(cfg.Refresh.CooldownMs) * time.Millisecond,
		}, nil, log)

		onNavigate := func(t model.Task) {
			log.Info("task completed",
				zap.String("title", t.Title),
				zap.Strings("records", t.RelatedData),
			)
		}

		m := dashboard.New(store, orch, role, onNavigate, log)
		p := tea.NewProgram(m, tea.WithAltScreen())

		// The orchestrator delivers list updates into the running
		// program through Program.Send, which blocks until Run's event
		// loop is receiving. The dashboard's Init command starts the
		// orchestrator once the loop is live; starting it here would
		// deadlock on the initial delivery.
		orch.SetOnUpdate(func(tasks []model.Task) {
			p.Send(dashboard.TasksUpdatedMsg{Tasks: tasks})
		})
		defer orch.Stop()

		if _, err := p.Run(); err != nil {
			return fmt.Errorf("running dashboard: %w", err)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
