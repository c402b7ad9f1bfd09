package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nhle/event-ops/internal/generate"
	"github.com/nhle/event-ops/internal/model"
	"github.com/nhle/event-ops/internal/taskstore"
	"github.com/nhle/event-ops/internal/ui/badge"
)

var refreshCmd = &cobra.Command{
	Use:   "refresh",
	Short: "Force a backend refresh and print the resulting counts",
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

		if err := gen.Refresh(context.Background(), role); err != nil {
			return fmt.Errorf("refreshing tasks: %w", err)
		}

		counts := badge.FromTasks(store.GetTasks(role))
		fmt.Printf("Refreshed %s: %d task(s), %d critical, %d urgent\n",
			role, counts.TaskCount, counts.CriticalCount, counts.UrgentCount)

		byKind := map[model.TaskKind]int{}
		for _, t := range store.GetTasks(role) {
			byKind[t.Kind]++
		}
		if n := byKind[model.KindReminder]; n > 0 {
			fmt.Printf("%d reminder(s); run 'eventops tasks' for details\n", n)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(refreshCmd)
}
