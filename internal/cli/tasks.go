package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nhle/event-ops/internal/generate"
	"github.com/nhle/event-ops/internal/taskstore"
)

var tasksCmd = &cobra.Command{
	Use:   "tasks",
	Short: "Derive and print the current urgent tasks once",
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

		tasks := store.GetTasks(role)
		if len(tasks) == 0 {
			fmt.Println("No urgent tasks.")
			return nil
		}

		fmt.Printf("%d task(s) for %s:\n\n", len(tasks), role)
		for _, t := range tasks {
			urgency := strings.ToUpper(string(t.Urgency))
			fmt.Printf("  [%s] %s\n", urgency, t.Title)
			fmt.Printf("         %s\n", t.Description)
			if len(t.RelatedData) > 0 {
				fmt.Printf("         records: %s\n\n", strings.Join(t.RelatedData, ", "))
			} else {
				fmt.Println()
			}
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(tasksCmd)
}
