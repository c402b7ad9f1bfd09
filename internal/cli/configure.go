package cli

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/nhle/event-ops/internal/credential"
	"github.com/nhle/event-ops/internal/model"
)

var configureCmd = &cobra.Command{
	Use:   "configure",
	Short: "Set up the event store connection",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		baseURL := cfg.Backend.BaseURL
		eventID := cfg.Backend.EventID
		userID := cfg.UserID
		role := cfg.Role
		token := ""

		form := huh.NewForm(
			huh.NewGroup(
				huh.NewInput().
					Title("Event store URL").
					Description("Root URL of the event store API").
					Value(&baseURL).
					Validate(validateURL),
				huh.NewInput().
					Title("Event ID").
					Value(&eventID).
					Validate(notEmpty("event ID")),
				huh.NewInput().
					Title("User ID").
					Description("Your volunteer/director user id").
					Value(&userID).
					Validate(notEmpty("user ID")),
				huh.NewSelect[string]().
					Title("Role").
					Options(
						huh.NewOption("Volunteer", string(model.RoleVolunteer)),
						huh.NewOption("Organizer", string(model.RoleOrganizer)),
						huh.NewOption("Admin", string(model.RoleAdmin)),
						huh.NewOption("Team director", string(model.RoleTeamDirector)),
					).
					Value(&role),
				huh.NewInput().
					Title("API token").
					Description("Stored in the system keyring; leave blank to keep the existing one").
					EchoMode(huh.EchoModePassword).
					Value(&token),
			),
		)

		if err := form.Run(); err != nil {
			return fmt.Errorf("running configure form: %w", err)
		}

		cfg.Backend.BaseURL = strings.TrimRight(baseURL, "/")
		cfg.Backend.EventID = eventID
		cfg.UserID = userID
		cfg.Role = role

		if token != "" {
			if err := credential.Set(credential.TokenKey, token); err != nil {
				return fmt.Errorf("storing API token: %w", err)
			}
		}

		if err := model.SaveConfig(cfgPath, cfg); err != nil {
			return err
		}

		fmt.Printf("Configuration written to %s\n", cfgPath)
		return nil
	},
}

func validateURL(s string) error {
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("enter a full URL including scheme")
	}
	return nil
}

func notEmpty(field string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", field)
		}
		return nil
	}
}

func init() {
	rootCmd.AddCommand(configureCmd)
}
