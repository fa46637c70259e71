package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/troop900/treelot/pkg/core/model"
	"github.com/troop900/treelot/pkg/core/services"
)

const timeLayout = "15:04"

// CreateTemplateCmd creates a reusable shift template.
func CreateTemplateCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "createTemplate <name> <start_time> <end_time> <required_scouts> <required_parents>",
		Short: "Create a shift template (times as HH:MM)",
		Args:  cobra.ExactArgs(5),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := time.Parse(timeLayout, args[1])
			if err != nil {
				return fmt.Errorf("start_time must be HH:MM: %w", err)
			}
			end, err := time.Parse(timeLayout, args[2])
			if err != nil {
				return fmt.Errorf("end_time must be HH:MM: %w", err)
			}
			var scouts, parents int
			if _, err := fmt.Sscanf(args[3]+" "+args[4], "%d %d", &scouts, &parents); err != nil {
				return fmt.Errorf("volunteer counts must be numbers: %w", err)
			}
			location, _ := cmd.Flags().GetString("location")
			if location == "" {
				location = app.Cfg.DefaultLocation
			}

			template, err := services.CreateTemplate(app.Ctx, app.Database, app.Logger, model.ShiftTemplate{
				Name:            args[0],
				StartTime:       start,
				EndTime:         end,
				RequiredScouts:  scouts,
				RequiredParents: parents,
				Location:        location,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\nTemplate created!\n\n")
			fmt.Printf("Template ID: %s\n", template.ID)
			fmt.Printf("Window:      %s to %s at %s\n\n",
				template.StartTime.Format(timeLayout), template.EndTime.Format(timeLayout), template.Location)
			return nil
		},
	}

	cmd.Flags().String("location", "", "Shift location (defaults to configured location)")
	return cmd
}

// ListTemplatesCmd lists the active shift templates.
func ListTemplatesCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "listTemplates",
		Short: "List active shift templates",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			templates, err := services.ListActiveTemplates(app.Ctx, app.Database, app.Logger)
			if err != nil {
				return err
			}

			if len(templates) == 0 {
				fmt.Println("\nNo active templates.")
				return nil
			}

			fmt.Printf("\n%d templates:\n\n", len(templates))
			for _, t := range templates {
				fmt.Printf("  %-20s %s to %s  scouts=%d parents=%d  %s  (%s)\n",
					t.Name,
					t.StartTime.Format(timeLayout), t.EndTime.Format(timeLayout),
					t.RequiredScouts, t.RequiredParents, t.Location, t.ID)
			}
			fmt.Println()
			return nil
		},
	}
}

// CancelShiftCmd cancels a draft or published shift.
func CancelShiftCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "cancelShift <shift_id>",
		Short: "Cancel a shift",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.CancelShift(app.Ctx, app.Database, app.Logger, args[0]); err != nil {
				return err
			}
			fmt.Printf("\nShift %s cancelled.\n\n", args[0])
			return nil
		},
	}
}

// CompleteShiftCmd marks a published shift completed.
func CompleteShiftCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "completeShift <shift_id>",
		Short: "Mark a published shift as completed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := services.CompleteShift(app.Ctx, app.Database, app.Logger, args[0]); err != nil {
				return err
			}
			fmt.Printf("\nShift %s completed.\n\n", args[0])
			return nil
		},
	}
}

// ShiftDetailsCmd shows a shift with its roster and staffing levels.
func ShiftDetailsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "shiftDetails <shift_id>",
		Short: "Show a shift's roster and staffing levels",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			details, err := services.GetShiftDetails(app.Ctx, app.Database, app.Logger, args[0])
			if err != nil {
				return err
			}

			s := details.Shift
			fmt.Printf("\n%s  %s to %s  [%s]\n", s.Date.Format(dateLayout),
				s.StartTime.Format(timeLayout), s.EndTime.Format(timeLayout), s.Status)
			if s.Label != "" {
				fmt.Printf("Event:    %s\n", s.Label)
			}
			fmt.Printf("Location: %s\n", s.Location)
			fmt.Printf("Scouts:   %d/%d (%s)\n", s.CurrentScouts, s.RequiredScouts, details.ScoutLevel)
			fmt.Printf("Parents:  %d/%d (%s)\n", s.CurrentParents, s.RequiredParents, details.ParentLevel)

			if len(details.Assignments) > 0 {
				fmt.Printf("\nRoster:\n")
				for _, a := range details.Assignments {
					fmt.Printf("  %-8s %-12s %s\n", a.Type, a.Status, a.UserName)
				}
			}
			fmt.Println()
			return nil
		},
	}
}
