package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/troop900/treelot/pkg/core/model"
	"github.com/troop900/treelot/pkg/core/services"
)

const dateLayout = "2006-01-02"

// CreateSeasonCmd creates a draft season for a date range.
func CreateSeasonCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "createSeason <name> <start_date> <end_date>",
		Short: "Create a draft season (dates as YYYY-MM-DD)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := time.Parse(dateLayout, args[1])
			if err != nil {
				return fmt.Errorf("start_date must be YYYY-MM-DD: %w", err)
			}
			end, err := time.Parse(dateLayout, args[2])
			if err != nil {
				return fmt.Errorf("end_date must be YYYY-MM-DD: %w", err)
			}
			description, _ := cmd.Flags().GetString("description")

			season, err := services.CreateSeason(app.Ctx, app.Database, app.Logger, model.Season{
				Name:        args[0],
				StartDate:   start,
				EndDate:     end,
				Description: description,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\nSeason created!\n\n")
			fmt.Printf("Season ID: %s\n", season.ID)
			fmt.Printf("Name:      %s\n", season.Name)
			fmt.Printf("Dates:     %s to %s\n\n", season.StartDate.Format(dateLayout), season.EndDate.Format(dateLayout))
			return nil
		},
	}

	cmd.Flags().String("description", "", "Optional season description")
	return cmd
}

// GenerateScheduleCmd stamps shift templates onto every date in a range.
func GenerateScheduleCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generateSchedule <season_id> <start_date> <end_date> <template_id>...",
		Short: "Generate draft shifts for a season from templates",
		Args:  cobra.MinimumNArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := time.Parse(dateLayout, args[1])
			if err != nil {
				return fmt.Errorf("start_date must be YYYY-MM-DD: %w", err)
			}
			end, err := time.Parse(dateLayout, args[2])
			if err != nil {
				return fmt.Errorf("end_date must be YYYY-MM-DD: %w", err)
			}

			excluded, err := cmd.Flags().GetStringSlice("exclude")
			if err != nil {
				return err
			}
			var excludedDates []time.Time
			for _, raw := range excluded {
				d, err := time.Parse(dateLayout, raw)
				if err != nil {
					return fmt.Errorf("excluded date must be YYYY-MM-DD: %w", err)
				}
				excludedDates = append(excludedDates, d)
			}

			// Generation appends, so flag a likely double-run before adding more.
			existing, err := app.Database.GetShiftsForSeason(app.Ctx, args[0])
			if err != nil {
				return err
			}
			inRange := 0
			for _, s := range existing {
				if !s.Date.Before(start) && !s.Date.After(end) {
					inRange++
				}
			}
			if inRange > 0 {
				fmt.Printf("\nWarning: season already has %d shift(s) in this range; generating will add more.\n", inRange)
			}

			result, err := services.GenerateSeasonSchedule(app.Ctx, app.Database, app.Logger, services.GenerateScheduleRequest{
				SeasonID:        args[0],
				StartDate:       start,
				EndDate:         end,
				TemplateIDs:     args[3:],
				ExcludedDates:   excludedDates,
				DefaultLocation: app.Cfg.DefaultLocation,
				Recurrence:      app.Cfg.Recurrences(),
			})
			if err != nil {
				return err
			}

			fmt.Printf("\nSchedule generated!\n\n")
			fmt.Printf("Shifts created:  %d\n", result.ShiftsCreated)
			fmt.Printf("Volunteer slots: %d\n", result.TotalVolunteerSlots)
			fmt.Printf("Dates covered:   %d\n\n", result.DatesWithShifts)
			return nil
		},
	}

	cmd.Flags().StringSlice("exclude", nil, "Dates to skip (YYYY-MM-DD, repeatable)")
	return cmd
}

// PublishSeasonCmd opens a season's draft shifts for signups.
func PublishSeasonCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "publishSeason <season_id>",
		Short: "Publish all draft shifts of a season and announce the schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var notifier services.NotificationSender
			if app.GmailClient != nil {
				notifier = app.GmailClient
			}

			result, err := services.PublishSeason(app.Ctx, app.Database, notifier, app.Logger, args[0], app.Cfg.AnnouncementRecipients)
			if err != nil {
				return err
			}

			fmt.Printf("\nSeason published!\n\n")
			fmt.Printf("Shifts published: %d\n", result.ShiftsPublished)
			if result.SeasonActivated {
				fmt.Println("Season is now active.")
			}
			fmt.Println()
			return nil
		},
	}
}

// StaffingReportCmd lists published shifts ordered by staffing urgency.
func StaffingReportCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "staffingReport <start_date> <end_date>",
		Short: "Show staffing levels for published shifts in a date range",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			start, err := time.Parse(dateLayout, args[0])
			if err != nil {
				return fmt.Errorf("start_date must be YYYY-MM-DD: %w", err)
			}
			end, err := time.Parse(dateLayout, args[1])
			if err != nil {
				return fmt.Errorf("end_date must be YYYY-MM-DD: %w", err)
			}

			report, err := services.StaffingReport(app.Ctx, app.Database, app.Logger, start, end)
			if err != nil {
				return err
			}

			if len(report) == 0 {
				fmt.Println("\nNo published shifts in range.")
				return nil
			}

			fmt.Printf("\n%d shifts, most urgent first:\n\n", len(report))
			for _, entry := range report {
				label := entry.Label
				if label == "" {
					label = entry.ShiftID
				}
				fmt.Printf("  %-10s %s  scouts=%s parents=%s  %s\n",
					string(entry.WorstLevel),
					entry.Date.Format(dateLayout),
					entry.ScoutLevel, entry.ParentLevel,
					label)
			}
			fmt.Println()
			return nil
		},
	}
}
