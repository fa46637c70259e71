package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/troop900/treelot/pkg/core/model"
	"github.com/troop900/treelot/pkg/core/services"
)

// CheckInCmd records a volunteer's arrival.
func CheckInCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkIn <assignment_id>",
		Short: "Check a volunteer in for their shift",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			method, _ := cmd.Flags().GetString("method")

			result, err := services.CheckIn(app.Ctx, app.Database, app.Logger, services.CheckInRequest{
				AssignmentID: args[0],
				Method:       model.CheckInMethod(method),
			})
			if err != nil {
				return err
			}

			fmt.Printf("\nChecked in at %s.\n\n", result.CheckInTime.Format("15:04:05"))
			return nil
		},
	}

	cmd.Flags().String("method", "", "Check-in method (qr_code or manual, defaults to manual)")
	return cmd
}

// CheckOutCmd records a volunteer's departure and their hours.
func CheckOutCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "checkOut <assignment_id>",
		Short: "Check a volunteer out and record hours worked",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			notes, _ := cmd.Flags().GetString("notes")

			result, err := services.CheckOut(app.Ctx, app.Database, app.Logger, args[0], notes)
			if err != nil {
				return err
			}

			fmt.Printf("\nChecked out at %s. Hours worked: %.2f\n\n",
				result.CheckOutTime.Format("15:04:05"), result.HoursWorked)
			return nil
		},
	}

	cmd.Flags().String("notes", "", "Optional check-out notes")
	return cmd
}

// MarkNoShowCmd records that a volunteer never arrived. Committee only.
func MarkNoShowCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "markNoShow <assignment_id> <requesting_user_id>",
		Short: "Mark a volunteer as a no-show (committee only)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			notes, _ := cmd.Flags().GetString("notes")

			if err := services.MarkNoShow(app.Ctx, app.Database, app.Logger, args[0], args[1], notes); err != nil {
				return err
			}
			fmt.Printf("\nAssignment %s marked as no-show.\n\n", args[0])
			return nil
		},
	}

	cmd.Flags().String("notes", "", "Optional notes kept on the record")
	return cmd
}

// ShiftAttendanceCmd shows who actually worked a shift and for how long.
func ShiftAttendanceCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "shiftAttendance <shift_id>",
		Short: "Show attendance records and hours worked for a shift",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			summary, err := services.GetShiftAttendance(app.Ctx, app.Database, app.Logger, args[0])
			if err != nil {
				return err
			}

			if len(summary.Entries) == 0 {
				fmt.Println("\nNo attendance recorded for this shift.")
				return nil
			}

			fmt.Printf("\n%d attendance records:\n\n", len(summary.Entries))
			for _, e := range summary.Entries {
				hours := "-"
				if e.HoursWorked != nil {
					hours = fmt.Sprintf("%.2fh", *e.HoursWorked)
				}
				fmt.Printf("  %-12s %-7s %s\n", e.Status, hours, e.UserName)
			}
			fmt.Printf("\nTotal hours: %.2f\n\n", summary.TotalHours)
			return nil
		},
	}
}

// CorrectAttendanceCmd applies an audited admin fix to an attendance record.
func CorrectAttendanceCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "correctAttendance <attendance_record_id> <requesting_user_id>",
		Short: "Correct an attendance record (committee only, reason required)",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			reason, _ := cmd.Flags().GetString("reason")
			notes, _ := cmd.Flags().GetString("notes")

			req := services.CorrectAttendanceRequest{
				AttendanceRecordID: args[0],
				RequestingUserID:   args[1],
				OverrideReason:     reason,
				Notes:              notes,
			}

			if raw, _ := cmd.Flags().GetString("check-in"); raw != "" {
				t, err := time.Parse(time.RFC3339, raw)
				if err != nil {
					return fmt.Errorf("check-in must be RFC3339: %w", err)
				}
				req.CheckInTime = &t
			}
			if raw, _ := cmd.Flags().GetString("check-out"); raw != "" {
				t, err := time.Parse(time.RFC3339, raw)
				if err != nil {
					return fmt.Errorf("check-out must be RFC3339: %w", err)
				}
				req.CheckOutTime = &t
			}
			if raw, _ := cmd.Flags().GetString("status"); raw != "" {
				status := model.AttendanceStatus(raw)
				req.Status = &status
			}
			if cmd.Flags().Changed("hours") {
				hours, _ := cmd.Flags().GetFloat64("hours")
				req.HoursWorked = &hours
			}

			if err := services.CorrectAttendance(app.Ctx, app.Database, app.Logger, req); err != nil {
				return err
			}
			fmt.Printf("\nAttendance record %s corrected.\n\n", args[0])
			return nil
		},
	}

	cmd.Flags().String("reason", "", "Override reason (required)")
	cmd.Flags().String("notes", "", "Additional notes")
	cmd.Flags().String("check-in", "", "Corrected check-in time (RFC3339)")
	cmd.Flags().String("check-out", "", "Corrected check-out time (RFC3339)")
	cmd.Flags().String("status", "", "Corrected attendance status")
	cmd.Flags().Float64("hours", 0, "Explicit hours worked")
	cmd.MarkFlagRequired("reason")
	return cmd
}
