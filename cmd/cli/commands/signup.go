package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/troop900/treelot/pkg/core/model"
	"github.com/troop900/treelot/pkg/core/services"
)

// SignUpCmd claims a shift slot for a volunteer.
func SignUpCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "signUp <shift_id> <user_id> <type>",
		Short: "Sign a volunteer up for a shift (type: scout or parent)",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			notes, _ := cmd.Flags().GetString("notes")

			result, err := services.SignUp(app.Ctx, app.Database, app.Logger, services.SignUpRequest{
				ShiftID: args[0],
				UserID:  args[1],
				Type:    model.AssignmentType(args[2]),
				Notes:   notes,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\nSigned up!\n\nAssignment ID: %s\n\n", result.AssignmentID)
			return nil
		},
	}

	cmd.Flags().String("notes", "", "Optional signup notes")
	return cmd
}

// CancelAssignmentCmd releases a volunteer's slot before the shift starts.
func CancelAssignmentCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "cancelAssignment <assignment_id>",
		Short: "Cancel a signup and release the slot",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			reason, _ := cmd.Flags().GetString("reason")

			if err := services.CancelAssignment(app.Ctx, app.Database, app.Logger, args[0], reason); err != nil {
				return err
			}
			fmt.Printf("\nAssignment %s cancelled.\n\n", args[0])
			return nil
		},
	}

	cmd.Flags().String("reason", "", "Cancellation reason kept on the assignment")
	return cmd
}

// MyShiftsCmd lists a volunteer's upcoming shifts.
func MyShiftsCmd(app *AppContext) *cobra.Command {
	return &cobra.Command{
		Use:   "myShifts <user_id>",
		Short: "List a volunteer's active shift signups, soonest first",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			shifts, err := services.GetVolunteerShifts(app.Ctx, app.Database, app.Logger, args[0])
			if err != nil {
				return err
			}

			if len(shifts) == 0 {
				fmt.Println("\nNo active signups.")
				return nil
			}

			fmt.Printf("\n%d signups:\n\n", len(shifts))
			for _, vs := range shifts {
				fmt.Printf("  %s  %s to %s  %-8s %-10s at %s\n",
					vs.Shift.Date.Format(dateLayout),
					vs.Shift.StartTime.Format(timeLayout), vs.Shift.EndTime.Format(timeLayout),
					vs.Type, vs.Status, vs.Shift.Location)
			}
			fmt.Println()
			return nil
		},
	}
}

// AddWalkInCmd adds an unplanned volunteer to an in-progress shift.
func AddWalkInCmd(app *AppContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "addWalkIn <shift_id> <user_id> <requesting_user_id> <type>",
		Short: "Add a walk-in volunteer to a started shift and check them in",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			notes, _ := cmd.Flags().GetString("notes")

			result, err := services.AddWalkIn(app.Ctx, app.Database, app.Logger, services.WalkInRequest{
				ShiftID:          args[0],
				UserID:           args[1],
				RequestingUserID: args[2],
				Type:             model.AssignmentType(args[3]),
				Notes:            notes,
			})
			if err != nil {
				return err
			}

			fmt.Printf("\nWalk-in added and checked in!\n\n")
			fmt.Printf("Assignment ID: %s\n", result.AssignmentID)
			fmt.Printf("Checked in at: %s\n\n", result.CheckInTime.Format("15:04:05"))
			return nil
		},
	}

	cmd.Flags().String("notes", "", "Optional assignment notes")
	return cmd
}
