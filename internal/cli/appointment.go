package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/insurebook/internal/book"
	"github.com/mesh-intelligence/insurebook/internal/query"
	"github.com/mesh-intelligence/insurebook/pkg/types"
)

func (a *app) newAppointmentCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "appointment",
		Aliases: []string{"appt"},
		Short:   "Manage appointments with contacts",
	}
	cmd.AddCommand(
		a.newAppointmentAddCmd(),
		a.newAppointmentEditCmd(),
		a.newAppointmentDeleteCmd(),
		a.newAppointmentListCmd(),
	)
	return cmd
}

func (a *app) newAppointmentAddCmd() *cobra.Command {
	var contact, date, details string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add an appointment",
		Long: `Add schedules an appointment with a contact, identified by name.

Example:
  insurebook appointment add --contact "Alice Pauline" --date 2025-03-14 --details "Annual review"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var appt *types.Appointment
			err := a.mutate(func(b *book.Book) error {
				c, err := findContact(b, contact)
				if err != nil {
					return err
				}
				appt, err = types.NewAppointment(types.AppointmentInput{
					ID:         string(b.GenerateUniqueAppointmentID()),
					NationalID: string(c.NationalID()),
					Date:       date,
					Details:    details,
				})
				if err != nil {
					return err
				}
				return b.AddAppointment(appt)
			})
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), newAppointmentOut(appt), func(w io.Writer) {
				fmt.Fprintf(w, "New appointment added: %s\n", appt)
			})
		},
	}
	cmd.Flags().StringVar(&contact, "contact", "", "name of the contact (required)")
	cmd.Flags().StringVar(&date, "date", "", "date, YYYY-MM-DD (required)")
	cmd.Flags().StringVar(&details, "details", "", "what the appointment is for (required)")
	for _, name := range []string{"contact", "date", "details"} {
		_ = cmd.MarkFlagRequired(name)
	}
	return cmd
}

func (a *app) newAppointmentEditCmd() *cobra.Command {
	var date, details string
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit an appointment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var edited *types.Appointment
			err := a.mutate(func(b *book.Book) error {
				target, err := findAppointment(b, args[0])
				if err != nil {
					return err
				}
				in := target.Input()
				if cmd.Flags().Changed("date") {
					in.Date = date
				}
				if cmd.Flags().Changed("details") {
					in.Details = details
				}
				if edited, err = types.NewAppointment(in); err != nil {
					return err
				}
				return b.SetAppointment(target, edited)
			})
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), newAppointmentOut(edited), func(w io.Writer) {
				fmt.Fprintf(w, "Edited appointment: %s\n", edited)
			})
		},
	}
	cmd.Flags().StringVar(&date, "date", "", "new date, YYYY-MM-DD")
	cmd.Flags().StringVar(&details, "details", "", "new details")
	return cmd
}

func (a *app) newAppointmentDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an appointment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var deleted *types.Appointment
			err := a.mutate(func(b *book.Book) error {
				appt, err := findAppointment(b, args[0])
				if err != nil {
					return err
				}
				deleted = appt
				return b.DeleteAppointment(appt)
			})
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), newAppointmentOut(deleted), func(w io.Writer) {
				fmt.Fprintf(w, "Deleted appointment: %s\n", deleted)
			})
		},
	}
}

func (a *app) newAppointmentListCmd() *cobra.Command {
	var f listFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List appointments",
		Long: `List shows appointments, optionally filtered by a CEL expression over
id, nric, date (a timestamp) and details.

Example:
  insurebook appointment list --where 'nric == "S0123456A"' --sort date`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var appts []*types.Appointment
			err := a.read(func(b *book.Book) error {
				var err error
				appts, err = apply(f, query.Appointments, b.FilteredAppointments(), b.UpdateAppointmentFilter, b.UpdateAppointmentSort)
				return err
			})
			if err != nil {
				return err
			}
			return a.emit(cmd.OutOrStdout(), mapSlice(appts, newAppointmentOut), func(w io.Writer) {
				rows := mapSlice(appts, func(ap *types.Appointment) []string {
					return []string{
						string(ap.ID()),
						string(ap.NationalID()),
						ap.Date().String(),
						truncate(string(ap.Details()), 40),
					}
				})
				printTable(w, "appointment", []string{"ID", "NRIC", "DATE", "DETAILS"}, rows)
			})
		},
	}
	f.register(cmd, query.Appointments.SortFields())
	return cmd
}

func findAppointment(b *book.Book, id string) (*types.Appointment, error) {
	aid, err := types.ParseAppointmentID(id)
	if err != nil {
		return nil, err
	}
	appt, ok := b.AppointmentByID(aid)
	if !ok {
		return nil, &types.NotFoundError{Entity: types.EntityAppointment, Key: id}
	}
	return appt, nil
}
