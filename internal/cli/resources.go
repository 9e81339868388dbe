package cli

import (
	"errors"
	"fmt"

	"provider-directory/internal/delivery/dto"
	"provider-directory/internal/view"
	"provider-directory/internal/workspace"

	"github.com/spf13/cobra"
)

// report prints the workspace notices and, for a rejected form, its field
// messages.
func (a *app) report(ws *workspace.Workspace, err error) error {
	a.println(view.Notices(ws.Notices()))

	var invalid *workspace.InvalidFormError
	if errors.As(err, &invalid) {
		a.println(view.FieldErrors(invalid.Fields))
	}
	return err
}

func branchesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "branches",
		Short: "Manage the branches of a provider",
	}

	addCmd := &cobra.Command{
		Use:   "add <providerId>",
		Short: "Add a branch to a provider",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			ws, err := a.openWorkspace(cmd, args[0])
			if err != nil {
				return err
			}
			defer ws.Close()

			f := cmd.Flags()
			form := ws.NewBranchForm()
			form.Name, _ = f.GetString("name")
			form.Address, _ = f.GetString("address")
			form.Phone, _ = f.GetString("phone")
			if f.Changed("open") {
				form.OpeningTime, _ = f.GetString("open")
			}
			if f.Changed("close") {
				form.ClosingTime, _ = f.GetString("close")
			}
			form.PaymentMethods, _ = f.GetStringArray("payment")
			form.Facilities, _ = f.GetStringArray("facility")
			form.Insurances, _ = f.GetStringArray("insurance")
			inactive, _ := f.GetBool("inactive")
			form.Status = !inactive

			branch, err := ws.AddBranch(cmd.Context(), form)
			if err != nil {
				return a.report(ws, err)
			}

			a.println(view.Notices(ws.Notices()), view.BranchCards([]dto.Branch{branch}))
			return nil
		}),
	}

	f := addCmd.Flags()
	f.String("name", "", "Branch name")
	f.String("address", "", "Street address")
	f.String("phone", "", "Phone number")
	f.String("open", "08:00", "Opening time, HH:MM")
	f.String("close", "18:00", "Closing time, HH:MM")
	f.StringArray("payment", nil, "Accepted payment method (repeatable)")
	f.StringArray("facility", nil, "Facility (repeatable)")
	f.StringArray("insurance", nil, "Accepted insurance (repeatable)")
	f.Bool("inactive", false, "Create the branch as inactive")

	cmd.AddCommand(addCmd)
	cmd.AddCommand(branchesUpdateCmd(a))
	return cmd
}

func branchesUpdateCmd(a *app) *cobra.Command {
	updateCmd := &cobra.Command{
		Use:   "update <providerId> <branchId>",
		Short: "Edit a branch, keeping every field that is not given",
		Args:  cobra.ExactArgs(2),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			ws, err := a.openWorkspace(cmd, args[0])
			if err != nil {
				return err
			}
			defer ws.Close()

			var current *dto.Branch
			for _, b := range ws.Branches().Branches() {
				if b.ID == args[1] {
					current = &b
					break
				}
			}
			if current == nil {
				return fmt.Errorf("%w: %s", workspace.ErrBranchNotListed, args[1])
			}

			f := cmd.Flags()
			form := dto.EditBranchForm(*current)
			text := map[string]*string{
				"name":    &form.Name,
				"address": &form.Address,
				"phone":   &form.Phone,
				"open":    &form.OpeningTime,
				"close":   &form.ClosingTime,
			}
			for name, dst := range text {
				if f.Changed(name) {
					*dst, _ = f.GetString(name)
				}
			}
			lists := map[string]*[]string{
				"payment":   &form.PaymentMethods,
				"facility":  &form.Facilities,
				"insurance": &form.Insurances,
			}
			for name, dst := range lists {
				if f.Changed(name) {
					*dst, _ = f.GetStringArray(name)
				}
			}
			if f.Changed("active") {
				form.Status, _ = f.GetBool("active")
			}

			branch, err := ws.UpdateBranch(cmd.Context(), current.ID, form)
			if err != nil {
				return a.report(ws, err)
			}

			a.println(view.Notices(ws.Notices()), view.BranchCards([]dto.Branch{branch}))
			return nil
		}),
	}

	f := updateCmd.Flags()
	f.String("name", "", "Branch name")
	f.String("address", "", "Street address")
	f.String("phone", "", "Phone number")
	f.String("open", "", "Opening time, HH:MM")
	f.String("close", "", "Closing time, HH:MM")
	f.StringArray("payment", nil, "Replace the accepted payment methods (repeatable)")
	f.StringArray("facility", nil, "Replace the facilities (repeatable)")
	f.StringArray("insurance", nil, "Replace the accepted insurances (repeatable)")
	f.Bool("active", true, "Whether the branch is active")
	return updateCmd
}

func specialtiesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "specialties",
		Short: "Manage the specialties of a provider",
	}

	addCmd := &cobra.Command{
		Use:   "add <providerId>",
		Short: "Create a specialty and add it to a provider",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			ws, err := a.openWorkspace(cmd, args[0])
			if err != nil {
				return err
			}
			defer ws.Close()

			name, _ := cmd.Flags().GetString("name")
			minutes, _ := cmd.Flags().GetInt64("minutes")

			specialty, err := ws.AddSpecialty(cmd.Context(), dto.SpecialtyForm{Name: name, Minutes: minutes})
			if err != nil {
				return a.report(ws, err)
			}

			a.println(view.Notices(ws.Notices()), view.SpecialtyList([]dto.Specialty{specialty}))
			return nil
		}),
	}
	addCmd.Flags().String("name", "", "Specialty name")
	addCmd.Flags().Int64("minutes", 30, "Appointment duration in minutes")

	cmd.AddCommand(addCmd)
	return cmd
}

func insurancesCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "insurances",
		Short: "Manage the insurances (ARS) accepted by a provider",
	}

	addCmd := &cobra.Command{
		Use:   "add <providerId>",
		Short: "Create an insurance and add it to a provider",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			ws, err := a.openWorkspace(cmd, args[0])
			if err != nil {
				return err
			}
			defer ws.Close()

			name, _ := cmd.Flags().GetString("name")
			logo, _ := cmd.Flags().GetString("logo")

			insurance, err := ws.AddInsurance(cmd.Context(), dto.InsuranceForm{Name: name, Src: logo})
			if err != nil {
				return a.report(ws, err)
			}

			a.println(view.Notices(ws.Notices()), view.InsuranceList([]dto.Insurance{insurance}))
			return nil
		}),
	}
	addCmd.Flags().String("name", "", "Insurance name")
	addCmd.Flags().String("logo", "", "Logo URL, a placeholder is used when empty")

	cmd.AddCommand(addCmd)
	return cmd
}

func proceduresCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "procedures",
		Short: "Manage the procedures offered by a provider",
	}

	addCmd := &cobra.Command{
		Use:   "add <providerId>",
		Short: "Create a procedure and add it to a provider",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			ws, err := a.openWorkspace(cmd, args[0])
			if err != nil {
				return err
			}
			defer ws.Close()

			name, _ := cmd.Flags().GetString("name")

			procedure, err := ws.AddProcedure(cmd.Context(), dto.ProcedureForm{Name: name})
			if err != nil {
				return a.report(ws, err)
			}

			a.println(view.Notices(ws.Notices()), view.GeneralInfo(ws.Details()))
			a.log.Debugf("Added procedure %s to provider %s", procedure.ID, args[0])
			return nil
		}),
	}
	addCmd.Flags().String("name", "", "Procedure name")

	cmd.AddCommand(addCmd)
	return cmd
}
