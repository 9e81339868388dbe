package cli

import (
	"errors"
	"fmt"

	"provider-directory/internal/delivery/dto"
	"provider-directory/internal/listing"
	"provider-directory/internal/view"
	"provider-directory/internal/wizard"
	"provider-directory/internal/workspace"

	"github.com/spf13/cobra"
)

func providersCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "providers",
		Short: "List, inspect and edit service providers",
	}
	cmd.AddCommand(providersListCmd(a))
	cmd.AddCommand(providersShowCmd(a))
	cmd.AddCommand(providersEditCmd(a))
	cmd.AddCommand(providersCreateCmd(a))
	return cmd
}

func providersListCmd(a *app) *cobra.Command {
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List providers as cards or as a table",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			search, _ := cmd.Flags().GetString("search")
			modeName, _ := cmd.Flags().GetString("view")

			mode, err := listing.ParseMode(modeName)
			if err != nil {
				return err
			}

			env := a.actions.Providers.ListAll(cmd.Context())
			if !env.Resp.Succeeded() {
				return fmt.Errorf("failed to list providers: %s", env.Resp.Mensaje)
			}

			c := listing.New(env.Data)
			c.SetMode(mode)
			c.Search(search)
			a.println(view.ProviderList(c))
			return nil
		}),
	}
	listCmd.Flags().String("search", "", "Case-insensitive substring of the provider name")
	listCmd.Flags().String("view", "card", "Layout: card or table")
	return listCmd
}

// openWorkspace loads a provider page the way the page loader does: the
// provider, the catalog and the branch list in parallel.
func (a *app) openWorkspace(cmd *cobra.Command, id string) (*workspace.Workspace, error) {
	page := a.actions.GetProviderWithBranches(cmd.Context(), id)
	if page.Err != nil {
		return nil, page.Err
	}

	ws := workspace.New(page.Details.ServiceProvider, page.Catalog, a.actions, a.log)
	ws.Branches().Seed(page.Branches)
	return ws, nil
}

func providersShowCmd(a *app) *cobra.Command {
	showCmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show a provider workspace",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			tabName, _ := cmd.Flags().GetString("tab")
			tab, err := workspace.ParseTab(tabName)
			if err != nil {
				return err
			}

			ws, err := a.openWorkspace(cmd, args[0])
			if err != nil {
				return err
			}
			defer ws.Close()

			if err := ws.Open(cmd.Context()); err != nil {
				a.log.Warnf("Failed to load branches: %+v", err)
			}
			if err := ws.SelectTab(cmd.Context(), tab); err != nil {
				a.log.Warnf("Failed to load branches: %+v", err)
			}

			a.println(view.Workspace(ws))
			return nil
		}),
	}
	showCmd.Flags().String("tab", workspace.DefaultTab.String(), "Tab to show: Dashboard, General, Branches, Specialties or Insurances")
	return showCmd
}

func providersEditCmd(a *app) *cobra.Command {
	editCmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Edit a provider through the six-step wizard",
		Args:  cobra.ExactArgs(1),
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			ws, err := a.openWorkspace(cmd, args[0])
			if err != nil {
				return err
			}
			defer ws.Close()

			w := ws.OpenEditor()
			if err := applyEdits(cmd, w); err != nil {
				return err
			}

			// Next on the last step validates it without advancing.
			for range wizard.Steps() {
				if errs := w.Next(); len(errs) > 0 {
					a.println(view.Wizard(w))
					step := w.Step()
					w.Cancel()
					return fmt.Errorf("%w: %s", wizard.ErrInvalidDraft, step)
				}
			}

			_, err = w.Submit(cmd.Context())
			a.println(view.Notices(ws.Notices()))
			if err != nil {
				a.println(view.Wizard(w))
				return err
			}

			a.println(view.Header(ws.Provider()))
			return nil
		}),
	}

	f := editCmd.Flags()
	f.String("name", "", "Provider name")
	f.String("phone", "", "Phone number")
	f.String("email", "", "Contact email")
	f.String("website", "", "Website URL")
	f.String("whatsapp", "", "WhatsApp number")
	f.String("instagram", "", "Instagram handle")
	f.String("linkedin", "", "LinkedIn URL")
	f.String("image", "", "Path to a local image file")
	f.Bool("toggle-status", false, "Flip between Activo and Inactivo")
	f.Int("branches-active", 0, "Active branches")
	f.Int("branches-total", 0, "Total branches")
	f.Int("doctors-active", 0, "Active doctors")
	f.Int("doctors-total", 0, "Total doctors")
	f.StringArray("toggle-specialty", nil, "Specialty ID to add or remove (repeatable)")
	f.StringArray("toggle-insurance", nil, "Insurance ID to add or remove (repeatable)")
	f.StringArray("toggle-procedure", nil, "Procedure ID to add or remove (repeatable)")
	return editCmd
}

// applyEdits copies the flags the user actually set onto the draft.
func applyEdits(cmd *cobra.Command, w *wizard.Wizard) error {
	f := cmd.Flags()

	text := map[string]func(p *dto.ServiceProvider, v string){
		"name":      func(p *dto.ServiceProvider, v string) { p.Name = v },
		"phone":     func(p *dto.ServiceProvider, v string) { p.Phone = v },
		"email":     func(p *dto.ServiceProvider, v string) { p.Email = v },
		"website":   func(p *dto.ServiceProvider, v string) { p.Website = v },
		"whatsapp":  func(p *dto.ServiceProvider, v string) { p.WhatsApp = v },
		"instagram": func(p *dto.ServiceProvider, v string) { p.Instagram = v },
		"linkedin":  func(p *dto.ServiceProvider, v string) { p.LinkedIn = v },
	}
	for name, set := range text {
		if !f.Changed(name) {
			continue
		}
		v, _ := f.GetString(name)
		if err := w.Edit(func(p *dto.ServiceProvider) { set(p, v) }); err != nil {
			return err
		}
	}

	counts := map[string]func(p *dto.ServiceProvider, v int){
		"branches-active": func(p *dto.ServiceProvider, v int) { p.TotalBranches.Active = v },
		"branches-total":  func(p *dto.ServiceProvider, v int) { p.TotalBranches.Total = v },
		"doctors-active":  func(p *dto.ServiceProvider, v int) { p.TotalDoctors.Active = v },
		"doctors-total":   func(p *dto.ServiceProvider, v int) { p.TotalDoctors.Total = v },
	}
	for name, set := range counts {
		if !f.Changed(name) {
			continue
		}
		v, _ := f.GetInt(name)
		if err := w.Edit(func(p *dto.ServiceProvider) { set(p, v) }); err != nil {
			return err
		}
	}

	if toggle, _ := f.GetBool("toggle-status"); toggle {
		if err := w.ToggleStatus(); err != nil {
			return err
		}
	}

	toggles := map[string]func(id string) error{
		"toggle-specialty": w.ToggleSpecialty,
		"toggle-insurance": w.ToggleInsurance,
		"toggle-procedure": w.ToggleProcedure,
	}
	for name, apply := range toggles {
		ids, _ := f.GetStringArray(name)
		for _, id := range ids {
			if err := apply(id); err != nil {
				return err
			}
		}
	}

	if f.Changed("image") {
		path, _ := f.GetString("image")
		if err := w.SelectImage(path); err != nil {
			return err
		}
	}
	return nil
}

func providersCreateCmd(a *app) *cobra.Command {
	createCmd := &cobra.Command{
		Use:   "create",
		Short: "Create a provider from its basic contact fields",
		Args:  cobra.NoArgs,
		RunE: a.run(func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("name")
			phone, _ := cmd.Flags().GetString("phone")
			email, _ := cmd.Flags().GetString("email")
			website, _ := cmd.Flags().GetString("website")
			modeName, _ := cmd.Flags().GetString("view")

			req := dto.NewProviderRequest(name, phone, email, website)
			validate := dto.NewValidator()
			if err := validate.Validate(&req); err != nil {
				a.println(view.FieldErrors(validate.FormatValidationErrors(err)))
				return errors.New("invalid provider")
			}

			mode, err := listing.ParseMode(modeName)
			if err != nil {
				return err
			}

			existing := a.actions.Providers.ListAll(cmd.Context())
			if !existing.Resp.Succeeded() {
				a.log.Warnf("Failed to list providers before create: %s", existing.Resp.Mensaje)
			}

			env := a.actions.Providers.Create(cmd.Context(), req)
			if !env.Resp.Succeeded() {
				return fmt.Errorf("failed to create provider: %s", env.Resp.Mensaje)
			}

			c := listing.New(existing.Data)
			c.SetMode(mode)
			c.Add(env.Data)
			a.println("Prestador creado correctamente", view.ProviderList(c))
			return nil
		}),
	}
	createCmd.Flags().String("name", "", "Provider name")
	createCmd.Flags().String("phone", "", "Phone number")
	createCmd.Flags().String("email", "", "Contact email")
	createCmd.Flags().String("website", "", "Website URL")
	createCmd.Flags().String("view", "card", "Layout of the updated list: card or table")
	return createCmd
}
