// Package workspace is the provider detail view: one authoritative provider,
// a tab selector and the per-tab sections with their add dialogs.
package workspace

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"provider-directory/internal/delivery/dto"
	"provider-directory/internal/gateway"
	"provider-directory/internal/wizard"
	"provider-directory/pkg/validator"

	"github.com/sirupsen/logrus"
)

type Tab int

const (
	TabDashboard Tab = iota
	TabGeneral
	TabBranches
	TabSpecialties
	TabInsurances
)

// DefaultTab is selected when a workspace opens.
const DefaultTab = TabBranches

var tabNames = [...]string{
	TabDashboard:   "Dashboard",
	TabGeneral:     "General",
	TabBranches:    "Branches",
	TabSpecialties: "Specialties",
	TabInsurances:  "Insurances",
}

func (t Tab) String() string {
	if t < TabDashboard || t > TabInsurances {
		return fmt.Sprintf("Tab(%d)", int(t))
	}
	return tabNames[t]
}

func Tabs() []Tab {
	return []Tab{TabDashboard, TabGeneral, TabBranches, TabSpecialties, TabInsurances}
}

// ParseTab matches a tab by name, ignoring case.
func ParseTab(name string) (Tab, error) {
	for _, t := range Tabs() {
		if strings.EqualFold(t.String(), name) {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown tab %q", name)
}

var (
	ErrRejected    = errors.New("server rejected the request")
	ErrInvalidForm = errors.New("form failed validation")
)

// InvalidFormError carries the field errors of a rejected dialog.
type InvalidFormError struct {
	Fields validator.FieldErrors
}

func (e *InvalidFormError) Error() string {
	return fmt.Sprintf("%s: %d field(s)", ErrInvalidForm, len(e.Fields))
}

func (e *InvalidFormError) Unwrap() error {
	return ErrInvalidForm
}

// Backend is what the workspace needs from the resource server.
type Backend interface {
	UpdateProvider(ctx context.Context, p dto.ServiceProvider) gateway.Envelope[dto.ServiceProvider]
	ListBranches(ctx context.Context, providerID string) gateway.Envelope[[]dto.Branch]
	CreateBranch(ctx context.Context, req dto.CreateBranchRequest) gateway.Envelope[dto.Branch]
	UpdateBranch(ctx context.Context, id string, req dto.UpdateBranchRequest) gateway.Envelope[dto.Branch]
	CreateSpecialty(ctx context.Context, req dto.CreateSpecialtyRequest) gateway.Envelope[dto.Specialty]
	CreateInsurance(ctx context.Context, req dto.CreateInsuranceRequest) gateway.Envelope[dto.Insurance]
	CreateProcedure(ctx context.Context, req dto.CreateProcedureRequest) gateway.Envelope[dto.Procedure]
}

type NoticeLevel int

const (
	NoticeSuccess NoticeLevel = iota
	NoticeError
)

// Notice is a toast raised by a workspace action.
type Notice struct {
	Level   NoticeLevel
	Message string
}

// Stats feeds the dashboard and the header stat cards.
type Stats struct {
	Branches dto.Total
	Doctors  dto.Total
}

type Workspace struct {
	mu       sync.Mutex
	backend  Backend
	log      *logrus.Logger
	validate *validator.CustomValidator
	provider dto.ServiceProvider
	catalog  dto.Catalog
	tab      Tab
	notices  []Notice

	branches *BranchesSection
}

// New builds a workspace over provider. catalog resolves membership IDs for
// display; it grows as specialties and insurances are added.
func New(provider dto.ServiceProvider, catalog dto.Catalog, backend Backend, log *logrus.Logger) *Workspace {
	return &Workspace{
		backend:  backend,
		log:      log,
		validate: dto.NewValidator(),
		provider: provider.Clone(),
		catalog:  catalog,
		tab:      DefaultTab,
		branches: newBranchesSection(backend, provider.ID),
	}
}

// Open mounts the current tab, loading its data unless it was seeded.
func (w *Workspace) Open(ctx context.Context) error {
	w.mu.Lock()
	tab := w.tab
	w.mu.Unlock()

	if tab == TabBranches && !w.branches.Loaded() {
		return w.loadBranches(ctx)
	}
	return nil
}

// Close discards every outstanding section response.
func (w *Workspace) Close() {
	w.branches.Invalidate()
}

func (w *Workspace) Tab() Tab {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.tab
}

// SelectTab switches the visible section. Only entering Branches fetches
// anything; leaving it makes its in-flight load stale.
func (w *Workspace) SelectTab(ctx context.Context, tab Tab) error {
	w.mu.Lock()
	prev := w.tab
	w.tab = tab
	w.mu.Unlock()

	if prev == TabBranches && tab != TabBranches {
		w.branches.Invalidate()
	}
	if tab == TabBranches && (prev != TabBranches || !w.branches.Loaded()) {
		return w.loadBranches(ctx)
	}
	return nil
}

func (w *Workspace) loadBranches(ctx context.Context) error {
	err := w.branches.Load(ctx)
	if err != nil && !errors.Is(err, ErrStale) {
		w.log.Warnf("Failed to load branches of %s: %+v", w.branches.ProviderID(), err)
	}
	return err
}

// Provider returns a copy of the authoritative provider.
func (w *Workspace) Provider() dto.ServiceProvider {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.provider.Clone()
}

// Details returns the provider with its memberships resolved.
func (w *Workspace) Details() dto.ProviderDetails {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.catalog.Resolve(w.provider)
}

func (w *Workspace) Catalog() dto.Catalog {
	w.mu.Lock()
	defer w.mu.Unlock()
	return dto.Catalog{
		Insurances:  append([]dto.Insurance{}, w.catalog.Insurances...),
		Specialties: append([]dto.Specialty{}, w.catalog.Specialties...),
		Procedures:  append([]dto.Procedure{}, w.catalog.Procedures...),
	}
}

func (w *Workspace) Branches() *BranchesSection {
	return w.branches
}

func (w *Workspace) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return Stats{Branches: w.provider.TotalBranches, Doctors: w.provider.TotalDoctors}
}

// Notices returns and clears the pending toasts.
func (w *Workspace) Notices() []Notice {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := w.notices
	w.notices = nil
	return out
}

func (w *Workspace) notify(level NoticeLevel, msg string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.notices = append(w.notices, Notice{Level: level, Message: msg})
}

// promote replaces the authoritative provider. The branch section follows
// an id change.
func (w *Workspace) promote(p dto.ServiceProvider) {
	w.mu.Lock()
	w.provider = p.Clone()
	w.mu.Unlock()
	w.branches.SetProvider(p.ID)
}

// OpenEditor starts an edit wizard over a draft of the current provider.
// The provider is replaced only after the server accepts the draft.
func (w *Workspace) OpenEditor() *wizard.Wizard {
	return wizard.New(w.Provider(), editorSaver{w: w},
		wizard.WithValidator(w.validate),
		wizard.WithOnCommit(w.promote),
	)
}

// editorSaver raises the save toasts around the backend update.
type editorSaver struct {
	w *Workspace
}

func (s editorSaver) UpdateProvider(ctx context.Context, p dto.ServiceProvider) gateway.Envelope[dto.ServiceProvider] {
	env := s.w.backend.UpdateProvider(ctx, p)
	if env.Resp.Succeeded() {
		s.w.notify(NoticeSuccess, "Proveedor actualizado correctamente")
	} else {
		s.w.log.Warnf("Failed to update provider %s: %d %s", p.ID, env.Resp.Codigo, env.Resp.Mensaje)
		s.w.notify(NoticeError, "Error: "+env.Resp.Mensaje)
	}
	return env
}

// NewBranchForm returns the add-branch dialog defaults for this provider.
func (w *Workspace) NewBranchForm() dto.BranchForm {
	return dto.NewBranchForm(w.branches.ProviderID())
}

// AddBranch validates form, creates the branch and merges the server copy
// into the branch list.
func (w *Workspace) AddBranch(ctx context.Context, form dto.BranchForm) (dto.Branch, error) {
	if err := w.validate.Validate(&form); err != nil {
		return dto.Branch{}, &InvalidFormError{Fields: w.validate.FormatValidationErrors(err)}
	}

	branch, err := w.branches.add(ctx, form.ToCreateRequest())
	if err != nil {
		w.log.Warnf("Failed to create branch: %+v", err)
		w.notify(NoticeError, "Error al crear la sucursal")
		return dto.Branch{}, err
	}

	w.notify(NoticeSuccess, "Sucursal creada correctamente")
	return branch, nil
}

// UpdateBranch validates form, saves it over branch id and swaps the server
// copy into the branch list.
func (w *Workspace) UpdateBranch(ctx context.Context, id string, form dto.BranchForm) (dto.Branch, error) {
	if err := w.validate.Validate(&form); err != nil {
		return dto.Branch{}, &InvalidFormError{Fields: w.validate.FormatValidationErrors(err)}
	}

	branch, err := w.branches.update(ctx, id, form.ToCreateRequest())
	if err != nil {
		w.log.Warnf("Failed to update branch %s: %+v", id, err)
		w.notify(NoticeError, "Error al actualizar la sucursal")
		return dto.Branch{}, err
	}

	w.notify(NoticeSuccess, "Sucursal actualizada correctamente")
	return branch, nil
}

// AddSpecialty creates the specialty and adds it to the provider.
func (w *Workspace) AddSpecialty(ctx context.Context, form dto.SpecialtyForm) (dto.Specialty, error) {
	if err := w.validate.Validate(&form); err != nil {
		return dto.Specialty{}, &InvalidFormError{Fields: w.validate.FormatValidationErrors(err)}
	}

	env := w.backend.CreateSpecialty(ctx, form.ToCreateRequest())
	if !env.Resp.Succeeded() || !env.HasData() {
		w.log.Warnf("Failed to create specialty: %d %s", env.Resp.Codigo, env.Resp.Mensaje)
		w.notify(NoticeError, "Error al agregar la especialidad")
		return dto.Specialty{}, fmt.Errorf("%w: %s", ErrRejected, env.Resp.Mensaje)
	}
	specialty := env.Data

	w.mu.Lock()
	w.catalog.Specialties = append(w.catalog.Specialties, specialty)
	w.mu.Unlock()

	err := w.addMembership(ctx, func(p *dto.ServiceProvider) {
		p.Specialties = appendUnique(p.Specialties, specialty.ID)
	})
	if err != nil {
		w.notify(NoticeError, "Error al agregar la especialidad")
		return specialty, err
	}

	w.notify(NoticeSuccess, "Especialidad agregada correctamente")
	return specialty, nil
}

// AddInsurance creates the insurance and affiliates the provider with it.
func (w *Workspace) AddInsurance(ctx context.Context, form dto.InsuranceForm) (dto.Insurance, error) {
	if err := w.validate.Validate(&form); err != nil {
		return dto.Insurance{}, &InvalidFormError{Fields: w.validate.FormatValidationErrors(err)}
	}

	env := w.backend.CreateInsurance(ctx, form.ToCreateRequest())
	if !env.Resp.Succeeded() || !env.HasData() {
		w.log.Warnf("Failed to create insurance: %d %s", env.Resp.Codigo, env.Resp.Mensaje)
		w.notify(NoticeError, "Error al agregar el seguro")
		return dto.Insurance{}, fmt.Errorf("%w: %s", ErrRejected, env.Resp.Mensaje)
	}
	insurance := env.Data

	w.mu.Lock()
	w.catalog.Insurances = append(w.catalog.Insurances, insurance)
	w.mu.Unlock()

	err := w.addMembership(ctx, func(p *dto.ServiceProvider) {
		p.AffiliatedInsurances = appendUnique(p.AffiliatedInsurances, insurance.ID)
	})
	if err != nil {
		w.notify(NoticeError, "Error al agregar el seguro")
		return insurance, err
	}

	w.notify(NoticeSuccess, "Seguro agregado correctamente")
	return insurance, nil
}

// AddProcedure creates the procedure and adds it to the provider.
func (w *Workspace) AddProcedure(ctx context.Context, form dto.ProcedureForm) (dto.Procedure, error) {
	if err := w.validate.Validate(&form); err != nil {
		return dto.Procedure{}, &InvalidFormError{Fields: w.validate.FormatValidationErrors(err)}
	}

	env := w.backend.CreateProcedure(ctx, form.ToCreateRequest())
	if !env.Resp.Succeeded() || !env.HasData() {
		w.log.Warnf("Failed to create procedure: %d %s", env.Resp.Codigo, env.Resp.Mensaje)
		w.notify(NoticeError, "Error al agregar el procedimiento")
		return dto.Procedure{}, fmt.Errorf("%w: %s", ErrRejected, env.Resp.Mensaje)
	}
	procedure := env.Data

	w.mu.Lock()
	w.catalog.Procedures = append(w.catalog.Procedures, procedure)
	w.mu.Unlock()

	err := w.addMembership(ctx, func(p *dto.ServiceProvider) {
		p.Procedures = appendUnique(p.Procedures, procedure.ID)
	})
	if err != nil {
		w.notify(NoticeError, "Error al agregar el procedimiento")
		return procedure, err
	}

	w.notify(NoticeSuccess, "Procedimiento agregado correctamente")
	return procedure, nil
}

// addMembership applies edit to a copy of the provider, persists it and
// promotes the copy once the server accepts it.
func (w *Workspace) addMembership(ctx context.Context, edit func(p *dto.ServiceProvider)) error {
	updated := w.Provider()
	edit(&updated)

	env := w.backend.UpdateProvider(ctx, updated)
	if !env.Resp.Succeeded() {
		w.log.Warnf("Failed to update provider %s: %d %s", updated.ID, env.Resp.Codigo, env.Resp.Mensaje)
		return fmt.Errorf("%w: %s", ErrRejected, env.Resp.Mensaje)
	}

	w.promote(updated)
	return nil
}

func appendUnique(ids []string, id string) []string {
	for _, v := range ids {
		if v == id {
			return ids
		}
	}
	return append(ids, id)
}
