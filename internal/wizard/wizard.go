// Package wizard implements the multi-step provider editor. It works on a
// draft copy of a provider and only hands the draft back once the server
// has accepted it.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"provider-directory/internal/delivery/dto"
	"provider-directory/internal/gateway"
	"provider-directory/pkg/response"
	"provider-directory/pkg/validator"
)

type Step int

const (
	StepBasicInfo Step = iota
	StepContact
	StepSpecialties
	StepInsurances
	StepProcedures
	StepBranches
)

// LastStep is the only step submit is allowed from.
const LastStep = StepBranches

var stepLabels = [...]string{
	StepBasicInfo:   "Información Básica",
	StepContact:     "Contacto",
	StepSpecialties: "Especialidades",
	StepInsurances:  "ARS",
	StepProcedures:  "Procedimientos",
	StepBranches:    "Sucursales",
}

func (s Step) String() string {
	if s < StepBasicInfo || s > LastStep {
		return fmt.Sprintf("Step(%d)", int(s))
	}
	return stepLabels[s]
}

// Steps lists every step in order.
func Steps() []Step {
	return []Step{StepBasicInfo, StepContact, StepSpecialties, StepInsurances, StepProcedures, StepBranches}
}

// stepFields are the ServiceProvider fields checked before leaving a step.
var stepFields = map[Step][]string{
	StepBasicInfo:   {"Name", "Status"},
	StepContact:     {"Phone", "Email", "Website", "WhatsApp", "LinkedIn"},
	StepSpecialties: {"Specialties"},
	StepInsurances:  {"AffiliatedInsurances"},
	StepProcedures:  {"Procedures"},
	StepBranches:    {"TotalBranches.Active", "TotalBranches.Total", "TotalDoctors.Active", "TotalDoctors.Total"},
}

var (
	ErrNotLastStep    = errors.New("submit is only allowed from the last step")
	ErrSubmitInFlight = errors.New("a submit is already in flight")
	ErrInvalidDraft   = errors.New("draft failed validation")
	ErrServerRejected = errors.New("server rejected the update")
	ErrClosed         = errors.New("wizard is closed")
)

// Saver persists a provider.
type Saver interface {
	UpdateProvider(ctx context.Context, p dto.ServiceProvider) gateway.Envelope[dto.ServiceProvider]
}

type Option func(*Wizard)

// WithOnCommit registers fn to receive the accepted draft.
func WithOnCommit(fn func(dto.ServiceProvider)) Option {
	return func(w *Wizard) {
		w.onCommit = fn
	}
}

func WithValidator(v *validator.CustomValidator) Option {
	return func(w *Wizard) {
		w.validate = v
	}
}

// Result is what the server answered to a submit.
type Result struct {
	Resp     response.Resp
	Provider dto.ServiceProvider
}

type Wizard struct {
	mu          sync.Mutex
	original    dto.ServiceProvider
	draft       dto.ServiceProvider
	step        Step
	submitting  bool
	serverError string
	closed      bool
	errors      validator.FieldErrors

	saver    Saver
	onCommit func(dto.ServiceProvider)
	validate *validator.CustomValidator
}

// New opens a wizard over a deep copy of original.
func New(original dto.ServiceProvider, saver Saver, opts ...Option) *Wizard {
	w := &Wizard{
		original: original.Clone(),
		draft:    original.Clone(),
		step:     StepBasicInfo,
		saver:    saver,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.validate == nil {
		w.validate = dto.NewValidator()
	}
	return w
}

func (w *Wizard) Step() Step {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.step
}

// Draft returns a copy of the working provider.
func (w *Wizard) Draft() dto.ServiceProvider {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.draft.Clone()
}

// Errors returns the field errors of the last failed validation.
func (w *Wizard) Errors() validator.FieldErrors {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make(validator.FieldErrors, len(w.errors))
	for k, v := range w.errors {
		out[k] = v
	}
	return out
}

func (w *Wizard) IsSubmitting() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.submitting
}

func (w *Wizard) Closed() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closed
}

// ServerError is the banner text of the last rejected submit, or "".
func (w *Wizard) ServerError() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.serverError == "" {
		return ""
	}
	return "Error: " + w.serverError
}

// Edit applies fn to the draft.
func (w *Wizard) Edit(fn func(p *dto.ServiceProvider)) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return ErrClosed
	}
	fn(&w.draft)
	return nil
}

// ToggleStatus flips the draft between Activo and Inactivo.
func (w *Wizard) ToggleStatus() error {
	return w.Edit(func(p *dto.ServiceProvider) {
		if p.IsActive() {
			p.Status = dto.StatusInactive
		} else {
			p.Status = dto.StatusActive
		}
	})
}

func (w *Wizard) ToggleSpecialty(id string) error {
	return w.Edit(func(p *dto.ServiceProvider) { p.Specialties = toggle(p.Specialties, id) })
}

func (w *Wizard) ToggleInsurance(id string) error {
	return w.Edit(func(p *dto.ServiceProvider) { p.AffiliatedInsurances = toggle(p.AffiliatedInsurances, id) })
}

func (w *Wizard) ToggleProcedure(id string) error {
	return w.Edit(func(p *dto.ServiceProvider) { p.Procedures = toggle(p.Procedures, id) })
}

// SelectImage points the draft image at a local preview of path. Nothing is
// uploaded.
func (w *Wizard) SelectImage(path string) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return err
	}
	if info.IsDir() {
		return fmt.Errorf("%s is a directory", abs)
	}
	return w.Edit(func(p *dto.ServiceProvider) { p.Src = "file://" + filepath.ToSlash(abs) })
}

// Next validates the fields of the current step and advances when they
// pass. On failure the step is unchanged and the errors are returned.
func (w *Wizard) Next() validator.FieldErrors {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.closed {
		return nil
	}

	if err := w.validate.ValidatePartial(&w.draft, stepFields[w.step]...); err != nil {
		w.errors = w.validate.FormatValidationErrors(err)
		return w.errors
	}

	w.errors = nil
	if w.step < LastStep {
		w.step++
	}
	return nil
}

// Back moves one step back without validating.
func (w *Wizard) Back() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.step > StepBasicInfo {
		w.step--
	}
	w.errors = nil
}

// Reset discards the draft and returns to the first step.
func (w *Wizard) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.draft = w.original.Clone()
	w.step = StepBasicInfo
	w.errors = nil
	w.serverError = ""
}

// Cancel closes the wizard and drops the draft.
func (w *Wizard) Cancel() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	w.draft = w.original.Clone()
}

// Submit validates the whole draft and sends it. On success the draft is
// handed to the commit callback and the wizard closes; otherwise the draft
// stays as it was and ServerError reports the upstream message.
func (w *Wizard) Submit(ctx context.Context) (Result, error) {
	w.mu.Lock()
	switch {
	case w.closed:
		w.mu.Unlock()
		return Result{}, ErrClosed
	case w.submitting:
		w.mu.Unlock()
		return Result{}, ErrSubmitInFlight
	case w.step != LastStep:
		w.mu.Unlock()
		return Result{}, ErrNotLastStep
	}
	if err := w.validate.Validate(&w.draft); err != nil {
		w.errors = w.validate.FormatValidationErrors(err)
		w.mu.Unlock()
		return Result{}, ErrInvalidDraft
	}
	w.errors = nil
	w.serverError = ""
	w.submitting = true
	submitted := w.draft.Clone()
	w.mu.Unlock()

	defer func() {
		w.mu.Lock()
		w.submitting = false
		w.mu.Unlock()
	}()

	env := w.saver.UpdateProvider(ctx, submitted)
	result := Result{Resp: env.Resp, Provider: submitted}

	if !env.Resp.Succeeded() {
		w.mu.Lock()
		w.serverError = env.Resp.Mensaje
		w.mu.Unlock()
		return result, fmt.Errorf("%w: %s", ErrServerRejected, env.Resp.Mensaje)
	}

	w.mu.Lock()
	w.closed = true
	onCommit := w.onCommit
	w.mu.Unlock()

	if onCommit != nil {
		onCommit(submitted.Clone())
	}
	return result, nil
}

func toggle(ids []string, id string) []string {
	out := make([]string, 0, len(ids)+1)
	found := false
	for _, v := range ids {
		if v == id {
			found = true
			continue
		}
		out = append(out, v)
	}
	if !found {
		out = append(out, id)
	}
	return out
}
