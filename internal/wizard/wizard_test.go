package wizard

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"sync"
	"testing"

	"provider-directory/internal/delivery/dto"
	"provider-directory/internal/gateway"
	"provider-directory/pkg/response"
)

type fakeSaver struct {
	mu      sync.Mutex
	resp    response.Resp
	calls   []dto.ServiceProvider
	release chan struct{}
	entered chan struct{}
}

func (f *fakeSaver) UpdateProvider(ctx context.Context, p dto.ServiceProvider) gateway.Envelope[dto.ServiceProvider] {
	f.mu.Lock()
	f.calls = append(f.calls, p)
	f.mu.Unlock()

	if f.entered != nil {
		close(f.entered)
	}
	if f.release != nil {
		<-f.release
	}
	if f.resp.Succeeded() {
		return gateway.Success(f.resp, p)
	}
	return gateway.Failure[dto.ServiceProvider](f.resp.Codigo, f.resp.Mensaje)
}

func validProvider() dto.ServiceProvider {
	return dto.ServiceProvider{
		ID:                   "p1",
		Name:                 "Clínica Sur",
		Phone:                "809-555-0101",
		Email:                "sur@clinica.do",
		Website:              "https://clinicasur.do",
		Status:               dto.StatusActive,
		TotalBranches:        dto.Total{Active: 2, Total: 3},
		TotalDoctors:         dto.Total{Active: 10, Total: 12},
		AffiliatedInsurances: []string{"ars-1"},
		Specialties:          []string{"sp-1"},
		Procedures:           []string{},
	}
}

func advanceToLast(t *testing.T, w *Wizard) {
	t.Helper()
	for w.Step() != LastStep {
		if errs := w.Next(); errs != nil {
			t.Fatalf("unexpected errors at %s: %v", w.Step(), errs)
		}
	}
}

func TestNextGatesOnCurrentStepFields(t *testing.T) {
	tests := []struct {
		name    string
		step    Step
		edit    func(p *dto.ServiceProvider)
		wantKey string
	}{
		{name: "empty name", step: StepBasicInfo, edit: func(p *dto.ServiceProvider) { p.Name = "" }, wantKey: "name"},
		{name: "empty phone", step: StepContact, edit: func(p *dto.ServiceProvider) { p.Phone = "" }, wantKey: "phone"},
		{name: "bad email", step: StepContact, edit: func(p *dto.ServiceProvider) { p.Email = "no-at-sign" }, wantKey: "email"},
		{name: "bad website", step: StepContact, edit: func(p *dto.ServiceProvider) { p.Website = "not a url" }, wantKey: "website"},
		{name: "bad linkedin", step: StepContact, edit: func(p *dto.ServiceProvider) { p.LinkedIn = "linkedin" }, wantKey: "linkedIn"},
		{name: "negative total", step: StepBranches, edit: func(p *dto.ServiceProvider) { p.TotalBranches.Total = -1 }, wantKey: "totalBranches.total"},
		{name: "active above total", step: StepBranches, edit: func(p *dto.ServiceProvider) { p.TotalBranches.Active = 4 }, wantKey: "totalBranches.active"},
		{name: "doctors above total", step: StepBranches, edit: func(p *dto.ServiceProvider) { p.TotalDoctors = dto.Total{Active: 5, Total: 4} }, wantKey: "totalDoctors.active"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := New(validProvider(), &fakeSaver{})
			for w.Step() != tt.step {
				if errs := w.Next(); errs != nil {
					t.Fatalf("unexpected errors before target step: %v", errs)
				}
			}
			w.Edit(tt.edit)

			errs := w.Next()
			if _, ok := errs[tt.wantKey]; !ok {
				t.Fatalf("expected error on %q, got %v", tt.wantKey, errs)
			}
			if w.Step() != tt.step {
				t.Fatalf("step moved to %s on invalid input", w.Step())
			}
		})
	}
}

func TestNextIgnoresOtherStepsFields(t *testing.T) {
	p := validProvider()
	p.Email = "broken"
	w := New(p, &fakeSaver{})

	if errs := w.Next(); errs != nil {
		t.Fatalf("basic info step must not check contact fields: %v", errs)
	}
	if w.Step() != StepContact {
		t.Fatalf("expected contact step, got %s", w.Step())
	}
}

func TestEmptyOptionalURLsPass(t *testing.T) {
	p := validProvider()
	p.Website = ""
	p.LinkedIn = ""
	w := New(p, &fakeSaver{})
	w.Next()

	if errs := w.Next(); errs != nil {
		t.Fatalf("empty urls are absent, not invalid: %v", errs)
	}
}

func TestErrorMessages(t *testing.T) {
	p := validProvider()
	p.Name = ""
	w := New(p, &fakeSaver{})

	errs := w.Next()
	if errs["name"] != "El nombre es requerido" {
		t.Fatalf("unexpected message %q", errs["name"])
	}
}

func TestBackIsUnconditionalAndBounded(t *testing.T) {
	w := New(validProvider(), &fakeSaver{})
	w.Back()
	if w.Step() != StepBasicInfo {
		t.Fatalf("back must stop at the first step")
	}

	w.Next()
	w.Next()
	w.Edit(func(p *dto.ServiceProvider) { p.Phone = "" })
	w.Back()
	if w.Step() != StepContact {
		t.Fatalf("expected contact step, got %s", w.Step())
	}
}

func TestNextStopsAtLastStep(t *testing.T) {
	w := New(validProvider(), &fakeSaver{})
	advanceToLast(t, w)
	if errs := w.Next(); errs != nil {
		t.Fatalf("unexpected errors: %v", errs)
	}
	if w.Step() != LastStep {
		t.Fatalf("step went past the last one: %s", w.Step())
	}
}

func TestStoredDoctorCountsAreGated(t *testing.T) {
	p := validProvider()
	p.TotalDoctors = dto.Total{Active: 5, Total: 4}
	saver := &fakeSaver{resp: response.Resp{Codigo: 200}}
	w := New(p, saver)

	for w.Step() != LastStep {
		if errs := w.Next(); errs != nil {
			t.Fatalf("unexpected errors at %s: %v", w.Step(), errs)
		}
	}
	errs := w.Next()
	if _, ok := errs["totalDoctors.active"]; !ok {
		t.Fatalf("expected the branches step to report totalDoctors.active, got %v", errs)
	}

	w.Edit(func(p *dto.ServiceProvider) { p.TotalDoctors.Total = 5 })
	if errs := w.Next(); errs != nil {
		t.Fatalf("fixed counts must pass: %v", errs)
	}
	if _, err := w.Submit(context.Background()); err != nil {
		t.Fatalf("submit: %v", err)
	}
	if len(saver.calls) != 1 || saver.calls[0].TotalDoctors.Total != 5 {
		t.Fatalf("expected one save with the fixed counts, got %+v", saver.calls)
	}
}

func TestCancelDiscardsDraft(t *testing.T) {
	original := validProvider()
	saver := &fakeSaver{resp: response.Resp{Codigo: 200}}
	w := New(original, saver)

	w.Edit(func(p *dto.ServiceProvider) { p.Name = "Otro" })
	w.ToggleSpecialty("sp-2")
	w.Next()

	w.Cancel()

	if !w.Closed() {
		t.Fatalf("wizard must close on cancel")
	}
	if err := w.Edit(func(p *dto.ServiceProvider) { p.Name = "Tarde" }); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed from Edit, got %v", err)
	}
	if err := w.ToggleStatus(); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed from ToggleStatus, got %v", err)
	}
	if !reflect.DeepEqual(w.Draft(), original) {
		t.Fatalf("draft differs from original after cancel:\n%+v\n%+v", w.Draft(), original)
	}
	if _, err := w.Submit(context.Background()); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed from Submit, got %v", err)
	}
	if len(saver.calls) != 0 {
		t.Fatalf("a cancelled wizard must not save")
	}
}

func TestResetRestoresOriginal(t *testing.T) {
	original := validProvider()

	for _, step := range Steps() {
		t.Run(step.String(), func(t *testing.T) {
			w := New(original, &fakeSaver{})
			for w.Step() != step {
				w.Next()
			}
			w.Edit(func(p *dto.ServiceProvider) {
				p.Name = "Otro"
				p.Specialties = append(p.Specialties, "sp-9")
				p.TotalBranches.Active = 0
			})
			w.ToggleInsurance("ars-1")

			w.Reset()

			if w.Step() != StepBasicInfo {
				t.Fatalf("expected first step after reset, got %s", w.Step())
			}
			if !reflect.DeepEqual(w.Draft(), original) {
				t.Fatalf("draft differs from original after reset:\n%+v\n%+v", w.Draft(), original)
			}
		})
	}
}

func TestDraftDoesNotAliasOriginal(t *testing.T) {
	original := validProvider()
	w := New(original, &fakeSaver{})
	w.ToggleSpecialty("sp-2")

	if len(original.Specialties) != 1 {
		t.Fatalf("editing the draft changed the caller's provider: %v", original.Specialties)
	}
}

func TestSubmitSuccessCommitsDraft(t *testing.T) {
	saver := &fakeSaver{resp: response.Resp{Codigo: 200, Mensaje: "Proveedor actualizado correctamente"}}
	var committed *dto.ServiceProvider
	w := New(validProvider(), saver, WithOnCommit(func(p dto.ServiceProvider) { committed = &p }))

	w.Edit(func(p *dto.ServiceProvider) { p.Name = "Clínica Sur Norte" })
	advanceToLast(t, w)
	want := w.Draft()

	result, err := w.Submit(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Resp.Codigo != 200 {
		t.Fatalf("unexpected resp %+v", result.Resp)
	}
	if committed == nil || !reflect.DeepEqual(*committed, want) {
		t.Fatalf("commit must receive exactly the submitted draft, got %+v", committed)
	}
	if !w.Closed() {
		t.Fatalf("wizard must close on success")
	}
	if w.IsSubmitting() {
		t.Fatalf("in-flight flag must be cleared")
	}
	if _, err := w.Submit(context.Background()); !errors.Is(err, ErrClosed) {
		t.Fatalf("expected ErrClosed, got %v", err)
	}
}

func TestSubmitFailureKeepsDraft(t *testing.T) {
	saver := &fakeSaver{resp: response.Resp{Codigo: 409, Mensaje: "El correo ya existe"}}
	committed := false
	w := New(validProvider(), saver, WithOnCommit(func(dto.ServiceProvider) { committed = true }))

	w.Edit(func(p *dto.ServiceProvider) { p.Email = "otro@clinica.do" })
	advanceToLast(t, w)
	before := w.Draft()

	_, err := w.Submit(context.Background())
	if !errors.Is(err, ErrServerRejected) {
		t.Fatalf("expected ErrServerRejected, got %v", err)
	}
	if committed {
		t.Fatalf("rejected draft must not be committed")
	}
	if w.Closed() {
		t.Fatalf("wizard must stay open on failure")
	}
	if !reflect.DeepEqual(w.Draft(), before) {
		t.Fatalf("draft changed after a failed submit")
	}
	if got := w.ServerError(); got != "Error: El correo ya existe" {
		t.Fatalf("unexpected server error %q", got)
	}
	if w.IsSubmitting() {
		t.Fatalf("in-flight flag must be cleared after failure")
	}
}

func TestSubmitGuards(t *testing.T) {
	t.Run("not last step", func(t *testing.T) {
		saver := &fakeSaver{resp: response.Resp{Codigo: 200}}
		w := New(validProvider(), saver)
		if _, err := w.Submit(context.Background()); !errors.Is(err, ErrNotLastStep) {
			t.Fatalf("expected ErrNotLastStep, got %v", err)
		}
		if len(saver.calls) != 0 {
			t.Fatalf("no request may be sent")
		}
	})

	t.Run("invalid draft", func(t *testing.T) {
		saver := &fakeSaver{resp: response.Resp{Codigo: 200}}
		w := New(validProvider(), saver)
		advanceToLast(t, w)
		w.Edit(func(p *dto.ServiceProvider) { p.Email = "" })

		if _, err := w.Submit(context.Background()); !errors.Is(err, ErrInvalidDraft) {
			t.Fatalf("expected ErrInvalidDraft, got %v", err)
		}
		if _, ok := w.Errors()["email"]; !ok {
			t.Fatalf("expected email error, got %v", w.Errors())
		}
		if len(saver.calls) != 0 {
			t.Fatalf("invalid drafts never reach the network")
		}
	})

	t.Run("in flight", func(t *testing.T) {
		saver := &fakeSaver{
			resp:    response.Resp{Codigo: 200},
			release: make(chan struct{}),
			entered: make(chan struct{}),
		}
		w := New(validProvider(), saver)
		advanceToLast(t, w)

		done := make(chan error, 1)
		go func() {
			_, err := w.Submit(context.Background())
			done <- err
		}()
		<-saver.entered

		if !w.IsSubmitting() {
			t.Fatalf("expected in-flight flag while the request is outstanding")
		}
		if _, err := w.Submit(context.Background()); !errors.Is(err, ErrSubmitInFlight) {
			t.Fatalf("expected ErrSubmitInFlight, got %v", err)
		}

		close(saver.release)
		if err := <-done; err != nil {
			t.Fatalf("first submit failed: %v", err)
		}
		if len(saver.calls) != 1 {
			t.Fatalf("expected exactly one request, got %d", len(saver.calls))
		}
	})
}

func TestToggleStatus(t *testing.T) {
	w := New(validProvider(), &fakeSaver{})
	w.ToggleStatus()
	if w.Draft().Status != dto.StatusInactive {
		t.Fatalf("expected Inactivo, got %q", w.Draft().Status)
	}
	w.ToggleStatus()
	if w.Draft().Status != dto.StatusActive {
		t.Fatalf("expected Activo, got %q", w.Draft().Status)
	}
}

func TestSelectImage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logo.png")
	if err := os.WriteFile(path, []byte("png"), 0o600); err != nil {
		t.Fatal(err)
	}

	w := New(validProvider(), &fakeSaver{})
	if err := w.SelectImage(path); err != nil {
		t.Fatalf("select image: %v", err)
	}
	if src := w.Draft().Src; !strings.HasPrefix(src, "file://") || !strings.HasSuffix(src, "logo.png") {
		t.Fatalf("unexpected preview reference %q", src)
	}

	if err := w.SelectImage(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Fatalf("expected error for a missing file")
	}
}
