package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"provider-directory/config"
	"provider-directory/internal/delivery/dto"
	"provider-directory/pkg/jwt"
)

const (
	providersBody = `[
		{"id":"p1","name":"Clínica Sur","phone":"809-555-0101","email":"sur@clinica.do","status":"Activo",
		 "totalBranches":{"active":2,"total":3},"totalDoctors":{"active":10,"total":12},
		 "affiliatedInsurances":[],"specialties":["sp-1"],"procedures":[]},
		{"id":"p2","name":"Hospital Norte","phone":"809-555-0202","email":"norte@hospital.do","status":"Inactivo",
		 "totalBranches":{"active":1,"total":1},"totalDoctors":{"active":4,"total":4},
		 "affiliatedInsurances":[],"specialties":[],"procedures":[]}]`
	providerP1 = `{"id":"p1","name":"Clínica Sur","phone":"809-555-0101","email":"sur@clinica.do","status":"Activo",
		"totalBranches":{"active":2,"total":3},"totalDoctors":{"active":10,"total":12},
		"affiliatedInsurances":[],"specialties":["sp-1"],"procedures":[]}`
)

// fakeServer mimics the resource server routes directoryctl talks to.
type fakeServer struct {
	mu             sync.Mutex
	updates        []dto.ServiceProvider
	auth           []string
	branchUpdates  []dto.UpdateBranchRequest
	procedures     []dto.CreateProcedureRequest
	createdEntries []dto.CreateProviderRequest
}

func (s *fakeServer) handler() http.Handler {
	mux := http.NewServeMux()
	write := func(w http.ResponseWriter, status int, payload string) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		io.WriteString(w, payload)
	}

	mux.HandleFunc("/providers", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			var req dto.CreateProviderRequest
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				write(w, http.StatusBadRequest, `{"codigo":400,"mensaje":"bad body"}`)
				return
			}
			s.mu.Lock()
			s.createdEntries = append(s.createdEntries, req)
			s.mu.Unlock()
			out, _ := json.Marshal(dto.ServiceProvider{ID: "p3", Name: req.Name, Phone: req.Phone, Email: req.Email, Status: dto.StatusActive})
			write(w, http.StatusCreated, string(out))
			return
		}
		s.mu.Lock()
		s.auth = append(s.auth, r.Header.Get("Authorization"))
		s.mu.Unlock()
		write(w, http.StatusOK, providersBody)
	})
	mux.HandleFunc("/providers/p1", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPut {
			write(w, http.StatusOK, providerP1)
			return
		}
		var p dto.ServiceProvider
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
			write(w, http.StatusBadRequest, `{"codigo":400,"mensaje":"bad body"}`)
			return
		}
		s.mu.Lock()
		s.updates = append(s.updates, p)
		s.mu.Unlock()
		out, _ := json.Marshal(p)
		write(w, http.StatusOK, string(out))
	})
	mux.HandleFunc("/specialties", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			write(w, http.StatusCreated, `{"id":"sp-9","name":"Neurología","time":1800000}`)
			return
		}
		write(w, http.StatusOK, `[{"id":"sp-1","name":"Cardiología","time":1800000}]`)
	})
	mux.HandleFunc("/insurances", func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusOK, `[]`)
	})
	mux.HandleFunc("/procedures", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			var req dto.CreateProcedureRequest
			json.NewDecoder(r.Body).Decode(&req)
			s.mu.Lock()
			s.procedures = append(s.procedures, req)
			s.mu.Unlock()
			out, _ := json.Marshal(dto.Procedure{ID: "pr-1", Name: req.Name})
			write(w, http.StatusCreated, string(out))
			return
		}
		write(w, http.StatusOK, `[]`)
	})
	mux.HandleFunc("/branches", func(w http.ResponseWriter, r *http.Request) {
		write(w, http.StatusOK, `[{"id":"b1","providerId":"p1","name":"Sede Central","address":"Av. Principal 1",
			"phone":"809-555-0110","hours":"Lun-Vie: 08:00 - 18:00","status":true,"paymentMethods":["Efectivo"],
			"facilities":[],"insurances":[]}]`)
	})
	mux.HandleFunc("/branches/b1", func(w http.ResponseWriter, r *http.Request) {
		var req dto.UpdateBranchRequest
		if r.Method != http.MethodPut || json.NewDecoder(r.Body).Decode(&req) != nil {
			write(w, http.StatusBadRequest, `{"codigo":400,"mensaje":"bad request"}`)
			return
		}
		s.mu.Lock()
		s.branchUpdates = append(s.branchUpdates, req)
		s.mu.Unlock()
		out, _ := json.Marshal(dto.Branch{
			ID:             "b1",
			ProviderID:     req.ProviderID,
			Name:           req.Name,
			Address:        req.Address,
			Phone:          req.Phone,
			Hours:          req.Hours,
			Status:         req.Status,
			PaymentMethods: req.PaymentMethods,
			Facilities:     req.Facilities,
			Insurances:     req.Insurances,
		})
		write(w, http.StatusOK, string(out))
	})
	return mux
}

func setup(t *testing.T) (*fakeServer, string) {
	t.Helper()

	fake := &fakeServer{}
	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	tokenFile := filepath.Join(t.TempDir(), "token")
	t.Setenv("RESOURCES_BASE_URL", srv.URL)
	t.Setenv("TOKEN_FILE", tokenFile)
	t.Setenv("HTTP_TIMEOUT", "2s")
	t.Setenv("HEADLESS", "false")
	t.Setenv("JWT_SECRET", "cli-secret")
	return fake, tokenFile
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	cmd := NewRootCommand()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestProvidersListFiltersByName(t *testing.T) {
	setup(t)

	out, err := execute(t, "providers", "list", "--view", "table", "--search", "SUR")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "Clínica Sur") {
		t.Fatalf("expected Clínica Sur in output:\n%s", out)
	}
	if strings.Contains(out, "Hospital Norte") {
		t.Fatalf("Hospital Norte should be filtered out:\n%s", out)
	}
}

func TestProvidersListRejectsUnknownView(t *testing.T) {
	setup(t)

	if _, err := execute(t, "providers", "list", "--view", "mosaic"); err == nil {
		t.Fatalf("expected an error for an unknown view")
	}
}

func TestLoginAttachesTokenAndLogoutClears(t *testing.T) {
	fake, tokenFile := setup(t)

	if _, err := execute(t, "login", "--token", "abc123"); err != nil {
		t.Fatalf("login: %v", err)
	}
	if _, err := execute(t, "providers", "list"); err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, err := execute(t, "providers", "list", "--headless"); err != nil {
		t.Fatalf("list: %v", err)
	}
	if _, err := execute(t, "logout"); err != nil {
		t.Fatalf("logout: %v", err)
	}

	if len(fake.auth) != 2 || fake.auth[0] != "Bearer abc123" || fake.auth[1] != "" {
		t.Fatalf("unexpected authorization headers %q", fake.auth)
	}
	if _, err := os.Stat(tokenFile); !os.IsNotExist(err) {
		t.Fatalf("expected token file to be removed, got %v", err)
	}
}

func TestTokenMintSave(t *testing.T) {
	_, tokenFile := setup(t)

	out, err := execute(t, "token", "mint", "--subject", "ops@clinica.do", "--save")
	if err != nil {
		t.Fatalf("mint: %v", err)
	}

	saved, err := os.ReadFile(tokenFile)
	if err != nil {
		t.Fatalf("read token file: %v", err)
	}
	if strings.TrimSpace(out) != strings.TrimSpace(string(saved)) {
		t.Fatalf("printed token differs from the saved one")
	}

	claims, err := jwt.NewJWTService(config.JWTConfig{Secret: "cli-secret"}).ValidateToken(strings.TrimSpace(string(saved)))
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if claims.Subject != "ops@clinica.do" {
		t.Fatalf("unexpected subject %q", claims.Subject)
	}
}

func TestSpecialtiesAddUpdatesMembership(t *testing.T) {
	fake, _ := setup(t)

	out, err := execute(t, "specialties", "add", "p1", "--name", "Neurología", "--minutes", "30")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.Contains(out, "30 min") {
		t.Fatalf("expected duration in output:\n%s", out)
	}
	if len(fake.updates) != 1 {
		t.Fatalf("expected one provider update, got %d", len(fake.updates))
	}
	got := fake.updates[0].Specialties
	if len(got) != 2 || got[0] != "sp-1" || got[1] != "sp-9" {
		t.Fatalf("unexpected specialties %v", got)
	}
}

func TestProvidersEditStopsOnInvalidStep(t *testing.T) {
	fake, _ := setup(t)

	out, err := execute(t, "providers", "edit", "p1", "--email", "not-an-email")
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(out, "email") {
		t.Fatalf("expected the email field in output:\n%s", out)
	}
	if len(fake.updates) != 0 {
		t.Fatalf("invalid draft must not reach the server")
	}
}

func TestProvidersEditSubmits(t *testing.T) {
	fake, _ := setup(t)

	out, err := execute(t, "providers", "edit", "p1", "--name", "Clínica Sur Plus", "--toggle-status")
	if err != nil {
		t.Fatalf("edit: %v", err)
	}
	if !strings.Contains(out, "Proveedor actualizado correctamente") {
		t.Fatalf("expected success notice:\n%s", out)
	}
	if len(fake.updates) != 1 {
		t.Fatalf("expected one update, got %d", len(fake.updates))
	}
	if p := fake.updates[0]; p.Name != "Clínica Sur Plus" || p.Status != dto.StatusInactive {
		t.Fatalf("unexpected update %+v", p)
	}
}

func TestProvidersCreateMergesIntoList(t *testing.T) {
	fake, _ := setup(t)

	out, err := execute(t, "providers", "create", "--name", "Centro Médico Este", "--phone", "809-555-0303",
		"--email", "este@centro.do", "--view", "table")
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(fake.createdEntries) != 1 || fake.createdEntries[0].Name != "Centro Médico Este" {
		t.Fatalf("unexpected create requests %+v", fake.createdEntries)
	}
	for _, name := range []string{"Prestador creado correctamente", "Clínica Sur", "Hospital Norte", "Centro Médico Este"} {
		if !strings.Contains(out, name) {
			t.Fatalf("expected %q in output:\n%s", name, out)
		}
	}
}

func TestProvidersCreateRejectsInvalidEmail(t *testing.T) {
	fake, _ := setup(t)

	if _, err := execute(t, "providers", "create", "--name", "X", "--phone", "1", "--email", "nope"); err == nil {
		t.Fatalf("expected a validation error")
	}
	if len(fake.createdEntries) != 0 {
		t.Fatalf("invalid provider must not reach the server")
	}
}

func TestProvidersEditRejectsDoctorCounts(t *testing.T) {
	fake, _ := setup(t)

	out, err := execute(t, "providers", "edit", "p1", "--doctors-active", "13")
	if err == nil {
		t.Fatalf("expected validation error")
	}
	if !strings.Contains(out, "totalDoctors.active") {
		t.Fatalf("expected the doctors field in output:\n%s", out)
	}
	if len(fake.updates) != 0 {
		t.Fatalf("invalid draft must not reach the server")
	}
}

func TestBranchesUpdateKeepsUnsetFields(t *testing.T) {
	fake, _ := setup(t)

	out, err := execute(t, "branches", "update", "p1", "b1", "--name", "Sede Central Renovada", "--close", "20:00")
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if !strings.Contains(out, "Sede Central Renovada") {
		t.Fatalf("expected the new name in output:\n%s", out)
	}
	if len(fake.branchUpdates) != 1 {
		t.Fatalf("expected one branch update, got %d", len(fake.branchUpdates))
	}
	req := fake.branchUpdates[0]
	if req.Address != "Av. Principal 1" || req.Hours != "Lun-Vie: 08:00 - 20:00" || !req.Status || len(req.PaymentMethods) != 1 {
		t.Fatalf("unset fields must keep their stored values, got %+v", req)
	}
}

func TestBranchesUpdateUnknownBranch(t *testing.T) {
	fake, _ := setup(t)

	if _, err := execute(t, "branches", "update", "p1", "b9", "--name", "X"); err == nil {
		t.Fatalf("expected an error for a branch the provider does not list")
	}
	if len(fake.branchUpdates) != 0 {
		t.Fatalf("unknown branch must not reach the server")
	}
}

func TestProceduresAddUpdatesMembership(t *testing.T) {
	fake, _ := setup(t)

	out, err := execute(t, "procedures", "add", "p1", "--name", "Ecocardiograma")
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if !strings.Contains(out, "Ecocardiograma") {
		t.Fatalf("expected the procedure in output:\n%s", out)
	}
	if len(fake.procedures) != 1 || len(fake.updates) != 1 {
		t.Fatalf("expected one create and one provider update, got %d and %d", len(fake.procedures), len(fake.updates))
	}
	if got := fake.updates[0].Procedures; len(got) != 1 || got[0] != "pr-1" {
		t.Fatalf("unexpected procedures %v", got)
	}
}
