package gateway

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"provider-directory/pkg/response"

	"github.com/sirupsen/logrus"
)

type item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type staticToken string

func (s staticToken) Token() (string, error) { return string(s), nil }

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestGateway(url string, tokens TokenSource, headless bool) *Gateway {
	return New(Config{
		APIBaseURL:       url + "/api/v1/",
		ResourcesBaseURL: url,
		Timeout:          2 * time.Second,
		Headless:         headless,
	}, tokens, quietLogger())
}

func TestDoPassesEnvelopeThrough(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"resp":{"codigo":200,"mensaje":"Listo"},"data":{"id":"p1","name":"Clínica Sur"}}`))
	}))
	defer srv.Close()

	env := Do[item](context.Background(), newTestGateway(srv.URL, nil, false), Request{Path: "providers/p1", Target: TargetResources})

	if env.Resp.Codigo != 200 || env.Resp.Mensaje != "Listo" {
		t.Fatalf("expected upstream resp, got %+v", env.Resp)
	}
	if !env.HasData() || env.Data.Name != "Clínica Sur" {
		t.Fatalf("expected data to be decoded, got %+v", env.Data)
	}
}

func TestDoSynthesizesEnvelopeForRawBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"a","name":"A"},{"id":"b","name":"B"}]`))
	}))
	defer srv.Close()

	env := Do[[]item](context.Background(), newTestGateway(srv.URL, nil, false), Request{Path: "/insurances", Target: TargetResources})

	if env.Resp != (response.Resp{Codigo: 0, Mensaje: "OK"}) {
		t.Fatalf("expected synthesized resp, got %+v", env.Resp)
	}
	if !env.Resp.Succeeded() {
		t.Fatalf("synthesized envelope must count as success")
	}
	if len(env.Data) != 2 || env.Data[1].ID != "b" {
		t.Fatalf("unexpected data: %+v", env.Data)
	}
}

func TestDoNormalizesFailures(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantCodigo  int
		wantMensaje string
		wantData    bool
	}{
		{
			name:        "upstream envelope",
			status:      http.StatusNotFound,
			body:        `{"resp":{"codigo":404,"mensaje":"No existe"}}`,
			wantCodigo:  404,
			wantMensaje: "No existe",
		},
		{
			name:        "flat codigo and mensaje",
			status:      http.StatusBadRequest,
			body:        `{"codigo":4001,"mensaje":"Solicitud rechazada"}`,
			wantCodigo:  4001,
			wantMensaje: "Solicitud rechazada",
		},
		{
			name:        "message only",
			status:      http.StatusConflict,
			body:        `{"message":"conflict"}`,
			wantCodigo:  409,
			wantMensaje: "conflict",
		},
		{
			name:        "plain text",
			status:      http.StatusBadGateway,
			body:        `bad gateway`,
			wantCodigo:  502,
			wantMensaje: response.DefaultErrorMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			env := Do[item](context.Background(), newTestGateway(srv.URL, nil, false), Request{Path: "providers", Target: TargetResources})

			if env.Resp.Codigo != tt.wantCodigo || env.Resp.Mensaje != tt.wantMensaje {
				t.Fatalf("expected %d %q, got %+v", tt.wantCodigo, tt.wantMensaje, env.Resp)
			}
			if env.HasData() != tt.wantData {
				t.Fatalf("expected HasData %v", tt.wantData)
			}
			if env.Resp.Succeeded() {
				t.Fatalf("failure envelope reported success")
			}
		})
	}
}

func TestDoTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	env := Do[item](context.Background(), newTestGateway(url, nil, false), Request{Path: "providers", Target: TargetResources})

	if env.Resp.Codigo != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", env.Resp.Codigo)
	}
	if env.Resp.Mensaje != response.DefaultErrorMessage {
		t.Fatalf("expected generic message, got %q", env.Resp.Mensaje)
	}
	if env.HasData() {
		t.Fatalf("failure must not carry data")
	}
}

func TestDoUndecodableBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id": 12}`))
	}))
	defer srv.Close()

	env := Do[item](context.Background(), newTestGateway(srv.URL, nil, false), Request{Path: "providers/x", Target: TargetResources})
	if env.Resp.Codigo != http.StatusInternalServerError || env.HasData() {
		t.Fatalf("expected decode failure envelope, got %+v", env)
	}
}

func TestDoAttachesBearerToken(t *testing.T) {
	tests := []struct {
		name     string
		headless bool
		headers  map[string]string
		want     string
	}{
		{name: "interactive", want: "Bearer tok-1"},
		{name: "headless", headless: true, want: ""},
		{name: "caller override", headers: map[string]string{"Authorization": "Bearer other"}, want: "Bearer other"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got string
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				got = r.Header.Get("Authorization")
				w.Write([]byte(`{}`))
			}))
			defer srv.Close()

			g := newTestGateway(srv.URL, staticToken("tok-1"), tt.headless)
			Do[map[string]interface{}](context.Background(), g, Request{Path: "providers", Headers: tt.headers, Target: TargetResources})

			if got != tt.want {
				t.Fatalf("expected Authorization %q, got %q", tt.want, got)
			}
		})
	}
}

func TestDoRoutesByTargetAndMethod(t *testing.T) {
	var gotPath, gotMethod, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotMethod = r.Method
		raw, _ := io.ReadAll(r.Body)
		gotBody = strings.TrimSpace(string(raw))
		w.Write([]byte(`{"id":"n1","name":"Nuevo"}`))
	}))
	defer srv.Close()

	g := newTestGateway(srv.URL, nil, false)
	env := Do[item](context.Background(), g, Request{
		Path:   "/things",
		Method: http.MethodPost,
		Body:   item{Name: "Nuevo"},
		Target: TargetAPI,
	})

	if gotPath != "/api/v1/things" {
		t.Fatalf("expected api base path, got %q", gotPath)
	}
	if gotMethod != http.MethodPost {
		t.Fatalf("expected POST, got %s", gotMethod)
	}
	if gotBody != `{"id":"","name":"Nuevo"}` {
		t.Fatalf("unexpected body %q", gotBody)
	}
	if env.Data.ID != "n1" {
		t.Fatalf("unexpected data %+v", env.Data)
	}
}

func TestFileTokenStore(t *testing.T) {
	store := NewFileTokenStore(filepath.Join(t.TempDir(), "nested", "token"))

	token, err := store.Token()
	if err != nil || token != "" {
		t.Fatalf("expected no session, got %q %v", token, err)
	}

	if err := store.Save("abc.def "); err != nil {
		t.Fatalf("save: %v", err)
	}
	token, err = store.Token()
	if err != nil || token != "abc.def" {
		t.Fatalf("expected stored token, got %q %v", token, err)
	}

	if err := store.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if err := store.Clear(); err != nil {
		t.Fatalf("second clear: %v", err)
	}
	if token, _ := store.Token(); token != "" {
		t.Fatalf("expected token to be gone, got %q", token)
	}
}
