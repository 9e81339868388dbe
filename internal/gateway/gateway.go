// Package gateway wraps every backend call so that callers always receive
// the {resp:{codigo,mensaje}, data} envelope, whether the call succeeded,
// was rejected upstream, or never reached the server.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"provider-directory/pkg/response"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
)

// Target selects which backend a request is addressed to.
type Target int

const (
	// TargetAPI is the generic API gateway.
	TargetAPI Target = iota
	// TargetResources is the directory resource server.
	TargetResources
)

func (t Target) String() string {
	switch t {
	case TargetAPI:
		return "api"
	case TargetResources:
		return "resources"
	default:
		return "unknown"
	}
}

// TokenSource yields the bearer token of the local client session. An empty
// token means no session.
type TokenSource interface {
	Token() (string, error)
}

type Config struct {
	APIBaseURL       string
	ResourcesBaseURL string
	Timeout          time.Duration
	// Headless gateways never attach a bearer token.
	Headless bool
}

type Gateway struct {
	http     *resty.Client
	bases    map[Target]string
	tokens   TokenSource
	headless bool
	log      *logrus.Logger
}

// New builds a gateway. tokens may be nil.
func New(cfg Config, tokens TokenSource, log *logrus.Logger) *Gateway {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Gateway{
		http: resty.New().SetTimeout(timeout),
		bases: map[Target]string{
			TargetAPI:       cfg.APIBaseURL,
			TargetResources: cfg.ResourcesBaseURL,
		},
		tokens:   tokens,
		headless: cfg.Headless,
		log:      log,
	}
}

type Request struct {
	Path    string
	Method  string // GET when empty
	Body    interface{}
	Headers map[string]string
	Target  Target
}

// Envelope is the normalized result of every call.
type Envelope[T any] struct {
	Resp    response.Resp `json:"resp"`
	Data    T             `json:"data,omitempty"`
	hasData bool
}

// HasData reports whether the upstream produced a non-null payload.
func (e Envelope[T]) HasData() bool {
	return e.hasData
}

// Success wraps data in an envelope carrying resp.
func Success[T any](resp response.Resp, data T) Envelope[T] {
	return Envelope[T]{Resp: resp, Data: data, hasData: true}
}

// Failure is an envelope without data.
func Failure[T any](codigo int, mensaje string) Envelope[T] {
	if mensaje == "" {
		mensaje = response.DefaultErrorMessage
	}
	return Envelope[T]{Resp: response.Resp{Codigo: codigo, Mensaje: mensaje}}
}

// Do performs one call and decodes the payload into T. It never returns an
// error: transport and upstream failures come back as failed envelopes.
func Do[T any](ctx context.Context, g *Gateway, req Request) Envelope[T] {
	start := time.Now()
	method := req.Method
	if method == "" {
		method = http.MethodGet
	}
	url := g.url(req.Target, req.Path)

	var env Envelope[T]
	status, body, err := g.execute(ctx, method, url, req)
	switch {
	case err != nil:
		g.log.Warnf("Failed to call %s %s: %+v", method, url, err)
		env = Failure[T](http.StatusInternalServerError, "")
	case status < 200 || status > 299:
		env = decodeFailure[T](status, body)
	default:
		env, err = decodeSuccess[T](body)
		if err != nil {
			g.log.Warnf("Failed to decode %s %s response: %+v", method, url, err)
			env = Failure[T](http.StatusInternalServerError, "")
		}
	}

	g.log.WithFields(logrus.Fields{
		"method":   method,
		"url":      url,
		"target":   req.Target.String(),
		"codigo":   env.Resp.Codigo,
		"duration": time.Since(start).String(),
	}).Debug("gateway call")

	return env
}

func (g *Gateway) execute(ctx context.Context, method, url string, req Request) (int, []byte, error) {
	r := g.http.R().SetContext(ctx).SetHeader("Accept", "application/json")

	if !g.headless && g.tokens != nil && req.Headers["Authorization"] == "" {
		token, err := g.tokens.Token()
		if err != nil {
			g.log.Warnf("Failed to read session token: %+v", err)
		} else if token != "" {
			r.SetAuthToken(token)
		}
	}

	if req.Body != nil && method != http.MethodGet {
		r.SetHeader("Content-Type", "application/json").SetBody(req.Body)
	}
	r.SetHeaders(req.Headers)

	resp, err := r.Execute(method, url)
	if err != nil {
		return 0, nil, err
	}
	return resp.StatusCode(), resp.Body(), nil
}

func (g *Gateway) url(target Target, path string) string {
	base := strings.TrimRight(g.bases[target], "/")
	return base + "/" + strings.TrimLeft(path, "/")
}

// envelopeHead holds the envelope-level fields of a JSON object body.
type envelopeHead struct {
	Resp    *response.Resp  `json:"resp"`
	Data    json.RawMessage `json:"data"`
	Codigo  *int            `json:"codigo"`
	Mensaje string          `json:"mensaje"`
	Message string          `json:"message"`
}

func readHead(body []byte) (envelopeHead, bool) {
	var p envelopeHead
	if !bytes.HasPrefix(bytes.TrimSpace(body), []byte("{")) {
		return p, false
	}
	if err := json.Unmarshal(body, &p); err != nil {
		return p, false
	}
	return p, true
}

// decodeSuccess passes an upstream envelope through, or wraps a raw body
// in a synthesized one with codigo 0.
func decodeSuccess[T any](body []byte) (Envelope[T], error) {
	if p, ok := readHead(body); ok && p.Resp != nil {
		env := Envelope[T]{Resp: *p.Resp}
		if !isNull(p.Data) {
			if err := json.Unmarshal(p.Data, &env.Data); err != nil {
				return env, err
			}
			env.hasData = true
		}
		return env, nil
	}

	env := Envelope[T]{Resp: response.Resp{Codigo: 0, Mensaje: "OK"}}
	if !isNull(body) {
		if err := json.Unmarshal(body, &env.Data); err != nil {
			return env, err
		}
		env.hasData = true
	}
	return env, nil
}

func decodeFailure[T any](status int, body []byte) Envelope[T] {
	p, ok := readHead(body)
	if !ok {
		return Failure[T](status, "")
	}
	if p.Resp != nil {
		env := Envelope[T]{Resp: *p.Resp}
		if !isNull(p.Data) && json.Unmarshal(p.Data, &env.Data) == nil {
			env.hasData = true
		}
		return env
	}

	codigo := status
	if p.Codigo != nil {
		codigo = *p.Codigo
	}
	mensaje := p.Mensaje
	if mensaje == "" {
		mensaje = p.Message
	}
	return Failure[T](codigo, mensaje)
}

func isNull(raw []byte) bool {
	trimmed := bytes.TrimSpace(raw)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null"))
}
