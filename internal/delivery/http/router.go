package http

import (
	"net/http"

	"provider-directory/internal/delivery/http/handler"
	"provider-directory/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	providerHandler     *handler.ProviderHandler
	branchHandler       *handler.BranchHandler
	catalogHandler      *handler.CatalogHandler
	auditLogHandler     *handler.AuditLogHandler
	authMiddleware      *middleware.AuthMiddleware
	corsMiddleware      *middleware.CORSMiddleware
	rateLimitMiddleware *middleware.RateLimitMiddleware
}

func NewRouter(
	providerHandler *handler.ProviderHandler,
	branchHandler *handler.BranchHandler,
	catalogHandler *handler.CatalogHandler,
	auditLogHandler *handler.AuditLogHandler,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	rateLimitMiddleware *middleware.RateLimitMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		providerHandler:     providerHandler,
		branchHandler:       branchHandler,
		catalogHandler:      catalogHandler,
		auditLogHandler:     auditLogHandler,
		authMiddleware:      authMiddleware,
		corsMiddleware:      corsMiddleware,
		rateLimitMiddleware: rateLimitMiddleware,
	}
}

// Setup registers the resource routes at the root, the way the client
// addresses them relative to its resources base URL.
func (r *Router) Setup() *mux.Router {
	r.router.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	api := r.router.NewRoute().Subrouter()
	api.Use(r.authMiddleware.Authenticate)

	// Providers
	api.HandleFunc("/providers", r.providerHandler.GetAll).Methods(http.MethodGet)
	api.HandleFunc("/providers", r.providerHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/providers/{id}", r.providerHandler.GetByID).Methods(http.MethodGet)
	api.HandleFunc("/providers/{id}", r.providerHandler.Update).Methods(http.MethodPut)

	// Branches
	api.HandleFunc("/branches", r.branchHandler.GetAll).Methods(http.MethodGet)
	api.HandleFunc("/branches", r.branchHandler.Create).Methods(http.MethodPost)
	api.HandleFunc("/branches/{id}", r.branchHandler.Update).Methods(http.MethodPut)

	// Reference collections
	api.HandleFunc("/specialties", r.catalogHandler.GetSpecialties).Methods(http.MethodGet)
	api.HandleFunc("/specialties", r.catalogHandler.CreateSpecialty).Methods(http.MethodPost)
	api.HandleFunc("/insurances", r.catalogHandler.GetInsurances).Methods(http.MethodGet)
	api.HandleFunc("/insurances", r.catalogHandler.CreateInsurance).Methods(http.MethodPost)
	api.HandleFunc("/procedures", r.catalogHandler.GetProcedures).Methods(http.MethodGet)
	api.HandleFunc("/procedures", r.catalogHandler.CreateProcedure).Methods(http.MethodPost)

	// Audit trail
	api.HandleFunc("/audit-logs", r.auditLogHandler.List).Methods(http.MethodGet)
	api.HandleFunc("/audit-logs/{id}", r.auditLogHandler.GetByID).Methods(http.MethodGet)

	// Preflight requests must match a route for the middleware chain to run.
	r.router.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {})

	r.router.Use(r.corsMiddleware.Handle)
	r.router.Use(r.rateLimitMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
