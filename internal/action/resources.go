// Package action holds one set of calls per resource of the directory
// server. Every call returns the gateway envelope unchanged; callers check
// resp.codigo themselves.
package action

import (
	"context"
	"net/http"
	"net/url"

	"provider-directory/internal/delivery/dto"
	"provider-directory/internal/gateway"
)

type Providers struct {
	g *gateway.Gateway
}

func (a Providers) ListAll(ctx context.Context) gateway.Envelope[[]dto.ServiceProvider] {
	return gateway.Do[[]dto.ServiceProvider](ctx, a.g, gateway.Request{
		Path:   "providers",
		Target: gateway.TargetResources,
	})
}

func (a Providers) GetByID(ctx context.Context, id string) gateway.Envelope[dto.ServiceProvider] {
	return gateway.Do[dto.ServiceProvider](ctx, a.g, gateway.Request{
		Path:   "providers/" + url.PathEscape(id),
		Target: gateway.TargetResources,
	})
}

func (a Providers) Create(ctx context.Context, req dto.CreateProviderRequest) gateway.Envelope[dto.ServiceProvider] {
	return gateway.Do[dto.ServiceProvider](ctx, a.g, gateway.Request{
		Path:   "providers",
		Method: http.MethodPost,
		Body:   req,
		Target: gateway.TargetResources,
	})
}

// Update replaces the provider keyed by p.ID.
func (a Providers) Update(ctx context.Context, p dto.ServiceProvider) gateway.Envelope[dto.ServiceProvider] {
	return gateway.Do[dto.ServiceProvider](ctx, a.g, gateway.Request{
		Path:   "providers/" + url.PathEscape(p.ID),
		Method: http.MethodPut,
		Body:   p,
		Target: gateway.TargetResources,
	})
}

type Branches struct {
	g *gateway.Gateway
}

func (a Branches) ListByProvider(ctx context.Context, providerID string) gateway.Envelope[[]dto.Branch] {
	query := url.Values{"providerId": []string{providerID}}
	return gateway.Do[[]dto.Branch](ctx, a.g, gateway.Request{
		Path:   "branches?" + query.Encode(),
		Target: gateway.TargetResources,
	})
}

func (a Branches) Create(ctx context.Context, req dto.CreateBranchRequest) gateway.Envelope[dto.Branch] {
	return gateway.Do[dto.Branch](ctx, a.g, gateway.Request{
		Path:   "branches",
		Method: http.MethodPost,
		Body:   req,
		Target: gateway.TargetResources,
	})
}

func (a Branches) Update(ctx context.Context, id string, req dto.UpdateBranchRequest) gateway.Envelope[dto.Branch] {
	return gateway.Do[dto.Branch](ctx, a.g, gateway.Request{
		Path:   "branches/" + url.PathEscape(id),
		Method: http.MethodPut,
		Body:   req,
		Target: gateway.TargetResources,
	})
}

type Specialties struct {
	g *gateway.Gateway
}

func (a Specialties) ListAll(ctx context.Context) gateway.Envelope[[]dto.Specialty] {
	return gateway.Do[[]dto.Specialty](ctx, a.g, gateway.Request{
		Path:   "specialties",
		Target: gateway.TargetResources,
	})
}

func (a Specialties) Create(ctx context.Context, req dto.CreateSpecialtyRequest) gateway.Envelope[dto.Specialty] {
	return gateway.Do[dto.Specialty](ctx, a.g, gateway.Request{
		Path:   "specialties",
		Method: http.MethodPost,
		Body:   req,
		Target: gateway.TargetResources,
	})
}

type Insurances struct {
	g *gateway.Gateway
}

func (a Insurances) ListAll(ctx context.Context) gateway.Envelope[[]dto.Insurance] {
	return gateway.Do[[]dto.Insurance](ctx, a.g, gateway.Request{
		Path:   "insurances",
		Target: gateway.TargetResources,
	})
}

func (a Insurances) Create(ctx context.Context, req dto.CreateInsuranceRequest) gateway.Envelope[dto.Insurance] {
	return gateway.Do[dto.Insurance](ctx, a.g, gateway.Request{
		Path:   "insurances",
		Method: http.MethodPost,
		Body:   req,
		Target: gateway.TargetResources,
	})
}

type Procedures struct {
	g *gateway.Gateway
}

func (a Procedures) ListAll(ctx context.Context) gateway.Envelope[[]dto.Procedure] {
	return gateway.Do[[]dto.Procedure](ctx, a.g, gateway.Request{
		Path:   "procedures",
		Target: gateway.TargetResources,
	})
}

func (a Procedures) Create(ctx context.Context, req dto.CreateProcedureRequest) gateway.Envelope[dto.Procedure] {
	return gateway.Do[dto.Procedure](ctx, a.g, gateway.Request{
		Path:   "procedures",
		Method: http.MethodPost,
		Body:   req,
		Target: gateway.TargetResources,
	})
}
