package action

import (
	"context"
	"errors"

	"provider-directory/internal/delivery/dto"
	"provider-directory/internal/gateway"

	"github.com/sirupsen/logrus"
	"github.com/sourcegraph/conc"
)

var (
	ErrProviderNotFound = errors.New("no se encontró el prestador solicitado")
)

// Set bundles the per-resource calls and the composite reads built on them.
type Set struct {
	Providers   Providers
	Branches    Branches
	Specialties Specialties
	Insurances  Insurances
	Procedures  Procedures

	log *logrus.Logger
}

func NewSet(g *gateway.Gateway, log *logrus.Logger) *Set {
	return &Set{
		Providers:   Providers{g: g},
		Branches:    Branches{g: g},
		Specialties: Specialties{g: g},
		Insurances:  Insurances{g: g},
		Procedures:  Procedures{g: g},
		log:         log,
	}
}

// GetCatalog fetches the three reference collections in parallel. A
// collection that fails to load is empty.
func (s *Set) GetCatalog(ctx context.Context) dto.Catalog {
	var catalog dto.Catalog
	var wg conc.WaitGroup
	wg.Go(func() { catalog.Insurances = s.insurances(ctx) })
	wg.Go(func() { catalog.Specialties = s.specialties(ctx) })
	wg.Go(func() { catalog.Procedures = s.procedures(ctx) })
	wg.Wait()
	return catalog
}

// GetProviderDetails fetches the provider and the reference collections in
// parallel and resolves the provider's memberships against them.
func (s *Set) GetProviderDetails(ctx context.Context, id string) (dto.ProviderDetails, error) {
	var (
		provider gateway.Envelope[dto.ServiceProvider]
		catalog  dto.Catalog
	)

	var wg conc.WaitGroup
	wg.Go(func() { provider = s.Providers.GetByID(ctx, id) })
	wg.Go(func() { catalog = s.GetCatalog(ctx) })
	wg.Wait()

	if !provider.HasData() {
		s.log.Warnf("Failed to get provider %s: %d %s", id, provider.Resp.Codigo, provider.Resp.Mensaje)
		return dto.ProviderDetails{}, ErrProviderNotFound
	}

	return catalog.Resolve(provider.Data), nil
}

// ProviderView is the detail page payload. Err is the details error;
// branch failures never set it.
type ProviderView struct {
	Details  dto.ProviderDetails
	Catalog  dto.Catalog
	Branches []dto.Branch
	Err      error
}

// GetProviderWithBranches runs GetProviderDetails and the branch listing in
// parallel. A failed branch listing yields an empty list.
func (s *Set) GetProviderWithBranches(ctx context.Context, id string) ProviderView {
	var (
		view     ProviderView
		provider gateway.Envelope[dto.ServiceProvider]
		branches gateway.Envelope[[]dto.Branch]
	)

	var wg conc.WaitGroup
	wg.Go(func() { provider = s.Providers.GetByID(ctx, id) })
	wg.Go(func() { view.Catalog = s.GetCatalog(ctx) })
	wg.Go(func() { branches = s.Branches.ListByProvider(ctx, id) })
	wg.Wait()

	if provider.HasData() {
		view.Details = view.Catalog.Resolve(provider.Data)
	} else {
		s.log.Warnf("Failed to get provider %s: %d %s", id, provider.Resp.Codigo, provider.Resp.Mensaje)
		view.Err = ErrProviderNotFound
	}

	view.Branches = []dto.Branch{}
	if branches.Resp.Succeeded() && branches.Data != nil {
		view.Branches = branches.Data
	} else if !branches.Resp.Succeeded() {
		s.log.Warnf("Failed to list branches of %s: %d %s", id, branches.Resp.Codigo, branches.Resp.Mensaje)
	}

	return view
}

func (s *Set) insurances(ctx context.Context) []dto.Insurance {
	env := s.Insurances.ListAll(ctx)
	if !env.Resp.Succeeded() || env.Data == nil {
		return []dto.Insurance{}
	}
	return env.Data
}

func (s *Set) specialties(ctx context.Context) []dto.Specialty {
	env := s.Specialties.ListAll(ctx)
	if !env.Resp.Succeeded() || env.Data == nil {
		return []dto.Specialty{}
	}
	return env.Data
}

func (s *Set) procedures(ctx context.Context) []dto.Procedure {
	env := s.Procedures.ListAll(ctx)
	if !env.Resp.Succeeded() || env.Data == nil {
		return []dto.Procedure{}
	}
	return env.Data
}

// The methods below let a Set back the workspace and the edit wizard.

func (s *Set) UpdateProvider(ctx context.Context, p dto.ServiceProvider) gateway.Envelope[dto.ServiceProvider] {
	return s.Providers.Update(ctx, p)
}

func (s *Set) ListBranches(ctx context.Context, providerID string) gateway.Envelope[[]dto.Branch] {
	return s.Branches.ListByProvider(ctx, providerID)
}

func (s *Set) CreateBranch(ctx context.Context, req dto.CreateBranchRequest) gateway.Envelope[dto.Branch] {
	return s.Branches.Create(ctx, req)
}

func (s *Set) UpdateBranch(ctx context.Context, id string, req dto.UpdateBranchRequest) gateway.Envelope[dto.Branch] {
	return s.Branches.Update(ctx, id, req)
}

func (s *Set) CreateSpecialty(ctx context.Context, req dto.CreateSpecialtyRequest) gateway.Envelope[dto.Specialty] {
	return s.Specialties.Create(ctx, req)
}

func (s *Set) CreateInsurance(ctx context.Context, req dto.CreateInsuranceRequest) gateway.Envelope[dto.Insurance] {
	return s.Insurances.Create(ctx, req)
}

func (s *Set) CreateProcedure(ctx context.Context, req dto.CreateProcedureRequest) gateway.Envelope[dto.Procedure] {
	return s.Procedures.Create(ctx, req)
}
