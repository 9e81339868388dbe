package converter

import (
	"provider-directory/internal/delivery/dto"
	"provider-directory/internal/domain/entity"
)

// ProviderToResponse converts a Provider entity to the ServiceProvider DTO
func ProviderToResponse(provider *entity.Provider) *dto.ServiceProvider {
	if provider == nil {
		return nil
	}

	return &dto.ServiceProvider{
		ID:                   provider.ID,
		Src:                  provider.Src,
		Name:                 provider.Name,
		Phone:                provider.Phone,
		WhatsApp:             provider.WhatsApp,
		Instagram:            provider.Instagram,
		Email:                provider.Email,
		Website:              provider.Website,
		LinkedIn:             provider.LinkedIn,
		Status:               provider.Status,
		TotalBranches:        dto.Total{Active: provider.TotalBranches.Active, Total: provider.TotalBranches.Total},
		TotalDoctors:         dto.Total{Active: provider.TotalDoctors.Active, Total: provider.TotalDoctors.Total},
		AffiliatedInsurances: nonNil(provider.AffiliatedInsurances),
		Specialties:          nonNil(provider.Specialties),
		Procedures:           nonNil(provider.Procedures),
	}
}

// ProvidersToResponses converts a slice of Provider entities to ServiceProvider DTOs
func ProvidersToResponses(providers []entity.Provider) []dto.ServiceProvider {
	responses := make([]dto.ServiceProvider, len(providers))
	for i := range providers {
		responses[i] = *ProviderToResponse(&providers[i])
	}
	return responses
}

// CreateRequestToProvider builds a new Provider entity from the create payload
func CreateRequestToProvider(req *dto.CreateProviderRequest) *entity.Provider {
	return &entity.Provider{
		Src:                  req.Src,
		Name:                 req.Name,
		Phone:                req.Phone,
		WhatsApp:             req.WhatsApp,
		Instagram:            req.Instagram,
		Email:                req.Email,
		Website:              req.Website,
		LinkedIn:             req.LinkedIn,
		Status:               req.Status,
		TotalBranches:        entity.Total{Active: req.TotalBranches.Active, Total: req.TotalBranches.Total},
		TotalDoctors:         entity.Total{Active: req.TotalDoctors.Active, Total: req.TotalDoctors.Total},
		AffiliatedInsurances: nonNil(req.AffiliatedInsurances),
		Specialties:          nonNil(req.Specialties),
		Procedures:           nonNil(req.Procedures),
	}
}

// ApplyProvider overwrites every mutable field of provider with req
func ApplyProvider(provider *entity.Provider, req *dto.ServiceProvider) {
	provider.Src = req.Src
	provider.Name = req.Name
	provider.Phone = req.Phone
	provider.WhatsApp = req.WhatsApp
	provider.Instagram = req.Instagram
	provider.Email = req.Email
	provider.Website = req.Website
	provider.LinkedIn = req.LinkedIn
	provider.Status = req.Status
	provider.TotalBranches = entity.Total{Active: req.TotalBranches.Active, Total: req.TotalBranches.Total}
	provider.TotalDoctors = entity.Total{Active: req.TotalDoctors.Active, Total: req.TotalDoctors.Total}
	provider.AffiliatedInsurances = nonNil(req.AffiliatedInsurances)
	provider.Specialties = nonNil(req.Specialties)
	provider.Procedures = nonNil(req.Procedures)
}

func nonNil(in []string) []string {
	if in == nil {
		return []string{}
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
