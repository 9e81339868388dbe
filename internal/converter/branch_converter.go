package converter

import (
	"provider-directory/internal/delivery/dto"
	"provider-directory/internal/domain/entity"
)

// BranchToResponse converts a Branch entity to the Branch DTO
func BranchToResponse(branch *entity.Branch) *dto.Branch {
	if branch == nil {
		return nil
	}

	specialties := make([]dto.BranchSpecialty, len(branch.Specialties))
	for i, s := range branch.Specialties {
		procedures := make([]dto.Procedure, len(s.Procedures))
		for j, p := range s.Procedures {
			procedures[j] = dto.Procedure{ID: p.ID, Name: p.Name}
		}
		specialties[i] = dto.BranchSpecialty{ID: s.ID, Name: s.Name, Procedures: procedures}
	}

	return &dto.Branch{
		ID:             branch.ID,
		ProviderID:     branch.ProviderID,
		Name:           branch.Name,
		Address:        branch.Address,
		Phone:          branch.Phone,
		Hours:          branch.Hours,
		Status:         branch.Status,
		PaymentMethods: nonNil(branch.PaymentMethods),
		Facilities:     nonNil(branch.Facilities),
		Insurances:     nonNil(branch.Insurances),
		Specialties:    specialties,
	}
}

// BranchesToResponses converts a slice of Branch entities to Branch DTOs
func BranchesToResponses(branches []entity.Branch) []dto.Branch {
	responses := make([]dto.Branch, len(branches))
	for i := range branches {
		responses[i] = *BranchToResponse(&branches[i])
	}
	return responses
}

// ApplyBranch copies the request payload onto branch
func ApplyBranch(branch *entity.Branch, req *dto.CreateBranchRequest) {
	specialties := make([]entity.BranchSpecialty, len(req.Specialties))
	for i, s := range req.Specialties {
		procedures := make([]entity.BranchProcedure, len(s.Procedures))
		for j, p := range s.Procedures {
			procedures[j] = entity.BranchProcedure{ID: p.ID, Name: p.Name}
		}
		specialties[i] = entity.BranchSpecialty{ID: s.ID, Name: s.Name, Procedures: procedures}
	}

	branch.ProviderID = req.ProviderID
	branch.Name = req.Name
	branch.Address = req.Address
	branch.Phone = req.Phone
	branch.Hours = req.Hours
	branch.Status = req.Status
	branch.PaymentMethods = nonNil(req.PaymentMethods)
	branch.Facilities = nonNil(req.Facilities)
	branch.Insurances = nonNil(req.Insurances)
	branch.Specialties = specialties
}
