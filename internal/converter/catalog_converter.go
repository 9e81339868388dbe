package converter

import (
	"provider-directory/internal/delivery/dto"
	"provider-directory/internal/domain/entity"
)

func SpecialtiesToResponses(specialties []entity.Specialty) []dto.Specialty {
	responses := make([]dto.Specialty, len(specialties))
	for i, s := range specialties {
		responses[i] = dto.Specialty{ID: s.ID, Name: s.Name, Time: s.Time}
	}
	return responses
}

func InsurancesToResponses(insurances []entity.Insurance) []dto.Insurance {
	responses := make([]dto.Insurance, len(insurances))
	for i, ins := range insurances {
		responses[i] = dto.Insurance{ID: ins.ID, Name: ins.Name, Src: ins.Src}
	}
	return responses
}

func ProceduresToResponses(procedures []entity.Procedure) []dto.Procedure {
	responses := make([]dto.Procedure, len(procedures))
	for i, p := range procedures {
		responses[i] = dto.Procedure{ID: p.ID, Name: p.Name}
	}
	return responses
}
