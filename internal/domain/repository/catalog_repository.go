package repository

import (
	"provider-directory/internal/domain/entity"

	"gorm.io/gorm"
)

type SpecialtyRepository interface {
	Create(db *gorm.DB, specialty *entity.Specialty) error
	FindAll(db *gorm.DB) ([]entity.Specialty, error)
}

type InsuranceRepository interface {
	Create(db *gorm.DB, insurance *entity.Insurance) error
	FindAll(db *gorm.DB) ([]entity.Insurance, error)
}

type ProcedureRepository interface {
	Create(db *gorm.DB, procedure *entity.Procedure) error
	FindAll(db *gorm.DB) ([]entity.Procedure, error)
}
