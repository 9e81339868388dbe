package repository

import (
	"provider-directory/internal/domain/entity"
	domainRepo "provider-directory/internal/domain/repository"

	"gorm.io/gorm"
)

type specialtyRepository struct{}

func NewSpecialtyRepository() domainRepo.SpecialtyRepository {
	return &specialtyRepository{}
}

func (r *specialtyRepository) Create(db *gorm.DB, specialty *entity.Specialty) error {
	return db.Create(specialty).Error
}

func (r *specialtyRepository) FindAll(db *gorm.DB) ([]entity.Specialty, error) {
	var specialties []entity.Specialty
	if err := db.Order("created_at ASC").Order("id ASC").Find(&specialties).Error; err != nil {
		return nil, err
	}
	return specialties, nil
}

type insuranceRepository struct{}

func NewInsuranceRepository() domainRepo.InsuranceRepository {
	return &insuranceRepository{}
}

func (r *insuranceRepository) Create(db *gorm.DB, insurance *entity.Insurance) error {
	return db.Create(insurance).Error
}

func (r *insuranceRepository) FindAll(db *gorm.DB) ([]entity.Insurance, error) {
	var insurances []entity.Insurance
	if err := db.Order("created_at ASC").Order("id ASC").Find(&insurances).Error; err != nil {
		return nil, err
	}
	return insurances, nil
}

type procedureRepository struct{}

func NewProcedureRepository() domainRepo.ProcedureRepository {
	return &procedureRepository{}
}

func (r *procedureRepository) Create(db *gorm.DB, procedure *entity.Procedure) error {
	return db.Create(procedure).Error
}

func (r *procedureRepository) FindAll(db *gorm.DB) ([]entity.Procedure, error) {
	var procedures []entity.Procedure
	if err := db.Order("created_at ASC").Order("id ASC").Find(&procedures).Error; err != nil {
		return nil, err
	}
	return procedures, nil
}
