package repository

import (
	"errors"

	"provider-directory/internal/domain/entity"
	domainRepo "provider-directory/internal/domain/repository"

	"gorm.io/gorm"
)

type branchRepository struct{}

func NewBranchRepository() domainRepo.BranchRepository {
	return &branchRepository{}
}

func (r *branchRepository) Create(db *gorm.DB, branch *entity.Branch) error {
	return db.Create(branch).Error
}

func (r *branchRepository) FindAll(db *gorm.DB) ([]entity.Branch, error) {
	var branches []entity.Branch
	err := db.Order("created_at ASC").Order("id ASC").Find(&branches).Error
	if err != nil {
		return nil, err
	}
	return branches, nil
}

func (r *branchRepository) FindByProviderID(db *gorm.DB, providerID string) ([]entity.Branch, error) {
	var branches []entity.Branch
	err := db.Where("provider_id = ?", providerID).Order("created_at ASC").Order("id ASC").Find(&branches).Error
	if err != nil {
		return nil, err
	}
	return branches, nil
}

func (r *branchRepository) FindByID(db *gorm.DB, id string) (*entity.Branch, error) {
	var branch entity.Branch
	err := db.Where("id = ?", id).First(&branch).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &branch, nil
}

func (r *branchRepository) Update(db *gorm.DB, branch *entity.Branch) error {
	return db.Save(branch).Error
}
