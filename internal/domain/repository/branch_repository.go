package repository

import (
	"provider-directory/internal/domain/entity"

	"gorm.io/gorm"
)

type BranchRepository interface {
	Create(db *gorm.DB, branch *entity.Branch) error
	FindAll(db *gorm.DB) ([]entity.Branch, error)
	FindByProviderID(db *gorm.DB, providerID string) ([]entity.Branch, error)
	FindByID(db *gorm.DB, id string) (*entity.Branch, error)
	Update(db *gorm.DB, branch *entity.Branch) error
}
