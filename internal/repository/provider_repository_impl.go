package repository

import (
	"errors"

	"provider-directory/internal/domain/entity"
	domainRepo "provider-directory/internal/domain/repository"

	"gorm.io/gorm"
)

type providerRepository struct{}

func NewProviderRepository() domainRepo.ProviderRepository {
	return &providerRepository{}
}

func (r *providerRepository) Create(db *gorm.DB, provider *entity.Provider) error {
	return db.Create(provider).Error
}

func (r *providerRepository) FindAll(db *gorm.DB) ([]entity.Provider, error) {
	var providers []entity.Provider
	err := db.Order("created_at ASC").Order("id ASC").Find(&providers).Error
	if err != nil {
		return nil, err
	}
	return providers, nil
}

func (r *providerRepository) FindByID(db *gorm.DB, id string) (*entity.Provider, error) {
	var provider entity.Provider
	err := db.Where("id = ?", id).First(&provider).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &provider, nil
}

func (r *providerRepository) Update(db *gorm.DB, provider *entity.Provider) error {
	return db.Save(provider).Error
}
