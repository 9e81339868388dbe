package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Total struct {
	Active int `gorm:"not null;default:0"`
	Total  int `gorm:"not null;default:0"`
}

// Provider is a medical service provider. Membership sets reference the
// insurances, specialties and procedures tables by ID only; no foreign
// keys are enforced.
type Provider struct {
	ID                   string                      `gorm:"type:varchar(64);primaryKey"`
	Src                  string                      `gorm:"type:text"`
	Name                 string                      `gorm:"type:varchar(255);not null;index"`
	Phone                string                      `gorm:"type:varchar(50);not null"`
	WhatsApp             string                      `gorm:"column:whats_app;type:varchar(50)"`
	Instagram            string                      `gorm:"type:varchar(255)"`
	Email                string                      `gorm:"type:varchar(255)"`
	Website              string                      `gorm:"type:varchar(255)"`
	LinkedIn             string                      `gorm:"column:linked_in;type:varchar(255)"`
	Status               string                      `gorm:"type:varchar(20)"`
	TotalBranches        Total                       `gorm:"embedded;embeddedPrefix:total_branches_"`
	TotalDoctors         Total                       `gorm:"embedded;embeddedPrefix:total_doctors_"`
	AffiliatedInsurances datatypes.JSONSlice[string] `gorm:"type:json"`
	Specialties          datatypes.JSONSlice[string] `gorm:"type:json"`
	Procedures           datatypes.JSONSlice[string] `gorm:"type:json"`
	CreatedAt            time.Time                   `gorm:"autoCreateTime"`
	UpdatedAt            time.Time                   `gorm:"autoUpdateTime"`
}

func (Provider) TableName() string {
	return "providers"
}

func (p *Provider) BeforeCreate(tx *gorm.DB) error {
	p.ID = ensureID(p.ID)
	return nil
}

func ensureID(id string) string {
	if id != "" {
		return id
	}
	return uuid.New().String()
}
