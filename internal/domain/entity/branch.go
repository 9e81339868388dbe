package entity

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type BranchProcedure struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type BranchSpecialty struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	Procedures []BranchProcedure `json:"procedures"`
}

type Branch struct {
	ID             string                               `gorm:"type:varchar(64);primaryKey"`
	ProviderID     string                               `gorm:"type:varchar(64);not null;index"`
	Name           string                               `gorm:"type:varchar(255);not null"`
	Address        string                               `gorm:"type:text;not null"`
	Phone          string                               `gorm:"type:varchar(50);not null"`
	Hours          string                               `gorm:"type:varchar(100)"`
	Status         bool                                 `gorm:"not null"`
	PaymentMethods datatypes.JSONSlice[string]          `gorm:"type:json"`
	Facilities     datatypes.JSONSlice[string]          `gorm:"type:json"`
	Insurances     datatypes.JSONSlice[string]          `gorm:"type:json"`
	Specialties    datatypes.JSONSlice[BranchSpecialty] `gorm:"type:json"`
	CreatedAt      time.Time                            `gorm:"autoCreateTime"`
	UpdatedAt      time.Time                            `gorm:"autoUpdateTime"`
}

func (Branch) TableName() string {
	return "branches"
}

func (b *Branch) BeforeCreate(tx *gorm.DB) error {
	b.ID = ensureID(b.ID)
	return nil
}
