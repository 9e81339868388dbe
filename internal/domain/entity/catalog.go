package entity

import (
	"time"

	"gorm.io/gorm"
)

// Specialty.Time is the appointment duration in milliseconds.
type Specialty struct {
	ID        string    `gorm:"type:varchar(64);primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Time      int64     `gorm:"not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Specialty) TableName() string {
	return "specialties"
}

func (s *Specialty) BeforeCreate(tx *gorm.DB) error {
	s.ID = ensureID(s.ID)
	return nil
}

type Insurance struct {
	ID        string    `gorm:"type:varchar(64);primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	Src       string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Insurance) TableName() string {
	return "insurances"
}

func (i *Insurance) BeforeCreate(tx *gorm.DB) error {
	i.ID = ensureID(i.ID)
	return nil
}

type Procedure struct {
	ID        string    `gorm:"type:varchar(64);primaryKey"`
	Name      string    `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `gorm:"autoCreateTime"`
}

func (Procedure) TableName() string {
	return "procedures"
}

func (p *Procedure) BeforeCreate(tx *gorm.DB) error {
	p.ID = ensureID(p.ID)
	return nil
}
