package repository

import (
	"provider-directory/internal/domain/entity"

	"gorm.io/gorm"
)

// AuditLogRepository stores the change history. Entries are append-only.
type AuditLogRepository interface {
	Create(db *gorm.DB, log *entity.AuditLog) error
	Find(db *gorm.DB, filter entity.AuditLogFilter) ([]entity.AuditLog, error)
	Count(db *gorm.DB, filter entity.AuditLogFilter) (int64, error)
	FindByID(db *gorm.DB, id int64) (*entity.AuditLog, error)
}
