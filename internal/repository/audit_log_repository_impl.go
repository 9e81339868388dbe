package repository

import (
	"errors"

	"provider-directory/internal/domain/entity"
	domainRepo "provider-directory/internal/domain/repository"

	"gorm.io/gorm"
)

type auditLogRepository struct{}

func NewAuditLogRepository() domainRepo.AuditLogRepository {
	return &auditLogRepository{}
}

func (r *auditLogRepository) Create(db *gorm.DB, log *entity.AuditLog) error {
	return db.Create(log).Error
}

// Find returns the newest entries first.
func (r *auditLogRepository) Find(db *gorm.DB, filter entity.AuditLogFilter) ([]entity.AuditLog, error) {
	var logs []entity.AuditLog
	query := scopeAuditLogs(db, filter).Order("id DESC")
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if err := query.Find(&logs).Error; err != nil {
		return nil, err
	}
	return logs, nil
}

func (r *auditLogRepository) Count(db *gorm.DB, filter entity.AuditLogFilter) (int64, error) {
	var total int64
	err := scopeAuditLogs(db, filter).Model(&entity.AuditLog{}).Count(&total).Error
	return total, err
}

func (r *auditLogRepository) FindByID(db *gorm.DB, id int64) (*entity.AuditLog, error) {
	var log entity.AuditLog
	if err := db.First(&log, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &log, nil
}

func scopeAuditLogs(db *gorm.DB, filter entity.AuditLogFilter) *gorm.DB {
	if filter.EntityName != "" {
		db = db.Where("entity_name = ?", filter.EntityName)
	}
	if filter.EntityID != "" {
		db = db.Where("entity_id = ?", filter.EntityID)
	}
	if filter.Actor != "" {
		db = db.Where("actor = ?", filter.Actor)
	}
	return db
}
