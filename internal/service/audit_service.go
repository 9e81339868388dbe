package service

import (
	"context"

	"provider-directory/internal/domain/entity"
	"provider-directory/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AuditService writes history entries inside the caller's transaction, so
// an entry exists only if the change it describes was committed.
type AuditService interface {
	LogCreate(ctx context.Context, tx *gorm.DB, actor string, action string, entityName string, entityID string, newValue interface{}) error
	LogUpdate(ctx context.Context, tx *gorm.DB, actor string, action string, entityName string, entityID string, oldValue, newValue interface{}) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

// LogCreate records newValue as the first version of the entity.
func (s *auditService) LogCreate(ctx context.Context, tx *gorm.DB, actor string, action string, entityName string, entityID string, newValue interface{}) error {
	return s.write(tx, &entity.AuditLog{
		Actor:      actor,
		Action:     action,
		EntityName: entityName,
		EntityID:   entityID,
		Metadata:   datatypes.JSONMap{"new_value": newValue},
	})
}

func (s *auditService) LogUpdate(ctx context.Context, tx *gorm.DB, actor string, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	return s.write(tx, &entity.AuditLog{
		Actor:      actor,
		Action:     action,
		EntityName: entityName,
		EntityID:   entityID,
		Metadata:   datatypes.JSONMap{"old_value": oldValue, "new_value": newValue},
	})
}

func (s *auditService) write(tx *gorm.DB, auditLog *entity.AuditLog) error {
	if err := s.auditRepo.Create(tx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
