package entity

import (
	"time"

	"gorm.io/datatypes"
)

// AuditLog records one create or update of a directory resource. The
// metadata holds the old and new values as the API returned them.
type AuditLog struct {
	ID         int64             `gorm:"primaryKey;autoIncrement"`
	Actor      string            `gorm:"type:varchar(255);index"`
	Action     string            `gorm:"type:varchar(100);not null;index"`
	EntityName string            `gorm:"type:varchar(50);not null;index:idx_audit_entity"`
	EntityID   string            `gorm:"type:varchar(64);not null;index:idx_audit_entity"`
	Metadata   datatypes.JSONMap `gorm:"type:json"`
	CreatedAt  time.Time         `gorm:"autoCreateTime;index"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}

// AuditLogFilter narrows a history query. Zero fields match everything.
type AuditLogFilter struct {
	EntityName string
	EntityID   string
	Actor      string
	Limit      int
}

const (
	AuditActionProviderCreate  = "provider.create"
	AuditActionProviderUpdate  = "provider.update"
	AuditActionBranchCreate    = "branch.create"
	AuditActionBranchUpdate    = "branch.update"
	AuditActionSpecialtyCreate = "specialty.create"
	AuditActionInsuranceCreate = "insurance.create"
	AuditActionProcedureCreate = "procedure.create"
)
