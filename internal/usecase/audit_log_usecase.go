package usecase

import (
	"context"
	"errors"

	"provider-directory/internal/converter"
	"provider-directory/internal/delivery/dto"
	"provider-directory/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrAuditLogNotFound = errors.New("audit log not found")

// defaultHistoryLimit caps a history query that did not ask for a limit.
const defaultHistoryLimit = 100

type AuditLogUsecase interface {
	List(ctx context.Context, query dto.AuditLogQuery) (*dto.AuditLogListResponse, error)
	GetByID(ctx context.Context, id int64) (*dto.AuditLogResponse, error)
}

type auditLogUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	auditLogRepo repository.AuditLogRepository
}

func NewAuditLogUsecase(db *gorm.DB, log *logrus.Logger, auditLogRepo repository.AuditLogRepository) AuditLogUsecase {
	return &auditLogUsecase{
		db:           db,
		log:          log,
		auditLogRepo: auditLogRepo,
	}
}

// List returns the newest matching entries and the number of entries that
// match in total, which may exceed the page.
func (u *auditLogUsecase) List(ctx context.Context, query dto.AuditLogQuery) (*dto.AuditLogListResponse, error) {
	if query.Limit == 0 {
		query.Limit = defaultHistoryLimit
	}
	filter := converter.AuditLogQueryToFilter(query)
	db := u.db.WithContext(ctx)

	logs, err := u.auditLogRepo.Find(db, filter)
	if err != nil {
		u.log.Warnf("Failed to find audit logs: %+v", err)
		return nil, err
	}

	total, err := u.auditLogRepo.Count(db, filter)
	if err != nil {
		u.log.Warnf("Failed to count audit logs: %+v", err)
		return nil, err
	}

	return &dto.AuditLogListResponse{
		Logs:  converter.AuditLogsToResponses(logs),
		Total: total,
	}, nil
}

func (u *auditLogUsecase) GetByID(ctx context.Context, id int64) (*dto.AuditLogResponse, error) {
	auditLog, err := u.auditLogRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find audit log %d: %+v", id, err)
		return nil, err
	}
	if auditLog == nil {
		return nil, ErrAuditLogNotFound
	}

	return converter.AuditLogToResponse(auditLog), nil
}
