package converter

import (
	"provider-directory/internal/delivery/dto"
	"provider-directory/internal/domain/entity"
)

func AuditLogToResponse(log *entity.AuditLog) *dto.AuditLogResponse {
	if log == nil {
		return nil
	}

	res := &dto.AuditLogResponse{
		ID:        log.ID,
		Actor:     log.Actor,
		Action:    log.Action,
		Entity:    log.EntityName,
		EntityID:  log.EntityID,
		CreatedAt: log.CreatedAt,
	}
	if log.Metadata != nil {
		res.OldValue = log.Metadata["old_value"]
		res.NewValue = log.Metadata["new_value"]
	}
	return res
}

func AuditLogsToResponses(logs []entity.AuditLog) []dto.AuditLogResponse {
	responses := make([]dto.AuditLogResponse, 0, len(logs))
	for i := range logs {
		responses = append(responses, *AuditLogToResponse(&logs[i]))
	}
	return responses
}

func AuditLogQueryToFilter(q dto.AuditLogQuery) entity.AuditLogFilter {
	return entity.AuditLogFilter{
		EntityName: q.Entity,
		EntityID:   q.EntityID,
		Actor:      q.Actor,
		Limit:      q.Limit,
	}
}
