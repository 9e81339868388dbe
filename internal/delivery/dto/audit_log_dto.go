package dto

import "time"

type AuditLogResponse struct {
	ID        int64       `json:"id"`
	Actor     string      `json:"actor,omitempty"`
	Action    string      `json:"action"`
	Entity    string      `json:"entity"`
	EntityID  string      `json:"entityId"`
	OldValue  interface{} `json:"oldValue,omitempty"`
	NewValue  interface{} `json:"newValue,omitempty"`
	CreatedAt time.Time   `json:"createdAt"`
}

// AuditLogQuery is read from the query string of GET /audit-logs.
type AuditLogQuery struct {
	Entity   string `json:"entity" validate:"omitempty,oneof=provider branch specialty insurance procedure"`
	EntityID string `json:"entityId"`
	Actor    string `json:"actor"`
	Limit    int    `json:"limit" validate:"gte=0,lte=500"`
}

type AuditLogListResponse struct {
	Logs  []AuditLogResponse `json:"logs"`
	Total int64              `json:"total"`
}
