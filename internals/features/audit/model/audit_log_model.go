package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type AuditLogModel struct {
	AuditLogID uuid.UUID `gorm:"column:audit_log_id;type:uuid;default:gen_random_uuid();primaryKey" json:"audit_log_id"`

	AuditLogActorID   *uuid.UUID `gorm:"column:audit_log_actor_id;type:uuid;index" json:"audit_log_actor_id,omitempty"`
	AuditLogActorRole *string    `gorm:"column:audit_log_actor_role;type:varchar(30)" json:"audit_log_actor_role,omitempty"`

	AuditLogActivity string            `gorm:"column:audit_log_activity;type:varchar(80);not null;index" json:"audit_log_activity"`
	AuditLogDetails  datatypes.JSONMap `gorm:"column:audit_log_details;type:jsonb" json:"audit_log_details,omitempty"`

	AuditLogCreatedAt time.Time `gorm:"column:audit_log_created_at;type:timestamptz;not null;autoCreateTime" json:"audit_log_created_at"`
}

func (AuditLogModel) TableName() string { return "audit_logs" }
