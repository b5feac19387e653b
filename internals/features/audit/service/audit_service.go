package service

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	auditModel "sabimarket_backend/internals/features/audit/model"
	helper "sabimarket_backend/internals/helpers"
)

// Record writes one audit entry. Best effort: a failed audit write is logged
// and swallowed so it can never fail the primary operation.
func Record(db *gorm.DB, actorID *uuid.UUID, actorRole string, activity string, details map[string]interface{}) {
	entry := auditModel.AuditLogModel{
		AuditLogActorID:  actorID,
		AuditLogActivity: activity,
	}
	if actorRole != "" {
		entry.AuditLogActorRole = &actorRole
	}
	if details != nil {
		entry.AuditLogDetails = datatypes.JSONMap(details)
	}
	if err := db.Create(&entry).Error; err != nil {
		log.Printf("[ERROR] audit write failed (activity=%s): %v", activity, err)
	}
}

// RecordFromCtx pulls the actor from the request Locals.
func RecordFromCtx(c *fiber.Ctx, db *gorm.DB, activity string, details map[string]interface{}) {
	var actorID *uuid.UUID
	if id, err := helper.GetUserIDFromToken(c); err == nil {
		actorID = &id
	}
	role, _ := helper.GetUserRoleFromToken(c)
	Record(db, actorID, role, activity, details)
}
