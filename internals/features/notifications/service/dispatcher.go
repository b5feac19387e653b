package service

import (
	"log"

	"github.com/google/uuid"
	"gorm.io/gorm"

	notifModel "sabimarket_backend/internals/features/notifications/model"
)

// Dispatch writes a notification in the background. Fire and forget: callers do
// not wait and delivery failure never affects the calling operation.
func Dispatch(db *gorm.DB, userID uuid.UUID, title, body string) {
	if userID == uuid.Nil {
		return
	}
	go func() {
		n := notifModel.NotificationModel{
			NotificationUserID: userID,
			NotificationTitle:  title,
			NotificationBody:   body,
		}
		if err := db.Create(&n).Error; err != nil {
			log.Printf("[ERROR] notification dispatch failed (user=%s): %v", userID, err)
		}
	}()
}
