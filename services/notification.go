package services

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/open-nie/events-backend/logger"
	"github.com/open-nie/events-backend/models"
)

// Notifier writes fire-and-forget notifications. Every method is best-effort:
// failures are logged and swallowed so a notification outage never fails the
// operation that triggered it.
type Notifier struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewNotifier(db *gorm.DB, baseLog *logger.Logger) *Notifier {
	return &Notifier{db: db, log: baseLog.With("component", "notifier")}
}

// Send records a notification for a single user.
func (n *Notifier) Send(ctx context.Context, userID, eventID uint, message string, typ models.NotificationType) {
	notif := models.Notification{
		UserID:  userID,
		EventID: eventID,
		Message: message,
		Type:    typ,
	}
	if err := n.db.WithContext(ctx).Create(&notif).Error; err != nil {
		n.log.Warn("failed to write notification",
			"user_id", userID, "event_id", eventID, "type", typ, "error", err)
	}
}

// BroadcastToStudents records the same notification for every student account.
func (n *Notifier) BroadcastToStudents(ctx context.Context, eventID uint, message string, typ models.NotificationType) {
	err := n.db.WithContext(ctx).Exec(
		`INSERT INTO notifications (user_id, event_id, message, type, read, created_at)
		 SELECT id, ?, ?, ?, ?, ? FROM users WHERE role = ?`,
		eventID, message, typ, false, time.Now().UTC(), models.RoleStudent,
	).Error
	if err != nil {
		n.log.Warn("failed to broadcast notification", "event_id", eventID, "type", typ, "error", err)
	}
}
