package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/open-nie/events-backend/apierr"
	"github.com/open-nie/events-backend/logger"
	"github.com/open-nie/events-backend/models"
)

// RegistrationService owns the registration lifecycle: students register for
// active events, may cancel their own registrations, and can list what they
// are registered for. The registered count of an event is always derived by
// counting live registrations, never cached.
type RegistrationService struct {
	db       *gorm.DB
	log      *logger.Logger
	notifier *Notifier
}

func NewRegistrationService(db *gorm.DB, baseLog *logger.Logger, notifier *Notifier) *RegistrationService {
	return &RegistrationService{
		db:       db,
		log:      baseLog.With("service", "registration"),
		notifier: notifier,
	}
}

// RegistrationResult is what a successful registration returns to the client.
type RegistrationResult struct {
	RegistrationID uint   `json:"registration_id"`
	QRCode         string `json:"qr_code"`
	USN            string `json:"usn"`
	Semester       string `json:"semester"`
}

// MyRegistration is a registration joined with its event's descriptive fields.
type MyRegistration struct {
	ID               uint               `json:"id"`
	EventID          uint               `json:"event_id"`
	QRCode           string             `json:"qr_code"`
	CheckedIn        bool               `json:"checked_in"`
	USN              string             `json:"usn"`
	Semester         string             `json:"semester"`
	RegistrationDate time.Time          `json:"registration_date"`
	Title            string             `json:"title"`
	Description      string             `json:"description"`
	Department       string             `json:"department"`
	Date             string             `json:"date"`
	Time             string             `json:"time"`
	Location         string             `json:"location"`
	EventStatus      models.EventStatus `json:"event_status"`
}

// Register creates a registration for userID on eventID.
//
// Preconditions are checked in order: the event must exist and be active, the
// user must not already hold a registration, the event must have a free spot,
// and the user must be a student. The duplicate and capacity checks are then
// re-enforced atomically at insert time — the unique (event_id, user_id)
// index and a count-guarded insert — so concurrent requests cannot slip a
// duplicate or an over-capacity registration past the preliminary reads.
func (s *RegistrationService) Register(ctx context.Context, userID, eventID uint) (*RegistrationResult, error) {
	var event models.Event
	err := s.db.WithContext(ctx).
		Where("id = ? AND status = ?", eventID, models.EventActive).
		First(&event).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("Event not found or not active")
		}
		return nil, apierr.Internal(err)
	}

	var existing int64
	err = s.db.WithContext(ctx).Model(&models.Registration{}).
		Where("event_id = ? AND user_id = ?", eventID, userID).
		Count(&existing).Error
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if existing > 0 {
		return nil, apierr.Conflict("Already registered for this event")
	}

	if event.MaxParticipants != nil {
		var count int64
		err = s.db.WithContext(ctx).Model(&models.Registration{}).
			Where("event_id = ?", eventID).
			Count(&count).Error
		if err != nil {
			return nil, apierr.Internal(err)
		}
		if count >= int64(*event.MaxParticipants) {
			return nil, apierr.Conflict("Event is full")
		}
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.NotFound("User not found")
		}
		return nil, apierr.Internal(err)
	}
	if user.Role != models.RoleStudent {
		return nil, apierr.Forbidden("Only students can register for events")
	}

	token := uuid.NewString()
	now := time.Now().UTC()

	var regID uint
	if event.MaxParticipants == nil {
		reg := models.Registration{
			EventID:          eventID,
			UserID:           userID,
			QRCode:           token,
			USN:              user.USN,
			Semester:         user.Semester,
			RegistrationDate: now,
		}
		if err := s.db.WithContext(ctx).Create(&reg).Error; err != nil {
			if isUniqueViolation(err) {
				return nil, apierr.Conflict("Already registered for this event")
			}
			return nil, apierr.Internal(err)
		}
		regID = reg.ID
	} else {
		// Single guarded statement: the insert only happens while the live
		// count is below capacity, and the unique index still rejects a
		// concurrent duplicate for the same (event, user) pair.
		res := s.db.WithContext(ctx).Raw(
			`INSERT INTO registrations (event_id, user_id, qr_code, checked_in, usn, semester, registration_date)
			 SELECT ?, ?, ?, ?, ?, ?, ?
			 WHERE (SELECT COUNT(*) FROM registrations WHERE event_id = ?) < ?
			 RETURNING id`,
			eventID, userID, token, false, user.USN, user.Semester, now,
			eventID, *event.MaxParticipants,
		).Scan(&regID)
		if res.Error != nil {
			if isUniqueViolation(res.Error) {
				return nil, apierr.Conflict("Already registered for this event")
			}
			return nil, apierr.Internal(res.Error)
		}
		if res.RowsAffected == 0 {
			return nil, apierr.Conflict("Event is full")
		}
	}

	s.log.Info("registration created",
		"registration_id", regID, "event_id", eventID, "user_id", userID)

	// Best-effort notifications; the registration stands even if these fail.
	s.notifier.Send(ctx, userID, eventID,
		fmt.Sprintf("You have successfully registered for %s", event.Title),
		models.NotifRegistration)
	name := user.Name
	if name == "" {
		name = "A student"
	}
	s.notifier.Send(ctx, event.CreatedBy, eventID,
		fmt.Sprintf("%s has registered for %s", name, event.Title),
		models.NotifRegistrationStudent)

	return &RegistrationResult{
		RegistrationID: regID,
		QRCode:         token,
		USN:            user.USN,
		Semester:       user.Semester,
	}, nil
}

// Cancel deletes the registration if it belongs to userID. A registration
// that does not exist and one owned by someone else both come back as
// NotFound, so a caller cannot probe other users' registration ids.
func (s *RegistrationService) Cancel(ctx context.Context, userID, registrationID uint) error {
	res := s.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", registrationID, userID).
		Delete(&models.Registration{})
	if res.Error != nil {
		return apierr.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return apierr.NotFound("Registration not found")
	}
	return nil
}

// ListMine returns the user's registrations with event details, soonest first.
func (s *RegistrationService) ListMine(ctx context.Context, userID uint) ([]MyRegistration, error) {
	var out []MyRegistration
	err := s.db.WithContext(ctx).
		Table("registrations AS r").
		Select(`r.id, r.event_id, r.qr_code, r.checked_in, r.usn, r.semester, r.registration_date,
			e.title, e.description, e.department, e.date, e.time, e.location, e.status AS event_status`).
		Joins("JOIN events e ON r.event_id = e.id").
		Where("r.user_id = ?", userID).
		Order("e.date, e.time").
		Scan(&out).Error
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if out == nil {
		out = []MyRegistration{}
	}
	return out, nil
}

// RegisteredCount derives the live registration count for an event.
func (s *RegistrationService) RegisteredCount(ctx context.Context, eventID uint) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&models.Registration{}).
		Where("event_id = ?", eventID).
		Count(&count).Error
	if err != nil {
		return 0, apierr.Internal(err)
	}
	return count, nil
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique") || strings.Contains(msg, "duplicate key")
}
