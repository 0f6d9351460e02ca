package services

import (
	"context"

	"gorm.io/gorm"

	"github.com/open-nie/events-backend/apierr"
	"github.com/open-nie/events-backend/logger"
	"github.com/open-nie/events-backend/models"
)

// CheckinService resolves a scanned token to its registration and performs
// the one-way PENDING -> ATTENDED transition. Two entry points share the same
// transition: Scan is organiser-scoped (the staffed scan station), SelfCheckIn
// trusts bare possession of the token (the kiosk flow).
type CheckinService struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewCheckinService(db *gorm.DB, baseLog *logger.Logger) *CheckinService {
	return &CheckinService{db: db, log: baseLog.With("service", "checkin")}
}

// Participant is the checked-in registration enriched with the registrant's
// display fields and the event title, returned to the scanning client.
type Participant struct {
	RegistrationID uint   `json:"registration_id"`
	EventID        uint   `json:"event_id"`
	UserID         uint   `json:"user_id"`
	QRCode         string `json:"qr_code"`
	CheckedIn      bool   `json:"checked_in"`
	USN            string `json:"usn"`
	Semester       string `json:"semester"`
	Name           string `json:"name"`
	Email          string `json:"email"`
	EventTitle     string `json:"event_title"`
}

type scanTarget struct {
	ID        uint
	EventID   uint
	CheckedIn bool
	CreatedBy uint
}

// Scan checks in the registration behind token on behalf of an organiser.
// The organiser must own the event; eventIDHint (0 means none) guards against
// a valid token scanned at the wrong event's station.
func (s *CheckinService) Scan(ctx context.Context, organiserID uint, token string, eventIDHint uint) (*Participant, error) {
	target, err := s.resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	if target.CreatedBy != organiserID {
		return nil, apierr.Forbidden("Not authorized for this event")
	}
	if eventIDHint != 0 && eventIDHint != target.EventID {
		return nil, apierr.EventMismatch("QR code does not match this event")
	}
	return s.transition(ctx, target)
}

// SelfCheckIn checks in the registration behind token with no ownership
// check: the token itself is the credential.
func (s *CheckinService) SelfCheckIn(ctx context.Context, token string) (*Participant, error) {
	target, err := s.resolve(ctx, token)
	if err != nil {
		return nil, err
	}
	return s.transition(ctx, target)
}

func (s *CheckinService) resolve(ctx context.Context, token string) (*scanTarget, error) {
	if token == "" {
		return nil, apierr.Validation("Missing QR code data")
	}
	var target scanTarget
	res := s.db.WithContext(ctx).
		Table("registrations AS r").
		Select("r.id, r.event_id, r.checked_in, e.created_by").
		Joins("JOIN events e ON r.event_id = e.id").
		Where("r.qr_code = ?", token).
		Scan(&target)
	if res.Error != nil {
		return nil, apierr.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apierr.NotFound("Invalid QR code - registration not found")
	}
	return &target, nil
}

// transition flips checked_in exactly once. The conditional update is the
// authoritative guard: a concurrent scan that loses the race sees zero rows
// affected and reports AlreadyCheckedIn, never a silent success.
func (s *CheckinService) transition(ctx context.Context, target *scanTarget) (*Participant, error) {
	if target.CheckedIn {
		return nil, apierr.AlreadyCheckedIn("Already checked in")
	}
	res := s.db.WithContext(ctx).Model(&models.Registration{}).
		Where("id = ? AND checked_in = ?", target.ID, false).
		Update("checked_in", true)
	if res.Error != nil {
		return nil, apierr.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apierr.AlreadyCheckedIn("Already checked in")
	}

	s.log.Info("attendance marked", "registration_id", target.ID, "event_id", target.EventID)

	return s.participant(ctx, target.ID)
}

func (s *CheckinService) participant(ctx context.Context, registrationID uint) (*Participant, error) {
	var p Participant
	res := s.db.WithContext(ctx).
		Table("registrations AS r").
		Select(`r.id AS registration_id, r.event_id, r.user_id, r.qr_code, r.checked_in,
			r.usn, r.semester, u.name, u.email, e.title AS event_title`).
		Joins("JOIN users u ON r.user_id = u.id").
		Joins("JOIN events e ON r.event_id = e.id").
		Where("r.id = ?", registrationID).
		Scan(&p)
	if res.Error != nil {
		return nil, apierr.Internal(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, apierr.NotFound("Registration not found")
	}
	return &p, nil
}
