package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "maison/internal/bookings/errors"
	"maison/internal/bookings/repository"
	"maison/internal/bookings/validator"
	"maison/pkg/config"
	apperrors "maison/pkg/errors"
	"maison/pkg/kafka"
	"maison/pkg/model"
	"maison/pkg/sanitizer"
	"maison/pkg/token"
)

type BookingService interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id string) (*model.Booking, error)
	GetAll(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, int64, error)
	Availability(ctx context.Context, facilityID string, date string) (*model.SlotAvailability, error)
	Cancel(ctx context.Context, id string) (*model.Booking, error)
	VerifyAccess(ctx context.Context, accessToken string) (*model.AccessDecision, error)
}

// EventPublisher is the slice of the Kafka producer the service needs.
// A nil publisher disables event emission.
type EventPublisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
}

type bookingEvent struct {
	BookingID  string `json:"booking_id"`
	FacilityID string `json:"facility_id"`
	UserID     string `json:"user_id"`
	Date       string `json:"date"`
	TimeSlot   string `json:"time_slot"`
	Status     string `json:"status"`
}

type bookingService struct {
	repo      repository.BookingRepository
	lockRepo  repository.BookingLockRepository
	validator *validator.BookingValidator
	events    EventPublisher
	cfg       *config.Config
}

func NewBookingService(
	repo repository.BookingRepository,
	lockRepo repository.BookingLockRepository,
	validator *validator.BookingValidator,
	events EventPublisher,
	cfg *config.Config,
) BookingService {
	return &bookingService{
		repo:      repo,
		lockRepo:  lockRepo,
		validator: validator,
		events:    events,
		cfg:       cfg,
	}
}

func (s *bookingService) Create(ctx context.Context, booking *model.Booking) error {
	s.applyDefaults(booking)
	s.sanitize(booking)
	if err := s.validate(booking); err != nil {
		return err
	}

	// Advisory lock closes the read-then-insert race between instances
	lockID, err := s.acquireSlotLock(ctx, booking.FacilityID, booking.Date, booking.TimeSlot)
	if err != nil {
		return err
	}
	defer func() {
		if releaseErr := s.releaseSlotLock(ctx, lockID); releaseErr != nil {
			s.cfg.Log.Warn("Failed to release booking lock", "lock_id", lockID, "error", releaseErr)
		}
	}()

	err = s.repo.ExecuteTransaction(ctx, func(sessCtx mongo.SessionContext) error {
		occupied, err := s.repo.ConfirmedExists(sessCtx, booking.FacilityID, booking.Date, booking.TimeSlot)
		if err != nil {
			return apperrors.Internal("Failed to check slot occupancy", err)
		}
		if occupied {
			return apperrors.Conflict(fmt.Sprintf(
				"Slot %s on %s is already booked for this facility",
				booking.TimeSlot, booking.Date,
			))
		}

		if err := s.repo.Create(sessCtx, booking); err != nil {
			if errors.Is(err, bookingserrors.ErrSlotTaken) {
				return apperrors.Conflict(fmt.Sprintf(
					"Slot %s on %s is already booked for this facility",
					booking.TimeSlot, booking.Date,
				))
			}
			return apperrors.Internal("Failed to create booking", err)
		}

		return nil
	})
	if err != nil {
		s.cfg.Log.Error("Failed to create booking", "error", err)
		return err
	}

	s.publishEvent(ctx, kafka.EventBookingCreated, booking)

	s.cfg.Log.Info("Booking created successfully",
		"id", booking.ID,
		"facility_id", booking.FacilityID,
		"user_id", booking.UserID,
		"date", booking.Date,
		"time_slot", booking.TimeSlot,
	)
	return nil
}

func (s *bookingService) GetByID(ctx context.Context, id string) (*model.Booking, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Booking ID cannot be empty")
	}

	booking, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		if errors.Is(err, bookingserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid booking ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve booking", err)
	}

	return booking, nil
}

func (s *bookingService) GetAll(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, int64, error) {
	count, err := s.repo.Count(ctx, userID)
	if err != nil {
		s.cfg.Log.Error("Failed to count bookings", "user_id", userID, "error", err)
		return nil, 0, apperrors.Internal("Failed to count bookings", err)
	}

	bookings, err := s.repo.FindAll(ctx, userID, limit, offset)
	if err != nil {
		s.cfg.Log.Error("Failed to list bookings", "user_id", userID, "error", err)
		return nil, 0, apperrors.Internal("Failed to retrieve bookings", err)
	}

	return bookings, count, nil
}

// Availability maps every configured slot to its occupancy for one
// facility and date. Only Confirmed bookings occupy a slot.
func (s *bookingService) Availability(ctx context.Context, facilityID string, date string) (*model.SlotAvailability, error) {
	if facilityID == "" {
		return nil, apperrors.InvalidInput("facility_id is required")
	}
	if _, err := time.Parse("2006-01-02", date); err != nil {
		return nil, apperrors.InvalidInput("date must be in YYYY-MM-DD format")
	}

	bookings, err := s.repo.FindByFacilityAndDate(ctx, facilityID, date)
	if err != nil {
		s.cfg.Log.Error("Failed to load day bookings", "facility_id", facilityID, "date", date, "error", err)
		return nil, apperrors.Internal("Failed to check availability", err)
	}

	slots := make(map[string]bool, len(s.cfg.TimeSlots))
	for _, slot := range s.cfg.TimeSlots {
		slots[slot] = false
	}
	for _, b := range bookings {
		if b.Status == config.BookingConfirmed {
			slots[b.TimeSlot] = true
		}
	}

	return &model.SlotAvailability{
		FacilityID: facilityID,
		Date:       date,
		Slots:      slots,
	}, nil
}

// Cancel transitions a Confirmed booking to Cancelled, freeing its slot.
// Bookings in any other status are rejected with a conflict.
func (s *bookingService) Cancel(ctx context.Context, id string) (*model.Booking, error) {
	booking, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if booking.Status != config.BookingConfirmed {
		return nil, apperrors.Conflict(fmt.Sprintf("Cannot cancel a booking with status %q", booking.Status))
	}

	if err := s.repo.UpdateStatus(ctx, id, config.BookingCancelled); err != nil {
		if errors.Is(err, bookingserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Booking", id)
		}
		s.cfg.Log.Error("Failed to cancel booking", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to cancel booking", err)
	}

	booking.Status = config.BookingCancelled
	s.publishEvent(ctx, kafka.EventBookingCancelled, booking)

	s.cfg.Log.Info("Booking cancelled", "id", id, "facility_id", booking.FacilityID, "date", booking.Date, "time_slot", booking.TimeSlot)
	return booking, nil
}

// VerifyAccess decides whether a presented access token grants entry.
// Denials never disclose whether a token exists for another day or user.
func (s *bookingService) VerifyAccess(ctx context.Context, accessToken string) (*model.AccessDecision, error) {
	if !token.IsWellFormed(accessToken) {
		return &model.AccessDecision{Valid: false, Reason: "invalid code"}, nil
	}

	booking, err := s.repo.FindByAccessToken(ctx, accessToken)
	if err != nil {
		if errors.Is(err, bookingserrors.ErrTokenNotFound) {
			return &model.AccessDecision{Valid: false, Reason: "invalid code"}, nil
		}
		s.cfg.Log.Error("Failed to look up access token", "error", err)
		return nil, apperrors.Internal("Failed to verify access", err)
	}

	if booking.Status != config.BookingConfirmed {
		return &model.AccessDecision{
			Valid:  false,
			Reason: fmt.Sprintf("booking is %s", booking.Status),
		}, nil
	}

	today := time.Now().Format("2006-01-02")
	if booking.Date != today {
		return &model.AccessDecision{Valid: false, Reason: "not valid today"}, nil
	}

	return &model.AccessDecision{
		Valid:   true,
		Reason:  "ok",
		Booking: booking,
	}, nil
}

// --- Helpers ---

func (s *bookingService) applyDefaults(b *model.Booking) {
	b.Status = config.BookingConfirmed
	b.AccessToken = token.NewAccessToken()
}

func (s *bookingService) sanitize(b *model.Booking) {
	b.FacilityName = sanitizer.SanitizeName(b.FacilityName)
	b.UserName = sanitizer.SanitizeName(b.UserName)
}

func (s *bookingService) validate(booking *model.Booking) error {
	if err := s.validator.Validate(booking); err != nil {
		s.cfg.Log.Warn("Booking validation failed", "error", err)
		return apperrors.Validation("Booking validation failed", map[string]any{"error": err.Error()})
	}
	return nil
}

func (s *bookingService) publishEvent(ctx context.Context, eventType string, b *model.Booking) {
	if s.events == nil {
		return
	}

	msg := kafka.NewMessage().
		WithKey(b.ID).
		WithValue(bookingEvent{
			BookingID:  b.ID,
			FacilityID: b.FacilityID,
			UserID:     b.UserID,
			Date:       b.Date,
			TimeSlot:   b.TimeSlot,
			Status:     b.Status,
		}).
		WithEventType(eventType).
		WithSource("bookings").
		Build()

	if err := s.events.Publish(ctx, msg); err != nil {
		// Events are advisory; the booking write already committed.
		s.cfg.Log.Warn("Failed to publish booking event", "event_type", eventType, "booking_id", b.ID, "error", err)
	}
}

// acquireSlotLock creates an advisory lock for the slot coordinates.
// Returns the lock ID if successful, or a conflict error if another
// request holds the lock.
func (s *bookingService) acquireSlotLock(ctx context.Context, facilityID, date, timeSlot string) (string, error) {
	lockID := fmt.Sprintf("booking_lock_%s_%s_%s", facilityID, date, timeSlot)

	lock := &model.BookingLock{
		ID:        lockID,
		ExpiresAt: time.Now().Add(s.cfg.BookingLockTTL),
	}

	_, err := s.lockRepo.Create(ctx, lock)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", apperrors.Conflict("This time slot is currently being booked by another request. Please try again.")
		}
		return "", apperrors.Internal("Failed to acquire booking lock", err)
	}

	return lockID, nil
}

func (s *bookingService) releaseSlotLock(ctx context.Context, lockID string) error {
	return s.lockRepo.Delete(ctx, lockID)
}
