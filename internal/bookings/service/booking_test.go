package service

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	bookingserrors "maison/internal/bookings/errors"
	"maison/internal/bookings/validator"
	"maison/pkg/config"
	apperrors "maison/pkg/errors"
	"maison/pkg/kafka"
	"maison/pkg/logger"
	"maison/pkg/model"
	mongotx "maison/pkg/db/mongo"
	"maison/pkg/token"
)

const testFacilityID = "507f1f77bcf86cd799439011"

// Mock repositories for testing

type mockBookingRepository struct {
	createFunc            func(ctx context.Context, booking *model.Booking) error
	findByIDFunc          func(ctx context.Context, id string) (*model.Booking, error)
	findAllFunc           func(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, error)
	countFunc             func(ctx context.Context, userID string) (int64, error)
	findByDayFunc         func(ctx context.Context, facilityID string, date string) ([]*model.Booking, error)
	confirmedExistsFunc   func(ctx context.Context, facilityID string, date string, timeSlot string) (bool, error)
	findByAccessTokenFunc func(ctx context.Context, token string) (*model.Booking, error)
	updateStatusFunc      func(ctx context.Context, id string, status string) error
}

func (m *mockBookingRepository) Create(ctx context.Context, booking *model.Booking) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, booking)
	}
	booking.ID = "507f191e810c19729de860ea"
	return nil
}

func (m *mockBookingRepository) FindByID(ctx context.Context, id string) (*model.Booking, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, bookingserrors.ErrNotFound
}

func (m *mockBookingRepository) FindAll(ctx context.Context, userID string, limit int, offset int64) ([]*model.Booking, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, userID, limit, offset)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) Count(ctx context.Context, userID string) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, userID)
	}
	return 0, nil
}

func (m *mockBookingRepository) FindByFacilityAndDate(ctx context.Context, facilityID string, date string) ([]*model.Booking, error) {
	if m.findByDayFunc != nil {
		return m.findByDayFunc(ctx, facilityID, date)
	}
	return []*model.Booking{}, nil
}

func (m *mockBookingRepository) ConfirmedExists(ctx context.Context, facilityID string, date string, timeSlot string) (bool, error) {
	if m.confirmedExistsFunc != nil {
		return m.confirmedExistsFunc(ctx, facilityID, date, timeSlot)
	}
	return false, nil
}

func (m *mockBookingRepository) FindByAccessToken(ctx context.Context, token string) (*model.Booking, error) {
	if m.findByAccessTokenFunc != nil {
		return m.findByAccessTokenFunc(ctx, token)
	}
	return nil, bookingserrors.ErrTokenNotFound
}

func (m *mockBookingRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *mockBookingRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return fn(nil)
}

type mockLockRepository struct {
	createFunc func(ctx context.Context, lock *model.BookingLock) (*model.BookingLock, error)
	deleted    []string
}

func (m *mockLockRepository) Create(ctx context.Context, lock *model.BookingLock) (*model.BookingLock, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, lock)
	}
	return lock, nil
}

func (m *mockLockRepository) Delete(ctx context.Context, lockID string) error {
	m.deleted = append(m.deleted, lockID)
	return nil
}

type mockPublisher struct {
	published []kafka.Message
}

func (m *mockPublisher) Publish(ctx context.Context, msg kafka.Message) error {
	m.published = append(m.published, msg)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:     "error",
			Format:    logger.JSON,
			AddSource: false,
			Service:   "test",
		}),
		TimeSlots:      config.DefaultTimeSlots,
		BookingLockTTL: 10 * time.Second,
		ReadTimeout:    5 * time.Second,
		WriteTimeout:   5 * time.Second,
	}
}

func newTestService(repo *mockBookingRepository, locks *mockLockRepository, events *mockPublisher) BookingService {
	cfg := testConfig()
	return NewBookingService(repo, locks, validator.NewBookingValidator(cfg), events, cfg)
}

func validBooking() *model.Booking {
	return &model.Booking{
		FacilityID:   testFacilityID,
		FacilityName: "Party Room",
		UserID:       "user-1",
		UserName:     "Maria Silva",
		Date:         "2026-09-15",
		TimeSlot:     "14:00",
	}
}

func TestCreateBooking(t *testing.T) {
	repo := &mockBookingRepository{}
	locks := &mockLockRepository{}
	events := &mockPublisher{}
	svc := newTestService(repo, locks, events)

	booking := validBooking()
	if err := svc.Create(context.Background(), booking); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if booking.Status != config.BookingConfirmed {
		t.Errorf("booking.Status = %q, want %q", booking.Status, config.BookingConfirmed)
	}
	if !token.IsWellFormed(booking.AccessToken) {
		t.Errorf("booking.AccessToken = %q, not a valid access code", booking.AccessToken)
	}
	if booking.FacilityID != testFacilityID || booking.Date != "2026-09-15" || booking.TimeSlot != "14:00" {
		t.Errorf("booking fields changed: %+v", booking)
	}

	if len(locks.deleted) != 1 {
		t.Errorf("advisory lock released %d times, want 1", len(locks.deleted))
	}

	if len(events.published) != 1 {
		t.Fatalf("published %d events, want 1", len(events.published))
	}
	if got := events.published[0].GetEventType(); got != kafka.EventBookingCreated {
		t.Errorf("event type = %q, want %q", got, kafka.EventBookingCreated)
	}
}

func TestCreateBookingSlotOccupied(t *testing.T) {
	created := false
	repo := &mockBookingRepository{
		confirmedExistsFunc: func(ctx context.Context, facilityID, date, timeSlot string) (bool, error) {
			return true, nil
		},
		createFunc: func(ctx context.Context, booking *model.Booking) error {
			created = true
			return nil
		},
	}
	events := &mockPublisher{}
	svc := newTestService(repo, &mockLockRepository{}, events)

	err := svc.Create(context.Background(), validBooking())
	if err == nil {
		t.Fatal("Create() on an occupied slot should fail")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeConflict {
		t.Errorf("error code = %v, want conflict", apperrors.AsAppError(err).Code)
	}
	if created {
		t.Error("booking was persisted despite the occupied slot")
	}
	if len(events.published) != 0 {
		t.Errorf("published %d events on failed create, want 0", len(events.published))
	}
}

func TestCreateBookingLockHeld(t *testing.T) {
	locks := &mockLockRepository{
		createFunc: func(ctx context.Context, lock *model.BookingLock) (*model.BookingLock, error) {
			return nil, mongo.WriteException{WriteErrors: []mongo.WriteError{{Code: 11000}}}
		},
	}
	svc := newTestService(&mockBookingRepository{}, locks, &mockPublisher{})

	err := svc.Create(context.Background(), validBooking())
	if err == nil {
		t.Fatal("Create() while lock is held should fail")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeConflict {
		t.Errorf("error code = %v, want conflict", apperrors.AsAppError(err).Code)
	}
}

func TestCreateBookingDuplicateKeyOnInsert(t *testing.T) {
	repo := &mockBookingRepository{
		createFunc: func(ctx context.Context, booking *model.Booking) error {
			return bookingserrors.ErrSlotTaken
		},
	}
	svc := newTestService(repo, &mockLockRepository{}, &mockPublisher{})

	err := svc.Create(context.Background(), validBooking())
	if err == nil {
		t.Fatal("Create() hitting the unique index should fail")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeConflict {
		t.Errorf("error code = %v, want conflict", apperrors.AsAppError(err).Code)
	}
}

func TestCreateBookingValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(b *model.Booking)
	}{
		{
			name:   "missing facility",
			mutate: func(b *model.Booking) { b.FacilityID = "" },
		},
		{
			name:   "malformed facility id",
			mutate: func(b *model.Booking) { b.FacilityID = "not-an-object-id" },
		},
		{
			name:   "missing user",
			mutate: func(b *model.Booking) { b.UserID = "" },
		},
		{
			name:   "bad date format",
			mutate: func(b *model.Booking) { b.Date = "15/09/2026" },
		},
		{
			name:   "slot off the grid",
			mutate: func(b *model.Booking) { b.TimeSlot = "09:30" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created := false
			repo := &mockBookingRepository{
				createFunc: func(ctx context.Context, booking *model.Booking) error {
					created = true
					return nil
				},
			}
			svc := newTestService(repo, &mockLockRepository{}, &mockPublisher{})

			booking := validBooking()
			tt.mutate(booking)

			err := svc.Create(context.Background(), booking)
			if err == nil {
				t.Fatal("Create() should fail validation")
			}
			if apperrors.AsAppError(err).Code != apperrors.CodeValidation {
				t.Errorf("error code = %v, want validation", apperrors.AsAppError(err).Code)
			}
			if created {
				t.Error("invalid booking was persisted")
			}
		})
	}
}

func TestCancelBooking(t *testing.T) {
	stored := validBooking()
	stored.ID = "507f191e810c19729de860ea"
	stored.Status = config.BookingConfirmed

	var updatedStatus string
	repo := &mockBookingRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
			b := *stored
			return &b, nil
		},
		updateStatusFunc: func(ctx context.Context, id string, status string) error {
			updatedStatus = status
			return nil
		},
	}
	events := &mockPublisher{}
	svc := newTestService(repo, &mockLockRepository{}, events)

	booking, err := svc.Cancel(context.Background(), stored.ID)
	if err != nil {
		t.Fatalf("Cancel() error = %v", err)
	}

	if booking.Status != config.BookingCancelled {
		t.Errorf("booking.Status = %q, want %q", booking.Status, config.BookingCancelled)
	}
	if updatedStatus != config.BookingCancelled {
		t.Errorf("persisted status = %q, want %q", updatedStatus, config.BookingCancelled)
	}
	if len(events.published) != 1 || events.published[0].GetEventType() != kafka.EventBookingCancelled {
		t.Errorf("expected one %s event, got %v", kafka.EventBookingCancelled, events.published)
	}
}

func TestCancelNonConfirmedBooking(t *testing.T) {
	for _, status := range []string{config.BookingCancelled, config.BookingCompleted} {
		t.Run(status, func(t *testing.T) {
			stored := validBooking()
			stored.ID = "507f191e810c19729de860ea"
			stored.Status = status

			repo := &mockBookingRepository{
				findByIDFunc: func(ctx context.Context, id string) (*model.Booking, error) {
					b := *stored
					return &b, nil
				},
			}
			svc := newTestService(repo, &mockLockRepository{}, &mockPublisher{})

			_, err := svc.Cancel(context.Background(), stored.ID)
			if err == nil {
				t.Fatal("Cancel() of a non-Confirmed booking should fail")
			}
			if apperrors.AsAppError(err).Code != apperrors.CodeConflict {
				t.Errorf("error code = %v, want conflict", apperrors.AsAppError(err).Code)
			}
		})
	}
}

func TestAvailability(t *testing.T) {
	repo := &mockBookingRepository{
		findByDayFunc: func(ctx context.Context, facilityID, date string) ([]*model.Booking, error) {
			return []*model.Booking{
				{FacilityID: facilityID, Date: date, TimeSlot: "14:00", Status: config.BookingConfirmed},
				{FacilityID: facilityID, Date: date, TimeSlot: "16:00", Status: config.BookingCancelled},
				{FacilityID: facilityID, Date: date, TimeSlot: "18:00", Status: config.BookingCompleted},
			}, nil
		},
	}
	svc := newTestService(repo, &mockLockRepository{}, &mockPublisher{})

	availability, err := svc.Availability(context.Background(), testFacilityID, "2026-09-15")
	if err != nil {
		t.Fatalf("Availability() error = %v", err)
	}

	if len(availability.Slots) != len(config.DefaultTimeSlots) {
		t.Errorf("availability covers %d slots, want %d", len(availability.Slots), len(config.DefaultTimeSlots))
	}
	if !availability.Slots["14:00"] {
		t.Error("slot 14:00 with a Confirmed booking should be occupied")
	}
	for _, slot := range []string{"08:00", "10:00", "16:00", "18:00", "20:00"} {
		if availability.Slots[slot] {
			t.Errorf("slot %s should be free", slot)
		}
	}
}

func TestAvailabilityBadInput(t *testing.T) {
	svc := newTestService(&mockBookingRepository{}, &mockLockRepository{}, &mockPublisher{})

	if _, err := svc.Availability(context.Background(), "", "2026-09-15"); err == nil {
		t.Error("Availability() without facility_id should fail")
	}
	if _, err := svc.Availability(context.Background(), testFacilityID, "next tuesday"); err == nil {
		t.Error("Availability() with a malformed date should fail")
	}
}

func TestVerifyAccess(t *testing.T) {
	today := time.Now().Format("2006-01-02")
	goodToken := token.NewAccessToken()

	stored := validBooking()
	stored.ID = "507f191e810c19729de860ea"
	stored.Status = config.BookingConfirmed
	stored.Date = today
	stored.AccessToken = goodToken

	repo := &mockBookingRepository{
		findByAccessTokenFunc: func(ctx context.Context, tok string) (*model.Booking, error) {
			if tok == goodToken {
				b := *stored
				return &b, nil
			}
			return nil, bookingserrors.ErrTokenNotFound
		},
	}
	svc := newTestService(repo, &mockLockRepository{}, &mockPublisher{})

	t.Run("valid token today", func(t *testing.T) {
		decision, err := svc.VerifyAccess(context.Background(), goodToken)
		if err != nil {
			t.Fatalf("VerifyAccess() error = %v", err)
		}
		if !decision.Valid {
			t.Fatalf("decision = %+v, want valid", decision)
		}
		if decision.Booking == nil || decision.Booking.ID != stored.ID {
			t.Error("valid decision should carry the booking")
		}
	})

	t.Run("unknown token", func(t *testing.T) {
		decision, err := svc.VerifyAccess(context.Background(), token.NewAccessToken())
		if err != nil {
			t.Fatalf("VerifyAccess() error = %v", err)
		}
		if decision.Valid {
			t.Error("unknown token should be denied")
		}
		if decision.Reason != "invalid code" {
			t.Errorf("reason = %q, want %q", decision.Reason, "invalid code")
		}
		if decision.Booking != nil {
			t.Error("denial should not leak a booking")
		}
	})

	t.Run("malformed token", func(t *testing.T) {
		decision, err := svc.VerifyAccess(context.Background(), "BOOK-123-456-789")
		if err != nil {
			t.Fatalf("VerifyAccess() error = %v", err)
		}
		if decision.Valid || decision.Reason != "invalid code" {
			t.Errorf("decision = %+v, want invalid code denial", decision)
		}
	})

	t.Run("mutated token", func(t *testing.T) {
		mutated := []byte(goodToken)
		if mutated[0] == '0' {
			mutated[0] = '1'
		} else {
			mutated[0] = '0'
		}
		decision, err := svc.VerifyAccess(context.Background(), string(mutated))
		if err != nil {
			t.Fatalf("VerifyAccess() error = %v", err)
		}
		if decision.Valid {
			t.Error("mutated token should be denied")
		}
	})

	t.Run("cancelled booking", func(t *testing.T) {
		stored.Status = config.BookingCancelled
		defer func() { stored.Status = config.BookingConfirmed }()

		decision, err := svc.VerifyAccess(context.Background(), goodToken)
		if err != nil {
			t.Fatalf("VerifyAccess() error = %v", err)
		}
		if decision.Valid {
			t.Error("cancelled booking should be denied")
		}
		if decision.Reason != "booking is Cancelled" {
			t.Errorf("reason = %q, want %q", decision.Reason, "booking is Cancelled")
		}
	})

	t.Run("booking for another day", func(t *testing.T) {
		stored.Date = "2020-01-01"
		defer func() { stored.Date = today }()

		decision, err := svc.VerifyAccess(context.Background(), goodToken)
		if err != nil {
			t.Fatalf("VerifyAccess() error = %v", err)
		}
		if decision.Valid {
			t.Error("booking dated in the past should be denied")
		}
		if decision.Reason != "not valid today" {
			t.Errorf("reason = %q, want %q", decision.Reason, "not valid today")
		}
	})
}
