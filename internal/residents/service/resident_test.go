package service

import (
	"context"
	"testing"
	"time"

	residentserrors "maison/internal/residents/errors"
	"maison/internal/residents/validator"
	"maison/pkg/auth"
	"maison/pkg/config"
	apperrors "maison/pkg/errors"
	"maison/pkg/logger"
	"maison/pkg/model"
)

type mockResidentRepository struct {
	createFunc         func(ctx context.Context, resident *model.Resident) error
	findByIDFunc       func(ctx context.Context, id string) (*model.Resident, error)
	findByUsernameFunc func(ctx context.Context, username string) (*model.Resident, error)
	findAllFunc        func(ctx context.Context, limit int, offset int64) ([]*model.Resident, error)
	countFunc          func(ctx context.Context) (int64, error)
}

func (m *mockResidentRepository) Create(ctx context.Context, resident *model.Resident) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, resident)
	}
	resident.ID = "507f191e810c19729de860ea"
	return nil
}

func (m *mockResidentRepository) FindByID(ctx context.Context, id string) (*model.Resident, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, residentserrors.ErrNotFound
}

func (m *mockResidentRepository) FindByUsername(ctx context.Context, username string) (*model.Resident, error) {
	if m.findByUsernameFunc != nil {
		return m.findByUsernameFunc(ctx, username)
	}
	return nil, residentserrors.ErrNotFound
}

func (m *mockResidentRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Resident, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, limit, offset)
	}
	return []*model.Resident{}, nil
}

func (m *mockResidentRepository) Count(ctx context.Context) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx)
	}
	return 0, nil
}

func testConfig() *config.Config {
	return &config.Config{
		Log: logger.New(logger.Config{
			Level:   "error",
			Format:  logger.JSON,
			Service: "test",
		}),
	}
}

func newTestService(repo *mockResidentRepository) ResidentService {
	cfg := testConfig()
	signer := auth.NewSigner("test-secret", time.Hour)
	return NewResidentService(repo, validator.NewResidentValidator(), signer, cfg)
}

func newResident() *model.Resident {
	return &model.Resident{
		Name:      "Maria Silva",
		Role:      "RESIDENT",
		Apartment: "301",
		Username:  "maria.silva",
		Password:  "secret123",
	}
}

func TestCreateResident(t *testing.T) {
	var persisted *model.Resident
	repo := &mockResidentRepository{
		createFunc: func(ctx context.Context, resident *model.Resident) error {
			persisted = resident
			resident.ID = "507f191e810c19729de860ea"
			return nil
		},
	}
	svc := newTestService(repo)

	resident := newResident()
	resident.Phone = "(212) 555-0147"

	if err := svc.Create(context.Background(), resident); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if persisted.Password != "" {
		t.Error("plaintext password should be cleared before persisting")
	}
	if persisted.PasswordHash == "" || persisted.PasswordHash == "secret123" {
		t.Errorf("password hash = %q, want a bcrypt hash", persisted.PasswordHash)
	}
	if !auth.CheckPassword("secret123", persisted.PasswordHash) {
		t.Error("stored hash should verify against the original password")
	}
	if persisted.Phone != "+12125550147" {
		t.Errorf("resident.Phone = %q, want E.164 form", persisted.Phone)
	}
	if persisted.Status != config.ResidentActive {
		t.Errorf("resident.Status = %q, want %q", persisted.Status, config.ResidentActive)
	}
}

func TestCreateResidentValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *model.Resident)
	}{
		{
			name:   "missing password",
			mutate: func(r *model.Resident) { r.Password = "" },
		},
		{
			name:   "short password",
			mutate: func(r *model.Resident) { r.Password = "abc" },
		},
		{
			name:   "unknown role",
			mutate: func(r *model.Resident) { r.Role = "JANITOR" },
		},
		{
			name:   "invalid phone",
			mutate: func(r *model.Resident) { r.Phone = "12345" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created := false
			repo := &mockResidentRepository{
				createFunc: func(ctx context.Context, resident *model.Resident) error {
					created = true
					return nil
				},
			}
			svc := newTestService(repo)

			resident := newResident()
			tt.mutate(resident)

			err := svc.Create(context.Background(), resident)
			if err == nil {
				t.Fatal("Create() should fail validation")
			}
			if apperrors.AsAppError(err).Code != apperrors.CodeValidation {
				t.Errorf("error code = %v, want validation", apperrors.AsAppError(err).Code)
			}
			if created {
				t.Error("invalid resident was persisted")
			}
		})
	}
}

func TestCreateResidentUsernameTaken(t *testing.T) {
	repo := &mockResidentRepository{
		createFunc: func(ctx context.Context, resident *model.Resident) error {
			return residentserrors.ErrUsernameTaken
		},
	}
	svc := newTestService(repo)

	err := svc.Create(context.Background(), newResident())
	if err == nil {
		t.Fatal("Create() with a taken username should fail")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeConflict {
		t.Errorf("error code = %v, want conflict", apperrors.AsAppError(err).Code)
	}
}

func TestLogin(t *testing.T) {
	hash, err := auth.HashPassword("secret123")
	if err != nil {
		t.Fatalf("HashPassword() error = %v", err)
	}

	stored := newResident()
	stored.ID = "507f191e810c19729de860ea"
	stored.Password = ""
	stored.PasswordHash = hash

	repo := &mockResidentRepository{
		findByUsernameFunc: func(ctx context.Context, username string) (*model.Resident, error) {
			if username == stored.Username {
				return stored, nil
			}
			return nil, residentserrors.ErrNotFound
		},
	}
	svc := newTestService(repo)

	t.Run("valid credentials", func(t *testing.T) {
		session, err := svc.Login(context.Background(), &model.Credentials{
			Username: "maria.silva",
			Password: "secret123",
		})
		if err != nil {
			t.Fatalf("Login() error = %v", err)
		}
		if session.Token == "" {
			t.Error("session should carry a token")
		}
		if !session.ExpiresAt.After(time.Now()) {
			t.Errorf("session.ExpiresAt = %v, want a future time", session.ExpiresAt)
		}
		if session.Resident == nil || session.Resident.ID != stored.ID {
			t.Error("session should carry the resident")
		}
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &model.Credentials{
			Username: "maria.silva",
			Password: "wrong-pass",
		})
		if err == nil {
			t.Fatal("Login() with a wrong password should fail")
		}
		if apperrors.AsAppError(err).Code != apperrors.CodeUnauthorized {
			t.Errorf("error code = %v, want unauthorized", apperrors.AsAppError(err).Code)
		}
	})

	t.Run("unknown username", func(t *testing.T) {
		_, err := svc.Login(context.Background(), &model.Credentials{
			Username: "nobody.home",
			Password: "secret123",
		})
		if err == nil {
			t.Fatal("Login() with an unknown username should fail")
		}
		if apperrors.AsAppError(err).Code != apperrors.CodeUnauthorized {
			t.Errorf("error code = %v, want unauthorized", apperrors.AsAppError(err).Code)
		}
	})
}
