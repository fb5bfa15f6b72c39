package service

import (
	"context"
	"errors"
	"sync"

	residentserrors "maison/internal/residents/errors"
	"maison/internal/residents/repository"
	"maison/internal/residents/validator"
	"maison/pkg/auth"
	"maison/pkg/config"
	apperrors "maison/pkg/errors"
	"maison/pkg/model"
	"maison/pkg/sanitizer"
)

type ResidentService interface {
	Create(ctx context.Context, resident *model.Resident) error
	GetByID(ctx context.Context, id string) (*model.Resident, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Resident, int64, error)
	Login(ctx context.Context, credentials *model.Credentials) (*model.Session, error)
}

type residentService struct {
	repo      repository.ResidentRepository
	validator *validator.ResidentValidator
	signer    *auth.Signer
	cfg       *config.Config
}

func NewResidentService(
	repo repository.ResidentRepository,
	validator *validator.ResidentValidator,
	signer *auth.Signer,
	cfg *config.Config,
) ResidentService {
	return &residentService{
		repo:      repo,
		validator: validator,
		signer:    signer,
		cfg:       cfg,
	}
}

func (s *residentService) Create(ctx context.Context, resident *model.Resident) error {
	resident.Name = sanitizer.SanitizeName(resident.Name)
	resident.Username = sanitizer.SanitizeUsername(resident.Username)
	resident.Apartment = sanitizer.SanitizeApartment(resident.Apartment)
	resident.Email = sanitizer.SanitizeEmail(resident.Email)
	if resident.Phone != "" {
		phone := sanitizer.SanitizePhone(resident.Phone)
		if phone == "" {
			return apperrors.Validation("Resident validation failed", map[string]any{
				"error": "Phone must be a valid phone number",
			})
		}
		resident.Phone = phone
	}
	if resident.Status == "" {
		resident.Status = config.ResidentActive
	}

	if resident.Password == "" {
		return apperrors.Validation("Resident validation failed", map[string]any{
			"error": "Password is required",
		})
	}

	if err := s.validator.Validate(resident); err != nil {
		s.cfg.Log.Warn("Resident validation failed", "error", err)
		return apperrors.Validation("Resident validation failed", map[string]any{"error": err.Error()})
	}

	hash, err := auth.HashPassword(resident.Password)
	if err != nil {
		s.cfg.Log.Error("Failed to hash password", "error", err)
		return apperrors.Internal("Failed to create resident", err)
	}
	resident.PasswordHash = hash
	resident.Password = ""

	if err := s.repo.Create(ctx, resident); err != nil {
		if errors.Is(err, residentserrors.ErrUsernameTaken) {
			return apperrors.Conflict("Username is already taken")
		}
		s.cfg.Log.Error("Failed to create resident", "username", resident.Username, "error", err)
		return apperrors.Internal("Failed to create resident", err)
	}

	s.cfg.Log.Info("Resident created successfully",
		"id", resident.ID,
		"username", resident.Username,
		"role", resident.Role,
	)
	return nil
}

func (s *residentService) GetByID(ctx context.Context, id string) (*model.Resident, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Resident ID cannot be empty")
	}

	resident, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, residentserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Resident", id)
		}
		if errors.Is(err, residentserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid resident ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve resident", err)
	}

	return resident, nil
}

func (s *residentService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Resident, int64, error) {
	var count int64
	var residents []*model.Resident
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count residents", "error", errCount)
			errCount = apperrors.Internal("Failed to count residents", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		residents, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list residents", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve residents", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return residents, count, nil
}

// Login verifies credentials and issues a signed session token. Unknown
// usernames and wrong passwords produce the same response, so the login
// endpoint does not reveal which accounts exist.
func (s *residentService) Login(ctx context.Context, credentials *model.Credentials) (*model.Session, error) {
	credentials.Username = sanitizer.SanitizeUsername(credentials.Username)

	if err := s.validator.ValidateCredentials(credentials); err != nil {
		s.cfg.Log.Warn("Credentials validation failed", "error", err)
		return nil, apperrors.Validation("Credentials validation failed", map[string]any{"error": err.Error()})
	}

	resident, err := s.repo.FindByUsername(ctx, credentials.Username)
	if err != nil {
		if errors.Is(err, residentserrors.ErrNotFound) {
			return nil, apperrors.Unauthorized("Invalid username or password")
		}
		s.cfg.Log.Error("Failed to look up resident", "username", credentials.Username, "error", err)
		return nil, apperrors.Internal("Failed to authenticate", err)
	}

	if !auth.CheckPassword(credentials.Password, resident.PasswordHash) {
		return nil, apperrors.Unauthorized("Invalid username or password")
	}

	token, expiresAt, err := s.signer.CreateSessionToken(resident)
	if err != nil {
		s.cfg.Log.Error("Failed to sign session token", "username", credentials.Username, "error", err)
		return nil, apperrors.Internal("Failed to authenticate", err)
	}

	s.cfg.Log.Info("Resident logged in",
		"id", resident.ID,
		"username", resident.Username,
	)

	return &model.Session{
		Token:     token,
		ExpiresAt: expiresAt,
		Resident:  resident,
	}, nil
}
