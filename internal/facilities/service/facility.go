package service

import (
	"context"
	"errors"
	"sync"

	facilitieserrors "maison/internal/facilities/errors"
	"maison/internal/facilities/repository"
	"maison/internal/facilities/validator"
	"maison/pkg/config"
	apperrors "maison/pkg/errors"
	"maison/pkg/model"
	"maison/pkg/sanitizer"
)

type FacilityService interface {
	Create(ctx context.Context, facility *model.Facility) error
	GetByID(ctx context.Context, id string) (*model.Facility, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Facility, int64, error)
}

type facilityService struct {
	repo      repository.FacilityRepository
	validator *validator.FacilityValidator
	cfg       *config.Config
}

func NewFacilityService(
	repo repository.FacilityRepository,
	validator *validator.FacilityValidator,
	cfg *config.Config,
) FacilityService {
	return &facilityService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *facilityService) Create(ctx context.Context, facility *model.Facility) error {
	facility.Name = sanitizer.SanitizeName(facility.Name)
	facility.Category = sanitizer.SanitizeName(facility.Category)

	if err := s.validator.Validate(facility); err != nil {
		s.cfg.Log.Warn("Facility validation failed", "error", err)
		return apperrors.Validation("Facility validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, facility); err != nil {
		s.cfg.Log.Error("Failed to create facility", "name", facility.Name, "error", err)
		return apperrors.Internal("Failed to create facility", err)
	}

	s.cfg.Log.Info("Facility created successfully",
		"id", facility.ID,
		"name", facility.Name,
		"category", facility.Category,
	)
	return nil
}

func (s *facilityService) GetByID(ctx context.Context, id string) (*model.Facility, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Facility ID cannot be empty")
	}

	facility, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, facilitieserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Facility", id)
		}
		if errors.Is(err, facilitieserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid facility ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve facility", err)
	}

	return facility, nil
}

func (s *facilityService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Facility, int64, error) {
	var count int64
	var facilities []*model.Facility
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count facilities", "error", errCount)
			errCount = apperrors.Internal("Failed to count facilities", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		facilities, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list facilities", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve facilities", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return facilities, count, nil
}
