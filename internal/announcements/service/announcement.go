package service

import (
	"context"
	"errors"
	"sync"

	announcementserrors "maison/internal/announcements/errors"
	"maison/internal/announcements/repository"
	"maison/internal/announcements/validator"
	"maison/pkg/config"
	apperrors "maison/pkg/errors"
	"maison/pkg/model"
	"maison/pkg/sanitizer"
)

type AnnouncementService interface {
	Create(ctx context.Context, announcement *model.Announcement) error
	GetByID(ctx context.Context, id string) (*model.Announcement, error)
	GetAll(ctx context.Context, limit int, offset int64) ([]*model.Announcement, int64, error)
}

type announcementService struct {
	repo      repository.AnnouncementRepository
	validator *validator.AnnouncementValidator
	cfg       *config.Config
}

func NewAnnouncementService(
	repo repository.AnnouncementRepository,
	validator *validator.AnnouncementValidator,
	cfg *config.Config,
) AnnouncementService {
	return &announcementService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *announcementService) Create(ctx context.Context, announcement *model.Announcement) error {
	announcement.Title = sanitizer.CollapseWhitespace(announcement.Title)
	announcement.SenderName = sanitizer.SanitizeName(announcement.SenderName)

	if err := s.validator.Validate(announcement); err != nil {
		s.cfg.Log.Warn("Announcement validation failed", "error", err)
		return apperrors.Validation("Announcement validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, announcement); err != nil {
		s.cfg.Log.Error("Failed to create announcement", "title", announcement.Title, "error", err)
		return apperrors.Internal("Failed to create announcement", err)
	}

	s.cfg.Log.Info("Announcement created successfully",
		"id", announcement.ID,
		"title", announcement.Title,
	)
	return nil
}

func (s *announcementService) GetByID(ctx context.Context, id string) (*model.Announcement, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Announcement ID cannot be empty")
	}

	announcement, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, announcementserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Announcement", id)
		}
		if errors.Is(err, announcementserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid announcement ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve announcement", err)
	}

	return announcement, nil
}

func (s *announcementService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Announcement, int64, error) {
	var count int64
	var announcements []*model.Announcement
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count announcements", "error", errCount)
			errCount = apperrors.Internal("Failed to count announcements", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		announcements, errFind = s.repo.FindAll(ctx, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list announcements", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve announcements", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return announcements, count, nil
}
