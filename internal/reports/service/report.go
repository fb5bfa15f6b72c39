package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	reportserrors "maison/internal/reports/errors"
	"maison/internal/reports/repository"
	"maison/internal/reports/validator"
	"maison/pkg/config"
	apperrors "maison/pkg/errors"
	"maison/pkg/model"
	"maison/pkg/sanitizer"
)

type ReportService interface {
	Create(ctx context.Context, report *model.Report) error
	GetByID(ctx context.Context, id string) (*model.Report, error)
	GetAll(ctx context.Context, userID string, limit int, offset int64) ([]*model.Report, int64, error)
	MarkInProgress(ctx context.Context, id string) (*model.Report, error)
	Resolve(ctx context.Context, id string) (*model.Report, error)
}

type reportService struct {
	repo      repository.ReportRepository
	validator *validator.ReportValidator
	cfg       *config.Config
}

func NewReportService(
	repo repository.ReportRepository,
	validator *validator.ReportValidator,
	cfg *config.Config,
) ReportService {
	return &reportService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *reportService) Create(ctx context.Context, report *model.Report) error {
	report.Status = config.ReportPending
	report.UserName = sanitizer.SanitizeName(report.UserName)
	report.Apartment = sanitizer.SanitizeApartment(report.Apartment)
	report.Title = sanitizer.CollapseWhitespace(report.Title)
	report.Description = sanitizer.CollapseWhitespace(report.Description)

	if err := s.validator.Validate(report); err != nil {
		s.cfg.Log.Warn("Report validation failed", "error", err)
		return apperrors.Validation("Report validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, report); err != nil {
		s.cfg.Log.Error("Failed to create report", "user_id", report.UserID, "error", err)
		return apperrors.Internal("Failed to create report", err)
	}

	s.cfg.Log.Info("Report created successfully",
		"id", report.ID,
		"user_id", report.UserID,
		"category", report.Category,
	)
	return nil
}

func (s *reportService) GetByID(ctx context.Context, id string) (*model.Report, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Report ID cannot be empty")
	}

	report, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, reportserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Report", id)
		}
		if errors.Is(err, reportserrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid report ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve report", err)
	}

	return report, nil
}

func (s *reportService) GetAll(ctx context.Context, userID string, limit int, offset int64) ([]*model.Report, int64, error) {
	var count int64
	var reports []*model.Report
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx, userID)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count reports", "error", errCount)
			errCount = apperrors.Internal("Failed to count reports", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		reports, errFind = s.repo.FindAll(ctx, userID, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list reports", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve reports", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return reports, count, nil
}

func (s *reportService) MarkInProgress(ctx context.Context, id string) (*model.Report, error) {
	return s.transition(ctx, id, config.ReportInProgress, config.ReportPending)
}

func (s *reportService) Resolve(ctx context.Context, id string) (*model.Report, error) {
	return s.transition(ctx, id, config.ReportResolved, config.ReportPending, config.ReportInProgress)
}

// transition advances a report to the target status. The progression is
// one-way, so only the listed source statuses are accepted.
func (s *reportService) transition(ctx context.Context, id string, target string, from ...string) (*model.Report, error) {
	report, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	allowed := false
	for _, status := range from {
		if report.Status == status {
			allowed = true
			break
		}
	}
	if !allowed {
		return nil, apperrors.Conflict(fmt.Sprintf(
			"Report is %s and cannot move to %s", report.Status, target,
		))
	}

	if err := s.repo.UpdateStatus(ctx, id, target); err != nil {
		if errors.Is(err, reportserrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Report", id)
		}
		s.cfg.Log.Error("Failed to update report status", "id", id, "status", target, "error", err)
		return nil, apperrors.Internal("Failed to update report status", err)
	}

	report.Status = target

	s.cfg.Log.Info("Report status updated",
		"id", report.ID,
		"status", target,
	)
	return report, nil
}
