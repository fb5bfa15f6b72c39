package service

import (
	"context"
	"errors"
	"sync"
	"time"

	billingerrors "maison/internal/billing/errors"
	"maison/internal/billing/repository"
	"maison/internal/billing/validator"
	"maison/pkg/config"
	apperrors "maison/pkg/errors"
	"maison/pkg/model"
	"maison/pkg/sanitizer"
)

type BillService interface {
	Create(ctx context.Context, bill *model.Bill) error
	GetByID(ctx context.Context, id string) (*model.Bill, error)
	GetAll(ctx context.Context, userID string, limit int, offset int64) ([]*model.Bill, int64, error)
	Pay(ctx context.Context, id string) (*model.Bill, error)
}

type billService struct {
	repo      repository.BillRepository
	validator *validator.BillValidator
	cfg       *config.Config
}

func NewBillService(
	repo repository.BillRepository,
	validator *validator.BillValidator,
	cfg *config.Config,
) BillService {
	return &billService{
		repo:      repo,
		validator: validator,
		cfg:       cfg,
	}
}

func (s *billService) Create(ctx context.Context, bill *model.Bill) error {
	if bill.Status == "" {
		bill.Status = config.BillUnpaid
	}
	bill.Month = sanitizer.CollapseWhitespace(bill.Month)

	if err := s.validator.Validate(bill); err != nil {
		s.cfg.Log.Warn("Bill validation failed", "error", err)
		return apperrors.Validation("Bill validation failed", map[string]any{"error": err.Error()})
	}

	if err := s.repo.Create(ctx, bill); err != nil {
		s.cfg.Log.Error("Failed to create bill", "user_id", bill.UserID, "error", err)
		return apperrors.Internal("Failed to create bill", err)
	}

	s.cfg.Log.Info("Bill created successfully",
		"id", bill.ID,
		"user_id", bill.UserID,
		"category", bill.Category,
		"month", bill.Month,
	)
	return nil
}

func (s *billService) GetByID(ctx context.Context, id string) (*model.Bill, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("Bill ID cannot be empty")
	}

	bill, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, billingerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Bill", id)
		}
		if errors.Is(err, billingerrors.ErrInvalidID) {
			return nil, apperrors.InvalidInput("Invalid bill ID format")
		}
		return nil, apperrors.Internal("Failed to retrieve bill", err)
	}

	return bill, nil
}

func (s *billService) GetAll(ctx context.Context, userID string, limit int, offset int64) ([]*model.Bill, int64, error) {
	var count int64
	var bills []*model.Bill
	var errCount, errFind error
	var wg sync.WaitGroup
	wg.Add(2)

	go func() {
		defer wg.Done()
		count, errCount = s.repo.Count(ctx, userID)
		if errCount != nil {
			s.cfg.Log.Error("Failed to count bills", "error", errCount)
			errCount = apperrors.Internal("Failed to count bills", errCount)
		}
	}()

	go func() {
		defer wg.Done()
		bills, errFind = s.repo.FindAll(ctx, userID, limit, offset)
		if errFind != nil {
			s.cfg.Log.Error("Failed to list bills", "error", errFind)
			errFind = apperrors.Internal("Failed to retrieve bills", errFind)
		}
	}()

	wg.Wait()
	if errCount != nil {
		return nil, 0, errCount
	}
	if errFind != nil {
		return nil, 0, errFind
	}

	return bills, count, nil
}

// Pay settles an open bill. Paying a bill that is already Paid is a
// no-op returning the stored record, so retried requests are harmless.
func (s *billService) Pay(ctx context.Context, id string) (*model.Bill, error) {
	bill, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if bill.Status == config.BillPaid {
		return bill, nil
	}

	paidDate := time.Now().Format("2006-01-02")
	if err := s.repo.MarkPaid(ctx, id, paidDate); err != nil {
		if errors.Is(err, billingerrors.ErrNotFound) {
			return nil, apperrors.NotFoundWithID("Bill", id)
		}
		s.cfg.Log.Error("Failed to mark bill paid", "id", id, "error", err)
		return nil, apperrors.Internal("Failed to pay bill", err)
	}

	bill.Status = config.BillPaid
	bill.PaidDate = paidDate

	s.cfg.Log.Info("Bill paid",
		"id", bill.ID,
		"user_id", bill.UserID,
		"paid_date", paidDate,
	)
	return bill, nil
}
