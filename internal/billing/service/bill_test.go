package service

import (
	"context"
	"testing"
	"time"

	billingerrors "maison/internal/billing/errors"
	"maison/internal/billing/validator"
	"maison/pkg/config"
	apperrors "maison/pkg/errors"
	"maison/pkg/logger"
	"maison/pkg/model"
)

type mockBillRepository struct {
	createFunc   func(ctx context.Context, bill *model.Bill) error
	findByIDFunc func(ctx context.Context, id string) (*model.Bill, error)
	findAllFunc  func(ctx context.Context, userID string, limit int, offset int64) ([]*model.Bill, error)
	countFunc    func(ctx context.Context, userID string) (int64, error)
	markPaidFunc func(ctx context.Context, id string, paidDate string) error
}

func (m *mockBillRepository) Create(ctx context.Context, bill *model.Bill) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, bill)
	}
	bill.ID = "507f191e810c19729de860ea"
	return nil
}

func (m *mockBillRepository) FindByID(ctx context.Context, id string) (*model.Bill, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, billingerrors.ErrNotFound
}

func (m *mockBillRepository) FindAll(ctx context.Context, userID string, limit int, offset int64) ([]*model.Bill, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, userID, limit, offset)
	}
	return []*model.Bill{}, nil
}

func (m *mockBillRepository) Count(ctx context.Context, userID string) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, userID)
	}
	return 0, nil
}

func (m *mockBillRepository) MarkPaid(ctx context.Context, id string, paidDate string) error {
	if m.markPaidFunc != nil {
		return m.markPaidFunc(ctx, id, paidDate)
	}
	return nil
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

func newTestService(repo *mockBillRepository) BillService {
	cfg := testConfig()
	return NewBillService(repo, validator.NewBillValidator(cfg.Log), cfg)
}

func storedBill(status string) *model.Bill {
	return &model.Bill{
		ID:       "507f191e810c19729de860ea",
		UserID:   "user-1",
		Category: "Electricity",
		Amount:   120.50,
		Month:    "August 2026",
		DueDate:  "2026-08-10",
		Status:   status,
	}
}

func TestCreateBill(t *testing.T) {
	svc := newTestService(&mockBillRepository{})

	bill := &model.Bill{
		UserID:   "user-1",
		Category: "Water",
		Amount:   45.00,
		Month:    "  August   2026 ",
		DueDate:  "2026-08-10",
	}
	if err := svc.Create(context.Background(), bill); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if bill.Status != config.BillUnpaid {
		t.Errorf("bill.Status = %q, want %q", bill.Status, config.BillUnpaid)
	}
	if bill.Month != "August 2026" {
		t.Errorf("bill.Month = %q, want collapsed whitespace", bill.Month)
	}
}

func TestCreateBillValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(b *model.Bill)
	}{
		{
			name:   "missing user",
			mutate: func(b *model.Bill) { b.UserID = "" },
		},
		{
			name:   "unknown category",
			mutate: func(b *model.Bill) { b.Category = "Gym" },
		},
		{
			name:   "zero amount",
			mutate: func(b *model.Bill) { b.Amount = 0 },
		},
		{
			name:   "negative amount",
			mutate: func(b *model.Bill) { b.Amount = -10 },
		},
		{
			name:   "bad due date",
			mutate: func(b *model.Bill) { b.DueDate = "10/08/2026" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created := false
			repo := &mockBillRepository{
				createFunc: func(ctx context.Context, bill *model.Bill) error {
					created = true
					return nil
				},
			}
			svc := newTestService(repo)

			bill := storedBill("")
			bill.ID = ""
			tt.mutate(bill)

			err := svc.Create(context.Background(), bill)
			if err == nil {
				t.Fatal("Create() should fail validation")
			}
			if apperrors.AsAppError(err).Code != apperrors.CodeValidation {
				t.Errorf("error code = %v, want validation", apperrors.AsAppError(err).Code)
			}
			if created {
				t.Error("invalid bill was persisted")
			}
		})
	}
}

func TestPayBill(t *testing.T) {
	for _, status := range []string{config.BillUnpaid, config.BillOverdue} {
		t.Run(status, func(t *testing.T) {
			var paidDate string
			repo := &mockBillRepository{
				findByIDFunc: func(ctx context.Context, id string) (*model.Bill, error) {
					return storedBill(status), nil
				},
				markPaidFunc: func(ctx context.Context, id string, date string) error {
					paidDate = date
					return nil
				},
			}
			svc := newTestService(repo)

			bill, err := svc.Pay(context.Background(), "507f191e810c19729de860ea")
			if err != nil {
				t.Fatalf("Pay() error = %v", err)
			}

			if bill.Status != config.BillPaid {
				t.Errorf("bill.Status = %q, want %q", bill.Status, config.BillPaid)
			}
			today := time.Now().Format("2006-01-02")
			if bill.PaidDate != today || paidDate != today {
				t.Errorf("paid date = %q (persisted %q), want %q", bill.PaidDate, paidDate, today)
			}
		})
	}
}

func TestPayBillAlreadyPaid(t *testing.T) {
	stored := storedBill(config.BillPaid)
	stored.PaidDate = "2026-08-05"

	marked := false
	repo := &mockBillRepository{
		findByIDFunc: func(ctx context.Context, id string) (*model.Bill, error) {
			b := *stored
			return &b, nil
		},
		markPaidFunc: func(ctx context.Context, id string, date string) error {
			marked = true
			return nil
		},
	}
	svc := newTestService(repo)

	bill, err := svc.Pay(context.Background(), stored.ID)
	if err != nil {
		t.Fatalf("Pay() on a paid bill error = %v", err)
	}

	if marked {
		t.Error("paying a paid bill should not touch the repository")
	}
	if bill.PaidDate != "2026-08-05" {
		t.Errorf("bill.PaidDate = %q, want the original %q preserved", bill.PaidDate, "2026-08-05")
	}
}

func TestPayBillNotFound(t *testing.T) {
	svc := newTestService(&mockBillRepository{})

	_, err := svc.Pay(context.Background(), "507f191e810c19729de860ea")
	if err == nil {
		t.Fatal("Pay() on a missing bill should fail")
	}
	if apperrors.AsAppError(err).Code != apperrors.CodeNotFound {
		t.Errorf("error code = %v, want not found", apperrors.AsAppError(err).Code)
	}
}
