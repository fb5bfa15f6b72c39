package service

import (
	"context"
	"testing"

	reportserrors "maison/internal/reports/errors"
	"maison/internal/reports/validator"
	"maison/pkg/config"
	apperrors "maison/pkg/errors"
	"maison/pkg/logger"
	"maison/pkg/model"
)

type mockReportRepository struct {
	createFunc       func(ctx context.Context, report *model.Report) error
	findByIDFunc     func(ctx context.Context, id string) (*model.Report, error)
	findAllFunc      func(ctx context.Context, userID string, limit int, offset int64) ([]*model.Report, error)
	countFunc        func(ctx context.Context, userID string) (int64, error)
	updateStatusFunc func(ctx context.Context, id string, status string) error
}

func (m *mockReportRepository) Create(ctx context.Context, report *model.Report) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, report)
	}
	report.ID = "507f191e810c19729de860ea"
	return nil
}

func (m *mockReportRepository) FindByID(ctx context.Context, id string) (*model.Report, error) {
	if m.findByIDFunc != nil {
		return m.findByIDFunc(ctx, id)
	}
	return nil, reportserrors.ErrNotFound
}

func (m *mockReportRepository) FindAll(ctx context.Context, userID string, limit int, offset int64) ([]*model.Report, error) {
	if m.findAllFunc != nil {
		return m.findAllFunc(ctx, userID, limit, offset)
	}
	return []*model.Report{}, nil
}

func (m *mockReportRepository) Count(ctx context.Context, userID string) (int64, error) {
	if m.countFunc != nil {
		return m.countFunc(ctx, userID)
	}
	return 0, nil
}

func (m *mockReportRepository) UpdateStatus(ctx context.Context, id string, status string) error {
	if m.updateStatusFunc != nil {
		return m.updateStatusFunc(ctx, id, status)
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

func newTestService(repo *mockReportRepository) ReportService {
	return NewReportService(repo, validator.NewReportValidator(), testConfig())
}

func storedReport(status string) *model.Report {
	return &model.Report{
		ID:          "507f191e810c19729de860ea",
		UserID:      "user-1",
		UserName:    "Maria Silva",
		Apartment:   "APT 301",
		Title:       "Leaking pipe",
		Description: "Water dripping from the kitchen ceiling",
		Category:    "Maintenance",
		Status:      status,
	}
}

func TestCreateReport(t *testing.T) {
	svc := newTestService(&mockReportRepository{})

	report := storedReport("")
	report.ID = ""
	report.Apartment = "Apt. #301"
	report.Status = "Resolved"

	if err := svc.Create(context.Background(), report); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if report.Status != config.ReportPending {
		t.Errorf("report.Status = %q, want %q regardless of the submitted value", report.Status, config.ReportPending)
	}
	if report.Apartment != "APT 301" {
		t.Errorf("report.Apartment = %q, want sanitized form", report.Apartment)
	}
}

func TestCreateReportValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *model.Report)
	}{
		{
			name:   "missing title",
			mutate: func(r *model.Report) { r.Title = "" },
		},
		{
			name:   "unknown category",
			mutate: func(r *model.Report) { r.Category = "Plumbing" },
		},
		{
			name:   "missing apartment",
			mutate: func(r *model.Report) { r.Apartment = "" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			created := false
			repo := &mockReportRepository{
				createFunc: func(ctx context.Context, report *model.Report) error {
					created = true
					return nil
				},
			}
			svc := newTestService(repo)

			report := storedReport("")
			report.ID = ""
			tt.mutate(report)

			err := svc.Create(context.Background(), report)
			if err == nil {
				t.Fatal("Create() should fail validation")
			}
			if apperrors.AsAppError(err).Code != apperrors.CodeValidation {
				t.Errorf("error code = %v, want validation", apperrors.AsAppError(err).Code)
			}
			if created {
				t.Error("invalid report was persisted")
			}
		})
	}
}

func TestReportTransitions(t *testing.T) {
	tests := []struct {
		name       string
		from       string
		transition string
		want       string
		wantErr    bool
	}{
		{name: "pending to in progress", from: config.ReportPending, transition: "progress", want: config.ReportInProgress},
		{name: "pending straight to resolved", from: config.ReportPending, transition: "resolve", want: config.ReportResolved},
		{name: "in progress to resolved", from: config.ReportInProgress, transition: "resolve", want: config.ReportResolved},
		{name: "in progress back to in progress", from: config.ReportInProgress, transition: "progress", wantErr: true},
		{name: "resolved to in progress", from: config.ReportResolved, transition: "progress", wantErr: true},
		{name: "resolved to resolved", from: config.ReportResolved, transition: "resolve", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var persisted string
			repo := &mockReportRepository{
				findByIDFunc: func(ctx context.Context, id string) (*model.Report, error) {
					return storedReport(tt.from), nil
				},
				updateStatusFunc: func(ctx context.Context, id string, status string) error {
					persisted = status
					return nil
				},
			}
			svc := newTestService(repo)

			var report *model.Report
			var err error
			switch tt.transition {
			case "progress":
				report, err = svc.MarkInProgress(context.Background(), "507f191e810c19729de860ea")
			case "resolve":
				report, err = svc.Resolve(context.Background(), "507f191e810c19729de860ea")
			}

			if tt.wantErr {
				if err == nil {
					t.Fatal("transition should be rejected")
				}
				if apperrors.AsAppError(err).Code != apperrors.CodeConflict {
					t.Errorf("error code = %v, want conflict", apperrors.AsAppError(err).Code)
				}
				if persisted != "" {
					t.Errorf("rejected transition persisted status %q", persisted)
				}
				return
			}

			if err != nil {
				t.Fatalf("transition error = %v", err)
			}
			if report.Status != tt.want {
				t.Errorf("report.Status = %q, want %q", report.Status, tt.want)
			}
			if persisted != tt.want {
				t.Errorf("persisted status = %q, want %q", persisted, tt.want)
			}
		})
	}
}

func TestReportTransitionNotFound(t *testing.T) {
	svc := newTestService(&mockReportRepository{})

	if _, err := svc.Resolve(context.Background(), "507f191e810c19729de860ea"); err == nil {
		t.Fatal("Resolve() on a missing report should fail")
	} else if apperrors.AsAppError(err).Code != apperrors.CodeNotFound {
		t.Errorf("error code = %v, want not found", apperrors.AsAppError(err).Code)
	}
}
