package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/julienschmidt/httprouter"

	"maison/pkg/logger"
	"maison/pkg/model"
)

type mockFacilityService struct {
	createFunc  func(ctx context.Context, facility *model.Facility) error
	getByIDFunc func(ctx context.Context, id string) (*model.Facility, error)
	getAllFunc  func(ctx context.Context, limit int, offset int64) ([]*model.Facility, int64, error)
}

func (m *mockFacilityService) Create(ctx context.Context, facility *model.Facility) error {
	if m.createFunc != nil {
		return m.createFunc(ctx, facility)
	}
	return nil
}

func (m *mockFacilityService) GetByID(ctx context.Context, id string) (*model.Facility, error) {
	if m.getByIDFunc != nil {
		return m.getByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockFacilityService) GetAll(ctx context.Context, limit int, offset int64) ([]*model.Facility, int64, error) {
	if m.getAllFunc != nil {
		return m.getAllFunc(ctx, limit, offset)
	}
	return []*model.Facility{}, 0, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:     "info",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
}

func TestGetAll_ValidQueryParameters(t *testing.T) {
	var receivedLimit int
	var receivedOffset int64
	mockService := &mockFacilityService{
		getAllFunc: func(ctx context.Context, limit int, offset int64) ([]*model.Facility, int64, error) {
			receivedLimit = limit
			receivedOffset = offset
			return []*model.Facility{
				{ID: "1", Name: "Party Room"},
				{ID: "2", Name: "Gym"},
			}, 42, nil
		},
	}

	handler := NewFacilityHandler(mockService, testLogger())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/facilities?limit=20&offset=10", nil)
	w := httptest.NewRecorder()

	handler.GetAll(w, req, httprouter.Params{})

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if receivedLimit != 20 {
		t.Errorf("expected limit 20, got %d", receivedLimit)
	}
	if receivedOffset != 10 {
		t.Errorf("expected offset 10, got %d", receivedOffset)
	}

	var response struct {
		Data       []model.Facility `json:"data"`
		TotalCount int64            `json:"total_count"`
		Limit      int              `json:"limit"`
		Offset     int64            `json:"offset"`
	}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if response.TotalCount != 42 {
		t.Errorf("expected total_count 42, got %d", response.TotalCount)
	}
	if len(response.Data) != 2 {
		t.Errorf("expected 2 items, got %d", len(response.Data))
	}
}

func TestGetAll_InvalidQueryParameters(t *testing.T) {
	called := false
	mockService := &mockFacilityService{
		getAllFunc: func(ctx context.Context, limit int, offset int64) ([]*model.Facility, int64, error) {
			called = true
			return []*model.Facility{}, 0, nil
		},
	}

	handler := NewFacilityHandler(mockService, testLogger())

	tests := []struct {
		name        string
		queryString string
	}{
		{"alphabetic limit", "?limit=abc&offset=0"},
		{"alphabetic offset", "?limit=10&offset=xyz"},
		{"both invalid", "?limit=abc&offset=xyz"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			called = false
			req := httptest.NewRequest(http.MethodGet, "/api/v1/facilities"+tt.queryString, nil)
			w := httptest.NewRecorder()

			handler.GetAll(w, req, httprouter.Params{})

			if w.Code != http.StatusBadRequest {
				t.Errorf("expected status 400, got %d", w.Code)
			}
			if called {
				t.Error("service should not be called for invalid query parameters")
			}
		})
	}
}

func TestGetAll_NormalizedLimits(t *testing.T) {
	var receivedLimit int
	var receivedOffset int64
	mockService := &mockFacilityService{
		getAllFunc: func(ctx context.Context, limit int, offset int64) ([]*model.Facility, int64, error) {
			receivedLimit = limit
			receivedOffset = offset
			return []*model.Facility{}, 0, nil
		},
	}

	handler := NewFacilityHandler(mockService, testLogger())

	tests := []struct {
		name        string
		queryString string
		wantLimit   int
		wantOffset  int64
	}{
		{"missing parameters", "", 10, 0},
		{"zero limit falls back to default", "?limit=0&offset=0", 10, 0},
		{"huge limit is capped", "?limit=999999&offset=0", 100, 0},
		{"negative values are clamped", "?limit=-10&offset=-5", 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/v1/facilities"+tt.queryString, nil)
			w := httptest.NewRecorder()

			handler.GetAll(w, req, httprouter.Params{})

			if w.Code != http.StatusOK {
				t.Errorf("expected status 200, got %d", w.Code)
			}
			if receivedLimit != tt.wantLimit {
				t.Errorf("expected limit %d, got %d", tt.wantLimit, receivedLimit)
			}
			if receivedOffset != tt.wantOffset {
				t.Errorf("expected offset %d, got %d", tt.wantOffset, receivedOffset)
			}
		})
	}
}

func TestCreate_InvalidBody(t *testing.T) {
	mockService := &mockFacilityService{
		createFunc: func(ctx context.Context, facility *model.Facility) error {
			t.Error("service should not be called for a malformed body")
			return nil
		},
	}

	handler := NewFacilityHandler(mockService, testLogger())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/facilities", nil)
	w := httptest.NewRecorder()

	handler.Create(w, req, httprouter.Params{})

	if w.Code != http.StatusBadRequest {
		t.Errorf("expected status 400, got %d", w.Code)
	}
}
