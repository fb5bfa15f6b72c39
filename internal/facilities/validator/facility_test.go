package validator

import (
	"strings"
	"testing"

	"maison/pkg/logger"
	"maison/pkg/model"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{
		Level:     "info",
		Format:    logger.JSON,
		AddSource: false,
		Service:   "test",
	})
}

func validFacility() *model.Facility {
	return &model.Facility{
		Name:      "Party Room",
		Category:  "Events",
		OpenTime:  "08:00",
		CloseTime: "22:00",
		Price:     150,
	}
}

func TestValidateOpeningHours(t *testing.T) {
	validator := NewFacilityValidator(testLogger())

	tests := []struct {
		name      string
		openTime  string
		closeTime string
		wantError bool
	}{
		{
			name:      "normal hours",
			openTime:  "08:00",
			closeTime: "22:00",
			wantError: false,
		},
		{
			name:      "midnight open",
			openTime:  "00:00",
			closeTime: "23:59",
			wantError: false,
		},
		{
			name:      "close before open",
			openTime:  "22:00",
			closeTime: "08:00",
			wantError: true,
		},
		{
			name:      "close equals open",
			openTime:  "08:00",
			closeTime: "08:00",
			wantError: true,
		},
		{
			name:      "hour out of range",
			openTime:  "25:00",
			closeTime: "26:00",
			wantError: true,
		},
		{
			name:      "missing leading zero",
			openTime:  "8:00",
			closeTime: "22:00",
			wantError: true,
		},
		{
			name:      "not a time at all",
			openTime:  "morning",
			closeTime: "22:00",
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facility := validFacility()
			facility.OpenTime = tt.openTime
			facility.CloseTime = tt.closeTime

			err := validator.Validate(facility)
			if (err != nil) != tt.wantError {
				t.Errorf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestValidateRequiredFields(t *testing.T) {
	validator := NewFacilityValidator(testLogger())

	tests := []struct {
		name     string
		mutate   func(*model.Facility)
		errorMsg string
	}{
		{
			name:     "missing name",
			mutate:   func(f *model.Facility) { f.Name = "" },
			errorMsg: "Name",
		},
		{
			name:     "missing category",
			mutate:   func(f *model.Facility) { f.Category = "" },
			errorMsg: "Category",
		},
		{
			name:     "missing open time",
			mutate:   func(f *model.Facility) { f.OpenTime = "" },
			errorMsg: "OpenTime",
		},
		{
			name:     "missing close time",
			mutate:   func(f *model.Facility) { f.CloseTime = "" },
			errorMsg: "CloseTime",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facility := validFacility()
			tt.mutate(facility)

			err := validator.Validate(facility)
			if err == nil {
				t.Fatal("Validate() expected an error, got nil")
			}
			if !strings.Contains(err.Error(), tt.errorMsg) {
				t.Errorf("Expected error to mention %q, got %q", tt.errorMsg, err.Error())
			}
		})
	}
}

func TestValidateNameLength(t *testing.T) {
	validator := NewFacilityValidator(testLogger())

	tests := []struct {
		name      string
		facName   string
		wantError bool
	}{
		{
			name:      "too short (1 char)",
			facName:   "A",
			wantError: true,
		},
		{
			name:      "minimum length (2 chars)",
			facName:   "AB",
			wantError: false,
		},
		{
			name:      "maximum length (100 chars)",
			facName:   strings.Repeat("A", 100),
			wantError: false,
		},
		{
			name:      "too long (101 chars)",
			facName:   strings.Repeat("A", 101),
			wantError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facility := validFacility()
			facility.Name = tt.facName

			err := validator.Validate(facility)
			if (err != nil) != tt.wantError {
				t.Errorf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}

func TestValidatePriceAndImage(t *testing.T) {
	validator := NewFacilityValidator(testLogger())

	tests := []struct {
		name      string
		mutate    func(*model.Facility)
		wantError bool
	}{
		{
			name:      "free facility",
			mutate:    func(f *model.Facility) { f.Price = 0 },
			wantError: false,
		},
		{
			name:      "negative price",
			mutate:    func(f *model.Facility) { f.Price = -10 },
			wantError: true,
		},
		{
			name:      "valid image URL",
			mutate:    func(f *model.Facility) { f.Image = "https://example.com/room.jpg" },
			wantError: false,
		},
		{
			name:      "image is not a URL",
			mutate:    func(f *model.Facility) { f.Image = "room.jpg" },
			wantError: true,
		},
		{
			name:      "empty image is optional",
			mutate:    func(f *model.Facility) { f.Image = "" },
			wantError: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			facility := validFacility()
			tt.mutate(facility)

			err := validator.Validate(facility)
			if (err != nil) != tt.wantError {
				t.Errorf("Validate() error = %v, wantError %v", err, tt.wantError)
			}
		})
	}
}
