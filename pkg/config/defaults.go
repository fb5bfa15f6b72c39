package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "maison"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort = "8080"

	DefaultRateLimitRequests = 30
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultSessionTTL    = 12 * time.Hour
	DefaultSessionSecret = "maison-dev-secret"

	DefaultBookingLockTTL = 10 * time.Second

	DefaultFacilitiesURL = "http://localhost:8081"
	DefaultBookingsURL   = "http://localhost:8082"

	DefaultPaginationLimit = 100
)

// Booking statuses.
const (
	BookingConfirmed = "Confirmed"
	BookingCancelled = "Cancelled"
	BookingCompleted = "Completed"
)

// Bill statuses.
const (
	BillUnpaid  = "Unpaid"
	BillOverdue = "Overdue"
	BillPaid    = "Paid"
)

// Report statuses.
const (
	ReportPending    = "Pending"
	ReportInProgress = "In Progress"
	ReportResolved   = "Resolved"
)

// Resident roles and statuses.
const (
	RoleAdmin    = "ADMIN"
	RoleResident = "RESIDENT"

	ResidentActive   = "Active"
	ResidentInactive = "Inactive"
)

// DefaultTimeSlots is the fixed daily slot grid, uniform across all
// facilities regardless of their own operating hours.
var DefaultTimeSlots = []string{"08:00", "10:00", "14:00", "16:00", "18:00", "20:00"}
