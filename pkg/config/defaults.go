package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "hotelops"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	// GuardModeMemory serializes check-and-reserve with an in-process lock
	// table; GuardModeMongo uses advisory lock documents so multiple
	// instances can race safely.
	GuardModeMemory = "memory"
	GuardModeMongo  = "mongo"

	DefaultGuardMode           = GuardModeMemory
	DefaultGuardAcquireTimeout = 5 * time.Second
	DefaultGuardLeaseTTL       = 10 * time.Second

	DefaultEventsEnabled    = false
	DefaultEventsTopic      = "hotelops.booking-events"
	DefaultApprovalsEnabled = false
	DefaultApprovalsTopic   = "hotelops.leave-approvals"
	DefaultApprovalsGroupID = "availability"

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultDefaultInstallationCapacity = 50
	DefaultMaxRoomStay                 = 30 * 24 * time.Hour
	DefaultMaxShiftLength              = 12 * time.Hour
	DefaultTrainingLeadTime            = 24 * time.Hour
)
