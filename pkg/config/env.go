package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvGuardMode           = "GUARD_MODE"
	EnvGuardAcquireTimeout = "GUARD_ACQUIRE_TIMEOUT"
	EnvGuardLeaseTTL       = "GUARD_LEASE_TTL"

	EnvEventsEnabled    = "EVENTS_ENABLED"
	EnvEventsTopic      = "EVENTS_TOPIC"
	EnvApprovalsEnabled = "APPROVALS_ENABLED"
	EnvApprovalsTopic   = "APPROVALS_TOPIC"
	EnvApprovalsGroupID = "APPROVALS_GROUP_ID"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvDefaultInstallationCapacity = "DEFAULT_INSTALLATION_CAPACITY"
	EnvMaxRoomStay                 = "MAX_ROOM_STAY"
	EnvMaxShiftLength              = "MAX_SHIFT_LENGTH"
	EnvTrainingLeadTime            = "TRAINING_LEAD_TIME"
)
