package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"hotelops/pkg/client"
	"hotelops/pkg/logger"
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port string

	GuardMode           string
	GuardAcquireTimeout time.Duration
	GuardLeaseTTL       time.Duration

	EventsEnabled    bool
	EventsTopic      string
	ApprovalsEnabled bool
	ApprovalsTopic   string
	ApprovalsGroupID string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	DefaultInstallationCapacity int
	MaxRoomStay                 time.Duration
	MaxShiftLength              time.Duration
	TrainingLeadTime            time.Duration

	Log    *logger.Logger
	Client *client.Client
}

func Load(serviceName string) *Config {
	cfg := &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Port: getEnvStr(EnvPort, DefaultPort),

		GuardMode:           getEnvStr(EnvGuardMode, DefaultGuardMode),
		GuardAcquireTimeout: getEnvDuration(EnvGuardAcquireTimeout, DefaultGuardAcquireTimeout),
		GuardLeaseTTL:       getEnvDuration(EnvGuardLeaseTTL, DefaultGuardLeaseTTL),

		EventsEnabled:    getEnvBool(EnvEventsEnabled, DefaultEventsEnabled),
		EventsTopic:      getEnvStr(EnvEventsTopic, DefaultEventsTopic),
		ApprovalsEnabled: getEnvBool(EnvApprovalsEnabled, DefaultApprovalsEnabled),
		ApprovalsTopic:   getEnvStr(EnvApprovalsTopic, DefaultApprovalsTopic),
		ApprovalsGroupID: getEnvStr(EnvApprovalsGroupID, DefaultApprovalsGroupID),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		DefaultInstallationCapacity: getEnvNum(EnvDefaultInstallationCapacity, DefaultDefaultInstallationCapacity),
		MaxRoomStay:                 getEnvDuration(EnvMaxRoomStay, DefaultMaxRoomStay),
		MaxShiftLength:              getEnvDuration(EnvMaxShiftLength, DefaultMaxShiftLength),
		TrainingLeadTime:            getEnvDuration(EnvTrainingLeadTime, DefaultTrainingLeadTime),

		Log: logger.New(logger.Config{
			Level:     getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:    logger.JSON,
			AddSource: true,
			Service:   serviceName,
		}),
		Client: client.NewClient(),
	}

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

func (cfg *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.GuardMode != GuardModeMemory && cfg.GuardMode != GuardModeMongo {
		errs = append(errs, fmt.Sprintf("GuardMode must be %q or %q, got: %s", GuardModeMemory, GuardModeMongo, cfg.GuardMode))
	}
	if cfg.GuardAcquireTimeout <= 0 {
		errs = append(errs, "GuardAcquireTimeout must be positive")
	}
	if cfg.GuardLeaseTTL <= 0 {
		errs = append(errs, "GuardLeaseTTL must be positive")
	}

	if cfg.MongoURI == "" {
		errs = append(errs, "MongoURI cannot be empty")
	}
	if cfg.MongoDatabaseName == "" {
		errs = append(errs, "MongoDatabaseName cannot be empty")
	}

	if cfg.DefaultInstallationCapacity < 1 {
		errs = append(errs, "DefaultInstallationCapacity must be at least 1")
	}
	if cfg.MaxRoomStay <= 0 || cfg.MaxShiftLength <= 0 {
		errs = append(errs, "MaxRoomStay and MaxShiftLength must be positive")
	}
	if cfg.TrainingLeadTime < 0 {
		errs = append(errs, "TrainingLeadTime cannot be negative")
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded",
		"mongo_database", cfg.MongoDatabaseName,
		"port", cfg.Port,
		"guard_mode", cfg.GuardMode,
		"guard_acquire_timeout", cfg.GuardAcquireTimeout.String(),
		"guard_lease_ttl", cfg.GuardLeaseTTL.String(),
		"events_enabled", cfg.EventsEnabled,
		"events_topic", cfg.EventsTopic,
		"approvals_enabled", cfg.ApprovalsEnabled,
		"request_timeout", cfg.RequestTimeout.String(),
		"default_installation_capacity", cfg.DefaultInstallationCapacity,
	)
}

func getEnvStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
