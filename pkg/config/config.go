package config

import (
	"time"
)

type DB struct {
	Url             string        `envconfig:"URL"`
	MaxOpenConns    int           `envconfig:"MAX_OPEN_CONNS" default:"25"`
	MaxIdleConns    int           `envconfig:"MAX_IDLE_CONNS" default:"25"`
	ConnMaxLifetime time.Duration `envconfig:"CONN_MAX_LIFETIME" default:"1h"`
	AutoMigrate     bool          `envconfig:"AUTO_MIGRATE" default:"true"`
}

type Mongo struct {
	URI                    string        `envconfig:"URI" default:"mongodb://localhost:27017"`
	Database               string        `envconfig:"DATABASE" default:"transactions"`
	Collection             string        `envconfig:"COLLECTION" default:"ledger_entries"`
	MaxPoolSize            uint64        `envconfig:"MAX_POOL_SIZE" default:"100"`
	ServerSelectionTimeout time.Duration `envconfig:"SERVER_SELECTION_TIMEOUT" default:"5s"`
}

type Jwt struct {
	Secret string        `envconfig:"SECRET" required:"true"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"1h"`
	Issuer string        `envconfig:"ISSUER" default:"fintech-ledger"`
}

type Auth struct {
	Strategy string `envconfig:"STRATEGY" default:"jwt"`
	Jwt      *Jwt   `envconfig:"JWT"`
	// Store selects the identity store: memory or redis.
	Store string `envconfig:"STORE" default:"memory"`
}

type Redis struct {
	URL          string        `envconfig:"URL"`
	KeyPrefix    string        `envconfig:"KEY_PREFIX" default:"ledger:"`
	PoolSize     int           `envconfig:"POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"3s"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

type Breaker struct {
	MaxRequests         uint32        `envconfig:"MAX_REQUESTS" default:"3"`
	Interval            time.Duration `envconfig:"INTERVAL" default:"2m"`
	Timeout             time.Duration `envconfig:"TIMEOUT" default:"10s"`
	ConsecutiveFailures uint32        `envconfig:"CONSECUTIVE_FAILURES" default:"5"`
	FailureRatio        float64       `envconfig:"FAILURE_RATIO" default:"0.5"`
	MinRequests         uint32        `envconfig:"MIN_REQUESTS" default:"10"`
}

// AccountService configures the transaction service's client for the account service.
type AccountService struct {
	URL     string        `envconfig:"URL" default:"http://localhost:5000/api/accounts"`
	Timeout time.Duration `envconfig:"TIMEOUT" default:"5s"`
	Breaker *Breaker      `envconfig:"BREAKER"`
}

type Reconcile struct {
	Enabled    bool          `envconfig:"ENABLED" default:"true"`
	Interval   time.Duration `envconfig:"INTERVAL" default:"30s"`
	StaleAfter time.Duration `envconfig:"STALE_AFTER" default:"1m"`
	Lease      time.Duration `envconfig:"LEASE" default:"2m"`
	BatchSize  int           `envconfig:"BATCH_SIZE" default:"50"`
	BaseDelay  time.Duration `envconfig:"BASE_DELAY" default:"30s"`
	MaxDelay   time.Duration `envconfig:"MAX_DELAY" default:"30m"`
}

type EventBus struct {
	// Driver selects the outcome event transport: memory, redis or kafka.
	Driver       string `envconfig:"DRIVER" default:"memory"`
	Stream       string `envconfig:"STREAM" default:"ledger.events"`
	KafkaBrokers string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	KafkaTopic   string `envconfig:"KAFKA_TOPIC" default:"ledger.events"`
	Group        string `envconfig:"GROUP" default:"ledger"`
}

type Ledger struct {
	// Backend selects the ledger store: postgres, mongo or memory.
	Backend string `envconfig:"BACKEND" default:"postgres"`
}

type Cache struct {
	TTL    time.Duration `envconfig:"TTL" default:"10m"`
	Prefix string        `envconfig:"PREFIX" default:"ledger:entry:"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"json"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[ledger]"`
}

type Server struct {
	Scheme          string        `envconfig:"SCHEME" default:"http"`
	Host            string        `envconfig:"HOST" default:"localhost"`
	Port            int           `envconfig:"PORT" default:"5000"`
	ShutdownTimeout time.Duration `envconfig:"SHUTDOWN_TIMEOUT" default:"10s"`
}

type App struct {
	Env            string          `envconfig:"APP_ENV" default:"development"`
	Server         *Server         `envconfig:"SERVER"`
	Log            *Log            `envconfig:"LOG"`
	DB             *DB             `envconfig:"DATABASE"`
	Mongo          *Mongo          `envconfig:"MONGO"`
	Auth           *Auth           `envconfig:"AUTH"`
	Redis          *Redis          `envconfig:"REDIS"`
	RateLimit      *RateLimit      `envconfig:"RATE_LIMIT"`
	AccountService *AccountService `envconfig:"ACCOUNT_SERVICE"`
	Reconcile      *Reconcile      `envconfig:"RECONCILE"`
	EventBus       *EventBus       `envconfig:"EVENTBUS"`
	Ledger         *Ledger         `envconfig:"LEDGER"`
	Cache          *Cache          `envconfig:"CACHE"`
}
