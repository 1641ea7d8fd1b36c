package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Toss          TossConfig
	Checkout      CheckoutConfig
	Cart          CartConfig
	GCP           GCPConfig
	PubSub        PubSubConfig
	Outbox        OutboxConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Checkout.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"VORTEX_APP_ENV" required:"true"`
	Port         string `envconfig:"VORTEX_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"VORTEX_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"VORTEX_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"VORTEX_DB_DSN" required:"true"`
	Driver string `envconfig:"VORTEX_DB_DRIVER" default:"postgres"`

	MaxOpenConns    int           `envconfig:"VORTEX_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"VORTEX_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"VORTEX_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"VORTEX_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"VORTEX_REDIS_URL"`
	Address      string        `envconfig:"VORTEX_REDIS_ADDR"`
	Password     string        `envconfig:"VORTEX_REDIS_PASSWORD"`
	DB           int           `envconfig:"VORTEX_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"VORTEX_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"VORTEX_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"VORTEX_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"VORTEX_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"VORTEX_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"VORTEX_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"VORTEX_JWT_ISSUER" default:"vortex-game-explorer"`
	ExpirationMinutes      int    `envconfig:"VORTEX_JWT_EXPIRATION_MINUTES" default:"60"`
	RefreshTokenTTLMinutes int    `envconfig:"VORTEX_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"VORTEX_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"VORTEX_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"VORTEX_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"VORTEX_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"VORTEX_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"VORTEX_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"VORTEX_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"VORTEX_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"VORTEX_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"VORTEX_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"VORTEX_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"VORTEX_AUTO_MIGRATE" default:"false"`
}

// TossConfig holds the Toss Payments credentials. The client key is handed to
// the browser to open the payment widget; the secret key authenticates the
// server-side confirmation call.
type TossConfig struct {
	ClientKey string        `envconfig:"VORTEX_TOSS_CLIENT_KEY" required:"true"`
	SecretKey string        `envconfig:"VORTEX_TOSS_SECRET_KEY" required:"true"`
	BaseURL   string        `envconfig:"VORTEX_TOSS_BASE_URL" default:"https://api.tosspayments.com"`
	Timeout   time.Duration `envconfig:"VORTEX_TOSS_TIMEOUT" default:"30s"`
}

// CheckoutConfig governs the payment hand-off and the reconciliation windows.
type CheckoutConfig struct {
	// WebOrigin is the storefront origin the provider redirects back to.
	WebOrigin   string `envconfig:"VORTEX_CHECKOUT_WEB_ORIGIN" required:"true"`
	SuccessPath string `envconfig:"VORTEX_CHECKOUT_SUCCESS_PATH" default:"/payment/success"`
	FailPath    string `envconfig:"VORTEX_CHECKOUT_FAIL_PATH" default:"/payment/fail"`

	// PendingOrderTTL bounds how long a pending-order snapshot survives an
	// abandoned redirect before Redis expires it.
	PendingOrderTTL time.Duration `envconfig:"VORTEX_CHECKOUT_PENDING_TTL" default:"1h"`
	// LockTTL bounds the per-user "processing" guard so a crashed attempt
	// cannot wedge checkout forever.
	LockTTL time.Duration `envconfig:"VORTEX_CHECKOUT_LOCK_TTL" default:"2m"`
	// ConfirmedOrderTTL keeps the per-order confirmation latch around long
	// enough to reject duplicate redirects.
	ConfirmedOrderTTL time.Duration `envconfig:"VORTEX_CHECKOUT_CONFIRMED_TTL" default:"168h"`
}

func (c CheckoutConfig) validate() error {
	if !strings.HasPrefix(c.WebOrigin, "http://") && !strings.HasPrefix(c.WebOrigin, "https://") {
		return fmt.Errorf("checkout web origin must be an absolute http(s) origin, got %q", c.WebOrigin)
	}
	return nil
}

// SuccessURL returns the provider redirect target for completed payments.
func (c CheckoutConfig) SuccessURL() string {
	return strings.TrimRight(c.WebOrigin, "/") + c.SuccessPath
}

// FailURL returns the provider redirect target for failed payments.
func (c CheckoutConfig) FailURL() string {
	return strings.TrimRight(c.WebOrigin, "/") + c.FailPath
}

type CartConfig struct {
	// TTL keeps carts session-scoped: an idle cart expires instead of
	// persisting indefinitely.
	TTL time.Duration `envconfig:"VORTEX_CART_TTL" default:"24h"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"VORTEX_GCP_PROJECT_ID"`
	CredentialsJSON        string `envconfig:"VORTEX_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"VORTEX_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	PurchasesTopic        string `envconfig:"VORTEX_PUBSUB_PURCHASES_TOPIC" default:"vortex-purchase-events"`
	PurchasesSubscription string `envconfig:"VORTEX_PUBSUB_PURCHASES_SUBSCRIPTION"`
}

type OutboxConfig struct {
	BatchSize      int `envconfig:"VORTEX_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int `envconfig:"VORTEX_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int `envconfig:"VORTEX_OUTBOX_MAX_ATTEMPTS" default:"10"`
}
