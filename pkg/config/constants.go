package config

// EnvPrefix is empty because every field already carries its full VORTEX_* name.
const EnvPrefix = ""

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv   = "VORTEX_APP_ENV"
	EnvPort     = "VORTEX_APP_PORT"
	EnvLogLevel = "VORTEX_LOG_LEVEL"

	EnvDBDSN    = "VORTEX_DB_DSN"
	EnvDBDriver = "VORTEX_DB_DRIVER"

	EnvRedisURL = "VORTEX_REDIS_URL"

	EnvJWTSecret              = "VORTEX_JWT_SECRET"
	EnvJWTIssuer              = "VORTEX_JWT_ISSUER"
	EnvJWTExpMins             = "VORTEX_JWT_EXPIRATION_MINUTES"
	EnvRefreshTokenTTLMinutes = "VORTEX_REFRESH_TOKEN_TTL_MINUTES"

	EnvTossClientKey = "VORTEX_TOSS_CLIENT_KEY"
	EnvTossSecretKey = "VORTEX_TOSS_SECRET_KEY"
	EnvTossBaseURL   = "VORTEX_TOSS_BASE_URL"

	EnvCheckoutWebOrigin = "VORTEX_CHECKOUT_WEB_ORIGIN"

	EnvGCPProjectID         = "VORTEX_GCP_PROJECT_ID"
	EnvPubSubPurchasesTopic = "VORTEX_PUBSUB_PURCHASES_TOPIC"
	EnvPubSubPurchasesSub   = "VORTEX_PUBSUB_PURCHASES_SUBSCRIPTION"
)
