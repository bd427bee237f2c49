package config

// EnvPrefix is passed to envconfig; individual fields carry explicit names so
// the prefix only matters for fields without a tag.
const EnvPrefix = "precoreal"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

// Environment variable names referenced outside struct tags (error messages,
// tests).
const (
	EnvAppEnv          = "PRECOREAL_APP_ENV"
	EnvPort            = "PRECOREAL_APP_PORT"
	EnvDBDSN           = "PRECOREAL_DB_DSN"
	EnvDBHost          = "PRECOREAL_DB_HOST"
	EnvDBUser          = "PRECOREAL_DB_USER"
	EnvDBName          = "PRECOREAL_DB_NAME"
	EnvRedisURL        = "PRECOREAL_REDIS_URL"
	EnvJWTSecret       = "PRECOREAL_JWT_SECRET"
	EnvJWTIssuer       = "PRECOREAL_JWT_ISSUER"
	EnvInternalSecret  = "PRECOREAL_INTERNAL_SERVICE_SECRET"
	EnvGCPProjectID    = "PRECOREAL_GCP_PROJECT_ID"
	EnvPubSubDomainSub = "PRECOREAL_PUBSUB_DOMAIN_SUBSCRIPTION"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
