package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	Internal     InternalConfig
	Permissions  PermissionsConfig
	FeatureFlags FeatureFlagsConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	Outbox       OutboxConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"PRECOREAL_APP_ENV" required:"true"`
	Port         string `envconfig:"PRECOREAL_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"PRECOREAL_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"PRECOREAL_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"PRECOREAL_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"PRECOREAL_DB_DSN"`
	Driver string `envconfig:"PRECOREAL_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"PRECOREAL_DB_HOST"`
	LegacyPort     int    `envconfig:"PRECOREAL_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"PRECOREAL_DB_USER"`
	LegacyPassword string `envconfig:"PRECOREAL_DB_PASSWORD"`
	LegacyName     string `envconfig:"PRECOREAL_DB_NAME"`
	LegacySSLMode  string `envconfig:"PRECOREAL_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"PRECOREAL_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"PRECOREAL_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"PRECOREAL_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"PRECOREAL_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"PRECOREAL_REDIS_URL" required:"true"`
	Address      string        `envconfig:"PRECOREAL_REDIS_ADDR"`
	Password     string        `envconfig:"PRECOREAL_REDIS_PASSWORD"`
	DB           int           `envconfig:"PRECOREAL_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"PRECOREAL_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"PRECOREAL_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"PRECOREAL_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"PRECOREAL_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"PRECOREAL_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"PRECOREAL_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"PRECOREAL_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"PRECOREAL_JWT_EXPIRATION_MINUTES" default:"60"`
}

// AccessTokenTTL returns the access token lifetime configured in minutes.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

// InternalConfig protects the service-to-service role management channel.
type InternalConfig struct {
	ServiceSecret string `envconfig:"PRECOREAL_INTERNAL_SERVICE_SECRET" required:"true"`
}

// PermissionsConfig carries evaluator policy knobs. The radius is policy, not a
// structural constant, so deployments may tighten or relax it.
type PermissionsConfig struct {
	GeofenceRadiusMeters float64       `envconfig:"PRECOREAL_GEOFENCE_RADIUS_METERS" default:"150"`
	StorageTimeout       time.Duration `envconfig:"PRECOREAL_PERMISSIONS_STORAGE_TIMEOUT" default:"5s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"PRECOREAL_AUTO_MIGRATE" default:"false"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"PRECOREAL_GCP_PROJECT_ID" required:"true"`
	CredentialsJSON        string `envconfig:"PRECOREAL_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"PRECOREAL_GOOGLE_APPLICATION_CREDENTIALS"`
}

type PubSubConfig struct {
	DomainTopic        string `envconfig:"PRECOREAL_PUBSUB_DOMAIN_TOPIC" default:"precoreal-domain-events"`
	DomainSubscription string `envconfig:"PRECOREAL_PUBSUB_DOMAIN_SUBSCRIPTION" required:"true"`
}

type OutboxConfig struct {
	BatchSize        int `envconfig:"PRECOREAL_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS   int `envconfig:"PRECOREAL_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts      int `envconfig:"PRECOREAL_OUTBOX_MAX_ATTEMPTS" default:"10"`
	RetentionDays    int `envconfig:"PRECOREAL_OUTBOX_RETENTION_DAYS" default:"30"`
	DLQRetentionDays int `envconfig:"PRECOREAL_OUTBOX_DLQ_RETENTION_DAYS" default:"90"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
