package config

const EnvPrefix = "STOREFRONT"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	defaultSQLiteDSN = "file:storefront.db?_foreign_keys=on"
)

const (
	EnvAppEnv       = "STOREFRONT_APP_ENV"
	EnvPort         = "STOREFRONT_APP_PORT"
	EnvDBDSN        = "STOREFRONT_DB_DSN"
	EnvDBHost       = "STOREFRONT_DB_HOST"
	EnvDBUser       = "STOREFRONT_DB_USER"
	EnvDBName       = "STOREFRONT_DB_NAME"
	EnvRedisURL     = "STOREFRONT_REDIS_URL"
	EnvJWTSecret    = "STOREFRONT_JWT_SECRET"
	EnvJWTIssuer    = "STOREFRONT_JWT_ISSUER"
	EnvJWTExpMins   = "STOREFRONT_JWT_EXPIRATION_MINUTES"
	EnvUseSQLite    = "STOREFRONT_USE_SQLITE"
	EnvMailFrom     = "STOREFRONT_MAIL_FROM"
	EnvCookieMaxAge = "STOREFRONT_COOKIE_MAX_AGE"

	EnvTrustedProxies = "STOREFRONT_AUTH_RATE_LIMIT_TRUSTED_PROXIES"
)

var discreteDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
