package config

// EnvPrefix namespaces every environment variable read by envconfig.
const EnvPrefix = "ECOMMETRICS"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	EnvAppEnv = "ECOMMETRICS_APP_ENV"
	EnvPort   = "ECOMMETRICS_APP_PORT"

	EnvDBDSN  = "ECOMMETRICS_DB_DSN"
	EnvDBHost = "ECOMMETRICS_DB_HOST"
	EnvDBUser = "ECOMMETRICS_DB_USER"
	EnvDBName = "ECOMMETRICS_DB_NAME"

	EnvRedisURL = "ECOMMETRICS_REDIS_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
