package config

const EnvPrefix = "SALESBOARD"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	ValueBasisNet   = "net"
	ValueBasisGross = "gross"
)

const (
	EnvAppEnv   = "SALESBOARD_APP_ENV"
	EnvPort     = "SALESBOARD_APP_PORT"
	EnvLogLevel = "SALESBOARD_LOG_LEVEL"

	EnvDBDSN  = "SALESBOARD_DB_DSN"
	EnvDBHost = "SALESBOARD_DB_HOST"
	EnvDBUser = "SALESBOARD_DB_USER"
	EnvDBName = "SALESBOARD_DB_NAME"

	EnvUseSQLite = "SALESBOARD_USE_SQLITE"

	EnvIngestInboxDir      = "SALESBOARD_INGEST_INBOX_DIR"
	EnvIngestProcessedDir  = "SALESBOARD_INGEST_PROCESSED_DIR"
	EnvIngestQuarantineDir = "SALESBOARD_INGEST_QUARANTINE_DIR"

	EnvABCValueBasis      = "SALESBOARD_ABC_VALUE_BASIS"
	EnvABCClassAThreshold = "SALESBOARD_ABC_CLASS_A_THRESHOLD"
	EnvABCClassBThreshold = "SALESBOARD_ABC_CLASS_B_THRESHOLD"
	EnvABCInactiveDays    = "SALESBOARD_ABC_INACTIVE_DAYS"
	EnvABCEvolutionTopN   = "SALESBOARD_ABC_EVOLUTION_TOP_N"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
