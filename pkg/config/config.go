package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Ingest    IngestConfig
	Analytics AnalyticsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if err := cfg.Analytics.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SALESBOARD_APP_ENV" required:"true"`
	Port         string `envconfig:"SALESBOARD_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SALESBOARD_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SALESBOARD_LOG_WARN_STACK" default:"false"`
	// CORSOrigins lists the dashboard origins allowed to call the API.
	CORSOrigins []string `envconfig:"SALESBOARD_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SALESBOARD_DB_DSN"`
	Driver string `envconfig:"SALESBOARD_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SALESBOARD_DB_HOST"`
	LegacyPort     int    `envconfig:"SALESBOARD_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SALESBOARD_DB_USER"`
	LegacyPassword string `envconfig:"SALESBOARD_DB_PASSWORD"`
	LegacyName     string `envconfig:"SALESBOARD_DB_NAME"`
	LegacySSLMode  string `envconfig:"SALESBOARD_DB_SSLMODE" default:"disable"`

	UseSQLite  bool   `envconfig:"SALESBOARD_USE_SQLITE" default:"false"`
	SQLitePath string `envconfig:"SALESBOARD_SQLITE_PATH" default:"salesboard.db"`

	AutoMigrate bool `envconfig:"SALESBOARD_AUTO_MIGRATE" default:"false"`

	MaxOpenConns    int           `envconfig:"SALESBOARD_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SALESBOARD_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SALESBOARD_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SALESBOARD_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IngestConfig locates the directories the batch runner works against.
// The inbox holds freshly exported spreadsheets; processed and quarantine
// receive files after a successful or failed ingestion respectively.
type IngestConfig struct {
	InboxDir      string `envconfig:"SALESBOARD_INGEST_INBOX_DIR" default:"data/inbox"`
	ProcessedDir  string `envconfig:"SALESBOARD_INGEST_PROCESSED_DIR" default:"data/processed"`
	QuarantineDir string `envconfig:"SALESBOARD_INGEST_QUARANTINE_DIR" default:"data/quarantine"`
}

// AnalyticsConfig carries the ABC classification policy knobs.
type AnalyticsConfig struct {
	// ValueBasis selects which monetary column feeds the value axis: net or gross.
	ValueBasis string `envconfig:"SALESBOARD_ABC_VALUE_BASIS" default:"net"`
	// ClassAThreshold and ClassBThreshold are cumulative-share cutoffs.
	ClassAThreshold float64 `envconfig:"SALESBOARD_ABC_CLASS_A_THRESHOLD" default:"0.70"`
	ClassBThreshold float64 `envconfig:"SALESBOARD_ABC_CLASS_B_THRESHOLD" default:"0.90"`
	// InactiveDays marks an article inactive when its last sale is older than
	// this many days before the query's end date.
	InactiveDays int `envconfig:"SALESBOARD_ABC_INACTIVE_DAYS" default:"30"`
	// EvolutionTopN caps how many articles the weekly trend series follows.
	EvolutionTopN int `envconfig:"SALESBOARD_ABC_EVOLUTION_TOP_N" default:"10"`
}

func (a AnalyticsConfig) validate() error {
	switch strings.ToLower(a.ValueBasis) {
	case ValueBasisNet, ValueBasisGross:
	default:
		return fmt.Errorf("invalid %s value %q (expected net or gross)", EnvABCValueBasis, a.ValueBasis)
	}
	if a.ClassAThreshold <= 0 || a.ClassAThreshold >= 1 {
		return fmt.Errorf("%s must be in (0,1)", EnvABCClassAThreshold)
	}
	if a.ClassBThreshold <= a.ClassAThreshold || a.ClassBThreshold >= 1 {
		return fmt.Errorf("%s must be greater than %s and below 1", EnvABCClassBThreshold, EnvABCClassAThreshold)
	}
	if a.EvolutionTopN <= 0 {
		return fmt.Errorf("%s must be positive", EnvABCEvolutionTopN)
	}
	return nil
}

// UseGross reports whether the gross amount feeds the value axis.
func (a AnalyticsConfig) UseGross() bool {
	return strings.EqualFold(a.ValueBasis, ValueBasisGross)
}

func (db *DBConfig) ensureDSN() error {
	if db.UseSQLite || db.DSN != "" {
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
