package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Pricing      PricingConfig
	Catalog      CatalogConfig
	Generation   GenerationConfig
	Client       ClientConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if !cfg.FeatureFlags.UseSQLite {
		if err := cfg.DB.ensureDSN(); err != nil {
			return nil, err
		}
	}
	if err := cfg.Pricing.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string   `envconfig:"BARCODEGEN_APP_ENV" required:"true"`
	Port         string   `envconfig:"BARCODEGEN_APP_PORT" required:"true"`
	LogLevel     string   `envconfig:"BARCODEGEN_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"BARCODEGEN_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"BARCODEGEN_CORS_ORIGINS" default:"http://localhost:3000"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"BARCODEGEN_DB_DSN"`
	Driver string `envconfig:"BARCODEGEN_DB_DRIVER" default:"postgres"`

	Host     string `envconfig:"BARCODEGEN_DB_HOST"`
	Port     int    `envconfig:"BARCODEGEN_DB_PORT" default:"5432"`
	User     string `envconfig:"BARCODEGEN_DB_USER"`
	Password string `envconfig:"BARCODEGEN_DB_PASSWORD"`
	Name     string `envconfig:"BARCODEGEN_DB_NAME"`
	SSLMode  string `envconfig:"BARCODEGEN_DB_SSLMODE" default:"disable"`

	SQLitePath string `envconfig:"BARCODEGEN_SQLITE_PATH" default:"barcodegen.db"`

	MaxOpenConns    int           `envconfig:"BARCODEGEN_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"BARCODEGEN_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"BARCODEGEN_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BARCODEGEN_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"BARCODEGEN_REDIS_URL"`
	Address      string        `envconfig:"BARCODEGEN_REDIS_ADDR"`
	Password     string        `envconfig:"BARCODEGEN_REDIS_PASSWORD"`
	DB           int           `envconfig:"BARCODEGEN_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BARCODEGEN_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BARCODEGEN_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BARCODEGEN_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BARCODEGEN_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BARCODEGEN_REDIS_WRITE_TIMEOUT" default:"5s"`

	QuoteCacheTTL time.Duration `envconfig:"BARCODEGEN_REDIS_QUOTE_CACHE_TTL" default:"10m"`
}

// Enabled reports whether a Redis endpoint was configured at all. The quote
// cache degrades to a pass-through when it is absent.
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Address != ""
}

type PricingConfig struct {
	HomeState      string          `envconfig:"BARCODEGEN_PRICING_HOME_STATE" default:"gujarat"`
	TaxRatePercent decimal.Decimal `envconfig:"BARCODEGEN_PRICING_TAX_RATE_PERCENT" default:"18"`
}

func (p PricingConfig) validate() error {
	if strings.TrimSpace(p.HomeState) == "" {
		return fmt.Errorf("pricing home state is required")
	}
	if p.TaxRatePercent.IsNegative() {
		return fmt.Errorf("pricing tax rate must be non-negative")
	}
	return nil
}

// TaxRate returns the configured percentage as a fraction (18 -> 0.18).
func (p PricingConfig) TaxRate() decimal.Decimal {
	return p.TaxRatePercent.Div(decimal.NewFromInt(100))
}

type CatalogConfig struct {
	Currency string `envconfig:"BARCODEGEN_CATALOG_CURRENCY" default:"INR"`
}

type GenerationConfig struct {
	WorkbookSheet string `envconfig:"BARCODEGEN_GENERATION_SHEET" default:"Barcode_Data"`
}

// ClientConfig drives cmd/orderctl, the workflow session binary.
type ClientConfig struct {
	BaseURL      string        `envconfig:"BARCODEGEN_CLIENT_BASE_URL" default:"http://localhost:8080"`
	Timeout      time.Duration `envconfig:"BARCODEGEN_CLIENT_TIMEOUT" default:"30s"`
	DownloadDir  string        `envconfig:"BARCODEGEN_CLIENT_DOWNLOAD_DIR" default:"."`
	QuoteRetries uint64        `envconfig:"BARCODEGEN_CLIENT_QUOTE_RETRIES" default:"3"`
	QuoteBackoff time.Duration `envconfig:"BARCODEGEN_CLIENT_QUOTE_BACKOFF" default:"200ms"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"BARCODEGEN_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"BARCODEGEN_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	values := map[string]string{
		EnvDBHost: db.Host,
		EnvDBUser: db.User,
		EnvDBName: db.Name,
	}
	for _, env := range requiredDBEnvVars {
		if values[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.User)
	if db.Password != "" {
		userInfo = url.UserPassword(db.User, db.Password)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.Host, db.Port),
		Path:   db.Name,
	}

	if db.SSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.SSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
