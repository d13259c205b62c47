package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the application configuration read from the environment or a .env file.
//
// Example .env:
//
//	SERVER_PORT=8080
//	B3_STORE_ENABLED=true
//	POSTGRES_HOST=localhost
//	POSTGRES_DB=b3dash
//	CACHE_TTL=1h
//	TICKERS=^BVSP,VALE3.SA,PETR4.SA
type Config struct {
	Server    ServerConfig
	Postgres  PostgresConfig
	Store     StoreConfig
	Cache     CacheConfig
	HTTP      HTTPConfig
	Sources   SourcesConfig
	Dashboard DashboardConfig
	Log       LogConfig
}

type ServerConfig struct {
	Port               string
	RateLimitPerMinute int // 0 disables the limiter
}

// PostgresConfig is only required when the local B3 store is enabled.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string
}

// StoreConfig toggles the local B3 trades store used as a bar fallback.
type StoreConfig struct {
	Enabled bool
}

type CacheConfig struct {
	TTL        time.Duration
	PurgeCron  string
	WarmupCron string // empty disables warm-up
}

// HTTPConfig tunes the outbound client used by the remote providers.
type HTTPConfig struct {
	Timeout time.Duration
	Retries int
}

type SourcesConfig struct {
	BCBSGSURL  string
	BCBPTAXURL string
	YahooURL   string
}

type DashboardConfig struct {
	DefaultStart time.Time
	Tickers      []string
	Currencies   []string
}

type LogConfig struct {
	Level  string
	Pretty bool
}

// Load reads configuration with precedence defaults < envFile < environment.
// envFile may be empty, in which case ".env" is tried. A missing file is not an error.
func Load(envFile string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	if envFile == "" {
		envFile = ".env"
	}
	v.SetConfigFile(envFile)
	v.SetConfigType("env")
	_ = v.ReadInConfig()

	v.AutomaticEnv()

	cfg := Config{
		Server: ServerConfig{
			Port:               v.GetString("SERVER_PORT"),
			RateLimitPerMinute: v.GetInt("RATE_LIMIT_PER_MINUTE"),
		},
		Postgres: PostgresConfig{
			Host:     v.GetString("POSTGRES_HOST"),
			Port:     v.GetInt("POSTGRES_PORT"),
			User:     v.GetString("POSTGRES_USER"),
			Password: v.GetString("POSTGRES_PASSWORD"),
			DBName:   v.GetString("POSTGRES_DB"),
			SSLMode:  v.GetString("POSTGRES_SSLMODE"),
		},
		Store: StoreConfig{Enabled: v.GetBool("B3_STORE_ENABLED")},
		Cache: CacheConfig{
			PurgeCron:  v.GetString("CACHE_PURGE_CRON"),
			WarmupCron: v.GetString("WARMUP_CRON"),
		},
		HTTP: HTTPConfig{Retries: v.GetInt("HTTP_RETRIES")},
		Sources: SourcesConfig{
			BCBSGSURL:  v.GetString("BCB_SGS_URL"),
			BCBPTAXURL: v.GetString("BCB_PTAX_URL"),
			YahooURL:   v.GetString("YAHOO_URL"),
		},
		Dashboard: DashboardConfig{
			Tickers:    splitList(v.GetString("TICKERS")),
			Currencies: splitList(strings.ToUpper(v.GetString("CURRENCIES"))),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Pretty: v.GetBool("LOG_PRETTY"),
		},
	}

	var err error
	if cfg.Cache.TTL, err = parseDuration(v.GetString("CACHE_TTL")); err != nil {
		return cfg, fmt.Errorf("CACHE_TTL: %w", err)
	}
	if cfg.HTTP.Timeout, err = parseDuration(v.GetString("HTTP_TIMEOUT")); err != nil {
		return cfg, fmt.Errorf("HTTP_TIMEOUT: %w", err)
	}
	if cfg.Dashboard.DefaultStart, err = time.Parse("2006-01-02", v.GetString("DEFAULT_START")); err != nil {
		return cfg, fmt.Errorf("DEFAULT_START: %w", err)
	}

	cfg.Postgres.URL = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		cfg.Postgres.User,
		cfg.Postgres.Password,
		cfg.Postgres.Host,
		cfg.Postgres.Port,
		cfg.Postgres.DBName,
		cfg.Postgres.SSLMode,
	)

	return cfg, cfg.Validate()
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("RATE_LIMIT_PER_MINUTE", 120)

	v.SetDefault("B3_STORE_ENABLED", false)
	v.SetDefault("POSTGRES_HOST", "localhost")
	v.SetDefault("POSTGRES_PORT", 5432)
	v.SetDefault("POSTGRES_USER", "postgres")
	v.SetDefault("POSTGRES_PASSWORD", "postgres")
	v.SetDefault("POSTGRES_DB", "b3dash")
	v.SetDefault("POSTGRES_SSLMODE", "disable")

	v.SetDefault("CACHE_TTL", "1h")
	v.SetDefault("CACHE_PURGE_CRON", "@every 10m")
	v.SetDefault("WARMUP_CRON", "0 7 * * 1-5")

	v.SetDefault("HTTP_TIMEOUT", "30s")
	v.SetDefault("HTTP_RETRIES", 2)

	v.SetDefault("BCB_SGS_URL", "https://api.bcb.gov.br/dados/serie/bcdata.sgs.%d/dados")
	v.SetDefault("BCB_PTAX_URL", "https://olinda.bcb.gov.br/olinda/servico/PTAX/versao/v1/odata/"+
		"CotacaoMoedaPeriodo(moeda=@moeda,dataInicial=@dataInicial,dataFinalCotacao=@dataFinalCotacao)")
	v.SetDefault("YAHOO_URL", "https://query1.finance.yahoo.com/v8/finance/chart/")

	v.SetDefault("DEFAULT_START", "2024-01-01")
	v.SetDefault("TICKERS", "^BVSP,VALE3.SA,PETR4.SA,PRIO3.SA,WEGE3.SA")
	v.SetDefault("CURRENCIES", "USD,EUR,GBP,CHF,CAD")

	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_PRETTY", false)
}

// Validate reports every missing or out of range setting at once.
func (c Config) Validate() error {
	var problems []string

	if c.Server.Port == "" {
		problems = append(problems, "SERVER_PORT is required")
	}
	if c.Server.RateLimitPerMinute < 0 {
		problems = append(problems, "RATE_LIMIT_PER_MINUTE must not be negative")
	}
	if c.Cache.TTL <= 0 {
		problems = append(problems, "CACHE_TTL must be positive")
	}
	if c.HTTP.Timeout <= 0 {
		problems = append(problems, "HTTP_TIMEOUT must be positive")
	}
	if c.HTTP.Retries < 0 {
		problems = append(problems, "HTTP_RETRIES must not be negative")
	}
	if !strings.Contains(c.Sources.BCBSGSURL, "%d") {
		problems = append(problems, "BCB_SGS_URL must contain %d for the series code")
	}
	if c.Sources.BCBPTAXURL == "" || c.Sources.YahooURL == "" {
		problems = append(problems, "BCB_PTAX_URL and YAHOO_URL are required")
	}
	if len(c.Dashboard.Tickers) == 0 {
		problems = append(problems, "TICKERS must list at least one ticker")
	}
	if len(c.Dashboard.Currencies) == 0 {
		problems = append(problems, "CURRENCIES must list at least one currency")
	}

	if c.Store.Enabled {
		var missing []string
		if c.Postgres.Host == "" {
			missing = append(missing, "POSTGRES_HOST")
		}
		if c.Postgres.Port == 0 {
			missing = append(missing, "POSTGRES_PORT")
		}
		if c.Postgres.User == "" {
			missing = append(missing, "POSTGRES_USER")
		}
		if c.Postgres.Password == "" {
			missing = append(missing, "POSTGRES_PASSWORD")
		}
		if c.Postgres.DBName == "" {
			missing = append(missing, "POSTGRES_DB")
		}
		if len(missing) > 0 {
			problems = append(problems, "B3 store enabled but missing "+strings.Join(missing, ", "))
		}
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}

// parseDuration accepts Go durations ("90s", "1h") or a bare number of seconds.
func parseDuration(s string) (time.Duration, error) {
	s = strings.TrimSpace(s)
	if n, err := strconv.Atoi(s); err == nil {
		return time.Duration(n) * time.Second, nil
	}
	return time.ParseDuration(s)
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
