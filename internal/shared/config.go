package shared

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Database struct {
		Driver string `yaml:"driver"` // "sqlite" (default)
		DSN    string `yaml:"dsn"`    // "./datalint.db"
	} `yaml:"database"`

	API struct {
		Addr           string   `yaml:"addr"`            // ":8080"
		AllowedOrigins []string `yaml:"allowed_origins"` // ["*"]
		SessionHours   int      `yaml:"session_hours"`   // 12
	} `yaml:"api"`

	Reporting struct {
		OutDir string `yaml:"out_dir"` // "./reports"
	} `yaml:"reporting"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig selects the slog handler and its threshold.
type LoggingConfig struct {
	Format string `yaml:"format"` // "json"|"text"
	Level  string `yaml:"level"`  // "info"|"debug"|"warn"|"error"
}

func DefaultConfig() Config {
	var c Config
	c.Database.Driver = "sqlite"
	c.Database.DSN = "./datalint.db"
	c.API.Addr = ":8080"
	c.API.AllowedOrigins = []string{"*"}
	c.API.SessionHours = 12
	c.Reporting.OutDir = "./reports"
	c.Logging.Format = "json"
	c.Logging.Level = "info"
	return c
}

func LoadConfig(path string) (Config, error) {
	c := DefaultConfig()
	if path != "" {
		if b, err := os.ReadFile(path); err == nil {
			_ = yaml.Unmarshal(b, &c)
		}
	}
	// Env overrides (simple, explicit)
	if v := os.Getenv("DATALINT_DB_DSN"); v != "" {
		c.Database.DSN = v
	}
	if v := os.Getenv("DATALINT_API_ADDR"); v != "" {
		c.API.Addr = v
	}
	if v := os.Getenv("DATALINT_SESSION_HOURS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.API.SessionHours = n
		}
	}
	if v := os.Getenv("DATALINT_LOG_FORMAT"); v != "" {
		c.Logging.Format = v
	}
	if v := os.Getenv("DATALINT_LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := os.Getenv("DATALINT_OUT_DIR"); v != "" {
		c.Reporting.OutDir = v
	}
	return c, nil
}
