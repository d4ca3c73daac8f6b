package config

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application level configuration aggregated from env/config files.
type Config struct {
	Server struct {
		Addr string
	}
	Log struct {
		Level string
	}
	Database struct {
		Driver string
		DSN    string
	}
	Session struct {
		Secret     string
		TTLMinutes int
		CookieName string
		Secure     bool
		Backend    string
	}
	Redis struct {
		Addr     string
		Password string
		DB       int
		Prefix   string
	}
	Auth struct {
		AdminSecret string
	}
	Web struct {
		PublicDir string
		ViewsDir  string
	}
	Storage struct {
		Bucket    string
		KeyPrefix string
		Region    string
		Endpoint  string
	}
	AWS struct {
		Profile string
	}
	Archive struct {
		MaxConcurrent int
	}
	Metrics struct {
		Enabled bool
	}
}

// SessionTTL returns the session lifetime.
func (c Config) SessionTTL() time.Duration {
	if c.Session.TTLMinutes <= 0 {
		return 24 * time.Hour
	}
	return time.Duration(c.Session.TTLMinutes) * time.Minute
}

// Validate reports settings the server cannot run without.
func (c Config) Validate() error {
	if strings.TrimSpace(c.Session.Secret) == "" {
		return fmt.Errorf("session secret is required")
	}
	switch c.Database.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	switch c.Session.Backend {
	case "memory":
	case "redis":
		if c.Redis.Addr == "" {
			return fmt.Errorf("redis address is required for the redis session backend")
		}
	default:
		return fmt.Errorf("unsupported session backend %q", c.Session.Backend)
	}
	return nil
}

// Load reads configuration from environment variables and optional config files.
func Load() (Config, error) {
	loadDotEnv(".env")

	v := viper.New()
	v.SetEnvPrefix("SOFTVEDA")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	v.SetConfigName("config")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // optional file

	return decode(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", "0.0.0.0:3000")
	v.SetDefault("log.level", "info")
	v.SetDefault("database.driver", "sqlite")
	v.SetDefault("database.dsn", "data/softveda.db")
	v.SetDefault("session.secret", "")
	v.SetDefault("session.ttlminutes", 24*60)
	v.SetDefault("session.cookiename", "softveda.sid")
	v.SetDefault("session.secure", false)
	v.SetDefault("session.backend", "memory")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.prefix", "softveda")
	v.SetDefault("auth.adminsecret", "")
	v.SetDefault("web.publicdir", "web/public")
	v.SetDefault("web.viewsdir", "web/views")
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.keyprefix", "contacts")
	v.SetDefault("storage.region", "us-east-1")
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("aws.profile", "")
	v.SetDefault("archive.maxconcurrent", 2)
	v.SetDefault("metrics.enabled", true)
}

func decode(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.Database.Driver = strings.ToLower(strings.TrimSpace(cfg.Database.Driver))
	cfg.Session.Backend = strings.ToLower(strings.TrimSpace(cfg.Session.Backend))
	return cfg, nil
}

func loadDotEnv(path string) {
	file, err := os.Open(path)
	if err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		partsIndex := strings.Index(line, "=")
		if partsIndex <= 0 {
			continue
		}

		key := strings.TrimSpace(line[:partsIndex])
		value := strings.TrimSpace(line[partsIndex+1:])
		value = strings.Trim(value, `"'`)
		if key == "" {
			continue
		}

		if _, exists := os.LookupEnv(key); !exists {
			_ = os.Setenv(key, value)
		}
	}
}
