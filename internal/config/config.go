package config

import (
	"errors"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix  = "ILINE"
	ConfigName = "iline-employees"

	DefaultEmployeeCount = 50000
	DefaultPageSize      = 20
	MaxBatchSize         = 10000
)

type Config struct {
	DBName   string
	User     string
	Password string
	Host     string
	Port     int
	SSLMode  string
	DSN      string

	EmployeeCount int
	PageSize      int
	BatchSize     int
	Seed          int64
	Progress      bool

	HTTPPort string
	Verbose  bool
}

// DatabaseURL returns the explicit dsn when set, otherwise a postgres URL
// assembled from the individual connection options.
func (c Config) DatabaseURL() string {
	if c.DSN != "" {
		return c.DSN
	}

	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:     "/" + c.DBName,
		RawQuery: url.Values{"sslmode": []string{c.SSLMode}}.Encode(),
	}
	if c.Password == "" {
		u.User = url.User(c.User)
	}
	return u.String()
}

func SetDefaults(v *viper.Viper) {
	v.SetDefault("dbname", "test_database")
	v.SetDefault("user", "postgres")
	v.SetDefault("password", "")
	v.SetDefault("host", "localhost")
	v.SetDefault("port", 5432)
	v.SetDefault("sslmode", "disable")
	v.SetDefault("dsn", "")
	v.SetDefault("employee_count", DefaultEmployeeCount)
	v.SetDefault("page_size", DefaultPageSize)
	v.SetDefault("batch_size", 1)
	v.SetDefault("seed", 0)
	v.SetDefault("progress", true)
	v.SetDefault("http_port", "8080")
	v.SetDefault("verbose", false)
}

// BindFlags registers the connection and tuning flags on fs and binds each of
// them to its viper key.
func BindFlags(fs *pflag.FlagSet, v *viper.Viper) error {
	fs.String("dbname", "test_database", "database name")
	fs.StringP("user", "u", "postgres", "database user")
	fs.String("password", "", "database password")
	fs.String("host", "localhost", "database host")
	fs.IntP("port", "p", 5432, "database port")
	fs.String("sslmode", "disable", "postgres sslmode")
	fs.String("dsn", "", "full database URL, overrides the individual connection flags")
	fs.IntP("employee-count", "n", DefaultEmployeeCount, "number of employees to seed")
	fs.Int("page-size", DefaultPageSize, "rows per page in the listing")
	fs.Int("batch-size", 1, "rows per insert statement while seeding")
	fs.Int64("seed", 0, "random seed for generated data (0 = time based)")
	fs.Bool("progress", true, "show a progress bar while seeding")
	fs.String("http-port", "8080", "listen port for the serve command")
	fs.BoolP("verbose", "v", false, "enable debug logging")

	var bindErr error
	fs.VisitAll(func(f *pflag.Flag) {
		if bindErr != nil {
			return
		}
		key := strings.ReplaceAll(f.Name, "-", "_")
		if err := v.BindPFlag(key, f); err != nil {
			bindErr = fmt.Errorf("bind flag %s: %w", f.Name, err)
		}
	})
	return bindErr
}

// InitViper wires defaults, the optional config file and the environment.
// An empty cfgFile searches ./configs and the home directory.
func InitViper(v *viper.Viper, cfgFile string) error {
	SetDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath("configs")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		v.SetConfigName(ConfigName)
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile == "" && errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	return nil
}

func Load(v *viper.Viper) (Config, error) {
	cfg := Config{
		DBName:        strings.TrimSpace(v.GetString("dbname")),
		User:          strings.TrimSpace(v.GetString("user")),
		Password:      v.GetString("password"),
		Host:          strings.TrimSpace(v.GetString("host")),
		Port:          v.GetInt("port"),
		SSLMode:       strings.TrimSpace(v.GetString("sslmode")),
		DSN:           strings.TrimSpace(v.GetString("dsn")),
		EmployeeCount: v.GetInt("employee_count"),
		PageSize:      v.GetInt("page_size"),
		BatchSize:     v.GetInt("batch_size"),
		Seed:          v.GetInt64("seed"),
		Progress:      v.GetBool("progress"),
		HTTPPort:      strings.TrimSpace(v.GetString("http_port")),
		Verbose:       v.GetBool("verbose"),
	}

	if cfg.DSN == "" {
		if cfg.DBName == "" {
			return Config{}, fmt.Errorf("dbname required")
		}
		if cfg.User == "" {
			return Config{}, fmt.Errorf("user required")
		}
		if cfg.Host == "" {
			return Config{}, fmt.Errorf("host required")
		}
		if cfg.Port < 1 || cfg.Port > 65535 {
			return Config{}, fmt.Errorf("port must be between 1 and 65535")
		}
		if cfg.SSLMode == "" {
			cfg.SSLMode = "disable"
		}
	}
	if cfg.EmployeeCount < 1 {
		return Config{}, fmt.Errorf("employee_count must be at least 1")
	}
	if cfg.PageSize < 1 {
		return Config{}, fmt.Errorf("page_size must be at least 1")
	}
	if cfg.BatchSize < 1 || cfg.BatchSize > MaxBatchSize {
		return Config{}, fmt.Errorf("batch_size must be between 1 and %d", MaxBatchSize)
	}
	if cfg.HTTPPort == "" {
		cfg.HTTPPort = "8080"
	}

	return cfg, nil
}
