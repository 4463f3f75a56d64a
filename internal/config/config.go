package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"
)

// EnvPrefix is stripped from environment variables; a double underscore
// separates sections, e.g. MYENG_HTTP__READ_TIMEOUT.
const EnvPrefix = "MYENG_"

// Config holds application configuration.
type Config struct {
	Env    string `koanf:"env" validate:"required"` // local, production
	DB     DB     `koanf:"db"`
	HTTP   HTTP   `koanf:"http"`
	Import Import `koanf:"import"`
}

// DB configures the SQLite store.
type DB struct {
	Path        string        `koanf:"path" validate:"required"`
	BusyTimeout time.Duration `koanf:"busy_timeout" validate:"gte=0"`
}

// HTTP configures the listener and the API surface.
type HTTP struct {
	Addr            string        `koanf:"addr" validate:"required"`
	Prefix          string        `koanf:"prefix"`
	ReadTimeout     time.Duration `koanf:"read_timeout" validate:"gt=0"`
	WriteTimeout    time.Duration `koanf:"write_timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
	// StrictStatus maps logical failures to 404/409 instead of 200.
	StrictStatus bool `koanf:"strict_status"`
}

// Import configures the optional question-bank import run at startup.
type Import struct {
	Source   string `koanf:"source"`
	ReposDir string `koanf:"repos_dir" validate:"required"`
}

// flagKeys maps command-line flag names to configuration keys.
var flagKeys = map[string]string{
	"env":              "env",
	"db":               "db.path",
	"db-busy-timeout":  "db.busy_timeout",
	"addr":             "http.addr",
	"prefix":           "http.prefix",
	"read-timeout":     "http.read_timeout",
	"write-timeout":    "http.write_timeout",
	"shutdown-timeout": "http.shutdown_timeout",
	"strict-status":    "http.strict_status",
	"import":           "import.source",
	"repos-dir":        "import.repos_dir",
}

// NewFlagSet declares every flag with its default value.
func NewFlagSet(name string) *pflag.FlagSet {
	flags := pflag.NewFlagSet(name, pflag.ContinueOnError)
	flags.String("config", "config.yaml", "Path to an optional YAML config file")
	flags.String("env", "local", "Application environment (local, production)")
	flags.String("db", "baza.db", "Path to the SQLite database file")
	flags.Duration("db-busy-timeout", 5*time.Second, "How long a write waits for the database lock")
	flags.String("addr", ":5000", "HTTP listen address")
	flags.String("prefix", "/api", "Path prefix for the API routes")
	flags.Duration("read-timeout", 15*time.Second, "HTTP read timeout")
	flags.Duration("write-timeout", 15*time.Second, "HTTP write timeout")
	flags.Duration("shutdown-timeout", 10*time.Second, "Grace period for in-flight requests on shutdown")
	flags.Bool("strict-status", false, "Report not-found and conflicts with 404/409 status codes")
	flags.String("import", "", "Directory or git URL of a question bank to import at startup")
	flags.String("repos-dir", "repos", "Where git question banks are cloned")
	return flags
}

// Load resolves configuration from, in increasing priority: flag defaults,
// the YAML file, environment variables (a .env file is read first when
// present) and flags set on the command line.
func Load(args []string) (*Config, error) {
	flags := NewFlagSet("myeng")
	if err := flags.Parse(args); err != nil {
		return nil, fmt.Errorf("error parsing flags: %w", err)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	k := koanf.New(".")

	path, _ := flags.GetString("config")
	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading config file: %w", err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("error loading environment: %w", err)
	}

	if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, flagKey(flags)), nil); err != nil {
		return nil, fmt.Errorf("error loading flags: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	cfg.HTTP.Prefix = strings.TrimSuffix(cfg.HTTP.Prefix, "/")

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// flagKey renames flags to their configuration keys. Flags without a key,
// like --config, are skipped.
func flagKey(flags *pflag.FlagSet) func(f *pflag.Flag) (string, interface{}) {
	return func(f *pflag.Flag) (string, interface{}) {
		key, ok := flagKeys[f.Name]
		if !ok {
			return "", nil
		}
		return key, posflag.FlagVal(flags, f)
	}
}
