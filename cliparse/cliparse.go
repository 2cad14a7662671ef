package cliparse

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPort           = 3318
	DefaultDatabaseType   = "sqlite"
	DefaultEventName      = "SIH 2025"
	DefaultRequestTimeout = 10 * time.Second
)

// Draft cache backends
const (
	DraftCacheSQL    = "sql"
	DraftCacheMemory = "memory"
)

type Config struct {
	Port            int
	DatabaseURL     string
	DatabaseType    string
	AdminKey        string
	EventName       string
	EventFile       string
	StrictTeamNames bool
	RequestTimeout  time.Duration
	DraftCache      string
}

// EventFile is the optional YAML file with per-event settings
type EventFile struct {
	EventName       string        `yaml:"event_name"`
	StrictTeamNames *bool         `yaml:"strict_team_names"`
	RequestTimeout  time.Duration `yaml:"request_timeout"`
}

// RegisterFlags binds the config flags to a flag set
func RegisterFlags(flags *pflag.FlagSet, cfg *Config) {
	// Network config (can be CLI args or env)
	flags.IntVarP(&cfg.Port, "port", "p", 0, "Server port")
	flags.StringVarP(&cfg.DatabaseURL, "database-url", "d", "", "Database URL")
	flags.StringVarP(&cfg.DatabaseType, "database-type", "t", "", "Database type (sqlite or postgres)")

	// Secrets (prefer env variables, but allow CLI for dev)
	flags.StringVar(&cfg.AdminKey, "admin-key", "", "Admin dashboard key (prefer env)")

	flags.StringVar(&cfg.EventName, "event-name", "", "Event name used in exports")
	flags.StringVar(&cfg.EventFile, "event-file", "", "YAML file with event settings")
	flags.BoolVar(&cfg.StrictTeamNames, "strict-team-names", false, "Enforce unique team names in storage")
	flags.DurationVar(&cfg.RequestTimeout, "request-timeout", 0, "Timeout for store calls")
	flags.StringVar(&cfg.DraftCache, "draft-cache", "", "Draft cache backend (sql or memory)")
}

// ParseFlags validates flags and sets port number
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	flags := pflag.NewFlagSet("regdesk", pflag.ContinueOnError)
	RegisterFlags(flags, &cfg)

	if err := flags.Parse(args); err != nil {
		return Config{}, err
	}

	return Resolve(flags, cfg)
}

// Resolve fills unset flags from the environment, then the event file,
// then defaults. flags is consulted only for boolean flags.
func Resolve(flags *pflag.FlagSet, cfg Config) (Config, error) {
	if cfg.EventFile == "" {
		cfg.EventFile = os.Getenv("EVENT_FILE")
	}
	var event EventFile
	if cfg.EventFile != "" {
		var err error
		event, err = LoadEventFile(cfg.EventFile)
		if err != nil {
			return Config{}, err
		}
	}

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = DefaultPort
		}
	}
	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DefaultDatabaseType
		}
	}
	if cfg.DatabaseType != "sqlite" && cfg.DatabaseType != "postgres" {
		return Config{}, fmt.Errorf("invalid database type %q (sqlite or postgres)", cfg.DatabaseType)
	}

	// Admin routes stay disabled without a key
	if cfg.AdminKey == "" {
		cfg.AdminKey = os.Getenv("ADMIN_KEY")
	}

	if cfg.EventName == "" {
		cfg.EventName = os.Getenv("EVENT_NAME")
	}
	if cfg.EventName == "" {
		cfg.EventName = event.EventName
	}
	if cfg.EventName == "" {
		cfg.EventName = DefaultEventName
	}

	if flags == nil || !flags.Changed("strict-team-names") {
		if v := os.Getenv("STRICT_TEAM_NAMES"); v != "" {
			strict, err := strconv.ParseBool(v)
			if err != nil {
				return Config{}, errors.New("invalid STRICT_TEAM_NAMES env variable")
			}
			cfg.StrictTeamNames = strict
		} else if event.StrictTeamNames != nil {
			cfg.StrictTeamNames = *event.StrictTeamNames
		}
	}

	if cfg.RequestTimeout == 0 {
		if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
			d, err := time.ParseDuration(v)
			if err != nil {
				return Config{}, errors.New("invalid REQUEST_TIMEOUT env variable")
			}
			cfg.RequestTimeout = d
		} else if event.RequestTimeout > 0 {
			cfg.RequestTimeout = event.RequestTimeout
		} else {
			cfg.RequestTimeout = DefaultRequestTimeout
		}
	}

	if cfg.DraftCache == "" {
		cfg.DraftCache = os.Getenv("DRAFT_CACHE")
		if cfg.DraftCache == "" {
			cfg.DraftCache = DraftCacheSQL
		}
	}
	if cfg.DraftCache != DraftCacheSQL && cfg.DraftCache != DraftCacheMemory {
		return Config{}, fmt.Errorf("invalid draft cache %q (sql or memory)", cfg.DraftCache)
	}

	return cfg, nil
}

// LoadEventFile reads the YAML event settings
func LoadEventFile(path string) (EventFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return EventFile{}, fmt.Errorf("failed to read event file: %w", err)
	}

	var event EventFile
	if err := yaml.Unmarshal(data, &event); err != nil {
		return EventFile{}, fmt.Errorf("failed to parse event file %s: %w", path, err)
	}
	return event, nil
}

// LoadDotEnv loads variables from a .env file. A missing file is not an error.
// Variables already set in the environment win.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("failed to load %s: %w", path, err)
	}
	return nil
}
