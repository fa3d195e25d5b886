package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"

	DefaultPort      = 3318
	DefaultSQLiteURL = "file:polls.db"
	defaultEnvFile   = ".env"
)

type Config struct {
	Port          int
	DatabaseURL   string
	DatabaseType  string
	SeedQuestions int
	EnvFile       string
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("quickly-polls", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Database type (sqlite or postgres)")
	fs.IntVar(&cfg.SeedQuestions, "seed", -1, "Number of demo questions to create at startup")
	fs.StringVar(&cfg.EnvFile, "env", "", "Path to a .env file")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	// .env values never override variables that are already set
	if err := loadEnvFile(&cfg); err != nil {
		return Config{}, err
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
	if cfg.Port < 1 || cfg.Port > 65535 {
		return Config{}, fmt.Errorf("port %d out of range", cfg.Port)
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = DatabaseSQLite
		}
	}
	if cfg.DatabaseType != DatabaseSQLite && cfg.DatabaseType != DatabasePostgres {
		return Config{}, fmt.Errorf("unsupported database type %q (use sqlite or postgres)", cfg.DatabaseType)
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" {
		if cfg.DatabaseType == DatabasePostgres {
			return Config{}, errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = DefaultSQLiteURL
	}

	if cfg.SeedQuestions < 0 {
		cfg.SeedQuestions = 0
		if seedStr := os.Getenv("SEED_QUESTIONS"); seedStr != "" {
			n, err := strconv.Atoi(seedStr)
			if err != nil || n < 0 {
				return Config{}, errors.New("invalid SEED_QUESTIONS env variable")
			}
			cfg.SeedQuestions = n
		}
	}

	return cfg, nil
}

// loadEnvFile loads -env, then ENV_FILE, then ./.env. Only an explicitly
// named file is required to exist.
func loadEnvFile(cfg *Config) error {
	path := cfg.EnvFile
	if path == "" {
		path = os.Getenv("ENV_FILE")
	}
	explicit := path != ""
	if !explicit {
		path = defaultEnvFile
	}

	err := godotenv.Load(path)
	if err == nil {
		cfg.EnvFile = path
		return nil
	}
	if !explicit && errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return fmt.Errorf("failed to load env file %s: %w", path, err)
}
