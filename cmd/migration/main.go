package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/joho/godotenv"

	"github.com/riskibarqy/betfinder/internal/platform/dsn"
	"github.com/riskibarqy/betfinder/internal/platform/logging"
)

type migrationConfig struct {
	DBURL                 string        `env:"DB_URL,required,notEmpty"`
	DisablePreparedBinary bool          `env:"DB_DISABLE_PREPARED_BINARY_RESULT" envDefault:"true"`
	MigrationsDir         string        `env:"MIGRATIONS_DIR"`
	MigrationsPath        string        `env:"MIGRATIONS_PATH"`
	LogLevel              logging.Level `env:"LOG_LEVEL" envDefault:"info"`
}

// migrateLogger forwards golang-migrate progress lines to the service logger.
type migrateLogger struct {
	logger *logging.Logger
}

func (l migrateLogger) Printf(format string, v ...any) {
	l.logger.Info(strings.TrimSpace(fmt.Sprintf(format, v...)))
}

func (l migrateLogger) Verbose() bool {
	return false
}

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(os.Stderr, "load .env: %v\n", err)
		os.Exit(1)
	}
	cfg, err := env.ParseAs[migrationConfig]()
	if err != nil {
		fmt.Fprintf(os.Stderr, "parse environment: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewJSON(cfg.LogLevel).Named("migration")
	defer func() { _ = logger.Sync() }()

	migrationsDir, err := resolveMigrationsDir(cfg.MigrationsDir, cfg.MigrationsPath)
	if err != nil {
		fatal(logger, "resolve migrations dir", err)
	}

	sourceURL := "file://" + filepath.ToSlash(migrationsDir)
	m, err := migrate.New(sourceURL, dsn.Normalize(cfg.DBURL, cfg.DisablePreparedBinary))
	if err != nil {
		fatal(logger, "create migrator", err)
	}
	m.Log = migrateLogger{logger: logger}
	defer closeMigrator(m, logger)

	cmd := strings.ToLower(strings.TrimSpace(os.Args[1]))
	switch cmd {
	case "up":
		handleMigrationErr(logger, m.Up())
		logger.Info("migrations applied", "source", sourceURL)
	case "down":
		steps, parseErr := parseSteps(os.Args[2:])
		if parseErr != nil {
			fatal(logger, "parse down steps", parseErr)
		}
		handleMigrationErr(logger, m.Steps(-steps))
		logger.Info("migrations rolled back", "steps", steps)
	case "version":
		version, dirty, versionErr := m.Version()
		if errors.Is(versionErr, migrate.ErrNilVersion) {
			fmt.Println("version: none")
			fmt.Println("dirty: false")
			return
		}
		if versionErr != nil {
			fatal(logger, "read version", versionErr)
		}
		fmt.Printf("version: %d\n", version)
		fmt.Printf("dirty: %t\n", dirty)
	case "force":
		if len(os.Args) < 3 {
			fatal(logger, "force requires a version argument", nil)
		}
		version, parseErr := parseVersion(os.Args[2])
		if parseErr != nil {
			fatal(logger, "parse version", parseErr)
		}
		if err := m.Force(version); err != nil {
			fatal(logger, "force version", err)
		}
		logger.Info("version forced", "version", version)
	case "goto", "migrate":
		if len(os.Args) < 3 {
			fatal(logger, "goto requires a target version argument", nil)
		}
		target, parseErr := parseTarget(os.Args[2])
		if parseErr != nil {
			fatal(logger, "parse target version", parseErr)
		}
		handleMigrationErr(logger, m.Migrate(target))
		logger.Info("migrated", "version", target)
	default:
		printUsage()
		os.Exit(2)
	}
}

func fatal(logger *logging.Logger, msg string, err error) {
	if err != nil {
		logger.Error(msg, "error", err)
	} else {
		logger.Error(msg)
	}
	_ = logger.Sync()
	os.Exit(1)
}

func parseSteps(args []string) (int, error) {
	if len(args) == 0 {
		return 1, nil
	}

	steps, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil {
		return 0, fmt.Errorf("invalid down steps %q: %w", args[0], err)
	}
	if steps <= 0 {
		return 0, fmt.Errorf("down steps must be > 0")
	}

	return steps, nil
}

func parseVersion(raw string) (int, error) {
	value, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid version %q: %w", raw, err)
	}
	if value < 0 {
		return 0, fmt.Errorf("version must be >= 0")
	}
	if value > int64(^uint(0)>>1) {
		return 0, fmt.Errorf("version is too large for this platform")
	}

	return int(value), nil
}

func parseTarget(raw string) (uint, error) {
	value, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid target version %q: %w", raw, err)
	}
	return uint(value), nil
}

func handleMigrationErr(logger *logging.Logger, err error) {
	if err == nil {
		return
	}
	if errors.Is(err, migrate.ErrNoChange) {
		logger.Info("no migration changes")
		return
	}
	fatal(logger, "run migration", err)
}

func closeMigrator(m *migrate.Migrate, logger *logging.Logger) {
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		logger.Warn("close migration source", "error", srcErr)
	}
	if dbErr != nil {
		logger.Warn("close migration db", "error", dbErr)
	}
}

func resolveMigrationsDir(configured ...string) (string, error) {
	candidates := append([]string{}, configured...)
	candidates = append(candidates, "./db/migrations", "/app/db/migrations")

	for _, candidate := range candidates {
		candidate = strings.TrimSpace(candidate)
		if candidate == "" {
			continue
		}
		abs, err := filepath.Abs(candidate)
		if err != nil {
			continue
		}
		info, err := os.Stat(abs)
		if err != nil || !info.IsDir() {
			continue
		}
		return abs, nil
	}

	return "", fmt.Errorf("migration directory not found (checked MIGRATIONS_DIR, MIGRATIONS_PATH, ./db/migrations, /app/db/migrations)")
}

func printUsage() {
	name := filepath.Base(os.Args[0])
	fmt.Fprintf(os.Stderr, "usage: %s <up|down|version|force|goto> [args]\n", name)
	fmt.Fprintln(os.Stderr, "examples:")
	fmt.Fprintf(os.Stderr, "  %s up\n", name)
	fmt.Fprintf(os.Stderr, "  %s down 1\n", name)
	fmt.Fprintf(os.Stderr, "  %s version\n", name)
	fmt.Fprintf(os.Stderr, "  %s force 1\n", name)
	fmt.Fprintf(os.Stderr, "  %s goto 1\n", name)
}
