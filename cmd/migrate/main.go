package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"net/url"
	"path/filepath"
	"strconv"

	"github.com/MuhamadAgungGumelar/venue-assistant/internal/shared/config"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// migrator is the part of *migrate.Migrate the commands use.
type migrator interface {
	Up() error
	Down() error
	Steps(n int) error
	Version() (uint, bool, error)
	Force(version int) error
}

func main() {
	var (
		module  string
		dir     string
		command string
	)
	flag.StringVar(&module, "module", "venue", "Migration set under the migrations dir")
	flag.StringVar(&dir, "dir", "migrations", "Migrations root directory")
	flag.StringVar(&command, "cmd", "up", "Migration command (up, down, steps N, version, force N)")
	flag.Parse()

	cfg := config.LoadConfig()
	if cfg.DatabaseURL == "" {
		log.Fatal("❌ DATABASE_URL is empty")
	}

	source := "file://" + filepath.ToSlash(filepath.Join(dir, module))
	log.Printf("🔄 Migrating %s from %s", maskDatabaseURL(cfg.DatabaseURL), source)

	m, err := migrate.New(source, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Failed to create migrate instance: %v", err)
	}
	defer m.Close()

	msg, err := run(m, command, flag.Args())
	if err != nil {
		log.Fatalf("❌ %s failed: %v", command, err)
	}
	log.Printf("✅ %s", msg)
}

// run executes one command and returns a line for the operator.
func run(m migrator, command string, args []string) (string, error) {
	switch command {
	case "up":
		if err := ignoreNoChange(m.Up()); err != nil {
			return "", err
		}
		return "migrations applied", nil

	case "down":
		if err := ignoreNoChange(m.Down()); err != nil {
			return "", err
		}
		return "migrations rolled back", nil

	case "steps":
		n, err := intArg(args)
		if err != nil {
			return "", err
		}
		if err := ignoreNoChange(m.Steps(n)); err != nil {
			return "", err
		}
		return fmt.Sprintf("moved %d steps", n), nil

	case "version":
		version, dirty, err := m.Version()
		if errors.Is(err, migrate.ErrNilVersion) {
			return "no migrations applied yet", nil
		}
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("current version: %d (dirty: %t)", version, dirty), nil

	case "force":
		v, err := intArg(args)
		if err != nil {
			return "", err
		}
		if err := m.Force(v); err != nil {
			return "", err
		}
		return fmt.Sprintf("forced version to %d", v), nil

	default:
		return "", fmt.Errorf("unknown command %q (use: up, down, steps, version, force)", command)
	}
}

func ignoreNoChange(err error) error {
	if errors.Is(err, migrate.ErrNoChange) {
		return nil
	}
	return err
}

func intArg(args []string) (int, error) {
	if len(args) < 1 {
		return 0, errors.New("a number argument is required")
	}
	n, err := strconv.Atoi(args[0])
	if err != nil {
		return 0, fmt.Errorf("invalid number %q", args[0])
	}
	return n, nil
}

// maskDatabaseURL hides the password in a database URL for logging
func maskDatabaseURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.User == nil {
		return "***"
	}
	if _, ok := u.User.Password(); ok {
		u.User = url.UserPassword(u.User.Username(), "***")
	}
	return u.String()
}
