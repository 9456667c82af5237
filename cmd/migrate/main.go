package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"strconv"

	"github.com/collegeconnect/suggester-backend/internal/config"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
)

// migrate applies the schema under migrations/ to the configured database.
// Commands: up, down, step <n>, version, force <version>.

func main() {
	var migrationDir string
	flag.StringVar(&migrationDir, "path", "migrations", "Path to migration files")
	flag.Parse()

	cfg := config.Load()
	if cfg.DatabaseURL == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	m, err := migrate.New("file://"+migrationDir, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Migration failed to initialize: %v", err)
	}

	args := flag.Args()
	if len(args) < 1 {
		printUsage()
		return
	}

	switch args[0] {
	case "up":
		run(m.Up, "Migrated up successfully")
	case "down":
		run(m.Down, "Migrated down successfully")
	case "step":
		n := argInt(args, "step requires a step count")
		run(func() error { return m.Steps(n) }, fmt.Sprintf("Stepped %d", n))
	case "version":
		version, dirty, err := m.Version()
		if err != nil {
			log.Fatalf("Version failed: %v", err)
		}
		fmt.Printf("Version: %d, Dirty: %t\n", version, dirty)
	case "force":
		v := argInt(args, "force requires a version argument")
		if err := m.Force(v); err != nil {
			log.Fatalf("Force failed: %v", err)
		}
		fmt.Printf("Forced version to %d\n", v)
	default:
		printUsage()
	}
}

func run(fn func() error, ok string) {
	if err := fn(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		log.Fatalf("Migration failed: %v", err)
	}
	fmt.Println(ok)
}

func argInt(args []string, missing string) int {
	if len(args) < 2 {
		log.Fatal(missing)
	}
	v, err := strconv.Atoi(args[1])
	if err != nil {
		log.Fatalf("Invalid number %q: %v", args[1], err)
	}
	return v
}

func printUsage() {
	fmt.Println("Usage: migrate [flags] <command>")
	fmt.Println("Commands: up, down, step <n>, version, force <version>")
	fmt.Println("Flags:")
	flag.PrintDefaults()
}
