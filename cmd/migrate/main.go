package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"

	"content_plan_bot/migrations"
)

func main() {
	dbPath := flag.String("db", envOrDefault("DATABASE_PATH", "./data/bot.db"), "path to sqlite database")
	flag.Parse()

	args := flag.Args()
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, "Usage: migrate [-db path] <command>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Commands:")
		fmt.Fprintln(os.Stderr, "  up          Migrate to the latest version")
		fmt.Fprintln(os.Stderr, "  up-one      Migrate one version up")
		fmt.Fprintln(os.Stderr, "  down        Roll back one version")
		fmt.Fprintln(os.Stderr, "  status      Show migration status")
		fmt.Fprintln(os.Stderr, "  version     Show current version")
		fmt.Fprintln(os.Stderr, "  reset       Roll back all migrations")
		os.Exit(1)
	}

	db, err := sql.Open("sqlite", *dbPath)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	defer func() { _ = db.Close() }()

	provider, err := migrations.NewProvider(db)
	if err != nil {
		log.Fatalf("%v", err)
	}

	cmd := args[0]
	if err := run(context.Background(), provider, cmd, os.Stdout); err != nil {
		_ = db.Close()
		log.Fatalf("%s: %v", cmd, err)
	}
}

// run executes one migrate command against provider and reports to w.
func run(ctx context.Context, provider *goose.Provider, cmd string, w io.Writer) error {
	switch cmd {
	case "up":
		results, err := provider.Up(ctx)
		printResults(w, results)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Fprintln(w, "no pending migrations")
		}
	case "up-one":
		result, err := provider.UpByOne(ctx)
		if errors.Is(err, goose.ErrNoNextVersion) {
			fmt.Fprintln(w, "no pending migrations")
			return nil
		}
		printResults(w, []*goose.MigrationResult{result})
		return err
	case "down":
		result, err := provider.Down(ctx)
		if errors.Is(err, goose.ErrNoNextVersion) {
			fmt.Fprintln(w, "no migrations to roll back")
			return nil
		}
		printResults(w, []*goose.MigrationResult{result})
		return err
	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			return err
		}
		for _, s := range statuses {
			applied := "pending"
			if s.State == goose.StateApplied {
				applied = s.AppliedAt.UTC().Format("2006-01-02 15:04:05")
			}
			fmt.Fprintf(w, "%-20s %s\n", applied, sourceName(s.Source))
		}
	case "version":
		version, err := provider.GetDBVersion(ctx)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "version: %d\n", version)
	case "reset":
		results, err := provider.DownTo(ctx, 0)
		printResults(w, results)
		if err != nil {
			return err
		}
		if len(results) == 0 {
			fmt.Fprintln(w, "no migrations to roll back")
		}
	default:
		return fmt.Errorf("unknown command: %s", cmd)
	}
	return nil
}

func printResults(w io.Writer, results []*goose.MigrationResult) {
	for _, r := range results {
		if r == nil {
			continue
		}
		status := "OK"
		if r.Error != nil {
			status = "FAILED"
		}
		fmt.Fprintf(w, "%-6s %-4s %s (%s)\n", status, r.Direction, sourceName(r.Source), r.Duration)
	}
}

func sourceName(s *goose.Source) string {
	if s == nil {
		return "?"
	}
	return filepath.Base(s.Path)
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
