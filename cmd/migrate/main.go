package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"time"

	"vehicle-care-booking/internal/pkg/config"

	"ariga.io/atlas-go-sdk/atlasexec"
)

// migrate applies migrations/ to the configured database with the atlas CLI.
// After editing a migration, refresh migrations/atlas.sum with `atlas migrate hash`.
func main() {
	dir := flag.String("dir", "migrations", "migration directory")
	bin := flag.String("atlas", "atlas", "atlas binary")
	dryRun := flag.Bool("dry-run", false, "print pending migrations without applying them")
	flag.Parse()

	if err := run(*dir, *bin, *dryRun); err != nil {
		slog.Error("migration failed", "error", err)
		os.Exit(1)
	}
}

func run(dir, bin string, dryRun bool) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	workdir, err := atlasexec.NewWorkingDir(atlasexec.WithMigrations(os.DirFS(dir)))
	if err != nil {
		return fmt.Errorf("failed to load migration directory: %w", err)
	}
	defer workdir.Close()

	client, err := atlasexec.NewClient(workdir.Path(), bin)
	if err != nil {
		return fmt.Errorf("failed to initialize atlas client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	res, err := client.MigrateApply(ctx, &atlasexec.MigrateApplyParams{
		URL:    databaseURL(cfg.DB),
		DryRun: dryRun,
	})
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	for _, f := range res.Applied {
		slog.Info("applied migration", "file", f.Name, "dry_run", dryRun)
	}
	slog.Info("database is up to date", "current", res.Current, "target", res.Target, "applied", len(res.Applied))
	return nil
}

func databaseURL(c config.DBConfig) string {
	u := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(c.User, c.Password),
		Host:     c.Host + ":" + c.Port,
		Path:     c.DBName,
		RawQuery: url.Values{"sslmode": {c.SSLMode}}.Encode(),
	}
	return u.String()
}
