package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"

	database "cloud.google.com/go/spanner/admin/database/apiv1"
	"cloud.google.com/go/spanner/admin/database/apiv1/databasepb"
	instance "cloud.google.com/go/spanner/admin/instance/apiv1"
	"cloud.google.com/go/spanner/admin/instance/apiv1/instancepb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var databasePath = regexp.MustCompile(`^projects/([^/]+)/instances/([^/]+)/databases/([^/]+)$`)

type spannerTarget struct {
	Project  string
	Instance string
	Database string
}

func parseSpannerTarget(path string) (spannerTarget, error) {
	m := databasePath.FindStringSubmatch(path)
	if m == nil {
		return spannerTarget{}, fmt.Errorf("invalid spanner database path %q", path)
	}
	return spannerTarget{Project: m[1], Instance: m[2], Database: m[3]}, nil
}

func (t spannerTarget) projectName() string  { return "projects/" + t.Project }
func (t spannerTarget) instanceName() string { return t.projectName() + "/instances/" + t.Instance }
func (t spannerTarget) databaseName() string { return t.instanceName() + "/databases/" + t.Database }

type spannerMigrator struct {
	target   spannerTarget
	dir      string
	emulator bool
	logger   *slog.Logger
}

func newSpannerMigrator(target spannerTarget, dir string, logger *slog.Logger) *spannerMigrator {
	return &spannerMigrator{
		target:   target,
		dir:      dir,
		emulator: os.Getenv("SPANNER_EMULATOR_HOST") != "",
		logger:   logger.With("database", target.databaseName()),
	}
}

func (m *spannerMigrator) run(ctx context.Context) error {
	// Only the emulator gets its instance provisioned here; real instances
	// are managed outside the service.
	if m.emulator {
		m.logger.Info("using spanner emulator", "host", os.Getenv("SPANNER_EMULATOR_HOST"))
		if err := m.ensureInstance(ctx); err != nil {
			return fmt.Errorf("failed to ensure instance: %w", err)
		}
	}

	admin, err := database.NewDatabaseAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create database admin client: %w", err)
	}
	defer admin.Close()

	if err := m.ensureDatabase(ctx, admin); err != nil {
		return fmt.Errorf("failed to ensure database: %w", err)
	}
	return m.applyDDL(ctx, admin)
}

func (m *spannerMigrator) ensureInstance(ctx context.Context) error {
	admin, err := instance.NewInstanceAdminClient(ctx)
	if err != nil {
		return fmt.Errorf("failed to create instance admin client: %w", err)
	}
	defer admin.Close()

	_, err = admin.GetInstance(ctx, &instancepb.GetInstanceRequest{Name: m.target.instanceName()})
	if err == nil {
		return nil
	}
	if status.Code(err) != codes.NotFound {
		return err
	}

	m.logger.Info("creating instance", "instance", m.target.Instance)
	op, err := admin.CreateInstance(ctx, &instancepb.CreateInstanceRequest{
		Parent:     m.target.projectName(),
		InstanceId: m.target.Instance,
		Instance: &instancepb.Instance{
			Config:      m.target.projectName() + "/instanceConfigs/emulator-config",
			DisplayName: "Ledger Development",
			NodeCount:   1,
		},
	})
	if status.Code(err) == codes.AlreadyExists {
		return nil
	}
	if err != nil {
		return err
	}
	if _, err := op.Wait(ctx); err != nil && status.Code(err) != codes.AlreadyExists {
		// The emulator sometimes reports completion errors for an instance it did create.
		m.logger.Warn("instance creation did not report success", "error", err)
	}
	return nil
}

func (m *spannerMigrator) ensureDatabase(ctx context.Context, admin *database.DatabaseAdminClient) error {
	_, err := admin.GetDatabase(ctx, &databasepb.GetDatabaseRequest{Name: m.target.databaseName()})
	if err == nil {
		return nil
	}
	if status.Code(err) != codes.NotFound {
		return err
	}

	m.logger.Info("creating database")
	op, err := admin.CreateDatabase(ctx, &databasepb.CreateDatabaseRequest{
		Parent:          m.target.instanceName(),
		CreateStatement: fmt.Sprintf("CREATE DATABASE `%s`", m.target.Database),
	})
	if status.Code(err) == codes.AlreadyExists {
		return nil
	}
	if err != nil {
		return err
	}
	_, err = op.Wait(ctx)
	return err
}

// applyDDL runs every *.sql file in lexical order, skipping CREATE
// statements for tables and indexes the database already has.
func (m *spannerMigrator) applyDDL(ctx context.Context, admin *database.DatabaseAdminClient) error {
	files, err := filepath.Glob(filepath.Join(m.dir, "*.sql"))
	if err != nil {
		return fmt.Errorf("failed to list migrations: %w", err)
	}
	if len(files) == 0 {
		m.logger.Warn("no migration files found", "dir", m.dir)
		return nil
	}

	current, err := admin.GetDatabaseDdl(ctx, &databasepb.GetDatabaseDdlRequest{Database: m.target.databaseName()})
	if err != nil {
		return fmt.Errorf("failed to read current schema: %w", err)
	}
	existing := existingObjects(current.GetStatements())

	for _, file := range files {
		name := filepath.Base(file)
		content, err := os.ReadFile(file)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", name, err)
		}

		statements := pendingStatements(splitDDLStatements(string(content)), existing)
		if len(statements) == 0 {
			m.logger.Info("migration already applied", "file", name)
			continue
		}

		m.logger.Info("applying migration", "file", name, "statements", len(statements))
		op, err := admin.UpdateDatabaseDdl(ctx, &databasepb.UpdateDatabaseDdlRequest{
			Database:   m.target.databaseName(),
			Statements: statements,
		})
		if err != nil {
			return fmt.Errorf("failed to start DDL update for %s: %w", name, err)
		}
		if err := op.Wait(ctx); err != nil {
			return fmt.Errorf("failed to apply %s: %w", name, err)
		}
	}
	return nil
}
