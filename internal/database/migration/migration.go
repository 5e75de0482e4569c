package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"
)

type migrationStep struct {
	Name string
	SQL  string
}

var steps = []migrationStep{
	{
		Name: "create_extension_uuid_ossp",
		SQL:  `CREATE EXTENSION IF NOT EXISTS "uuid-ossp";`,
	},
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id            UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  email         TEXT        NOT NULL UNIQUE,
  name          TEXT        NOT NULL,
  user_type     TEXT        NOT NULL CHECK (user_type IN ('advocate', 'client')),
  password_hash TEXT        NOT NULL,
  created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_documents",
		SQL: `CREATE TABLE IF NOT EXISTS documents (
  id           UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  owner_id     UUID        NOT NULL REFERENCES users (id) ON DELETE CASCADE,
  filename     TEXT        NOT NULL,
  storage_path TEXT        NOT NULL UNIQUE,
  size         BIGINT      NOT NULL CHECK (size >= 0),
  content_type TEXT        NOT NULL,
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_documents_owner",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_documents_owner ON documents (owner_id, created_at DESC);`,
	},
	{
		Name: "create_table_sessions",
		SQL: `CREATE TABLE IF NOT EXISTS sessions (
  token      TEXT        PRIMARY KEY,
  user_id    UUID        NOT NULL REFERENCES users (id) ON DELETE CASCADE,
  expires_at TIMESTAMPTZ NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_sessions_expires_at",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_sessions_expires_at ON sessions (expires_at);`,
	},
	{
		Name: "create_table_messages",
		SQL: `CREATE TABLE IF NOT EXISTS messages (
  id           UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  sender_id    UUID        NOT NULL REFERENCES users (id) ON DELETE CASCADE,
  recipient_id UUID        NOT NULL REFERENCES users (id) ON DELETE CASCADE,
  body         TEXT        NOT NULL,
  created_at   TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_messages_pair",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_messages_pair ON messages (sender_id, recipient_id, created_at DESC);`,
	},
	{
		Name: "create_table_posts",
		SQL: `CREATE TABLE IF NOT EXISTS posts (
  id         UUID        PRIMARY KEY DEFAULT uuid_generate_v4(),
  author_id  UUID        NOT NULL REFERENCES users (id) ON DELETE CASCADE,
  content    TEXT        NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_index_posts_author",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_posts_author ON posts (author_id, created_at DESC);`,
	},
}

// sentinelTable is created by the last step; its presence means the schema is current.
const sentinelTable = "public.posts"

var logOutput io.Writer = os.Stdout

// runLog emits the JSON lines for one EnsureMigrated run.
type runLog struct {
	loc   *time.Location
	host  string
	start time.Time
}

func (l runLog) emit(event, status string, fields map[string]any) {
	entry := map[string]any{
		"ts":        time.Now().In(l.loc).Format(time.RFC3339Nano),
		"component": "database",
		"event":     event,
		"status":    status,
		"db_host":   l.host,
		"level":     "info",
	}
	if status == "error" {
		entry["level"] = "error"
	}
	if status != "starting" && status != "in_progress" {
		entry["duration_ms"] = time.Since(l.start).Milliseconds()
	}
	for k, v := range fields {
		entry[k] = v
	}
	if err := json.NewEncoder(logOutput).Encode(entry); err != nil {
		log.Printf("failed to write migration log: %v", err)
	}
}

// EnsureMigrated creates the schema unless the sentinel table already exists.
// All steps run in one transaction, so a failed run leaves nothing half-applied.
func EnsureMigrated(ctx context.Context, db *sql.DB, loc *time.Location, dbHost string) error {
	rl := runLog{loc: loc, host: dbHost, start: time.Now()}
	rl.emit("db_migration_check", "starting", nil)

	var exists bool
	if err := db.QueryRowContext(ctx, "SELECT to_regclass($1) IS NOT NULL", sentinelTable).Scan(&exists); err != nil {
		err = fmt.Errorf("failed to check sentinel table: %w", err)
		rl.emit("db_migration_failed", "error", map[string]any{"error_message": err.Error()})
		return err
	}
	if exists {
		rl.emit("db_migration_skip", "success", map[string]any{"msg": "schema already exists, skipping migration"})
		return nil
	}

	rl.emit("db_migration_start", "in_progress", nil)
	if err := applySteps(ctx, db, rl); err != nil {
		return err
	}
	rl.emit("db_migration_success", "success", nil)
	return nil
}

func applySteps(ctx context.Context, db *sql.DB, rl runLog) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		rl.emit("db_migration_failed", "error", map[string]any{"error_message": err.Error()})
		return fmt.Errorf("begin migration: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, step := range steps {
		stepStart := time.Now()
		if _, err := tx.ExecContext(ctx, step.SQL); err != nil {
			rl.emit("db_migration_failed", "error", map[string]any{
				"migration_step":   step.Name,
				"error_message":    err.Error(),
				"step_duration_ms": time.Since(stepStart).Milliseconds(),
			})
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}
		rl.emit("db_migration_step", "success", map[string]any{
			"migration_step":   step.Name,
			"step_duration_ms": time.Since(stepStart).Milliseconds(),
		})
	}

	if err := tx.Commit(); err != nil {
		rl.emit("db_migration_failed", "error", map[string]any{"error_message": err.Error()})
		return fmt.Errorf("commit migration: %w", err)
	}
	return nil
}
