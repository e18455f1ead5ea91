// Copyright 2025 Nhat-Nguyen Nguyen
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package postgres

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/amacneil/dbmate/v2/pkg/dbmate"
	_ "github.com/amacneil/dbmate/v2/pkg/driver/postgres"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

const migrationsDir = "migrations"

// MigrateUp implements db.ConnectionPool.
// dbmate is not context aware, ctx only scopes the log records.
func (p *PostgresConnectionPool) MigrateUp(ctx context.Context) error {
	m, err := p.migrator(ctx)
	if err != nil {
		return err
	}
	if err := m.Migrate(); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}

// MigrateDown implements db.ConnectionPool. It rolls back the latest migration only.
func (p *PostgresConnectionPool) MigrateDown(ctx context.Context) error {
	m, err := p.migrator(ctx)
	if err != nil {
		return err
	}
	if err := m.Rollback(); err != nil {
		return fmt.Errorf("migrate down: %w", err)
	}
	return nil
}

func (p *PostgresConnectionPool) migrator(ctx context.Context) (*dbmate.DB, error) {
	u, err := url.Parse(p.primaryURL)
	if err != nil {
		return nil, fmt.Errorf("migrator: parse url: %w", err)
	}

	m := dbmate.New(u)
	m.FS = migrationsFS
	m.MigrationsDir = []string{migrationsDir}
	m.AutoDumpSchema = false
	m.Log = slogWriter{ctx: ctx}
	return m, nil
}

// slogWriter forwards dbmate's line oriented output to slog.
type slogWriter struct {
	ctx context.Context
}

func (w slogWriter) Write(b []byte) (int, error) {
	for _, line := range strings.Split(strings.TrimSpace(string(b)), "\n") {
		if line == "" {
			continue
		}
		slog.InfoContext(w.ctx, "dbmate", slog.String("output", line))
	}
	return len(b), nil
}
