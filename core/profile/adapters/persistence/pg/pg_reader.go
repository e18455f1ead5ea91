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

package pg

import (
	"context"

	"profile-service/core/profile/domain"
	"profile-service/modules/db"

	"github.com/gofrs/uuid/v5"
	"github.com/stephenafamo/bob"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/stephenafamo/scan"
)

var _ domain.ProfileReadStore = (*PostgresProfileReader)(nil)

type (
	PostgresProfileReader struct {
		table string
		pool  db.ReaderConnectionManager // calls Reader() at runtime
	}
)

// NewPostgresProfileReader creates a new reader that calls Reader() at runtime for load balancing.
//
// Reads are built per call instead of prepared, so a replica can be chosen
// for every query and a replica going away only affects in-flight reads.
func NewPostgresProfileReader(pool db.ReaderConnectionManager, table string) *PostgresProfileReader {
	return &PostgresProfileReader{
		table: table,
		pool:  pool,
	}
}

func (r *PostgresProfileReader) listQuery() bob.Query {
	return psql.Select(
		sm.Columns(selectColumns...),
		sm.From(r.table),
		sm.OrderBy("id"),
	)
}

func (r *PostgresProfileReader) byIDQuery(id uuid.UUID) bob.Query {
	return byIDQuery(r.table, id)
}

func (r *PostgresProfileReader) byUserIDQuery(userID string) bob.Query {
	return psql.Select(
		sm.Columns(selectColumns...),
		sm.From(r.table),
		sm.Where(psql.Quote("user_id").EQ(psql.Arg(userID))),
		sm.OrderBy("id"),
		sm.Limit(1),
	)
}

// ListProfiles implements ProfileReadStore.
func (r *PostgresProfileReader) ListProfiles(ctx context.Context) ([]domain.Profile, error) {
	profiles, err := bob.Allx[profileTransformer](ctx, r.pool.Reader(), r.listQuery(), scan.StructMapper[ProfileRow]())
	if err != nil {
		return nil, wrapProfileError(err)
	}
	if profiles == nil {
		profiles = []domain.Profile{}
	}
	return profiles, nil
}

// GetProfileByID implements ProfileReadStore.
func (r *PostgresProfileReader) GetProfileByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	row, err := bob.One(ctx, r.pool.Reader(), r.byIDQuery(id), scan.StructMapper[ProfileRow]())
	if err != nil {
		return nil, wrapProfileError(err)
	}
	prof := toProfile(row)
	return &prof, nil
}

// GetProfileByUserID implements ProfileReadStore.
func (r *PostgresProfileReader) GetProfileByUserID(ctx context.Context, userID string) (*domain.Profile, error) {
	row, err := bob.One(ctx, r.pool.Reader(), r.byUserIDQuery(userID), scan.StructMapper[ProfileRow]())
	if err != nil {
		return nil, wrapProfileError(err)
	}
	prof := toProfile(row)
	return &prof, nil
}
