// Package repo provides postgres writes for dataset builds
package repo

import (
	"context"
	"fmt"
	"strings"

	"hssearch/internal/modkit/repokit"
	"hssearch/internal/platform/store"
)

// Repo defines the repository contract for dataset builds
type Repo interface {
	EnsureSchema(ctx context.Context) error
	DropBuilds(ctx context.Context) error
	RecordBuild(ctx context.Context, buildID string, options []byte, rowCount int) error
	InsertRows(ctx context.Context, buildID string, rows []Row) error
}

// Row is one tariff table line ready to store
type Row struct {
	HSVersions         string
	HSCode             string
	Description        string
	DescriptionCleaned string
	Alpha              string
	Text               string
	TextNorm           string
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	// queries holds the database query methods
	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

func (r *queries) EnsureSchema(ctx context.Context) error {
	const ddl = `
create table if not exists dataset_builds (
  build_id  uuid primary key,
  built_at  timestamptz not null default now(),
  options   jsonb not null,
  row_count integer not null
);
create table if not exists hs_rows (
  build_id            uuid not null references dataset_builds (build_id) on delete cascade,
  hs_versions         text not null,
  hs_code             text not null,
  description         text not null,
  description_cleaned text not null,
  alpha               text not null,
  text                text not null,
  text_norm           text not null
);
create index if not exists hs_rows_build_code_idx on hs_rows (build_id, hs_code);
`
	_, err := r.q.Exec(ctx, ddl)
	return err
}

// DropBuilds wipes every previous build; hs_rows follows via cascade
func (r *queries) DropBuilds(ctx context.Context) error {
	_, err := store.Exec(ctx, r.q, `delete from dataset_builds`)
	return err
}

func (r *queries) RecordBuild(ctx context.Context, buildID string, options []byte, rowCount int) error {
	const sql = `
insert into dataset_builds (build_id, options, row_count)
values ($1, $2, $3)
`
	return store.ExecOne(ctx, r.q, sql, buildID, options, rowCount)
}

// InsertRows writes rows in multi value chunks to keep statements bounded
func (r *queries) InsertRows(ctx context.Context, buildID string, rows []Row) error {
	const (
		chunk = 200
		cols  = 8
	)
	for start := 0; start < len(rows); start += chunk {
		end := min(start+chunk, len(rows))
		batch := rows[start:end]

		var sb strings.Builder
		sb.WriteString(`insert into hs_rows
(build_id, hs_versions, hs_code, description, description_cleaned, alpha, text, text_norm) values `)
		args := make([]any, 0, len(batch)*cols)
		for i, row := range batch {
			if i > 0 {
				sb.WriteByte(',')
			}
			base := i * cols
			fmt.Fprintf(&sb, "($%d,$%d,$%d,$%d,$%d,$%d,$%d,$%d)",
				base+1, base+2, base+3, base+4, base+5, base+6, base+7, base+8)
			args = append(args,
				buildID, row.HSVersions, row.HSCode, row.Description,
				row.DescriptionCleaned, row.Alpha, row.Text, row.TextNorm)
		}
		if _, err := r.q.Exec(ctx, sb.String(), args...); err != nil {
			return err
		}
	}
	return nil
}
