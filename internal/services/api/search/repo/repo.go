// Package repo provides postgres access for search
package repo

import (
	"context"

	"hssearch/internal/modkit/repokit"
	"hssearch/internal/platform/store"
)

// Repo defines the repository contract for search
type Repo interface {
	ActiveBuild(ctx context.Context) (RowBuild, error)
	Containing(ctx context.Context, buildID, needle string, limit int) ([]RowHS, error)
}

// RowBuild describes the dataset build the API serves
type RowBuild struct {
	BuildID  string
	BuiltAt  string
	Options  []byte
	RowCount int
}

// RowHS is a tariff table row as stored
type RowHS struct {
	HSVersions  string `db:"hs_versions"`
	HSCode      string `db:"hs_code"`
	Description string `db:"description"`
	Alpha       string `db:"alpha"`
	TextNorm    string `db:"text_norm"`
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

func (r *queries) ActiveBuild(ctx context.Context) (RowBuild, error) {
	const sql = `
select build_id::text, built_at::text, options, row_count
from dataset_builds
order by built_at desc
limit 1
`
	return store.One(ctx, r.q, func(row store.Row) (RowBuild, error) {
		var b RowBuild
		err := row.Scan(&b.BuildID, &b.BuiltAt, &b.Options, &b.RowCount)
		return b, err
	}, sql)
}

// Containing matches rows whose text_norm holds needle as a whole token run.
// Both sides are padded with a single space so token boundaries line up
func (r *queries) Containing(ctx context.Context, buildID, needle string, limit int) ([]RowHS, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	const sql = `
select hs_versions, hs_code, description, alpha, text_norm
from hs_rows
where build_id = $1
  and position(' ' || $2 || ' ' in ' ' || text_norm || ' ') > 0
order by hs_code, hs_versions
limit $3
`
	return store.StructsByName[RowHS](ctx, r.q, sql, buildID, needle, limit)
}
