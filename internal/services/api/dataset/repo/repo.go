// Package repo provides postgres access for dataset browsing
package repo

import (
	"context"

	"hssearch/internal/modkit/repokit"
	"hssearch/internal/platform/store"
	str "hssearch/internal/platform/strings"
)

// Repo defines the repository contract for dataset browsing
type Repo interface {
	ActiveBuild(ctx context.Context) (RowBuild, error)
	Count(ctx context.Context, buildID, hsPrefix string) (int, error)
	Page(ctx context.Context, buildID, hsPrefix string, limit, offset int) ([]RowFull, error)
}

// RowBuild describes the dataset build the API serves
type RowBuild struct {
	BuildID  string `db:"build_id"`
	BuiltAt  string `db:"built_at"`
	Options  []byte `db:"options"`
	RowCount int    `db:"row_count"`
}

// RowFull is a tariff table row with every stored column
type RowFull struct {
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

func (r *queries) ActiveBuild(ctx context.Context) (RowBuild, error) {
	// options is cast to text so it lands in the struct as raw json bytes
	const sql = `
select build_id::text, built_at::text, options::text as options, row_count
from dataset_builds
order by built_at desc
limit 1
`
	return store.StructByName[RowBuild](ctx, r.q, sql)
}

func (r *queries) Count(ctx context.Context, buildID, hsPrefix string) (int, error) {
	const sql = `
select count(*)
from hs_rows
where build_id = $1
  and ($2::text is null or hs_code like $2::text || '%')
`
	return store.Scalar[int](ctx, r.q, sql, buildID, str.SQLNull(hsPrefix))
}

func (r *queries) Page(ctx context.Context, buildID, hsPrefix string, limit, offset int) ([]RowFull, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	const sql = `
select hs_versions, hs_code, description, description_cleaned, alpha, text, text_norm
from hs_rows
where build_id = $1
  and ($2::text is null or hs_code like $2::text || '%')
order by hs_code, hs_versions
limit $3 offset $4
`
	return store.Many(ctx, r.q, func(row store.Row) (RowFull, error) {
		var h RowFull
		err := row.Scan(&h.HSVersions, &h.HSCode, &h.Description, &h.DescriptionCleaned, &h.Alpha, &h.Text, &h.TextNorm)
		return h, err
	}, sql, buildID, str.SQLNull(hsPrefix), limit, offset)
}
