// Package service contains the search workflow
package service

import (
	"context"
	"encoding/json"
	"errors"

	"hssearch/internal/core/textnorm"
	"hssearch/internal/modkit/repokit"
	perr "hssearch/internal/platform/errors"
	"hssearch/internal/services/api/search/domain"
	"hssearch/internal/services/api/search/repo"
)

// Service defines the service contract for search
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	pipe   *textnorm.Pipeline
}

// New creates a new search service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], pipe *textnorm.Pipeline) *Svc {
	if db == nil {
		panic("search.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("search.Service requires a non nil Repo binder")
	}
	if pipe == nil {
		panic("search.Service requires a non nil Pipeline")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db, pipe: pipe}
}

// Search normalizes the query under the merged options and returns rows whose
// text_norm contains the normalized query as a whole token run. The query and
// the stored rows must pass through the same pipeline to be comparable, so a
// request that overrides options away from the build options is flagged
func (s *Svc) Search(ctx context.Context, in domain.SearchInput) (domain.SearchResult, error) {
	var zero domain.SearchResult

	build, err := s.Repo.ActiveBuild(ctx)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return zero, perr.Unavailablef("no dataset build loaded")
		}
		return zero, err
	}

	var buildOpts textnorm.Options
	if err := json.Unmarshal(build.Options, &buildOpts); err != nil {
		return zero, perr.Wrapf(err, perr.ErrorCodeDB, "decode build options")
	}

	opts := in.Options.Apply(buildOpts)

	norm, err := s.pipe.Normalize(in.Query, opts)
	if err != nil {
		var conv *textnorm.ConversionError
		if errors.As(err, &conv) {
			return zero, perr.Conversionf(conv.Token, "cannot convert numeral %q, retry with convert_num disabled", conv.Token)
		}
		return zero, err
	}

	out := domain.SearchResult{
		Query:           in.Query,
		Normalized:      norm,
		BuildID:         build.BuildID,
		Options:         opts,
		OptionsMismatch: opts != buildOpts,
		Rows:            []domain.Row{},
	}
	if norm == "" {
		return out, nil
	}

	limit := in.Limit
	if limit <= 0 {
		limit = 100
	}
	rows, err := s.Repo.Containing(ctx, build.BuildID, norm, limit)
	if err != nil {
		return zero, err
	}
	for _, r := range rows {
		out.Rows = append(out.Rows, domain.Row{
			HSVersions:  r.HSVersions,
			HSCode:      r.HSCode,
			Description: r.Description,
			Alpha:       r.Alpha,
			TextNorm:    r.TextNorm,
		})
	}
	out.Total = len(out.Rows)
	return out, nil
}
