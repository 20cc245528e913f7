// Package service contains dataset browsing workflows
package service

import (
	"context"
	"encoding/json"

	"hssearch/internal/core/textnorm"
	"hssearch/internal/modkit/repokit"
	perr "hssearch/internal/platform/errors"
	"hssearch/internal/services/api/dataset/domain"
	"hssearch/internal/services/api/dataset/repo"
)

// Service defines the service contract for dataset browsing
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
}

// New creates a new dataset service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("dataset.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("dataset.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db}
}

// Rows returns one page of the active build
func (s *Svc) Rows(ctx context.Context, in domain.RowsInput) (domain.RowsPage, error) {
	var zero domain.RowsPage

	build, err := s.activeBuild(ctx)
	if err != nil {
		return zero, err
	}

	page := in.Page
	if page < 1 {
		page = 1
	}
	size := in.PageSize
	if size <= 0 || size > 200 {
		size = 50
	}

	total, err := s.Repo.Count(ctx, build.BuildID, in.HSPrefix)
	if err != nil {
		return zero, err
	}
	rows, err := s.Repo.Page(ctx, build.BuildID, in.HSPrefix, size, (page-1)*size)
	if err != nil {
		return zero, err
	}

	out := domain.RowsPage{Rows: make([]domain.Row, 0, len(rows)), Total: total, Page: page, PageSize: size}
	for _, r := range rows {
		out.Rows = append(out.Rows, domain.Row{
			HSVersions:         r.HSVersions,
			HSCode:             r.HSCode,
			Description:        r.Description,
			DescriptionCleaned: r.DescriptionCleaned,
			Alpha:              r.Alpha,
			Text:               r.Text,
			TextNorm:           r.TextNorm,
		})
	}
	return out, nil
}

// Info describes the active build
func (s *Svc) Info(ctx context.Context) (domain.Info, error) {
	var zero domain.Info

	build, err := s.activeBuild(ctx)
	if err != nil {
		return zero, err
	}
	var opts textnorm.Options
	if err := json.Unmarshal(build.Options, &opts); err != nil {
		return zero, perr.Wrapf(err, perr.ErrorCodeDB, "decode build options")
	}
	return domain.Info{
		BuildID:  build.BuildID,
		BuiltAt:  build.BuiltAt,
		RowCount: build.RowCount,
		Options:  opts,
	}, nil
}

func (s *Svc) activeBuild(ctx context.Context) (repo.RowBuild, error) {
	build, err := s.Repo.ActiveBuild(ctx)
	if err != nil {
		if perr.IsCode(err, perr.ErrorCodeNotFound) {
			return repo.RowBuild{}, perr.Unavailablef("no dataset build loaded")
		}
		return repo.RowBuild{}, err
	}
	return build, nil
}
