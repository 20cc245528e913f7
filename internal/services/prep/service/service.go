// Package service contains the dataset build workflow
package service

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"hssearch/internal/core/textnorm"
	"hssearch/internal/modkit/repokit"
	"hssearch/internal/services/prep/domain"
	"hssearch/internal/services/prep/repo"
)

// Service defines the contract for dataset builds
type Service interface {
	Run(ctx context.Context, spec domain.BuildSpec) (domain.BuildResult, error)
}

// Svc implements the Service interface
type Svc struct {
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	pipe   *textnorm.Pipeline
}

// New creates a new prep service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], pipe *textnorm.Pipeline) *Svc {
	if db == nil {
		panic("prep.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("prep.Service requires a non nil Repo binder")
	}
	if pipe == nil {
		panic("prep.Service requires a non nil Pipeline")
	}
	return &Svc{binder: binder, db: db, pipe: pipe}
}

// Run reads the CSV, normalizes every Text column under the build options, and
// replaces the previous build in one transaction under a fresh build id
func (s *Svc) Run(ctx context.Context, spec domain.BuildSpec) (domain.BuildResult, error) {
	var zero domain.BuildResult

	start := time.Now()
	rows, err := s.readCSV(spec)
	if err != nil {
		return zero, err
	}

	buildID := uuid.NewString()
	optsJSON, err := json.Marshal(spec.Options)
	if err != nil {
		return zero, fmt.Errorf("encode build options: %w", err)
	}

	err = repokit.WithTx(ctx, s.db, func(q repokit.Queryer) error {
		rq := s.binder.Bind(q)
		if err := rq.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
		if err := rq.DropBuilds(ctx); err != nil {
			return fmt.Errorf("drop previous builds: %w", err)
		}
		if err := rq.RecordBuild(ctx, buildID, optsJSON, len(rows)); err != nil {
			return fmt.Errorf("record build: %w", err)
		}
		if err := rq.InsertRows(ctx, buildID, rows); err != nil {
			return fmt.Errorf("insert rows: %w", err)
		}
		return nil
	})
	if err != nil {
		return zero, err
	}

	return domain.BuildResult{BuildID: buildID, RowCount: len(rows), Elapsed: time.Since(start)}, nil
}

// expected CSV header columns
var csvColumns = []string{"HSVersions", "HSCode", "HSDesc", "HSDescCleaned", "Alpha", "Text"}

func (s *Svc) readCSV(spec domain.BuildSpec) ([]repo.Row, error) {
	f, err := os.Open(spec.CSVPath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, name := range header {
		idx[name] = i
	}
	for _, want := range csvColumns {
		if _, ok := idx[want]; !ok {
			return nil, fmt.Errorf("csv missing column %q", want)
		}
	}

	field := func(rec []string, name string) string {
		i := idx[name]
		if i >= len(rec) {
			return ""
		}
		return rec[i]
	}

	var out []repo.Row
	line := 1
	for {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", line, err)
		}

		text := field(rec, "Text")
		norm, err := s.pipe.Normalize(text, spec.Options)
		if err != nil {
			return nil, fmt.Errorf("normalize row %d: %w", line, err)
		}
		out = append(out, repo.Row{
			HSVersions:         field(rec, "HSVersions"),
			HSCode:             field(rec, "HSCode"),
			Description:        field(rec, "HSDesc"),
			DescriptionCleaned: field(rec, "HSDescCleaned"),
			Alpha:              field(rec, "Alpha"),
			Text:               text,
			TextNorm:           norm,
		})
	}
	return out, nil
}
