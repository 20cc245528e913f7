//go:build integration_pg
// +build integration_pg

package pg_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"hssearch/internal/modkit/repokit"
	"hssearch/internal/platform/store"
	"hssearch/internal/platform/store/pg"
	datasetrepo "hssearch/internal/services/api/dataset/repo"
	searchrepo "hssearch/internal/services/api/search/repo"
	preprepo "hssearch/internal/services/prep/repo"
)

// startPostgres boots a disposable postgres and returns its DSN
func startPostgres(t *testing.T) (dsn string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "postgres",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		cancel()
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get container host: %v", err)
	}
	mapped, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get mapped port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, mapped.Port())
	stop = func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
	return dsn, stop
}

// codes flattens a result set to hs codes for compact assertions
func codes(rows []searchrepo.RowHS) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.HSCode)
	}
	return out
}

func TestDatasetBuildAndSearch_Integration(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	t.Run("session plumbing", func(t *testing.T) {
		appName := "hssearch-pg-integration"
		pg.WithTestDB(t, dsn, func(pc *pgxpool.Config) {
			if pc.ConnConfig.RuntimeParams == nil {
				pc.ConnConfig.RuntimeParams = map[string]string{}
			}
			pc.ConnConfig.RuntimeParams["application_name"] = appName
			pc.MinConns = 1
		}, func(p *pg.PG) {
			conn := pg.AcquireConn(t, p, ctx)

			var one int
			if err := conn.QueryRow(ctx, "select 1").Scan(&one); err != nil || one != 1 {
				t.Fatalf("select 1 = %d, %v", one, err)
			}

			var gotApp string
			if err := conn.QueryRow(ctx, `select current_setting('application_name')`).Scan(&gotApp); err != nil {
				t.Fatalf("check app name: %v", err)
			}
			if gotApp != appName {
				t.Fatalf("application_name mismatch: got %q want %q", gotApp, appName)
			}
		})
	})

	st, err := store.Open(ctx, store.Config{
		AppName: "hssearch-pg-integration",
		PG: store.PGConfig{
			Enabled:  true,
			URL:      dsn,
			MaxConns: 2,
		},
	})
	if err != nil {
		t.Fatalf("store.Open: %v", err)
	}
	t.Cleanup(func() {
		if c, ok := st.PG.(interface{ Close() error }); ok {
			_ = c.Close()
		}
	})

	oldBuild := uuid.NewString()
	activeBuild := uuid.NewString()

	// Two builds: the stale one holds a row that must never leak into results
	err = repokit.WithTx(ctx, st.PG, func(q repokit.Queryer) error {
		r := preprepo.NewPG().Bind(q)
		if err := r.EnsureSchema(ctx); err != nil {
			return err
		}
		if err := r.RecordBuild(ctx, oldBuild, []byte(`{"lowercase":true}`), 1); err != nil {
			return err
		}
		if err := r.InsertRows(ctx, oldBuild, []preprepo.Row{
			{HSVersions: "H5", HSCode: "9999", Description: "stale", TextNorm: "computer"},
		}); err != nil {
			return err
		}
		if err := r.RecordBuild(ctx, activeBuild, []byte(`{"lowercase":true}`), 3); err != nil {
			return err
		}
		return r.InsertRows(ctx, activeBuild, []preprepo.Row{
			{HSVersions: "H5", HSCode: "8471", Description: "ADP machines", TextNorm: "use computer daily"},
			{HSVersions: "H5", HSCode: "8473", Description: "parts", TextNorm: "many computers here"},
			{HSVersions: "H5", HSCode: "8528", Description: "monitors", TextNorm: "dell computer monitor"},
		})
	})
	if err != nil {
		t.Fatalf("seed builds: %v", err)
	}
	if _, err := st.PG.Exec(ctx,
		`update dataset_builds set built_at = now() - interval '1 hour' where build_id = $1`, oldBuild); err != nil {
		t.Fatalf("backdate stale build: %v", err)
	}

	sr := searchrepo.NewPG().Bind(st.PG)
	dr := datasetrepo.NewPG().Bind(st.PG)

	t.Run("active build is the newest", func(t *testing.T) {
		b, err := sr.ActiveBuild(ctx)
		if err != nil {
			t.Fatalf("ActiveBuild: %v", err)
		}
		if b.BuildID != activeBuild || b.RowCount != 3 {
			t.Fatalf("ActiveBuild = %q rows %d, want %q rows 3", b.BuildID, b.RowCount, activeBuild)
		}

		db, err := dr.ActiveBuild(ctx)
		if err != nil {
			t.Fatalf("dataset ActiveBuild: %v", err)
		}
		if db.BuildID != activeBuild || string(db.Options) != `{"lowercase": true}` {
			t.Fatalf("dataset ActiveBuild = %q options %s", db.BuildID, db.Options)
		}
	})

	t.Run("whole token match", func(t *testing.T) {
		cases := []struct {
			needle string
			want   []string
		}{
			// "computer" must not match rows that only contain "computers"
			{"computer", []string{"8471", "8528"}},
			{"computers", []string{"8473"}},
			// a token run matches only when the tokens are adjacent in order
			{"computer daily", []string{"8471"}},
			// a fragment inside a token never matches
			{"compute", nil},
			{"omputer", nil},
		}
		for _, c := range cases {
			got, err := sr.Containing(ctx, activeBuild, c.needle, 10)
			if err != nil {
				t.Fatalf("Containing(%q): %v", c.needle, err)
			}
			gotCodes := codes(got)
			if len(gotCodes) != len(c.want) {
				t.Fatalf("Containing(%q) = %v, want %v", c.needle, gotCodes, c.want)
			}
			for i := range c.want {
				if gotCodes[i] != c.want[i] {
					t.Fatalf("Containing(%q) = %v, want %v", c.needle, gotCodes, c.want)
				}
			}
		}
	})

	t.Run("stale build rows stay invisible", func(t *testing.T) {
		got, err := sr.Containing(ctx, activeBuild, "computer", 10)
		if err != nil {
			t.Fatalf("Containing: %v", err)
		}
		for _, r := range got {
			if r.HSCode == "9999" {
				t.Fatal("row from a replaced build leaked into results")
			}
		}
	})

	t.Run("dataset paging and prefix filter", func(t *testing.T) {
		n, err := dr.Count(ctx, activeBuild, "")
		if err != nil || n != 3 {
			t.Fatalf("Count all = %d, %v", n, err)
		}
		n, err = dr.Count(ctx, activeBuild, "847")
		if err != nil || n != 2 {
			t.Fatalf("Count 847 = %d, %v", n, err)
		}

		rows, err := dr.Page(ctx, activeBuild, "", 2, 0)
		if err != nil || len(rows) != 2 || rows[0].HSCode != "8471" {
			t.Fatalf("Page 1 = %+v, %v", rows, err)
		}
		rows, err = dr.Page(ctx, activeBuild, "", 2, 2)
		if err != nil || len(rows) != 1 || rows[0].HSCode != "8528" {
			t.Fatalf("Page 2 = %+v, %v", rows, err)
		}
	})
}
