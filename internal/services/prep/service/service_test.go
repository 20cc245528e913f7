package service

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"hssearch/internal/core/annotate"
	"hssearch/internal/core/textnorm"
	"hssearch/internal/modkit/repokit"
	"hssearch/internal/services/prep/domain"
	"hssearch/internal/services/prep/repo"
)

type fakeRepo struct {
	calls []string

	gotBuildID string
	gotOptions []byte
	gotCount   int
	gotRows    []repo.Row
}

func (f *fakeRepo) EnsureSchema(context.Context) error {
	f.calls = append(f.calls, "schema")
	return nil
}

func (f *fakeRepo) DropBuilds(context.Context) error {
	f.calls = append(f.calls, "drop")
	return nil
}

func (f *fakeRepo) RecordBuild(_ context.Context, buildID string, options []byte, rowCount int) error {
	f.calls = append(f.calls, "record")
	f.gotBuildID = buildID
	f.gotOptions = options
	f.gotCount = rowCount
	return nil
}

func (f *fakeRepo) InsertRows(_ context.Context, buildID string, rows []repo.Row) error {
	f.calls = append(f.calls, "insert")
	if buildID != f.gotBuildID {
		f.calls = append(f.calls, "buildid-mismatch")
	}
	f.gotRows = rows
	return nil
}

type fakeBinder struct{ r repo.Repo }

func (b fakeBinder) Bind(repokit.Queryer) repo.Repo { return b.r }

// fakeTx hands itself to the transaction callback
type fakeTx struct{ began bool }

func (f *fakeTx) Exec(context.Context, string, ...any) (repokit.CommandTag, error) { return nil, nil }
func (f *fakeTx) Query(context.Context, string, ...any) (repokit.Rows, error)      { return nil, nil }
func (f *fakeTx) QueryRow(context.Context, string, ...any) repokit.Row             { return nil }
func (f *fakeTx) Tx(ctx context.Context, fn func(q repokit.Queryer) error) error {
	f.began = true
	return fn(f)
}

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "table.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	return path
}

func newSvc(t *testing.T, db repokit.TxRunner, fr *fakeRepo) *Svc {
	t.Helper()
	ann, err := annotate.NewEnglish()
	if err != nil {
		t.Fatalf("annotator: %v", err)
	}
	return New(db, fakeBinder{r: fr}, textnorm.New(ann))
}

const sampleCSV = `HSVersions,HSCode,HSDesc,HSDescCleaned,Alpha,Text
"H2,H3",510111,"Greasy wool, of sheep","Greasy wool of sheep",a,"Greasy wools, of sheep"
"H3",510119,"Other greasy wool","Other greasy wool",b,"<p>Other greasy wools</p>"
`

func TestRunReplacesBuildInOneTx(t *testing.T) {
	fr := &fakeRepo{}
	tx := &fakeTx{}
	s := newSvc(t, tx, fr)

	res, err := s.Run(context.Background(), domain.BuildSpec{
		CSVPath: writeCSV(t, sampleCSV),
		Options: textnorm.DefaultOptions(),
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !tx.began {
		t.Fatalf("writes must run inside a transaction")
	}

	want := []string{"schema", "drop", "record", "insert"}
	if len(fr.calls) != len(want) {
		t.Fatalf("calls = %v", fr.calls)
	}
	for i, c := range want {
		if fr.calls[i] != c {
			t.Fatalf("call %d = %q, want %q (all: %v)", i, fr.calls[i], c, fr.calls)
		}
	}

	if res.RowCount != 2 || fr.gotCount != 2 {
		t.Fatalf("row count = %d / %d", res.RowCount, fr.gotCount)
	}
	if res.BuildID == "" || res.BuildID != fr.gotBuildID {
		t.Fatalf("build id = %q / %q", res.BuildID, fr.gotBuildID)
	}

	var opts textnorm.Options
	if err := json.Unmarshal(fr.gotOptions, &opts); err != nil {
		t.Fatalf("recorded options: %v", err)
	}
	if opts != textnorm.DefaultOptions() {
		t.Fatalf("options round trip mismatch: %+v", opts)
	}
}

func TestRunNormalizesTextColumn(t *testing.T) {
	fr := &fakeRepo{}
	s := newSvc(t, &fakeTx{}, fr)

	if _, err := s.Run(context.Background(), domain.BuildSpec{
		CSVPath: writeCSV(t, sampleCSV),
		Options: textnorm.DefaultOptions(),
	}); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(fr.gotRows) != 2 {
		t.Fatalf("rows = %d", len(fr.gotRows))
	}

	first := fr.gotRows[0]
	if first.HSVersions != "H2,H3" || first.HSCode != "510111" || first.Alpha != "a" {
		t.Fatalf("row = %+v", first)
	}
	if first.Text != "Greasy wools, of sheep" {
		t.Fatalf("raw text = %q", first.Text)
	}
	if first.TextNorm != "greasy wool sheep" {
		t.Fatalf("text_norm = %q", first.TextNorm)
	}

	// markup stripped before tokenizing
	if fr.gotRows[1].TextNorm != "greasy wool" {
		t.Fatalf("text_norm = %q", fr.gotRows[1].TextNorm)
	}
}

func TestRunRejectsMissingColumn(t *testing.T) {
	fr := &fakeRepo{}
	s := newSvc(t, &fakeTx{}, fr)

	_, err := s.Run(context.Background(), domain.BuildSpec{
		CSVPath: writeCSV(t, "HSCode,Text\n1,wool\n"),
		Options: textnorm.DefaultOptions(),
	})
	if err == nil {
		t.Fatalf("expected missing column error")
	}
	if len(fr.calls) != 0 {
		t.Fatalf("no writes should happen on a bad csv, got %v", fr.calls)
	}
}
