package textnorm

import (
	"errors"
	"strings"
	"testing"

	"hssearch/internal/core/annotate"
)

func newTestPipeline(t *testing.T) *Pipeline {
	t.Helper()
	ann, err := annotate.NewEnglish()
	if err != nil {
		t.Fatalf("NewEnglish: %v", err)
	}
	return New(ann)
}

// Table covers the cleaning stages, the filter rules, and their toggles
func TestNormalize_Table(t *testing.T) {
	p := newTestPipeline(t)

	withRemoveNumOff := DefaultOptions()
	withRemoveNumOff.RemoveNum = false

	onlyAccents := Options{AccentedChars: true}

	noLower := DefaultOptions()
	noLower.Lowercase = false

	tests := []struct {
		name string
		in   string
		opts Options
		out  string
	}{
		{
			name: "empty input",
			in:   "",
			opts: DefaultOptions(),
			out:  "",
		},
		{
			name: "whitespace only",
			in:   " \t\n ",
			opts: DefaultOptions(),
			out:  "",
		},
		{
			name: "contraction stopword override and lemma",
			in:   "Don't use 5 computers!",
			opts: DefaultOptions(),
			out:  "not use computer",
		},
		{
			name: "numerals survive when removal disabled",
			in:   "Don't use 5 computers!",
			opts: withRemoveNumOff,
			out:  "not use 5 computer",
		},
		{
			name: "word numeral converts to digits",
			in:   "five computers",
			opts: withRemoveNumOff,
			out:  "5 computer",
		},
		{
			name: "accent folding alone",
			in:   "café",
			opts: onlyAccents,
			out:  "cafe",
		},
		{
			name: "markup stripped with space at tag boundary",
			in:   "<p>cotton</p><p>fabrics</p> of <b>wool</b>",
			opts: DefaultOptions(),
			out:  "cotton fabric wool",
		},
		{
			name: "whitespace collapsed",
			in:   "  iron \t or \n steel  bars ",
			opts: DefaultOptions(),
			out:  "iron steel bar",
		},
		{
			name: "punctuation and symbols dropped",
			in:   "wool, yarn & fibres: $20",
			opts: DefaultOptions(),
			out:  "wool yarn fibre",
		},
		{
			name: "negation words never treated as stopwords",
			in:   "not less than 85% by weight",
			opts: DefaultOptions(),
			out:  "not weight",
		},
		{
			name: "lowercase disabled preserves case",
			in:   "Steel Wire",
			opts: noLower,
			out:  "Steel Wire",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := p.Normalize(tc.in, tc.opts)
			if err != nil {
				t.Fatalf("Normalize(%q) error: %v", tc.in, err)
			}
			if got != tc.out {
				t.Fatalf("Normalize(%q) = %q, want %q", tc.in, got, tc.out)
			}
		})
	}
}

// With lemmatization and conversion disabled, a normalized string is a fixed
// point of the pipeline
func TestNormalize_Idempotent(t *testing.T) {
	p := newTestPipeline(t)

	opts := DefaultOptions()
	opts.Lemmatization = false
	opts.ConvertNum = false

	inputs := []string{
		"Machines for cleaning, sorting or grading seed",
		"<b>Électronique</b> — computers & parts",
		"Don't mix wool with silk!",
	}
	for _, in := range inputs {
		once, err := p.Normalize(in, opts)
		if err != nil {
			t.Fatalf("Normalize(%q): %v", in, err)
		}
		twice, err := p.Normalize(once, opts)
		if err != nil {
			t.Fatalf("Normalize(%q): %v", once, err)
		}
		if once != twice {
			t.Fatalf("not idempotent: %q -> %q", once, twice)
		}
	}
}

// Surviving tokens keep their relative input order
func TestNormalize_OrderPreserved(t *testing.T) {
	p := newTestPipeline(t)

	got, err := p.Normalize("copper zinc lead nickel", DefaultOptions())
	if err != nil {
		t.Fatalf("Normalize: %v", err)
	}
	want := []string{"copper", "zinc", "lead", "nickel"}
	fields := strings.Fields(got)
	if len(fields) != len(want) {
		t.Fatalf("got %v, want %v", fields, want)
	}
	for i := range want {
		if fields[i] != want[i] {
			t.Fatalf("token %d = %q, want %q (full: %v)", i, fields[i], want[i], fields)
		}
	}
}

// stubAnnotator returns a fixed token stream, letting filter tests pin exact
// categories independent of the English tokenizer
type stubAnnotator struct{ toks []annotate.Token }

func (s stubAnnotator) Annotate(string) []annotate.Token { return s.toks }

func TestNormalize_ConversionError(t *testing.T) {
	p := New(stubAnnotator{toks: []annotate.Token{
		{Text: "umpteen", Lemma: "umpteen", Category: annotate.CategoryNumber},
	}})

	opts := DefaultOptions()
	opts.RemoveNum = false

	_, err := p.Normalize("umpteen", opts)
	var cerr *ConversionError
	if !errors.As(err, &cerr) {
		t.Fatalf("want *ConversionError, got %v", err)
	}
	if cerr.Token != "umpteen" {
		t.Fatalf("ConversionError.Token = %q, want %q", cerr.Token, "umpteen")
	}

	// same query succeeds once conversion is disabled
	opts.ConvertNum = false
	got, err := p.Normalize("umpteen", opts)
	if err != nil {
		t.Fatalf("Normalize with ConvertNum off: %v", err)
	}
	if got != "umpteen" {
		t.Fatalf("got %q, want %q", got, "umpteen")
	}
}

// Rule precedence: stopword removal never touches numbers, and each drop rule
// fires before the rewrite rules
func TestFilter_Precedence(t *testing.T) {
	opts := DefaultOptions()
	opts.RemoveNum = false

	tests := []struct {
		name string
		tok  annotate.Token
		keep bool
		edit string
	}{
		{
			name: "stopword dropped",
			tok:  annotate.Token{Text: "the", Lemma: "the", Category: annotate.CategoryWord, Stop: true},
			keep: false,
		},
		{
			name: "stopword-flagged number survives to conversion",
			tok:  annotate.Token{Text: "one", Lemma: "one", Category: annotate.CategoryNumber, Stop: true},
			keep: true,
			edit: "1",
		},
		{
			name: "punctuation dropped",
			tok:  annotate.Token{Text: "!!", Lemma: "!!", Category: annotate.CategoryPunct},
			keep: false,
		},
		{
			name: "symbol dropped",
			tok:  annotate.Token{Text: "$", Lemma: "$", Category: annotate.CategorySymbol},
			keep: false,
		},
		{
			name: "lemma rewrite",
			tok:  annotate.Token{Text: "computers", Lemma: "computer", Category: annotate.CategoryWord},
			keep: true,
			edit: "computer",
		},
		{
			name: "no rule matched keeps surface",
			tok:  annotate.Token{Text: "bolt", Lemma: "", Category: annotate.CategoryWord},
			keep: true,
			edit: "bolt",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			edit, keep, err := applyFilter(tc.tok, opts)
			if err != nil {
				t.Fatalf("applyFilter: %v", err)
			}
			if keep != tc.keep {
				t.Fatalf("keep = %v, want %v", keep, tc.keep)
			}
			if keep && edit != tc.edit {
				t.Fatalf("edit = %q, want %q", edit, tc.edit)
			}
		})
	}
}
