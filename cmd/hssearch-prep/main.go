// Command hssearch-prep loads a tariff table CSV into postgres as a fresh
// dataset build, replacing the previous one
package main

import (
	"context"
	"flag"

	"hssearch/internal/core/annotate"
	"hssearch/internal/core/textnorm"
	"hssearch/internal/platform/config"
	"hssearch/internal/platform/logger"
	"hssearch/internal/platform/store"

	prepdom "hssearch/internal/services/prep/domain"
	preprepo "hssearch/internal/services/prep/repo"
	prepsvc "hssearch/internal/services/prep/service"
)

func main() {
	var (
		csvPath = flag.String("csv", "", "path to the tariff table CSV")
		pgURL   = flag.String("pg", "", "postgres URL, falls back to SERVICE_PGSQL_DBURL")

		// one disable flag per pipeline stage
		noHTML         = flag.Bool("no-remove-html", false, "keep markup")
		noWhitespace   = flag.Bool("no-extra-whitespace", false, "keep whitespace runs")
		noAccents      = flag.Bool("no-accented-chars", false, "keep accented characters")
		noContractions = flag.Bool("no-contractions", false, "keep contractions")
		noLowercase    = flag.Bool("no-lowercase", false, "keep original case")
		noStopWords    = flag.Bool("no-stop-words", false, "keep stopwords")
		noPunctuations = flag.Bool("no-punctuations", false, "keep punctuation tokens")
		noSpecialChars = flag.Bool("no-special-chars", false, "keep symbol tokens")
		noRemoveNum    = flag.Bool("no-remove-num", false, "keep numeral tokens")
		noConvertNum   = flag.Bool("no-convert-num", false, "skip numeral conversion")
		noLemma        = flag.Bool("no-lemmatization", false, "skip lemmatization")
	)
	flag.Parse()

	l := logger.Get()
	if *csvPath == "" {
		l.Fatal().Msg("-csv is required")
	}

	root := config.New()
	pgCfg := root.Prefix("SERVICE_PGSQL_")
	url := *pgURL
	if url == "" {
		url = pgCfg.MustString("DBURL")
	}

	ctx := context.Background()
	st, err := store.Open(ctx, store.Config{
		AppName: "hssearch-prep",
		PG: store.PGConfig{
			Enabled:     true,
			URL:         url,
			MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 2)),
			SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
			LogSQL:      pgCfg.MayBool("LOG_SQL", false),
		},
	}, store.WithLogger(*l))
	if err != nil {
		l.Fatal().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(ctx); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	opts := textnorm.DefaultOptions()
	if *noHTML {
		opts.RemoveHTML = false
	}
	if *noWhitespace {
		opts.ExtraWhitespace = false
	}
	if *noAccents {
		opts.AccentedChars = false
	}
	if *noContractions {
		opts.Contractions = false
	}
	if *noLowercase {
		opts.Lowercase = false
	}
	if *noStopWords {
		opts.StopWords = false
	}
	if *noPunctuations {
		opts.Punctuations = false
	}
	if *noSpecialChars {
		opts.SpecialChars = false
	}
	if *noRemoveNum {
		opts.RemoveNum = false
	}
	if *noConvertNum {
		opts.ConvertNum = false
	}
	if *noLemma {
		opts.Lemmatization = false
	}

	ann, err := annotate.NewEnglish()
	if err != nil {
		l.Fatal().Err(err).Msg("annotator init failed")
	}
	pipe := textnorm.New(ann)

	svc := prepsvc.New(st.PG, preprepo.NewPG(), pipe)
	res, err := svc.Run(ctx, prepdom.BuildSpec{CSVPath: *csvPath, Options: opts})
	if err != nil {
		l.Fatal().Err(err).Msg("dataset build failed")
	}

	l.Info().
		Str("build_id", res.BuildID).
		Int("rows", res.RowCount).
		Dur("elapsed", res.Elapsed).
		Msg("dataset build complete")
}
