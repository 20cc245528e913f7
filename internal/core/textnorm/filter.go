package textnorm

import "hssearch/internal/core/annotate"

// filterRule inspects one token. matched=false passes the token to the next
// rule; matched=true ends evaluation with the rule's verdict
type filterRule func(tok annotate.Token, opts Options) (edit string, keep, matched bool, err error)

// filterRules is evaluated per token in order; the first matching rule wins
var filterRules = []filterRule{
	dropStopWords,
	dropPunctuation,
	dropSymbols,
	dropNumerals,
	convertNumerals,
	applyLemma,
}

// applyFilter runs the ordered rule list; an unmatched token survives with
// its surface text unchanged
func applyFilter(tok annotate.Token, opts Options) (string, bool, error) {
	for _, rule := range filterRules {
		edit, keep, matched, err := rule(tok, opts)
		if err != nil {
			return "", false, err
		}
		if matched {
			return edit, keep, nil
		}
	}
	return tok.Text, true, nil
}

func dropStopWords(tok annotate.Token, opts Options) (string, bool, bool, error) {
	if opts.StopWords && tok.Stop && tok.Category != annotate.CategoryNumber {
		return "", false, true, nil
	}
	return "", false, false, nil
}

func dropPunctuation(tok annotate.Token, opts Options) (string, bool, bool, error) {
	if opts.Punctuations && tok.Category == annotate.CategoryPunct {
		return "", false, true, nil
	}
	return "", false, false, nil
}

func dropSymbols(tok annotate.Token, opts Options) (string, bool, bool, error) {
	if opts.SpecialChars && tok.Category == annotate.CategorySymbol {
		return "", false, true, nil
	}
	return "", false, false, nil
}

func dropNumerals(tok annotate.Token, opts Options) (string, bool, bool, error) {
	if opts.RemoveNum && (tok.Category == annotate.CategoryNumber || isNumeric(tok.Text)) {
		return "", false, true, nil
	}
	return "", false, false, nil
}

func convertNumerals(tok annotate.Token, opts Options) (string, bool, bool, error) {
	if !opts.ConvertNum || tok.Category != annotate.CategoryNumber {
		return "", false, false, nil
	}
	v, ok := numeralValue(tok.Text)
	if !ok {
		return "", false, true, &ConversionError{Token: tok.Text}
	}
	return v, true, true, nil
}

func applyLemma(tok annotate.Token, opts Options) (string, bool, bool, error) {
	if opts.Lemmatization && tok.Lemma != "" {
		return tok.Lemma, true, true, nil
	}
	return "", false, false, nil
}
