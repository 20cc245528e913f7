// Package textnorm implements the text normalization pipeline shared by live
// queries and data preparation
// Stage order
// 1 Markup stripping, tag boundaries become single spaces
// 2 Whitespace collapse and trim
// 3 Accent folding to ASCII
// 4 Contraction expansion
// 5 Case folding
// then annotation and an ordered token filter/rewrite pass
package textnorm

import (
	"fmt"
	"strings"

	"hssearch/internal/core/annotate"
)

// ConversionError reports a Number token that could not be parsed under the
// convert_num rule. The invocation aborts; callers may retry with ConvertNum
// disabled
type ConversionError struct {
	Token string
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("textnorm: cannot convert numeral %q", e.Token)
}

// Pipeline normalizes raw text into a canonical token string. It is pure per
// call and safe for concurrent use once built
type Pipeline struct {
	ann annotate.Annotator
}

// New builds a Pipeline around an annotator
func New(ann annotate.Annotator) *Pipeline {
	if ann == nil {
		panic("textnorm: nil annotator")
	}
	return &Pipeline{ann: ann}
}

// Normalize runs the cleaning stages, annotates, filters, and joins the
// surviving tokens with single spaces. Empty or whitespace-only input yields
// "" without error
func (p *Pipeline) Normalize(text string, opts Options) (string, error) {
	if opts.RemoveHTML {
		text = stripMarkup(text)
	}
	if opts.ExtraWhitespace {
		text = collapseWhitespace(text)
	}
	if opts.AccentedChars {
		text = foldAccents(text)
	}
	if opts.Contractions {
		text = expandContractions(text)
	}
	if opts.Lowercase {
		text = strings.ToLower(text)
	}

	toks := p.ann.Annotate(text)
	out := make([]string, 0, len(toks))
	for _, tok := range toks {
		edit, keep, err := applyFilter(tok, opts)
		if err != nil {
			return "", err
		}
		if keep && edit != "" {
			out = append(out, edit)
		}
	}
	return strings.Join(out, " "), nil
}
