package annotate

import (
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/aaaton/golem/v4"
	"github.com/aaaton/golem/v4/dicts/en"
)

// English is the shipped rule-based Annotator for English text.
// Vocabulary, stopwords, and overrides are fixed at construction; afterwards
// the annotator is read only and safe for concurrent use
type English struct {
	lemmas     *golem.Lemmatizer
	lemmaBytes int
	stop       map[string]struct{}
	keep       map[string]struct{}
}

// Option mutates construction of an English annotator
type Option func(*English)

// WithKeepWords replaces the default never-stopword override list
// ("no", "not", "least")
func WithKeepWords(words []string) Option {
	return func(a *English) {
		a.keep = make(map[string]struct{}, len(words))
		for _, w := range words {
			a.keep[strings.ToLower(strings.TrimSpace(w))] = struct{}{}
		}
	}
}

// NewEnglish builds the annotator. Failure to load the lemma dictionary is an
// initialization error; the pipeline must not run before this succeeds
func NewEnglish(opts ...Option) (*English, error) {
	pack := en.New()
	lem, err := golem.New(pack)
	if err != nil {
		return nil, fmt.Errorf("annotate: load lemma dictionary: %w", err)
	}
	a := &English{
		lemmas: lem,
		stop:   stopWordSet(),
	}
	if raw, err := pack.GetResource(); err == nil {
		a.lemmaBytes = len(raw)
	}
	for _, o := range opts {
		o(a)
	}
	if a.keep == nil {
		a.keep = make(map[string]struct{}, len(defaultKeepWords))
		for _, w := range defaultKeepWords {
			a.keep[w] = struct{}{}
		}
	}
	return a, nil
}

// StopWordCount reports the size of the active stopword list
func (a *English) StopWordCount() int { return len(a.stop) }

// LemmaDictBytes reports the size of the packed lemma dictionary resource
func (a *English) LemmaDictBytes() int { return a.lemmaBytes }

// KeepWords returns the never-stopword override list in sorted order
func (a *English) KeepWords() []string {
	out := make([]string, 0, len(a.keep))
	for w := range a.keep {
		out = append(out, w)
	}
	sort.Strings(out)
	return out
}

// Annotate implements Annotator. Tokens appear in input order; whitespace
// separates tokens and is never emitted
func (a *English) Annotate(text string) []Token {
	var out []Token
	runes := []rune(text)
	i := 0
	for i < len(runes) {
		r := runes[i]
		switch {
		case unicode.IsSpace(r):
			i++
		case isWordRune(r):
			j := i
			for j < len(runes) && (isWordRune(runes[j]) || isInnerApostrophe(runes, j)) {
				j++
			}
			out = append(out, a.wordToken(string(runes[i:j])))
			i = j
		case unicode.IsDigit(r):
			j := i
			for j < len(runes) && (unicode.IsDigit(runes[j]) || isInnerNumSep(runes, j)) {
				j++
			}
			out = append(out, Token{
				Text:     string(runes[i:j]),
				Lemma:    string(runes[i:j]),
				Category: CategoryNumber,
			})
			i = j
		case unicode.IsPunct(r):
			j := i
			for j < len(runes) && unicode.IsPunct(runes[j]) {
				j++
			}
			out = append(out, Token{
				Text:     string(runes[i:j]),
				Lemma:    string(runes[i:j]),
				Category: CategoryPunct,
			})
			i = j
		case unicode.IsSymbol(r):
			j := i
			for j < len(runes) && unicode.IsSymbol(runes[j]) {
				j++
			}
			out = append(out, Token{
				Text:     string(runes[i:j]),
				Lemma:    string(runes[i:j]),
				Category: CategorySymbol,
			})
			i = j
		default:
			// unclassifiable rune, keep it as a bare word token
			out = append(out, Token{
				Text:     string(r),
				Lemma:    string(r),
				Category: CategoryWord,
			})
			i++
		}
	}
	return out
}

// wordToken classifies and annotates a single word run
func (a *English) wordToken(surface string) Token {
	lower := strings.ToLower(surface)
	if _, ok := numberWords[lower]; ok {
		return Token{Text: surface, Lemma: surface, Category: CategoryNumber}
	}
	_, stop := a.stop[lower]
	if _, kept := a.keep[lower]; kept {
		stop = false
	}
	return Token{
		Text:     surface,
		Lemma:    a.lemma(surface, lower),
		Category: CategoryWord,
		Stop:     stop,
	}
}

// lemma resolves the base form, preserving surface case when the lemma is
// only a case fold of the surface
func (a *English) lemma(surface, lower string) string {
	base := a.lemmas.Lemma(lower)
	if base == "" || base == lower {
		return surface
	}
	return base
}

func isWordRune(r rune) bool { return unicode.IsLetter(r) }

// isInnerApostrophe keeps apostrophes that sit between letters ("o'clock")
// inside one token
func isInnerApostrophe(rs []rune, i int) bool {
	if rs[i] != '\'' && rs[i] != '’' {
		return false
	}
	return i > 0 && isWordRune(rs[i-1]) && i+1 < len(rs) && isWordRune(rs[i+1])
}

// isInnerNumSep keeps digit separators ("1,200", "3.5") inside one token
func isInnerNumSep(rs []rune, i int) bool {
	if rs[i] != ',' && rs[i] != '.' {
		return false
	}
	return i > 0 && unicode.IsDigit(rs[i-1]) && i+1 < len(rs) && unicode.IsDigit(rs[i+1])
}

// numberWords is the closed single-token numeral vocabulary. Multi-word
// numerals ("twenty five") are two independent tokens
var numberWords = map[string]int64{
	"zero": 0, "one": 1, "two": 2, "three": 3, "four": 4,
	"five": 5, "six": 6, "seven": 7, "eight": 8, "nine": 9,
	"ten": 10, "eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14,
	"fifteen": 15, "sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19,
	"twenty": 20, "thirty": 30, "forty": 40, "fifty": 50,
	"sixty": 60, "seventy": 70, "eighty": 80, "ninety": 90,
	"hundred": 100, "thousand": 1000, "million": 1_000_000, "billion": 1_000_000_000,
}

// NumberValue returns the numeric value of a single-token word-form numeral
func NumberValue(word string) (int64, bool) {
	v, ok := numberWords[strings.ToLower(word)]
	return v, ok
}
