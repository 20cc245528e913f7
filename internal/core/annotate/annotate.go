// Package annotate provides tokenization and linguistic annotation for the
// normalization pipeline. An Annotator splits text into ordered tokens and
// tags each with a coarse category, a lemma, and a stopword flag
package annotate

// Category is the closed set of coarse grammatical categories
type Category uint8

const (
	// CategoryWord is any ordinary word token
	CategoryWord Category = iota
	// CategoryNumber covers digit forms ("5") and word-form numerals ("five")
	CategoryNumber
	// CategoryPunct covers punctuation runs (Unicode P*)
	CategoryPunct
	// CategorySymbol covers symbol runs (Unicode S*: currency, math, modifiers)
	CategorySymbol
)

// String returns the category name
func (c Category) String() string {
	switch c {
	case CategoryNumber:
		return "NUM"
	case CategoryPunct:
		return "PUNCT"
	case CategorySymbol:
		return "SYM"
	default:
		return "WORD"
	}
}

// Token is one annotated input token. Lemma is never empty; it falls back to
// the surface text when no base form is known
type Token struct {
	Text     string
	Lemma    string
	Category Category
	Stop     bool
}

// Annotator turns cleaned text into an ordered token sequence.
// Implementations must preserve token order, classify numerals (digit or word
// form) as CategoryNumber, and honor their configured stopword overrides.
// Implementations must be safe for concurrent use after construction
type Annotator interface {
	Annotate(text string) []Token
}
