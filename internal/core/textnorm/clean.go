package textnorm

import (
	"strings"
	"sync"
	"unicode"

	"github.com/mozillazg/go-unidecode"
	"golang.org/x/net/html"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarkup removes markup tags, writing a single space at each tag
// boundary so words on either side of a removed tag do not merge. Entities
// inside text are decoded by the tokenizer
func stripMarkup(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return s
	}
	tz := html.NewTokenizer(strings.NewReader(s))
	var b strings.Builder
	b.Grow(len(s))
	for {
		switch tz.Next() {
		case html.ErrorToken:
			// io.EOF ends the document; anything else means malformed
			// markup, for which the tokenizer has already emitted all text
			return b.String()
		case html.TextToken:
			b.Write(tz.Text())
		case html.StartTagToken, html.EndTagToken, html.SelfClosingTagToken:
			b.WriteByte(' ')
		}
	}
}

// collapseWhitespace trims the edges and folds any whitespace run, including
// newlines and tabs, into a single ASCII space
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// pool of fresh mark-stripping chains; transformers are stateful
var accentChainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFD,                           // split precomposed letters
			runes.Remove(runes.In(unicode.Mn)), // drop combining marks
			norm.NFC,
		)
	},
}

// foldAccents maps accented and other non-ASCII letters to their closest
// ASCII equivalent ("café" -> "cafe"). Combining marks are stripped first;
// whatever remains non-ASCII is transliterated
func foldAccents(s string) string {
	if isASCII(s) {
		return s
	}
	tr := accentChainPool.Get().(transform.Transformer)
	ns, _, err := transform.String(tr, s)
	tr.Reset()
	accentChainPool.Put(tr)
	if err != nil {
		ns = s
	}
	if isASCII(ns) {
		return ns
	}
	return unidecode.Unidecode(ns)
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= 0x80 {
			return false
		}
	}
	return true
}
