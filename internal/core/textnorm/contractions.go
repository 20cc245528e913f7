package textnorm

import (
	"regexp"
	"strings"
	"unicode"
)

// contractionForms maps shortened word forms to their expansions. Ambiguous
// forms ("she's" may be "she is" or "she has") resolve to the expansion
// listed here
var contractionForms = map[string]string{
	"ain't":     "are not",
	"aren't":    "are not",
	"can't":     "cannot",
	"could've":  "could have",
	"couldn't":  "could not",
	"didn't":    "did not",
	"doesn't":   "does not",
	"don't":     "do not",
	"hadn't":    "had not",
	"hasn't":    "has not",
	"haven't":   "have not",
	"he'd":      "he would",
	"he'll":     "he will",
	"he's":      "he is",
	"here's":    "here is",
	"how's":     "how is",
	"i'd":       "i would",
	"i'll":      "i will",
	"i'm":       "i am",
	"i've":      "i have",
	"isn't":     "is not",
	"it'd":      "it would",
	"it'll":     "it will",
	"it's":      "it is",
	"let's":     "let us",
	"mightn't":  "might not",
	"might've":  "might have",
	"mustn't":   "must not",
	"must've":   "must have",
	"needn't":   "need not",
	"o'clock":   "of the clock",
	"shan't":    "shall not",
	"she'd":     "she would",
	"she'll":    "she will",
	"she's":     "she is",
	"should've": "should have",
	"shouldn't": "should not",
	"that's":    "that is",
	"there'd":   "there would",
	"there's":   "there is",
	"they'd":    "they would",
	"they'll":   "they will",
	"they're":   "they are",
	"they've":   "they have",
	"wasn't":    "was not",
	"we'd":      "we would",
	"we'll":     "we will",
	"we're":     "we are",
	"we've":     "we have",
	"weren't":   "were not",
	"what'll":   "what will",
	"what're":   "what are",
	"what's":    "what is",
	"what've":   "what have",
	"where's":   "where is",
	"who'd":     "who would",
	"who'll":    "who will",
	"who's":     "who is",
	"who've":    "who have",
	"why's":     "why is",
	"won't":     "will not",
	"would've":  "would have",
	"wouldn't":  "would not",
	"y'all":     "you all",
	"you'd":     "you would",
	"you'll":    "you will",
	"you're":    "you are",
	"you've":    "you have",
}

// matches a word containing an ASCII or typographic apostrophe
var contractionRe = regexp.MustCompile(`[A-Za-z]+['\x{2019}][A-Za-z]+(?:['\x{2019}][A-Za-z]+)?`)

// expandContractions replaces shortened word forms with their multi-word
// expansions, keeping a leading capital ("Don't" -> "Do not")
func expandContractions(s string) string {
	if !strings.ContainsAny(s, "'’") {
		return s
	}
	return contractionRe.ReplaceAllStringFunc(s, func(m string) string {
		key := strings.ToLower(strings.ReplaceAll(m, "’", "'"))
		exp, ok := contractionForms[key]
		if !ok {
			return m
		}
		if r := []rune(m)[0]; unicode.IsUpper(r) {
			er := []rune(exp)
			er[0] = unicode.ToUpper(er[0])
			return string(er)
		}
		return exp
	})
}
