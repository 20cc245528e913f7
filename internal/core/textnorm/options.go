package textnorm

// Options selects which pipeline stages run. One boolean per stage, never
// mutated mid-run; disabling a stage skips it without reordering the rest
type Options struct {
	// cleaning stages, applied in this order
	RemoveHTML      bool `json:"remove_html"`
	ExtraWhitespace bool `json:"extra_whitespace"`
	AccentedChars   bool `json:"accented_chars"`
	Contractions    bool `json:"contractions"`
	Lowercase       bool `json:"lowercase"`

	// token filter rules, first match wins in this order
	StopWords     bool `json:"stop_words"`
	Punctuations  bool `json:"punctuations"`
	SpecialChars  bool `json:"special_chars"`
	RemoveNum     bool `json:"remove_num"`
	ConvertNum    bool `json:"convert_num"`
	Lemmatization bool `json:"lemmatization"`
}

// DefaultOptions enables every stage
func DefaultOptions() Options {
	return Options{
		RemoveHTML:      true,
		ExtraWhitespace: true,
		AccentedChars:   true,
		Contractions:    true,
		Lowercase:       true,
		StopWords:       true,
		Punctuations:    true,
		SpecialChars:    true,
		RemoveNum:       true,
		ConvertNum:      true,
		Lemmatization:   true,
	}
}
