// Package domain holds DTOs for search http and service contracts
package domain

import "hssearch/internal/core/textnorm"

// OptionOverrides toggles individual pipeline stages per request
// nil fields inherit the active dataset build options
type OptionOverrides struct {
	RemoveHTML      *bool `json:"remove_html,omitempty"`
	ExtraWhitespace *bool `json:"extra_whitespace,omitempty"`
	AccentedChars   *bool `json:"accented_chars,omitempty"`
	Contractions    *bool `json:"contractions,omitempty"`
	Lowercase       *bool `json:"lowercase,omitempty"`
	StopWords       *bool `json:"stop_words,omitempty"`
	Punctuations    *bool `json:"punctuations,omitempty"`
	SpecialChars    *bool `json:"special_chars,omitempty"`
	RemoveNum       *bool `json:"remove_num,omitempty"`
	ConvertNum      *bool `json:"convert_num,omitempty"`
	Lemmatization   *bool `json:"lemmatization,omitempty"`
}

// Apply folds non nil overrides into base and returns the merged options
func (o *OptionOverrides) Apply(base textnorm.Options) textnorm.Options {
	if o == nil {
		return base
	}
	set := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	set(&base.RemoveHTML, o.RemoveHTML)
	set(&base.ExtraWhitespace, o.ExtraWhitespace)
	set(&base.AccentedChars, o.AccentedChars)
	set(&base.Contractions, o.Contractions)
	set(&base.Lowercase, o.Lowercase)
	set(&base.StopWords, o.StopWords)
	set(&base.Punctuations, o.Punctuations)
	set(&base.SpecialChars, o.SpecialChars)
	set(&base.RemoveNum, o.RemoveNum)
	set(&base.ConvertNum, o.ConvertNum)
	set(&base.Lemmatization, o.Lemmatization)
	return base
}

// SearchInput is the input for a description search
type SearchInput struct {
	Query   string           `json:"query" validate:"required,min=1,max=500" example:"combed wool"`
	Limit   int              `json:"limit,omitempty" validate:"omitempty,min=1,max=500" example:"50"`
	Options *OptionOverrides `json:"options,omitempty"`
}

// Row is one tariff table line matched by a search
type Row struct {
	HSVersions  string `json:"hs_versions"`
	HSCode      string `json:"hs_code"`
	Description string `json:"description"`
	Alpha       string `json:"alpha"`
	TextNorm    string `json:"text_norm"`
}

// SearchResult carries the normalized query and its matches
type SearchResult struct {
	Query           string           `json:"query"`
	Normalized      string           `json:"normalized"`
	BuildID         string           `json:"build_id"`
	Options         textnorm.Options `json:"options"`
	OptionsMismatch bool             `json:"options_mismatch"`
	Total           int              `json:"total"`
	Rows            []Row            `json:"rows"`
}
