// Package domain holds DTOs for dataset http and service contracts
package domain

import "hssearch/internal/core/textnorm"

// RowsInput pages through the loaded table
type RowsInput struct {
	Page     int    `json:"page,omitempty" validate:"omitempty,min=1" example:"1"`
	PageSize int    `json:"page_size,omitempty" validate:"omitempty,min=1,max=200" example:"50"`
	HSPrefix string `json:"hs_prefix,omitempty" validate:"omitempty,hs_code" example:"5101"`
}

// Row is one tariff table line with every stored column
type Row struct {
	HSVersions         string `json:"hs_versions"`
	HSCode             string `json:"hs_code"`
	Description        string `json:"description"`
	DescriptionCleaned string `json:"description_cleaned"`
	Alpha              string `json:"alpha"`
	Text               string `json:"text"`
	TextNorm           string `json:"text_norm"`
}

// RowsPage is one page of the table plus paging totals
type RowsPage struct {
	Rows     []Row `json:"rows"`
	Total    int   `json:"total"`
	Page     int   `json:"page"`
	PageSize int   `json:"page_size"`
}

// Info describes the active dataset build
type Info struct {
	BuildID  string           `json:"build_id"`
	BuiltAt  string           `json:"built_at"`
	RowCount int              `json:"row_count"`
	Options  textnorm.Options `json:"options"`
}
