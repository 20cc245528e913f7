// Package domain holds types for the dataset build workflow
package domain

import (
	"time"

	"hssearch/internal/core/textnorm"
)

// BuildSpec describes one dataset build run
type BuildSpec struct {
	CSVPath string
	Options textnorm.Options
}

// BuildResult reports what a build wrote
type BuildResult struct {
	BuildID  string
	RowCount int
	Elapsed  time.Duration
}
