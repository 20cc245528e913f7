package domain

import "context"

// ServicePort defines the service contract for dataset browsing
type ServicePort interface {
	Rows(ctx context.Context, in RowsInput) (RowsPage, error)
	Info(ctx context.Context) (Info, error)
}
