package module

import (
	"context"

	datasetdom "hssearch/internal/services/api/dataset/domain"
	datasetsvc "hssearch/internal/services/api/dataset/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptDatasetPort adapts the dataset service to the domain port interface
type adaptDatasetPort struct{ svc datasetsvc.Service }

// Rows implements the domain ServicePort interface
func (a adaptDatasetPort) Rows(ctx context.Context, in datasetdom.RowsInput) (datasetdom.RowsPage, error) {
	return a.svc.Rows(ctx, in)
}

// Info implements the domain ServicePort interface
func (a adaptDatasetPort) Info(ctx context.Context) (datasetdom.Info, error) {
	return a.svc.Info(ctx)
}
