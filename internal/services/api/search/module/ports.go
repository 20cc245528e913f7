package module

import (
	"context"

	searchdom "hssearch/internal/services/api/search/domain"
	searchsvc "hssearch/internal/services/api/search/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptSearchPort adapts the search service to the domain port interface
type adaptSearchPort struct{ svc searchsvc.Service }

// Search implements the domain ServicePort interface
func (a adaptSearchPort) Search(ctx context.Context, in searchdom.SearchInput) (searchdom.SearchResult, error) {
	return a.svc.Search(ctx, in)
}
