package domain

import "context"

// ServicePort defines the service contract for search
type ServicePort interface {
	Search(ctx context.Context, in SearchInput) (SearchResult, error)
}
