// Package http provides http transport for search
package http

import (
	stdhttp "net/http"

	"hssearch/internal/modkit/httpkit"
	"hssearch/internal/services/api/search/domain"
	svc "hssearch/internal/services/api/search/service"
)

// Register mounts search endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.SearchInput](r, "/", h.search)
}

type handlers struct{ svc svc.Service }

// @Summary Whole token search over normalized tariff descriptions
// @Tags Search
// @Accept json
// @Produce json
// @Param payload body domain.SearchInput true "Query"
// @Success 200 {object} domain.SearchResult "ok"
// @Failure 422 {object} phttp.Envelope "numeral conversion failed"
// @Router /search [post]
func (h *handlers) search(r *stdhttp.Request, in domain.SearchInput) (any, error) {
	return h.svc.Search(r.Context(), in)
}
