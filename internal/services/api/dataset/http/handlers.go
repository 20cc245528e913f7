// Package http provides http transport for dataset browsing
package http

import (
	stdhttp "net/http"

	"hssearch/internal/modkit/httpkit"
	"hssearch/internal/services/api/dataset/domain"
	svc "hssearch/internal/services/api/dataset/service"
)

// Register mounts dataset endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.RowsInput](r, "/rows", h.rows)
	httpkit.Get(r, "/info", h.info)
}

type handlers struct{ svc svc.Service }

// @Summary Page through the loaded tariff table
// @Tags Dataset
// @Accept json
// @Produce json
// @Param payload body domain.RowsInput true "Paging"
// @Success 200 {object} domain.RowsPage "ok"
// @Router /dataset/rows [post]
func (h *handlers) rows(r *stdhttp.Request, in domain.RowsInput) (any, error) {
	page, err := h.svc.Rows(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.List(page.Rows, page.Total, page.Page, page.PageSize), nil
}

// @Summary Describe the active dataset build
// @Tags Dataset
// @Produce json
// @Success 200 {object} domain.Info "ok"
// @Router /dataset/info [get]
func (h *handlers) info(r *stdhttp.Request) (any, error) {
	return h.svc.Info(r.Context())
}
