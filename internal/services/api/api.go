// Package api provides the HTTP API for the application
package api

import (
	"hssearch/internal/core/annotate"
	"hssearch/internal/core/textnorm"
	"hssearch/internal/platform/config"
	"hssearch/internal/platform/logger"
	phttp "hssearch/internal/platform/net/http"
	"hssearch/internal/platform/store"

	"hssearch/internal/modkit"
	"hssearch/internal/modkit/httpkit"
	"hssearch/internal/modkit/module"
	"hssearch/internal/modkit/swaggerkit"

	datasetmod "hssearch/internal/services/api/dataset/module"
	metamod "hssearch/internal/services/api/meta/module"
	searchmod "hssearch/internal/services/api/search/module"
)

// Options are the API options
type Options struct {
	Config         config.Conf
	Store          *store.Store
	Logger         *logger.Logger
	EnableSwagger  bool
	EnableProfiler bool
}

// Mount mounts the API service onto the given router
func Mount(r phttp.Router, opt Options) error {
	deps := modkit.Deps{
		Cfg: opt.Config,
		PG:  opt.Store.PG,
	}

	// one annotator and pipeline shared by search and meta
	ann, err := annotate.NewEnglish()
	if err != nil {
		return err
	}
	pipe := textnorm.New(ann)

	mods := []module.Module{
		metamod.New(deps, ann),
		searchmod.New(deps, pipe),
		datasetmod.New(deps),
	}

	stack := httpkit.CommonStack()
	// basic auth only when credentials are configured
	if user := opt.Config.MayString("BASIC_USER", ""); user != "" {
		pass := opt.Config.MayString("BASIC_PASS", "")
		stack = append(stack, httpkit.Auth(httpkit.NewBasicPort(user, pass)))
	}

	// versioned API with a common middleware stack
	httpkit.MountUnder(r, "/api/v1", stack, func(api httpkit.Router) {
		swaggerkit.Mount(r, opt.EnableSwagger)
		phttp.MountProfiler(r, "/debug", opt.EnableProfiler)

		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			m.MountRoutes(api)
		}
	})
	return nil
}
