// Package swaggerkit provides OpenAPI swagger UI integration for HTTP services
package swaggerkit

import (
	"encoding/json"
	"net/http"
)

// SpecMutator lets modules tweak the parsed swagger spec before it is served
type SpecMutator func(map[string]any)

// mutators is the in process registry for spec mutators
var mutators []SpecMutator

// Register adds a spec mutator for swagger JSON
// call this from module init so it is wired automatically
func Register(m SpecMutator) {
	if m != nil {
		mutators = append(mutators, m)
	}
}

// docReader is a seam so tests can inject invalid JSON
var docReader = func() string { return baseSpec }

// serveDocJSON serves swagger JSON and lets modules adjust details
func serveDocJSON() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		raw := docReader()

		var spec map[string]any
		if err := json.Unmarshal([]byte(raw), &spec); err != nil {
			http.Error(w, "spec parse error", http.StatusInternalServerError)
			return
		}

		ensureServers(spec, "/api/v1")
		ensureErrorResponseDefinition(spec)

		for _, m := range mutators {
			m(spec)
		}

		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		_ = json.NewEncoder(w).Encode(spec)
	}
}

// ensureServers makes sure the document has a servers array
func ensureServers(spec map[string]any, url string) {
	if _, ok := spec["openapi"]; !ok {
		spec["openapi"] = "3.0.3"
	}
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{
			map[string]any{"url": url},
		}
	}
}

// ensureErrorResponseDefinition creates a simple error envelope model if missing
// kept minimal so it does not drift from the runtime wire
func ensureErrorResponseDefinition(spec map[string]any) {
	comps, ok := spec["components"].(map[string]any)
	if !ok {
		comps = map[string]any{}
		spec["components"] = comps
	}
	schemas, ok := comps["schemas"].(map[string]any)
	if !ok {
		schemas = map[string]any{}
		comps["schemas"] = schemas
	}
	if _, ok := schemas["ErrorResponse"]; ok {
		return
	}
	schemas["ErrorResponse"] = map[string]any{
		"type":        "object",
		"description": "Standard error response",
		"properties": map[string]any{
			"status_code": map[string]any{"type": "integer", "format": "int32"},
			"status":      map[string]any{"type": "string"},
			"code":        map[string]any{"type": "integer", "format": "int32"},
			"error":       map[string]any{"type": "string"},
			"field":       map[string]any{"type": "string"},
			"request_id":  map[string]any{"type": "string"},
		},
		"required": []any{"status_code", "status"},
	}
}

// baseSpec is maintained by hand; keep paths in sync with the mounted modules
const baseSpec = `{
  "openapi": "3.0.3",
  "info": {
    "title": "Tariff Description Search API",
    "description": "Whole-token substring search over normalized tariff classification descriptions.",
    "version": "1.0.0"
  },
  "paths": {
    "/search": {
      "post": {
        "summary": "Search normalized descriptions for a whole-token phrase",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "required": ["query"],
                "properties": {
                  "query": {"type": "string"},
                  "options": {"$ref": "#/components/schemas/PipelineOptions"},
                  "limit": {"type": "integer", "minimum": 1, "maximum": 500}
                }
              }
            }
          }
        },
        "responses": {
          "200": {"description": "matching rows"},
          "400": {"description": "malformed request"},
          "422": {"description": "word-to-number conversion failed"}
        }
      }
    },
    "/dataset/rows": {
      "post": {
        "summary": "Page through the loaded dataset",
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": {
                "type": "object",
                "properties": {
                  "page": {"type": "integer", "minimum": 1},
                  "page_size": {"type": "integer", "minimum": 1, "maximum": 200},
                  "hs_prefix": {"type": "string"}
                }
              }
            }
          }
        },
        "responses": {"200": {"description": "dataset rows"}}
      }
    },
    "/dataset/info": {
      "get": {
        "summary": "Describe the active dataset build",
        "responses": {"200": {"description": "build metadata"}}
      }
    },
    "/meta/health": {"get": {"summary": "Liveness", "responses": {"200": {"description": "ok"}}}},
    "/meta/ready": {"get": {"summary": "Readiness", "responses": {"200": {"description": "ok"}}}},
    "/meta/version": {"get": {"summary": "Build info", "responses": {"200": {"description": "ok"}}}},
    "/meta/pipeline": {"get": {"summary": "Default pipeline options", "responses": {"200": {"description": "ok"}}}}
  },
  "components": {
    "schemas": {
      "PipelineOptions": {
        "type": "object",
        "properties": {
          "remove_html": {"type": "boolean"},
          "extra_whitespace": {"type": "boolean"},
          "accented_chars": {"type": "boolean"},
          "contractions": {"type": "boolean"},
          "lowercase": {"type": "boolean"},
          "stop_words": {"type": "boolean"},
          "punctuations": {"type": "boolean"},
          "special_chars": {"type": "boolean"},
          "remove_num": {"type": "boolean"},
          "convert_num": {"type": "boolean"},
          "lemmatization": {"type": "boolean"}
        }
      }
    }
  }
}`
