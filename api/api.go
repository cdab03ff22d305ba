package api

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/Harvester57/openstreetmap-ng/osmxml/profile"
)

// Spec holds the runtime settings of the HTTP glue.
type Spec struct {
	Log   *slog.Logger
	Store Store
	// Profile steers parsing of uploaded documents.
	Profile *profile.Profile
	// MaxBodySize bounds request bodies, both as received and once
	// decompressed.
	MaxBodySize int64
	// Generator is written into every response envelope.
	Generator string
}

// API serves the legacy 0.6 element and upload endpoints.
type API struct {
	Spec Spec
}

// New creates an API, filling unset Spec fields with defaults.
func New(spec *Spec) *API {
	if spec.Log == nil {
		spec.Log = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: slogLevel(),
		}))
	}
	if spec.Profile == nil {
		spec.Profile = profile.Default()
	}
	if spec.MaxBodySize <= 0 {
		spec.MaxBodySize = DefaultMaxBodySize
	}
	if spec.Generator == "" {
		spec.Generator = "osmxml"
	}
	if spec.Store == nil {
		spec.Store = NewMemStore()
	}
	return &API{Spec: *spec}
}

func slogLevel() slog.Level {
	if os.Getenv("DEBUG") != "" {
		return slog.LevelDebug
	}
	return slog.LevelInfo
}

// Handler returns the routed endpoints wrapped in the format and request
// body middlewares.
func (a *API) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/0.6/{type}/{id}", a.handleGetElement)
	mux.HandleFunc("PUT /api/0.6/{type}/create", a.handleCreateElement)
	mux.HandleFunc("POST /api/0.6/changeset/{id}/upload", a.handleUpload)
	return FormatMiddleware(a.BodyMiddleware(mux))
}
