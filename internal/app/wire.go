package app

import (
	"context"
	"errors"
	"io"
	"net/http"

	"github.com/sirupsen/logrus"

	"clientdesk/internal/api"
	"clientdesk/internal/domain"
	clientsvc "clientdesk/internal/services/clients"
	"clientdesk/internal/services/fetch"
	"clientdesk/internal/services/selection"
	"clientdesk/internal/services/session"
)

// Wire bundles all stores, services, and clients for the CLI and TUI.
type Wire struct {
	Store     domain.KeyValueStore
	API       *api.Client
	Selection *selection.Service
	Session   *session.Service
	Clients   *clientsvc.Service
	Pages     *fetch.Controller
	Log       logrus.FieldLogger

	closer io.Closer
}

// NewWire constructs the dependency graph from cfg.
func NewWire(ctx context.Context, cfg Config) (*Wire, error) {
	if cfg.Settings == nil {
		return nil, errors.New("app: missing settings")
	}
	log := cfg.Log
	if log == nil {
		log = logrus.StandardLogger()
	}

	kv, closer, err := OpenStore(ctx, cfg.Settings.Storage, log)
	if err != nil {
		return nil, err
	}

	// Ensure an HTTP client is available for outbound calls
	httpClient := cfg.HTTP
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.Settings.API.Timeout.Duration}
	}
	ac := api.NewHTTP(cfg.Settings.API.BaseURL,
		api.WithHTTPClient(httpClient),
		api.WithRateLimit(cfg.Settings.API.RequestsPerSecond, cfg.Settings.API.Burst),
		api.WithLogger(log),
	)

	return &Wire{
		Store:     kv,
		API:       ac,
		Selection: selection.New(kv, log),
		Session:   session.New(kv, log),
		Clients:   clientsvc.New(ac, log),
		Pages:     fetch.New(ac, fetch.WithLogger(log)),
		Log:       log,
		closer:    closer,
	}, nil
}

// Close stops in-flight fetches and releases the store.
func (w *Wire) Close() error {
	w.Pages.Close()
	return w.closer.Close()
}
