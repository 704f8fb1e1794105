package router

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humago"

	"github.com/dtroode/cardkeeper-server/internal/api/http/handler"
	"github.com/dtroode/cardkeeper-server/internal/api/http/middleware"
	"github.com/dtroode/cardkeeper-server/internal/logger"
	"github.com/dtroode/cardkeeper-server/internal/model"
)

const readinessTimeout = 2 * time.Second

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Router builds the HTTP handler of the card API.
type Router struct {
	title          string
	version        string
	cardService    handler.CardService
	contactService handler.ContactService
	imageService   handler.ImageService
	verifier       model.IdentityVerifier
	contextManager model.ContextManager
	pinger         Pinger
	writeMetrics   func(io.Writer)
	logger         *logger.Logger
}

// Services groups the business services exposed over HTTP.
type Services struct {
	Card    handler.CardService
	Contact handler.ContactService
	Image   handler.ImageService
}

// New creates new Router instance.
// writeMetrics may add process-wide metrics to the /metrics output; nil is allowed.
func New(
	title, version string,
	services Services,
	verifier model.IdentityVerifier,
	contextManager model.ContextManager,
	pinger Pinger,
	writeMetrics func(io.Writer),
	logger *logger.Logger,
) *Router {
	return &Router{
		title:          title,
		version:        version,
		cardService:    services.Card,
		contactService: services.Contact,
		imageService:   services.Image,
		verifier:       verifier,
		contextManager: contextManager,
		pinger:         pinger,
		writeMetrics:   writeMetrics,
		logger:         logger,
	}
}

// Register wires health, metrics and API routes into a single handler.
func (r *Router) Register() http.Handler {
	huma.NewError = handler.NewError

	set := metrics.NewSet()
	if r.writeMetrics != nil {
		set.RegisterMetricsWriter(r.writeMetrics)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/liveness", func(http.ResponseWriter, *http.Request) {})
	mux.HandleFunc("/readiness", r.readiness)
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, _ *http.Request) { set.WritePrometheus(w) })

	config := huma.DefaultConfig(r.title, r.version)
	config.CreateHooks = nil
	root := humago.New(mux, config)

	api := huma.NewGroup(root, "/api")
	api.UseMiddleware(
		middleware.NewRecover(api, r.logger).Handle,
		middleware.NewLogging(r.logger).Handle,
		middleware.NewMetrics(set).Handle,
		middleware.NewBodyLimit(api).Handle,
		middleware.NewAuthenticate(api, r.verifier, r.contextManager, r.logger).Handle,
	)

	handler.NewCard(r.cardService, r.contextManager, r.logger).Register(api)
	handler.NewContact(r.contactService, r.contextManager, r.logger).Register(api)
	handler.NewImage(r.imageService, r.contextManager, r.logger).Register(api)

	return mux
}

func (r *Router) readiness(w http.ResponseWriter, req *http.Request) {
	ctx, cancel := context.WithTimeout(req.Context(), readinessTimeout)
	defer cancel()

	if err := r.pinger.Ping(ctx); err != nil {
		r.logger.Warn("Router: readiness check failed", "error", err.Error())
		http.Error(w, "card repository unavailable", http.StatusServiceUnavailable)
		return
	}
}
