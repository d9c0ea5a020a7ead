package http

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/google/uuid"
	"github.com/kfdigitals/battedball/rpc/common"
	"github.com/kfdigitals/battedball/rpc/transport"
	"github.com/lni/dragonboat/v4/logger"
	"github.com/puzpuzpuz/xsync/v3"
	"github.com/rs/cors"
)

var Logger = logger.GetLogger("transport/http")

const (
	HeaderRequestID = "X-Request-ID"

	// maxRequestIDLength bounds caller supplied request ids
	maxRequestIDLength = 128
)

// NewHttpServerTransport creates the HTTP server transport.
// If set is nil no metrics are recorded and /metrics is not served.
func NewHttpServerTransport(set *metrics.Set) transport.IAPIServerTransport {
	t := &httpServerTransport{
		metrics:  set,
		inFlight: xsync.NewCounter(),
	}
	if set != nil {
		set.NewGauge("battedball_http_requests_in_flight", func() float64 {
			return float64(t.inFlight.Value())
		})
	}
	return t
}

type httpServerTransport struct {
	handler  transport.ServerHandleFunc
	config   common.ServerConfig
	metrics  *metrics.Set
	inFlight *xsync.Counter

	mu     sync.Mutex
	server *http.Server
}

// --------------------------------------------------------------------------
// Interface Methods (docu see transport.IAPIServerTransport)
// --------------------------------------------------------------------------

func (t *httpServerTransport) RegisterHandler(handler transport.ServerHandleFunc) {
	t.handler = handler
}

func (t *httpServerTransport) Listen(config common.ServerConfig) error {
	listener, err := net.Listen("tcp", config.Endpoint)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", config.Endpoint, err)
	}
	return t.Serve(listener, config)
}

func (t *httpServerTransport) Serve(listener net.Listener, config common.ServerConfig) error {
	if t.handler == nil {
		return fmt.Errorf("http transport: no handler registered")
	}
	t.config = config

	timeout := time.Duration(config.TimeoutSecond) * time.Second
	srv := &http.Server{
		Handler:           t.buildHandler(),
		ReadHeaderTimeout: timeout,
		ReadTimeout:       timeout,
		WriteTimeout:      timeout,
	}

	t.mu.Lock()
	t.server = srv
	t.mu.Unlock()

	Logger.Infof("Starting HTTP server on %s", listener.Addr())

	if err := srv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (t *httpServerTransport) Close() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.server == nil {
		return nil
	}
	err := t.server.Close()
	t.server = nil
	return err
}

// --------------------------------------------------------------------------
// Helper Methods
// --------------------------------------------------------------------------

// buildHandler creates the mux and wraps it in the middleware chain
func (t *httpServerTransport) buildHandler() http.Handler {
	mux := http.NewServeMux()

	for _, route := range common.Routes {
		mux.HandleFunc("GET "+route.String(), t.handleRequest(route))
	}
	if t.config.MetricsEnabled && t.metrics != nil {
		mux.HandleFunc("GET "+common.RouteMetrics.String(), t.handleMetrics)
	}

	// outermost middleware is applied last
	var h http.Handler = corsMiddleware(t.config.CORSOrigins, mux)
	if t.metrics != nil {
		h = t.metricsMiddleware(h)
	}
	if t.config.LogLevel == "debug" {
		h = loggerMiddleware(h)
	}
	h = requestIDMiddleware(h)
	return recoverMiddleware(h)
}

// handleRequest converts an HTTP request for route into a common.Request
func (t *httpServerTransport) handleRequest(route common.Route) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		req := &common.Request{
			Route:     route,
			Params:    r.URL.Query(),
			RequestID: requestIDFrom(r.Context()),
		}

		status, contentType, body := t.handler(req)

		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		if _, err := w.Write(body); err != nil {
			Logger.Errorf("Failed to write response for %s: %v", route, err)
		}
	}
}

// handleMetrics writes the metrics set plus process metrics
func (t *httpServerTransport) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/plain; version=0.0.4")
	t.metrics.WritePrometheus(w)
	metrics.WriteProcessMetrics(w)
}

// --------------------------------------------------------------------------
// Middleware
// --------------------------------------------------------------------------

// responseWriter is a custom ResponseWriter that captures the status code
type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

// WriteHeader captures the status code before writing it
func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func wrapWriter(w http.ResponseWriter) *responseWriter {
	if rw, ok := w.(*responseWriter); ok {
		return rw
	}
	return &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
}

// corsMiddleware applies the origin allow-list to /api routes only
func corsMiddleware(origins []string, next http.Handler) http.Handler {
	// cors.Options treats an empty list as "allow all"
	if len(origins) == 0 {
		return next
	}

	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	api := c.Handler(next)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/api/") {
			api.ServeHTTP(w, r)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// metricsMiddleware records request counts, durations and in-flight requests
func (t *httpServerTransport) metricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		t.inFlight.Inc()
		defer t.inFlight.Dec()

		rw := wrapWriter(w)
		next.ServeHTTP(rw, r)

		route := routeLabel(r.URL.Path)
		t.metrics.GetOrCreateCounter(fmt.Sprintf(`battedball_http_requests_total{route=%q,code="%d"}`, route, rw.statusCode)).Inc()
		t.metrics.GetOrCreateHistogram(fmt.Sprintf(`battedball_http_request_duration_seconds{route=%q}`, route)).UpdateDuration(start)
	})
}

// loggerMiddleware logs every request at debug level
func loggerMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		rw := wrapWriter(w)
		next.ServeHTTP(rw, r)

		Logger.Debugf("[%s] %s %s => %d took %s", requestIDFrom(r.Context()), r.Method, r.URL.RequestURI(), rw.statusCode, time.Since(start))
	})
}

type requestIDKey struct{}

// requestIDMiddleware tags every request with an id, reusing the caller's id if present
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(HeaderRequestID)
		if id == "" || len(id) > maxRequestIDLength {
			id = uuid.NewString()
		}
		w.Header().Set(HeaderRequestID, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey{}, id)))
	})
}

func requestIDFrom(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// recoverMiddleware answers a panicking request with a 500 error payload
func recoverMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				Logger.Errorf("panic serving %s: %v", r.URL.Path, rec)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_, _ = w.Write([]byte(`{"error":"internal server error"}`))
			}
		}()
		next.ServeHTTP(w, r)
	})
}

// routeLabel maps a path to a bounded set of metric labels
func routeLabel(path string) string {
	for _, route := range common.Routes {
		if path == route.String() {
			return path
		}
	}
	if path == common.RouteMetrics.String() {
		return path
	}
	return "other"
}
