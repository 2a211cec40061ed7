package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/lumibyte/lumichat/internal/metrics"
)

// NewRouter assembles the full route table: API endpoints, the metrics
// endpoint, and either static file serving (when webDir is set) or a plain
// health line at the root. CORS wraps the router from the outside so
// preflight OPTIONS requests are answered before route matching; mux route
// middleware never runs for methods the route matchers reject.
func NewRouter(h *Handler, webDir string, logger *zap.Logger) http.Handler {
	r := mux.NewRouter()
	r.Use(instrument(logger))

	h.Register(r)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	if webDir != "" {
		r.PathPrefix("/").Handler(http.FileServer(http.Dir(webDir)))
	} else {
		r.HandleFunc("/", h.Health).Methods(http.MethodGet)
	}

	return corsMiddleware(r)
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusRecorder captures the response code for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

func instrument(logger *zap.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			// Label by route template, not the raw path, to keep the
			// metric cardinality bounded.
			path := r.URL.Path
			if route := mux.CurrentRoute(r); route != nil {
				if tpl, err := route.GetPathTemplate(); err == nil {
					path = tpl
				}
			}
			metrics.HTTPRequestsTotal.WithLabelValues(
				r.Method, path, strconv.Itoa(rec.status)).Inc()

			logger.Debug("handled request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", rec.status))
		})
	}
}
