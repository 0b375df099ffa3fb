package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/secmon-lab/airisk/pkg/usecase"
	"github.com/secmon-lab/airisk/pkg/utils/errutil"
	"github.com/secmon-lab/airisk/pkg/utils/logging"
	"github.com/secmon-lab/airisk/pkg/utils/metrics"
)

const (
	serviceName = "AI Risk Assessment API"

	defaultRateLimit  = 100
	defaultRateWindow = 15 * time.Minute
	maxBodyBytes      = 1 << 20
)

// DefaultAllowedOrigins are accepted by CORS when no origin is configured
var DefaultAllowedOrigins = []string{"http://localhost:8080", "http://127.0.0.1:8080"}

type Server struct {
	router         *chi.Mux
	uc             *usecase.UseCases
	authUC         AuthUseCase
	metrics        *metrics.Recorder
	allowedOrigins []string
	rateLimit      int
	rateWindow     time.Duration
}

type Options func(*Server)

func WithAuth(authUC AuthUseCase) Options {
	return func(s *Server) {
		s.authUC = authUC
	}
}

// WithMetrics counts requests and serves /metrics
func WithMetrics(m *metrics.Recorder) Options {
	return func(s *Server) {
		s.metrics = m
	}
}

func WithAllowedOrigins(origins []string) Options {
	return func(s *Server) {
		s.allowedOrigins = origins
	}
}

// WithRateLimit allows limit requests per client IP within window on /api/
func WithRateLimit(limit int, window time.Duration) Options {
	return func(s *Server) {
		s.rateLimit = limit
		s.rateWindow = window
	}
}

func New(uc *usecase.UseCases, opts ...Options) *Server {
	r := chi.NewRouter()

	s := &Server{
		router:         r,
		uc:             uc,
		authUC:         uc.Auth,
		allowedOrigins: DefaultAllowedOrigins,
		rateLimit:      defaultRateLimit,
		rateWindow:     defaultRateWindow,
	}
	for _, opt := range opts {
		opt(s)
	}

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(accessLogger(s.metrics))
	r.Use(middleware.Recoverer)
	r.Use(securityHeaders)
	r.Use(corsMiddleware(s.allowedOrigins))

	r.Get("/health", healthHandler(uc))

	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	if s.authUC != nil {
		r.Route("/auth", func(r chi.Router) {
			r.Get("/login", authLoginHandler(s.authUC))
			r.Get("/callback", authCallbackHandler(s.authUC))
			r.Get("/logout", authLogoutHandler(s.authUC))
			r.Post("/logout", authLogoutHandler(s.authUC))
			r.With(authMiddleware(s.authUC)).Get("/me", authMeHandler())
		})
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(rateLimiter(s.rateLimit, s.rateWindow))
		r.Use(bodyLimit(maxBodyBytes))
		r.Use(authMiddleware(s.authUC))

		r.Post("/score", scoreHandler(uc))
		r.Route("/assessments", func(r chi.Router) {
			r.Post("/", createAssessmentHandler(uc))
			r.Get("/", listAssessmentsHandler(uc))
			r.Get("/{id}", getAssessmentHandler(uc))
			r.Get("/{id}/export", exportAssessmentHandler(uc))
			r.Delete("/{id}", deleteAssessmentHandler(uc))
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		errutil.WriteError(r.Context(), w, http.StatusNotFound, "The requested endpoint does not exist")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		errutil.WriteError(r.Context(), w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// accessLogger is a middleware that logs HTTP requests
func accessLogger(m *metrics.Recorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

			logger := logging.Default().With("request_id", middleware.GetReqID(r.Context()))
			ctx := logging.With(r.Context(), logger)

			defer func() {
				status := ww.Status()
				if status == 0 {
					status = http.StatusOK
				}
				m.HTTPRequest(r.Method, status)
				logger.Info("access",
					"method", r.Method,
					"path", r.URL.Path,
					"status", status,
					"bytes", ww.BytesWritten(),
					"duration", time.Since(start),
					"remote", r.RemoteAddr,
					"user_agent", r.UserAgent(),
				)
			}()

			next.ServeHTTP(ww, r.WithContext(ctx))
		})
	}
}
