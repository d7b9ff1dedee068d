package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"sync"
	"time"

	"shareit/internal/apperr"
	"shareit/internal/config"
	"shareit/internal/domain"
	"shareit/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"
)

const userIDHeader = "X-Sharer-User-Id"

// Server is the public edge. It validates request shape, rate limits callers,
// caches GET responses and forwards everything else to the business API.
type Server struct {
	server   *http.Server
	client   *Client
	cache    domain.Cache
	cacheTTL time.Duration
	logger   *zerolog.Logger

	limiters sync.Map
	rps      rate.Limit
	burst    int
}

type validator func(body []byte) error

func NewServer(cfg config.GatewayConfig, client *Client, cache domain.Cache, logger *zerolog.Logger) *Server {
	s := &Server{
		client:   client,
		cache:    cache,
		cacheTTL: time.Duration(cfg.CacheTTL) * time.Second,
		logger:   logger,
		rps:      rate.Limit(cfg.RateLimit.RPS),
		burst:    cfg.RateLimit.Burst,
	}

	r := chi.NewRouter()
	r.Use(s.requestIDMiddleware)
	r.Use(s.rateLimitMiddleware)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/", s.write(validateCreateUser, false, "gw:"))
		r.Patch("/{userID}", s.write(validateUpdateUser, false, "gw:"))
		r.Delete("/{userID}", s.write(nil, false, "gw:"))
		r.Get("/", s.cached("users", false))
		r.Get("/{userID}", s.cached("users", false))
	})

	r.Route("/items", func(r chi.Router) {
		r.Post("/", s.write(validateCreateItem, true, "gw:items", "gw:requests"))
		r.Patch("/{itemID}", s.write(nil, true, "gw:items"))
		r.Delete("/{itemID}", s.write(nil, true, "gw:items", "gw:requests"))
		r.Post("/{itemID}/comment", s.write(validateCreateComment, true, "gw:items"))
		r.Get("/", s.cached("items", true))
		r.Get("/search", s.cached("items", true))
		r.Get("/{itemID}", s.cached("items", true))
	})

	r.Route("/bookings", func(r chi.Router) {
		r.Post("/", s.write(validateCreateBooking, true, "gw:bookings", "gw:items"))
		r.Patch("/{bookingID}", s.handleApproveBooking)
		r.Get("/", s.handleListBookings)
		r.Get("/owner", s.handleListBookings)
		r.Get("/{bookingID}", s.cached("bookings", true))
	})

	r.Route("/requests", func(r chi.Router) {
		r.Post("/", s.write(validateCreateRequest, true, "gw:requests"))
		r.Get("/", s.cached("requests", true))
		r.Get("/all", s.cached("requests", true))
		r.Get("/{requestID}", s.cached("requests", true))
	})

	r.Route("/admin/exports", func(r chi.Router) {
		r.Post("/", s.write(nil, false))
		r.Get("/", s.handleForward)
	})

	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return s
}

func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("gateway listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Request-Id") == "" {
			r.Header.Set("X-Request-Id", uuid.NewString())
		}
		w.Header().Set("X-Request-Id", r.Header.Get("X-Request-Id"))
		next.ServeHTTP(w, r)
	})
}

func (s *Server) rateLimitMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Header.Get(userIDHeader)
		if key == "" {
			key = r.RemoteAddr
		}
		val, _ := s.limiters.LoadOrStore(key, rate.NewLimiter(s.rps, s.burst))
		if !val.(*rate.Limiter).Allow() {
			s.writeError(w, http.StatusTooManyRequests, "too many requests")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// write builds a handler for mutating routes: optional body validation, then
// forwarding, then cache invalidation for the named prefixes.
func (s *Server) write(validate validator, requireUser bool, invalidate ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if requireUser {
			if err := s.checkUserHeader(r); err != nil {
				s.writeValidationError(w, err)
				return
			}
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			s.writeError(w, http.StatusBadRequest, "failed to read request body")
			return
		}
		if validate != nil {
			if err := validate(body); err != nil {
				s.writeValidationError(w, err)
				return
			}
		}

		resp, err := s.client.Do(r.Context(), r.Method, r.URL.Path, r.URL.RawQuery, r.Header, body)
		if err != nil {
			s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("upstream call failed")
			s.writeError(w, http.StatusBadGateway, "upstream server unavailable")
			return
		}

		if resp.Status < http.StatusBadRequest {
			for _, prefix := range invalidate {
				if err := s.cache.DeleteByPrefix(r.Context(), prefix); err != nil {
					s.logger.Warn().Err(err).Str("prefix", prefix).Msg("cache invalidation failed")
				}
			}
		}
		s.writeUpstream(w, resp)
	}
}

// cached builds a handler for GET routes backed by the response cache.
func (s *Server) cached(resource string, requireUser bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if requireUser {
			if err := s.checkUserHeader(r); err != nil {
				s.writeValidationError(w, err)
				return
			}
		}
		s.forwardCached(w, r, resource)
	}
}

func (s *Server) forwardCached(w http.ResponseWriter, r *http.Request, resource string) {
	key := fmt.Sprintf("gw:%s:%s:%s?%s", resource, r.Header.Get(userIDHeader), r.URL.Path, r.URL.RawQuery)

	if data, found, err := s.cache.Get(r.Context(), key); err == nil && found {
		metrics.IncCacheLookup("hit")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
		return
	}
	metrics.IncCacheLookup("miss")

	resp, err := s.client.Do(r.Context(), r.Method, r.URL.Path, r.URL.RawQuery, r.Header, nil)
	if err != nil {
		s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("upstream call failed")
		s.writeError(w, http.StatusBadGateway, "upstream server unavailable")
		return
	}

	if resp.Status == http.StatusOK {
		if err := s.cache.Set(r.Context(), key, resp.Body, s.cacheTTL); err != nil {
			s.logger.Warn().Err(err).Str("key", key).Msg("cache write failed")
		}
	}
	s.writeUpstream(w, resp)
}

func (s *Server) handleForward(w http.ResponseWriter, r *http.Request) {
	resp, err := s.client.Do(r.Context(), r.Method, r.URL.Path, r.URL.RawQuery, r.Header, nil)
	if err != nil {
		s.logger.Error().Err(err).Str("path", r.URL.Path).Msg("upstream call failed")
		s.writeError(w, http.StatusBadGateway, "upstream server unavailable")
		return
	}
	s.writeUpstream(w, resp)
}

func (s *Server) handleApproveBooking(w http.ResponseWriter, r *http.Request) {
	if err := s.checkUserHeader(r); err != nil {
		s.writeValidationError(w, err)
		return
	}
	if _, err := strconv.ParseBool(r.URL.Query().Get("approved")); err != nil {
		s.writeError(w, http.StatusBadRequest, "approved must be true or false")
		return
	}
	s.write(nil, true, "gw:bookings", "gw:items")(w, r)
}

func (s *Server) handleListBookings(w http.ResponseWriter, r *http.Request) {
	if err := s.checkUserHeader(r); err != nil {
		s.writeValidationError(w, err)
		return
	}
	if err := validateBookingState(r.URL.Query().Get("state")); err != nil {
		s.writeValidationError(w, err)
		return
	}
	s.forwardCached(w, r, "bookings")
}

func (s *Server) checkUserHeader(r *http.Request) error {
	raw := r.Header.Get(userIDHeader)
	if raw == "" {
		return apperr.Validation("%s header is required", userIDHeader)
	}
	if _, err := strconv.ParseInt(raw, 10, 64); err != nil {
		return apperr.Validation("%s header must be an integer", userIDHeader)
	}
	return nil
}

func (s *Server) writeValidationError(w http.ResponseWriter, err error) {
	s.writeError(w, http.StatusBadRequest, err.Error())
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(fmt.Sprintf("{\"error\":%q}", msg)))
}

func (s *Server) writeUpstream(w http.ResponseWriter, resp *Response) {
	if resp.ContentType != "" {
		w.Header().Set("Content-Type", resp.ContentType)
	}
	w.WriteHeader(resp.Status)
	_, _ = w.Write(resp.Body)
}
