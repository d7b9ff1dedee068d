package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"shareit/internal/config"
	"shareit/internal/domain"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// HTTPServer exposes the business API consumed by the gateway.
type HTTPServer struct {
	server   *http.Server
	logger   *zerolog.Logger
	users    domain.UserService
	items    domain.ItemService
	bookings domain.BookingService
	requests domain.RequestService
	exports  domain.ExportQueue
}

func NewHTTPServer(
	cfg config.ServerConfig,
	users domain.UserService,
	items domain.ItemService,
	bookings domain.BookingService,
	requests domain.RequestService,
	exports domain.ExportQueue,
	logger *zerolog.Logger,
) *HTTPServer {
	srv := &HTTPServer{
		logger:   logger,
		users:    users,
		items:    items,
		bookings: bookings,
		requests: requests,
		exports:  exports,
	}

	r := chi.NewRouter()
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(logger))

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Route("/users", func(r chi.Router) {
		r.Post("/", srv.handleCreateUser)
		r.Get("/", srv.handleGetAllUsers)
		r.Get("/{userID}", srv.handleGetUser)
		r.Patch("/{userID}", srv.handleUpdateUser)
		r.Delete("/{userID}", srv.handleDeleteUser)
	})

	r.Route("/items", func(r chi.Router) {
		r.Post("/", srv.handleCreateItem)
		r.Get("/", srv.handleGetOwnItems)
		r.Get("/search", srv.handleSearchItems)
		r.Get("/{itemID}", srv.handleGetItem)
		r.Patch("/{itemID}", srv.handleUpdateItem)
		r.Delete("/{itemID}", srv.handleDeleteItem)
		r.Post("/{itemID}/comment", srv.handleCreateComment)
	})

	r.Route("/bookings", func(r chi.Router) {
		r.Post("/", srv.handleCreateBooking)
		r.Get("/", srv.handleListBookingsByBooker)
		r.Get("/owner", srv.handleListBookingsByOwner)
		r.Get("/{bookingID}", srv.handleGetBooking)
		r.Patch("/{bookingID}", srv.handleApproveBooking)
	})

	r.Route("/requests", func(r chi.Router) {
		r.Post("/", srv.handleCreateRequest)
		r.Get("/", srv.handleGetOwnRequests)
		r.Get("/all", srv.handleGetOtherRequests)
		r.Get("/{requestID}", srv.handleGetRequest)
	})

	r.Route("/admin/exports", func(r chi.Router) {
		r.Post("/", srv.handleEnqueueExport)
		r.Get("/", srv.handleListExports)
	})

	srv.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      15 * time.Second,
	}

	return srv
}

func (s *HTTPServer) Handler() http.Handler {
	return s.server.Handler
}

func (s *HTTPServer) Addr() string {
	return s.server.Addr
}

func (s *HTTPServer) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("HTTP API listening")
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *HTTPServer) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
