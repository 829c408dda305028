// Package server exposes the agent and its tool surfaces over HTTP.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/stayscout/stayscout/pkg/agent/types"
	"github.com/stayscout/stayscout/pkg/bookings"
	"github.com/stayscout/stayscout/pkg/listings"
)

// ChatService handles a conversational turn.
type ChatService interface {
	Chat(ctx context.Context, req types.ChatRequest) (*types.ChatResponse, error)
}

// ListingSearcher runs a structured listings search.
type ListingSearcher interface {
	Search(ctx context.Context, req listings.SearchRequest) ([]map[string]any, error)
}

// BookingService performs booking mutations and lookups.
type BookingService interface {
	Create(ctx context.Context, p bookings.CreateParams) (map[string]any, error)
	Delete(ctx context.Context, bookingID, customerID int64) (int64, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]map[string]any, error)
}

// Server is the HTTP server for the agent and the booking REST API.
type Server struct {
	router   *chi.Mux
	chat     ChatService
	listings ListingSearcher
	bookings BookingService
	logger   *slog.Logger
}

// Config for the server
type Config struct {
	CORSOrigins []string
}

// New creates a new HTTP server
func New(chat ChatService, searcher ListingSearcher, bookingSvc BookingService, cfg Config, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		router:   chi.NewRouter(),
		chat:     chat,
		listings: searcher,
		bookings: bookingSvc,
		logger:   logger,
	}

	s.setupMiddleware(cfg)
	s.setupRoutes()

	return s
}

func (s *Server) setupMiddleware(cfg Config) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))

	origins := cfg.CORSOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   origins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.healthHandler)

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/chat", s.chatHandler)
		r.Post("/listings", s.searchListingsHandler)
		r.Post("/bookings", s.createBookingHandler)
		r.Get("/bookings", s.getBookingsHandler)
		r.Delete("/bookings/{bookingID}", s.deleteBookingHandler)
	})
}

// Handler returns the HTTP handler
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe starts the server
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.router)
}
