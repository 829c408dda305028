package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/stayscout/stayscout/pkg/agent/types"
	"github.com/stayscout/stayscout/pkg/bookings"
	"github.com/stayscout/stayscout/pkg/listings"
)

// defaultCustomerID is used when a request does not identify the customer.
const defaultCustomerID = 1

type chatRequest struct {
	SessionID string `json:"session_id,omitempty"`
	Input     string `json:"input_val"`
}

type chatResponse struct {
	SessionID string `json:"session_id"`
	Output    string `json:"output"`
}

// dataEnvelope wraps query results the way tool consumers expect them:
// the rows as a single JSON-encoded string plus a status marker.
type dataEnvelope struct {
	Data   string `json:"data"`
	Status string `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "healthy"})
}

func (s *Server) chatHandler(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Input == "" {
		s.writeError(w, http.StatusBadRequest, "input_val is required")
		return
	}

	resp, err := s.chat.Chat(r.Context(), types.ChatRequest{
		SessionID: req.SessionID,
		Input:     req.Input,
	})
	if err != nil {
		s.logger.Error("chat turn failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "an unexpected error occurred")
		return
	}

	s.writeJSON(w, http.StatusOK, chatResponse{
		SessionID: resp.SessionID,
		Output:    resp.Output,
	})
}

func (s *Server) searchListingsHandler(w http.ResponseWriter, r *http.Request) {
	var req listings.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	rows, err := s.listings.Search(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, listings.ErrUnknownColumn),
			errors.Is(err, listings.ErrInvalidKind),
			errors.Is(err, listings.ErrInvalidOperator):
			s.writeError(w, http.StatusBadRequest, err.Error())
		default:
			s.logger.Error("listing search failed", "error", err)
			s.writeError(w, http.StatusInternalServerError, "an unexpected error occurred")
		}
		return
	}

	s.writeEnvelope(w, rows)
}

type createBookingRequest struct {
	ListingID  int64  `json:"listing_id"`
	CustomerID int64  `json:"customer_id,omitempty"`
	StartDate  string `json:"start_date,omitempty"`
	EndDate    string `json:"end_date,omitempty"`
}

func (s *Server) createBookingHandler(w http.ResponseWriter, r *http.Request) {
	var req createBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.ListingID == 0 {
		s.writeError(w, http.StatusBadRequest, "listing_id is required")
		return
	}
	if req.CustomerID == 0 {
		req.CustomerID = defaultCustomerID
	}

	row, err := s.bookings.Create(r.Context(), bookings.CreateParams{
		ListingID:  req.ListingID,
		CustomerID: req.CustomerID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	})
	if err != nil {
		s.logger.Error("booking creation failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "an unexpected error occurred")
		return
	}

	s.writeEnvelope(w, row)
}

func (s *Server) getBookingsHandler(w http.ResponseWriter, r *http.Request) {
	customerID, err := customerIDParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	rows, err := s.bookings.ListByCustomer(r.Context(), customerID)
	if err != nil {
		s.logger.Error("booking lookup failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "an unexpected error occurred")
		return
	}

	s.writeEnvelope(w, rows)
}

func (s *Server) deleteBookingHandler(w http.ResponseWriter, r *http.Request) {
	bookingID, err := strconv.ParseInt(chi.URLParam(r, "bookingID"), 10, 64)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid booking id")
		return
	}
	customerID, err := customerIDParam(r)
	if err != nil {
		s.writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	deleted, err := s.bookings.Delete(r.Context(), bookingID, customerID)
	if err != nil {
		if errors.Is(err, bookings.ErrNotFound) {
			s.writeError(w, http.StatusNotFound, "booking not found")
			return
		}
		s.logger.Error("booking deletion failed", "error", err)
		s.writeError(w, http.StatusInternalServerError, "an unexpected error occurred")
		return
	}

	s.writeEnvelope(w, map[string]any{"booking_id": deleted})
}

func customerIDParam(r *http.Request) (int64, error) {
	raw := r.URL.Query().Get("customer_id")
	if raw == "" {
		return defaultCustomerID, nil
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errors.New("invalid customer_id")
	}
	return id, nil
}

// writeEnvelope JSON-encodes payload into the data/status envelope.
func (s *Server) writeEnvelope(w http.ResponseWriter, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("encoding envelope payload", "error", err)
		s.writeError(w, http.StatusInternalServerError, "an unexpected error occurred")
		return
	}
	s.writeJSON(w, http.StatusOK, dataEnvelope{Data: string(data), Status: "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("encoding response", "error", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, errorResponse{Error: msg})
}
