package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stayscout/stayscout/pkg/agent/types"
	"github.com/stayscout/stayscout/pkg/bookings"
	"github.com/stayscout/stayscout/pkg/listings"
)

type stubChat struct {
	lastReq types.ChatRequest
	resp    *types.ChatResponse
	err     error
}

func (s *stubChat) Chat(ctx context.Context, req types.ChatRequest) (*types.ChatResponse, error) {
	s.lastReq = req
	return s.resp, s.err
}

type stubSearcher struct {
	lastReq listings.SearchRequest
	rows    []map[string]any
	err     error
}

func (s *stubSearcher) Search(ctx context.Context, req listings.SearchRequest) ([]map[string]any, error) {
	s.lastReq = req
	return s.rows, s.err
}

type stubBookings struct {
	created   map[string]any
	deleted   int64
	rows      []map[string]any
	createErr error
	deleteErr error

	lastCreate     bookings.CreateParams
	lastBookingID  int64
	lastCustomerID int64
}

func (s *stubBookings) Create(ctx context.Context, p bookings.CreateParams) (map[string]any, error) {
	s.lastCreate = p
	return s.created, s.createErr
}

func (s *stubBookings) Delete(ctx context.Context, bookingID, customerID int64) (int64, error) {
	s.lastBookingID = bookingID
	s.lastCustomerID = customerID
	return s.deleted, s.deleteErr
}

func (s *stubBookings) ListByCustomer(ctx context.Context, customerID int64) ([]map[string]any, error) {
	s.lastCustomerID = customerID
	return s.rows, nil
}

func newTestServer(chat ChatService, searcher ListingSearcher, bookingSvc BookingService) *Server {
	return New(chat, searcher, bookingSvc, Config{}, nil)
}

func TestChatEndpoint(t *testing.T) {
	t.Run("forwards input and returns output with session", func(t *testing.T) {
		chat := &stubChat{resp: &types.ChatResponse{
			SessionID: "sess-1",
			Output:    `{"summary": "done", "results_to_display": []}`,
		}}
		srv := newTestServer(chat, &stubSearcher{}, &stubBookings{})

		body := `{"input_val": "find me a place near the Mission", "session_id": "sess-1"}`
		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if chat.lastReq.Input != "find me a place near the Mission" || chat.lastReq.SessionID != "sess-1" {
			t.Errorf("chat request not forwarded: %+v", chat.lastReq)
		}

		var resp chatResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		if resp.SessionID != "sess-1" || !strings.Contains(resp.Output, "done") {
			t.Errorf("unexpected response: %+v", resp)
		}
	})

	t.Run("missing input is rejected", func(t *testing.T) {
		srv := newTestServer(&stubChat{}, &stubSearcher{}, &stubBookings{})

		req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
}

func TestListingsEndpoint(t *testing.T) {
	t.Run("rows are returned in the data envelope", func(t *testing.T) {
		searcher := &stubSearcher{rows: []map[string]any{
			{"listing_id": 11, "name": "Sunny Loft"},
		}}
		srv := newTestServer(&stubChat{}, searcher, &stubBookings{})

		body := `{"query_params": {"neighbourhood": {"value": "Mission Bay", "type": "text"}}, "embedding_text": "bright place"}`
		req := httptest.NewRequest(http.MethodPost, "/api/listings", strings.NewReader(body))
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if searcher.lastReq.SimilarityText != "bright place" {
			t.Errorf("similarity text not forwarded: %+v", searcher.lastReq)
		}

		var env dataEnvelope
		if err := json.NewDecoder(rec.Body).Decode(&env); err != nil {
			t.Fatalf("decoding envelope: %v", err)
		}
		if env.Status != "ok" {
			t.Errorf("unexpected status: %s", env.Status)
		}

		var rows []map[string]any
		if err := json.Unmarshal([]byte(env.Data), &rows); err != nil {
			t.Fatalf("envelope data is not a JSON array string: %v", err)
		}
		if len(rows) != 1 || rows[0]["name"] != "Sunny Loft" {
			t.Errorf("unexpected rows: %v", rows)
		}
	})

	t.Run("compiler rejections map to 400", func(t *testing.T) {
		searcher := &stubSearcher{err: listings.ErrUnknownColumn}
		srv := newTestServer(&stubChat{}, searcher, &stubBookings{})

		body := `{"query_params": {"neighborhood": {"value": "x", "type": "text"}}}`
		req := httptest.NewRequest(http.MethodPost, "/api/listings", strings.NewReader(body))
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})
}

func TestBookingEndpoints(t *testing.T) {
	t.Run("create defaults the customer", func(t *testing.T) {
		svc := &stubBookings{created: map[string]any{"booking_id": int64(9)}}
		srv := newTestServer(&stubChat{}, &stubSearcher{}, svc)

		body := `{"listing_id": 42, "start_date": "2026-09-01", "end_date": "2026-09-05"}`
		req := httptest.NewRequest(http.MethodPost, "/api/bookings", strings.NewReader(body))
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if svc.lastCreate.CustomerID != defaultCustomerID {
			t.Errorf("expected default customer, got %d", svc.lastCreate.CustomerID)
		}
		if svc.lastCreate.ListingID != 42 || svc.lastCreate.StartDate != "2026-09-01" {
			t.Errorf("create params not forwarded: %+v", svc.lastCreate)
		}
	})

	t.Run("delete of unknown booking is 404", func(t *testing.T) {
		svc := &stubBookings{deleteErr: bookings.ErrNotFound}
		srv := newTestServer(&stubChat{}, &stubSearcher{}, svc)

		req := httptest.NewRequest(http.MethodDelete, "/api/bookings/77?customer_id=3", nil)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		if rec.Code != http.StatusNotFound {
			t.Errorf("expected 404, got %d", rec.Code)
		}
		if svc.lastBookingID != 77 || svc.lastCustomerID != 3 {
			t.Errorf("delete params not forwarded: %d/%d", svc.lastBookingID, svc.lastCustomerID)
		}
	})

	t.Run("invalid customer id is rejected", func(t *testing.T) {
		srv := newTestServer(&stubChat{}, &stubSearcher{}, &stubBookings{})

		req := httptest.NewRequest(http.MethodGet, "/api/bookings?customer_id=abc", nil)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("expected 400, got %d", rec.Code)
		}
	})

	t.Run("list uses default customer when omitted", func(t *testing.T) {
		svc := &stubBookings{rows: []map[string]any{}}
		srv := newTestServer(&stubChat{}, &stubSearcher{}, svc)

		req := httptest.NewRequest(http.MethodGet, "/api/bookings", nil)
		rec := httptest.NewRecorder()
		srv.Handler().ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if svc.lastCustomerID != defaultCustomerID {
			t.Errorf("expected default customer, got %d", svc.lastCustomerID)
		}
	})
}
