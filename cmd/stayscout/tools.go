package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/stayscout/stayscout/pkg/agent/tools"
	"github.com/stayscout/stayscout/pkg/bookings"
	"github.com/stayscout/stayscout/pkg/listings"
	"github.com/stayscout/stayscout/pkg/websearch"
)

// chatCustomerID identifies the customer behind the conversational
// interface. The chat surface serves a single signed-in customer, and
// the system prompt instructs the model to pass this value.
const chatCustomerID = 1

type listingSearcher interface {
	Search(ctx context.Context, req listings.SearchRequest) ([]map[string]any, error)
}

type bookingService interface {
	Create(ctx context.Context, p bookings.CreateParams) (map[string]any, error)
	Delete(ctx context.Context, bookingID, customerID int64) (int64, error)
	ListByCustomer(ctx context.Context, customerID int64) ([]map[string]any, error)
}

func registerTools(r *tools.Registry, listingSvc listingSearcher, bookingSvc bookingService) {
	r.Register(getListingsTool(listingSvc))
	r.Register(createBookingTool(bookingSvc))
	r.Register(deleteBookingTool(bookingSvc))
	r.Register(getBookingsTool(bookingSvc))
}

// envelope packs rows into the data/status shape tool results use.
func envelope(payload any) (map[string]any, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding tool result: %w", err)
	}
	return map[string]any{"data": string(data), "status": "ok"}, nil
}

func getListingsTool(svc listingSearcher) *tools.Tool {
	return tools.NewTool("GetListings").
		Description("Search the listings database. query_params maps column names to filter objects with a value, a type (text, number, currency or boolean) and an optional comparison symbol. embedding_text ranks results by similarity to a free-text description.").
		ObjectParam("query_params", "Filters keyed by column name", false).
		StringParam("embedding_text", "Free-text description for similarity ranking", false).
		Handler(func(ctx context.Context, input map[string]any) (any, error) {
			raw, err := json.Marshal(input)
			if err != nil {
				return nil, fmt.Errorf("encoding search input: %w", err)
			}
			var req listings.SearchRequest
			if err := json.Unmarshal(raw, &req); err != nil {
				return nil, fmt.Errorf("decoding search input: %w", err)
			}

			rows, err := svc.Search(ctx, req)
			if err != nil {
				return nil, err
			}
			return envelope(rows)
		}).
		Extractor(listings.NoteLabel, listings.ExtractListingIDs).
		Build()
}

func createBookingTool(svc bookingService) *tools.Tool {
	return tools.NewTool("CreateBooking").
		Description("Book a listing for the customer. Dates are optional and use the YYYY-MM-DD format.").
		IntParam("listing_id", "Identifier of the listing to book", true).
		IntParam("customer_id", "Identifier of the customer making the booking", false).
		StringParam("start_date", "Check-in date (YYYY-MM-DD)", false).
		StringParam("end_date", "Check-out date (YYYY-MM-DD)", false).
		Handler(func(ctx context.Context, input map[string]any) (any, error) {
			params := bookings.CreateParams{
				ListingID:  toInt64(input["listing_id"]),
				CustomerID: customerID(input),
			}
			if v, ok := input["start_date"].(string); ok {
				params.StartDate = v
			}
			if v, ok := input["end_date"].(string); ok {
				params.EndDate = v
			}

			row, err := svc.Create(ctx, params)
			if err != nil {
				return nil, err
			}
			return envelope(row)
		}).
		Build()
}

func deleteBookingTool(svc bookingService) *tools.Tool {
	return tools.NewTool("DeleteBooking").
		Description("Cancel one of the customer's bookings by its booking_id.").
		IntParam("booking_id", "Identifier of the booking to cancel", true).
		IntParam("customer_id", "Identifier of the customer who owns the booking", false).
		Handler(func(ctx context.Context, input map[string]any) (any, error) {
			deleted, err := svc.Delete(ctx, toInt64(input["booking_id"]), customerID(input))
			if err != nil {
				return nil, err
			}
			return envelope(map[string]any{"booking_id": deleted})
		}).
		Build()
}

func getBookingsTool(svc bookingService) *tools.Tool {
	return tools.NewTool("GetBookings").
		Description("List the customer's current bookings with listing details.").
		IntParam("customer_id", "Identifier of the customer whose bookings are returned", false).
		Handler(func(ctx context.Context, input map[string]any) (any, error) {
			rows, err := svc.ListByCustomer(ctx, customerID(input))
			if err != nil {
				return nil, err
			}
			return envelope(rows)
		}).
		Extractor(bookings.NoteLabel, bookings.ExtractBookingRefs).
		Build()
}

func webSearchTool(client *websearch.Client) *tools.Tool {
	return tools.NewTool("WebSearch").
		Description("Search the open web for questions the listings database cannot answer, such as neighbourhood guides or local events.").
		StringParam("query", "The search query", true).
		Handler(func(ctx context.Context, input map[string]any) (any, error) {
			query, ok := input["query"].(string)
			if !ok || query == "" {
				return nil, fmt.Errorf("query must be a non-empty string")
			}
			results, err := client.Search(ctx, query)
			if err != nil {
				return nil, err
			}
			return envelope(results)
		}).
		Build()
}

// customerID reads the customer identifier from tool input, falling
// back to the chat customer when absent or unusable.
func customerID(input map[string]any) int64 {
	if v, ok := input["customer_id"]; ok {
		if id := toInt64(v); id != 0 {
			return id
		}
	}
	return chatCustomerID
}

// toInt64 converts JSON-decoded numbers, which arrive as float64.
func toInt64(v any) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	default:
		return 0
	}
}
