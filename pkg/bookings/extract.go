package bookings

import "encoding/json"

// NoteLabel prefixes the system note carrying extracted booking references.
const NoteLabel = "These are the corresponding booking IDs and listing names for the returned bookings:"

// ExtractBookingRefs mines {booking_id, listing_name} references from a
// GetBookings result envelope, preserving row order. Structural
// failures yield nil; the dispatch cycle continues without a note.
func ExtractBookingRefs(raw any) []map[string]any {
	envelope, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	encoded, ok := envelope["data"].(string)
	if !ok {
		return nil
	}
	var rows []map[string]any
	if err := json.Unmarshal([]byte(encoded), &rows); err != nil {
		return nil
	}

	refs := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		id, okID := row["booking_id"]
		name, okName := row["listing_name"]
		if !okID || !okName {
			return nil
		}
		refs = append(refs, map[string]any{"booking_id": id, "listing_name": name})
	}
	return refs
}
