package listings

import "encoding/json"

// NoteLabel prefixes the system note carrying extracted listing IDs.
const NoteLabel = "These are the corresponding listing IDs for the returned listings:"

// ExtractListingIDs mines {listing_id} references from a GetListings
// result envelope ({"data": <JSON array>, "status": ...}), preserving
// row order. Any structural failure — absent payload, data that is not
// a JSON array of objects, a row without listing_id — yields nil so the
// dispatch cycle continues without a note.
func ExtractListingIDs(raw any) []map[string]any {
	rows := decodeEnvelope(raw)
	if rows == nil {
		return nil
	}

	refs := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		id, ok := row["listing_id"]
		if !ok {
			return nil
		}
		refs = append(refs, map[string]any{"listing_id": id})
	}
	return refs
}

// decodeEnvelope unwraps the {"data": <JSON-encoded rows>, "status": ...}
// tool result shape into its rows.
func decodeEnvelope(raw any) []map[string]any {
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
	return rows
}
