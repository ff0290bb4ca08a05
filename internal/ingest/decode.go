package ingest

import (
	"encoding/json"

	"quantcost/internal/domain"
)

// parseSnapshot validates one feed message and builds a snapshot.
// Failure classes, in check order: invalid JSON (syntax), not an object
// (top-level shape), missing bids/asks (either side absent or empty
// after per-entry filtering). Individual malformed entries are skipped,
// never fatal to the message.
func parseSnapshot(payload []byte, depth int) (domain.OrderbookSnapshot, *domain.FeedError) {
	var raw any
	if err := json.Unmarshal(payload, &raw); err != nil {
		return domain.OrderbookSnapshot{}, &domain.FeedError{Class: domain.FeedErrInvalidJSON, Err: err}
	}

	obj, ok := raw.(map[string]any)
	if !ok {
		return domain.OrderbookSnapshot{}, &domain.FeedError{Class: domain.FeedErrNotObject}
	}

	bids := parseSide(obj["bids"], depth)
	asks := parseSide(obj["asks"], depth)
	if len(bids) == 0 || len(asks) == 0 {
		return domain.OrderbookSnapshot{}, &domain.FeedError{Class: domain.FeedErrMissingBidsAsks}
	}

	return domain.OrderbookSnapshot{Bids: bids, Asks: asks}, nil
}

// parseSide extracts up to depth [price, amount] string pairs. The cap
// applies to raw entries, so a side with malformed entries in its first
// depth slots keeps fewer levels. Entries that are not arrays, have
// fewer than 2 elements, or carry non-string values are skipped.
func parseSide(v any, depth int) []domain.BookLevel {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}

	n := len(arr)
	if depth > 0 && depth < n {
		n = depth
	}

	levels := make([]domain.BookLevel, 0, n)
	for idx := 0; idx < n; idx++ {
		entry, ok := arr[idx].([]any)
		if !ok || len(entry) < 2 {
			continue
		}
		price, okP := entry[0].(string)
		amount, okA := entry[1].(string)
		if !okP || !okA {
			continue
		}
		levels = append(levels, domain.BookLevel{Price: price, Amount: amount})
	}
	return levels
}
