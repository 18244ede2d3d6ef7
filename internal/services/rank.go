package services

import (
	"sort"

	"market-price-service/internal/domain"
)

// Sort keys accepted by RankRecords.
const (
	SortByPrice     = "price"
	SortByUnitPrice = "unit_price"
)

// RankRecords sorts records ascending by the requested key and truncates
// to limit. The sort is stable, so ties keep their aggregation order.
// Unknown keys fall back to price. A non-positive limit means no
// truncation. The input slice is not modified.
func RankRecords(records []domain.EnrichedPriceRecord, sortBy string, limit int) []domain.EnrichedPriceRecord {
	out := make([]domain.EnrichedPriceRecord, len(records))
	copy(out, records)

	switch sortBy {
	case SortByUnitPrice:
		// Parse each label once; +Inf entries stay behind all finite ones.
		type keyed struct {
			rec domain.EnrichedPriceRecord
			key float64
		}
		ks := make([]keyed, len(out))
		for i, r := range out {
			ks[i] = keyed{rec: r, key: ParseUnitPrice(r.UnitPrice)}
		}
		sort.SliceStable(ks, func(i, j int) bool { return ks[i].key < ks[j].key })
		for i, k := range ks {
			out[i] = k.rec
		}
	default:
		sort.SliceStable(out, func(i, j int) bool { return out[i].Price < out[j].Price })
	}

	if limit > 0 && limit < len(out) {
		out = out[:limit]
	}
	return out
}
