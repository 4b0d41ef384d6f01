package quest

import (
	"strconv"

	"github.com/mdunham726-coder/wyrdreach/pkg/rng"
)

// RollAvailabilityProbability draws the per-settlement quest availability
// probability, uniform within the settlement tier's configured range. The
// draw is keyed on (seed, settlementID) so it is stable for the lifetime of
// the settlement rather than re-rolled every check.
func RollAvailabilityProbability(seed int32, settlementID, tier string) float64 {
	r, ok := AvailabilityRanges[tier]
	if !ok {
		r = AvailabilityRanges["hamlet"]
	}
	pct := rng.RandInt(seed, []string{settlementID, "availability"}, r.MinPct, r.MaxPct)
	return float64(pct) / 100.0
}

// IsAvailable rolls whether a quest is offered this check, against the
// settlement's fixed availability probability.
func IsAvailable(seed int32, settlementID, tier string, checkIndex int) bool {
	prob := RollAvailabilityProbability(seed, settlementID, tier)
	roll := rng.KeyedFloat(seed, settlementID, "availability_check", strconv.Itoa(checkIndex))
	return roll < prob
}
