package domain

import (
	"fmt"
	"sort"
)

// Resolution is the outcome of one rate lookup.
type Resolution struct {
	Rate     float64  `json:"rate"`
	Warnings []string `json:"warnings"`
	// TierID is zero when the fallback schedule was used.
	TierID int64 `json:"tier_id,omitempty"`
}

// Schedule is an immutable snapshot of the configured tiers. A schedule
// built from a failed load resolves every lookup through the fallback and
// reports the load error.
type Schedule struct {
	internal map[VehicleClass][]RateTier
	external []RateTier
	loadErr  error
}

func NewSchedule(tiers []RateTier) *Schedule {
	s := &Schedule{internal: map[VehicleClass][]RateTier{}}
	for _, tier := range tiers {
		if !tier.IsInternal {
			s.external = append(s.external, tier)
			continue
		}
		if tier.VehicleClass == nil {
			continue
		}
		s.internal[*tier.VehicleClass] = append(s.internal[*tier.VehicleClass], tier)
	}
	for class := range s.internal {
		SortForLookup(s.internal[class])
	}
	SortForLookup(s.external)
	return s
}

// FailedSchedule returns a schedule that always falls back.
func FailedSchedule(err error) *Schedule {
	return &Schedule{internal: map[VehicleClass][]RateTier{}, loadErr: err}
}

// Candidates returns the tiers consulted for a classification, in lookup
// order.
func (s *Schedule) Candidates(highDisplacement, internal bool) []RateTier {
	if !internal {
		return s.external
	}
	return s.internal[ClassFor(highDisplacement)]
}

func (s *Schedule) Resolve(ratio float64, highDisplacement, internal bool) Resolution {
	if s.loadErr != nil {
		return Resolution{
			Rate:     FallbackRate(ratio, highDisplacement, internal),
			Warnings: []string{fmt.Sprintf("error loading commission rates: %v; using default rate", s.loadErr)},
		}
	}
	return ResolveFrom(s.Candidates(highDisplacement, internal), ratio, highDisplacement, internal)
}

// SortForLookup orders tiers by MinRatio descending, then by id, so the
// most specific lower bound is tried first.
func SortForLookup(tiers []RateTier) {
	sort.SliceStable(tiers, func(i, j int) bool {
		if tiers[i].MinRatio != tiers[j].MinRatio {
			return tiers[i].MinRatio > tiers[j].MinRatio
		}
		return tiers[i].ID < tiers[j].ID
	})
}

// ResolveFrom picks the first sorted tier that contains the ratio. When none
// does, the fallback rate is used and, unless the sale is above target, a
// warning names the missing configuration.
func ResolveFrom(sorted []RateTier, ratio float64, highDisplacement, internal bool) Resolution {
	for _, tier := range sorted {
		if tier.Contains(ratio) {
			return Resolution{Rate: tier.Rate, Warnings: []string{}, TierID: int64(tier.ID)}
		}
	}

	res := Resolution{
		Rate:     FallbackRate(ratio, highDisplacement, internal),
		Warnings: []string{},
	}
	if ratio <= 100 {
		res.Warnings = append(res.Warnings, MissingTierWarning(ratio, highDisplacement, internal))
	}
	return res
}

func MissingTierWarning(ratio float64, highDisplacement, internal bool) string {
	seller := "external"
	if internal {
		seller = "internal"
	}
	class := "standard"
	if highDisplacement {
		class = "high displacement"
	}
	return fmt.Sprintf("no commission rate configured for %s seller - %s (achievement %.2f%%); using default rate", seller, class, ratio)
}
