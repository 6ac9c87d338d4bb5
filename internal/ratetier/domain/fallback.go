package domain

// FallbackRate is the built-in schedule used when no configured tier
// matches.
func FallbackRate(ratio float64, highDisplacement, internal bool) float64 {
	if !internal || highDisplacement {
		if ratio >= 97 {
			return 0.012
		}
		return 0.008
	}
	switch {
	case ratio >= 100:
		return 0.020
	case ratio >= 97:
		return 0.016
	case ratio >= 95:
		return 0.012
	default:
		return 0.010
	}
}

// DefaultTiers expresses the fallback schedule as configurable tiers. They
// are open ended; lookup order makes the highest lower bound win.
func DefaultTiers() []RateTier {
	high := VehicleClassHighDisplacement
	standard := VehicleClassStandard
	return []RateTier{
		{IsInternal: true, VehicleClass: &high, MinRatio: 97, Rate: 0.012},
		{IsInternal: true, VehicleClass: &high, MinRatio: 0, Rate: 0.008},
		{IsInternal: true, VehicleClass: &standard, MinRatio: 100, Rate: 0.020},
		{IsInternal: true, VehicleClass: &standard, MinRatio: 97, Rate: 0.016},
		{IsInternal: true, VehicleClass: &standard, MinRatio: 95, Rate: 0.012},
		{IsInternal: true, VehicleClass: &standard, MinRatio: 0, Rate: 0.010},
		{IsInternal: false, MinRatio: 97, Rate: 0.012},
		{IsInternal: false, MinRatio: 0, Rate: 0.008},
	}
}
