package flightops

import (
	"strings"
	"sync"
)

const (
	DefaultFuelDensityKgPerLiter = 0.72
	DefaultCrewMemberWeightKg    = 80.0
)

// AircraftWeights is the reference data a weight check needs.
type AircraftWeights struct {
	Model              string
	EmptyWeightKg      float64
	MaxTakeoffWeightKg float64
}

// LoadSheet is what is put on board for one leg.
type LoadSheet struct {
	PayloadKg  float64
	FuelLiters float64
	CrewCount  int
}

// WeightAssumptions are the fixed conversion factors applied to a load sheet.
type WeightAssumptions struct {
	FuelDensityKgPerLiter float64
	CrewMemberWeightKg    float64
}

func DefaultWeightAssumptions() WeightAssumptions {
	return WeightAssumptions{
		FuelDensityKgPerLiter: DefaultFuelDensityKgPerLiter,
		CrewMemberWeightKg:    DefaultCrewMemberWeightKg,
	}
}

type WeightBalance struct {
	TotalWeight  float64 `json:"total_weight"`
	WithinLimits bool    `json:"within_limits"`
}

// WeightPolicy decides whether a computed takeoff weight is acceptable for an aircraft type.
type WeightPolicy interface {
	WithinLimits(ac AircraftWeights, totalWeight float64) bool
}

// WeightPolicyFunc adapts a plain function to WeightPolicy.
type WeightPolicyFunc func(ac AircraftWeights, totalWeight float64) bool

func (f WeightPolicyFunc) WithinLimits(ac AircraftWeights, totalWeight float64) bool {
	return f(ac, totalWeight)
}

// MaxTakeoffWeightPolicy accepts any weight up to the certified MTOW.
type MaxTakeoffWeightPolicy struct{}

func (MaxTakeoffWeightPolicy) WithinLimits(ac AircraftWeights, totalWeight float64) bool {
	return totalWeight <= ac.MaxTakeoffWeightKg
}

// PolicyRegistry maps aircraft models to weight policies.
type PolicyRegistry struct {
	mu       sync.RWMutex
	byModel  map[string]WeightPolicy
	fallback WeightPolicy
}

func NewPolicyRegistry() *PolicyRegistry {
	return &PolicyRegistry{
		byModel:  make(map[string]WeightPolicy),
		fallback: MaxTakeoffWeightPolicy{},
	}
}

func (r *PolicyRegistry) Register(model string, policy WeightPolicy) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.byModel[strings.ToUpper(strings.TrimSpace(model))] = policy
}

func (r *PolicyRegistry) For(model string) WeightPolicy {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if p, ok := r.byModel[strings.ToUpper(strings.TrimSpace(model))]; ok {
		return p
	}
	return r.fallback
}

// ComputeWeightBalance totals the takeoff weight and applies the policy.
func ComputeWeightBalance(ac AircraftWeights, load LoadSheet, assumptions WeightAssumptions, policy WeightPolicy) (WeightBalance, error) {
	if load.PayloadKg < 0 || load.FuelLiters < 0 || load.CrewCount < 0 {
		return WeightBalance{}, InvalidInput("payload, fuel and crew count cannot be negative")
	}
	if policy == nil {
		policy = MaxTakeoffWeightPolicy{}
	}

	total := Round1(ac.EmptyWeightKg +
		load.PayloadKg +
		load.FuelLiters*assumptions.FuelDensityKgPerLiter +
		float64(load.CrewCount)*assumptions.CrewMemberWeightKg)

	return WeightBalance{
		TotalWeight:  total,
		WithinLimits: policy.WithinLimits(ac, total),
	}, nil
}
