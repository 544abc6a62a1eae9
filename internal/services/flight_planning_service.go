package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"aeroportal/flightops/internal/flightops"
	"aeroportal/flightops/internal/models/dtos"
	gormModels "aeroportal/flightops/internal/models/gorm"
)

// AircraftLookup finds fleet reference data by registration.
type AircraftLookup interface {
	FindByRegistration(ctx context.Context, registration string) (*gormModels.Aircraft, error)
}

// FlightPlanningService computes pre-flight parameters and weight feasibility.
type FlightPlanningService struct {
	aerodromes  AerodromeResolver
	aircraft    AircraftLookup
	policies    *flightops.PolicyRegistry
	assumptions flightops.WeightAssumptions
}

func NewFlightPlanningService(
	aerodromes AerodromeResolver,
	aircraft AircraftLookup,
	policies *flightops.PolicyRegistry,
	assumptions flightops.WeightAssumptions,
) *FlightPlanningService {
	if policies == nil {
		policies = flightops.NewPolicyRegistry()
	}
	return &FlightPlanningService{
		aerodromes:  aerodromes,
		aircraft:    aircraft,
		policies:    policies,
		assumptions: assumptions,
	}
}

func (s *FlightPlanningService) findAircraft(ctx context.Context, registration string) (*gormModels.Aircraft, error) {
	reg := strings.TrimSpace(registration)
	if reg == "" {
		return nil, flightops.InvalidInput("aircraft registration is required")
	}
	ac, err := s.aircraft.FindByRegistration(ctx, reg)
	if err != nil {
		return nil, fmt.Errorf("lookup aircraft %s: %w", reg, err)
	}
	if ac == nil {
		return nil, flightops.NotFound("aircraft %s is not registered", reg)
	}
	return ac, nil
}

// CalculateFlightParameters returns distance, time en route and trip fuel for a route.
func (s *FlightPlanningService) CalculateFlightParameters(ctx context.Context, depICAO, arrICAO, registration string, speedKts float64) (flightops.FlightParameters, error) {
	if speedKts <= 0 {
		return flightops.FlightParameters{}, flightops.InvalidInput("speed must be positive, got %v kt", speedKts)
	}

	from, err := s.aerodromes.Resolve(ctx, depICAO)
	if err != nil {
		return flightops.FlightParameters{}, err
	}
	to, err := s.aerodromes.Resolve(ctx, arrICAO)
	if err != nil {
		return flightops.FlightParameters{}, err
	}
	ac, err := s.findAircraft(ctx, registration)
	if err != nil {
		return flightops.FlightParameters{}, err
	}

	return flightops.ComputeFlightParameters(flightops.DistanceNM(from, to), speedKts, ac.ConsumptionPerHour)
}

// ComputeWeightBalance checks a load sheet against the aircraft's weight policy.
func (s *FlightPlanningService) ComputeWeightBalance(ctx context.Context, registration string, payloadKg, fuelLiters float64, crewCount int) (flightops.WeightBalance, error) {
	load := flightops.LoadSheet{PayloadKg: payloadKg, FuelLiters: fuelLiters, CrewCount: crewCount}
	if payloadKg < 0 || fuelLiters < 0 || crewCount < 0 {
		return flightops.WeightBalance{}, flightops.InvalidInput("payload, fuel and crew count must not be negative")
	}

	ac, err := s.findAircraft(ctx, registration)
	if err != nil {
		return flightops.WeightBalance{}, err
	}

	return flightops.ComputeWeightBalance(ac.Weights(), load, s.assumptions, s.policies.For(ac.Model))
}

// PlanFlight assembles a full flight plan. Without an explicit fuel load the
// weight check uses the computed trip burn.
func (s *FlightPlanningService) PlanFlight(ctx context.Context, req dtos.FlightPlanRequest) (*dtos.FlightPlanResponse, error) {
	var departure time.Time
	if req.DepartureTime != "" {
		t, err := time.Parse(time.RFC3339, req.DepartureTime)
		if err != nil {
			return nil, flightops.InvalidInput("departure_time %q is not RFC 3339", req.DepartureTime)
		}
		departure = t
	}
	if req.Altitude < 0 {
		return nil, flightops.InvalidInput("altitude must not be negative")
	}

	params, err := s.CalculateFlightParameters(ctx, req.DepartureAirport, req.ArrivalAirport, req.Aircraft, req.SpeedKts)
	if err != nil {
		return nil, err
	}

	fuel := float64(params.FuelBurnLiters)
	if req.FuelLiters != nil {
		fuel = *req.FuelLiters
	}
	wb, err := s.ComputeWeightBalance(ctx, req.Aircraft, req.Payload, fuel, req.CrewCount)
	if err != nil {
		return nil, err
	}

	plan := &dtos.FlightPlanResponse{
		Aircraft:         strings.ToUpper(strings.TrimSpace(req.Aircraft)),
		DepartureAirport: normalizeICAO(req.DepartureAirport),
		ArrivalAirport:   normalizeICAO(req.ArrivalAirport),
		Altitude:         req.Altitude,
		Payload:          req.Payload,
		SpeedKts:         req.SpeedKts,
		DistanceNM:       params.DistanceNM,
		ETEMinutes:       params.ETEMinutes,
		FuelBurnLiters:   params.FuelBurnLiters,
		WeightBalance:    wb,
	}
	if !departure.IsZero() {
		plan.DepartureTime = departure.Format(time.RFC3339)
		plan.ETA = departure.Add(time.Duration(params.ETEMinutes) * time.Minute).Format(time.RFC3339)
	}
	return plan, nil
}
