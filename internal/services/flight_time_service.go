package services

import (
	"context"
	"time"

	"aeroportal/flightops/internal/flightops"
	"aeroportal/flightops/internal/metrics"
)

// FlightTimeService resolves aerodromes and splits a leg into day and night hours.
type FlightTimeService struct {
	aerodromes AerodromeResolver
	policy     flightops.DaylightPolicy
	metrics    *metrics.MetricsRegistry
}

func NewFlightTimeService(aerodromes AerodromeResolver, policy flightops.DaylightPolicy, metricsReg *metrics.MetricsRegistry) *FlightTimeService {
	if policy == nil {
		policy = flightops.CivilTwilightPolicy{}
	}
	return &FlightTimeService{aerodromes: aerodromes, policy: policy, metrics: metricsReg}
}

func (s *FlightTimeService) Split(ctx context.Context, date time.Time, departure, arrival, fromICAO, toICAO string) (flightops.FlightTimes, error) {
	from, err := s.aerodromes.Resolve(ctx, fromICAO)
	if err != nil {
		return flightops.FlightTimes{}, err
	}
	to, err := s.aerodromes.Resolve(ctx, toICAO)
	if err != nil {
		return flightops.FlightTimes{}, err
	}

	times, err := flightops.SplitFlightTime(departure, arrival, from, to, date, s.policy)
	if err != nil {
		return flightops.FlightTimes{}, err
	}
	s.metrics.FlightTimeSplitsTotal.Inc()
	return times, nil
}

// SplitOnDate is Split with the date given as YYYY-MM-DD.
func (s *FlightTimeService) SplitOnDate(ctx context.Context, date, departure, arrival, fromICAO, toICAO string) (flightops.FlightTimes, error) {
	d, err := parseDate(date)
	if err != nil {
		return flightops.FlightTimes{}, err
	}
	return s.Split(ctx, d, departure, arrival, fromICAO, toICAO)
}
