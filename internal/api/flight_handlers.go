package api

import (
	"context"
	"net/http"
	"time"

	"aeroportal/flightops/internal/common"
	"aeroportal/flightops/internal/flightops"
	"aeroportal/flightops/internal/models/dtos"
)

// FlightTimeSplitter splits a leg into day and night hours.
type FlightTimeSplitter interface {
	SplitOnDate(ctx context.Context, date, departure, arrival, fromICAO, toICAO string) (flightops.FlightTimes, error)
}

// FlightPlanner covers route parameters, weight checks and full plans.
type FlightPlanner interface {
	CalculateFlightParameters(ctx context.Context, depICAO, arrICAO, registration string, speedKts float64) (flightops.FlightParameters, error)
	ComputeWeightBalance(ctx context.Context, registration string, payloadKg, fuelLiters float64, crewCount int) (flightops.WeightBalance, error)
	PlanFlight(ctx context.Context, req dtos.FlightPlanRequest) (*dtos.FlightPlanResponse, error)
}

// SplitFlightTimeHandler handles POST /api/v1/flight-time/split
func SplitFlightTimeHandler(splitter FlightTimeSplitter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.SplitFlightTimeRequest
		if !decodeBody(w, r, initTime, &req) {
			return
		}

		times, err := splitter.SplitOnDate(r.Context(), req.Date, req.DepartureTime, req.ArrivalTime, req.FromAirport, req.ToAirport)
		if err != nil {
			respondServiceError(w, r, initTime, err, "split flight time")
			return
		}

		common.RespondSuccess(w, initTime, "Flight time computed", times)
	}
}

// FlightParametersHandler handles POST /api/v1/flight-plans/parameters
func FlightParametersHandler(planner FlightPlanner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.FlightParametersRequest
		if !decodeBody(w, r, initTime, &req) {
			return
		}

		params, err := planner.CalculateFlightParameters(r.Context(), req.DepartureAirport, req.ArrivalAirport, req.Aircraft, req.SpeedKts)
		if err != nil {
			respondServiceError(w, r, initTime, err, "calculate flight parameters")
			return
		}

		common.RespondSuccess(w, initTime, "Flight parameters computed", params)
	}
}

// WeightBalanceHandler handles POST /api/v1/weight-balance
func WeightBalanceHandler(planner FlightPlanner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.WeightBalanceRequest
		if !decodeBody(w, r, initTime, &req) {
			return
		}

		wb, err := planner.ComputeWeightBalance(r.Context(), req.Aircraft, req.Payload, req.FuelLiters, req.CrewCount)
		if err != nil {
			respondServiceError(w, r, initTime, err, "compute weight and balance")
			return
		}

		common.RespondSuccess(w, initTime, "Weight and balance computed", wb)
	}
}

// PlanFlightHandler handles POST /api/v1/flight-plans
func PlanFlightHandler(planner FlightPlanner) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		initTime := time.Now()

		var req dtos.FlightPlanRequest
		if !decodeBody(w, r, initTime, &req) {
			return
		}

		plan, err := planner.PlanFlight(r.Context(), req)
		if err != nil {
			respondServiceError(w, r, initTime, err, "plan flight")
			return
		}

		common.RespondSuccess(w, initTime, "Flight planned", plan)
	}
}
