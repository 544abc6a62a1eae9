package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"aeroportal/flightops/internal/auth"
	"aeroportal/flightops/internal/constants"
	"aeroportal/flightops/internal/flightops"
	"aeroportal/flightops/internal/logging"
	"aeroportal/flightops/internal/models/dtos"

	"github.com/go-chi/chi/v5"
)

// Mock AerodromeResolver
type mockResolver struct {
	resolveFunc func(ctx context.Context, icao string) (flightops.Aerodrome, error)
}

func (m *mockResolver) Resolve(ctx context.Context, icao string) (flightops.Aerodrome, error) {
	return m.resolveFunc(ctx, icao)
}

// Mock FlightPlanner
type mockPlanner struct {
	paramsFunc func(ctx context.Context, dep, arr, reg string, speed float64) (flightops.FlightParameters, error)
	wbFunc     func(ctx context.Context, reg string, payload, fuel float64, crew int) (flightops.WeightBalance, error)
	planFunc   func(ctx context.Context, req dtos.FlightPlanRequest) (*dtos.FlightPlanResponse, error)
}

func (m *mockPlanner) CalculateFlightParameters(ctx context.Context, dep, arr, reg string, speed float64) (flightops.FlightParameters, error) {
	return m.paramsFunc(ctx, dep, arr, reg, speed)
}

func (m *mockPlanner) ComputeWeightBalance(ctx context.Context, reg string, payload, fuel float64, crew int) (flightops.WeightBalance, error) {
	return m.wbFunc(ctx, reg, payload, fuel, crew)
}

func (m *mockPlanner) PlanFlight(ctx context.Context, req dtos.FlightPlanRequest) (*dtos.FlightPlanResponse, error) {
	return m.planFunc(ctx, req)
}

// Mock LogbookManager
type mockLogbooks struct {
	getFunc    func(ctx context.Context, aircraftID string, month, year int) (*dtos.LogbookResponse, error)
	openFunc   func(ctx context.Context, aircraftID string, month, year int, revision *float64) (*dtos.LogbookResponse, error)
	createFunc func(ctx context.Context, req dtos.CreateLogbookEntryRequest) (*dtos.LogbookEntryResult, error)
	deleteFunc func(ctx context.Context, entryID string) (*dtos.LogbookEntryResult, error)
}

func (m *mockLogbooks) GetLogbook(ctx context.Context, aircraftID string, month, year int) (*dtos.LogbookResponse, error) {
	return m.getFunc(ctx, aircraftID, month, year)
}

func (m *mockLogbooks) OpenLogbook(ctx context.Context, aircraftID string, month, year int, revision *float64) (*dtos.LogbookResponse, error) {
	return m.openFunc(ctx, aircraftID, month, year, revision)
}

func (m *mockLogbooks) CreateLogbookEntry(ctx context.Context, req dtos.CreateLogbookEntryRequest) (*dtos.LogbookEntryResult, error) {
	return m.createFunc(ctx, req)
}

func (m *mockLogbooks) DeleteLogbookEntry(ctx context.Context, entryID string) (*dtos.LogbookEntryResult, error) {
	return m.deleteFunc(ctx, entryID)
}

// Mock AerodromeImporter
type mockImporter struct {
	sourceCalls int
	uploaded    string
	loadErr     error
}

func (m *mockImporter) LoadFromSource(ctx context.Context) (int, error) {
	m.sourceCalls++
	return 120, m.loadErr
}

func (m *mockImporter) LoadFromJSON(ctx context.Context, reader io.Reader) (int, error) {
	b, err := io.ReadAll(reader)
	if err != nil {
		return 0, err
	}
	m.uploaded = string(b)
	return 2, m.loadErr
}

func (m *mockImporter) Count(ctx context.Context) (int64, error) {
	return 122, nil
}

// serve routes req through a chi router so URL params resolve.
func serve(method, pattern string, handler http.HandlerFunc, req *http.Request) *httptest.ResponseRecorder {
	logging.InitNop()
	r := chi.NewRouter()
	r.MethodFunc(method, pattern, handler)

	req = req.WithContext(auth.SetUserClaims(req.Context(), &auth.JWTClaims{Subject: "ops", RoleValue: constants.RoleOperator}))
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decodeResponse(t *testing.T, rr *httptest.ResponseRecorder) dtos.APIResponse {
	t.Helper()
	var response dtos.APIResponse
	if err := json.NewDecoder(rr.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	return response
}

func jsonBody(t *testing.T, v any) *bytes.Reader {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("Failed to encode body: %v", err)
	}
	return bytes.NewReader(b)
}

func TestGetAerodromeHandler(t *testing.T) {
	resolver := &mockResolver{
		resolveFunc: func(ctx context.Context, icao string) (flightops.Aerodrome, error) {
			if icao != "SBSP" {
				return flightops.Aerodrome{}, flightops.NotFound("aerodrome %s is not known", icao)
			}
			return flightops.Aerodrome{ICAO: "SBSP", Name: "Congonhas"}, nil
		},
	}
	handler := GetAerodromeHandler(resolver)

	rr := serve("GET", "/api/v1/aerodromes/{icao}", handler, httptest.NewRequest("GET", "/api/v1/aerodromes/SBSP", nil))
	if rr.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rr.Code)
	}
	if response := decodeResponse(t, rr); response.Status != "ok" {
		t.Errorf("Expected status ok, got %s", response.Status)
	}

	rr = serve("GET", "/api/v1/aerodromes/{icao}", handler, httptest.NewRequest("GET", "/api/v1/aerodromes/ZZZZ", nil))
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rr.Code)
	}
	response := decodeResponse(t, rr)
	if response.Code != constants.ErrCodeNotFound || response.Message != "aerodrome ZZZZ is not known" {
		t.Errorf("Unexpected error envelope %+v", response)
	}
}

func TestFlightParametersHandler(t *testing.T) {
	planner := &mockPlanner{
		paramsFunc: func(ctx context.Context, dep, arr, reg string, speed float64) (flightops.FlightParameters, error) {
			if speed <= 0 {
				return flightops.FlightParameters{}, flightops.InvalidInput("speed must be positive")
			}
			return flightops.FlightParameters{DistanceNM: 197.4, ETEMinutes: 99, FuelBurnLiters: 66}, nil
		},
	}
	handler := FlightParametersHandler(planner)

	tests := []struct {
		name string
		body any
		want int
	}{
		{"ok", dtos.FlightParametersRequest{DepartureAirport: "SBSP", ArrivalAirport: "SBRJ", Aircraft: "PR-ABC", SpeedKts: 120}, http.StatusOK},
		{"zero speed", dtos.FlightParametersRequest{DepartureAirport: "SBSP", ArrivalAirport: "SBRJ", Aircraft: "PR-ABC"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/v1/flight-plans/parameters", jsonBody(t, tt.body))
			rr := serve("POST", "/api/v1/flight-plans/parameters", handler, req)
			if rr.Code != tt.want {
				t.Errorf("Expected status %d, got %d", tt.want, rr.Code)
			}
		})
	}

	req := httptest.NewRequest("POST", "/api/v1/flight-plans/parameters", bytes.NewReader([]byte("invalid json")))
	rr := serve("POST", "/api/v1/flight-plans/parameters", handler, req)
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
}

func TestWeightBalanceHandler_InternalErrorIsNotLeaked(t *testing.T) {
	planner := &mockPlanner{
		wbFunc: func(ctx context.Context, reg string, payload, fuel float64, crew int) (flightops.WeightBalance, error) {
			return flightops.WeightBalance{}, errors.New("pq: password authentication failed")
		},
	}
	req := httptest.NewRequest("POST", "/api/v1/weight-balance", jsonBody(t, dtos.WeightBalanceRequest{Aircraft: "PR-ABC"}))
	rr := serve("POST", "/api/v1/weight-balance", WeightBalanceHandler(planner), req)

	if rr.Code != http.StatusInternalServerError {
		t.Errorf("Expected status 500, got %d", rr.Code)
	}
	response := decodeResponse(t, rr)
	if response.Message != "Failed to compute weight and balance" {
		t.Errorf("Expected generic message, got %s", response.Message)
	}
}

func TestGetLogbookHandler(t *testing.T) {
	var gotMonth, gotYear int
	logbooks := &mockLogbooks{
		getFunc: func(ctx context.Context, aircraftID string, month, year int) (*dtos.LogbookResponse, error) {
			gotMonth, gotYear = month, year
			return &dtos.LogbookResponse{AircraftID: aircraftID, Month: month, Year: year, CurrentHours: 104.3}, nil
		},
	}
	handler := GetLogbookHandler(logbooks)
	pattern := "/api/v1/aircraft/{aircraft_id}/logbooks/{year}/{month}"

	rr := serve("GET", pattern, handler, httptest.NewRequest("GET", "/api/v1/aircraft/a1/logbooks/2024/3", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if gotMonth != 3 || gotYear != 2024 {
		t.Errorf("Expected 2024-03, got %d-%d", gotYear, gotMonth)
	}

	rr = serve("GET", pattern, handler, httptest.NewRequest("GET", "/api/v1/aircraft/a1/logbooks/2024/march", nil))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
}

func TestCreateLogbookEntryHandler(t *testing.T) {
	logbooks := &mockLogbooks{
		createFunc: func(ctx context.Context, req dtos.CreateLogbookEntryRequest) (*dtos.LogbookEntryResult, error) {
			if req.AircraftID == "busy" {
				return nil, flightops.Conflict(nil, "aircraft hours changed concurrently after 3 attempts")
			}
			return &dtos.LogbookEntryResult{
				Entry:              dtos.LogbookEntryView{ID: "e1", FlightTimeTotal: 1.5},
				LogbookID:          "lb1",
				AircraftTotalHours: 101.5,
			}, nil
		},
	}
	handler := CreateLogbookEntryHandler(logbooks)

	req := httptest.NewRequest("POST", "/api/v1/logbook-entries", jsonBody(t, dtos.CreateLogbookEntryRequest{AircraftID: "a1", Date: "2024-01-10"}))
	rr := serve("POST", "/api/v1/logbook-entries", handler, req)
	if rr.Code != http.StatusCreated {
		t.Errorf("Expected status 201, got %d", rr.Code)
	}

	req = httptest.NewRequest("POST", "/api/v1/logbook-entries", jsonBody(t, dtos.CreateLogbookEntryRequest{AircraftID: "busy"}))
	rr = serve("POST", "/api/v1/logbook-entries", handler, req)
	if rr.Code != http.StatusConflict {
		t.Errorf("Expected status 409, got %d", rr.Code)
	}
	if response := decodeResponse(t, rr); response.Code != constants.ErrCodeConflict {
		t.Errorf("Expected CONFLICT code, got %s", response.Code)
	}
}

func TestOpenLogbookHandler_PassesRevisionHours(t *testing.T) {
	var got *float64
	logbooks := &mockLogbooks{
		openFunc: func(ctx context.Context, aircraftID string, month, year int, revision *float64) (*dtos.LogbookResponse, error) {
			got = revision
			return &dtos.LogbookResponse{AircraftID: aircraftID, Month: month, Year: year}, nil
		},
	}
	handler := OpenLogbookHandler(logbooks)
	pattern := "/api/v1/aircraft/{aircraft_id}/logbooks"

	req := httptest.NewRequest("POST", "/api/v1/aircraft/a1/logbooks", bytes.NewReader([]byte(`{"month":1,"year":2024}`)))
	if rr := serve("POST", pattern, handler, req); rr.Code != http.StatusCreated {
		t.Fatalf("Expected status 201, got %d", rr.Code)
	}
	if got != nil {
		t.Errorf("Expected omitted revision hours to stay nil, got %v", *got)
	}

	req = httptest.NewRequest("POST", "/api/v1/aircraft/a1/logbooks", bytes.NewReader([]byte(`{"month":1,"year":2024,"revision_hours":250}`)))
	serve("POST", pattern, handler, req)
	if got == nil || *got != 250 {
		t.Errorf("Expected revision hours 250, got %v", got)
	}
}

func TestDeleteLogbookEntryHandler(t *testing.T) {
	logbooks := &mockLogbooks{
		deleteFunc: func(ctx context.Context, entryID string) (*dtos.LogbookEntryResult, error) {
			if entryID != "e1" {
				return nil, flightops.NotFound("logbook entry %s does not exist", entryID)
			}
			return &dtos.LogbookEntryResult{Entry: dtos.LogbookEntryView{ID: "e1"}, AircraftTotalHours: 100}, nil
		},
	}
	handler := DeleteLogbookEntryHandler(logbooks)
	pattern := "/api/v1/logbook-entries/{entry_id}"

	if rr := serve("DELETE", pattern, handler, httptest.NewRequest("DELETE", "/api/v1/logbook-entries/e1", nil)); rr.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", rr.Code)
	}
	if rr := serve("DELETE", pattern, handler, httptest.NewRequest("DELETE", "/api/v1/logbook-entries/e2", nil)); rr.Code != http.StatusNotFound {
		t.Errorf("Expected status 404, got %d", rr.Code)
	}
}

func TestSyncAerodromesHandler(t *testing.T) {
	importer := &mockImporter{}
	handler := SyncAerodromesHandler(importer)

	rr := serve("POST", "/sync", handler, httptest.NewRequest("POST", "/sync", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	data := decodeResponse(t, rr).Data.(map[string]any)
	if data["imported"] != float64(120) || data["total"] != float64(122) {
		t.Errorf("Unexpected sync result %+v", data)
	}
	if importer.sourceCalls != 1 {
		t.Errorf("Expected the configured source to be fetched once, got %d", importer.sourceCalls)
	}

	body := `{"SBSP":{"icao":"SBSP"}}`
	rr = serve("POST", "/sync", handler, httptest.NewRequest("POST", "/sync", strings.NewReader(body)))
	if rr.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d", rr.Code)
	}
	if importer.uploaded != body || importer.sourceCalls != 1 {
		t.Errorf("Expected the uploaded body to be imported, got %q (source calls %d)", importer.uploaded, importer.sourceCalls)
	}

	importer.loadErr = flightops.InvalidInput("no aerodromes found in source")
	rr = serve("POST", "/sync", handler, httptest.NewRequest("POST", "/sync", nil))
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400, got %d", rr.Code)
	}
}
