package services

import (
	"context"
	"errors"
	"sync"
	"testing"

	"aeroportal/flightops/internal/flightops"
	"aeroportal/flightops/internal/models/dtos"
	gormModels "aeroportal/flightops/internal/models/gorm"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"gorm.io/gorm"
)

func legRequest(aircraftID, date string, hours float64) dtos.CreateLogbookEntryRequest {
	return dtos.CreateLogbookEntryRequest{
		AircraftID:      aircraftID,
		Date:            date,
		FromAirport:     "SBSP",
		ToAirport:       "SBRJ",
		FlightTimeTotal: ptr(hours),
		FlightTimeDay:   ptr(hours),
		FlightTimeNight: ptr(0.0),
		Landings:        1,
		PICName:         "Silva",
	}
}

func TestCreateLogbookEntry_FoldsHours(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	later := legRequest(env.plane.ID, "2024-01-12", 2.8)
	later.SICName = "Costa"
	later.DailyAllowance = 150
	res, err := env.logbook.CreateLogbookEntry(ctx, later)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if res.AircraftTotalHours != 102.8 {
		t.Errorf("Expected aircraft hours 102.8, got %v", res.AircraftTotalHours)
	}
	if res.Entry.PICHours != 2.8 || res.Entry.SICHours != 2.8 {
		t.Errorf("Expected crew hours to default to flight time, got %v/%v", res.Entry.PICHours, res.Entry.SICHours)
	}

	if _, err := env.logbook.CreateLogbookEntry(ctx, legRequest(env.plane.ID, "2024-01-10", 1.5)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if got := env.hours(t); got != 104.3 {
		t.Errorf("Expected aircraft hours 104.3, got %v", got)
	}

	lb, err := env.logbook.GetLogbook(ctx, env.plane.ID, 1, 2024)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if lb.PreviousHours != 100 || lb.CurrentHours != 104.3 {
		t.Errorf("Expected 100 -> 104.3, got %v -> %v", lb.PreviousHours, lb.CurrentHours)
	}
	if len(lb.Entries) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(lb.Entries))
	}
	if lb.Entries[0].Date != "2024-01-10" || *lb.Entries[0].CellHours != 101.5 || *lb.Entries[1].CellHours != 104.3 {
		t.Errorf("Expected entries in date order with running hours, got %+v", lb.Entries)
	}
	if lb.MonthlySummary.TotalAllowance != 150 {
		t.Errorf("Expected allowance 150, got %v", lb.MonthlySummary.TotalAllowance)
	}
	if len(lb.MonthlySummary.CrewHours) != 2 || lb.MonthlySummary.CrewHours[1].PICHours != 4.3 {
		t.Errorf("Unexpected crew summary %+v", lb.MonthlySummary.CrewHours)
	}

	allowances, err := env.logbooks.ListAllowances(ctx, res.Entry.ID)
	if err != nil || len(allowances) != 1 || allowances[0].Amount != 150 {
		t.Errorf("Expected one allowance transaction, got %+v, %v", allowances, err)
	}

	if n := testutil.ToFloat64(env.metrics.LogbookMutationsTotal.WithLabelValues("create", "ok")); n != 2 {
		t.Errorf("Expected 2 successful creates, got %v", n)
	}
}

func TestCreateLogbookEntry_SplitsFromClockTimes(t *testing.T) {
	env := newTestEnv(t)

	req := dtos.CreateLogbookEntryRequest{
		AircraftID:    env.plane.ID,
		Date:          "2024-03-10",
		FromAirport:   "sbsp",
		ToAirport:     "sbrj",
		TimeDeparture: "12:00",
		TimeArrival:   "13:30",
	}
	res, err := env.logbook.CreateLogbookEntry(context.Background(), req)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if res.Entry.FlightTimeTotal != 1.5 || res.Entry.FlightTimeDay != 1.5 || res.Entry.FlightTimeNight != 0 {
		t.Errorf("Expected a 1.5h day leg, got %+v", res.Entry)
	}
	if res.Entry.FromAirport != "SBSP" {
		t.Errorf("Expected normalized aerodrome, got %s", res.Entry.FromAirport)
	}
}

func TestCreateLogbookEntry_Validation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	tests := []struct {
		name     string
		mutate   func(r *dtos.CreateLogbookEntryRequest)
		wantKind flightops.ErrorKind
	}{
		{"bad date", func(r *dtos.CreateLogbookEntryRequest) { r.Date = "10/01/2024" }, flightops.KindInvalidInput},
		{"missing aerodrome", func(r *dtos.CreateLogbookEntryRequest) { r.ToAirport = "" }, flightops.KindInvalidInput},
		{"unknown aerodrome", func(r *dtos.CreateLogbookEntryRequest) { r.ToAirport = "ZZZZ" }, flightops.KindNotFound},
		{"negative landings", func(r *dtos.CreateLogbookEntryRequest) { r.Landings = -1 }, flightops.KindInvalidInput},
		{"day plus night mismatch", func(r *dtos.CreateLogbookEntryRequest) { r.FlightTimeNight = ptr(0.5) }, flightops.KindInvalidInput},
		{"hundredths of an hour", func(r *dtos.CreateLogbookEntryRequest) {
			r.FlightTimeTotal, r.FlightTimeDay = ptr(2.55), ptr(2.55)
		}, flightops.KindInvalidInput},
		{"pic hours in hundredths", func(r *dtos.CreateLogbookEntryRequest) { r.PICHours = 0.95 }, flightops.KindInvalidInput},
		{"no times", func(r *dtos.CreateLogbookEntryRequest) { r.FlightTimeTotal = nil }, flightops.KindInvalidInput},
		{"bad shutdown clock", func(r *dtos.CreateLogbookEntryRequest) { r.TimeShutdown = "25:00" }, flightops.KindInvalidInput},
		{"unknown aircraft", func(r *dtos.CreateLogbookEntryRequest) { r.AircraftID = "missing" }, flightops.KindNotFound},
		{"unknown logbook", func(r *dtos.CreateLogbookEntryRequest) { r.LogbookID = "missing" }, flightops.KindNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := legRequest(env.plane.ID, "2024-01-10", 1.0)
			tt.mutate(&req)
			_, err := env.logbook.CreateLogbookEntry(ctx, req)
			if !flightops.IsKind(err, tt.wantKind) {
				t.Errorf("Expected %s, got %v", tt.wantKind, err)
			}
		})
	}

	if got := env.hours(t); got != 100 {
		t.Errorf("Expected hours untouched by rejected entries, got %v", got)
	}
}

func TestCreateLogbookEntry_LogbookPeriodMismatch(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	jan, err := env.logbook.OpenLogbook(ctx, env.plane.ID, 1, 2024, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	req := legRequest(env.plane.ID, "2024-02-01", 1.0)
	req.LogbookID = jan.ID
	if _, err := env.logbook.CreateLogbookEntry(ctx, req); !flightops.IsKind(err, flightops.KindInvalidInput) {
		t.Errorf("Expected INVALID_INPUT, got %v", err)
	}

	req.Date = "2024-01-31"
	res, err := env.logbook.CreateLogbookEntry(ctx, req)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if res.LogbookID != jan.ID {
		t.Errorf("Expected entry in logbook %s, got %s", jan.ID, res.LogbookID)
	}
}

func TestOpenLogbook_CarriesHoursForward(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.logbook.OpenLogbook(ctx, env.plane.ID, 1, 2024, ptr(250.0)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := env.logbook.OpenLogbook(ctx, env.plane.ID, 1, 2024, nil); !flightops.IsKind(err, flightops.KindConflict) {
		t.Errorf("Expected CONFLICT for a second January logbook, got %v", err)
	}
	if _, err := env.logbook.CreateLogbookEntry(ctx, legRequest(env.plane.ID, "2024-01-05", 2.2)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// February opens implicitly on its first entry.
	res, err := env.logbook.CreateLogbookEntry(ctx, legRequest(env.plane.ID, "2024-02-03", 1.1))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	feb, err := env.logbook.GetLogbook(ctx, env.plane.ID, 2, 2024)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if feb.ID != res.LogbookID {
		t.Errorf("Expected entry in February logbook")
	}
	if feb.PreviousHours != 102.2 || feb.CurrentHours != 103.3 {
		t.Errorf("Expected 102.2 -> 103.3, got %v -> %v", feb.PreviousHours, feb.CurrentHours)
	}
	if feb.RevisionHours != 250 {
		t.Errorf("Expected revision hours carried over, got %v", feb.RevisionHours)
	}

	if _, err := env.logbook.GetLogbook(ctx, env.plane.ID, 3, 2024); !flightops.IsKind(err, flightops.KindNotFound) {
		t.Errorf("Expected NOT_FOUND for March, got %v", err)
	}
	if _, err := env.logbook.GetLogbook(ctx, env.plane.ID, 13, 2024); !flightops.IsKind(err, flightops.KindInvalidInput) {
		t.Errorf("Expected INVALID_INPUT for month 13, got %v", err)
	}
}

// assertContinuous checks that each period starts where the previous one ends
// and that the last period ends on the aircraft's total hours.
func assertContinuous(t *testing.T, env *testEnv, year int, months ...int) {
	t.Helper()
	ctx := context.Background()

	var prevCurrent float64
	for i, month := range months {
		lb, err := env.logbook.GetLogbook(ctx, env.plane.ID, month, year)
		if err != nil {
			t.Fatalf("Failed to load %04d-%02d: %v", year, month, err)
		}
		if i > 0 && lb.PreviousHours != prevCurrent {
			t.Errorf("Expected %04d-%02d to start at %v, got %v", year, month, prevCurrent, lb.PreviousHours)
		}
		prevCurrent = lb.CurrentHours
	}
	if got := env.hours(t); got != prevCurrent {
		t.Errorf("Expected aircraft hours %v to match the last period, got %v", prevCurrent, got)
	}
}

func TestDeleteLogbookEntry_EarlierPeriodShiftsLaterOnes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	jan, err := env.logbook.CreateLogbookEntry(ctx, legRequest(env.plane.ID, "2024-01-10", 2.0))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := env.logbook.CreateLogbookEntry(ctx, legRequest(env.plane.ID, "2024-02-10", 1.0)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if _, err := env.logbook.CreateLogbookEntry(ctx, legRequest(env.plane.ID, "2024-03-10", 0.5)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	assertContinuous(t, env, 2024, 1, 2, 3)

	if _, err := env.logbook.DeleteLogbookEntry(ctx, jan.Entry.ID); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	feb, err := env.logbook.GetLogbook(ctx, env.plane.ID, 2, 2024)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if feb.PreviousHours != 100 || feb.CurrentHours != 101 {
		t.Errorf("Expected February 100 -> 101, got %v -> %v", feb.PreviousHours, feb.CurrentHours)
	}
	if got := env.hours(t); got != 101.5 {
		t.Errorf("Expected 101.5 hours, got %v", got)
	}
	assertContinuous(t, env, 2024, 1, 2, 3)
}

func TestCreateLogbookEntry_BackdatedPeriodShiftsLaterOnes(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.logbook.CreateLogbookEntry(ctx, legRequest(env.plane.ID, "2024-03-10", 1.0)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	// January opens before March and has no earlier logbook.
	if _, err := env.logbook.CreateLogbookEntry(ctx, legRequest(env.plane.ID, "2024-01-10", 2.0)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	jan, err := env.logbook.GetLogbook(ctx, env.plane.ID, 1, 2024)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if jan.PreviousHours != 100 || jan.CurrentHours != 102 {
		t.Errorf("Expected January 100 -> 102, got %v -> %v", jan.PreviousHours, jan.CurrentHours)
	}
	mar, err := env.logbook.GetLogbook(ctx, env.plane.ID, 3, 2024)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if mar.PreviousHours != 102 || mar.CurrentHours != 103 {
		t.Errorf("Expected March 102 -> 103, got %v -> %v", mar.PreviousHours, mar.CurrentHours)
	}
	assertContinuous(t, env, 2024, 1, 3)

	// February fills the gap from January's end.
	if _, err := env.logbook.CreateLogbookEntry(ctx, legRequest(env.plane.ID, "2024-02-10", 0.7)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	assertContinuous(t, env, 2024, 1, 2, 3)
	if got := env.hours(t); got != 103.7 {
		t.Errorf("Expected 103.7 hours, got %v", got)
	}
}

func TestOpenLogbook_BackdatedStartsBeforeLaterPeriod(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.logbook.CreateLogbookEntry(ctx, legRequest(env.plane.ID, "2024-05-10", 1.5)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	apr, err := env.logbook.OpenLogbook(ctx, env.plane.ID, 4, 2024, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if apr.PreviousHours != 100 || apr.CurrentHours != 100 {
		t.Errorf("Expected empty April at 100, got %v -> %v", apr.PreviousHours, apr.CurrentHours)
	}
	assertContinuous(t, env, 2024, 4, 5)
}

func TestDeleteLogbookEntry_RollsBackExactly(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	if _, err := env.logbook.CreateLogbookEntry(ctx, legRequest(env.plane.ID, "2024-01-10", 1.5)); err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	withAllowance := legRequest(env.plane.ID, "2024-01-11", 2.8)
	withAllowance.DailyAllowance = 90
	created, err := env.logbook.CreateLogbookEntry(ctx, withAllowance)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	res, err := env.logbook.DeleteLogbookEntry(ctx, created.Entry.ID)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if res.AircraftTotalHours != 101.5 || env.hours(t) != 101.5 {
		t.Errorf("Expected hours back to 101.5, got %v", res.AircraftTotalHours)
	}

	allowances, err := env.logbooks.ListAllowances(ctx, created.Entry.ID)
	if err != nil || len(allowances) != 0 {
		t.Errorf("Expected allowance removed with the entry, got %d, %v", len(allowances), err)
	}

	if _, err := env.logbook.DeleteLogbookEntry(ctx, created.Entry.ID); !flightops.IsKind(err, flightops.KindNotFound) {
		t.Errorf("Expected NOT_FOUND on second delete, got %v", err)
	}
}

func TestCreateLogbookEntry_LedgerFailureRollsBack(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	err := env.db.Callback().Create().Before("gorm:create").Register("test:fail_allowance", func(tx *gorm.DB) {
		if tx.Statement.Table == "allowance_transactions" {
			_ = tx.AddError(errors.New("ledger unavailable"))
		}
	})
	if err != nil {
		t.Fatalf("Failed to register callback: %v", err)
	}

	req := legRequest(env.plane.ID, "2024-01-10", 1.5)
	req.DailyAllowance = 120
	if _, err := env.logbook.CreateLogbookEntry(ctx, req); err == nil {
		t.Fatal("Expected ledger failure to surface")
	}

	if got := env.hours(t); got != 100 {
		t.Errorf("Expected hours unchanged, got %v", got)
	}
	var entries int64
	env.db.Model(&gormModels.LogbookEntry{}).Count(&entries)
	if entries != 0 {
		t.Errorf("Expected no entry persisted, got %d", entries)
	}
	var logbooks int64
	env.db.Model(&gormModels.Logbook{}).Count(&logbooks)
	if logbooks != 0 {
		t.Errorf("Expected implicit logbook rolled back, got %d", logbooks)
	}
}

func TestCreateLogbookEntry_ConcurrentWritesSameAircraft(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	const writers = 10
	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := env.logbook.CreateLogbookEntry(ctx, legRequest(env.plane.ID, "2024-01-15", 1.0))
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
	}
	if got := env.hours(t); got != 110 {
		t.Errorf("Expected 110.0 hours, got %v", got)
	}

	lb, err := env.logbook.GetLogbook(ctx, env.plane.ID, 1, 2024)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	seen := map[int64]bool{}
	for _, e := range lb.Entries {
		seen[e.Seq] = true
	}
	if len(lb.Entries) != writers || len(seen) != writers {
		t.Errorf("Expected %d entries with distinct sequence numbers, got %d/%d", writers, len(lb.Entries), len(seen))
	}
}

func TestCreateLogbookEntry_VersionConflictExhaustsRetries(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	attempts := 0
	err := env.db.Callback().Update().Before("gorm:update").Register("test:bump_version", func(tx *gorm.DB) {
		if tx.Statement.Table != "aircraft" {
			return
		}
		attempts++
		// Another writer wins the race on every attempt.
		tx.Session(&gorm.Session{NewDB: true}).Exec("UPDATE aircraft SET version = version + 1")
	})
	if err != nil {
		t.Fatalf("Failed to register callback: %v", err)
	}

	_, err = env.logbook.CreateLogbookEntry(ctx, legRequest(env.plane.ID, "2024-01-10", 1.5))
	if !flightops.IsKind(err, flightops.KindConflict) {
		t.Fatalf("Expected CONFLICT, got %v", err)
	}
	if attempts != 3 {
		t.Errorf("Expected 3 attempts, got %d", attempts)
	}
	if n := testutil.ToFloat64(env.metrics.HoursConflictRetries); n != 2 {
		t.Errorf("Expected 2 retries counted, got %v", n)
	}
	if got := env.hours(t); got != 100 {
		t.Errorf("Expected hours unchanged, got %v", got)
	}
}
