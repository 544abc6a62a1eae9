package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"aeroportal/flightops/internal/common"
	"aeroportal/flightops/internal/db/repositories"
	"aeroportal/flightops/internal/flightops"
	"aeroportal/flightops/internal/logging"
	"aeroportal/flightops/internal/metrics"
	"aeroportal/flightops/internal/models/dtos"
	gormModels "aeroportal/flightops/internal/models/gorm"

	"gorm.io/gorm"
)

// errStaleAircraft marks a lost version check on aircraft.total_hours.
var errStaleAircraft = errors.New("aircraft version changed")

// LogbookService owns every write to aircraft hours. Writes for one aircraft are
// serialized in-process by a keyed mutex and across instances by the version column.
type LogbookService struct {
	db          *gorm.DB
	aircraft    *repositories.AircraftRepository
	logbooks    *repositories.LogbookRepository
	flightTime  *FlightTimeService
	locks       *common.KeyedMutex
	metrics     *metrics.MetricsRegistry
	maxAttempts int
}

func NewLogbookService(
	db *gorm.DB,
	aircraft *repositories.AircraftRepository,
	logbooks *repositories.LogbookRepository,
	flightTime *FlightTimeService,
	metricsReg *metrics.MetricsRegistry,
	maxAttempts int,
) *LogbookService {
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &LogbookService{
		db:          db,
		aircraft:    aircraft,
		logbooks:    logbooks,
		flightTime:  flightTime,
		locks:       common.NewKeyedMutex(),
		metrics:     metricsReg,
		maxAttempts: maxAttempts,
	}
}

func (s *LogbookService) requireAircraft(ctx context.Context, repo *repositories.AircraftRepository, id string) (*gormModels.Aircraft, error) {
	if strings.TrimSpace(id) == "" {
		return nil, flightops.InvalidInput("aircraft_id is required")
	}
	ac, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("lookup aircraft %s: %w", id, err)
	}
	if ac == nil {
		return nil, flightops.NotFound("aircraft %s does not exist", id)
	}
	return ac, nil
}

// GetLogbook returns a period's logbook with running hours and the monthly summary.
func (s *LogbookService) GetLogbook(ctx context.Context, aircraftID string, month, year int) (*dtos.LogbookResponse, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}
	ac, err := s.requireAircraft(ctx, s.aircraft, aircraftID)
	if err != nil {
		return nil, err
	}

	lb, err := s.logbooks.FindByPeriod(ctx, ac.ID, year, month)
	if err != nil {
		return nil, fmt.Errorf("lookup logbook: %w", err)
	}
	if lb == nil {
		return nil, flightops.NotFound("no logbook for %s in %04d-%02d", ac.Registration, year, month)
	}

	entries, err := s.logbooks.ListEntries(ctx, lb.ID)
	if err != nil {
		return nil, fmt.Errorf("list logbook entries: %w", err)
	}
	return buildLogbookResponse(ac, lb, entries), nil
}

// OpenLogbook creates the logbook for a period explicitly. A nil revisionHours
// carries the value over from the previous logbook.
func (s *LogbookService) OpenLogbook(ctx context.Context, aircraftID string, month, year int, revisionHours *float64) (*dtos.LogbookResponse, error) {
	if err := validatePeriod(month, year); err != nil {
		return nil, err
	}
	if revisionHours != nil && *revisionHours < 0 {
		return nil, flightops.InvalidInput("revision_hours must not be negative")
	}
	ac, err := s.requireAircraft(ctx, s.aircraft, aircraftID)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(ac.ID)
	defer unlock()

	var lb *gormModels.Logbook
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.logbooks.WithTx(tx)
		existing, err := repo.FindByPeriod(ctx, ac.ID, year, month)
		if err != nil {
			return err
		}
		if existing != nil {
			return flightops.Conflict(nil, "logbook for %s in %04d-%02d is already open", ac.Registration, year, month)
		}
		lb, err = s.openPeriod(ctx, repo, ac, year, month, revisionHours)
		return err
	})
	if err != nil {
		return nil, err
	}

	logging.Info("Logbook opened", "aircraft_id", ac.ID, "year", year, "month", month, "previous_hours", lb.PreviousHours)
	return buildLogbookResponse(ac, lb, nil), nil
}

// openPeriod inserts a logbook whose previous hours continue from the last
// logbook before the period. Without one, a backdated period starts where the
// earliest later logbook starts; otherwise it starts from the airframe total.
func (s *LogbookService) openPeriod(ctx context.Context, repo *repositories.LogbookRepository, ac *gormModels.Aircraft, year, month int, revisionHours *float64) (*gormModels.Logbook, error) {
	lb := &gormModels.Logbook{
		AircraftID:    ac.ID,
		Year:          year,
		Month:         month,
		PreviousHours: ac.TotalHours,
	}

	prev, err := repo.FindPrevious(ctx, ac.ID, year, month)
	if err != nil {
		return nil, err
	}
	if prev != nil {
		entries, err := repo.ListEntries(ctx, prev.ID)
		if err != nil {
			return nil, err
		}
		lb.PreviousHours = flightops.FoldLogbook(prev.PreviousHours, legsOf(entries)).CurrentHours
		lb.RevisionHours = prev.RevisionHours
	} else {
		later, err := repo.ListAfter(ctx, ac.ID, year, month)
		if err != nil {
			return nil, err
		}
		if len(later) > 0 {
			lb.PreviousHours = later[0].PreviousHours
			lb.RevisionHours = later[0].RevisionHours
		}
	}
	if revisionHours != nil {
		lb.RevisionHours = *revisionHours
	}

	if err := repo.Create(ctx, lb); err != nil {
		return nil, fmt.Errorf("create logbook: %w", err)
	}
	return lb, nil
}

// shiftLaterPeriods moves the starting hours of every logbook after lb by delta,
// keeping each period's previous hours equal to the prior period's current hours.
func (s *LogbookService) shiftLaterPeriods(ctx context.Context, repo *repositories.LogbookRepository, lb *gormModels.Logbook, delta float64) error {
	later, err := repo.ListAfter(ctx, lb.AircraftID, lb.Year, lb.Month)
	if err != nil {
		return fmt.Errorf("list later logbooks: %w", err)
	}
	for _, next := range later {
		if err := repo.SetPreviousHours(ctx, next.ID, flightops.AdjustHours(next.PreviousHours, delta)); err != nil {
			return fmt.Errorf("shift logbook %04d-%02d: %w", next.Year, next.Month, err)
		}
	}
	return nil
}

// CreateLogbookEntry validates a leg, computes its flight times, and records it.
// Entry, allowance ledger and aircraft hours commit together or not at all.
func (s *LogbookService) CreateLogbookEntry(ctx context.Context, req dtos.CreateLogbookEntryRequest) (*dtos.LogbookEntryResult, error) {
	ac, err := s.requireAircraft(ctx, s.aircraft, req.AircraftID)
	if err != nil {
		return nil, err
	}
	entry, err := s.buildEntry(ctx, req)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(ac.ID)
	defer unlock()

	var (
		totalHours float64
		logbookID  string
	)
	err = s.withRetry(func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			aircraftRepo := s.aircraft.WithTx(tx)
			logbookRepo := s.logbooks.WithTx(tx)

			current, err := s.requireAircraft(ctx, aircraftRepo, ac.ID)
			if err != nil {
				return err
			}
			lb, err := s.resolveLogbook(ctx, logbookRepo, current, entry.Date, req.LogbookID)
			if err != nil {
				return err
			}

			seq, err := logbookRepo.NextSeq(ctx, lb.ID)
			if err != nil {
				return fmt.Errorf("next entry sequence: %w", err)
			}
			entry.ID = ""
			entry.LogbookID = lb.ID
			entry.AircraftID = current.ID
			entry.Seq = seq
			if err := logbookRepo.CreateEntry(ctx, entry); err != nil {
				return fmt.Errorf("insert logbook entry: %w", err)
			}

			if entry.DailyAllowance > 0 {
				if err := logbookRepo.CreateAllowance(ctx, &gormModels.AllowanceTransaction{
					EntryID:    entry.ID,
					AircraftID: current.ID,
					CrewName:   entry.PICName,
					Amount:     entry.DailyAllowance,
					Date:       entry.Date,
				}); err != nil {
					return fmt.Errorf("insert allowance transaction: %w", err)
				}
			}

			if err := s.shiftLaterPeriods(ctx, logbookRepo, lb, entry.FlightTimeTotal); err != nil {
				return err
			}

			totalHours = flightops.AdjustHours(current.TotalHours, entry.FlightTimeTotal)
			if err := s.setHours(ctx, aircraftRepo, current, totalHours); err != nil {
				return err
			}
			logbookID = lb.ID
			return nil
		})
	})
	if err != nil {
		s.metrics.LogbookMutationsTotal.WithLabelValues("create", "error").Inc()
		return nil, err
	}
	s.metrics.LogbookMutationsTotal.WithLabelValues("create", "ok").Inc()

	logging.Info("Logbook entry created",
		"entry_id", entry.ID,
		"aircraft_id", ac.ID,
		"flight_time_total", entry.FlightTimeTotal,
		"aircraft_total_hours", totalHours,
	)
	return &dtos.LogbookEntryResult{
		Entry:              entryView(entry, nil),
		LogbookID:          logbookID,
		AircraftTotalHours: totalHours,
	}, nil
}

// DeleteLogbookEntry removes an entry and its ledger rows and rolls the hours back.
func (s *LogbookService) DeleteLogbookEntry(ctx context.Context, entryID string) (*dtos.LogbookEntryResult, error) {
	if strings.TrimSpace(entryID) == "" {
		return nil, flightops.InvalidInput("entry id is required")
	}
	entry, err := s.logbooks.FindEntryByID(ctx, entryID)
	if err != nil {
		return nil, fmt.Errorf("lookup logbook entry: %w", err)
	}
	if entry == nil {
		return nil, flightops.NotFound("logbook entry %s does not exist", entryID)
	}

	unlock := s.locks.Lock(entry.AircraftID)
	defer unlock()

	var totalHours float64
	err = s.withRetry(func() error {
		return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			aircraftRepo := s.aircraft.WithTx(tx)
			logbookRepo := s.logbooks.WithTx(tx)

			current, err := logbookRepo.FindEntryByID(ctx, entryID)
			if err != nil {
				return err
			}
			if current == nil {
				return flightops.NotFound("logbook entry %s does not exist", entryID)
			}
			entry = current

			ac, err := s.requireAircraft(ctx, aircraftRepo, current.AircraftID)
			if err != nil {
				return err
			}
			lb, err := logbookRepo.FindByID(ctx, current.LogbookID)
			if err != nil {
				return err
			}
			if lb == nil {
				return fmt.Errorf("logbook %s of entry %s is missing", current.LogbookID, current.ID)
			}
			if err := logbookRepo.DeleteEntry(ctx, current.ID); err != nil {
				return fmt.Errorf("delete logbook entry: %w", err)
			}
			if err := s.shiftLaterPeriods(ctx, logbookRepo, lb, -current.FlightTimeTotal); err != nil {
				return err
			}

			totalHours = flightops.AdjustHours(ac.TotalHours, -current.FlightTimeTotal)
			return s.setHours(ctx, aircraftRepo, ac, totalHours)
		})
	})
	if err != nil {
		s.metrics.LogbookMutationsTotal.WithLabelValues("delete", "error").Inc()
		return nil, err
	}
	s.metrics.LogbookMutationsTotal.WithLabelValues("delete", "ok").Inc()

	logging.Info("Logbook entry deleted", "entry_id", entryID, "aircraft_id", entry.AircraftID, "aircraft_total_hours", totalHours)
	return &dtos.LogbookEntryResult{
		Entry:              entryView(entry, nil),
		LogbookID:          entry.LogbookID,
		AircraftTotalHours: totalHours,
	}, nil
}

// PeriodLegs returns an aircraft's legs for a period; ok is false when no logbook exists.
func (s *LogbookService) PeriodLegs(ctx context.Context, aircraftID string, year, month int) ([]flightops.LegRecord, bool, error) {
	lb, err := s.logbooks.FindByPeriod(ctx, aircraftID, year, month)
	if err != nil {
		return nil, false, err
	}
	if lb == nil {
		return nil, false, nil
	}
	entries, err := s.logbooks.ListEntries(ctx, lb.ID)
	if err != nil {
		return nil, false, err
	}
	return legsOf(entries), true, nil
}

func (s *LogbookService) setHours(ctx context.Context, repo *repositories.AircraftRepository, ac *gormModels.Aircraft, totalHours float64) error {
	ok, err := repo.CompareAndSetHours(ctx, ac.ID, ac.Version, totalHours)
	if err != nil {
		return fmt.Errorf("update aircraft hours: %w", err)
	}
	if !ok {
		return errStaleAircraft
	}
	return nil
}

// withRetry reruns fn while it loses the aircraft version check, up to maxAttempts.
func (s *LogbookService) withRetry(fn func() error) error {
	var err error
	for attempt := 1; attempt <= s.maxAttempts; attempt++ {
		err = fn()
		if !errors.Is(err, errStaleAircraft) {
			return err
		}
		if attempt < s.maxAttempts {
			s.metrics.HoursConflictRetries.Inc()
		}
	}
	return flightops.Conflict(err, "aircraft hours changed concurrently after %d attempts", s.maxAttempts)
}

func (s *LogbookService) resolveLogbook(ctx context.Context, repo *repositories.LogbookRepository, ac *gormModels.Aircraft, date time.Time, logbookID string) (*gormModels.Logbook, error) {
	if logbookID != "" {
		lb, err := repo.FindByID(ctx, logbookID)
		if err != nil {
			return nil, err
		}
		if lb == nil {
			return nil, flightops.NotFound("logbook %s does not exist", logbookID)
		}
		if lb.AircraftID != ac.ID {
			return nil, flightops.InvalidInput("logbook %s belongs to another aircraft", logbookID)
		}
		if !lb.Contains(date) {
			return nil, flightops.InvalidInput("date %s is outside logbook period %04d-%02d", formatDate(date), lb.Year, lb.Month)
		}
		return lb, nil
	}

	lb, err := repo.FindByPeriod(ctx, ac.ID, date.Year(), int(date.Month()))
	if err != nil {
		return nil, err
	}
	if lb != nil {
		return lb, nil
	}
	return s.openPeriod(ctx, repo, ac, date.Year(), int(date.Month()), nil)
}

// buildEntry validates the request and fills in computed flight times.
func (s *LogbookService) buildEntry(ctx context.Context, req dtos.CreateLogbookEntryRequest) (*gormModels.LogbookEntry, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return nil, err
	}
	from, to := normalizeICAO(req.FromAirport), normalizeICAO(req.ToAirport)
	if from == "" || to == "" {
		return nil, flightops.InvalidInput("from_airport and to_airport are required")
	}

	if req.IFRHours < 0 || req.Landings < 0 || req.FuelAdded < 0 || req.FuelOnArrival < 0 ||
		req.PICHours < 0 || req.SICHours < 0 || req.DailyAllowance < 0 {
		return nil, flightops.InvalidInput("hours, landings, fuel and allowance must not be negative")
	}
	if !flightops.OnTenths(req.PICHours) || !flightops.OnTenths(req.SICHours) || !flightops.OnTenths(req.IFRHours) {
		return nil, flightops.InvalidInput("crew and IFR hours must be recorded in tenths of an hour")
	}
	for _, clock := range []string{req.TimeActivated, req.TimeShutdown} {
		if clock == "" {
			continue
		}
		if _, err := flightops.ParseClock(clock); err != nil {
			return nil, err
		}
	}

	var times flightops.FlightTimes
	switch {
	case req.TimeDeparture != "" && req.TimeArrival != "":
		times, err = s.flightTime.Split(ctx, date, req.TimeDeparture, req.TimeArrival, from, to)
		if err != nil {
			return nil, err
		}
	case req.FlightTimeTotal != nil && req.FlightTimeDay != nil && req.FlightTimeNight != nil:
		times = flightops.FlightTimes{
			TotalHours: *req.FlightTimeTotal,
			DayHours:   *req.FlightTimeDay,
			NightHours: *req.FlightTimeNight,
		}
		if err := flightops.ValidateFlightTimes(times); err != nil {
			return nil, err
		}
		// Explicit values still have to name real aerodromes.
		if _, err := s.flightTime.aerodromes.Resolve(ctx, from); err != nil {
			return nil, err
		}
		if _, err := s.flightTime.aerodromes.Resolve(ctx, to); err != nil {
			return nil, err
		}
	default:
		return nil, flightops.InvalidInput("either departure and arrival times or all three flight times are required")
	}
	if times.TotalHours <= 0 {
		return nil, flightops.InvalidInput("flight time must be positive")
	}

	entry := &gormModels.LogbookEntry{
		Date:            date,
		FromAirport:     from,
		ToAirport:       to,
		TimeActivated:   req.TimeActivated,
		TimeDeparture:   req.TimeDeparture,
		TimeArrival:     req.TimeArrival,
		TimeShutdown:    req.TimeShutdown,
		FlightTimeTotal: flightops.Round1(times.TotalHours),
		FlightTimeDay:   flightops.Round1(times.DayHours),
		FlightTimeNight: flightops.Round1(times.NightHours),
		IFRHours:        req.IFRHours,
		Landings:        req.Landings,
		FuelAdded:       req.FuelAdded,
		FuelOnArrival:   req.FuelOnArrival,
		PICName:         strings.TrimSpace(req.PICName),
		PICHours:        req.PICHours,
		SICName:         strings.TrimSpace(req.SICName),
		SICHours:        req.SICHours,
		DailyAllowance:  req.DailyAllowance,
	}
	// Crew time left out is logged as the whole flight.
	if entry.PICName != "" && entry.PICHours == 0 {
		entry.PICHours = entry.FlightTimeTotal
	}
	if entry.SICName != "" && entry.SICHours == 0 {
		entry.SICHours = entry.FlightTimeTotal
	}
	return entry, nil
}

func legsOf(entries []gormModels.LogbookEntry) []flightops.LegRecord {
	legs := make([]flightops.LegRecord, len(entries))
	for i := range entries {
		legs[i] = entries[i].Leg()
	}
	return legs
}

func buildLogbookResponse(ac *gormModels.Aircraft, lb *gormModels.Logbook, entries []gormModels.LogbookEntry) *dtos.LogbookResponse {
	legs := legsOf(entries)
	totals := flightops.FoldLogbook(lb.PreviousHours, legs)

	byID := make(map[string]*gormModels.LogbookEntry, len(entries))
	for i := range entries {
		byID[entries[i].ID] = &entries[i]
	}

	views := make([]dtos.LogbookEntryView, len(legs))
	for i, leg := range legs {
		views[i] = entryView(byID[leg.ID], &totals.CellHours[i])
	}

	return &dtos.LogbookResponse{
		ID:             lb.ID,
		AircraftID:     ac.ID,
		Registration:   ac.Registration,
		Month:          lb.Month,
		Year:           lb.Year,
		PreviousHours:  lb.PreviousHours,
		RevisionHours:  lb.RevisionHours,
		CurrentHours:   totals.CurrentHours,
		Entries:        views,
		MonthlySummary: totals.Summary,
	}
}

func entryView(e *gormModels.LogbookEntry, cellHours *float64) dtos.LogbookEntryView {
	return dtos.LogbookEntryView{
		ID:              e.ID,
		Seq:             e.Seq,
		Date:            formatDate(e.Date),
		FromAirport:     e.FromAirport,
		ToAirport:       e.ToAirport,
		TimeActivated:   e.TimeActivated,
		TimeDeparture:   e.TimeDeparture,
		TimeArrival:     e.TimeArrival,
		TimeShutdown:    e.TimeShutdown,
		FlightTimeTotal: e.FlightTimeTotal,
		FlightTimeDay:   e.FlightTimeDay,
		FlightTimeNight: e.FlightTimeNight,
		IFRHours:        e.IFRHours,
		Landings:        e.Landings,
		FuelAdded:       e.FuelAdded,
		FuelOnArrival:   e.FuelOnArrival,
		PICName:         e.PICName,
		PICHours:        e.PICHours,
		SICName:         e.SICName,
		SICHours:        e.SICHours,
		DailyAllowance:  e.DailyAllowance,
		CellHours:       cellHours,
	}
}
