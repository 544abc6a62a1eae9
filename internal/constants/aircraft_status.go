package constants

import (
	"database/sql/driver"
	"fmt"
)

// AircraftStatus mirrors the CHECK constraint on aircraft.status.
type AircraftStatus string

const (
	AircraftActive      AircraftStatus = "active"
	AircraftMaintenance AircraftStatus = "maintenance"
	AircraftInactive    AircraftStatus = "inactive"
)

func (s AircraftStatus) String() string { return string(s) }

func (s AircraftStatus) Valid() bool {
	switch s {
	case AircraftActive, AircraftMaintenance, AircraftInactive:
		return true
	}
	return false
}

// Scan rejects labels outside the enumeration, so a bad row fails on load.
func (s *AircraftStatus) Scan(src interface{}) error {
	var v AircraftStatus
	switch raw := src.(type) {
	case string:
		v = AircraftStatus(raw)
	case []byte:
		v = AircraftStatus(raw)
	default:
		return fmt.Errorf("AircraftStatus: cannot scan type %T", src)
	}
	if !v.Valid() {
		return fmt.Errorf("AircraftStatus: unknown value %q", v)
	}
	*s = v
	return nil
}

func (s AircraftStatus) Value() (driver.Value, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("AircraftStatus: unknown value %q", s)
	}
	return string(s), nil
}
