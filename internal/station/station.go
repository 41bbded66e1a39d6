// Package station defines the moored buoys the bulletin service reports
// on and the NDBC element tables that shape each station's bulletin.
package station

import (
	"fmt"
	"strings"

	"github.com/cgsn-ops/ndbc-bulletin/internal/domain"
)

// Missing is the NDBC sentinel emitted for absent observations. It also
// appears verbatim in each message's <missing> element.
const Missing = -9999.0

// Tag maps one NDBC bulletin element to a merged-table column.
// Elements with an empty Column are fixed constants (sensor depths,
// FM-64 format codes) whose Default is always emitted.
type Tag struct {
	Name    string  // NDBC element name, e.g. "atmp1"
	Column  string  // backing column, e.g. "METBK1 AIR_TEMPERATURE"
	Default float64 // emitted when the column is absent or missing
}

// Station describes one surface mooring: its identity on the raw data
// archive, its WMO registration, and the bulletin elements it reports.
type Station struct {
	ID           string  // OOI reference designator, e.g. "GI01SUMO"
	Deployment   string  // active deployment, e.g. "D00010"
	WMO          string  // WMO station id used in bulletins and filenames
	SensorHeight float64 // barometer height above sea level in meters
	HasMetbk2    bool    // whether the mooring carries a second met package
	Tags         []Tag   // bulletin elements in emission order
}

// Validate reports whether the station carries everything a bulletin run
// needs. A missing or non-positive sensor height is an error rather than
// a silent default: sea-level pressure is wrong without the real height.
func (s Station) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("station has no id")
	}
	if s.Deployment == "" {
		return fmt.Errorf("station %s: no deployment", s.ID)
	}
	if s.WMO == "" {
		return fmt.Errorf("station %s: no WMO id", s.ID)
	}
	if s.SensorHeight <= 0 {
		return fmt.Errorf("station %s: sensor height must be positive, got %g", s.ID, s.SensorHeight)
	}
	if len(s.Tags) == 0 {
		return fmt.Errorf("station %s: no bulletin tags", s.ID)
	}
	return nil
}

// All returns every registered station in bulletin order.
func All() []Station {
	return stations
}

// Lookup resolves a station id case-insensitively.
func Lookup(id string) (Station, error) {
	for _, s := range stations {
		if strings.EqualFold(s.ID, id) {
			return s, nil
		}
	}
	return Station{}, fmt.Errorf("station %q: %w", id, domain.ErrNotFound)
}

// Select resolves a list of station ids against the registry, preserving
// the requested order. An empty list selects every station.
func Select(ids []string) ([]Station, error) {
	if len(ids) == 0 {
		return All(), nil
	}
	out := make([]Station, 0, len(ids))
	for _, id := range ids {
		s, err := Lookup(id)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}
