package domain

import (
	"math"
	"sort"
	"strings"
	"time"
)

// MergedRow joins the instrument bins that share one bin time. A nil bin
// means the instrument produced no aggregate for that time.
type MergedRow struct {
	Time   time.Time
	Metbk1 *MetbkBin
	Metbk2 *MetbkBin
	Wavss  *WavssBin
}

// HasData reports whether any column of any bin in the row holds a finite
// value.
func (r MergedRow) HasData() bool {
	return (r.Metbk1 != nil && r.Metbk1.HasData()) ||
		(r.Metbk2 != nil && r.Metbk2.HasData()) ||
		(r.Wavss != nil && r.Wavss.HasData())
}

// Lookup resolves a prefixed column name such as "METBK1 WIND_SPEED" or
// "WAVSS SIGNIFICANT_WAVE_HEIGHT" against the row. Unknown columns and
// instruments absent from the row resolve to NaN.
func (r MergedRow) Lookup(column string) float64 {
	instrument, field, ok := strings.Cut(column, " ")
	if !ok {
		return math.NaN()
	}
	switch instrument {
	case "METBK1":
		return metbkColumn(r.Metbk1, field)
	case "METBK2":
		return metbkColumn(r.Metbk2, field)
	case "WAVSS":
		return wavssColumn(r.Wavss, field)
	default:
		return math.NaN()
	}
}

func metbkColumn(b *MetbkBin, field string) float64 {
	if b == nil {
		return math.NaN()
	}
	switch field {
	case "BAROMETRIC_PRESSURE":
		return b.BarometricPressure
	case "RELATIVE_HUMIDITY":
		return b.RelativeHumidity
	case "AIR_TEMPERATURE":
		return b.AirTemperature
	case "LONGWAVE_IRRADIANCE":
		return b.LongwaveIrradiance
	case "PRECIPITATION":
		return b.Precipitation
	case "SEA_SURFACE_TEMPERATURE":
		return b.SeaSurfaceTemperature
	case "SEA_SURFACE_CONDUCTIVITY":
		return b.SeaSurfaceConductivity
	case "SHORTWAVE_IRRADIANCE":
		return b.ShortwaveIrradiance
	case "WIND_EASTWARD":
		return b.EastwardWind
	case "WIND_NORTHWARD":
		return b.NorthwardWind
	case "SEA_LEVEL_PRESSURE":
		return b.SeaLevelPressure
	case "WIND_SPEED":
		return b.WindSpeed
	case "WIND_DIRECTION":
		return b.WindDirection
	case "SEA_SURFACE_PRACTICAL_SALINITY":
		return b.Salinity
	default:
		return math.NaN()
	}
}

func wavssColumn(b *WavssBin, field string) float64 {
	if b == nil {
		return math.NaN()
	}
	switch field {
	case "INSTRUMENT_DATE":
		return b.InstrumentDate
	case "INSTRUMENT_TIME":
		return b.InstrumentTime
	case "INSTRUMENT_SERIAL":
		return b.InstrumentSerial
	case "N_ZERO_CROSSINGS":
		return b.ZeroCrossings
	case "AVERAGE_WAVE_HEIGHT":
		return b.AverageWaveHeight
	case "MEAN_SPECTRAL_PERIOD":
		return b.MeanSpectralPeriod
	case "MAXIMUM_WAVE_HEIGHT":
		return b.MaximumWaveHeight
	case "SIGNIFICANT_WAVE_HEIGHT":
		return b.SignificantWaveHeight
	case "SIGNIFICANT_PERIOD":
		return b.SignificantPeriod
	case "AVERAGE_HEIGHT_10TH_HIGHEST":
		return b.TenthHighestHeight
	case "AVERAGE_PERIOD_10TH_HIGHEST":
		return b.TenthHighestPeriod
	case "MEAN_WAVE_PERIOD":
		return b.MeanWavePeriod
	case "PEAK_PERIOD":
		return b.PeakPeriod
	case "TP5":
		return b.TP5
	case "HMO":
		return b.HMO
	case "MEAN_DIRECTION":
		return b.MeanDirection
	case "MEAN_SPREAD":
		return b.MeanSpread
	default:
		return math.NaN()
	}
}

// MergedTable is one buoy's instrument series outer-joined on bin time,
// sorted ascending.
type MergedTable []MergedRow

// Merge outer-joins the aggregated series of a buoy's instruments on bin
// time; the result's index is the union of all input bin times. For buoys
// carrying a second METBK, missing relative humidity and long and shortwave
// irradiance in the primary are filled from the secondary for the same bin.
// Nothing is back-filled the other way.
func Merge(metbk1, metbk2 []MetbkBin, wavss []WavssBin) MergedTable {
	rows := make(map[time.Time]*MergedRow)
	at := func(t time.Time) *MergedRow {
		t = t.UTC()
		r := rows[t]
		if r == nil {
			r = &MergedRow{Time: t}
			rows[t] = r
		}
		return r
	}

	for _, b := range metbk1 {
		bin := b
		at(bin.Time).Metbk1 = &bin
	}
	for _, b := range metbk2 {
		bin := b
		at(bin.Time).Metbk2 = &bin
	}
	for _, b := range wavss {
		bin := b
		at(bin.Time).Wavss = &bin
	}

	for _, r := range rows {
		if r.Metbk2 == nil {
			continue
		}
		if r.Metbk1 == nil {
			empty := emptyMetbkBin(r.Time)
			r.Metbk1 = &empty
		}
		fillFromSecondary(r.Metbk1, *r.Metbk2)
	}

	table := make(MergedTable, 0, len(rows))
	for _, r := range rows {
		table = append(table, *r)
	}
	sort.Slice(table, func(i, j int) bool { return table[i].Time.Before(table[j].Time) })
	return table
}

// fillFromSecondary fills the channels a secondary METBK can stand in for.
func fillFromSecondary(primary *MetbkBin, secondary MetbkBin) {
	if math.IsNaN(primary.RelativeHumidity) {
		primary.RelativeHumidity = secondary.RelativeHumidity
	}
	if math.IsNaN(primary.LongwaveIrradiance) {
		primary.LongwaveIrradiance = secondary.LongwaveIrradiance
	}
	if math.IsNaN(primary.ShortwaveIrradiance) {
		primary.ShortwaveIrradiance = secondary.ShortwaveIrradiance
	}
}

func emptyMetbkBin(t time.Time) MetbkBin {
	nan := math.NaN()
	return MetbkBin{
		Time:                   t,
		BarometricPressure:     nan,
		RelativeHumidity:       nan,
		AirTemperature:         nan,
		LongwaveIrradiance:     nan,
		Precipitation:          nan,
		SeaSurfaceTemperature:  nan,
		SeaSurfaceConductivity: nan,
		ShortwaveIrradiance:    nan,
		EastwardWind:           nan,
		NorthwardWind:          nan,
		SeaLevelPressure:       nan,
		WindSpeed:              nan,
		WindDirection:          nan,
		Salinity:               nan,
	}
}

// Window restricts the table to rows at or after start and drops rows with
// no data in any column. When nothing remains it substitutes a two-row
// all-missing placeholder at start and now, so the encoder always has at
// least one interval to report.
func (t MergedTable) Window(start time.Time) MergedTable {
	var out MergedTable
	for _, r := range t {
		if r.Time.Before(start) {
			continue
		}
		if !r.HasData() {
			continue
		}
		out = append(out, r)
	}
	if len(out) == 0 {
		return MergedTable{
			{Time: start},
			{Time: clock.Now().UTC()},
		}
	}
	return out
}
