// Package domain models ocean buoy surface meteorology and wave telemetry
// and the transforms that turn raw instrument output into NDBC-ready tables.
//
// # Data Sources
//
// Each buoy carries one or two METBK bulk meteorology packages and a WAVSS
// wave sensor. The data logger appends every received line to hourly .log
// files under <buoy>/<deployment>/<instrument>/, and the same streams are
// served post-QC from an ERDDAP tabledap endpoint. Both paths feed the same
// parsers here; the adapters only differ in how they fetch bytes.
//
// # METBK Line Grammar
//
// A well-formed METBK line is a logger timestamp followed by ten
// whitespace-separated floats and a trailing battery voltage:
//
//	2024/06/01 00:04:17.322 1014.23 89.1 12.80 398.1 0.0 13.42 4.1234 210.4 -3.21 5.67 12.8
//
// fields in order: barometric pressure (mbar), relative humidity (%),
// air temperature (degC), longwave irradiance (W m-2), precipitation (mm),
// sea surface temperature (degC), sea surface conductivity (S m-1),
// shortwave irradiance (W m-2), eastward wind (m s-1), northward wind (m s-1).
//
// The instrument emits "Na " for channels that dropped out; these become NaN
// before field matching. A line whose trailing token is not numeric is a
// status line from a rebooting sensor: if it still carries a timestamp it
// yields an all-NaN sample at that time, otherwise it is dropped. A
// timestamped line whose body fails the ten-field grammar likewise yields an
// all-NaN sample, so its time bin survives.
//
// # WAVSS Sentences
//
// The WAVSS emits NMEA-style sentences. Only the wave statistics sentence is
// kept:
//
//	2024/06/01 00:08:12.001 $TSPWA,20240601,000812,05324,05324,,,00139,00.52,05.65,01.13,00.83,08.1,00.96,08.8,06.23,11.4,06.54,00.88,175.2,33.10*5F
//
// The checksum suffix (*hh) is stripped, the sentence splits on commas, and
// the buoy identifier plus the two reserved (lat/lon) fields are discarded,
// leaving seventeen numeric fields per sample: instrument date, time, and
// serial, then fourteen wave statistics. A deployment window
// with no sentences at all still yields two all-NaN samples bracketing the
// window so downstream reporting can show an explicit gap.
//
// # Derived Variables
//
// Four variables are computed from 10-minute bin means, never from raw
// samples:
//
//	sea-level pressure: p / exp(-h / (29.263 (t + 273.15)))
//	                    h = barometer height above waterline (m), t = air temp (degC)
//	wind speed:         sqrt(u^2 + v^2)
//	wind direction:     atan2(-u, -v) in degrees, wrapped to [0, 360)
//	salinity:           PSS-78 practical salinity from conductivity and water
//	                    temperature at 1 dbar. See [Salinity].
//
// # Binning and Merging
//
// Samples aggregate into half-open clock-aligned bins: a sample at time t
// lands in [t.Truncate(width), +width). Bin means skip NaN inputs; a bin with
// no finite value in any column is not emitted. The per-instrument bin series
// outer-join on bin time into a [MergedTable]. When a buoy carries a second
// METBK, its relative humidity and long/shortwave irradiance fill gaps in the
// primary (the primary's own sensors for those channels fail most often at
// sea). [MergedTable.Window] then restricts to the reporting window, drops
// rows with no data in any column, and falls back to a two-row all-missing
// placeholder so the encoder always has at least one interval to report.
package domain
