package domain

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// MetbkSample is one decoded METBK logger line. A channel the instrument
// could not read is NaN.
type MetbkSample struct {
	Time                   time.Time
	BarometricPressure     float64 // mbar
	RelativeHumidity       float64 // percent
	AirTemperature         float64 // degC
	LongwaveIrradiance     float64 // W m-2
	Precipitation          float64 // mm
	SeaSurfaceTemperature  float64 // degC
	SeaSurfaceConductivity float64 // S m-1
	ShortwaveIrradiance    float64 // W m-2
	EastwardWind           float64 // m s-1
	NorthwardWind          float64 // m s-1
}

// metbkBodyRe matches the ten METBK data fields once the timestamp has been
// cut out. Separators vary between firmware revisions so whitespace is
// optional; a dropped channel reads "NaN" after substitution.
var metbkBodyRe = regexp.MustCompile(strings.Repeat(`\s*(-*\d+\.\d+|NaN)`, 10))

// ParseMetbk decodes raw METBK logger lines into samples, in input order.
// Undecodable lines are skipped.
func ParseMetbk(lines []string) []MetbkSample {
	var samples []MetbkSample
	for _, line := range lines {
		s, err := ParseMetbkLine(line)
		if err != nil {
			continue
		}
		samples = append(samples, s)
	}
	return samples
}

// ParseMetbkLine decodes a single METBK logger line.
//
// The final whitespace token on a healthy line is the battery voltage; when
// it is not numeric the instrument was resetting and the line carries no
// data. Any timestamped line that fails the battery check or the ten-field
// grammar yields an all-NaN sample at that time, so the outage stays visible
// as an explicit gap instead of silently vanishing.
func ParseMetbkLine(line string) (MetbkSample, error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return MetbkSample{}, fmt.Errorf("parse metbk line: %w", ErrNoTimestamp)
	}

	if _, err := strconv.ParseFloat(fields[len(fields)-1], 64); err != nil {
		ts, _, tsErr := extractTimestamp(line)
		if tsErr != nil {
			return MetbkSample{}, fmt.Errorf("parse metbk line: %w", ErrNoTimestamp)
		}
		return emptyMetbkSample(ts), nil
	}

	// The instrument writes "Na " for a channel that dropped out mid-line.
	line = strings.ReplaceAll(line, "Na ", "NaN")

	ts, matched, err := extractTimestamp(line)
	if err != nil {
		return MetbkSample{}, fmt.Errorf("parse metbk line: %w", err)
	}
	body := strings.Replace(line, matched, "", 1)

	m := metbkBodyRe.FindStringSubmatch(body)
	if m == nil {
		return emptyMetbkSample(ts), nil
	}

	return MetbkSample{
		Time:                   ts,
		BarometricPressure:     parseChannel(m[1]),
		RelativeHumidity:       parseChannel(m[2]),
		AirTemperature:         parseChannel(m[3]),
		LongwaveIrradiance:     parseChannel(m[4]),
		Precipitation:          parseChannel(m[5]),
		SeaSurfaceTemperature:  parseChannel(m[6]),
		SeaSurfaceConductivity: parseChannel(m[7]),
		ShortwaveIrradiance:    parseChannel(m[8]),
		EastwardWind:           parseChannel(m[9]),
		NorthwardWind:          parseChannel(m[10]),
	}, nil
}

func emptyMetbkSample(ts time.Time) MetbkSample {
	nan := math.NaN()
	return MetbkSample{
		Time:                   ts,
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
	}
}

// parseChannel converts one raw data field, mapping the NaN token (and
// anything unparseable) to NaN.
func parseChannel(tok string) float64 {
	if tok == "NaN" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(tok, 64)
	if err != nil {
		return math.NaN()
	}
	return v
}
