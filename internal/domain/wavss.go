package domain

import (
	"fmt"
	"math"
	"regexp"
	"time"
)

// WavssSample is one decoded WAVSS wave statistics sentence. Fields the
// sensor did not report are NaN.
type WavssSample struct {
	Time             time.Time
	InstrumentDate   float64 // YYYYMMDD as emitted
	InstrumentTime   float64 // HHMMSS as emitted
	InstrumentSerial float64

	ZeroCrossings         float64
	AverageWaveHeight     float64 // m
	MeanSpectralPeriod    float64 // s
	MaximumWaveHeight     float64 // m
	SignificantWaveHeight float64 // m
	SignificantPeriod     float64 // s
	TenthHighestHeight    float64 // m
	TenthHighestPeriod    float64 // s
	MeanWavePeriod        float64 // s
	PeakPeriod            float64 // s
	TP5                   float64 // s
	HMO                   float64 // m
	MeanDirection         float64 // deg
	MeanSpread            float64 // deg
}

var (
	// wavssChecksumRe strips the NMEA checksum suffix ("*5F" and anything
	// after it) before field splitting.
	wavssChecksumRe = regexp.MustCompile(`\*.*`)

	// wavssSplitRe separates the logger timestamp from the sentence and the
	// sentence into its comma-delimited fields in one pass.
	wavssSplitRe = regexp.MustCompile(` \$|,`)
)

// ParseWavss decodes raw WAVSS logger lines into samples, in input order.
// Lines that are not well-formed wave statistics sentences are skipped.
//
// When the whole input yields no samples the series is seeded with
// PlaceholderWavss, so downstream binning always has a series spanning
// the reporting window.
func ParseWavss(lines []string, windowStart time.Time) []WavssSample {
	var samples []WavssSample
	for _, line := range lines {
		s, err := ParseWavssSentence(line)
		if err != nil {
			continue
		}
		samples = append(samples, s)
	}
	if len(samples) == 0 {
		return PlaceholderWavss(windowStart)
	}
	return samples
}

// PlaceholderWavss marks a window with no wave data: two all-NaN samples
// at the window start and now. Every source emits these when a station's
// wave series comes back empty.
func PlaceholderWavss(windowStart time.Time) []WavssSample {
	return []WavssSample{
		emptyWavssSample(windowStart),
		emptyWavssSample(clock.Now().UTC()),
	}
}

// ParseWavssSentence decodes a single WAVSS wave statistics ($TSPWA) line.
// The sentence carries 20 reported quantities plus two reserved position
// fields; the buoy identifier and the reserved fields are discarded.
func ParseWavssSentence(line string) (WavssSample, error) {
	clean := wavssChecksumRe.ReplaceAllString(line, "")
	fields := wavssSplitRe.Split(clean, -1)
	if len(fields) != 22 {
		return WavssSample{}, fmt.Errorf("parse wavss sentence: %w", ErrMalformed)
	}
	if fields[1] != "TSPWA" {
		return WavssSample{}, fmt.Errorf("parse wavss sentence: %w", ErrMalformed)
	}

	ts, _, err := extractTimestamp(fields[0])
	if err != nil {
		return WavssSample{}, fmt.Errorf("parse wavss sentence: %w", err)
	}

	return WavssSample{
		Time:                  ts,
		InstrumentDate:        parseChannel(fields[2]),
		InstrumentTime:        parseChannel(fields[3]),
		InstrumentSerial:      parseChannel(fields[4]),
		ZeroCrossings:         parseChannel(fields[8]),
		AverageWaveHeight:     parseChannel(fields[9]),
		MeanSpectralPeriod:    parseChannel(fields[10]),
		MaximumWaveHeight:     parseChannel(fields[11]),
		SignificantWaveHeight: parseChannel(fields[12]),
		SignificantPeriod:     parseChannel(fields[13]),
		TenthHighestHeight:    parseChannel(fields[14]),
		TenthHighestPeriod:    parseChannel(fields[15]),
		MeanWavePeriod:        parseChannel(fields[16]),
		PeakPeriod:            parseChannel(fields[17]),
		TP5:                   parseChannel(fields[18]),
		HMO:                   parseChannel(fields[19]),
		MeanDirection:         parseChannel(fields[20]),
		MeanSpread:            parseChannel(fields[21]),
	}, nil
}

func emptyWavssSample(ts time.Time) WavssSample {
	nan := math.NaN()
	return WavssSample{
		Time:                  ts,
		InstrumentDate:        nan,
		InstrumentTime:        nan,
		InstrumentSerial:      nan,
		ZeroCrossings:         nan,
		AverageWaveHeight:     nan,
		MeanSpectralPeriod:    nan,
		MaximumWaveHeight:     nan,
		SignificantWaveHeight: nan,
		SignificantPeriod:     nan,
		TenthHighestHeight:    nan,
		TenthHighestPeriod:    nan,
		MeanWavePeriod:        nan,
		PeakPeriod:            nan,
		TP5:                   nan,
		HMO:                   nan,
		MeanDirection:         nan,
		MeanSpread:            nan,
	}
}
