package domain

import (
	"math"
	"sort"
	"time"
)

// MetbkBin is one fixed-width aggregate of METBK samples: per-channel means
// plus the variables derived from those means. A channel with no finite
// sample in the bin is NaN.
type MetbkBin struct {
	Time time.Time

	BarometricPressure     float64
	RelativeHumidity       float64
	AirTemperature         float64
	LongwaveIrradiance     float64
	Precipitation          float64
	SeaSurfaceTemperature  float64
	SeaSurfaceConductivity float64
	ShortwaveIrradiance    float64
	EastwardWind           float64
	NorthwardWind          float64

	SeaLevelPressure float64
	WindSpeed        float64
	WindDirection    float64
	Salinity         float64
}

func (b MetbkBin) values() []float64 {
	return []float64{
		b.BarometricPressure, b.RelativeHumidity, b.AirTemperature,
		b.LongwaveIrradiance, b.Precipitation, b.SeaSurfaceTemperature,
		b.SeaSurfaceConductivity, b.ShortwaveIrradiance,
		b.EastwardWind, b.NorthwardWind,
		b.SeaLevelPressure, b.WindSpeed, b.WindDirection, b.Salinity,
	}
}

// HasData reports whether any column of the bin holds a finite value.
func (b MetbkBin) HasData() bool {
	return anyFinite(b.values())
}

// WavssBin is one fixed-width aggregate of WAVSS samples.
type WavssBin struct {
	Time time.Time

	InstrumentDate   float64
	InstrumentTime   float64
	InstrumentSerial float64

	ZeroCrossings         float64
	AverageWaveHeight     float64
	MeanSpectralPeriod    float64
	MaximumWaveHeight     float64
	SignificantWaveHeight float64
	SignificantPeriod     float64
	TenthHighestHeight    float64
	TenthHighestPeriod    float64
	MeanWavePeriod        float64
	PeakPeriod            float64
	TP5                   float64
	HMO                   float64
	MeanDirection         float64
	MeanSpread            float64
}

func (b WavssBin) values() []float64 {
	return []float64{
		b.InstrumentDate, b.InstrumentTime, b.InstrumentSerial,
		b.ZeroCrossings, b.AverageWaveHeight, b.MeanSpectralPeriod,
		b.MaximumWaveHeight, b.SignificantWaveHeight, b.SignificantPeriod,
		b.TenthHighestHeight, b.TenthHighestPeriod, b.MeanWavePeriod,
		b.PeakPeriod, b.TP5, b.HMO, b.MeanDirection, b.MeanSpread,
	}
}

// HasData reports whether any column of the bin holds a finite value.
func (b WavssBin) HasData() bool {
	return anyFinite(b.values())
}

func anyFinite(values []float64) bool {
	for _, v := range values {
		if !math.IsNaN(v) {
			return true
		}
	}
	return false
}

// meanAcc accumulates the finite values of one column in one bin.
type meanAcc struct {
	sum float64
	n   int
}

func (a *meanAcc) add(v float64) {
	if math.IsNaN(v) {
		return
	}
	a.sum += v
	a.n++
}

func (a meanAcc) mean() float64 {
	if a.n == 0 {
		return math.NaN()
	}
	return a.sum / float64(a.n)
}

type metbkAcc struct {
	pressure     meanAcc
	humidity     meanAcc
	airTemp      meanAcc
	longwave     meanAcc
	precip       meanAcc
	seaTemp      meanAcc
	conductivity meanAcc
	shortwave    meanAcc
	eastward     meanAcc
	northward    meanAcc
}

// BinMetbk partitions samples into half-open clock-aligned bins of the given
// width and averages each channel over the finite values that landed in the
// bin. Bins with no finite value in any channel are not emitted; derived
// variables start NaN and are filled later by [DeriveMetbkBins]. Bins come
// back sorted by time.
func BinMetbk(samples []MetbkSample, width time.Duration) []MetbkBin {
	accs := make(map[time.Time]*metbkAcc)
	for _, s := range samples {
		key := s.Time.UTC().Truncate(width)
		acc := accs[key]
		if acc == nil {
			acc = &metbkAcc{}
			accs[key] = acc
		}
		acc.pressure.add(s.BarometricPressure)
		acc.humidity.add(s.RelativeHumidity)
		acc.airTemp.add(s.AirTemperature)
		acc.longwave.add(s.LongwaveIrradiance)
		acc.precip.add(s.Precipitation)
		acc.seaTemp.add(s.SeaSurfaceTemperature)
		acc.conductivity.add(s.SeaSurfaceConductivity)
		acc.shortwave.add(s.ShortwaveIrradiance)
		acc.eastward.add(s.EastwardWind)
		acc.northward.add(s.NorthwardWind)
	}

	nan := math.NaN()
	bins := make([]MetbkBin, 0, len(accs))
	for key, acc := range accs {
		bin := MetbkBin{
			Time:                   key,
			BarometricPressure:     acc.pressure.mean(),
			RelativeHumidity:       acc.humidity.mean(),
			AirTemperature:         acc.airTemp.mean(),
			LongwaveIrradiance:     acc.longwave.mean(),
			Precipitation:          acc.precip.mean(),
			SeaSurfaceTemperature:  acc.seaTemp.mean(),
			SeaSurfaceConductivity: acc.conductivity.mean(),
			ShortwaveIrradiance:    acc.shortwave.mean(),
			EastwardWind:           acc.eastward.mean(),
			NorthwardWind:          acc.northward.mean(),
			SeaLevelPressure:       nan,
			WindSpeed:              nan,
			WindDirection:          nan,
			Salinity:               nan,
		}
		if !bin.HasData() {
			continue
		}
		bins = append(bins, bin)
	}
	sort.Slice(bins, func(i, j int) bool { return bins[i].Time.Before(bins[j].Time) })
	return bins
}

type wavssAcc struct {
	date       meanAcc
	clock      meanAcc
	serial     meanAcc
	crossings  meanAcc
	avgHeight  meanAcc
	spectral   meanAcc
	maxHeight  meanAcc
	sigHeight  meanAcc
	sigPeriod  meanAcc
	h10        meanAcc
	t10        meanAcc
	meanPeriod meanAcc
	peakPeriod meanAcc
	tp5        meanAcc
	hmo        meanAcc
	direction  meanAcc
	spread     meanAcc
}

// BinWavss partitions samples into half-open clock-aligned bins of the given
// width and averages each statistic over the finite values that landed in
// the bin. Bins with no finite value in any column are not emitted. Bins
// come back sorted by time.
func BinWavss(samples []WavssSample, width time.Duration) []WavssBin {
	accs := make(map[time.Time]*wavssAcc)
	for _, s := range samples {
		key := s.Time.UTC().Truncate(width)
		acc := accs[key]
		if acc == nil {
			acc = &wavssAcc{}
			accs[key] = acc
		}
		acc.date.add(s.InstrumentDate)
		acc.clock.add(s.InstrumentTime)
		acc.serial.add(s.InstrumentSerial)
		acc.crossings.add(s.ZeroCrossings)
		acc.avgHeight.add(s.AverageWaveHeight)
		acc.spectral.add(s.MeanSpectralPeriod)
		acc.maxHeight.add(s.MaximumWaveHeight)
		acc.sigHeight.add(s.SignificantWaveHeight)
		acc.sigPeriod.add(s.SignificantPeriod)
		acc.h10.add(s.TenthHighestHeight)
		acc.t10.add(s.TenthHighestPeriod)
		acc.meanPeriod.add(s.MeanWavePeriod)
		acc.peakPeriod.add(s.PeakPeriod)
		acc.tp5.add(s.TP5)
		acc.hmo.add(s.HMO)
		acc.direction.add(s.MeanDirection)
		acc.spread.add(s.MeanSpread)
	}

	bins := make([]WavssBin, 0, len(accs))
	for key, acc := range accs {
		bin := WavssBin{
			Time:                  key,
			InstrumentDate:        acc.date.mean(),
			InstrumentTime:        acc.clock.mean(),
			InstrumentSerial:      acc.serial.mean(),
			ZeroCrossings:         acc.crossings.mean(),
			AverageWaveHeight:     acc.avgHeight.mean(),
			MeanSpectralPeriod:    acc.spectral.mean(),
			MaximumWaveHeight:     acc.maxHeight.mean(),
			SignificantWaveHeight: acc.sigHeight.mean(),
			SignificantPeriod:     acc.sigPeriod.mean(),
			TenthHighestHeight:    acc.h10.mean(),
			TenthHighestPeriod:    acc.t10.mean(),
			MeanWavePeriod:        acc.meanPeriod.mean(),
			PeakPeriod:            acc.peakPeriod.mean(),
			TP5:                   acc.tp5.mean(),
			HMO:                   acc.hmo.mean(),
			MeanDirection:         acc.direction.mean(),
			MeanSpread:            acc.spread.mean(),
		}
		if !bin.HasData() {
			continue
		}
		bins = append(bins, bin)
	}
	sort.Slice(bins, func(i, j int) bool { return bins[i].Time.Before(bins[j].Time) })
	return bins
}
