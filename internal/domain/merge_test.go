package domain

import (
	"math"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func nanWavssBin(ts time.Time) WavssBin {
	nan := math.NaN()
	return WavssBin{
		Time:           ts,
		InstrumentDate: nan, InstrumentTime: nan, InstrumentSerial: nan,
		ZeroCrossings: nan, AverageWaveHeight: nan, MeanSpectralPeriod: nan,
		MaximumWaveHeight: nan, SignificantWaveHeight: nan, SignificantPeriod: nan,
		TenthHighestHeight: nan, TenthHighestPeriod: nan, MeanWavePeriod: nan,
		PeakPeriod: nan, TP5: nan, HMO: nan, MeanDirection: nan, MeanSpread: nan,
	}
}

func TestMerge(t *testing.T) {
	t.Run("disjoint bins union", func(t *testing.T) {
		m1a := emptyMetbkBin(binTime(0))
		m1a.AirTemperature = 11.0
		m1b := emptyMetbkBin(binTime(1))
		m1b.AirTemperature = 12.0
		wa := nanWavssBin(binTime(2))
		wa.SignificantWaveHeight = 1.5
		wb := nanWavssBin(binTime(3))
		wb.SignificantWaveHeight = 1.6

		table := Merge([]MetbkBin{m1a, m1b}, nil, []WavssBin{wa, wb})

		require.Len(t, table, 4)
		assert.Equal(t, binTime(0), table[0].Time)
		assert.NotNil(t, table[0].Metbk1)
		assert.Nil(t, table[0].Wavss)
		assert.Equal(t, binTime(3), table[3].Time)
		assert.Nil(t, table[3].Metbk1)
		assert.NotNil(t, table[3].Wavss)
	})

	t.Run("shared bin joins instruments", func(t *testing.T) {
		m1 := emptyMetbkBin(binTime(0))
		m1.AirTemperature = 11.0
		w := nanWavssBin(binTime(0))
		w.SignificantWaveHeight = 1.5

		table := Merge([]MetbkBin{m1}, nil, []WavssBin{w})

		require.Len(t, table, 1)
		assert.Equal(t, 11.0, table[0].Metbk1.AirTemperature)
		assert.Equal(t, 1.5, table[0].Wavss.SignificantWaveHeight)
	})

	t.Run("humidity fallback fills primary from secondary", func(t *testing.T) {
		m1 := emptyMetbkBin(binTime(0))
		m1.AirTemperature = 11.0
		m2 := emptyMetbkBin(binTime(0))
		m2.RelativeHumidity = 55.0

		table := Merge([]MetbkBin{m1}, []MetbkBin{m2}, nil)

		require.Len(t, table, 1)
		assert.Equal(t, 55.0, table[0].Metbk1.RelativeHumidity)
		assert.Equal(t, 55.0, table[0].Metbk2.RelativeHumidity)
	})

	t.Run("irradiance fallback", func(t *testing.T) {
		m1 := emptyMetbkBin(binTime(0))
		m1.AirTemperature = 11.0
		m2 := emptyMetbkBin(binTime(0))
		m2.LongwaveIrradiance = 390.0
		m2.ShortwaveIrradiance = 210.0

		table := Merge([]MetbkBin{m1}, []MetbkBin{m2}, nil)

		require.Len(t, table, 1)
		assert.Equal(t, 390.0, table[0].Metbk1.LongwaveIrradiance)
		assert.Equal(t, 210.0, table[0].Metbk1.ShortwaveIrradiance)
	})

	t.Run("primary value wins over secondary", func(t *testing.T) {
		m1 := emptyMetbkBin(binTime(0))
		m1.RelativeHumidity = 70.0
		m2 := emptyMetbkBin(binTime(0))
		m2.RelativeHumidity = 55.0

		table := Merge([]MetbkBin{m1}, []MetbkBin{m2}, nil)

		assert.Equal(t, 70.0, table[0].Metbk1.RelativeHumidity)
	})

	t.Run("no back-fill into secondary", func(t *testing.T) {
		m1 := emptyMetbkBin(binTime(0))
		m1.RelativeHumidity = 70.0
		m2 := emptyMetbkBin(binTime(0))
		m2.AirTemperature = 10.5

		table := Merge([]MetbkBin{m1}, []MetbkBin{m2}, nil)

		assert.True(t, math.IsNaN(table[0].Metbk2.RelativeHumidity))
	})

	t.Run("both missing stays missing", func(t *testing.T) {
		m1 := emptyMetbkBin(binTime(0))
		m1.AirTemperature = 11.0
		m2 := emptyMetbkBin(binTime(0))
		m2.AirTemperature = 10.5

		table := Merge([]MetbkBin{m1}, []MetbkBin{m2}, nil)

		assert.True(t, math.IsNaN(table[0].Metbk1.RelativeHumidity))
	})

	t.Run("fallback materializes missing primary bin", func(t *testing.T) {
		m2 := emptyMetbkBin(binTime(0))
		m2.RelativeHumidity = 55.0

		table := Merge(nil, []MetbkBin{m2}, nil)

		require.Len(t, table, 1)
		require.NotNil(t, table[0].Metbk1)
		assert.Equal(t, 55.0, table[0].Metbk1.RelativeHumidity)
		assert.True(t, math.IsNaN(table[0].Metbk1.AirTemperature))
	})

	t.Run("inputs are not mutated", func(t *testing.T) {
		m1 := emptyMetbkBin(binTime(0))
		m1.AirTemperature = 11.0
		m2 := emptyMetbkBin(binTime(0))
		m2.RelativeHumidity = 55.0
		metbk1 := []MetbkBin{m1}

		Merge(metbk1, []MetbkBin{m2}, nil)

		assert.True(t, math.IsNaN(metbk1[0].RelativeHumidity))
	})

	t.Run("empty inputs", func(t *testing.T) {
		assert.Empty(t, Merge(nil, nil, nil))
	})
}

func TestMergedTableWindow(t *testing.T) {
	fixedTime := time.Date(2024, 6, 1, 4, 30, 0, 0, time.UTC)
	start := binTime(6)

	t.Run("rows before start dropped", func(t *testing.T) {
		early := emptyMetbkBin(binTime(0))
		early.AirTemperature = 9.0
		late := emptyMetbkBin(binTime(7))
		late.AirTemperature = 10.0

		table := Merge([]MetbkBin{early, late}, nil, nil).Window(start)

		require.Len(t, table, 1)
		assert.Equal(t, binTime(7), table[0].Time)
	})

	t.Run("all-missing rows dropped", func(t *testing.T) {
		blank := emptyMetbkBin(binTime(7))
		keep := emptyMetbkBin(binTime(8))
		keep.AirTemperature = 10.0

		table := MergedTable{
			{Time: blank.Time, Metbk1: &blank},
			{Time: keep.Time, Metbk1: &keep},
		}.Window(start)

		require.Len(t, table, 1)
		assert.Equal(t, binTime(8), table[0].Time)
	})

	t.Run("empty result replaced by placeholder", func(t *testing.T) {
		SetClock(clockwork.NewFakeClockAt(fixedTime))
		defer SetClock(nil)

		table := MergedTable{}.Window(start)

		require.Len(t, table, 2)
		assert.Equal(t, start, table[0].Time)
		assert.Equal(t, fixedTime, table[1].Time)
		assert.Nil(t, table[0].Metbk1)
		assert.Nil(t, table[1].Wavss)
		assert.False(t, table[0].HasData())
	})

	t.Run("only stale data also yields placeholder", func(t *testing.T) {
		SetClock(clockwork.NewFakeClockAt(fixedTime))
		defer SetClock(nil)

		early := emptyMetbkBin(binTime(0))
		early.AirTemperature = 9.0

		table := Merge([]MetbkBin{early}, nil, nil).Window(start)

		require.Len(t, table, 2)
		assert.False(t, table[0].HasData())
	})
}

func TestMergedRowLookup(t *testing.T) {
	m1 := emptyMetbkBin(binTime(0))
	m1.AirTemperature = 11.5
	m1.SeaLevelPressure = 1015.2
	m2 := emptyMetbkBin(binTime(0))
	m2.WindSpeed = 7.3
	w := nanWavssBin(binTime(0))
	w.SignificantWaveHeight = 1.9
	w.SignificantPeriod = 6.7
	w.MeanDirection = 175.2

	row := MergedRow{Time: binTime(0), Metbk1: &m1, Metbk2: &m2, Wavss: &w}

	t.Run("resolves prefixed columns", func(t *testing.T) {
		assert.Equal(t, 11.5, row.Lookup("METBK1 AIR_TEMPERATURE"))
		assert.Equal(t, 1015.2, row.Lookup("METBK1 SEA_LEVEL_PRESSURE"))
		assert.Equal(t, 7.3, row.Lookup("METBK2 WIND_SPEED"))
		assert.Equal(t, 1.9, row.Lookup("WAVSS SIGNIFICANT_WAVE_HEIGHT"))
		assert.Equal(t, 6.7, row.Lookup("WAVSS SIGNIFICANT_PERIOD"))
		assert.Equal(t, 175.2, row.Lookup("WAVSS MEAN_DIRECTION"))
	})

	t.Run("missing channel is NaN", func(t *testing.T) {
		assert.True(t, math.IsNaN(row.Lookup("METBK1 WIND_SPEED")))
	})

	t.Run("absent instrument is NaN", func(t *testing.T) {
		bare := MergedRow{Time: binTime(0)}
		assert.True(t, math.IsNaN(bare.Lookup("METBK1 AIR_TEMPERATURE")))
		assert.True(t, math.IsNaN(bare.Lookup("METBK2 AIR_TEMPERATURE")))
		assert.True(t, math.IsNaN(bare.Lookup("WAVSS SIGNIFICANT_PERIOD")))
	})

	t.Run("unknown names are NaN", func(t *testing.T) {
		assert.True(t, math.IsNaN(row.Lookup("")))
		assert.True(t, math.IsNaN(row.Lookup("METBK1")))
		assert.True(t, math.IsNaN(row.Lookup("METBK1 NOT_A_COLUMN")))
		assert.True(t, math.IsNaN(row.Lookup("SONDE AIR_TEMPERATURE")))
	})
}

func TestMergedRowHasData(t *testing.T) {
	t.Run("empty row", func(t *testing.T) {
		assert.False(t, MergedRow{Time: binTime(0)}.HasData())
	})

	t.Run("all-missing bins", func(t *testing.T) {
		m1 := emptyMetbkBin(binTime(0))
		w := nanWavssBin(binTime(0))
		row := MergedRow{Time: binTime(0), Metbk1: &m1, Wavss: &w}
		assert.False(t, row.HasData())
	})

	t.Run("single finite value", func(t *testing.T) {
		w := nanWavssBin(binTime(0))
		w.MeanSpread = 33.1
		row := MergedRow{Time: binTime(0), Wavss: &w}
		assert.True(t, row.HasData())
	})
}
