package bulletin

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cgsn-ops/ndbc-bulletin/internal/domain"
	"github.com/cgsn-ops/ndbc-bulletin/internal/station"
)

func observedRow(ts time.Time) domain.MergedRow {
	m1 := domain.MetbkBin{
		Time:                   ts,
		BarometricPressure:     1014.2,
		RelativeHumidity:       88.1,
		AirTemperature:         12.3,
		LongwaveIrradiance:     math.NaN(),
		Precipitation:          0.1,
		SeaSurfaceTemperature:  13.4,
		SeaSurfaceConductivity: 4.12,
		ShortwaveIrradiance:    210.7,
		EastwardWind:           -3.2,
		NorthwardWind:          5.6,
		SeaLevelPressure:       1014.8,
		WindSpeed:              6.4,
		WindDirection:          150.2,
		Salinity:               34.9,
	}
	m2 := m1
	m2.AirTemperature = 11.9
	m2.SeaLevelPressure = 1015.1
	m2.WindSpeed = 7
	m2.WindDirection = 161.5
	m2.SeaSurfaceTemperature = 13.1
	m2.Salinity = 35
	w := domain.WavssBin{
		Time:                  ts,
		InstrumentDate:        20240601,
		InstrumentTime:        10,
		InstrumentSerial:      5324,
		ZeroCrossings:         139,
		AverageWaveHeight:     1.3,
		MeanSpectralPeriod:    5.2,
		MaximumWaveHeight:     2.6,
		SignificantWaveHeight: 1.9,
		SignificantPeriod:     6.7,
		TenthHighestHeight:    2.3,
		TenthHighestPeriod:    6.1,
		MeanWavePeriod:        5.9,
		PeakPeriod:            8.3,
		TP5:                   7.1,
		HMO:                   1.8,
		MeanDirection:         175.2,
		MeanSpread:            33.1,
	}
	return domain.MergedRow{Time: ts, Metbk1: &m1, Metbk2: &m2, Wavss: &w}
}

func TestEncode(t *testing.T) {
	sumo, err := station.Lookup("GI01SUMO")
	require.NoError(t, err)

	t.Run("full layout", func(t *testing.T) {
		observed := time.Date(2024, 6, 1, 0, 10, 0, 0, time.UTC)
		placeholder := time.Date(2024, 6, 1, 0, 20, 0, 0, time.UTC)
		table := domain.MergedTable{
			observedRow(observed),
			{Time: placeholder},
		}

		want := strings.Join([]string{
			`<?xml version="1.0" encoding="ISO-8859-1"?>`,
			`<message>`,
			`  <station>44078</station>`,
			`  <date>06/01/2024 00:10:00</date>`,
			`  <missing>-9999</missing>`,
			`  <roundtime>no</roundtime>`,
			`  <met>`,
			`    <atmp1>12.3</atmp1>`,
			`    <atmp2>11.9</atmp2>`,
			`    <baro1>1014.8</baro1>`,
			`    <baro2>1015.1</baro2>`,
			`    <lwrad>-9999</lwrad>`,
			`    <rrh>88.1</rrh>`,
			`    <srad1>210.7</srad1>`,
			`    <wspd1>6.4</wspd1>`,
			`    <wspd2>7</wspd2>`,
			`    <wdir1>150.2</wdir1>`,
			`    <wdir2>161.5</wdir2>`,
			`    <wtmp1>13.4</wtmp1>`,
			`    <wtmp2>13.1</wtmp2>`,
			`    <tp001>13.4</tp001>`,
			`    <tp002>13.1</tp002>`,
			`    <sp001>34.9</sp001>`,
			`    <sp002>35</sp002>`,
			`    <dompd>6.7</dompd>`,
			`    <mwdir>175.2</mwdir>`,
			`    <wvhgt>1.9</wvhgt>`,
			`    <dp001>0.95</dp001>`,
			`    <dp002>1.15</dp002>`,
			`    <fm64iii>830</fm64iii>`,
			`    <fm64k1>7</fm64k1>`,
			`    <fm64k2>1</fm64k2>`,
			`  </met>`,
			`</message>`,
			`<message>`,
			`  <station>44078</station>`,
			`  <date>06/01/2024 00:20:00</date>`,
			`  <missing>-9999</missing>`,
			`  <roundtime>no</roundtime>`,
			`  <met>`,
			`    <atmp1>-9999</atmp1>`,
			`    <atmp2>-9999</atmp2>`,
			`    <baro1>-9999</baro1>`,
			`    <baro2>-9999</baro2>`,
			`    <lwrad>-9999</lwrad>`,
			`    <rrh>-9999</rrh>`,
			`    <srad1>-9999</srad1>`,
			`    <wspd1>-9999</wspd1>`,
			`    <wspd2>-9999</wspd2>`,
			`    <wdir1>-9999</wdir1>`,
			`    <wdir2>-9999</wdir2>`,
			`    <wtmp1>-9999</wtmp1>`,
			`    <wtmp2>-9999</wtmp2>`,
			`    <tp001>-9999</tp001>`,
			`    <tp002>-9999</tp002>`,
			`    <sp001>-9999</sp001>`,
			`    <sp002>-9999</sp002>`,
			`    <dompd>-9999</dompd>`,
			`    <mwdir>-9999</mwdir>`,
			`    <wvhgt>-9999</wvhgt>`,
			`    <dp001>0.95</dp001>`,
			`    <dp002>1.15</dp002>`,
			`    <fm64iii>830</fm64iii>`,
			`    <fm64k1>7</fm64k1>`,
			`    <fm64k2>1</fm64k2>`,
			`  </met>`,
			`</message>`,
		}, "\n") + "\n"

		got := string(Encode(sumo, table))
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("bulletin mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("dates render in UTC", func(t *testing.T) {
		eastern := time.FixedZone("EST", -5*60*60)
		ts := time.Date(2024, 5, 31, 20, 10, 0, 0, eastern)
		got := string(Encode(sumo, domain.MergedTable{{Time: ts}}))
		assert.Contains(t, got, "<date>06/01/2024 01:10:00</date>")
	})

	t.Run("single-met station omits wind speed", func(t *testing.T) {
		nosm, err := station.Lookup("CP11NOSM")
		require.NoError(t, err)

		ts := time.Date(2024, 6, 1, 0, 10, 0, 0, time.UTC)
		got := string(Encode(nosm, domain.MergedTable{observedRow(ts)}))

		assert.Contains(t, got, "<station>44079</station>")
		assert.Contains(t, got, "<atmp1>12.3</atmp1>")
		assert.Contains(t, got, "<wdir1>150.2</wdir1>")
		assert.NotContains(t, got, "<wspd1>")
		assert.NotContains(t, got, "<atmp2>")
		assert.NotContains(t, got, "<dp002>")
	})

	t.Run("empty table is header only", func(t *testing.T) {
		got := string(Encode(sumo, nil))
		assert.Equal(t, "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?>\n", got)
	})
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{-9999, "-9999"},
		{0.95, "0.95"},
		{1.15, "1.15"},
		{830, "830"},
		{1, "1"},
		{12.0, "12"},
		{1014.25, "1014.25"},
		{-3.5, "-3.5"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatValue(tt.in))
	}
}

func TestFilename(t *testing.T) {
	now := time.Date(2024, 6, 1, 4, 15, 9, 0, time.UTC)
	assert.Equal(t, "44078_20240601041509.xml", Filename("44078", now))

	eastern := time.FixedZone("EST", -5*60*60)
	assert.Equal(t, "41082_20240601041509.xml", Filename("41082", now.In(eastern)))
}
