package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeaLevelPressure(t *testing.T) {
	t.Run("anchor value", func(t *testing.T) {
		assert.InDelta(t, 1000.632, SeaLevelPressure(1000, 0, 5.05), 0.001)
	})

	t.Run("increasing in raw pressure", func(t *testing.T) {
		assert.Greater(t,
			SeaLevelPressure(1010, 10, 4.05),
			SeaLevelPressure(1000, 10, 4.05))
	})

	t.Run("correction grows with sensor height", func(t *testing.T) {
		assert.Greater(t,
			SeaLevelPressure(1000, 10, 5.05),
			SeaLevelPressure(1000, 10, 4.05))
	})

	t.Run("nan propagates", func(t *testing.T) {
		assert.True(t, math.IsNaN(SeaLevelPressure(math.NaN(), 10, 4.05)))
		assert.True(t, math.IsNaN(SeaLevelPressure(1000, math.NaN(), 4.05)))
	})
}

func TestWindSpeed(t *testing.T) {
	t.Run("component magnitude", func(t *testing.T) {
		assert.Equal(t, 5.0, WindSpeed(3, 4))
	})

	t.Run("calm", func(t *testing.T) {
		assert.Equal(t, 0.0, WindSpeed(0, 0))
	})

	t.Run("nan propagates", func(t *testing.T) {
		assert.True(t, math.IsNaN(WindSpeed(math.NaN(), 4)))
	})
}

func TestWindDirection(t *testing.T) {
	tests := []struct {
		name     string
		u        float64
		v        float64
		expected float64
	}{
		{"wind from north", 0, -1, 0},
		{"wind from east", -1, 0, 90},
		{"wind from south", 0, 1, 180},
		{"wind from west", 1, 0, 270},
		{"wind from northeast", -1, -1, 45},
		{"wind from southwest", 1, 1, 225},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WindDirection(tt.u, tt.v)
			assert.InDelta(t, tt.expected, got, 1e-9)
			assert.GreaterOrEqual(t, got, -0.0)
			assert.Less(t, got, 360.0)
		})
	}

	t.Run("nan propagates", func(t *testing.T) {
		assert.True(t, math.IsNaN(WindDirection(math.NaN(), 1)))
	})
}

func TestDeriveMetbkBin(t *testing.T) {
	t.Run("fills derived columns from bin means", func(t *testing.T) {
		bin := emptyMetbkBin(binTime(0))
		bin.BarometricPressure = 1014.0
		bin.AirTemperature = 10.0
		bin.EastwardWind = 3.0
		bin.NorthwardWind = 4.0
		bin.SeaSurfaceConductivity = 4.0
		bin.SeaSurfaceTemperature = 12.0

		got := DeriveMetbkBin(bin, 4.05)

		assert.Equal(t, SeaLevelPressure(1014.0, 10.0, 4.05), got.SeaLevelPressure)
		assert.Equal(t, 5.0, got.WindSpeed)
		assert.Equal(t, WindDirection(3.0, 4.0), got.WindDirection)
		assert.Equal(t, Salinity(4.0, 12.0), got.Salinity)
		assert.Equal(t, 1014.0, got.BarometricPressure)
	})

	t.Run("missing means stay missing", func(t *testing.T) {
		got := DeriveMetbkBin(emptyMetbkBin(binTime(0)), 4.05)

		assert.True(t, math.IsNaN(got.SeaLevelPressure))
		assert.True(t, math.IsNaN(got.WindSpeed))
		assert.True(t, math.IsNaN(got.WindDirection))
		assert.True(t, math.IsNaN(got.Salinity))
	})
}

func TestDeriveMetbkBins(t *testing.T) {
	bins := []MetbkBin{emptyMetbkBin(binTime(0)), emptyMetbkBin(binTime(1))}
	bins[0].EastwardWind = 3.0
	bins[0].NorthwardWind = 4.0
	bins[1].EastwardWind = 0.0
	bins[1].NorthwardWind = 0.0

	got := DeriveMetbkBins(bins, 5.05)

	require.Len(t, got, 2)
	assert.Equal(t, 5.0, got[0].WindSpeed)
	assert.Equal(t, 0.0, got[1].WindSpeed)
}
