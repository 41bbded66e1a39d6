package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSpFromC(t *testing.T) {
	t.Run("standard seawater anchor", func(t *testing.T) {
		// A conductivity ratio of exactly 1 at t68 = 15 defines SP = 35.
		sp := spFromC(c3515, 15/1.00024, 0)
		assert.InDelta(t, 35.0, sp, 1e-6)
	})

	t.Run("freshwater", func(t *testing.T) {
		assert.InDelta(t, 0.0, spFromC(0, 15, 0), 1e-9)
	})

	t.Run("low salinity uses spliced form", func(t *testing.T) {
		sp := spFromC(0.5, 10, 1)
		assert.False(t, math.IsNaN(sp))
		assert.GreaterOrEqual(t, sp, 0.0)
		assert.Less(t, sp, 2.0)
	})

	t.Run("negative conductivity", func(t *testing.T) {
		assert.True(t, math.IsNaN(spFromC(-5, 10, 1)))
	})

	t.Run("nan propagates", func(t *testing.T) {
		assert.True(t, math.IsNaN(spFromC(math.NaN(), 10, 1)))
		assert.True(t, math.IsNaN(spFromC(42.9, math.NaN(), 1)))
	})
}

func TestSalinity(t *testing.T) {
	t.Run("typical seawater", func(t *testing.T) {
		// 4.2914 S m-1 scales to the standard seawater conductivity.
		sp := Salinity(4.2914, 15/1.00024)
		assert.InDelta(t, 35.0, sp, 1e-3)
	})

	t.Run("scales instrument units by ten", func(t *testing.T) {
		assert.Equal(t, spFromC(35.0, 12.0, 1), Salinity(3.5, 12.0))
	})

	t.Run("nan propagates", func(t *testing.T) {
		assert.True(t, math.IsNaN(Salinity(math.NaN(), 12.0)))
		assert.True(t, math.IsNaN(Salinity(4.2, math.NaN())))
	})
}
