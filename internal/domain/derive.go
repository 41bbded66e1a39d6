package domain

import "math"

// SeaLevelPressure reduces a barometric pressure (mbar) measured height
// meters above the waterline to sea level using the hypsometric relation
// with the concurrent air temperature (degC).
func SeaLevelPressure(pressure, temperature, height float64) float64 {
	kelvin := temperature + 273.15
	return pressure / math.Exp(-height/(kelvin*29.263))
}

// WindSpeed is the scalar magnitude of the component wind vector (m s-1).
func WindSpeed(eastward, northward float64) float64 {
	return math.Sqrt(eastward*eastward + northward*northward)
}

// WindDirection is the meteorological wind direction in degrees, the
// direction the wind blows from, normalized to [0, 360).
func WindDirection(eastward, northward float64) float64 {
	deg := 180 / math.Pi * math.Atan2(-eastward, -northward)
	if deg < 0 {
		deg += 360
	}
	return deg
}

// Salinity is the PSS-78 practical salinity from sea surface conductivity
// (S m-1) and temperature (degC) at a nominal near-surface pressure of
// 1 dbar. The instrument reports S m-1; the polynomial wants mS cm-1, ten
// times larger.
func Salinity(conductivity, temperature float64) float64 {
	return spFromC(conductivity*10, temperature, 1)
}

// DeriveMetbkBin fills the derived variables of a bin from its channel
// means. height is the station's barometer elevation above the waterline in
// meters. NaN means propagate into the derived values.
func DeriveMetbkBin(bin MetbkBin, height float64) MetbkBin {
	bin.SeaLevelPressure = SeaLevelPressure(bin.BarometricPressure, bin.AirTemperature, height)
	bin.WindSpeed = WindSpeed(bin.EastwardWind, bin.NorthwardWind)
	bin.WindDirection = WindDirection(bin.EastwardWind, bin.NorthwardWind)
	bin.Salinity = Salinity(bin.SeaSurfaceConductivity, bin.SeaSurfaceTemperature)
	return bin
}

// DeriveMetbkBins applies [DeriveMetbkBin] to every bin.
func DeriveMetbkBins(bins []MetbkBin, height float64) []MetbkBin {
	out := make([]MetbkBin, len(bins))
	for i, b := range bins {
		out[i] = DeriveMetbkBin(b, height)
	}
	return out
}
