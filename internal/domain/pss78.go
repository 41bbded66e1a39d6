package domain

import "math"

// UNESCO 1983 (PSS-78) polynomial coefficients with the Hill et al. (1986)
// extension below SP = 2. Names follow the published algorithm so each term
// can be checked against it.
const (
	a0 = 0.0080
	a1 = -0.1692
	a2 = 25.3851
	a3 = 14.0941
	a4 = -7.0261
	a5 = 2.7081

	b0 = 0.0005
	b1 = -0.0056
	b2 = -0.0066
	b3 = -0.0375
	b4 = 0.0636
	b5 = -0.0144

	c0 = 0.6766097
	c1 = 2.00564e-2
	c2 = 1.104259e-4
	c3 = -6.9698e-7
	c4 = 1.0031e-9

	d1 = 3.426e-2
	d2 = 4.464e-4
	d3 = 4.215e-1
	d4 = -3.107e-3

	e1 = 2.070e-5
	e2 = -6.370e-10
	e3 = 3.989e-15

	k = 0.0162

	// c3515 is the conductivity of standard seawater (SP 35, 15 degC) at
	// one standard atmosphere, mS cm-1.
	c3515 = 42.9140
)

// spFromC computes practical salinity from conductivity (mS cm-1), in-situ
// temperature (degC) and sea pressure (dbar). NaN inputs propagate; inputs
// outside the algorithm's validity range also come back NaN.
func spFromC(conductivity, temperature, pressure float64) float64 {
	t68 := temperature * 1.00024
	ft68 := (t68 - 15) / (1 + k*(t68-15))

	r := conductivity / c3515
	rtLowerCase := c0 + (c1+(c2+(c3+c4*t68)*t68)*t68)*t68
	rp := 1 + (pressure*(e1+e2*pressure+e3*pressure*pressure))/
		(1 + d1*t68 + d2*t68*t68 + (d3+d4*t68)*r)
	rt := r / (rp * rtLowerCase)
	if rt < 0 {
		return math.NaN()
	}

	rtx := math.Sqrt(rt)
	sp := a0 + (a1+(a2+(a3+(a4+a5*rtx)*rtx)*rtx)*rtx)*rtx +
		ft68*(b0+(b1+(b2+(b3+(b4+b5*rtx)*rtx)*rtx)*rtx)*rtx)

	// The PSS-78 polynomial misbehaves below SP = 2; splice in the Hill
	// et al. low-salinity form scaled to meet it at SP = 2.
	if sp < 2 {
		x := 400 * rt
		sqrty := 10 * rtx
		part1 := 1 + x*(1.5+x)
		part2 := 1 + sqrty*(1+sqrty*(1+sqrty))
		spHillRaw := sp - a0/part1 - b0*ft68/part2
		sp = hillRatioAtSP2(temperature) * spHillRaw
	}

	if sp < 0 {
		return math.NaN()
	}
	return sp
}

// hillRatioAtSP2 evaluates the ratio of SP = 2 to the raw Hill et al. value
// at the same point, the factor that makes the low-salinity form continuous
// with PSS-78.
func hillRatioAtSP2(temperature float64) float64 {
	const (
		g0 = 2.641463563366498e-1
		g1 = 2.007883247811176e-4
		g2 = -4.107694432853053e-6
		g3 = 8.401674624888151e-8
		g4 = -1.711396083069994e-9
		g5 = 3.374193893377380e-11
		g6 = -5.923731174730784e-13
		g7 = 8.057771569962299e-15
		g8 = -7.054313817447962e-17
		g9 = 2.859992717347235e-19
	)
	const sp2 = 2.0

	t68 := temperature * 1.00024
	ft68 := (t68 - 15) / (1 + k*(t68-15))

	// rtx at SP = 2 from the inverse polynomial in t68, refined with one
	// modified Newton-Raphson step.
	rtx0 := g0 + (g1+(g2+(g3+(g4+(g5+(g6+(g7+(g8+g9*t68)*t68)*t68)*t68)*t68)*t68)*t68)*t68)*t68
	dspDrtx := a1 + (2*a2+(3*a3+(4*a4+5*a5*rtx0)*rtx0)*rtx0)*rtx0 +
		ft68*(b1+(2*b2+(3*b3+(4*b4+5*b5*rtx0)*rtx0)*rtx0)*rtx0)

	spEst := a0 + (a1+(a2+(a3+(a4+a5*rtx0)*rtx0)*rtx0)*rtx0)*rtx0 +
		ft68*(b0+(b1+(b2+(b3+(b4+b5*rtx0)*rtx0)*rtx0)*rtx0)*rtx0)
	rtx := rtx0 - (spEst-sp2)/dspDrtx
	rtxm := 0.5 * (rtx + rtx0)
	dspDrtx = a1 + (2*a2+(3*a3+(4*a4+5*a5*rtxm)*rtxm)*rtxm)*rtxm +
		ft68*(b1+(2*b2+(3*b3+(4*b4+5*b5*rtxm)*rtxm)*rtxm)*rtxm)
	rtx = rtx0 - (spEst-sp2)/dspDrtx

	x := 400 * rtx * rtx
	sqrty := 10 * rtx
	part1 := 1 + x*(1.5+x)
	part2 := 1 + sqrty*(1+sqrty*(1+sqrty))
	spHillRawAtSP2 := sp2 - a0/part1 - b0*ft68/part2

	return 2 / spHillRawAtSP2
}
