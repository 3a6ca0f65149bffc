// Package cam02 implements the CIECAM02 colour appearance model and the
// CAM02-UCS uniform colour space derived from it. Euclidean distance between
// CAM02-UCS coordinates approximates perceived colour difference, which is
// what the palette selector optimises.
//
// The model is evaluated under fixed sRGB viewing conditions (D65 white,
// average surround, L_A = 64/(5π), Y_b = 20), so every conversion is a pure
// function of the input tristimulus values.
package cam02

import "math"

// ModelVersion identifies the conversion pipeline for cache keying. Bump it
// whenever the maths or the viewing conditions change, so stale candidate
// tables are rebuilt instead of reused.
const ModelVersion = "cam02ucs-d65-avg/1"

// JAB is a point in CAM02-UCS: J* lightness and the a*, b* opponent axes.
type JAB struct {
	J float64
	A float64
	B float64
}

// Chroma returns the colourfulness component M*, the radial distance from
// the neutral axis.
func (c JAB) Chroma() float64 {
	return math.Hypot(c.A, c.B)
}

// Hue returns the hue angle in degrees, in [0, 360).
func (c JAB) Hue() float64 {
	h := math.Atan2(c.B, c.A) * 180 / math.Pi
	if h < 0 {
		h += 360
	}
	return h
}

// Distance returns the Euclidean distance between two CAM02-UCS points.
func Distance(a, b JAB) float64 {
	dj := a.J - b.J
	da := a.A - b.A
	db := a.B - b.B
	return math.Sqrt(dj*dj + da*da + db*db)
}

// CAM02-UCS coefficients (Luo, Cui & Li 2006). KL is 1 and therefore does
// not appear explicitly.
const (
	ucsC1 = 0.007
	ucsC2 = 0.0228
)

// Viewing conditions: D65 whitepoint on the 0..100 scale, average surround.
const (
	whiteX = 95.047
	whiteY = 100.0
	whiteZ = 108.883

	surroundF  = 1.0
	surroundC  = 0.69
	surroundNc = 1.0

	adaptingLuminance   = 64.0 / (5.0 * math.Pi) // cd/m², typical sRGB ambient
	backgroundLuminance = 20.0
)

var (
	mCAT02 = [9]float64{
		0.7328, 0.4296, -0.1624,
		-0.7036, 1.6975, 0.0061,
		0.0030, 0.0136, 0.9834,
	}
	mCAT02Inv = [9]float64{
		1.0961238208355140, -0.2788690002182872, 0.1827451793827730,
		0.4543690419753590, 0.4735331543074117, 0.0720978037172291,
		-0.0096276087384294, -0.0056980312161134, 1.0153256399545427,
	}
	mHPE = [9]float64{
		0.38971, 0.68898, -0.07868,
		-0.22981, 1.18340, 0.04641,
		0.00000, 0.00000, 1.00000,
	}
	mHPEInv = [9]float64{
		1.9101968340520348, -1.1121238927878747, 0.2019079668624824,
		0.3709500882486886, 0.6290542573926132, -0.0000008055142184,
		0.0, 0.0, 1.0,
	}
)

// Constants derived from the viewing conditions, computed once at init.
var (
	fl   float64    // luminance adaptation factor F_L
	nbb  float64    // brightness induction factor N_bb (= N_cb)
	z    float64    // base exponent
	n    float64    // background induction
	dRGB [3]float64 // per-channel chromatic adaptation scale
	aW   float64    // achromatic response of the white
)

func init() {
	la := adaptingLuminance
	k := 1 / (5*la + 1)
	k4 := k * k * k * k
	fl = 0.2*k4*(5*la) + 0.1*(1-k4)*(1-k4)*math.Cbrt(5*la)

	n = backgroundLuminance / whiteY
	z = 1.48 + math.Sqrt(n)
	nbb = 0.725 * math.Pow(1/n, 0.2)

	d := surroundF * (1 - (1.0/3.6)*math.Exp((-la-42)/92))
	d = math.Min(1, math.Max(0, d))

	rgbW := mulVec(mCAT02, [3]float64{whiteX, whiteY, whiteZ})
	for i := range dRGB {
		dRGB[i] = d*whiteY/rgbW[i] + 1 - d
	}

	rgbWC := [3]float64{dRGB[0] * rgbW[0], dRGB[1] * rgbW[1], dRGB[2] * rgbW[2]}
	rgbWP := mulVec(mHPE, mulVec(mCAT02Inv, rgbWC))
	rgbWA := [3]float64{adapt(rgbWP[0]), adapt(rgbWP[1]), adapt(rgbWP[2])}
	aW = (2*rgbWA[0] + rgbWA[1] + rgbWA[2]/20 - 0.305) * nbb
}

func mulVec(m [9]float64, v [3]float64) [3]float64 {
	return [3]float64{
		m[0]*v[0] + m[1]*v[1] + m[2]*v[2],
		m[3]*v[0] + m[4]*v[1] + m[5]*v[2],
		m[6]*v[0] + m[7]*v[1] + m[8]*v[2],
	}
}

// adapt applies the post-adaptation nonlinear response compression.
func adapt(v float64) float64 {
	x := math.Pow(fl*math.Abs(v)/100, 0.42)
	r := 400 * x / (x + 27.13)
	if v < 0 {
		r = -r
	}
	return r + 0.1
}

// unadapt inverts adapt.
func unadapt(v float64) float64 {
	x := v - 0.1
	ax := math.Abs(x)
	denom := 400 - ax
	if denom < 1e-9 {
		denom = 1e-9
	}
	r := 100 / fl * math.Pow(27.13*ax/denom, 1/0.42)
	if x < 0 {
		r = -r
	}
	return r
}

// Forward converts CIE XYZ tristimulus values (0..100 scale, D65) to
// CAM02-UCS coordinates.
func Forward(x, y, zc float64) JAB {
	rgb := mulVec(mCAT02, [3]float64{x, y, zc})
	rgbC := [3]float64{dRGB[0] * rgb[0], dRGB[1] * rgb[1], dRGB[2] * rgb[2]}
	rgbP := mulVec(mHPE, mulVec(mCAT02Inv, rgbC))
	ra := adapt(rgbP[0])
	ga := adapt(rgbP[1])
	ba := adapt(rgbP[2])

	ca := ra - 12*ga/11 + ba/11
	cb := (ra + ga - 2*ba) / 9
	h := math.Atan2(cb, ca)

	achromatic := (2*ra + ga + ba/20 - 0.305) * nbb
	if achromatic < 0 {
		achromatic = 0
	}
	bigJ := 100 * math.Pow(achromatic/aW, surroundC*z)

	hDeg := h * 180 / math.Pi
	if hDeg < 0 {
		hDeg += 360
	}
	et := (math.Cos(hDeg*math.Pi/180+2) + 3.8) / 4
	t := (50000.0 / 13 * surroundNc * nbb * et * math.Hypot(ca, cb)) /
		(ra + ga + 21.0/20*ba)
	chroma := math.Pow(t, 0.9) * math.Sqrt(bigJ/100) * math.Pow(1.64-math.Pow(0.29, n), 0.73)
	m := chroma * math.Pow(fl, 0.25)

	jStar := (1 + 100*ucsC1) * bigJ / (1 + ucsC1*bigJ)
	mStar := math.Log(1+ucsC2*m) / ucsC2
	return JAB{
		J: jStar,
		A: mStar * math.Cos(h),
		B: mStar * math.Sin(h),
	}
}

// Inverse converts CAM02-UCS coordinates back to CIE XYZ (0..100 scale).
// Coordinates that do not correspond to a physically realisable colour still
// produce finite XYZ values; the sRGB result downstream is simply out of
// gamut.
func Inverse(c JAB) (x, y, zc float64) {
	if c.J <= 0 {
		return 0, 0, 0
	}
	mStar := math.Hypot(c.A, c.B)
	h := math.Atan2(c.B, c.A)

	bigJ := c.J / (1 + 100*ucsC1 - ucsC1*c.J)
	m := (math.Exp(ucsC2*mStar) - 1) / ucsC2
	chroma := m / math.Pow(fl, 0.25)

	t := math.Pow(chroma/(math.Sqrt(bigJ/100)*math.Pow(1.64-math.Pow(0.29, n), 0.73)), 1/0.9)
	hDeg := h * 180 / math.Pi
	if hDeg < 0 {
		hDeg += 360
	}
	et := (math.Cos(hDeg*math.Pi/180+2) + 3.8) / 4

	achromatic := aW * math.Pow(bigJ/100, 1/(surroundC*z))
	p2 := achromatic/nbb + 0.305

	var ca, cb float64
	if t > 0 {
		p1 := (50000.0 / 13 * surroundNc * nbb) * et / t
		const p3 = 21.0 / 20
		sinH := math.Sin(h)
		cosH := math.Cos(h)
		if math.Abs(sinH) >= math.Abs(cosH) {
			p4 := p1 / sinH
			cb = p2 * (2 + p3) * (460.0 / 1403) /
				(p4 + (2+p3)*(220.0/1403)*(cosH/sinH) - 27.0/1403 + p3*(6300.0/1403))
			ca = cb * cosH / sinH
		} else {
			p5 := p1 / cosH
			ca = p2 * (2 + p3) * (460.0 / 1403) /
				(p5 + (2+p3)*(220.0/1403) - (27.0/1403-p3*(6300.0/1403))*(sinH/cosH))
			cb = ca * sinH / cosH
		}
	}

	ra := (460*p2 + 451*ca + 288*cb) / 1403
	ga := (460*p2 - 891*ca - 261*cb) / 1403
	ba := (460*p2 - 220*ca - 6300*cb) / 1403

	rgbP := [3]float64{unadapt(ra), unadapt(ga), unadapt(ba)}
	rgbC := mulVec(mCAT02, mulVec(mHPEInv, rgbP))
	rgb := [3]float64{rgbC[0] / dRGB[0], rgbC[1] / dRGB[1], rgbC[2] / dRGB[2]}
	out := mulVec(mCAT02Inv, rgb)
	return out[0], out[1], out[2]
}
