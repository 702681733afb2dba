package vmath

// CubicBez is a cubic Bezier curve from P0 to P3 shaped by control points P1 and P2
type CubicBez struct {
	P0, P1, P2, P3 Vec3F
}

// Eval returns the point at parameter t using the Bernstein blend
//
//	(1-t)³·P0 + 3(1-t)²t·P1 + 3(1-t)t²·P2 + t³·P3
//
// At t = 0 and t = 1 every weight but one is exactly zero, so the endpoints are reproduced bit-for-bit.
func (c CubicBez) Eval(t float64) Vec3F {
	u := 1 - t
	tt := t * t
	uu := u * u
	w0 := uu * u
	w1 := 3 * uu * t
	w2 := 3 * u * tt
	w3 := tt * t

	return Vec3F{
		X: w0*c.P0.X + w1*c.P1.X + w2*c.P2.X + w3*c.P3.X,
		Y: w0*c.P0.Y + w1*c.P1.Y + w2*c.P2.Y + w3*c.P3.Y,
		Z: w0*c.P0.Z + w1*c.P1.Z + w2*c.P2.Z + w3*c.P3.Z,
	}
}
