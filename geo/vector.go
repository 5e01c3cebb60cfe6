package geo

// vector.go provides 2 element vector math needed for the layout engine.

import "math"

// V2 is a 2 element vector. This can also be used as a point.
type V2 struct {
	X float64
	Y float64
}

// NewV2 creates a new, all zero, 2D vector.
func NewV2() *V2 { return &V2{} }

// NewV2S creates a new 2D vector using the given scalars.
func NewV2S(x, y float64) *V2 { return &V2{x, y} }

// Eq (==) returns true if each element in the vector v has the same value
// as the corresponding element in vector a.
func (v *V2) Eq(a *V2) bool { return v.X == a.X && v.Y == a.Y }

// Aeq (~=) almost-equals returns true if all the elements in vector v have
// essentially the same value as the corresponding elements in vector a.
func (v *V2) Aeq(a *V2) bool { return Aeq(v.X, a.X) && Aeq(v.Y, a.Y) }

// AeqZ (~=) almost-equals-zero returns true if the square length of the
// vector is close enough to zero that it makes no difference.
func (v *V2) AeqZ() bool { return v.Dot(v) < Epsilon }

// GetS returns the float64 values of the vector.
func (v *V2) GetS() (x, y float64) { return v.X, v.Y }

// SetS (=) sets the vector elements to the given values. The updated
// vector v is returned.
func (v *V2) SetS(x, y float64) *V2 {
	v.X, v.Y = x, y
	return v
}

// Set (=, copy, clone) sets the elements of vector v to have the same
// values as the elements of vector a. The updated vector v is returned.
func (v *V2) Set(a *V2) *V2 {
	v.X, v.Y = a.X, a.Y
	return v
}

// Neg (-) sets vector v to be the negative values of vector a.
// Vector v may be used as the input parameter.
func (v *V2) Neg(a *V2) *V2 {
	v.X, v.Y = -a.X, -a.Y
	return v
}

// Add (+) adds vectors a and b storing the results of the addition in v.
// Vector v may be used as one or both of the parameters; (v += b) is
// v.Add(v, b).
func (v *V2) Add(a, b *V2) *V2 {
	v.X, v.Y = a.X+b.X, a.Y+b.Y
	return v
}

// Sub (-) subtracts vector b from a storing the results in v.
// Vector v may be used as one or both of the parameters; (v -= b) is
// v.Sub(v, b).
func (v *V2) Sub(a, b *V2) *V2 {
	v.X, v.Y = a.X-b.X, a.Y-b.Y
	return v
}

// Scale (*=) updates the elements in vector v by multiplying the
// corresponding elements in vector a by the given scalar value.
func (v *V2) Scale(a *V2, s float64) *V2 {
	v.X, v.Y = a.X*s, a.Y*s
	return v
}

// Div (/= inverse-scale) divides each element in v by the given scalar
// value. Vector v is not changed if scalar s is zero.
func (v *V2) Div(s float64) *V2 {
	if s != 0 {
		inv := 1 / s
		v.X, v.Y = v.X*inv, v.Y*inv
	}
	return v
}

// Dot returns the dot product of vector v with input vector a.
// Both vectors v and a are unchanged.
func (v *V2) Dot(a *V2) float64 { return v.X*a.X + v.Y*a.Y }

// Len returns the length of vector v. The calling vector v is unchanged.
func (v *V2) Len() float64 { return math.Sqrt(v.Dot(v)) }

// LenSqr returns the length of vector v squared.
func (v *V2) LenSqr() float64 { return v.Dot(v) }

// Dist returns the distance between vector end-points v and a.
func (v *V2) Dist(a *V2) float64 { return math.Sqrt(v.DistSqr(a)) }

// DistSqr returns the distance squared between vector end-points v and a.
func (v *V2) DistSqr(a *V2) float64 {
	dx, dy := a.X-v.X, a.Y-v.Y
	return dx*dx + dy*dy
}

// Unit updates vector v such that its length is 1. Calling vector v is
// unchanged if its length is zero. The updated vector v is returned.
func (v *V2) Unit() *V2 {
	if length := v.Len(); length != 0 {
		return v.Div(length)
	}
	return v
}

// Lerp updates vector v to be a fraction of the distance (linear
// interpolation) between the input vectors a and b.
func (v *V2) Lerp(a, b *V2, ratio float64) *V2 {
	v.X = (b.X-a.X)*ratio + a.X
	v.Y = (b.Y-a.Y)*ratio + a.Y
	return v
}

// Orthog updates v to be the counter-clockwise quarter-turn of a:
// (x,y) -> (-y,x).
func (v *V2) Orthog(a *V2) *V2 {
	x, y := a.X, a.Y
	v.X, v.Y = -y, x
	return v
}

// Heading returns the bearing of v as an angle in [-PI, PI).
func (v *V2) Heading() float64 { return Wrap(math.Atan2(v.Y, v.X)) }

// FromHeading sets v to a unit vector pointing along the given bearing.
func (v *V2) FromHeading(theta float64) *V2 {
	v.X, v.Y = math.Cos(theta), math.Sin(theta)
	return v
}

// Uv sets v to the unit vector pointing from b toward a. If a and b are
// coincident, v is set to the zero-direction default (1, 0) rather than
// left at zero length, since uv feeds directly into spring force
// directions.
func (v *V2) Uv(a, b *V2) *V2 {
	v.Sub(a, b)
	if v.AeqZ() {
		v.SetS(1, 0)
		return v
	}
	return v.Unit()
}
