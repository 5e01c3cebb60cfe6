package geo

// intersect.go answers "where does the segment from a toward b first cross
// a given circle, and what happens when a mass bounces off it there".
// It is the 2-D sibling of a ray-sphere cast: instead of probing for a
// click target, it is used to shorten a mass's motion for one tick and
// compute the mirror-reflected heading for both colliding masses.

import (
	"errors"
	"fmt"
	"math"
)

// ErrNoIntersection is returned (wrapped in a *GeometryError) when the line
// through a segment does not cross the given circle at all. That should
// only happen if the caller already failed to detect the collision that
// justified calling FirstCircleIntersect in the first place.
var ErrNoIntersection = errors.New("geo: no circle intersection")

// GeometryError reports a failure in a geometry primitive, identifying
// which operation failed.
type GeometryError struct {
	Op  string
	Err error
}

func (e *GeometryError) Error() string { return fmt.Sprintf("geo: %s: %v", e.Op, e.Err) }
func (e *GeometryError) Unwrap() error { return e.Err }

// FirstCircleIntersect finds where the line through a and b crosses the
// circle (center, radius), returning whichever of the (up to two)
// intersection points of the *infinite* line is nearer to a.
//
// The line is solved as x = m*y + c when the segment is closer to
// vertical (|dx| < |dy|), and as y = m*x + c otherwise; this keeps the
// slope m finite and avoids the numerical blow-up a single y=mx+c form
// suffers on near-vertical segments.
func FirstCircleIntersect(a, b, center *V2, radius float64) (*V2, error) {
	dx, dy := b.X-a.X, b.Y-a.Y

	var p1, p2 V2
	if math.Abs(dx) < math.Abs(dy) {
		// x = m*y + c
		m := dx / dy
		c := a.X - m*a.Y
		d := c - center.X
		qa := 1 + m*m
		qb := 2 * (m*d - center.Y)
		qc := center.Y*center.Y + d*d - radius*radius
		disc := qb*qb - 4*qa*qc
		if disc < 0 {
			return nil, &GeometryError{Op: "FirstCircleIntersect", Err: ErrNoIntersection}
		}
		root := math.Sqrt(disc)
		y1, y2 := (-qb+root)/(2*qa), (-qb-root)/(2*qa)
		p1 = V2{X: m*y1 + c, Y: y1}
		p2 = V2{X: m*y2 + c, Y: y2}
	} else {
		// y = m*x + c
		m := dy / dx
		c := a.Y - m*a.X
		d := c - center.Y
		qa := 1 + m*m
		qb := 2 * (m*d - center.X)
		qc := center.X*center.X + d*d - radius*radius
		disc := qb*qb - 4*qa*qc
		if disc < 0 {
			return nil, &GeometryError{Op: "FirstCircleIntersect", Err: ErrNoIntersection}
		}
		root := math.Sqrt(disc)
		x1, x2 := (-qb+root)/(2*qa), (-qb-root)/(2*qa)
		p1 = V2{X: x1, Y: m*x1 + c}
		p2 = V2{X: x2, Y: m*x2 + c}
	}

	if a.DistSqr(&p1) <= a.DistSqr(&p2) {
		return &p1, nil
	}
	return &p2, nil
}

// ReflectedDirection returns the bearing of the ray from reflectPt that
// mirrors the incoming ray (start -> reflectPt) about the surface normal
// running from origin through reflectPt.
func ReflectedDirection(start, reflectPt, origin *V2) float64 {
	n := NewV2().Uv(reflectPt, origin)
	d := NewV2().Uv(reflectPt, start)
	// d - 2*(d.n)*n, the standard mirror-reflection formula.
	proj := 2 * d.Dot(n)
	r := NewV2().Sub(d, NewV2().Scale(n, proj))
	return r.Heading()
}

// ReflectedPosition consumes whatever length of step was left unused when
// motion was cut short at reflectPt, continuing that remaining length
// along reflectDir.
func ReflectedPosition(start, step, reflectPt *V2, reflectDir float64) *V2 {
	remaining := step.Len() - reflectPt.Dist(start)
	dir := NewV2().FromHeading(reflectDir)
	return NewV2().Add(reflectPt, dir.Scale(dir, remaining))
}
