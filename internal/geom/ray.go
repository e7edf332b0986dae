package geom

import "whitted-renderer/internal/mathutil"

// Ray is a half-line with a unit-length direction.
type Ray struct {
	Origin    mathutil.Vec3
	Direction mathutil.Vec3
}

// NewRay builds a ray, normalizing direction.
func NewRay(origin, direction mathutil.Vec3) Ray {
	return Ray{Origin: origin, Direction: direction.Normalize()}
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float64) mathutil.Vec3 {
	return r.Origin.Add(r.Direction.Scale(t))
}

// Color is an 8-bit RGB triple.
type Color [3]uint8

// Object is a renderable primitive. Implementations are immutable and safe to
// share between renders.
type Object interface {
	// Intersect returns the distance to the nearest hit along r and the hit
	// point. A miss is reported as +Inf.
	Intersect(r Ray) (float64, mathutil.Vec3)
	Position() mathutil.Vec3
	Color() Color
	// NormalTo returns the unit surface normal for a ray whose origin lies on
	// the surface.
	NormalTo(hit Ray) mathutil.Vec3
	Lambert() float64
	Specular() float64
	// ReflectRay mirrors r about the surface normal at point.
	ReflectRay(r Ray, point mathutil.Vec3) Ray
}

// reflect returns d mirrored about the unit normal n: d - 2(d·n)n.
func reflect(d, n mathutil.Vec3) mathutil.Vec3 {
	return d.Sub(n.Scale(2 * d.Dot(n)))
}
