package geom

import (
	"math"

	"whitted-renderer/internal/mathutil"
)

// Sphere is a solid sphere. Ray origins are assumed to lie outside it.
type Sphere struct {
	position mathutil.Vec3
	color    Color
	radius   float64
	sqRadius float64
	lambert  float64
	specular float64
}

// NewSphere creates a sphere and caches its squared radius.
func NewSphere(position mathutil.Vec3, color Color, radius, lambert, specular float64) *Sphere {
	return &Sphere{
		position: position,
		color:    color,
		radius:   radius,
		sqRadius: radius * radius,
		lambert:  lambert,
		specular: specular,
	}
}

// Intersect uses the closest-approach construction: project the center onto
// the ray, then step back by half the chord.
func (s *Sphere) Intersect(r Ray) (float64, mathutil.Vec3) {
	distance := math.Inf(1)
	toCenter := s.position.Sub(r.Origin)
	tca := toCenter.Dot(r.Direction)
	if tca > 0 {
		d2 := toCenter.LenSq() - tca*tca
		if d2 < s.sqRadius {
			distance = tca - math.Sqrt(s.sqRadius-d2)
		}
	}
	return distance, r.At(distance)
}

func (s *Sphere) Position() mathutil.Vec3 { return s.position }
func (s *Sphere) Color() Color            { return s.color }
func (s *Sphere) Radius() float64         { return s.radius }
func (s *Sphere) Lambert() float64        { return s.lambert }
func (s *Sphere) Specular() float64       { return s.specular }

// NormalTo treats hit.Origin as the surface point.
func (s *Sphere) NormalTo(hit Ray) mathutil.Vec3 {
	return hit.Origin.Sub(s.position).Normalize()
}

func (s *Sphere) ReflectRay(r Ray, point mathutil.Vec3) Ray {
	n := s.NormalTo(Ray{Origin: point, Direction: r.Direction})
	return NewRay(point, reflect(r.Direction, n))
}
