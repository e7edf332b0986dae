package geom

import (
	"math"

	"whitted-renderer/internal/mathutil"
)

// planeEpsilon is the minimum d·n for a ray to count as crossing a plane.
const planeEpsilon = 1e-6

// Plane is an infinite plane through point with a unit normal. Width and
// height are recorded for planes built from corners but do not bound hits.
type Plane struct {
	point    mathutil.Vec3
	normal   mathutil.Vec3
	color    Color
	width    float64
	height   float64
	lambert  float64
	specular float64
}

// NewPlane creates an unbounded plane. The normal is normalized here.
func NewPlane(color Color, normal, point mathutil.Vec3, lambert, specular float64) *Plane {
	return &Plane{
		point:    point,
		normal:   normal.Normalize(),
		color:    color,
		width:    math.Inf(1),
		height:   math.Inf(1),
		lambert:  lambert,
		specular: specular,
	}
}

// PlaneFromPoints creates a plane through three corners of a rectangle.
// The normal follows cross(bottomRight-bottomLeft, topRight-bottomRight).
func PlaneFromPoints(color Color, topRight, bottomRight, bottomLeft mathutil.Vec3, lambert, specular float64) *Plane {
	heightVec := topRight.Sub(bottomRight)
	widthVec := bottomRight.Sub(bottomLeft)
	return &Plane{
		point:    topRight,
		normal:   widthVec.Cross(heightVec).Normalize(),
		color:    color,
		width:    widthVec.Len(),
		height:   heightVec.Len(),
		lambert:  lambert,
		specular: specular,
	}
}

// Intersect only accepts rays travelling along the normal (d·n > epsilon).
// Camera-facing planes therefore store a normal pointing away from the camera.
func (p *Plane) Intersect(r Ray) (float64, mathutil.Vec3) {
	distance := math.Inf(1)
	denom := r.Direction.Dot(p.normal)
	if denom > planeEpsilon {
		t := p.point.Sub(r.Origin).Dot(p.normal) / denom
		if t > 0 {
			distance = t
		}
	}
	return distance, r.At(distance)
}

func (p *Plane) Position() mathutil.Vec3 { return p.point }
func (p *Plane) Normal() mathutil.Vec3   { return p.normal }
func (p *Plane) Color() Color            { return p.color }
func (p *Plane) Lambert() float64        { return p.lambert }
func (p *Plane) Specular() float64       { return p.specular }

// Size returns the recorded width and height (+Inf for NewPlane).
func (p *Plane) Size() (width, height float64) { return p.width, p.height }

// NormalTo returns the normal on the side the ray arrives from.
func (p *Plane) NormalTo(hit Ray) mathutil.Vec3 {
	if hit.Direction.Dot(p.normal) < 0 {
		return p.normal
	}
	return p.normal.Neg()
}

func (p *Plane) ReflectRay(r Ray, point mathutil.Vec3) Ray {
	return NewRay(point, reflect(r.Direction, p.NormalTo(r)))
}
