package geom

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"whitted-renderer/internal/mathutil"
)

var green = Color{0, 255, 0}

func TestPlaneIntersect(t *testing.T) {
	// Floor at y=-1 whose normal points down, away from the camera.
	p := NewPlane(green, mathutil.Vec3{0, -2, 0}, mathutil.Vec3{0, -1, 0}, 0.6, 0)

	tests := []struct {
		name string
		dir  mathutil.Vec3
		want float64
	}{
		{"straight down", mathutil.Vec3{0, -1, 0}, 1},
		{"45 degrees", mathutil.Vec3{0, -1, 1}, math.Sqrt2},
		{"parallel", mathutil.Vec3{1, 0, 0}, math.Inf(1)},
		{"away", mathutil.Vec3{0, 1, 0}, math.Inf(1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dist, _ := p.Intersect(NewRay(mathutil.Vec3{}, tt.dir))
			if math.IsInf(tt.want, 1) {
				assert.True(t, math.IsInf(dist, 1), "expected miss, got %v", dist)
				return
			}
			assert.InDelta(t, tt.want, dist, 1e-12)
		})
	}
}

func TestPlaneRejectsRayAgainstNormal(t *testing.T) {
	// Same floor, normal pointing up toward the camera: d·n < 0 is refused.
	p := NewPlane(green, mathutil.Vec3{0, 1, 0}, mathutil.Vec3{0, -1, 0}, 0.6, 0)
	dist, _ := p.Intersect(NewRay(mathutil.Vec3{}, mathutil.Vec3{0, -1, 0}))
	assert.True(t, math.IsInf(dist, 1))
}

func TestPlaneBehindOrigin(t *testing.T) {
	p := NewPlane(green, mathutil.Vec3{0, 1, 0}, mathutil.Vec3{0, -1, 0}, 0.6, 0)
	dist, _ := p.Intersect(NewRay(mathutil.Vec3{}, mathutil.Vec3{0, 1, 0}))
	assert.True(t, math.IsInf(dist, 1))
}

func TestPlaneNormalFacesRay(t *testing.T) {
	p := NewPlane(green, mathutil.Vec3{0, 3, 0}, mathutil.Vec3{}, 1, 0)
	assert.Equal(t, mathutil.Vec3{0, 1, 0}, p.Normal())

	down := NewRay(mathutil.Vec3{0, 1, 0}, mathutil.Vec3{0, -1, 0})
	up := NewRay(mathutil.Vec3{0, -1, 0}, mathutil.Vec3{0, 1, 0})
	assert.Equal(t, mathutil.Vec3{0, 1, 0}, p.NormalTo(down))
	assert.Equal(t, mathutil.Vec3{0, -1, 0}, p.NormalTo(up))
}

func TestPlaneReflect(t *testing.T) {
	p := NewPlane(green, mathutil.Vec3{0, -1, 0}, mathutil.Vec3{0, -1, 0}, 1, 1)
	in := NewRay(mathutil.Vec3{}, mathutil.Vec3{0, -1, 1})
	dist, point := p.Intersect(in)
	assert.InDelta(t, math.Sqrt2, dist, 1e-12)

	out := p.ReflectRay(in, point)
	want := mathutil.Vec3{0, 1, 1}.Normalize()
	assert.InDelta(t, 0.0, out.Direction.Sub(want).Len(), 1e-12)
	assert.InDelta(t, 1.0, out.Direction.Len(), 1e-12)
}

func TestPlaneFromPoints(t *testing.T) {
	// Rectangle in the z=4 plane, 2 wide and 3 tall.
	p := PlaneFromPoints(green,
		mathutil.Vec3{1, 2, 4},
		mathutil.Vec3{1, -1, 4},
		mathutil.Vec3{-1, -1, 4},
		0.5, 0.25)

	w, h := p.Size()
	assert.InDelta(t, 2.0, w, 1e-12)
	assert.InDelta(t, 3.0, h, 1e-12)
	assert.Equal(t, mathutil.Vec3{1, 2, 4}, p.Position())
	assert.InDelta(t, 1.0, p.Normal()[2], 1e-12)
	assert.Equal(t, 0.5, p.Lambert())
	assert.Equal(t, 0.25, p.Specular())

	// Bounds are not enforced: a ray far outside the rectangle still hits.
	dist, _ := p.Intersect(NewRay(mathutil.Vec3{100, 100, 0}, mathutil.Vec3{0, 0, 1}))
	assert.InDelta(t, 4.0, dist, 1e-12)
}

func TestNewPlaneIsUnbounded(t *testing.T) {
	p := NewPlane(green, mathutil.Vec3{0, 0, 2}, mathutil.Vec3{}, 1, 0)
	w, h := p.Size()
	assert.True(t, math.IsInf(w, 1))
	assert.True(t, math.IsInf(h, 1))
	assert.InDelta(t, 1.0, p.Normal().Len(), 1e-12)
}
