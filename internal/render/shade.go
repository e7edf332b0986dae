package render

import (
	"math"
	"sort"

	"whitted-renderer/internal/geom"
	"whitted-renderer/internal/mathutil"
	"whitted-renderer/internal/scene"
)

// Hit is the nearest intersection found along a ray.
type Hit struct {
	Object   geom.Object
	Index    int // position in Scene.Objects
	Distance float64
	Point    mathutil.Vec3
}

// NearestHit scans every object and keeps the strictly closest positive,
// finite hit. Exact ties keep the object added first.
func NearestHit(s *scene.Scene, r geom.Ray) (Hit, bool) {
	best := Hit{Index: -1, Distance: math.Inf(1)}
	for i, obj := range s.Objects {
		dist, point := obj.Intersect(r)
		if dist > 0 && dist < best.Distance {
			best = Hit{Object: obj, Index: i, Distance: dist, Point: point}
		}
	}
	return best, best.Object != nil
}

// AllIntersections returns every positive, finite hit distance along r in
// ascending order. Only shadow tests use it.
func AllIntersections(s *scene.Scene, r geom.Ray) []float64 {
	var dists []float64
	for _, obj := range s.Objects {
		dist, _ := obj.Intersect(r)
		if dist > 0 && !math.IsInf(dist, 1) {
			dists = append(dists, dist)
		}
	}
	sort.Float64s(dists)
	return dists
}

// LambertShade sums the unshadowed diffuse contribution of every light at
// point, with inverse-square falloff, clamped to 1.
func LambertShade(s *scene.Scene, obj geom.Object, point mathutil.Vec3, shadowBias float64) float64 {
	amount := 0.0
	for _, light := range s.Lights {
		toLight := light.Position.Sub(point)
		dir := toLight.Normalize()
		dist := toLight.Len()

		if shadowed(s, geom.NewRay(point.Add(dir.Scale(shadowBias)), dir), dist) {
			continue
		}

		// Normal on the side facing the light.
		n := obj.NormalTo(geom.NewRay(point, dir.Neg()))
		if c := dir.Dot(n); c > 0 {
			amount += c * light.Intensity / (4 * math.Pi * dist * dist)
		}
	}
	return math.Min(amount, 1)
}

// shadowed reports whether anything along r lies closer than maxDist.
func shadowed(s *scene.Scene, r geom.Ray, maxDist float64) bool {
	dists := AllIntersections(s, r)
	return len(dists) > 0 && dists[0] < maxDist
}
