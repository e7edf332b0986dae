package scene

import (
	"whitted-renderer/internal/geom"
	"whitted-renderer/internal/mathutil"
)

// Default returns the demonstration room: two spheres inside a box of six
// planes, with mirrored front and back walls, lit by two lights.
func Default() *Scene {
	s := &Scene{}
	s.AddLight(NewLight(mathutil.Vec3{0, 1, 7}, 20))
	s.AddLight(NewLight(mathutil.Vec3{2, 0.5, 2}, 40))

	s.AddObject(geom.NewSphere(mathutil.Vec3{0, -0.3, 3}, geom.Color{255, 0, 0}, 0.2, 0.9, 0))
	s.AddObject(geom.NewSphere(mathutil.Vec3{1, -0.3, 5}, geom.Color{0, 0, 255}, 0.3, 0.9, 0.3))

	white := geom.Color{255, 255, 255}
	s.AddObject(geom.NewPlane(geom.Color{0, 255, 0}, mathutil.Vec3{0, -1, 0}, mathutil.Vec3{0, -1, 0}, 0.6, 0))
	s.AddObject(geom.NewPlane(geom.Color{0, 0, 255}, mathutil.Vec3{-1, 0, 0}, mathutil.Vec3{-1, 0, 0}, 0.6, 0))
	s.AddObject(geom.NewPlane(white, mathutil.Vec3{0, 0, 1}, mathutil.Vec3{0, 0, 8}, 0.05, 1))
	s.AddObject(geom.NewPlane(white, mathutil.Vec3{0, 0, -1}, mathutil.Vec3{0, 0, -3}, 0.05, 1))
	s.AddObject(geom.NewPlane(geom.Color{100, 0, 100}, mathutil.Vec3{1, 0, 0}, mathutil.Vec3{3, 0, 0}, 0.6, 0))
	s.AddObject(geom.NewPlane(white, mathutil.Vec3{0, 1, 0}, mathutil.Vec3{0, 2, 0}, 0.6, 0))
	return s
}
