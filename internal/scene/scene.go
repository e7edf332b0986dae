package scene

import (
	"whitted-renderer/internal/geom"
	"whitted-renderer/internal/mathutil"
)

// Light is a point light with inverse-square falloff.
type Light struct {
	Position  mathutil.Vec3
	Intensity float64
}

// NewLight creates a point light.
func NewLight(position mathutil.Vec3, intensity float64) Light {
	return Light{Position: position, Intensity: intensity}
}

// Scene is the set of objects and lights to render. It is built once and
// only read while rendering. Object order matters only for exact distance ties.
type Scene struct {
	Objects []geom.Object
	Lights  []Light
}

// AddObject appends an object without validation.
func (s *Scene) AddObject(o geom.Object) {
	s.Objects = append(s.Objects, o)
}

// AddLight appends a light without validation.
func (s *Scene) AddLight(l Light) {
	s.Lights = append(s.Lights, l)
}
