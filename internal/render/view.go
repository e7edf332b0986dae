package render

import (
	"errors"
	"fmt"
	"math"

	"whitted-renderer/internal/geom"
	"whitted-renderer/internal/mathutil"
	"whitted-renderer/internal/scene"
)

// ErrInvalidView is returned by NewView for unusable camera settings.
var ErrInvalidView = errors.New("invalid view")

// worldUp is the reference axis for the camera basis.
var worldUp = mathutil.Vec3{0, 1, 0}

// ViewConfig holds the camera and render settings as a caller supplies them.
type ViewConfig struct {
	Width      int
	Height     int
	Position   mathutil.Vec3
	FOV        float64 // degrees
	Direction  mathutil.Vec3
	MaxDepth   int
	Background geom.Color
	ShadowBias float64

	// FillBackground writes Background into pixels whose primary ray hits
	// nothing. Off by default: such pixels stay black.
	FillBackground bool
}

// DefaultViewConfig returns the camera used with scene.Default.
func DefaultViewConfig() ViewConfig {
	return ViewConfig{
		Width:      1920,
		Height:     1080,
		Position:   mathutil.Vec3{0, 0, 0},
		FOV:        90,
		Direction:  mathutil.Vec3{0, 0, 1},
		MaxDepth:   12,
		Background: geom.Color{50, 100, 200},
		ShadowBias: 1e-3,
	}
}

// View is a validated camera, immutable for the duration of a render.
type View struct {
	width          int
	height         int
	position       mathutil.Vec3
	fovRad         float64
	direction      mathutil.Vec3
	maxDepth       int
	background     geom.Color
	shadowBias     float64
	fillBackground bool
}

// NewView validates cfg, converts the field of view to radians and
// normalizes the viewing direction.
func NewView(cfg ViewConfig) (*View, error) {
	switch {
	case cfg.Width <= 0 || cfg.Height <= 0:
		return nil, fmt.Errorf("render: %w: size %dx%d", ErrInvalidView, cfg.Width, cfg.Height)
	case cfg.FOV <= 0 || cfg.FOV >= 180:
		return nil, fmt.Errorf("render: %w: fov %g outside (0, 180)", ErrInvalidView, cfg.FOV)
	case cfg.Direction.IsZero():
		return nil, fmt.Errorf("render: %w: zero view direction", ErrInvalidView)
	case worldUp.Cross(cfg.Direction.Normalize()).IsZero():
		return nil, fmt.Errorf("render: %w: view direction %v is parallel to world up", ErrInvalidView, cfg.Direction)
	case cfg.MaxDepth < 0:
		return nil, fmt.Errorf("render: %w: max depth %d", ErrInvalidView, cfg.MaxDepth)
	case cfg.ShadowBias < 0:
		return nil, fmt.Errorf("render: %w: shadow bias %g", ErrInvalidView, cfg.ShadowBias)
	}
	return &View{
		width:          cfg.Width,
		height:         cfg.Height,
		position:       cfg.Position,
		fovRad:         mathutil.Deg2Rad(cfg.FOV),
		direction:      cfg.Direction.Normalize(),
		maxDepth:       cfg.MaxDepth,
		background:     cfg.Background,
		shadowBias:     cfg.ShadowBias,
		fillBackground: cfg.FillBackground,
	}, nil
}

// Size returns the image dimensions in pixels.
func (v *View) Size() (width, height int) { return v.width, v.height }

// ProgressFunc is called after each finished column.
type ProgressFunc func(done, total int)

// Render traces every pixel of s and returns the image.
func (v *View) Render(s *scene.Scene) *FrameBuffer {
	return v.RenderProgress(s, nil)
}

// RenderProgress is Render with a per-column progress callback (may be nil).
func (v *View) RenderProgress(s *scene.Scene, progress ProgressFunc) *FrameBuffer {
	fb := NewFrameBuffer(v.width, v.height)
	cam := v.basis()

	for x := 0; x < v.width; x++ {
		for y := 0; y < v.height; y++ {
			fb.Set(x, y, v.tracePixel(s, cam.primaryRay(v, x, y)))
		}
		if progress != nil {
			progress(x+1, v.width)
		}
	}
	return fb
}

// camera is the per-render orthonormal basis and pixel step.
type camera struct {
	right, up   mathutil.Vec3
	halfWidth   float64
	halfHeight  float64
	pixelWidth  float64
	pixelHeight float64
}

func (v *View) basis() camera {
	w, h := float64(v.width), float64(v.height)
	right := worldUp.Cross(v.direction).Normalize()
	up := right.Cross(v.direction).Normalize()
	halfWidth := math.Tan(v.fovRad / 2)
	halfHeight := halfWidth * (h / w)
	return camera{
		right:       right,
		up:          up,
		halfWidth:   halfWidth,
		halfHeight:  halfHeight,
		pixelWidth:  halfWidth * 2 / w,
		pixelHeight: halfHeight * 2 / h,
	}
}

func (c camera) primaryRay(v *View, x, y int) geom.Ray {
	dx := c.right.Scale(c.pixelWidth*float64(x) - c.halfWidth)
	dy := c.up.Scale(c.pixelHeight*float64(y) - c.halfHeight)
	return geom.NewRay(v.position, v.direction.Add(dx.Add(dy)))
}

// tracePixel follows one primary ray through up to maxDepth bounces.
func (v *View) tracePixel(s *scene.Scene, ray geom.Ray) geom.Color {
	var acc [3]float64
	weight := 1.0
	for depth := 0; depth < v.maxDepth && weight > 0; depth++ {
		if !v.colorTrace(s, &weight, &ray, &acc) {
			if depth == 0 && v.fillBackground {
				return v.background
			}
			break
		}
	}
	return geom.Color{quantize(acc[0]), quantize(acc[1]), quantize(acc[2])}
}

// colorTrace performs one bounce: shade the nearest hit into acc, replace
// ray with its reflection and attenuate weight. It reports false on a miss.
func (v *View) colorTrace(s *scene.Scene, weight *float64, ray *geom.Ray, acc *[3]float64) bool {
	hit, ok := NearestHit(s, *ray)
	if !ok {
		return false
	}
	obj := hit.Object
	light := LambertShade(s, obj, hit.Point, v.shadowBias)
	col := obj.Color()
	k := light * obj.Lambert() * *weight
	for i := range acc {
		acc[i] += float64(col[i]) / 255 * k
	}
	*ray = obj.ReflectRay(*ray, hit.Point)
	*weight *= obj.Specular()
	return true
}

// quantize maps an accumulated channel to a byte, saturating out-of-range
// values and truncating the fraction.
func quantize(c float64) uint8 {
	v := c * 255
	if v <= 0 || math.IsNaN(v) {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return uint8(v)
}
