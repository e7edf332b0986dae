// Package scenefile reads scene descriptions from YAML or JSON files and
// builds the scene and camera they describe.
package scenefile

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"whitted-renderer/internal/geom"
	"whitted-renderer/internal/mathutil"
	"whitted-renderer/internal/render"
	"whitted-renderer/internal/scene"
)

// ErrInvalidScene wraps every validation failure reported by Build.
var ErrInvalidScene = errors.New("invalid scene")

// Format selects the decoder.
type Format string

const (
	YAML Format = "yaml"
	JSON Format = "json"
)

// Description is the on-disk form of a scene.
type Description struct {
	View    ViewDesc     `yaml:"view" json:"view"`
	Lights  []LightDesc  `yaml:"lights" json:"lights"`
	Objects []ObjectDesc `yaml:"objects" json:"objects"`
}

// ViewDesc mirrors render.ViewConfig. Zero fields take the defaults of
// render.DefaultViewConfig.
type ViewDesc struct {
	Width          int            `yaml:"width" json:"width"`
	Height         int            `yaml:"height" json:"height"`
	Position       *mathutil.Vec3 `yaml:"position" json:"position"`
	FOV            float64        `yaml:"fov" json:"fov"`
	Direction      *mathutil.Vec3 `yaml:"direction" json:"direction"`
	MaxDepth       *int           `yaml:"max_depth" json:"max_depth"`
	Background     *geom.Color    `yaml:"background" json:"background"`
	ShadowBias     *float64       `yaml:"shadow_bias" json:"shadow_bias"`
	FillBackground bool           `yaml:"fill_background" json:"fill_background"`
}

// LightDesc is a point light.
type LightDesc struct {
	Position  mathutil.Vec3 `yaml:"position" json:"position"`
	Intensity float64       `yaml:"intensity" json:"intensity"`
}

// ObjectDesc is one primitive. Type is "sphere", "plane" or "quad"; a quad is
// a plane given by three corners.
type ObjectDesc struct {
	Type     string     `yaml:"type" json:"type"`
	Color    geom.Color `yaml:"color" json:"color"`
	Lambert  float64    `yaml:"lambert" json:"lambert"`
	Specular float64    `yaml:"specular" json:"specular"`

	// sphere
	Position mathutil.Vec3 `yaml:"position" json:"position"`
	Radius   float64       `yaml:"radius" json:"radius"`

	// plane
	Normal mathutil.Vec3 `yaml:"normal" json:"normal"`
	Point  mathutil.Vec3 `yaml:"point" json:"point"`

	// quad
	TopRight    mathutil.Vec3 `yaml:"top_right" json:"top_right"`
	BottomRight mathutil.Vec3 `yaml:"bottom_right" json:"bottom_right"`
	BottomLeft  mathutil.Vec3 `yaml:"bottom_left" json:"bottom_left"`
}

// FormatFromPath picks the decoder from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return YAML, nil
	case ".json":
		return JSON, nil
	default:
		return "", fmt.Errorf("scenefile: unknown extension: %s", path)
	}
}

// Load reads and decodes a scene file.
func Load(path string) (*Description, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("scenefile: read %s: %w", path, err)
	}
	d, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("scenefile: parse %s: %w", path, err)
	}
	return d, nil
}

// Parse decodes a scene description.
func Parse(data []byte, format Format) (*Description, error) {
	var d Description
	switch format {
	case YAML:
		if err := yaml.Unmarshal(data, &d); err != nil {
			return nil, err
		}
	case JSON:
		if err := json.Unmarshal(data, &d); err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("scenefile: unknown format %q", format)
	}
	return &d, nil
}

// Build validates the description and constructs the scene and camera.
func (d *Description) Build() (*scene.Scene, render.ViewConfig, error) {
	cfg := d.View.config()

	s := &scene.Scene{}
	for i, l := range d.Lights {
		if l.Intensity < 0 {
			return nil, cfg, fmt.Errorf("scenefile: %w: light %d: negative intensity %g", ErrInvalidScene, i, l.Intensity)
		}
		s.AddLight(scene.NewLight(l.Position, l.Intensity))
	}
	for i, o := range d.Objects {
		obj, err := o.build()
		if err != nil {
			return nil, cfg, fmt.Errorf("scenefile: %w: object %d (%s): %v", ErrInvalidScene, i, o.Type, err)
		}
		s.AddObject(obj)
	}
	return s, cfg, nil
}

func (v ViewDesc) config() render.ViewConfig {
	cfg := render.DefaultViewConfig()
	if v.Width != 0 {
		cfg.Width = v.Width
	}
	if v.Height != 0 {
		cfg.Height = v.Height
	}
	if v.Position != nil {
		cfg.Position = *v.Position
	}
	if v.FOV != 0 {
		cfg.FOV = v.FOV
	}
	if v.Direction != nil {
		cfg.Direction = *v.Direction
	}
	if v.MaxDepth != nil {
		cfg.MaxDepth = *v.MaxDepth
	}
	if v.Background != nil {
		cfg.Background = *v.Background
	}
	if v.ShadowBias != nil {
		cfg.ShadowBias = *v.ShadowBias
	}
	cfg.FillBackground = v.FillBackground
	return cfg
}

func (o ObjectDesc) build() (geom.Object, error) {
	if o.Lambert < 0 || o.Lambert > 1 {
		return nil, fmt.Errorf("lambert %g outside [0, 1]", o.Lambert)
	}
	if o.Specular < 0 || o.Specular > 1 {
		return nil, fmt.Errorf("specular %g outside [0, 1]", o.Specular)
	}

	switch strings.ToLower(o.Type) {
	case "sphere":
		if o.Radius <= 0 {
			return nil, fmt.Errorf("radius %g must be positive", o.Radius)
		}
		return geom.NewSphere(o.Position, o.Color, o.Radius, o.Lambert, o.Specular), nil
	case "plane":
		if o.Normal.IsZero() {
			return nil, errors.New("zero normal")
		}
		return geom.NewPlane(o.Color, o.Normal, o.Point, o.Lambert, o.Specular), nil
	case "quad":
		width := o.BottomRight.Sub(o.BottomLeft)
		height := o.TopRight.Sub(o.BottomRight)
		if width.Cross(height).IsZero() {
			return nil, errors.New("degenerate corners")
		}
		return geom.PlaneFromPoints(o.Color, o.TopRight, o.BottomRight, o.BottomLeft, o.Lambert, o.Specular), nil
	default:
		return nil, fmt.Errorf("unknown type %q", o.Type)
	}
}
