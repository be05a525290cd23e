package renderer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl32"
)

// Material defaults used for any field a material does not set.
var (
	DefaultColor       = mgl32.Vec4{0, 0, 0, 1}
	DefaultAmbient     = float32(0)
	DefaultDiffusivity = float32(1)
	DefaultSpecularity = float32(1)
	DefaultSmoothness  = float32(40)
)

// DefaultRingFrequency is the number of radians of ring pattern per world unit.
const DefaultRingFrequency = 18

// Material couples a shading pipeline with the surface constants it reads.
// Values are immutable; Override returns a modified copy.
type Material struct {
	Pipeline    PipelineKind
	Color       mgl32.Vec4
	Ambient     float32
	Diffusivity float32
	Specularity float32
	Smoothness  float32

	// RingFrequency is only read by the ring pipeline.
	RingFrequency float32
}

type MaterialOption func(*Material)

func WithColor(c mgl32.Vec4) MaterialOption {
	return func(m *Material) { m.Color = c }
}

func WithAmbient(v float32) MaterialOption {
	return func(m *Material) { m.Ambient = v }
}

func WithDiffusivity(v float32) MaterialOption {
	return func(m *Material) { m.Diffusivity = v }
}

func WithSpecularity(v float32) MaterialOption {
	return func(m *Material) { m.Specularity = v }
}

func WithSmoothness(v float32) MaterialOption {
	return func(m *Material) { m.Smoothness = v }
}

func WithRingFrequency(v float32) MaterialOption {
	return func(m *Material) { m.RingFrequency = v }
}

// NewMaterial starts from the defaults and applies opts in order.
func NewMaterial(pipeline PipelineKind, opts ...MaterialOption) Material {
	m := Material{
		Pipeline:    pipeline,
		Color:       DefaultColor,
		Ambient:     DefaultAmbient,
		Diffusivity: DefaultDiffusivity,
		Specularity: DefaultSpecularity,
		Smoothness:  DefaultSmoothness,

		RingFrequency: DefaultRingFrequency,
	}
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// Override returns a copy of m with opts applied. m is left untouched.
func (m Material) Override(opts ...MaterialOption) Material {
	for _, opt := range opts {
		opt(&m)
	}
	return m
}

// WithPipeline returns a copy of m drawn by a different pipeline.
func (m Material) WithPipeline(p PipelineKind) Material {
	m.Pipeline = p
	return m
}

// Color builds an RGBA color.
func Color(r, g, b, a float32) mgl32.Vec4 {
	return mgl32.Vec4{r, g, b, a}
}

// HexColor parses "#rrggbb" or "#rrggbbaa". Alpha defaults to 1.
func HexColor(hex string) (mgl32.Vec4, error) {
	s := strings.TrimPrefix(hex, "#")
	if len(s) != 6 && len(s) != 8 {
		return mgl32.Vec4{}, fmt.Errorf("renderer: hex color %q: want 6 or 8 digits", hex)
	}
	c := mgl32.Vec4{0, 0, 0, 1}
	for i := 0; i < len(s)/2; i++ {
		v, err := strconv.ParseUint(s[i*2:i*2+2], 16, 8)
		if err != nil {
			return mgl32.Vec4{}, fmt.Errorf("renderer: hex color %q: %w", hex, err)
		}
		c[i] = float32(v) / 255
	}
	return c, nil
}

// MustHexColor is HexColor for constants known at compile time.
func MustHexColor(hex string) mgl32.Vec4 {
	c, err := HexColor(hex)
	if err != nil {
		panic(err)
	}
	return c
}
