package scene

import (
	"SolarSystem/internal/mesh"
	"SolarSystem/internal/renderer"
)

// Materials are the templates every body is drawn with.
type Materials struct {
	Sun            renderer.Material
	Planet1        renderer.Material
	Planet2Phong   renderer.Material
	Planet2Gouraud renderer.Material
	Planet3        renderer.Material
	Planet4        renderer.Material
	Ring           renderer.Material
}

func NewMaterials(ringFrequency float32) Materials {
	planet2 := renderer.NewMaterial(renderer.Phong,
		renderer.WithColor(renderer.MustHexColor("#4a7938")),
		renderer.WithDiffusivity(.3),
		renderer.WithSpecularity(1),
	)
	return Materials{
		// the color is replaced every frame by the pulsing sun color
		Sun: renderer.NewMaterial(renderer.Phong,
			renderer.WithAmbient(1),
			renderer.WithDiffusivity(.6),
			renderer.WithColor(renderer.MustHexColor("#ffffff")),
		),
		Planet1: renderer.NewMaterial(renderer.Phong,
			renderer.WithColor(renderer.Color(0.5, 0.5, 0.5, 1)),
			renderer.WithSpecularity(0),
		),
		Planet2Phong:   planet2,
		Planet2Gouraud: planet2.WithPipeline(renderer.Gouraud),
		Planet3: renderer.NewMaterial(renderer.Phong,
			renderer.WithColor(renderer.MustHexColor("#70543e")),
		),
		Planet4: renderer.NewMaterial(renderer.Phong,
			renderer.WithColor(renderer.Color(0.3, 0.3, 1, 1)),
		),
		Ring: renderer.NewMaterial(renderer.RingPattern,
			renderer.WithRingFrequency(ringFrequency),
		),
	}
}

// Planet2 returns the planet 2 material for the pipeline of this frame.
func (m Materials) Planet2(p renderer.PipelineKind) renderer.Material {
	if p == renderer.Gouraud {
		return m.Planet2Gouraud
	}
	return m.Planet2Phong
}

// Shapes are the tessellated meshes of each body.
type Shapes struct {
	Sun     renderer.Shape
	Planet1 renderer.Shape
	Planet2 renderer.Shape
	Planet3 renderer.Shape
	Planet4 renderer.Shape
	Moon    renderer.Shape
	Ring    renderer.Shape
}

// ShapeKeys lists the tessellation of every body.
var ShapeKeys = struct {
	Sun, Planet1, Planet2, Planet3, Planet4, Moon, Ring mesh.Key
}{
	Sun:     mesh.Key{Kind: mesh.Sphere, A: 4},
	Planet1: mesh.Key{Kind: mesh.FlatSphere, A: 2},
	Planet2: mesh.Key{Kind: mesh.Sphere, A: 3},
	Planet3: mesh.Key{Kind: mesh.Sphere, A: 4},
	Planet4: mesh.Key{Kind: mesh.Sphere, A: 4},
	Moon:    mesh.Key{Kind: mesh.FlatSphere, A: 1},
	Ring:    mesh.Key{Kind: mesh.Torus, A: 15, B: 15},
}

func NewShapes(cache *mesh.Cache) Shapes {
	return Shapes{
		Sun:     renderer.NewShape(cache.Get(ShapeKeys.Sun)),
		Planet1: renderer.NewShape(cache.Get(ShapeKeys.Planet1)),
		Planet2: renderer.NewShape(cache.Get(ShapeKeys.Planet2)),
		Planet3: renderer.NewShape(cache.Get(ShapeKeys.Planet3)),
		Planet4: renderer.NewShape(cache.Get(ShapeKeys.Planet4)),
		Moon:    renderer.NewShape(cache.Get(ShapeKeys.Moon)),
		Ring:    renderer.NewShape(cache.Get(ShapeKeys.Ring)),
	}
}
