package opengl

import (
	"strings"
	"testing"

	"SolarSystem/internal/renderer"
)

func TestShaderSourcesAreTerminated(t *testing.T) {
	for _, kind := range renderer.PipelineKinds() {
		vertex, fragment := sources(kind)
		if !strings.HasSuffix(vertex, "\x00") || !strings.HasSuffix(fragment, "\x00") {
			t.Errorf("%v sources must end with a NUL byte", kind)
		}
	}
}

func TestLitShadersScaleNormalsInObjectSpace(t *testing.T) {
	// Same order as renderer.TransformNormal: divide, then rotate.
	if !strings.Contains(normalTransform, "mat3(modelTransform) * (n / squaredScale)") {
		t.Errorf("worldNormal must divide by squaredScale before applying the model matrix:\n%s", normalTransform)
	}

	for _, src := range []string{phongVertexShaderSource, gouraudVertexShaderSource} {
		if !strings.Contains(src, "worldNormal(normal)") {
			t.Error("Lit vertex shader does not use worldNormal")
		}
		if strings.Contains(src, "* normal / squaredScale") {
			t.Error("Lit vertex shader divides by squaredScale in world space")
		}
	}
}

func TestLightingCodeSharedByLitPipelines(t *testing.T) {
	_, phongFragment := sources(renderer.Phong)
	gouraudVertex, gouraudFragment := sources(renderer.Gouraud)

	if !strings.Contains(phongFragment, lightingFunction) || !strings.Contains(gouraudVertex, lightingFunction) {
		t.Error("Phong fragment and Gouraud vertex shaders must embed the same lighting code")
	}
	if strings.Contains(gouraudFragment, "phongModelLights") {
		t.Error("Gouraud fragment shader must not light")
	}
}
