package opengl

import "SolarSystem/internal/renderer"

// MaxLights is the size of the light arrays declared by every program.
const MaxLights = 8

// Vertex attribute layout shared with mesh.Interleaved.
const (
	attribPosition = 0
	attribTexCoord = 1
	attribNormal   = 2
)

// lightingUniforms and lightingFunction are pasted into both the Phong
// fragment shader and the Gouraud vertex shader, so the two pipelines
// evaluate the exact same lighting code.
const lightingUniforms = `
#define MAX_LIGHTS 8
uniform int lightCount;
uniform vec4 lightPositions[MAX_LIGHTS];
uniform vec4 lightColors[MAX_LIGHTS];
uniform float lightAttenuationFactors[MAX_LIGHTS];

uniform vec4 shapeColor;
uniform float ambient;
uniform float diffusivity;
uniform float specularity;
uniform float smoothness;
uniform vec3 cameraCenter;
`

const lightingFunction = `
vec3 safeNormalize(vec3 v) {
    float l = length(v);
    return l > 0.0 ? v / l : vec3(0.0);
}

vec3 phongModelLights(vec3 N, vec3 vertexWorldSpace) {
    vec3 E = safeNormalize(cameraCenter - vertexWorldSpace);
    vec3 result = vec3(0.0);
    for (int i = 0; i < lightCount; i++) {
        vec3 surfaceToLight = lightPositions[i].xyz - lightPositions[i].w * vertexWorldSpace;
        float distanceToLight = length(surfaceToLight);

        vec3 L = safeNormalize(surfaceToLight);
        vec3 H = safeNormalize(L + E);

        float diffuse = max(dot(N, L), 0.0);
        float specular = pow(max(dot(N, H), 0.0), smoothness);
        float attenuation = 1.0 / (1.0 + lightAttenuationFactors[i] * distanceToLight * distanceToLight);

        vec3 lightContribution = shapeColor.xyz * lightColors[i].xyz * diffusivity * diffuse
                               + lightColors[i].xyz * specularity * specular;
        result += attenuation * lightContribution;
    }
    return result;
}

vec4 litColor(vec3 N, vec3 vertexWorldSpace) {
    return vec4(shapeColor.xyz * ambient, shapeColor.w)
         + vec4(phongModelLights(safeNormalize(N), vertexWorldSpace), 0.0);
}
`

const transformUniforms = `
layout(location = 0) in vec3 position;
layout(location = 2) in vec3 normal;

uniform mat4 modelTransform;
uniform mat4 projectionCameraModelTransform;
uniform vec3 squaredScale;
` + normalTransform

// normalTransform divides by the squared scale in object space before
// rotating, which matches renderer.TransformNormal and the inverse-transpose.
const normalTransform = `
vec3 worldNormal(vec3 n) {
    return normalize(mat3(modelTransform) * (n / squaredScale));
}
`

var phongVertexShaderSource = `#version 330 core
` + transformUniforms + `
out vec3 vertexWorldSpace;
out vec3 N;

void main() {
    gl_Position = projectionCameraModelTransform * vec4(position, 1.0);
    N = worldNormal(normal);
    vertexWorldSpace = (modelTransform * vec4(position, 1.0)).xyz;
}
` + "\x00"

var phongFragmentShaderSource = `#version 330 core
` + lightingUniforms + lightingFunction + `
in vec3 vertexWorldSpace;
in vec3 N;

out vec4 FragColor;

void main() {
    FragColor = litColor(N, vertexWorldSpace);
}
` + "\x00"

var gouraudVertexShaderSource = `#version 330 core
` + transformUniforms + lightingUniforms + lightingFunction + `
out vec4 vertexColor;

void main() {
    gl_Position = projectionCameraModelTransform * vec4(position, 1.0);
    vec3 N = worldNormal(normal);
    vec3 vertexWorldSpace = (modelTransform * vec4(position, 1.0)).xyz;
    vertexColor = litColor(N, vertexWorldSpace);
}
` + "\x00"

var gouraudFragmentShaderSource = `#version 330 core
in vec4 vertexColor;

out vec4 FragColor;

void main() {
    FragColor = vertexColor;
}
` + "\x00"

var ringVertexShaderSource = `#version 330 core
` + transformUniforms + `
out vec3 pointPosition;
out vec3 center;

void main() {
    gl_Position = projectionCameraModelTransform * vec4(position, 1.0);
    center = (modelTransform * vec4(0.0, 0.0, 0.0, 1.0)).xyz;
    pointPosition = (modelTransform * vec4(position, 1.0)).xyz;
}
` + "\x00"

var ringFragmentShaderSource = `#version 330 core
in vec3 pointPosition;
in vec3 center;

uniform vec4 ringColor;
uniform float ringFrequency;

out vec4 FragColor;

void main() {
    float d = distance(pointPosition, center);
    FragColor = ringColor * sin(ringFrequency * d);
}
` + "\x00"

// sources returns the vertex and fragment source of a pipeline.
func sources(kind renderer.PipelineKind) (vertex, fragment string) {
	switch kind {
	case renderer.Gouraud:
		return gouraudVertexShaderSource, gouraudFragmentShaderSource
	case renderer.RingPattern:
		return ringVertexShaderSource, ringFragmentShaderSource
	default:
		return phongVertexShaderSource, phongFragmentShaderSource
	}
}
