package render

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"

	"gallery-room/internal/room"
)

// maxPointLights must match the array size in the fragment shaders.
const maxPointLights = 3

// materials holds the shared unit plane and the two lit materials (flat color and textured).
// GPU objects are created on first use so they are allocated after the window/OpenGL context exists.
type materials struct {
	ready       bool
	plane       rl.Mesh
	flatMtl     rl.Material
	texturedMtl rl.Material
	ambient     [4]float32
	lightPos    [3 * maxPointLights]float32
	lightColor  [4 * maxPointLights]float32
}

func (m *materials) ensure() {
	if m.ready {
		return
	}
	m.plane = rl.GenMeshPlane(1, 1, 1, 1)
	m.flatMtl = rl.LoadMaterialDefault()
	if s := rl.LoadShaderFromMemory(litVS, litFS); rl.IsShaderValid(s) {
		m.flatMtl.Shader = s
	}
	m.texturedMtl = rl.LoadMaterialDefault()
	if albedo := m.texturedMtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = rl.White
	}
	if s := rl.LoadShaderFromMemory(litVS, litTexturedFS); rl.IsShaderValid(s) {
		m.texturedMtl.Shader = s
	}
	m.ready = true
}

// setLights copies the room's lights into uniform buffers; setLightUniforms pushes them per shader.
func (m *materials) setLights(r room.Room) {
	a := rl.ColorNormalize(r.Ambient.Color)
	m.ambient = [4]float32{a.X * r.Ambient.Intensity, a.Y * r.Ambient.Intensity, a.Z * r.Ambient.Intensity, 1}
	m.lightPos = [3 * maxPointLights]float32{}
	m.lightColor = [4 * maxPointLights]float32{}
	for i, l := range r.Points {
		if i == maxPointLights {
			break
		}
		c := rl.ColorNormalize(l.Color)
		copy(m.lightPos[i*3:], l.Position[:])
		m.lightColor[i*4+0] = c.X
		m.lightColor[i*4+1] = c.Y
		m.lightColor[i*4+2] = c.Z
		m.lightColor[i*4+3] = l.Intensity
	}
	m.setLightUniforms(m.flatMtl.Shader)
	m.setLightUniforms(m.texturedMtl.Shader)
}

// setLightUniforms uses local copies of the arrays (cgo-safe).
func (m *materials) setLightUniforms(shader rl.Shader) {
	if !rl.IsShaderValid(shader) {
		return
	}
	amb := m.ambient
	pos := m.lightPos
	col := m.lightColor
	if loc := rl.GetShaderLocation(shader, "ambient"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, amb[:], rl.ShaderUniformVec4, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightPos"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, pos[:], rl.ShaderUniformVec3, maxPointLights)
	}
	if loc := rl.GetShaderLocation(shader, "lightColor"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, col[:], rl.ShaderUniformVec4, maxPointLights)
	}
}

// planeTransform scales the unit XZ plane to size, pitches it about X, yaws it about Y and moves it to center.
func planeTransform(center [3]float32, size [2]float32, pitch, yaw float32) rl.Matrix {
	scaleM := rl.MatrixScale(size[0], 1, size[1])
	rotM := rl.MatrixMultiply(rl.MatrixRotateX(pitch), rl.MatrixRotateY(yaw))
	transM := rl.MatrixTranslate(center[0], center[1], center[2])
	return rl.MatrixMultiply(rl.MatrixMultiply(scaleM, rotM), transM)
}

// drawPlane draws a flat-colored plane. Must be called between BeginMode3D and EndMode3D.
func (m *materials) drawPlane(center [3]float32, size [2]float32, pitch, yaw float32, c color.RGBA) {
	if albedo := m.flatMtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = c
	}
	rl.DrawMesh(m.plane, m.flatMtl, planeTransform(center, size, pitch, yaw))
}

// drawTexturedPlane draws a plane with tex as albedo; invalid textures fall back to fallback color.
func (m *materials) drawTexturedPlane(center [3]float32, size [2]float32, pitch, yaw float32, tex rl.Texture2D, fallback color.RGBA) {
	if !rl.IsTextureValid(tex) {
		m.drawPlane(center, size, pitch, yaw, fallback)
		return
	}
	rl.SetMaterialTexture(&m.texturedMtl, rl.MapAlbedo, tex)
	rl.DrawMesh(m.plane, m.texturedMtl, planeTransform(center, size, pitch, yaw))
}

func (m *materials) unload() {
	if !m.ready {
		return
	}
	rl.UnloadMesh(&m.plane)
	if rl.IsShaderValid(m.flatMtl.Shader) {
		rl.UnloadShader(m.flatMtl.Shader)
	}
	if rl.IsShaderValid(m.texturedMtl.Shader) {
		rl.UnloadShader(m.texturedMtl.Shader)
	}
	m.ready = false
}

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragTexCoord = vertexTexCoord;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	// litFS: ambient plus three attenuated point lights (color in rgb, intensity in a).
	litFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec4 ambient;
uniform vec3 lightPos[3];
uniform vec4 lightColor[3];
out vec4 finalColor;
void main() {
  vec4 tint = colDiffuse;
  vec3 N = normalize(fragNormal);
  vec3 light = ambient.rgb;
  for (int i = 0; i < 3; i++) {
    vec3 toLight = lightPos[i] - fragPosition;
    float d = length(toLight);
    float NdotL = max(dot(N, toLight / max(d, 0.0001)), 0.0);
    float att = 1.0 / (1.0 + 0.09 * d + 0.032 * d * d);
    light += lightColor[i].rgb * lightColor[i].a * NdotL * att;
  }
  finalColor = vec4(tint.rgb * light, tint.a);
}
`
	// litTexturedFS: same as litFS but tint comes from texture0 * colDiffuse.
	litTexturedFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform sampler2D texture0;
uniform vec4 ambient;
uniform vec3 lightPos[3];
uniform vec4 lightColor[3];
out vec4 finalColor;
void main() {
  vec4 tint = texture(texture0, fragTexCoord) * colDiffuse;
  vec3 N = normalize(fragNormal);
  vec3 light = ambient.rgb;
  for (int i = 0; i < 3; i++) {
    vec3 toLight = lightPos[i] - fragPosition;
    float d = length(toLight);
    float NdotL = max(dot(N, toLight / max(d, 0.0001)), 0.0);
    float att = 1.0 / (1.0 + 0.09 * d + 0.032 * d * d);
    light += lightColor[i].rgb * lightColor[i].a * NdotL * att;
  }
  finalColor = vec4(tint.rgb * light, tint.a);
}
`
)
