package scene

import (
	"os"
	"path/filepath"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const skyboxScale = 500

// equirect panoramas are roughly 2:1; anything else is treated as a cubemap cross or strip.
const (
	equirectAspectMin = 1.8
	equirectAspectMax = 2.2
)

// skybox is an optional backdrop. The file is chosen up front; GPU resources are created on the
// first draw because textures cannot be loaded before the window exists.
type skybox struct {
	path     string
	equirect bool
	pending  bool
	loaded   bool

	tex       rl.Texture2D
	mesh      rl.Mesh
	mtl       rl.Material
	camPosLoc int32
	texLoc    int32
}

// findSkybox returns the first candidate that exists and decodes. Candidates that are not found are
// also tried two directories up so running from cmd/studio works.
func findSkybox(candidates []string) *skybox {
	for _, c := range candidates {
		for _, p := range []string{c, filepath.Join("..", "..", c)} {
			p = filepath.Clean(p)
			if _, err := os.Stat(p); err != nil {
				continue
			}
			img := rl.LoadImage(p)
			if img == nil || img.Width <= 0 || img.Height <= 0 {
				continue
			}
			aspect := float32(img.Width) / float32(img.Height)
			rl.UnloadImage(img)
			return &skybox{
				path:     p,
				equirect: aspect >= equirectAspectMin && aspect <= equirectAspectMax,
				pending:  true,
			}
		}
	}
	return nil
}

func (s *skybox) ensureLoaded() {
	if s == nil || !s.pending {
		return
	}
	s.pending = false

	if !s.equirect {
		img := rl.LoadImage(s.path)
		if img == nil || img.Width <= 0 || img.Height <= 0 {
			return
		}
		s.tex = rl.LoadTextureCubemap(img, rl.CubemapLayoutAutoDetect)
		rl.UnloadImage(img)
		if !rl.IsTextureValid(s.tex) {
			return
		}
		s.mesh = rl.GenMeshCube(1, 1, 1)
		s.mtl = rl.LoadMaterialDefault()
		rl.SetMaterialTexture(&s.mtl, rl.MapCubemap, s.tex)
		s.loaded = true
		return
	}

	s.tex = rl.LoadTexture(s.path)
	if !rl.IsTextureValid(s.tex) {
		return
	}
	shader := rl.LoadShaderFromMemory(equirectVS, equirectFS)
	if !rl.IsShaderValid(shader) {
		rl.UnloadTexture(s.tex)
		return
	}
	s.mesh = rl.GenMeshCube(1, 1, 1)
	s.mtl = rl.LoadMaterialDefault()
	s.mtl.Shader = shader
	s.camPosLoc = rl.GetShaderLocation(shader, "cameraPosition")
	s.texLoc = rl.GetShaderLocation(shader, "skybox")
	s.loaded = true
}

// draw renders the box centred on the camera with depth writes off. Call inside BeginMode3D.
func (s *skybox) draw(cam rl.Vector3) {
	if s == nil || !s.loaded {
		return
	}
	rl.DisableDepthMask()
	rl.DisableBackfaceCulling()
	transform := rl.MatrixMultiply(
		rl.MatrixScale(skyboxScale, skyboxScale, skyboxScale),
		rl.MatrixTranslate(cam.X, cam.Y, cam.Z),
	)
	if s.equirect {
		if s.camPosLoc >= 0 {
			rl.SetShaderValueV(s.mtl.Shader, s.camPosLoc, []float32{cam.X, cam.Y, cam.Z}, rl.ShaderUniformVec3, 1)
		}
		if s.texLoc >= 0 {
			rl.SetShaderValueTexture(s.mtl.Shader, s.texLoc, s.tex)
		}
	}
	rl.DrawMesh(s.mesh, s.mtl, transform)
	rl.EnableBackfaceCulling()
	rl.EnableDepthMask()
}

const (
	equirectVS = `#version 330
in vec3 vertexPosition;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragWorldPos;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragWorldPos = worldPos.xyz;
  gl_Position = matProjection * matView * worldPos;
}
`
	equirectFS = `#version 330
in vec3 fragWorldPos;
out vec4 finalColor;
uniform sampler2D skybox;
uniform vec3 cameraPosition;
void main() {
  vec3 dir = normalize(fragWorldPos - cameraPosition);
  float u = atan(dir.z, dir.x) / 6.28318530718 + 0.5;
  float v = 0.5 - asin(clamp(dir.y, -1.0, 1.0)) / 3.14159265359;
  finalColor = texture(skybox, vec2(u, v));
}
`
)
