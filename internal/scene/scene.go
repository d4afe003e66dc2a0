// Package scene draws studio.App with raylib: the lit bust and orbit ring rendered off-screen,
// then composited through the tone-mapping pass. All functions must run on the window thread.
package scene

import (
	"image"
	"image/color"
	"image/draw"

	rl "github.com/gen2brain/raylib-go/raylib"

	"bust-studio/internal/lighting"
	"bust-studio/internal/logger"
	"bust-studio/internal/studio"
)

const (
	sphereRings  = 32
	sphereSlices = 32
)

// Scene renders one App.
type Scene struct {
	Camera rl.Camera3D

	app      *studio.App
	log      *logger.Logger
	cacheDir string
	sky      *skybox

	ready  bool
	lit    studioShader
	litOK  bool
	post   postShader
	postOK bool

	target           rl.RenderTexture2D
	targetW, targetH int32

	sphere rl.Model
	bust   *model
	bottle *model

	clear   color.RGBA
	capture func(image.Image)
}

// New prepares a scene for app. GPU resources are created on the first Draw. Models are written
// under cacheDir before raylib loads them.
func New(app *studio.App, cacheDir string, log *logger.Logger) *Scene {
	if log == nil {
		log = logger.New("")
	}
	s := &Scene{
		app:      app,
		log:      log,
		cacheDir: cacheDir,
		sky:      findSkybox(app.Preset.Skybox),
	}
	s.Camera.Up = rl.NewVector3(0, 1, 0)
	s.Camera.Fovy = app.Preset.Camera.FovY
	s.Camera.Projection = rl.CameraPerspective
	s.syncCamera()

	r := app.Preset.Renderer
	if !r.Transparent {
		if c, ok := lighting.ParseHexColor(r.Background); ok {
			s.clear = c
		} else {
			s.clear = color.RGBA{A: 255}
		}
	}
	return s
}

// init creates the shaders and the shared sphere model.
func (s *Scene) init() {
	if s.ready {
		return
	}
	s.ready = true
	if s.lit, s.litOK = loadStudioShader(); !s.litOK {
		s.log.Warnf("scene: studio shader failed to compile, using flat shading")
	}
	if s.post, s.postOK = loadPostShader(); !s.postOK {
		s.log.Warnf("scene: tone-mapping shader failed to compile, drawing without post-processing")
	}
	s.sphere = rl.LoadModelFromMesh(rl.GenMeshSphere(1, sphereRings, sphereSlices))
	mtl := s.sphere.GetMaterials()
	for i := range mtl {
		if c, ok := lighting.ParseHexColor(s.app.Preset.Orbit.Color); ok {
			mtl[i].GetMap(rl.MapAlbedo).Color = c
		}
		if s.litOK {
			mtl[i].Shader = s.lit.shader
		}
	}
}

func (s *Scene) syncCamera() {
	p := s.app.Camera.Position()
	t := s.app.Camera.Target
	s.Camera.Position = rl.NewVector3(p[0], p[1], p[2])
	s.Camera.Target = rl.NewVector3(t[0], t[1], t[2])
}

// ensureTarget keeps the off-screen target at the window size. It returns false when no target exists.
func (s *Scene) ensureTarget(w, h int32) bool {
	if w <= 0 || h <= 0 {
		return false
	}
	if s.target.ID != 0 && w == s.targetW && h == s.targetH {
		return true
	}
	if s.target.ID != 0 {
		rl.UnloadRenderTexture(s.target)
	}
	s.target = rl.LoadRenderTexture(w, h)
	s.targetW, s.targetH = w, h
	return s.target.ID != 0
}

// Draw renders the frame. Call between BeginDrawing and EndDrawing, before the HUD.
func (s *Scene) Draw() {
	s.init()
	s.sky.ensureLoaded()
	s.syncCamera()

	w, h := int32(rl.GetScreenWidth()), int32(rl.GetScreenHeight())
	offscreen := s.postOK && s.ensureTarget(w, h)
	if offscreen {
		rl.BeginTextureMode(s.target)
		rl.ClearBackground(s.clear)
	}

	rl.BeginMode3D(s.Camera)
	s.sky.draw(s.Camera.Position)
	s.drawWorld()
	rl.EndMode3D()

	if offscreen {
		rl.EndTextureMode()
		st := s.app.Settings
		s.post.set(st.Exposure*s.app.Preset.Renderer.Exposure, st.Saturation)
		rl.BeginShaderMode(s.post.shader)
		// render textures are stored bottom-up
		src := rl.NewRectangle(0, 0, float32(w), -float32(h))
		rl.DrawTextureRec(s.target.Texture, src, rl.NewVector2(0, 0), rl.White)
		rl.EndShaderMode()
	}

	if s.capture != nil {
		fn := s.capture
		s.capture = nil
		fn(s.grab())
	}
}

func (s *Scene) drawWorld() {
	if s.litOK {
		p := s.Camera.Position
		s.lit.uploadLights(s.app.Rig.Lights(), [3]float32{p.X, p.Y, p.Z})
	}
	s.drawBust()

	o := s.app.Preset.Orbit
	s.setMaterial(o.Roughness, o.Metalness)
	for _, b := range s.app.Bodies {
		pos := vec3(b.Position)
		rot := rl.MatrixMultiply(rl.MatrixRotateX(b.Spin.RotX), rl.MatrixRotateY(b.Spin.RotY))
		if b.Orbit.IsBottle && s.app.BottleLoaded {
			s.bottle.draw(pos, rot, s.app.Preset.Bottle.Scale)
			continue
		}
		s.sphere.Transform = rot
		rl.DrawModel(s.sphere, pos, b.Radius, rl.White)
	}
}

func (s *Scene) drawBust() {
	if s.bust == nil || !s.app.BustLoaded {
		return
	}
	scale, ok := s.app.BustScale()
	if ok {
		s.bust.scale = scale
	}
	if s.bust.scale <= 0 {
		return
	}
	s.setMaterial(s.app.Settings.Roughness, s.app.Preset.Bust.Metalness)
	rot := rl.MatrixRotateY(s.app.SwayRotation)
	s.bust.draw(vec3(s.app.Bust.Offset), rot, s.bust.scale)
}

func (s *Scene) setMaterial(roughness, metalness float32) {
	if s.litOK {
		s.lit.setMaterial(roughness, metalness)
	}
}

// RequestCapture asks for the next composited frame. fn runs on the window thread at the end of
// the next Draw with a copy of the pixels.
func (s *Scene) RequestCapture(fn func(image.Image)) {
	s.capture = fn
}

func (s *Scene) grab() image.Image {
	img := rl.LoadImageFromScreen()
	defer rl.UnloadImage(img)
	src := img.ToImage()
	dst := image.NewRGBA(src.Bounds())
	draw.Draw(dst, dst.Bounds(), src, src.Bounds().Min, draw.Src)
	return dst
}

// Unload frees GPU resources.
func (s *Scene) Unload() {
	if !s.ready {
		return
	}
	s.bust.unload()
	s.bottle.unload()
	rl.UnloadModel(s.sphere)
	if s.target.ID != 0 {
		rl.UnloadRenderTexture(s.target)
	}
	if s.litOK {
		rl.UnloadShader(s.lit.shader)
	}
	if s.postOK {
		rl.UnloadShader(s.post.shader)
	}
}

func vec3(v [3]float32) rl.Vector3 {
	return rl.NewVector3(v[0], v[1], v[2])
}
