package scene

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"bust-studio/internal/lighting"
)

// maxLights must match MAX_LIGHTS in studioFS.
const maxLights = 8

// Light kinds as passed to the shader (floats, since SetShaderValue only takes []float32).
const (
	kindDirectional = 1
	kindSpot        = 2
)

const (
	studioVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
uniform mat4 matNormal;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragTexCoord = vertexTexCoord;
  fragNormal = normalize(vec3(matNormal * vec4(vertexNormal, 0.0)));
  gl_Position = matProjection * matView * worldPos;
}
`
	// studioFS: ambient plus up to MAX_LIGHTS directional/spot lights with a roughness/metalness
	// controlled Blinn-Phong lobe. Spot cones fade over the penumbra; distance > 0 cuts off with decay.
	studioFS = `#version 330
#define MAX_LIGHTS 8
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform sampler2D texture0;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 ambient;
uniform float lightCount;
uniform float lightKind[MAX_LIGHTS];
uniform vec3 lightPos[MAX_LIGHTS];
uniform vec3 lightColor[MAX_LIGHTS];
uniform vec2 lightCone[MAX_LIGHTS];
uniform vec2 lightFalloff[MAX_LIGHTS];
uniform float roughness;
uniform float metalness;
out vec4 finalColor;
void main() {
  vec4 base = texture(texture0, fragTexCoord) * colDiffuse;
  vec3 N = normalize(fragNormal);
  vec3 V = normalize(viewPos - fragPosition);
  float shininess = mix(256.0, 4.0, clamp(roughness, 0.0, 1.0));
  vec3 specTint = mix(vec3(0.04), base.rgb, metalness);
  vec3 diffuseTint = base.rgb * (1.0 - metalness);
  vec3 color = ambient * base.rgb;
  int n = int(lightCount);
  for (int i = 0; i < MAX_LIGHTS; i++) {
    if (i >= n) break;
    vec3 L;
    float atten = 1.0;
    if (lightKind[i] > 1.5) {
      vec3 toLight = lightPos[i] - fragPosition;
      float dist = length(toLight);
      L = toLight / max(dist, 0.0001);
      float cosTheta = dot(-L, normalize(-lightPos[i]));
      atten = smoothstep(lightCone[i].x, lightCone[i].y, cosTheta);
      if (lightFalloff[i].y > 0.0) {
        float d = clamp(1.0 - dist / lightFalloff[i].y, 0.0, 1.0);
        atten *= pow(d, max(lightFalloff[i].x, 0.0));
      }
    } else {
      L = normalize(lightPos[i]);
    }
    float NdotL = max(dot(N, L), 0.0);
    vec3 H = normalize(L + V);
    float spec = pow(max(dot(N, H), 0.0), shininess) * (1.0 - roughness * 0.7);
    color += (diffuseTint * NdotL + specTint * spec) * lightColor[i] * atten;
  }
  finalColor = vec4(color, base.a);
}
`
	postVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec4 vertexColor;
uniform mat4 mvp;
out vec2 fragTexCoord;
out vec4 fragColor;
void main() {
  fragTexCoord = vertexTexCoord;
  fragColor = vertexColor;
  gl_Position = mvp * vec4(vertexPosition, 1.0);
}
`
	// postFS applies exposure, ACES filmic tone mapping and saturation to the off-screen frame.
	postFS = `#version 330
in vec2 fragTexCoord;
in vec4 fragColor;
uniform sampler2D texture0;
uniform float exposure;
uniform float saturation;
out vec4 finalColor;
vec3 aces(vec3 x) {
  const float a = 2.51;
  const float b = 0.03;
  const float c = 2.43;
  const float d = 0.59;
  const float e = 0.14;
  return clamp((x * (a * x + b)) / (x * (c * x + d) + e), 0.0, 1.0);
}
void main() {
  vec4 src = texture(texture0, fragTexCoord);
  vec3 c = aces(src.rgb * exposure);
  float luma = dot(c, vec3(0.2126, 0.7152, 0.0722));
  c = mix(vec3(luma), c, saturation);
  finalColor = vec4(clamp(c, 0.0, 1.0), src.a);
}
`
)

// studioShader is the lit shader plus its uniform locations.
type studioShader struct {
	shader rl.Shader

	viewPos, ambient, count         int32
	kind, pos, color, cone, falloff int32
	roughness, metalness            int32
}

func loadStudioShader() (studioShader, bool) {
	sh := rl.LoadShaderFromMemory(studioVS, studioFS)
	if !rl.IsShaderValid(sh) {
		return studioShader{}, false
	}
	loc := func(name string) int32 { return rl.GetShaderLocation(sh, name) }
	return studioShader{
		shader:    sh,
		viewPos:   loc("viewPos"),
		ambient:   loc("ambient"),
		count:     loc("lightCount"),
		kind:      loc("lightKind"),
		pos:       loc("lightPos"),
		color:     loc("lightColor"),
		cone:      loc("lightCone"),
		falloff:   loc("lightFalloff"),
		roughness: loc("roughness"),
		metalness: loc("metalness"),
	}, true
}

// uploadLights sends the rig and camera position. Ambient lights are summed into one colour.
func (s *studioShader) uploadLights(lights []*lighting.Light, viewPos [3]float32) {
	var (
		ambient                 [3]float32
		kinds                   []float32
		pos, col, cone, falloff []float32
	)
	for _, l := range lights {
		if l.Kind == lighting.Ambient {
			for i := range ambient {
				ambient[i] += l.Color[i] * l.Intensity
			}
			continue
		}
		if len(kinds) == maxLights {
			continue
		}
		kind := float32(kindDirectional)
		if l.Kind == lighting.Spot {
			kind = kindSpot
		}
		outer, inner := l.Cone()
		kinds = append(kinds, kind)
		pos = append(pos, l.Position[0], l.Position[1], l.Position[2])
		col = append(col, l.Color[0]*l.Intensity, l.Color[1]*l.Intensity, l.Color[2]*l.Intensity)
		cone = append(cone, outer, inner)
		falloff = append(falloff, l.Decay, l.Distance)
	}
	sh := s.shader
	rl.SetShaderValue(sh, s.viewPos, viewPos[:], rl.ShaderUniformVec3)
	rl.SetShaderValue(sh, s.ambient, ambient[:], rl.ShaderUniformVec3)
	rl.SetShaderValue(sh, s.count, []float32{float32(len(kinds))}, rl.ShaderUniformFloat)
	if n := int32(len(kinds)); n > 0 {
		rl.SetShaderValueV(sh, s.kind, kinds, rl.ShaderUniformFloat, n)
		rl.SetShaderValueV(sh, s.pos, pos, rl.ShaderUniformVec3, n)
		rl.SetShaderValueV(sh, s.color, col, rl.ShaderUniformVec3, n)
		rl.SetShaderValueV(sh, s.cone, cone, rl.ShaderUniformVec2, n)
		rl.SetShaderValueV(sh, s.falloff, falloff, rl.ShaderUniformVec2, n)
	}
}

// setMaterial sets the surface parameters for the next draw.
func (s *studioShader) setMaterial(roughness, metalness float32) {
	rl.SetShaderValue(s.shader, s.roughness, []float32{roughness}, rl.ShaderUniformFloat)
	rl.SetShaderValue(s.shader, s.metalness, []float32{metalness}, rl.ShaderUniformFloat)
}

// postShader is the tone-mapping pass.
type postShader struct {
	shader               rl.Shader
	exposure, saturation int32
}

func loadPostShader() (postShader, bool) {
	sh := rl.LoadShaderFromMemory(postVS, postFS)
	if !rl.IsShaderValid(sh) {
		return postShader{}, false
	}
	return postShader{
		shader:     sh,
		exposure:   rl.GetShaderLocation(sh, "exposure"),
		saturation: rl.GetShaderLocation(sh, "saturation"),
	}, true
}

func (p *postShader) set(exposure, saturation float32) {
	rl.SetShaderValue(p.shader, p.exposure, []float32{exposure}, rl.ShaderUniformFloat)
	rl.SetShaderValue(p.shader, p.saturation, []float32{saturation}, rl.ShaderUniformFloat)
}
