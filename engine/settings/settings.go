// Package settings holds the live values behind the viewer's control panels: the box and
// ground materials, camera, background and general renderer options. Every value is a
// plain field; range and option metadata lives in the schema.
package settings

// Panel names.
const (
	PanelBox        = "box"
	PanelGround     = "ground"
	PanelCamera     = "camera"
	PanelBackground = "background"
	PanelGeneral    = "general"
)

// ToneMapping names the operator that maps HDR shading results to display range.
type ToneMapping string

const (
	ToneMappingLinear     ToneMapping = "Linear"
	ToneMappingReinhard   ToneMapping = "Reinhard"
	ToneMappingUncharted2 ToneMapping = "Uncharted2"
	ToneMappingCineon     ToneMapping = "Cineon"
	ToneMappingACESFilmic ToneMapping = "ACESFilmic"
	ToneMappingAgX        ToneMapping = "AgX"
	ToneMappingNeutral    ToneMapping = "Neutral"
)

// ToneMappings lists every operator in shader index order.
var ToneMappings = []ToneMapping{
	ToneMappingLinear,
	ToneMappingReinhard,
	ToneMappingUncharted2,
	ToneMappingCineon,
	ToneMappingACESFilmic,
	ToneMappingAgX,
	ToneMappingNeutral,
}

// Index returns the operator's position in ToneMappings; unknown values map to AgX.
func (t ToneMapping) Index() uint32 {
	for i, tm := range ToneMappings {
		if tm == t {
			return uint32(i)
		}
	}
	return ToneMappingAgX.Index()
}

// HDRI names a background/lighting environment preset.
type HDRI string

const (
	HDRISunset    HDRI = "Sunset"
	HDRIDawn      HDRI = "Dawn"
	HDRINight     HDRI = "Night"
	HDRIWarehouse HDRI = "Warehouse"
	HDRIForest    HDRI = "Forest"
	HDRIApartment HDRI = "Apartment"
	HDRIStudio    HDRI = "Studio"
	HDRICity      HDRI = "City"
)

// HDRIs lists every environment preset.
var HDRIs = []HDRI{
	HDRISunset, HDRIDawn, HDRINight, HDRIWarehouse,
	HDRIForest, HDRIApartment, HDRIStudio, HDRICity,
}

// AntiAliasing names a multisampling quality level.
type AntiAliasing string

const (
	AntiAliasingOff      AntiAliasing = "Off"
	AntiAliasingLow      AntiAliasing = "Low"
	AntiAliasingMedium   AntiAliasing = "Medium"
	AntiAliasingHigh     AntiAliasing = "High"
	AntiAliasingVeryHigh AntiAliasing = "VeryHigh"
)

// AntiAliasingLevels lists every quality level from lowest to highest.
var AntiAliasingLevels = []AntiAliasing{
	AntiAliasingOff, AntiAliasingLow, AntiAliasingMedium, AntiAliasingHigh, AntiAliasingVeryHigh,
}

// Samples returns the MSAA sample count for the level. Unknown levels map to Medium.
func (a AntiAliasing) Samples() int {
	switch a {
	case AntiAliasingOff:
		return 1
	case AntiAliasingLow:
		return 2
	case AntiAliasingHigh:
		return 8
	case AntiAliasingVeryHigh:
		return 16
	default:
		return 4
	}
}

// Physical is the set of physically based material properties shared by the box and ground.
type Physical struct {
	Color              string  `json:"color" yaml:"color" toml:"color"`
	Metalness          float32 `json:"metalness" yaml:"metalness" toml:"metalness"`
	Roughness          float32 `json:"roughness" yaml:"roughness" toml:"roughness"`
	Iridescence        float32 `json:"iridescence" yaml:"iridescence" toml:"iridescence"`
	IridescenceIOR     float32 `json:"iridescenceIOR" yaml:"iridescenceIOR" toml:"iridescenceIOR"`
	Clearcoat          float32 `json:"clearcoat" yaml:"clearcoat" toml:"clearcoat"`
	ClearcoatRoughness float32 `json:"clearcoatRoughness" yaml:"clearcoatRoughness" toml:"clearcoatRoughness"`
	Transmission       float32 `json:"transmission" yaml:"transmission" toml:"transmission"`
	IOR                float32 `json:"ior" yaml:"ior" toml:"ior"`
	SpecularIntensity  float32 `json:"specularIntensity" yaml:"specularIntensity" toml:"specularIntensity"`
	SpecularColor      string  `json:"specularColor" yaml:"specularColor" toml:"specularColor"`
	Transparent        bool    `json:"transparent" yaml:"transparent" toml:"transparent"`
	Opacity            float32 `json:"opacity" yaml:"opacity" toml:"opacity"`
}

// IsTransparent reports whether the material must be alpha blended: either it asks for it
// or its opacity is below one.
func (p Physical) IsTransparent() bool {
	return p.Opacity < 1 || p.Transparent
}

// Box configures the rotating box.
type Box struct {
	Physical `yaml:",inline"`
	// Speed is the rotation added per 60Hz frame on each axis, in radians.
	Speed float32 `json:"speed" yaml:"speed" toml:"speed"`
}

// Ground configures the ground plane.
type Ground struct {
	Physical     `yaml:",inline"`
	UseNormalMap bool `json:"useNormalMap" yaml:"useNormalMap" toml:"useNormalMap"`
	// NormalRepeat is how many times the normal map tiles across the plane.
	NormalRepeat float32 `json:"normalRepeat" yaml:"normalRepeat" toml:"normalRepeat"`
	// TextureScrollSpeed is the UV offset added per 60Hz frame.
	TextureScrollSpeed float32 `json:"textureScrollSpeed" yaml:"textureScrollSpeed" toml:"textureScrollSpeed"`
}

// Camera configures the projection and the output transform.
type Camera struct {
	// Fov is the vertical field of view in degrees.
	Fov         float32     `json:"fov" yaml:"fov" toml:"fov"`
	ToneMapping ToneMapping `json:"toneMapping" yaml:"toneMapping" toml:"toneMapping"`
	Exposure    float32     `json:"exposure" yaml:"exposure" toml:"exposure"`
}

// Background configures the environment preset.
type Background struct {
	HDRI                HDRI    `json:"hdri" yaml:"hdri" toml:"hdri"`
	Blur                float32 `json:"blur" yaml:"blur" toml:"blur"`
	BackgroundIntensity float32 `json:"backgroundIntensity" yaml:"backgroundIntensity" toml:"backgroundIntensity"`
}

// General holds renderer-wide switches.
type General struct {
	ShowStats    bool         `json:"showStats" yaml:"showStats" toml:"showStats"`
	AntiAliasing AntiAliasing `json:"antiAliasing" yaml:"antiAliasing" toml:"antiAliasing"`
	Fullscreen   bool         `json:"fullscreen" yaml:"fullscreen" toml:"fullscreen"`
}

// Settings is the full state of every panel.
type Settings struct {
	Box        Box        `json:"box" yaml:"box" toml:"box"`
	Ground     Ground     `json:"ground" yaml:"ground" toml:"ground"`
	Camera     Camera     `json:"camera" yaml:"camera" toml:"camera"`
	Background Background `json:"background" yaml:"background" toml:"background"`
	General    General    `json:"general" yaml:"general" toml:"general"`
}

func defaultPhysical(color string) Physical {
	return Physical{
		Color:              color,
		Metalness:          0.5,
		Roughness:          0.5,
		Iridescence:        0,
		IridescenceIOR:     1.3,
		Clearcoat:          0,
		ClearcoatRoughness: 0,
		Transmission:       0,
		IOR:                1.5,
		SpecularIntensity:  1,
		SpecularColor:      "#ffffff",
		Transparent:        false,
		Opacity:            1,
	}
}

// Default returns the settings the viewer starts with.
func Default() Settings {
	return Settings{
		Box: Box{
			Physical: defaultPhysical("gold"),
			Speed:    0.005,
		},
		Ground: Ground{
			Physical:           defaultPhysical("#ff0000"),
			UseNormalMap:       false,
			NormalRepeat:       100,
			TextureScrollSpeed: 0,
		},
		Camera: Camera{
			Fov:         50,
			ToneMapping: ToneMappingAgX,
			Exposure:    1,
		},
		Background: Background{
			HDRI:                HDRISunset,
			Blur:                0,
			BackgroundIntensity: 1,
		},
		General: General{
			ShowStats:    false,
			AntiAliasing: AntiAliasingMedium,
			Fullscreen:   false,
		},
	}
}

// Normalize returns a copy of s with every float clamped and snapped to its range and every
// color or option that does not parse replaced by its default.
func Normalize(s Settings) Settings {
	for _, panel := range schema {
		for _, p := range panel.Params {
			if p.Kind == KindAction {
				continue
			}
			if err := p.set(&s, p.get(&s)); err != nil {
				_ = p.set(&s, p.Default)
			}
		}
	}
	return s
}
