package settings

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/chewxy/math32"
)

var (
	// ErrUnknownPanel is returned when a panel name is not part of the schema.
	ErrUnknownPanel = errors.New("unknown panel")
	// ErrUnknownKey is returned when a panel has no parameter with the given key.
	ErrUnknownKey = errors.New("unknown key")
	// ErrInvalidValue is returned when a value has the wrong type or is not a valid option.
	ErrInvalidValue = errors.New("invalid value")
)

// Kind is the type of value a parameter holds.
type Kind string

const (
	KindFloat  Kind = "float"
	KindBool   Kind = "bool"
	KindColor  Kind = "color"
	KindOption Kind = "option"
	// KindAction parameters hold no value; they name a button the panel exposes.
	KindAction Kind = "action"
)

// ActionResetTarget animates the camera target back to the origin.
const ActionResetTarget = "resetTarget"

// FloatParam describes a range-bounded numeric parameter.
type FloatParam struct {
	Key     string
	Default float32
	Min     float32
	Max     float32
	Step    float32
}

// Clamp limits v to [Min, Max] and snaps it to the nearest Step counted from Min.
//
// Parameters:
//   - v: the raw value
//
// Returns:
//   - float32: the value the parameter will actually hold
func (f FloatParam) Clamp(v float32) float32 {
	if math32.IsNaN(v) {
		return f.Default
	}
	v = min(max(v, f.Min), f.Max)
	if f.Step > 0 {
		snapped := f.Min + math32.Floor((v-f.Min)/f.Step+0.5)*f.Step
		// values already on the grid keep their exact representation
		if math32.Abs(snapped-v) > f.Step*1e-3 {
			v = min(max(snapped, f.Min), f.Max)
		}
	}
	return v
}

// Param describes one control of a panel. The exported fields are what the control panel
// publishes to clients; get and set bind the parameter to its Settings field.
type Param struct {
	Key     string   `json:"key"`
	Kind    Kind     `json:"kind"`
	Default any      `json:"default,omitempty"`
	Min     float32  `json:"min,omitempty"`
	Max     float32  `json:"max,omitempty"`
	Step    float32  `json:"step,omitempty"`
	Options []string `json:"options,omitempty"`

	get func(*Settings) any
	set func(*Settings, any) error
}

// Panel is a named group of parameters.
type Panel struct {
	Name   string  `json:"name"`
	Params []Param `json:"params"`
}

// Schema returns the description of every panel and parameter, in display order.
//
// Returns:
//   - []Panel: a copy of the schema
func Schema() []Panel {
	out := make([]Panel, len(schema))
	for i, p := range schema {
		out[i] = Panel{Name: p.Name, Params: slices.Clone(p.Params)}
	}
	return out
}

// Lookup finds the parameter key on panel.
//
// Parameters:
//   - panel: the panel name
//   - key: the parameter key
//
// Returns:
//   - Param: the parameter description
//   - error: ErrUnknownPanel or ErrUnknownKey when absent
func Lookup(panel, key string) (Param, error) {
	for _, p := range schema {
		if p.Name != panel {
			continue
		}
		for _, param := range p.Params {
			if param.Key == key {
				return param, nil
			}
		}
		return Param{}, fmt.Errorf("%w: %s.%s", ErrUnknownKey, panel, key)
	}
	return Param{}, fmt.Errorf("%w: %s", ErrUnknownPanel, panel)
}

// Value returns the current value of the parameter in s.
func (p Param) Value(s Settings) any {
	if p.get == nil {
		return nil
	}
	return p.get(&s)
}

// Apply validates value and writes it into s. Floats are clamped rather than rejected.
//
// Parameters:
//   - s: the settings to modify
//   - value: the new value; numbers may be any Go numeric type or json.Number
//
// Returns:
//   - error: wraps ErrInvalidValue when the value cannot be used
func (p Param) Apply(s *Settings, value any) error {
	if p.set == nil {
		return fmt.Errorf("%w: %s is an action", ErrInvalidValue, p.Key)
	}
	return p.set(s, value)
}

var schema = []Panel{
	{
		Name: PanelBox,
		Params: append([]Param{
			colorParam("color", "gold", func(s *Settings) *string { return &s.Box.Color }),
			floatParam(FloatParam{Key: "speed", Default: 0.005, Min: 0, Max: 0.03, Step: 0.001},
				func(s *Settings) *float32 { return &s.Box.Speed }),
		}, physicalParams(func(s *Settings) *Physical { return &s.Box.Physical })...),
	},
	{
		Name: PanelGround,
		Params: append([]Param{
			colorParam("color", "#ff0000", func(s *Settings) *string { return &s.Ground.Color }),
			boolParam("useNormalMap", false, func(s *Settings) *bool { return &s.Ground.UseNormalMap }),
			floatParam(FloatParam{Key: "normalRepeat", Default: 100, Min: 1, Max: 200, Step: 1},
				func(s *Settings) *float32 { return &s.Ground.NormalRepeat }),
			floatParam(FloatParam{Key: "textureScrollSpeed", Default: 0, Min: 0, Max: 0.1, Step: 0.001},
				func(s *Settings) *float32 { return &s.Ground.TextureScrollSpeed }),
		}, physicalParams(func(s *Settings) *Physical { return &s.Ground.Physical })...),
	},
	{
		Name: PanelCamera,
		Params: []Param{
			floatParam(FloatParam{Key: "fov", Default: 50, Min: 5, Max: 110, Step: 1},
				func(s *Settings) *float32 { return &s.Camera.Fov }),
			optionParam("toneMapping", ToneMappingAgX, ToneMappings,
				func(s *Settings) *ToneMapping { return &s.Camera.ToneMapping }),
			floatParam(FloatParam{Key: "exposure", Default: 1, Min: 0, Max: 5, Step: 0.01},
				func(s *Settings) *float32 { return &s.Camera.Exposure }),
			{Key: ActionResetTarget, Kind: KindAction},
		},
	},
	{
		Name: PanelBackground,
		Params: []Param{
			optionParam("hdri", HDRISunset, HDRIs,
				func(s *Settings) *HDRI { return &s.Background.HDRI }),
			floatParam(FloatParam{Key: "blur", Default: 0, Min: 0, Max: 1, Step: 0.01},
				func(s *Settings) *float32 { return &s.Background.Blur }),
			floatParam(FloatParam{Key: "backgroundIntensity", Default: 1, Min: 0, Max: 5, Step: 0.1},
				func(s *Settings) *float32 { return &s.Background.BackgroundIntensity }),
		},
	},
	{
		Name: PanelGeneral,
		Params: []Param{
			boolParam("showStats", false, func(s *Settings) *bool { return &s.General.ShowStats }),
			optionParam("antiAliasing", AntiAliasingMedium, AntiAliasingLevels,
				func(s *Settings) *AntiAliasing { return &s.General.AntiAliasing }),
			boolParam("fullscreen", false, func(s *Settings) *bool { return &s.General.Fullscreen }),
		},
	},
}

// physicalParams returns the material controls shared by the box and ground panels, minus color.
func physicalParams(sel func(*Settings) *Physical) []Param {
	unit := func(key string, def float32, field func(*Physical) *float32) Param {
		return floatParam(FloatParam{Key: key, Default: def, Min: 0, Max: 1, Step: 0.01},
			func(s *Settings) *float32 { return field(sel(s)) })
	}
	ior := func(key string, def float32, field func(*Physical) *float32) Param {
		return floatParam(FloatParam{Key: key, Default: def, Min: 1, Max: 2.5, Step: 0.01},
			func(s *Settings) *float32 { return field(sel(s)) })
	}
	return []Param{
		unit("metalness", 0.5, func(p *Physical) *float32 { return &p.Metalness }),
		unit("roughness", 0.5, func(p *Physical) *float32 { return &p.Roughness }),
		unit("iridescence", 0, func(p *Physical) *float32 { return &p.Iridescence }),
		ior("iridescenceIOR", 1.3, func(p *Physical) *float32 { return &p.IridescenceIOR }),
		unit("clearcoat", 0, func(p *Physical) *float32 { return &p.Clearcoat }),
		unit("clearcoatRoughness", 0, func(p *Physical) *float32 { return &p.ClearcoatRoughness }),
		unit("transmission", 0, func(p *Physical) *float32 { return &p.Transmission }),
		ior("ior", 1.5, func(p *Physical) *float32 { return &p.IOR }),
		floatParam(FloatParam{Key: "specularIntensity", Default: 1, Min: 0, Max: 2, Step: 0.01},
			func(s *Settings) *float32 { return &sel(s).SpecularIntensity }),
		colorParam("specularColor", "#ffffff", func(s *Settings) *string { return &sel(s).SpecularColor }),
		boolParam("transparent", false, func(s *Settings) *bool { return &sel(s).Transparent }),
		unit("opacity", 1, func(p *Physical) *float32 { return &p.Opacity }),
	}
}

func floatParam(f FloatParam, field func(*Settings) *float32) Param {
	return Param{
		Key:     f.Key,
		Kind:    KindFloat,
		Default: f.Default,
		Min:     f.Min,
		Max:     f.Max,
		Step:    f.Step,
		get:     func(s *Settings) any { return *field(s) },
		set: func(s *Settings, value any) error {
			v, err := toFloat(value)
			if err != nil {
				return fmt.Errorf("%w: %s: %v", ErrInvalidValue, f.Key, err)
			}
			*field(s) = f.Clamp(v)
			return nil
		},
	}
}

func boolParam(key string, def bool, field func(*Settings) *bool) Param {
	return Param{
		Key:     key,
		Kind:    KindBool,
		Default: def,
		get:     func(s *Settings) any { return *field(s) },
		set: func(s *Settings, value any) error {
			v, ok := value.(bool)
			if !ok {
				return fmt.Errorf("%w: %s expects a bool, got %T", ErrInvalidValue, key, value)
			}
			*field(s) = v
			return nil
		},
	}
}

func colorParam(key, def string, field func(*Settings) *string) Param {
	return Param{
		Key:     key,
		Kind:    KindColor,
		Default: def,
		get:     func(s *Settings) any { return *field(s) },
		set: func(s *Settings, value any) error {
			v, ok := value.(string)
			if !ok {
				return fmt.Errorf("%w: %s expects a color string, got %T", ErrInvalidValue, key, value)
			}
			v = strings.TrimSpace(v)
			if _, err := ParseColor(v); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrInvalidValue, key, err)
			}
			*field(s) = v
			return nil
		},
	}
}

func optionParam[T ~string](key string, def T, options []T, field func(*Settings) *T) Param {
	names := make([]string, len(options))
	for i, o := range options {
		names[i] = string(o)
	}
	return Param{
		Key:     key,
		Kind:    KindOption,
		Default: string(def),
		Options: names,
		get:     func(s *Settings) any { return string(*field(s)) },
		set: func(s *Settings, value any) error {
			v, ok := value.(string)
			if !ok {
				if t, isT := value.(T); isT {
					v, ok = string(t), true
				}
			}
			if !ok || !slices.Contains(names, v) {
				return fmt.Errorf("%w: %s must be one of %s, got %v", ErrInvalidValue, key, strings.Join(names, ", "), value)
			}
			*field(s) = T(v)
			return nil
		},
	}
}

func toFloat(value any) (float32, error) {
	switch v := value.(type) {
	case float32:
		return v, nil
	case float64:
		return float32(v), nil
	case int:
		return float32(v), nil
	case int64:
		return float32(v), nil
	case uint64:
		return float32(v), nil
	case json.Number:
		f, err := v.Float64()
		return float32(f), err
	default:
		return 0, fmt.Errorf("expected a number, got %T", value)
	}
}
