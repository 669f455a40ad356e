package prefabs

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/milk9111/mercmech/mech"
)

var ErrInvalidSpec = errors.New("prefabs: invalid spec")

func LoadSpec[T any](filename string) (T, error) {
	var spec T
	err := LoadSpecInto(filename, &spec)
	return spec, err
}

// LoadSpecInto decodes filename over out, so fields the file omits keep
// whatever out already held.
func LoadSpecInto[T any](filename string, out *T) error {
	data, err := Load(filename)
	if err != nil {
		return fmt.Errorf("prefabs: load %s: %w", filename, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}
	return nil
}

type MechSpec struct {
	Name     string        `yaml:"name"`
	Color    YAMLColor     `yaml:"color"`
	Collider ColliderSpec  `yaml:"collider"`
	Spawn    SpawnSpec     `yaml:"spawn"`
	Pilot    string        `yaml:"pilot"`
	Tuning   mech.Settings `yaml:"tuning"`
}

type ColliderSpec struct {
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Mass     float64 `yaml:"mass"`
	Friction float64 `yaml:"friction"`
}

type SpawnSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// LoadMechSpec reads a mech file. Tuning keys it leaves out keep their
// default values.
func LoadMechSpec(filename string) (*MechSpec, error) {
	spec := &MechSpec{
		Name:     "mech",
		Color:    YAMLColor{Color: color.NRGBA{R: 0x4a, G: 0x9e, B: 0xff, A: 0xff}},
		Collider: ColliderSpec{Width: 1, Height: 2, Mass: 1},
		Tuning:   mech.DefaultSettings(),
	}
	if err := LoadSpecInto(filename, spec); err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return spec, nil
}

func (s *MechSpec) Validate() error {
	if s.Collider.Width <= 0 || s.Collider.Height <= 0 {
		return fmt.Errorf("%w: collider %vx%v", ErrInvalidSpec, s.Collider.Width, s.Collider.Height)
	}
	return s.Tuning.Validate()
}

type LevelSpec struct {
	Name      string         `yaml:"name"`
	Gravity   float64        `yaml:"gravity"`
	KillY     float64        `yaml:"kill_y"`
	Camera    CameraSpec     `yaml:"camera"`
	Solids    []BoxSpec      `yaml:"solids"`
	Platforms []PlatformSpec `yaml:"platforms"`
}

type CameraSpec struct {
	Target     string  `yaml:"target"`
	Smoothness float64 `yaml:"smoothness"`
	LookAhead  float64 `yaml:"look_ahead"`
}

// BoxSpec is an axis-aligned box given by its centre.
type BoxSpec struct {
	Name     string  `yaml:"name"`
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Width    float64 `yaml:"width"`
	Height   float64 `yaml:"height"`
	Friction float64 `yaml:"friction"`
}

// PlatformSpec moves a box Distance units along Axis and back, taking
// Duration seconds each way.
type PlatformSpec struct {
	BoxSpec  `yaml:",inline"`
	Axis     string  `yaml:"axis"`
	Distance float64 `yaml:"distance"`
	Duration float64 `yaml:"duration"`
	Ease     string  `yaml:"ease"`
}

func LoadLevelSpec(filename string) (*LevelSpec, error) {
	spec := &LevelSpec{Gravity: -9.81, KillY: -30}
	if err := LoadSpecInto(filename, spec); err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s: %w", filename, err)
	}
	return spec, nil
}

func (s *LevelSpec) Validate() error {
	if s.Gravity >= 0 {
		return fmt.Errorf("%w: gravity must point down, got %v", ErrInvalidSpec, s.Gravity)
	}
	for i, box := range s.Solids {
		if box.Width <= 0 || box.Height <= 0 {
			return fmt.Errorf("%w: solid %d (%q) has empty size", ErrInvalidSpec, i, box.Name)
		}
	}
	for i, p := range s.Platforms {
		if p.Width <= 0 || p.Height <= 0 || p.Duration <= 0 {
			return fmt.Errorf("%w: platform %d (%q) needs a size and a duration", ErrInvalidSpec, i, p.Name)
		}
		if p.Axis != "" && p.Axis != "x" && p.Axis != "y" {
			return fmt.Errorf("%w: platform %d (%q) axis %q", ErrInvalidSpec, i, p.Name, p.Axis)
		}
		if p.Ease != "" {
			if _, ok := mech.EaseFunc(p.Ease); !ok {
				return fmt.Errorf("%w: platform %d (%q) ease %q", ErrInvalidSpec, i, p.Name, p.Ease)
			}
		}
	}
	return nil
}

// MarshalTuning renders settings as a mech file fragment.
func MarshalTuning(settings mech.Settings) ([]byte, error) {
	out, err := yaml.Marshal(struct {
		Tuning mech.Settings `yaml:"tuning"`
	}{settings})
	if err != nil {
		return nil, fmt.Errorf("prefabs: marshal tuning: %w", err)
	}
	return out, nil
}

type YAMLColor struct {
	color.Color
}

// RGB returns the colour as 8-bit channels, white when unset.
func (c YAMLColor) RGB() [3]uint8 {
	if c.Color == nil {
		return [3]uint8{0xff, 0xff, 0xff}
	}
	n := color.NRGBAModel.Convert(c.Color).(color.NRGBA)
	return [3]uint8{n.R, n.G, n.B}
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")
	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	var rgba [4]uint8
	rgba[3] = 255
	for i := 0; i < len(s)/2; i++ {
		v, err := parse(i * 2)
		if err != nil {
			return err
		}
		rgba[i] = v
	}

	c.Color = color.NRGBA{R: rgba[0], G: rgba[1], B: rgba[2], A: rgba[3]}
	return nil
}

func (c YAMLColor) MarshalYAML() (interface{}, error) {
	rgb := c.RGB()
	return fmt.Sprintf("#%02x%02x%02x", rgb[0], rgb[1], rgb[2]), nil
}

// DecodeTuning reads a mech file fragment such as the one MarshalTuning
// writes, on top of base.
func DecodeTuning(data []byte, base mech.Settings) (mech.Settings, error) {
	wrapper := struct {
		Tuning mech.Settings `yaml:"tuning"`
	}{base}
	if err := yaml.Unmarshal(data, &wrapper); err != nil {
		return base, fmt.Errorf("prefabs: decode tuning: %w", err)
	}
	if err := wrapper.Tuning.Validate(); err != nil {
		return base, fmt.Errorf("prefabs: decode tuning: %w", err)
	}
	return wrapper.Tuning, nil
}
