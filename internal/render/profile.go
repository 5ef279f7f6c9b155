package render

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/Garsondee/Settlement-Replay/internal/replay"
)

// Profile holds every presentation parameter of a display target: surface
// size, marker sizes, text layout and playback defaults.
type Profile struct {
	Name string `yaml:"name"`

	Width  int  `yaml:"width"`
	Height int  `yaml:"height"`
	Margin int  `yaml:"margin"`
	Center bool `yaml:"center"` // centre the world inside the margins

	ResourceSize int  `yaml:"resource_size"` // triangle half-extent, px
	BuildingSize int  `yaml:"building_size"` // square side, px
	StorageScale int  `yaml:"storage_scale"` // storage side = BuildingSize * StorageScale
	NPCRadius    int  `yaml:"npc_radius"`
	Outline      bool `yaml:"outline"` // black outline on every marker
	StrokeWidth  int  `yaml:"stroke_width"`

	FontSize      int `yaml:"font_size"`
	TitleFontSize int `yaml:"title_font_size"`
	LineHeight    int `yaml:"line_height"`
	TextPad       int `yaml:"text_pad"`
	StatusWidth   int `yaml:"status_width"` // building list column, from the right edge
	ItemsHeight   int `yaml:"items_height"` // item block, from the bottom edge
	MaxItemLines  int `yaml:"max_item_lines"`
	TasksWidth    int `yaml:"tasks_width"` // task column, from the right edge
	MaxTaskLines  int `yaml:"max_task_lines"`

	StepSize int `yaml:"step_size"` // frames per render tick
	FPS      int `yaml:"fps"`
	MinFPS   int `yaml:"min_fps"`
	MaxFPS   int `yaml:"max_fps"`
	FPSStep  int `yaml:"fps_step"`
}

// Built-in preset names.
const (
	ProfileStandard = "standard"
	Profile2K       = "2k"
)

var presets = map[string]Profile{
	ProfileStandard: {
		Name:          ProfileStandard,
		Width:         1000,
		Height:        1000,
		Margin:        40,
		ResourceSize:  8,
		BuildingSize:  18,
		StorageScale:  2,
		NPCRadius:     8,
		StrokeWidth:   2,
		FontSize:      16,
		TitleFontSize: 22,
		LineHeight:    16,
		TextPad:       10,
		StatusWidth:   200,
		ItemsHeight:   80,
		MaxItemLines:  6,
		TasksWidth:    200,
		MaxTaskLines:  4,
		StepSize:      1,
		FPS:           30,
		MinFPS:        5,
		MaxFPS:        120,
		FPSStep:       5,
	},
	Profile2K: {
		Name:          Profile2K,
		Width:         2560,
		Height:        1600,
		Margin:        40,
		Center:        true,
		ResourceSize:  16,
		BuildingSize:  32,
		StorageScale:  2,
		NPCRadius:     16,
		Outline:       true,
		StrokeWidth:   2,
		FontSize:      32,
		TitleFontSize: 44,
		LineHeight:    28,
		TextPad:       16,
		StatusWidth:   240,
		ItemsHeight:   320,
		MaxItemLines:  10,
		TasksWidth:    300,
		MaxTaskLines:  10,
		StepSize:      15,
		FPS:           30,
		MinFPS:        5,
		MaxFPS:        120,
		FPSStep:       5,
	},
}

// ErrUnknownProfile is returned for a preset name that does not exist.
var ErrUnknownProfile = errors.New("unknown render profile")

// Preset returns a copy of the named built-in profile.
func Preset(name string) (Profile, error) {
	p, ok := presets[name]
	if !ok {
		return Profile{}, fmt.Errorf("%w %q (have %v)", ErrUnknownProfile, name, PresetNames())
	}
	return p, nil
}

// PresetNames lists the built-in profiles in sorted order.
func PresetNames() []string {
	names := make([]string, 0, len(presets))
	for n := range presets {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// profileFile is the on-disk shape: a base preset plus any Profile fields to
// override.
type profileFile struct {
	Base string `yaml:"base"`
}

// LoadProfile reads a YAML overlay from path. The file's "base" key picks the
// preset to start from (fallback when empty); every other key overrides the
// matching field.
func LoadProfile(path, fallback string) (Profile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, err
	}
	return ParseProfile(raw, fallback)
}

// ParseProfile is LoadProfile on an in-memory document.
func ParseProfile(raw []byte, fallback string) (Profile, error) {
	var head profileFile
	if err := yaml.Unmarshal(raw, &head); err != nil {
		return Profile{}, fmt.Errorf("profile yaml: %w", err)
	}
	base := head.Base
	if base == "" {
		base = fallback
	}
	p, err := Preset(base)
	if err != nil {
		return Profile{}, err
	}
	if err := yaml.Unmarshal(raw, &p); err != nil {
		return Profile{}, fmt.Errorf("profile yaml: %w", err)
	}
	if p.Name == "" {
		p.Name = base
	}
	if err := p.Validate(); err != nil {
		return Profile{}, err
	}
	return p, nil
}

// Validate rejects profiles the renderer cannot lay out.
func (p Profile) Validate() error {
	switch {
	case p.Width <= 0 || p.Height <= 0:
		return fmt.Errorf("profile %s: surface %dx%d must be positive", p.Name, p.Width, p.Height)
	case p.Margin < 0:
		return fmt.Errorf("profile %s: negative margin %d", p.Name, p.Margin)
	case 2*p.Margin >= p.Width || 2*p.Margin >= p.Height:
		return fmt.Errorf("profile %s: margin %d leaves no room on a %dx%d surface", p.Name, p.Margin, p.Width, p.Height)
	case p.StepSize < 1:
		return fmt.Errorf("profile %s: step_size %d must be at least 1", p.Name, p.StepSize)
	case p.MinFPS < 1 || p.MinFPS > p.MaxFPS:
		return fmt.Errorf("profile %s: fps bounds [%d,%d] are invalid", p.Name, p.MinFPS, p.MaxFPS)
	case p.FPS < p.MinFPS || p.FPS > p.MaxFPS:
		return fmt.Errorf("profile %s: fps %d outside [%d,%d]", p.Name, p.FPS, p.MinFPS, p.MaxFPS)
	case p.FontSize <= 0 || p.TitleFontSize <= 0 || p.LineHeight <= 0:
		return fmt.Errorf("profile %s: font sizes must be positive", p.Name)
	}
	return nil
}

// Mapping fits bounds onto this profile's surface.
func (p Profile) Mapping(b replay.Bounds) Mapping {
	return NewMapping(b, p.Width, p.Height, p.Margin, p.Center)
}
