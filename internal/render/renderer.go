// Package render turns replay frames into backend-neutral draw commands. The
// viewer executes the commands with ebiten; tests and the headless report
// inspect them directly.
package render

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/Garsondee/Settlement-Replay/internal/replay"
)

// Shape selects how a Command is drawn.
type Shape int

const (
	ShapeTriangle Shape = iota // Size is the half-extent
	ShapeSquare                // Size is the side length
	ShapeCircle                // Size is the radius
	ShapeText
)

func (s Shape) String() string {
	switch s {
	case ShapeTriangle:
		return "triangle"
	case ShapeSquare:
		return "square"
	case ShapeCircle:
		return "circle"
	case ShapeText:
		return "text"
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// Align is the horizontal anchor of a text command.
type Align int

const (
	AlignLeft Align = iota
	AlignCenter
)

// Layer tags what a command depicts so backends and tests can filter.
type Layer int

const (
	LayerResource Layer = iota
	LayerBuilding
	LayerNPC
	LayerText
)

// Command is one primitive in surface pixels. Markers are centred on (X, Y);
// text is anchored at (X, Y) with its top edge on Y.
type Command struct {
	Layer       Layer
	Shape       Shape
	X, Y        int
	Size        int
	Fill        bool // false draws the outline only, StrokeWidth wide
	StrokeWidth int
	Color       color.RGBA
	Text        string
	FontSize    int
	Align       Align
	Slot        int // NPC slot for LayerNPC, building list index for LayerBuilding
}

// Labeler resolves item ids to display names.
type Labeler interface {
	ItemName(id int) (string, bool)
}

// Renderer draws frames of one replay under one profile. The mapping is
// fixed at construction because world bounds never change.
type Renderer struct {
	profile Profile
	world   *replay.World
	mapping Mapping
	colors  *ColorAssigner
	labels  Labeler
	sorted  []replay.Building // buildings by id for the status column
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithLabels names items in the item block.
func WithLabels(l Labeler) Option {
	return func(r *Renderer) {
		r.labels = l
	}
}

// WithColors shares a colour assigner with another consumer (the inspector).
func WithColors(c *ColorAssigner) Option {
	return func(r *Renderer) {
		r.colors = c
	}
}

// New prepares a renderer for world under profile p.
func New(p Profile, world *replay.World, opts ...Option) *Renderer {
	r := &Renderer{
		profile: p,
		world:   world,
		mapping: p.Mapping(world.Bounds()),
		colors:  NewColorAssigner(),
	}
	for _, o := range opts {
		o(r)
	}
	r.sorted = append([]replay.Building(nil), world.Buildings()...)
	sort.SliceStable(r.sorted, func(i, j int) bool { return r.sorted[i].ID < r.sorted[j].ID })
	return r
}

// Profile returns the profile the renderer lays out for.
func (r *Renderer) Profile() Profile { return r.profile }

// Mapping returns the session's world-to-surface mapping.
func (r *Renderer) Mapping() Mapping { return r.mapping }

// Colors returns the NPC colour assigner.
func (r *Renderer) Colors() *ColorAssigner { return r.colors }

// Background is the surface clear colour.
func Background() color.RGBA { return colorBackground }

// Frame returns the draw commands for f in painter's order: resource points,
// buildings, NPCs, then text.
func (r *Renderer) Frame(f *replay.Frame) []Command {
	p := r.profile
	cmds := make([]Command, 0, len(r.world.ResourcePoints())*2+len(r.world.Buildings())*3+len(f.NPCs)*2+16)

	for _, rp := range r.world.ResourcePoints() {
		x, y := r.mapping.ToScreen(rp.X, rp.Y)
		c := Command{Layer: LayerResource, Shape: ShapeTriangle, X: x, Y: y, Size: p.ResourceSize, Fill: true, Color: ResourceColor(rp.ItemKind)}
		cmds = append(cmds, c)
		if p.Outline {
			cmds = append(cmds, outline(c, p.StrokeWidth))
		}
	}

	for i, b := range r.world.Buildings() {
		x, y := r.mapping.ToScreen(b.X, b.Y)
		size := p.BuildingSize
		if b.IsStorage() {
			size *= max(1, p.StorageScale)
		}
		c := Command{Layer: LayerBuilding, Shape: ShapeSquare, X: x, Y: y, Size: size, Color: BuildingColor(i), Slot: i}
		if f.BuildingDone(b) {
			c.Fill = true
			cmds = append(cmds, c)
			if p.Outline || b.IsStorage() {
				cmds = append(cmds, outline(c, p.StrokeWidth))
			}
		} else {
			c.StrokeWidth = p.StrokeWidth
			cmds = append(cmds, c)
			if b.IsStorage() {
				cmds = append(cmds, outline(c, p.StrokeWidth))
			}
		}
		if b.IsStorage() {
			cmds = append(cmds, Command{Layer: LayerBuilding, Shape: ShapeText, X: x, Y: y - p.FontSize/2, Text: "Storage", FontSize: p.FontSize, Color: colorBlack, Align: AlignCenter, Slot: i})
		}
	}

	r.colors.Observe(len(f.NPCs))
	for slot, pos := range f.NPCs {
		x, y := r.mapping.ToScreen(pos.X, pos.Y)
		c := Command{Layer: LayerNPC, Shape: ShapeCircle, X: x, Y: y, Size: p.NPCRadius, Fill: true, Color: r.colors.Color(slot), Slot: slot}
		cmds = append(cmds, c)
		if p.Outline {
			cmds = append(cmds, outline(c, p.StrokeWidth))
		}
	}

	return append(cmds, r.text(f)...)
}

func outline(c Command, width int) Command {
	c.Fill = false
	c.StrokeWidth = width
	c.Color = colorBlack
	return c
}

func (r *Renderer) text(f *replay.Frame) []Command {
	p := r.profile
	label := func(x, y, size int, s string) Command {
		return Command{Layer: LayerText, Shape: ShapeText, X: x, Y: y, Text: s, FontSize: size, Color: colorBlack}
	}

	cmds := []Command{label(p.TextPad, p.TextPad, p.TitleFontSize, TickLabel(f))}

	x := p.Width - p.StatusWidth
	for i, line := range r.BuildingLines(f) {
		cmds = append(cmds, label(x, p.TextPad+i*p.LineHeight, p.FontSize, line))
	}

	top := p.Height - p.ItemsHeight
	for i, line := range r.ItemLines(f, p.MaxItemLines) {
		cmds = append(cmds, label(p.TextPad, top+i*p.LineHeight, p.FontSize, line))
	}

	tasks := TaskLines(f, p.MaxTaskLines)
	if len(tasks) > 0 {
		x = p.Width - p.TasksWidth
		cmds = append(cmds, label(x, top, p.FontSize, "Tasks"))
		for i, line := range tasks {
			cmds = append(cmds, label(x, top+(i+1)*p.LineHeight, p.FontSize, line))
		}
	}
	return cmds
}

// TickLabel is the frame title, "Tick N".
func TickLabel(f *replay.Frame) string {
	return fmt.Sprintf("Tick %d", f.Tick)
}

// BuildingLines returns "Name (k/1)" for every building, sorted by id.
func (r *Renderer) BuildingLines(f *replay.Frame) []string {
	lines := make([]string, 0, len(r.sorted))
	for _, b := range r.sorted {
		done := 0
		if f.BuildingDone(b) {
			done = 1
		}
		lines = append(lines, fmt.Sprintf("%s (%d/1)", b.Name, done))
	}
	return lines
}

// ItemLines returns one "I<id> [name] = held (need n)" line per item id,
// sorted by id and capped at limit (no cap when limit <= 0). A frame with no
// item data yields the single line "No item stats".
func (r *Renderer) ItemLines(f *replay.Frame, limit int) []string {
	return ItemLines(f, r.labels, limit)
}

// ItemLines is Renderer.ItemLines without a renderer; labels may be nil.
func ItemLines(f *replay.Frame, labels Labeler, limit int) []string {
	ids := f.ItemIDs()
	if len(ids) == 0 {
		return []string{"No item stats"}
	}
	lines := make([]string, 0, len(ids))
	for _, id := range ids {
		name := ""
		if labels != nil {
			if n, ok := labels.ItemName(id); ok {
				name = " " + n
			}
		}
		lines = append(lines, fmt.Sprintf("I%d%s = %d (need %d)", id, name, f.Held(id), f.Need(id)))
	}
	return capLines(lines, limit)
}

// TaskLines returns the frame's task labels capped at limit.
func TaskLines(f *replay.Frame, limit int) []string {
	return capLines(f.Tasks, limit)
}

func capLines(lines []string, limit int) []string {
	if limit > 0 && len(lines) > limit {
		return lines[:limit]
	}
	return lines
}
