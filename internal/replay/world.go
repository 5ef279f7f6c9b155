package replay

// Bounds is an inclusive axis-aligned box in world coordinates.
type Bounds struct {
	MinX, MaxX int
	MinY, MaxY int
}

// Width returns the number of world cells spanned horizontally.
func (b Bounds) Width() int { return b.MaxX - b.MinX + 1 }

// Height returns the number of world cells spanned vertically.
func (b Bounds) Height() int { return b.MaxY - b.MinY + 1 }

// Contains reports whether (x, y) lies inside the box.
func (b Bounds) Contains(x, y int) bool {
	return x >= b.MinX && x <= b.MaxX && y >= b.MinY && y <= b.MaxY
}

// World holds the static entities of a replay. It is built once by the
// parser and never modified afterwards.
type World struct {
	resourcePoints []ResourcePoint
	buildings      []Building
	buildingIdx    map[int]int
}

func newWorld() *World {
	return &World{buildingIdx: make(map[int]int)}
}

func (w *World) addResourcePoint(rp ResourcePoint) {
	w.resourcePoints = append(w.resourcePoints, rp)
}

// addBuilding appends b, or replaces an earlier building with the same id
// while keeping its place in the list.
func (w *World) addBuilding(b Building) {
	if i, ok := w.buildingIdx[b.ID]; ok {
		w.buildings[i] = b
		return
	}
	w.buildingIdx[b.ID] = len(w.buildings)
	w.buildings = append(w.buildings, b)
}

// ResourcePoints returns the resource points in parse order. The slice is
// shared; callers must not modify it.
func (w *World) ResourcePoints() []ResourcePoint {
	return w.resourcePoints
}

// Buildings returns the buildings in parse order. The slice is shared;
// callers must not modify it.
func (w *World) Buildings() []Building {
	return w.buildings
}

// Building looks up a building by id.
func (w *World) Building(id int) (Building, bool) {
	i, ok := w.buildingIdx[id]
	if !ok {
		return Building{}, false
	}
	return w.buildings[i], true
}

// BuildingIndex returns the position of building id in the static list, or
// -1 if it was never declared.
func (w *World) BuildingIndex(id int) int {
	if i, ok := w.buildingIdx[id]; ok {
		return i
	}
	return -1
}

// Undeclared returns the ids complete in c that the building list never
// declared, ascending. The storage sentinel is always declared implicitly.
func (w *World) Undeclared(c Completion) []int {
	var out []int
	for _, id := range c.IDs() {
		if _, ok := w.buildingIdx[id]; !ok && id != StorageID && c.Done(id) {
			out = append(out, id)
		}
	}
	return out
}

// Bounds returns the box covering every resource point and building. The
// box always contains the origin and (1,1), so an empty or single-point
// world still has a usable extent.
func (w *World) Bounds() Bounds {
	b := Bounds{MinX: 0, MaxX: 1, MinY: 0, MaxY: 1}
	grow := func(x, y int) {
		b.MinX = min(b.MinX, x)
		b.MaxX = max(b.MaxX, x)
		b.MinY = min(b.MinY, y)
		b.MaxY = max(b.MaxY, y)
	}
	for _, rp := range w.resourcePoints {
		grow(rp.X, rp.Y)
	}
	for _, bd := range w.buildings {
		grow(bd.X, bd.Y)
	}
	return b
}
