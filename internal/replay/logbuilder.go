package replay

import (
	"fmt"
	"strings"
)

// LogBuilder assembles log text in the simulator's format. It is used by
// tests across packages and by tools that need a synthetic log.
type LogBuilder struct {
	resourcePoints []ResourcePoint
	buildings      []Building
	body           []string
}

// LogOption is a builder function applied by BuildLog in order.
type LogOption func(*LogBuilder)

// WithResourcePoint declares a resource point.
func WithResourcePoint(id, item, x, y int) LogOption {
	return func(lb *LogBuilder) {
		lb.resourcePoints = append(lb.resourcePoints, ResourcePoint{ID: id, ItemKind: item, X: x, Y: y})
	}
}

// WithBuilding declares a building.
func WithBuilding(id int, name string, x, y int) LogOption {
	return func(lb *LogBuilder) {
		lb.buildings = append(lb.buildings, Building{ID: id, Name: name, X: x, Y: y})
	}
}

// WithStorage declares the storage sentinel at (x, y).
func WithStorage(x, y int) LogOption {
	return WithBuilding(StorageID, "Storage", x, y)
}

// TickSpec describes one tick line.
type TickSpec struct {
	Tick  int
	NPCs  []Point
	Items [][3]int // {item id, need, inventory}
	Tasks []string // nil writes no Tasks section; empty writes "Tasks: None"
}

// WithTick appends a tick record to the body.
func WithTick(ts TickSpec) LogOption {
	return func(lb *LogBuilder) {
		lb.body = append(lb.body, ts.line())
	}
}

// WithBuilt appends a "built building" event line to the body.
func WithBuilt(buildingID, tick int) LogOption {
	return func(lb *LogBuilder) {
		lb.body = append(lb.body, fmt.Sprintf("NPC 0 built building %d at tick %d", buildingID, tick))
	}
}

// WithBodyLine appends a raw line to the body.
func WithBodyLine(line string) LogOption {
	return func(lb *LogBuilder) {
		lb.body = append(lb.body, line)
	}
}

func (ts TickSpec) line() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "[Tick %d] NPCs:", ts.Tick)
	for _, p := range ts.NPCs {
		sb.WriteByte(' ')
		sb.WriteString(p.String())
	}
	for _, it := range ts.Items {
		fmt.Fprintf(&sb, " I%d:%d/%d", it[0], it[1], it[2])
	}
	if ts.Tasks != nil {
		sb.WriteString(" Tasks:")
		if len(ts.Tasks) == 0 {
			sb.WriteString(" None")
		}
		for _, t := range ts.Tasks {
			sb.WriteByte(' ')
			sb.WriteString(t)
		}
	}
	return sb.String()
}

// String renders the log text.
func (lb *LogBuilder) String() string {
	var sb strings.Builder
	sb.WriteString(headerResourcePoints + "\n")
	for _, rp := range lb.resourcePoints {
		fmt.Fprintf(&sb, "RP %d item %d at (%d,%d)\n", rp.ID, rp.ItemKind, rp.X, rp.Y)
	}
	sb.WriteString(headerBuildings + "\n")
	for _, b := range lb.buildings {
		fmt.Fprintf(&sb, "B %d %s at (%d,%d)\n", b.ID, b.Name, b.X, b.Y)
	}
	for _, ln := range lb.body {
		sb.WriteString(ln)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// BuildLog applies opts to an empty builder and returns the log text.
func BuildLog(opts ...LogOption) string {
	lb := &LogBuilder{}
	for _, o := range opts {
		o(lb)
	}
	return lb.String()
}
