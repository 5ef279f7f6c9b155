package replay

import (
	"bufio"
	"io"
	"regexp"
	"strconv"
	"strings"
)

// parseState is the section of the log the parser is currently reading.
type parseState int

const (
	stateStart parseState = iota
	stateResourcePoints
	stateBuildings
	stateBody
)

func (s parseState) String() string {
	switch s {
	case stateStart:
		return "start"
	case stateResourcePoints:
		return "resource_points"
	case stateBuildings:
		return "buildings"
	case stateBody:
		return "body"
	}
	return "unknown"
}

const (
	headerResourcePoints = "ResourcePoints:"
	headerBuildings      = "Buildings:"
	tickPrefix           = "[Tick"
	builtMarker          = "built building"
)

var (
	resourcePointRe = regexp.MustCompile(`^RP\s+(\d+)\s+item\s+(\d+)\s+at\s+\((-?\d+),(-?\d+)\)`)
	buildingRe      = regexp.MustCompile(`^B\s+(\d+)\s+(.+)\s+at\s+\((-?\d+),(-?\d+)\)`)
	tickRe          = regexp.MustCompile(`^\[Tick\s+(\d+)\]\s+NPCs:\s*(.*)$`)
	positionRe      = regexp.MustCompile(`\((-?\d+),(-?\d+)\)`)
	itemRe          = regexp.MustCompile(`I(\d+):(\d+)/(\d+)`)
	tasksRe         = regexp.MustCompile(`Tasks:\s*(.*)$`)
	builtRe         = regexp.MustCompile(`built building (\d+)`)
	atTickRe        = regexp.MustCompile(`at tick (\d+)`)
)

// Stats counts what the parser saw. Skipped lines are lines that matched
// nothing in their section or held a number too large for int; they are
// never an error.
type Stats struct {
	Lines          int
	ResourcePoints int
	Buildings      int
	TickRecords    int
	Events         int
	Skipped        int
}

// record is what a state handler emits for one line.
type record interface {
	apply(p *parser)
}

type builtEvent struct {
	buildingID int
	tick       int
	hasTick    bool
}

func (rp ResourcePoint) apply(p *parser) {
	p.world.addResourcePoint(rp)
	p.stats.ResourcePoints++
}

func (b Building) apply(p *parser) {
	p.world.addBuilding(b)
	p.running.done[b.ID] = b.InitiallyCompleted
	p.stats.Buildings++
}

func (f Frame) apply(p *parser) {
	f.Completion = p.running.clone()
	p.frames = append(p.frames, f)
	p.lastTick = f.Tick
	p.stats.TickRecords++
}

func (e builtEvent) apply(p *parser) {
	// Completion never reverts: events only ever set true.
	p.running.done[e.buildingID] = true
	tick := p.lastTick
	if e.hasTick {
		tick = e.tick
	}
	p.events.add(Event{
		Line:       p.lineNo,
		Tick:       tick,
		FrameIndex: len(p.frames),
		BuildingID: e.buildingID,
	})
	p.stats.Events++
}

type parser struct {
	state    parseState
	world    *World
	frames   []Frame
	events   *EventLog
	running  Completion
	stats    Stats
	lineNo   int
	lastTick int
}

func newParser() *parser {
	return &parser{
		state:    stateStart,
		world:    newWorld(),
		events:   &EventLog{},
		running:  newCompletion(),
		lastTick: -1,
	}
}

// feed runs one line through the state machine.
func (p *parser) feed(line string) {
	p.lineNo++
	line = strings.TrimRight(line, " \t\r\n")
	if line == "" {
		return
	}
	p.stats.Lines++

	var next parseState
	var rec record
	switch p.state {
	case stateStart:
		next, rec = p.handleStart(line)
	case stateResourcePoints:
		next, rec = p.handleResourcePoints(line)
	case stateBuildings:
		next, rec = p.handleBuildings(line)
	default:
		next, rec = p.handleBody(line)
	}

	switch {
	case rec != nil:
		rec.apply(p)
	case !p.isHeader(line):
		p.stats.Skipped++
	}
	p.state = next
}

// isHeader reports whether line opens the next section from the current
// state. Header lines carry no record but are not skipped.
func (p *parser) isHeader(line string) bool {
	switch p.state {
	case stateStart:
		return line == headerResourcePoints
	case stateResourcePoints:
		return line == headerBuildings
	}
	return false
}

func (p *parser) handleStart(line string) (parseState, record) {
	if line == headerResourcePoints {
		return stateResourcePoints, nil
	}
	return stateStart, nil
}

func (p *parser) handleResourcePoints(line string) (parseState, record) {
	if line == headerBuildings {
		return stateBuildings, nil
	}
	m := resourcePointRe.FindStringSubmatch(line)
	if m == nil {
		return stateResourcePoints, nil
	}
	n, ok := atoiAll(m[1:5]...)
	if !ok {
		return stateResourcePoints, nil
	}
	return stateResourcePoints, ResourcePoint{ID: n[0], ItemKind: n[1], X: n[2], Y: n[3]}
}

func (p *parser) handleBuildings(line string) (parseState, record) {
	if strings.HasPrefix(line, tickPrefix) {
		// The first tick line ends the header and is itself a tick record.
		return p.handleBody(line)
	}
	m := buildingRe.FindStringSubmatch(line)
	if m == nil {
		return stateBuildings, nil
	}
	n, ok := atoiAll(m[1], m[3], m[4])
	if !ok {
		return stateBuildings, nil
	}
	return stateBuildings, Building{
		ID:                 n[0],
		Name:               strings.TrimSpace(m[2]),
		X:                  n[1],
		Y:                  n[2],
		InitiallyCompleted: n[0] == StorageID,
	}
}

func (p *parser) handleBody(line string) (parseState, record) {
	if strings.Contains(line, builtMarker) {
		m := builtRe.FindStringSubmatch(line)
		if m == nil {
			return stateBody, nil
		}
		id, ok := atoi(m[1])
		if !ok {
			return stateBody, nil
		}
		ev := builtEvent{buildingID: id}
		if t := atTickRe.FindStringSubmatch(line); t != nil {
			ev.tick, ev.hasTick = atoi(t[1])
		}
		return stateBody, ev
	}

	m := tickRe.FindStringSubmatch(line)
	if m == nil {
		return stateBody, nil
	}
	tick, ok := atoi(m[1])
	if !ok {
		return stateBody, nil
	}
	f, ok := parseTick(tick, m[2])
	if !ok {
		return stateBody, nil
	}
	return stateBody, f
}

// parseTick extracts positions, item counters and task labels from the
// remainder of a tick line. The returned frame has no completion snapshot
// yet; apply attaches one. ok is false when a number does not fit in int.
func parseTick(tick int, rest string) (Frame, bool) {
	f := Frame{
		Tick:      tick,
		Needs:     make(map[int]int),
		Inventory: make(map[int]int),
	}
	for _, pm := range positionRe.FindAllStringSubmatch(rest, -1) {
		n, ok := atoiAll(pm[1], pm[2])
		if !ok {
			return Frame{}, false
		}
		f.NPCs = append(f.NPCs, Point{X: n[0], Y: n[1]})
	}
	for _, im := range itemRe.FindAllStringSubmatch(rest, -1) {
		n, ok := atoiAll(im[1], im[2], im[3])
		if !ok {
			return Frame{}, false
		}
		f.Needs[n[0]] = n[1]
		f.Inventory[n[0]] = n[2]
	}
	if tm := tasksRe.FindStringSubmatch(rest); tm != nil {
		tasks := strings.TrimSpace(tm[1])
		if tasks != "" && tasks != "None" {
			f.Tasks = strings.Fields(tasks)
		}
	}
	return f, true
}

// atoi converts a regexp capture that is known to be an optionally signed
// run of digits. ok is false when the value does not fit in int.
func atoi(s string) (int, bool) {
	n, err := strconv.Atoi(s)
	return n, err == nil
}

// atoiAll converts every capture or none.
func atoiAll(caps ...string) ([]int, bool) {
	out := make([]int, len(caps))
	for i, c := range caps {
		n, ok := atoi(c)
		if !ok {
			return nil, false
		}
		out[i] = n
	}
	return out, true
}

func (p *parser) result() *Replay {
	return &Replay{
		World:  p.world,
		Frames: p.frames,
		Events: p.events,
		Stats:  p.stats,
	}
}

// Parse reads a whole log and reconstructs its world and frames. Lines the
// parser does not recognise are skipped. A log without tick records is not
// an error: the returned replay is simply empty. Only read failures from r
// are returned.
func Parse(r io.Reader) (*Replay, error) {
	p := newParser()
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 8*1024*1024)
	for sc.Scan() {
		p.feed(sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return p.result(), nil
}

// ParseLines parses a log that is already split into lines.
func ParseLines(lines []string) *Replay {
	p := newParser()
	for _, ln := range lines {
		p.feed(ln)
	}
	return p.result()
}

// ParseString parses log text held in memory.
func ParseString(text string) *Replay {
	return ParseLines(strings.Split(text, "\n"))
}
