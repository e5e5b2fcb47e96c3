package board

const (
	TrackLength    = 68
	ArmLength      = TrackLength / ColorCount
	CorridorLength = 7
	PiecesPerColor = 4
)

// Arm template, in cell units relative to the center with y growing down.
// The red arm climbs the left lane from entryRow to the tip at armReach,
// crosses the tip, walks the right lane back to the center square, turns
// the inner corner diagonally and runs along the top lane of the blue arm
// until the blue entry.
const (
	armReach       = 9
	entryRow       = 5
	tipOffset      = armReach - entryRow + 1
	mirrorOffset   = tipOffset + 1 + armReach - entryRow
	approachOffset = 2
	corridorTop    = 7
	baseCorner     = 5.5
	slotSpread     = 1.5
)

// vec is a position in cell units relative to the center.
type vec struct {
	x, y float64
}

// rotate turns v clockwise on screen by the given number of quarter turns.
func (v vec) rotate(quarters int) vec {
	for i := 0; i < quarters%4; i++ {
		v = vec{-v.y, v.x}
	}
	return v
}

func armTemplate() [ArmLength]vec {
	var arm [ArmLength]vec
	n := 0
	for r := entryRow; r <= armReach; r++ {
		arm[n] = vec{-1, float64(-r)}
		n++
	}
	arm[n] = vec{0, -armReach}
	n++
	for r := armReach; r >= 2; r-- {
		arm[n] = vec{1, float64(-r)}
		n++
	}
	// (1,-2) -> (2,-1) is the diagonal inner corner
	for c := 2; c < entryRow; c++ {
		arm[n] = vec{float64(c), -1}
		n++
	}
	return arm
}

func corridorTemplate() [CorridorLength]vec {
	var corridor [CorridorLength]vec
	for i := range corridor {
		corridor[i] = vec{0, float64(-corridorTop + i)}
	}
	return corridor
}

func baseTemplate() (center vec, slots [PiecesPerColor]vec) {
	center = vec{-baseCorner, -baseCorner}
	offsets := [PiecesPerColor]vec{
		{-slotSpread, -slotSpread},
		{slotSpread, -slotSpread},
		{-slotSpread, slotSpread},
		{slotSpread, slotSpread},
	}
	for i, o := range offsets {
		slots[i] = vec{center.x + o.x, center.y + o.y}
	}
	return center, slots
}

// Cell is one square of the shared ring.
type Cell struct {
	Index int
	Point Point
	Arm   Color
	Entry bool
	Safe  bool
}

// BaseArea is the waiting area of one color.
type BaseArea struct {
	Center Point
	Slots  [PiecesPerColor]Point
}

// Layout holds every board coordinate for one Geometry. It is built once
// and never mutated, so lookups are plain array reads.
type Layout struct {
	geometry  Geometry
	grid      [TrackLength]vec
	track     [TrackLength]Cell
	corridors [ColorCount][CorridorLength]Point
	bases     [ColorCount]BaseArea
	goal      Point
}

// NewLayout validates g and generates the coordinate tables by rotating the
// red arm, corridor and base templates around the center.
func NewLayout(g Geometry) (*Layout, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	l := &Layout{geometry: g, goal: g.Center()}

	arm := armTemplate()
	corridor := corridorTemplate()
	baseCenter, slots := baseTemplate()

	for _, c := range Colors {
		quarters := int(c)
		for k, v := range arm {
			i := quarters*ArmLength + k
			rotated := v.rotate(quarters)
			l.grid[i] = rotated
			l.track[i] = Cell{
				Index: i,
				Point: l.toPoint(rotated),
				Arm:   c,
				Entry: k == 0,
				Safe:  k == 0 || k == tipOffset || k == mirrorOffset,
			}
		}
		for k, v := range corridor {
			l.corridors[c][k] = l.toPoint(v.rotate(quarters))
		}
		base := BaseArea{Center: l.toPoint(baseCenter.rotate(quarters))}
		for k, v := range slots {
			base.Slots[k] = l.toPoint(v.rotate(quarters))
		}
		l.bases[c] = base
	}
	return l, nil
}

func (l *Layout) toPoint(v vec) Point {
	center := l.geometry.Center()
	return Point{
		X: center.X + v.x*l.geometry.CellWidth,
		Y: center.Y + v.y*l.geometry.CellHeight,
	}
}

func (l *Layout) Geometry() Geometry {
	return l.geometry
}

// Track returns the coordinate of ring cell i; ok is false outside 0..67.
func (l *Layout) Track(i int) (Point, bool) {
	if i < 0 || i >= TrackLength {
		return Point{}, false
	}
	return l.track[i].Point, true
}

func (l *Layout) Cell(i int) (Cell, bool) {
	if i < 0 || i >= TrackLength {
		return Cell{}, false
	}
	return l.track[i], true
}

// Cells returns the ring in index order.
func (l *Layout) Cells() []Cell {
	cells := make([]Cell, TrackLength)
	copy(cells, l.track[:])
	return cells
}

// Corridor returns the coordinate of corridor cell i of color c.
func (l *Layout) Corridor(c Color, i int) (Point, bool) {
	if !c.Valid() || i < 0 || i >= CorridorLength {
		return Point{}, false
	}
	return l.corridors[c][i], true
}

func (l *Layout) Base(c Color) (BaseArea, bool) {
	if !c.Valid() {
		return BaseArea{}, false
	}
	return l.bases[c], true
}

// Slot returns the base slot reserved for piece id of color c.
func (l *Layout) Slot(c Color, id int) (Point, bool) {
	if !c.Valid() || id < 0 || id >= PiecesPerColor {
		return Point{}, false
	}
	return l.bases[c].Slots[id], true
}

func (l *Layout) Goal() Point {
	return l.goal
}

// Entry returns the ring index where pieces of c join the ring.
func (l *Layout) Entry(c Color) (int, bool) {
	if !c.Valid() {
		return 0, false
	}
	return int(c) * ArmLength, true
}

// Approach returns the last ring index a piece of c occupies before
// turning into its corridor.
func (l *Layout) Approach(c Color) (int, bool) {
	entry, ok := l.Entry(c)
	if !ok {
		return 0, false
	}
	return (entry + approachOffset) % TrackLength, true
}
