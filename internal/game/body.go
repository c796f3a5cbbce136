package game

import "fmt"

// Body is a spawned fruit. Position is the top-left corner of its bounding
// box; the collision engine works with the box center. Velocities are in
// units per tick at the 60Hz reference rate.
//
// Whole-vs-sliced is a tagged variant: Slice stays nil while the body is
// whole, so exactly one of the whole-body motion or the half states is
// active at any time. Once Slice is set the whole-body velocity fields are
// dead and the two halves integrate independently.
type Body struct {
	ID string

	X, Y     float64 // Top-left corner
	VX, VY   float64
	W, H     float64
	Rotation float64 // Radians
	RotSpeed float64 // Radians per tick

	Special bool
	Kind    FruitKind // Valid only when Special

	Slice *SliceState // nil while whole
}

// SliceState holds the post-slice variant of a body: the slice direction
// and the two independently simulated halves. Created at the moment of
// slicing, destroyed with the parent body.
type SliceState struct {
	Angle float64 // Direction of the slicing trail segment (radians)
	Left  Half
	Right Half
}

// Half is one of the two fragments of a sliced body. Offsets are relative
// to the parent body's position so the pair travels with one record.
type Half struct {
	OffX, OffY float64
	VX, VY     float64
	Rotation   float64
	RotSpeed   float64
}

// newBody creates a whole body with the given kinematics. seq feeds the ID
// so spawn order is recoverable from logs.
func newBody(seq uint64, x, y, vx, vy, size, rotation, rotSpeed float64) *Body {
	return &Body{
		ID:       fmt.Sprintf("fruit_%d", seq),
		X:        x,
		Y:        y,
		VX:       vx,
		VY:       vy,
		W:        size,
		H:        size,
		Rotation: rotation,
		RotSpeed: rotSpeed,
	}
}

// Sliced reports whether the body has been cut.
func (b *Body) Sliced() bool {
	return b.Slice != nil
}

// CenterX returns the horizontal center of the bounding box.
func (b *Body) CenterX() float64 {
	return b.X + b.W/2
}

// CenterY returns the vertical center of the bounding box.
func (b *Body) CenterY() float64 {
	return b.Y + b.H/2
}

// PointValue returns the score awarded when this body is sliced.
func (b *Body) PointValue() int {
	if b.Special {
		return b.Kind.PointValue
	}
	return RegularPointValue
}

// hitRadius returns the slice detection radius. Specials use a larger
// radius matching their larger render size.
func (b *Body) hitRadius(regular float64) float64 {
	if b.Special {
		return SpecialHitRadius
	}
	return regular
}
