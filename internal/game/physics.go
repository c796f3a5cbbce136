package game

// bottomMargin is how far below the playfield a body (or half) must fall
// before it is considered gone.
const bottomMargin = 100.0

// integrateBody advances one body by one fixed step. scale is
// dtSeconds*60: velocities are units/tick at a 60Hz reference, so a 60Hz
// fixed step yields scale==1 and any other step size produces identical
// trajectories per unit of real time.
//
// Whole bodies translate, accelerate under gravity and rotate. Sliced
// bodies integrate both halves identically and independently with the same
// gravity constant.
func integrateBody(b *Body, scale, gravity float64) {
	if b.Slice == nil {
		b.X += b.VX * scale
		b.Y += b.VY * scale
		b.VY += gravity * scale
		b.Rotation += b.RotSpeed * scale
		return
	}

	integrateHalf(&b.Slice.Left, scale, gravity)
	integrateHalf(&b.Slice.Right, scale, gravity)
}

func integrateHalf(h *Half, scale, gravity float64) {
	h.OffX += h.VX * scale
	h.OffY += h.VY * scale
	h.VY += gravity * scale
	h.Rotation += h.RotSpeed * scale
}

// reflectWalls applies side-boundary handling after integration, same tick.
// A horizontal extent crossing the left or right playfield edge is clamped
// to the edge and the horizontal velocity reflected with the configured
// restitution. There is no vertical clamping: bodies exit freely off the
// top and fall out below.
func reflectWalls(b *Body, width, restitution float64) {
	if b.Slice == nil {
		if b.X < 0 {
			b.X = 0
			b.VX = -b.VX * restitution
		} else if b.X+b.W > width {
			b.X = width - b.W
			b.VX = -b.VX * restitution
		}
		return
	}

	// Halves render at half the parent width; reflect each on its own
	// absolute extent by adjusting the relative offset.
	reflectHalf(&b.Slice.Left, b.X, b.W/2, width, restitution)
	reflectHalf(&b.Slice.Right, b.X, b.W/2, width, restitution)
}

func reflectHalf(h *Half, parentX, halfW, width, restitution float64) {
	absX := parentX + h.OffX
	if absX < 0 {
		h.OffX = -parentX
		h.VX = -h.VX * restitution
	} else if absX+halfW > width {
		h.OffX = width - halfW - parentX
		h.VX = -h.VX * restitution
	}
}

// belowBottom reports whether the whole body has fallen past the bottom
// threshold. Only meaningful for unsliced bodies (sliced removal tracks
// the halves instead).
func belowBottom(b *Body, height float64) bool {
	return b.Y > height+bottomMargin
}

// halvesBelowBottom reports whether BOTH halves of a sliced body have
// individually crossed the bottom threshold.
func halvesBelowBottom(b *Body, height float64) bool {
	if b.Slice == nil {
		return false
	}
	return b.Y+b.Slice.Left.OffY > height+bottomMargin &&
		b.Y+b.Slice.Right.OffY > height+bottomMargin
}
