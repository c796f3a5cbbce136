// Package render is a reference consumer of game snapshots: it draws the
// simulation state into PNG preview frames for the /api/frame endpoint.
// It never mutates core state.
package render

import (
	"bytes"
	"fmt"
	"image/color"
	"image/png"

	"fruit-rush/internal/game"

	"github.com/fogleman/gg"
)

// Renderer draws snapshots at a fixed playfield size.
type Renderer struct {
	width  int
	height int
}

// NewRenderer creates a renderer matching the playfield dimensions.
func NewRenderer(width, height int) *Renderer {
	return &Renderer{width: width, height: height}
}

// RenderPNG draws one snapshot and encodes it as PNG.
func (r *Renderer) RenderPNG(snap *game.GameSnapshot) ([]byte, error) {
	dc := gg.NewContext(r.width, r.height)

	r.drawBackground(dc)
	r.drawBodies(dc, snap.Bodies)
	r.drawTrail(dc, snap.Trail)
	r.drawTexts(dc, snap.Texts)
	r.drawHUD(dc, snap)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dc.Image()); err != nil {
		return nil, fmt.Errorf("encode frame: %w", err)
	}
	return buf.Bytes(), nil
}

func (r *Renderer) drawBackground(dc *gg.Context) {
	dc.SetColor(color.RGBA{16, 20, 32, 255})
	dc.DrawRectangle(0, 0, float64(r.width), float64(r.height))
	dc.Fill()
}

func (r *Renderer) drawBodies(dc *gg.Context, bodies []game.BodySnapshot) {
	for _, b := range bodies {
		c := color.RGBA{102, 187, 106, 255} // regular fruit green
		if b.Special {
			c = parseHexColor(b.Color)
		}

		if !b.Sliced {
			r.drawWhole(dc, b, c)
			continue
		}

		// Two independently flying halves at their offsets.
		r.drawHalf(dc, b, b.Left, c)
		r.drawHalf(dc, b, b.Right, c)
	}
}

func (r *Renderer) drawWhole(dc *gg.Context, b game.BodySnapshot, c color.RGBA) {
	cx := b.X + b.W/2
	cy := b.Y + b.H/2

	dc.SetColor(c)
	dc.DrawCircle(cx, cy, b.W/2)
	dc.Fill()

	// Rotation marker so spin is visible on featureless circles
	dc.Push()
	dc.RotateAbout(b.Rotation, cx, cy)
	dc.SetColor(color.RGBA{0, 0, 0, 90})
	dc.DrawLine(cx, cy, cx+b.W/2, cy)
	dc.SetLineWidth(2)
	dc.Stroke()
	dc.Pop()
}

func (r *Renderer) drawHalf(dc *gg.Context, b game.BodySnapshot, h game.HalfSnapshot, c color.RGBA) {
	cx := b.X + h.OffX + b.W/4
	cy := b.Y + h.OffY + b.H/2

	dc.Push()
	dc.RotateAbout(h.Rotation, cx, cy)
	dc.SetColor(c)
	dc.DrawEllipse(cx, cy, b.W/4, b.H/2)
	dc.Fill()
	dc.Pop()
}

func (r *Renderer) drawTrail(dc *gg.Context, trail []game.TrailPointSnapshot) {
	if len(trail) < 2 {
		return
	}

	for i := 0; i+1 < len(trail); i++ {
		// Alpha and width grow toward the newest sample
		frac := float64(i+1) / float64(len(trail))
		dc.SetColor(color.RGBA{255, 255, 255, uint8(80 + 175*frac)})
		dc.SetLineWidth(1 + 3*frac)
		dc.DrawLine(trail[i].X, trail[i].Y, trail[i+1].X, trail[i+1].Y)
		dc.Stroke()
	}
}

func (r *Renderer) drawTexts(dc *gg.Context, texts []game.TextSnapshot) {
	for _, t := range texts {
		c := parseHexColor(t.Color)
		c.A = uint8(t.Alpha * 255)
		dc.SetColor(c)
		dc.DrawStringAnchored(fmt.Sprintf("+%d", t.Value), t.X, t.Y, 0.5, 0.5)
	}
}

func (r *Renderer) drawHUD(dc *gg.Context, snap *game.GameSnapshot) {
	dc.SetColor(color.White)
	dc.DrawString(fmt.Sprintf("Score: %d", snap.Score), 16, 24)
	dc.DrawString(fmt.Sprintf("Lives: %d", snap.Lives), 16, 44)
	if snap.DifficultyPct > 0 {
		dc.DrawString(fmt.Sprintf("Difficulty: +%d%%", snap.DifficultyPct), 16, 64)
	}
	if snap.Phase == "game_over" {
		dc.DrawStringAnchored("GAME OVER", float64(r.width)/2, float64(r.height)/2, 0.5, 0.5)
	}
}

// parseHexColor converts "#rrggbb" to an RGBA color, white on bad input.
func parseHexColor(s string) color.RGBA {
	c := color.RGBA{255, 255, 255, 255}
	if len(s) != 7 || s[0] != '#' {
		return c
	}
	var rv, gv, bv uint8
	if _, err := fmt.Sscanf(s[1:], "%02x%02x%02x", &rv, &gv, &bv); err != nil {
		return c
	}
	return color.RGBA{rv, gv, bv, 255}
}
