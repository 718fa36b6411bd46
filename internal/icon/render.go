package icon

import (
	"image"
	"image/color"
	"math"

	"github.com/fogleman/gg"
)

// Size is the edge length of the square canvas in pixels.
const Size = 64

type palette struct {
	body, stroke color.RGBA
}

var palettes = map[Kind]palette{
	KindNormal:            {body: rgb(67, 160, 71), stroke: rgb(27, 94, 32)},
	KindMissingCredential: {body: rgb(239, 108, 0), stroke: rgb(44, 44, 44)},
	KindFailed:            {body: rgb(189, 189, 189), stroke: rgb(183, 28, 28)},
	KindStale:             {body: rgb(100, 181, 246), stroke: rgb(21, 101, 192)},
}

var (
	badgeFill    = rgb(204, 32, 32)
	badgeOutline = rgb(255, 232, 232)
	spinnerColor = rgb(25, 118, 210)
)

func rgb(r, g, b uint8) color.RGBA {
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// Render draws the icon for spec. Output depends only on spec. Unknown kinds
// render as normal.
func Render(spec Spec) image.Image {
	dc := gg.NewContext(Size, Size)
	dc.SetLineCapButt()

	pal, ok := palettes[spec.Kind]
	if !ok {
		pal = palettes[KindNormal]
	}
	drawEnvelope(dc, pal)

	switch spec.Kind {
	case KindMissingCredential:
		drawKey(dc, pal.stroke)
	case KindFailed:
		drawCross(dc, pal.stroke)
	case KindStale:
		drawClock(dc, pal.stroke)
	}

	switch spec.Overlay {
	case OverlaySpinner:
		drawSpinner(dc)
	case OverlayUnread:
		drawBadge(dc)
	}

	return dc.Image()
}

// drawEnvelope draws the body rectangle with a 2px outline and the flap.
func drawEnvelope(dc *gg.Context, pal palette) {
	const pad = Size / 8
	const s = float64(Size)

	dc.DrawRectangle(pad, pad, s-2*pad, s-2*pad)
	dc.SetColor(pal.body)
	dc.FillPreserve()
	dc.SetColor(pal.stroke)
	dc.SetLineWidth(2)
	dc.Stroke()

	dc.MoveTo(pad, pad)
	dc.LineTo(s/2, s/2)
	dc.LineTo(s-pad, pad)
	dc.ClosePath()
	dc.Fill()
}

// drawKey draws a ring with a shaft below it.
func drawKey(dc *gg.Context, fg color.RGBA) {
	const third = float64(Size / 3)
	const shaftY = float64(Size / 2)

	dc.SetColor(fg)
	dc.DrawRectangle(third, shaftY, 6, third)
	dc.Fill()

	dc.SetLineWidth(3)
	dc.DrawCircle(third+6, shaftY+2, 12)
	dc.Stroke()
}

// drawCross draws two diagonals across the envelope.
func drawCross(dc *gg.Context, fg color.RGBA) {
	const q = float64(Size / 4)
	const s = float64(Size)

	dc.SetColor(fg)
	dc.SetLineWidth(5)
	dc.DrawLine(q, q, s-q, s-q)
	dc.Stroke()
	dc.DrawLine(q, s-q, s-q, q)
	dc.Stroke()
}

// drawClock draws an open arc ending in an arrowhead on the right.
func drawClock(dc *gg.Context, fg color.RGBA) {
	const q = float64(Size / 4)
	const s = float64(Size)

	dc.SetColor(fg)
	dc.SetLineWidth(4)
	dc.DrawArc(s/2, s/2, s/2-q, gg.Radians(40), gg.Radians(320))
	dc.Stroke()

	dc.MoveTo(s-q, s/2)
	dc.LineTo(s-q-8, s/2-8)
	dc.LineTo(s-q-8, s/2+8)
	dc.ClosePath()
	dc.Fill()
}

// drawBadge draws the filled unread dot in the lower-right corner.
func drawBadge(dc *gg.Context) {
	const r = float64(Size / 6)
	c := float64(Size) - r - 1

	dc.DrawCircle(c, c, r)
	dc.SetColor(badgeFill)
	dc.FillPreserve()
	dc.SetColor(badgeOutline)
	dc.SetLineWidth(2)
	dc.Stroke()
}

// drawSpinner draws two opposing arcs with arrowheads in the lower-right quadrant.
func drawSpinner(dc *gg.Context) {
	const r = float64(Size / 3)
	c := float64(Size) - r

	dc.SetColor(spinnerColor)
	dc.SetLineWidth(7)
	dc.DrawArc(c, c, r, gg.Radians(210), gg.Radians(80+360))
	dc.Stroke()
	dc.DrawArc(c, c, r, gg.Radians(30), gg.Radians(260))
	dc.Stroke()

	for _, deg := range []float64{80, -100} {
		a := gg.Radians(deg)
		dc.MoveTo(c+r*math.Cos(a), c+r*math.Sin(a))
		dc.LineTo(c+(r+3)*math.Cos(a+0.5), c+(r+3)*math.Sin(a+0.5))
		dc.LineTo(c+(r+3)*math.Cos(a-0.5), c+(r+3)*math.Sin(a-0.5))
		dc.ClosePath()
		dc.Fill()
	}
}
