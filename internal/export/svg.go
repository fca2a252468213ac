package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/cartpole/internal/cartpole"
	"github.com/san-kum/cartpole/internal/sim"
	"github.com/san-kum/cartpole/internal/viz"
)

// SceneSVG renders one state of the cart and pole as an SVG scene, drawn
// through the same Braille canvas the terminal explorer uses.
func SceneSVG(p cartpole.Params, s cartpole.State, scale float64) string {
	return canvasToSVG(viz.Snapshot(p, s), scale)
}

// canvasToSVG converts a Braille canvas to SVG, one circle per lit dot.
func canvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2
	height := float64(canvas.Height) * scale * 4

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="#00ff00">
`, width, height, width, height))

	pixelMap := [4][2]int{
		{0x01, 0x08},
		{0x02, 0x10},
		{0x04, 0x20},
		{0x40, 0x80},
	}

	dotRadius := scale * 0.4

	for row := 0; row < canvas.Height; row++ {
		for col := 0; col < canvas.Width; col++ {
			r := canvas.Grid[row][col]
			if r < 0x2800 {
				continue
			}
			pattern := int(r - 0x2800)

			baseX := float64(col) * scale * 2
			baseY := float64(row) * scale * 4

			for dy := 0; dy < 4; dy++ {
				for dx := 0; dx < 2; dx++ {
					if pattern&pixelMap[dy][dx] != 0 {
						cx := baseX + float64(dx)*scale + scale/2
						cy := baseY + float64(dy)*scale + scale/2
						sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f"/>
`, cx, cy, dotRadius))
					}
				}
			}
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// PhaseSVG draws the pole's phase portrait, angle against angle velocity,
// for one episode.
func PhaseSVG(result *sim.Result, width, height int) string {
	if len(result.States) < 2 {
		return ""
	}

	minX, maxX := result.States[0].Angle, result.States[0].Angle
	minY, maxY := result.States[0].AngleVel, result.States[0].AngleVel
	for _, s := range result.States {
		if s.Angle < minX {
			minX = s.Angle
		}
		if s.Angle > maxX {
			maxX = s.Angle
		}
		if s.AngleVel < minY {
			minY = s.AngleVel
		}
		if s.AngleVel > maxY {
			maxY = s.AngleVel
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="#00ccff" stroke-width="1.5" d="M`,
		width, height, width, height))

	for i, s := range result.States {
		x := (s.Angle - minX) / rangeX * float64(width)
		y := float64(height) - (s.AngleVel-minY)/rangeY*float64(height)

		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
