package analysis

import (
	"math"
	"strings"

	"github.com/san-kum/dynmap/internal/dynamo"
)

// PhasePortrait holds the plane projection of a trajectory.
type PhasePortrait struct {
	XIndex, YIndex int
	Points         []dynamo.Vec2
}

// NewPhasePortrait projects states onto components xIdx and yIdx.
// For a scalar map, pass the same index twice to get the return map
// (x_t, x_t+1).
func NewPhasePortrait(states []dynamo.State, xIdx, yIdx int) *PhasePortrait {
	p := &PhasePortrait{XIndex: xIdx, YIndex: yIdx}
	if xIdx == yIdx {
		p.Points = make([]dynamo.Vec2, 0, max(len(states)-1, 0))
		for i := 1; i < len(states); i++ {
			p.Points = append(p.Points, dynamo.Vec2{X: states[i-1].X.At(xIdx), Y: states[i].X.At(xIdx)})
		}
		return p
	}
	p.Points = make([]dynamo.Vec2, 0, len(states))
	for _, s := range states {
		p.Points = append(p.Points, dynamo.Vec2{X: s.X.At(xIdx), Y: s.X.At(yIdx)})
	}
	return p
}

// Bounds returns the bounding box of the finite points, padded by 10%.
func (p *PhasePortrait) Bounds() (minX, maxX, minY, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	for _, pt := range p.Points {
		if math.IsNaN(pt.X) || math.IsNaN(pt.Y) || math.IsInf(pt.X, 0) || math.IsInf(pt.Y, 0) {
			continue
		}
		minX, maxX = math.Min(minX, pt.X), math.Max(maxX, pt.X)
		minY, maxY = math.Min(minY, pt.Y), math.Max(maxY, pt.Y)
	}
	if math.IsInf(minX, 1) {
		return -1, 1, -1, 1
	}

	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	return minX - rangeX*0.1, maxX + rangeX*0.1, minY - rangeY*0.1, maxY + rangeY*0.1
}

// ASCII draws the portrait on a width×height character grid with axes.
func (p *PhasePortrait) ASCII(width, height int) string {
	if p == nil || len(p.Points) == 0 || width <= 0 || height <= 0 {
		return ""
	}
	minX, maxX, minY, maxY := p.Bounds()
	rangeX, rangeY := maxX-minX, maxY-minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = []rune(strings.Repeat(" ", width))
	}

	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			canvas[row][col] = '│'
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if canvas[row][col] == '│' {
				canvas[row][col] = '┼'
			} else {
				canvas[row][col] = '─'
			}
		}
	}

	for _, pt := range p.Points {
		col := int((pt.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((pt.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}
