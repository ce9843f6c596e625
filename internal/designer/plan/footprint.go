package plan

import (
	"fmt"
	"math"

	"house-designer/internal/designer/models"
)

// ============================================================
// Footprint geometry
// ============================================================

type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Wall — отрезок внешнего контура. Id имеют вид "wall-1".."wall-N",
// нумерация по часовой стрелке от верхнего левого угла.
type Wall struct {
	ID    string `json:"id"`
	Start Point  `json:"start"`
	End   Point  `json:"end"`
}

func (w Wall) Length() float64 {
	return math.Hypot(w.End.X-w.Start.X, w.End.Y-w.Start.Y)
}

// At возвращает точку на стене по нормализованной позиции [0,1].
func (w Wall) At(position float64) Point {
	t := clamp(position, 0, 1)
	return Point{
		X: w.Start.X + (w.End.X-w.Start.X)*t,
		Y: w.Start.Y + (w.End.Y-w.Start.Y)*t,
	}
}

// Outline возвращает вершины контура дома (в метрах) для формы.
func Outline(params models.ShapeParameters) []Point {
	switch p := params.(type) {
	case models.RectangularParams:
		return rect(p.Length, p.Width)
	case models.SquareParams:
		return rect(p.Size, p.Size)
	case models.LShapeParams:
		// основной корпус сверху, пристройка вниз от левого края
		ew := math.Min(p.ExtensionWidth, p.MainLength)
		return []Point{
			{0, 0},
			{p.MainLength, 0},
			{p.MainLength, p.MainWidth},
			{ew, p.MainWidth},
			{ew, p.MainWidth + p.ExtensionLength},
			{0, p.MainWidth + p.ExtensionLength},
		}
	case models.TShapeParams:
		// поперечина сверху, основной корпус по центру под ней
		cx := p.CrossLength / 2
		half := math.Min(p.MainWidth, p.CrossLength) / 2
		return []Point{
			{0, 0},
			{p.CrossLength, 0},
			{p.CrossLength, p.CrossWidth},
			{cx + half, p.CrossWidth},
			{cx + half, p.CrossWidth + p.MainLength},
			{cx - half, p.CrossWidth + p.MainLength},
			{cx - half, p.CrossWidth},
			{0, p.CrossWidth},
		}
	case models.UShapeParams:
		// основание снизу, крылья вверх от краёв основания
		height := math.Max(p.LeftWingLength, p.RightWingLength) + p.BaseWidth
		inner := height - p.BaseWidth
		lw := math.Min(p.LeftWingWidth, p.BaseLength)
		rw := math.Min(p.RightWingWidth, p.BaseLength-lw)
		return []Point{
			{0, inner - p.LeftWingLength},
			{lw, inner - p.LeftWingLength},
			{lw, inner},
			{p.BaseLength - rw, inner},
			{p.BaseLength - rw, inner - p.RightWingLength},
			{p.BaseLength, inner - p.RightWingLength},
			{p.BaseLength, height},
			{0, height},
		}
	default:
		return nil
	}
}

// Walls возвращает стены контура формы.
func Walls(params models.ShapeParameters) []Wall {
	pts := Outline(params)
	walls := make([]Wall, 0, len(pts))
	for i := range pts {
		walls = append(walls, Wall{
			ID:    fmt.Sprintf("wall-%d", i+1),
			Start: pts[i],
			End:   pts[(i+1)%len(pts)],
		})
	}
	return walls
}

// WallIndex строит индекс стен по id.
func WallIndex(params models.ShapeParameters) map[string]Wall {
	out := map[string]Wall{}
	for _, w := range Walls(params) {
		out[w.ID] = w
	}
	return out
}

// Area — площадь контура по формуле шнурования.
func Area(params models.ShapeParameters) float64 {
	pts := Outline(params)
	var sum float64
	for i := range pts {
		j := (i + 1) % len(pts)
		sum += pts[i].X*pts[j].Y - pts[j].X*pts[i].Y
	}
	return math.Abs(sum) / 2
}

func rect(w, h float64) []Point {
	return []Point{{0, 0}, {w, 0}, {w, h}, {0, h}}
}

func clamp(val, min, max float64) float64 {
	if val < min {
		return min
	}
	if val > max {
		return max
	}
	return val
}
