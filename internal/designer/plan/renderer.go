package plan

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"house-designer/internal/designer/models"
)

// ============================================================
// Renderer
// ============================================================

const (
	pixelsPerMeter = 50.0
	margin         = 40.0
	wallThickness  = 0.3
	doorWidth      = 0.9
	windowWidth    = 1.2
)

type Renderer struct {
	scale float64
}

func NewRenderer() *Renderer {
	return &Renderer{scale: pixelsPerMeter}
}

// Render собирает SVG плана этажа: контур, стены и проёмы.
// Проёмы на стенах, которых нет у формы, пропускаются.
func (r *Renderer) Render(spec *models.HouseSpecification, extras []models.Extras) (string, error) {
	if spec == nil || spec.ShapeParameters == nil {
		return "", fmt.Errorf("specification has no shape")
	}

	walls := Walls(spec.ShapeParameters)
	index := WallIndex(spec.ShapeParameters)
	maxX, maxY := 0.0, 0.0
	for _, w := range walls {
		maxX = math.Max(maxX, math.Max(w.Start.X, w.End.X))
		maxY = math.Max(maxY, math.Max(w.Start.Y, w.End.Y))
	}

	width := maxX*r.scale + 2*margin
	height := maxY*r.scale + 2*margin

	var elements []string
	elements = append(elements, r.renderArea(spec.ShapeParameters, spec.FloorMaterial.Color))
	elements = append(elements, r.renderWalls(walls, spec.WallMaterial.Color)...)
	for _, e := range extras {
		elements = append(elements, r.renderDoors(index, e.Doors)...)
		elements = append(elements, r.renderWindows(index, e.Windows)...)
	}

	var builder strings.Builder
	builder.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	builder.WriteString(fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" width="%s" height="%s" viewBox="0 0 %s %s" data-shape="%s" data-floors="%d" data-area="%s">`,
		formatFloat(width), formatFloat(height), formatFloat(width), formatFloat(height), spec.ShapeType, spec.NumFloors,
		formatFloat(Area(spec.ShapeParameters))))
	builder.WriteString("\n")

	for _, elem := range elements {
		if elem == "" {
			continue
		}
		builder.WriteString("  ")
		builder.WriteString(elem)
		builder.WriteString("\n")
	}

	builder.WriteString(`</svg>`)
	return builder.String(), nil
}

// ============================================================
// Element renderers
// ============================================================

func (r *Renderer) renderArea(params models.ShapeParameters, fill string) string {
	points := Outline(params)
	if len(points) < 3 {
		return ""
	}
	if fill == "" {
		fill = "none"
	}

	var path strings.Builder
	path.WriteString(`<path id="floor" d="M `)
	path.WriteString(r.formatPoint(points[0]))
	for _, p := range points[1:] {
		path.WriteString(" L ")
		path.WriteString(r.formatPoint(p))
	}
	path.WriteString(` Z" fill="`)
	path.WriteString(fill)
	path.WriteString(`" fill-opacity="0.25" stroke="#888" />`)
	return path.String()
}

func (r *Renderer) renderWalls(walls []Wall, color string) []string {
	if color == "" {
		color = "#000"
	}
	var out []string
	for _, w := range walls {
		if w.Length() == 0 {
			continue
		}
		a, b := r.project(w.Start), r.project(w.End)
		out = append(out, fmt.Sprintf(`<line id="%s" x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s" />`,
			w.ID, formatFloat(a.X), formatFloat(a.Y), formatFloat(b.X), formatFloat(b.Y), color, formatFloat(wallThickness*r.scale)))
	}
	return out
}

func (r *Renderer) renderDoors(walls map[string]Wall, doors []models.Door) []string {
	var out []string
	for _, d := range doors {
		w, ok := walls[d.Wall]
		if !ok || w.Length() == 0 {
			continue
		}
		span := doorWidth * scaleX(d.Scale) / w.Length() / 2
		out = append(out, r.opening(d.ID, "door", "#d62728", w, d.Position-span, d.Position+span))
	}
	return out
}

func (r *Renderer) renderWindows(walls map[string]Wall, windows []models.Window) []string {
	var out []string
	for _, win := range windows {
		w, ok := walls[win.Wall]
		if !ok || w.Length() == 0 {
			continue
		}
		from, to := win.Position, win.Position2
		if to <= from {
			span := windowWidth * scaleX(win.Scale) / w.Length() / 2
			from, to = win.Position-span, win.Position+span
		}
		out = append(out, r.opening(win.ID, "window", "#1f77b4", w, from, to))
	}
	return out
}

func (r *Renderer) opening(id, kind, stroke string, w Wall, from, to float64) string {
	a, b := r.project(w.At(from)), r.project(w.At(to))
	return fmt.Sprintf(`<line id="%s" class="%s" data-wall="%s" x1="%s" y1="%s" x2="%s" y2="%s" stroke="%s" stroke-width="%s" />`,
		id, kind, w.ID, formatFloat(a.X), formatFloat(a.Y), formatFloat(b.X), formatFloat(b.Y), stroke, formatFloat(wallThickness*r.scale*0.6))
}

// ============================================================
// Formatting helpers
// ============================================================

func (r *Renderer) project(p Point) Point {
	return Point{X: margin + p.X*r.scale, Y: margin + p.Y*r.scale}
}

func (r *Renderer) formatPoint(p Point) string {
	pp := r.project(p)
	return formatFloat(pp.X) + " " + formatFloat(pp.Y)
}

func scaleX(s models.Scale) float64 {
	if s.X <= 0 {
		return 1
	}
	return s.X
}

func formatFloat(val float64) string {
	return strconv.FormatFloat(math.Round(val*100)/100, 'f', -1, 64)
}
