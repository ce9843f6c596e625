package plan

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"house-designer/internal/designer/models"
)

func TestWallCountPerShape(t *testing.T) {
	cases := []struct {
		params models.ShapeParameters
		walls  int
		area   float64
	}{
		{models.RectangularParams{Length: 10, Width: 6}, 4, 60},
		{models.SquareParams{Size: 7}, 4, 49},
		{models.LShapeParams{MainLength: 10, MainWidth: 8, ExtensionLength: 4, ExtensionWidth: 3}, 6, 92},
		{models.TShapeParams{MainLength: 6, MainWidth: 4, CrossLength: 12, CrossWidth: 5}, 8, 84},
		{models.UShapeParams{BaseLength: 16, BaseWidth: 5, LeftWingLength: 7, LeftWingWidth: 4, RightWingLength: 7, RightWingWidth: 4}, 8, 136},
	}

	for _, tc := range cases {
		t.Run(string(tc.params.ShapeType()), func(t *testing.T) {
			walls := Walls(tc.params)
			require.Len(t, walls, tc.walls)
			assert.Equal(t, "wall-1", walls[0].ID)
			assert.Equal(t, walls[0].Start, walls[len(walls)-1].End, "outline must be closed")
			assert.InDelta(t, tc.area, Area(tc.params), 1e-9)
		})
	}
}

func TestEveryShapeHasOutline(t *testing.T) {
	for _, shape := range models.ShapeTypes {
		params, err := models.DeriveShapeParameters(shape, models.ShapeFields{}, models.DeriveLenient)
		require.NoError(t, err)
		assert.NotEmpty(t, Outline(params), shape)
	}
}

func TestWallAt(t *testing.T) {
	w := Wall{Start: Point{0, 0}, End: Point{10, 0}}
	assert.Equal(t, Point{5, 0}, w.At(0.5))
	assert.Equal(t, Point{10, 0}, w.At(3))
}

func TestRenderPlacesOpenings(t *testing.T) {
	spec := &models.HouseSpecification{
		ShapeType:       models.ShapeRectangular,
		ShapeParameters: models.RectangularParams{Length: 10, Width: 6},
		WallMaterial:    models.DefaultWallMaterial(),
		FloorMaterial:   models.DefaultFloorMaterial(),
		NumFloors:       1,
	}
	extras := []models.Extras{{
		Doors:   []models.Door{{ID: "door-a", Wall: "wall-1", Position: 0.5}, {ID: "door-x", Wall: "north", Position: 0.5}},
		Windows: []models.Window{{ID: "win-a", Wall: "wall-2", Position: 0.2, Position2: 0.8}},
	}}

	svg, err := NewRenderer().Render(spec, extras)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(svg, `<?xml`))
	assert.Contains(t, svg, `id="wall-4"`)
	assert.Contains(t, svg, `id="door-a" class="door" data-wall="wall-1"`)
	assert.Contains(t, svg, `id="win-a" class="window" data-wall="wall-2"`)
	assert.NotContains(t, svg, `door-x`)
	assert.Contains(t, svg, `width="580"`)
	assert.Contains(t, svg, `data-area="60"`)
}

func TestWallIndexMatchesWalls(t *testing.T) {
	params := models.TShapeParams{MainLength: 6, MainWidth: 4, CrossLength: 12, CrossWidth: 5}
	index := WallIndex(params)

	require.Len(t, index, 8)
	for _, w := range Walls(params) {
		assert.Equal(t, w, index[w.ID])
	}
}

func TestRenderWithoutShape(t *testing.T) {
	_, err := NewRenderer().Render(&models.HouseSpecification{}, nil)
	assert.Error(t, err)
}
